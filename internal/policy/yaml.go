package policy

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/feral-file/pplp-engine/internal/domain"
)

// Document is a policy document as authored in YAML, with optional attester labels
type Document struct {
	domain.Policy
	Labels map[string]string
}

// ParseYAML decodes a policy document from YAML. The document is converted to JSON first so that
// decimals and pillar keys decode exactly as they do from the API.
func ParseYAML(r io.Reader) (*Document, error) {
	var tree map[string]any
	if err := yaml.NewDecoder(r).Decode(&tree); err != nil {
		return nil, fmt.Errorf("failed to decode policy yaml: %w", err)
	}

	// attester_labels is not part of the hashed document
	var labels map[string]string
	if raw, ok := tree["attester_labels"]; ok {
		delete(tree, "attester_labels")
		m, ok := raw.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("attester_labels must be a mapping")
		}
		labels = make(map[string]string, len(m))
		for k, v := range m {
			labels[k] = fmt.Sprint(v)
		}
	}

	data, err := json.Marshal(tree)
	if err != nil {
		return nil, fmt.Errorf("failed to convert policy yaml: %w", err)
	}

	var p domain.Policy
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("failed to decode policy document: %w", err)
	}
	return &Document{Policy: p, Labels: labels}, nil
}
