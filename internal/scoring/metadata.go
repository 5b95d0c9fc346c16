package scoring

import (
	"bytes"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/feral-file/pplp-engine/internal/domain"
)

//go:embed schemas/*.json
var schemaFS embed.FS

const schemaBaseURL = "https://schemas.pplp.dev/metadata/"

// MetadataValidator validates action metadata against the JSON schema of its action type
// and decodes it into the typed metadata union
type MetadataValidator struct {
	schemas map[domain.ActionType]*jsonschema.Schema
}

// NewMetadataValidator compiles the embedded schema of every known action type
func NewMetadataValidator() (*MetadataValidator, error) {
	c := jsonschema.NewCompiler()
	c.Draft = jsonschema.Draft2020

	schemas := make(map[domain.ActionType]*jsonschema.Schema, len(domain.ActionTypes))
	for _, t := range domain.ActionTypes {
		name := strings.ToLower(string(t)) + ".json"
		data, err := schemaFS.ReadFile("schemas/" + name)
		if err != nil {
			return nil, fmt.Errorf("failed to read metadata schema for %s: %w", t, err)
		}

		url := schemaBaseURL + name
		if err := c.AddResource(url, bytes.NewReader(data)); err != nil {
			return nil, fmt.Errorf("failed to load metadata schema for %s: %w", t, err)
		}
		compiled, err := c.Compile(url)
		if err != nil {
			return nil, fmt.Errorf("failed to compile metadata schema for %s: %w", t, err)
		}
		schemas[t] = compiled
	}

	return &MetadataValidator{schemas: schemas}, nil
}

// Parse validates raw metadata for the action type and decodes it.
// Unknown action types fail closed with domain.ErrUnknownActionType; schema violations
// are returned as *domain.ValidationError.
func (v *MetadataValidator) Parse(t domain.ActionType, raw []byte) (*domain.Metadata, error) {
	schema, ok := v.schemas[t]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnknownActionType, t)
	}

	if len(bytes.TrimSpace(raw)) == 0 {
		raw = []byte("{}")
	}

	doc, err := decodeDocument(raw)
	if err != nil {
		return nil, domain.NewValidationError("metadata", "metadata is not valid JSON")
	}
	if err := schema.Validate(doc); err != nil {
		var ve *jsonschema.ValidationError
		if errors.As(err, &ve) {
			leaf := deepestCause(ve)
			return nil, domain.NewValidationError("metadata"+leaf.InstanceLocation, leaf.Message)
		}
		return nil, domain.NewValidationError("metadata", err.Error())
	}

	return domain.DecodeMetadata(t, raw)
}

// decodeDocument decodes exactly one JSON value keeping numbers as json.Number, the form Schema.Validate expects
func decodeDocument(raw []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var doc any
	if err := dec.Decode(&doc); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, errors.New("trailing data after metadata")
	}
	return doc, nil
}

// deepestCause follows the first cause chain down to the most specific violation
func deepestCause(ve *jsonschema.ValidationError) *jsonschema.ValidationError {
	for len(ve.Causes) > 0 {
		ve = ve.Causes[0]
	}
	return ve
}
