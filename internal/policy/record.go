package policy

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/feral-file/pplp-engine/internal/domain"
	"github.com/feral-file/pplp-engine/internal/store/schema"
)

// Record is a stored policy: the immutable document plus its registry state
type Record struct {
	domain.Policy
	ContentHash  string     `json:"content_hash"`
	IsActive     bool       `json:"is_active"`
	ExternalRef  *string    `json:"external_ref,omitempty"`
	CreatedBy    string     `json:"created_by"`
	CreatedAt    time.Time  `json:"created_at"`
	ActivatedAt  *time.Time `json:"activated_at,omitempty"`
	RegisteredAt *time.Time `json:"registered_at,omitempty"`
}

// recordFromSchema decodes a policy row. The row's signature threshold wins over the document's
// initial value since it is changed through the attester registry.
func recordFromSchema(row *schema.Policy) (*Record, error) {
	var doc domain.Policy
	if err := json.Unmarshal(row.Document, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode policy %s: %w", row.Version, err)
	}
	doc.SignatureThreshold = row.SignatureThreshold

	return &Record{
		Policy:       doc,
		ContentHash:  row.ContentHash,
		IsActive:     row.IsActive,
		ExternalRef:  row.ExternalRef,
		CreatedBy:    row.CreatedBy,
		CreatedAt:    row.CreatedAt,
		ActivatedAt:  row.ActivatedAt,
		RegisteredAt: row.RegisteredAt,
	}, nil
}
