package dto

import (
	"time"

	"github.com/feral-file/pplp-engine/internal/domain"
	"github.com/feral-file/pplp-engine/internal/policy"
	"github.com/feral-file/pplp-engine/internal/store/schema"
)

// PolicyListResponse represents the policy history
type PolicyListResponse struct {
	Policies []policy.Record `json:"items"`
}

// AttesterResponse represents an attester registration
type AttesterResponse struct {
	PolicyVersion string     `json:"policy_version"`
	SignerID      string     `json:"signer_id"`
	Label         string     `json:"label,omitempty"`
	AddedBy       string     `json:"added_by"`
	AddedAt       time.Time  `json:"added_at"`
	RevokedAt     *time.Time `json:"revoked_at,omitempty"`
	RevokedBy     *string    `json:"revoked_by,omitempty"`
}

// MapAttesterToDTO maps a schema.Attester to AttesterResponse
func MapAttesterToDTO(a *schema.Attester) AttesterResponse {
	return AttesterResponse{
		PolicyVersion: a.PolicyVersion,
		SignerID:      a.SignerID,
		Label:         a.Label,
		AddedBy:       a.AddedBy,
		AddedAt:       a.AddedAt,
		RevokedAt:     a.RevokedAt,
		RevokedBy:     a.RevokedBy,
	}
}

// AttesterListResponse represents the attesters of a policy version
type AttesterListResponse struct {
	PolicyVersion string             `json:"policy_version"`
	Attesters     []AttesterResponse `json:"items"`
}

// PolicyChangeResponse represents an audit row
type PolicyChangeResponse struct {
	ID            int64                   `json:"id"`
	PolicyVersion string                  `json:"policy_version"`
	ChangeType    domain.PolicyChangeType `json:"change_type"`
	Field         string                  `json:"field,omitempty"`
	OldValue      string                  `json:"old_value,omitempty"`
	NewValue      string                  `json:"new_value,omitempty"`
	Actor         string                  `json:"actor"`
	Reason        string                  `json:"reason,omitempty"`
	ChangedAt     time.Time               `json:"changed_at"`
	PrevHash      string                  `json:"prev_hash"`
	EntryHash     string                  `json:"entry_hash"`
	StreamedAt    *time.Time              `json:"streamed_at,omitempty"`
}

// MapPolicyChangeToDTO maps a schema.PolicyChange to PolicyChangeResponse
func MapPolicyChangeToDTO(c *schema.PolicyChange) PolicyChangeResponse {
	return PolicyChangeResponse{
		ID:            c.ID,
		PolicyVersion: c.PolicyVersion,
		ChangeType:    c.ChangeType,
		Field:         c.Field,
		OldValue:      c.OldValue,
		NewValue:      c.NewValue,
		Actor:         c.Actor,
		Reason:        c.Reason,
		ChangedAt:     c.ChangedAt,
		PrevHash:      c.PrevHash,
		EntryHash:     c.EntryHash,
		StreamedAt:    c.StreamedAt,
	}
}

// PolicyChangeListResponse represents a page of audit rows
type PolicyChangeListResponse struct {
	Changes []PolicyChangeResponse `json:"items"`
	Offset  *uint64                `json:"offset,omitempty"`
	Total   uint64                 `json:"total"`
}
