package dto

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/feral-file/pplp-engine/internal/domain"
)

// EvidenceRequest is a piece of evidence attached to a submission. Payload is base64 in JSON.
type EvidenceRequest struct {
	Type        string         `json:"type"`
	ContentHash string         `json:"content_hash"`
	URI         *string        `json:"uri,omitempty"`
	Payload     []byte         `json:"payload,omitempty"`
	Metadata    map[string]any `json:"metadata,omitempty"`
}

// SubmitActionRequest represents the request body for POST /actions
type SubmitActionRequest struct {
	PlatformID    string            `json:"platform_id"`
	ActionType    domain.ActionType `json:"action_type"`
	ActorID       string            `json:"actor_id"`
	TargetID      *string           `json:"target_id,omitempty"`
	WalletAddress *string           `json:"wallet_address,omitempty"`
	Metadata      json.RawMessage   `json:"metadata"`
	Impact        domain.Impact     `json:"impact"`
	Integrity     domain.Integrity  `json:"integrity"`
	Evidence      []EvidenceRequest `json:"evidence,omitempty"`
}

// Validate checks the shape of the request. Field semantics are checked by the pipeline.
func (r *SubmitActionRequest) Validate() error {
	if strings.TrimSpace(r.PlatformID) == "" {
		return fmt.Errorf("platform_id is required")
	}
	if r.ActionType == "" {
		return fmt.Errorf("action_type is required")
	}
	if strings.TrimSpace(r.ActorID) == "" {
		return fmt.Errorf("actor_id is required")
	}
	if len(r.Metadata) == 0 {
		return fmt.Errorf("metadata is required")
	}
	return nil
}

// ToSubmission converts the request into a pipeline submission
func (r *SubmitActionRequest) ToSubmission() domain.ActionSubmission {
	evidence := make([]domain.EvidenceInput, len(r.Evidence))
	for i, e := range r.Evidence {
		evidence[i] = domain.EvidenceInput{
			Type:        e.Type,
			ContentHash: e.ContentHash,
			URI:         e.URI,
			Payload:     e.Payload,
			Metadata:    e.Metadata,
		}
	}
	return domain.ActionSubmission{
		PlatformID:    r.PlatformID,
		ActionType:    r.ActionType,
		ActorID:       r.ActorID,
		TargetID:      r.TargetID,
		WalletAddress: r.WalletAddress,
		Metadata:      []byte(r.Metadata),
		Impact:        r.Impact,
		Integrity:     r.Integrity,
		Evidence:      evidence,
	}
}

// SubmitSignatureRequest represents the request body for POST /mint-requests/:id/signatures
type SubmitSignatureRequest struct {
	SignerID  string `json:"signer_id"`
	Signature string `json:"signature"`
}

func (r *SubmitSignatureRequest) Validate() error {
	if r.SignerID == "" {
		return fmt.Errorf("signer_id is required")
	}
	if r.Signature == "" {
		return fmt.Errorf("signature is required")
	}
	return nil
}

// CreatePolicyRequest represents the request body for POST /policies
type CreatePolicyRequest struct {
	Policy         domain.Policy     `json:"policy"`
	AttesterLabels map[string]string `json:"attester_labels,omitempty"`
	Reason         string            `json:"reason"`
}

func (r *CreatePolicyRequest) Validate() error {
	if r.Policy.Version == "" {
		return fmt.Errorf("policy.version is required")
	}
	return nil
}

// ActivatePolicyRequest represents the request body for POST /policies/:version/activate
type ActivatePolicyRequest struct {
	Reason string `json:"reason"`
}

// RegisterPolicyRequest represents the request body for POST /policies/:version/register
type RegisterPolicyRequest struct {
	ExternalRef string `json:"external_ref"`
}

func (r *RegisterPolicyRequest) Validate() error {
	if r.ExternalRef == "" {
		return fmt.Errorf("external_ref is required")
	}
	return nil
}

// AddAttesterRequest represents the request body for POST /policies/:version/attesters
type AddAttesterRequest struct {
	SignerID string `json:"signer_id"`
	Label    string `json:"label"`
	Reason   string `json:"reason"`
}

func (r *AddAttesterRequest) Validate() error {
	if r.SignerID == "" {
		return fmt.Errorf("signer_id is required")
	}
	return nil
}

// SetThresholdRequest represents the request body for PUT /policies/:version/threshold
type SetThresholdRequest struct {
	Threshold int    `json:"threshold"`
	Reason    string `json:"reason"`
}

func (r *SetThresholdRequest) Validate() error {
	if r.Threshold < 1 {
		return fmt.Errorf("threshold must be at least 1")
	}
	return nil
}
