package dto

import (
	"time"

	"github.com/feral-file/pplp-engine/internal/domain"
	"github.com/feral-file/pplp-engine/internal/store/schema"
)

// SignatureResponse represents an accepted attester signature
type SignatureResponse struct {
	SignerID   string    `json:"signer_id"`
	Signature  string    `json:"signature"`
	AcceptedAt time.Time `json:"accepted_at"`
}

// MintRequestResponse represents a mint request
type MintRequestResponse struct {
	ID             string              `json:"id"`
	ActionID       string              `json:"action_id"`
	UserID         string              `json:"user_id"`
	Recipient      string              `json:"recipient"`
	Amount         string              `json:"amount"`
	AmountUnits    string              `json:"amount_units"`
	Nonce          int64               `json:"nonce"`
	ActionHash     string              `json:"action_hash"`
	EvidenceHash   string              `json:"evidence_hash"`
	PayloadHash    string              `json:"payload_hash"`
	PolicyVersion  string              `json:"policy_version"`
	Threshold      int                 `json:"threshold"`
	Status         domain.MintStatus   `json:"status"`
	FailureKind    *domain.ErrorKind   `json:"failure_kind,omitempty"`
	FailureReason  *string             `json:"failure_reason,omitempty"`
	TxHash         *string             `json:"tx_hash,omitempty"`
	Signatures     []SignatureResponse `json:"signatures"`
	CreatedAt      time.Time           `json:"created_at"`
	ThresholdMetAt *time.Time          `json:"threshold_met_at,omitempty"`
	SubmittedAt    *time.Time          `json:"submitted_at,omitempty"`
	SettledAt      *time.Time          `json:"settled_at,omitempty"`
}

// MapMintRequestToDTO maps a schema.MintRequest to MintRequestResponse
func MapMintRequestToDTO(m *schema.MintRequest) *MintRequestResponse {
	dto := &MintRequestResponse{
		ID:             m.ID,
		ActionID:       m.ActionID,
		UserID:         m.UserID,
		Recipient:      m.Recipient,
		Amount:         m.Amount.String(),
		AmountUnits:    m.AmountUnits.String(),
		Nonce:          m.Nonce,
		ActionHash:     m.ActionHash,
		EvidenceHash:   m.EvidenceHash,
		PayloadHash:    m.PayloadHash,
		PolicyVersion:  m.PolicyVersion,
		Threshold:      m.Threshold,
		Status:         m.Status,
		FailureKind:    m.FailureKind,
		FailureReason:  m.FailureReason,
		TxHash:         m.TxHash,
		Signatures:     make([]SignatureResponse, len(m.Signatures)),
		CreatedAt:      m.CreatedAt,
		ThresholdMetAt: m.ThresholdMetAt,
		SubmittedAt:    m.SubmittedAt,
		SettledAt:      m.SettledAt,
	}
	for i, s := range m.Signatures {
		dto.Signatures[i] = SignatureResponse{
			SignerID:   s.SignerID,
			Signature:  s.Signature,
			AcceptedAt: s.AcceptedAt,
		}
	}
	return dto
}
