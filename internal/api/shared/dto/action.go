package dto

import (
	"encoding/json"
	"time"

	"github.com/feral-file/pplp-engine/internal/domain"
	"github.com/feral-file/pplp-engine/internal/scoring"
	"github.com/feral-file/pplp-engine/internal/store/schema"
)

// EvidenceResponse represents a stored evidence item
type EvidenceResponse struct {
	Type        string          `json:"type"`
	ContentHash string          `json:"content_hash"`
	URI         *string         `json:"uri,omitempty"`
	MimeType    *string         `json:"mime_type,omitempty"`
	SizeBytes   *int64          `json:"size_bytes,omitempty"`
	Verified    bool            `json:"verified"`
	Metadata    json.RawMessage `json:"metadata,omitempty"`
}

// ActionResponse represents an action
type ActionResponse struct {
	ID            string              `json:"id"`
	PlatformID    string              `json:"platform_id"`
	ActionType    domain.ActionType   `json:"action_type"`
	ActorID       string              `json:"actor_id"`
	TargetID      *string             `json:"target_id,omitempty"`
	WalletAddress *string             `json:"wallet_address,omitempty"`
	Metadata      json.RawMessage     `json:"metadata"`
	Impact        json.RawMessage     `json:"impact"`
	Integrity     json.RawMessage     `json:"integrity"`
	Status        domain.ActionStatus `json:"status"`
	RejectKind    *domain.ErrorKind   `json:"reject_kind,omitempty"`
	RejectReason  *string             `json:"reject_reason,omitempty"`
	EvidenceHash  string              `json:"evidence_hash"`
	ActionHash    string              `json:"action_hash"`
	PolicyVersion *string             `json:"policy_version,omitempty"`
	Evidence      []EvidenceResponse  `json:"evidence"`
	CreatedAt     time.Time           `json:"created_at"`
	ScoredAt      *time.Time          `json:"scored_at,omitempty"`
	MintedAt      *time.Time          `json:"minted_at,omitempty"`
}

// MapActionToDTO maps a schema.Action to ActionResponse
func MapActionToDTO(a *schema.Action) *ActionResponse {
	dto := &ActionResponse{
		ID:            a.ID,
		PlatformID:    a.PlatformID,
		ActionType:    a.ActionType,
		ActorID:       a.ActorID,
		TargetID:      a.TargetID,
		WalletAddress: a.WalletAddress,
		Metadata:      json.RawMessage(a.Metadata),
		Impact:        json.RawMessage(a.Impact),
		Integrity:     json.RawMessage(a.Integrity),
		Status:        a.Status,
		RejectKind:    a.RejectKind,
		RejectReason:  a.RejectReason,
		EvidenceHash:  a.EvidenceHash,
		ActionHash:    a.ActionHash,
		PolicyVersion: a.PolicyVersion,
		Evidence:      make([]EvidenceResponse, len(a.Evidences)),
		CreatedAt:     a.CreatedAt,
		ScoredAt:      a.ScoredAt,
		MintedAt:      a.MintedAt,
	}
	for i, e := range a.Evidences {
		dto.Evidence[i] = EvidenceResponse{
			Type:        e.EvidenceType,
			ContentHash: e.ContentHash,
			URI:         e.URI,
			MimeType:    e.MimeType,
			SizeBytes:   e.SizeBytes,
			Verified:    e.Verified,
		}
		if e.Metadata != nil {
			dto.Evidence[i].Metadata = json.RawMessage(e.Metadata)
		}
	}
	return dto
}

// ScoreResponse represents the score of an action
type ScoreResponse struct {
	ActionID      string              `json:"action_id"`
	Pillars       domain.PillarValues `json:"pillars"`
	Quality       string              `json:"quality"`
	Impact        string              `json:"impact"`
	Integrity     string              `json:"integrity"`
	LightScore    float64             `json:"light_score"`
	Decision      domain.Decision     `json:"decision"`
	Reward        string              `json:"reward"`
	PolicyVersion string              `json:"policy_version"`
	Formula       string              `json:"formula"`
	CreatedAt     time.Time           `json:"created_at"`
}

// MapScoreToDTO maps a schema.Score to ScoreResponse
func MapScoreToDTO(s *schema.Score) *ScoreResponse {
	return &ScoreResponse{
		ActionID: s.ActionID,
		Pillars: domain.PillarValues{
			S: s.PillarS,
			T: s.PillarT,
			H: s.PillarH,
			C: s.PillarC,
			U: s.PillarU,
		},
		Quality:       s.Quality.String(),
		Impact:        s.Impact.String(),
		Integrity:     s.Integrity.String(),
		LightScore:    s.LightScore,
		Decision:      s.Decision,
		Reward:        s.Reward.String(),
		PolicyVersion: s.PolicyVersion,
		Formula:       s.Formula,
		CreatedAt:     s.CreatedAt,
	}
}

// ProcessResponse represents the outcome of scoring an action
type ProcessResponse struct {
	Action      *ActionResponse      `json:"action"`
	Score       *ScoreResponse       `json:"score"`
	FailedGates []scoring.Gate       `json:"failed_gates,omitempty"`
	MintRequest *MintRequestResponse `json:"mint_request,omitempty"`
}
