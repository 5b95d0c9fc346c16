package schema

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"

	"github.com/feral-file/pplp-engine/internal/domain"
)

// Action represents the actions table - the append-only record of submitted light actions
type Action struct {
	// ID is a ULID assigned at submission
	ID string `gorm:"column:id;primaryKey;type:text"`
	// PlatformID is the platform the action was submitted from
	PlatformID string `gorm:"column:platform_id;not null;type:text"`
	// ActionType is the union tag selecting the metadata schema and scoring heuristics
	ActionType domain.ActionType `gorm:"column:action_type;not null;type:text"`
	// ActorID is the user who performed the action
	ActorID string `gorm:"column:actor_id;not null;type:text;index"`
	// TargetID optionally identifies who or what the action was directed at
	TargetID *string `gorm:"column:target_id;type:text"`
	// WalletAddress is the settlement recipient; falls back to ActorID when nil
	WalletAddress *string `gorm:"column:wallet_address;type:text"`
	// Metadata is the flat scoring metadata as JSON
	Metadata datatypes.JSON `gorm:"column:metadata;not null;type:jsonb"`
	// Impact holds the impact descriptors as JSON
	Impact datatypes.JSON `gorm:"column:impact;not null;type:jsonb"`
	// Integrity holds the caller-reported integrity descriptors as JSON
	Integrity datatypes.JSON `gorm:"column:integrity;not null;type:jsonb"`
	// Status is the lifecycle state; only forward transitions are allowed
	Status domain.ActionStatus `gorm:"column:status;not null;type:text;index"`
	// RejectKind is the error kind that rejected the action
	RejectKind *domain.ErrorKind `gorm:"column:reject_kind;type:text"`
	// RejectReason is the reason attached when the action was rejected
	RejectReason *string `gorm:"column:reject_reason;type:text"`
	// EvidenceHash is the keccak256 of the sorted evidence content hashes
	EvidenceHash string `gorm:"column:evidence_hash;not null;type:text"`
	// ActionHash is the keccak256 of the canonical scoring inputs
	ActionHash string `gorm:"column:action_hash;not null;type:text"`
	// PolicyVersion is the policy the action was scored under
	PolicyVersion *string `gorm:"column:policy_version;type:text"`
	// CreatedAt is the submission time
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`
	// ScoredAt is when the score was recorded
	ScoredAt *time.Time `gorm:"column:scored_at;type:timestamptz"`
	// MintedAt is when the ledger confirmed the mint
	MintedAt *time.Time `gorm:"column:minted_at;type:timestamptz"`
	// UpdatedAt is the last status change
	UpdatedAt time.Time `gorm:"column:updated_at;not null;default:now();type:timestamptz"`

	// Associations
	Evidences []Evidence `gorm:"foreignKey:ActionID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the table name for the Action model
func (Action) TableName() string {
	return "actions"
}

// Recipient returns the settlement recipient for the action
func (a Action) Recipient() string {
	if a.WalletAddress != nil && *a.WalletAddress != "" {
		return *a.WalletAddress
	}
	return a.ActorID
}

// Evidence represents the evidences table - attachments backing an action
type Evidence struct {
	// ID is the internal database primary key
	ID int64 `gorm:"column:id;primaryKey;autoIncrement"`
	// ActionID is the owning action
	ActionID string `gorm:"column:action_id;not null;type:text;index"`
	// EvidenceType is the caller's evidence classification (e.g., "receipt", "photo")
	EvidenceType string `gorm:"column:evidence_type;not null;type:text"`
	// ContentHash is the hex SHA-256 of the payload
	ContentHash string `gorm:"column:content_hash;not null;type:text"`
	// URI is where the payload lives, if anywhere
	URI *string `gorm:"column:uri;type:text"`
	// MimeType is the sniffed payload type
	MimeType *string `gorm:"column:mime_type;type:text"`
	// SizeBytes is the payload size
	SizeBytes *int64 `gorm:"column:size_bytes"`
	// Verified is true when the engine hashed the payload itself and it matched ContentHash
	Verified bool `gorm:"column:verified;not null;default:false"`
	// Metadata is optional free-form metadata
	Metadata datatypes.JSON `gorm:"column:metadata;type:jsonb"`
	// CreatedAt is when the evidence was recorded
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the Evidence model
func (Evidence) TableName() string {
	return "evidences"
}

// Score represents the scores table - exactly one immutable row per scored action
type Score struct {
	// ActionID is the scored action, also the primary key
	ActionID string `gorm:"column:action_id;primaryKey;type:text"`
	// PillarS..PillarU are the five pillar values in [0,100]
	PillarS float64 `gorm:"column:pillar_s;not null"`
	PillarT float64 `gorm:"column:pillar_t;not null"`
	PillarH float64 `gorm:"column:pillar_h;not null"`
	PillarC float64 `gorm:"column:pillar_c;not null"`
	PillarU float64 `gorm:"column:pillar_u;not null"`
	// Quality is the Q multiplier in [1,3]
	Quality decimal.Decimal `gorm:"column:quality;not null;type:numeric(10,6)"`
	// Impact is the I multiplier in [1,5]
	Impact decimal.Decimal `gorm:"column:impact;not null;type:numeric(10,6)"`
	// Integrity is the K multiplier in [0,1]
	Integrity decimal.Decimal `gorm:"column:integrity;not null;type:numeric(10,6)"`
	// LightScore is the weighted pillar sum
	LightScore float64 `gorm:"column:light_score;not null"`
	// Decision is pass or fail
	Decision domain.Decision `gorm:"column:decision;not null;type:text"`
	// Reward is the final reward amount (zero on fail)
	Reward decimal.Decimal `gorm:"column:reward;not null;type:numeric(78,18)"`
	// PolicyVersion is the policy used
	PolicyVersion string `gorm:"column:policy_version;not null;type:text"`
	// Formula is the reward formula used
	Formula string `gorm:"column:formula;not null;type:text"`
	// CreatedAt is when the score was recorded
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the Score model
func (Score) TableName() string {
	return "scores"
}
