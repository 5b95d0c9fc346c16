package schema

import (
	"time"

	"gorm.io/datatypes"

	"github.com/feral-file/pplp-engine/internal/domain"
)

// Policy represents the policies table - immutable, versioned scoring and issuance configurations
type Policy struct {
	// ID is the internal database primary key
	ID int64 `gorm:"column:id;primaryKey;autoIncrement"`
	// Version is the semantic version of the policy (e.g., "1.2.0"), unique across all policies
	Version string `gorm:"column:version;not null;uniqueIndex;type:text"`
	// ContentHash is the keccak256 of the canonical (JCS) policy document, 0x-prefixed hex
	ContentHash string `gorm:"column:content_hash;not null;type:text"`
	// Document is the full policy document as JSON
	Document datatypes.JSON `gorm:"column:document;not null;type:jsonb"`
	// SignatureThreshold is the number of distinct attester signatures required for this policy version
	SignatureThreshold int `gorm:"column:signature_threshold;not null"`
	// IsActive marks the single active policy (enforced by a partial unique index)
	IsActive bool `gorm:"column:is_active;not null;default:false"`
	// ExternalRef is the reference returned when the policy hash was registered with the ledger
	ExternalRef *string `gorm:"column:external_ref;type:text"`
	// CreatedBy is the actor who created the policy
	CreatedBy string `gorm:"column:created_by;not null;type:text"`
	// CreatedAt is the timestamp when the policy was created
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`
	// ActivatedAt is the timestamp of the most recent activation
	ActivatedAt *time.Time `gorm:"column:activated_at;type:timestamptz"`
	// RegisteredAt is the timestamp when the policy hash was registered externally
	RegisteredAt *time.Time `gorm:"column:registered_at;type:timestamptz"`
}

// TableName specifies the table name for the Policy model
func (Policy) TableName() string {
	return "policies"
}

// PolicyChange represents the policy_changes table - append-only, hash-chained audit trail of policy mutations
type PolicyChange struct {
	// ID is an auto-incrementing sequence number, also the chain order
	ID int64 `gorm:"column:id;primaryKey;autoIncrement"`
	// PolicyVersion is the policy the change applies to
	PolicyVersion string `gorm:"column:policy_version;not null;type:text;index"`
	// ChangeType identifies the mutation
	ChangeType domain.PolicyChangeType `gorm:"column:change_type;not null;type:text"`
	// Field is the changed field, when the mutation touches a single field
	Field string `gorm:"column:field;not null;default:'';type:text"`
	// OldValue is the previous value (empty when there was none)
	OldValue string `gorm:"column:old_value;not null;default:'';type:text"`
	// NewValue is the new value
	NewValue string `gorm:"column:new_value;not null;default:'';type:text"`
	// Actor is who made the change
	Actor string `gorm:"column:actor;not null;type:text"`
	// Reason is the free-text justification
	Reason string `gorm:"column:reason;not null;default:'';type:text"`
	// ChangedAt is when the change was made
	ChangedAt time.Time `gorm:"column:changed_at;not null;type:timestamptz"`
	// PrevHash is the entry hash of the previous change (empty for the first)
	PrevHash string `gorm:"column:prev_hash;not null;default:'';type:text"`
	// EntryHash chains this change to PrevHash
	EntryHash string `gorm:"column:entry_hash;not null;uniqueIndex;type:text"`
	// StreamedAt is when the change was delivered to the audit stream
	StreamedAt *time.Time `gorm:"column:streamed_at;type:timestamptz"`
	// StreamError is the last streaming error, if any
	StreamError *string `gorm:"column:stream_error;type:text"`
	// StreamAttempts counts delivery attempts
	StreamAttempts int `gorm:"column:stream_attempts;not null;default:0"`
}

// TableName specifies the table name for the PolicyChange model
func (PolicyChange) TableName() string {
	return "policy_changes"
}

// Attester represents the attesters table - the attester registry, scoped per policy version
type Attester struct {
	// PolicyVersion is the policy version this registration belongs to
	PolicyVersion string `gorm:"column:policy_version;primaryKey;type:text"`
	// SignerID is the attester's EVM address, lowercase 0x-hex
	SignerID string `gorm:"column:signer_id;primaryKey;type:text"`
	// Label is a human readable name
	Label string `gorm:"column:label;not null;default:'';type:text"`
	// AddedBy is the actor who registered the attester
	AddedBy string `gorm:"column:added_by;not null;type:text"`
	// AddedAt is when the attester was registered
	AddedAt time.Time `gorm:"column:added_at;not null;type:timestamptz"`
	// RevokedAt is when the registration was revoked; nil while active
	RevokedAt *time.Time `gorm:"column:revoked_at;type:timestamptz"`
	// RevokedBy is the actor who revoked the registration
	RevokedBy *string `gorm:"column:revoked_by;type:text"`
}

// TableName specifies the table name for the Attester model
func (Attester) TableName() string {
	return "attesters"
}

// Active reports whether the registration is not revoked
func (a Attester) Active() bool {
	return a.RevokedAt == nil
}
