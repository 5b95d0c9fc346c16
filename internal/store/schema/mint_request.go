package schema

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/feral-file/pplp-engine/internal/domain"
)

// MintRequest represents the mint_requests table - the attestation and settlement record of one passing action
type MintRequest struct {
	// ID is a ULID
	ID string `gorm:"column:id;primaryKey;type:text"`
	// ActionID is the scored action; at most one mint request per action
	ActionID string `gorm:"column:action_id;not null;uniqueIndex;type:text"`
	// UserID is the actor the nonce and caps belong to
	UserID string `gorm:"column:user_id;not null;type:text"`
	// Recipient is the wallet receiving the issuance
	Recipient string `gorm:"column:recipient;not null;type:text"`
	// Amount is the reward in issuance units
	Amount decimal.Decimal `gorm:"column:amount;not null;type:numeric(78,18)"`
	// AmountUnits is the amount in ledger base units
	AmountUnits decimal.Decimal `gorm:"column:amount_units;not null;type:numeric(78,0)"`
	// Nonce is the per-user nonce bound into the payload
	Nonce int64 `gorm:"column:nonce;not null"`
	// ActionHash and EvidenceHash are the 0x-hex bytes32 values bound into the payload
	ActionHash   string `gorm:"column:action_hash;not null;type:text"`
	EvidenceHash string `gorm:"column:evidence_hash;not null;type:text"`
	// PayloadHash is the keccak256 digest attesters sign
	PayloadHash string `gorm:"column:payload_hash;not null;type:text"`
	// PolicyVersion is the policy snapshot of the request
	PolicyVersion string `gorm:"column:policy_version;not null;type:text"`
	// Threshold is the signature threshold snapshotted at creation
	Threshold int `gorm:"column:threshold;not null"`
	// ReservationID is the epoch reservation backing the amount
	ReservationID int64 `gorm:"column:reservation_id;not null"`
	// Status is the settlement lifecycle state
	Status domain.MintStatus `gorm:"column:status;not null;type:text;index"`
	// FailureKind and FailureReason describe why a failed request failed
	FailureKind   *domain.ErrorKind `gorm:"column:failure_kind;type:text"`
	FailureReason *string           `gorm:"column:failure_reason;type:text"`
	// TxHash is the ledger transaction once submitted
	TxHash *string `gorm:"column:tx_hash;type:text"`
	// Timestamps of each lifecycle step
	CreatedAt      time.Time  `gorm:"column:created_at;not null;default:now();type:timestamptz"`
	ThresholdMetAt *time.Time `gorm:"column:threshold_met_at;type:timestamptz"`
	SubmittedAt    *time.Time `gorm:"column:submitted_at;type:timestamptz"`
	SettledAt      *time.Time `gorm:"column:settled_at;type:timestamptz"`
	UpdatedAt      time.Time  `gorm:"column:updated_at;not null;default:now();type:timestamptz"`

	// Associations
	Signatures []MintSignature `gorm:"foreignKey:MintRequestID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the table name for the MintRequest model
func (MintRequest) TableName() string {
	return "mint_requests"
}

// MintSignature represents the mint_signatures table - one accepted attester signature per signer per request
type MintSignature struct {
	MintRequestID string `gorm:"column:mint_request_id;primaryKey;type:text"`
	// SignerID is the attester address, lowercase 0x-hex
	SignerID string `gorm:"column:signer_id;primaryKey;type:text"`
	// Signature is the 65-byte secp256k1 signature, 0x-hex
	Signature string `gorm:"column:signature;not null;type:text"`
	// AcceptedAt is when the signature was stored
	AcceptedAt time.Time `gorm:"column:accepted_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the MintSignature model
func (MintSignature) TableName() string {
	return "mint_signatures"
}

// LedgerSubmission represents the ledger_submissions table - the idempotency record of a ledger submission
type LedgerSubmission struct {
	// MintRequestID is the idempotency key
	MintRequestID string `gorm:"column:mint_request_id;primaryKey;type:text"`
	// TxHash is the submitted transaction hash
	TxHash string `gorm:"column:tx_hash;not null;type:text"`
	// RawTx is the signed transaction, 0x-hex, kept for rebroadcast
	RawTx string `gorm:"column:raw_tx;not null;type:text"`
	// SenderNonce is the operator account nonce used
	SenderNonce int64 `gorm:"column:sender_nonce;not null"`
	// SubmittedAt is when the transaction was first sent
	SubmittedAt time.Time `gorm:"column:submitted_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the LedgerSubmission model
func (LedgerSubmission) TableName() string {
	return "ledger_submissions"
}
