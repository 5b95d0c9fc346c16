package schema

import (
	"time"

	"github.com/feral-file/pplp-engine/internal/domain"
)

// Nonce represents the nonces table - the per-user issuance counter
type Nonce struct {
	// UserID is the nonce owner
	UserID string `gorm:"column:user_id;primaryKey;type:text"`
	// LastIssued is the highest nonce handed out; nonces are issued strictly increasing from 1
	LastIssued int64 `gorm:"column:last_issued;not null;default:0"`
}

// TableName specifies the table name for the Nonce model
func (Nonce) TableName() string {
	return "nonces"
}

// NonceUse represents the nonce_uses table - nonces that can no longer be used
type NonceUse struct {
	UserID string `gorm:"column:user_id;primaryKey;type:text"`
	Nonce  int64  `gorm:"column:nonce;primaryKey"`
	// State is consumed (accepted for settlement) or retired (its request failed)
	State domain.NonceState `gorm:"column:state;not null;type:text"`
	// Consumer identifies who consumed the nonce (the mint request id)
	Consumer string `gorm:"column:consumer;not null;default:'';type:text"`
	// Reason is recorded when the nonce is retired
	Reason string `gorm:"column:reason;not null;default:'';type:text"`
	// UsedAt is when the nonce was consumed or retired
	UsedAt time.Time `gorm:"column:used_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the NonceUse model
func (NonceUse) TableName() string {
	return "nonce_uses"
}
