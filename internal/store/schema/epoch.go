package schema

import (
	"time"

	"github.com/shopspring/decimal"
)

// Epoch represents the epochs table - the current issuance window for an epoch key
type Epoch struct {
	// EpochKey names the epoch series (e.g., "daily")
	EpochKey string `gorm:"column:epoch_key;primaryKey;type:text"`
	// Seq is the window number, incremented on every rollover
	Seq int64 `gorm:"column:seq;not null;default:0"`
	// StartedAt is the start of the current window, aligned to the duration grid
	StartedAt time.Time `gorm:"column:started_at;not null;type:timestamptz"`
	// DurationSeconds is the window length
	DurationSeconds int64 `gorm:"column:duration_seconds;not null"`
	// Minted is the total reserved amount in the current window
	Minted decimal.Decimal `gorm:"column:minted;not null;default:0;type:numeric(78,18)"`
	// UpdatedAt is the last change
	UpdatedAt time.Time `gorm:"column:updated_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the Epoch model
func (Epoch) TableName() string {
	return "epochs"
}

// EndsAt returns the end of the current window
func (e Epoch) EndsAt() time.Time {
	return e.StartedAt.Add(time.Duration(e.DurationSeconds) * time.Second)
}

// EpochUserTotal represents the epoch_user_totals table - per-user reserved totals within an epoch window
type EpochUserTotal struct {
	EpochKey string          `gorm:"column:epoch_key;primaryKey;type:text"`
	Seq      int64           `gorm:"column:seq;primaryKey"`
	UserID   string          `gorm:"column:user_id;primaryKey;type:text"`
	Minted   decimal.Decimal `gorm:"column:minted;not null;default:0;type:numeric(78,18)"`
}

// TableName specifies the table name for the EpochUserTotal model
func (EpochUserTotal) TableName() string {
	return "epoch_user_totals"
}

// Reservation represents the reservations table - an amount held against the epoch caps for one action
type Reservation struct {
	// ID is the internal database primary key
	ID int64 `gorm:"column:id;primaryKey;autoIncrement"`
	// ActionID is the action the amount is reserved for; at most one reservation per action
	ActionID string `gorm:"column:action_id;not null;uniqueIndex;type:text"`
	// EpochKey and Seq identify the window the amount counts against
	EpochKey string `gorm:"column:epoch_key;not null;type:text"`
	Seq      int64  `gorm:"column:seq;not null"`
	// UserID is the user the amount counts against
	UserID string `gorm:"column:user_id;not null;type:text"`
	// Amount is the reserved amount
	Amount decimal.Decimal `gorm:"column:amount;not null;type:numeric(78,18)"`
	// ReleasedAt is set once the reservation is released as compensation
	ReleasedAt *time.Time `gorm:"column:released_at;type:timestamptz"`
	// CreatedAt is when the reservation was made
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the Reservation model
func (Reservation) TableName() string {
	return "reservations"
}
