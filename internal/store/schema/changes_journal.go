package schema

import (
	"time"

	"gorm.io/datatypes"
)

// SubjectType represents the type of entity that was changed
type SubjectType string

const (
	// SubjectTypeAction indicates an action status change (submitted, scored, minted, rejected)
	SubjectTypeAction SubjectType = "action"
	// SubjectTypeMintRequest indicates a mint request status change
	SubjectTypeMintRequest SubjectType = "mint_request"
	// SubjectTypePolicy indicates a policy activation or registration
	SubjectTypePolicy SubjectType = "policy"
)

// ChangesJournal represents the changes_journal table - ordered log of every status transition in the engine
type ChangesJournal struct {
	// Cursor is an auto-incrementing sequence number for efficient pagination and ordering
	Cursor int64 `gorm:"column:\"cursor\";primaryKey;autoIncrement"`
	// SubjectType identifies what kind of entity changed (action, mint_request, policy)
	SubjectType SubjectType `gorm:"column:subject_type;not null;type:text"`
	// SubjectID is the identifier of the changed entity (action id, mint request id or policy version)
	SubjectID string `gorm:"column:subject_id;not null;type:text"`
	// ChangedAt is the timestamp when the change occurred
	ChangedAt time.Time `gorm:"column:changed_at;not null;default:now();type:timestamptz"`
	// Meta contains the transition as JSON (see StatusChangeMeta)
	Meta datatypes.JSON `gorm:"column:meta;type:jsonb"`
}

// TableName specifies the table name for the ChangesJournal model
func (ChangesJournal) TableName() string {
	return "changes_journal"
}

// StatusChangeMeta is the journal meta for a status transition
type StatusChangeMeta struct {
	From   string `json:"from,omitempty"`
	To     string `json:"to"`
	Reason string `json:"reason,omitempty"`
}
