// Package audit implements the tamper-evident policy change trail: every change row is chained to its
// predecessor by entry_hash = keccak256(prev_hash || JCS(entry)).
package audit

import (
	"fmt"
	"time"

	"github.com/ethereum/go-ethereum/common/hexutil"

	"github.com/feral-file/pplp-engine/internal/canonical"
	"github.com/feral-file/pplp-engine/internal/store/schema"
)

// Entry is the hashed content of a policy change row
type Entry struct {
	PolicyVersion string `json:"policy_version"`
	ChangeType    string `json:"change_type"`
	Field         string `json:"field"`
	OldValue      string `json:"old_value"`
	NewValue      string `json:"new_value"`
	Actor         string `json:"actor"`
	Reason        string `json:"reason"`
	ChangedAt     string `json:"changed_at"`
}

// NormalizeTime truncates t to the database's timestamp precision so that hashes computed before insert
// match hashes recomputed from stored rows
func NormalizeTime(t time.Time) time.Time {
	return t.UTC().Truncate(time.Microsecond)
}

// EntryOf extracts the hashed content of a change row
func EntryOf(c schema.PolicyChange) Entry {
	return Entry{
		PolicyVersion: c.PolicyVersion,
		ChangeType:    string(c.ChangeType),
		Field:         c.Field,
		OldValue:      c.OldValue,
		NewValue:      c.NewValue,
		Actor:         c.Actor,
		Reason:        c.Reason,
		ChangedAt:     NormalizeTime(c.ChangedAt).Format(time.RFC3339Nano),
	}
}

// EntryHash computes the chained hash of an entry
func EntryHash(prevHash string, entry Entry) (string, error) {
	var prev []byte
	if prevHash != "" {
		b, err := hexutil.Decode(prevHash)
		if err != nil {
			return "", fmt.Errorf("invalid previous hash %q: %w", prevHash, err)
		}
		prev = b
	}
	body, err := canonical.Marshal(entry)
	if err != nil {
		return "", err
	}
	return canonical.Keccak256Hex(prev, body), nil
}

// Seal fills PrevHash and EntryHash of c given the hash of the previous row
func Seal(prevHash string, c *schema.PolicyChange) error {
	c.ChangedAt = NormalizeTime(c.ChangedAt)
	h, err := EntryHash(prevHash, EntryOf(*c))
	if err != nil {
		return err
	}
	c.PrevHash = prevHash
	c.EntryHash = h
	return nil
}

// Violation describes the first broken link found in a chain
type Violation struct {
	ChangeID int64  `json:"change_id"`
	Reason   string `json:"reason"`
}

// Verification is the result of verifying a chain
type Verification struct {
	Valid     bool       `json:"valid"`
	Checked   int        `json:"checked"`
	HeadHash  string     `json:"head_hash,omitempty"`
	Violation *Violation `json:"violation,omitempty"`
}

// VerifyChain recomputes every link of a chain given in id order, starting from the first row
func VerifyChain(changes []schema.PolicyChange) Verification {
	prev := ""
	for i, c := range changes {
		if c.PrevHash != prev {
			return Verification{
				Checked:   i,
				Violation: &Violation{ChangeID: c.ID, Reason: "previous hash does not match the preceding entry"},
			}
		}
		h, err := EntryHash(prev, EntryOf(c))
		if err != nil {
			return Verification{Checked: i, Violation: &Violation{ChangeID: c.ID, Reason: err.Error()}}
		}
		if h != c.EntryHash {
			return Verification{
				Checked:   i,
				Violation: &Violation{ChangeID: c.ID, Reason: "entry hash does not match the entry content"},
			}
		}
		prev = c.EntryHash
	}
	return Verification{Valid: true, Checked: len(changes), HeadHash: prev}
}
