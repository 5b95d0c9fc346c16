// Package ledger submits attested mint requests to the settlement ledger and reads back their outcome
package ledger

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/feral-file/pplp-engine/internal/domain"
)

// SubmitRequest is an attested mint request serialized for the ledger
type SubmitRequest struct {
	// MintRequestID is the idempotency key of the submission
	MintRequestID string
	ActionHash    string
	Recipient     string
	// AmountUnits is the amount in ledger base units
	AmountUnits  decimal.Decimal
	EvidenceHash string
	Nonce        int64
	// Signatures are the 65-byte attester signatures, ordered by signer id
	Signatures [][]byte
}

// TxRef identifies a submitted ledger transaction
type TxRef struct {
	MintRequestID string `json:"mint_request_id"`
	TxHash        string `json:"tx_hash"`
}

// PollResult is the settlement state of a submitted transaction
type PollResult struct {
	Status      domain.TxStatus `json:"status"`
	BlockNumber uint64          `json:"block_number,omitempty"`
	// Failure describes a reverted transaction
	Failure *domain.LedgerError `json:"-"`
}

// Allocation is a recipient's vesting balances on the ledger, in ledger base units
type Allocation struct {
	Recipient string          `json:"recipient"`
	Locked    decimal.Decimal `json:"locked"`
	Activated decimal.Decimal `json:"activated"`
	Claimable decimal.Decimal `json:"claimable"`
}

// Ledger is the boundary to the external settlement ledger. It performs no business logic.
//
//go:generate mockgen -source=ledger.go -destination=../mocks/ledger.go -package=mocks -mock_names=Ledger=MockLedger
type Ledger interface {
	// Submit sends the request once. Repeated calls for the same mint request return the stored transaction.
	Submit(ctx context.Context, req SubmitRequest) (*TxRef, error)
	// Poll reports whether a submitted transaction is pending, confirmed or reverted
	Poll(ctx context.Context, ref TxRef) (*PollResult, error)
	// NonceUsed reports whether the ledger has already consumed a recipient nonce
	NonceUsed(ctx context.Context, recipient string, nonce int64) (bool, error)
	// Allocation reads a recipient's locked, activated and claimable balances
	Allocation(ctx context.Context, recipient string) (*Allocation, error)
}
