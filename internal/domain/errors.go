package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// ErrorKind classifies engine errors for persistence and presentation
type ErrorKind string

const (
	ErrorKindValidation    ErrorKind = "validation"
	ErrorKindPolicy        ErrorKind = "policy"
	ErrorKindCapacity      ErrorKind = "capacity"
	ErrorKindAttestation   ErrorKind = "attestation"
	ErrorKindReplay        ErrorKind = "replay"
	ErrorKindLedger        ErrorKind = "ledger"
	ErrorKindLedgerTimeout ErrorKind = "ledger_timeout"
)

var (
	// ErrNotFound is returned when a requested record does not exist
	ErrNotFound = errors.New("not found")

	// ErrNoActivePolicy is returned when no policy is active. Callers must fail closed.
	ErrNoActivePolicy = errors.New("no active policy")

	// ErrPolicyExists is returned when creating a policy whose version is already taken
	ErrPolicyExists = errors.New("policy version already exists")

	// ErrAlreadyScored is returned when scoring an action that already has a score
	ErrAlreadyScored = errors.New("action already scored")

	// ErrInvalidTransition is returned for any backward or skipping status transition
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrUnknownActionType is returned for action types the scoring engine does not know
	ErrUnknownActionType = errors.New("unknown action type")

	// ErrMissingEvidence is returned when metadata claims evidence but none is attached
	ErrMissingEvidence = errors.New("evidence required but missing")

	// ErrEvidenceHashMismatch is returned when an evidence payload does not hash to its declared hash
	ErrEvidenceHashMismatch = errors.New("evidence content hash mismatch")

	// ErrCapExceeded is returned when a reservation would exceed the epoch or per-user cap
	ErrCapExceeded = errors.New("cap exceeded")

	// ErrDuplicateSigner is returned when a signer already contributed to a mint request
	ErrDuplicateSigner = errors.New("duplicate signer")

	// ErrInvalidSignature is returned when a signature does not verify against the canonical payload
	ErrInvalidSignature = errors.New("invalid signature")

	// ErrAttesterExists is returned when registering an attester that is already active for the policy version
	ErrAttesterExists = errors.New("attester already registered")

	// ErrAttesterNotRegistered is returned when the signer is not an active attester of the request's policy
	ErrAttesterNotRegistered = errors.New("attester not registered")

	// ErrMintRequestClosed is returned when a signature arrives for a failed or settled request
	ErrMintRequestClosed = errors.New("mint request closed")

	// ErrNonceStale is returned for nonces never issued to the user or retired by a failed request
	ErrNonceStale = errors.New("stale nonce")

	// ErrNonceAlreadyUsed is returned when a nonce was already consumed
	ErrNonceAlreadyUsed = errors.New("nonce already used")

	// ErrRateLimited is returned when an actor exceeds the submission rate
	ErrRateLimited = errors.New("rate limited")
)

// ValidationError reports a malformed submission field
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("validation failed: %s", e.Reason)
	}
	return fmt.Sprintf("validation failed: %s: %s", e.Field, e.Reason)
}

// NewValidationError creates a validation error for a field
func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

// PolicyError reports a malformed policy. Policies failing validation are never activated.
type PolicyError struct {
	Version string
	Reason  string
}

func (e *PolicyError) Error() string {
	return fmt.Sprintf("invalid policy %s: %s", e.Version, e.Reason)
}

// CapKind names which cap rejected a reservation
type CapKind string

const (
	CapKindEpoch CapKind = "epoch"
	CapKindUser  CapKind = "user_epoch"
)

// CapExceededError carries the numbers behind a rejected reservation
type CapExceededError struct {
	Cap       CapKind
	Limit     decimal.Decimal
	Current   decimal.Decimal
	Requested decimal.Decimal
}

func (e *CapExceededError) Error() string {
	return fmt.Sprintf("%s cap exceeded: current %s + requested %s > limit %s",
		e.Cap, e.Current.String(), e.Requested.String(), e.Limit.String())
}

func (e *CapExceededError) Unwrap() error {
	return ErrCapExceeded
}

// LedgerErrorKind distinguishes retryable ledger failures from permanent ones
type LedgerErrorKind string

const (
	LedgerErrorTransient     LedgerErrorKind = "transient"
	LedgerErrorSemantic      LedgerErrorKind = "semantic"
	LedgerErrorNonceConsumed LedgerErrorKind = "nonce_consumed"
)

// LedgerError is returned by the ledger adapter
type LedgerError struct {
	Kind   LedgerErrorKind
	Reason string
	Err    error
}

func (e *LedgerError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("ledger %s error: %s: %v", e.Kind, e.Reason, e.Err)
	}
	return fmt.Sprintf("ledger %s error: %s", e.Kind, e.Reason)
}

func (e *LedgerError) Unwrap() error {
	return e.Err
}

// Retryable reports whether the failure may succeed on retry
func (e *LedgerError) Retryable() bool {
	return e.Kind == LedgerErrorTransient
}

// KindOf maps an error to its taxonomy kind. The second result is false for unclassified errors.
func KindOf(err error) (ErrorKind, bool) {
	var validationErr *ValidationError
	var policyErr *PolicyError
	var ledgerErr *LedgerError

	switch {
	case err == nil:
		return "", false
	case errors.As(err, &validationErr),
		errors.Is(err, ErrUnknownActionType),
		errors.Is(err, ErrMissingEvidence),
		errors.Is(err, ErrEvidenceHashMismatch):
		return ErrorKindValidation, true
	case errors.As(err, &policyErr), errors.Is(err, ErrNoActivePolicy):
		return ErrorKindPolicy, true
	case errors.Is(err, ErrCapExceeded):
		return ErrorKindCapacity, true
	case errors.Is(err, ErrDuplicateSigner),
		errors.Is(err, ErrInvalidSignature),
		errors.Is(err, ErrAttesterExists),
		errors.Is(err, ErrAttesterNotRegistered):
		return ErrorKindAttestation, true
	case errors.Is(err, ErrNonceStale), errors.Is(err, ErrNonceAlreadyUsed):
		return ErrorKindReplay, true
	case errors.As(err, &ledgerErr):
		if ledgerErr.Kind == LedgerErrorNonceConsumed {
			return ErrorKindReplay, true
		}
		return ErrorKindLedger, true
	}
	return "", false
}
