package store

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/feral-file/pplp-engine/internal/domain"
	"github.com/feral-file/pplp-engine/internal/store/schema"
)

//go:generate mockgen -source=store.go -destination=../mocks/store.go -package=mocks -mock_names=Store=MockStore

// Store defines the interface for database operations
type Store interface {
	// =============================================================================
	// Policies
	// =============================================================================

	// CreatePolicy inserts a new policy version with its initial attesters and audit rows in a single transaction.
	// Returns domain.ErrPolicyExists when the version is taken.
	CreatePolicy(ctx context.Context, input CreatePolicyInput) (*schema.Policy, error)
	// ActivatePolicy makes the given version the only active policy in a single transaction
	ActivatePolicy(ctx context.Context, input ActivatePolicyInput) (*schema.Policy, error)
	// RegisterPolicy records the external registration of a policy's content hash
	RegisterPolicy(ctx context.Context, input RegisterPolicyInput) (*schema.Policy, error)
	// GetActivePolicy retrieves the active policy, nil when none is active
	GetActivePolicy(ctx context.Context) (*schema.Policy, error)
	// GetPolicyByVersion retrieves a policy by version, nil when it does not exist
	GetPolicyByVersion(ctx context.Context, version string) (*schema.Policy, error)
	// ListPolicies retrieves all policies in creation order
	ListPolicies(ctx context.Context) ([]schema.Policy, error)
	// ListPolicyChanges retrieves audit rows in chain order
	ListPolicyChanges(ctx context.Context, filter PolicyChangesFilter) ([]schema.PolicyChange, uint64, error)
	// GetUnstreamedPolicyChanges retrieves audit rows not yet delivered to the audit stream, in chain order
	GetUnstreamedPolicyChanges(ctx context.Context, limit int) ([]schema.PolicyChange, error)
	// MarkPolicyChangeStreamed records a successful audit stream delivery
	MarkPolicyChangeStreamed(ctx context.Context, id int64, streamedAt time.Time) error
	// MarkPolicyChangeStreamFailed records a failed audit stream delivery attempt
	MarkPolicyChangeStreamFailed(ctx context.Context, id int64, reason string) error

	// =============================================================================
	// Attesters
	// =============================================================================

	// AddAttester registers (or re-activates) an attester for a policy version
	AddAttester(ctx context.Context, input AddAttesterInput) (*schema.Attester, error)
	// RevokeAttester revokes an attester registration
	RevokeAttester(ctx context.Context, input RevokeAttesterInput) error
	// SetSignatureThreshold changes the signature threshold of a policy version
	SetSignatureThreshold(ctx context.Context, input SetSignatureThresholdInput) error
	// GetAttester retrieves a registration, nil when it does not exist
	GetAttester(ctx context.Context, policyVersion, signerID string) (*schema.Attester, error)
	// ListAttesters retrieves the registrations of a policy version
	ListAttesters(ctx context.Context, policyVersion string, activeOnly bool) ([]schema.Attester, error)

	// =============================================================================
	// Actions
	// =============================================================================

	// CreateAction inserts a pending action with its evidences and a journal row in a single transaction
	CreateAction(ctx context.Context, action *schema.Action) error
	// GetActionByID retrieves an action with its evidences, nil when it does not exist
	GetActionByID(ctx context.Context, id string) (*schema.Action, error)
	// ListPendingActions retrieves pending actions created before the given time, oldest first
	ListPendingActions(ctx context.Context, createdBefore time.Time, limit int) ([]schema.Action, error)
	// RecordScore writes the single score of an action and moves it to scored.
	// Returns domain.ErrAlreadyScored when a score exists.
	RecordScore(ctx context.Context, input RecordScoreInput) error
	// GetScore retrieves the score of an action, nil when it has none
	GetScore(ctx context.Context, actionID string) (*schema.Score, error)
	// RejectAction moves an action to rejected
	RejectAction(ctx context.Context, input RejectActionInput) error

	// =============================================================================
	// Epoch caps
	// =============================================================================

	// ReserveEpochCap atomically reserves an amount against the epoch and per-user caps.
	// Returns *domain.CapExceededError when either cap would be exceeded. Idempotent per action.
	ReserveEpochCap(ctx context.Context, input ReserveEpochCapInput) (*schema.Reservation, error)
	// ReleaseReservation returns a reservation's amount to both caps once
	ReleaseReservation(ctx context.Context, reservationID int64, releasedAt time.Time) error
	// GetEpoch retrieves an epoch row, nil when the key was never used
	GetEpoch(ctx context.Context, epochKey string) (*schema.Epoch, error)
	// GetEpochUserTotal retrieves a user's total within an epoch window, nil when the user has none
	GetEpochUserTotal(ctx context.Context, epochKey string, seq int64, userID string) (*schema.EpochUserTotal, error)
	// GetReservationByActionID retrieves the reservation of an action, nil when it has none
	GetReservationByActionID(ctx context.Context, actionID string) (*schema.Reservation, error)

	// =============================================================================
	// Nonces
	// =============================================================================

	// NextNonce issues the next nonce for a user. The first nonce is 1.
	NextNonce(ctx context.Context, userID string) (int64, error)
	// ConsumeNonce marks a nonce consumed by consumer.
	// Returns domain.ErrNonceStale or domain.ErrNonceAlreadyUsed; repeated consumption by the same consumer succeeds.
	ConsumeNonce(ctx context.Context, input ConsumeNonceInput) error
	// RetireNonce marks a nonce permanently unusable
	RetireNonce(ctx context.Context, input RetireNonceInput) error

	// =============================================================================
	// Mint requests
	// =============================================================================

	// CreateMintRequest inserts a collecting mint request. When one already exists for the action it is
	// returned with created=false.
	CreateMintRequest(ctx context.Context, request *schema.MintRequest) (*schema.MintRequest, bool, error)
	// GetMintRequestByID retrieves a mint request with its signatures, nil when it does not exist
	GetMintRequestByID(ctx context.Context, id string) (*schema.MintRequest, error)
	// GetMintRequestByActionID retrieves the mint request of an action, nil when it has none
	GetMintRequestByActionID(ctx context.Context, actionID string) (*schema.MintRequest, error)
	// ListStaleMintRequests retrieves requests in status not updated since updatedBefore, oldest first
	ListStaleMintRequests(ctx context.Context, status domain.MintStatus, updatedBefore time.Time, limit int) ([]schema.MintRequest, error)
	// AddMintSignature stores an attester signature and flips the request to threshold_met on first reach
	AddMintSignature(ctx context.Context, input AddMintSignatureInput) (*AddMintSignatureResult, error)
	// TransitionMintRequest moves a request from one status to the next (compare-and-set)
	TransitionMintRequest(ctx context.Context, input TransitionMintRequestInput) (*schema.MintRequest, error)
	// ConfirmMintRequest marks a request confirmed and its action minted in a single transaction
	ConfirmMintRequest(ctx context.Context, input ConfirmMintRequestInput) error
	// FailMintRequest marks a request failed and applies the requested compensations in a single transaction
	FailMintRequest(ctx context.Context, input FailMintRequestInput) error
	// GetLedgerSubmission retrieves the ledger submission of a request, nil when it was never submitted
	GetLedgerSubmission(ctx context.Context, mintRequestID string) (*schema.LedgerSubmission, error)
	// SaveLedgerSubmission stores a ledger submission if absent and returns the stored row
	SaveLedgerSubmission(ctx context.Context, submission *schema.LedgerSubmission) (*schema.LedgerSubmission, error)

	// =============================================================================
	// Changes journal
	// =============================================================================

	// GetChanges retrieves changes with optional filters and pagination
	GetChanges(ctx context.Context, filter ChangesQueryFilter) ([]*schema.ChangesJournal, uint64, error)
}

// AttesterInput is an attester registered together with a new policy
type AttesterInput struct {
	SignerID string
	Label    string
}

// CreatePolicyInput represents the data needed to create a policy version
type CreatePolicyInput struct {
	Version            string
	ContentHash        string
	Document           []byte
	SignatureThreshold int
	Attesters          []AttesterInput
	Actor              string
	Reason             string
	CreatedAt          time.Time
}

// ActivatePolicyInput represents the data needed to activate a policy version
type ActivatePolicyInput struct {
	Version     string
	Actor       string
	Reason      string
	ActivatedAt time.Time
}

// RegisterPolicyInput represents an external registration of a policy hash
type RegisterPolicyInput struct {
	Version      string
	ExternalRef  string
	Actor        string
	RegisteredAt time.Time
}

// PolicyChangesFilter represents filters for policy change queries
type PolicyChangesFilter struct {
	PolicyVersion string
	ChangeTypes   []domain.PolicyChangeType
	Limit         int
	Offset        uint64
}

// AddAttesterInput represents the data needed to register an attester
type AddAttesterInput struct {
	PolicyVersion string
	SignerID      string
	Label         string
	Actor         string
	Reason        string
	AddedAt       time.Time
}

// RevokeAttesterInput represents the data needed to revoke an attester
type RevokeAttesterInput struct {
	PolicyVersion string
	SignerID      string
	Actor         string
	Reason        string
	RevokedAt     time.Time
}

// SetSignatureThresholdInput represents a signature threshold change
type SetSignatureThresholdInput struct {
	PolicyVersion string
	Threshold     int
	Actor         string
	Reason        string
	ChangedAt     time.Time
}

// RecordScoreInput represents the data needed to record a score
type RecordScoreInput struct {
	Score    schema.Score
	ScoredAt time.Time
}

// RejectActionInput represents the data needed to reject an action
type RejectActionInput struct {
	ActionID   string
	Kind       domain.ErrorKind
	Reason     string
	RejectedAt time.Time
}

// ReserveEpochCapInput represents a cap reservation request
type ReserveEpochCapInput struct {
	EpochKey        string
	DurationSeconds int64
	UserID          string
	ActionID        string
	Amount          decimal.Decimal
	EpochCap        decimal.Decimal
	UserEpochCap    decimal.Decimal
	Now             time.Time
}

// ConsumeNonceInput represents a nonce consumption
type ConsumeNonceInput struct {
	UserID     string
	Nonce      int64
	Consumer   string
	ConsumedAt time.Time
}

// RetireNonceInput represents a nonce retirement
type RetireNonceInput struct {
	UserID    string
	Nonce     int64
	Reason    string
	RetiredAt time.Time
}

// AddMintSignatureInput represents an attester signature to store
type AddMintSignatureInput struct {
	MintRequestID string
	SignerID      string
	Signature     string
	AcceptedAt    time.Time
}

// AddMintSignatureResult is the outcome of storing a signature
type AddMintSignatureResult struct {
	// Request is the mint request after the signature was stored
	Request *schema.MintRequest
	// Signatures is the number of stored signatures from currently active attesters
	Signatures int
	// ThresholdReached is true only for the call that flipped the request to threshold_met
	ThresholdReached bool
}

// TransitionMintRequestInput represents a mint request status change
type TransitionMintRequestInput struct {
	ID     string
	From   domain.MintStatus
	To     domain.MintStatus
	TxHash *string
	At     time.Time
}

// ConfirmMintRequestInput represents a ledger confirmation
type ConfirmMintRequestInput struct {
	ID          string
	TxHash      string
	ConfirmedAt time.Time
}

// FailMintRequestInput represents a permanent mint request failure and its compensations
type FailMintRequestInput struct {
	ID                 string
	Kind               domain.ErrorKind
	Reason             string
	ReleaseReservation bool
	RetireNonce        bool
	RejectAction       bool
	FailedAt           time.Time
}

// ChangesQueryFilter represents filters for changes journal queries
type ChangesQueryFilter struct {
	SubjectTypes []schema.SubjectType
	SubjectIDs   []string
	Anchor       *int64
	Limit        int
}
