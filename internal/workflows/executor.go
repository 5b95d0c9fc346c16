package workflows

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"go.temporal.io/sdk/temporal"
	"go.uber.org/zap"

	"github.com/feral-file/pplp-engine/internal/adapter"
	"github.com/feral-file/pplp-engine/internal/domain"
	"github.com/feral-file/pplp-engine/internal/ledger"
	"github.com/feral-file/pplp-engine/internal/logger"
	"github.com/feral-file/pplp-engine/internal/messaging"
	"github.com/feral-file/pplp-engine/internal/metrics"
	"github.com/feral-file/pplp-engine/internal/nonce"
	"github.com/feral-file/pplp-engine/internal/store"
	"github.com/feral-file/pplp-engine/internal/store/schema"
)

// Application error types returned by settlement activities. Errors of these types are never retried.
const (
	ErrTypeReplay            = string(domain.ErrorKindReplay)
	ErrTypeLedger            = string(domain.ErrorKindLedger)
	ErrTypeInvalidTransition = "invalid_transition"
	ErrTypeNotFound          = "not_found"
)

// PollOutcome is the settlement state of a submitted transaction as seen by the workflow
type PollOutcome struct {
	Status        domain.TxStatus  `json:"status"`
	BlockNumber   uint64           `json:"block_number,omitempty"`
	FailureKind   domain.ErrorKind `json:"failure_kind,omitempty"`
	FailureReason string           `json:"failure_reason,omitempty"`
}

// FailInput describes a permanent settlement failure
type FailInput struct {
	MintRequestID string           `json:"mint_request_id"`
	Kind          domain.ErrorKind `json:"kind"`
	Reason        string           `json:"reason"`
}

// Compensation is what a failed settlement undoes
type Compensation struct {
	ReleaseReservation bool
	RetireNonce        bool
	RejectAction       bool
}

// CompensationFor returns the compensations applied for a failure kind.
// A ledger rejection undoes everything. A replayed nonce and a timed out transaction keep the
// reservation because the amount may have been issued.
func CompensationFor(kind domain.ErrorKind) Compensation {
	switch kind {
	case domain.ErrorKindLedger:
		return Compensation{ReleaseReservation: true, RetireNonce: true, RejectAction: true}
	case domain.ErrorKindReplay:
		return Compensation{RejectAction: true}
	default:
		return Compensation{}
	}
}

// Executor defines the settlement activities
//
//go:generate mockgen -source=executor.go -destination=../mocks/executor.go -package=mocks -mock_names=Executor=MockExecutor
type Executor interface {
	// ConsumeMintNonce consumes the request's nonce on behalf of the request.
	// A stale or already used nonce fails with a non-retryable replay error.
	ConsumeMintNonce(ctx context.Context, requestID string) error

	// SubmitMintRequest submits a threshold_met request to the ledger and moves it to submitted.
	// A request that is already submitted returns its stored transaction.
	SubmitMintRequest(ctx context.Context, requestID string) (*ledger.TxRef, error)

	// PollMintRequest reads the settlement state of a submitted transaction
	PollMintRequest(ctx context.Context, ref ledger.TxRef) (*PollOutcome, error)

	// ConfirmMintRequest marks the request confirmed and its action minted
	ConfirmMintRequest(ctx context.Context, ref ledger.TxRef) error

	// FailMintRequest marks the request failed and applies the compensations of the failure kind
	FailMintRequest(ctx context.Context, input FailInput) error
}

type executor struct {
	store     store.Store
	ledger    ledger.Ledger
	nonces    nonce.Guard
	publisher messaging.Publisher
	metrics   metrics.Recorder
	clock     adapter.Clock
}

// NewExecutor creates a new executor instance
func NewExecutor(
	st store.Store,
	l ledger.Ledger,
	nonces nonce.Guard,
	publisher messaging.Publisher,
	recorder metrics.Recorder,
	clock adapter.Clock,
) Executor {
	return &executor{
		store:     st,
		ledger:    l,
		nonces:    nonces,
		publisher: publisher,
		metrics:   recorder,
		clock:     clock,
	}
}

func (e *executor) ConsumeMintNonce(ctx context.Context, requestID string) error {
	request, err := e.getRequest(ctx, requestID)
	if err != nil {
		return err
	}

	switch request.Status {
	case domain.MintStatusThresholdMet, domain.MintStatusSubmitted:
	default:
		return temporal.NewNonRetryableApplicationError(
			fmt.Sprintf("mint request %s is %s", requestID, request.Status), ErrTypeInvalidTransition, domain.ErrInvalidTransition)
	}

	if err := e.nonces.Consume(ctx, request.UserID, request.Nonce, request.ID); err != nil {
		if errors.Is(err, domain.ErrNonceStale) || errors.Is(err, domain.ErrNonceAlreadyUsed) {
			logger.WarnCtx(ctx, "Mint nonce rejected",
				logger.MintRequestID(requestID),
				zap.Int64("nonce", request.Nonce),
				zap.Error(err))
			return temporal.NewNonRetryableApplicationError(err.Error(), ErrTypeReplay, err)
		}
		return err
	}
	return nil
}

func (e *executor) SubmitMintRequest(ctx context.Context, requestID string) (*ledger.TxRef, error) {
	request, err := e.getRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}

	switch request.Status {
	case domain.MintStatusThresholdMet:
	case domain.MintStatusSubmitted:
		if request.TxHash != nil {
			return &ledger.TxRef{MintRequestID: request.ID, TxHash: *request.TxHash}, nil
		}
	default:
		return nil, temporal.NewNonRetryableApplicationError(
			fmt.Sprintf("mint request %s is %s", requestID, request.Status), ErrTypeInvalidTransition, domain.ErrInvalidTransition)
	}

	attesters, err := e.store.ListAttesters(ctx, request.PolicyVersion, true)
	if err != nil {
		return nil, fmt.Errorf("failed to list attesters: %w", err)
	}
	active := activeSignatures(request.Signatures, attesters)
	if len(active) < request.Threshold {
		reason := fmt.Sprintf("%d of %d signatures belong to active attesters, threshold is %d",
			len(active), len(request.Signatures), request.Threshold)
		return nil, temporal.NewNonRetryableApplicationError(reason, ErrTypeLedger,
			&domain.LedgerError{Kind: domain.LedgerErrorSemantic, Reason: reason})
	}

	signatures, err := orderedSignatures(active)
	if err != nil {
		return nil, temporal.NewNonRetryableApplicationError(err.Error(), ErrTypeInvalidTransition, err)
	}

	ref, err := e.ledger.Submit(ctx, ledger.SubmitRequest{
		MintRequestID: request.ID,
		ActionHash:    request.ActionHash,
		Recipient:     request.Recipient,
		AmountUnits:   request.AmountUnits,
		EvidenceHash:  request.EvidenceHash,
		Nonce:         request.Nonce,
		Signatures:    signatures,
	})
	if err != nil {
		return nil, ledgerActivityError(err)
	}

	if _, err := e.store.TransitionMintRequest(ctx, store.TransitionMintRequestInput{
		ID:     request.ID,
		From:   domain.MintStatusThresholdMet,
		To:     domain.MintStatusSubmitted,
		TxHash: &ref.TxHash,
		At:     e.clock.Now(),
	}); err != nil {
		return nil, fmt.Errorf("failed to mark mint request submitted: %w", err)
	}

	logger.InfoCtx(ctx, "Mint request submitted",
		logger.MintRequestID(request.ID),
		logger.TxHash(ref.TxHash),
		zap.Int("signatures", len(signatures)))

	return ref, nil
}

func (e *executor) PollMintRequest(ctx context.Context, ref ledger.TxRef) (*PollOutcome, error) {
	result, err := e.ledger.Poll(ctx, ref)
	if err != nil {
		return nil, ledgerActivityError(err)
	}

	outcome := &PollOutcome{Status: result.Status, BlockNumber: result.BlockNumber}
	if result.Status == domain.TxStatusReverted {
		outcome.FailureKind = domain.ErrorKindLedger
		outcome.FailureReason = "transaction reverted"
		if result.Failure != nil {
			if kind, ok := domain.KindOf(result.Failure); ok {
				outcome.FailureKind = kind
			}
			outcome.FailureReason = result.Failure.Reason
		}
	}
	return outcome, nil
}

func (e *executor) ConfirmMintRequest(ctx context.Context, ref ledger.TxRef) error {
	if err := e.store.ConfirmMintRequest(ctx, store.ConfirmMintRequestInput{
		ID:          ref.MintRequestID,
		TxHash:      ref.TxHash,
		ConfirmedAt: e.clock.Now(),
	}); err != nil {
		if errors.Is(err, domain.ErrInvalidTransition) {
			return temporal.NewNonRetryableApplicationError(err.Error(), ErrTypeInvalidTransition, err)
		}
		return fmt.Errorf("failed to confirm mint request: %w", err)
	}

	e.metrics.MintSettled(ctx, string(domain.MintStatusConfirmed))
	e.publishSettled(ctx, ref.MintRequestID, domain.MintStatusConfirmed)

	logger.InfoCtx(ctx, "Mint request confirmed",
		logger.MintRequestID(ref.MintRequestID),
		logger.TxHash(ref.TxHash))
	return nil
}

func (e *executor) FailMintRequest(ctx context.Context, input FailInput) error {
	comp := CompensationFor(input.Kind)
	if err := e.store.FailMintRequest(ctx, store.FailMintRequestInput{
		ID:                 input.MintRequestID,
		Kind:               input.Kind,
		Reason:             input.Reason,
		ReleaseReservation: comp.ReleaseReservation,
		RetireNonce:        comp.RetireNonce,
		RejectAction:       comp.RejectAction,
		FailedAt:           e.clock.Now(),
	}); err != nil {
		if errors.Is(err, domain.ErrInvalidTransition) {
			return temporal.NewNonRetryableApplicationError(err.Error(), ErrTypeInvalidTransition, err)
		}
		return fmt.Errorf("failed to fail mint request: %w", err)
	}

	e.metrics.MintSettled(ctx, string(domain.MintStatusFailed))
	e.publishSettled(ctx, input.MintRequestID, domain.MintStatusFailed)

	logger.WarnCtx(ctx, "Mint request failed",
		logger.MintRequestID(input.MintRequestID),
		zap.String("kind", string(input.Kind)),
		zap.String("reason", input.Reason),
		zap.Bool("reservationReleased", comp.ReleaseReservation))
	return nil
}

func (e *executor) getRequest(ctx context.Context, requestID string) (*schema.MintRequest, error) {
	request, err := e.store.GetMintRequestByID(ctx, requestID)
	if err != nil {
		return nil, fmt.Errorf("failed to get mint request: %w", err)
	}
	if request == nil {
		return nil, temporal.NewNonRetryableApplicationError(
			fmt.Sprintf("mint request %s not found", requestID), ErrTypeNotFound, domain.ErrNotFound)
	}
	return request, nil
}

func (e *executor) publishSettled(ctx context.Context, requestID string, status domain.MintStatus) {
	if e.publisher == nil {
		return
	}
	err := e.publisher.Publish(ctx, &domain.EngineEvent{
		Type:          domain.EventTypeMintSettled,
		MintRequestID: requestID,
		Status:        string(status),
		OccurredAt:    e.clock.Now(),
	})
	if err != nil {
		logger.ErrorCtx(ctx, fmt.Errorf("failed to publish settlement event: %w", err), logger.MintRequestID(requestID))
	}
}

// activeSignatures drops signatures of attesters revoked after they signed
func activeSignatures(stored []schema.MintSignature, attesters []schema.Attester) []schema.MintSignature {
	active := make(map[string]struct{}, len(attesters))
	for _, a := range attesters {
		active[a.SignerID] = struct{}{}
	}
	kept := make([]schema.MintSignature, 0, len(stored))
	for _, s := range stored {
		if _, ok := active[s.SignerID]; ok {
			kept = append(kept, s)
		}
	}
	return kept
}

// orderedSignatures decodes the stored signatures in ascending signer order
func orderedSignatures(stored []schema.MintSignature) ([][]byte, error) {
	sorted := make([]schema.MintSignature, len(stored))
	copy(sorted, stored)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].SignerID < sorted[j].SignerID })

	signatures := make([][]byte, 0, len(sorted))
	for _, s := range sorted {
		sig, err := hexutil.Decode(s.Signature)
		if err != nil {
			return nil, fmt.Errorf("stored signature of %s is not hex: %w", s.SignerID, err)
		}
		signatures = append(signatures, sig)
	}
	return signatures, nil
}

// ledgerActivityError keeps transient ledger errors retryable and stops retries for the rest
func ledgerActivityError(err error) error {
	var ledgerErr *domain.LedgerError
	if !errors.As(err, &ledgerErr) || ledgerErr.Retryable() {
		return err
	}
	kind, _ := domain.KindOf(ledgerErr)
	return temporal.NewNonRetryableApplicationError(ledgerErr.Reason, string(kind), err)
}
