package workflows_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.temporal.io/sdk/temporal"

	"github.com/feral-file/pplp-engine/internal/domain"
	"github.com/feral-file/pplp-engine/internal/ledger"
	"github.com/feral-file/pplp-engine/internal/logger"
	"github.com/feral-file/pplp-engine/internal/mocks"
	"github.com/feral-file/pplp-engine/internal/store"
	"github.com/feral-file/pplp-engine/internal/store/schema"
	"github.com/feral-file/pplp-engine/internal/workflows"
)

var settledAt = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

// testExecutorMocks contains all the mocks needed for testing the executor
type testExecutorMocks struct {
	ctrl      *gomock.Controller
	store     *mocks.MockStore
	ledger    *mocks.MockLedger
	nonces    *mocks.MockNonceGuard
	publisher *mocks.MockPublisher
	metrics   *mocks.MockMetricsRecorder
	clock     *mocks.MockClock
	executor  workflows.Executor
}

// setupTestExecutor creates all the mocks and executor for testing
func setupTestExecutor(t *testing.T) *testExecutorMocks {
	err := logger.Initialize(logger.Config{
		Debug: true,
	})
	if err != nil {
		t.Fatalf("Failed to initialize logger: %v", err)
	}

	ctrl := gomock.NewController(t)
	tm := &testExecutorMocks{
		ctrl:      ctrl,
		store:     mocks.NewMockStore(ctrl),
		ledger:    mocks.NewMockLedger(ctrl),
		nonces:    mocks.NewMockNonceGuard(ctrl),
		publisher: mocks.NewMockPublisher(ctrl),
		metrics:   mocks.NewMockMetricsRecorder(ctrl),
		clock:     mocks.NewMockClock(ctrl),
	}
	tm.clock.EXPECT().Now().Return(settledAt).AnyTimes()
	tm.executor = workflows.NewExecutor(tm.store, tm.ledger, tm.nonces, tm.publisher, tm.metrics, tm.clock)

	t.Cleanup(ctrl.Finish)
	return tm
}

func stringPtr(s string) *string {
	return &s
}

func thresholdMetRequest() *schema.MintRequest {
	return &schema.MintRequest{
		ID:            "01HXMINT",
		ActionID:      "01HXACTION",
		UserID:        "user-42",
		Recipient:     "0x00000000000000000000000000000000000000bb",
		AmountUnits:   decimal.RequireFromString("352350000000000000000"),
		Nonce:         7,
		ActionHash:    "0x" + "12",
		EvidenceHash:  "0x" + "34",
		PolicyVersion: "1.0.0",
		Threshold:     2,
		Status:        domain.MintStatusThresholdMet,
		Signatures: []schema.MintSignature{
			{SignerID: "0xbbbb", Signature: "0x02"},
			{SignerID: "0xaaaa", Signature: "0x01"},
		},
	}
}

func expectActiveAttesters(tm *testExecutorMocks, ctx context.Context, signers ...string) {
	attesters := make([]schema.Attester, 0, len(signers))
	for _, signer := range signers {
		attesters = append(attesters, schema.Attester{PolicyVersion: "1.0.0", SignerID: signer})
	}
	tm.store.EXPECT().ListAttesters(ctx, "1.0.0", true).Return(attesters, nil)
}

func assertAppErrorType(t *testing.T, err error, errType string) {
	t.Helper()
	var appErr *temporal.ApplicationError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, errType, appErr.Type())
	assert.True(t, appErr.NonRetryable())
}

// ====================================================================================
// ConsumeMintNonce
// ====================================================================================

func TestConsumeMintNonce(t *testing.T) {
	ctx := context.Background()

	t.Run("consumes on behalf of the request", func(t *testing.T) {
		tm := setupTestExecutor(t)
		tm.store.EXPECT().GetMintRequestByID(ctx, "01HXMINT").Return(thresholdMetRequest(), nil)
		tm.nonces.EXPECT().Consume(ctx, "user-42", int64(7), "01HXMINT").Return(nil)

		assert.NoError(t, tm.executor.ConsumeMintNonce(ctx, "01HXMINT"))
	})

	t.Run("replayed nonce is not retried", func(t *testing.T) {
		tm := setupTestExecutor(t)
		tm.store.EXPECT().GetMintRequestByID(ctx, "01HXMINT").Return(thresholdMetRequest(), nil)
		tm.nonces.EXPECT().Consume(ctx, "user-42", int64(7), "01HXMINT").Return(domain.ErrNonceAlreadyUsed)

		err := tm.executor.ConsumeMintNonce(ctx, "01HXMINT")
		assertAppErrorType(t, err, workflows.ErrTypeReplay)
	})

	t.Run("store failure is retried", func(t *testing.T) {
		tm := setupTestExecutor(t)
		tm.store.EXPECT().GetMintRequestByID(ctx, "01HXMINT").Return(thresholdMetRequest(), nil)
		tm.nonces.EXPECT().Consume(ctx, "user-42", int64(7), "01HXMINT").Return(errors.New("connection reset"))

		err := tm.executor.ConsumeMintNonce(ctx, "01HXMINT")
		require.Error(t, err)
		var appErr *temporal.ApplicationError
		assert.False(t, errors.As(err, &appErr))
	})

	t.Run("collecting request cannot settle", func(t *testing.T) {
		tm := setupTestExecutor(t)
		request := thresholdMetRequest()
		request.Status = domain.MintStatusCollecting
		tm.store.EXPECT().GetMintRequestByID(ctx, "01HXMINT").Return(request, nil)

		err := tm.executor.ConsumeMintNonce(ctx, "01HXMINT")
		assertAppErrorType(t, err, workflows.ErrTypeInvalidTransition)
	})

	t.Run("unknown request", func(t *testing.T) {
		tm := setupTestExecutor(t)
		tm.store.EXPECT().GetMintRequestByID(ctx, "missing").Return(nil, nil)

		err := tm.executor.ConsumeMintNonce(ctx, "missing")
		assertAppErrorType(t, err, workflows.ErrTypeNotFound)
	})
}

// ====================================================================================
// SubmitMintRequest
// ====================================================================================

func TestSubmitMintRequest(t *testing.T) {
	ctx := context.Background()
	tm := setupTestExecutor(t)

	tm.store.EXPECT().GetMintRequestByID(ctx, "01HXMINT").Return(thresholdMetRequest(), nil)
	expectActiveAttesters(tm, ctx, "0xaaaa", "0xbbbb")
	tm.ledger.EXPECT().Submit(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, req ledger.SubmitRequest) (*ledger.TxRef, error) {
			assert.Equal(t, "01HXMINT", req.MintRequestID)
			assert.Equal(t, int64(7), req.Nonce)
			assert.Equal(t, "352350000000000000000", req.AmountUnits.String())
			// ordered by signer id
			assert.Equal(t, [][]byte{{0x01}, {0x02}}, req.Signatures)
			return &ledger.TxRef{MintRequestID: "01HXMINT", TxHash: "0xfeed"}, nil
		})
	tm.store.EXPECT().TransitionMintRequest(ctx, store.TransitionMintRequestInput{
		ID:     "01HXMINT",
		From:   domain.MintStatusThresholdMet,
		To:     domain.MintStatusSubmitted,
		TxHash: stringPtr("0xfeed"),
		At:     settledAt,
	}).Return(&schema.MintRequest{ID: "01HXMINT", Status: domain.MintStatusSubmitted}, nil)

	ref, err := tm.executor.SubmitMintRequest(ctx, "01HXMINT")
	require.NoError(t, err)
	assert.Equal(t, "0xfeed", ref.TxHash)
}

func TestSubmitMintRequest_AlreadySubmitted(t *testing.T) {
	ctx := context.Background()
	tm := setupTestExecutor(t)

	request := thresholdMetRequest()
	request.Status = domain.MintStatusSubmitted
	request.TxHash = stringPtr("0xfeed")
	tm.store.EXPECT().GetMintRequestByID(ctx, "01HXMINT").Return(request, nil)

	ref, err := tm.executor.SubmitMintRequest(ctx, "01HXMINT")
	require.NoError(t, err)
	assert.Equal(t, ledger.TxRef{MintRequestID: "01HXMINT", TxHash: "0xfeed"}, *ref)
}

func TestSubmitMintRequest_LedgerErrors(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name      string
		err       error
		errType   string
		retryable bool
	}{
		{"semantic revert", &domain.LedgerError{Kind: domain.LedgerErrorSemantic, Reason: "amount exceeds allocation"}, workflows.ErrTypeLedger, false},
		{"nonce consumed", &domain.LedgerError{Kind: domain.LedgerErrorNonceConsumed, Reason: "nonce used"}, workflows.ErrTypeReplay, false},
		{"transient", &domain.LedgerError{Kind: domain.LedgerErrorTransient, Reason: "rpc unavailable"}, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tm := setupTestExecutor(t)
			tm.store.EXPECT().GetMintRequestByID(ctx, "01HXMINT").Return(thresholdMetRequest(), nil)
			expectActiveAttesters(tm, ctx, "0xaaaa", "0xbbbb")
			tm.ledger.EXPECT().Submit(ctx, gomock.Any()).Return(nil, tt.err)

			_, err := tm.executor.SubmitMintRequest(ctx, "01HXMINT")
			require.Error(t, err)
			if tt.retryable {
				var appErr *temporal.ApplicationError
				assert.False(t, errors.As(err, &appErr))
				return
			}
			assertAppErrorType(t, err, tt.errType)
		})
	}
}

func TestSubmitMintRequest_BadStoredSignature(t *testing.T) {
	ctx := context.Background()
	tm := setupTestExecutor(t)

	request := thresholdMetRequest()
	request.Signatures[0].Signature = "not-hex"
	tm.store.EXPECT().GetMintRequestByID(ctx, "01HXMINT").Return(request, nil)
	expectActiveAttesters(tm, ctx, "0xaaaa", "0xbbbb")

	_, err := tm.executor.SubmitMintRequest(ctx, "01HXMINT")
	assertAppErrorType(t, err, workflows.ErrTypeInvalidTransition)
}

func TestSubmitMintRequest_RevokedSignerExcluded(t *testing.T) {
	ctx := context.Background()
	tm := setupTestExecutor(t)

	request := thresholdMetRequest()
	request.Signatures = append(request.Signatures, schema.MintSignature{SignerID: "0xcccc", Signature: "0x03"})
	tm.store.EXPECT().GetMintRequestByID(ctx, "01HXMINT").Return(request, nil)
	expectActiveAttesters(tm, ctx, "0xaaaa", "0xbbbb")
	tm.ledger.EXPECT().Submit(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, req ledger.SubmitRequest) (*ledger.TxRef, error) {
			assert.Equal(t, [][]byte{{0x01}, {0x02}}, req.Signatures)
			return &ledger.TxRef{MintRequestID: "01HXMINT", TxHash: "0xfeed"}, nil
		})
	tm.store.EXPECT().TransitionMintRequest(ctx, gomock.Any()).
		Return(&schema.MintRequest{ID: "01HXMINT", Status: domain.MintStatusSubmitted}, nil)

	_, err := tm.executor.SubmitMintRequest(ctx, "01HXMINT")
	require.NoError(t, err)
}

func TestSubmitMintRequest_ThresholdLostToRevocation(t *testing.T) {
	ctx := context.Background()
	tm := setupTestExecutor(t)

	tm.store.EXPECT().GetMintRequestByID(ctx, "01HXMINT").Return(thresholdMetRequest(), nil)
	expectActiveAttesters(tm, ctx, "0xaaaa", "0xcccc")

	_, err := tm.executor.SubmitMintRequest(ctx, "01HXMINT")
	assertAppErrorType(t, err, workflows.ErrTypeLedger)
}

// ====================================================================================
// PollMintRequest
// ====================================================================================

func TestPollMintRequest(t *testing.T) {
	ctx := context.Background()
	ref := ledger.TxRef{MintRequestID: "01HXMINT", TxHash: "0xfeed"}

	t.Run("confirmed", func(t *testing.T) {
		tm := setupTestExecutor(t)
		tm.ledger.EXPECT().Poll(ctx, ref).Return(&ledger.PollResult{Status: domain.TxStatusConfirmed, BlockNumber: 120}, nil)

		outcome, err := tm.executor.PollMintRequest(ctx, ref)
		require.NoError(t, err)
		assert.Equal(t, workflows.PollOutcome{Status: domain.TxStatusConfirmed, BlockNumber: 120}, *outcome)
	})

	t.Run("reverted carries the failure kind", func(t *testing.T) {
		tm := setupTestExecutor(t)
		tm.ledger.EXPECT().Poll(ctx, ref).Return(&ledger.PollResult{
			Status:  domain.TxStatusReverted,
			Failure: &domain.LedgerError{Kind: domain.LedgerErrorNonceConsumed, Reason: "PPLP: nonce used"},
		}, nil)

		outcome, err := tm.executor.PollMintRequest(ctx, ref)
		require.NoError(t, err)
		assert.Equal(t, domain.ErrorKindReplay, outcome.FailureKind)
		assert.Equal(t, "PPLP: nonce used", outcome.FailureReason)
	})

	t.Run("reverted without reason", func(t *testing.T) {
		tm := setupTestExecutor(t)
		tm.ledger.EXPECT().Poll(ctx, ref).Return(&ledger.PollResult{Status: domain.TxStatusReverted}, nil)

		outcome, err := tm.executor.PollMintRequest(ctx, ref)
		require.NoError(t, err)
		assert.Equal(t, domain.ErrorKindLedger, outcome.FailureKind)
	})
}

// ====================================================================================
// ConfirmMintRequest / FailMintRequest
// ====================================================================================

func TestConfirmMintRequest(t *testing.T) {
	ctx := context.Background()
	tm := setupTestExecutor(t)

	tm.store.EXPECT().ConfirmMintRequest(ctx, store.ConfirmMintRequestInput{
		ID: "01HXMINT", TxHash: "0xfeed", ConfirmedAt: settledAt,
	}).Return(nil)
	tm.metrics.EXPECT().MintSettled(ctx, "confirmed")
	tm.publisher.EXPECT().Publish(ctx, &domain.EngineEvent{
		Type:          domain.EventTypeMintSettled,
		MintRequestID: "01HXMINT",
		Status:        "confirmed",
		OccurredAt:    settledAt,
	}).Return(errors.New("nats down"))

	assert.NoError(t, tm.executor.ConfirmMintRequest(ctx, ledger.TxRef{MintRequestID: "01HXMINT", TxHash: "0xfeed"}))
}

func TestConfirmMintRequest_FailedRequest(t *testing.T) {
	ctx := context.Background()
	tm := setupTestExecutor(t)

	tm.store.EXPECT().ConfirmMintRequest(ctx, gomock.Any()).Return(domain.ErrInvalidTransition)

	err := tm.executor.ConfirmMintRequest(ctx, ledger.TxRef{MintRequestID: "01HXMINT", TxHash: "0xfeed"})
	assertAppErrorType(t, err, workflows.ErrTypeInvalidTransition)
}

func TestFailMintRequest_Compensations(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		kind    domain.ErrorKind
		release bool
		retire  bool
		reject  bool
	}{
		{domain.ErrorKindLedger, true, true, true},
		{domain.ErrorKindReplay, false, false, true},
		{domain.ErrorKindLedgerTimeout, false, false, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			tm := setupTestExecutor(t)
			tm.store.EXPECT().FailMintRequest(ctx, store.FailMintRequestInput{
				ID:                 "01HXMINT",
				Kind:               tt.kind,
				Reason:             "boom",
				ReleaseReservation: tt.release,
				RetireNonce:        tt.retire,
				RejectAction:       tt.reject,
				FailedAt:           settledAt,
			}).Return(nil)
			tm.metrics.EXPECT().MintSettled(ctx, "failed")
			tm.publisher.EXPECT().Publish(ctx, gomock.Any()).Return(nil)

			err := tm.executor.FailMintRequest(ctx, workflows.FailInput{MintRequestID: "01HXMINT", Kind: tt.kind, Reason: "boom"})
			assert.NoError(t, err)
		})
	}
}
