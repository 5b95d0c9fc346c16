package workflows

import (
	"errors"
	"fmt"
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"
	"go.uber.org/zap"

	"github.com/feral-file/pplp-engine/internal/domain"
	"github.com/feral-file/pplp-engine/internal/ledger"
	"github.com/feral-file/pplp-engine/internal/logger"
)

// SettleMintRequest settles a threshold_met mint request on the ledger
func (w *workerCore) SettleMintRequest(ctx workflow.Context, requestID string) error {
	logger.InfoWf(ctx, "Starting mint settlement", logger.MintRequestID(requestID))

	activityCtx := workflow.WithActivityOptions(ctx, workflow.ActivityOptions{
		StartToCloseTimeout: 2 * time.Minute,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval:    time.Second,
			BackoffCoefficient: 2.0,
			MaximumInterval:    time.Minute,
			MaximumAttempts:    10,
		},
	})

	// Nonce
	if err := workflow.ExecuteActivity(activityCtx, w.executor.ConsumeMintNonce, requestID).Get(ctx, nil); err != nil {
		return w.handleActivityError(ctx, requestID, err)
	}

	// Submit
	var ref ledger.TxRef
	if err := workflow.ExecuteActivity(activityCtx, w.executor.SubmitMintRequest, requestID).Get(ctx, &ref); err != nil {
		return w.handleActivityError(ctx, requestID, err)
	}
	logger.InfoWf(ctx, "Mint request submitted",
		logger.MintRequestID(requestID),
		logger.TxHash(ref.TxHash))

	// Poll until confirmed, reverted or timed out
	pollCtx := workflow.WithActivityOptions(ctx, workflow.ActivityOptions{
		StartToCloseTimeout: 30 * time.Second,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval:    time.Second,
			BackoffCoefficient: 2.0,
			MaximumAttempts:    3,
		},
	})
	deadline := workflow.Now(ctx).Add(w.config.PollTimeout)
	delay := w.config.PollInitialInterval

	for {
		var outcome PollOutcome
		err := workflow.ExecuteActivity(pollCtx, w.executor.PollMintRequest, ref).Get(ctx, &outcome)
		switch {
		case err != nil && !isRetryable(err):
			return w.handleActivityError(ctx, requestID, err)
		case err != nil:
			logger.WarnWf(ctx, "Ledger poll failed, polling again",
				logger.MintRequestID(requestID),
				zap.Error(err))
		case outcome.Status == domain.TxStatusConfirmed:
			if err := workflow.ExecuteActivity(activityCtx, w.executor.ConfirmMintRequest, ref).Get(ctx, nil); err != nil {
				return err
			}
			logger.InfoWf(ctx, "Mint settlement confirmed",
				logger.MintRequestID(requestID),
				logger.TxHash(ref.TxHash),
				zap.Uint64("blockNumber", outcome.BlockNumber))
			return nil
		case outcome.Status == domain.TxStatusReverted:
			return w.fail(ctx, FailInput{
				MintRequestID: requestID,
				Kind:          outcome.FailureKind,
				Reason:        outcome.FailureReason,
			})
		}

		remaining := deadline.Sub(workflow.Now(ctx))
		if remaining <= 0 {
			return w.fail(ctx, FailInput{
				MintRequestID: requestID,
				Kind:          domain.ErrorKindLedgerTimeout,
				Reason:        fmt.Sprintf("transaction %s not confirmed within %s", ref.TxHash, w.config.PollTimeout),
			})
		}
		if err := workflow.Sleep(ctx, min(delay, remaining)); err != nil {
			return err
		}
		delay = min(delay*2, w.config.PollMaxInterval)
	}
}

// handleActivityError fails the request for replay and ledger rejections and returns every other error
func (w *workerCore) handleActivityError(ctx workflow.Context, requestID string, err error) error {
	var appErr *temporal.ApplicationError
	if errors.As(err, &appErr) {
		switch appErr.Type() {
		case ErrTypeReplay, ErrTypeLedger:
			return w.fail(ctx, FailInput{
				MintRequestID: requestID,
				Kind:          domain.ErrorKind(appErr.Type()),
				Reason:        appErr.Message(),
			})
		case ErrTypeInvalidTransition, ErrTypeNotFound:
			logger.WarnWf(ctx, "Mint request cannot be settled",
				logger.MintRequestID(requestID),
				zap.Error(err))
			return nil
		}
	}

	logger.ErrorWf(ctx, fmt.Errorf("mint settlement failed: %w", err), logger.MintRequestID(requestID))
	return err
}

func (w *workerCore) fail(ctx workflow.Context, input FailInput) error {
	failCtx := workflow.WithActivityOptions(ctx, workflow.ActivityOptions{
		StartToCloseTimeout: time.Minute,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval:    time.Second,
			BackoffCoefficient: 2.0,
			MaximumInterval:    time.Minute,
		},
	})
	if err := workflow.ExecuteActivity(failCtx, w.executor.FailMintRequest, input).Get(ctx, nil); err != nil {
		return err
	}
	logger.WarnWf(ctx, "Mint settlement failed",
		logger.MintRequestID(input.MintRequestID),
		zap.String("kind", string(input.Kind)),
		zap.String("reason", input.Reason))
	return nil
}

// isRetryable reports whether an activity error may succeed when the activity runs again
func isRetryable(err error) bool {
	var appErr *temporal.ApplicationError
	if errors.As(err, &appErr) {
		return !appErr.NonRetryable()
	}
	return true
}
