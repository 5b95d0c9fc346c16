// Package nonce issues per-user issuance nonces and guards them against replay
package nonce

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/feral-file/pplp-engine/internal/adapter"
	"github.com/feral-file/pplp-engine/internal/domain"
	"github.com/feral-file/pplp-engine/internal/logger"
	"github.com/feral-file/pplp-engine/internal/store"
)

// Guard defines the interface for nonce issuance and replay protection
//
//go:generate mockgen -source=guard.go -destination=../mocks/nonce_guard.go -package=mocks -mock_names=Guard=MockNonceGuard
type Guard interface {
	// Next issues the next nonce of a user. Nonces start at 1 and are never reused.
	Next(ctx context.Context, userID string) (int64, error)
	// Validate consumes a nonce for an anonymous caller. Any second use is a replay.
	Validate(ctx context.Context, userID string, nonce int64) error
	// Consume consumes a nonce on behalf of consumer. Repeating the call with the same consumer succeeds.
	Consume(ctx context.Context, userID string, nonce int64, consumer string) error
	// Retire makes a nonce permanently unusable
	Retire(ctx context.Context, userID string, nonce int64, reason string) error
}

type guard struct {
	store store.Store
	clock adapter.Clock
}

// NewGuard creates a new nonce guard
func NewGuard(store store.Store, clock adapter.Clock) Guard {
	return &guard{store: store, clock: clock}
}

func (g *guard) Next(ctx context.Context, userID string) (int64, error) {
	if userID == "" {
		return 0, domain.NewValidationError("user_id", "is required")
	}
	return g.store.NextNonce(ctx, userID)
}

func (g *guard) Validate(ctx context.Context, userID string, nonce int64) error {
	return g.Consume(ctx, userID, nonce, "")
}

func (g *guard) Consume(ctx context.Context, userID string, nonce int64, consumer string) error {
	err := g.store.ConsumeNonce(ctx, store.ConsumeNonceInput{
		UserID:     userID,
		Nonce:      nonce,
		Consumer:   consumer,
		ConsumedAt: g.clock.Now(),
	})
	if errors.Is(err, domain.ErrNonceStale) || errors.Is(err, domain.ErrNonceAlreadyUsed) {
		logger.WarnCtx(ctx, "Nonce replay rejected",
			zap.String("userID", userID),
			zap.Int64("nonce", nonce),
			zap.String("consumer", consumer),
			zap.Error(err))
	}
	return err
}

func (g *guard) Retire(ctx context.Context, userID string, nonce int64, reason string) error {
	if err := g.store.RetireNonce(ctx, store.RetireNonceInput{
		UserID:    userID,
		Nonce:     nonce,
		Reason:    reason,
		RetiredAt: g.clock.Now(),
	}); err != nil {
		return fmt.Errorf("failed to retire nonce: %w", err)
	}
	return nil
}
