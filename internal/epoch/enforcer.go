// Package epoch enforces the per-epoch and per-user issuance caps
package epoch

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/feral-file/pplp-engine/internal/adapter"
	"github.com/feral-file/pplp-engine/internal/domain"
	"github.com/feral-file/pplp-engine/internal/logger"
	"github.com/feral-file/pplp-engine/internal/metrics"
	"github.com/feral-file/pplp-engine/internal/store"
	"github.com/feral-file/pplp-engine/internal/store/schema"
)

// ReserveRequest asks to hold an amount against the caps of a policy
type ReserveRequest struct {
	UserID   string
	ActionID string
	Amount   decimal.Decimal
	Caps     domain.Caps
}

// Status is the current window of an epoch key
type Status struct {
	EpochKey   string          `json:"epoch_key"`
	Seq        int64           `json:"seq"`
	StartedAt  time.Time       `json:"started_at"`
	EndsAt     time.Time       `json:"ends_at"`
	Minted     decimal.Decimal `json:"minted"`
	UserID     string          `json:"user_id,omitempty"`
	UserMinted decimal.Decimal `json:"user_minted"`
}

// Enforcer defines the interface for cap reservations
//
//go:generate mockgen -source=enforcer.go -destination=../mocks/epoch_enforcer.go -package=mocks -mock_names=Enforcer=MockEpochEnforcer
type Enforcer interface {
	// Reserve atomically holds the amount against both caps. Returns *domain.CapExceededError when either
	// cap would be exceeded. Reserving twice for the same action returns the first reservation.
	Reserve(ctx context.Context, req ReserveRequest) (*schema.Reservation, error)
	// Release returns a reservation's amount to both caps. Releasing twice is a no-op.
	Release(ctx context.Context, reservationID int64) error
	// Status reports the current window of an epoch key, with the user's total when userID is set
	Status(ctx context.Context, epochKey, userID string) (*Status, error)
}

type enforcer struct {
	store   store.Store
	clock   adapter.Clock
	metrics metrics.Recorder
}

// NewEnforcer creates a new epoch cap enforcer
func NewEnforcer(store store.Store, clock adapter.Clock, metrics metrics.Recorder) Enforcer {
	return &enforcer{
		store:   store,
		clock:   clock,
		metrics: metrics,
	}
}

func (e *enforcer) Reserve(ctx context.Context, req ReserveRequest) (*schema.Reservation, error) {
	if !req.Amount.IsPositive() {
		return nil, domain.NewValidationError("amount", "must be positive")
	}

	reservation, err := e.store.ReserveEpochCap(ctx, store.ReserveEpochCapInput{
		EpochKey:        req.Caps.EpochKey,
		DurationSeconds: req.Caps.EpochDurationSeconds,
		UserID:          req.UserID,
		ActionID:        req.ActionID,
		Amount:          req.Amount,
		EpochCap:        req.Caps.EpochCap,
		UserEpochCap:    req.Caps.UserEpochCap,
		Now:             e.clock.Now(),
	})
	if err != nil {
		var capErr *domain.CapExceededError
		if errors.As(err, &capErr) {
			e.metrics.Reservation(ctx, string(domain.ReserveCapExceeded))
			logger.InfoCtx(ctx, "Reservation rejected by cap",
				logger.ActionID(req.ActionID),
				zap.String("userID", req.UserID),
				zap.String("cap", string(capErr.Cap)),
				zap.String("requested", req.Amount.String()))
			return nil, err
		}
		return nil, fmt.Errorf("failed to reserve epoch cap: %w", err)
	}

	e.metrics.Reservation(ctx, string(domain.ReserveAccepted))
	return reservation, nil
}

func (e *enforcer) Release(ctx context.Context, reservationID int64) error {
	if err := e.store.ReleaseReservation(ctx, reservationID, e.clock.Now()); err != nil {
		return fmt.Errorf("failed to release reservation %d: %w", reservationID, err)
	}
	return nil
}

func (e *enforcer) Status(ctx context.Context, epochKey, userID string) (*Status, error) {
	row, err := e.store.GetEpoch(ctx, epochKey)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, fmt.Errorf("epoch %s: %w", epochKey, domain.ErrNotFound)
	}

	status := &Status{
		EpochKey:   row.EpochKey,
		Seq:        row.Seq,
		StartedAt:  row.StartedAt,
		EndsAt:     row.EndsAt(),
		Minted:     row.Minted,
		UserID:     userID,
		UserMinted: decimal.Zero,
	}

	// A window that ended is only rolled over by the next reservation; report the window that is current now
	now := e.clock.Now()
	if !now.Before(status.EndsAt) {
		sec := now.Unix()
		status.Seq++
		status.StartedAt = time.Unix(sec-(sec%row.DurationSeconds), 0).UTC()
		status.EndsAt = status.StartedAt.Add(time.Duration(row.DurationSeconds) * time.Second)
		status.Minted = decimal.Zero
		return status, nil
	}

	if userID != "" {
		total, err := e.store.GetEpochUserTotal(ctx, epochKey, row.Seq, userID)
		if err != nil {
			return nil, err
		}
		if total != nil {
			status.UserMinted = total.Minted
		}
	}
	return status, nil
}
