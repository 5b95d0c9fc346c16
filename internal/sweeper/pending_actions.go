package sweeper

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/alitto/pond/v2"
	"go.uber.org/zap"

	"github.com/feral-file/pplp-engine/internal/adapter"
	"github.com/feral-file/pplp-engine/internal/domain"
	"github.com/feral-file/pplp-engine/internal/logger"
	"github.com/feral-file/pplp-engine/internal/pipeline"
	"github.com/feral-file/pplp-engine/internal/store"
)

// PendingActionSweeperConfig holds configuration for the pending action sweeper
type PendingActionSweeperConfig struct {
	Interval       time.Duration // Time to sleep between sweep cycles
	GracePeriod    time.Duration // Only process actions submitted longer ago than this
	BatchSize      int           // Actions per cycle
	WorkerPoolSize int           // Concurrent workers
}

// pendingActionSweeper processes actions that were submitted but never scored
type pendingActionSweeper struct {
	*loop
	config   *PendingActionSweeperConfig
	store    store.Store
	pipeline pipeline.Pipeline
	clock    adapter.Clock
	pool     pond.Pool
}

// NewPendingActionSweeper creates a new pending action sweeper
func NewPendingActionSweeper(config *PendingActionSweeperConfig, st store.Store, p pipeline.Pipeline, clock adapter.Clock) Sweeper {
	return &pendingActionSweeper{
		loop:     newLoop("pending-action-sweeper", config.Interval, clock),
		config:   config,
		store:    st,
		pipeline: p,
		clock:    clock,
	}
}

func (s *pendingActionSweeper) Start(ctx context.Context) error {
	s.pool = pond.NewPool(s.config.WorkerPoolSize, pond.WithQueueSize(s.config.BatchSize), pond.WithContext(ctx))
	return s.run(ctx, s.runSweepCycle, func() { s.pool.StopAndWait() })
}

func (s *pendingActionSweeper) runSweepCycle(ctx context.Context) (bool, error) {
	startTime := s.clock.Now()
	actions, err := s.store.ListPendingActions(ctx, startTime.Add(-s.config.GracePeriod), s.config.BatchSize)
	if err != nil {
		return false, fmt.Errorf("failed to list pending actions: %w", err)
	}
	if len(actions) == 0 {
		return false, nil
	}

	var passed, failed, rejected, errored atomic.Int32
	group := s.pool.NewGroup()
	for _, a := range actions {
		actionID := a.ID
		group.Submit(func() {
			result, err := s.pipeline.ProcessAction(ctx, actionID)
			var capErr *domain.CapExceededError
			switch {
			case err == nil, errors.As(err, &capErr):
				if result != nil && result.Score != nil && result.Score.Decision == domain.DecisionPass {
					passed.Add(1)
				} else {
					failed.Add(1)
				}
			case isTerminal(err):
				rejected.Add(1)
				logger.WarnCtx(ctx, "Pending action rejected", logger.ActionID(actionID), zap.Error(err))
			default:
				errored.Add(1)
				logger.ErrorCtx(ctx, fmt.Errorf("failed to process pending action: %w", err), logger.ActionID(actionID))
			}
		})
	}
	if err := group.Wait(); err != nil {
		return false, err
	}

	logger.InfoCtx(ctx, "Pending action sweep completed",
		zap.Duration("duration", s.clock.Since(startTime)),
		zap.Int("total", len(actions)),
		zap.Int32("passed", passed.Load()),
		zap.Int32("failed", failed.Load()),
		zap.Int32("rejected", rejected.Load()),
		zap.Int32("errors", errored.Load()),
	)
	return len(actions) == s.config.BatchSize && errored.Load() == 0, nil
}

// isTerminal reports errors after which the action will never be processed again
func isTerminal(err error) bool {
	if errors.Is(err, domain.ErrAlreadyScored) || errors.Is(err, domain.ErrInvalidTransition) {
		return true
	}
	kind, ok := domain.KindOf(err)
	return ok && kind == domain.ErrorKindValidation
}
