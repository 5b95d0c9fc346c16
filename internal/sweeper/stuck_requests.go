package sweeper

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/alitto/pond/v2"
	"go.uber.org/zap"

	"github.com/feral-file/pplp-engine/internal/adapter"
	"github.com/feral-file/pplp-engine/internal/domain"
	"github.com/feral-file/pplp-engine/internal/logger"
	"github.com/feral-file/pplp-engine/internal/providers/temporal"
	"github.com/feral-file/pplp-engine/internal/store"
	"github.com/feral-file/pplp-engine/internal/workflows"
)

// StuckRequestSweeperConfig holds configuration for the stuck request sweeper
type StuckRequestSweeperConfig struct {
	Interval       time.Duration // Time to sleep between sweep cycles
	StuckAfter     time.Duration // A threshold_met request without progress for this long is restarted
	BatchSize      int
	WorkerPoolSize int
	TaskQueue      string // Settlement task queue
}

// stuckRequestSweeper restarts settlement of requests whose threshold_met event was lost
// or whose settlement workflow failed
type stuckRequestSweeper struct {
	*loop
	config       *StuckRequestSweeperConfig
	store        store.Store
	orchestrator temporal.TemporalOrchestrator
	clock        adapter.Clock
	pool         pond.Pool
}

// NewStuckRequestSweeper creates a new stuck request sweeper
func NewStuckRequestSweeper(config *StuckRequestSweeperConfig, st store.Store, orchestrator temporal.TemporalOrchestrator, clock adapter.Clock) Sweeper {
	return &stuckRequestSweeper{
		loop:         newLoop("stuck-request-sweeper", config.Interval, clock),
		config:       config,
		store:        st,
		orchestrator: orchestrator,
		clock:        clock,
	}
}

func (s *stuckRequestSweeper) Start(ctx context.Context) error {
	s.pool = pond.NewPool(s.config.WorkerPoolSize, pond.WithQueueSize(s.config.BatchSize), pond.WithContext(ctx))
	return s.run(ctx, s.runSweepCycle, func() { s.pool.StopAndWait() })
}

func (s *stuckRequestSweeper) runSweepCycle(ctx context.Context) (bool, error) {
	startTime := s.clock.Now()
	requests, err := s.store.ListStaleMintRequests(ctx, domain.MintStatusThresholdMet, startTime.Add(-s.config.StuckAfter), s.config.BatchSize)
	if err != nil {
		return false, fmt.Errorf("failed to list stale mint requests: %w", err)
	}
	if len(requests) == 0 {
		return false, nil
	}

	var started, running atomic.Int32
	group := s.pool.NewGroup()
	for _, r := range requests {
		requestID := r.ID
		group.Submit(func() {
			ok, err := workflows.StartSettlement(ctx, s.orchestrator, s.config.TaskQueue, requestID)
			if err != nil {
				logger.ErrorCtx(ctx, err, logger.MintRequestID(requestID))
				return
			}
			if ok {
				started.Add(1)
			} else {
				running.Add(1)
			}
		})
	}
	if err := group.Wait(); err != nil {
		return false, err
	}

	logger.InfoCtx(ctx, "Stuck request sweep completed",
		zap.Duration("duration", s.clock.Since(startTime)),
		zap.Int("total", len(requests)),
		zap.Int32("restarted", started.Load()),
		zap.Int32("already_running", running.Load()),
	)
	// Requests whose workflow is still running stay stale, so a full batch is not a reason to loop
	return false, nil
}
