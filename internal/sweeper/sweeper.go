package sweeper

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/feral-file/pplp-engine/internal/adapter"
	"github.com/feral-file/pplp-engine/internal/logger"
)

// Sweeper defines the interface for sweeper implementations
// Sweepers are long-running background tasks that perform periodic maintenance
//
//go:generate mockgen -source=sweeper.go -destination=../mocks/sweeper.go -package=mocks -mock_names=Sweeper=MockSweeper
type Sweeper interface {
	// Start begins the sweeper's main loop
	// This is a blocking call that runs until the context is canceled
	Start(ctx context.Context) error

	// Stop gracefully stops the sweeper
	// This should wait for any in-progress work to complete
	Stop(ctx context.Context) error

	// Name returns the sweeper's name for logging and identification
	Name() string
}

// loop drives a sweep cycle on an interval until stopped. A loop runs once; Stop is final.
type loop struct {
	name      string
	interval  time.Duration
	clock     adapter.Clock
	running   atomic.Bool
	stopChan  chan struct{}
	stoppedCh chan struct{}
}

func newLoop(name string, interval time.Duration, clock adapter.Clock) *loop {
	return &loop{
		name:      name,
		interval:  interval,
		clock:     clock,
		stopChan:  make(chan struct{}),
		stoppedCh: make(chan struct{}),
	}
}

func (l *loop) Name() string {
	return l.name
}

// run calls cycle, then sleeps for the interval, until the context is canceled or Stop is called.
// A cycle that filled its batch is followed immediately by the next one.
func (l *loop) run(ctx context.Context, cycle func(ctx context.Context) (bool, error), cleanup func()) error {
	if !l.running.CompareAndSwap(false, true) {
		return fmt.Errorf("sweeper %s already running", l.name)
	}
	defer func() {
		l.running.Store(false)
		close(l.stoppedCh)
	}()

	logger.InfoCtx(ctx, "Starting sweeper", zap.String("sweeper", l.name), zap.Duration("interval", l.interval))

	for {
		select {
		case <-ctx.Done():
			logger.InfoCtx(ctx, "Sweeper stopping due to context cancellation", zap.String("sweeper", l.name))
			cleanup()
			return nil
		case <-l.stopChan:
			logger.InfoCtx(ctx, "Sweeper stop requested", zap.String("sweeper", l.name))
			cleanup()
			return nil
		default:
		}

		more, err := cycle(ctx)
		if err != nil && !errors.Is(err, context.Canceled) {
			logger.ErrorCtx(ctx, err, zap.String("sweeper", l.name))
		}
		if more && err == nil {
			continue
		}
		l.sleep(ctx, l.interval)
	}
}

// Stop gracefully stops the loop with timeout support
func (l *loop) Stop(ctx context.Context) error {
	if !l.running.CompareAndSwap(true, false) {
		return nil
	}

	logger.InfoCtx(ctx, "Stopping sweeper", zap.String("sweeper", l.name))
	close(l.stopChan)

	select {
	case <-l.stoppedCh:
		logger.InfoCtx(ctx, "Sweeper stopped gracefully", zap.String("sweeper", l.name))
		return nil
	case <-ctx.Done():
		logger.WarnCtx(ctx, "Sweeper stop interrupted by context timeout", zap.String("sweeper", l.name))
		return ctx.Err()
	}
}

// sleep returns false when interrupted by cancellation or stop
func (l *loop) sleep(ctx context.Context, d time.Duration) bool {
	select {
	case <-l.clock.After(d):
		return true
	case <-ctx.Done():
		return false
	case <-l.stopChan:
		return false
	}
}
