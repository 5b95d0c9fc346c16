package ratelimit

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-redis/redis_rate/v10"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/feral-file/pplp-engine/internal/adapter"
	"github.com/feral-file/pplp-engine/internal/config"
	"github.com/feral-file/pplp-engine/internal/domain"
	"github.com/feral-file/pplp-engine/internal/logger"
)

const (
	defaultKeyPrefix        = "pplp:submissions:"
	defaultFallbackFactor   = 0.5
	healthCheckInterval     = 10 * time.Second
	healthCheckPingTimeout  = 2 * time.Second
	initialPingTimeout      = 5 * time.Second
	submissionLimiterPeriod = time.Minute
)

// ErrLimiterClosed is returned by Allow after Close
var ErrLimiterClosed = errors.New("submission limiter is closed")

// LimitedError is returned when an actor exhausted its submission budget
type LimitedError struct {
	ActorID    string
	RetryAfter time.Duration
}

func (e *LimitedError) Error() string {
	return fmt.Sprintf("actor %s is rate limited, retry after %s", e.ActorID, e.RetryAfter)
}

func (e *LimitedError) Unwrap() error {
	return domain.ErrRateLimited
}

// SubmissionLimiter limits action submissions per actor
//
//go:generate mockgen -source=limiter.go -destination=../mocks/submission_limiter.go -package=mocks -mock_names=SubmissionLimiter=MockSubmissionLimiter
type SubmissionLimiter interface {
	// Allow spends one submission of actorID's budget.
	// Returns a *LimitedError when the budget is exhausted. Never blocks on the budget.
	Allow(ctx context.Context, actorID string) error

	// Close stops the health monitor and closes the Redis connection
	Close() error
}

type limiter struct {
	config      config.RateLimitConfig
	redis       adapter.RedisClient
	distributed adapter.RedisRateLimiter
	clock       adapter.Clock

	mu    sync.Mutex
	local map[string]*rate.Limiter

	redisAvailable atomic.Bool
	closed         atomic.Bool
	closeOnce      sync.Once
	done           chan struct{}
	wg             sync.WaitGroup
}

// NewSubmissionLimiter creates a submission limiter.
// rc may be nil, in which case only the local fallback limiter is used.
func NewSubmissionLimiter(cfg config.RateLimitConfig, rc adapter.RedisClient, clock adapter.Clock) (SubmissionLimiter, error) {
	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	l := &limiter{
		config: cfg,
		redis:  rc,
		clock:  clock,
		local:  make(map[string]*rate.Limiter),
		done:   make(chan struct{}),
	}

	if rc == nil {
		if !cfg.EnableLocalFallback {
			return nil, errors.New("redis client is required when local fallback is disabled")
		}
		logger.Info("Submission limiter running on local limiters only")
		return l, nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), initialPingTimeout)
	defer cancel()

	redisAvailable := true
	if err := rc.Ping(ctx); err != nil {
		redisAvailable = false
		if !cfg.EnableLocalFallback {
			return nil, fmt.Errorf("redis unavailable and fallback disabled: %w", err)
		}
		logger.Warn("Redis unavailable, will use local fallback", zap.Error(err))
	}
	l.redisAvailable.Store(redisAvailable)
	l.distributed = rc.NewRateLimiter()

	l.wg.Add(1)
	go l.monitorRedisHealth()

	logger.Info("Submission limiter initialized",
		zap.Int("submissions_per_minute", cfg.SubmissionsPerMinute),
		zap.Int("burst", cfg.Burst),
		zap.Bool("local_fallback", cfg.EnableLocalFallback),
	)

	return l, nil
}

func (l *limiter) Allow(ctx context.Context, actorID string) error {
	if l.closed.Load() {
		return ErrLimiterClosed
	}

	if l.distributed != nil && l.redisAvailable.Load() {
		res, err := l.distributed.Allow(ctx, l.config.KeyPrefix+actorID, redis_rate.Limit{
			Rate:   l.config.SubmissionsPerMinute,
			Burst:  l.config.Burst,
			Period: submissionLimiterPeriod,
		})
		if err == nil {
			if res.Allowed > 0 {
				return nil
			}
			return &LimitedError{ActorID: actorID, RetryAfter: res.RetryAfter}
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}

		l.redisAvailable.Store(false)
		if !l.config.EnableLocalFallback {
			return fmt.Errorf("redis rate limiter unavailable: %w", err)
		}
		logger.WarnCtx(ctx, "Redis rate limiter error, falling back to local",
			zap.String("actor_id", actorID),
			zap.Error(err),
		)
	}

	if !l.config.EnableLocalFallback {
		return errors.New("redis rate limiter unavailable")
	}

	return l.allowLocal(actorID)
}

// allowLocal spends a token of the actor's in-process limiter
func (l *limiter) allowLocal(actorID string) error {
	now := l.clock.Now()

	l.mu.Lock()
	lim, ok := l.local[actorID]
	if !ok {
		lim = l.newLocalLimiter()
		l.local[actorID] = lim
	}
	l.mu.Unlock()

	reservation := lim.ReserveN(now, 1)
	if !reservation.OK() {
		return &LimitedError{ActorID: actorID, RetryAfter: submissionLimiterPeriod}
	}
	if delay := reservation.DelayFrom(now); delay > 0 {
		reservation.CancelAt(now)
		return &LimitedError{ActorID: actorID, RetryAfter: delay}
	}
	return nil
}

// newLocalLimiter builds a per-actor limiter at a fraction of the distributed budget,
// since every API replica holds its own copy
func (l *limiter) newLocalLimiter() *rate.Limiter {
	perMinute := max(float64(l.config.SubmissionsPerMinute)*l.config.LocalFallbackMultiplier, 1.0)
	burst := max(int(float64(l.config.Burst)*l.config.LocalFallbackMultiplier), 1)
	return rate.NewLimiter(rate.Limit(perMinute/submissionLimiterPeriod.Seconds()), burst)
}

// pruneLocal drops limiters whose bucket refilled, they carry no state worth keeping
func (l *limiter) pruneLocal() {
	now := l.clock.Now()

	l.mu.Lock()
	defer l.mu.Unlock()
	for actorID, lim := range l.local {
		if lim.TokensAt(now) >= float64(lim.Burst()) {
			delete(l.local, actorID)
		}
	}
}

// monitorRedisHealth periodically checks Redis health and updates availability status
func (l *limiter) monitorRedisHealth() {
	defer l.wg.Done()

	ticker := l.clock.NewTicker(healthCheckInterval)
	defer ticker.Stop()

	for {
		select {
		case <-l.done:
			return
		case <-ticker.C:
		}

		ctx, cancel := context.WithTimeout(context.Background(), healthCheckPingTimeout)
		err := l.redis.Ping(ctx)
		cancel()

		available := err == nil
		wasAvailable := l.redisAvailable.Swap(available)
		if !wasAvailable && available {
			logger.Info("Redis connection restored")
		}

		l.pruneLocal()
	}
}

func (l *limiter) Close() error {
	var err error
	l.closeOnce.Do(func() {
		l.closed.Store(true)
		close(l.done)
		l.wg.Wait()

		if l.redis != nil {
			if closeErr := l.redis.Close(); closeErr != nil {
				logger.Warn("Error closing Redis connection", zap.Error(closeErr))
				err = closeErr
			}
		}
	})
	return err
}

// validateConfig validates and sets defaults for the configuration
func validateConfig(cfg *config.RateLimitConfig) error {
	if cfg.SubmissionsPerMinute <= 0 {
		return fmt.Errorf("submissions_per_minute must be positive")
	}
	if cfg.Burst <= 0 {
		cfg.Burst = cfg.SubmissionsPerMinute
	}
	if cfg.KeyPrefix == "" {
		cfg.KeyPrefix = defaultKeyPrefix
	}
	if cfg.LocalFallbackMultiplier <= 0 || cfg.LocalFallbackMultiplier > 1 {
		cfg.LocalFallbackMultiplier = defaultFallbackFactor
	}
	return nil
}
