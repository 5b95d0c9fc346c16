package sweeper

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/feral-file/pplp-engine/internal/adapter"
	"github.com/feral-file/pplp-engine/internal/audit"
	"github.com/feral-file/pplp-engine/internal/logger"
)

// AuditStreamerConfig holds configuration for the audit streamer loop
type AuditStreamerConfig struct {
	Interval  time.Duration
	BatchSize int
}

type auditStreamer struct {
	*loop
	config   *AuditStreamerConfig
	streamer audit.Streamer
}

// NewAuditStreamer runs the audit streamer until stopped
func NewAuditStreamer(config *AuditStreamerConfig, streamer audit.Streamer, clock adapter.Clock) Sweeper {
	return &auditStreamer{
		loop:     newLoop("audit-streamer", config.Interval, clock),
		config:   config,
		streamer: streamer,
	}
}

func (s *auditStreamer) Start(ctx context.Context) error {
	return s.run(ctx, s.runSweepCycle, func() {})
}

func (s *auditStreamer) runSweepCycle(ctx context.Context) (bool, error) {
	n, err := s.streamer.StreamOnce(ctx)
	if n > 0 {
		logger.InfoCtx(ctx, "Policy changes streamed", zap.Int("count", n))
	}
	if err != nil {
		return false, err
	}
	return n == s.config.BatchSize, nil
}
