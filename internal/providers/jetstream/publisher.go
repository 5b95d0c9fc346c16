package jetstream

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
	"go.uber.org/zap"

	"github.com/feral-file/pplp-engine/internal/adapter"
	"github.com/feral-file/pplp-engine/internal/domain"
	"github.com/feral-file/pplp-engine/internal/logger"
	"github.com/feral-file/pplp-engine/internal/messaging"
)

// Config holds the configuration for NATS JetStream connection
type Config struct {
	URL            string
	StreamName     string
	MaxReconnects  int
	ReconnectWait  time.Duration
	ConnectionName string
	// DuplicateWindow is how long the stream remembers message ids
	DuplicateWindow time.Duration
}

type publisher struct {
	nc adapter.NatsConn
	js adapter.JetStream
}

// ConnectionOptions returns the NATS options shared by every engine connection
func ConnectionOptions(cfg Config) []nats.Option {
	return []nats.Option{
		nats.Name(cfg.ConnectionName),
		nats.MaxReconnects(cfg.MaxReconnects),
		nats.ReconnectWait(cfg.ReconnectWait),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			if err != nil {
				logger.Error(err, zap.String("message", "Disconnected from NATS"))
			}
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			logger.Info("Reconnected to NATS", zap.String("url", nc.ConnectedUrl()))
		}),
		nats.ClosedHandler(func(nc *nats.Conn) {
			logger.Info("NATS connection closed")
		}),
	}
}

// StreamConfig is the engine event stream: every pplp.> subject, deduplicated by message id
func StreamConfig(cfg Config) jetstream.StreamConfig {
	window := cfg.DuplicateWindow
	if window <= 0 {
		window = 2 * time.Minute
	}
	return jetstream.StreamConfig{
		Name:       cfg.StreamName,
		Subjects:   []string{messaging.SubjectPrefix + ">"},
		Retention:  jetstream.LimitsPolicy,
		Storage:    jetstream.FileStorage,
		Duplicates: window,
	}
}

// NewPublisher connects to NATS, makes sure the engine stream exists and returns a publisher
func NewPublisher(ctx context.Context, cfg Config, natsJS adapter.NatsJetStream) (messaging.Publisher, error) {
	nc, js, err := natsJS.Connect(cfg.URL, ConnectionOptions(cfg)...)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS and create JetStream: %w", err)
	}

	if err := js.CreateOrUpdateStream(ctx, StreamConfig(cfg)); err != nil {
		nc.Close()
		return nil, fmt.Errorf("failed to create stream %s: %w", cfg.StreamName, err)
	}

	return &publisher{nc: nc, js: js}, nil
}

// Publish publishes an engine event to NATS JetStream
func (p *publisher) Publish(ctx context.Context, event *domain.EngineEvent) error {
	logger.DebugCtx(ctx, "Publishing engine event", zap.Any("event", event))

	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	_, err = p.js.Publish(ctx, messaging.Subject(event.Type), data, jetstream.WithMsgID(messaging.MessageID(event)))
	if err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}

	return nil
}

// Close drains and closes the NATS connection
func (p *publisher) Close() {
	if p.nc == nil {
		return
	}

	if err := p.nc.Drain(); err != nil {
		logger.Error(err, zap.String("message", "Failed to drain NATS connection"))
		p.nc.Close()
	}
}
