// Package bridge turns threshold_met events into settlement workflows
package bridge

import (
	"context"
	"fmt"
	"time"

	"github.com/nats-io/nats.go/jetstream"
	"go.uber.org/zap"

	"github.com/feral-file/pplp-engine/internal/adapter"
	"github.com/feral-file/pplp-engine/internal/domain"
	"github.com/feral-file/pplp-engine/internal/logger"
	"github.com/feral-file/pplp-engine/internal/messaging"
	pjs "github.com/feral-file/pplp-engine/internal/providers/jetstream"
	"github.com/feral-file/pplp-engine/internal/providers/temporal"
	"github.com/feral-file/pplp-engine/internal/workflows"
)

// Config holds the configuration for the event bridge
type Config struct {
	URL               string
	StreamName        string
	ConsumerName      string
	MaxReconnects     int
	ReconnectWait     time.Duration
	ConnectionName    string
	AckWaitTimeout    time.Duration
	MaxDeliver        int
	TemporalTaskQueue string
}

// Bridge defines the interface for the event bridge
type Bridge interface {
	// Run consumes threshold_met events until the context is cancelled
	Run(ctx context.Context) error
	// Close closes the bridge and cleans up resources
	Close()
}

type bridge struct {
	nc           adapter.NatsConn
	js           adapter.JetStream
	orchestrator temporal.TemporalOrchestrator
	config       Config
}

// NewBridge creates a new event bridge
func NewBridge(
	cfg Config,
	natsJS adapter.NatsJetStream,
	orchestrator temporal.TemporalOrchestrator,
) (Bridge, error) {
	nc, js, err := natsJS.Connect(cfg.URL, pjs.ConnectionOptions(cfg.streamConfig())...)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS and create JetStream: %w", err)
	}

	return &bridge{
		nc:           nc,
		js:           js,
		orchestrator: orchestrator,
		config:       cfg,
	}, nil
}

func (c Config) streamConfig() pjs.Config {
	return pjs.Config{
		URL:            c.URL,
		StreamName:     c.StreamName,
		MaxReconnects:  c.MaxReconnects,
		ReconnectWait:  c.ReconnectWait,
		ConnectionName: c.ConnectionName,
	}
}

// ConsumerConfig is the durable threshold_met consumer of the bridge
func ConsumerConfig(cfg Config) jetstream.ConsumerConfig {
	return jetstream.ConsumerConfig{
		Durable:       cfg.ConsumerName,
		AckPolicy:     jetstream.AckExplicitPolicy,
		AckWait:       cfg.AckWaitTimeout,
		MaxDeliver:    cfg.MaxDeliver,
		FilterSubject: messaging.Subject(domain.EventTypeMintThresholdMet),
	}
}

// Run starts the event bridge
func (b *bridge) Run(ctx context.Context) error {
	logger.Info("Starting event bridge", zap.String("stream", b.config.StreamName), zap.String("consumer", b.config.ConsumerName))

	if err := b.js.CreateOrUpdateStream(ctx, pjs.StreamConfig(b.config.streamConfig())); err != nil {
		return fmt.Errorf("failed to create stream %s: %w", b.config.StreamName, err)
	}

	consumer, err := b.js.CreateOrUpdateConsumer(ctx, b.config.StreamName, ConsumerConfig(b.config))
	if err != nil {
		return fmt.Errorf("failed to create/update consumer: %w", err)
	}

	consumerInfo, err := consumer.Info(ctx)
	if err != nil {
		return fmt.Errorf("failed to get consumer info: %w", err)
	}
	logger.Info("Consumer created/retrieved", zap.String("consumer", consumerInfo.Name))

	msgChan := make(chan adapter.Message, 100)
	sub, err := consumer.Consume(func(msg adapter.Message) {
		msgChan <- msg
	})
	if err != nil {
		return fmt.Errorf("failed to create subscription: %w", err)
	}
	defer sub.Stop()

	logger.Info("Started consuming messages")

	for {
		select {
		case <-ctx.Done():
			logger.Info("Shutting down event bridge")
			return ctx.Err()
		case msg := <-msgChan:
			go b.handleMessage(ctx, msg)
		}
	}
}

// handleMessage starts the settlement of one threshold_met event.
// Malformed events are terminated, start failures are redelivered, an existing settlement is acknowledged.
func (b *bridge) handleMessage(ctx context.Context, msg adapter.Message) {
	var delivered uint64
	if metadata, err := msg.Metadata(); err == nil && metadata != nil {
		delivered = metadata.NumDelivered
	}

	event, err := messaging.DecodeEvent(msg.Data())
	if err == nil && (event.Type != domain.EventTypeMintThresholdMet || event.MintRequestID == "") {
		err = fmt.Errorf("unexpected %s event without mint request", event.Type)
	}
	if err != nil {
		logger.Error(err, zap.String("message", "Dropping malformed event"), zap.String("subject", msg.Subject()))
		if err := msg.Term(); err != nil {
			logger.Error(err, zap.String("message", "Failed to terminate message"))
		}
		return
	}

	logger.Info("Received event",
		zap.String("eventType", string(event.Type)),
		logger.MintRequestID(event.MintRequestID),
		logger.ActionID(event.ActionID),
		zap.Uint64("deliveryCount", delivered))

	if _, err := workflows.StartSettlement(ctx, b.orchestrator, b.config.TemporalTaskQueue, event.MintRequestID); err != nil {
		logger.Error(err, zap.String("message", "Failed to start settlement"), logger.MintRequestID(event.MintRequestID))
		if err := msg.Nak(); err != nil {
			logger.Error(err, zap.String("message", "Failed to NAK message"))
		}
		return
	}

	if err := msg.Ack(); err != nil {
		logger.Error(err, zap.String("message", "Failed to ACK message"))
	}
}

// Close closes the bridge and cleans up resources
func (b *bridge) Close() {
	if b.nc == nil {
		return
	}

	b.nc.Close()
}
