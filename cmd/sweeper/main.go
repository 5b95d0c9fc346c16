package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"go.temporal.io/sdk/client"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/feral-file/pplp-engine/internal/adapter"
	"github.com/feral-file/pplp-engine/internal/audit"
	"github.com/feral-file/pplp-engine/internal/config"
	"github.com/feral-file/pplp-engine/internal/epoch"
	"github.com/feral-file/pplp-engine/internal/evidence"
	"github.com/feral-file/pplp-engine/internal/logger"
	"github.com/feral-file/pplp-engine/internal/metrics"
	"github.com/feral-file/pplp-engine/internal/nonce"
	"github.com/feral-file/pplp-engine/internal/pipeline"
	"github.com/feral-file/pplp-engine/internal/policy"
	"github.com/feral-file/pplp-engine/internal/providers/jetstream"
	temporal "github.com/feral-file/pplp-engine/internal/providers/temporal"
	"github.com/feral-file/pplp-engine/internal/scoring"
	"github.com/feral-file/pplp-engine/internal/store"
	"github.com/feral-file/pplp-engine/internal/sweeper"
)

var (
	configFile = flag.String("config", "", "Path to configuration file")
	envPath    = flag.String("env", "config/", "Path to environment files")
)

func main() {
	flag.Parse()

	// Load configuration
	config.ChdirRepoRoot()
	cfg, err := config.LoadSweeperConfig(*configFile, *envPath)
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize logger with sentry integration
	err = logger.Initialize(logger.Config{
		Debug:           cfg.Debug,
		SentryDSN:       cfg.SentryDSN,
		BreadcrumbLevel: zapcore.InfoLevel,
		Tags: map[string]string{
			"service": "pplp-sweeper",
		},
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Flush(2 * time.Second)
	logger.InfoCtx(ctx, "Starting Sweeper")

	shutdownMetrics, err := metrics.Setup(ctx, metrics.Config{
		Enabled:        cfg.Metrics.Enabled,
		ServiceName:    "pplp-sweeper",
		OTLPEndpoint:   cfg.Metrics.OTLPEndpoint,
		Insecure:       cfg.Metrics.Insecure,
		ExportInterval: cfg.Metrics.ExportInterval,
	})
	if err != nil {
		logger.FatalCtx(ctx, "Failed to set up metrics", zap.Error(err))
	}
	recorder, err := metrics.NewGlobal()
	if err != nil {
		logger.FatalCtx(ctx, "Failed to create metrics recorder", zap.Error(err))
	}

	// Connect to database
	db, err := store.Open(cfg.Database.DSN(), "")
	if err != nil {
		logger.FatalCtx(ctx, "Failed to connect to database", zap.Error(err), zap.String("host", cfg.Database.Host))
	}
	if err := store.ConfigureConnectionPool(db, cfg.Database.MaxOpenConns, cfg.Database.MaxIdleConns, cfg.Database.ConnMaxLifetime, cfg.Database.ConnMaxIdleTime); err != nil {
		logger.FatalCtx(ctx, "Failed to configure connection pool", zap.Error(err))
	}
	logger.InfoCtx(ctx, "Connected to database",
		zap.Int("max_open_conns", cfg.Database.MaxOpenConns),
		zap.Int("max_idle_conns", cfg.Database.MaxIdleConns),
	)
	dataStore := store.NewPGStore(db)

	clock := adapter.NewClock()

	var objectStorage adapter.ObjectStorage
	if cfg.Evidence.Bucket != "" {
		objectStorage, err = adapter.NewS3Client(ctx, cfg.Evidence.Region, cfg.Evidence.Endpoint)
		if err != nil {
			logger.FatalCtx(ctx, "Failed to create S3 client", zap.Error(err))
		}
	}

	var sweepers []sweeper.Sweeper

	if cfg.PendingActionSweeper.Enabled {
		publisher, err := jetstream.NewPublisher(ctx, jetstream.Config{
			URL:            cfg.NATS.URL,
			StreamName:     cfg.NATS.StreamName,
			MaxReconnects:  cfg.NATS.MaxReconnects,
			ReconnectWait:  cfg.NATS.ReconnectWait,
			ConnectionName: "pplp-sweeper",
		}, adapter.NewNatsJetStream())
		if err != nil {
			logger.FatalCtx(ctx, "Failed to create event publisher", zap.Error(err))
		}
		defer publisher.Close()

		validator, err := scoring.NewMetadataValidator()
		if err != nil {
			logger.FatalCtx(ctx, "Failed to compile metadata schemas", zap.Error(err))
		}

		// Pending actions were validated and rate limited on submission; the sweeper only scores them
		p := pipeline.New(pipeline.Dependencies{
			Store:     dataStore,
			Resolver:  policy.NewResolver(dataStore),
			Engine:    scoring.NewEngine(),
			Validator: validator,
			Evidence: evidence.NewVerifier(evidence.Config{
				Bucket:          cfg.Evidence.Bucket,
				Prefix:          cfg.Evidence.Prefix,
				MaxPayloadBytes: cfg.Evidence.MaxPayloadBytes,
			}, objectStorage),
			Enforcer:  epoch.NewEnforcer(dataStore, clock, recorder),
			Nonces:    nonce.NewGuard(dataStore, clock),
			Publisher: publisher,
			Metrics:   recorder,
			Clock:     clock,
		})

		sweepers = append(sweepers, sweeper.NewPendingActionSweeper(&sweeper.PendingActionSweeperConfig{
			Interval:       cfg.PendingActionSweeper.Interval,
			GracePeriod:    cfg.PendingActionSweeper.GracePeriod,
			BatchSize:      cfg.PendingActionSweeper.BatchSize,
			WorkerPoolSize: cfg.PendingActionSweeper.Worker.PoolSize,
		}, dataStore, p, clock))
	}

	if cfg.StuckRequestSweeper.Enabled {
		temporalClient, err := client.Dial(client.Options{
			HostPort:  cfg.Temporal.HostPort,
			Namespace: cfg.Temporal.Namespace,
			Logger:    temporal.NewZapLoggerAdapter(logger.Default()),
		})
		if err != nil {
			logger.FatalCtx(ctx, "Failed to connect to Temporal", zap.Error(err), zap.String("host_port", cfg.Temporal.HostPort))
		}
		defer temporalClient.Close()
		logger.InfoCtx(ctx, "Connected to Temporal", zap.String("namespace", cfg.Temporal.Namespace))

		sweepers = append(sweepers, sweeper.NewStuckRequestSweeper(&sweeper.StuckRequestSweeperConfig{
			Interval:       cfg.StuckRequestSweeper.Interval,
			StuckAfter:     cfg.StuckRequestSweeper.StuckAfter,
			BatchSize:      cfg.StuckRequestSweeper.BatchSize,
			WorkerPoolSize: cfg.StuckRequestSweeper.Worker.PoolSize,
			TaskQueue:      cfg.Temporal.SettlementTaskQueue,
		}, dataStore, temporalClient, clock))
	}

	if cfg.AuditStreamer.Enabled {
		writer := adapter.NewKafkaWriter(cfg.Kafka.Brokers, cfg.Kafka.Topic, cfg.Kafka.ClientID, cfg.Kafka.WriteTimeout)
		defer func() { _ = writer.Close() }()

		streamer := audit.NewStreamer(audit.StreamerConfig{
			BatchSize:     cfg.AuditStreamer.BatchSize,
			ArchiveBucket: cfg.Evidence.Bucket,
			ArchivePrefix: cfg.Evidence.AuditArchivePrefix,
		}, dataStore, writer, objectStorage, clock)

		sweepers = append(sweepers, sweeper.NewAuditStreamer(&sweeper.AuditStreamerConfig{
			Interval:  cfg.AuditStreamer.Interval,
			BatchSize: cfg.AuditStreamer.BatchSize,
		}, streamer, clock))
	}

	if len(sweepers) == 0 {
		logger.FatalCtx(ctx, "No sweeper enabled")
	}

	var wg sync.WaitGroup
	errChan := make(chan error, len(sweepers))
	for _, s := range sweepers {
		wg.Add(1)
		go func(s sweeper.Sweeper) {
			defer wg.Done()
			if err := s.Start(ctx); err != nil {
				errChan <- fmt.Errorf("%s: %w", s.Name(), err)
			}
		}(s)
		logger.InfoCtx(ctx, "Started sweeper", zap.String("sweeper", s.Name()))
	}

	// Wait for interrupt signal or error
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		logger.InfoCtx(ctx, "Received shutdown signal", zap.String("signal", sig.String()))
	case err := <-errChan:
		logger.ErrorCtx(ctx, err)
	}

	// Give the sweepers time to finish their cycle
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	for _, s := range sweepers {
		if err := s.Stop(shutdownCtx); err != nil {
			logger.ErrorCtx(shutdownCtx, err, zap.String("sweeper", s.Name()))
		}
	}
	cancel()
	wg.Wait()

	if err := shutdownMetrics(shutdownCtx); err != nil {
		logger.WarnCtx(shutdownCtx, "Failed to flush metrics", zap.Error(err))
	}

	logger.InfoCtx(shutdownCtx, "Sweeper stopped")
}
