package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/feral-file/pplp-engine/internal/adapter"
	"github.com/feral-file/pplp-engine/internal/api/middleware"
	"github.com/feral-file/pplp-engine/internal/api/server"
	"github.com/feral-file/pplp-engine/internal/api/shared/executor"
	"github.com/feral-file/pplp-engine/internal/attestation"
	"github.com/feral-file/pplp-engine/internal/config"
	"github.com/feral-file/pplp-engine/internal/epoch"
	"github.com/feral-file/pplp-engine/internal/evidence"
	"github.com/feral-file/pplp-engine/internal/ledger"
	"github.com/feral-file/pplp-engine/internal/logger"
	"github.com/feral-file/pplp-engine/internal/metrics"
	"github.com/feral-file/pplp-engine/internal/nonce"
	"github.com/feral-file/pplp-engine/internal/pipeline"
	"github.com/feral-file/pplp-engine/internal/policy"
	"github.com/feral-file/pplp-engine/internal/providers/jetstream"
	"github.com/feral-file/pplp-engine/internal/ratelimit"
	"github.com/feral-file/pplp-engine/internal/scoring"
	"github.com/feral-file/pplp-engine/internal/store"
)

var (
	configFile = flag.String("config", "", "Path to configuration file")
	envPath    = flag.String("env", "config/", "Path to environment files")
)

func main() {
	flag.Parse()

	// Load configuration
	config.ChdirRepoRoot()
	cfg, err := config.LoadAPIConfig(*configFile, *envPath)
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
			"service": "pplp-api",
		},
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Flush(2 * time.Second)
	logger.InfoCtx(ctx, "Starting PPLP API")

	// Metrics
	shutdownMetrics, err := metrics.Setup(ctx, metrics.Config{
		Enabled:        cfg.Metrics.Enabled,
		ServiceName:    "pplp-api",
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

	// Connect to database, reads go to the replica when one is configured
	readDSN := ""
	if cfg.Database.ReadHost != "" {
		readDSN = cfg.Database.ReadDSN()
	}
	db, err := store.Open(cfg.Database.DSN(), readDSN)
	if err != nil {
		logger.FatalCtx(ctx, "Failed to connect to database", zap.Error(err), zap.String("host", cfg.Database.Host))
	}
	if err := store.ConfigureConnectionPool(db, cfg.Database.MaxOpenConns, cfg.Database.MaxIdleConns, cfg.Database.ConnMaxLifetime, cfg.Database.ConnMaxIdleTime); err != nil {
		logger.FatalCtx(ctx, "Failed to configure connection pool", zap.Error(err))
	}
	logger.InfoCtx(ctx, "Connected to database",
		zap.Bool("read_replica", readDSN != ""),
		zap.Int("max_open_conns", cfg.Database.MaxOpenConns),
	)
	dataStore := store.NewPGStore(db)

	clock := adapter.NewClock()

	// Engine event publisher
	publisher, err := jetstream.NewPublisher(ctx, jetstream.Config{
		URL:            cfg.NATS.URL,
		StreamName:     cfg.NATS.StreamName,
		MaxReconnects:  cfg.NATS.MaxReconnects,
		ReconnectWait:  cfg.NATS.ReconnectWait,
		ConnectionName: "pplp-api",
	}, adapter.NewNatsJetStream())
	if err != nil {
		logger.FatalCtx(ctx, "Failed to create event publisher", zap.Error(err))
	}
	defer publisher.Close()

	// Evidence store
	var objectStorage adapter.ObjectStorage
	if cfg.Evidence.Bucket != "" {
		objectStorage, err = adapter.NewS3Client(ctx, cfg.Evidence.Region, cfg.Evidence.Endpoint)
		if err != nil {
			logger.FatalCtx(ctx, "Failed to create S3 client", zap.Error(err))
		}
	} else {
		logger.WarnCtx(ctx, "Evidence bucket not configured, s3 evidence will be recorded unverified")
	}
	verifier := evidence.NewVerifier(evidence.Config{
		Bucket:          cfg.Evidence.Bucket,
		Prefix:          cfg.Evidence.Prefix,
		MaxPayloadBytes: cfg.Evidence.MaxPayloadBytes,
	}, objectStorage)

	// Submission rate limiting
	var limiter ratelimit.SubmissionLimiter
	if cfg.RateLimit.Enabled {
		var redisClient adapter.RedisClient
		if cfg.Redis.Addr != "" {
			redisClient = adapter.NewRedisClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		}
		limiter, err = ratelimit.NewSubmissionLimiter(cfg.RateLimit, redisClient, clock)
		if err != nil {
			logger.FatalCtx(ctx, "Failed to create submission limiter", zap.Error(err))
		}
		defer func() { _ = limiter.Close() }()
	}

	validator, err := scoring.NewMetadataValidator()
	if err != nil {
		logger.FatalCtx(ctx, "Failed to compile metadata schemas", zap.Error(err))
	}

	resolver := policy.NewResolver(dataStore)
	enforcer := epoch.NewEnforcer(dataStore, clock, recorder)
	p := pipeline.New(pipeline.Dependencies{
		Store:     dataStore,
		Resolver:  resolver,
		Engine:    scoring.NewEngine(),
		Validator: validator,
		Evidence:  verifier,
		Enforcer:  enforcer,
		Nonces:    nonce.NewGuard(dataStore, clock),
		Limiter:   limiter,
		Publisher: publisher,
		Metrics:   recorder,
		Clock:     clock,
	})

	// Allocation lookups need the ledger; the API runs without it when no RPC is configured
	var allocations ledger.Ledger
	if cfg.Ledger.RPCURL != "" && cfg.Ledger.OperatorKey != "" {
		ethClient, err := adapter.NewEthClientDialer().Dial(ctx, cfg.Ledger.RPCURL)
		if err != nil {
			logger.FatalCtx(ctx, "Failed to dial ledger RPC", zap.Error(err))
		}
		defer ethClient.Close()

		ledgerCfg, err := ledger.ConfigFromSettings(cfg.Ledger)
		if err != nil {
			logger.FatalCtx(ctx, "Invalid ledger configuration", zap.Error(err))
		}
		allocations, err = ledger.NewEVMLedger(ctx, ledgerCfg, ethClient, dataStore, clock)
		if err != nil {
			logger.FatalCtx(ctx, "Failed to create ledger adapter", zap.Error(err))
		}
	} else {
		logger.WarnCtx(ctx, "Ledger not configured, allocation lookups are disabled")
	}

	exec := executor.NewExecutor(executor.Dependencies{
		Store:       dataStore,
		Pipeline:    p,
		Policies:    policy.NewService(dataStore, clock),
		Resolver:    resolver,
		Attestation: attestation.NewCoordinator(dataStore, publisher, recorder, clock),
		Enforcer:    enforcer,
		Ledger:      allocations,
	})

	srv := server.New(server.Config{
		Debug:        cfg.Debug,
		Host:         cfg.Server.Host,
		Port:         cfg.Server.Port,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
		CORSOrigins:  cfg.Server.CORSOrigins,
		Auth: middleware.AuthConfig{
			JWTPublicKey: cfg.Auth.JWTPublicKey,
			APIKeys:      cfg.Auth.APIKeys,
		},
	}, exec)

	errCh := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil {
			errCh <- err
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case sig := <-sigCh:
		logger.InfoCtx(ctx, "Received shutdown signal", zap.String("signal", sig.String()))
	case err := <-errCh:
		logger.ErrorCtx(ctx, err, zap.String("component", "server"))
	}
	cancel()

	// The original ctx is canceled by now
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.ErrorCtx(shutdownCtx, err, zap.String("component", "server"))
	}
	if err := shutdownMetrics(shutdownCtx); err != nil {
		logger.WarnCtx(shutdownCtx, "Failed to flush metrics", zap.Error(err))
	}

	logger.Info("API server stopped")
}
