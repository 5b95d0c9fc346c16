package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.temporal.io/sdk/client"
	"go.temporal.io/sdk/interceptor"
	"go.temporal.io/sdk/worker"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/feral-file/pplp-engine/internal/adapter"
	"github.com/feral-file/pplp-engine/internal/config"
	"github.com/feral-file/pplp-engine/internal/ledger"
	"github.com/feral-file/pplp-engine/internal/logger"
	"github.com/feral-file/pplp-engine/internal/metrics"
	"github.com/feral-file/pplp-engine/internal/nonce"
	"github.com/feral-file/pplp-engine/internal/providers/jetstream"
	temporal "github.com/feral-file/pplp-engine/internal/providers/temporal"
	"github.com/feral-file/pplp-engine/internal/store"
	"github.com/feral-file/pplp-engine/internal/workflows"
)

var (
	configFile = flag.String("config", "", "Path to configuration file")
	envPath    = flag.String("env", "config/", "Path to environment files")
)

func main() {
	flag.Parse()

	// Load configuration
	config.ChdirRepoRoot()
	cfg, err := config.LoadWorkerConfig(*configFile, *envPath)
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
			"service": "pplp-worker",
		},
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Flush(2 * time.Second)
	logger.InfoCtx(ctx, "Starting settlement worker")

	shutdownMetrics, err := metrics.Setup(ctx, metrics.Config{
		Enabled:        cfg.Metrics.Enabled,
		ServiceName:    "pplp-worker",
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
	logger.InfoCtx(ctx, "Connected to database")
	dataStore := store.NewPGStore(db)

	clock := adapter.NewClock()

	// Connect to the ledger
	ethClient, err := adapter.NewEthClientDialer().Dial(ctx, cfg.Ledger.RPCURL)
	if err != nil {
		logger.FatalCtx(ctx, "Failed to dial ledger RPC", zap.Error(err))
	}
	defer ethClient.Close()

	ledgerCfg, err := ledger.ConfigFromSettings(cfg.Ledger)
	if err != nil {
		logger.FatalCtx(ctx, "Invalid ledger configuration", zap.Error(err))
	}
	issuance, err := ledger.NewEVMLedger(ctx, ledgerCfg, ethClient, dataStore, clock)
	if err != nil {
		logger.FatalCtx(ctx, "Failed to create ledger adapter", zap.Error(err))
	}
	logger.InfoCtx(ctx, "Connected to ledger",
		zap.String("chain", string(cfg.Ledger.ChainID)),
		zap.String("contract", cfg.Ledger.ContractAddress))

	publisher, err := jetstream.NewPublisher(ctx, jetstream.Config{
		URL:            cfg.NATS.URL,
		StreamName:     cfg.NATS.StreamName,
		MaxReconnects:  cfg.NATS.MaxReconnects,
		ReconnectWait:  cfg.NATS.ReconnectWait,
		ConnectionName: "pplp-worker",
	}, adapter.NewNatsJetStream())
	if err != nil {
		logger.FatalCtx(ctx, "Failed to create event publisher", zap.Error(err))
	}
	defer publisher.Close()

	executor := workflows.NewExecutor(dataStore, issuance, nonce.NewGuard(dataStore, clock), publisher, recorder, clock)

	// Connect to Temporal with logger integration
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

	temporalWorker := worker.New(
		temporalClient,
		cfg.Temporal.SettlementTaskQueue,
		worker.Options{
			MaxConcurrentActivityExecutionSize: cfg.Temporal.MaxConcurrentActivityExecutionSize,
			WorkerActivitiesPerSecond:          cfg.Temporal.WorkerActivitiesPerSecond,
			MaxConcurrentActivityTaskPollers:   cfg.Temporal.MaxConcurrentActivityTaskPollers,
			Interceptors:                       []interceptor.WorkerInterceptor{temporal.NewSentryActivityInterceptor(workflows.SettlementScopeTags)},
		})

	workerCore := workflows.NewWorkerCore(executor, workflows.WorkerCoreConfig{
		PollInitialInterval: cfg.Settlement.PollInitialInterval,
		PollMaxInterval:     cfg.Settlement.PollMaxInterval,
		PollTimeout:         cfg.Settlement.PollTimeout,
	})

	// Register workflows
	temporalWorker.RegisterWorkflow(workerCore.SettleMintRequest)

	// Register activities
	temporalWorker.RegisterActivity(executor.ConsumeMintNonce)
	temporalWorker.RegisterActivity(executor.SubmitMintRequest)
	temporalWorker.RegisterActivity(executor.PollMintRequest)
	temporalWorker.RegisterActivity(executor.ConfirmMintRequest)
	temporalWorker.RegisterActivity(executor.FailMintRequest)

	if err := temporalWorker.Start(); err != nil {
		logger.FatalCtx(ctx, "Failed to start worker", zap.Error(err))
	}
	logger.InfoCtx(ctx, "Worker started", zap.String("task_queue", cfg.Temporal.SettlementTaskQueue))

	// Wait for interrupt signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh
	logger.InfoCtx(ctx, "Received shutdown signal", zap.String("signal", sig.String()))
	cancel()

	temporalWorker.Stop()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := shutdownMetrics(shutdownCtx); err != nil {
		logger.WarnCtx(shutdownCtx, "Failed to flush metrics", zap.Error(err))
	}

	logger.Info("Worker stopped")
}
