package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/feral-file/pplp-engine/internal/adapter"
	"github.com/feral-file/pplp-engine/internal/config"
	"github.com/feral-file/pplp-engine/internal/logger"
	"github.com/feral-file/pplp-engine/internal/policy"
	"github.com/feral-file/pplp-engine/internal/store"
)

var (
	configFile = flag.String("config", "", "Path to configuration file")
	envPath    = flag.String("env", "config/", "Path to environment files")
	actor      = flag.String("actor", "", "Actor recorded in the audit trail (defaults to the configured actor)")
)

func main() {
	flag.Parse()

	config.ChdirRepoRoot()
	cfg, err := config.LoadPolicyCtlConfig(*configFile, *envPath)
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}
	if *actor != "" {
		cfg.Actor = *actor
	}

	err = logger.Initialize(logger.Config{
		Debug:           cfg.Debug,
		SentryDSN:       cfg.SentryDSN,
		BreadcrumbLevel: zapcore.InfoLevel,
		Tags: map[string]string{
			"service": "pplp-policyctl",
		},
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Flush(2 * time.Second)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := store.Open(cfg.Database.DSN(), "")
	if err != nil {
		logger.FatalCtx(ctx, "Failed to connect to database", zap.Error(err), zap.String("host", cfg.Database.Host))
	}
	if err := store.ConfigureConnectionPool(db, 2, 1, 0, 0); err != nil {
		logger.FatalCtx(ctx, "Failed to configure connection pool", zap.Error(err))
	}

	service := policy.NewService(store.NewPGStore(db), adapter.NewClock())
	err = newCLI(service, cfg.Actor, os.Stdout).Run(ctx, flag.Args())
	if err != nil {
		if !errors.Is(err, errUsage) {
			logger.Error(err, zap.String("actor", cfg.Actor))
		}
		fmt.Fprintln(os.Stderr, err)
		logger.Flush(2 * time.Second)
		os.Exit(1)
	}
}
