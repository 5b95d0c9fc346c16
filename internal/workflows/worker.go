package workflows

import (
	"time"

	"go.temporal.io/sdk/workflow"
)

// WorkerCore defines the settlement workflows
//
//go:generate mockgen -source=worker.go -destination=../mocks/worker_core.go -package=mocks -mock_names=WorkerCore=MockWorkerCore
type WorkerCore interface {
	// SettleMintRequest consumes the nonce of a threshold_met request, submits it to the ledger and
	// polls until the transaction is confirmed, reverted or the poll timeout elapses
	SettleMintRequest(ctx workflow.Context, requestID string) error
}

// WorkerCoreConfig holds the settlement timing
type WorkerCoreConfig struct {
	// PollInitialInterval is the first wait between ledger polls
	PollInitialInterval time.Duration
	// PollMaxInterval caps the doubling wait between ledger polls
	PollMaxInterval time.Duration
	// PollTimeout is how long a submitted transaction is polled before the request fails with ledger_timeout
	PollTimeout time.Duration
}

func (c WorkerCoreConfig) withDefaults() WorkerCoreConfig {
	if c.PollInitialInterval <= 0 {
		c.PollInitialInterval = 5 * time.Second
	}
	if c.PollMaxInterval <= 0 {
		c.PollMaxInterval = time.Minute
	}
	if c.PollTimeout <= 0 {
		c.PollTimeout = 30 * time.Minute
	}
	return c
}

// workerCore is the concrete implementation of WorkerCore
type workerCore struct {
	config   WorkerCoreConfig
	executor Executor
}

// NewWorkerCore creates a new worker core instance
func NewWorkerCore(executor Executor, config WorkerCoreConfig) WorkerCore {
	return &workerCore{
		executor: executor,
		config:   config.withDefaults(),
	}
}
