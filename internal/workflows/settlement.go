package workflows

import (
	"context"
	"fmt"
	"strings"

	"go.temporal.io/api/enums/v1"
	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/client"
	"go.uber.org/zap"

	"github.com/feral-file/pplp-engine/internal/logger"
	"github.com/feral-file/pplp-engine/internal/providers/temporal"
)

const settlementIDPrefix = "settle-"

// SettlementWorkflowID is the workflow id of a request's settlement. One settlement runs per request.
func SettlementWorkflowID(requestID string) string {
	return settlementIDPrefix + requestID
}

// SettlementScopeTags tags settlement activities with their mint request id
func SettlementScopeTags(info activity.Info) map[string]string {
	requestID, ok := strings.CutPrefix(info.WorkflowExecution.ID, settlementIDPrefix)
	if !ok {
		return nil
	}
	return map[string]string{"mint_request_id": requestID}
}

// StartSettlement starts the settlement workflow of a request on the task queue.
// Returns started=false when the settlement of the request is running or already completed.
func StartSettlement(ctx context.Context, orchestrator temporal.TemporalOrchestrator, taskQueue, requestID string) (bool, error) {
	w := NewWorkerCore(nil, WorkerCoreConfig{})
	opts := client.StartWorkflowOptions{
		ID:                    SettlementWorkflowID(requestID),
		TaskQueue:             taskQueue,
		WorkflowIDReusePolicy: enums.WORKFLOW_ID_REUSE_POLICY_ALLOW_DUPLICATE_FAILED_ONLY,
	}

	_, err := orchestrator.ExecuteWorkflow(ctx, opts, w.SettleMintRequest, requestID)
	if err != nil {
		if temporal.IsAlreadyStarted(err) {
			logger.InfoCtx(ctx, "Settlement already started", logger.MintRequestID(requestID))
			return false, nil
		}
		return false, fmt.Errorf("failed to start settlement workflow: %w", err)
	}

	logger.InfoCtx(ctx, "Settlement started",
		logger.MintRequestID(requestID),
		zap.String("workflowID", opts.ID))
	return true, nil
}
