package logger

import (
	"context"

	"github.com/getsentry/sentry-go"
	"go.temporal.io/sdk/workflow"
	"go.uber.org/zap"
)

// WorkflowInfo identifies the Temporal execution a log line belongs to
type WorkflowInfo struct {
	WorkflowType string
	WorkflowID   string
	RunID        string
	Namespace    string
	TaskQueue    string
}

func (w WorkflowInfo) fields() []zap.Field {
	return []zap.Field{
		zap.String("workflow_type", w.WorkflowType),
		zap.String("workflow_id", w.WorkflowID),
		zap.String("run_id", w.RunID),
		zap.String("namespace", w.Namespace),
		zap.String("task_queue", w.TaskQueue),
	}
}

// WithWorkflowInfo returns a logger tagged with the execution.
// With sentry configured, errors logged through it carry the execution as sentry tags.
func WithWorkflowInfo(info WorkflowInfo) *zap.Logger {
	if sentryClient == nil {
		return log.With(info.fields()...)
	}

	hub := sentry.NewHub(sentryClient, sentry.NewScope())
	hub.ConfigureScope(func(scope *sentry.Scope) {
		scope.SetTag("workflow_type", info.WorkflowType)
		scope.SetTag("workflow_id", info.WorkflowID)
		scope.SetTag("run_id", info.RunID)
		scope.SetTag("task_queue", info.TaskQueue)
	})
	return FromContext(sentry.SetHubOnContext(context.Background(), hub)).With(info.fields()...)
}

// FromWorkflow returns a logger tagged with the execution running ctx.
// Settlement workflow ids embed the mint request id, so sentry issues group per request.
func FromWorkflow(ctx workflow.Context) *zap.Logger {
	info := workflow.GetInfo(ctx)
	if info == nil {
		return log
	}

	typeName := info.WorkflowType.Name
	if typeName == "" {
		typeName = "unknown"
	}
	return WithWorkflowInfo(WorkflowInfo{
		WorkflowType: typeName,
		WorkflowID:   info.WorkflowExecution.ID,
		RunID:        info.WorkflowExecution.RunID,
		Namespace:    info.Namespace,
		TaskQueue:    info.TaskQueueName,
	})
}

// InfoWf logs an info message with workflow context
func InfoWf(ctx workflow.Context, msg string, fields ...zap.Field) {
	FromWorkflow(ctx).Info(msg, fields...)
}

// ErrorWf logs err as the message with workflow context
func ErrorWf(ctx workflow.Context, err error, fields ...zap.Field) {
	logError(FromWorkflow(ctx), err, fields...)
}

// WarnWf logs a warning with workflow context
func WarnWf(ctx workflow.Context, msg string, fields ...zap.Field) {
	FromWorkflow(ctx).Warn(msg, fields...)
}

// DebugWf logs a debug message with workflow context
func DebugWf(ctx workflow.Context, msg string, fields ...zap.Field) {
	FromWorkflow(ctx).Debug(msg, fields...)
}
