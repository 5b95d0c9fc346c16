package temporal

import (
	"context"

	"github.com/getsentry/sentry-go"
	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/interceptor"
)

// ScopeTagger derives extra Sentry tags from the running activity, e.g. the entity a workflow id names
type ScopeTagger func(info activity.Info) map[string]string

// NewSentryActivityInterceptor creates a worker interceptor that gives every activity its own Sentry hub
func NewSentryActivityInterceptor(taggers ...ScopeTagger) interceptor.WorkerInterceptor {
	return &SentryActivityInterceptor{taggers: taggers}
}

// SentryActivityInterceptor injects a Sentry hub, tagged with the activity and workflow, into activity contexts
type SentryActivityInterceptor struct {
	interceptor.WorkerInterceptorBase
	taggers []ScopeTagger
}

func (s *SentryActivityInterceptor) InterceptActivity(ctx context.Context, next interceptor.ActivityInboundInterceptor) interceptor.ActivityInboundInterceptor {
	return &sentryActivityInboundInterceptor{
		ActivityInboundInterceptorBase: interceptor.ActivityInboundInterceptorBase{Next: next},
		taggers:                        s.taggers,
	}
}

type sentryActivityInboundInterceptor struct {
	interceptor.ActivityInboundInterceptorBase
	taggers []ScopeTagger
}

func (s *sentryActivityInboundInterceptor) ExecuteActivity(ctx context.Context, in *interceptor.ExecuteActivityInput) (any, error) {
	hub := sentry.CurrentHub().Clone()
	if activity.IsActivity(ctx) {
		info := activity.GetInfo(ctx)
		hub.ConfigureScope(func(scope *sentry.Scope) {
			scope.SetTag("activity_type", info.ActivityType.Name)
			scope.SetTag("workflow_id", info.WorkflowExecution.ID)
			scope.SetContext("activity", sentry.Context{
				"attempt":   info.Attempt,
				"run_id":    info.WorkflowExecution.RunID,
				"taskQueue": info.TaskQueue,
			})
			for _, tagger := range s.taggers {
				for k, v := range tagger(info) {
					scope.SetTag(k, v)
				}
			}
		})
	}

	// logger.*Ctx helpers pick the hub up from the context
	ctx = sentry.SetHubOnContext(ctx, hub)
	return s.Next.ExecuteActivity(ctx, in)
}
