package temporal

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.temporal.io/api/serviceerror"
	"go.temporal.io/sdk/log"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestZapLoggerAdapter(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	l := NewZapLoggerAdapter(zap.New(core))

	l.Info("workflow started", "WorkflowID", "settle-01HX", "Attempt", 1)
	l.Warn("dangling", "key")
	l.(log.WithLogger).With("Namespace", "default").Debug("scoped", 42, "answer")

	entries := logs.All()
	assert.Len(t, entries, 3)

	first := entries[0].ContextMap()
	assert.Equal(t, "temporal", first["component"])
	assert.Equal(t, "settle-01HX", first["WorkflowID"])
	assert.EqualValues(t, 1, first["Attempt"])

	assert.Equal(t, "key", entries[1].ContextMap()["extra"])

	third := entries[2].ContextMap()
	assert.Equal(t, "default", third["Namespace"])
	assert.Equal(t, "answer", third["42"])
}

func TestIsAlreadyStarted(t *testing.T) {
	err := serviceerror.NewWorkflowExecutionAlreadyStarted("already started", "req", "run")
	assert.True(t, IsAlreadyStarted(err))
	assert.True(t, IsAlreadyStarted(errors.Join(errors.New("start"), err)))
	assert.False(t, IsAlreadyStarted(errors.New("unavailable")))
	assert.False(t, IsAlreadyStarted(nil))
}
