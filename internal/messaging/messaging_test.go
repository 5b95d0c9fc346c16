package messaging_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/pplp-engine/internal/domain"
	"github.com/feral-file/pplp-engine/internal/messaging"
)

func TestSubject(t *testing.T) {
	assert.Equal(t, "pplp.action.submitted", messaging.Subject(domain.EventTypeActionSubmitted))
	assert.Equal(t, "pplp.action.scored", messaging.Subject(domain.EventTypeActionScored))
	assert.Equal(t, "pplp.mint.created", messaging.Subject(domain.EventTypeMintCreated))
	assert.Equal(t, "pplp.mint.threshold_met", messaging.Subject(domain.EventTypeMintThresholdMet))
	assert.Equal(t, "pplp.mint.settled", messaging.Subject(domain.EventTypeMintSettled))
}

func TestDecodeEvent(t *testing.T) {
	event, err := messaging.DecodeEvent([]byte(`{"type":"mint.threshold_met","mint_request_id":"01HX","status":"threshold_met","occurred_at":"2026-03-01T12:00:00Z"}`))
	require.NoError(t, err)
	assert.Equal(t, domain.EventTypeMintThresholdMet, event.Type)
	assert.Equal(t, "01HX", event.MintRequestID)

	_, err = messaging.DecodeEvent([]byte(`not json`))
	assert.Error(t, err)

	_, err = messaging.DecodeEvent([]byte(`{"mint_request_id":"01HX"}`))
	assert.Error(t, err)
}

func TestMessageID(t *testing.T) {
	assert.Equal(t, "mint.threshold_met:01HX:threshold_met", messaging.MessageID(&domain.EngineEvent{
		Type: domain.EventTypeMintThresholdMet, MintRequestID: "01HX", ActionID: "01HA", Status: "threshold_met",
	}))
	assert.Equal(t, "action.scored:01HA:pass", messaging.MessageID(&domain.EngineEvent{
		Type: domain.EventTypeActionScored, ActionID: "01HA", Status: "pass",
	}))
}
