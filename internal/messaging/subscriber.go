package messaging

import (
	"encoding/json"
	"fmt"

	"github.com/feral-file/pplp-engine/internal/domain"
)

// DecodeEvent parses an engine event message. Messages without a type are malformed.
func DecodeEvent(data []byte) (*domain.EngineEvent, error) {
	var event domain.EngineEvent
	if err := json.Unmarshal(data, &event); err != nil {
		return nil, fmt.Errorf("failed to unmarshal event: %w", err)
	}
	if event.Type == "" {
		return nil, fmt.Errorf("event has no type")
	}
	return &event, nil
}

// MessageID is the deduplication id of an event: one message per subject transition
func MessageID(event *domain.EngineEvent) string {
	subject := event.MintRequestID
	if subject == "" {
		subject = event.ActionID
	}
	return fmt.Sprintf("%s:%s:%s", event.Type, subject, event.Status)
}
