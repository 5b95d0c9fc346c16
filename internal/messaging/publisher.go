package messaging

import (
	"context"

	"github.com/feral-file/pplp-engine/internal/domain"
)

// SubjectPrefix prefixes every engine event subject
const SubjectPrefix = "pplp."

// Subject returns the subject an event type is published on, e.g. pplp.mint.threshold_met
func Subject(t domain.EventType) string {
	return SubjectPrefix + string(t)
}

// Publisher defines the interface for publishing engine events to the message bus
//
//go:generate mockgen -source=publisher.go -destination=../mocks/publisher.go -package=mocks -mock_names=Publisher=MockPublisher
type Publisher interface {
	// Publish publishes an engine event on the subject of its type
	Publish(ctx context.Context, event *domain.EngineEvent) error
	// Close closes the connection
	Close()
}
