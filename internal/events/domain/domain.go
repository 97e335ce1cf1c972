package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Event represents an audit event for a relayed notification.
// Type examples: "relay.email.sent", "relay.event.ignored"
// Meta may contain buyer_email, item_name, provider_id, event_type, etc.
type Event struct {
	ID   uuid.UUID
	Type string
	Meta map[string]string
	Time time.Time
}

// New builds an event with a fresh id and the current time.
func New(eventType string, meta map[string]string) Event {
	return Event{ID: uuid.New(), Type: eventType, Meta: meta, Time: time.Now().UTC()}
}

// Publisher publishes events to an external system (log, queue, etc.).
type Publisher interface {
	Publish(ctx context.Context, e Event) error
}
