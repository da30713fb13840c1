package shared

import (
	"fmt"
	"time"
)

// DomainEvent is recorded by aggregates on state changes. Events are pulled
// by the unit of work inside the commit transaction and saved to the outbox
// table; a relay worker publishes them asynchronously. No listener ever runs
// before the mutation is durable.
type DomainEvent interface {
	EventName() string
	OccurredOn() time.Time
	GetAggregateID() string
}

// ValidateEvent rejects structurally broken events before they reach the outbox.
func ValidateEvent(event DomainEvent) error {
	if event == nil {
		return fmt.Errorf("event cannot be nil")
	}
	if event.EventName() == "" {
		return fmt.Errorf("event name cannot be empty")
	}
	if event.GetAggregateID() == "" {
		return fmt.Errorf("aggregate ID cannot be empty")
	}
	if event.OccurredOn().IsZero() {
		return fmt.Errorf("occurred on time cannot be zero")
	}
	return nil
}
