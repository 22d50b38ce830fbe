// Package event contains the domain events raised by aggregates. Events are
// buffered on the aggregate that raised them and dispatched by the unit of work
// after the surrounding transaction commits.
package event

import (
	"time"

	"github.com/google/uuid"
)

// DomainEvent is implemented by every event an aggregate can raise.
type DomainEvent interface {
	// EventID returns the unique identity assigned when the event was raised.
	EventID() uuid.UUID
	// Name returns the stable event name used for handler routing.
	Name() string
	// OccurredOn returns the moment the event was raised.
	OccurredOn() time.Time
}

// Base carries the fields shared by all domain events.
type Base struct {
	id         uuid.UUID
	occurredOn time.Time
}

// NewBase stamps a fresh event identity and timestamp.
func NewBase() Base {
	return Base{
		id:         uuid.New(),
		occurredOn: time.Now().UTC(),
	}
}

// EventID returns the event identity.
func (b Base) EventID() uuid.UUID { return b.id }

// OccurredOn returns the raise timestamp.
func (b Base) OccurredOn() time.Time { return b.occurredOn }
