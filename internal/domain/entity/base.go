// Package entity contains the core business objects of the project. Every
// aggregate embeds Base and enforces its own invariants; state that reaches
// this package through a Rehydrate constructor has already been persisted once
// and is revalidated on the way back in.
package entity

import (
	"time"

	"github.com/google/uuid"

	"pizzeria/internal/domain/event"
)

// Base carries the identity, audit timestamps and buffered domain events
// shared by all aggregates. The event buffer is append-only; only the unit of
// work clears it, after dispatch.
type Base struct {
	id        uuid.UUID
	createdAt time.Time
	updatedAt time.Time
	events    []event.DomainEvent
}

func newBase() Base {
	now := time.Now().UTC()

	return Base{
		id:        uuid.New(),
		createdAt: now,
		updatedAt: now,
	}
}

// rehydrateBase restores persisted identity and timestamps without minting new
// ones. Used exclusively by the Rehydrate constructors.
func rehydrateBase(id uuid.UUID, createdAt, updatedAt time.Time) Base {
	return Base{
		id:        id,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

// ID returns the aggregate identity.
func (b *Base) ID() uuid.UUID { return b.id }

// CreatedAt returns the creation timestamp.
func (b *Base) CreatedAt() time.Time { return b.createdAt }

// UpdatedAt returns the last-update timestamp.
func (b *Base) UpdatedAt() time.Time { return b.updatedAt }

// Events returns the buffered domain events in raise order.
func (b *Base) Events() []event.DomainEvent { return b.events }

// ClearEvents empties the event buffer. Called by the unit of work once the
// buffered events have been dispatched, or when an operation is rolled back.
func (b *Base) ClearEvents() { b.events = nil }

func (b *Base) raise(evt event.DomainEvent) {
	b.events = append(b.events, evt)
}

func (b *Base) touch() {
	b.updatedAt = time.Now().UTC()
}
