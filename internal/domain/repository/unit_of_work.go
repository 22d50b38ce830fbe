package repository

import (
	"context"

	"pizzeria/internal/domain/event"
)

// Tracked is the slice of an aggregate the unit of work needs: identity is
// irrelevant here, only the event buffer matters.
type Tracked interface {
	Events() []event.DomainEvent
	ClearEvents()
}

// UnitOfWork grants one transaction and one event-dispatch pass per business
// operation.
type UnitOfWork interface {
	// Begin opens the operation's transaction. Calling it while a transaction
	// is already open is an error.
	Begin(ctx context.Context) error

	// Track idempotently registers an aggregate touched by the operation.
	// Tracking the same instance twice has no additional effect.
	Track(entity Tracked)

	// SaveChanges commits the open transaction, then dispatches the buffered
	// events of every tracked aggregate: aggregates in tracking order, events
	// within an aggregate in raise order, each synchronously and exactly once.
	// Buffers and the tracked set are cleared afterwards. The returned count is
	// the number of aggregates that were tracked. Dispatch is not atomic with
	// the commit: a dispatch failure propagates and already-dispatched events
	// are not retried.
	SaveChanges(ctx context.Context) (int, error)

	// Rollback aborts the open transaction and discards tracked aggregates and
	// their buffered events without dispatching any of them.
	Rollback(ctx context.Context) error
}
