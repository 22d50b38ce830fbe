// Package service declares the interfaces of collaborators that live outside
// the domain, so the domain and use cases never depend on infrastructure
// packages directly.
package service

import (
	"context"

	"pizzeria/internal/domain/event"
)

// EventDispatcher delivers a domain event to its handlers. Dispatch is
// synchronous; an error from any handler aborts the dispatch pass and
// propagates to the caller.
type EventDispatcher interface {
	Dispatch(ctx context.Context, evt event.DomainEvent) error
}
