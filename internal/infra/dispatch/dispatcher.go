// Package dispatch routes domain events to their registered handlers. The
// registry is filled once at startup and read-only afterwards, so dispatching
// needs no locking.
package dispatch

import (
	"context"
	"log/slog"

	"pizzeria/internal/domain/event"
)

// Handler reacts to one domain event.
type Handler func(ctx context.Context, evt event.DomainEvent) error

// Dispatcher is a synchronous in-process event bus keyed by event name.
type Dispatcher struct {
	handlers map[string][]Handler
	logger   *slog.Logger
}

// NewDispatcher creates an empty dispatcher.
func NewDispatcher(logger *slog.Logger) *Dispatcher {
	return &Dispatcher{
		handlers: make(map[string][]Handler),
		logger:   logger,
	}
}

// Register appends a handler for the named event. Registration order is
// delivery order.
func (d *Dispatcher) Register(name string, handler Handler) {
	d.handlers[name] = append(d.handlers[name], handler)
}

// Dispatch delivers the event to every handler registered for its name, in
// registration order. The first handler error aborts the pass. Events nobody
// listens to are dropped with a debug line.
func (d *Dispatcher) Dispatch(ctx context.Context, evt event.DomainEvent) error {
	handlers, ok := d.handlers[evt.Name()]
	if !ok {
		d.logger.Debug("no handler for event", slog.String("event", evt.Name()))

		return nil
	}

	for _, handler := range handlers {
		if err := handler(ctx, evt); err != nil {
			return err
		}
	}

	return nil
}
