package persistence

import (
	"context"
	"log/slog"

	"pizzeria/internal/domain/repository"
	"pizzeria/internal/domain/service"
	"pizzeria/internal/infra/record"
)

// unitOfWork binds one transaction and one event-dispatch pass to a single
// store connection. The repositories sharing that connection register the
// aggregates they touch; SaveChanges commits first and dispatches after, so a
// handler never observes uncommitted state.
type unitOfWork struct {
	conn       *record.Connection
	dispatcher service.EventDispatcher
	logger     *slog.Logger
	tracked    []repository.Tracked
}

func newUnitOfWork(conn *record.Connection, dispatcher service.EventDispatcher, logger *slog.Logger) *unitOfWork {
	return &unitOfWork{conn: conn, dispatcher: dispatcher, logger: logger}
}

func (u *unitOfWork) Begin(ctx context.Context) error {
	return u.conn.Begin(ctx)
}

// Track registers an aggregate instance once; re-tracking the same instance is
// a no-op so repositories can register on both Add and Update without double
// counting.
func (u *unitOfWork) Track(entity repository.Tracked) {
	for _, existing := range u.tracked {
		if existing == entity {
			return
		}
	}
	u.tracked = append(u.tracked, entity)
}

// SaveChanges commits the transaction, then dispatches the buffered events of
// every tracked aggregate in tracking order, events within an aggregate in
// raise order. Each event is handed to the dispatcher at most once: a buffer
// is cleared before its events go out, so a dispatch failure loses the
// remainder rather than redelivering. The returned count is the number of
// aggregates that were tracked.
func (u *unitOfWork) SaveChanges(ctx context.Context) (int, error) {
	if err := u.conn.Commit(); err != nil {
		return 0, err
	}

	count := len(u.tracked)
	tracked := u.tracked
	u.tracked = nil

	for _, aggregate := range tracked {
		events := aggregate.Events()
		aggregate.ClearEvents()

		for _, evt := range events {
			u.logger.Debug("dispatching domain event", slog.String("event", evt.Name()))
			if err := u.dispatcher.Dispatch(ctx, evt); err != nil {
				return count, err
			}
		}
	}

	u.logger.Debug("changes saved", slog.Int("aggregates", count))

	return count, nil
}

// Rollback aborts the transaction and discards the tracked aggregates together
// with their buffered events. Nothing is dispatched.
func (u *unitOfWork) Rollback(_ context.Context) error {
	for _, aggregate := range u.tracked {
		aggregate.ClearEvents()
	}
	u.tracked = nil

	return u.conn.Rollback()
}
