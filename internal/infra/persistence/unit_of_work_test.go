package persistence

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pizzeria/internal/domain/entity"
	"pizzeria/internal/domain/event"
	"pizzeria/internal/infra/record"
)

func TestUnitOfWork_TrackIsIdempotentPerInstance(t *testing.T) {
	t.Parallel()

	factory, _ := newTestFactory(t)
	ctx := context.Background()

	op, err := factory.NewOperation(ctx)
	require.NoError(t, err)
	defer op.Close()

	order := buildOrder(t, uuid.New())
	require.NoError(t, op.UnitOfWork().Begin(ctx))
	require.NoError(t, op.Orders().Add(ctx, order))

	// Add and Update both track the aggregate; the same instance counts once.
	require.NoError(t, order.Confirm())
	require.NoError(t, op.Orders().Update(ctx, order))

	count, err := op.UnitOfWork().SaveChanges(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestUnitOfWork_SaveChangesCountsDistinctAggregates(t *testing.T) {
	t.Parallel()

	factory, dispatcher := newTestFactory(t)
	ctx := context.Background()

	op, err := factory.NewOperation(ctx)
	require.NoError(t, err)
	defer op.Close()

	order := buildOrder(t, uuid.New())
	payment, err := entity.NewPayment(order.ID(), testMoney(t, "28.00"), entity.PaymentMethodCash)
	require.NoError(t, err)
	require.NoError(t, payment.Complete("TXN-1"))

	require.NoError(t, op.UnitOfWork().Begin(ctx))
	require.NoError(t, op.Orders().Add(ctx, order))
	require.NoError(t, op.Payments().Add(ctx, payment))

	count, err := op.UnitOfWork().SaveChanges(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	assert.Equal(t, []string{event.NameOrderCreated, event.NamePaymentCompleted}, dispatcher.dispatched(),
		"aggregates dispatch in tracking order, events in raise order")
	assert.Empty(t, order.Events(), "buffers are cleared after dispatch")
	assert.Empty(t, payment.Events())
}

func TestUnitOfWork_SaveChangesWithoutTransactionFails(t *testing.T) {
	t.Parallel()

	factory, _ := newTestFactory(t)
	ctx := context.Background()

	op, err := factory.NewOperation(ctx)
	require.NoError(t, err)
	defer op.Close()

	_, err = op.UnitOfWork().SaveChanges(ctx)
	require.ErrorIs(t, err, record.ErrNoTransaction)

	require.NoError(t, op.UnitOfWork().Begin(ctx))
	_, err = op.UnitOfWork().SaveChanges(ctx)
	require.NoError(t, err)

	// The dispatch pass consumed the tracked set; a second save has no
	// transaction left to commit.
	_, err = op.UnitOfWork().SaveChanges(ctx)
	require.ErrorIs(t, err, record.ErrNoTransaction)
}

func TestUnitOfWork_RollbackDiscardsWritesAndEvents(t *testing.T) {
	t.Parallel()

	factory, dispatcher := newTestFactory(t)
	ctx := context.Background()

	op, err := factory.NewOperation(ctx)
	require.NoError(t, err)
	defer op.Close()

	order := buildOrder(t, uuid.New())
	require.NoError(t, op.UnitOfWork().Begin(ctx))
	require.NoError(t, op.Orders().Add(ctx, order))
	require.NoError(t, op.UnitOfWork().Rollback(ctx))

	assert.Empty(t, dispatcher.dispatched(), "nothing dispatches on rollback")
	assert.Empty(t, order.Events(), "rollback discards buffered events")

	reader := openOperation(t, factory)
	loaded, err := reader.Orders().GetByID(ctx, order.ID())
	require.NoError(t, err)
	assert.Nil(t, loaded, "rolled back writes never become visible")
}

func TestUnitOfWork_DispatchFailureAfterCommit(t *testing.T) {
	t.Parallel()

	factory, dispatcher := newTestFactory(t)
	dispatcher.fail = errors.New("handler exploded")
	ctx := context.Background()

	op, err := factory.NewOperation(ctx)
	require.NoError(t, err)
	defer op.Close()

	order := buildOrder(t, uuid.New())
	require.NoError(t, op.UnitOfWork().Begin(ctx))
	require.NoError(t, op.Orders().Add(ctx, order))

	count, err := op.UnitOfWork().SaveChanges(ctx)
	require.Error(t, err)
	assert.Equal(t, 1, count, "the count reflects committed work even when dispatch fails")
	assert.Empty(t, order.Events(), "events are consumed, not redelivered")

	// The commit itself stands: dispatch is not atomic with it.
	reader := openOperation(t, factory)
	loaded, err := reader.Orders().GetByID(ctx, order.ID())
	require.NoError(t, err)
	require.NotNil(t, loaded)
}

func TestOperation_CloseRollsBackOpenTransaction(t *testing.T) {
	t.Parallel()

	factory, dispatcher := newTestFactory(t)
	ctx := context.Background()

	op, err := factory.NewOperation(ctx)
	require.NoError(t, err)

	order := buildOrder(t, uuid.New())
	require.NoError(t, op.UnitOfWork().Begin(ctx))
	require.NoError(t, op.Orders().Add(ctx, order))
	require.NoError(t, op.Close())

	assert.Empty(t, dispatcher.dispatched())

	reader := openOperation(t, factory)
	loaded, err := reader.Orders().GetByID(ctx, order.ID())
	require.NoError(t, err)
	assert.Nil(t, loaded, "closing an operation mid-transaction abandons its writes")
}
