package persistence

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pizzeria/internal/domain/entity"
	"pizzeria/internal/domain/event"
	"pizzeria/internal/domain/repository"
)

func testMoney(t *testing.T, amount string) entity.Money {
	t.Helper()

	money, err := entity.NewMoney(decimal.RequireFromString(amount), "EUR")
	require.NoError(t, err)

	return money
}

func buildOrder(t *testing.T, customerID uuid.UUID) *entity.Order {
	t.Helper()

	order, err := entity.NewOrder(customerID, testAddress(t))
	require.NoError(t, err)
	require.NoError(t, order.AddItem(uuid.New(), "Margherita", 2, testMoney(t, "8.50")))
	require.NoError(t, order.AddItem(uuid.New(), "Diavola", 1, testMoney(t, "11.00")))

	return order
}

// persistOrder writes the order in its own operation and commits.
func persistOrder(t *testing.T, factory *OperationFactory, order *entity.Order) {
	t.Helper()

	ctx := context.Background()
	op, err := factory.NewOperation(ctx)
	require.NoError(t, err)
	defer op.Close()

	require.NoError(t, op.UnitOfWork().Begin(ctx))
	require.NoError(t, op.Orders().Add(ctx, order))
	_, err = op.UnitOfWork().SaveChanges(ctx)
	require.NoError(t, err)
}

func updateOrder(t *testing.T, factory *OperationFactory, order *entity.Order) {
	t.Helper()

	ctx := context.Background()
	op, err := factory.NewOperation(ctx)
	require.NoError(t, err)
	defer op.Close()

	require.NoError(t, op.UnitOfWork().Begin(ctx))
	require.NoError(t, op.Orders().Update(ctx, order))
	_, err = op.UnitOfWork().SaveChanges(ctx)
	require.NoError(t, err)
}

func openOperation(t *testing.T, factory *OperationFactory) repository.Operation {
	t.Helper()

	op, err := factory.NewOperation(context.Background())
	require.NoError(t, err)
	t.Cleanup(func() { op.Close() })

	return op
}

func TestOrderRepository_RoundTrip(t *testing.T) {
	t.Parallel()

	factory, dispatcher := newTestFactory(t)
	customerID := uuid.New()
	order := buildOrder(t, customerID)
	persistOrder(t, factory, order)
	assert.Equal(t, []string{event.NameOrderCreated}, dispatcher.dispatched())

	op := openOperation(t, factory)
	loaded, err := op.Orders().GetByID(context.Background(), order.ID())
	require.NoError(t, err)
	require.NotNil(t, loaded)

	assert.Equal(t, order.ID(), loaded.ID())
	assert.Equal(t, order.OrderNumber(), loaded.OrderNumber())
	assert.Equal(t, customerID, loaded.CustomerID())
	assert.Equal(t, entity.OrderStatusPending, loaded.Status())
	assert.Equal(t, "Madrid", loaded.DeliveryAddress().City())
	assert.Nil(t, loaded.DeliveryPersonID())
	assert.Empty(t, loaded.Events(), "loading must not raise events")

	require.Len(t, loaded.Items(), 2)
	assert.Equal(t, "Margherita", loaded.Items()[0].PizzaName(), "items come back in insertion order")
	assert.Equal(t, 2, loaded.Items()[0].Quantity())
	assert.Equal(t, "Diavola", loaded.Items()[1].PizzaName())
	assert.True(t, loaded.Total().Amount().Equal(decimal.RequireFromString("28.00")),
		"total is recomputed from restored items, got %s", loaded.Total())
	assert.Equal(t, "EUR", loaded.Items()[0].UnitPrice().Currency())
}

func TestOrderRepository_GetByIDMiss(t *testing.T) {
	t.Parallel()

	factory, _ := newTestFactory(t)
	op := openOperation(t, factory)

	order, err := op.Orders().GetByID(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Nil(t, order, "a miss is a nil aggregate, not an error")
}

func TestOrderRepository_GetByOrderNumber(t *testing.T) {
	t.Parallel()

	factory, _ := newTestFactory(t)
	order := buildOrder(t, uuid.New())
	persistOrder(t, factory, order)

	op := openOperation(t, factory)
	loaded, err := op.Orders().GetByOrderNumber(context.Background(), order.OrderNumber())
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, order.ID(), loaded.ID())
	require.Len(t, loaded.Items(), 2)

	missing, err := op.Orders().GetByOrderNumber(context.Background(), "ORD-00000000-XXXXXXXX")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestOrderRepository_ListsReturnRootsOnly(t *testing.T) {
	t.Parallel()

	factory, _ := newTestFactory(t)
	first := buildOrder(t, uuid.New())
	second := buildOrder(t, uuid.New())
	persistOrder(t, factory, first)
	persistOrder(t, factory, second)

	op := openOperation(t, factory)
	orders, err := op.Orders().GetAll(context.Background())
	require.NoError(t, err)

	require.Len(t, orders, 2)
	assert.Equal(t, second.ID(), orders[0].ID(), "listing is newest first")
	assert.Equal(t, first.ID(), orders[1].ID())
	for _, order := range orders {
		assert.Empty(t, order.Items(), "listings do not load item rows")
	}
}

func TestOrderRepository_GetByCustomerID(t *testing.T) {
	t.Parallel()

	factory, _ := newTestFactory(t)
	customerID := uuid.New()
	mine := buildOrder(t, customerID)
	other := buildOrder(t, uuid.New())
	persistOrder(t, factory, mine)
	persistOrder(t, factory, other)

	op := openOperation(t, factory)
	orders, err := op.Orders().GetByCustomerID(context.Background(), customerID)
	require.NoError(t, err)

	require.Len(t, orders, 1)
	assert.Equal(t, mine.ID(), orders[0].ID())
}

func TestOrderRepository_GetByStatusAndPendingDelivery(t *testing.T) {
	t.Parallel()

	factory, _ := newTestFactory(t)

	pending := buildOrder(t, uuid.New())
	persistOrder(t, factory, pending)

	confirmed := buildOrder(t, uuid.New())
	persistOrder(t, factory, confirmed)
	require.NoError(t, confirmed.Confirm())
	updateOrder(t, factory, confirmed)

	ready := buildOrder(t, uuid.New())
	persistOrder(t, factory, ready)
	require.NoError(t, ready.Confirm())
	require.NoError(t, ready.StartPreparation())
	require.NoError(t, ready.MarkReadyForDelivery())
	updateOrder(t, factory, ready)

	cancelled := buildOrder(t, uuid.New())
	persistOrder(t, factory, cancelled)
	require.NoError(t, cancelled.Cancel())
	updateOrder(t, factory, cancelled)

	op := openOperation(t, factory)
	ctx := context.Background()

	byStatus, err := op.Orders().GetByStatus(ctx, entity.OrderStatusConfirmed)
	require.NoError(t, err)
	require.Len(t, byStatus, 1)
	assert.Equal(t, confirmed.ID(), byStatus[0].ID())

	inFlight, err := op.Orders().GetPendingDelivery(ctx)
	require.NoError(t, err)
	require.Len(t, inFlight, 2, "pending delivery covers confirmed through ready, nothing else")
	assert.Equal(t, confirmed.ID(), inFlight[0].ID(), "pending delivery is oldest first")
	assert.Equal(t, ready.ID(), inFlight[1].ID())
}

func TestOrderRepository_UpdatePersistsMutableColumns(t *testing.T) {
	t.Parallel()

	factory, _ := newTestFactory(t)
	order := buildOrder(t, uuid.New())
	persistOrder(t, factory, order)

	courierID := uuid.New()
	require.NoError(t, order.Confirm())
	require.NoError(t, order.StartPreparation())
	require.NoError(t, order.MarkReadyForDelivery())
	require.NoError(t, order.AssignDeliveryPerson(courierID))
	updateOrder(t, factory, order)

	op := openOperation(t, factory)
	loaded, err := op.Orders().GetByID(context.Background(), order.ID())
	require.NoError(t, err)
	require.NotNil(t, loaded)

	assert.Equal(t, entity.OrderStatusInDelivery, loaded.Status())
	require.NotNil(t, loaded.DeliveryPersonID())
	assert.Equal(t, courierID, *loaded.DeliveryPersonID())
	require.Len(t, loaded.Items(), 2, "item rows survive root updates")
}

func TestOrderRepository_DeleteRemovesItemsAndRoot(t *testing.T) {
	t.Parallel()

	factory, _ := newTestFactory(t)
	order := buildOrder(t, uuid.New())
	persistOrder(t, factory, order)

	ctx := context.Background()
	op, err := factory.NewOperation(ctx)
	require.NoError(t, err)
	require.NoError(t, op.UnitOfWork().Begin(ctx))
	require.NoError(t, op.Orders().Delete(ctx, order))
	_, err = op.UnitOfWork().SaveChanges(ctx)
	require.NoError(t, err)
	require.NoError(t, op.Close())

	reader := openOperation(t, factory)
	loaded, err := reader.Orders().GetByID(ctx, order.ID())
	require.NoError(t, err)
	assert.Nil(t, loaded)

	// Re-adding the same aggregate must not collide with leftover item rows.
	persistOrder(t, factory, order)
	loaded, err = reader.Orders().GetByID(ctx, order.ID())
	require.NoError(t, err)
	require.NotNil(t, loaded)
	require.Len(t, loaded.Items(), 2)
}
