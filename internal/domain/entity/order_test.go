package entity

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerrors "pizzeria/internal/domain/errors"
	"pizzeria/internal/domain/event"
)

func testAddress(t *testing.T) Address {
	t.Helper()

	address, err := NewAddress("Calle Mayor 1", "Madrid", "Madrid", "28001", "Spain")
	require.NoError(t, err)

	return address
}

func testMoney(t *testing.T, amount float64) Money {
	t.Helper()

	money, err := NewMoney(decimal.NewFromFloat(amount), "EUR")
	require.NoError(t, err)

	return money
}

func newPendingOrder(t *testing.T) *Order {
	t.Helper()

	order, err := NewOrder(uuid.New(), testAddress(t))
	require.NoError(t, err)

	return order
}

// confirmedOrder builds an order with one item already past Pending.
func confirmedOrder(t *testing.T) *Order {
	t.Helper()

	order := newPendingOrder(t)
	require.NoError(t, order.AddItem(uuid.New(), "Margherita", 1, testMoney(t, 8.50)))
	require.NoError(t, order.Confirm())

	return order
}

func TestNewOrder(t *testing.T) {
	t.Parallel()

	customerID := uuid.New()
	order, err := NewOrder(customerID, testAddress(t))
	require.NoError(t, err)

	assert.Equal(t, customerID, order.CustomerID())
	assert.Equal(t, OrderStatusPending, order.Status())
	assert.True(t, order.Total().IsZero())
	assert.Equal(t, "EUR", order.Total().Currency())
	assert.True(t, strings.HasPrefix(order.OrderNumber(), "ORD-"))
	assert.Empty(t, order.Items())
	assert.Nil(t, order.DeliveryPersonID())

	require.Len(t, order.Events(), 1)
	assert.Equal(t, event.NameOrderCreated, order.Events()[0].Name())
}

func TestNewOrder_Rejections(t *testing.T) {
	t.Parallel()

	_, err := NewOrder(uuid.Nil, testAddress(t))
	assert.True(t, domainerrors.IsRuleViolation(err))

	_, err = NewOrder(uuid.New(), Address{})
	assert.True(t, domainerrors.IsRuleViolation(err))
}

func TestOrder_AddItemRecomputesTotal(t *testing.T) {
	t.Parallel()

	order := newPendingOrder(t)

	require.NoError(t, order.AddItem(uuid.New(), "Margherita", 2, testMoney(t, 8.50)))
	require.NoError(t, order.AddItem(uuid.New(), "Diavola", 1, testMoney(t, 11.00)))

	require.Len(t, order.Items(), 2)
	assert.True(t, order.Total().Amount().Equal(decimal.NewFromFloat(28.00)),
		"total is %s", order.Total())

	item := order.Items()[0]
	assert.Equal(t, "Margherita", item.PizzaName())
	assert.Equal(t, 2, item.Quantity())
	assert.True(t, item.Subtotal().Amount().Equal(decimal.NewFromFloat(17.00)))
}

func TestOrder_AddItemRejections(t *testing.T) {
	t.Parallel()

	order := newPendingOrder(t)

	err := order.AddItem(uuid.New(), "Margherita", 0, testMoney(t, 8.50))
	assert.True(t, domainerrors.IsRuleViolation(err))

	err = order.AddItem(uuid.New(), " ", 1, testMoney(t, 8.50))
	assert.True(t, domainerrors.IsRuleViolation(err))

	err = order.AddItem(uuid.Nil, "Margherita", 1, testMoney(t, 8.50))
	assert.True(t, domainerrors.IsRuleViolation(err))

	assert.Empty(t, order.Items())
	assert.True(t, order.Total().IsZero())
}

func TestOrder_AddItemOnlyWhilePending(t *testing.T) {
	t.Parallel()

	order := confirmedOrder(t)

	err := order.AddItem(uuid.New(), "Diavola", 1, testMoney(t, 11.00))
	require.Error(t, err)
	assert.True(t, domainerrors.IsRuleViolation(err))
	assert.Contains(t, err.Error(), "Confirmed")
}

func TestOrder_RemoveItem(t *testing.T) {
	t.Parallel()

	order := newPendingOrder(t)
	require.NoError(t, order.AddItem(uuid.New(), "Margherita", 2, testMoney(t, 8.50)))
	require.NoError(t, order.AddItem(uuid.New(), "Diavola", 1, testMoney(t, 11.00)))

	require.NoError(t, order.RemoveItem(order.Items()[0].ID()))

	require.Len(t, order.Items(), 1)
	assert.Equal(t, "Diavola", order.Items()[0].PizzaName())
	assert.True(t, order.Total().Amount().Equal(decimal.NewFromFloat(11.00)))

	err := order.RemoveItem(uuid.New())
	assert.True(t, domainerrors.IsRuleViolation(err))
}

func TestOrder_ConfirmRequiresItems(t *testing.T) {
	t.Parallel()

	order := newPendingOrder(t)

	err := order.Confirm()
	require.Error(t, err)
	assert.True(t, domainerrors.IsRuleViolation(err))
	assert.Equal(t, OrderStatusPending, order.Status())
}

func TestOrder_FullLifecycle(t *testing.T) {
	t.Parallel()

	order := newPendingOrder(t)
	require.NoError(t, order.AddItem(uuid.New(), "Margherita", 1, testMoney(t, 8.50)))

	require.NoError(t, order.Confirm())
	assert.Equal(t, OrderStatusConfirmed, order.Status())

	require.NoError(t, order.StartPreparation())
	assert.Equal(t, OrderStatusInPreparation, order.Status())

	require.NoError(t, order.MarkReadyForDelivery())
	assert.Equal(t, OrderStatusReadyForDelivery, order.Status())

	courierID := uuid.New()
	require.NoError(t, order.AssignDeliveryPerson(courierID))
	assert.Equal(t, OrderStatusInDelivery, order.Status())
	require.NotNil(t, order.DeliveryPersonID())
	assert.Equal(t, courierID, *order.DeliveryPersonID())

	require.NoError(t, order.CompleteDelivery())
	assert.Equal(t, OrderStatusDelivered, order.Status())

	names := make([]string, 0, len(order.Events()))
	for _, evt := range order.Events() {
		names = append(names, evt.Name())
	}
	assert.Equal(t, []string{
		event.NameOrderCreated,
		event.NameOrderConfirmed,
		event.NameOrderDelivered,
	}, names)
}

func TestOrder_IllegalTransitions(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		prepare func(t *testing.T) *Order
		mutate  func(*Order) error
	}{
		{
			name:    "confirm twice",
			prepare: confirmedOrder,
			mutate:  (*Order).Confirm,
		},
		{
			name:    "start preparation while pending",
			prepare: newPendingOrder,
			mutate:  (*Order).StartPreparation,
		},
		{
			name:    "mark ready while confirmed",
			prepare: confirmedOrder,
			mutate:  (*Order).MarkReadyForDelivery,
		},
		{
			name:    "assign courier while pending",
			prepare: newPendingOrder,
			mutate: func(o *Order) error {
				return o.AssignDeliveryPerson(uuid.New())
			},
		},
		{
			name:    "complete delivery while confirmed",
			prepare: confirmedOrder,
			mutate:  (*Order).CompleteDelivery,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			order := tt.prepare(t)
			before := order.Status()

			err := tt.mutate(order)
			require.Error(t, err)
			assert.True(t, domainerrors.IsRuleViolation(err))
			assert.Equal(t, before, order.Status(), "failed transition must not change state")
		})
	}
}

func TestOrder_AssignDeliveryPersonRejectsNilID(t *testing.T) {
	t.Parallel()

	order := confirmedOrder(t)
	require.NoError(t, order.StartPreparation())
	require.NoError(t, order.MarkReadyForDelivery())

	err := order.AssignDeliveryPerson(uuid.Nil)
	require.Error(t, err)
	assert.True(t, domainerrors.IsRuleViolation(err))
	assert.Equal(t, OrderStatusReadyForDelivery, order.Status())
}

func TestOrder_Cancel(t *testing.T) {
	t.Parallel()

	order := confirmedOrder(t)
	require.NoError(t, order.Cancel())
	assert.Equal(t, OrderStatusCancelled, order.Status())

	err := order.Cancel()
	assert.True(t, domainerrors.IsRuleViolation(err))
}

func TestOrder_CancelRejectedWhenDelivered(t *testing.T) {
	t.Parallel()

	order := confirmedOrder(t)
	require.NoError(t, order.StartPreparation())
	require.NoError(t, order.MarkReadyForDelivery())
	require.NoError(t, order.AssignDeliveryPerson(uuid.New()))
	require.NoError(t, order.CompleteDelivery())

	err := order.Cancel()
	require.Error(t, err)
	assert.True(t, domainerrors.IsRuleViolation(err))
	assert.Equal(t, OrderStatusDelivered, order.Status())
}

func TestRehydrateOrder_RestoresWithoutEvents(t *testing.T) {
	t.Parallel()

	id := uuid.New()
	customerID := uuid.New()
	now := time.Now().UTC().Truncate(time.Second)
	total := testMoney(t, 17.00)

	order, err := RehydrateOrder(id, "ORD-20260801-ABCD1234", customerID, now,
		OrderStatusConfirmed, total, testAddress(t), nil, now, now)
	require.NoError(t, err)

	assert.Equal(t, id, order.ID())
	assert.Equal(t, OrderStatusConfirmed, order.Status())
	assert.True(t, order.Total().Equal(total))
	assert.Empty(t, order.Events(), "rehydration must not raise events")
}

func TestRehydrateOrder_Rejections(t *testing.T) {
	t.Parallel()

	now := time.Now().UTC()
	address := testAddress(t)
	total := testMoney(t, 10)

	_, err := RehydrateOrder(uuid.New(), "", uuid.New(), now, OrderStatusPending, total, address, nil, now, now)
	assert.True(t, domainerrors.IsRuleViolation(err))

	_, err = RehydrateOrder(uuid.New(), "ORD-1", uuid.New(), now, OrderStatus("Bogus"), total, address, nil, now, now)
	assert.True(t, domainerrors.IsRuleViolation(err))
}

func TestOrder_RestoreItemBypassesStatusGate(t *testing.T) {
	t.Parallel()

	now := time.Now().UTC()
	order, err := RehydrateOrder(uuid.New(), "ORD-20260801-ABCD1234", uuid.New(), now,
		OrderStatusDelivered, testMoney(t, 0), testAddress(t), nil, now, now)
	require.NoError(t, err)

	itemID := uuid.New()
	require.NoError(t, order.RestoreItem(itemID, uuid.New(), "Margherita", 2, testMoney(t, 8.50), now, now))

	require.Len(t, order.Items(), 1)
	assert.Equal(t, itemID, order.Items()[0].ID())
	assert.True(t, order.Total().Amount().Equal(decimal.NewFromFloat(17.00)),
		"restore must recompute the total")

	err = order.RestoreItem(uuid.New(), uuid.New(), "Broken", 0, testMoney(t, 1), now, now)
	require.Error(t, err, "line invariants still apply on restore")
	require.Len(t, order.Items(), 1)
}

func TestOrder_ClearEvents(t *testing.T) {
	t.Parallel()

	order := confirmedOrder(t)
	require.NotEmpty(t, order.Events())

	order.ClearEvents()
	assert.Empty(t, order.Events())
}

func TestParseOrderStatus(t *testing.T) {
	t.Parallel()

	status, err := ParseOrderStatus("InPreparation")
	require.NoError(t, err)
	assert.Equal(t, OrderStatusInPreparation, status)

	_, err = ParseOrderStatus("Preparing")
	assert.True(t, domainerrors.IsRuleViolation(err))
}

func TestOrderStatus_IsTerminal(t *testing.T) {
	t.Parallel()

	assert.True(t, OrderStatusDelivered.IsTerminal())
	assert.True(t, OrderStatusCancelled.IsTerminal())
	assert.False(t, OrderStatusPending.IsTerminal())
	assert.False(t, OrderStatusInDelivery.IsTerminal())
}
