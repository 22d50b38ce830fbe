package entity

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	domainerrors "pizzeria/internal/domain/errors"
	"pizzeria/internal/domain/event"
)

// Order is the root aggregate of the ordering flow. It owns its line items and
// keeps the running total equal to the sum of the item subtotals at all times.
// Items are only mutable while the order is pending.
type Order struct {
	Base

	orderNumber      string
	customerID       uuid.UUID
	orderDate        time.Time
	status           OrderStatus
	total            Money
	deliveryAddress  Address
	deliveryPersonID *uuid.UUID
	items            []*OrderItem
}

// NewOrder creates a pending order for a customer and raises the creation
// event.
func NewOrder(customerID uuid.UUID, deliveryAddress Address) (*Order, error) {
	if customerID == uuid.Nil {
		return nil, domainerrors.NewRuleViolation("customer ID cannot be empty")
	}
	if deliveryAddress.IsZero() {
		return nil, domainerrors.NewRuleViolation("delivery address cannot be empty")
	}

	order := &Order{
		Base:            newBase(),
		orderNumber:     generateOrderNumber(),
		customerID:      customerID,
		orderDate:       time.Now().UTC(),
		status:          OrderStatusPending,
		total:           ZeroMoney(DefaultCurrency),
		deliveryAddress: deliveryAddress,
	}
	order.raise(event.NewOrderCreated(order.ID(), customerID, order.total.Amount(), order.total.Currency()))

	return order, nil
}

// RehydrateOrder reconstructs an order root from persisted state. Identity,
// status and timestamps bypass creation validation; only shape and referential
// checks run here. Items are restored separately through RestoreItem, which
// revalidates each line and recomputes the total.
func RehydrateOrder(
	id uuid.UUID,
	orderNumber string,
	customerID uuid.UUID,
	orderDate time.Time,
	status OrderStatus,
	total Money,
	deliveryAddress Address,
	deliveryPersonID *uuid.UUID,
	createdAt, updatedAt time.Time,
) (*Order, error) {
	if strings.TrimSpace(orderNumber) == "" {
		return nil, domainerrors.NewRuleViolation("order number cannot be empty")
	}
	if customerID == uuid.Nil {
		return nil, domainerrors.NewRuleViolation("customer ID cannot be empty")
	}
	if !status.IsValid() {
		return nil, domainerrors.NewRuleViolation("unknown order status: " + status.String())
	}
	if deliveryAddress.IsZero() {
		return nil, domainerrors.NewRuleViolation("delivery address cannot be empty")
	}

	return &Order{
		Base:             rehydrateBase(id, createdAt, updatedAt),
		orderNumber:      orderNumber,
		customerID:       customerID,
		orderDate:        orderDate,
		status:           status,
		total:            total,
		deliveryAddress:  deliveryAddress,
		deliveryPersonID: deliveryPersonID,
	}, nil
}

func generateOrderNumber() string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])

	return fmt.Sprintf("ORD-%s-%s", time.Now().UTC().Format("20060102"), suffix)
}

// AddItem appends a line to a pending order and recomputes the total.
func (o *Order) AddItem(pizzaID uuid.UUID, pizzaName string, quantity int, unitPrice Money) error {
	if o.status != OrderStatusPending {
		return domainerrors.NewRuleViolation("cannot add items to order in " + o.status.String() + " status")
	}

	item, err := NewOrderItem(o.ID(), pizzaID, pizzaName, quantity, unitPrice)
	if err != nil {
		return err
	}
	if err := o.appendItem(item); err != nil {
		return err
	}
	o.touch()

	return nil
}

// RemoveItem removes a line from a pending order and recomputes the total.
func (o *Order) RemoveItem(itemID uuid.UUID) error {
	if o.status != OrderStatusPending {
		return domainerrors.NewRuleViolation("cannot remove items from order in " + o.status.String() + " status")
	}

	for idx, item := range o.items {
		if item.ID() == itemID {
			o.items = append(o.items[:idx], o.items[idx+1:]...)
			if err := o.recalculateTotal(); err != nil {
				return err
			}
			o.touch()

			return nil
		}
	}

	return domainerrors.NewRuleViolation("order item not found")
}

// RestoreItem replays a persisted line during rehydration. The line invariants
// are revalidated and the total recomputed, but the pending-status gate does
// not apply: persisted orders must stay readable after they leave Pending.
func (o *Order) RestoreItem(id, pizzaID uuid.UUID, pizzaName string, quantity int, unitPrice Money, createdAt, updatedAt time.Time) error {
	item, err := RehydrateOrderItem(id, o.ID(), pizzaID, pizzaName, quantity, unitPrice, createdAt, updatedAt)
	if err != nil {
		return err
	}

	return o.appendItem(item)
}

func (o *Order) appendItem(item *OrderItem) error {
	o.items = append(o.items, item)
	if err := o.recalculateTotal(); err != nil {
		o.items = o.items[:len(o.items)-1]

		return err
	}

	return nil
}

func (o *Order) recalculateTotal() error {
	if len(o.items) == 0 {
		o.total = ZeroMoney(o.total.Currency())

		return nil
	}

	total := o.items[0].Subtotal()
	for _, item := range o.items[1:] {
		sum, err := total.Add(item.Subtotal())
		if err != nil {
			return err
		}
		total = sum
	}
	o.total = total

	return nil
}

// Confirm moves a pending order with at least one item to Confirmed and raises
// the confirmation event.
func (o *Order) Confirm() error {
	if o.status != OrderStatusPending {
		return domainerrors.NewRuleViolation("cannot confirm order in " + o.status.String() + " status")
	}
	if len(o.items) == 0 {
		return domainerrors.NewRuleViolation("cannot confirm order with no items")
	}

	o.status = OrderStatusConfirmed
	o.touch()
	o.raise(event.NewOrderConfirmed(o.ID()))

	return nil
}

// StartPreparation moves a confirmed order to InPreparation.
func (o *Order) StartPreparation() error {
	if o.status != OrderStatusConfirmed {
		return domainerrors.NewRuleViolation("cannot start preparation for order in " + o.status.String() + " status")
	}

	o.status = OrderStatusInPreparation
	o.touch()

	return nil
}

// MarkReadyForDelivery moves an order in preparation to ReadyForDelivery.
func (o *Order) MarkReadyForDelivery() error {
	if o.status != OrderStatusInPreparation {
		return domainerrors.NewRuleViolation("cannot mark order ready for delivery in " + o.status.String() + " status")
	}

	o.status = OrderStatusReadyForDelivery
	o.touch()

	return nil
}

// AssignDeliveryPerson hands a ready order to a courier and moves it to
// InDelivery.
func (o *Order) AssignDeliveryPerson(deliveryPersonID uuid.UUID) error {
	if deliveryPersonID == uuid.Nil {
		return domainerrors.NewRuleViolation("delivery person ID cannot be empty")
	}
	if o.status != OrderStatusReadyForDelivery {
		return domainerrors.NewRuleViolation("cannot assign delivery person to order in " + o.status.String() + " status")
	}

	o.deliveryPersonID = &deliveryPersonID
	o.status = OrderStatusInDelivery
	o.touch()

	return nil
}

// CompleteDelivery moves an order in delivery to Delivered and raises the
// delivery event.
func (o *Order) CompleteDelivery() error {
	if o.status != OrderStatusInDelivery {
		return domainerrors.NewRuleViolation("cannot complete delivery for order in " + o.status.String() + " status")
	}
	if o.deliveryPersonID == nil {
		return domainerrors.NewRuleViolation("cannot complete delivery without a delivery person")
	}

	o.status = OrderStatusDelivered
	o.touch()
	o.raise(event.NewOrderDelivered(o.ID(), *o.deliveryPersonID))

	return nil
}

// Cancel moves any non-terminal order to Cancelled.
func (o *Order) Cancel() error {
	if o.status == OrderStatusDelivered {
		return domainerrors.NewRuleViolation("cannot cancel a delivered order")
	}
	if o.status == OrderStatusCancelled {
		return domainerrors.NewRuleViolation("order is already cancelled")
	}

	o.status = OrderStatusCancelled
	o.touch()

	return nil
}

// OrderNumber returns the human-readable order number.
func (o *Order) OrderNumber() string { return o.orderNumber }

// CustomerID returns the ordering customer's identity.
func (o *Order) CustomerID() uuid.UUID { return o.customerID }

// OrderDate returns the moment the order was placed.
func (o *Order) OrderDate() time.Time { return o.orderDate }

// Status returns the current lifecycle state.
func (o *Order) Status() OrderStatus { return o.status }

// Total returns the sum of the item subtotals.
func (o *Order) Total() Money { return o.total }

// DeliveryAddress returns the delivery destination.
func (o *Order) DeliveryAddress() Address { return o.deliveryAddress }

// DeliveryPersonID returns the assigned courier, or nil before assignment.
func (o *Order) DeliveryPersonID() *uuid.UUID { return o.deliveryPersonID }

// Items returns the order lines in addition order.
func (o *Order) Items() []*OrderItem {
	items := make([]*OrderItem, len(o.items))
	copy(items, o.items)

	return items
}
