package entity

import (
	domainerrors "pizzeria/internal/domain/errors"
)

// OrderStatus represents the lifecycle state of an order. The legacy store
// persists the textual name.
type OrderStatus string

const (
	// OrderStatusPending is the initial state; items are only mutable here.
	OrderStatusPending OrderStatus = "Pending"
	// OrderStatusConfirmed means the order was accepted with at least one item.
	OrderStatusConfirmed OrderStatus = "Confirmed"
	// OrderStatusInPreparation means the kitchen started working on the order.
	OrderStatusInPreparation OrderStatus = "InPreparation"
	// OrderStatusReadyForDelivery means the order is waiting for a courier.
	OrderStatusReadyForDelivery OrderStatus = "ReadyForDelivery"
	// OrderStatusInDelivery means a delivery person took the order.
	OrderStatusInDelivery OrderStatus = "InDelivery"
	// OrderStatusDelivered is a terminal state.
	OrderStatusDelivered OrderStatus = "Delivered"
	// OrderStatusCancelled is a terminal state reachable from any non-terminal one.
	OrderStatusCancelled OrderStatus = "Cancelled"
)

// String returns the string representation of the OrderStatus.
func (s OrderStatus) String() string {
	return string(s)
}

// IsValid checks if the OrderStatus is a valid value.
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusPending, OrderStatusConfirmed, OrderStatusInPreparation,
		OrderStatusReadyForDelivery, OrderStatusInDelivery,
		OrderStatusDelivered, OrderStatusCancelled:
		return true
	default:
		return false
	}
}

// IsTerminal reports whether no further transition is allowed from s.
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusDelivered || s == OrderStatusCancelled
}

// ParseOrderStatus converts a persisted status name back to an OrderStatus.
func ParseOrderStatus(name string) (OrderStatus, error) {
	status := OrderStatus(name)
	if !status.IsValid() {
		return "", domainerrors.NewRuleViolation("unknown order status: " + name)
	}

	return status, nil
}
