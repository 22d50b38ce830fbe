package event

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Event names, used as routing keys by the dispatcher.
const (
	NameOrderCreated     = "order.created"
	NameOrderConfirmed   = "order.confirmed"
	NameOrderDelivered   = "order.delivered"
	NamePaymentCompleted = "payment.completed"
)

// OrderCreated is raised when a new order enters the system.
type OrderCreated struct {
	Base

	OrderID     uuid.UUID
	CustomerID  uuid.UUID
	TotalAmount decimal.Decimal
	Currency    string
}

// NewOrderCreated builds the event for a freshly created order.
func NewOrderCreated(orderID, customerID uuid.UUID, totalAmount decimal.Decimal, currency string) OrderCreated {
	return OrderCreated{
		Base:        NewBase(),
		OrderID:     orderID,
		CustomerID:  customerID,
		TotalAmount: totalAmount,
		Currency:    currency,
	}
}

// Name returns the routing key of the event.
func (OrderCreated) Name() string { return NameOrderCreated }

// OrderConfirmed is raised when a pending order is confirmed.
type OrderConfirmed struct {
	Base

	OrderID uuid.UUID
}

// NewOrderConfirmed builds the confirmation event.
func NewOrderConfirmed(orderID uuid.UUID) OrderConfirmed {
	return OrderConfirmed{Base: NewBase(), OrderID: orderID}
}

// Name returns the routing key of the event.
func (OrderConfirmed) Name() string { return NameOrderConfirmed }

// OrderDelivered is raised when a delivery is completed.
type OrderDelivered struct {
	Base

	OrderID          uuid.UUID
	DeliveryPersonID uuid.UUID
}

// NewOrderDelivered builds the delivery completion event.
func NewOrderDelivered(orderID, deliveryPersonID uuid.UUID) OrderDelivered {
	return OrderDelivered{Base: NewBase(), OrderID: orderID, DeliveryPersonID: deliveryPersonID}
}

// Name returns the routing key of the event.
func (OrderDelivered) Name() string { return NameOrderDelivered }

// PaymentCompleted is raised when a pending payment settles.
type PaymentCompleted struct {
	Base

	PaymentID uuid.UUID
	OrderID   uuid.UUID
	Amount    decimal.Decimal
	Currency  string
}

// NewPaymentCompleted builds the settlement event.
func NewPaymentCompleted(paymentID, orderID uuid.UUID, amount decimal.Decimal, currency string) PaymentCompleted {
	return PaymentCompleted{
		Base:      NewBase(),
		PaymentID: paymentID,
		OrderID:   orderID,
		Amount:    amount,
		Currency:  currency,
	}
}

// Name returns the routing key of the event.
func (PaymentCompleted) Name() string { return NamePaymentCompleted }
