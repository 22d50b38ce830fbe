package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"

	domainerrors "pizzeria/internal/domain/errors"
)

// OrderItem is one line of an order. The pizza name and unit price are
// snapshots captured when the item was added; they are not re-synced with the
// catalog afterwards.
type OrderItem struct {
	Base

	orderID   uuid.UUID
	pizzaID   uuid.UUID
	pizzaName string
	quantity  int
	unitPrice Money
	subtotal  Money
}

// NewOrderItem validates and creates an order line.
func NewOrderItem(orderID, pizzaID uuid.UUID, pizzaName string, quantity int, unitPrice Money) (*OrderItem, error) {
	item, err := buildOrderItem(orderID, pizzaID, pizzaName, quantity, unitPrice)
	if err != nil {
		return nil, err
	}
	item.Base = newBase()

	return item, nil
}

// RehydrateOrderItem reconstructs a persisted order line, keeping its stored
// identity and timestamps. The line invariants are revalidated; the subtotal is
// recomputed rather than trusted.
func RehydrateOrderItem(id, orderID, pizzaID uuid.UUID, pizzaName string, quantity int, unitPrice Money, createdAt, updatedAt time.Time) (*OrderItem, error) {
	item, err := buildOrderItem(orderID, pizzaID, pizzaName, quantity, unitPrice)
	if err != nil {
		return nil, err
	}
	item.Base = rehydrateBase(id, createdAt, updatedAt)

	return item, nil
}

func buildOrderItem(orderID, pizzaID uuid.UUID, pizzaName string, quantity int, unitPrice Money) (*OrderItem, error) {
	if orderID == uuid.Nil {
		return nil, domainerrors.NewRuleViolation("order ID cannot be empty")
	}
	if pizzaID == uuid.Nil {
		return nil, domainerrors.NewRuleViolation("pizza ID cannot be empty")
	}
	if strings.TrimSpace(pizzaName) == "" {
		return nil, domainerrors.NewRuleViolation("pizza name cannot be empty")
	}
	if quantity <= 0 {
		return nil, domainerrors.NewRuleViolation("quantity must be greater than zero")
	}

	return &OrderItem{
		orderID:   orderID,
		pizzaID:   pizzaID,
		pizzaName: strings.TrimSpace(pizzaName),
		quantity:  quantity,
		unitPrice: unitPrice,
		subtotal:  unitPrice.MultiplyInt(quantity),
	}, nil
}

// OrderID returns the owning order's identity.
func (i *OrderItem) OrderID() uuid.UUID { return i.orderID }

// PizzaID returns the referenced pizza's identity.
func (i *OrderItem) PizzaID() uuid.UUID { return i.pizzaID }

// PizzaName returns the name snapshot captured at add time.
func (i *OrderItem) PizzaName() string { return i.pizzaName }

// Quantity returns the ordered quantity.
func (i *OrderItem) Quantity() int { return i.quantity }

// UnitPrice returns the price snapshot captured at add time.
func (i *OrderItem) UnitPrice() Money { return i.unitPrice }

// Subtotal returns unit price times quantity.
func (i *OrderItem) Subtotal() Money { return i.subtotal }
