// Package usecase defines the business operations exposed to the delivery
// layer. Each operation runs on its own store connection with at most one
// transaction; implementations live in impl.
package usecase

import (
	"context"

	"github.com/google/uuid"

	"pizzeria/internal/domain/entity"
)

// AddressInput carries the five flat address fields of a request.
type AddressInput struct {
	Street  string
	City    string
	State   string
	ZipCode string
	Country string
}

// OrderItemInput selects a catalog pizza and a quantity for a new order.
type OrderItemInput struct {
	PizzaID  uuid.UUID
	Quantity int
}

// CreateOrderInput carries everything needed to place an order. Prices are
// never part of the input; they are snapshotted from the catalog.
type CreateOrderInput struct {
	CustomerID      uuid.UUID
	DeliveryAddress AddressInput
	Items           []OrderItemInput
}

// OrderingUsecase drives the order lifecycle.
type OrderingUsecase interface {
	// CreateOrder places a pending order. The customer must exist and every
	// referenced pizza must exist and be available.
	CreateOrder(ctx context.Context, input CreateOrderInput) (*entity.Order, error)

	GetOrder(ctx context.Context, id uuid.UUID) (*entity.Order, error)
	GetOrderByNumber(ctx context.Context, orderNumber string) (*entity.Order, error)
	ListOrders(ctx context.Context) ([]*entity.Order, error)
	ListOrdersByCustomer(ctx context.Context, customerID uuid.UUID) ([]*entity.Order, error)
	ListOrdersByStatus(ctx context.Context, status entity.OrderStatus) ([]*entity.Order, error)
	// ListPendingDelivery returns confirmed, in-preparation and ready orders,
	// oldest first.
	ListPendingDelivery(ctx context.Context) ([]*entity.Order, error)

	ConfirmOrder(ctx context.Context, id uuid.UUID) error
	StartPreparation(ctx context.Context, id uuid.UUID) error
	MarkReadyForDelivery(ctx context.Context, id uuid.UUID) error
	// AssignDeliveryPerson hands a ready order to an available courier.
	AssignDeliveryPerson(ctx context.Context, orderID, deliveryPersonID uuid.UUID) error
	CompleteDelivery(ctx context.Context, id uuid.UUID) error
	CancelOrder(ctx context.Context, id uuid.UUID) error
}
