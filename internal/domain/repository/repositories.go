// Package repository defines the persistence contracts of the domain. The
// concrete implementations live in internal/infra/persistence and talk to the
// legacy record store; use cases only ever see these interfaces.
//
// Lookups that miss return a nil aggregate and a nil error: absence is a normal
// outcome, not a failure. Store and mapping failures are returned as errors.
package repository

import (
	"context"

	"github.com/google/uuid"

	"pizzeria/internal/domain/entity"
)

// OrderRepository persists the order aggregate, items included.
type OrderRepository interface {
	// GetByID reconstructs the full aggregate, item rows included.
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Order, error)
	// GetAll returns order roots newest first. Items are not loaded.
	GetAll(ctx context.Context) ([]*entity.Order, error)
	// Add writes the root row and one row per item, then registers the
	// aggregate with the unit of work.
	Add(ctx context.Context, order *entity.Order) error
	// Update rewrites the mutable columns (status, total, courier, updated-at)
	// and registers the aggregate with the unit of work.
	Update(ctx context.Context, order *entity.Order) error
	// Delete removes item rows before the root row.
	Delete(ctx context.Context, order *entity.Order) error

	GetByOrderNumber(ctx context.Context, orderNumber string) (*entity.Order, error)
	GetByCustomerID(ctx context.Context, customerID uuid.UUID) ([]*entity.Order, error)
	GetByStatus(ctx context.Context, status entity.OrderStatus) ([]*entity.Order, error)
	// GetPendingDelivery returns confirmed, in-preparation and ready orders,
	// oldest first.
	GetPendingDelivery(ctx context.Context) ([]*entity.Order, error)
}

// CustomerRepository persists customers.
type CustomerRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Customer, error)
	// GetAll returns customers ordered by last name, then first name.
	GetAll(ctx context.Context) ([]*entity.Customer, error)
	Add(ctx context.Context, customer *entity.Customer) error
	Update(ctx context.Context, customer *entity.Customer) error
	Delete(ctx context.Context, customer *entity.Customer) error

	GetByEmail(ctx context.Context, email string) (*entity.Customer, error)
}

// PizzaRepository persists the catalog.
type PizzaRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Pizza, error)
	// GetAll returns pizzas ordered by name ascending.
	GetAll(ctx context.Context) ([]*entity.Pizza, error)
	Add(ctx context.Context, pizza *entity.Pizza) error
	Update(ctx context.Context, pizza *entity.Pizza) error
	Delete(ctx context.Context, pizza *entity.Pizza) error

	// GetAvailable returns only availability-flagged pizzas, name ascending.
	GetAvailable(ctx context.Context) ([]*entity.Pizza, error)
}

// DeliveryPersonRepository persists couriers.
type DeliveryPersonRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*entity.DeliveryPerson, error)
	// GetAll returns couriers ordered by last name, then first name.
	GetAll(ctx context.Context) ([]*entity.DeliveryPerson, error)
	Add(ctx context.Context, person *entity.DeliveryPerson) error
	Update(ctx context.Context, person *entity.DeliveryPerson) error
	Delete(ctx context.Context, person *entity.DeliveryPerson) error

	// GetAvailable returns couriers that are both available and active.
	GetAvailable(ctx context.Context) ([]*entity.DeliveryPerson, error)
}

// PaymentRepository persists payments.
type PaymentRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Payment, error)
	// GetAll returns payments newest first.
	GetAll(ctx context.Context) ([]*entity.Payment, error)
	Add(ctx context.Context, payment *entity.Payment) error
	Update(ctx context.Context, payment *entity.Payment) error
	Delete(ctx context.Context, payment *entity.Payment) error

	GetByOrderID(ctx context.Context, orderID uuid.UUID) (*entity.Payment, error)
}
