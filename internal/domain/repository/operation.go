package repository

import "context"

// Operation bundles everything one business operation needs: the five
// repositories and the unit of work, all bound to a single store connection.
// Operations are never shared across concurrent requests.
type Operation interface {
	Orders() OrderRepository
	Customers() CustomerRepository
	Pizzas() PizzaRepository
	DeliveryPersons() DeliveryPersonRepository
	Payments() PaymentRepository
	UnitOfWork() UnitOfWork

	// Close releases the underlying connection, rolling back any transaction
	// still open. Safe to defer.
	Close() error
}

// OperationFactory opens a fresh Operation per business operation.
type OperationFactory interface {
	NewOperation(ctx context.Context) (Operation, error)
}
