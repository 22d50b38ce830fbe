package persistence

import (
	"context"
	"log/slog"

	"pizzeria/internal/domain/repository"
	"pizzeria/internal/domain/service"
	"pizzeria/internal/infra/record"
)

// operation bundles the five repositories and the unit of work around one
// borrowed store connection.
type operation struct {
	conn *record.Connection
	uow  *unitOfWork

	orders          repository.OrderRepository
	customers       repository.CustomerRepository
	pizzas          repository.PizzaRepository
	deliveryPersons repository.DeliveryPersonRepository
	payments        repository.PaymentRepository
}

func (o *operation) Orders() repository.OrderRepository                   { return o.orders }
func (o *operation) Customers() repository.CustomerRepository             { return o.customers }
func (o *operation) Pizzas() repository.PizzaRepository                   { return o.pizzas }
func (o *operation) DeliveryPersons() repository.DeliveryPersonRepository { return o.deliveryPersons }
func (o *operation) Payments() repository.PaymentRepository               { return o.payments }
func (o *operation) UnitOfWork() repository.UnitOfWork                    { return o.uow }

func (o *operation) Close() error {
	return o.conn.Close()
}

// OperationFactory opens one Operation per business operation. The factory is
// the process-wide singleton; what it hands out is request-scoped.
type OperationFactory struct {
	store      *record.Store
	dispatcher service.EventDispatcher
	logger     *slog.Logger
}

// NewOperationFactory wires the factory against the store and the dispatcher.
func NewOperationFactory(store *record.Store, dispatcher service.EventDispatcher, logger *slog.Logger) *OperationFactory {
	return &OperationFactory{store: store, dispatcher: dispatcher, logger: logger}
}

// NewOperation borrows a connection and builds the repository bundle on it.
// The caller owns the Operation and must Close it.
func (f *OperationFactory) NewOperation(ctx context.Context) (repository.Operation, error) {
	conn, err := f.store.Conn(ctx)
	if err != nil {
		return nil, err
	}

	uow := newUnitOfWork(conn, f.dispatcher, f.logger)
	schema := f.store.Schema()

	return &operation{
		conn:            conn,
		uow:             uow,
		orders:          newOrderRepository(conn, uow, schema, f.logger),
		customers:       newCustomerRepository(conn, uow, schema, f.logger),
		pizzas:          newPizzaRepository(conn, uow, schema, f.logger),
		deliveryPersons: newDeliveryPersonRepository(conn, uow, schema, f.logger),
		payments:        newPaymentRepository(conn, uow, schema, f.logger),
	}, nil
}
