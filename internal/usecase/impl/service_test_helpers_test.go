package impl

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"pizzeria/config"
	"pizzeria/internal/domain/entity"
	"pizzeria/internal/domain/event"
	"pizzeria/internal/infra/persistence"
	"pizzeria/internal/infra/record"
	"pizzeria/internal/usecase"
)

var storeSeq atomic.Int64

// recordingDispatcher captures dispatched event names in order.
type recordingDispatcher struct {
	mu    sync.Mutex
	names []string
}

func (d *recordingDispatcher) Dispatch(_ context.Context, evt event.DomainEvent) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.names = append(d.names, evt.Name())

	return nil
}

func (d *recordingDispatcher) dispatched() []string {
	d.mu.Lock()
	defer d.mu.Unlock()

	return append([]string(nil), d.names...)
}

func (d *recordingDispatcher) reset() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.names = nil
}

// serviceFixtures holds all four services wired against one in-memory store.
// The factory is kept for seeding state the services do not create themselves.
type serviceFixtures struct {
	ordering   usecase.OrderingUsecase
	catalog    usecase.CatalogUsecase
	customers  usecase.CustomerUsecase
	payments   usecase.PaymentUsecase
	factory    *persistence.OperationFactory
	dispatcher *recordingDispatcher
}

func createTestServices(t *testing.T) serviceFixtures {
	t.Helper()

	cfg := &config.Config{}
	cfg.Store = config.StoreConfig{
		Driver: "sqlite",
		DSN:    fmt.Sprintf("file:usecasetest%d?mode=memory&cache=shared", storeSeq.Add(1)),
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store, err := record.NewStore(cfg, logger)
	require.NoError(t, err)

	keeper, err := store.Conn(context.Background())
	require.NoError(t, err)
	t.Cleanup(func() {
		keeper.Close()
		store.Close()
	})

	require.NoError(t, persistence.EnsureSchema(context.Background(), store))

	dispatcher := &recordingDispatcher{}
	factory := persistence.NewOperationFactory(store, dispatcher, logger)

	return serviceFixtures{
		ordering:   NewOrderingService(OrderingServiceParams{Operations: factory, Logger: logger}),
		catalog:    NewCatalogService(CatalogServiceParams{Operations: factory, Logger: logger}),
		customers:  NewCustomerService(CustomerServiceParams{Operations: factory, Logger: logger}),
		payments:   NewPaymentService(PaymentServiceParams{Operations: factory, Logger: logger}),
		factory:    factory,
		dispatcher: dispatcher,
	}
}

// seedCourier writes a fresh available courier straight through the
// repository; the ordering flow only consumes couriers, it never creates them.
func seedCourier(t *testing.T, fx serviceFixtures) *entity.DeliveryPerson {
	t.Helper()

	courier, err := entity.NewDeliveryPerson("Luis", "Pérez", "+34 600 000 003", "1234-ABC")
	require.NoError(t, err)

	ctx := context.Background()
	op, err := fx.factory.NewOperation(ctx)
	require.NoError(t, err)
	defer op.Close()

	require.NoError(t, op.UnitOfWork().Begin(ctx))
	require.NoError(t, op.DeliveryPersons().Add(ctx, courier))
	_, err = op.UnitOfWork().SaveChanges(ctx)
	require.NoError(t, err)

	return courier
}

func registerTestCustomer(t *testing.T, fx serviceFixtures) *entity.Customer {
	t.Helper()

	customer, err := fx.customers.RegisterCustomer(context.Background(), usecase.RegisterCustomerInput{
		FirstName:   "Ana",
		LastName:    "García",
		Email:       "ana@example.com",
		PhoneNumber: "+34 600 000 001",
	})
	require.NoError(t, err)

	return customer
}

func addTestPizza(t *testing.T, fx serviceFixtures, name, price string, available bool) *entity.Pizza {
	t.Helper()

	pizza, err := fx.catalog.AddPizza(context.Background(), usecase.AddPizzaInput{
		Name:        name,
		Description: "House classic",
		BasePrice:   decimal.RequireFromString(price),
		Currency:    "EUR",
		Size:        entity.PizzaSizeMedium,
		IsAvailable: available,
	})
	require.NoError(t, err)

	return pizza
}

func testDeliveryAddress() usecase.AddressInput {
	return usecase.AddressInput{
		Street:  "Calle Mayor 1",
		City:    "Madrid",
		State:   "Madrid",
		ZipCode: "28001",
		Country: "Spain",
	}
}

// placeTestOrder creates an order with two lines of the given pizza.
func placeTestOrder(t *testing.T, fx serviceFixtures, customer *entity.Customer, pizza *entity.Pizza) *entity.Order {
	t.Helper()

	order, err := fx.ordering.CreateOrder(context.Background(), usecase.CreateOrderInput{
		CustomerID:      customer.ID(),
		DeliveryAddress: testDeliveryAddress(),
		Items: []usecase.OrderItemInput{
			{PizzaID: pizza.ID(), Quantity: 2},
		},
	})
	require.NoError(t, err)

	return order
}
