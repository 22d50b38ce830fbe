package persistence

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pizzeria/internal/domain/entity"
)

func persistPizza(t *testing.T, factory *OperationFactory, pizza *entity.Pizza) {
	t.Helper()

	ctx := context.Background()
	op, err := factory.NewOperation(ctx)
	require.NoError(t, err)
	defer op.Close()

	require.NoError(t, op.UnitOfWork().Begin(ctx))
	require.NoError(t, op.Pizzas().Add(ctx, pizza))
	_, err = op.UnitOfWork().SaveChanges(ctx)
	require.NoError(t, err)
}

func buildPizza(t *testing.T, name string, price string, available bool) *entity.Pizza {
	t.Helper()

	pizza, err := entity.NewPizza(name, "House classic", testMoney(t, price), entity.PizzaSizeMedium, available)
	require.NoError(t, err)

	return pizza
}

func TestPizzaRepository_RoundTrip(t *testing.T) {
	t.Parallel()

	factory, _ := newTestFactory(t)
	pizza := buildPizza(t, "Margherita", "8.50", true)
	persistPizza(t, factory, pizza)

	op := openOperation(t, factory)
	loaded, err := op.Pizzas().GetByID(context.Background(), pizza.ID())
	require.NoError(t, err)
	require.NotNil(t, loaded)

	assert.Equal(t, pizza.ID(), loaded.ID())
	assert.Equal(t, "Margherita", loaded.Name())
	assert.Equal(t, entity.PizzaSizeMedium, loaded.Size())
	assert.True(t, loaded.BasePrice().Equal(testMoney(t, "8.50")))
	assert.True(t, loaded.IsAvailable())
}

func TestPizzaRepository_GetAvailable(t *testing.T) {
	t.Parallel()

	factory, _ := newTestFactory(t)
	persistPizza(t, factory, buildPizza(t, "Quattro Formaggi", "12.00", true))
	persistPizza(t, factory, buildPizza(t, "Diavola", "11.00", true))
	persistPizza(t, factory, buildPizza(t, "Calzone", "10.00", false))

	op := openOperation(t, factory)
	available, err := op.Pizzas().GetAvailable(context.Background())
	require.NoError(t, err)

	require.Len(t, available, 2)
	assert.Equal(t, "Diavola", available[0].Name(), "catalog reads are name ascending")
	assert.Equal(t, "Quattro Formaggi", available[1].Name())

	all, err := op.Pizzas().GetAll(context.Background())
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "Calzone", all[0].Name())
}

func TestPizzaRepository_UpdatePersistsPriceAndAvailability(t *testing.T) {
	t.Parallel()

	factory, _ := newTestFactory(t)
	pizza := buildPizza(t, "Margherita", "8.50", true)
	persistPizza(t, factory, pizza)

	require.NoError(t, pizza.UpdatePrice(testMoney(t, "9.90")))
	pizza.SetAvailability(false)

	ctx := context.Background()
	op, err := factory.NewOperation(ctx)
	require.NoError(t, err)
	require.NoError(t, op.UnitOfWork().Begin(ctx))
	require.NoError(t, op.Pizzas().Update(ctx, pizza))
	_, err = op.UnitOfWork().SaveChanges(ctx)
	require.NoError(t, err)
	require.NoError(t, op.Close())

	reader := openOperation(t, factory)
	loaded, err := reader.Pizzas().GetByID(ctx, pizza.ID())
	require.NoError(t, err)
	require.NotNil(t, loaded)

	assert.True(t, loaded.BasePrice().Equal(testMoney(t, "9.90")))
	assert.False(t, loaded.IsAvailable())
}

func TestDeliveryPersonRepository_RoundTripAndGetAvailable(t *testing.T) {
	t.Parallel()

	factory, _ := newTestFactory(t)
	ctx := context.Background()

	available, err := entity.NewDeliveryPerson("Luis", "Pérez", "+34 600 000 003", "1234-ABC")
	require.NoError(t, err)
	busy, err := entity.NewDeliveryPerson("Marta", "Alonso", "+34 600 000 004", "5678-DEF")
	require.NoError(t, err)
	busy.SetAvailability(false)
	retired, err := entity.NewDeliveryPerson("Pablo", "Ruiz", "+34 600 000 005", "9012-GHI")
	require.NoError(t, err)
	retired.Deactivate()

	op, err := factory.NewOperation(ctx)
	require.NoError(t, err)
	require.NoError(t, op.UnitOfWork().Begin(ctx))
	for _, person := range []*entity.DeliveryPerson{available, busy, retired} {
		require.NoError(t, op.DeliveryPersons().Add(ctx, person))
	}
	_, err = op.UnitOfWork().SaveChanges(ctx)
	require.NoError(t, err)
	require.NoError(t, op.Close())

	reader := openOperation(t, factory)

	loaded, err := reader.DeliveryPersons().GetByID(ctx, busy.ID())
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, "Marta Alonso", loaded.FullName())
	assert.Equal(t, "5678-DEF", loaded.VehiclePlate())
	assert.False(t, loaded.IsAvailable())
	assert.True(t, loaded.IsActive())

	free, err := reader.DeliveryPersons().GetAvailable(ctx)
	require.NoError(t, err)
	require.Len(t, free, 1, "only couriers both available and active qualify")
	assert.Equal(t, available.ID(), free[0].ID())

	everyone, err := reader.DeliveryPersons().GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, everyone, 3)
	assert.Equal(t, "Marta Alonso", everyone[0].FullName(), "roster reads order by last name")
}
