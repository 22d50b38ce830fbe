package persistence

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pizzeria/internal/domain/entity"
)

func persistCustomer(t *testing.T, factory *OperationFactory, customer *entity.Customer) {
	t.Helper()

	ctx := context.Background()
	op, err := factory.NewOperation(ctx)
	require.NoError(t, err)
	defer op.Close()

	require.NoError(t, op.UnitOfWork().Begin(ctx))
	require.NoError(t, op.Customers().Add(ctx, customer))
	_, err = op.UnitOfWork().SaveChanges(ctx)
	require.NoError(t, err)
}

func TestCustomerRepository_RoundTripWithAddress(t *testing.T) {
	t.Parallel()

	factory, _ := newTestFactory(t)
	address := testAddress(t)
	customer, err := entity.NewCustomer("Ana", "García", "ana@example.com", "+34 600 000 001", &address)
	require.NoError(t, err)
	persistCustomer(t, factory, customer)

	op := openOperation(t, factory)
	loaded, err := op.Customers().GetByID(context.Background(), customer.ID())
	require.NoError(t, err)
	require.NotNil(t, loaded)

	assert.Equal(t, customer.ID(), loaded.ID())
	assert.Equal(t, "Ana García", loaded.FullName())
	assert.Equal(t, "ana@example.com", loaded.Email())
	assert.True(t, loaded.IsActive())
	require.NotNil(t, loaded.DefaultAddress())
	assert.Equal(t, "Calle Mayor 1", loaded.DefaultAddress().Street())
	assert.Equal(t, "28001", loaded.DefaultAddress().ZipCode())
}

func TestCustomerRepository_RoundTripWithoutAddress(t *testing.T) {
	t.Parallel()

	factory, _ := newTestFactory(t)
	customer, err := entity.NewCustomer("Ana", "García", "ana@example.com", "+34 600 000 001", nil)
	require.NoError(t, err)
	persistCustomer(t, factory, customer)

	op := openOperation(t, factory)
	loaded, err := op.Customers().GetByID(context.Background(), customer.ID())
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Nil(t, loaded.DefaultAddress(), "absent address stays absent after a round trip")
}

func TestCustomerRepository_GetByEmail(t *testing.T) {
	t.Parallel()

	factory, _ := newTestFactory(t)
	customer, err := entity.NewCustomer("Ana", "García", "ana@example.com", "+34 600 000 001", nil)
	require.NoError(t, err)
	persistCustomer(t, factory, customer)

	op := openOperation(t, factory)
	loaded, err := op.Customers().GetByEmail(context.Background(), "ana@example.com")
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, customer.ID(), loaded.ID())

	missing, err := op.Customers().GetByEmail(context.Background(), "nobody@example.com")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestCustomerRepository_GetAllOrdersByName(t *testing.T) {
	t.Parallel()

	factory, _ := newTestFactory(t)
	for _, tt := range []struct{ first, last, email string }{
		{first: "Carlos", last: "Zapata", email: "carlos@example.com"},
		{first: "Ana", last: "García", email: "ana@example.com"},
		{first: "Berta", last: "García", email: "berta@example.com"},
	} {
		customer, err := entity.NewCustomer(tt.first, tt.last, tt.email, "+34 600 000 001", nil)
		require.NoError(t, err)
		persistCustomer(t, factory, customer)
	}

	op := openOperation(t, factory)
	customers, err := op.Customers().GetAll(context.Background())
	require.NoError(t, err)

	require.Len(t, customers, 3)
	assert.Equal(t, "Ana García", customers[0].FullName())
	assert.Equal(t, "Berta García", customers[1].FullName())
	assert.Equal(t, "Carlos Zapata", customers[2].FullName())
}

func TestCustomerRepository_UpdatePersistsContactAndFlag(t *testing.T) {
	t.Parallel()

	factory, _ := newTestFactory(t)
	customer, err := entity.NewCustomer("Ana", "García", "ana@example.com", "+34 600 000 001", nil)
	require.NoError(t, err)
	persistCustomer(t, factory, customer)

	address := testAddress(t)
	require.NoError(t, customer.UpdateContactInfo("ana.garcia@example.com", "+34 600 000 002", &address))
	customer.Deactivate()

	ctx := context.Background()
	op, err := factory.NewOperation(ctx)
	require.NoError(t, err)
	require.NoError(t, op.UnitOfWork().Begin(ctx))
	require.NoError(t, op.Customers().Update(ctx, customer))
	_, err = op.UnitOfWork().SaveChanges(ctx)
	require.NoError(t, err)
	require.NoError(t, op.Close())

	reader := openOperation(t, factory)
	loaded, err := reader.Customers().GetByID(ctx, customer.ID())
	require.NoError(t, err)
	require.NotNil(t, loaded)

	assert.Equal(t, "ana.garcia@example.com", loaded.Email())
	assert.Equal(t, "+34 600 000 002", loaded.PhoneNumber())
	assert.False(t, loaded.IsActive())
	require.NotNil(t, loaded.DefaultAddress())
}

func TestCustomerRepository_Delete(t *testing.T) {
	t.Parallel()

	factory, _ := newTestFactory(t)
	customer, err := entity.NewCustomer("Ana", "García", "ana@example.com", "+34 600 000 001", nil)
	require.NoError(t, err)
	persistCustomer(t, factory, customer)

	ctx := context.Background()
	op, err := factory.NewOperation(ctx)
	require.NoError(t, err)
	require.NoError(t, op.UnitOfWork().Begin(ctx))
	require.NoError(t, op.Customers().Delete(ctx, customer))
	_, err = op.UnitOfWork().SaveChanges(ctx)
	require.NoError(t, err)
	require.NoError(t, op.Close())

	reader := openOperation(t, factory)
	loaded, err := reader.Customers().GetByID(ctx, customer.ID())
	require.NoError(t, err)
	assert.Nil(t, loaded)
}
