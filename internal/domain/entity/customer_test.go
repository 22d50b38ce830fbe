package entity

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerrors "pizzeria/internal/domain/errors"
)

func TestNewCustomer(t *testing.T) {
	t.Parallel()

	address := testAddress(t)
	customer, err := NewCustomer(" Ana ", " García ", "ana@example.com", "+34 600 000 001", &address)
	require.NoError(t, err)

	assert.Equal(t, "Ana", customer.FirstName())
	assert.Equal(t, "García", customer.LastName())
	assert.Equal(t, "Ana García", customer.FullName())
	assert.True(t, customer.IsActive())
	require.NotNil(t, customer.DefaultAddress())
	assert.Equal(t, "Madrid", customer.DefaultAddress().City())
}

func TestNewCustomer_OptionalAddress(t *testing.T) {
	t.Parallel()

	customer, err := NewCustomer("Ana", "García", "ana@example.com", "+34 600 000 001", nil)
	require.NoError(t, err)
	assert.Nil(t, customer.DefaultAddress())
}

func TestNewCustomer_Rejections(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		firstName string
		lastName  string
		email     string
		phone     string
	}{
		{name: "blank first name", firstName: " ", lastName: "García", email: "a@b.com", phone: "1"},
		{name: "blank last name", firstName: "Ana", lastName: "", email: "a@b.com", phone: "1"},
		{name: "blank email", firstName: "Ana", lastName: "García", email: "", phone: "1"},
		{name: "blank phone", firstName: "Ana", lastName: "García", email: "a@b.com", phone: " "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := NewCustomer(tt.firstName, tt.lastName, tt.email, tt.phone, nil)
			require.Error(t, err)
			assert.True(t, domainerrors.IsRuleViolation(err))
		})
	}
}

func TestCustomer_UpdateContactInfo(t *testing.T) {
	t.Parallel()

	customer, err := NewCustomer("Ana", "García", "ana@example.com", "+34 600 000 001", nil)
	require.NoError(t, err)

	address := testAddress(t)
	require.NoError(t, customer.UpdateContactInfo("ana.garcia@example.com", "+34 600 000 002", &address))

	assert.Equal(t, "ana.garcia@example.com", customer.Email())
	assert.Equal(t, "+34 600 000 002", customer.PhoneNumber())
	require.NotNil(t, customer.DefaultAddress())

	err = customer.UpdateContactInfo("", "+34 600 000 002", nil)
	assert.True(t, domainerrors.IsRuleViolation(err))
}

func TestCustomer_Deactivate(t *testing.T) {
	t.Parallel()

	customer, err := NewCustomer("Ana", "García", "ana@example.com", "+34 600 000 001", nil)
	require.NoError(t, err)

	customer.Deactivate()
	assert.False(t, customer.IsActive())
}

func TestRehydrateCustomer_KeepsStoredState(t *testing.T) {
	t.Parallel()

	id := uuid.New()
	created := time.Now().UTC().Add(-time.Hour).Truncate(time.Second)
	updated := time.Now().UTC().Truncate(time.Second)

	customer, err := RehydrateCustomer(id, "Ana", "García", "ana@example.com",
		"+34 600 000 001", nil, false, created, updated)
	require.NoError(t, err)

	assert.Equal(t, id, customer.ID())
	assert.False(t, customer.IsActive(), "stored inactive flag must survive rehydration")
	assert.Equal(t, created, customer.CreatedAt())
	assert.Equal(t, updated, customer.UpdatedAt())
}
