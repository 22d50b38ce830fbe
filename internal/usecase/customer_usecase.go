package usecase

import (
	"context"

	"github.com/google/uuid"

	"pizzeria/internal/domain/entity"
)

// RegisterCustomerInput carries a new customer registration. DefaultAddress is
// optional.
type RegisterCustomerInput struct {
	FirstName      string
	LastName       string
	Email          string
	PhoneNumber    string
	DefaultAddress *AddressInput
}

// CustomerUsecase manages customer records.
type CustomerUsecase interface {
	RegisterCustomer(ctx context.Context, input RegisterCustomerInput) (*entity.Customer, error)
	GetCustomer(ctx context.Context, id uuid.UUID) (*entity.Customer, error)
	GetCustomerByEmail(ctx context.Context, email string) (*entity.Customer, error)
	ListCustomers(ctx context.Context) ([]*entity.Customer, error)
	UpdateCustomerContact(ctx context.Context, id uuid.UUID, email, phoneNumber string, defaultAddress *AddressInput) error
	DeactivateCustomer(ctx context.Context, id uuid.UUID) error
}
