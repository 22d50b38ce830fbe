package impl

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"go.uber.org/fx"

	"pizzeria/internal/domain/entity"
	domainerrors "pizzeria/internal/domain/errors"
	"pizzeria/internal/domain/repository"
	"pizzeria/internal/usecase"
)

type customerService struct {
	operations repository.OperationFactory
	logger     *slog.Logger
}

// CustomerServiceParams holds dependencies for CustomerService, injected by Fx.
type CustomerServiceParams struct {
	fx.In

	Operations repository.OperationFactory
	Logger     *slog.Logger
}

// NewCustomerService creates the customer usecase implementation.
func NewCustomerService(params CustomerServiceParams) usecase.CustomerUsecase {
	return &customerService{
		operations: params.Operations,
		logger:     params.Logger,
	}
}

func (s *customerService) RegisterCustomer(ctx context.Context, input usecase.RegisterCustomerInput) (*entity.Customer, error) {
	defaultAddress, err := optionalAddress(input.DefaultAddress)
	if err != nil {
		return nil, err
	}

	customer, err := entity.NewCustomer(input.FirstName, input.LastName, input.Email,
		input.PhoneNumber, defaultAddress)
	if err != nil {
		return nil, err
	}

	op, err := s.operations.NewOperation(ctx)
	if err != nil {
		return nil, err
	}
	defer op.Close()

	if err := op.UnitOfWork().Begin(ctx); err != nil {
		return nil, err
	}
	if err := op.Customers().Add(ctx, customer); err != nil {
		return nil, err
	}
	if _, err := op.UnitOfWork().SaveChanges(ctx); err != nil {
		return nil, err
	}

	s.logger.Info("customer registered", slog.String("customerID", customer.ID().String()))

	return customer, nil
}

func (s *customerService) GetCustomer(ctx context.Context, id uuid.UUID) (*entity.Customer, error) {
	op, err := s.operations.NewOperation(ctx)
	if err != nil {
		return nil, err
	}
	defer op.Close()

	customer, err := op.Customers().GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domainerrors.ErrCustomerNotFound.WithDetails("customer " + id.String())
	}

	return customer, nil
}

func (s *customerService) GetCustomerByEmail(ctx context.Context, email string) (*entity.Customer, error) {
	op, err := s.operations.NewOperation(ctx)
	if err != nil {
		return nil, err
	}
	defer op.Close()

	customer, err := op.Customers().GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domainerrors.ErrCustomerNotFound.WithDetails("email " + email)
	}

	return customer, nil
}

func (s *customerService) ListCustomers(ctx context.Context) ([]*entity.Customer, error) {
	op, err := s.operations.NewOperation(ctx)
	if err != nil {
		return nil, err
	}
	defer op.Close()

	return op.Customers().GetAll(ctx)
}

func (s *customerService) UpdateCustomerContact(ctx context.Context, id uuid.UUID, email, phoneNumber string, defaultAddress *usecase.AddressInput) error {
	address, err := optionalAddress(defaultAddress)
	if err != nil {
		return err
	}

	return s.mutateCustomer(ctx, id, func(customer *entity.Customer) error {
		return customer.UpdateContactInfo(email, phoneNumber, address)
	})
}

func (s *customerService) DeactivateCustomer(ctx context.Context, id uuid.UUID) error {
	return s.mutateCustomer(ctx, id, func(customer *entity.Customer) error {
		customer.Deactivate()

		return nil
	})
}

func (s *customerService) mutateCustomer(ctx context.Context, id uuid.UUID, mutate func(*entity.Customer) error) error {
	op, err := s.operations.NewOperation(ctx)
	if err != nil {
		return err
	}
	defer op.Close()

	if err := op.UnitOfWork().Begin(ctx); err != nil {
		return err
	}

	customer, err := op.Customers().GetByID(ctx, id)
	if err != nil {
		return err
	}
	if customer == nil {
		return domainerrors.ErrCustomerNotFound.WithDetails("customer " + id.String())
	}

	if err := mutate(customer); err != nil {
		return err
	}
	if err := op.Customers().Update(ctx, customer); err != nil {
		return err
	}
	_, err = op.UnitOfWork().SaveChanges(ctx)

	return err
}

func optionalAddress(input *usecase.AddressInput) (*entity.Address, error) {
	if input == nil {
		return nil, nil
	}

	address, err := entity.NewAddress(input.Street, input.City, input.State, input.ZipCode, input.Country)
	if err != nil {
		return nil, err
	}

	return &address, nil
}
