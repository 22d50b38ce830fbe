// Package impl implements the usecase interfaces. Every operation obtains a
// fresh Operation from the factory, runs on that single connection, and
// releases it on return; mutations run inside the operation's transaction and
// finish with one SaveChanges.
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

type orderingService struct {
	operations repository.OperationFactory
	logger     *slog.Logger
}

// OrderingServiceParams holds dependencies for OrderingService, injected by Fx.
type OrderingServiceParams struct {
	fx.In

	Operations repository.OperationFactory
	Logger     *slog.Logger
}

// NewOrderingService creates the ordering usecase implementation.
func NewOrderingService(params OrderingServiceParams) usecase.OrderingUsecase {
	return &orderingService{
		operations: params.Operations,
		logger:     params.Logger,
	}
}

// CreateOrder places a pending order: the customer must exist, every pizza
// must exist and be available, and each line snapshots the pizza's current
// name and price.
func (s *orderingService) CreateOrder(ctx context.Context, input usecase.CreateOrderInput) (*entity.Order, error) {
	op, err := s.operations.NewOperation(ctx)
	if err != nil {
		return nil, err
	}
	defer op.Close()

	if err := op.UnitOfWork().Begin(ctx); err != nil {
		return nil, err
	}

	customer, err := op.Customers().GetByID(ctx, input.CustomerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domainerrors.ErrCustomerNotFound.WithDetails("customer " + input.CustomerID.String())
	}

	address, err := entity.NewAddress(input.DeliveryAddress.Street, input.DeliveryAddress.City,
		input.DeliveryAddress.State, input.DeliveryAddress.ZipCode, input.DeliveryAddress.Country)
	if err != nil {
		return nil, err
	}

	order, err := entity.NewOrder(input.CustomerID, address)
	if err != nil {
		return nil, err
	}

	for _, item := range input.Items {
		pizza, err := op.Pizzas().GetByID(ctx, item.PizzaID)
		if err != nil {
			return nil, err
		}
		if pizza == nil {
			return nil, domainerrors.ErrPizzaNotFound.WithDetails("pizza " + item.PizzaID.String())
		}
		if !pizza.IsAvailable() {
			return nil, domainerrors.ErrPizzaNotAvailable.WithDetails(pizza.Name())
		}

		if err := order.AddItem(pizza.ID(), pizza.Name(), item.Quantity, pizza.BasePrice()); err != nil {
			return nil, err
		}
	}

	if err := op.Orders().Add(ctx, order); err != nil {
		return nil, err
	}
	if _, err := op.UnitOfWork().SaveChanges(ctx); err != nil {
		return nil, err
	}

	s.logger.Info("order created",
		slog.String("orderID", order.ID().String()),
		slog.String("orderNumber", order.OrderNumber()))

	return order, nil
}

func (s *orderingService) GetOrder(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	op, err := s.operations.NewOperation(ctx)
	if err != nil {
		return nil, err
	}
	defer op.Close()

	order, err := op.Orders().GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domainerrors.ErrOrderNotFound.WithDetails("order " + id.String())
	}

	return order, nil
}

func (s *orderingService) GetOrderByNumber(ctx context.Context, orderNumber string) (*entity.Order, error) {
	op, err := s.operations.NewOperation(ctx)
	if err != nil {
		return nil, err
	}
	defer op.Close()

	order, err := op.Orders().GetByOrderNumber(ctx, orderNumber)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domainerrors.ErrOrderNotFound.WithDetails("order number " + orderNumber)
	}

	return order, nil
}

func (s *orderingService) ListOrders(ctx context.Context) ([]*entity.Order, error) {
	op, err := s.operations.NewOperation(ctx)
	if err != nil {
		return nil, err
	}
	defer op.Close()

	return op.Orders().GetAll(ctx)
}

func (s *orderingService) ListOrdersByCustomer(ctx context.Context, customerID uuid.UUID) ([]*entity.Order, error) {
	op, err := s.operations.NewOperation(ctx)
	if err != nil {
		return nil, err
	}
	defer op.Close()

	return op.Orders().GetByCustomerID(ctx, customerID)
}

func (s *orderingService) ListOrdersByStatus(ctx context.Context, status entity.OrderStatus) ([]*entity.Order, error) {
	op, err := s.operations.NewOperation(ctx)
	if err != nil {
		return nil, err
	}
	defer op.Close()

	return op.Orders().GetByStatus(ctx, status)
}

func (s *orderingService) ListPendingDelivery(ctx context.Context) ([]*entity.Order, error) {
	op, err := s.operations.NewOperation(ctx)
	if err != nil {
		return nil, err
	}
	defer op.Close()

	return op.Orders().GetPendingDelivery(ctx)
}

func (s *orderingService) ConfirmOrder(ctx context.Context, id uuid.UUID) error {
	return s.mutateOrder(ctx, id, (*entity.Order).Confirm)
}

func (s *orderingService) StartPreparation(ctx context.Context, id uuid.UUID) error {
	return s.mutateOrder(ctx, id, (*entity.Order).StartPreparation)
}

func (s *orderingService) MarkReadyForDelivery(ctx context.Context, id uuid.UUID) error {
	return s.mutateOrder(ctx, id, (*entity.Order).MarkReadyForDelivery)
}

// AssignDeliveryPerson hands a ready order to a courier who exists and is
// currently available.
func (s *orderingService) AssignDeliveryPerson(ctx context.Context, orderID, deliveryPersonID uuid.UUID) error {
	op, err := s.operations.NewOperation(ctx)
	if err != nil {
		return err
	}
	defer op.Close()

	if err := op.UnitOfWork().Begin(ctx); err != nil {
		return err
	}

	person, err := op.DeliveryPersons().GetByID(ctx, deliveryPersonID)
	if err != nil {
		return err
	}
	if person == nil {
		return domainerrors.ErrDeliveryPersonNotFound.WithDetails("delivery person " + deliveryPersonID.String())
	}
	if !person.IsAvailable() || !person.IsActive() {
		return domainerrors.ErrDeliveryPersonNotAvailable.WithDetails(person.FullName())
	}

	order, err := op.Orders().GetByID(ctx, orderID)
	if err != nil {
		return err
	}
	if order == nil {
		return domainerrors.ErrOrderNotFound.WithDetails("order " + orderID.String())
	}

	if err := order.AssignDeliveryPerson(deliveryPersonID); err != nil {
		return err
	}
	person.SetAvailability(false)

	if err := op.Orders().Update(ctx, order); err != nil {
		return err
	}
	if err := op.DeliveryPersons().Update(ctx, person); err != nil {
		return err
	}
	_, err = op.UnitOfWork().SaveChanges(ctx)

	return err
}

// CompleteDelivery marks the order delivered and frees its courier for the
// next run.
func (s *orderingService) CompleteDelivery(ctx context.Context, id uuid.UUID) error {
	op, err := s.operations.NewOperation(ctx)
	if err != nil {
		return err
	}
	defer op.Close()

	if err := op.UnitOfWork().Begin(ctx); err != nil {
		return err
	}

	order, err := op.Orders().GetByID(ctx, id)
	if err != nil {
		return err
	}
	if order == nil {
		return domainerrors.ErrOrderNotFound.WithDetails("order " + id.String())
	}

	if err := order.CompleteDelivery(); err != nil {
		return err
	}
	if err := op.Orders().Update(ctx, order); err != nil {
		return err
	}

	if personID := order.DeliveryPersonID(); personID != nil {
		person, err := op.DeliveryPersons().GetByID(ctx, *personID)
		if err != nil {
			return err
		}
		if person != nil {
			person.SetAvailability(true)
			if err := op.DeliveryPersons().Update(ctx, person); err != nil {
				return err
			}
		}
	}

	_, err = op.UnitOfWork().SaveChanges(ctx)

	return err
}

func (s *orderingService) CancelOrder(ctx context.Context, id uuid.UUID) error {
	return s.mutateOrder(ctx, id, (*entity.Order).Cancel)
}

// mutateOrder loads the order, applies one aggregate transition and persists
// the result, all in a single transaction. A failed transition leaves the
// store untouched: the deferred Close rolls the transaction back.
func (s *orderingService) mutateOrder(ctx context.Context, id uuid.UUID, mutate func(*entity.Order) error) error {
	op, err := s.operations.NewOperation(ctx)
	if err != nil {
		return err
	}
	defer op.Close()

	if err := op.UnitOfWork().Begin(ctx); err != nil {
		return err
	}

	order, err := op.Orders().GetByID(ctx, id)
	if err != nil {
		return err
	}
	if order == nil {
		return domainerrors.ErrOrderNotFound.WithDetails("order " + id.String())
	}

	if err := mutate(order); err != nil {
		return err
	}
	if err := op.Orders().Update(ctx, order); err != nil {
		return err
	}
	_, err = op.UnitOfWork().SaveChanges(ctx)

	return err
}
