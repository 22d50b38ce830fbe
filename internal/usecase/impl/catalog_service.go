package impl

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/fx"

	"pizzeria/internal/domain/entity"
	domainerrors "pizzeria/internal/domain/errors"
	"pizzeria/internal/domain/repository"
	"pizzeria/internal/usecase"
)

type catalogService struct {
	operations repository.OperationFactory
	logger     *slog.Logger
}

// CatalogServiceParams holds dependencies for CatalogService, injected by Fx.
type CatalogServiceParams struct {
	fx.In

	Operations repository.OperationFactory
	Logger     *slog.Logger
}

// NewCatalogService creates the catalog usecase implementation.
func NewCatalogService(params CatalogServiceParams) usecase.CatalogUsecase {
	return &catalogService{
		operations: params.Operations,
		logger:     params.Logger,
	}
}

func (s *catalogService) AddPizza(ctx context.Context, input usecase.AddPizzaInput) (*entity.Pizza, error) {
	price, err := entity.NewMoney(input.BasePrice, input.Currency)
	if err != nil {
		return nil, err
	}

	pizza, err := entity.NewPizza(input.Name, input.Description, price, input.Size, input.IsAvailable)
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
	if err := op.Pizzas().Add(ctx, pizza); err != nil {
		return nil, err
	}
	if _, err := op.UnitOfWork().SaveChanges(ctx); err != nil {
		return nil, err
	}

	s.logger.Info("pizza added to catalog", slog.String("pizzaID", pizza.ID().String()))

	return pizza, nil
}

func (s *catalogService) GetPizza(ctx context.Context, id uuid.UUID) (*entity.Pizza, error) {
	op, err := s.operations.NewOperation(ctx)
	if err != nil {
		return nil, err
	}
	defer op.Close()

	pizza, err := op.Pizzas().GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if pizza == nil {
		return nil, domainerrors.ErrPizzaNotFound.WithDetails("pizza " + id.String())
	}

	return pizza, nil
}

func (s *catalogService) ListPizzas(ctx context.Context) ([]*entity.Pizza, error) {
	op, err := s.operations.NewOperation(ctx)
	if err != nil {
		return nil, err
	}
	defer op.Close()

	return op.Pizzas().GetAll(ctx)
}

func (s *catalogService) ListAvailablePizzas(ctx context.Context) ([]*entity.Pizza, error) {
	op, err := s.operations.NewOperation(ctx)
	if err != nil {
		return nil, err
	}
	defer op.Close()

	return op.Pizzas().GetAvailable(ctx)
}

func (s *catalogService) ChangePizzaPrice(ctx context.Context, id uuid.UUID, price decimal.Decimal, currency string) error {
	newPrice, err := entity.NewMoney(price, currency)
	if err != nil {
		return err
	}

	return s.mutatePizza(ctx, id, func(pizza *entity.Pizza) error {
		return pizza.UpdatePrice(newPrice)
	})
}

func (s *catalogService) SetPizzaAvailability(ctx context.Context, id uuid.UUID, isAvailable bool) error {
	return s.mutatePizza(ctx, id, func(pizza *entity.Pizza) error {
		pizza.SetAvailability(isAvailable)

		return nil
	})
}

func (s *catalogService) mutatePizza(ctx context.Context, id uuid.UUID, mutate func(*entity.Pizza) error) error {
	op, err := s.operations.NewOperation(ctx)
	if err != nil {
		return err
	}
	defer op.Close()

	if err := op.UnitOfWork().Begin(ctx); err != nil {
		return err
	}

	pizza, err := op.Pizzas().GetByID(ctx, id)
	if err != nil {
		return err
	}
	if pizza == nil {
		return domainerrors.ErrPizzaNotFound.WithDetails("pizza " + id.String())
	}

	if err := mutate(pizza); err != nil {
		return err
	}
	if err := op.Pizzas().Update(ctx, pizza); err != nil {
		return err
	}
	_, err = op.UnitOfWork().SaveChanges(ctx)

	return err
}
