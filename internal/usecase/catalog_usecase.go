package usecase

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"pizzeria/internal/domain/entity"
)

// AddPizzaInput carries a new catalog entry.
type AddPizzaInput struct {
	Name        string
	Description string
	BasePrice   decimal.Decimal
	Currency    string
	Size        entity.PizzaSize
	IsAvailable bool
}

// CatalogUsecase manages the pizza catalog.
type CatalogUsecase interface {
	AddPizza(ctx context.Context, input AddPizzaInput) (*entity.Pizza, error)
	GetPizza(ctx context.Context, id uuid.UUID) (*entity.Pizza, error)
	ListPizzas(ctx context.Context) ([]*entity.Pizza, error)
	ListAvailablePizzas(ctx context.Context) ([]*entity.Pizza, error)
	ChangePizzaPrice(ctx context.Context, id uuid.UUID, price decimal.Decimal, currency string) error
	SetPizzaAvailability(ctx context.Context, id uuid.UUID, isAvailable bool) error
}
