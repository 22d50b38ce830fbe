package persistence

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"pizzeria/internal/domain/entity"
	"pizzeria/internal/domain/repository"
	"pizzeria/internal/infra/record"
)

const pizzaColumns = `ID, NAME, DESCRIPTION, BASE_PRICE, CURRENCY, SIZE, IS_AVAILABLE, CREATED_AT, UPDATED_AT`

type pizzaRow struct {
	ID          uuid.UUID
	Name        string
	Description string
	BasePrice   decimal.Decimal
	Currency    string
	Size        string
	IsAvailable bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type pizzaRepository struct {
	conn   *record.Connection
	uow    repository.UnitOfWork
	schema string
	logger *slog.Logger
}

func newPizzaRepository(conn *record.Connection, uow repository.UnitOfWork, schema string, logger *slog.Logger) repository.PizzaRepository {
	return &pizzaRepository{conn: conn, uow: uow, schema: schema, logger: logger}
}

func (r *pizzaRepository) table() string { return qualify(r.schema, tablePizzas) }

func (r *pizzaRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Pizza, error) {
	stmt := fmt.Sprintf("SELECT %s FROM %s WHERE ID = ?", pizzaColumns, r.table())

	row, err := record.QueryOne[pizzaRow](ctx, r.conn, stmt, struct{ ID uuid.UUID }{id})
	if err != nil || row == nil {
		return nil, err
	}

	return mapPizza(row)
}

func (r *pizzaRepository) GetAll(ctx context.Context) ([]*entity.Pizza, error) {
	stmt := fmt.Sprintf("SELECT %s FROM %s ORDER BY NAME ASC", pizzaColumns, r.table())

	rows, err := record.QueryMany[pizzaRow](ctx, r.conn, stmt, nil)
	if err != nil {
		return nil, err
	}

	return mapPizzas(rows)
}

func (r *pizzaRepository) Add(ctx context.Context, pizza *entity.Pizza) error {
	stmt := fmt.Sprintf("INSERT INTO %s (%s) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)",
		r.table(), pizzaColumns)

	_, err := r.conn.Execute(ctx, stmt, struct {
		ID          uuid.UUID
		Name        string
		Description string
		BasePrice   decimal.Decimal
		Currency    string
		Size        string
		IsAvailable bool
		CreatedAt   time.Time
		UpdatedAt   time.Time
	}{
		ID:          pizza.ID(),
		Name:        pizza.Name(),
		Description: pizza.Description(),
		BasePrice:   pizza.BasePrice().Amount(),
		Currency:    pizza.BasePrice().Currency(),
		Size:        pizza.Size().String(),
		IsAvailable: pizza.IsAvailable(),
		CreatedAt:   pizza.CreatedAt(),
		UpdatedAt:   pizza.UpdatedAt(),
	})
	if err != nil {
		return err
	}

	r.uow.Track(pizza)
	r.logger.Info("pizza added", slog.String("pizzaID", pizza.ID().String()))

	return nil
}

func (r *pizzaRepository) Update(ctx context.Context, pizza *entity.Pizza) error {
	stmt := fmt.Sprintf(`UPDATE %s SET NAME = ?, DESCRIPTION = ?, BASE_PRICE = ?, CURRENCY = ?,
		SIZE = ?, IS_AVAILABLE = ?, UPDATED_AT = ? WHERE ID = ?`, r.table())

	_, err := r.conn.Execute(ctx, stmt, struct {
		Name        string
		Description string
		BasePrice   decimal.Decimal
		Currency    string
		Size        string
		IsAvailable bool
		UpdatedAt   time.Time
		ID          uuid.UUID
	}{
		Name:        pizza.Name(),
		Description: pizza.Description(),
		BasePrice:   pizza.BasePrice().Amount(),
		Currency:    pizza.BasePrice().Currency(),
		Size:        pizza.Size().String(),
		IsAvailable: pizza.IsAvailable(),
		UpdatedAt:   pizza.UpdatedAt(),
		ID:          pizza.ID(),
	})
	if err != nil {
		return err
	}

	r.uow.Track(pizza)
	r.logger.Info("pizza updated", slog.String("pizzaID", pizza.ID().String()))

	return nil
}

func (r *pizzaRepository) Delete(ctx context.Context, pizza *entity.Pizza) error {
	stmt := fmt.Sprintf("DELETE FROM %s WHERE ID = ?", r.table())
	if _, err := r.conn.Execute(ctx, stmt, struct{ ID uuid.UUID }{pizza.ID()}); err != nil {
		return err
	}

	r.logger.Info("pizza deleted", slog.String("pizzaID", pizza.ID().String()))

	return nil
}

func (r *pizzaRepository) GetAvailable(ctx context.Context) ([]*entity.Pizza, error) {
	stmt := fmt.Sprintf("SELECT %s FROM %s WHERE IS_AVAILABLE = ? ORDER BY NAME ASC",
		pizzaColumns, r.table())

	rows, err := record.QueryMany[pizzaRow](ctx, r.conn, stmt, struct{ IsAvailable bool }{true})
	if err != nil {
		return nil, err
	}

	return mapPizzas(rows)
}

func mapPizza(row *pizzaRow) (*entity.Pizza, error) {
	size, err := entity.ParsePizzaSize(row.Size)
	if err != nil {
		return nil, err
	}

	basePrice, err := entity.NewMoney(row.BasePrice, row.Currency)
	if err != nil {
		return nil, err
	}

	return entity.RehydratePizza(row.ID, row.Name, row.Description, basePrice, size,
		row.IsAvailable, row.CreatedAt, row.UpdatedAt)
}

func mapPizzas(rows []pizzaRow) ([]*entity.Pizza, error) {
	pizzas := make([]*entity.Pizza, 0, len(rows))
	for i := range rows {
		pizza, err := mapPizza(&rows[i])
		if err != nil {
			return nil, err
		}
		pizzas = append(pizzas, pizza)
	}

	return pizzas, nil
}
