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

const (
	orderColumns = `ID, ORDER_NUMBER, CUSTOMER_ID, ORDER_DATE, STATUS, TOTAL_AMOUNT, CURRENCY,
		DELIVERY_STREET, DELIVERY_CITY, DELIVERY_STATE, DELIVERY_ZIPCODE, DELIVERY_COUNTRY,
		DELIVERY_PERSON_ID, CREATED_AT, UPDATED_AT`
	orderItemColumns = `ID, ORDER_ID, PIZZA_ID, PIZZA_NAME, QUANTITY, UNIT_PRICE, CURRENCY, SUBTOTAL,
		CREATED_AT, UPDATED_AT`
)

// orderRow mirrors one PEDIDOS row. Field names bind to the legacy columns
// through the mapper's folded-name matching.
type orderRow struct {
	ID               uuid.UUID
	OrderNumber      string
	CustomerID       uuid.UUID
	OrderDate        time.Time
	Status           string
	TotalAmount      decimal.Decimal
	Currency         string
	DeliveryStreet   string
	DeliveryCity     string
	DeliveryState    string
	DeliveryZipCode  string
	DeliveryCountry  string
	DeliveryPersonID *uuid.UUID
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// orderItemRow mirrors one PEDIDOS_DET row.
type orderItemRow struct {
	ID        uuid.UUID
	OrderID   uuid.UUID
	PizzaID   uuid.UUID
	PizzaName string
	Quantity  int
	UnitPrice decimal.Decimal
	Currency  string
	Subtotal  decimal.Decimal
	CreatedAt time.Time
	UpdatedAt time.Time
}

type orderRepository struct {
	conn   *record.Connection
	uow    repository.UnitOfWork
	schema string
	logger *slog.Logger
}

func newOrderRepository(conn *record.Connection, uow repository.UnitOfWork, schema string, logger *slog.Logger) repository.OrderRepository {
	return &orderRepository{conn: conn, uow: uow, schema: schema, logger: logger}
}

func (r *orderRepository) table() string      { return qualify(r.schema, tableOrders) }
func (r *orderRepository) itemsTable() string { return qualify(r.schema, tableOrderItems) }

func (r *orderRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	stmt := fmt.Sprintf("SELECT %s FROM %s WHERE ID = ?", orderColumns, r.table())

	row, err := record.QueryOne[orderRow](ctx, r.conn, stmt, struct{ ID uuid.UUID }{id})
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, nil
	}

	return r.loadWithItems(ctx, row)
}

func (r *orderRepository) GetAll(ctx context.Context) ([]*entity.Order, error) {
	stmt := fmt.Sprintf("SELECT %s FROM %s ORDER BY ORDER_DATE DESC", orderColumns, r.table())

	rows, err := record.QueryMany[orderRow](ctx, r.conn, stmt, nil)
	if err != nil {
		return nil, err
	}

	return mapOrderRoots(rows)
}

func (r *orderRepository) Add(ctx context.Context, order *entity.Order) error {
	stmt := fmt.Sprintf(`INSERT INTO %s (%s) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.table(), orderColumns)

	address := order.DeliveryAddress()
	_, err := r.conn.Execute(ctx, stmt, struct {
		ID               uuid.UUID
		OrderNumber      string
		CustomerID       uuid.UUID
		OrderDate        time.Time
		Status           string
		TotalAmount      decimal.Decimal
		Currency         string
		DeliveryStreet   string
		DeliveryCity     string
		DeliveryState    string
		DeliveryZipCode  string
		DeliveryCountry  string
		DeliveryPersonID *uuid.UUID
		CreatedAt        time.Time
		UpdatedAt        time.Time
	}{
		ID:               order.ID(),
		OrderNumber:      order.OrderNumber(),
		CustomerID:       order.CustomerID(),
		OrderDate:        order.OrderDate(),
		Status:           order.Status().String(),
		TotalAmount:      order.Total().Amount(),
		Currency:         order.Total().Currency(),
		DeliveryStreet:   address.Street(),
		DeliveryCity:     address.City(),
		DeliveryState:    address.State(),
		DeliveryZipCode:  address.ZipCode(),
		DeliveryCountry:  address.Country(),
		DeliveryPersonID: order.DeliveryPersonID(),
		CreatedAt:        order.CreatedAt(),
		UpdatedAt:        order.UpdatedAt(),
	})
	if err != nil {
		return err
	}

	for _, item := range order.Items() {
		if err := r.insertItem(ctx, item); err != nil {
			return err
		}
	}

	r.uow.Track(order)
	r.logger.Info("order added",
		slog.String("orderID", order.ID().String()),
		slog.Int("items", len(order.Items())))

	return nil
}

func (r *orderRepository) insertItem(ctx context.Context, item *entity.OrderItem) error {
	stmt := fmt.Sprintf(`INSERT INTO %s (%s) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.itemsTable(), orderItemColumns)

	_, err := r.conn.Execute(ctx, stmt, struct {
		ID        uuid.UUID
		OrderID   uuid.UUID
		PizzaID   uuid.UUID
		PizzaName string
		Quantity  int
		UnitPrice decimal.Decimal
		Currency  string
		Subtotal  decimal.Decimal
		CreatedAt time.Time
		UpdatedAt time.Time
	}{
		ID:        item.ID(),
		OrderID:   item.OrderID(),
		PizzaID:   item.PizzaID(),
		PizzaName: item.PizzaName(),
		Quantity:  item.Quantity(),
		UnitPrice: item.UnitPrice().Amount(),
		Currency:  item.UnitPrice().Currency(),
		Subtotal:  item.Subtotal().Amount(),
		CreatedAt: item.CreatedAt(),
		UpdatedAt: item.UpdatedAt(),
	})

	return err
}

// Update rewrites the root's mutable columns. Item rows are written once by
// Add and never touched afterwards; the ordering flow confirms an order before
// anything mutates it further.
func (r *orderRepository) Update(ctx context.Context, order *entity.Order) error {
	stmt := fmt.Sprintf(`UPDATE %s SET STATUS = ?, TOTAL_AMOUNT = ?, DELIVERY_PERSON_ID = ?, UPDATED_AT = ? WHERE ID = ?`,
		r.table())

	_, err := r.conn.Execute(ctx, stmt, struct {
		Status           string
		TotalAmount      decimal.Decimal
		DeliveryPersonID *uuid.UUID
		UpdatedAt        time.Time
		ID               uuid.UUID
	}{
		Status:           order.Status().String(),
		TotalAmount:      order.Total().Amount(),
		DeliveryPersonID: order.DeliveryPersonID(),
		UpdatedAt:        order.UpdatedAt(),
		ID:               order.ID(),
	})
	if err != nil {
		return err
	}

	r.uow.Track(order)
	r.logger.Info("order updated", slog.String("orderID", order.ID().String()))

	return nil
}

// Delete removes item rows before the root row so the store never holds
// orphaned lines.
func (r *orderRepository) Delete(ctx context.Context, order *entity.Order) error {
	if err := r.deleteItems(ctx, order.ID()); err != nil {
		return err
	}

	stmt := fmt.Sprintf("DELETE FROM %s WHERE ID = ?", r.table())
	if _, err := r.conn.Execute(ctx, stmt, struct{ ID uuid.UUID }{order.ID()}); err != nil {
		return err
	}

	r.logger.Info("order deleted", slog.String("orderID", order.ID().String()))

	return nil
}

func (r *orderRepository) deleteItems(ctx context.Context, orderID uuid.UUID) error {
	stmt := fmt.Sprintf("DELETE FROM %s WHERE ORDER_ID = ?", r.itemsTable())
	_, err := r.conn.Execute(ctx, stmt, struct{ OrderID uuid.UUID }{orderID})

	return err
}

func (r *orderRepository) GetByOrderNumber(ctx context.Context, orderNumber string) (*entity.Order, error) {
	stmt := fmt.Sprintf("SELECT %s FROM %s WHERE ORDER_NUMBER = ?", orderColumns, r.table())

	row, err := record.QueryOne[orderRow](ctx, r.conn, stmt, struct{ OrderNumber string }{orderNumber})
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, nil
	}

	return r.loadWithItems(ctx, row)
}

func (r *orderRepository) GetByCustomerID(ctx context.Context, customerID uuid.UUID) ([]*entity.Order, error) {
	stmt := fmt.Sprintf("SELECT %s FROM %s WHERE CUSTOMER_ID = ? ORDER BY ORDER_DATE DESC",
		orderColumns, r.table())

	rows, err := record.QueryMany[orderRow](ctx, r.conn, stmt, struct{ CustomerID uuid.UUID }{customerID})
	if err != nil {
		return nil, err
	}

	return mapOrderRoots(rows)
}

func (r *orderRepository) GetByStatus(ctx context.Context, status entity.OrderStatus) ([]*entity.Order, error) {
	stmt := fmt.Sprintf("SELECT %s FROM %s WHERE STATUS = ? ORDER BY ORDER_DATE DESC",
		orderColumns, r.table())

	rows, err := record.QueryMany[orderRow](ctx, r.conn, stmt, struct{ Status string }{status.String()})
	if err != nil {
		return nil, err
	}

	return mapOrderRoots(rows)
}

func (r *orderRepository) GetPendingDelivery(ctx context.Context) ([]*entity.Order, error) {
	stmt := fmt.Sprintf("SELECT %s FROM %s WHERE STATUS IN (?, ?, ?) ORDER BY ORDER_DATE ASC",
		orderColumns, r.table())

	rows, err := record.QueryMany[orderRow](ctx, r.conn, stmt, struct {
		Confirmed     string
		InPreparation string
		Ready         string
	}{
		Confirmed:     entity.OrderStatusConfirmed.String(),
		InPreparation: entity.OrderStatusInPreparation.String(),
		Ready:         entity.OrderStatusReadyForDelivery.String(),
	})
	if err != nil {
		return nil, err
	}

	return mapOrderRoots(rows)
}

func (r *orderRepository) loadWithItems(ctx context.Context, row *orderRow) (*entity.Order, error) {
	order, err := mapOrderRoot(row)
	if err != nil {
		return nil, err
	}

	stmt := fmt.Sprintf("SELECT %s FROM %s WHERE ORDER_ID = ? ORDER BY CREATED_AT ASC",
		orderItemColumns, r.itemsTable())

	items, err := record.QueryMany[orderItemRow](ctx, r.conn, stmt, struct{ OrderID uuid.UUID }{row.ID})
	if err != nil {
		return nil, err
	}

	for _, item := range items {
		unitPrice, err := entity.NewMoney(item.UnitPrice, item.Currency)
		if err != nil {
			return nil, err
		}
		if err := order.RestoreItem(item.ID, item.PizzaID, item.PizzaName, item.Quantity, unitPrice, item.CreatedAt, item.UpdatedAt); err != nil {
			return nil, err
		}
	}

	return order, nil
}

// mapOrderRoot reconstructs an order root without its items. Roots returned
// from list lookups keep the persisted total.
func mapOrderRoot(row *orderRow) (*entity.Order, error) {
	status, err := entity.ParseOrderStatus(row.Status)
	if err != nil {
		return nil, err
	}

	total, err := entity.NewMoney(row.TotalAmount, row.Currency)
	if err != nil {
		return nil, err
	}

	address, err := entity.NewAddress(row.DeliveryStreet, row.DeliveryCity, row.DeliveryState,
		row.DeliveryZipCode, row.DeliveryCountry)
	if err != nil {
		return nil, err
	}

	return entity.RehydrateOrder(row.ID, row.OrderNumber, row.CustomerID, row.OrderDate,
		status, total, address, row.DeliveryPersonID, row.CreatedAt, row.UpdatedAt)
}

func mapOrderRoots(rows []orderRow) ([]*entity.Order, error) {
	orders := make([]*entity.Order, 0, len(rows))
	for i := range rows {
		order, err := mapOrderRoot(&rows[i])
		if err != nil {
			return nil, err
		}
		orders = append(orders, order)
	}

	return orders, nil
}
