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

const paymentColumns = `ID, ORDER_ID, AMOUNT, CURRENCY, METHOD, STATUS, TRANSACTION_ID,
	COMPLETED_AT, CREATED_AT, UPDATED_AT`

type paymentRow struct {
	ID            uuid.UUID
	OrderID       uuid.UUID
	Amount        decimal.Decimal
	Currency      string
	Method        string
	Status        string
	TransactionID string
	CompletedAt   *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

type paymentRepository struct {
	conn   *record.Connection
	uow    repository.UnitOfWork
	schema string
	logger *slog.Logger
}

func newPaymentRepository(conn *record.Connection, uow repository.UnitOfWork, schema string, logger *slog.Logger) repository.PaymentRepository {
	return &paymentRepository{conn: conn, uow: uow, schema: schema, logger: logger}
}

func (r *paymentRepository) table() string { return qualify(r.schema, tablePayments) }

func (r *paymentRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Payment, error) {
	stmt := fmt.Sprintf("SELECT %s FROM %s WHERE ID = ?", paymentColumns, r.table())

	row, err := record.QueryOne[paymentRow](ctx, r.conn, stmt, struct{ ID uuid.UUID }{id})
	if err != nil || row == nil {
		return nil, err
	}

	return mapPayment(row)
}

func (r *paymentRepository) GetAll(ctx context.Context) ([]*entity.Payment, error) {
	stmt := fmt.Sprintf("SELECT %s FROM %s ORDER BY CREATED_AT DESC", paymentColumns, r.table())

	rows, err := record.QueryMany[paymentRow](ctx, r.conn, stmt, nil)
	if err != nil {
		return nil, err
	}

	payments := make([]*entity.Payment, 0, len(rows))
	for i := range rows {
		payment, err := mapPayment(&rows[i])
		if err != nil {
			return nil, err
		}
		payments = append(payments, payment)
	}

	return payments, nil
}

func (r *paymentRepository) Add(ctx context.Context, payment *entity.Payment) error {
	stmt := fmt.Sprintf("INSERT INTO %s (%s) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)",
		r.table(), paymentColumns)

	_, err := r.conn.Execute(ctx, stmt, struct {
		ID            uuid.UUID
		OrderID       uuid.UUID
		Amount        decimal.Decimal
		Currency      string
		Method        string
		Status        string
		TransactionID string
		CompletedAt   *time.Time
		CreatedAt     time.Time
		UpdatedAt     time.Time
	}{
		ID:            payment.ID(),
		OrderID:       payment.OrderID(),
		Amount:        payment.Amount().Amount(),
		Currency:      payment.Amount().Currency(),
		Method:        payment.Method().String(),
		Status:        payment.Status().String(),
		TransactionID: payment.TransactionID(),
		CompletedAt:   payment.CompletedAt(),
		CreatedAt:     payment.CreatedAt(),
		UpdatedAt:     payment.UpdatedAt(),
	})
	if err != nil {
		return err
	}

	r.uow.Track(payment)
	r.logger.Info("payment added", slog.String("paymentID", payment.ID().String()))

	return nil
}

func (r *paymentRepository) Update(ctx context.Context, payment *entity.Payment) error {
	stmt := fmt.Sprintf(`UPDATE %s SET STATUS = ?, TRANSACTION_ID = ?, COMPLETED_AT = ?, UPDATED_AT = ? WHERE ID = ?`,
		r.table())

	_, err := r.conn.Execute(ctx, stmt, struct {
		Status        string
		TransactionID string
		CompletedAt   *time.Time
		UpdatedAt     time.Time
		ID            uuid.UUID
	}{
		Status:        payment.Status().String(),
		TransactionID: payment.TransactionID(),
		CompletedAt:   payment.CompletedAt(),
		UpdatedAt:     payment.UpdatedAt(),
		ID:            payment.ID(),
	})
	if err != nil {
		return err
	}

	r.uow.Track(payment)
	r.logger.Info("payment updated", slog.String("paymentID", payment.ID().String()))

	return nil
}

func (r *paymentRepository) Delete(ctx context.Context, payment *entity.Payment) error {
	stmt := fmt.Sprintf("DELETE FROM %s WHERE ID = ?", r.table())
	if _, err := r.conn.Execute(ctx, stmt, struct{ ID uuid.UUID }{payment.ID()}); err != nil {
		return err
	}

	r.logger.Info("payment deleted", slog.String("paymentID", payment.ID().String()))

	return nil
}

func (r *paymentRepository) GetByOrderID(ctx context.Context, orderID uuid.UUID) (*entity.Payment, error) {
	stmt := fmt.Sprintf("SELECT %s FROM %s WHERE ORDER_ID = ?", paymentColumns, r.table())

	row, err := record.QueryOne[paymentRow](ctx, r.conn, stmt, struct{ OrderID uuid.UUID }{orderID})
	if err != nil || row == nil {
		return nil, err
	}

	return mapPayment(row)
}

func mapPayment(row *paymentRow) (*entity.Payment, error) {
	method, err := entity.ParsePaymentMethod(row.Method)
	if err != nil {
		return nil, err
	}

	status, err := entity.ParsePaymentStatus(row.Status)
	if err != nil {
		return nil, err
	}

	amount, err := entity.NewMoney(row.Amount, row.Currency)
	if err != nil {
		return nil, err
	}

	return entity.RehydratePayment(row.ID, row.OrderID, amount, method, status,
		row.TransactionID, row.CompletedAt, row.CreatedAt, row.UpdatedAt)
}
