package usecase

import (
	"context"

	"github.com/google/uuid"

	"pizzeria/internal/domain/entity"
)

// PaymentUsecase settles orders. A payment's amount always comes from the
// order's persisted total, never from the caller.
type PaymentUsecase interface {
	// CreatePayment opens a pending payment over the order's total.
	CreatePayment(ctx context.Context, orderID uuid.UUID, method entity.PaymentMethod) (*entity.Payment, error)
	GetPayment(ctx context.Context, id uuid.UUID) (*entity.Payment, error)
	GetPaymentByOrder(ctx context.Context, orderID uuid.UUID) (*entity.Payment, error)
	ListPayments(ctx context.Context) ([]*entity.Payment, error)
	CompletePayment(ctx context.Context, id uuid.UUID, transactionID string) error
	FailPayment(ctx context.Context, id uuid.UUID) error
	RefundPayment(ctx context.Context, id uuid.UUID) error
}
