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

type paymentService struct {
	operations repository.OperationFactory
	logger     *slog.Logger
}

// PaymentServiceParams holds dependencies for PaymentService, injected by Fx.
type PaymentServiceParams struct {
	fx.In

	Operations repository.OperationFactory
	Logger     *slog.Logger
}

// NewPaymentService creates the payment usecase implementation.
func NewPaymentService(params PaymentServiceParams) usecase.PaymentUsecase {
	return &paymentService{
		operations: params.Operations,
		logger:     params.Logger,
	}
}

// CreatePayment opens a pending payment over the order's persisted total.
func (s *paymentService) CreatePayment(ctx context.Context, orderID uuid.UUID, method entity.PaymentMethod) (*entity.Payment, error) {
	op, err := s.operations.NewOperation(ctx)
	if err != nil {
		return nil, err
	}
	defer op.Close()

	if err := op.UnitOfWork().Begin(ctx); err != nil {
		return nil, err
	}

	order, err := op.Orders().GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domainerrors.ErrOrderNotFound.WithDetails("order " + orderID.String())
	}

	payment, err := entity.NewPayment(orderID, order.Total(), method)
	if err != nil {
		return nil, err
	}

	if err := op.Payments().Add(ctx, payment); err != nil {
		return nil, err
	}
	if _, err := op.UnitOfWork().SaveChanges(ctx); err != nil {
		return nil, err
	}

	s.logger.Info("payment created",
		slog.String("paymentID", payment.ID().String()),
		slog.String("orderID", orderID.String()))

	return payment, nil
}

func (s *paymentService) GetPayment(ctx context.Context, id uuid.UUID) (*entity.Payment, error) {
	op, err := s.operations.NewOperation(ctx)
	if err != nil {
		return nil, err
	}
	defer op.Close()

	payment, err := op.Payments().GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if payment == nil {
		return nil, domainerrors.ErrPaymentNotFound.WithDetails("payment " + id.String())
	}

	return payment, nil
}

func (s *paymentService) GetPaymentByOrder(ctx context.Context, orderID uuid.UUID) (*entity.Payment, error) {
	op, err := s.operations.NewOperation(ctx)
	if err != nil {
		return nil, err
	}
	defer op.Close()

	payment, err := op.Payments().GetByOrderID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if payment == nil {
		return nil, domainerrors.ErrPaymentNotFound.WithDetails("order " + orderID.String())
	}

	return payment, nil
}

func (s *paymentService) ListPayments(ctx context.Context) ([]*entity.Payment, error) {
	op, err := s.operations.NewOperation(ctx)
	if err != nil {
		return nil, err
	}
	defer op.Close()

	return op.Payments().GetAll(ctx)
}

func (s *paymentService) CompletePayment(ctx context.Context, id uuid.UUID, transactionID string) error {
	return s.mutatePayment(ctx, id, func(payment *entity.Payment) error {
		return payment.Complete(transactionID)
	})
}

func (s *paymentService) FailPayment(ctx context.Context, id uuid.UUID) error {
	return s.mutatePayment(ctx, id, (*entity.Payment).Fail)
}

func (s *paymentService) RefundPayment(ctx context.Context, id uuid.UUID) error {
	return s.mutatePayment(ctx, id, (*entity.Payment).Refund)
}

func (s *paymentService) mutatePayment(ctx context.Context, id uuid.UUID, mutate func(*entity.Payment) error) error {
	op, err := s.operations.NewOperation(ctx)
	if err != nil {
		return err
	}
	defer op.Close()

	if err := op.UnitOfWork().Begin(ctx); err != nil {
		return err
	}

	payment, err := op.Payments().GetByID(ctx, id)
	if err != nil {
		return err
	}
	if payment == nil {
		return domainerrors.ErrPaymentNotFound.WithDetails("payment " + id.String())
	}

	if err := mutate(payment); err != nil {
		return err
	}
	if err := op.Payments().Update(ctx, payment); err != nil {
		return err
	}
	_, err = op.UnitOfWork().SaveChanges(ctx)

	return err
}
