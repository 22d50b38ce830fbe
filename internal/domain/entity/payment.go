package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"

	domainerrors "pizzeria/internal/domain/errors"
	"pizzeria/internal/domain/event"
)

// PaymentMethod is how a payment is settled.
type PaymentMethod string

const (
	// PaymentMethodCash is settled on delivery.
	PaymentMethodCash PaymentMethod = "Cash"
	// PaymentMethodCreditCard is settled by credit card.
	PaymentMethodCreditCard PaymentMethod = "CreditCard"
	// PaymentMethodDebitCard is settled by debit card.
	PaymentMethodDebitCard PaymentMethod = "DebitCard"
	// PaymentMethodOnline is settled through an online gateway.
	PaymentMethodOnline PaymentMethod = "Online"
)

// String returns the string representation of the PaymentMethod.
func (m PaymentMethod) String() string {
	return string(m)
}

// IsValid checks if the PaymentMethod is a valid value.
func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentMethodCash, PaymentMethodCreditCard, PaymentMethodDebitCard, PaymentMethodOnline:
		return true
	default:
		return false
	}
}

// ParsePaymentMethod converts a persisted method name back to a PaymentMethod.
func ParsePaymentMethod(name string) (PaymentMethod, error) {
	method := PaymentMethod(name)
	if !method.IsValid() {
		return "", domainerrors.NewRuleViolation("unknown payment method: " + name)
	}

	return method, nil
}

// PaymentStatus is the settlement state of a payment.
// Legal transitions: Pending -> Completed | Failed, Completed -> Refunded.
type PaymentStatus string

const (
	// PaymentStatusPending is the initial state.
	PaymentStatusPending PaymentStatus = "Pending"
	// PaymentStatusCompleted means funds were captured.
	PaymentStatusCompleted PaymentStatus = "Completed"
	// PaymentStatusFailed means the capture attempt failed.
	PaymentStatusFailed PaymentStatus = "Failed"
	// PaymentStatusRefunded means a completed payment was returned.
	PaymentStatusRefunded PaymentStatus = "Refunded"
)

// String returns the string representation of the PaymentStatus.
func (s PaymentStatus) String() string {
	return string(s)
}

// IsValid checks if the PaymentStatus is a valid value.
func (s PaymentStatus) IsValid() bool {
	switch s {
	case PaymentStatusPending, PaymentStatusCompleted, PaymentStatusFailed, PaymentStatusRefunded:
		return true
	default:
		return false
	}
}

// ParsePaymentStatus converts a persisted status name back to a PaymentStatus.
func ParsePaymentStatus(name string) (PaymentStatus, error) {
	status := PaymentStatus(name)
	if !status.IsValid() {
		return "", domainerrors.NewRuleViolation("unknown payment status: " + name)
	}

	return status, nil
}

// Payment settles one order. Completing a payment raises the settlement event.
type Payment struct {
	Base

	orderID       uuid.UUID
	amount        Money
	method        PaymentMethod
	status        PaymentStatus
	transactionID string
	completedAt   *time.Time
}

// NewPayment validates and creates a pending payment for an order.
func NewPayment(orderID uuid.UUID, amount Money, method PaymentMethod) (*Payment, error) {
	if orderID == uuid.Nil {
		return nil, domainerrors.NewRuleViolation("order ID cannot be empty")
	}
	if !method.IsValid() {
		return nil, domainerrors.NewRuleViolation("unknown payment method: " + method.String())
	}

	return &Payment{
		Base:    newBase(),
		orderID: orderID,
		amount:  amount,
		method:  method,
		status:  PaymentStatusPending,
	}, nil
}

// RehydratePayment reconstructs a persisted payment, keeping stored identity,
// status and timestamps.
func RehydratePayment(id, orderID uuid.UUID, amount Money, method PaymentMethod, status PaymentStatus, transactionID string, completedAt *time.Time, createdAt, updatedAt time.Time) (*Payment, error) {
	if orderID == uuid.Nil {
		return nil, domainerrors.NewRuleViolation("order ID cannot be empty")
	}
	if !method.IsValid() {
		return nil, domainerrors.NewRuleViolation("unknown payment method: " + method.String())
	}
	if !status.IsValid() {
		return nil, domainerrors.NewRuleViolation("unknown payment status: " + status.String())
	}

	return &Payment{
		Base:          rehydrateBase(id, createdAt, updatedAt),
		orderID:       orderID,
		amount:        amount,
		method:        method,
		status:        status,
		transactionID: transactionID,
		completedAt:   completedAt,
	}, nil
}

// Complete settles a pending payment and raises the settlement event.
func (p *Payment) Complete(transactionID string) error {
	if p.status != PaymentStatusPending {
		return domainerrors.NewRuleViolation("cannot complete payment in " + p.status.String() + " status")
	}
	if strings.TrimSpace(transactionID) == "" {
		return domainerrors.NewRuleViolation("transaction ID cannot be empty")
	}

	now := time.Now().UTC()
	p.status = PaymentStatusCompleted
	p.transactionID = strings.TrimSpace(transactionID)
	p.completedAt = &now
	p.touch()
	p.raise(event.NewPaymentCompleted(p.ID(), p.orderID, p.amount.Amount(), p.amount.Currency()))

	return nil
}

// Fail marks a pending payment as failed.
func (p *Payment) Fail() error {
	if p.status != PaymentStatusPending {
		return domainerrors.NewRuleViolation("cannot fail payment in " + p.status.String() + " status")
	}

	p.status = PaymentStatusFailed
	p.touch()

	return nil
}

// Refund returns a completed payment.
func (p *Payment) Refund() error {
	if p.status != PaymentStatusCompleted {
		return domainerrors.NewRuleViolation("cannot refund payment in " + p.status.String() + " status")
	}

	p.status = PaymentStatusRefunded
	p.touch()

	return nil
}

// OrderID returns the settled order's identity.
func (p *Payment) OrderID() uuid.UUID { return p.orderID }

// Amount returns the payment amount.
func (p *Payment) Amount() Money { return p.amount }

// Method returns the settlement method.
func (p *Payment) Method() PaymentMethod { return p.method }

// Status returns the settlement state.
func (p *Payment) Status() PaymentStatus { return p.status }

// TransactionID returns the gateway transaction reference, empty until
// completion.
func (p *Payment) TransactionID() string { return p.transactionID }

// CompletedAt returns the settlement moment, nil until completion.
func (p *Payment) CompletedAt() *time.Time { return p.completedAt }
