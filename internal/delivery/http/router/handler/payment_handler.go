package handler

import (
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"pizzeria/internal/delivery/http/response"
	"pizzeria/internal/domain/entity"
	"pizzeria/internal/usecase"
)

// PaymentHandler holds dependencies for payment handlers.
type PaymentHandler struct {
	uc     usecase.PaymentUsecase
	logger *slog.Logger
}

// NewPaymentHandler is the constructor for PaymentHandler, injected by Fx.
func NewPaymentHandler(uc usecase.PaymentUsecase, logger *slog.Logger) *PaymentHandler {
	return &PaymentHandler{uc: uc, logger: logger}
}

// CreatePaymentRequest opens a payment for an order. The amount is always the
// order's total and is never part of the request.
type CreatePaymentRequest struct {
	OrderID string `json:"orderId" validate:"required,uuid"`
	Method  string `json:"method" validate:"required"`
}

// Create opens a pending payment for an order.
func (h *PaymentHandler) Create(c echo.Context) error {
	var req CreatePaymentRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid payment input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	orderID, err := uuid.Parse(req.OrderID)
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid order ID")
	}
	method, err := entity.ParsePaymentMethod(req.Method)
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Unknown payment method")
	}

	payment, err := h.uc.CreatePayment(c.Request().Context(), orderID, method)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, toPaymentDTO(payment), "Payment created successfully")
}

// List returns payments, newest first.
func (h *PaymentHandler) List(c echo.Context) error {
	payments, err := h.uc.ListPayments(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	dtos := make([]PaymentDTO, 0, len(payments))
	for _, payment := range payments {
		dtos = append(dtos, toPaymentDTO(payment))
	}

	return response.Success(c, http.StatusOK, dtos, "")
}

// Get returns one payment.
func (h *PaymentHandler) Get(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid payment ID")
	}

	payment, err := h.uc.GetPayment(c.Request().Context(), id)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toPaymentDTO(payment), "")
}

// GetByOrder returns the payment settling one order.
func (h *PaymentHandler) GetByOrder(c echo.Context) error {
	orderID, err := uuid.Parse(c.Param("orderId"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid order ID")
	}

	payment, err := h.uc.GetPaymentByOrder(c.Request().Context(), orderID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toPaymentDTO(payment), "")
}

// CompletePaymentRequest carries the gateway transaction reference.
type CompletePaymentRequest struct {
	TransactionID string `json:"transactionId" validate:"required"`
}

// Complete settles a pending payment.
func (h *PaymentHandler) Complete(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid payment ID")
	}

	var req CompletePaymentRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid completion input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if err := h.uc.CompletePayment(c.Request().Context(), id, req.TransactionID); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Payment completed")
}

// Fail marks a pending payment as failed.
func (h *PaymentHandler) Fail(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid payment ID")
	}

	if err := h.uc.FailPayment(c.Request().Context(), id); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Payment marked as failed")
}

// Refund returns a completed payment.
func (h *PaymentHandler) Refund(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid payment ID")
	}

	if err := h.uc.RefundPayment(c.Request().Context(), id); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Payment refunded")
}

// HealthCheck is a simple handler to check if the service is up.
func HealthCheck(c echo.Context) error {
	return response.Success(c, http.StatusOK, map[string]string{"status": "ok"}, "Service is healthy")
}
