// Package handler contains the HTTP handlers for the application.
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"pizzeria/internal/delivery/http/response"
	"pizzeria/internal/domain/entity"
	"pizzeria/internal/usecase"
)

// OrderHandler holds dependencies for order-related handlers.
type OrderHandler struct {
	uc     usecase.OrderingUsecase
	logger *slog.Logger
}

// NewOrderHandler is the constructor for OrderHandler, injected by Fx.
func NewOrderHandler(uc usecase.OrderingUsecase, logger *slog.Logger) *OrderHandler {
	return &OrderHandler{uc: uc, logger: logger}
}

// CreateOrderRequest is the payload for placing an order.
type CreateOrderRequest struct {
	CustomerID      string                   `json:"customerId" validate:"required,uuid"`
	DeliveryAddress AddressDTO               `json:"deliveryAddress" validate:"required"`
	Items           []CreateOrderItemRequest `json:"items" validate:"required,min=1,dive"`
}

// CreateOrderItemRequest selects one pizza and a quantity.
type CreateOrderItemRequest struct {
	PizzaID  string `json:"pizzaId" validate:"required,uuid"`
	Quantity int    `json:"quantity" validate:"required,gt=0"`
}

// Create handles order placement.
func (h *OrderHandler) Create(c echo.Context) error {
	var req CreateOrderRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid order input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	customerID, err := uuid.Parse(req.CustomerID)
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid customer ID")
	}

	input := usecase.CreateOrderInput{
		CustomerID: customerID,
		DeliveryAddress: usecase.AddressInput{
			Street:  req.DeliveryAddress.Street,
			City:    req.DeliveryAddress.City,
			State:   req.DeliveryAddress.State,
			ZipCode: req.DeliveryAddress.ZipCode,
			Country: req.DeliveryAddress.Country,
		},
	}
	for _, item := range req.Items {
		pizzaID, err := uuid.Parse(item.PizzaID)
		if err != nil {
			return response.BadRequest(c, "INVALID_INPUT", "Invalid pizza ID")
		}
		input.Items = append(input.Items, usecase.OrderItemInput{
			PizzaID:  pizzaID,
			Quantity: item.Quantity,
		})
	}

	order, err := h.uc.CreateOrder(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, toOrderDTO(order), "Order created successfully")
}

// List returns orders, optionally filtered by status or customer through query
// parameters.
func (h *OrderHandler) List(c echo.Context) error {
	ctx := c.Request().Context()

	if status := c.QueryParam("status"); status != "" {
		parsed, err := entity.ParseOrderStatus(status)
		if err != nil {
			return response.BadRequest(c, "INVALID_INPUT", "Unknown order status")
		}
		orders, err := h.uc.ListOrdersByStatus(ctx, parsed)
		if err != nil {
			return errors.WithStack(err)
		}

		return response.Success(c, http.StatusOK, toOrderDTOs(orders), "")
	}

	if customer := c.QueryParam("customerId"); customer != "" {
		customerID, err := uuid.Parse(customer)
		if err != nil {
			return response.BadRequest(c, "INVALID_INPUT", "Invalid customer ID")
		}
		orders, err := h.uc.ListOrdersByCustomer(ctx, customerID)
		if err != nil {
			return errors.WithStack(err)
		}

		return response.Success(c, http.StatusOK, toOrderDTOs(orders), "")
	}

	orders, err := h.uc.ListOrders(ctx)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toOrderDTOs(orders), "")
}

// ListPendingDelivery returns orders waiting for a courier, oldest first.
func (h *OrderHandler) ListPendingDelivery(c echo.Context) error {
	orders, err := h.uc.ListPendingDelivery(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toOrderDTOs(orders), "")
}

// Get returns one order with its items.
func (h *OrderHandler) Get(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid order ID")
	}

	order, err := h.uc.GetOrder(c.Request().Context(), id)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toOrderDTO(order), "")
}

// GetByNumber returns one order looked up by its order number.
func (h *OrderHandler) GetByNumber(c echo.Context) error {
	order, err := h.uc.GetOrderByNumber(c.Request().Context(), c.Param("number"))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toOrderDTO(order), "")
}

// Confirm moves a pending order to Confirmed.
func (h *OrderHandler) Confirm(c echo.Context) error {
	return h.transition(c, h.uc.ConfirmOrder, "Order confirmed")
}

// StartPreparation moves a confirmed order to InPreparation.
func (h *OrderHandler) StartPreparation(c echo.Context) error {
	return h.transition(c, h.uc.StartPreparation, "Preparation started")
}

// MarkReady moves an order in preparation to ReadyForDelivery.
func (h *OrderHandler) MarkReady(c echo.Context) error {
	return h.transition(c, h.uc.MarkReadyForDelivery, "Order ready for delivery")
}

// AssignDeliveryPersonRequest selects the courier for an order.
type AssignDeliveryPersonRequest struct {
	DeliveryPersonID string `json:"deliveryPersonId" validate:"required,uuid"`
}

// AssignDeliveryPerson hands a ready order to a courier.
func (h *OrderHandler) AssignDeliveryPerson(c echo.Context) error {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid order ID")
	}

	var req AssignDeliveryPersonRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid assignment input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	deliveryPersonID, err := uuid.Parse(req.DeliveryPersonID)
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid delivery person ID")
	}

	if err := h.uc.AssignDeliveryPerson(c.Request().Context(), orderID, deliveryPersonID); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Delivery person assigned")
}

// CompleteDelivery moves an order in delivery to Delivered.
func (h *OrderHandler) CompleteDelivery(c echo.Context) error {
	return h.transition(c, h.uc.CompleteDelivery, "Delivery completed")
}

// Cancel moves a non-terminal order to Cancelled.
func (h *OrderHandler) Cancel(c echo.Context) error {
	return h.transition(c, h.uc.CancelOrder, "Order cancelled")
}

func (h *OrderHandler) transition(c echo.Context, apply func(ctx context.Context, id uuid.UUID) error, message string) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid order ID")
	}

	if err := apply(c.Request().Context(), id); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, message)
}
