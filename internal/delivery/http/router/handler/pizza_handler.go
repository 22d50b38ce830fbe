package handler

import (
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"pizzeria/internal/delivery/http/response"
	"pizzeria/internal/domain/entity"
	"pizzeria/internal/usecase"
)

// PizzaHandler holds dependencies for catalog handlers.
type PizzaHandler struct {
	uc     usecase.CatalogUsecase
	logger *slog.Logger
}

// NewPizzaHandler is the constructor for PizzaHandler, injected by Fx.
func NewPizzaHandler(uc usecase.CatalogUsecase, logger *slog.Logger) *PizzaHandler {
	return &PizzaHandler{uc: uc, logger: logger}
}

// AddPizzaRequest is the payload for a new catalog entry.
type AddPizzaRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description" validate:"required"`
	BasePrice   string `json:"basePrice" validate:"required"`
	Currency    string `json:"currency" validate:"required,len=3"`
	Size        string `json:"size" validate:"required"`
	IsAvailable bool   `json:"isAvailable"`
}

// Add handles catalog entry creation.
func (h *PizzaHandler) Add(c echo.Context) error {
	var req AddPizzaRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid pizza input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	price, err := decimal.NewFromString(req.BasePrice)
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid base price")
	}
	size, err := entity.ParsePizzaSize(req.Size)
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Unknown pizza size")
	}

	pizza, err := h.uc.AddPizza(c.Request().Context(), usecase.AddPizzaInput{
		Name:        req.Name,
		Description: req.Description,
		BasePrice:   price,
		Currency:    req.Currency,
		Size:        size,
		IsAvailable: req.IsAvailable,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, toPizzaDTO(pizza), "Pizza added successfully")
}

// List returns the whole catalog.
func (h *PizzaHandler) List(c echo.Context) error {
	pizzas, err := h.uc.ListPizzas(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toPizzaDTOs(pizzas), "")
}

// ListAvailable returns only pizzas that can currently be ordered.
func (h *PizzaHandler) ListAvailable(c echo.Context) error {
	pizzas, err := h.uc.ListAvailablePizzas(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toPizzaDTOs(pizzas), "")
}

// Get returns one catalog entry.
func (h *PizzaHandler) Get(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid pizza ID")
	}

	pizza, err := h.uc.GetPizza(c.Request().Context(), id)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toPizzaDTO(pizza), "")
}

// ChangePriceRequest carries a new price for a catalog entry.
type ChangePriceRequest struct {
	Price    string `json:"price" validate:"required"`
	Currency string `json:"currency" validate:"required,len=3"`
}

// ChangePrice replaces a pizza's base price.
func (h *PizzaHandler) ChangePrice(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid pizza ID")
	}

	var req ChangePriceRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid price input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	price, err := decimal.NewFromString(req.Price)
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid price")
	}

	if err := h.uc.ChangePizzaPrice(c.Request().Context(), id, price, req.Currency); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Price updated")
}

// SetAvailabilityRequest toggles whether a pizza can be ordered.
type SetAvailabilityRequest struct {
	IsAvailable *bool `json:"isAvailable" validate:"required"`
}

// SetAvailability toggles a pizza's availability flag.
func (h *PizzaHandler) SetAvailability(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid pizza ID")
	}

	var req SetAvailabilityRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid availability input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if err := h.uc.SetPizzaAvailability(c.Request().Context(), id, *req.IsAvailable); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Availability updated")
}
