package handler

import (
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"pizzeria/internal/delivery/http/response"
	"pizzeria/internal/usecase"
)

// CustomerHandler holds dependencies for customer handlers.
type CustomerHandler struct {
	uc     usecase.CustomerUsecase
	logger *slog.Logger
}

// NewCustomerHandler is the constructor for CustomerHandler, injected by Fx.
func NewCustomerHandler(uc usecase.CustomerUsecase, logger *slog.Logger) *CustomerHandler {
	return &CustomerHandler{uc: uc, logger: logger}
}

// RegisterCustomerRequest is the payload for customer registration.
type RegisterCustomerRequest struct {
	FirstName      string      `json:"firstName" validate:"required"`
	LastName       string      `json:"lastName" validate:"required"`
	Email          string      `json:"email" validate:"required,email"`
	PhoneNumber    string      `json:"phoneNumber" validate:"required"`
	DefaultAddress *AddressDTO `json:"defaultAddress,omitempty"`
}

// Register handles customer registration.
func (h *CustomerHandler) Register(c echo.Context) error {
	var req RegisterCustomerRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid customer input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	customer, err := h.uc.RegisterCustomer(c.Request().Context(), usecase.RegisterCustomerInput{
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Email:          req.Email,
		PhoneNumber:    req.PhoneNumber,
		DefaultAddress: toAddressInput(req.DefaultAddress),
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, toCustomerDTO(customer), "Customer registered successfully")
}

// List returns all customers.
func (h *CustomerHandler) List(c echo.Context) error {
	customers, err := h.uc.ListCustomers(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	dtos := make([]CustomerDTO, 0, len(customers))
	for _, customer := range customers {
		dtos = append(dtos, toCustomerDTO(customer))
	}

	return response.Success(c, http.StatusOK, dtos, "")
}

// Get returns one customer, looked up by ID or by email through the email
// query parameter.
func (h *CustomerHandler) Get(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid customer ID")
	}

	customer, err := h.uc.GetCustomer(c.Request().Context(), id)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toCustomerDTO(customer), "")
}

// GetByEmail returns one customer looked up by email.
func (h *CustomerHandler) GetByEmail(c echo.Context) error {
	email := c.QueryParam("email")
	if email == "" {
		return response.BadRequest(c, "INVALID_INPUT", "Email is required")
	}

	customer, err := h.uc.GetCustomerByEmail(c.Request().Context(), email)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toCustomerDTO(customer), "")
}

// UpdateContactRequest carries replacement contact details.
type UpdateContactRequest struct {
	Email          string      `json:"email" validate:"required,email"`
	PhoneNumber    string      `json:"phoneNumber" validate:"required"`
	DefaultAddress *AddressDTO `json:"defaultAddress,omitempty"`
}

// UpdateContact replaces a customer's contact details.
func (h *CustomerHandler) UpdateContact(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid customer ID")
	}

	var req UpdateContactRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid contact input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if err := h.uc.UpdateCustomerContact(c.Request().Context(), id, req.Email, req.PhoneNumber,
		toAddressInput(req.DefaultAddress)); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Contact info updated")
}

// Deactivate marks a customer inactive.
func (h *CustomerHandler) Deactivate(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid customer ID")
	}

	if err := h.uc.DeactivateCustomer(c.Request().Context(), id); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Customer deactivated")
}

func toAddressInput(dto *AddressDTO) *usecase.AddressInput {
	if dto == nil {
		return nil
	}

	return &usecase.AddressInput{
		Street:  dto.Street,
		City:    dto.City,
		State:   dto.State,
		ZipCode: dto.ZipCode,
		Country: dto.Country,
	}
}
