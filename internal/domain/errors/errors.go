// Package errors defines the application error taxonomy: business error codes
// with their HTTP mapping, plus the invariant-violation errors raised inside
// aggregate logic.
package errors

import (
	"net/http"

	"github.com/pkg/errors"
)

// AppError defines the interface for application-specific errors
type AppError interface {
	error
	HTTPCode() int     // HTTP status code
	ErrorCode() string // Business error code
	Message() string   // User-friendly error message
	Details() string   // Detailed error information (optional)
}

// BaseError is a basic error structure that implements the AppError interface
type BaseError struct {
	httpCode  int
	errorCode string
	message   string
	details   string
}

// NewBaseError creates a new base error
func NewBaseError(httpCode int, errorCode, message, details string) *BaseError {
	return &BaseError{
		httpCode:  httpCode,
		errorCode: errorCode,
		message:   message,
		details:   details,
	}
}

// Error implements the error interface
func (e *BaseError) Error() string {
	return e.message
}

// WrapMessage wraps the error with additional context message
func (e *BaseError) WrapMessage(message string) error {
	return errors.Wrap(e, message)
}

// HTTPCode returns the HTTP status code
func (e *BaseError) HTTPCode() int {
	return e.httpCode
}

// ErrorCode returns the business error code
func (e *BaseError) ErrorCode() string {
	return e.errorCode
}

// Message returns the user-friendly error message
func (e *BaseError) Message() string {
	return e.message
}

// Details returns detailed error information
func (e *BaseError) Details() string {
	return e.details
}

// WithDetails adds detailed error information
func (e *BaseError) WithDetails(details string) *BaseError {
	return &BaseError{
		httpCode:  e.httpCode,
		errorCode: e.errorCode,
		message:   e.message,
		details:   details,
	}
}

// CodeRuleViolation marks errors raised by aggregate invariants and illegal
// state transitions.
const CodeRuleViolation = "DOMAIN_RULE_VIOLATION"

// NewRuleViolation creates the error an aggregate raises when a construction
// check or state transition fails. The aggregate's state is left unchanged.
func NewRuleViolation(message string) *BaseError {
	return NewBaseError(http.StatusUnprocessableEntity, CodeRuleViolation, message, "")
}

// IsRuleViolation reports whether err originates from an aggregate invariant.
func IsRuleViolation(err error) bool {
	var appErr AppError
	if !errors.As(err, &appErr) {
		return false
	}

	return appErr.ErrorCode() == CodeRuleViolation
}

// Predefined error types
var (
	ErrOrderNotFound = NewBaseError(
		http.StatusNotFound,
		"ORDER_NOT_FOUND",
		"order not found",
		"",
	)

	ErrCustomerNotFound = NewBaseError(
		http.StatusNotFound,
		"CUSTOMER_NOT_FOUND",
		"customer not found",
		"",
	)

	ErrPizzaNotFound = NewBaseError(
		http.StatusNotFound,
		"PIZZA_NOT_FOUND",
		"pizza not found",
		"",
	)

	ErrPizzaNotAvailable = NewBaseError(
		http.StatusConflict,
		"PIZZA_NOT_AVAILABLE",
		"pizza is not available for ordering",
		"",
	)

	ErrDeliveryPersonNotFound = NewBaseError(
		http.StatusNotFound,
		"DELIVERY_PERSON_NOT_FOUND",
		"delivery person not found",
		"",
	)

	ErrDeliveryPersonNotAvailable = NewBaseError(
		http.StatusConflict,
		"DELIVERY_PERSON_NOT_AVAILABLE",
		"delivery person is not available",
		"",
	)

	ErrPaymentNotFound = NewBaseError(
		http.StatusNotFound,
		"PAYMENT_NOT_FOUND",
		"payment not found",
		"",
	)
)
