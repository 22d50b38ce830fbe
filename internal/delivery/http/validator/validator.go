// Package validator adapts go-playground/validator to Echo's Validator
// interface so handlers can rely on struct tags for request validation.
package validator

import (
	"net/http"

	playground "github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type echoValidator struct {
	validate *playground.Validate
}

// New creates the request validator used by the HTTP server.
func New() echo.Validator {
	return &echoValidator{validate: playground.New(playground.WithRequiredStructEnabled())}
}

// Validate runs tag-based validation and reports failures as 400s.
func (v *echoValidator) Validate(i any) error {
	if err := v.validate.Struct(i); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	return nil
}
