// Package validator bridges go-playground/validator onto echo's Validator interface.
package validator

import (
	playground "github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	domainerrors "storefront/internal/domain/errors"
)

type echoValidator struct {
	validate *playground.Validate
}

// New creates the validator used by the echo server for request DTOs.
func New() echo.Validator {
	return &echoValidator{validate: playground.New()}
}

// Validate runs struct validation and maps failures onto the shared
// validation error so the error handler renders them as 400s.
func (v *echoValidator) Validate(i any) error {
	if err := v.validate.Struct(i); err != nil {
		return domainerrors.ErrValidationFailed.WithDetails(err.Error())
	}

	return nil
}
