// Package validator adapts go-playground/validator to echo's Validator
// interface so handlers can call c.Validate on bound inputs.
package validator

import (
	domainerrors "vidtube/internal/domain/errors"

	"github.com/go-playground/validator/v10"
)

type echoValidator struct {
	validate *validator.Validate
}

// New creates the request validator installed on the echo server.
func New() *echoValidator {
	return &echoValidator{validate: validator.New()}
}

// Validate runs struct tag validation and maps failures onto the
// application's validation error so the error handler renders a 400.
func (v *echoValidator) Validate(i any) error {
	if err := v.validate.Struct(i); err != nil {
		return domainerrors.ErrValidationFailed.WithDetails(err.Error())
	}

	return nil
}
