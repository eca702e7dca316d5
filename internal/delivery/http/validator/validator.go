// Package validator adapts go-playground/validator to echo's Validator hook.
package validator

import (
	playground "github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	domainerrors "nearbasket/internal/domain/errors"
)

// Validator implements echo.Validator.
type Validator struct {
	validate *playground.Validate
}

// New creates the request validator installed on the echo server.
func New() *Validator {
	return &Validator{validate: playground.New(playground.WithRequiredStructEnabled())}
}

// Validate runs struct-tag validation and maps failures to the shared
// validation error so the error handler renders the usual envelope.
func (v *Validator) Validate(i any) error {
	if err := v.validate.Struct(i); err != nil {
		return errors.WithStack(domainerrors.ErrValidationFailed.WithDetails(err.Error()))
	}

	return nil
}
