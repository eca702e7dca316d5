// Package impl contains the implementation of the application's business logic.
package impl

import (
	"github.com/go-playground/validator/v10"

	"nearbasket/internal/domain/entity"
	domainerrors "nearbasket/internal/domain/errors"
)

// newValidator builds the struct validator shared by the services. Validation
// failures are local precondition errors: they surface immediately and never
// reach the wire.
func newValidator() *validator.Validate {
	return validator.New(validator.WithRequiredStructEnabled())
}

func validateInput(validate *validator.Validate, input any) error {
	if err := validate.Struct(input); err != nil {
		return domainerrors.ErrValidationFailed.WithDetails(err.Error())
	}

	return nil
}

func errInvalidRole(role entity.Role) error {
	return domainerrors.ErrValidationFailed.WithDetails("invalid role: " + role.String())
}
