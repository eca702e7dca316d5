// Package handler contains the HTTP handlers for the gateway.
package handler

import (
	domainerrors "nearbasket/internal/domain/errors"
	"nearbasket/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// callerID extracts the authenticated user's ID set by the auth middleware.
func callerID(c echo.Context) (uuid.UUID, error) {
	id, ok := c.Get("userID").(uuid.UUID)
	if !ok {
		return uuid.Nil, errors.WithStack(domainerrors.ErrAuthRequired.WithDetails("missing identity on request"))
	}

	return id, nil
}

// pathUUID parses a UUID path parameter.
func pathUUID(c echo.Context, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		return uuid.Nil, errors.WithStack(domainerrors.ErrValidationFailed.WithDetails("invalid " + name))
	}

	return id, nil
}

// repoError maps persistence errors to the AppError taxonomy the envelope is
// built from. Unknown errors pass through to the 500 handler.
func repoError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repository.ErrUserNotFound),
		errors.Is(err, repository.ErrShopNotFound),
		errors.Is(err, repository.ErrProductNotFound),
		errors.Is(err, repository.ErrOrderNotFound),
		errors.Is(err, repository.ErrNotMember):
		return errors.WithStack(domainerrors.ErrNotFound.WithDetails(err.Error()))
	case errors.Is(err, repository.ErrUserExists),
		errors.Is(err, repository.ErrAlreadyMember):
		return errors.WithStack(domainerrors.ErrConflict.WithDetails(err.Error()))
	case errors.Is(err, repository.ErrInsufficientStock):
		return errors.WithStack(domainerrors.ErrInsufficientStock)
	case errors.Is(err, repository.ErrInvalidTransition):
		return errors.WithStack(domainerrors.ErrInvalidTransition)
	default:
		return errors.WithStack(err)
	}
}
