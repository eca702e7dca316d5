// Package response holds the helpers handlers use to write responses.
//
// Success payloads go out bare, exactly as the client decodes them. Only
// failures use the envelope in internal/domain/errors, rendered centrally by
// the error middleware.
package response

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// JSON writes a bare success payload.
func JSON(c echo.Context, statusCode int, data any) error {
	return c.JSON(statusCode, data)
}

// OK writes a bare success payload with status 200.
func OK(c echo.Context, data any) error {
	return c.JSON(http.StatusOK, data)
}

// Created writes a bare success payload with status 201.
func Created(c echo.Context, data any) error {
	return c.JSON(http.StatusCreated, data)
}

// Message writes a {"message": ...} payload for operations with no record to
// return.
func Message(c echo.Context, statusCode int, message string) error {
	return c.JSON(statusCode, map[string]string{"message": message})
}
