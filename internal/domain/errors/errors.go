package errors

import (
	"net/http"

	"nearbasket/internal/errors"
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

// Is matches on the business error code, so errors.Is recognizes a
// detail-carrying copy from WithDetails as its sentinel.
func (e *BaseError) Is(target error) bool {
	other, ok := target.(*BaseError)

	return ok && e.errorCode == other.errorCode
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

// Predefined error types
var (
	// Local precondition failures, caught before any network call.
	ErrValidationFailed = NewBaseError(
		http.StatusBadRequest,
		"VALIDATION_FAILED",
		"Input validation failed",
		"",
	)

	// Cart-related errors
	ErrCartConflict = NewBaseError(
		http.StatusConflict,
		"CART_CONFLICT",
		"Your cart holds items from another shop",
		"",
	)

	// Authentication-related errors
	ErrAuthRequired = NewBaseError(
		http.StatusUnauthorized,
		"AUTH_REQUIRED",
		"Please sign in again",
		"",
	)

	ErrInvalidOTP = NewBaseError(
		http.StatusBadRequest,
		"INVALID_OTP",
		"The one-time password is incorrect",
		"",
	)

	ErrOTPExpired = NewBaseError(
		http.StatusBadRequest,
		"OTP_EXPIRED",
		"The one-time password has expired",
		"",
	)

	// Order workflow errors
	ErrInvalidTransition = NewBaseError(
		http.StatusConflict,
		"INVALID_TRANSITION",
		"This order status change is not allowed",
		"",
	)

	ErrInsufficientStock = NewBaseError(
		http.StatusConflict,
		"INSUFFICIENT_STOCK",
		"Not enough stock for this product",
		"",
	)

	// Transport-level failure: no response from the gateway. The zero HTTP
	// code distinguishes connectivity failure from an application rejection.
	ErrNetworkUnreachable = NewBaseError(
		0,
		"NETWORK_UNREACHABLE",
		"Network error. Please check your connection.",
		"",
	)

	// General errors
	ErrInternalError = NewBaseError(
		http.StatusInternalServerError,
		"INTERNAL_ERROR",
		"Something went wrong on our side",
		"",
	)

	ErrForbidden = NewBaseError(
		http.StatusForbidden,
		"FORBIDDEN",
		"Access denied",
		"",
	)

	ErrNotFound = NewBaseError(
		http.StatusNotFound,
		"NOT_FOUND",
		"The requested resource was not found",
		"",
	)

	ErrConflict = NewBaseError(
		http.StatusConflict,
		"CONFLICT",
		"Resource conflict",
		"",
	)
)

// ApplicationError represents a non-success response from the remote gateway,
// carrying the server-supplied message, the HTTP status and the raw body.
// It implements the AppError interface.
type ApplicationError struct {
	status  int
	message string
	body    string
}

// NewApplicationError creates a gateway rejection error. The message is
// surfaced verbatim to the user.
func NewApplicationError(status int, message, body string) AppError {
	if message == "" {
		message = http.StatusText(status)
	}

	return &ApplicationError{
		status:  status,
		message: message,
		body:    body,
	}
}

// Error implements the error interface
func (e *ApplicationError) Error() string {
	return e.message
}

// HTTPCode returns the HTTP status code
func (e *ApplicationError) HTTPCode() int {
	return e.status
}

// ErrorCode returns the business error code
func (e *ApplicationError) ErrorCode() string {
	return "APPLICATION_ERROR"
}

// Message returns the user-friendly error message
func (e *ApplicationError) Message() string {
	return e.message
}

// Details returns the raw response body
func (e *ApplicationError) Details() string {
	return e.body
}
