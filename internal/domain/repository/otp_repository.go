package repository

import (
	"context"
	"errors"
	"time"
)

// ErrOTPNotFound is returned when no pending code exists for a mobile number.
var ErrOTPNotFound = errors.New("no pending one-time password")

// OTPRecord is a pending one-time password. The code itself is stored only as
// a hash; ExpiresAt bounds how long verification may succeed.
type OTPRecord struct {
	MobileNumber string
	CodeHash     string
	ExpiresAt    time.Time
}

// OTPRepository stores pending one-time passwords. Saving for a mobile number
// replaces any earlier pending code for that number.
type OTPRepository interface {
	Save(ctx context.Context, record OTPRecord) error

	// Find returns the pending record for a mobile number.
	Find(ctx context.Context, mobileNumber string) (*OTPRecord, error)

	// Delete removes the pending record, consuming the code.
	Delete(ctx context.Context, mobileNumber string) error
}
