// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"nearbasket/internal/domain/entity"
)

// --- Input DTOs ---

// RegisterInput defines the data required to register a new account.
// The role is fixed at registration and immutable afterwards.
type RegisterInput struct {
	Name         string      `json:"name" validate:"required"`
	MobileNumber string      `json:"mobile_number" validate:"required"`
	Email        string      `json:"email,omitempty" validate:"omitempty,email"`
	Role         entity.Role `json:"role" validate:"required"`
}

// SendOtpInput requests a one-time password for a mobile number.
type SendOtpInput struct {
	MobileNumber string `json:"mobile_number" validate:"required"`
}

// VerifyOtpInput exchanges a received code for tokens.
type VerifyOtpInput struct {
	MobileNumber string `json:"mobile_number" validate:"required"`
	Code         string `json:"code" validate:"required"`
}

// UpdateProfileInput updates the signed-in user's editable fields.
type UpdateProfileInput struct {
	Name    string `json:"name,omitempty"`
	Email   string `json:"email,omitempty" validate:"omitempty,email"`
	Address string `json:"address,omitempty"`
}

// --- Output DTOs ---

// LoginOutput returns the issued tokens and user record after OTP verification.
type LoginOutput struct {
	AccessToken  string       `json:"access"`
	RefreshToken string       `json:"refresh,omitempty"`
	User         *entity.User `json:"user"`
}

// AuthUsecase defines the authentication operations the screens depend on.
// Verification establishes the session; failures leave it untouched.
type AuthUsecase interface {
	Register(ctx context.Context, input RegisterInput) (*entity.User, error)
	SendOtp(ctx context.Context, input SendOtpInput) error
	VerifyOtp(ctx context.Context, input VerifyOtpInput) (*LoginOutput, error)
	GetProfile(ctx context.Context) (*entity.User, error)
	UpdateProfile(ctx context.Context, input UpdateProfileInput) (*entity.User, error)
	Logout(ctx context.Context) error
}
