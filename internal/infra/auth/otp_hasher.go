package auth

import (
	"golang.org/x/crypto/bcrypt"

	"nearbasket/config"
	"nearbasket/internal/domain/service"
)

// bcryptOTPHasher is a concrete implementation of the OTPHasher interface
// using bcrypt. One-time codes are short-lived but still never stored in
// the clear.
type bcryptOTPHasher struct {
	cost int
}

// NewBcryptOTPHasher is the constructor for bcryptOTPHasher.
// It returns the implementation as a service.OTPHasher interface.
func NewBcryptOTPHasher(cfg *config.Config) service.OTPHasher {
	cost := bcrypt.DefaultCost
	if cfg.OTP != nil && cfg.OTP.BcryptCost >= bcrypt.MinCost && cfg.OTP.BcryptCost <= bcrypt.MaxCost {
		cost = cfg.OTP.BcryptCost
	}
	return &bcryptOTPHasher{cost: cost}
}

// Hash generates a salted hash from a plaintext code.
// bcrypt automatically handles salt generation.
func (h *bcryptOTPHasher) Hash(code string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(code), h.cost)
	return string(bytes), err
}

// Check compares a plaintext code with a bcrypt hash.
func (h *bcryptOTPHasher) Check(code, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(code))
	// err is nil if the code and hash match.
	return err == nil
}
