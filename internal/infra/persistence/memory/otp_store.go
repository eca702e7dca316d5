package memory

import (
	"context"
	"sync"

	"nearbasket/internal/domain/repository"

	"github.com/pkg/errors"
)

// OTPStore is an in-memory OTPRepository. One pending code per mobile number;
// saving replaces any earlier code.
type OTPStore struct {
	mu      sync.Mutex
	pending map[string]repository.OTPRecord
}

// NewOTPStore creates an empty OTP store.
func NewOTPStore() *OTPStore {
	return &OTPStore{pending: make(map[string]repository.OTPRecord)}
}

// Save stores a pending code, replacing any existing one for the number.
func (s *OTPStore) Save(_ context.Context, record repository.OTPRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.pending[record.MobileNumber] = record

	return nil
}

// Find returns the pending record for a mobile number.
func (s *OTPStore) Find(_ context.Context, mobileNumber string) (*repository.OTPRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	record, ok := s.pending[mobileNumber]
	if !ok {
		return nil, errors.WithStack(repository.ErrOTPNotFound)
	}

	return &record, nil
}

// Delete removes the pending record, consuming the code.
func (s *OTPStore) Delete(_ context.Context, mobileNumber string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.pending, mobileNumber)

	return nil
}
