// Package memory provides in-memory implementations of the repository
// interfaces. They back the local gateway simulator and the contract tests;
// all stores are safe for concurrent use.
package memory

import (
	"context"
	"sync"
	"time"

	"nearbasket/internal/domain/entity"
	"nearbasket/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// UserStore is an in-memory UserRepository keyed by ID with a mobile-number
// index. The mobile number is the login identifier and therefore unique.
type UserStore struct {
	mu       sync.RWMutex
	users    map[uuid.UUID]entity.User
	byMobile map[string]uuid.UUID
}

// NewUserStore creates an empty user store.
func NewUserStore() *UserStore {
	return &UserStore{
		users:    make(map[uuid.UUID]entity.User),
		byMobile: make(map[string]uuid.UUID),
	}
}

// FindByID retrieves a single user by their unique ID.
func (s *UserStore) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[id]
	if !ok {
		return nil, errors.WithStack(repository.ErrUserNotFound)
	}

	return &user, nil
}

// FindByMobileNumber retrieves a single user by their mobile number.
func (s *UserStore) FindByMobileNumber(_ context.Context, mobileNumber string) (*entity.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.byMobile[mobileNumber]
	if !ok {
		return nil, errors.WithStack(repository.ErrUserNotFound)
	}
	user := s.users[id]

	return &user, nil
}

// Create persists a new user. The mobile number must not be registered yet.
func (s *UserStore) Create(_ context.Context, user *entity.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byMobile[user.MobileNumber]; ok {
		return errors.WithStack(repository.ErrUserExists)
	}

	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now

	s.users[user.ID] = *user
	s.byMobile[user.MobileNumber] = user.ID

	return nil
}

// Update modifies an existing user.
func (s *UserStore) Update(_ context.Context, user *entity.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.users[user.ID]
	if !ok {
		return errors.WithStack(repository.ErrUserNotFound)
	}

	// The mobile number is the login identifier and stays fixed.
	user.MobileNumber = stored.MobileNumber
	user.CreatedAt = stored.CreatedAt
	user.UpdatedAt = time.Now().UTC()
	s.users[user.ID] = *user

	return nil
}
