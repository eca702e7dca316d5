package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"nearbasket/internal/domain/entity"
	"nearbasket/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// ShopStore is an in-memory ShopRepository with the customer join roster.
type ShopStore struct {
	mu      sync.RWMutex
	shops   map[uuid.UUID]entity.Shop
	byCode  map[string]uuid.UUID
	byOwner map[uuid.UUID]uuid.UUID
	// roster holds memberships per shop in join order.
	roster map[uuid.UUID][]repository.Membership
}

// NewShopStore creates an empty shop store.
func NewShopStore() *ShopStore {
	return &ShopStore{
		shops:   make(map[uuid.UUID]entity.Shop),
		byCode:  make(map[string]uuid.UUID),
		byOwner: make(map[uuid.UUID]uuid.UUID),
		roster:  make(map[uuid.UUID][]repository.Membership),
	}
}

// FindByID retrieves a shop by its internal ID.
func (s *ShopStore) FindByID(_ context.Context, id uuid.UUID) (*entity.Shop, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.findLocked(id)
}

// FindByCode retrieves a shop by its public shop code.
func (s *ShopStore) FindByCode(_ context.Context, shopCode string) (*entity.Shop, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.byCode[shopCode]
	if !ok {
		return nil, errors.WithStack(repository.ErrShopNotFound)
	}

	return s.findLocked(id)
}

// FindByOwner retrieves the shop a shopkeeper owns.
func (s *ShopStore) FindByOwner(_ context.Context, ownerID uuid.UUID) (*entity.Shop, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.byOwner[ownerID]
	if !ok {
		return nil, errors.WithStack(repository.ErrShopNotFound)
	}

	return s.findLocked(id)
}

// Create persists a new shop.
func (s *ShopStore) Create(_ context.Context, shop *entity.Shop) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if shop.ID == uuid.Nil {
		shop.ID = uuid.New()
	}
	now := time.Now().UTC()
	shop.CreatedAt = now
	shop.UpdatedAt = now

	s.shops[shop.ID] = *shop
	s.byCode[shop.ShopCode] = shop.ID
	s.byOwner[shop.OwnerID] = shop.ID

	return nil
}

// Update modifies an existing shop. The shop code and owner stay fixed.
func (s *ShopStore) Update(_ context.Context, shop *entity.Shop) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.shops[shop.ID]
	if !ok {
		return errors.WithStack(repository.ErrShopNotFound)
	}

	shop.ShopCode = stored.ShopCode
	shop.OwnerID = stored.OwnerID
	shop.CreatedAt = stored.CreatedAt
	shop.UpdatedAt = time.Now().UTC()
	s.shops[shop.ID] = *shop

	return nil
}

// AddMember puts a customer on the shop's roster. Joining twice is rejected.
func (s *ShopStore) AddMember(_ context.Context, shopID, customerID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.shops[shopID]; !ok {
		return errors.WithStack(repository.ErrShopNotFound)
	}

	for _, member := range s.roster[shopID] {
		if member.CustomerID == customerID {
			return errors.WithStack(repository.ErrAlreadyMember)
		}
	}

	s.roster[shopID] = append(s.roster[shopID], repository.Membership{
		ShopID:     shopID,
		CustomerID: customerID,
		JoinedAt:   time.Now().UTC(),
	})

	return nil
}

// RemoveMember takes a customer off the shop's roster.
func (s *ShopStore) RemoveMember(_ context.Context, shopID, customerID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	members := s.roster[shopID]
	for i, member := range members {
		if member.CustomerID == customerID {
			s.roster[shopID] = append(members[:i:i], members[i+1:]...)

			return nil
		}
	}

	return errors.WithStack(repository.ErrNotMember)
}

// Members lists the shop's roster in join order.
func (s *ShopStore) Members(_ context.Context, shopID uuid.UUID) ([]repository.Membership, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, ok := s.shops[shopID]; !ok {
		return nil, errors.WithStack(repository.ErrShopNotFound)
	}

	members := make([]repository.Membership, len(s.roster[shopID]))
	copy(members, s.roster[shopID])

	return members, nil
}

// ShopsOf lists the shops a customer has joined, in join order.
func (s *ShopStore) ShopsOf(_ context.Context, customerID uuid.UUID) ([]entity.Shop, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	type joined struct {
		shop entity.Shop
		at   time.Time
	}
	var result []joined
	for shopID, members := range s.roster {
		for _, member := range members {
			if member.CustomerID == customerID {
				result = append(result, joined{shop: s.shops[shopID], at: member.JoinedAt})
			}
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].at.Before(result[j].at) })

	shops := make([]entity.Shop, 0, len(result))
	for _, j := range result {
		shops = append(shops, j.shop)
	}

	return shops, nil
}

func (s *ShopStore) findLocked(id uuid.UUID) (*entity.Shop, error) {
	shop, ok := s.shops[id]
	if !ok {
		return nil, errors.WithStack(repository.ErrShopNotFound)
	}

	return &shop, nil
}
