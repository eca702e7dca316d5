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

// ProductStore is an in-memory ProductRepository. Products belong to exactly
// one shop for their lifetime and stock never goes below zero.
type ProductStore struct {
	mu       sync.RWMutex
	products map[uuid.UUID]entity.Product
}

// NewProductStore creates an empty product store.
func NewProductStore() *ProductStore {
	return &ProductStore{products: make(map[uuid.UUID]entity.Product)}
}

// FindByID retrieves a product scoped to its shop.
func (s *ProductStore) FindByID(_ context.Context, shopID, productID uuid.UUID) (*entity.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.findLocked(shopID, productID)
}

// ListByShop lists a shop's catalog, oldest first.
func (s *ProductStore) ListByShop(_ context.Context, shopID uuid.UUID) ([]entity.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	products := make([]entity.Product, 0)
	for _, product := range s.products {
		if product.ShopID == shopID {
			products = append(products, product)
		}
	}
	sort.Slice(products, func(i, j int) bool {
		return products[i].CreatedAt.Before(products[j].CreatedAt)
	})

	return products, nil
}

// Create persists a new product.
func (s *ProductStore) Create(_ context.Context, product *entity.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if product.ID == uuid.Nil {
		product.ID = uuid.New()
	}
	now := time.Now().UTC()
	product.CreatedAt = now
	product.UpdatedAt = now
	s.products[product.ID] = *product

	return nil
}

// Update modifies an existing product. The owning shop stays fixed.
func (s *ProductStore) Update(_ context.Context, product *entity.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, err := s.findLocked(product.ShopID, product.ID)
	if err != nil {
		return err
	}

	product.ShopID = stored.ShopID
	product.CreatedAt = stored.CreatedAt
	product.UpdatedAt = time.Now().UTC()
	s.products[product.ID] = *product

	return nil
}

// Delete removes a product from the catalog.
func (s *ProductStore) Delete(_ context.Context, shopID, productID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.findLocked(shopID, productID); err != nil {
		return err
	}
	delete(s.products, productID)

	return nil
}

// DecrementStock atomically reduces stock for every line or none of them.
func (s *ProductStore) DecrementStock(_ context.Context, shopID uuid.UUID, quantities map[uuid.UUID]int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Check the whole batch before touching anything.
	for productID, quantity := range quantities {
		product, err := s.findLocked(shopID, productID)
		if err != nil {
			return err
		}
		if product.Stock < quantity {
			return errors.WithStack(repository.ErrInsufficientStock)
		}
	}

	now := time.Now().UTC()
	for productID, quantity := range quantities {
		product := s.products[productID]
		product.Stock -= quantity
		product.UpdatedAt = now
		s.products[productID] = product
	}

	return nil
}

func (s *ProductStore) findLocked(shopID, productID uuid.UUID) (*entity.Product, error) {
	product, ok := s.products[productID]
	if !ok || product.ShopID != shopID {
		return nil, errors.WithStack(repository.ErrProductNotFound)
	}

	return &product, nil
}
