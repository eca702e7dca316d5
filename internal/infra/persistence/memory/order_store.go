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

// OrderStore is an in-memory OrderRepository. It is the workflow authority:
// the only mutation it allows is a legal status transition.
type OrderStore struct {
	mu     sync.RWMutex
	orders map[uuid.UUID]entity.Order
}

// NewOrderStore creates an empty order store.
func NewOrderStore() *OrderStore {
	return &OrderStore{orders: make(map[uuid.UUID]entity.Order)}
}

// FindByID retrieves a single order.
func (s *OrderStore) FindByID(_ context.Context, id uuid.UUID) (*entity.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	order, ok := s.orders[id]
	if !ok {
		return nil, errors.WithStack(repository.ErrOrderNotFound)
	}

	return &order, nil
}

// ListByCustomer lists a customer's orders, newest first.
func (s *OrderStore) ListByCustomer(_ context.Context, customerID uuid.UUID) ([]entity.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.listLocked(func(o entity.Order) bool { return o.CustomerID == customerID }), nil
}

// ListByShop lists the orders a shop has received, newest first.
func (s *OrderStore) ListByShop(_ context.Context, shopID uuid.UUID) ([]entity.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.listLocked(func(o entity.Order) bool { return o.ShopID == shopID }), nil
}

// Create persists a new order in PENDING state.
func (s *OrderStore) Create(_ context.Context, order *entity.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if order.ID == uuid.Nil {
		order.ID = uuid.New()
	}
	order.Status = entity.OrderStatusPending
	now := time.Now().UTC()
	order.CreatedAt = now
	order.UpdatedAt = now
	s.orders[order.ID] = *order

	return nil
}

// Transition moves the order to next if the workflow allows it. Anything else
// fails with ErrInvalidTransition and leaves the stored order unchanged.
func (s *OrderStore) Transition(_ context.Context, id uuid.UUID, next entity.OrderStatus) (*entity.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	order, ok := s.orders[id]
	if !ok {
		return nil, errors.WithStack(repository.ErrOrderNotFound)
	}

	if !order.Status.CanTransitionTo(next) {
		return nil, errors.WithStack(repository.ErrInvalidTransition)
	}

	order.Status = next
	order.UpdatedAt = time.Now().UTC()
	s.orders[id] = order

	return &order, nil
}

// CountByCustomerAndShop returns how many orders a customer placed at a shop.
func (s *OrderStore) CountByCustomerAndShop(_ context.Context, customerID, shopID uuid.UUID) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	count := 0
	for _, order := range s.orders {
		if order.CustomerID == customerID && order.ShopID == shopID {
			count++
		}
	}

	return count, nil
}

func (s *OrderStore) listLocked(match func(entity.Order) bool) []entity.Order {
	orders := make([]entity.Order, 0)
	for _, order := range s.orders {
		if match(order) {
			orders = append(orders, order)
		}
	}
	sort.Slice(orders, func(i, j int) bool {
		return orders[i].CreatedAt.After(orders[j].CreatedAt)
	})

	return orders
}
