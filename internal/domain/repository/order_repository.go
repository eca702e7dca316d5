package repository

import (
	"context"
	"errors"

	"nearbasket/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrOrderNotFound is returned when an order does not exist.
var ErrOrderNotFound = errors.New("order not found")

// ErrInvalidTransition is returned when a status change falls outside the
// order workflow.
var ErrInvalidTransition = errors.New("invalid order status transition")

// OrderRepository defines order persistence. Orders are append-only records:
// the only mutation is a workflow status transition, and the repository is the
// authority on which transitions are legal.
type OrderRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Order, error)
	ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]entity.Order, error)
	ListByShop(ctx context.Context, shopID uuid.UUID) ([]entity.Order, error)
	Create(ctx context.Context, order *entity.Order) error

	// Transition moves the order to next if the workflow allows it and returns
	// the updated record. Anything else fails with ErrInvalidTransition and
	// leaves the stored order unchanged.
	Transition(ctx context.Context, id uuid.UUID, next entity.OrderStatus) (*entity.Order, error)

	// CountByCustomerAndShop returns how many orders a customer has placed at
	// a shop, for the roster view.
	CountByCustomerAndShop(ctx context.Context, customerID, shopID uuid.UUID) (int, error)
}
