package repository

import (
	"context"
	"errors"

	"nearbasket/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrProductNotFound is returned when a product does not exist in the shop.
var ErrProductNotFound = errors.New("product not found")

// ErrInsufficientStock is returned when a decrement would take stock below zero.
var ErrInsufficientStock = errors.New("insufficient stock")

// ProductRepository defines catalog persistence. Stock never goes below zero.
type ProductRepository interface {
	FindByID(ctx context.Context, shopID, productID uuid.UUID) (*entity.Product, error)
	ListByShop(ctx context.Context, shopID uuid.UUID) ([]entity.Product, error)
	Create(ctx context.Context, product *entity.Product) error
	Update(ctx context.Context, product *entity.Product) error
	Delete(ctx context.Context, shopID, productID uuid.UUID) error

	// DecrementStock atomically reduces stock for every line or none of them.
	// A single line that would go negative fails the whole batch with
	// ErrInsufficientStock.
	DecrementStock(ctx context.Context, shopID uuid.UUID, quantities map[uuid.UUID]int) error
}
