package repository

import (
	"context"
	"errors"
	"time"

	"nearbasket/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrShopNotFound is returned when a shop is not found by ID, code or owner.
var ErrShopNotFound = errors.New("shop not found")

// ErrAlreadyMember is returned when a customer joins a shop twice.
var ErrAlreadyMember = errors.New("customer already joined this shop")

// ErrNotMember is returned when removing a customer who never joined.
var ErrNotMember = errors.New("customer is not on this shop's roster")

// Membership links a customer to a shop they joined.
type Membership struct {
	ShopID     uuid.UUID
	CustomerID uuid.UUID
	JoinedAt   time.Time
}

// ShopRepository defines shop persistence plus the join roster.
type ShopRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Shop, error)
	FindByCode(ctx context.Context, shopCode string) (*entity.Shop, error)
	FindByOwner(ctx context.Context, ownerID uuid.UUID) (*entity.Shop, error)
	Create(ctx context.Context, shop *entity.Shop) error
	Update(ctx context.Context, shop *entity.Shop) error

	// AddMember puts a customer on the shop's roster.
	AddMember(ctx context.Context, shopID, customerID uuid.UUID) error

	// RemoveMember takes a customer off the shop's roster.
	RemoveMember(ctx context.Context, shopID, customerID uuid.UUID) error

	// Members lists the shop's roster in join order.
	Members(ctx context.Context, shopID uuid.UUID) ([]Membership, error)

	// ShopsOf lists the shops a customer has joined, in join order.
	ShopsOf(ctx context.Context, customerID uuid.UUID) ([]entity.Shop, error)
}
