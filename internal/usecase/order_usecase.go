package usecase

import (
	"context"

	"nearbasket/internal/domain/entity"

	"github.com/google/uuid"
)

// PlaceOrderLine is one line of a place-order request: the product reference
// and quantity; the gateway snapshots name and price at placement time.
type PlaceOrderLine struct {
	ProductID uuid.UUID `json:"product_id" validate:"required"`
	Quantity  int       `json:"quantity" validate:"gt=0"`
}

// PlaceOrderInput defines the data required to place an order with one shop.
type PlaceOrderInput struct {
	ShopID          uuid.UUID        `json:"-" validate:"required"`
	DeliveryAddress string           `json:"delivery_address" validate:"required"`
	Instructions    string           `json:"instructions,omitempty"`
	Items           []PlaceOrderLine `json:"items" validate:"required,min=1,dive"`
}

// UpdateOrderStatusInput requests a workflow transition for an order.
type UpdateOrderStatusInput struct {
	Status entity.OrderStatus `json:"status" validate:"required"`
}

// OrderUsecase defines order placement and lifecycle reads/updates.
//
// PlaceOrder performs a single attempt with no idempotency key: a request
// that times out after the gateway committed the order will read as a failure
// here, and a blind caller-level retry risks a duplicate submission. On
// success the caller owns clearing the cart.
type OrderUsecase interface {
	PlaceOrder(ctx context.Context, input PlaceOrderInput) (*entity.Order, error)
	MyOrders(ctx context.Context) ([]entity.Order, error)
	OrderDetails(ctx context.Context, orderID uuid.UUID) (*entity.Order, error)
	ShopOrders(ctx context.Context, shopID uuid.UUID) ([]entity.Order, error)
	UpdateStatus(ctx context.Context, orderID uuid.UUID, status entity.OrderStatus) (*entity.Order, error)

	// Quote computes the checkout-screen summary for a cart from the
	// configured delivery fee and tax rate. It is purely local and advisory;
	// the gateway recomputes the authoritative total at placement.
	Quote(cart *entity.Cart) entity.CheckoutSummary

	// Cached returns the last order record this service has seen for id, if
	// any. The cache lives for the screen's lifetime and is replaced by every
	// successful fetch or transition, never by a failed one.
	Cached(orderID uuid.UUID) (*entity.Order, bool)
}

// GroupOrdersByStatus projects a fetched order list into UI-groupable status
// buckets. The relative order inside a bucket is whatever the gateway
// returned; this layer imposes no ordering of its own.
func GroupOrdersByStatus(orders []entity.Order) map[entity.OrderStatus][]entity.Order {
	buckets := make(map[entity.OrderStatus][]entity.Order)
	for _, order := range orders {
		buckets[order.Status] = append(buckets[order.Status], order)
	}

	return buckets
}
