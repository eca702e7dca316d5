package entity

import (
	"github.com/google/uuid"

	domainerrors "nearbasket/internal/domain/errors"
)

// CartLine is a pending purchase intent: one product and how many of it.
// The price is read live from the held product, not frozen; snapshots happen
// only at order placement.
type CartLine struct {
	Product  *Product
	Quantity int
}

// LineTotal returns quantity times the product's current price.
func (l *CartLine) LineTotal() float64 {
	return l.Product.Price * float64(l.Quantity)
}

// Cart holds the products a customer intends to buy from a single shop.
// All lines share one owning shop: adding a product from a different shop is
// rejected with a cart conflict, and the customer has to clear the cart first.
//
// The cart is owned by the active client session and is not safe for
// concurrent use; the app mutates it from its single event loop only.
type Cart struct {
	shopID uuid.UUID
	lines  []*CartLine
}

// NewCart creates an empty cart.
func NewCart() *Cart {
	return &Cart{}
}

// AddLine adds quantity units of product to the cart. If a line for the
// product already exists its quantity is increased, otherwise a new line is
// appended. The first add binds the cart to shopID; later adds for another
// shop fail with ErrCartConflict.
func (c *Cart) AddLine(product *Product, shopID uuid.UUID, quantity int) error {
	if product == nil {
		return domainerrors.ErrValidationFailed.WithDetails("product is required")
	}
	if quantity <= 0 {
		return domainerrors.ErrValidationFailed.WithDetails("quantity must be positive")
	}

	if len(c.lines) > 0 && c.shopID != shopID {
		return domainerrors.ErrCartConflict
	}

	if line := c.find(product.ID); line != nil {
		line.Quantity += quantity

		return nil
	}

	c.shopID = shopID
	c.lines = append(c.lines, &CartLine{Product: product, Quantity: quantity})

	return nil
}

// SetQuantity updates the quantity of the line for productID. A quantity of
// zero or less removes the line. No-op if the product is not in the cart.
func (c *Cart) SetQuantity(productID uuid.UUID, quantity int) {
	if quantity <= 0 {
		c.RemoveLine(productID)

		return
	}

	if line := c.find(productID); line != nil {
		line.Quantity = quantity
	}
}

// RemoveLine removes the line for productID if present.
func (c *Cart) RemoveLine(productID uuid.UUID) {
	for i, line := range c.lines {
		if line.Product.ID == productID {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)

			break
		}
	}
}

// Clear empties the cart and releases its shop binding.
func (c *Cart) Clear() {
	c.shopID = uuid.Nil
	c.lines = nil
}

// Empty reports whether the cart has no lines.
func (c *Cart) Empty() bool {
	return len(c.lines) == 0
}

// ShopID returns the shop the cart is bound to, or uuid.Nil when empty.
func (c *Cart) ShopID() uuid.UUID {
	if c.Empty() {
		return uuid.Nil
	}

	return c.shopID
}

// Lines returns the cart lines in insertion order. The returned slice is a
// copy; the line pointers still reference the live products.
func (c *Cart) Lines() []CartLine {
	lines := make([]CartLine, len(c.lines))
	for i, line := range c.lines {
		lines[i] = *line
	}

	return lines
}

// TotalItems returns the sum of quantities across all lines.
func (c *Cart) TotalItems() int {
	var total int
	for _, line := range c.lines {
		total += line.Quantity
	}

	return total
}

// Subtotal returns the sum of quantity times current product price across all
// lines.
func (c *Cart) Subtotal() float64 {
	var total float64
	for _, line := range c.lines {
		total += line.LineTotal()
	}

	return total
}

func (c *Cart) find(productID uuid.UUID) *CartLine {
	for _, line := range c.lines {
		if line.Product.ID == productID {
			return line
		}
	}

	return nil
}
