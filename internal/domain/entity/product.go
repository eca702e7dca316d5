package entity

import (
	"time"

	"github.com/google/uuid"
)

// Product is a sellable item. It belongs to exactly one shop for its lifetime
// and its stock never goes below zero.
type Product struct {
	ID          uuid.UUID `json:"id"`
	ShopID      uuid.UUID `json:"shop_id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Price       float64   `json:"price"`
	Stock       int       `json:"stock"`
	ImageURL    string    `json:"image_url,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// InStock reports whether the product can currently be added to a cart.
func (p *Product) InStock() bool {
	return p.Stock > 0
}
