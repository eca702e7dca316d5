package entity

import (
	"time"

	"github.com/google/uuid"
)

// Shop is a seller's storefront. ShopCode is the public, globally unique code
// customers use to join or look the shop up; it is distinct from the internal ID.
type Shop struct {
	ID          uuid.UUID `json:"id"`
	ShopCode    string    `json:"shop_code"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Address     string    `json:"address"`
	Phone       string    `json:"phone,omitempty"`
	LogoURL     string    `json:"logo_url,omitempty"`
	OwnerID     uuid.UUID `json:"owner_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
