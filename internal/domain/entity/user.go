// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// User is the core entity in the system, representing a single account.
// The role is fixed at registration time; a SHOPKEEPER owns at most one shop,
// referenced by ShopID.
type User struct {
	ID           uuid.UUID  `json:"id"`                // The unique identifier for the user.
	MobileNumber string     `json:"mobile_number"`     // The mobile number used as the login identifier for OTP auth.
	Name         string     `json:"name"`              // The user's display name.
	Email        string     `json:"email,omitempty"`   // Optional contact email.
	Address      string     `json:"address,omitempty"` // Default delivery address for customers.
	Role         Role       `json:"role"`              // CUSTOMER or SHOPKEEPER; immutable after creation.
	ShopID       *uuid.UUID `json:"shop_id,omitempty"` // The owned shop, set only for shopkeepers.
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// ShopCustomer is a shopkeeper-facing roster entry: a customer who joined the
// shop, together with their order count at this shop.
type ShopCustomer struct {
	User        User      `json:"user"`
	TotalOrders int       `json:"total_orders"`
	JoinedAt    time.Time `json:"joined_at"`
}
