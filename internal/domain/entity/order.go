package entity

import (
	"time"

	"github.com/google/uuid"
)

// OrderLine is an immutable record of what was bought: product name, unit
// price and quantity frozen at placement time, independent of later catalog
// edits.
type OrderLine struct {
	ProductID   uuid.UUID `json:"product_id"`
	ProductName string    `json:"product_name"`
	UnitPrice   float64   `json:"unit_price"`
	Quantity    int       `json:"quantity"`
}

// LineTotal returns quantity times the frozen unit price.
func (l OrderLine) LineTotal() float64 {
	return l.UnitPrice * float64(l.Quantity)
}

// Order is a placed purchase. The total amount is frozen at placement time and
// the status only moves along the workflow in order_status.go. Orders are never
// deleted.
type Order struct {
	ID              uuid.UUID   `json:"id"`
	CustomerID      uuid.UUID   `json:"customer_id"`
	ShopID          uuid.UUID   `json:"shop_id"`
	Items           []OrderLine `json:"items"`
	TotalAmount     float64     `json:"total_amount"`
	Status          OrderStatus `json:"status"`
	DeliveryAddress string      `json:"delivery_address"`
	Instructions    string      `json:"instructions,omitempty"`
	CreatedAt       time.Time   `json:"created_at"`
	UpdatedAt       time.Time   `json:"updated_at"`
}

// ItemsTotal sums the frozen line totals. For a well-formed order it equals
// TotalAmount.
func (o *Order) ItemsTotal() float64 {
	var total float64
	for _, line := range o.Items {
		total += line.LineTotal()
	}

	return total
}
