package entity

// OrderStatus is the lifecycle state of an order. The remote gateway is the
// authority on transitions; clients only read and project statuses.
type OrderStatus string

const (
	// OrderStatusPending is the initial state of every placed order.
	OrderStatusPending OrderStatus = "PENDING"
	// OrderStatusAccepted means the shopkeeper accepted the order.
	OrderStatusAccepted OrderStatus = "ACCEPTED"
	// OrderStatusRejected means the shopkeeper rejected the order. Terminal.
	OrderStatusRejected OrderStatus = "REJECTED"
	// OrderStatusDelivered means the accepted order was handed over. Terminal.
	OrderStatusDelivered OrderStatus = "DELIVERED"
)

// String returns the string representation of the OrderStatus.
func (s OrderStatus) String() string {
	return string(s)
}

// IsValid checks if the OrderStatus is a valid value.
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusPending, OrderStatusAccepted, OrderStatusRejected, OrderStatusDelivered:
		return true
	default:
		return false
	}
}

// Terminal reports whether no further transition is permitted from this status.
func (s OrderStatus) Terminal() bool {
	return s == OrderStatusRejected || s == OrderStatusDelivered
}

// CanTransitionTo reports whether the workflow permits moving from s to next.
// Valid paths are PENDING -> ACCEPTED|REJECTED and ACCEPTED -> DELIVERED.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	switch s {
	case OrderStatusPending:
		return next == OrderStatusAccepted || next == OrderStatusRejected
	case OrderStatusAccepted:
		return next == OrderStatusDelivered
	default:
		return false
	}
}
