// Package delivery defines the contract every transport server fulfills.
package delivery

import "context"

// Delivery is a running transport (HTTP today). Serve blocks until the server
// stops; shutdown is driven by the fx lifecycle.
type Delivery interface {
	Serve(ctx context.Context) error
}
