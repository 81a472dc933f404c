// Package delivery defines the contract for inbound transports.
package delivery

import "context"

// Delivery is a long-running inbound surface (an HTTP server). Serve blocks
// until the server stops; shutdown is handled through the Fx lifecycle.
type Delivery interface {
	Serve(ctx context.Context) error
}
