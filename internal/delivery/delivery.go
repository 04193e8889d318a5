// Package delivery defines the contract for transport-layer servers.
package delivery

import "context"

// Delivery represents a long-running transport server (HTTP, worker, etc.)
// managed by the application lifecycle.
type Delivery interface {
	// Serve starts the server and blocks until it stops or fails.
	Serve(ctx context.Context) error
}
