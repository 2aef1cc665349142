// Package delivery defines the contract every transport (HTTP API, worker)
// implements so the entrypoints can start them uniformly.
package delivery

import "context"

// Delivery is a long-running transport server.
type Delivery interface {
	// Serve blocks, accepting requests until the server is shut down.
	Serve(ctx context.Context) error
}
