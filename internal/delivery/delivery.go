// Package delivery defines the contract every transport (HTTP, worker, ...)
// fulfils so that main can start them uniformly.
package delivery

import "context"

// Delivery is a long-running transport endpoint. Serve blocks until the
// transport stops or fails; shutdown happens through lifecycle hooks.
type Delivery interface {
	Serve(ctx context.Context) error
}
