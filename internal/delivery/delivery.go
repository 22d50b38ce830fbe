// Package delivery defines the contract every inbound transport fulfills.
package delivery

import "context"

// Delivery is a serving surface of the application, e.g. the HTTP server.
type Delivery interface {
	Serve(ctx context.Context) error
}
