// Package delivery defines the contract every serving surface implements.
package delivery

import "context"

// Delivery is a long-running serving surface (HTTP server, cron runner)
// started by the application shell.
type Delivery interface {
	// Serve runs the surface until it fails or the process stops.
	Serve(ctx context.Context) error
}
