package service

import (
	"context"
	"time"
)

// RunLock is a coarse mutual-exclusion lock shared across notifier
// instances. It keeps overlapping trigger runs from double-processing the
// same due deliveries.
type RunLock interface {
	// Acquire attempts to take the named lock for ttl. Returns false when
	// another holder owns it.
	Acquire(ctx context.Context, name string, ttl time.Duration) (bool, error)

	// Release frees the named lock if this instance still owns it.
	Release(ctx context.Context, name string) error
}
