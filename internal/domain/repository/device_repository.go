// Package repository defines the interfaces for the persistence layer.
package repository

import (
	"context"
	"time"

	"quotecast/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// Domain-specific errors for device-token persistence.
var (
	// ErrDeviceNotFound is returned when a device token is not found.
	ErrDeviceNotFound = errors.New("device token not found")
)

// DeviceRepository defines the interface for device-token database
// operations.
type DeviceRepository interface {
	// UpsertDevice creates the token row or, when (user, platform, token)
	// already exists, refreshes its last_seen_at.
	UpsertDevice(ctx context.Context, device *entity.DeviceToken, seenAt time.Time) error

	// FindDevicesByUser retrieves all registered tokens for a user.
	FindDevicesByUser(ctx context.Context, userID uuid.UUID) ([]*entity.DeviceToken, error)

	// ListDevices pages through every stored token, ordered by creation.
	ListDevices(ctx context.Context, offset, limit int) ([]*entity.DeviceToken, error)

	// DeleteDevice removes a token row by its ID.
	DeleteDevice(ctx context.Context, id uuid.UUID) error

	// DeleteDevicesByToken removes every row carrying one of the given
	// raw token strings. Returns the number of rows removed.
	DeleteDevicesByToken(ctx context.Context, tokens []string) (int64, error)
}
