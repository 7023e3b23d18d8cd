package usecase

import (
	"context"

	"quotecast/internal/domain/entity"

	"github.com/google/uuid"
)

// DeviceUsecase defines the interface for device-token management use cases.
type DeviceUsecase interface {
	// RegisterDevice registers a push token or refreshes an existing
	// registration's last_seen_at.
	RegisterDevice(ctx context.Context, userID uuid.UUID, platform, token string) (*entity.DeviceToken, error)

	// ListDevices retrieves all registered tokens for a user.
	ListDevices(ctx context.Context, userID uuid.UUID) ([]*entity.DeviceToken, error)

	// CleanupInvalidTokens validates every stored token against the push
	// provider and deletes the ones reported permanently invalid. When the
	// provider is unconfigured it returns (0, explanatory message, nil)
	// without touching the network.
	CleanupInvalidTokens(ctx context.Context) (int64, string, error)
}
