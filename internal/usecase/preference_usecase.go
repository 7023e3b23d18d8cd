package usecase

import (
	"context"

	"quotecast/internal/domain/entity"

	"github.com/google/uuid"
)

// PreferenceInput carries a full preference update.
type PreferenceInput struct {
	Timezone             string      `json:"timezone"`
	NotificationsEnabled bool        `json:"notifications_enabled"`
	NotificationsPerDay  int         `json:"notifications_per_day"`
	PreferredHours       []int       `json:"preferred_hours"`
	PreferredCategories  []uuid.UUID `json:"preferred_categories"`
}

// PreferenceUsecase defines the interface for notification preference use cases.
type PreferenceUsecase interface {
	// GetPreferences retrieves a user's preference row.
	GetPreferences(ctx context.Context, userID uuid.UUID) (*entity.UserPreference, error)

	// UpdatePreferences validates and upserts the user's preferences, then
	// publishes a preference-changed event so the notifier reschedules
	// promptly. Publish failure is logged but does not fail the update.
	UpdatePreferences(ctx context.Context, userID uuid.UUID, input *PreferenceInput) (*entity.UserPreference, error)
}
