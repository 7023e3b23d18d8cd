// Package repository defines the interfaces for the persistence layer.
package repository

import (
	"context"

	"quotecast/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// Domain-specific errors for user persistence.
var (
	// ErrUserNotFound is returned when a user is not found.
	ErrUserNotFound = errors.New("user not found")
	// ErrPreferenceNotFound is returned when a user has no preference row.
	ErrPreferenceNotFound = errors.New("user preference not found")
)

// UserRepository defines the interface for user and preference database
// operations.
type UserRepository interface {
	// FindUserByID retrieves a user by its unique ID.
	FindUserByID(ctx context.Context, id uuid.UUID) (*entity.User, error)

	// FindPreferenceByUserID retrieves the preference row owned by a user.
	FindPreferenceByUserID(ctx context.Context, userID uuid.UUID) (*entity.UserPreference, error)

	// UpsertPreference creates or replaces the preference row for a user.
	UpsertPreference(ctx context.Context, pref *entity.UserPreference) error

	// ListEnabledUserIDs returns the IDs of all users whose preferences
	// have notifications enabled.
	ListEnabledUserIDs(ctx context.Context) ([]uuid.UUID, error)
}
