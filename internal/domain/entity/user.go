// Package entity contains the core business objects of the project.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// User represents an account that receives scheduled quote notifications.
type User struct {
	ID          uuid.UUID `json:"id"`           // The Global Unique Identifier (GUID) for the user.
	Email       string    `json:"email"`        // The user's email address.
	DisplayName string    `json:"display_name"` // The name shown in notification greetings.
	IsAdmin     bool      `json:"is_admin"`     // Indicates if the user can access the admin surface.
	CreatedAt   time.Time `json:"created_at"`   // Timestamp of when this record was created.
	UpdatedAt   time.Time `json:"updated_at"`   // Timestamp of the last modification.
}

// Preference bounds enforced at the usecase boundary.
const (
	MinNotificationsPerDay = 1
	MaxNotificationsPerDay = 20
)

// UserPreference represents a user's notification delivery preferences.
// Exactly one row exists per user.
type UserPreference struct {
	ID                   uuid.UUID   `json:"id"`                    // The Global Unique Identifier (GUID) for the preference row.
	UserID               uuid.UUID   `json:"user_id"`               // The ID of the user who owns these preferences.
	Timezone             string      `json:"timezone"`              // IANA timezone name used to interpret preferred hours.
	NotificationsEnabled bool        `json:"notifications_enabled"` // Master switch; false means no deliveries are scheduled.
	NotificationsPerDay  int         `json:"notifications_per_day"` // Maximum deliveries per day (1-20).
	PreferredHours       []int       `json:"preferred_hours"`       // Local hours of day (0-23) eligible for delivery.
	PreferredCategories  []uuid.UUID `json:"preferred_categories"`  // Category IDs to draw content from; empty means all.
	CreatedAt            time.Time   `json:"created_at"`            // Timestamp of when this record was created.
	UpdatedAt            time.Time   `json:"updated_at"`            // Timestamp of the last modification.
}
