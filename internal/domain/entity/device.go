// Package entity contains the core business objects of the project.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// Supported device platforms.
const (
	PlatformAndroid = "android"
	PlatformIOS     = "ios"
)

// DeviceToken represents one app installation registered for push
// notifications. A user may hold several tokens (multi-device).
type DeviceToken struct {
	ID         uuid.UUID `json:"id"`           // The Global Unique Identifier (GUID) for the token row.
	UserID     uuid.UUID `json:"user_id"`      // The ID of the user who owns this device.
	Platform   string    `json:"platform"`     // Device platform (ios, android).
	Token      string    `json:"token"`        // Opaque FCM registration token for push delivery.
	LastSeenAt time.Time `json:"last_seen_at"` // Refreshed every time the app re-registers the token.
	CreatedAt  time.Time `json:"created_at"`   // Timestamp of when this token was first registered.
	UpdatedAt  time.Time `json:"updated_at"`   // Timestamp of the last modification.
}

// ValidPlatform reports whether p names a supported push platform.
func ValidPlatform(p string) bool {
	return p == PlatformAndroid || p == PlatformIOS
}
