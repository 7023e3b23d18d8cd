// Package model contains the GORM-specific structs mirroring database tables.
package model

import (
	"time"

	"github.com/google/uuid"
)

// UserModel mirrors the 'users' table. PostgreSQL generates UUIDs via uuid_generate_v7().
type UserModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	Email       string    `gorm:"type:varchar(255);unique;not null"`
	DisplayName string    `gorm:"type:varchar(100)"`
	IsAdmin     bool      `gorm:"not null;default:false"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Preference   *UserPreferenceModel `gorm:"foreignKey:UserID"`
	DeviceTokens []DeviceTokenModel   `gorm:"foreignKey:UserID"`
}

// TableName explicitly sets the table name for GORM.
func (UserModel) TableName() string {
	return "users"
}

// UserPreferenceModel mirrors the 'user_preferences' table. One row per user.
// Hour and category sets are stored as jsonb through GORM's json serializer.
type UserPreferenceModel struct {
	ID                   uuid.UUID   `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	UserID               uuid.UUID   `gorm:"type:uuid;not null;uniqueIndex"`
	Timezone             string      `gorm:"type:varchar(64);not null;default:'America/Bogota'"`
	NotificationsEnabled bool        `gorm:"not null;default:true"`
	NotificationsPerDay  int         `gorm:"not null;default:1"`
	PreferredHours       []int       `gorm:"type:jsonb;serializer:json"`
	PreferredCategories  []uuid.UUID `gorm:"type:jsonb;serializer:json"`
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// TableName explicitly sets the table name for GORM.
func (UserPreferenceModel) TableName() string {
	return "user_preferences"
}
