package model

import (
	"time"

	"github.com/google/uuid"
)

// DeviceTokenModel mirrors the 'device_tokens' table. The composite unique
// index makes registration an idempotent upsert.
type DeviceTokenModel struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	UserID     uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:idx_device_user_platform_token"`
	Platform   string    `gorm:"type:varchar(16);not null;uniqueIndex:idx_device_user_platform_token"`
	Token      string    `gorm:"type:text;not null;uniqueIndex:idx_device_user_platform_token"`
	LastSeenAt time.Time `gorm:"not null"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// TableName explicitly sets the table name for GORM.
func (DeviceTokenModel) TableName() string {
	return "device_tokens"
}
