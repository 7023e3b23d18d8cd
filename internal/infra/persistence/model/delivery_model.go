package model

import (
	"time"

	"quotecast/internal/domain/entity"

	"github.com/google/uuid"
)

// NotificationDeliveryModel mirrors the 'notification_deliveries' table.
// ScheduledAt is deliberately a nullable column: a null or pre-epoch value
// is the corruption signature the maintenance tooling looks for, so the
// schema must be able to represent it.
type NotificationDeliveryModel struct {
	ID           uuid.UUID                `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	UserID       uuid.UUID                `gorm:"type:uuid;not null;index:idx_delivery_user_status"`
	QuoteID      *uuid.UUID               `gorm:"type:uuid"`
	ArticleID    *uuid.UUID               `gorm:"type:uuid"`
	ScheduledAt  *time.Time               `gorm:"index:idx_delivery_scheduled_status"`
	SentAt       *time.Time               ``
	Status       string                   `gorm:"type:varchar(16);not null;default:'pending';index:idx_delivery_user_status;index:idx_delivery_scheduled_status"`
	ErrorMessage string                   `gorm:"type:text"`
	Payload      *entity.DeliveryPayload  `gorm:"type:jsonb;serializer:json"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName explicitly sets the table name for GORM.
func (NotificationDeliveryModel) TableName() string {
	return "notification_deliveries"
}

// QuoteSentRecordModel mirrors the 'quote_sent_records' table. The unique
// triple constraint is what absorbs duplicate same-second appends.
type QuoteSentRecordModel struct {
	ID      uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	UserID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_history_user_quote_sent"`
	QuoteID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_history_user_quote_sent"`
	SentAt  time.Time `gorm:"not null;uniqueIndex:idx_history_user_quote_sent"`
}

// TableName explicitly sets the table name for GORM.
func (QuoteSentRecordModel) TableName() string {
	return "quote_sent_records"
}
