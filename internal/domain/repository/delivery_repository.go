// Package repository defines the interfaces for the persistence layer.
package repository

import (
	"context"
	"time"

	"quotecast/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// Domain-specific errors for delivery persistence.
var (
	// ErrDeliveryNotFound is returned when a delivery row is not found.
	ErrDeliveryNotFound = errors.New("notification delivery not found")
	// ErrDeliveryStateConflict is returned when a conditional status
	// transition matched no row, meaning another worker already moved the
	// delivery out of pending.
	ErrDeliveryStateConflict = errors.New("delivery is no longer pending")
)

// SentUpdate carries the fields stamped on a successful dispatch.
type SentUpdate struct {
	QuoteID   uuid.UUID
	ArticleID uuid.UUID
	SentAt    time.Time
	Payload   *entity.DeliveryPayload
}

// DeliveryRepository defines the interface for notification-delivery
// database operations.
//
// MarkSent and MarkFailed are conditional updates guarded on
// status='pending' (compare-and-swap). They return
// ErrDeliveryStateConflict when the guard matches no row, which is how a
// concurrent dispatcher learns it lost the race.
type DeliveryRepository interface {
	// CreateDelivery inserts a new delivery in pending state.
	CreateDelivery(ctx context.Context, delivery *entity.NotificationDelivery) error

	// FindDeliveryByID retrieves a delivery by its unique ID.
	FindDeliveryByID(ctx context.Context, id uuid.UUID) (*entity.NotificationDelivery, error)

	// ExistsActiveAt reports whether a pending or sent delivery already
	// exists for the user at exactly scheduledAt.
	ExistsActiveAt(ctx context.Context, userID uuid.UUID, scheduledAt time.Time) (bool, error)

	// FindDuePending returns pending deliveries whose valid scheduled_at
	// is at or before now, oldest first, capped at limit. Rows with a
	// null or pre-epoch scheduled_at are excluded.
	FindDuePending(ctx context.Context, now time.Time, limit int) ([]*entity.NotificationDelivery, error)

	// MarkSent transitions pending -> sent, stamping sent_at, content ids
	// and the audited payload.
	MarkSent(ctx context.Context, id uuid.UUID, update SentUpdate) error

	// MarkFailed transitions pending -> failed with a human-readable
	// reason.
	MarkFailed(ctx context.Context, id uuid.UUID, reason string) error

	// FindInvalid returns deliveries whose scheduled_at is null or before
	// the Unix epoch.
	FindInvalid(ctx context.Context) ([]*entity.NotificationDelivery, error)

	// DeleteByIDs removes delivery rows by ID. Used only by maintenance
	// repair after operator confirmation.
	DeleteByIDs(ctx context.Context, ids []uuid.UUID) (int64, error)

	// ListByUser returns a user's deliveries, newest schedule first.
	ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.NotificationDelivery, error)
}
