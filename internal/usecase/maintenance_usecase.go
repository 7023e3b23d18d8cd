package usecase

import (
	"context"

	"quotecast/internal/domain/entity"

	"github.com/google/uuid"
)

// MaintenanceReport summarizes one invalid-delivery repair run.
type MaintenanceReport struct {
	Deleted       int64       `json:"deleted"`
	AffectedUsers []uuid.UUID `json:"affected_users"`
	Rescheduled   int         `json:"rescheduled"`
}

// MaintenanceUsecase defines the interface for operator-driven repair of
// corrupt delivery rows (null or pre-epoch scheduled_at).
type MaintenanceUsecase interface {
	// FindInvalidDeliveries returns the rows carrying a null or pre-epoch
	// scheduled_at, for operator review before any destructive action.
	FindInvalidDeliveries(ctx context.Context) ([]*entity.NotificationDelivery, error)

	// CleanInvalidDeliveries deletes the flagged rows and, when reprogram
	// is set, reschedules each affected user. Confirmation happens
	// upstream in the CLI; this method assumes the operator already
	// agreed.
	CleanInvalidDeliveries(ctx context.Context, reprogram bool) (*MaintenanceReport, error)
}
