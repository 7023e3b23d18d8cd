// Package usecase defines the application-level interfaces and their
// request/response types.
package usecase

import (
	"context"

	"github.com/google/uuid"
)

// ScheduleReport summarizes one full scheduling pass.
type ScheduleReport struct {
	UsersProcessed    int `json:"users_processed"`
	UsersFailed       int `json:"users_failed"`
	DeliveriesCreated int `json:"deliveries_created"`
}

// SchedulerUsecase defines the interface for delivery scheduling use cases.
//
// Scheduling is idempotent: a slot already occupied by a pending or sent
// delivery is never filled twice, so re-running a pass creates nothing new.
type SchedulerUsecase interface {
	// ScheduleForUser materializes pending deliveries for one user's next
	// preferred hours. Returns the number of rows created. A missing
	// preference row or disabled notifications yield (0, nil).
	ScheduleForUser(ctx context.Context, userID uuid.UUID) (int, error)

	// ScheduleAll runs ScheduleForUser for every user with notifications
	// enabled. Per-user failures are logged and isolated; the pass
	// continues with the remaining users.
	ScheduleAll(ctx context.Context) (*ScheduleReport, error)
}
