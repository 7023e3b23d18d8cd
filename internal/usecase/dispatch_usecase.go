package usecase

import (
	"context"

	"github.com/google/uuid"
)

// DispatchSummary summarizes one dispatch cycle.
type DispatchSummary struct {
	Processed int `json:"processed"`
	Sent      int `json:"sent"`
	Failed    int `json:"failed"`
	Skipped   int `json:"skipped"`
}

// DispatchUsecase defines the interface for pushing due deliveries.
type DispatchUsecase interface {
	// DispatchDue processes every pending delivery whose scheduled time
	// has passed. Each delivery is dispatched independently; one failure
	// never aborts the batch. When the push provider is unconfigured the
	// whole cycle is skipped with a warning and no rows change.
	DispatchDue(ctx context.Context) (*DispatchSummary, error)

	// DispatchDelivery pushes one delivery through the guard chain and
	// always lands the row in a terminal state or leaves it untouched for
	// a concurrent winner. It never propagates dispatch errors.
	DispatchDelivery(ctx context.Context, id uuid.UUID) error
}
