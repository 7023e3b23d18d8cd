package impl

import (
	"context"
	"fmt"
	"log/slog"

	"quotecast/internal/domain/repository"
	"quotecast/internal/usecase"

	"quotecast/internal/domain/entity"

	"github.com/google/uuid"
)

type maintenanceService struct {
	deliveryRepo repository.DeliveryRepository
	schedulerUC  usecase.SchedulerUsecase
	logger       *slog.Logger
}

// NewMaintenanceService creates a new maintenance service instance
func NewMaintenanceService(
	deliveryRepo repository.DeliveryRepository,
	schedulerUC usecase.SchedulerUsecase,
	logger *slog.Logger,
) usecase.MaintenanceUsecase {
	return &maintenanceService{
		deliveryRepo: deliveryRepo,
		schedulerUC:  schedulerUC,
		logger:       logger,
	}
}

// FindInvalidDeliveries returns rows with a null or pre-epoch scheduled_at.
func (s *maintenanceService) FindInvalidDeliveries(ctx context.Context) ([]*entity.NotificationDelivery, error) {
	deliveries, err := s.deliveryRepo.FindInvalid(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to find invalid deliveries: %w", err)
	}

	return deliveries, nil
}

// CleanInvalidDeliveries deletes the flagged rows and optionally
// reschedules every affected user.
func (s *maintenanceService) CleanInvalidDeliveries(ctx context.Context, reprogram bool) (*usecase.MaintenanceReport, error) {
	deliveries, err := s.deliveryRepo.FindInvalid(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to find invalid deliveries: %w", err)
	}

	report := &usecase.MaintenanceReport{}
	if len(deliveries) == 0 {
		return report, nil
	}

	ids := make([]uuid.UUID, 0, len(deliveries))
	userSet := make(map[uuid.UUID]struct{})
	for _, delivery := range deliveries {
		ids = append(ids, delivery.ID)
		if _, ok := userSet[delivery.UserID]; !ok {
			userSet[delivery.UserID] = struct{}{}
			report.AffectedUsers = append(report.AffectedUsers, delivery.UserID)
		}
	}

	deleted, err := s.deliveryRepo.DeleteByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to delete invalid deliveries: %w", err)
	}
	report.Deleted = deleted

	if !reprogram {
		return report, nil
	}

	for _, userID := range report.AffectedUsers {
		created, err := s.schedulerUC.ScheduleForUser(ctx, userID)
		if err != nil {
			s.logger.ErrorContext(ctx, "Reprogramming failed for user",
				slog.String("user_id", userID.String()),
				slog.Any("error", err),
			)

			continue
		}
		report.Rescheduled += created
	}

	return report, nil
}
