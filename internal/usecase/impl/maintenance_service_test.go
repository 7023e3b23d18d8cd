package impl

import (
	"context"
	"testing"
	"time"

	"quotecast/internal/domain/entity"
	mockRepo "quotecast/internal/mocks/repository"
	mockUC "quotecast/internal/mocks/usecase"
	"quotecast/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func createTestMaintenanceService(t *testing.T) (
	usecase.MaintenanceUsecase,
	*mockRepo.MockDeliveryRepository,
	*mockUC.MockSchedulerUsecase,
) {
	deliveryRepo := mockRepo.NewMockDeliveryRepository(t)
	schedulerUC := mockUC.NewMockSchedulerUsecase(t)

	service := NewMaintenanceService(deliveryRepo, schedulerUC, testLogger())

	return service, deliveryRepo, schedulerUC
}

func invalidDelivery(userID uuid.UUID, scheduledAt *time.Time) *entity.NotificationDelivery {
	return &entity.NotificationDelivery{
		ID:          uuid.New(),
		UserID:      userID,
		ScheduledAt: scheduledAt,
		Status:      entity.DeliveryStatusPending,
	}
}

func TestMaintenanceService_FindInvalidDeliveries(t *testing.T) {
	service, deliveryRepo, _ := createTestMaintenanceService(t)

	ctx := context.Background()
	preEpoch := time.Date(1969, 12, 31, 23, 0, 0, 0, time.UTC)
	expected := []*entity.NotificationDelivery{
		invalidDelivery(uuid.New(), nil),
		invalidDelivery(uuid.New(), &preEpoch),
	}

	deliveryRepo.EXPECT().FindInvalid(ctx).Return(expected, nil)

	got, err := service.FindInvalidDeliveries(ctx)

	require.NoError(t, err)
	assert.Equal(t, expected, got)
}

func TestMaintenanceService_CleanInvalidDeliveries_NothingToClean(t *testing.T) {
	service, deliveryRepo, _ := createTestMaintenanceService(t)

	ctx := context.Background()
	deliveryRepo.EXPECT().FindInvalid(ctx).Return([]*entity.NotificationDelivery{}, nil)

	report, err := service.CleanInvalidDeliveries(ctx, true)

	require.NoError(t, err)
	assert.Equal(t, int64(0), report.Deleted)
	assert.Empty(t, report.AffectedUsers)
	deliveryRepo.AssertNotCalled(t, "DeleteByIDs", mock.Anything, mock.Anything)
}

func TestMaintenanceService_CleanInvalidDeliveries_DeleteOnly(t *testing.T) {
	service, deliveryRepo, schedulerUC := createTestMaintenanceService(t)

	ctx := context.Background()
	userA := uuid.New()
	userB := uuid.New()

	// Two rows belong to the same user: affected users are deduplicated.
	rows := []*entity.NotificationDelivery{
		invalidDelivery(userA, nil),
		invalidDelivery(userA, nil),
		invalidDelivery(userB, nil),
	}

	deliveryRepo.EXPECT().FindInvalid(ctx).Return(rows, nil)
	deliveryRepo.EXPECT().
		DeleteByIDs(ctx, []uuid.UUID{rows[0].ID, rows[1].ID, rows[2].ID}).
		Return(int64(3), nil)

	report, err := service.CleanInvalidDeliveries(ctx, false)

	require.NoError(t, err)
	assert.Equal(t, int64(3), report.Deleted)
	assert.Equal(t, []uuid.UUID{userA, userB}, report.AffectedUsers)
	assert.Equal(t, 0, report.Rescheduled)
	schedulerUC.AssertNotCalled(t, "ScheduleForUser", mock.Anything, mock.Anything)
}

func TestMaintenanceService_CleanInvalidDeliveries_Reprogram(t *testing.T) {
	service, deliveryRepo, schedulerUC := createTestMaintenanceService(t)

	ctx := context.Background()
	userA := uuid.New()
	userB := uuid.New()

	rows := []*entity.NotificationDelivery{
		invalidDelivery(userA, nil),
		invalidDelivery(userB, nil),
	}

	deliveryRepo.EXPECT().FindInvalid(ctx).Return(rows, nil)
	deliveryRepo.EXPECT().DeleteByIDs(ctx, mock.Anything).Return(int64(2), nil)

	schedulerUC.EXPECT().ScheduleForUser(ctx, userA).Return(3, nil)
	// One user failing to reschedule does not abort the repair.
	schedulerUC.EXPECT().ScheduleForUser(ctx, userB).Return(0, errors.New("db error"))

	report, err := service.CleanInvalidDeliveries(ctx, true)

	require.NoError(t, err)
	assert.Equal(t, int64(2), report.Deleted)
	assert.Equal(t, 3, report.Rescheduled)
}

func TestMaintenanceService_CleanInvalidDeliveries_DeleteError(t *testing.T) {
	service, deliveryRepo, _ := createTestMaintenanceService(t)

	ctx := context.Background()
	deliveryRepo.EXPECT().
		FindInvalid(ctx).
		Return([]*entity.NotificationDelivery{invalidDelivery(uuid.New(), nil)}, nil)
	deliveryRepo.EXPECT().DeleteByIDs(ctx, mock.Anything).Return(int64(0), errors.New("db error"))

	report, err := service.CleanInvalidDeliveries(ctx, false)

	assert.Error(t, err)
	assert.Nil(t, report)
}
