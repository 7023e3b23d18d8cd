package impl

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"quotecast/internal/domain/entity"
	"quotecast/internal/domain/repository"
	mockRepo "quotecast/internal/mocks/repository"
	"quotecast/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// fixedClock pins Now for deterministic scheduling tests.
type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time {
	return c.now
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func createTestSchedulerService(t *testing.T, now time.Time) (
	usecase.SchedulerUsecase,
	*mockRepo.MockUserRepository,
	*mockRepo.MockDeliveryRepository,
) {
	userRepo := mockRepo.NewMockUserRepository(t)
	deliveryRepo := mockRepo.NewMockDeliveryRepository(t)

	service := NewSchedulerService(userRepo, deliveryRepo, fixedClock{now: now}, testLogger(), "UTC")

	return service, userRepo, deliveryRepo
}

func TestSchedulerService_ScheduleForUser_Success(t *testing.T) {
	// 12:00 UTC is 07:00 in Bogota (UTC-5, no DST).
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	service, userRepo, deliveryRepo := createTestSchedulerService(t, now)

	ctx := context.Background()
	userID := uuid.New()

	userRepo.EXPECT().FindPreferenceByUserID(ctx, userID).Return(&entity.UserPreference{
		UserID:               userID,
		Timezone:             "America/Bogota",
		NotificationsEnabled: true,
		NotificationsPerDay:  5,
		PreferredHours:       []int{8, 20},
	}, nil)

	// 08:00 and 20:00 Bogota on the same local day, converted to UTC.
	slotMorning := time.Date(2026, 3, 10, 13, 0, 0, 0, time.UTC)
	slotEvening := time.Date(2026, 3, 11, 1, 0, 0, 0, time.UTC)

	deliveryRepo.EXPECT().ExistsActiveAt(ctx, userID, slotMorning).Return(false, nil)
	deliveryRepo.EXPECT().ExistsActiveAt(ctx, userID, slotEvening).Return(false, nil)

	deliveryRepo.EXPECT().
		CreateDelivery(ctx, mock.MatchedBy(func(d *entity.NotificationDelivery) bool {
			return d.UserID == userID &&
				d.Status == entity.DeliveryStatusPending &&
				d.ScheduledAt != nil &&
				(d.ScheduledAt.Equal(slotMorning) || d.ScheduledAt.Equal(slotEvening))
		})).
		Return(nil).
		Twice()

	created, err := service.ScheduleForUser(ctx, userID)

	require.NoError(t, err)
	assert.Equal(t, 2, created)
}

func TestSchedulerService_ScheduleForUser_PassedHourRollsToTomorrow(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	service, userRepo, deliveryRepo := createTestSchedulerService(t, now)

	ctx := context.Background()
	userID := uuid.New()

	userRepo.EXPECT().FindPreferenceByUserID(ctx, userID).Return(&entity.UserPreference{
		UserID:               userID,
		Timezone:             "UTC",
		NotificationsEnabled: true,
		NotificationsPerDay:  1,
		PreferredHours:       []int{9},
	}, nil)

	// 09:00 today already passed, so the slot lands on tomorrow.
	slot := time.Date(2026, 3, 11, 9, 0, 0, 0, time.UTC)
	deliveryRepo.EXPECT().ExistsActiveAt(ctx, userID, slot).Return(false, nil)
	deliveryRepo.EXPECT().CreateDelivery(ctx, mock.Anything).Return(nil)

	created, err := service.ScheduleForUser(ctx, userID)

	require.NoError(t, err)
	assert.Equal(t, 1, created)
}

func TestSchedulerService_ScheduleForUser_Idempotent(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	service, userRepo, deliveryRepo := createTestSchedulerService(t, now)

	ctx := context.Background()
	userID := uuid.New()

	userRepo.EXPECT().FindPreferenceByUserID(ctx, userID).Return(&entity.UserPreference{
		UserID:               userID,
		Timezone:             "UTC",
		NotificationsEnabled: true,
		NotificationsPerDay:  2,
		PreferredHours:       []int{14, 18},
	}, nil)

	// The 14:00 slot is already occupied by a pending or sent delivery.
	deliveryRepo.EXPECT().
		ExistsActiveAt(ctx, userID, time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC)).
		Return(true, nil)
	deliveryRepo.EXPECT().
		ExistsActiveAt(ctx, userID, time.Date(2026, 3, 10, 18, 0, 0, 0, time.UTC)).
		Return(false, nil)
	deliveryRepo.EXPECT().CreateDelivery(ctx, mock.Anything).Return(nil).Once()

	created, err := service.ScheduleForUser(ctx, userID)

	require.NoError(t, err)
	assert.Equal(t, 1, created)
}

func TestSchedulerService_ScheduleForUser_ClipsToPerDay(t *testing.T) {
	now := time.Date(2026, 3, 10, 1, 0, 0, 0, time.UTC)
	service, userRepo, deliveryRepo := createTestSchedulerService(t, now)

	ctx := context.Background()
	userID := uuid.New()

	// Duplicates and out-of-range hours are dropped, the rest sorted and
	// clipped to the two earliest.
	userRepo.EXPECT().FindPreferenceByUserID(ctx, userID).Return(&entity.UserPreference{
		UserID:               userID,
		Timezone:             "UTC",
		NotificationsEnabled: true,
		NotificationsPerDay:  2,
		PreferredHours:       []int{20, 8, 8, 25, -1, 13},
	}, nil)

	deliveryRepo.EXPECT().
		ExistsActiveAt(ctx, userID, time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)).
		Return(false, nil)
	deliveryRepo.EXPECT().
		ExistsActiveAt(ctx, userID, time.Date(2026, 3, 10, 13, 0, 0, 0, time.UTC)).
		Return(false, nil)
	deliveryRepo.EXPECT().CreateDelivery(ctx, mock.Anything).Return(nil).Twice()

	created, err := service.ScheduleForUser(ctx, userID)

	require.NoError(t, err)
	assert.Equal(t, 2, created)
}

func TestSchedulerService_ScheduleForUser_InvalidTimezoneFallsBack(t *testing.T) {
	now := time.Date(2026, 3, 10, 1, 0, 0, 0, time.UTC)
	service, userRepo, deliveryRepo := createTestSchedulerService(t, now)

	ctx := context.Background()
	userID := uuid.New()

	userRepo.EXPECT().FindPreferenceByUserID(ctx, userID).Return(&entity.UserPreference{
		UserID:               userID,
		Timezone:             "Not/AZone",
		NotificationsEnabled: true,
		NotificationsPerDay:  1,
		PreferredHours:       []int{10},
	}, nil)

	// The unknown zone falls back to the configured default (UTC here).
	deliveryRepo.EXPECT().
		ExistsActiveAt(ctx, userID, time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC)).
		Return(false, nil)
	deliveryRepo.EXPECT().CreateDelivery(ctx, mock.Anything).Return(nil)

	created, err := service.ScheduleForUser(ctx, userID)

	require.NoError(t, err)
	assert.Equal(t, 1, created)
}

func TestSchedulerService_ScheduleForUser_Disabled(t *testing.T) {
	service, userRepo, _ := createTestSchedulerService(t, time.Now().UTC())

	ctx := context.Background()
	userID := uuid.New()

	userRepo.EXPECT().FindPreferenceByUserID(ctx, userID).Return(&entity.UserPreference{
		UserID:               userID,
		Timezone:             "UTC",
		NotificationsEnabled: false,
		NotificationsPerDay:  3,
		PreferredHours:       []int{8, 12, 20},
	}, nil)

	created, err := service.ScheduleForUser(ctx, userID)

	require.NoError(t, err)
	assert.Equal(t, 0, created)
}

func TestSchedulerService_ScheduleForUser_NoPreference(t *testing.T) {
	service, userRepo, _ := createTestSchedulerService(t, time.Now().UTC())

	ctx := context.Background()
	userID := uuid.New()

	userRepo.EXPECT().
		FindPreferenceByUserID(ctx, userID).
		Return(nil, repository.ErrPreferenceNotFound)

	created, err := service.ScheduleForUser(ctx, userID)

	require.NoError(t, err)
	assert.Equal(t, 0, created)
}

func TestSchedulerService_ScheduleForUser_NoUsableHours(t *testing.T) {
	service, userRepo, _ := createTestSchedulerService(t, time.Now().UTC())

	ctx := context.Background()
	userID := uuid.New()

	userRepo.EXPECT().FindPreferenceByUserID(ctx, userID).Return(&entity.UserPreference{
		UserID:               userID,
		Timezone:             "UTC",
		NotificationsEnabled: true,
		NotificationsPerDay:  3,
		PreferredHours:       []int{-5, 24, 99},
	}, nil)

	created, err := service.ScheduleForUser(ctx, userID)

	require.NoError(t, err)
	assert.Equal(t, 0, created)
}

func TestSchedulerService_ScheduleAll_IsolatesUserFailures(t *testing.T) {
	now := time.Date(2026, 3, 10, 1, 0, 0, 0, time.UTC)
	service, userRepo, deliveryRepo := createTestSchedulerService(t, now)

	ctx := context.Background()
	okUser := uuid.New()
	badUser := uuid.New()

	userRepo.EXPECT().ListEnabledUserIDs(ctx).Return([]uuid.UUID{okUser, badUser}, nil)

	userRepo.EXPECT().FindPreferenceByUserID(ctx, okUser).Return(&entity.UserPreference{
		UserID:               okUser,
		Timezone:             "UTC",
		NotificationsEnabled: true,
		NotificationsPerDay:  1,
		PreferredHours:       []int{9},
	}, nil)
	deliveryRepo.EXPECT().ExistsActiveAt(ctx, okUser, mock.Anything).Return(false, nil)
	deliveryRepo.EXPECT().CreateDelivery(ctx, mock.Anything).Return(nil)

	userRepo.EXPECT().
		FindPreferenceByUserID(ctx, badUser).
		Return(nil, errors.New("db connection lost"))

	report, err := service.ScheduleAll(ctx)

	require.NoError(t, err)
	assert.Equal(t, 1, report.UsersProcessed)
	assert.Equal(t, 1, report.UsersFailed)
	assert.Equal(t, 1, report.DeliveriesCreated)
}

func TestSchedulerService_ScheduleAll_ListError(t *testing.T) {
	service, userRepo, _ := createTestSchedulerService(t, time.Now().UTC())

	ctx := context.Background()
	userRepo.EXPECT().ListEnabledUserIDs(ctx).Return(nil, errors.New("db error"))

	report, err := service.ScheduleAll(ctx)

	assert.Error(t, err)
	assert.Nil(t, report)
}

func TestNextOccurrence(t *testing.T) {
	bogota, err := time.LoadLocation("America/Bogota")
	require.NoError(t, err)

	tests := []struct {
		name string
		now  time.Time
		hour int
		loc  *time.Location
		want time.Time
	}{
		{
			name: "future hour today",
			now:  time.Date(2026, 3, 10, 6, 30, 0, 0, time.UTC),
			hour: 9,
			loc:  time.UTC,
			want: time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC),
		},
		{
			name: "exact hour rolls to tomorrow",
			now:  time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC),
			hour: 9,
			loc:  time.UTC,
			want: time.Date(2026, 3, 11, 9, 0, 0, 0, time.UTC),
		},
		{
			name: "local hour converts to utc",
			now:  time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC),
			hour: 8,
			loc:  bogota,
			want: time.Date(2026, 3, 10, 13, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := nextOccurrence(tt.now, tt.hour, tt.loc)
			assert.True(t, got.Equal(tt.want), "got %s, want %s", got, tt.want)
		})
	}
}

func TestNormalizeHours(t *testing.T) {
	assert.Equal(t, []int{8, 13}, normalizeHours([]int{20, 8, 8, 25, -1, 13}, 2))
	assert.Equal(t, []int{0, 23}, normalizeHours([]int{23, 0}, 5))
	assert.Empty(t, normalizeHours([]int{-1, 24}, 3))
	assert.Equal(t, []int{7, 12, 18}, normalizeHours([]int{18, 7, 12}, 0))
}
