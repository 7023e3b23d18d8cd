// Package impl contains the concrete implementations of the usecase
// interfaces.
package impl

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"quotecast/internal/domain/entity"
	"quotecast/internal/domain/repository"
	"quotecast/internal/domain/service"
	"quotecast/internal/errors"
	"quotecast/internal/usecase"

	"github.com/google/uuid"
)

type schedulerService struct {
	userRepo        repository.UserRepository
	deliveryRepo    repository.DeliveryRepository
	clock           service.Clock
	logger          *slog.Logger
	defaultTimezone string
}

// NewSchedulerService creates a new scheduler service instance
func NewSchedulerService(
	userRepo repository.UserRepository,
	deliveryRepo repository.DeliveryRepository,
	clock service.Clock,
	logger *slog.Logger,
	defaultTimezone string,
) usecase.SchedulerUsecase {
	return &schedulerService{
		userRepo:        userRepo,
		deliveryRepo:    deliveryRepo,
		clock:           clock,
		logger:          logger,
		defaultTimezone: defaultTimezone,
	}
}

// ScheduleForUser materializes pending deliveries for one user's next
// preferred hours.
func (s *schedulerService) ScheduleForUser(ctx context.Context, userID uuid.UUID) (int, error) {
	pref, err := s.userRepo.FindPreferenceByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrPreferenceNotFound) {
			return 0, nil
		}

		return 0, fmt.Errorf("failed to find preference: %w", err)
	}

	if !pref.NotificationsEnabled {
		return 0, nil
	}

	hours := normalizeHours(pref.PreferredHours, pref.NotificationsPerDay)
	if len(hours) == 0 {
		return 0, nil
	}

	loc := s.loadLocation(ctx, userID, pref.Timezone)
	now := s.clock.Now()

	created := 0
	for _, hour := range hours {
		scheduledAt := nextOccurrence(now, hour, loc)

		exists, err := s.deliveryRepo.ExistsActiveAt(ctx, userID, scheduledAt)
		if err != nil {
			return created, fmt.Errorf("failed to check delivery slot: %w", err)
		}
		if exists {
			continue
		}

		delivery := &entity.NotificationDelivery{
			UserID:      userID,
			ScheduledAt: &scheduledAt,
			Status:      entity.DeliveryStatusPending,
		}
		if err := s.deliveryRepo.CreateDelivery(ctx, delivery); err != nil {
			return created, fmt.Errorf("failed to create delivery: %w", err)
		}
		created++
	}

	return created, nil
}

// ScheduleAll runs a scheduling pass over every enabled user. Per-user
// failures are logged and the pass continues.
func (s *schedulerService) ScheduleAll(ctx context.Context) (*usecase.ScheduleReport, error) {
	userIDs, err := s.userRepo.ListEnabledUserIDs(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list enabled users: %w", err)
	}

	report := &usecase.ScheduleReport{}
	for _, userID := range userIDs {
		created, err := s.ScheduleForUser(ctx, userID)
		report.DeliveriesCreated += created
		if err != nil {
			report.UsersFailed++
			s.logger.Error("Scheduling failed for user",
				slog.String("user_id", userID.String()),
				slog.Any("error", err),
			)

			continue
		}
		report.UsersProcessed++
	}

	return report, nil
}

// loadLocation resolves the user's zone, falling back to the configured
// default (then UTC) when the stored name does not load.
func (s *schedulerService) loadLocation(ctx context.Context, userID uuid.UUID, name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err == nil {
		return loc
	}

	s.logger.WarnContext(ctx, "Invalid timezone in preferences, using default",
		slog.String("user_id", userID.String()),
		slog.String("timezone", name),
		slog.String("default", s.defaultTimezone),
	)

	loc, err = time.LoadLocation(s.defaultTimezone)
	if err != nil {
		return time.UTC
	}

	return loc
}

// normalizeHours dedupes and sorts the preferred hours, drops out-of-range
// values, and clips to the earliest perDay entries.
func normalizeHours(hours []int, perDay int) []int {
	seen := make(map[int]struct{}, len(hours))
	normalized := make([]int, 0, len(hours))
	for _, h := range hours {
		if h < 0 || h > 23 {
			continue
		}
		if _, ok := seen[h]; ok {
			continue
		}
		seen[h] = struct{}{}
		normalized = append(normalized, h)
	}
	sort.Ints(normalized)

	if perDay > 0 && len(normalized) > perDay {
		normalized = normalized[:perDay]
	}

	return normalized
}

// nextOccurrence returns the next strictly-future top-of-hour occurrence of
// hour in loc, expressed in UTC.
func nextOccurrence(now time.Time, hour int, loc *time.Location) time.Time {
	localNow := now.In(loc)
	candidate := time.Date(localNow.Year(), localNow.Month(), localNow.Day(), hour, 0, 0, 0, loc)
	if !candidate.After(localNow) {
		candidate = candidate.AddDate(0, 0, 1)
	}

	return candidate.UTC()
}
