package impl

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"quotecast/internal/domain/entity"
	deliverycontext "quotecast/internal/delivery/context"
	domainerrors "quotecast/internal/domain/errors"
	"quotecast/internal/domain/repository"
	"quotecast/internal/domain/service"
	"quotecast/internal/errors"
	"quotecast/internal/usecase"

	"github.com/google/uuid"
)

type preferenceService struct {
	userRepo  repository.UserRepository
	publisher service.EventPublisher
	logger    *slog.Logger
}

// NewPreferenceService creates a new preference service instance
func NewPreferenceService(
	userRepo repository.UserRepository,
	publisher service.EventPublisher,
	logger *slog.Logger,
) usecase.PreferenceUsecase {
	return &preferenceService{
		userRepo:  userRepo,
		publisher: publisher,
		logger:    logger,
	}
}

// GetPreferences retrieves a user's preference row.
func (s *preferenceService) GetPreferences(ctx context.Context, userID uuid.UUID) (*entity.UserPreference, error) {
	pref, err := s.userRepo.FindPreferenceByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrPreferenceNotFound) {
			return nil, domainerrors.ErrPreferenceNotFound
		}

		return nil, fmt.Errorf("failed to find preference: %w", err)
	}

	return pref, nil
}

// UpdatePreferences validates and upserts the user's preferences, then
// publishes a preference-changed event.
func (s *preferenceService) UpdatePreferences(ctx context.Context, userID uuid.UUID, input *usecase.PreferenceInput) (*entity.UserPreference, error) {
	if err := validatePreferenceInput(input); err != nil {
		return nil, err
	}

	if _, err := s.userRepo.FindUserByID(ctx, userID); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrUserNotFound
		}

		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	pref := &entity.UserPreference{
		UserID:               userID,
		Timezone:             input.Timezone,
		NotificationsEnabled: input.NotificationsEnabled,
		NotificationsPerDay:  input.NotificationsPerDay,
		PreferredHours:       input.PreferredHours,
		PreferredCategories:  input.PreferredCategories,
	}
	if err := s.userRepo.UpsertPreference(ctx, pref); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrUserNotFound
		}

		return nil, fmt.Errorf("failed to upsert preference: %w", err)
	}

	// Best effort: the event only accelerates rescheduling, the next cron
	// pass picks the change up anyway.
	event := &service.PreferenceEvent{
		RequestID: deliverycontext.GetRequestIDFromContext(ctx),
		UserID:    userID.String(),
	}
	if err := s.publisher.PublishPreferenceEvent(ctx, event); err != nil {
		s.logger.WarnContext(ctx, "Failed to publish preference event",
			slog.String("user_id", userID.String()),
			slog.Any("error", err),
		)
	}

	return pref, nil
}

func validatePreferenceInput(input *usecase.PreferenceInput) error {
	if _, err := time.LoadLocation(input.Timezone); err != nil || input.Timezone == "" {
		return domainerrors.ErrInvalidTimezone
	}

	if input.NotificationsPerDay < entity.MinNotificationsPerDay ||
		input.NotificationsPerDay > entity.MaxNotificationsPerDay {
		return domainerrors.ErrInvalidNotificationsPerDay
	}

	for _, hour := range input.PreferredHours {
		if hour < 0 || hour > 23 {
			return domainerrors.ErrInvalidPreferredHours
		}
	}

	return nil
}
