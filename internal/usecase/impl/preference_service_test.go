package impl

import (
	"context"
	"testing"

	deliverycontext "quotecast/internal/delivery/context"
	"quotecast/internal/domain/entity"
	domainerrors "quotecast/internal/domain/errors"
	"quotecast/internal/domain/repository"
	"quotecast/internal/domain/service"
	mockRepo "quotecast/internal/mocks/repository"
	mockSvc "quotecast/internal/mocks/service"
	"quotecast/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func createTestPreferenceService(t *testing.T) (
	usecase.PreferenceUsecase,
	*mockRepo.MockUserRepository,
	*mockSvc.MockEventPublisher,
) {
	userRepo := mockRepo.NewMockUserRepository(t)
	publisher := mockSvc.NewMockEventPublisher(t)

	svc := NewPreferenceService(userRepo, publisher, testLogger())

	return svc, userRepo, publisher
}

func validPreferenceInput() *usecase.PreferenceInput {
	return &usecase.PreferenceInput{
		Timezone:             "America/Bogota",
		NotificationsEnabled: true,
		NotificationsPerDay:  3,
		PreferredHours:       []int{8, 13, 20},
		PreferredCategories:  []uuid.UUID{uuid.New()},
	}
}

func TestPreferenceService_GetPreferences_Success(t *testing.T) {
	svc, userRepo, _ := createTestPreferenceService(t)

	ctx := context.Background()
	userID := uuid.New()
	expected := &entity.UserPreference{UserID: userID, Timezone: "UTC"}

	userRepo.EXPECT().FindPreferenceByUserID(ctx, userID).Return(expected, nil)

	got, err := svc.GetPreferences(ctx, userID)

	require.NoError(t, err)
	assert.Equal(t, expected, got)
}

func TestPreferenceService_GetPreferences_NotFound(t *testing.T) {
	svc, userRepo, _ := createTestPreferenceService(t)

	ctx := context.Background()
	userID := uuid.New()

	userRepo.EXPECT().
		FindPreferenceByUserID(ctx, userID).
		Return(nil, repository.ErrPreferenceNotFound)

	got, err := svc.GetPreferences(ctx, userID)

	assert.ErrorIs(t, err, domainerrors.ErrPreferenceNotFound)
	assert.Nil(t, got)
}

func TestPreferenceService_UpdatePreferences_Success(t *testing.T) {
	svc, userRepo, publisher := createTestPreferenceService(t)

	ctx := deliverycontext.WithRequestID(context.Background(), "req-123")
	userID := uuid.New()
	input := validPreferenceInput()

	userRepo.EXPECT().FindUserByID(ctx, userID).Return(&entity.User{ID: userID}, nil)
	userRepo.EXPECT().
		UpsertPreference(ctx, mock.MatchedBy(func(pref *entity.UserPreference) bool {
			return pref.UserID == userID &&
				pref.Timezone == input.Timezone &&
				pref.NotificationsEnabled &&
				pref.NotificationsPerDay == 3
		})).
		Return(nil)

	publisher.EXPECT().
		PublishPreferenceEvent(ctx, &service.PreferenceEvent{RequestID: "req-123", UserID: userID.String()}).
		Return(nil)

	pref, err := svc.UpdatePreferences(ctx, userID, input)

	require.NoError(t, err)
	assert.Equal(t, input.PreferredHours, pref.PreferredHours)
}

func TestPreferenceService_UpdatePreferences_PublishFailureIsNonFatal(t *testing.T) {
	svc, userRepo, publisher := createTestPreferenceService(t)

	ctx := context.Background()
	userID := uuid.New()

	userRepo.EXPECT().FindUserByID(ctx, userID).Return(&entity.User{ID: userID}, nil)
	userRepo.EXPECT().UpsertPreference(ctx, mock.Anything).Return(nil)
	publisher.EXPECT().
		PublishPreferenceEvent(ctx, mock.Anything).
		Return(errors.New("broker unavailable"))

	pref, err := svc.UpdatePreferences(ctx, userID, validPreferenceInput())

	require.NoError(t, err)
	assert.NotNil(t, pref)
}

func TestPreferenceService_UpdatePreferences_UserNotFound(t *testing.T) {
	svc, userRepo, _ := createTestPreferenceService(t)

	ctx := context.Background()
	userID := uuid.New()

	userRepo.EXPECT().FindUserByID(ctx, userID).Return(nil, repository.ErrUserNotFound)

	pref, err := svc.UpdatePreferences(ctx, userID, validPreferenceInput())

	assert.ErrorIs(t, err, domainerrors.ErrUserNotFound)
	assert.Nil(t, pref)
}

func TestPreferenceService_UpdatePreferences_Validation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(input *usecase.PreferenceInput)
		wantErr error
	}{
		{
			name:    "unknown timezone",
			mutate:  func(input *usecase.PreferenceInput) { input.Timezone = "Mars/Olympus" },
			wantErr: domainerrors.ErrInvalidTimezone,
		},
		{
			name:    "empty timezone",
			mutate:  func(input *usecase.PreferenceInput) { input.Timezone = "" },
			wantErr: domainerrors.ErrInvalidTimezone,
		},
		{
			name:    "per day below minimum",
			mutate:  func(input *usecase.PreferenceInput) { input.NotificationsPerDay = 0 },
			wantErr: domainerrors.ErrInvalidNotificationsPerDay,
		},
		{
			name:    "per day above maximum",
			mutate:  func(input *usecase.PreferenceInput) { input.NotificationsPerDay = 21 },
			wantErr: domainerrors.ErrInvalidNotificationsPerDay,
		},
		{
			name:    "hour out of range",
			mutate:  func(input *usecase.PreferenceInput) { input.PreferredHours = []int{8, 24} },
			wantErr: domainerrors.ErrInvalidPreferredHours,
		},
		{
			name:    "negative hour",
			mutate:  func(input *usecase.PreferenceInput) { input.PreferredHours = []int{-1} },
			wantErr: domainerrors.ErrInvalidPreferredHours,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _, _ := createTestPreferenceService(t)

			input := validPreferenceInput()
			tt.mutate(input)

			pref, err := svc.UpdatePreferences(context.Background(), uuid.New(), input)

			assert.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, pref)
		})
	}
}
