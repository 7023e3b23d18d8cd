package impl

import (
	"context"
	"testing"
	"time"

	"quotecast/internal/domain/entity"
	domainerrors "quotecast/internal/domain/errors"
	"quotecast/internal/domain/repository"
	mockRepo "quotecast/internal/mocks/repository"
	mockSvc "quotecast/internal/mocks/service"
	"quotecast/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func createTestDeviceService(t *testing.T, now time.Time) (
	usecase.DeviceUsecase,
	*mockRepo.MockDeviceRepository,
	*mockRepo.MockUserRepository,
	*mockSvc.MockPushService,
) {
	deviceRepo := mockRepo.NewMockDeviceRepository(t)
	userRepo := mockRepo.NewMockUserRepository(t)
	pushSvc := mockSvc.NewMockPushService(t)

	service := NewDeviceService(deviceRepo, userRepo, pushSvc, fixedClock{now: now}, testLogger(), 2)

	return service, deviceRepo, userRepo, pushSvc
}

func TestDeviceService_RegisterDevice_Success(t *testing.T) {
	now := time.Date(2026, 3, 10, 13, 0, 0, 0, time.UTC)
	service, deviceRepo, userRepo, _ := createTestDeviceService(t, now)

	ctx := context.Background()
	userID := uuid.New()

	userRepo.EXPECT().FindUserByID(ctx, userID).Return(&entity.User{ID: userID}, nil)

	// Platform casing and surrounding whitespace are normalized.
	deviceRepo.EXPECT().
		UpsertDevice(ctx, &entity.DeviceToken{UserID: userID, Platform: "ios", Token: "fcm-token-1"}, now).
		Return(nil)

	device, err := service.RegisterDevice(ctx, userID, " iOS ", " fcm-token-1 ")

	require.NoError(t, err)
	assert.Equal(t, "ios", device.Platform)
	assert.Equal(t, "fcm-token-1", device.Token)
}

func TestDeviceService_RegisterDevice_InvalidPlatform(t *testing.T) {
	service, _, _, _ := createTestDeviceService(t, time.Now().UTC())

	device, err := service.RegisterDevice(context.Background(), uuid.New(), "windows", "tok")

	assert.ErrorIs(t, err, domainerrors.ErrInvalidPlatform)
	assert.Nil(t, device)
}

func TestDeviceService_RegisterDevice_EmptyToken(t *testing.T) {
	service, _, _, _ := createTestDeviceService(t, time.Now().UTC())

	device, err := service.RegisterDevice(context.Background(), uuid.New(), "android", "   ")

	assert.ErrorIs(t, err, ErrEmptyToken)
	assert.Nil(t, device)
}

func TestDeviceService_RegisterDevice_UserNotFound(t *testing.T) {
	service, _, userRepo, _ := createTestDeviceService(t, time.Now().UTC())

	ctx := context.Background()
	userID := uuid.New()

	userRepo.EXPECT().FindUserByID(ctx, userID).Return(nil, repository.ErrUserNotFound)

	device, err := service.RegisterDevice(ctx, userID, "android", "tok")

	assert.ErrorIs(t, err, domainerrors.ErrUserNotFound)
	assert.Nil(t, device)
}

func TestDeviceService_ListDevices(t *testing.T) {
	service, deviceRepo, _, _ := createTestDeviceService(t, time.Now().UTC())

	ctx := context.Background()
	userID := uuid.New()
	expected := []*entity.DeviceToken{
		{ID: uuid.New(), UserID: userID, Platform: entity.PlatformAndroid, Token: "tok-1"},
	}

	deviceRepo.EXPECT().FindDevicesByUser(ctx, userID).Return(expected, nil)

	got, err := service.ListDevices(ctx, userID)

	require.NoError(t, err)
	assert.Equal(t, expected, got)
}

func TestDeviceService_CleanupInvalidTokens_Unconfigured(t *testing.T) {
	service, _, _, pushSvc := createTestDeviceService(t, time.Now().UTC())

	pushSvc.EXPECT().IsConfigured().Return(false)

	removed, message, err := service.CleanupInvalidTokens(context.Background())

	require.NoError(t, err)
	assert.Equal(t, int64(0), removed)
	assert.Equal(t, "push provider not configured", message)
}

func TestDeviceService_CleanupInvalidTokens_NoneInvalid(t *testing.T) {
	service, deviceRepo, _, pushSvc := createTestDeviceService(t, time.Now().UTC())

	ctx := context.Background()

	pushSvc.EXPECT().IsConfigured().Return(true)
	deviceRepo.EXPECT().ListDevices(ctx, 0, 2).Return([]*entity.DeviceToken{
		{ID: uuid.New(), Token: "tok-1"},
		{ID: uuid.New(), Token: "tok-2"},
	}, nil)
	deviceRepo.EXPECT().ListDevices(ctx, 2, 2).Return([]*entity.DeviceToken{}, nil)

	pushSvc.EXPECT().ValidateToken(ctx, "tok-1").Return(true, nil)
	pushSvc.EXPECT().ValidateToken(ctx, "tok-2").Return(true, nil)

	removed, message, err := service.CleanupInvalidTokens(ctx)

	require.NoError(t, err)
	assert.Equal(t, int64(0), removed)
	assert.Equal(t, "no invalid tokens found", message)
}

func TestDeviceService_CleanupInvalidTokens_RemovesInvalidKeepsTransient(t *testing.T) {
	service, deviceRepo, _, pushSvc := createTestDeviceService(t, time.Now().UTC())

	ctx := context.Background()

	pushSvc.EXPECT().IsConfigured().Return(true)
	deviceRepo.EXPECT().ListDevices(ctx, 0, 2).Return([]*entity.DeviceToken{
		{ID: uuid.New(), Token: "valid"},
		{ID: uuid.New(), Token: "invalid"},
	}, nil)
	deviceRepo.EXPECT().ListDevices(ctx, 2, 2).Return([]*entity.DeviceToken{
		{ID: uuid.New(), Token: "flaky"},
	}, nil)
	deviceRepo.EXPECT().ListDevices(ctx, 3, 2).Return([]*entity.DeviceToken{}, nil)

	pushSvc.EXPECT().ValidateToken(ctx, "valid").Return(true, nil)
	pushSvc.EXPECT().ValidateToken(ctx, "invalid").Return(false, nil)
	// Transient provider errors keep the token for the next sweep.
	pushSvc.EXPECT().ValidateToken(ctx, "flaky").Return(false, errors.New("deadline exceeded"))

	deviceRepo.EXPECT().DeleteDevicesByToken(ctx, []string{"invalid"}).Return(int64(1), nil)

	removed, message, err := service.CleanupInvalidTokens(ctx)

	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)
	assert.Equal(t, "removed 1 invalid tokens", message)
}

func TestDeviceService_CleanupInvalidTokens_ListError(t *testing.T) {
	service, deviceRepo, _, pushSvc := createTestDeviceService(t, time.Now().UTC())

	ctx := context.Background()

	pushSvc.EXPECT().IsConfigured().Return(true)
	deviceRepo.EXPECT().ListDevices(ctx, 0, 2).Return(nil, errors.New("db error"))

	removed, message, err := service.CleanupInvalidTokens(ctx)

	assert.Error(t, err)
	assert.Equal(t, int64(0), removed)
	assert.Empty(t, message)
	deviceRepo.AssertNotCalled(t, "DeleteDevicesByToken", mock.Anything, mock.Anything)
}
