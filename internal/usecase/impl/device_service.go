package impl

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"quotecast/internal/domain/entity"
	domainerrors "quotecast/internal/domain/errors"
	"quotecast/internal/domain/repository"
	"quotecast/internal/domain/service"
	"quotecast/internal/errors"
	"quotecast/internal/usecase"

	"github.com/google/uuid"
)

// ErrEmptyToken is returned when a registration carries no token.
var ErrEmptyToken = errors.New("device token must not be empty")

type deviceService struct {
	deviceRepo repository.DeviceRepository
	userRepo   repository.UserRepository
	pushSvc    service.PushService
	clock      service.Clock
	logger     *slog.Logger
	scanBatch  int
}

// NewDeviceService creates a new device service instance
func NewDeviceService(
	deviceRepo repository.DeviceRepository,
	userRepo repository.UserRepository,
	pushSvc service.PushService,
	clock service.Clock,
	logger *slog.Logger,
	scanBatch int,
) usecase.DeviceUsecase {
	return &deviceService{
		deviceRepo: deviceRepo,
		userRepo:   userRepo,
		pushSvc:    pushSvc,
		clock:      clock,
		logger:     logger,
		scanBatch:  scanBatch,
	}
}

// RegisterDevice registers a push token or refreshes an existing
// registration's last_seen_at.
func (s *deviceService) RegisterDevice(ctx context.Context, userID uuid.UUID, platform, token string) (*entity.DeviceToken, error) {
	platform = strings.ToLower(strings.TrimSpace(platform))
	if !entity.ValidPlatform(platform) {
		return nil, domainerrors.ErrInvalidPlatform
	}

	token = strings.TrimSpace(token)
	if token == "" {
		return nil, ErrEmptyToken
	}

	if _, err := s.userRepo.FindUserByID(ctx, userID); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrUserNotFound
		}

		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	device := &entity.DeviceToken{
		UserID:   userID,
		Platform: platform,
		Token:    token,
	}
	if err := s.deviceRepo.UpsertDevice(ctx, device, s.clock.Now()); err != nil {
		return nil, fmt.Errorf("failed to upsert device: %w", err)
	}

	return device, nil
}

// ListDevices retrieves all registered tokens for a user.
func (s *deviceService) ListDevices(ctx context.Context, userID uuid.UUID) ([]*entity.DeviceToken, error) {
	devices, err := s.deviceRepo.FindDevicesByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to find devices by user: %w", err)
	}

	return devices, nil
}

// CleanupInvalidTokens validates every stored token and deletes the ones
// the provider reports permanently invalid. Tokens whose validation fails
// transiently are kept for the next sweep.
func (s *deviceService) CleanupInvalidTokens(ctx context.Context) (int64, string, error) {
	if !s.pushSvc.IsConfigured() {
		return 0, "push provider not configured", nil
	}

	var invalid []string
	offset := 0
	for {
		devices, err := s.deviceRepo.ListDevices(ctx, offset, s.scanBatch)
		if err != nil {
			return 0, "", fmt.Errorf("failed to list devices: %w", err)
		}
		if len(devices) == 0 {
			break
		}

		for _, device := range devices {
			valid, err := s.pushSvc.ValidateToken(ctx, device.Token)
			if err != nil {
				s.logger.WarnContext(ctx, "Token validation failed, keeping token",
					slog.String("device_id", device.ID.String()),
					slog.Any("error", err),
				)

				continue
			}
			if !valid {
				invalid = append(invalid, device.Token)
			}
		}

		offset += len(devices)
	}

	if len(invalid) == 0 {
		return 0, "no invalid tokens found", nil
	}

	removed, err := s.deviceRepo.DeleteDevicesByToken(ctx, invalid)
	if err != nil {
		return 0, "", fmt.Errorf("failed to delete invalid tokens: %w", err)
	}

	return removed, fmt.Sprintf("removed %d invalid tokens", removed), nil
}
