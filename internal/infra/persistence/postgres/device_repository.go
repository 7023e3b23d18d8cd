// Package postgres contains the concrete implementation of the persistence layer using GORM and PostgreSQL.
package postgres

import (
	"context"
	"time"

	"quotecast/internal/domain/entity"
	"quotecast/internal/domain/repository"
	"quotecast/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// deviceRepository implements the repository.DeviceRepository interface.
type deviceRepository struct {
	db *gorm.DB
}

// NewDeviceRepository is the constructor for deviceRepository.
func NewDeviceRepository(db *gorm.DB) repository.DeviceRepository {
	return &deviceRepository{
		db: db,
	}
}

// UpsertDevice creates the token row or, when (user, platform, token)
// already exists, refreshes its last_seen_at.
func (repo *deviceRepository) UpsertDevice(ctx context.Context, device *entity.DeviceToken, seenAt time.Time) error {
	deviceM := fromDeviceDomain(device)
	deviceM.LastSeenAt = seenAt

	if err := repo.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{
				{Name: "user_id"},
				{Name: "platform"},
				{Name: "token"},
			},
			DoUpdates: clause.AssignmentColumns([]string{"last_seen_at", "updated_at"}),
		}).
		Create(deviceM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return repository.ErrUserNotFound
		}

		return errors.Wrap(err, "failed to upsert device token")
	}

	device.ID = deviceM.ID
	device.LastSeenAt = deviceM.LastSeenAt
	device.CreatedAt = deviceM.CreatedAt
	device.UpdatedAt = deviceM.UpdatedAt

	return nil
}

// FindDevicesByUser retrieves all registered tokens for a user.
func (repo *deviceRepository) FindDevicesByUser(ctx context.Context, userID uuid.UUID) ([]*entity.DeviceToken, error) {
	var deviceMs []model.DeviceTokenModel

	if err := repo.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&deviceMs).Error; err != nil {
		return nil, errors.Wrap(err, "failed to find devices by user")
	}

	return toDeviceDomains(deviceMs), nil
}

// ListDevices pages through every stored token, ordered by creation.
func (repo *deviceRepository) ListDevices(ctx context.Context, offset, limit int) ([]*entity.DeviceToken, error) {
	var deviceMs []model.DeviceTokenModel

	query := repo.db.WithContext(ctx).Order("created_at ASC, id ASC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	if err := query.Find(&deviceMs).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list devices")
	}

	return toDeviceDomains(deviceMs), nil
}

// DeleteDevice removes a token row by its ID.
func (repo *deviceRepository) DeleteDevice(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&model.DeviceTokenModel{})
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to delete device token")
	}

	if result.RowsAffected == 0 {
		return repository.ErrDeviceNotFound
	}

	return nil
}

// DeleteDevicesByToken removes every row carrying one of the given raw
// token strings, across all users and platforms.
func (repo *deviceRepository) DeleteDevicesByToken(ctx context.Context, tokens []string) (int64, error) {
	if len(tokens) == 0 {
		return 0, nil
	}

	result := repo.db.WithContext(ctx).
		Where("token IN ?", tokens).
		Delete(&model.DeviceTokenModel{})
	if result.Error != nil {
		return 0, errors.Wrap(result.Error, "failed to delete device tokens")
	}

	return result.RowsAffected, nil
}

// --- Mapper Functions ---

// toDeviceDomain converts a GORM DeviceTokenModel to a domain DeviceToken entity.
func toDeviceDomain(data *model.DeviceTokenModel) *entity.DeviceToken {
	if data == nil {
		return nil
	}

	return &entity.DeviceToken{
		ID:         data.ID,
		UserID:     data.UserID,
		Platform:   data.Platform,
		Token:      data.Token,
		LastSeenAt: data.LastSeenAt,
		CreatedAt:  data.CreatedAt,
		UpdatedAt:  data.UpdatedAt,
	}
}

func toDeviceDomains(data []model.DeviceTokenModel) []*entity.DeviceToken {
	devices := make([]*entity.DeviceToken, 0, len(data))
	for i := range data {
		devices = append(devices, toDeviceDomain(&data[i]))
	}

	return devices
}

// fromDeviceDomain converts a domain DeviceToken entity to a GORM DeviceTokenModel.
func fromDeviceDomain(data *entity.DeviceToken) *model.DeviceTokenModel {
	if data == nil {
		return nil
	}

	return &model.DeviceTokenModel{
		ID:         data.ID,
		UserID:     data.UserID,
		Platform:   data.Platform,
		Token:      data.Token,
		LastSeenAt: data.LastSeenAt,
		CreatedAt:  data.CreatedAt,
		UpdatedAt:  data.UpdatedAt,
	}
}
