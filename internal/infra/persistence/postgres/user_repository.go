// Package postgres contains the concrete implementation of the persistence layer using GORM and PostgreSQL.
package postgres

import (
	"context"

	"quotecast/internal/domain/entity"
	"quotecast/internal/domain/repository"
	"quotecast/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// userRepository implements the repository.UserRepository interface.
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository is the constructor for userRepository.
func NewUserRepository(db *gorm.DB) repository.UserRepository {
	return &userRepository{
		db: db,
	}
}

// FindUserByID retrieves a user by its unique ID.
func (repo *userRepository) FindUserByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	var userM model.UserModel

	if err := repo.db.WithContext(ctx).
		Where("id = ?", id).
		First(&userM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to find user by ID")
	}

	return toUserDomain(&userM), nil
}

// FindPreferenceByUserID retrieves the preference row owned by a user.
func (repo *userRepository) FindPreferenceByUserID(ctx context.Context, userID uuid.UUID) (*entity.UserPreference, error) {
	var prefM model.UserPreferenceModel

	if err := repo.db.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&prefM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrPreferenceNotFound
		}

		return nil, errors.Wrap(err, "failed to find preference by user ID")
	}

	return toPreferenceDomain(&prefM), nil
}

// UpsertPreference creates or replaces the preference row for a user.
func (repo *userRepository) UpsertPreference(ctx context.Context, pref *entity.UserPreference) error {
	prefM := fromPreferenceDomain(pref)

	if err := repo.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"timezone",
				"notifications_enabled",
				"notifications_per_day",
				"preferred_hours",
				"preferred_categories",
				"updated_at",
			}),
		}).
		Create(prefM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return repository.ErrUserNotFound
		}

		return errors.Wrap(err, "failed to upsert preference")
	}

	pref.ID = prefM.ID
	pref.CreatedAt = prefM.CreatedAt
	pref.UpdatedAt = prefM.UpdatedAt

	return nil
}

// ListEnabledUserIDs returns the IDs of all users whose preferences have
// notifications enabled.
func (repo *userRepository) ListEnabledUserIDs(ctx context.Context) ([]uuid.UUID, error) {
	var ids []uuid.UUID

	if err := repo.db.WithContext(ctx).
		Model(&model.UserPreferenceModel{}).
		Where("notifications_enabled = ?", true).
		Order("user_id").
		Pluck("user_id", &ids).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list enabled user IDs")
	}

	return ids, nil
}

// --- Mapper Functions ---

// toUserDomain converts a GORM UserModel to a domain User entity.
func toUserDomain(data *model.UserModel) *entity.User {
	if data == nil {
		return nil
	}

	return &entity.User{
		ID:          data.ID,
		Email:       data.Email,
		DisplayName: data.DisplayName,
		IsAdmin:     data.IsAdmin,
		CreatedAt:   data.CreatedAt,
		UpdatedAt:   data.UpdatedAt,
	}
}

// toPreferenceDomain converts a GORM UserPreferenceModel to a domain UserPreference entity.
func toPreferenceDomain(data *model.UserPreferenceModel) *entity.UserPreference {
	if data == nil {
		return nil
	}

	return &entity.UserPreference{
		ID:                   data.ID,
		UserID:               data.UserID,
		Timezone:             data.Timezone,
		NotificationsEnabled: data.NotificationsEnabled,
		NotificationsPerDay:  data.NotificationsPerDay,
		PreferredHours:       data.PreferredHours,
		PreferredCategories:  data.PreferredCategories,
		CreatedAt:            data.CreatedAt,
		UpdatedAt:            data.UpdatedAt,
	}
}

// fromPreferenceDomain converts a domain UserPreference entity to a GORM UserPreferenceModel.
func fromPreferenceDomain(data *entity.UserPreference) *model.UserPreferenceModel {
	if data == nil {
		return nil
	}

	return &model.UserPreferenceModel{
		ID:                   data.ID,
		UserID:               data.UserID,
		Timezone:             data.Timezone,
		NotificationsEnabled: data.NotificationsEnabled,
		NotificationsPerDay:  data.NotificationsPerDay,
		PreferredHours:       data.PreferredHours,
		PreferredCategories:  data.PreferredCategories,
		CreatedAt:            data.CreatedAt,
		UpdatedAt:            data.UpdatedAt,
	}
}
