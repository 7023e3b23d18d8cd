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
)

// deliveryRepository implements the repository.DeliveryRepository interface.
type deliveryRepository struct {
	db *gorm.DB
}

// NewDeliveryRepository is the constructor for deliveryRepository.
func NewDeliveryRepository(db *gorm.DB) repository.DeliveryRepository {
	return &deliveryRepository{
		db: db,
	}
}

// CreateDelivery inserts a new delivery in pending state.
func (repo *deliveryRepository) CreateDelivery(ctx context.Context, delivery *entity.NotificationDelivery) error {
	deliveryM := fromDeliveryDomain(delivery)
	deliveryM.Status = string(entity.DeliveryStatusPending)

	if err := repo.db.WithContext(ctx).Create(deliveryM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return repository.ErrUserNotFound
		}

		return errors.Wrap(err, "failed to create delivery")
	}

	delivery.ID = deliveryM.ID
	delivery.Status = entity.DeliveryStatusPending
	delivery.CreatedAt = deliveryM.CreatedAt
	delivery.UpdatedAt = deliveryM.UpdatedAt

	return nil
}

// FindDeliveryByID retrieves a delivery by its unique ID.
func (repo *deliveryRepository) FindDeliveryByID(ctx context.Context, id uuid.UUID) (*entity.NotificationDelivery, error) {
	var deliveryM model.NotificationDeliveryModel

	if err := repo.db.WithContext(ctx).
		Where("id = ?", id).
		First(&deliveryM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrDeliveryNotFound
		}

		return nil, errors.Wrap(err, "failed to find delivery by ID")
	}

	return toDeliveryDomain(&deliveryM), nil
}

// ExistsActiveAt reports whether a pending or sent delivery already exists
// for the user at exactly scheduledAt. Failed rows do not count, so a
// rescheduling pass can fill the slot again.
func (repo *deliveryRepository) ExistsActiveAt(ctx context.Context, userID uuid.UUID, scheduledAt time.Time) (bool, error) {
	var count int64

	if err := repo.db.WithContext(ctx).
		Model(&model.NotificationDeliveryModel{}).
		Where("user_id = ? AND scheduled_at = ? AND status IN ?",
			userID,
			scheduledAt,
			[]string{string(entity.DeliveryStatusPending), string(entity.DeliveryStatusSent)},
		).
		Count(&count).Error; err != nil {
		return false, errors.Wrap(err, "failed to check delivery existence")
	}

	return count > 0, nil
}

// FindDuePending returns pending deliveries whose scheduled_at has passed,
// oldest first. Rows with a null or pre-epoch scheduled_at are corrupt and
// left for the maintenance tooling.
func (repo *deliveryRepository) FindDuePending(ctx context.Context, now time.Time, limit int) ([]*entity.NotificationDelivery, error) {
	var deliveryMs []model.NotificationDeliveryModel

	query := repo.db.WithContext(ctx).
		Where("status = ?", string(entity.DeliveryStatusPending)).
		Where("scheduled_at IS NOT NULL").
		Where("scheduled_at >= ?", time.Unix(0, 0)).
		Where("scheduled_at <= ?", now).
		Order("scheduled_at ASC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	if err := query.Find(&deliveryMs).Error; err != nil {
		return nil, errors.Wrap(err, "failed to find due pending deliveries")
	}

	return toDeliveryDomains(deliveryMs), nil
}

// MarkSent transitions pending -> sent with a conditional update. The
// status guard in the WHERE clause is what makes concurrent dispatchers
// safe: only one update can match the pending row.
func (repo *deliveryRepository) MarkSent(ctx context.Context, id uuid.UUID, update repository.SentUpdate) error {
	result := repo.db.WithContext(ctx).
		Model(&model.NotificationDeliveryModel{}).
		Where("id = ? AND status = ?", id, string(entity.DeliveryStatusPending)).
		Updates(map[string]any{
			"status":     string(entity.DeliveryStatusSent),
			"quote_id":   update.QuoteID,
			"article_id": update.ArticleID,
			"sent_at":    update.SentAt,
			"payload":    update.Payload,
		})
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to mark delivery sent")
	}

	if result.RowsAffected == 0 {
		return repository.ErrDeliveryStateConflict
	}

	return nil
}

// MarkFailed transitions pending -> failed, recording the reason. Uses the
// same status guard as MarkSent.
func (repo *deliveryRepository) MarkFailed(ctx context.Context, id uuid.UUID, reason string) error {
	result := repo.db.WithContext(ctx).
		Model(&model.NotificationDeliveryModel{}).
		Where("id = ? AND status = ?", id, string(entity.DeliveryStatusPending)).
		Updates(map[string]any{
			"status":        string(entity.DeliveryStatusFailed),
			"error_message": reason,
		})
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to mark delivery failed")
	}

	if result.RowsAffected == 0 {
		return repository.ErrDeliveryStateConflict
	}

	return nil
}

// FindInvalid returns deliveries carrying a null or pre-epoch scheduled_at.
func (repo *deliveryRepository) FindInvalid(ctx context.Context) ([]*entity.NotificationDelivery, error) {
	var deliveryMs []model.NotificationDeliveryModel

	if err := repo.db.WithContext(ctx).
		Where("scheduled_at IS NULL OR scheduled_at < ?", time.Unix(0, 0)).
		Order("created_at ASC").
		Find(&deliveryMs).Error; err != nil {
		return nil, errors.Wrap(err, "failed to find invalid deliveries")
	}

	return toDeliveryDomains(deliveryMs), nil
}

// DeleteByIDs removes delivery rows by ID.
func (repo *deliveryRepository) DeleteByIDs(ctx context.Context, ids []uuid.UUID) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	result := repo.db.WithContext(ctx).
		Where("id IN ?", ids).
		Delete(&model.NotificationDeliveryModel{})
	if result.Error != nil {
		return 0, errors.Wrap(result.Error, "failed to delete deliveries")
	}

	return result.RowsAffected, nil
}

// ListByUser returns a user's deliveries, newest schedule first. Rows with
// a null scheduled_at sort last.
func (repo *deliveryRepository) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.NotificationDelivery, error) {
	var deliveryMs []model.NotificationDeliveryModel

	query := repo.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("scheduled_at DESC NULLS LAST")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	if err := query.Find(&deliveryMs).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list deliveries by user")
	}

	return toDeliveryDomains(deliveryMs), nil
}

// --- Mapper Functions ---

// toDeliveryDomain converts a GORM NotificationDeliveryModel to a domain entity.
func toDeliveryDomain(data *model.NotificationDeliveryModel) *entity.NotificationDelivery {
	if data == nil {
		return nil
	}

	return &entity.NotificationDelivery{
		ID:           data.ID,
		UserID:       data.UserID,
		QuoteID:      data.QuoteID,
		ArticleID:    data.ArticleID,
		ScheduledAt:  data.ScheduledAt,
		SentAt:       data.SentAt,
		Status:       entity.DeliveryStatus(data.Status),
		ErrorMessage: data.ErrorMessage,
		Payload:      data.Payload,
		CreatedAt:    data.CreatedAt,
		UpdatedAt:    data.UpdatedAt,
	}
}

func toDeliveryDomains(data []model.NotificationDeliveryModel) []*entity.NotificationDelivery {
	deliveries := make([]*entity.NotificationDelivery, 0, len(data))
	for i := range data {
		deliveries = append(deliveries, toDeliveryDomain(&data[i]))
	}

	return deliveries
}

// fromDeliveryDomain converts a domain entity to a GORM NotificationDeliveryModel.
func fromDeliveryDomain(data *entity.NotificationDelivery) *model.NotificationDeliveryModel {
	if data == nil {
		return nil
	}

	return &model.NotificationDeliveryModel{
		ID:           data.ID,
		UserID:       data.UserID,
		QuoteID:      data.QuoteID,
		ArticleID:    data.ArticleID,
		ScheduledAt:  data.ScheduledAt,
		SentAt:       data.SentAt,
		Status:       string(data.Status),
		ErrorMessage: data.ErrorMessage,
		Payload:      data.Payload,
		CreatedAt:    data.CreatedAt,
		UpdatedAt:    data.UpdatedAt,
	}
}
