// Package postgres contains the concrete implementation of the persistence layer using GORM and PostgreSQL.
package postgres

import (
	"context"

	"quotecast/internal/domain/entity"
	"quotecast/internal/domain/repository"
	"quotecast/internal/infra/persistence/model"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// historyRepository implements the repository.HistoryRepository interface.
type historyRepository struct {
	db *gorm.DB
}

// NewHistoryRepository is the constructor for historyRepository.
func NewHistoryRepository(db *gorm.DB) repository.HistoryRepository {
	return &historyRepository{
		db: db,
	}
}

// RecordQuoteSent appends one history row. A duplicate (user, quote,
// sent_at) triple hits the unique constraint and is swallowed: the history
// already says what this insert would have said.
func (repo *historyRepository) RecordQuoteSent(ctx context.Context, record *entity.QuoteSentRecord) error {
	recordM := &model.QuoteSentRecordModel{
		ID:      record.ID,
		UserID:  record.UserID,
		QuoteID: record.QuoteID,
		SentAt:  record.SentAt,
	}

	if err := repo.db.WithContext(ctx).Create(recordM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return nil
		}

		return errors.Wrap(err, "failed to record quote sent")
	}

	record.ID = recordM.ID

	return nil
}
