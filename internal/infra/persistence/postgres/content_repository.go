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
)

// contentRepository implements the repository.ContentRepository interface.
type contentRepository struct {
	db *gorm.DB
}

// NewContentRepository is the constructor for contentRepository.
func NewContentRepository(db *gorm.DB) repository.ContentRepository {
	return &contentRepository{
		db: db,
	}
}

// FindRandomQuote returns one active quote matching the filter. The pick is
// delegated to PostgreSQL's RANDOM() so it stays uniform over the candidate
// set regardless of row order.
func (repo *contentRepository) FindRandomQuote(ctx context.Context, filter repository.QuoteFilter) (*entity.Quote, error) {
	var quoteM model.QuoteModel

	query := repo.db.WithContext(ctx).
		Where("is_active = ?", true)

	if len(filter.CategoryIDs) > 0 {
		query = query.Where("category_id IN ?", filter.CategoryIDs)
	}

	if filter.UnseenByUser != nil {
		seen := repo.db.
			Model(&model.QuoteSentRecordModel{}).
			Select("quote_id").
			Where("user_id = ?", *filter.UnseenByUser)
		query = query.Where("id NOT IN (?)", seen)
	}

	if err := query.
		Order("RANDOM()").
		First(&quoteM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrNoQuoteAvailable
		}

		return nil, errors.Wrap(err, "failed to find random quote")
	}

	return toQuoteDomain(&quoteM), nil
}

// FindRandomArticle returns one active article, restricted to the category
// when categoryID is set.
func (repo *contentRepository) FindRandomArticle(ctx context.Context, categoryID *uuid.UUID) (*entity.Article, error) {
	var articleM model.ArticleModel

	query := repo.db.WithContext(ctx).
		Where("is_active = ?", true)

	if categoryID != nil {
		query = query.Where("category_id = ?", *categoryID)
	}

	if err := query.
		Order("RANDOM()").
		First(&articleM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrNoArticleAvailable
		}

		return nil, errors.Wrap(err, "failed to find random article")
	}

	return toArticleDomain(&articleM), nil
}

// --- Mapper Functions ---

// toQuoteDomain converts a GORM QuoteModel to a domain Quote entity.
func toQuoteDomain(data *model.QuoteModel) *entity.Quote {
	if data == nil {
		return nil
	}

	return &entity.Quote{
		ID:         data.ID,
		CategoryID: data.CategoryID,
		Text:       data.Text,
		Author:     data.Author,
		IsActive:   data.IsActive,
		CreatedAt:  data.CreatedAt,
		UpdatedAt:  data.UpdatedAt,
	}
}

// toArticleDomain converts a GORM ArticleModel to a domain Article entity.
func toArticleDomain(data *model.ArticleModel) *entity.Article {
	if data == nil {
		return nil
	}

	return &entity.Article{
		ID:         data.ID,
		CategoryID: data.CategoryID,
		Title:      data.Title,
		Reference:  data.Reference,
		IsActive:   data.IsActive,
		CreatedAt:  data.CreatedAt,
		UpdatedAt:  data.UpdatedAt,
	}
}
