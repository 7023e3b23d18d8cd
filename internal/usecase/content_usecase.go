package usecase

import (
	"context"
	"time"

	"quotecast/internal/domain/entity"

	"github.com/google/uuid"
)

// ContentUsecase defines the interface for notification content selection.
//
// Quote selection degrades through a fixed ladder instead of failing when
// the preferred pool is exhausted: preferred categories and unseen first,
// then preferred categories, then any unseen, then any active quote.
type ContentUsecase interface {
	// SelectQuote picks one active quote for the user, honoring preferred
	// categories and the user's full send history as far as the catalog
	// allows. Returns repository.ErrNoQuoteAvailable only when no active
	// quote exists at all.
	SelectQuote(ctx context.Context, userID uuid.UUID, preferredCategories []uuid.UUID) (*entity.Quote, error)

	// SelectArticle picks an active article to pair with the quote,
	// preferring the quote's category before falling back to any category.
	SelectArticle(ctx context.Context, quote *entity.Quote) (*entity.Article, error)

	// RecordSent appends the quote to the user's send history. Duplicate
	// (user, quote, sent_at) records are tolerated.
	RecordSent(ctx context.Context, userID, quoteID uuid.UUID, sentAt time.Time) error
}
