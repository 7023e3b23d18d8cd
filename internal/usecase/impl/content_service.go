package impl

import (
	"context"
	"fmt"
	"time"

	"quotecast/internal/domain/entity"
	"quotecast/internal/domain/repository"
	"quotecast/internal/errors"
	"quotecast/internal/usecase"

	"github.com/google/uuid"
)

type contentService struct {
	contentRepo repository.ContentRepository
	historyRepo repository.HistoryRepository
}

// NewContentService creates a new content selection service instance
func NewContentService(
	contentRepo repository.ContentRepository,
	historyRepo repository.HistoryRepository,
) usecase.ContentUsecase {
	return &contentService{
		contentRepo: contentRepo,
		historyRepo: historyRepo,
	}
}

// SelectQuote walks the degradation ladder until a rung yields a quote.
// Only an empty active catalog exhausts every rung.
func (s *contentService) SelectQuote(ctx context.Context, userID uuid.UUID, preferredCategories []uuid.UUID) (*entity.Quote, error) {
	filters := []repository.QuoteFilter{
		{CategoryIDs: preferredCategories, UnseenByUser: &userID},
		{CategoryIDs: preferredCategories},
		{UnseenByUser: &userID},
		{},
	}

	var lastErr error
	for _, filter := range filters {
		quote, err := s.contentRepo.FindRandomQuote(ctx, filter)
		if err == nil {
			return quote, nil
		}
		if !errors.Is(err, repository.ErrNoQuoteAvailable) {
			return nil, fmt.Errorf("failed to find random quote: %w", err)
		}
		lastErr = err
	}

	return nil, lastErr
}

// SelectArticle prefers the quote's category, then any active article.
func (s *contentService) SelectArticle(ctx context.Context, quote *entity.Quote) (*entity.Article, error) {
	article, err := s.contentRepo.FindRandomArticle(ctx, &quote.CategoryID)
	if err == nil {
		return article, nil
	}
	if !errors.Is(err, repository.ErrNoArticleAvailable) {
		return nil, fmt.Errorf("failed to find random article: %w", err)
	}

	article, err = s.contentRepo.FindRandomArticle(ctx, nil)
	if err != nil {
		if errors.Is(err, repository.ErrNoArticleAvailable) {
			return nil, err
		}

		return nil, fmt.Errorf("failed to find random article: %w", err)
	}

	return article, nil
}

// RecordSent appends the quote to the user's send history.
func (s *contentService) RecordSent(ctx context.Context, userID, quoteID uuid.UUID, sentAt time.Time) error {
	record := &entity.QuoteSentRecord{
		UserID:  userID,
		QuoteID: quoteID,
		SentAt:  sentAt,
	}

	if err := s.historyRepo.RecordQuoteSent(ctx, record); err != nil {
		return fmt.Errorf("failed to record quote sent: %w", err)
	}

	return nil
}
