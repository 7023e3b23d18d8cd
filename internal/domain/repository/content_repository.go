// Package repository defines the interfaces for the persistence layer.
package repository

import (
	"context"

	"quotecast/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// Domain-specific errors for content persistence.
var (
	// ErrNoQuoteAvailable is returned when no quote matches the filter.
	ErrNoQuoteAvailable = errors.New("no quote available")
	// ErrNoArticleAvailable is returned when no article matches the filter.
	ErrNoArticleAvailable = errors.New("no article available")
)

// QuoteFilter narrows random quote selection. Zero values mean "no
// restriction" for that dimension.
type QuoteFilter struct {
	// CategoryIDs restricts selection to these categories when non-empty.
	CategoryIDs []uuid.UUID
	// UnseenByUser excludes quotes present in this user's full send
	// history when set.
	UnseenByUser *uuid.UUID
}

// ContentRepository defines read access to curated quotes and articles.
// Random picks must be uniform among candidates; the repository must not
// bias toward early rows.
type ContentRepository interface {
	// FindRandomQuote returns one active quote matching the filter,
	// chosen uniformly at random, or ErrNoQuoteAvailable.
	FindRandomQuote(ctx context.Context, filter QuoteFilter) (*entity.Quote, error)

	// FindRandomArticle returns one active article, restricted to the
	// category when categoryID is set, or ErrNoArticleAvailable.
	FindRandomArticle(ctx context.Context, categoryID *uuid.UUID) (*entity.Article, error)
}
