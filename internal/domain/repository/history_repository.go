// Package repository defines the interfaces for the persistence layer.
package repository

import (
	"context"

	"quotecast/internal/domain/entity"
)

// HistoryRepository defines append access to the quote send log.
type HistoryRepository interface {
	// RecordQuoteSent appends one history row. Inserting a duplicate
	// (user, quote, sent_at) triple must succeed silently; the unique
	// constraint on the triple absorbs same-second replays.
	RecordQuoteSent(ctx context.Context, record *entity.QuoteSentRecord) error
}
