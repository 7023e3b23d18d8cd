// Package entity contains the core business objects of the project.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// QuoteSentRecord is one append-only log entry marking that a quote was
// delivered to a user. Selection excludes quotes present in the user's
// full history. Unique per (user_id, quote_id, sent_at).
type QuoteSentRecord struct {
	ID      uuid.UUID `json:"id"`       // The Global Unique Identifier (GUID) for the record.
	UserID  uuid.UUID `json:"user_id"`  // The ID of the user who received the quote.
	QuoteID uuid.UUID `json:"quote_id"` // The ID of the quote that was sent.
	SentAt  time.Time `json:"sent_at"`  // UTC timestamp of the delivery.
}
