// Package entity contains the core business objects of the project.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// DeliveryStatus is the lifecycle state of a notification delivery.
// pending is the only creatable state; sent and failed are terminal.
type DeliveryStatus string

const (
	DeliveryStatusPending DeliveryStatus = "pending"
	DeliveryStatusSent    DeliveryStatus = "sent"
	DeliveryStatusFailed  DeliveryStatus = "failed"
)

// Terminal reports whether no further transition may leave this status.
func (s DeliveryStatus) Terminal() bool {
	return s == DeliveryStatusSent || s == DeliveryStatusFailed
}

// CanTransitionTo reports whether the state machine permits moving from s
// to next. Only pending -> sent and pending -> failed are legal.
func (s DeliveryStatus) CanTransitionTo(next DeliveryStatus) bool {
	return s == DeliveryStatusPending && next.Terminal()
}

// DeliveryPayload is the audited content actually pushed to the user's
// devices, persisted on the delivery row for history display.
type DeliveryPayload struct {
	QuoteID          uuid.UUID `json:"quote_id"`
	QuoteText        string    `json:"quote_text"`
	QuoteAuthor      string    `json:"quote_author,omitempty"`
	ArticleID        uuid.UUID `json:"article_id"`
	ArticleTitle     string    `json:"article_title"`
	ArticleReference string    `json:"article_reference,omitempty"`
}

// NotificationDelivery is one scheduled notification attempt for one user
// at one timestamp.
//
// Invariants: SentAt is set iff Status is sent; ScheduledAt must never be
// nil or before the Unix epoch. A row violating the ScheduledAt invariant
// is a detectable anomaly handled only by maintenance tooling and excluded
// from dispatch queries.
type NotificationDelivery struct {
	ID           uuid.UUID        `json:"id"`                      // The Global Unique Identifier (GUID) for the delivery.
	UserID       uuid.UUID        `json:"user_id"`                 // The ID of the user this delivery targets.
	QuoteID      *uuid.UUID       `json:"quote_id,omitempty"`      // The quote sent, set on successful dispatch.
	ArticleID    *uuid.UUID       `json:"article_id,omitempty"`    // The article sent, set on successful dispatch.
	ScheduledAt  *time.Time       `json:"scheduled_at"`            // UTC timestamp the delivery becomes due. Nullable in storage so corruption stays detectable.
	SentAt       *time.Time       `json:"sent_at,omitempty"`       // UTC timestamp of successful dispatch.
	Status       DeliveryStatus   `json:"status"`                  // pending, sent or failed.
	ErrorMessage string           `json:"error_message,omitempty"` // Human-readable failure reason when Status is failed.
	Payload      *DeliveryPayload `json:"payload,omitempty"`       // Audit copy of the pushed content.
	CreatedAt    time.Time        `json:"created_at"`              // Timestamp of when this record was created.
	UpdatedAt    time.Time        `json:"updated_at"`              // Timestamp of the last modification.
}

// ScheduledAtValid reports whether the row carries a usable schedule
// timestamp (non-null and not before the epoch).
func (d *NotificationDelivery) ScheduledAtValid() bool {
	return d.ScheduledAt != nil && !d.ScheduledAt.Before(time.Unix(0, 0))
}
