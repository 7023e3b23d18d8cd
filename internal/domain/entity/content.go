// Package entity contains the core business objects of the project.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// Category groups quotes and articles by theme.
type Category struct {
	ID        uuid.UUID `json:"id"`         // The Global Unique Identifier (GUID) for the category.
	Name      string    `json:"name"`       // Display name of the category.
	IsActive  bool      `json:"is_active"`  // Inactive categories are hidden from selection.
	CreatedAt time.Time `json:"created_at"` // Timestamp of when this record was created.
	UpdatedAt time.Time `json:"updated_at"` // Timestamp of the last modification.
}

// Quote is a curated quotation sent in the notification body.
// Read-only from the scheduling core's perspective.
type Quote struct {
	ID         uuid.UUID `json:"id"`          // The Global Unique Identifier (GUID) for the quote.
	CategoryID uuid.UUID `json:"category_id"` // The category this quote belongs to.
	Text       string    `json:"text"`        // The quotation text.
	Author     string    `json:"author"`      // Attributed author of the quotation.
	IsActive   bool      `json:"is_active"`   // Inactive quotes are excluded from selection.
	CreatedAt  time.Time `json:"created_at"`  // Timestamp of when this record was created.
	UpdatedAt  time.Time `json:"updated_at"`  // Timestamp of the last modification.
}

// Article is a curated reading reference paired with a quote.
type Article struct {
	ID         uuid.UUID `json:"id"`          // The Global Unique Identifier (GUID) for the article.
	CategoryID uuid.UUID `json:"category_id"` // The category this article belongs to.
	Title      string    `json:"title"`       // Title shown in the notification payload.
	Reference  string    `json:"reference"`   // URL or citation for the article.
	IsActive   bool      `json:"is_active"`   // Inactive articles are excluded from selection.
	CreatedAt  time.Time `json:"created_at"`  // Timestamp of when this record was created.
	UpdatedAt  time.Time `json:"updated_at"`  // Timestamp of the last modification.
}
