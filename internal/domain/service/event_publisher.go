package service

import "context"

// PreferenceEvent announces that a user's notification preferences changed
// and their pending schedule should be recomputed promptly.
type PreferenceEvent struct {
	RequestID string `json:"request_id,omitempty"` // For distributed tracing
	UserID    string `json:"user_id"`
}

// EventPublisher defines the interface for publishing events to a message
// queue.
type EventPublisher interface {
	// PublishPreferenceEvent publishes a preference-changed event for
	// async rescheduling.
	PublishPreferenceEvent(ctx context.Context, event *PreferenceEvent) error

	// Close releases any resources held by the publisher.
	Close() error
}
