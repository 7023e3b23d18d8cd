// Package service defines interfaces for external capabilities consumed by
// the usecase layer.
package service

import "context"

// PushReport summarizes one multicast push attempt.
type PushReport struct {
	// Delivered is the number of tokens the provider accepted.
	Delivered int
	// Failed is the number of tokens the provider rejected for any reason.
	Failed int
	// InvalidTokens lists tokens the provider reports as permanently
	// invalid (unregistered app instance). These must be pruned.
	InvalidTokens []string
	// FirstError carries the provider's first per-token error message, for
	// recording on the delivery row when every token failed.
	FirstError string
}

// AllFailed reports whether no token accepted the message.
func (r *PushReport) AllFailed() bool {
	return r.Delivered == 0
}

// PushService defines the interface for the push-notification provider.
type PushService interface {
	// IsConfigured reports whether the provider has working credentials.
	// When false, no method performs network calls.
	IsConfigured() bool

	// SendToTokens pushes one message to every token and returns the
	// per-token outcome summary.
	SendToTokens(ctx context.Context, tokens []string, title, body string, data map[string]string) (*PushReport, error)

	// ValidateToken checks a single token against the provider without
	// delivering anything (dry run). Returns false when the provider
	// reports the token as permanently invalid.
	ValidateToken(ctx context.Context, token string) (bool, error)
}
