// Package push implements the push-notification provider on Firebase Cloud
// Messaging.
package push

import (
	"context"
	"log/slog"

	"quotecast/config"
	"quotecast/internal/domain/service"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"github.com/pkg/errors"
	"go.uber.org/fx"
	"google.golang.org/api/option"
)

// Firebase rejects multicast requests above this many tokens.
const maxMulticastTokens = 500

type firebaseService struct {
	client *messaging.Client
	logger *slog.Logger
}

// Params holds dependencies for the push service, injected by Fx.
type Params struct {
	fx.In

	Ctx    context.Context
	Config *config.Config
	Logger *slog.Logger
}

// New creates the push service from configuration. When Firebase
// credentials are absent the returned service reports unconfigured and
// performs no network calls, letting callers skip push work cleanly.
func New(params Params) (service.PushService, error) {
	cfg := params.Config.Firebase
	if cfg == nil || cfg.CredentialsPath == "" {
		params.Logger.Warn("Firebase not configured, push delivery disabled")

		return &unconfiguredService{}, nil
	}

	opt := option.WithCredentialsFile(cfg.CredentialsPath)
	app, err := firebase.NewApp(params.Ctx, &firebase.Config{ProjectID: cfg.ProjectID}, opt)
	if err != nil {
		return nil, errors.Wrap(err, "failed to initialize Firebase app")
	}

	client, err := app.Messaging(params.Ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get messaging client")
	}

	return &firebaseService{
		client: client,
		logger: params.Logger,
	}, nil
}

// IsConfigured always reports true for the real client.
func (s *firebaseService) IsConfigured() bool {
	return true
}

// SendToTokens pushes one message to every token via multicast and
// classifies the per-token outcomes.
func (s *firebaseService) SendToTokens(ctx context.Context, tokens []string, title, body string, data map[string]string) (*service.PushReport, error) {
	if len(tokens) == 0 {
		return &service.PushReport{}, nil
	}
	if len(tokens) > maxMulticastTokens {
		return nil, errors.Errorf("token count exceeds limit: %d (max %d)", len(tokens), maxMulticastTokens)
	}

	message := &messaging.MulticastMessage{
		Tokens: tokens,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data: data,
	}

	response, err := s.client.SendEachForMulticast(ctx, message)
	if err != nil {
		return nil, errors.Wrap(err, "failed to send multicast notification")
	}

	report := &service.PushReport{
		Delivered:     response.SuccessCount,
		Failed:        response.FailureCount,
		InvalidTokens: make([]string, 0),
	}

	for idx, sendResponse := range response.Responses {
		if sendResponse.Error == nil {
			continue
		}
		if report.FirstError == "" {
			report.FirstError = sendResponse.Error.Error()
		}
		if messaging.IsInvalidArgument(sendResponse.Error) ||
			messaging.IsUnregistered(sendResponse.Error) {
			report.InvalidTokens = append(report.InvalidTokens, tokens[idx])
		}
	}

	return report, nil
}

// ValidateToken checks a token with a dry-run send. A permanently invalid
// token yields (false, nil); transient provider failures yield an error so
// the caller does not treat the token as bad.
func (s *firebaseService) ValidateToken(ctx context.Context, token string) (bool, error) {
	message := &messaging.Message{
		Token: token,
		Data:  map[string]string{"probe": "1"},
	}

	_, err := s.client.SendDryRun(ctx, message)
	if err != nil {
		if messaging.IsInvalidArgument(err) || messaging.IsUnregistered(err) {
			return false, nil
		}

		return false, errors.Wrap(err, "failed to validate token")
	}

	return true, nil
}

// unconfiguredService is the stand-in when no Firebase credentials exist.
type unconfiguredService struct{}

func (s *unconfiguredService) IsConfigured() bool {
	return false
}

func (s *unconfiguredService) SendToTokens(_ context.Context, _ []string, _, _ string, _ map[string]string) (*service.PushReport, error) {
	return nil, errors.New("push provider not configured")
}

func (s *unconfiguredService) ValidateToken(_ context.Context, _ string) (bool, error) {
	return false, errors.New("push provider not configured")
}
