package impl

import (
	"context"
	"fmt"
	"log/slog"

	"quotecast/internal/domain/entity"
	"quotecast/internal/domain/repository"
	"quotecast/internal/domain/service"
	"quotecast/internal/errors"
	"quotecast/internal/usecase"

	"github.com/google/uuid"
)

// Failure reasons recorded on the delivery row.
const (
	failureUserNotFound    = "user not found"
	failureDisabled        = "notifications disabled"
	failureNoContent       = "no content available"
	failureNoDeviceTokens  = "no device tokens registered"
	failureAllTokensFailed = "push rejected by all device tokens"
)

type dispatchOutcome int

const (
	outcomeSkipped dispatchOutcome = iota
	outcomeSent
	outcomeFailed
)

type dispatchService struct {
	deliveryRepo repository.DeliveryRepository
	userRepo     repository.UserRepository
	deviceRepo   repository.DeviceRepository
	contentUC    usecase.ContentUsecase
	pushSvc      service.PushService
	txManager    repository.TransactionManager
	clock        service.Clock
	logger       *slog.Logger
	batchSize    int
	pushTitle    string
}

// NewDispatchService creates a new dispatch service instance
func NewDispatchService(
	deliveryRepo repository.DeliveryRepository,
	userRepo repository.UserRepository,
	deviceRepo repository.DeviceRepository,
	contentUC usecase.ContentUsecase,
	pushSvc service.PushService,
	txManager repository.TransactionManager,
	clock service.Clock,
	logger *slog.Logger,
	batchSize int,
	pushTitle string,
) usecase.DispatchUsecase {
	return &dispatchService{
		deliveryRepo: deliveryRepo,
		userRepo:     userRepo,
		deviceRepo:   deviceRepo,
		contentUC:    contentUC,
		pushSvc:      pushSvc,
		txManager:    txManager,
		clock:        clock,
		logger:       logger,
		batchSize:    batchSize,
		pushTitle:    pushTitle,
	}
}

// DispatchDue processes every due pending delivery independently.
func (s *dispatchService) DispatchDue(ctx context.Context) (*usecase.DispatchSummary, error) {
	summary := &usecase.DispatchSummary{}

	// An unconfigured provider is a deployment condition, not a per-row
	// failure: skip the cycle without touching any delivery.
	if !s.pushSvc.IsConfigured() {
		s.logger.WarnContext(ctx, "Push provider not configured, skipping dispatch cycle")

		return summary, nil
	}

	deliveries, err := s.deliveryRepo.FindDuePending(ctx, s.clock.Now(), s.batchSize)
	if err != nil {
		return nil, fmt.Errorf("failed to find due deliveries: %w", err)
	}

	for _, delivery := range deliveries {
		outcome := s.dispatchRecovered(ctx, delivery.ID)
		summary.Processed++
		switch outcome {
		case outcomeSent:
			summary.Sent++
		case outcomeFailed:
			summary.Failed++
		case outcomeSkipped:
			summary.Skipped++
		}
	}

	return summary, nil
}

// DispatchDelivery pushes one delivery. Dispatch errors are absorbed into
// the delivery row; the returned error is always nil unless the context is
// unusable.
func (s *dispatchService) DispatchDelivery(ctx context.Context, id uuid.UUID) error {
	s.dispatchRecovered(ctx, id)

	return nil
}

// dispatchRecovered runs the guard chain and converts every error, panic
// included, into a terminal row state.
func (s *dispatchService) dispatchRecovered(ctx context.Context, id uuid.UUID) (outcome dispatchOutcome) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.ErrorContext(ctx, "Dispatch panicked",
				slog.String("delivery_id", id.String()),
				slog.Any("panic", r),
			)
			outcome = s.markFailed(ctx, id, fmt.Sprintf("dispatch panicked: %v", r))
		}
	}()

	outcome, err := s.dispatch(ctx, id)
	if err != nil {
		s.logger.ErrorContext(ctx, "Dispatch failed",
			slog.String("delivery_id", id.String()),
			slog.Any("error", err),
		)

		return s.markFailed(ctx, id, err.Error())
	}

	return outcome
}

// dispatch walks the guard chain for one delivery.
func (s *dispatchService) dispatch(ctx context.Context, id uuid.UUID) (dispatchOutcome, error) {
	delivery, err := s.deliveryRepo.FindDeliveryByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrDeliveryNotFound) {
			return outcomeSkipped, nil
		}

		return outcomeSkipped, fmt.Errorf("failed to fetch delivery: %w", err)
	}

	// Another dispatcher already landed this row.
	if delivery.Status != entity.DeliveryStatusPending {
		return outcomeSkipped, nil
	}

	if _, err := s.userRepo.FindUserByID(ctx, delivery.UserID); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return s.markFailed(ctx, id, failureUserNotFound), nil
		}

		return outcomeSkipped, fmt.Errorf("failed to fetch user: %w", err)
	}

	pref, err := s.userRepo.FindPreferenceByUserID(ctx, delivery.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrPreferenceNotFound) {
			return s.markFailed(ctx, id, failureDisabled), nil
		}

		return outcomeSkipped, fmt.Errorf("failed to fetch preference: %w", err)
	}
	if !pref.NotificationsEnabled {
		return s.markFailed(ctx, id, failureDisabled), nil
	}

	quote, err := s.contentUC.SelectQuote(ctx, delivery.UserID, pref.PreferredCategories)
	if err != nil {
		if errors.Is(err, repository.ErrNoQuoteAvailable) {
			return s.markFailed(ctx, id, failureNoContent), nil
		}

		return outcomeSkipped, fmt.Errorf("failed to select quote: %w", err)
	}

	article, err := s.contentUC.SelectArticle(ctx, quote)
	if err != nil {
		if errors.Is(err, repository.ErrNoArticleAvailable) {
			return s.markFailed(ctx, id, failureNoContent), nil
		}

		return outcomeSkipped, fmt.Errorf("failed to select article: %w", err)
	}

	devices, err := s.deviceRepo.FindDevicesByUser(ctx, delivery.UserID)
	if err != nil {
		return outcomeSkipped, fmt.Errorf("failed to fetch devices: %w", err)
	}
	if len(devices) == 0 {
		return s.markFailed(ctx, id, failureNoDeviceTokens), nil
	}

	tokens := make([]string, 0, len(devices))
	for _, device := range devices {
		tokens = append(tokens, device.Token)
	}

	payload := &entity.DeliveryPayload{
		QuoteID:          quote.ID,
		QuoteText:        quote.Text,
		QuoteAuthor:      quote.Author,
		ArticleID:        article.ID,
		ArticleTitle:     article.Title,
		ArticleReference: article.Reference,
	}

	report, err := s.pushSvc.SendToTokens(ctx, tokens, s.pushTitle, renderBody(quote), map[string]string{
		"delivery_id":       id.String(),
		"quote_id":          quote.ID.String(),
		"article_id":        article.ID.String(),
		"article_title":     article.Title,
		"article_reference": article.Reference,
	})
	if err != nil {
		return s.markFailed(ctx, id, err.Error()), nil
	}

	s.pruneInvalidTokens(ctx, report.InvalidTokens)

	if report.AllFailed() {
		reason := report.FirstError
		if reason == "" {
			reason = failureAllTokensFailed
		}

		return s.markFailed(ctx, id, reason), nil
	}

	sentAt := s.clock.Now()

	// Terminal transition and history append commit together. The CAS
	// inside MarkSent guarantees a racing dispatcher cannot produce a
	// second sent row or a second history record.
	err = s.txManager.Execute(ctx, func(factory repository.RepositoryFactory) error {
		if err := factory.NewDeliveryRepository().MarkSent(ctx, id, repository.SentUpdate{
			QuoteID:   quote.ID,
			ArticleID: article.ID,
			SentAt:    sentAt,
			Payload:   payload,
		}); err != nil {
			return err
		}

		return factory.NewHistoryRepository().RecordQuoteSent(ctx, &entity.QuoteSentRecord{
			UserID:  delivery.UserID,
			QuoteID: quote.ID,
			SentAt:  sentAt,
		})
	})
	if err != nil {
		if errors.Is(err, repository.ErrDeliveryStateConflict) {
			return outcomeSkipped, nil
		}

		return outcomeSkipped, fmt.Errorf("failed to finalize delivery: %w", err)
	}

	return outcomeSent, nil
}

// markFailed lands the row in failed state. Losing the CAS means another
// dispatcher already finished the row, which counts as skipped.
func (s *dispatchService) markFailed(ctx context.Context, id uuid.UUID, reason string) dispatchOutcome {
	if err := s.deliveryRepo.MarkFailed(ctx, id, reason); err != nil {
		if errors.Is(err, repository.ErrDeliveryStateConflict) {
			return outcomeSkipped
		}

		s.logger.ErrorContext(ctx, "Failed to record delivery failure",
			slog.String("delivery_id", id.String()),
			slog.String("reason", reason),
			slog.Any("error", err),
		)

		return outcomeSkipped
	}

	return outcomeFailed
}

// pruneInvalidTokens removes registrations the provider reports as
// permanently invalid. Pruning failure is logged, never fatal.
func (s *dispatchService) pruneInvalidTokens(ctx context.Context, tokens []string) {
	if len(tokens) == 0 {
		return
	}

	removed, err := s.deviceRepo.DeleteDevicesByToken(ctx, tokens)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to prune invalid tokens",
			slog.Int("tokens", len(tokens)),
			slog.Any("error", err),
		)

		return
	}

	s.logger.InfoContext(ctx, "Pruned invalid device tokens",
		slog.Int64("removed", removed),
	)
}

func renderBody(quote *entity.Quote) string {
	if quote.Author == "" {
		return quote.Text
	}

	return fmt.Sprintf("%q, %s", quote.Text, quote.Author)
}
