package handler

import (
	"encoding/base64"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"quotecast/config"
	"quotecast/internal/domain/service"
	mockUC "quotecast/internal/mocks/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func createTestPushHandler(t *testing.T) (*PushHandler, *mockUC.MockSchedulerUsecase) {
	schedulerUC := mockUC.NewMockSchedulerUsecase(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelDebug}))

	handler := NewPushHandler(PushHandlerParams{
		Config:      &config.Config{},
		Logger:      logger,
		SchedulerUC: schedulerUC,
	})

	return handler, schedulerUC
}

func pushRequestBody(t *testing.T, event *service.PreferenceEvent, attributes map[string]string) string {
	payload, err := json.Marshal(event)
	require.NoError(t, err)

	msg := PubSubMessage{}
	msg.Message.Data = base64.StdEncoding.EncodeToString(payload)
	msg.Message.Attributes = attributes
	msg.Message.MessageID = uuid.New().String()
	msg.Subscription = "projects/test/subscriptions/preference-events"

	body, err := json.Marshal(msg)
	require.NoError(t, err)

	return string(body)
}

func performPush(handler *PushHandler, body string) *httptest.ResponseRecorder {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/push", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	_ = handler.HandlePush(e.NewContext(req, rec))

	return rec
}

func TestPushHandler_HandlePush_Success(t *testing.T) {
	handler, schedulerUC := createTestPushHandler(t)

	userID := uuid.New()
	schedulerUC.EXPECT().ScheduleForUser(mock.Anything, userID).Return(2, nil)

	body := pushRequestBody(t, &service.PreferenceEvent{
		RequestID: "req-abc",
		UserID:    userID.String(),
	}, map[string]string{"request_id": "req-abc", "user_id": userID.String()})

	rec := performPush(handler, body)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestPushHandler_HandlePush_MalformedJSON(t *testing.T) {
	handler, schedulerUC := createTestPushHandler(t)

	rec := performPush(handler, "{not json")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	schedulerUC.AssertNotCalled(t, "ScheduleForUser", mock.Anything, mock.Anything)
}

func TestPushHandler_HandlePush_BadBase64(t *testing.T) {
	handler, schedulerUC := createTestPushHandler(t)

	msg := PubSubMessage{}
	msg.Message.Data = "%%% not base64 %%%"
	body, err := json.Marshal(msg)
	require.NoError(t, err)

	rec := performPush(handler, string(body))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	schedulerUC.AssertNotCalled(t, "ScheduleForUser", mock.Anything, mock.Anything)
}

func TestPushHandler_HandlePush_InvalidUserIDNotRetried(t *testing.T) {
	handler, schedulerUC := createTestPushHandler(t)

	// A malformed user ID can never succeed, so the message must be acked
	// instead of redelivered forever.
	body := pushRequestBody(t, &service.PreferenceEvent{UserID: "not-a-uuid"}, nil)

	rec := performPush(handler, body)

	assert.Equal(t, http.StatusOK, rec.Code)
	schedulerUC.AssertNotCalled(t, "ScheduleForUser", mock.Anything, mock.Anything)
}

func TestPushHandler_HandlePush_SchedulingFailureIsRetried(t *testing.T) {
	handler, schedulerUC := createTestPushHandler(t)

	userID := uuid.New()
	schedulerUC.EXPECT().
		ScheduleForUser(mock.Anything, userID).
		Return(0, errors.New("db connection lost"))

	body := pushRequestBody(t, &service.PreferenceEvent{UserID: userID.String()}, nil)

	rec := performPush(handler, body)

	// 503 asks Pub/Sub to redeliver.
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestPushHandler_VerifyAuthEnabledOnlyForGoogleOutsideDevelop(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	schedulerUC := mockUC.NewMockSchedulerUsecase(t)

	build := func(provider, env string) *PushHandler {
		cfg := &config.Config{}
		cfg.Env.Env = env
		if provider != "" {
			cfg.PubSub = &config.PubSubConfig{Provider: provider}
		}

		return NewPushHandler(PushHandlerParams{Config: cfg, Logger: logger, SchedulerUC: schedulerUC})
	}

	assert.True(t, build("google", "production").verifyPushAuth)
	assert.False(t, build("google", "develop").verifyPushAuth)
	assert.False(t, build("local", "production").verifyPushAuth)
	assert.False(t, build("", "production").verifyPushAuth)
}

func TestPushHandler_HandlePush_MissingAuthRejected(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	schedulerUC := mockUC.NewMockSchedulerUsecase(t)

	cfg := &config.Config{}
	cfg.Env.Env = "production"
	cfg.PubSub = &config.PubSubConfig{Provider: "google"}

	handler := NewPushHandler(PushHandlerParams{Config: cfg, Logger: logger, SchedulerUC: schedulerUC})

	rec := performPush(handler, pushRequestBody(t, &service.PreferenceEvent{UserID: uuid.New().String()}, nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	schedulerUC.AssertNotCalled(t, "ScheduleForUser", mock.Anything, mock.Anything)
}
