package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"quotecast/internal/delivery/http/response"
	"quotecast/internal/domain/repository"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

const (
	defaultHistoryLimit = 20
	maxHistoryLimit     = 100
)

// DeliveryHandlerParams holds dependencies for DeliveryHandler, injected by Fx.
type DeliveryHandlerParams struct {
	fx.In

	DeliveryRepo repository.DeliveryRepository
	Logger       *slog.Logger
}

// DeliveryHandler exposes a user's delivery history.
type DeliveryHandler struct {
	deliveryRepo repository.DeliveryRepository
	logger       *slog.Logger
}

// NewDeliveryHandler is the constructor for DeliveryHandler
func NewDeliveryHandler(params DeliveryHandlerParams) *DeliveryHandler {
	return &DeliveryHandler{
		deliveryRepo: params.DeliveryRepo,
		logger:       params.Logger,
	}
}

// ListDeliveries handles retrieving a user's delivery history, newest first
func (h *DeliveryHandler) ListDeliveries(c echo.Context) error {
	userID, err := parseUserID(c)
	if err != nil {
		return err
	}

	limit := parseIntQuery(c, "limit", defaultHistoryLimit)
	if limit > maxHistoryLimit {
		limit = maxHistoryLimit
	}
	offset := parseIntQuery(c, "offset", 0)

	deliveries, err := h.deliveryRepo.ListByUser(c.Request().Context(), userID, limit, offset)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, deliveries, "Deliveries retrieved successfully")
}

func parseIntQuery(c echo.Context, name string, fallback int) int {
	raw := c.QueryParam(name)
	if raw == "" {
		return fallback
	}

	value, err := strconv.Atoi(raw)
	if err != nil || value < 0 {
		return fallback
	}

	return value
}
