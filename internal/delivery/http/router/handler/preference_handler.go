package handler

import (
	"log/slog"
	"net/http"

	"quotecast/internal/delivery/http/response"
	"quotecast/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// PreferenceHandlerParams holds dependencies for PreferenceHandler, injected by Fx.
type PreferenceHandlerParams struct {
	fx.In

	PreferenceUC usecase.PreferenceUsecase
	Logger       *slog.Logger
}

// PreferenceHandler holds dependencies for preference-related handlers
type PreferenceHandler struct {
	preferenceUC usecase.PreferenceUsecase
	logger       *slog.Logger
}

// NewPreferenceHandler is the constructor for PreferenceHandler
func NewPreferenceHandler(params PreferenceHandlerParams) *PreferenceHandler {
	return &PreferenceHandler{
		preferenceUC: params.PreferenceUC,
		logger:       params.Logger,
	}
}

// UpdatePreferencesRequest represents the request body for updating preferences
type UpdatePreferencesRequest struct {
	Timezone             string      `json:"timezone" validate:"required"`
	NotificationsEnabled bool        `json:"notifications_enabled"`
	NotificationsPerDay  int         `json:"notifications_per_day" validate:"required,min=1,max=20"`
	PreferredHours       []int       `json:"preferred_hours" validate:"dive,min=0,max=23"`
	PreferredCategories  []uuid.UUID `json:"preferred_categories"`
}

// GetPreferences handles retrieving a user's notification preferences
func (h *PreferenceHandler) GetPreferences(c echo.Context) error {
	userID, err := parseUserID(c)
	if err != nil {
		return err
	}

	pref, err := h.preferenceUC.GetPreferences(c.Request().Context(), userID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, pref, "Preferences retrieved successfully")
}

// UpdatePreferences handles replacing a user's notification preferences
func (h *PreferenceHandler) UpdatePreferences(c echo.Context) error {
	userID, err := parseUserID(c)
	if err != nil {
		return err
	}

	var req UpdatePreferencesRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid preference input")
	}

	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	input := &usecase.PreferenceInput{
		Timezone:             req.Timezone,
		NotificationsEnabled: req.NotificationsEnabled,
		NotificationsPerDay:  req.NotificationsPerDay,
		PreferredHours:       req.PreferredHours,
		PreferredCategories:  req.PreferredCategories,
	}

	pref, err := h.preferenceUC.UpdatePreferences(c.Request().Context(), userID, input)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, pref, "Preferences updated successfully")
}
