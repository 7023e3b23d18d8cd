// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"quotecast/internal/delivery/http/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	DeviceHandler     *handler.DeviceHandler
	PreferenceHandler *handler.PreferenceHandler
	DeliveryHandler   *handler.DeliveryHandler
}

// router holds all the handlers that need to be registered.
type router struct {
	deviceHandler     *handler.DeviceHandler
	preferenceHandler *handler.PreferenceHandler
	deliveryHandler   *handler.DeliveryHandler
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		deviceHandler:     params.DeviceHandler,
		preferenceHandler: params.PreferenceHandler,
		deliveryHandler:   params.DeliveryHandler,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	userGroup := e.Group("/users/:user_id")
	{
		userGroup.POST("/devices", r.deviceHandler.RegisterDevice)
		userGroup.GET("/devices", r.deviceHandler.ListDevices)
		userGroup.GET("/preferences", r.preferenceHandler.GetPreferences)
		userGroup.PUT("/preferences", r.preferenceHandler.UpdatePreferences)
		userGroup.GET("/deliveries", r.deliveryHandler.ListDeliveries)
	}
}
