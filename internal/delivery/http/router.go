package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/mietwert/backend/internal/service"
)

// SetupRoutes configures all HTTP routes
func SetupRoutes(app *fiber.App, estimateSvc *service.EstimateService) {
	handler := NewHandler(estimateSvc)

	// Health check
	app.Get("/health", handler.HealthCheck)

	// API v1 routes
	api := app.Group("/api/v1")
	{
		// Rent estimation
		api.Post("/predict", handler.Predict)

		// Geographic reference data for the form
		api.Get("/geo", handler.GetGeo)
		api.Get("/geo/plz/:plz", handler.LookupPLZ)

		// Recent estimations
		api.Get("/history", handler.GetHistory)
	}
}
