package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/mietwert/backend/internal/domain"
	"github.com/mietwert/backend/internal/service"
)

// Handler contains all HTTP handlers
type Handler struct {
	estimateSvc *service.EstimateService
}

// NewHandler creates a new handler
func NewHandler(estimateSvc *service.EstimateService) *Handler {
	return &Handler{
		estimateSvc: estimateSvc,
	}
}

// HealthCheck returns service health status
func (h *Handler) HealthCheck(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "ok",
		"service": "mietwert-backend",
		"version": "1.0.0",
	})
}

// Predict runs the estimation pipeline for one listing
func (h *Handler) Predict(c *fiber.Ctx) error {
	ctx := c.Context()

	var input domain.ListingInput
	if err := c.BodyParser(&input); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	result, err := h.estimateSvc.Estimate(ctx, input)
	if err != nil {
		var schemaErr *domain.SchemaError
		if errors.As(err, &schemaErr) {
			return fiber.NewError(fiber.StatusBadRequest, schemaErr.Error())
		}
		var predErr *domain.PredictionError
		if errors.As(err, &predErr) {
			return fiber.NewError(fiber.StatusInternalServerError, predErr.Error())
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to compute estimate")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    result,
	})
}

// GetGeo returns the full geographic reference table for the form dropdowns
func (h *Handler) GetGeo(c *fiber.Ctx) error {
	ref := h.estimateSvc.GeoReference()
	if ref == nil {
		return fiber.NewError(fiber.StatusServiceUnavailable, domain.ErrReferenceDataUnavailable.Error())
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    ref.States(),
	})
}

// LookupPLZ resolves a postal code to its state and city
func (h *Handler) LookupPLZ(c *fiber.Ctx) error {
	ref := h.estimateSvc.GeoReference()
	if ref == nil {
		return fiber.NewError(fiber.StatusServiceUnavailable, domain.ErrReferenceDataUnavailable.Error())
	}

	plz := c.Params("plz")
	loc, ok := ref.LookupPLZ(plz)
	if !ok {
		return fiber.NewError(fiber.StatusNotFound, "Postal code not found in reference data")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    loc,
	})
}

// GetHistory returns recent persisted estimations
func (h *Handler) GetHistory(c *fiber.Ctx) error {
	ctx := c.Context()

	limit := c.QueryInt("limit", 20)
	if limit < 1 || limit > 100 {
		limit = 20
	}

	logs, err := h.estimateSvc.History(ctx, limit)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch estimate history")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    logs,
		"count":   len(logs),
	})
}
