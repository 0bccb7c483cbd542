package server

import (
	"bridgehead/internal/featureflags"
	"bridgehead/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetFeatureFlags handles GET /api/admin/feature-flags
func (s *Server) GetFeatureFlags(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"flags": s.featureFlags.Raw(),
		"names": s.featureFlags.Names(),
	})
}

// ReconcileCounters handles POST /api/admin/reconcile
// @Summary Recompute post counters from the ledger
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Failure 403 {object} models.ErrorResponse
// @Router /admin/reconcile [post]
func (s *Server) ReconcileCounters(c *fiber.Ctx) error {
	if !s.featureFlags.Enabled(featureflags.ReconcileEndpoint, 0) {
		return models.RespondWithError(c, fiber.StatusNotFound,
			models.NewNotFoundError("Route", c.Path()))
	}

	updated, err := s.reconcileService.Reconcile(c.UserContext())
	if err != nil {
		return s.respondError(c, err)
	}
	return c.JSON(fiber.Map{"updated": updated})
}
