package http

import (
	"github.com/gofiber/fiber/v2"
)

// HealthAction serves GET /health.
func (h *Handler) HealthAction(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status": "ok",
		"name":   h.cfg.AppName,
	})
}
