package http

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"vantage/internal/sites"
)

// SitesIndexAction serves GET /api/v1/sites.
func (h *Handler) SitesIndexAction(c *fiber.Ctx) error {
	all, err := sites.ListSites(h.db)
	if err != nil {
		h.logger.Error("Failed to list sites", slog.Any("error", err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to list sites"})
	}
	return c.JSON(fiber.Map{"sites": all})
}

// SiteCreateAction serves POST /api/v1/sites.
func (h *Handler) SiteCreateAction(c *fiber.Ctx) error {
	var site sites.Site
	if err := c.BodyParser(&site); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	created, err := sites.CreateSite(h.db, site)
	if err != nil {
		h.logger.Warn("Site creation rejected",
			slog.String("site_id", site.SiteID),
			slog.Any("error", err),
		)
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": err.Error()})
	}

	h.logger.Info("Site created",
		slog.String("site_id", created.SiteID),
		slog.String("domain", created.Domain),
	)
	return c.Status(fiber.StatusCreated).JSON(created)
}

// SiteShowAction serves GET /api/v1/sites/:siteID.
func (h *Handler) SiteShowAction(c *fiber.Ctx) error {
	site, err := sites.GetSiteOrNotFound(h.db, c.Params("siteID"))
	if err != nil {
		return h.respondError(c, err)
	}
	return c.JSON(site)
}
