package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

// dashboardCORSConfig is the CORS configuration for the read-only dashboard
// API. The dashboard frontend is served from another origin.
var dashboardCORSConfig = cors.Config{
	AllowOrigins: "*",
	AllowMethods: "POST,GET,OPTIONS",
	AllowHeaders: "Origin, Content-Type, Accept, Authorization",
}

// RegisterRoutes mounts all API routes on the app.
func RegisterRoutes(app *fiber.App, h *Handler) {
	app.Get("/health", h.HealthAction)

	api := app.Group("/api/v1", cors.New(dashboardCORSConfig))

	api.Get("/sites", h.SitesIndexAction)
	api.Post("/sites", h.SiteCreateAction)
	api.Get("/sites/:siteID", h.SiteShowAction)

	site := api.Group("/sites/:siteID")
	site.Get("/overview", h.OverviewAction)
	site.Get("/timeseries", h.TimeSeriesAction)
	site.Get("/breakdowns/:dimension", h.BreakdownAction)
}
