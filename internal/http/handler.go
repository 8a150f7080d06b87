// Package http exposes the dashboard JSON API.
package http

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"vantage/internal/analytics"
	"vantage/internal/config"
	"vantage/internal/sites"
	"vantage/internal/timeframe"
)

// Handler carries the dependencies shared by all dashboard endpoints.
type Handler struct {
	logger   *slog.Logger
	cfg      *config.Config
	db       *gorm.DB
	executor analytics.Executor
	resolver *timeframe.Resolver
}

// NewHandler wires a handler with its dependencies.
func NewHandler(logger *slog.Logger, cfg *config.Config, db *gorm.DB, executor analytics.Executor, resolver *timeframe.Resolver) *Handler {
	return &Handler{
		logger:   logger,
		cfg:      cfg,
		db:       db,
		executor: executor,
		resolver: resolver,
	}
}

// filterParams are the query-string keys accepted as exact-match filters.
var filterParams = []string{"path", "referrer", "browserName", "country", "deviceModel"}

// queryParams assembles site-scoped query parameters from the request: the
// site resolved from the URL, the interval and timezone from the query
// string (the site's stored timezone is the fallback), filters and
// pagination.
func (h *Handler) queryParams(c *fiber.Ctx) (analytics.SiteScopedQueryParams, timeframe.TimeFrame, string, error) {
	site, err := sites.GetSiteOrNotFound(h.db, c.Params("siteID"))
	if err != nil {
		return analytics.SiteScopedQueryParams{}, timeframe.TimeFrame{}, "", err
	}

	interval := c.Query("interval", timeframe.DefaultInterval)
	tz := c.Query("tz", site.Timezone)
	if tz == "" {
		tz = h.cfg.DefaultTimezone
	}

	params := analytics.NewSiteScopedQueryParams(site.SiteID, h.resolver.Resolve(interval, tz))
	if h.cfg.TinybirdDataset != "" {
		params.Dataset = h.cfg.TinybirdDataset
	}
	params.Page = c.QueryInt("page", analytics.DefaultPage)
	params.Limit = c.QueryInt("limit", h.cfg.DefaultLimit)

	for _, name := range filterParams {
		if value := c.Query(name); value != "" {
			params.Filters[name] = value
		}
	}

	return params, h.resolver.ResolvePrevious(interval, tz), interval, nil
}

// respondError maps domain errors onto JSON error responses.
func (h *Handler) respondError(c *fiber.Ctx, err error) error {
	var notFound *sites.SiteNotFoundError
	if errors.As(err, &notFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": notFound.Error()})
	}

	h.logger.Error("Request failed",
		slog.String("path", c.Path()),
		slog.Any("error", err),
	)
	return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": "analytics backend unavailable"})
}
