package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/pariz/gountries"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"vantage/internal/analytics"
)

// BreakdownEntry is one row of a dimension breakdown. Views are carried
// only for dimensions where a per-value view count is meaningful (paths
// and referrers).
type BreakdownEntry struct {
	Name     string `json:"name"`
	Visitors int64  `json:"visitors"`
	Views    *int64 `json:"views,omitempty"`
}

// BreakdownResponse is one page of a dimension breakdown, descending by
// visitors.
type BreakdownResponse struct {
	Dimension string           `json:"dimension"`
	Interval  string           `json:"interval"`
	Page      int              `json:"page"`
	Limit     int              `json:"limit"`
	Results   []BreakdownEntry `json:"results"`
}

// BreakdownAction serves GET /api/v1/sites/:siteID/breakdowns/:dimension.
func (h *Handler) BreakdownAction(c *fiber.Ctx) error {
	dimension, ok := analytics.ParseDimension(c.Params("dimension"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "unknown dimension: " + c.Params("dimension"),
		})
	}

	params, _, interval, err := h.queryParams(c)
	if err != nil {
		return h.respondError(c, err)
	}

	results, err := analytics.GetBreakdown(c.UserContext(), h.executor, params, dimension)
	if err != nil {
		return h.respondError(c, err)
	}

	return c.JSON(BreakdownResponse{
		Dimension: string(dimension),
		Interval:  interval,
		Page:      params.Page,
		Limit:     params.Limit,
		Results:   convertBreakdown(dimension, results),
	})
}

// convertBreakdown turns raw per-value counts into display rows: country
// codes become country names, device and browser labels are title-cased,
// and empty values surface as explicit unknowns.
func convertBreakdown(dimension analytics.Dimension, items []analytics.MetricCountResult) []BreakdownEntry {
	entries := make([]BreakdownEntry, len(items))
	for i, item := range items {
		entry := BreakdownEntry{
			Name:     displayName(dimension, item.Name),
			Visitors: item.Visitors,
		}
		if dimension.IncludesViews() {
			views := item.Views
			entry.Views = &views
		}
		entries[i] = entry
	}
	return entries
}

func displayName(dimension analytics.Dimension, name string) string {
	switch dimension {
	case analytics.DimensionReferrer:
		if name == "" {
			return "Direct / Unknown"
		}
		return name
	case analytics.DimensionCountry:
		return countryName(name)
	case analytics.DimensionDevice, analytics.DimensionBrowser:
		if name == "" {
			return "Unknown"
		}
		return cases.Title(language.AmericanEnglish).String(name)
	default:
		return name
	}
}

func countryName(code string) string {
	if code == "" {
		return "Unknown"
	}
	country, err := gountries.New().FindCountryByAlpha(code)
	if err != nil {
		return cases.Upper(language.AmericanEnglish).String(code)
	}
	return country.Name.Common
}
