package http

import (
	"github.com/gofiber/fiber/v2"

	"vantage/internal/analytics"
)

// TimeSeriesResponse is the gap-free chart series for one period.
type TimeSeriesResponse struct {
	Interval   string                  `json:"interval"`
	Timezone   string                  `json:"timezone"`
	BucketSize string                  `json:"bucket_size"`
	Points     []analytics.SeriesPoint `json:"points"`
}

// TimeSeriesAction serves GET /api/v1/sites/:siteID/timeseries.
func (h *Handler) TimeSeriesAction(c *fiber.Ctx) error {
	params, _, interval, err := h.queryParams(c)
	if err != nil {
		return h.respondError(c, err)
	}

	points, err := analytics.GetTimeSeries(c.UserContext(), h.executor, params)
	if err != nil {
		return h.respondError(c, err)
	}

	return c.JSON(TimeSeriesResponse{
		Interval:   interval,
		Timezone:   params.TimeFrame.TzName(),
		BucketSize: string(params.TimeFrame.Bucket),
		Points:     points,
	})
}
