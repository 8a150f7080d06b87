package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"vantage/internal/analytics"
	"vantage/internal/pkg/async"
)

// OverviewResponse is the headline card of the dashboard: totals and
// engagement for the selected period, each paired with the comparison
// period.
type OverviewResponse struct {
	Interval   string                          `json:"interval"`
	Timezone   string                          `json:"timezone"`
	BucketSize string                          `json:"bucket_size"`
	Totals     *analytics.TotalsComparison     `json:"totals"`
	Engagement *analytics.EngagementComparison `json:"engagement"`
}

// OverviewAction serves GET /api/v1/sites/:siteID/overview.
func (h *Handler) OverviewAction(c *fiber.Ctx) error {
	params, previous, interval, err := h.queryParams(c)
	if err != nil {
		return h.respondError(c, err)
	}

	ctx := c.UserContext()
	results := async.NewPool(2).Execute(ctx, []async.Task{
		{
			Name: "totals",
			Execute: func() (interface{}, error) {
				return analytics.GetTotalsWithComparison(ctx, h.executor, params, previous)
			},
		},
		{
			Name: "engagement",
			Execute: func() (interface{}, error) {
				return analytics.GetEngagementWithComparison(ctx, h.executor, params, previous)
			},
		},
	})

	response := OverviewResponse{
		Interval:   interval,
		Timezone:   params.TimeFrame.TzName(),
		BucketSize: string(params.TimeFrame.Bucket),
	}

	for name, result := range results {
		if result.Err != nil {
			return h.respondError(c, fmt.Errorf("fetching %s: %w", name, result.Err))
		}
	}
	if totals, ok := results["totals"]; ok {
		response.Totals = totals.Data.(*analytics.TotalsComparison)
	}
	if engagement, ok := results["engagement"]; ok {
		response.Engagement = engagement.Data.(*analytics.EngagementComparison)
	}
	if response.Totals == nil || response.Engagement == nil {
		return h.respondError(c, fmt.Errorf("overview fan-out did not complete"))
	}

	return c.JSON(response)
}
