package analytics

import (
	"context"
	"errors"
	"fmt"

	"vantage/internal/pkg/async"
	"vantage/internal/timeframe"
	"vantage/internal/tinybird"
)

// Executor issues composed query text against the analytics backend.
// *tinybird.Client satisfies it; tests substitute stubs.
type Executor interface {
	Query(ctx context.Context, query string) (*tinybird.Result, error)
}

// GetTotals fetches the {views, visits, visitors} snapshot for one period.
func GetTotals(ctx context.Context, exec Executor, params SiteScopedQueryParams) (Totals, error) {
	result, err := exec.Query(ctx, BuildTotalsQuery(params.normalized()))
	if err != nil {
		return Totals{}, fmt.Errorf("fetching totals: %w", err)
	}
	return AccumulateTotals(result.Data), nil
}

// GetEngagement fetches bounce rate and average visit duration for one
// period.
func GetEngagement(ctx context.Context, exec Executor, params SiteScopedQueryParams) (Engagement, error) {
	result, err := exec.Query(ctx, BuildEngagementQuery(params.normalized()))
	if err != nil {
		return Engagement{}, fmt.Errorf("fetching engagement: %w", err)
	}
	return ReconcileEngagement(result.Data), nil
}

// GetTimeSeries fetches the gap-free, ascending time series for the
// period's bucket granularity.
func GetTimeSeries(ctx context.Context, exec Executor, params SiteScopedQueryParams) ([]SeriesPoint, error) {
	params = params.normalized()
	result, err := exec.Query(ctx, BuildTimeSeriesQuery(params))
	if err != nil {
		return nil, fmt.Errorf("fetching time series: %w", err)
	}
	return ReconcileTimeSeries(params.TimeFrame, result.Data), nil
}

// GetBreakdown fetches one page of the descending per-value counts for a
// dimension.
func GetBreakdown(ctx context.Context, exec Executor, params SiteScopedQueryParams, dimension Dimension) ([]MetricCountResult, error) {
	if _, ok := dimensionField[dimension]; !ok {
		return nil, fmt.Errorf("unknown dimension: %s", dimension)
	}

	params = params.normalized()
	result, err := exec.Query(ctx, BuildBreakdownQuery(params, dimension))
	if err != nil {
		return nil, fmt.Errorf("fetching %s breakdown: %w", dimension, err)
	}

	return Paginate(AccumulateBreakdown(result.Data), params.Page, params.Limit), nil
}

// TotalsComparison pairs current and previous totals with their changes.
type TotalsComparison struct {
	Current        Totals `json:"current"`
	Previous       Totals `json:"previous"`
	ViewsChange    Change `json:"views_change"`
	VisitsChange   Change `json:"visits_change"`
	VisitorsChange Change `json:"visitors_change"`
}

// EngagementComparison pairs current and previous engagement metrics with
// their changes.
type EngagementComparison struct {
	Current          Engagement `json:"current"`
	Previous         Engagement `json:"previous"`
	BounceRateChange Change     `json:"bounce_rate_change"`
	DurationChange   Change     `json:"duration_change"`
}

// GetTotalsWithComparison fetches current and previous totals concurrently
// and joins them. If either period fails the whole operation fails; there
// is no partial result.
func GetTotalsWithComparison(ctx context.Context, exec Executor, params SiteScopedQueryParams, previous timeframe.TimeFrame) (*TotalsComparison, error) {
	currentRes, previousRes, err := fetchPair(ctx,
		func() (interface{}, error) { return GetTotals(ctx, exec, params) },
		func() (interface{}, error) { return GetTotals(ctx, exec, params.withTimeFrame(previous)) },
	)
	if err != nil {
		return nil, err
	}

	current := currentRes.(Totals)
	prev := previousRes.(Totals)

	return &TotalsComparison{
		Current:        current,
		Previous:       prev,
		ViewsChange:    CalculateChange(float64(current.Views), float64(prev.Views)),
		VisitsChange:   CalculateChange(float64(current.Visits), float64(prev.Visits)),
		VisitorsChange: CalculateChange(float64(current.Visitors), float64(prev.Visitors)),
	}, nil
}

// GetEngagementWithComparison fetches current and previous engagement
// metrics concurrently and joins them.
func GetEngagementWithComparison(ctx context.Context, exec Executor, params SiteScopedQueryParams, previous timeframe.TimeFrame) (*EngagementComparison, error) {
	currentRes, previousRes, err := fetchPair(ctx,
		func() (interface{}, error) { return GetEngagement(ctx, exec, params) },
		func() (interface{}, error) { return GetEngagement(ctx, exec, params.withTimeFrame(previous)) },
	)
	if err != nil {
		return nil, err
	}

	current := currentRes.(Engagement)
	prev := previousRes.(Engagement)

	return &EngagementComparison{
		Current:          current,
		Previous:         prev,
		BounceRateChange: CalculateChange(current.BounceRate, prev.BounceRate),
		DurationChange:   CalculateChange(current.Duration, prev.Duration),
	}, nil
}

// fetchPair runs the current and previous period fetches in parallel and
// joins them before reconciliation.
func fetchPair(ctx context.Context, current, previous func() (interface{}, error)) (interface{}, interface{}, error) {
	results := async.NewPool(2).Execute(ctx, []async.Task{
		{Name: "current", Execute: current},
		{Name: "previous", Execute: previous},
	})

	currentRes, ok := results["current"]
	if !ok {
		return nil, nil, joinErr(ctx)
	}
	previousRes, ok := results["previous"]
	if !ok {
		return nil, nil, joinErr(ctx)
	}
	if currentRes.Err != nil {
		return nil, nil, currentRes.Err
	}
	if previousRes.Err != nil {
		return nil, nil, previousRes.Err
	}

	return currentRes.Data, previousRes.Data, nil
}

func joinErr(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return errors.New("metric fetch did not complete")
}
