package analytics_test

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vantage/internal/analytics"
	"vantage/internal/timeframe"
	"vantage/internal/tinybird"
)

// stubExecutor returns canned results keyed by a query substring and
// records every query it saw.
type stubExecutor struct {
	mu      sync.Mutex
	queries []string
	results map[string]*tinybird.Result
	err     error
}

func (s *stubExecutor) Query(ctx context.Context, query string) (*tinybird.Result, error) {
	s.mu.Lock()
	s.queries = append(s.queries, query)
	s.mu.Unlock()

	if s.err != nil {
		return nil, s.err
	}
	for substr, result := range s.results {
		if strings.Contains(query, substr) {
			return result, nil
		}
	}
	return &tinybird.Result{}, nil
}

func (s *stubExecutor) seen() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.queries...)
}

func resultOf(t *testing.T, rows ...map[string]any) *tinybird.Result {
	t.Helper()
	data := make([]tinybird.Row, len(rows))
	for i, r := range rows {
		data[i] = row(t, r)
	}
	return &tinybird.Result{Data: data, Rows: len(data)}
}

// rangeStart is a substring unique to the query of one period: its lower
// range bound (an upper bound can collide with the adjacent period's start).
func rangeStart(tf timeframe.TimeFrame) string {
	return "timestamp >= toDateTime('" + tf.From.UTC().Format("2006-01-02 15:04:05")
}

func previousFrame() timeframe.TimeFrame {
	tf := dailyFrame()
	tf.From = tf.From.AddDate(0, 0, -7)
	tf.To = tf.To.AddDate(0, 0, -7)
	return tf
}

func TestGetTotalsWithComparison(t *testing.T) {
	current := dailyFrame()
	previous := previousFrame()

	exec := &stubExecutor{results: map[string]*tinybird.Result{
		// distinguish the two periods by their range start
		rangeStart(current): resultOf(t,
			map[string]any{"count": 150, "new_visitor": 1, "new_session": 1},
		),
		rangeStart(previous): resultOf(t,
			map[string]any{"count": 100, "new_visitor": 1, "new_session": 1},
		),
	}}

	params := analytics.NewSiteScopedQueryParams("blog", current)
	comparison, err := analytics.GetTotalsWithComparison(context.Background(), exec, params, previous)
	require.NoError(t, err)

	assert.Len(t, exec.seen(), 2, "current and previous are two independent queries")

	assert.Equal(t, int64(150), comparison.Current.Views)
	assert.Equal(t, int64(100), comparison.Previous.Views)
	require.NotNil(t, comparison.ViewsChange.Percent)
	assert.Equal(t, 50.0, *comparison.ViewsChange.Percent)
	assert.Equal(t, analytics.DirectionIncreased, comparison.ViewsChange.Direction)
}

func TestGetTotalsWithComparisonFailsWhole(t *testing.T) {
	exec := &stubExecutor{err: errors.New("upstream 500")}

	params := analytics.NewSiteScopedQueryParams("blog", dailyFrame())
	_, err := analytics.GetTotalsWithComparison(context.Background(), exec, params, previousFrame())

	require.Error(t, err, "either period failing fails the pair, no partial result")
}

func TestGetEngagementWithComparison(t *testing.T) {
	current := dailyFrame()
	previous := previousFrame()

	exec := &stubExecutor{results: map[string]*tinybird.Result{
		rangeStart(current): resultOf(t,
			map[string]any{"sessions": 100, "bounces": 20, "duration": 80.0},
		),
		rangeStart(previous): resultOf(t,
			map[string]any{"sessions": 100, "bounces": 40, "duration": 80.0},
		),
	}}

	params := analytics.NewSiteScopedQueryParams("blog", current)
	comparison, err := analytics.GetEngagementWithComparison(context.Background(), exec, params, previous)
	require.NoError(t, err)

	assert.Equal(t, 20.0, comparison.Current.BounceRate)
	assert.Equal(t, 40.0, comparison.Previous.BounceRate)
	require.NotNil(t, comparison.BounceRateChange.Percent)
	assert.Equal(t, -50.0, *comparison.BounceRateChange.Percent)
	assert.Equal(t, analytics.DirectionDecreased, comparison.BounceRateChange.Direction)

	require.NotNil(t, comparison.DurationChange.Percent)
	assert.Equal(t, 0.0, *comparison.DurationChange.Percent)
	assert.Equal(t, analytics.DirectionUnchanged, comparison.DurationChange.Direction)
}

func TestGetBreakdownPaginates(t *testing.T) {
	rows := make([]map[string]any, 0, 25)
	for i := 0; i < 25; i++ {
		rows = append(rows, map[string]any{
			"value":       string(rune('a'+i%26)) + "-page",
			"count":       100 - i,
			"new_visitor": 1,
			"new_session": 1,
		})
	}

	exec := &stubExecutor{results: map[string]*tinybird.Result{
		"GROUP BY value": resultOf(t, rows...),
	}}

	params := analytics.NewSiteScopedQueryParams("blog", dailyFrame())
	params.Page = 2
	params.Limit = 10

	results, err := analytics.GetBreakdown(context.Background(), exec, params, analytics.DimensionPath)
	require.NoError(t, err)

	assert.Len(t, results, 10)
	require.Len(t, exec.seen(), 1)
	assert.Contains(t, exec.seen()[0], "LIMIT 20", "over-fetch covers everything through the requested page")
}

func TestGetBreakdownRejectsUnknownDimension(t *testing.T) {
	exec := &stubExecutor{}
	params := analytics.NewSiteScopedQueryParams("blog", dailyFrame())

	_, err := analytics.GetBreakdown(context.Background(), exec, params, analytics.Dimension("os"))
	require.Error(t, err)
	assert.Empty(t, exec.seen(), "no query must reach the backend for unknown dimensions")
}

func TestGetTimeSeriesEndToEnd(t *testing.T) {
	// Interval 7d in UTC: the resolver yields [now-7d, now) with daily
	// buckets; three populated backend rows produce a 7-entry series with
	// four zero entries, ascending.
	now := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	resolver := timeframe.NewResolver(&fixedTime{now})
	tf := resolver.Resolve("7d", "UTC")

	exec := &stubExecutor{results: map[string]*tinybird.Result{
		"GROUP BY bucket": resultOf(t,
			map[string]any{"bucket": "2024-03-09 00:00:00", "views": 5, "visitors": 2, "visits": 2},
			map[string]any{"bucket": "2024-03-12 00:00:00", "views": 8, "visitors": 3, "visits": 4},
			map[string]any{"bucket": "2024-03-14 00:00:00", "views": 2, "visitors": 1, "visits": 1},
		),
	}}

	params := analytics.NewSiteScopedQueryParams("blog", tf)
	points, err := analytics.GetTimeSeries(context.Background(), exec, params)
	require.NoError(t, err)

	require.Len(t, points, 7)

	var zeros, populated int
	for _, point := range points {
		if point.Views == 0 {
			zeros++
		} else {
			populated++
		}
	}
	assert.Equal(t, 4, zeros)
	assert.Equal(t, 3, populated)
	assert.Equal(t, "2024-03-08 00:00:00", points[0].Bucket)
	assert.Equal(t, "2024-03-14 00:00:00", points[6].Bucket)
}

type fixedTime struct{ at time.Time }

func (f *fixedTime) Now(loc *time.Location) time.Time { return f.at.In(loc) }
