package analytics

import (
	"sort"

	"vantage/internal/timeframe"
	"vantage/internal/tinybird"
)

// Totals is the basic metric snapshot for one period.
type Totals struct {
	Views    int64 `json:"views"`
	Visits   int64 `json:"visits"`
	Visitors int64 `json:"visitors"`
}

// Engagement holds the session-quality metrics for one period.
type Engagement struct {
	BounceRate float64 `json:"bounce_rate"`
	Duration   float64 `json:"duration"`
}

// SeriesPoint is one bucket of a reconciled time series.
type SeriesPoint struct {
	Bucket   string `json:"bucket"`
	Views    int64  `json:"views"`
	Visitors int64  `json:"visitors"`
	Visits   int64  `json:"visits"`
}

// MetricCountResult is one merged row of a dimension breakdown.
type MetricCountResult struct {
	Name     string `json:"name"`
	Visitors int64  `json:"visitors"`
	Views    int64  `json:"views"`
	Visits   int64  `json:"visits"`
}

// AccumulateTotals folds indicator-partitioned count rows into a single
// snapshot: every row contributes to views, rows flagged as new sessions
// contribute to visits, rows flagged as new visitors to visitors.
func AccumulateTotals(rows []tinybird.Row) Totals {
	var totals Totals
	for _, row := range rows {
		count := row.Int("count")
		totals.Views += count
		if row.Int(columnFor[FieldNewSession]) == 1 {
			totals.Visits += count
		}
		if row.Int(columnFor[FieldNewVisitor]) == 1 {
			totals.Visitors += count
		}
	}
	return totals
}

// ReconcileEngagement derives bounce rate and average duration from the
// single-row engagement aggregates, guarding the zero-session case.
func ReconcileEngagement(rows []tinybird.Row) Engagement {
	if len(rows) == 0 {
		return Engagement{}
	}

	row := rows[0]
	sessions := row.Float("sessions")
	if sessions <= 0 {
		return Engagement{}
	}

	return Engagement{
		BounceRate: row.Float("bounces") / sessions * 100,
		Duration:   row.Float("duration"),
	}
}

// ReconcileTimeSeries merges backend rows into the zero-seeded bucket
// sequence for the frame. The merge is left-biased: buckets absent from the
// result keep their zero default, buckets present are fully overwritten,
// never summed. The backend silently omits empty buckets, so this is what
// makes the series gap-free.
func ReconcileTimeSeries(tf timeframe.TimeFrame, rows []tinybird.Row) []SeriesPoint {
	byKey := make(map[string]SeriesPoint, len(rows))
	for _, row := range rows {
		key := row.String("bucket")
		byKey[key] = SeriesPoint{
			Bucket:   key,
			Views:    row.Int("views"),
			Visitors: row.Int("visitors"),
			Visits:   row.Int("visits"),
		}
	}

	keys := tf.BucketKeys()
	points := make([]SeriesPoint, len(keys))
	for i, key := range keys {
		if point, ok := byKey[key]; ok {
			points[i] = point
		} else {
			points[i] = SeriesPoint{Bucket: key}
		}
	}

	return points
}

// AccumulateBreakdown merges rows grouped by dimension value plus indicator
// flags into one record per distinct value. The fold is order-independent;
// results are sorted by visitors descending with name as the tie-breaker so
// pagination stays stable.
func AccumulateBreakdown(rows []tinybird.Row) []MetricCountResult {
	byName := make(map[string]*MetricCountResult, len(rows))
	for _, row := range rows {
		name := row.String("value")
		record, ok := byName[name]
		if !ok {
			record = &MetricCountResult{Name: name}
			byName[name] = record
		}

		count := row.Int("count")
		record.Views += count
		if row.Int(columnFor[FieldNewSession]) == 1 {
			record.Visits += count
		}
		if row.Int(columnFor[FieldNewVisitor]) == 1 {
			record.Visitors += count
		}
	}

	merged := make([]MetricCountResult, 0, len(byName))
	for _, record := range byName {
		merged = append(merged, *record)
	}
	sort.Slice(merged, func(i, j int) bool {
		if merged[i].Visitors != merged[j].Visitors {
			return merged[i].Visitors > merged[j].Visitors
		}
		return merged[i].Name < merged[j].Name
	})

	return merged
}

// Paginate emulates OFFSET by slicing [(page-1)*limit, page*limit) out of
// an over-fetched result.
func Paginate(items []MetricCountResult, page, limit int) []MetricCountResult {
	if page < 1 {
		page = DefaultPage
	}
	if limit < 1 {
		limit = DefaultLimit
	}

	start := (page - 1) * limit
	if start >= len(items) {
		return []MetricCountResult{}
	}

	end := start + limit
	if end > len(items) {
		end = len(items)
	}

	return items[start:end]
}
