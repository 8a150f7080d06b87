package analytics

import (
	"fmt"

	"vantage/internal/timeframe"
)

// The backend speaks a restricted SQL dialect over HTTP: SELECT only, no
// parameter binding, no OFFSET, no COALESCE. Every builder here returns the
// final query text; values are escaped at interpolation time and column
// identifiers always come from the mapping table.
//
// Counts are always recovered as sum(sample_interval), never count(): each
// stored row carries a sampling weight describing how many real events it
// represents.

const dateTimeLayout = "2006-01-02 15:04:05"

// scopePredicate builds the WHERE body shared by all query shapes: exact
// site match, half-open UTC time range, and the compiled filter fragment.
func scopePredicate(p SiteScopedQueryParams) string {
	return fmt.Sprintf("%s = '%s' AND %s >= toDateTime('%s', 'UTC') AND %s < toDateTime('%s', 'UTC')%s",
		columnFor[FieldSiteID], escapeLiteral(p.SiteID),
		colTimestamp, p.TimeFrame.From.UTC().Format(dateTimeLayout),
		colTimestamp, p.TimeFrame.To.UTC().Format(dateTimeLayout),
		CompileFilters(p.Filters))
}

// BuildTotalsQuery returns sampled counts partitioned by the new-visitor
// and new-session indicators; AccumulateTotals folds the up-to-four rows
// into a single snapshot.
func BuildTotalsQuery(p SiteScopedQueryParams) string {
	nv, ns := columnFor[FieldNewVisitor], columnFor[FieldNewSession]
	return fmt.Sprintf(
		"SELECT sum(%s) AS count, %s, %s FROM %s WHERE %s GROUP BY %s, %s",
		colSampleInterval, nv, ns, p.Dataset, scopePredicate(p), nv, ns)
}

// BuildEngagementQuery returns one row of session-level aggregates: total
// sessions, single-page-view sessions (bounces) and the average visit
// duration. Rate math happens client-side to avoid dividing by zero in a
// dialect without COALESCE.
func BuildEngagementQuery(p SiteScopedQueryParams) string {
	ns := columnFor[FieldNewSession]
	return fmt.Sprintf(
		"SELECT sumIf(%s, %s = 1) AS sessions, sumIf(%s, %s = 1 AND %s = 1) AS bounces, avgIf(%s, %s = 1) AS duration FROM %s WHERE %s",
		colSampleInterval, ns,
		colSampleInterval, ns, columnFor[FieldPageViews],
		columnFor[FieldVisitDuration], ns,
		p.Dataset, scopePredicate(p))
}

// BuildBreakdownQuery groups sampled counts by one dimension column plus
// the indicator flags, descending by count. The backend has no OFFSET, so
// the limit covers everything through the requested page; pagination is
// emulated by slicing locally. The limit counts flag-split rows, not merged
// values, so a page near the cap can come back under-filled even when more
// values exist upstream.
func BuildBreakdownQuery(p SiteScopedQueryParams, dimension Dimension) string {
	nv, ns := columnFor[FieldNewVisitor], columnFor[FieldNewSession]
	return fmt.Sprintf(
		"SELECT %s AS value, sum(%s) AS count, %s, %s FROM %s WHERE %s GROUP BY value, %s, %s ORDER BY count DESC LIMIT %d",
		dimension.column(), colSampleInterval, nv, ns,
		p.Dataset, scopePredicate(p), nv, ns,
		p.Limit*p.Page)
}

// BuildTimeSeriesQuery groups view/visitor/visit aggregates by the bucket
// boundary at the frame's granularity and timezone, ascending. Buckets with
// no data are absent from the result; ReconcileTimeSeries fills them in.
func BuildTimeSeriesQuery(p SiteScopedQueryParams) string {
	nv, ns := columnFor[FieldNewVisitor], columnFor[FieldNewSession]
	return fmt.Sprintf(
		"SELECT %s AS bucket, sum(%s) AS views, sumIf(%s, %s = 1) AS visitors, sumIf(%s, %s = 1) AS visits FROM %s WHERE %s GROUP BY bucket ORDER BY bucket ASC",
		bucketExpression(p.TimeFrame),
		colSampleInterval,
		colSampleInterval, nv,
		colSampleInterval, ns,
		p.Dataset, scopePredicate(p))
}

// bucketExpression truncates the event timestamp to the frame's granularity
// in its anchoring timezone, rendered as text so keys match the generated
// bucket keys byte for byte.
func bucketExpression(tf timeframe.TimeFrame) string {
	tz := escapeLiteral(tf.TzName())
	if tf.Bucket == timeframe.BucketSizeDay {
		return fmt.Sprintf("toString(toStartOfDay(%s, '%s'))", colTimestamp, tz)
	}
	return fmt.Sprintf("toString(toStartOfHour(%s, '%s'))", colTimestamp, tz)
}
