package timeframe

import (
	"strconv"
	"strings"
	"time"
)

// Interval tokens accepted by the dashboard.
const (
	IntervalToday     = "today"
	IntervalYesterday = "yesterday"
	IntervalLastDay   = "1d"
	IntervalLast7d    = "7d"
	IntervalLast30d   = "30d"
	IntervalLast90d   = "90d"
)

// DefaultInterval is the range unrecognized tokens degrade to.
const DefaultInterval = IntervalLastDay

// previousInterval maps an interval token to the token anchoring its
// comparison period. Only a few tokens have a true equal-length,
// immediately-preceding counterpart; everything else degrades to the fixed
// fallback below. The table is intentionally asymmetric and should not be
// "fixed" into a uniform doubling rule.
var previousInterval = map[string]string{
	IntervalToday:   IntervalYesterday,
	IntervalLast7d:  "14d",
	IntervalLast30d: "60d",
}

// previousIntervalFallback anchors the comparison for unmapped tokens. For
// "yesterday" itself this means comparing the range against itself (every
// change reads 0%); that degenerate case is accepted rather than papered
// over with an invented window.
const previousIntervalFallback = IntervalYesterday

// Resolver converts interval tokens into concrete time frames.
type Resolver struct {
	timeProvider TimeProvider
}

// NewResolver creates a resolver, optionally with a custom time provider.
func NewResolver(timeProvider ...TimeProvider) *Resolver {
	var provider TimeProvider = &DefaultTimeProvider{}
	if len(timeProvider) > 0 && timeProvider[0] != nil {
		provider = timeProvider[0]
	}

	return &Resolver{timeProvider: provider}
}

// Resolve converts an interval token into a half-open [From, To) time frame
// anchored in the given IANA timezone. It never fails: unknown tokens
// behave as the 1-day default, and an unloadable timezone falls back to UTC.
//
//	today      [local midnight, now)           hourly buckets
//	yesterday  [midnight - 1 day, midnight)    hourly buckets
//	<N>d       [now - N days, now)             hourly when N == 1, else daily
func (r *Resolver) Resolve(token, tz string) TimeFrame {
	loc, err := time.LoadLocation(tz)
	if err != nil || tz == "" {
		loc = time.UTC
	}
	now := r.timeProvider.Now(loc)
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)

	var tf TimeFrame
	switch token {
	case IntervalToday:
		tf = TimeFrame{From: midnight, To: now, Bucket: BucketSizeHour}
	case IntervalYesterday:
		tf = TimeFrame{From: midnight.AddDate(0, 0, -1), To: midnight, Bucket: BucketSizeHour}
	default:
		days := parseDayToken(token)
		bucket := BucketSizeDay
		if days == 1 {
			bucket = BucketSizeHour
		}
		tf = TimeFrame{From: now.AddDate(0, 0, -days), To: now, Bucket: bucket}
	}

	tf.From = tf.From.UTC()
	tf.To = tf.To.UTC()
	tf.Tz = loc
	return tf
}

// ResolvePrevious returns the comparison time frame for a token. Mapped
// tokens yield [resolve(previous).From, current.From): an equal-length,
// immediately-preceding window that never overlaps the current one. Unmapped
// tokens fall back to the full resolved fallback range. The frame carries
// the current token's bucket size so both series line up.
func (r *Resolver) ResolvePrevious(token, tz string) TimeFrame {
	current := r.Resolve(token, tz)

	prevToken, mapped := previousInterval[token]
	if !mapped {
		prevToken = previousIntervalFallback
	}

	previous := r.Resolve(prevToken, tz)
	if mapped {
		previous.To = current.From
	}
	previous.Bucket = current.Bucket
	return previous
}

// PreviousToken maps an interval token to its comparison token.
func PreviousToken(token string) string {
	if prev, ok := previousInterval[token]; ok {
		return prev
	}
	return previousIntervalFallback
}

// parseDayToken extracts N from a "<N>d" token, defaulting to 1 day for
// anything unrecognized.
func parseDayToken(token string) int {
	raw, ok := strings.CutSuffix(token, "d")
	if !ok {
		return 1
	}
	days, err := strconv.Atoi(raw)
	if err != nil || days < 1 {
		return 1
	}
	return days
}
