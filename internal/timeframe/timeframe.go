package timeframe

import (
	"time"
)

// BucketSize is the granularity used to group time-series data points.
type BucketSize string

const (
	BucketSizeHour BucketSize = "hour"
	BucketSizeDay  BucketSize = "day"
)

// BucketKeyFormat is the second-precision layout used for bucket keys. It
// matches the textual form the analytics backend produces for truncated
// DateTime values, so reconciliation can match keys by string equality.
const BucketKeyFormat = "2006-01-02 15:04:05"

// TimeProvider supplies the current instant. Injecting it keeps range
// resolution deterministic in tests.
type TimeProvider interface {
	Now(loc *time.Location) time.Time
}

// DefaultTimeProvider uses the system clock.
type DefaultTimeProvider struct{}

func (p *DefaultTimeProvider) Now(loc *time.Location) time.Time {
	return time.Now().In(loc)
}

// TimeFrame represents a half-open period [From, To) between two points in
// time. From and To are stored in UTC; Tz is the timezone the range was
// anchored in and the one bucket boundaries are computed against.
type TimeFrame struct {
	From   time.Time
	To     time.Time
	Bucket BucketSize
	Tz     *time.Location
}

// Duration returns the length of the time frame.
func (tf TimeFrame) Duration() time.Duration {
	return tf.To.Sub(tf.From)
}

// Location returns the anchoring timezone, falling back to UTC.
func (tf TimeFrame) Location() *time.Location {
	if tf.Tz == nil {
		return time.UTC
	}
	return tf.Tz
}

// TzName returns the IANA name of the anchoring timezone.
func (tf TimeFrame) TzName() string {
	return tf.Location().String()
}

// BucketKeys walks the time frame from From until the walk reaches or
// exceeds To, emitting one key per granularity step. Keys are the bucket
// boundaries formatted with BucketKeyFormat in the frame's timezone, in
// strictly ascending order with no duplicates.
//
// Day steps advance by one calendar day in the frame's timezone rather than
// a fixed 24h, so the walk stays aligned across daylight-saving transitions.
func (tf TimeFrame) BucketKeys() []string {
	loc := tf.Location()
	keys := make([]string, 0, tf.estimatedBucketCount())

	for cur := tf.From.In(loc); cur.Before(tf.To); {
		key := bucketStart(cur, tf.Bucket, loc).Format(BucketKeyFormat)
		// A repeated wall-clock hour (daylight-saving fall-back) would emit
		// the same key twice; keep the first occurrence only.
		if len(keys) == 0 || keys[len(keys)-1] != key {
			keys = append(keys, key)
		}

		switch tf.Bucket {
		case BucketSizeDay:
			y, m, d := cur.Date()
			cur = time.Date(y, m, d+1, cur.Hour(), cur.Minute(), cur.Second(), cur.Nanosecond(), loc)
		default:
			cur = cur.Add(time.Hour)
		}
	}

	return keys
}

// bucketStart snaps an instant to the start of the bucket containing it.
func bucketStart(t time.Time, size BucketSize, loc *time.Location) time.Time {
	local := t.In(loc)
	year, month, day := local.Date()

	switch size {
	case BucketSizeDay:
		return time.Date(year, month, day, 0, 0, 0, 0, loc)
	default:
		return time.Date(year, month, day, local.Hour(), 0, 0, 0, loc)
	}
}

func (tf TimeFrame) estimatedBucketCount() int {
	switch tf.Bucket {
	case BucketSizeDay:
		return int(tf.Duration().Hours()/24) + 1
	default:
		return int(tf.Duration().Hours()) + 1
	}
}
