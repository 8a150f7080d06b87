package analytics

// Direction classifies a period-over-period change.
type Direction string

const (
	DirectionIncreased Direction = "increased"
	DirectionDecreased Direction = "decreased"
	DirectionUnchanged Direction = "unchanged"
)

// Change is a period-over-period percentage change. Percent is nil when the
// previous value is zero: there is no meaningful baseline, so the change is
// reported as not applicable with a neutral direction instead of dividing
// by zero.
type Change struct {
	Percent   *float64  `json:"percent,omitempty"`
	Direction Direction `json:"direction"`
}

// CalculateChange computes the signed percentage change from previous to
// current.
func CalculateChange(current, previous float64) Change {
	if previous == 0 {
		return Change{Direction: DirectionUnchanged}
	}

	percent := (current - previous) / previous * 100

	direction := DirectionUnchanged
	switch {
	case percent > 0:
		direction = DirectionIncreased
	case percent < 0:
		direction = DirectionDecreased
	}

	return Change{Percent: &percent, Direction: direction}
}
