// Package scheduling is the pure core behind work order booking: interval
// overlap checks, per-technician workload aggregation, and auto-assignment
// selection. Everything here is deterministic and side-effect free; callers
// fetch the data, this package only decides.
package scheduling

import "time"

// TimeRange is a half-open interval [Start, End): the start is inclusive,
// the end exclusive, so adjacent ranges sharing an endpoint do not overlap.
type TimeRange struct {
	Start time.Time
	End   time.Time
}

// NewTimeRange builds a validated range. End must be strictly after Start.
func NewTimeRange(start, end time.Time) (TimeRange, error) {
	if !end.After(start) {
		return TimeRange{}, ErrInvalidRange
	}
	return TimeRange{Start: start, End: end}, nil
}

// Valid reports whether the range is well formed.
func (r TimeRange) Valid() bool {
	return r.End.After(r.Start)
}

// Overlaps reports whether two ranges share an open interior point.
// Touching endpoints (r.End == other.Start) are not an overlap.
func (r TimeRange) Overlaps(other TimeRange) bool {
	return r.Start.Before(other.End) && other.Start.Before(r.End)
}

// Duration returns the length of the range.
func (r TimeRange) Duration() time.Duration {
	return r.End.Sub(r.Start)
}

// Hours returns the length of the range in fractional hours.
func (r TimeRange) Hours() float64 {
	return r.Duration().Hours()
}

// SameDay reports whether t falls on the same calendar day as day,
// evaluated in day's location.
func SameDay(t, day time.Time) bool {
	t = t.In(day.Location())
	y1, m1, d1 := t.Date()
	y2, m2, d2 := day.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
