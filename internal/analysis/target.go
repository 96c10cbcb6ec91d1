package analysis

import (
	"fmt"

	"gameready/internal/store"
)

// DefaultHalfWidth is the distance either side of the team midpoint used
// when no day type applies
const DefaultHalfWidth = 5

// TargetRange is the acceptable readiness band for a date
type TargetRange struct {
	Min int
	Max int
}

// RangeStatus places a score relative to a TargetRange
type RangeStatus string

const (
	Above  RangeStatus = "above"
	Within RangeStatus = "in"
	Below  RangeStatus = "below"
)

// RangeFor returns the day type's own band, or midpoint ± 5 clamped to
// [0,100] when dt is nil.
func RangeFor(dt *store.DayType, midpoint int) TargetRange {
	if dt != nil {
		return TargetRange{Min: dt.TargetMin, Max: dt.TargetMax}
	}
	return TargetRange{
		Min: clamp(midpoint-DefaultHalfWidth, 0, 100),
		Max: clamp(midpoint+DefaultHalfWidth, 0, 100),
	}
}

// Classify reports whether score is above, within or below the range
func (r TargetRange) Classify(score int) RangeStatus {
	switch {
	case score > r.Max:
		return Above
	case score < r.Min:
		return Below
	default:
		return Within
	}
}

func (r TargetRange) String() string {
	return fmt.Sprintf("%d-%d", r.Min, r.Max)
}

// Midpoint returns the middle of the band, rounded down
func (r TargetRange) Midpoint() int {
	return (r.Min + r.Max) / 2
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
