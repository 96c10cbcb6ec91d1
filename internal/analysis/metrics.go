package analysis

import "gameready/internal/store"

// Metric identifies one of the seven report metrics
type Metric int

// Metrics in their fixed iteration order. The order breaks ties wherever a
// single metric has to be chosen.
const (
	Sleep Metric = iota
	Energy
	Soreness
	Mood
	Motivation
	Nutrition
	Hydration
)

// AllMetrics lists every metric in iteration order
var AllMetrics = [...]Metric{Sleep, Energy, Soreness, Mood, Motivation, Nutrition, Hydration}

var metricNames = [...]string{
	Sleep:      "sleep",
	Energy:     "energy",
	Soreness:   "soreness",
	Mood:       "mood",
	Motivation: "motivation",
	Nutrition:  "nutrition",
	Hydration:  "hydration",
}

var metricLabels = [...]string{
	Sleep:      "Sleep Quality",
	Energy:     "Energy",
	Soreness:   "Muscle Soreness",
	Mood:       "Mood / Stress",
	Motivation: "Motivation",
	Nutrition:  "Nutrition",
	Hydration:  "Hydration",
}

func (m Metric) String() string {
	if m < Sleep || m > Hydration {
		return "unknown"
	}
	return metricNames[m]
}

// Label returns a display name
func (m Metric) Label() string {
	if m < Sleep || m > Hydration {
		return "Unknown"
	}
	return metricLabels[m]
}

// Value returns the metric's 1-10 value from a report
func Value(ms store.MetricSet, m Metric) int {
	switch m {
	case Sleep:
		return ms.SleepQuality
	case Energy:
		return ms.EnergyFatigue
	case Soreness:
		return ms.MuscleSoreness
	case Mood:
		return ms.MoodStress
	case Motivation:
		return ms.Motivation
	case Nutrition:
		return ms.NutritionQuality
	case Hydration:
		return ms.Hydration
	}
	panic("analysis: unknown metric")
}

// Level is the coarse classification of a single metric value
type Level string

const (
	Low      Level = "low"
	Moderate Level = "moderate"
	High     Level = "high"
)

// Classify buckets a 1-10 value: >= 8 high, >= 5 moderate, else low
func Classify(value int) Level {
	switch {
	case value >= 8:
		return High
	case value >= 5:
		return Moderate
	default:
		return Low
	}
}

// Lowest returns the lowest-valued metric. Ties go to the metric that comes
// first in AllMetrics.
func Lowest(ms store.MetricSet) Metric {
	lowest := AllMetrics[0]
	lowestValue := Value(ms, lowest)
	for _, m := range AllMetrics[1:] {
		if v := Value(ms, m); v < lowestValue {
			lowest, lowestValue = m, v
		}
	}
	return lowest
}

// Highest returns the highest-valued metric, ties to the first in AllMetrics
func Highest(ms store.MetricSet) Metric {
	highest := AllMetrics[0]
	highestValue := Value(ms, highest)
	for _, m := range AllMetrics[1:] {
		if v := Value(ms, m); v > highestValue {
			highest, highestValue = m, v
		}
	}
	return highest
}

// LowMetrics returns the metrics classified Low, in iteration order
func LowMetrics(ms store.MetricSet) []Metric {
	var low []Metric
	for _, m := range AllMetrics {
		if Classify(Value(ms, m)) == Low {
			low = append(low, m)
		}
	}
	return low
}
