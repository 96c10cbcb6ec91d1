package analysis

import (
	"math"
	"sort"
	"time"

	"gameready/internal/schedule"
	"gameready/internal/store"
)

// MinTrendSamples is the fewest scores needed for a baseline or consistency figure
const MinTrendSamples = 3

// BaselineDays is the trailing window used for an athlete's baseline
const BaselineDays = 14

// PrimaryLimiter returns the metric holding a report's score back the most
func PrimaryLimiter(ms store.MetricSet) Metric {
	return Lowest(ms)
}

// LimiterSummary describes the most common limiter across a team
type LimiterSummary struct {
	Metric  Metric
	Count   int
	Total   int
	Percent float64 // of Total, one decimal
}

// TeamPrimaryLimiter finds the metric that most often limits the given reports.
// Ties go to the metric seen first. ok is false for no reports.
func TeamPrimaryLimiter(sets []store.MetricSet) (summary LimiterSummary, ok bool) {
	if len(sets) == 0 {
		return LimiterSummary{}, false
	}

	counts := make(map[Metric]int)
	var order []Metric
	for _, ms := range sets {
		m := PrimaryLimiter(ms)
		if counts[m] == 0 {
			order = append(order, m)
		}
		counts[m]++
	}

	best := order[0]
	for _, m := range order[1:] {
		if counts[m] > counts[best] {
			best = m
		}
	}

	return LimiterSummary{
		Metric:  best,
		Count:   counts[best],
		Total:   len(sets),
		Percent: round1(float64(counts[best]) / float64(len(sets)) * 100),
	}, true
}

// Baseline returns the mean score to one decimal. ok is false with fewer than
// MinTrendSamples scores.
func Baseline(scores []int) (float64, bool) {
	if len(scores) < MinTrendSamples {
		return 0, false
	}
	return round1(mean(scores)), true
}

// Consistency returns the sample standard deviation of scores to one decimal.
// Lower is steadier. ok is false with fewer than MinTrendSamples scores.
func Consistency(scores []int) (float64, bool) {
	if len(scores) < MinTrendSamples {
		return 0, false
	}
	m := mean(scores)
	var sumSq float64
	for _, s := range scores {
		d := float64(s) - m
		sumSq += d * d
	}
	return round1(math.Sqrt(sumSq / float64(len(scores)-1))), true
}

// SubmissionStreak counts consecutive days with a report, ending today.
// No report today means a streak of zero.
func SubmissionStreak(dates []time.Time, today time.Time) int {
	seen := make(map[string]bool, len(dates))
	for _, d := range dates {
		seen[schedule.DateKey(d)] = true
	}

	streak := 0
	for d := schedule.Truncate(today); seen[schedule.DateKey(d)]; d = d.AddDate(0, 0, -1) {
		streak++
	}
	return streak
}

// MetricAverages returns the per-metric mean over a set of reports,
// each rounded to one decimal
func MetricAverages(sets []store.MetricSet) map[Metric]float64 {
	avgs := make(map[Metric]float64, len(AllMetrics))
	if len(sets) == 0 {
		return avgs
	}
	for _, m := range AllMetrics {
		total := 0
		for _, ms := range sets {
			total += Value(ms, m)
		}
		avgs[m] = round1(float64(total) / float64(len(sets)))
	}
	return avgs
}

// MetricExtremes returns the metrics with the lowest and highest average,
// ties to the first in AllMetrics
func MetricExtremes(avgs map[Metric]float64) (lowest, best Metric, ok bool) {
	if len(avgs) == 0 {
		return 0, 0, false
	}
	metrics := make([]Metric, 0, len(avgs))
	for m := range avgs {
		metrics = append(metrics, m)
	}
	sort.Slice(metrics, func(i, j int) bool { return metrics[i] < metrics[j] })

	lowest, best = metrics[0], metrics[0]
	for _, m := range metrics[1:] {
		if avgs[m] < avgs[lowest] {
			lowest = m
		}
		if avgs[m] > avgs[best] {
			best = m
		}
	}
	return lowest, best, true
}

// MeanScore returns the unrounded mean of scores, ok false when empty.
// Callers that show whole points round this once.
func MeanScore(scores []int) (float64, bool) {
	if len(scores) == 0 {
		return 0, false
	}
	return mean(scores), true
}

// AverageScore returns the mean of scores to one decimal, ok false when empty
func AverageScore(scores []int) (float64, bool) {
	if len(scores) == 0 {
		return 0, false
	}
	return round1(mean(scores)), true
}

func mean(values []int) float64 {
	total := 0
	for _, v := range values {
		total += v
	}
	return float64(total) / float64(len(values))
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
