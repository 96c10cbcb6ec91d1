package analysis

import (
	"math"
	"testing"
	"time"

	"gameready/internal/schedule"
	"gameready/internal/store"
)

func TestTeamPrimaryLimiter(t *testing.T) {
	sets := []store.MetricSet{
		with(map[Metric]int{Hydration: 2}),
		with(map[Metric]int{Sleep: 3}),
		with(map[Metric]int{Sleep: 4}),
	}

	got, ok := TeamPrimaryLimiter(sets)
	if !ok {
		t.Fatal("TeamPrimaryLimiter() ok = false")
	}
	if got.Metric != Sleep || got.Count != 2 || got.Total != 3 {
		t.Errorf("TeamPrimaryLimiter() = %+v, want sleep 2/3", got)
	}
	if math.Abs(got.Percent-66.7) > 1e-9 {
		t.Errorf("Percent = %v, want 66.7", got.Percent)
	}

	// Ties go to the metric seen first
	tie, _ := TeamPrimaryLimiter([]store.MetricSet{
		with(map[Metric]int{Hydration: 2}),
		with(map[Metric]int{Sleep: 3}),
	})
	if tie.Metric != Hydration {
		t.Errorf("TeamPrimaryLimiter(tie) = %v, want hydration", tie.Metric)
	}

	if _, ok := TeamPrimaryLimiter(nil); ok {
		t.Error("TeamPrimaryLimiter(nil) ok = true, want false")
	}
}

func TestBaselineAndConsistency(t *testing.T) {
	tests := []struct {
		name        string
		scores      []int
		baseline    float64
		consistency float64
		ok          bool
	}{
		{"too few", []int{70, 80}, 0, 0, false},
		{"even spread", []int{70, 80, 90}, 80, 10, true},
		// mean 63, sample variance 26/2
		{"uneven", []int{60, 62, 67}, 63, 3.6, true},
		{"steady", []int{75, 75, 75, 75}, 75, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, ok := Baseline(tt.scores)
			if ok != tt.ok || math.Abs(b-tt.baseline) > 1e-9 {
				t.Errorf("Baseline() = %v, %v, want %v, %v", b, ok, tt.baseline, tt.ok)
			}
			c, ok := Consistency(tt.scores)
			if ok != tt.ok || math.Abs(c-tt.consistency) > 1e-9 {
				t.Errorf("Consistency() = %v, %v, want %v, %v", c, ok, tt.consistency, tt.ok)
			}
		})
	}
}

func TestSubmissionStreak(t *testing.T) {
	today := schedule.Day(2025, 10, 15)
	days := func(offsets ...int) []time.Time {
		var out []time.Time
		for _, o := range offsets {
			out = append(out, today.AddDate(0, 0, -o))
		}
		return out
	}

	tests := []struct {
		name     string
		dates    []time.Time
		expected int
	}{
		{"none", nil, 0},
		{"missed today", days(1, 2, 3), 0},
		{"gap stops the count", days(0, 1, 2, 4, 5), 3},
		{"today only", days(0), 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SubmissionStreak(tt.dates, today); got != tt.expected {
				t.Errorf("SubmissionStreak() = %d, want %d", got, tt.expected)
			}
		})
	}
}

func TestMetricAverages(t *testing.T) {
	sets := []store.MetricSet{
		with(map[Metric]int{Hydration: 3}),
		with(map[Metric]int{Hydration: 4, Sleep: 10}),
	}
	avgs := MetricAverages(sets)

	if avgs[Hydration] != 3.5 {
		t.Errorf("avgs[hydration] = %v, want 3.5", avgs[Hydration])
	}
	if avgs[Sleep] != 9 {
		t.Errorf("avgs[sleep] = %v, want 9", avgs[Sleep])
	}

	lowest, best, ok := MetricExtremes(avgs)
	if !ok || lowest != Hydration || best != Sleep {
		t.Errorf("MetricExtremes() = %v, %v, %v, want hydration, sleep, true", lowest, best, ok)
	}

	if _, _, ok := MetricExtremes(MetricAverages(nil)); ok {
		t.Error("MetricExtremes(empty) ok = true, want false")
	}
}

func TestMeanScore(t *testing.T) {
	scores := make([]int, 0, 20)
	for i := 0; i < 20; i++ {
		if i < 11 {
			scores = append(scores, 70)
		} else {
			scores = append(scores, 71)
		}
	}

	got, ok := MeanScore(scores)
	if !ok || math.Abs(got-70.45) > 1e-9 {
		t.Errorf("MeanScore() = %v, %v, want 70.45", got, ok)
	}
	if avg, _ := AverageScore(scores); avg != 70.5 {
		t.Errorf("AverageScore() = %v, want 70.5", avg)
	}
	if _, ok := MeanScore(nil); ok {
		t.Error("MeanScore(nil) ok = true, want false")
	}
}
