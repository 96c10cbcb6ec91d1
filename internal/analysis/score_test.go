package analysis

import (
	"math"
	"testing"

	"gameready/internal/store"
)

func uniform(v int) store.MetricSet {
	return store.MetricSet{
		SleepQuality:     v,
		EnergyFatigue:    v,
		MuscleSoreness:   v,
		MoodStress:       v,
		Motivation:       v,
		NutritionQuality: v,
		Hydration:        v,
	}
}

func TestDefaultWeightsSumToOne(t *testing.T) {
	sum := DefaultWeights().Sum()
	if math.Abs(sum-1.0) > 1e-9 {
		t.Errorf("DefaultWeights().Sum() = %v, want 1.0", sum)
	}
}

func TestScore(t *testing.T) {
	tests := []struct {
		name     string
		metrics  store.MetricSet
		expected int
	}{
		{
			name:     "all tens",
			metrics:  uniform(10),
			expected: 100,
		},
		{
			name:     "all ones",
			metrics:  uniform(1),
			expected: 10,
		},
		{
			name:     "all sevens",
			metrics:  uniform(7),
			expected: 70,
		},
		{
			name: "sore and tired",
			// 3*.22 + 8*.20 + 2*.15 + 8*.15 + 8*.10 + 8*.10 + 8*.08 = 6.00
			metrics:  store.MetricSet{SleepQuality: 3, EnergyFatigue: 8, MuscleSoreness: 2, MoodStress: 8, Motivation: 8, NutritionQuality: 8, Hydration: 8},
			expected: 60,
		},
		{
			name: "half rounds away from zero",
			// 5*.22 + 5*.20 + 5*.15 + 6*.15 + 4*.10 + 5*.10 + 5*.08 = 5.05 -> 50.5
			metrics:  store.MetricSet{SleepQuality: 5, EnergyFatigue: 5, MuscleSoreness: 5, MoodStress: 6, Motivation: 4, NutritionQuality: 5, Hydration: 5},
			expected: 51,
		},
		{
			name: "sleep weighs most",
			// 10*.22 + 1*.78 = 2.98
			metrics:  store.MetricSet{SleepQuality: 10, EnergyFatigue: 1, MuscleSoreness: 1, MoodStress: 1, Motivation: 1, NutritionQuality: 1, Hydration: 1},
			expected: 30,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Score(tt.metrics)
			if got != tt.expected {
				t.Errorf("Score() = %d, want %d", got, tt.expected)
			}
			if again := Score(tt.metrics); again != got {
				t.Errorf("Score() not deterministic: %d then %d", got, again)
			}
		})
	}
}

func TestScoreBounds(t *testing.T) {
	for low := 1; low <= 10; low++ {
		for high := low; high <= 10; high++ {
			ms := store.MetricSet{
				SleepQuality:     low,
				EnergyFatigue:    high,
				MuscleSoreness:   low,
				MoodStress:       high,
				Motivation:       low,
				NutritionQuality: high,
				Hydration:        low,
			}
			score := Score(ms)
			if score < 10 || score > 100 {
				t.Errorf("Score(%+v) = %d, out of [10,100]", ms, score)
			}
		}
	}
}

func TestScoreWith(t *testing.T) {
	sleepOnly := Weights{Sleep: 1}
	ms := store.MetricSet{SleepQuality: 9, EnergyFatigue: 1, MuscleSoreness: 1, MoodStress: 1, Motivation: 1, NutritionQuality: 1, Hydration: 1}

	if got := ScoreWith(ms, sleepOnly); got != 90 {
		t.Errorf("ScoreWith(sleep only) = %d, want 90", got)
	}
}
