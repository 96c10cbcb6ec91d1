package analysis

import (
	"math"

	"gameready/internal/store"
)

// Readiness weights. They sum to 1.0.
const (
	SleepWeight      = 0.22
	EnergyWeight     = 0.20
	SorenessWeight   = 0.15
	MoodWeight       = 0.15
	MotivationWeight = 0.10
	NutritionWeight  = 0.10
	HydrationWeight  = 0.08
)

// Weights is a weight vector over the seven metrics
type Weights struct {
	Sleep      float64
	Energy     float64
	Soreness   float64
	Mood       float64
	Motivation float64
	Nutrition  float64
	Hydration  float64
}

// DefaultWeights returns the standard readiness weights
func DefaultWeights() Weights {
	return Weights{
		Sleep:      SleepWeight,
		Energy:     EnergyWeight,
		Soreness:   SorenessWeight,
		Mood:       MoodWeight,
		Motivation: MotivationWeight,
		Nutrition:  NutritionWeight,
		Hydration:  HydrationWeight,
	}
}

// Sum returns the total of all weights
func (w Weights) Sum() float64 {
	return w.Sleep + w.Energy + w.Soreness + w.Mood + w.Motivation + w.Nutrition + w.Hydration
}

// Score converts a report's metrics into a 0-100 readiness score
func Score(ms store.MetricSet) int {
	return ScoreWith(ms, DefaultWeights())
}

// ScoreWith scores metrics against an arbitrary weight vector.
// score = round(weighted average / 10 * 100), halves rounded away from zero.
func ScoreWith(ms store.MetricSet, w Weights) int {
	weighted := float64(ms.SleepQuality)*w.Sleep +
		float64(ms.EnergyFatigue)*w.Energy +
		float64(ms.MuscleSoreness)*w.Soreness +
		float64(ms.MoodStress)*w.Mood +
		float64(ms.Motivation)*w.Motivation +
		float64(ms.NutritionQuality)*w.Nutrition +
		float64(ms.Hydration)*w.Hydration

	pct := weighted / 10 * 100

	// Snap float noise first so 50.49999999 is treated as the 50.5 it represents
	pct = math.Round(pct*1e9) / 1e9

	score := int(math.Round(pct))
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
