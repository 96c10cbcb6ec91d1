package analysis

import "gameready/internal/store"

// feedbackState is what every feedback rule gets to look at
type feedbackState struct {
	metrics store.MetricSet
	lowest  Metric
	low     map[Metric]bool
}

func (s feedbackState) isLow(m Metric) bool {
	return s.low[m]
}

// lowestWith matches when m is the lowest metric and other is also low
func lowestWith(m, other Metric) func(feedbackState) bool {
	return func(s feedbackState) bool {
		return s.lowest == m && s.isLow(other)
	}
}

// onlyLow matches when m is the one and only low metric
func onlyLow(m Metric) func(feedbackState) bool {
	return func(s feedbackState) bool {
		return s.lowest == m && len(s.low) == 1
	}
}

type feedbackRule struct {
	name    string
	when    func(feedbackState) bool
	message string
}

// feedbackRules are evaluated top to bottom; the first match wins.
// Rules overlap, so the order is part of the behavior.
var feedbackRules = []feedbackRule{
	{
		name:    "four or more low",
		when:    func(s feedbackState) bool { return len(s.low) >= 4 },
		message: "Your system needs recovery. Focus on rest, hydration, and nutrition today.",
	},
	{
		name:    "three or more low",
		when:    func(s feedbackState) bool { return len(s.low) >= 3 },
		message: "Multiple areas need attention. Prioritise recovery and lighter training today.",
	},
	{
		name:    "soreness and sleep",
		when:    lowestWith(Soreness, Sleep),
		message: "Muscle fatigue may be linked to poor sleep. Prioritise rest and stretching.",
	},
	{
		name:    "energy and sleep",
		when:    lowestWith(Energy, Sleep),
		message: "Low energy likely from poor sleep. Focus on sleep hygiene and recovery.",
	},
	{
		name:    "sleep and mood",
		when:    lowestWith(Sleep, Mood),
		message: "Poor sleep affecting mood. Create a calming bedtime routine.",
	},
	{
		name:    "soreness and hydration",
		when:    lowestWith(Soreness, Hydration),
		message: "Soreness may be tied to dehydration. Drink more water and move lightly today.",
	},
	{
		name:    "energy and hydration",
		when:    lowestWith(Energy, Hydration),
		message: "Dehydration affecting energy. Increase fluid intake throughout the day.",
	},
	{
		name:    "hydration and nutrition",
		when:    lowestWith(Hydration, Nutrition),
		message: "Poor hydration and nutrition. Focus on balanced meals and regular water intake.",
	},
	{
		name:    "soreness and nutrition",
		when:    lowestWith(Soreness, Nutrition),
		message: "Soreness likely due to poor fuelling. Eat balanced meals and prioritise recovery.",
	},
	{
		name:    "energy and nutrition",
		when:    lowestWith(Energy, Nutrition),
		message: "Low energy from poor nutrition. Eat regular, balanced meals today.",
	},
	{
		name:    "motivation and nutrition",
		when:    lowestWith(Motivation, Nutrition),
		message: "Low motivation may be linked to poor nutrition. Fuel your body properly.",
	},
	{
		name:    "motivation and soreness",
		when:    lowestWith(Motivation, Soreness),
		message: "Reduced motivation may come from soreness — take a low-impact day.",
	},
	{
		name:    "mood and sleep",
		when:    lowestWith(Mood, Sleep),
		message: "Poor mood linked to sleep issues. Prioritise rest and stress management.",
	},
	{
		name:    "motivation and mood",
		when:    lowestWith(Motivation, Mood),
		message: "Low motivation and mood. Consider light activity or mental recovery time.",
	},
	{
		name: "slept well, low energy",
		when: func(s feedbackState) bool {
			return s.lowest == Energy && !s.isLow(Sleep) &&
				s.metrics.SleepQuality >= 8 && s.metrics.EnergyFatigue < 8
		},
		message: "You slept well but energy is low — try light activity or extra recovery time.",
	},
	{
		name:    "soreness only",
		when:    onlyLow(Soreness),
		message: "Muscle soreness is your main concern today. Focus on gentle movement and recovery work.",
	},
	{
		name:    "sleep only",
		when:    onlyLow(Sleep),
		message: "Poor sleep is affecting your readiness. Prioritise sleep hygiene and recovery today.",
	},
	{
		name:    "energy only",
		when:    onlyLow(Energy),
		message: "Low energy levels detected. Consider lighter training or additional recovery time.",
	},
	{
		name:    "hydration only",
		when:    onlyLow(Hydration),
		message: "Hydration needs attention. Increase fluid intake throughout the day.",
	},
	{
		name:    "nutrition only",
		when:    onlyLow(Nutrition),
		message: "Nutrition quality is low. Focus on balanced meals and proper fuelling.",
	},
	{
		name:    "mood only",
		when:    onlyLow(Mood),
		message: "Mood and stress levels are elevated. Consider stress management and mental recovery.",
	},
	{
		name:    "motivation only",
		when:    onlyLow(Motivation),
		message: "Motivation is low today. Consider lighter activities or mental recovery time.",
	},
}

// Score-based messages used when no rule matches
const (
	FeedbackReady   = "You're fully recovered and ready to perform."
	FeedbackSmart   = "Train smart today and monitor recovery."
	FeedbackLighter = "Body needs lighter load or active recovery."
	FeedbackRest    = "Full rest recommended."
)

// Feedback explains a report in one sentence. score is the report's
// readiness score and only matters when no metric rule applies.
func Feedback(ms store.MetricSet, score int) string {
	msg, _ := feedbackFor(ms, score)
	return msg
}

// feedbackFor also returns the name of the rule that fired ("" for the fallback)
func feedbackFor(ms store.MetricSet, score int) (string, string) {
	state := feedbackState{
		metrics: ms,
		lowest:  Lowest(ms),
		low:     make(map[Metric]bool),
	}
	for _, m := range LowMetrics(ms) {
		state.low[m] = true
	}

	for _, r := range feedbackRules {
		if r.when(state) {
			return r.message, r.name
		}
	}

	switch {
	case score >= 80:
		return FeedbackReady, ""
	case score >= 60:
		return FeedbackSmart, ""
	case score >= 40:
		return FeedbackLighter, ""
	default:
		return FeedbackRest, ""
	}
}
