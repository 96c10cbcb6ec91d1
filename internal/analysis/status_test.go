package analysis

import (
	"testing"
	"time"

	"gameready/internal/schedule"
	"gameready/internal/store"
)

var statusDay = schedule.Day(2025, 10, 15)

func report(daysAgo, score int, ms store.MetricSet) store.Report {
	return store.Report{
		AthleteID: 1,
		Date:      statusDay.AddDate(0, 0, -daysAgo),
		Metrics:   ms,
		Score:     score,
	}
}

func fixedRange(min, max int) func(time.Time) TargetRange {
	return func(time.Time) TargetRange { return TargetRange{Min: min, Max: max} }
}

func TestNewReportWindow(t *testing.T) {
	reports := []store.Report{
		report(0, 70, uniform(7)),
		report(2, 50, uniform(5)),
		report(3, 90, uniform(9)), // outside the window
	}
	w := NewReportWindow(statusDay.Add(15*time.Hour), reports)

	if !w.Dates[0].Equal(statusDay) || !w.From().Equal(statusDay.AddDate(0, 0, -2)) {
		t.Errorf("Dates = %v, want %s back to two days earlier", w.Dates, schedule.DateKey(statusDay))
	}
	if w.Today() == nil || w.Today().Score != 70 {
		t.Errorf("Today() = %+v, want score 70", w.Today())
	}
	if w.Reports[1] != nil {
		t.Errorf("Reports[1] = %+v, want nil", w.Reports[1])
	}
	if w.Reports[2] == nil || w.Reports[2].Score != 50 {
		t.Errorf("Reports[2] = %+v, want score 50", w.Reports[2])
	}
	if w.Missing() != 1 {
		t.Errorf("Missing() = %d, want 1", w.Missing())
	}
}

func TestClassifyStatus(t *testing.T) {
	tired := store.MetricSet{SleepQuality: 4, EnergyFatigue: 3, MuscleSoreness: 2, MoodStress: 5, Motivation: 5, NutritionQuality: 5, Hydration: 5}
	fine := uniform(7)

	tests := []struct {
		name      string
		reports   []store.Report
		rangeFor  func(time.Time) TargetRange
		teamCount int
		expected  StatusLabel
	}{
		{
			name: "rest outranks at_risk and multi_team",
			reports: []store.Report{
				report(0, 35, tired),
				report(1, 40, fine),
				report(2, 40, fine),
			},
			rangeFor:  fixedRange(60, 80),
			teamCount: 2,
			expected:  StatusRest,
		},
		{
			name:      "rest needs both soreness and energy low",
			reports:   []store.Report{report(0, 70, store.MetricSet{SleepQuality: 7, EnergyFatigue: 5, MuscleSoreness: 2, MoodStress: 7, Motivation: 7, NutritionQuality: 7, Hydration: 7}), report(1, 70, fine), report(2, 70, fine)},
			rangeFor:  fixedRange(60, 80),
			teamCount: 1,
			expected:  StatusNone,
		},
		{
			name:      "rest outranks non_compliant",
			reports:   []store.Report{report(0, 35, tired)},
			rangeFor:  fixedRange(60, 80),
			teamCount: 1,
			expected:  StatusRest,
		},
		{
			name:      "three days below range",
			reports:   []store.Report{report(0, 50, fine), report(1, 55, fine), report(2, 59, fine)},
			rangeFor:  fixedRange(60, 80),
			teamCount: 2,
			expected:  StatusAtRisk,
		},
		{
			name:      "score equal to min is not below",
			reports:   []store.Report{report(0, 50, fine), report(1, 60, fine), report(2, 50, fine)},
			rangeFor:  fixedRange(60, 80),
			teamCount: 1,
			expected:  StatusNone,
		},
		{
			name:      "missing day breaks the streak",
			reports:   []store.Report{report(0, 50, fine), report(1, 50, fine)},
			rangeFor:  fixedRange(60, 80),
			teamCount: 2,
			expected:  StatusMultiTeam,
		},
		{
			name:    "range is resolved per day",
			reports: []store.Report{report(0, 50, fine), report(1, 50, fine), report(2, 50, fine)},
			rangeFor: func(d time.Time) TargetRange {
				if d.Equal(statusDay.AddDate(0, 0, -1)) {
					return TargetRange{Min: 40, Max: 60}
				}
				return TargetRange{Min: 60, Max: 80}
			},
			teamCount: 1,
			expected:  StatusNone,
		},
		{
			name:      "one report in three days",
			reports:   []store.Report{report(1, 90, fine)},
			rangeFor:  fixedRange(60, 80),
			teamCount: 2,
			expected:  StatusNonCompliant,
		},
		{
			name:      "no reports at all",
			reports:   nil,
			rangeFor:  fixedRange(60, 80),
			teamCount: 1,
			expected:  StatusNonCompliant,
		},
		{
			name:      "low scores alone are not non_compliant",
			reports:   []store.Report{report(0, 20, fine), report(2, 20, fine)},
			rangeFor:  fixedRange(60, 80),
			teamCount: 1,
			expected:  StatusNone,
		},
		{
			name:      "multi_team when nothing else applies",
			reports:   []store.Report{report(0, 70, fine), report(1, 70, fine), report(2, 70, fine)},
			rangeFor:  fixedRange(60, 80),
			teamCount: 3,
			expected:  StatusMultiTeam,
		},
		{
			name:      "single team and in range",
			reports:   []store.Report{report(0, 70, fine), report(1, 70, fine), report(2, 70, fine)},
			rangeFor:  fixedRange(60, 80),
			teamCount: 1,
			expected:  StatusNone,
		},
		{
			name:      "no range resolver skips at_risk",
			reports:   []store.Report{report(0, 10, fine), report(1, 10, fine), report(2, 10, fine)},
			rangeFor:  nil,
			teamCount: 1,
			expected:  StatusNone,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ClassifyStatus(StatusInput{
				Window:    NewReportWindow(statusDay, tt.reports),
				RangeFor:  tt.rangeFor,
				TeamCount: tt.teamCount,
			})
			if got != tt.expected {
				t.Errorf("ClassifyStatus() = %q, want %q", got, tt.expected)
			}
		})
	}
}
