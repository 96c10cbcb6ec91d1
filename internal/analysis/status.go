package analysis

import (
	"time"

	"gameready/internal/schedule"
	"gameready/internal/store"
)

// StatusLabel is the single flag shown per athlete per day
type StatusLabel string

const (
	StatusNone         StatusLabel = ""
	StatusRest         StatusLabel = "rest"
	StatusAtRisk       StatusLabel = "at_risk"
	StatusNonCompliant StatusLabel = "non_compliant"
	StatusMultiTeam    StatusLabel = "multi_team"
)

// WindowSize is the number of trailing days the classifier looks at
const WindowSize = 3

// Thresholds for the rest label, inclusive
const (
	RestSorenessMax = 3
	RestEnergyMax   = 4
)

// ReportWindow holds the reports for date, date-1 and date-2.
// Index 0 is the target date. A nil report means nothing was submitted.
type ReportWindow struct {
	Dates   [WindowSize]time.Time
	Reports [WindowSize]*store.Report
}

// NewReportWindow places an athlete's reports into the window ending at date.
// Reports outside the window are ignored.
func NewReportWindow(date time.Time, reports []store.Report) ReportWindow {
	var w ReportWindow
	date = schedule.Truncate(date)
	for i := range w.Dates {
		w.Dates[i] = date.AddDate(0, 0, -i)
	}
	for i := range reports {
		key := schedule.DateKey(reports[i].Date)
		for j, d := range w.Dates {
			if schedule.DateKey(d) == key {
				w.Reports[j] = &reports[i]
			}
		}
	}
	return w
}

// Today returns the report for the target date, or nil
func (w ReportWindow) Today() *store.Report {
	return w.Reports[0]
}

// Missing counts the days in the window without a report
func (w ReportWindow) Missing() int {
	n := 0
	for _, r := range w.Reports {
		if r == nil {
			n++
		}
	}
	return n
}

// From returns the first date of the window (date-2)
func (w ReportWindow) From() time.Time {
	return w.Dates[WindowSize-1]
}

// StatusInput is everything the classifier needs for one athlete on one day
type StatusInput struct {
	Window ReportWindow

	// RangeFor resolves the target range for a date in the window
	RangeFor func(date time.Time) TargetRange

	// TeamCount is the number of distinct teams the athlete belongs to
	TeamCount int
}

// ClassifyStatus returns the highest-precedence label that applies:
// rest, then at_risk, then non_compliant, then multi_team.
func ClassifyStatus(in StatusInput) StatusLabel {
	switch {
	case isRest(in.Window):
		return StatusRest
	case isAtRisk(in.Window, in.RangeFor):
		return StatusAtRisk
	case isNonCompliant(in.Window):
		return StatusNonCompliant
	case in.TeamCount > 1:
		return StatusMultiTeam
	default:
		return StatusNone
	}
}

func isRest(w ReportWindow) bool {
	today := w.Today()
	if today == nil {
		return false
	}
	return today.Metrics.MuscleSoreness <= RestSorenessMax &&
		today.Metrics.EnergyFatigue <= RestEnergyMax
}

// isAtRisk needs a report on every day of the window, each strictly below
// that day's minimum. A missing day breaks the streak.
func isAtRisk(w ReportWindow, rangeFor func(time.Time) TargetRange) bool {
	if rangeFor == nil {
		return false
	}
	for i, r := range w.Reports {
		if r == nil {
			return false
		}
		if r.Score >= rangeFor(w.Dates[i]).Min {
			return false
		}
	}
	return true
}

// isNonCompliant counts absences only; low scores don't matter here.
func isNonCompliant(w ReportWindow) bool {
	return w.Missing() >= 2
}
