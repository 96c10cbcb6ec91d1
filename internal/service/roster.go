package service

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"gameready/internal/analysis"
	"gameready/internal/schedule"
	"gameready/internal/store"
)

// RosterService builds the coach's view of a team for one date
type RosterService struct {
	store *store.DB
}

// NewRosterService creates a new roster service
func NewRosterService(store *store.DB) *RosterService {
	return &RosterService{store: store}
}

// Roster is the coach's squad view for a date
type Roster struct {
	Team    store.Team
	Date    time.Time
	DayType *store.DayType
	Range   analysis.TargetRange

	// Team averages, rounded to whole points. Zero when nobody reported.
	TeamAverage     int
	HistoricAverage int                  // HistoricAverageDays ending on Date
	AverageStatus   analysis.RangeStatus // TeamAverage against Range

	Above  int
	Within int
	Below  int

	Submitted     int
	Total         int
	CompliancePct int

	Squad []RosterRow

	// Insights from the date's reports; empty when nobody reported
	MetricAverages map[analysis.Metric]float64
	LowestMetric   analysis.Metric
	BestMetric     analysis.Metric
	HasInsights    bool

	Limiter    analysis.LimiterSummary
	HasLimiter bool
}

// RosterRow is one athlete on the roster
type RosterRow struct {
	Athlete     store.User
	Report      *store.Report // nil when not submitted
	RangeStatus analysis.RangeStatus
	Status      analysis.StatusLabel
	Limiter     analysis.Metric // valid when Report != nil
}

// Submitted reports whether the athlete reported on the roster date
func (r RosterRow) Submitted() bool {
	return r.Report != nil
}

// GetRoster builds the roster for a team on a date
func (s *RosterService) GetRoster(ctx context.Context, teamID int64, date time.Time) (*Roster, error) {
	date = schedule.Truncate(date)

	tc, err := loadTeamContext(ctx, s.store, teamID)
	if err != nil {
		return nil, err
	}
	athletes, err := s.store.AthletesForTeam(ctx, teamID)
	if err != nil {
		return nil, fmt.Errorf("loading athletes: %w", err)
	}

	// One query covers both the historic average and every status window
	from := date.AddDate(0, 0, -(HistoricAverageDays - 1))
	reports, err := s.store.TeamReportsInRange(ctx, teamID, from, date)
	if err != nil {
		return nil, fmt.Errorf("loading reports: %w", err)
	}

	byAthlete := make(map[int64][]store.Report)
	var historic []int
	for _, r := range reports {
		byAthlete[r.AthleteID] = append(byAthlete[r.AthleteID], r)
		historic = append(historic, r.Score)
	}

	roster := &Roster{
		Team:    *tc.team,
		Date:    date,
		DayType: tc.dayType(date),
		Range:   tc.rangeFor(date),
		Total:   len(athletes),
	}
	if avg, ok := analysis.MeanScore(historic); ok {
		roster.HistoricAverage = int(math.Round(avg))
	}

	var todayScores []int
	var todayMetrics []store.MetricSet
	for _, athlete := range athletes {
		teams, err := s.store.TeamsForUser(ctx, athlete.ID)
		if err != nil {
			return nil, fmt.Errorf("loading teams for athlete %d: %w", athlete.ID, err)
		}

		window := analysis.NewReportWindow(date, byAthlete[athlete.ID])
		row := RosterRow{
			Athlete: athlete,
			Report:  window.Today(),
			Status: analysis.ClassifyStatus(analysis.StatusInput{
				Window:    window,
				RangeFor:  tc.rangeFor,
				TeamCount: len(teams),
			}),
		}

		if row.Report != nil {
			row.RangeStatus = roster.Range.Classify(row.Report.Score)
			row.Limiter = analysis.PrimaryLimiter(row.Report.Metrics)
			todayScores = append(todayScores, row.Report.Score)
			todayMetrics = append(todayMetrics, row.Report.Metrics)

			switch row.RangeStatus {
			case analysis.Above:
				roster.Above++
			case analysis.Below:
				roster.Below++
			default:
				roster.Within++
			}
		}
		roster.Squad = append(roster.Squad, row)
	}

	roster.Submitted = len(todayScores)
	if roster.Total > 0 {
		roster.CompliancePct = int(math.Round(float64(roster.Submitted) / float64(roster.Total) * 100))
	}
	if avg, ok := analysis.MeanScore(todayScores); ok {
		roster.TeamAverage = int(math.Round(avg))
	}
	roster.AverageStatus = roster.Range.Classify(roster.TeamAverage)

	roster.MetricAverages = analysis.MetricAverages(todayMetrics)
	roster.LowestMetric, roster.BestMetric, roster.HasInsights = analysis.MetricExtremes(roster.MetricAverages)
	roster.Limiter, roster.HasLimiter = analysis.TeamPrimaryLimiter(todayMetrics)

	sortSquad(roster.Squad)
	return roster, nil
}

// sortSquad orders by score ascending with non-submitted athletes last
func sortSquad(rows []RosterRow) {
	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if a.Submitted() != b.Submitted() {
			return a.Submitted()
		}
		if !a.Submitted() {
			return false
		}
		return a.Report.Score < b.Report.Score
	})
}
