package service

import (
	"context"
	"fmt"
	"slices"
	"time"

	"gameready/internal/analysis"
	"gameready/internal/schedule"
	"gameready/internal/store"
)

// AthleteService builds an athlete's calendar views and trends
type AthleteService struct {
	store *store.DB
}

// NewAthleteService creates a new athlete service
func NewAthleteService(store *store.DB) *AthleteService {
	return &AthleteService{store: store}
}

// DayEntry is one date in an athlete's week or month view
type DayEntry struct {
	Date        time.Time
	Weekday     schedule.Weekday
	DayType     *store.DayType
	Range       analysis.TargetRange
	Report      *store.Report // nil when nothing was submitted
	RangeStatus analysis.RangeStatus
	Status      analysis.StatusLabel
}

// Summary is an athlete's recent trend
type Summary struct {
	Athlete store.User
	Teams   []int64
	Latest  *store.Report

	Streak int

	Baseline       float64 // mean of the last analysis.BaselineDays
	HasBaseline    bool
	Consistency    float64 // standard deviation, lower is steadier
	HasConsistency bool

	Limiter    analysis.Metric // of the latest report
	HasLimiter bool

	// Trend holds one score per reported day over TrendDays, oldest first
	TrendDates  []time.Time
	TrendScores []float64
}

// Week returns Monday to Sunday of the week containing date
func (s *AthleteService) Week(ctx context.Context, athleteID, teamID int64, date time.Time) ([]DayEntry, error) {
	date = schedule.Truncate(date)
	offset := slices.Index(schedule.Weekdays[:], schedule.WeekdayOf(date))
	monday := date.AddDate(0, 0, -offset)
	return s.entries(ctx, athleteID, teamID, monday, monday.AddDate(0, 0, WeekViewDays-1))
}

// Month returns every date of m
func (s *AthleteService) Month(ctx context.Context, athleteID, teamID int64, m schedule.Month) ([]DayEntry, error) {
	return s.entries(ctx, athleteID, teamID, m.First(), m.Last())
}

func (s *AthleteService) entries(ctx context.Context, athleteID, teamID int64, from, to time.Time) ([]DayEntry, error) {
	teams, err := s.store.TeamsForUser(ctx, athleteID)
	if err != nil {
		return nil, fmt.Errorf("loading teams: %w", err)
	}
	if !slices.Contains(teams, teamID) {
		return nil, fmt.Errorf("athlete %d, team %d: %w", athleteID, teamID, ErrNotMember)
	}

	tc, err := loadTeamContext(ctx, s.store, teamID)
	if err != nil {
		return nil, err
	}

	// Status windows reach back before from
	reports, err := s.store.ReportsInRange(ctx, athleteID, from.AddDate(0, 0, -(analysis.WindowSize-1)), to)
	if err != nil {
		return nil, fmt.Errorf("loading reports: %w", err)
	}

	var entries []DayEntry
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		window := analysis.NewReportWindow(d, reports)
		entry := DayEntry{
			Date:    d,
			Weekday: schedule.WeekdayOf(d),
			DayType: tc.dayType(d),
			Range:   tc.rangeFor(d),
			Report:  window.Today(),
			Status: analysis.ClassifyStatus(analysis.StatusInput{
				Window:    window,
				RangeFor:  tc.rangeFor,
				TeamCount: len(teams),
			}),
		}
		if entry.Report != nil {
			entry.RangeStatus = entry.Range.Classify(entry.Report.Score)
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// Summary computes an athlete's streak, baseline, consistency and trend as of today
func (s *AthleteService) Summary(ctx context.Context, athleteID int64, today time.Time) (*Summary, error) {
	today = schedule.Truncate(today)

	athlete, err := s.store.GetUser(ctx, athleteID)
	if err != nil {
		return nil, err
	}
	teams, err := s.store.TeamsForUser(ctx, athleteID)
	if err != nil {
		return nil, fmt.Errorf("loading teams: %w", err)
	}
	reports, err := s.store.ReportsInRange(ctx, athleteID, today.AddDate(0, 0, -StreakLookbackDays), today)
	if err != nil {
		return nil, fmt.Errorf("loading reports: %w", err)
	}

	summary := &Summary{Athlete: *athlete, Teams: teams}

	dates := make([]time.Time, 0, len(reports))
	for _, r := range reports {
		dates = append(dates, r.Date)
	}
	summary.Streak = analysis.SubmissionStreak(dates, today)

	baselineFrom := today.AddDate(0, 0, -(analysis.BaselineDays - 1))
	trendFrom := today.AddDate(0, 0, -(TrendDays - 1))
	var recent []int
	for _, r := range reports {
		if !r.Date.Before(baselineFrom) {
			recent = append(recent, r.Score)
		}
		if !r.Date.Before(trendFrom) {
			summary.TrendDates = append(summary.TrendDates, r.Date)
			summary.TrendScores = append(summary.TrendScores, float64(r.Score))
		}
	}
	summary.Baseline, summary.HasBaseline = analysis.Baseline(recent)
	summary.Consistency, summary.HasConsistency = analysis.Consistency(recent)

	if len(reports) > 0 {
		latest := reports[len(reports)-1]
		summary.Latest = &latest
		summary.Limiter = analysis.PrimaryLimiter(latest.Metrics)
		summary.HasLimiter = true
	}
	return summary, nil
}
