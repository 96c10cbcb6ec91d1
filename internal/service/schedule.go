package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"gameready/internal/analysis"
	"gameready/internal/logging"
	"gameready/internal/schedule"
	"gameready/internal/store"
	"gameready/internal/validate"
)

// ScheduleService manages a team's day types and calendar
type ScheduleService struct {
	store  *store.DB
	logger *slog.Logger
	locks  *teamLocks
}

// NewScheduleService creates a new schedule service
func NewScheduleService(store *store.DB, logger *slog.Logger) *ScheduleService {
	return &ScheduleService{
		store:  store,
		logger: logging.OrDiscard(logger),
		locks:  newTeamLocks(),
	}
}

// CalendarDay is one cell of the month calendar
type CalendarDay struct {
	Date        time.Time
	Weekday     schedule.Weekday
	DayType     *store.DayType // nil for no day type
	Override    schedule.Override
	Range       analysis.TargetRange
	ReportCount int
	AvgScore    float64 // valid when ReportCount > 0
}

// update runs fn against the team's schedule under the team lock, in one
// transaction, and logs the outcome with a correlation id
func (s *ScheduleService) update(ctx context.Context, teamID int64, op string, fn func(*schedule.Schedule) error, attrs ...any) error {
	unlock := s.locks.lock(teamID)
	defer unlock()

	opID := uuid.NewString()
	start := time.Now()
	err := s.store.UpdateSchedule(ctx, teamID, fn)

	attrs = append(attrs,
		logging.FieldOp, op,
		logging.FieldOpID, opID,
		logging.FieldTeamID, teamID,
		logging.FieldDurationMS, time.Since(start).Milliseconds(),
	)
	if err != nil {
		s.logger.Error("schedule update failed", append(attrs, "error", err)...)
		return fmt.Errorf("%s: %w", op, err)
	}
	s.logger.Info("schedule updated", attrs...)
	return nil
}

// checkDayType verifies a day type id belongs to the team. nil passes.
func (s *ScheduleService) checkDayType(ctx context.Context, teamID int64, id *int64) error {
	if id == nil {
		return nil
	}
	_, err := s.store.GetDayType(ctx, teamID, *id)
	if errors.Is(err, store.ErrDayTypeNotFound) {
		return fmt.Errorf("day type %d: %w", *id, ErrDayTypeNotInTeam)
	}
	return err
}

// SetDate writes a date override. A nil id clears the date, which blocks the
// weekly pattern for that date.
func (s *ScheduleService) SetDate(ctx context.Context, teamID int64, date time.Time, dayTypeID *int64) error {
	if err := s.checkDayType(ctx, teamID, dayTypeID); err != nil {
		return err
	}
	return s.update(ctx, teamID, "set_date", func(sched *schedule.Schedule) error {
		sched.SetDate(date, dayTypeID)
		return nil
	}, logging.FieldDate, schedule.DateKey(date))
}

// SetWeekday writes the weekly pattern. A nil id removes the weekday entry.
func (s *ScheduleService) SetWeekday(ctx context.Context, teamID int64, wd schedule.Weekday, dayTypeID *int64) error {
	if err := s.checkDayType(ctx, teamID, dayTypeID); err != nil {
		return err
	}
	return s.update(ctx, teamID, "set_weekday", func(sched *schedule.Schedule) error {
		sched.SetWeekday(wd, dayTypeID)
		return nil
	}, "weekday", string(wd))
}

// SetAllWeekdays assigns one day type to every weekday
func (s *ScheduleService) SetAllWeekdays(ctx context.Context, teamID, dayTypeID int64) error {
	if err := s.checkDayType(ctx, teamID, &dayTypeID); err != nil {
		return err
	}
	return s.update(ctx, teamID, "set_all_weekdays", func(sched *schedule.Schedule) error {
		sched.SetAllWeekdays(dayTypeID)
		return nil
	}, logging.FieldDayTypeID, dayTypeID)
}

// ClearMonth clears every date of the month. It returns the number of dates written.
func (s *ScheduleService) ClearMonth(ctx context.Context, teamID int64, m schedule.Month) (int, error) {
	var n int
	err := s.update(ctx, teamID, "clear_month", func(sched *schedule.Schedule) error {
		n = sched.ClearMonth(m)
		return nil
	}, logging.FieldMonth, m.String())
	return n, err
}

// CopyMonth copies src into dst by weekday occurrence. Day types that no longer
// exist for the team are copied as cleared.
func (s *ScheduleService) CopyMonth(ctx context.Context, teamID int64, src, dst schedule.Month) ([]schedule.Assignment, error) {
	tc, err := loadTeamContext(ctx, s.store, teamID)
	if err != nil {
		return nil, err
	}

	var assignments []schedule.Assignment
	err = s.update(ctx, teamID, "copy_month", func(sched *schedule.Schedule) error {
		assignments = sched.CopyMonth(src, dst, tc.exists)
		return nil
	}, "source", src.String(), logging.FieldMonth, dst.String())
	if err != nil {
		return nil, err
	}
	return assignments, nil
}

// CopyPreviousMonth copies the month before m into m
func (s *ScheduleService) CopyPreviousMonth(ctx context.Context, teamID int64, m schedule.Month) ([]schedule.Assignment, error) {
	return s.CopyMonth(ctx, teamID, m.Previous(), m)
}

// EffectiveDayType resolves the day type for a date, nil for none
func (s *ScheduleService) EffectiveDayType(ctx context.Context, teamID int64, date time.Time) (*store.DayType, error) {
	tc, err := loadTeamContext(ctx, s.store, teamID)
	if err != nil {
		return nil, err
	}
	return tc.dayType(date), nil
}

// TargetRange resolves the target range for a date
func (s *ScheduleService) TargetRange(ctx context.Context, teamID int64, date time.Time) (analysis.TargetRange, error) {
	tc, err := loadTeamContext(ctx, s.store, teamID)
	if err != nil {
		return analysis.TargetRange{}, err
	}
	return tc.rangeFor(date), nil
}

// Calendar resolves every date of a month with its range and team average
func (s *ScheduleService) Calendar(ctx context.Context, teamID int64, m schedule.Month) ([]CalendarDay, error) {
	tc, err := loadTeamContext(ctx, s.store, teamID)
	if err != nil {
		return nil, err
	}
	reports, err := s.store.TeamReportsInRange(ctx, teamID, m.First(), m.Last())
	if err != nil {
		return nil, fmt.Errorf("loading reports: %w", err)
	}

	scores := make(map[string][]int)
	for _, r := range reports {
		key := schedule.DateKey(r.Date)
		scores[key] = append(scores[key], r.Score)
	}

	days := make([]CalendarDay, 0, m.Days())
	for _, d := range m.Dates() {
		day := CalendarDay{
			Date:     d,
			Weekday:  schedule.WeekdayOf(d),
			DayType:  tc.dayType(d),
			Override: tc.schedule.Override(d),
			Range:    tc.rangeFor(d),
		}
		if avg, ok := analysis.AverageScore(scores[schedule.DateKey(d)]); ok {
			day.AvgScore = avg
			day.ReportCount = len(scores[schedule.DateKey(d)])
		}
		days = append(days, day)
	}
	return days, nil
}

// DayTypes returns the team's day types
func (s *ScheduleService) DayTypes(ctx context.Context, teamID int64) (map[int64]store.DayType, error) {
	return s.store.DayTypesForTeam(ctx, teamID)
}

// CreateDayType validates and stores a new day type
func (s *ScheduleService) CreateDayType(ctx context.Context, teamID int64, in validate.DayTypeInput) (*store.DayType, error) {
	dt, err := validate.DayType(teamID, in)
	if err != nil {
		return nil, err
	}
	if err := s.store.CreateDayType(ctx, dt); err != nil {
		return nil, err
	}
	s.logger.Info("day type created",
		logging.FieldTeamID, teamID,
		logging.FieldDayTypeID, dt.ID,
		"name", dt.Name,
	)
	return dt, nil
}

// UpdateDayType validates and stores edits to an existing day type
func (s *ScheduleService) UpdateDayType(ctx context.Context, teamID, id int64, in validate.DayTypeInput) (*store.DayType, error) {
	dt, err := validate.DayType(teamID, in)
	if err != nil {
		return nil, err
	}
	dt.ID = id
	if err := s.store.UpdateDayType(ctx, dt); err != nil {
		return nil, err
	}
	return dt, nil
}

// DeleteDayType removes a day type and clears the schedule entries that used it.
// It returns the number of entries cleared.
func (s *ScheduleService) DeleteDayType(ctx context.Context, teamID, id int64) (int, error) {
	unlock := s.locks.lock(teamID)
	defer unlock()

	cleared, err := s.store.DeleteDayType(ctx, teamID, id)
	if err != nil {
		return 0, err
	}
	s.logger.Info("day type deleted",
		logging.FieldTeamID, teamID,
		logging.FieldDayTypeID, id,
		logging.FieldCount, cleared,
	)
	return cleared, nil
}

// UpdateTeamTarget sets the team midpoint used when no day type applies
func (s *ScheduleService) UpdateTeamTarget(ctx context.Context, teamID int64, target int) error {
	if err := validate.TeamTarget(target); err != nil {
		return err
	}
	return s.store.UpdateTeamTarget(ctx, teamID, target)
}
