package service

import (
	"context"
	"fmt"
	"time"

	"gameready/internal/analysis"
	"gameready/internal/schedule"
	"gameready/internal/store"
)

// teamContext is a read-only snapshot of what's needed to resolve a team's
// calendar: the team, its schedule and its day types
type teamContext struct {
	team     *store.Team
	schedule *schedule.Schedule
	dayTypes map[int64]store.DayType
}

func loadTeamContext(ctx context.Context, db *store.DB, teamID int64) (*teamContext, error) {
	team, err := db.GetTeam(ctx, teamID)
	if err != nil {
		return nil, err
	}
	s, err := db.GetSchedule(ctx, teamID)
	if err != nil {
		return nil, err
	}
	types, err := db.DayTypesForTeam(ctx, teamID)
	if err != nil {
		return nil, fmt.Errorf("loading day types: %w", err)
	}
	return &teamContext{team: team, schedule: s, dayTypes: types}, nil
}

// dayType resolves the effective day type for a date, nil for none
func (tc *teamContext) dayType(date time.Time) *store.DayType {
	dt, ok := schedule.Lookup(tc.schedule, date, tc.dayTypes)
	if !ok {
		return nil
	}
	return &dt
}

// rangeFor resolves the target range for a date
func (tc *teamContext) rangeFor(date time.Time) analysis.TargetRange {
	return analysis.RangeFor(tc.dayType(date), tc.team.TargetReadiness)
}

// exists reports whether id is one of the team's day types
func (tc *teamContext) exists(id int64) bool {
	_, ok := tc.dayTypes[id]
	return ok
}
