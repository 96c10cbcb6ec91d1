package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"gameready/internal/schedule"
)

// queryer is satisfied by both *sql.DB and *sql.Tx
type queryer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// GetSchedule loads a team's schedule. A team without a stored schedule gets an empty one.
func (db *DB) GetSchedule(ctx context.Context, teamID int64) (*schedule.Schedule, error) {
	return loadSchedule(ctx, db.DB, teamID)
}

// UpdateSchedule loads the team's schedule, applies fn and saves the result in
// one transaction. If fn returns an error nothing is written.
func (db *DB) UpdateSchedule(ctx context.Context, teamID int64, fn func(*schedule.Schedule) error) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	s, err := loadSchedule(ctx, tx, teamID)
	if err != nil {
		return err
	}
	if err := fn(s); err != nil {
		return err
	}
	if err := saveSchedule(ctx, tx, s); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

func loadSchedule(ctx context.Context, q queryer, teamID int64) (*schedule.Schedule, error) {
	var weekly, overrides string
	err := q.QueryRowContext(ctx, `
		SELECT weekly_schedule, date_overrides FROM schedules WHERE team_id = ?
	`, teamID).Scan(&weekly, &overrides)
	if errors.Is(err, sql.ErrNoRows) {
		return schedule.New(teamID), nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading schedule for team %d: %w", teamID, err)
	}
	return schedule.Decode(teamID, []byte(weekly), []byte(overrides))
}

func saveSchedule(ctx context.Context, q queryer, s *schedule.Schedule) error {
	weekly, err := s.EncodeWeekly()
	if err != nil {
		return fmt.Errorf("encoding weekly schedule: %w", err)
	}
	overrides, err := s.EncodeOverrides()
	if err != nil {
		return fmt.Errorf("encoding date overrides: %w", err)
	}

	_, err = q.ExecContext(ctx, `
		INSERT INTO schedules (team_id, weekly_schedule, date_overrides, updated_at)
		VALUES (?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(team_id) DO UPDATE SET
			weekly_schedule = excluded.weekly_schedule,
			date_overrides = excluded.date_overrides,
			updated_at = CURRENT_TIMESTAMP
	`, s.TeamID, string(weekly), string(overrides))
	if err != nil {
		return fmt.Errorf("saving schedule for team %d: %w", s.TeamID, err)
	}
	return nil
}
