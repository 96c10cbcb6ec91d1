package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// CreateDayType inserts a day type for its team
func (db *DB) CreateDayType(ctx context.Context, dt *DayType) error {
	result, err := db.ExecContext(ctx, `
		INSERT INTO day_types (team_id, name, color, target_min, target_max)
		VALUES (?, ?, ?, ?, ?)
	`, dt.TeamID, dt.Name, dt.Color, dt.TargetMin, dt.TargetMax)
	if isUniqueViolation(err, "day_types.") {
		return fmt.Errorf("day type %q: %w", dt.Name, ErrDuplicateName)
	}
	if err != nil {
		return err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	dt.ID = id
	return nil
}

// UpdateDayType edits name, color and target band. The team must match.
func (db *DB) UpdateDayType(ctx context.Context, dt *DayType) error {
	result, err := db.ExecContext(ctx, `
		UPDATE day_types
		SET name = ?, color = ?, target_min = ?, target_max = ?
		WHERE id = ? AND team_id = ?
	`, dt.Name, dt.Color, dt.TargetMin, dt.TargetMax, dt.ID, dt.TeamID)
	if isUniqueViolation(err, "day_types.") {
		return fmt.Errorf("day type %q: %w", dt.Name, ErrDuplicateName)
	}
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrDayTypeNotFound
	}
	return nil
}

// GetDayType retrieves a day type scoped to a team
func (db *DB) GetDayType(ctx context.Context, teamID, id int64) (*DayType, error) {
	var dt DayType
	err := db.QueryRowContext(ctx, `
		SELECT id, team_id, name, color, target_min, target_max
		FROM day_types WHERE id = ? AND team_id = ?
	`, id, teamID).Scan(&dt.ID, &dt.TeamID, &dt.Name, &dt.Color, &dt.TargetMin, &dt.TargetMax)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrDayTypeNotFound
	}
	if err != nil {
		return nil, err
	}
	return &dt, nil
}

// DayTypesForTeam returns a team's day types keyed by ID
func (db *DB) DayTypesForTeam(ctx context.Context, teamID int64) (map[int64]DayType, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT id, team_id, name, color, target_min, target_max
		FROM day_types WHERE team_id = ?
		ORDER BY name
	`, teamID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	types := make(map[int64]DayType)
	for rows.Next() {
		var dt DayType
		if err := rows.Scan(&dt.ID, &dt.TeamID, &dt.Name, &dt.Color, &dt.TargetMin, &dt.TargetMax); err != nil {
			return nil, err
		}
		types[dt.ID] = dt
	}
	return types, rows.Err()
}

// DeleteDayType removes a day type and clears every schedule entry that
// references it, in one transaction. It returns the number of schedule
// entries that were cleared.
func (db *DB) DeleteDayType(ctx context.Context, teamID, id int64) (int, error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx, `
		DELETE FROM day_types WHERE id = ? AND team_id = ?
	`, id, teamID)
	if err != nil {
		return 0, err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return 0, err
	}
	if rows == 0 {
		return 0, ErrDayTypeNotFound
	}

	s, err := loadSchedule(ctx, tx, teamID)
	if err != nil {
		return 0, err
	}
	cleared := s.RemoveDayType(id)
	if cleared > 0 {
		if err := saveSchedule(ctx, tx, s); err != nil {
			return 0, err
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing transaction: %w", err)
	}
	return cleared, nil
}
