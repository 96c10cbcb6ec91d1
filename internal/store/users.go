package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// CreateUser inserts a user with the given role
func (db *DB) CreateUser(ctx context.Context, username string, role Role) (*User, error) {
	result, err := db.ExecContext(ctx, `
		INSERT INTO users (username, role) VALUES (?, ?)
	`, username, string(role))
	if isUniqueViolation(err, "users.username") {
		return nil, fmt.Errorf("user %q: %w", username, ErrDuplicateName)
	}
	if err != nil {
		return nil, err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, err
	}
	return db.GetUser(ctx, id)
}

// GetUser retrieves a user by ID
func (db *DB) GetUser(ctx context.Context, id int64) (*User, error) {
	return scanUser(db.QueryRowContext(ctx, `
		SELECT id, username, role, current_status, status_note, status_updated_at
		FROM users WHERE id = ?
	`, id))
}

// GetUserByUsername retrieves a user by username
func (db *DB) GetUserByUsername(ctx context.Context, username string) (*User, error) {
	return scanUser(db.QueryRowContext(ctx, `
		SELECT id, username, role, current_status, status_note, status_updated_at
		FROM users WHERE username = ?
	`, username))
}

func scanUser(row *sql.Row) (*User, error) {
	var u User
	var role, status, updatedAt string
	err := row.Scan(&u.ID, &u.Username, &role, &status, &u.StatusNote, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	u.Role = Role(role)
	u.Status = Availability(status)
	u.StatusUpdatedAt = parseTimestamp(updatedAt)
	return &u, nil
}

// SetAvailability updates an athlete's availability status and note
func (db *DB) SetAvailability(ctx context.Context, userID int64, status Availability, note string) error {
	result, err := db.ExecContext(ctx, `
		UPDATE users
		SET current_status = ?, status_note = ?, status_updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`, string(status), note, userID)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrUserNotFound
	}
	return nil
}

// AddMembership puts a user on a team. Adding an existing membership is a no-op.
func (db *DB) AddMembership(ctx context.Context, userID, teamID int64) error {
	_, err := db.ExecContext(ctx, `
		INSERT INTO memberships (user_id, team_id) VALUES (?, ?)
		ON CONFLICT(user_id, team_id) DO NOTHING
	`, userID, teamID)
	return err
}

// RemoveMembership takes a user off a team
func (db *DB) RemoveMembership(ctx context.Context, userID, teamID int64) error {
	_, err := db.ExecContext(ctx, `
		DELETE FROM memberships WHERE user_id = ? AND team_id = ?
	`, userID, teamID)
	return err
}

// TeamsForUser returns the de-duplicated team ids a user belongs to.
// An empty slice is a valid result.
func (db *DB) TeamsForUser(ctx context.Context, userID int64) ([]int64, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT DISTINCT team_id FROM memberships WHERE user_id = ? ORDER BY team_id
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := []int64{}
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// AthletesForTeam returns the team's athletes ordered by username
func (db *DB) AthletesForTeam(ctx context.Context, teamID int64) ([]User, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT u.id, u.username, u.role, u.current_status, u.status_note, u.status_updated_at
		FROM users u
		JOIN memberships m ON m.user_id = u.id
		WHERE m.team_id = ? AND u.role = ?
		ORDER BY u.username
	`, teamID, string(RoleAthlete))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []User
	for rows.Next() {
		var u User
		var role, status, updatedAt string
		if err := rows.Scan(&u.ID, &u.Username, &role, &status, &u.StatusNote, &updatedAt); err != nil {
			return nil, err
		}
		u.Role = Role(role)
		u.Status = Availability(status)
		u.StatusUpdatedAt = parseTimestamp(updatedAt)
		users = append(users, u)
	}
	return users, rows.Err()
}

// parseTimestamp parses SQLite's CURRENT_TIMESTAMP format, returning zero on failure
func parseTimestamp(s string) time.Time {
	t, err := time.Parse("2006-01-02 15:04:05", s)
	if err != nil {
		return time.Time{}
	}
	return t
}
