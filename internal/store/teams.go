package store

import (
	"context"
	"crypto/rand"
	"database/sql"
	"errors"
	"fmt"
	"math/big"
	"strings"
)

const (
	joinCodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	joinCodeLength   = 6
	joinCodeAttempts = 10
)

// CreateTeam inserts a team with a fresh join code
func (db *DB) CreateTeam(ctx context.Context, name string, targetReadiness int) (*Team, error) {
	for attempt := 0; attempt < joinCodeAttempts; attempt++ {
		code, err := generateJoinCode()
		if err != nil {
			return nil, fmt.Errorf("generating join code: %w", err)
		}

		result, err := db.ExecContext(ctx, `
			INSERT INTO teams (name, target_readiness, join_code) VALUES (?, ?, ?)
		`, name, targetReadiness, code)
		if isUniqueViolation(err, "teams.join_code") {
			continue
		}
		if isUniqueViolation(err, "teams.name") {
			return nil, fmt.Errorf("team %q: %w", name, ErrDuplicateName)
		}
		if err != nil {
			return nil, err
		}

		id, err := result.LastInsertId()
		if err != nil {
			return nil, err
		}
		return &Team{ID: id, Name: name, TargetReadiness: targetReadiness, JoinCode: code}, nil
	}
	return nil, errors.New("could not allocate a unique join code")
}

// GetTeam retrieves a team by ID
func (db *DB) GetTeam(ctx context.Context, id int64) (*Team, error) {
	row := db.QueryRowContext(ctx, `
		SELECT id, name, target_readiness, COALESCE(join_code, '') FROM teams WHERE id = ?
	`, id)
	return scanTeam(row)
}

// GetTeamByName retrieves a team by its unique name
func (db *DB) GetTeamByName(ctx context.Context, name string) (*Team, error) {
	row := db.QueryRowContext(ctx, `
		SELECT id, name, target_readiness, COALESCE(join_code, '') FROM teams WHERE name = ?
	`, name)
	return scanTeam(row)
}

// GetTeamByJoinCode retrieves a team by its join code
func (db *DB) GetTeamByJoinCode(ctx context.Context, code string) (*Team, error) {
	row := db.QueryRowContext(ctx, `
		SELECT id, name, target_readiness, COALESCE(join_code, '') FROM teams WHERE join_code = ?
	`, strings.ToUpper(strings.TrimSpace(code)))
	return scanTeam(row)
}

// UpdateTeamTarget sets the team's default target midpoint
func (db *DB) UpdateTeamTarget(ctx context.Context, id int64, target int) error {
	result, err := db.ExecContext(ctx, `
		UPDATE teams SET target_readiness = ? WHERE id = ?
	`, target, id)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrTeamNotFound
	}
	return nil
}

func scanTeam(row *sql.Row) (*Team, error) {
	var t Team
	err := row.Scan(&t.ID, &t.Name, &t.TargetReadiness, &t.JoinCode)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrTeamNotFound
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// generateJoinCode returns a random 6-character A-Z0-9 code
func generateJoinCode() (string, error) {
	max := big.NewInt(int64(len(joinCodeAlphabet)))
	var b strings.Builder
	for i := 0; i < joinCodeLength; i++ {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		b.WriteByte(joinCodeAlphabet[n.Int64()])
	}
	return b.String(), nil
}

// isUniqueViolation reports whether err is a SQLite UNIQUE failure on the given column
func isUniqueViolation(err error, column string) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") && strings.Contains(msg, column)
}
