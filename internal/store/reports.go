package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"gameready/internal/schedule"
)

const reportColumns = `id, athlete_id, date, sleep_quality, energy_fatigue, muscle_soreness,
	mood_stress, motivation, nutrition_quality, hydration, readiness_score, comments`

// UpsertReport inserts or replaces an athlete's report for r.Date.
// The caller computes r.Score from r.Metrics.
func (db *DB) UpsertReport(ctx context.Context, r *Report) error {
	m := r.Metrics
	err := db.QueryRowContext(ctx, `
		INSERT INTO reports (
			athlete_id, date, sleep_quality, energy_fatigue, muscle_soreness,
			mood_stress, motivation, nutrition_quality, hydration, readiness_score, comments
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(athlete_id, date) DO UPDATE SET
			sleep_quality = excluded.sleep_quality,
			energy_fatigue = excluded.energy_fatigue,
			muscle_soreness = excluded.muscle_soreness,
			mood_stress = excluded.mood_stress,
			motivation = excluded.motivation,
			nutrition_quality = excluded.nutrition_quality,
			hydration = excluded.hydration,
			readiness_score = excluded.readiness_score,
			comments = excluded.comments,
			updated_at = CURRENT_TIMESTAMP
		RETURNING id
	`,
		r.AthleteID, schedule.DateKey(r.Date),
		m.SleepQuality, m.EnergyFatigue, m.MuscleSoreness,
		m.MoodStress, m.Motivation, m.NutritionQuality, m.Hydration,
		r.Score, r.Comments,
	).Scan(&r.ID)
	return err
}

// GetReport retrieves an athlete's report for a date
func (db *DB) GetReport(ctx context.Context, athleteID int64, date time.Time) (*Report, error) {
	row := db.QueryRowContext(ctx, `
		SELECT `+reportColumns+`
		FROM reports WHERE athlete_id = ? AND date = ?
	`, athleteID, schedule.DateKey(date))

	r, err := scanReport(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrReportNotFound
	}
	if err != nil {
		return nil, err
	}
	return r, nil
}

// ReportsInRange returns an athlete's reports with from <= date <= to, oldest first
func (db *DB) ReportsInRange(ctx context.Context, athleteID int64, from, to time.Time) ([]Report, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT `+reportColumns+`
		FROM reports
		WHERE athlete_id = ? AND date >= ? AND date <= ?
		ORDER BY date
	`, athleteID, schedule.DateKey(from), schedule.DateKey(to))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanReports(rows)
}

// TeamReportsInRange returns reports of the team's athletes with from <= date <= to
func (db *DB) TeamReportsInRange(ctx context.Context, teamID int64, from, to time.Time) ([]Report, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT r.id, r.athlete_id, r.date, r.sleep_quality, r.energy_fatigue, r.muscle_soreness,
			r.mood_stress, r.motivation, r.nutrition_quality, r.hydration, r.readiness_score, r.comments
		FROM reports r
		JOIN memberships m ON m.user_id = r.athlete_id
		JOIN users u ON u.id = r.athlete_id
		WHERE m.team_id = ? AND u.role = ? AND r.date >= ? AND r.date <= ?
		ORDER BY r.date, r.athlete_id
	`, teamID, string(RoleAthlete), schedule.DateKey(from), schedule.DateKey(to))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanReports(rows)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanReport(row rowScanner) (*Report, error) {
	var r Report
	var date string
	err := row.Scan(
		&r.ID, &r.AthleteID, &date,
		&r.Metrics.SleepQuality, &r.Metrics.EnergyFatigue, &r.Metrics.MuscleSoreness,
		&r.Metrics.MoodStress, &r.Metrics.Motivation, &r.Metrics.NutritionQuality, &r.Metrics.Hydration,
		&r.Score, &r.Comments,
	)
	if err != nil {
		return nil, err
	}

	r.Date, err = schedule.ParseDate(date)
	if err != nil {
		return nil, fmt.Errorf("report %d: %w", r.ID, err)
	}
	return &r, nil
}

func scanReports(rows *sql.Rows) ([]Report, error) {
	var reports []Report
	for rows.Next() {
		r, err := scanReport(rows)
		if err != nil {
			return nil, err
		}
		reports = append(reports, *r)
	}
	return reports, rows.Err()
}
