package store

import "database/sql"

// migrate runs all database migrations
func migrate(db *sql.DB) error {
	migrations := []string{
		// Teams
		`CREATE TABLE IF NOT EXISTS teams (
			id INTEGER PRIMARY KEY,
			name TEXT NOT NULL UNIQUE,
			target_readiness INTEGER NOT NULL DEFAULT 70
				CHECK (target_readiness BETWEEN 0 AND 100),
			join_code TEXT UNIQUE,
			created_at TEXT DEFAULT CURRENT_TIMESTAMP
		)`,

		// Users (athletes and coaches)
		`CREATE TABLE IF NOT EXISTS users (
			id INTEGER PRIMARY KEY,
			username TEXT NOT NULL UNIQUE,
			role TEXT NOT NULL DEFAULT 'ATHLETE',
			current_status TEXT NOT NULL DEFAULT 'AVAILABLE',
			status_note TEXT NOT NULL DEFAULT '',
			status_updated_at TEXT DEFAULT CURRENT_TIMESTAMP,
			created_at TEXT DEFAULT CURRENT_TIMESTAMP
		)`,

		// Team memberships (athletes may belong to several teams)
		`CREATE TABLE IF NOT EXISTS memberships (
			user_id INTEGER NOT NULL,
			team_id INTEGER NOT NULL,
			PRIMARY KEY (user_id, team_id),
			FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE,
			FOREIGN KEY (team_id) REFERENCES teams(id) ON DELETE CASCADE
		)`,

		`CREATE INDEX IF NOT EXISTS idx_memberships_team ON memberships(team_id)`,

		// Day types (coach-defined tags with a target band)
		`CREATE TABLE IF NOT EXISTS day_types (
			id INTEGER PRIMARY KEY,
			team_id INTEGER NOT NULL,
			name TEXT NOT NULL,
			color TEXT NOT NULL DEFAULT '#0d6efd',
			target_min INTEGER NOT NULL DEFAULT 60,
			target_max INTEGER NOT NULL DEFAULT 80,
			UNIQUE (team_id, name),
			CHECK (target_min BETWEEN 0 AND 100),
			CHECK (target_max BETWEEN 0 AND 100),
			CHECK (target_min <= target_max),
			FOREIGN KEY (team_id) REFERENCES teams(id) ON DELETE CASCADE
		)`,

		// Team schedules (weekly pattern + date overrides as JSON)
		`CREATE TABLE IF NOT EXISTS schedules (
			team_id INTEGER PRIMARY KEY,
			weekly_schedule TEXT NOT NULL DEFAULT '{}',
			date_overrides TEXT NOT NULL DEFAULT '{}',
			created_at TEXT DEFAULT CURRENT_TIMESTAMP,
			updated_at TEXT DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (team_id) REFERENCES teams(id) ON DELETE CASCADE
		)`,

		// Readiness reports (one per athlete per day)
		`CREATE TABLE IF NOT EXISTS reports (
			id INTEGER PRIMARY KEY,
			athlete_id INTEGER NOT NULL,
			date TEXT NOT NULL,
			sleep_quality INTEGER NOT NULL,
			energy_fatigue INTEGER NOT NULL,
			muscle_soreness INTEGER NOT NULL,
			mood_stress INTEGER NOT NULL,
			motivation INTEGER NOT NULL,
			nutrition_quality INTEGER NOT NULL,
			hydration INTEGER NOT NULL,
			readiness_score INTEGER NOT NULL CHECK (readiness_score BETWEEN 0 AND 100),
			comments TEXT NOT NULL DEFAULT '',
			created_at TEXT DEFAULT CURRENT_TIMESTAMP,
			updated_at TEXT DEFAULT CURRENT_TIMESTAMP,
			UNIQUE (athlete_id, date),
			FOREIGN KEY (athlete_id) REFERENCES users(id) ON DELETE CASCADE
		)`,

		`CREATE INDEX IF NOT EXISTS idx_reports_athlete_date ON reports(athlete_id, date)`,
		`CREATE INDEX IF NOT EXISTS idx_reports_date ON reports(date)`,
	}

	for _, m := range migrations {
		if _, err := db.Exec(m); err != nil {
			return err
		}
	}

	return nil
}
