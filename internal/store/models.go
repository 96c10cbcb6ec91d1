package store

import "time"

// Role distinguishes athletes from coaches
type Role string

const (
	RoleAthlete Role = "ATHLETE"
	RoleCoach   Role = "COACH"
)

// Availability is the athlete's self-reported status
type Availability string

const (
	AvailabilityAvailable Availability = "AVAILABLE"
	AvailabilityInjured   Availability = "INJURED"
	AvailabilitySick      Availability = "SICK"
	AvailabilityExcused   Availability = "EXCUSED"
)

// Team is a single sports team
type Team struct {
	ID              int64  `db:"id"`
	Name            string `db:"name"`
	TargetReadiness int    `db:"target_readiness"` // midpoint used when no day type applies
	JoinCode        string `db:"join_code"`
}

// User is an athlete or coach
type User struct {
	ID              int64        `db:"id"`
	Username        string       `db:"username"`
	Role            Role         `db:"role"`
	Status          Availability `db:"current_status"`
	StatusNote      string       `db:"status_note"`
	StatusUpdatedAt time.Time    `db:"status_updated_at"`
}

// DayType is a coach-defined category (e.g. "Training", "Match") with a target band
type DayType struct {
	ID        int64  `db:"id"`
	TeamID    int64  `db:"team_id"`
	Name      string `db:"name"`
	Color     string `db:"color"`      // hex, e.g. #0d6efd
	TargetMin int    `db:"target_min"` // 0-100
	TargetMax int    `db:"target_max"` // 0-100, >= TargetMin
}

// Midpoint returns the middle of the target band, rounded down
func (d DayType) Midpoint() int {
	return (d.TargetMin + d.TargetMax) / 2
}

// MetricSet holds the seven subjective 1-10 metrics of a report.
// Higher is better for every metric.
type MetricSet struct {
	SleepQuality     int `db:"sleep_quality"`
	EnergyFatigue    int `db:"energy_fatigue"`
	MuscleSoreness   int `db:"muscle_soreness"`
	MoodStress       int `db:"mood_stress"`
	Motivation       int `db:"motivation"`
	NutritionQuality int `db:"nutrition_quality"`
	Hydration        int `db:"hydration"`
}

// Report is a daily readiness submission
type Report struct {
	ID        int64     `db:"id"`
	AthleteID int64     `db:"athlete_id"`
	Date      time.Time `db:"date"` // UTC midnight
	Metrics   MetricSet
	Score     int    `db:"readiness_score"` // derived from Metrics
	Comments  string `db:"comments"`
}
