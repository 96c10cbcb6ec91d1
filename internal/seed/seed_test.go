package seed

import (
	"context"
	"strings"
	"testing"
	"time"

	"gameready/internal/schedule"
	"gameready/internal/service"
	"gameready/internal/store"
	"gameready/internal/validate"
)

func newSeeder(t *testing.T) (*Seeder, *store.DB) {
	t.Helper()
	db := store.NewTestDB(t)
	return NewSeeder(db, service.NewScheduleService(db, nil), service.NewReportService(db, nil), 70), db
}

func TestParse(t *testing.T) {
	f, err := Parse([]byte(`
team:
  name: Harriers
day_types:
  - {name: Match, color: "#dc3545", target_min: 75, target_max: 95}
weekly:
  Sat: Match
overrides:
  "2025-12-25": null
  "2025-12-27": Match
athletes:
  - username: ana
    reports:
      - {days_ago: 1, sleep_quality: 7, energy_fatigue: 7, muscle_soreness: 7, mood_stress: 7, motivation: 7, nutrition_quality: 7, hydration: 7}
      - {date: "2025-12-01", sleep_quality: 5, energy_fatigue: 5, muscle_soreness: 5, mood_stress: 5, motivation: 5, nutrition_quality: 5, hydration: 5}
`))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if f.Team.Name != "Harriers" {
		t.Errorf("Team.Name = %q, want Harriers", f.Team.Name)
	}
	if got := f.Overrides["2025-12-25"]; got != nil {
		t.Errorf("override 2025-12-25 = %q, want nil", *got)
	}
	if got := f.Overrides["2025-12-27"]; got == nil || *got != "Match" {
		t.Errorf("override 2025-12-27 = %v, want Match", got)
	}
	reports := f.Athletes[0].Reports
	if len(reports) != 2 {
		t.Fatalf("len(reports) = %d, want 2", len(reports))
	}
	if reports[0].DaysAgo == nil || *reports[0].DaysAgo != 1 {
		t.Errorf("reports[0].DaysAgo = %v, want 1", reports[0].DaysAgo)
	}
	if reports[0].SleepQuality != 7 {
		t.Errorf("reports[0].SleepQuality = %d, want 7", reports[0].SleepQuality)
	}
	if reports[1].DaysAgo != nil || reports[1].Date != "2025-12-01" {
		t.Errorf("reports[1] = %+v, want dated 2025-12-01", reports[1])
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"missing team name", "team: {target_readiness: 70}"},
		{"malformed", "team: [unclosed"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse([]byte(tt.data)); err == nil {
				t.Error("Parse() error = nil, want error")
			}
		})
	}
}

func TestApply_Sample(t *testing.T) {
	s, db := newSeeder(t)
	ctx := context.Background()
	today := time.Date(2025, 12, 10, 15, 0, 0, 0, time.UTC)

	f, err := Sample()
	if err != nil {
		t.Fatalf("Sample() error = %v", err)
	}
	res, err := s.Apply(ctx, f, today)
	if err != nil {
		t.Fatalf("Apply() error = %v", err)
	}

	if res.DayTypes != 3 {
		t.Errorf("DayTypes = %d, want 3", res.DayTypes)
	}
	if res.Athletes != 4 {
		t.Errorf("Athletes = %d, want 4", res.Athletes)
	}
	if res.Reports != 11 {
		t.Errorf("Reports = %d, want 11", res.Reports)
	}
	if res.Team.TargetReadiness != 70 {
		t.Errorf("TargetReadiness = %d, want 70", res.Team.TargetReadiness)
	}

	sched, err := db.GetSchedule(ctx, res.Team.ID)
	if err != nil {
		t.Fatalf("GetSchedule() error = %v", err)
	}
	if len(sched.Weekly()) != 5 {
		t.Errorf("len(Weekly()) = %d, want 5", len(sched.Weekly()))
	}
	if !sched.Override(schedule.Day(2025, 12, 25)).IsCleared() {
		t.Error("2025-12-25 should be cleared")
	}

	athletes, err := db.AthletesForTeam(ctx, res.Team.ID)
	if err != nil {
		t.Fatalf("AthletesForTeam() error = %v", err)
	}
	if len(athletes) != 4 {
		t.Errorf("len(athletes) = %d, want 4 (coach excluded)", len(athletes))
	}

	rovers, err := db.GetTeamByName(ctx, "Rovers")
	if err != nil {
		t.Fatalf("GetTeamByName(Rovers) error = %v", err)
	}
	if rovers.TargetReadiness != 70 {
		t.Errorf("Rovers target = %d, want default 70", rovers.TargetReadiness)
	}

	for _, a := range athletes {
		if a.Username != "cat" {
			continue
		}
		if a.Status != store.AvailabilityInjured || a.StatusNote != "ankle sprain" {
			t.Errorf("cat status = %s %q, want INJURED ankle sprain", a.Status, a.StatusNote)
		}
	}
}

func TestApply_DaysAgoResolvesAgainstToday(t *testing.T) {
	s, db := newSeeder(t)
	ctx := context.Background()
	ago := 2
	f := &Fixture{
		Team:     TeamSpec{Name: "Harriers"},
		Athletes: []AthleteSpec{{
			Username: "ana",
			Reports: []ReportSpec{{
				DaysAgo: &ago,
				ReportInput: validate.ReportInput{
					SleepQuality: 6, EnergyFatigue: 6, MuscleSoreness: 6, MoodStress: 6,
					Motivation: 6, NutritionQuality: 6, Hydration: 6,
				},
			}},
		}},
	}
	res, err := s.Apply(ctx, f, time.Date(2025, 12, 10, 23, 59, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	athletes, err := db.AthletesForTeam(ctx, res.Team.ID)
	if err != nil || len(athletes) != 1 {
		t.Fatalf("AthletesForTeam() = %v, %v", athletes, err)
	}
	r, err := db.GetReport(ctx, athletes[0].ID, schedule.Day(2025, 12, 8))
	if err != nil {
		t.Fatalf("GetReport(2025-12-08) error = %v", err)
	}
	if r.Score != 60 {
		t.Errorf("Score = %d, want 60", r.Score)
	}
}

func TestApply_Errors(t *testing.T) {
	tests := []struct {
		name    string
		fixture *Fixture
		want    string
	}{
		{
			name: "unknown weekly day type",
			fixture: &Fixture{
				Team:   TeamSpec{Name: "A"},
				Weekly: map[string]string{"Mon": "Nope"},
			},
			want: "unknown day type",
		},
		{
			name: "bad weekday",
			fixture: &Fixture{
				Team:   TeamSpec{Name: "A"},
				Weekly: map[string]string{"Monday": "Nope"},
			},
			want: "weekly",
		},
		{
			name: "invalid day type",
			fixture: &Fixture{
				Team:     TeamSpec{Name: "A"},
				DayTypes: []validate.DayTypeInput{{Name: "Bad", Color: "#000000", TargetMin: 90, TargetMax: 10}},
			},
			want: "day type",
		},
		{
			name: "invalid target",
			fixture: &Fixture{
				Team: TeamSpec{Name: "A", TargetReadiness: 150},
			},
			want: "team",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _ := newSeeder(t)
			_, err := s.Apply(context.Background(), tt.fixture, time.Now())
			if err == nil {
				t.Fatal("Apply() error = nil, want error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Apply() error = %v, want containing %q", err, tt.want)
			}
		})
	}
}
