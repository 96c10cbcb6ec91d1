package validate

import (
	"errors"
	"testing"
	"time"

	"gameready/internal/schedule"
	"gameready/internal/store"
)

func validReport() ReportInput {
	return ReportInput{
		Date:             "2025-10-15",
		SleepQuality:     7,
		EnergyFatigue:    6,
		MuscleSoreness:   5,
		MoodStress:       8,
		Motivation:       9,
		NutritionQuality: 7,
		Hydration:        6,
	}
}

func TestReport(t *testing.T) {
	ms, date, err := Report(validReport())
	if err != nil {
		t.Fatalf("Report() error = %v", err)
	}
	if ms.SleepQuality != 7 || ms.Hydration != 6 {
		t.Errorf("Report() metrics = %+v", ms)
	}
	if !date.Equal(schedule.Day(2025, time.October, 15)) {
		t.Errorf("Report() date = %v", date)
	}
}

func TestReport_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*ReportInput)
		field  string
	}{
		{"metric zero", func(r *ReportInput) { r.SleepQuality = 0 }, "sleep_quality"},
		{"metric eleven", func(r *ReportInput) { r.Hydration = 11 }, "hydration"},
		{"bad date", func(r *ReportInput) { r.Date = "15/10/2025" }, "date"},
		{"impossible date", func(r *ReportInput) { r.Date = "2025-02-30" }, "date"},
		{"missing date", func(r *ReportInput) { r.Date = "" }, "date"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validReport()
			tt.mutate(&in)
			_, _, err := Report(in)
			if !errors.Is(err, ErrInvalidInput) {
				t.Fatalf("Report() error = %v, want ErrInvalidInput", err)
			}
			var verr *Error
			if !errors.As(err, &verr) || !verr.Has(tt.field) {
				t.Errorf("Report() error = %v, want field %q", err, tt.field)
			}
		})
	}
}

func TestDayType(t *testing.T) {
	dt, err := DayType(3, DayTypeInput{Name: " Match ", Color: "#dc3545", TargetMin: 75, TargetMax: 90})
	if err != nil {
		t.Fatalf("DayType() error = %v", err)
	}
	if dt.TeamID != 3 || dt.Name != "Match" {
		t.Errorf("DayType() = %+v", dt)
	}

	tests := []struct {
		name  string
		in    DayTypeInput
		field string
	}{
		{"min above max", DayTypeInput{Name: "X", Color: "#000000", TargetMin: 80, TargetMax: 60}, "target_max"},
		{"max over 100", DayTypeInput{Name: "X", Color: "#000000", TargetMin: 80, TargetMax: 101}, "target_max"},
		{"bad color", DayTypeInput{Name: "X", Color: "blue", TargetMin: 60, TargetMax: 80}, "color"},
		{"no name", DayTypeInput{Color: "#000000", TargetMin: 60, TargetMax: 80}, "name"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DayType(1, tt.in)
			var verr *Error
			if !errors.As(err, &verr) || !verr.Has(tt.field) {
				t.Errorf("DayType() error = %v, want field %q", err, tt.field)
			}
		})
	}
}

func TestScalars(t *testing.T) {
	if m, err := Month("2025-10"); err != nil || m != (schedule.Month{Year: 2025, Month: time.October}) {
		t.Errorf("Month(2025-10) = %v, %v", m, err)
	}
	if _, err := Month("2025-13"); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("Month(2025-13) error = %v, want ErrInvalidInput", err)
	}

	if wd, err := Weekday("Sat"); err != nil || wd != schedule.Sat {
		t.Errorf("Weekday(Sat) = %v, %v", wd, err)
	}
	for _, bad := range []string{"Saturday", "sat", ""} {
		if _, err := Weekday(bad); !errors.Is(err, ErrInvalidInput) {
			t.Errorf("Weekday(%q) error = %v, want ErrInvalidInput", bad, err)
		}
	}

	if _, err := Date("2025-10-32"); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("Date(2025-10-32) error = %v, want ErrInvalidInput", err)
	}

	if err := TeamTarget(100); err != nil {
		t.Errorf("TeamTarget(100) error = %v", err)
	}
	if err := TeamTarget(-1); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("TeamTarget(-1) error = %v, want ErrInvalidInput", err)
	}

	if _, err := Availability(AvailabilityInput{Status: "ON_HOLIDAY"}); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("Availability(ON_HOLIDAY) error = %v, want ErrInvalidInput", err)
	}
}

func TestUser(t *testing.T) {
	tests := []struct {
		name    string
		in      UserInput
		want    store.Role
		wantErr string
	}{
		{"athlete", UserInput{Username: "ana", Role: "ATHLETE"}, store.RoleAthlete, ""},
		{"coach", UserInput{Username: "kim", Role: "COACH"}, store.RoleCoach, ""},
		{"lowercase role", UserInput{Username: "kim", Role: "coach"}, "", "role"},
		{"email style name", UserInput{Username: "ana.b+1@club", Role: "ATHLETE"}, store.RoleAthlete, ""},
		{"unicode name", UserInput{Username: "élodie_2", Role: "ATHLETE"}, store.RoleAthlete, ""},
		{"space in name", UserInput{Username: "ana b", Role: "ATHLETE"}, "", "username"},
		{"slash in name", UserInput{Username: "ana/b", Role: "ATHLETE"}, "", "username"},
		{"missing name", UserInput{Role: "ATHLETE"}, "", "username"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := User(tt.in)
			if tt.wantErr == "" {
				if err != nil || got != tt.want {
					t.Errorf("User() = %v, %v, want %v", got, err, tt.want)
				}
				return
			}
			var verr *Error
			if !errors.As(err, &verr) || !verr.Has(tt.wantErr) {
				t.Errorf("User() error = %v, want field %q", err, tt.wantErr)
			}
		})
	}
}
