// Package seed loads a team, its schedule and sample reports from a YAML fixture.
package seed

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"gameready/internal/schedule"
	"gameready/internal/service"
	"gameready/internal/store"
	"gameready/internal/validate"
)

//go:embed sample.yaml
var sampleYAML []byte

// Fixture is the YAML document
type Fixture struct {
	Team      TeamSpec                `yaml:"team"`
	DayTypes  []validate.DayTypeInput `yaml:"day_types"`
	Weekly    map[string]string       `yaml:"weekly"`    // weekday -> day type name
	Overrides map[string]*string      `yaml:"overrides"` // date -> day type name, null clears the date
	Coaches   []string                `yaml:"coaches"`
	Athletes  []AthleteSpec           `yaml:"athletes"`
}

// TeamSpec describes the team being seeded
type TeamSpec struct {
	Name            string `yaml:"name"`
	TargetReadiness int    `yaml:"target_readiness"`
}

// AthleteSpec describes one athlete and their reports
type AthleteSpec struct {
	Username   string       `yaml:"username"`
	ExtraTeams []string     `yaml:"extra_teams"`
	Status     string       `yaml:"status"`
	Note       string       `yaml:"note"`
	Reports    []ReportSpec `yaml:"reports"`
}

// ReportSpec is a report dated either absolutely or relative to the seed date
type ReportSpec struct {
	DaysAgo              *int `yaml:"days_ago"`
	validate.ReportInput `yaml:",inline"`
}

// Result summarizes what Apply created
type Result struct {
	Team     *store.Team
	DayTypes int
	Athletes int
	Reports  int
}

// Load reads a fixture from a YAML file
func Load(path string) (*Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Sample returns the built-in sample fixture
func Sample() (*Fixture, error) {
	return Parse(sampleYAML)
}

// Parse decodes a fixture and applies defaults
func Parse(data []byte) (*Fixture, error) {
	var f Fixture
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing fixture: %w", err)
	}
	if f.Team.Name == "" {
		return nil, errors.New("fixture: team.name is required")
	}
	return &f, nil
}

// Seeder writes fixtures through the services so every input is validated
type Seeder struct {
	store         *store.DB
	schedule      *service.ScheduleService
	reports       *service.ReportService
	defaultTarget int
}

// NewSeeder creates a seeder. defaultTarget is used when the fixture has no
// target_readiness.
func NewSeeder(db *store.DB, schedule *service.ScheduleService, reports *service.ReportService, defaultTarget int) *Seeder {
	return &Seeder{store: db, schedule: schedule, reports: reports, defaultTarget: defaultTarget}
}

// Apply creates everything in f. days_ago is counted back from today.
func (s *Seeder) Apply(ctx context.Context, f *Fixture, today time.Time) (*Result, error) {
	today = schedule.Truncate(today)
	res := &Result{}

	team, err := s.team(ctx, f.Team.Name, f.Team.TargetReadiness)
	if err != nil {
		return nil, err
	}
	res.Team = team

	byName := make(map[string]int64, len(f.DayTypes))
	for _, in := range f.DayTypes {
		dt, err := s.schedule.CreateDayType(ctx, team.ID, in)
		if err != nil {
			return nil, fmt.Errorf("day type %q: %w", in.Name, err)
		}
		byName[dt.Name] = dt.ID
		res.DayTypes++
	}
	lookup := func(name string) (int64, error) {
		id, ok := byName[name]
		if !ok {
			return 0, fmt.Errorf("unknown day type %q", name)
		}
		return id, nil
	}

	for key, name := range f.Weekly {
		wd, err := validate.Weekday(key)
		if err != nil {
			return nil, fmt.Errorf("weekly: %w", err)
		}
		id, err := lookup(name)
		if err != nil {
			return nil, fmt.Errorf("weekly %s: %w", key, err)
		}
		if err := s.schedule.SetWeekday(ctx, team.ID, wd, &id); err != nil {
			return nil, err
		}
	}

	for key, name := range f.Overrides {
		date, err := validate.Date(key)
		if err != nil {
			return nil, fmt.Errorf("overrides: %w", err)
		}
		var id *int64
		if name != nil {
			v, err := lookup(*name)
			if err != nil {
				return nil, fmt.Errorf("override %s: %w", key, err)
			}
			id = &v
		}
		if err := s.schedule.SetDate(ctx, team.ID, date, id); err != nil {
			return nil, err
		}
	}

	for _, username := range f.Coaches {
		if _, err := s.member(ctx, username, store.RoleCoach, team.ID); err != nil {
			return nil, err
		}
	}

	for _, a := range f.Athletes {
		user, err := s.member(ctx, a.Username, store.RoleAthlete, team.ID)
		if err != nil {
			return nil, err
		}
		for _, extra := range a.ExtraTeams {
			other, err := s.team(ctx, extra, 0)
			if err != nil {
				return nil, err
			}
			if err := s.store.AddMembership(ctx, user.ID, other.ID); err != nil {
				return nil, err
			}
		}
		if a.Status != "" {
			err := s.reports.SetAvailability(ctx, user.ID, validate.AvailabilityInput{Status: a.Status, Note: a.Note})
			if err != nil {
				return nil, fmt.Errorf("athlete %s: %w", a.Username, err)
			}
		}
		for _, r := range a.Reports {
			in := r.ReportInput
			if r.DaysAgo != nil {
				in.Date = schedule.DateKey(today.AddDate(0, 0, -*r.DaysAgo))
			}
			if _, err := s.reports.Submit(ctx, user.ID, in); err != nil {
				return nil, fmt.Errorf("athlete %s report %s: %w", a.Username, in.Date, err)
			}
			res.Reports++
		}
		res.Athletes++
	}

	return res, nil
}

// team returns the named team, creating it when missing
func (s *Seeder) team(ctx context.Context, name string, target int) (*store.Team, error) {
	team, err := s.store.GetTeamByName(ctx, name)
	if err == nil {
		return team, nil
	}
	if !errors.Is(err, store.ErrTeamNotFound) {
		return nil, err
	}
	if target == 0 {
		target = s.defaultTarget
	}
	if err := validate.TeamTarget(target); err != nil {
		return nil, fmt.Errorf("team %q: %w", name, err)
	}
	return s.store.CreateTeam(ctx, name, target)
}

// member creates a user and adds them to the team
func (s *Seeder) member(ctx context.Context, username string, role store.Role, teamID int64) (*store.User, error) {
	if _, err := validate.User(validate.UserInput{Username: username, Role: string(role)}); err != nil {
		return nil, fmt.Errorf("user %q: %w", username, err)
	}
	user, err := s.store.CreateUser(ctx, username, role)
	if err != nil {
		return nil, fmt.Errorf("user %s: %w", username, err)
	}
	if err := s.store.AddMembership(ctx, user.ID, teamID); err != nil {
		return nil, err
	}
	return user, nil
}
