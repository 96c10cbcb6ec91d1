package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strings"
	"time"

	"gameready/internal/config"
	"gameready/internal/schedule"
	"gameready/internal/seed"
	"gameready/internal/service"
	"gameready/internal/store"
	"gameready/internal/validate"
	"gameready/internal/view"
)

// app holds the services shared by every subcommand
type app struct {
	db     *store.DB
	cfg    *config.Config
	logger *slog.Logger
	out    io.Writer
	now    func() time.Time

	schedule *service.ScheduleService
	reports  *service.ReportService
	roster   *service.RosterService
	athletes *service.AthleteService
}

type command struct {
	summary string
	run     func(ctx context.Context, fs *flag.FlagSet, args []string) error
}

func newApp(db *store.DB, logger *slog.Logger, cfg *config.Config, out io.Writer) *app {
	return &app{
		db:       db,
		cfg:      cfg,
		logger:   logger,
		out:      out,
		now:      time.Now,
		schedule: service.NewScheduleService(db, logger),
		reports:  service.NewReportService(db, logger),
		roster:   service.NewRosterService(db),
		athletes: service.NewAthleteService(db),
	}
}

func (a *app) commands() map[string]command {
	return map[string]command{
		"create-team":      {"create a team", a.createTeam},
		"add-user":         {"create an athlete or coach and add them to a team", a.addUser},
		"join":             {"add a user to a team by join code", a.join},
		"leave":            {"remove a user from a team", a.leave},
		"set-target":       {"set a team's default target readiness", a.setTarget},
		"day-types":        {"list a team's day types", a.dayTypes},
		"add-day-type":     {"create a day type", a.addDayType},
		"edit-day-type":    {"edit a day type", a.editDayType},
		"delete-day-type":  {"delete a day type and clear its schedule entries", a.deleteDayType},
		"set-day":          {"set or clear the day type for a date", a.setDay},
		"set-weekday":      {"set or remove the weekly day type for a weekday", a.setWeekday},
		"set-all-weekdays": {"use one day type for every weekday", a.setAllWeekdays},
		"clear-month":      {"clear every date of a month", a.clearMonth},
		"copy-month":       {"copy one month's schedule into another by weekday occurrence", a.copyMonth},
		"calendar":         {"show a team's month calendar", a.calendar},
		"roster":           {"show the coach's squad view for a date", a.rosterCmd},
		"submit":           {"submit an athlete's daily readiness report", a.submit},
		"status":           {"set an athlete's availability", a.status},
		"week":             {"show an athlete's week", a.week},
		"month":            {"show an athlete's month", a.month},
		"athlete":          {"show an athlete's streak, baseline and trend", a.athlete},
		"seed":             {"load a YAML fixture (the built-in sample when -file is empty)", a.seed},
	}
}

func (a *app) dispatch(ctx context.Context, args []string) error {
	cmds := a.commands()
	if len(args) == 0 || args[0] == "help" || args[0] == "-h" || args[0] == "--help" {
		a.usage(cmds)
		return nil
	}
	cmd, ok := cmds[args[0]]
	if !ok {
		a.usage(cmds)
		return fmt.Errorf("unknown command %q", args[0])
	}
	fs := flag.NewFlagSet(args[0], flag.ContinueOnError)
	fs.SetOutput(a.out)
	return cmd.run(ctx, fs, args[1:])
}

func (a *app) usage(cmds map[string]command) {
	names := make([]string, 0, len(cmds))
	for name := range cmds {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Fprintln(a.out, view.Title("gameready <command> [flags]"))
	for _, name := range names {
		fmt.Fprintf(a.out, "  %-18s %s\n", name, cmds[name].summary)
	}
}

func (a *app) print(s string) {
	fmt.Fprintln(a.out, s)
}

// Lookups

func (a *app) team(ctx context.Context, name string) (*store.Team, error) {
	if name == "" {
		return nil, errors.New("-team is required")
	}
	return a.db.GetTeamByName(ctx, name)
}

func (a *app) user(ctx context.Context, name string) (*store.User, error) {
	if name == "" {
		return nil, errors.New("-athlete is required")
	}
	return a.db.GetUserByUsername(ctx, name)
}

// dayTypeID resolves a day type name, matched exactly since names are
// case-sensitive per team. An empty name is nil.
func (a *app) dayTypeID(ctx context.Context, teamID int64, name string) (*int64, error) {
	if name == "" {
		return nil, nil
	}
	types, err := a.schedule.DayTypes(ctx, teamID)
	if err != nil {
		return nil, err
	}
	for id, dt := range types {
		if dt.Name == name {
			return &id, nil
		}
	}
	return nil, fmt.Errorf("%q: %w", name, store.ErrDayTypeNotFound)
}

func (a *app) today() time.Time {
	return schedule.Truncate(a.now())
}

func (a *app) date(s string) (time.Time, error) {
	if s == "" {
		return a.today(), nil
	}
	return validate.Date(s)
}

func (a *app) monthArg(s string) (schedule.Month, error) {
	if s == "" {
		return schedule.MonthOf(a.now()), nil
	}
	return validate.Month(s)
}

// Teams and users

func (a *app) createTeam(ctx context.Context, fs *flag.FlagSet, args []string) error {
	name := fs.String("name", "", "team name")
	target := fs.Int("target", a.cfg.Team.DefaultTargetReadiness, "default target readiness (0-100)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *name == "" {
		return errors.New("-name is required")
	}
	if err := validate.TeamTarget(*target); err != nil {
		return err
	}
	team, err := a.db.CreateTeam(ctx, *name, *target)
	if err != nil {
		return err
	}
	a.print(view.Success(fmt.Sprintf("Created %s (join code %s)", team.Name, team.JoinCode)))
	return nil
}

func (a *app) addUser(ctx context.Context, fs *flag.FlagSet, args []string) error {
	name := fs.String("name", "", "username")
	role := fs.String("role", "athlete", "athlete or coach")
	teamName := fs.String("team", "", "team to join")
	if err := fs.Parse(args); err != nil {
		return err
	}
	r, err := validate.User(validate.UserInput{Username: *name, Role: strings.ToUpper(*role)})
	if err != nil {
		return err
	}
	var team *store.Team
	if *teamName != "" {
		if team, err = a.team(ctx, *teamName); err != nil {
			return err
		}
	}
	u, err := a.db.CreateUser(ctx, *name, r)
	if err != nil {
		return err
	}
	if team != nil {
		if err := a.db.AddMembership(ctx, u.ID, team.ID); err != nil {
			return err
		}
	}
	a.print(view.Success(fmt.Sprintf("Created %s %s", strings.ToLower(string(u.Role)), u.Username)))
	return nil
}

func (a *app) join(ctx context.Context, fs *flag.FlagSet, args []string) error {
	name := fs.String("user", "", "username")
	code := fs.String("code", "", "team join code")
	if err := fs.Parse(args); err != nil {
		return err
	}
	u, err := a.db.GetUserByUsername(ctx, *name)
	if err != nil {
		return err
	}
	team, err := a.db.GetTeamByJoinCode(ctx, strings.ToUpper(strings.TrimSpace(*code)))
	if err != nil {
		return err
	}
	if err := a.db.AddMembership(ctx, u.ID, team.ID); err != nil {
		return err
	}
	a.print(view.Success(fmt.Sprintf("%s joined %s", u.Username, team.Name)))
	return nil
}

func (a *app) leave(ctx context.Context, fs *flag.FlagSet, args []string) error {
	name := fs.String("user", "", "username")
	teamName := fs.String("team", "", "team name")
	if err := fs.Parse(args); err != nil {
		return err
	}
	u, err := a.db.GetUserByUsername(ctx, *name)
	if err != nil {
		return err
	}
	team, err := a.team(ctx, *teamName)
	if err != nil {
		return err
	}
	if err := a.db.RemoveMembership(ctx, u.ID, team.ID); err != nil {
		return err
	}
	a.print(view.Success(fmt.Sprintf("%s left %s", u.Username, team.Name)))
	return nil
}

func (a *app) setTarget(ctx context.Context, fs *flag.FlagSet, args []string) error {
	teamName := fs.String("team", "", "team name")
	target := fs.Int("target", -1, "default target readiness (0-100)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	team, err := a.team(ctx, *teamName)
	if err != nil {
		return err
	}
	if err := a.schedule.UpdateTeamTarget(ctx, team.ID, *target); err != nil {
		return err
	}
	a.print(view.Success(fmt.Sprintf("%s target set to %d", team.Name, *target)))
	return nil
}

// Day types

func (a *app) dayTypes(ctx context.Context, fs *flag.FlagSet, args []string) error {
	teamName := fs.String("team", "", "team name")
	if err := fs.Parse(args); err != nil {
		return err
	}
	team, err := a.team(ctx, *teamName)
	if err != nil {
		return err
	}
	types, err := a.schedule.DayTypes(ctx, team.ID)
	if err != nil {
		return err
	}
	a.print(view.RenderDayTypes(types))
	return nil
}

func dayTypeFlags(fs *flag.FlagSet) *validate.DayTypeInput {
	in := &validate.DayTypeInput{}
	fs.StringVar(&in.Name, "name", "", "day type name")
	fs.StringVar(&in.Color, "color", "#0d6efd", "hex color")
	fs.IntVar(&in.TargetMin, "min", 60, "target minimum (0-100)")
	fs.IntVar(&in.TargetMax, "max", 80, "target maximum (0-100)")
	return in
}

func (a *app) addDayType(ctx context.Context, fs *flag.FlagSet, args []string) error {
	teamName := fs.String("team", "", "team name")
	in := dayTypeFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	team, err := a.team(ctx, *teamName)
	if err != nil {
		return err
	}
	dt, err := a.schedule.CreateDayType(ctx, team.ID, *in)
	if err != nil {
		return err
	}
	a.print(view.Success(fmt.Sprintf("Created day type %d %s (%d-%d)", dt.ID, dt.Name, dt.TargetMin, dt.TargetMax)))
	return nil
}

func (a *app) editDayType(ctx context.Context, fs *flag.FlagSet, args []string) error {
	teamName := fs.String("team", "", "team name")
	id := fs.Int64("id", 0, "day type id")
	in := dayTypeFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	team, err := a.team(ctx, *teamName)
	if err != nil {
		return err
	}
	dt, err := a.schedule.UpdateDayType(ctx, team.ID, *id, *in)
	if err != nil {
		return err
	}
	a.print(view.Success(fmt.Sprintf("Updated day type %d %s (%d-%d)", dt.ID, dt.Name, dt.TargetMin, dt.TargetMax)))
	return nil
}

func (a *app) deleteDayType(ctx context.Context, fs *flag.FlagSet, args []string) error {
	teamName := fs.String("team", "", "team name")
	name := fs.String("name", "", "day type name")
	if err := fs.Parse(args); err != nil {
		return err
	}
	team, err := a.team(ctx, *teamName)
	if err != nil {
		return err
	}
	id, err := a.dayTypeID(ctx, team.ID, *name)
	if err != nil {
		return err
	}
	if id == nil {
		return errors.New("-name is required")
	}
	cleared, err := a.schedule.DeleteDayType(ctx, team.ID, *id)
	if err != nil {
		return err
	}
	a.print(view.Success(fmt.Sprintf("Deleted %s, cleared %d schedule entries", *name, cleared)))
	return nil
}

// Schedule

func (a *app) setDay(ctx context.Context, fs *flag.FlagSet, args []string) error {
	teamName := fs.String("team", "", "team name")
	dateArg := fs.String("date", "", "date YYYY-MM-DD (default today)")
	typeName := fs.String("type", "", "day type name (empty clears the date)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	team, err := a.team(ctx, *teamName)
	if err != nil {
		return err
	}
	date, err := a.date(*dateArg)
	if err != nil {
		return err
	}
	id, err := a.dayTypeID(ctx, team.ID, *typeName)
	if err != nil {
		return err
	}
	if err := a.schedule.SetDate(ctx, team.ID, date, id); err != nil {
		return err
	}
	if id == nil {
		a.print(view.Success(fmt.Sprintf("Cleared %s", schedule.DateKey(date))))
	} else {
		a.print(view.Success(fmt.Sprintf("%s set to %s", schedule.DateKey(date), *typeName)))
	}
	return nil
}

func (a *app) setWeekday(ctx context.Context, fs *flag.FlagSet, args []string) error {
	teamName := fs.String("team", "", "team name")
	wdArg := fs.String("weekday", "", "Mon, Tue, Wed, Thu, Fri, Sat or Sun")
	typeName := fs.String("type", "", "day type name (empty removes the weekday)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	team, err := a.team(ctx, *teamName)
	if err != nil {
		return err
	}
	wd, err := validate.Weekday(*wdArg)
	if err != nil {
		return err
	}
	id, err := a.dayTypeID(ctx, team.ID, *typeName)
	if err != nil {
		return err
	}
	if err := a.schedule.SetWeekday(ctx, team.ID, wd, id); err != nil {
		return err
	}
	a.print(view.Success(fmt.Sprintf("Weekly %s updated", wd)))
	return nil
}

func (a *app) setAllWeekdays(ctx context.Context, fs *flag.FlagSet, args []string) error {
	teamName := fs.String("team", "", "team name")
	typeName := fs.String("type", "", "day type name")
	if err := fs.Parse(args); err != nil {
		return err
	}
	team, err := a.team(ctx, *teamName)
	if err != nil {
		return err
	}
	id, err := a.dayTypeID(ctx, team.ID, *typeName)
	if err != nil {
		return err
	}
	if id == nil {
		return errors.New("-type is required")
	}
	if err := a.schedule.SetAllWeekdays(ctx, team.ID, *id); err != nil {
		return err
	}
	a.print(view.Success(fmt.Sprintf("Every weekday set to %s", *typeName)))
	return nil
}

func (a *app) clearMonth(ctx context.Context, fs *flag.FlagSet, args []string) error {
	teamName := fs.String("team", "", "team name")
	monthArg := fs.String("month", "", "month YYYY-MM (default this month)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	team, err := a.team(ctx, *teamName)
	if err != nil {
		return err
	}
	m, err := a.monthArg(*monthArg)
	if err != nil {
		return err
	}
	n, err := a.schedule.ClearMonth(ctx, team.ID, m)
	if err != nil {
		return err
	}
	a.print(view.Success(fmt.Sprintf("Cleared %d dates in %s", n, m)))
	return nil
}

func (a *app) copyMonth(ctx context.Context, fs *flag.FlagSet, args []string) error {
	teamName := fs.String("team", "", "team name")
	toArg := fs.String("to", "", "destination month YYYY-MM (default this month)")
	fromArg := fs.String("from", "", "source month YYYY-MM (default the month before -to)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	team, err := a.team(ctx, *teamName)
	if err != nil {
		return err
	}
	dst, err := a.monthArg(*toArg)
	if err != nil {
		return err
	}
	src := dst.Previous()
	if *fromArg != "" {
		if src, err = validate.Month(*fromArg); err != nil {
			return err
		}
	}
	assignments, err := a.schedule.CopyMonth(ctx, team.ID, src, dst)
	if err != nil {
		return err
	}
	types, err := a.schedule.DayTypes(ctx, team.ID)
	if err != nil {
		return err
	}
	a.print(view.RenderCopySummary(src, dst, assignments, types))
	return nil
}

func (a *app) calendar(ctx context.Context, fs *flag.FlagSet, args []string) error {
	teamName := fs.String("team", "", "team name")
	monthArg := fs.String("month", "", "month YYYY-MM (default this month)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	team, err := a.team(ctx, *teamName)
	if err != nil {
		return err
	}
	m, err := a.monthArg(*monthArg)
	if err != nil {
		return err
	}
	days, err := a.schedule.Calendar(ctx, team.ID, m)
	if err != nil {
		return err
	}
	a.print(view.RenderCalendar(m, days))
	return nil
}

func (a *app) rosterCmd(ctx context.Context, fs *flag.FlagSet, args []string) error {
	teamName := fs.String("team", "", "team name")
	dateArg := fs.String("date", "", "date YYYY-MM-DD (default today)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	team, err := a.team(ctx, *teamName)
	if err != nil {
		return err
	}
	date, err := a.date(*dateArg)
	if err != nil {
		return err
	}
	r, err := a.roster.GetRoster(ctx, team.ID, date)
	if err != nil {
		return err
	}
	a.print(view.RenderRoster(r))
	return nil
}

// Athletes

func (a *app) submit(ctx context.Context, fs *flag.FlagSet, args []string) error {
	name := fs.String("athlete", "", "athlete username")
	in := validate.ReportInput{}
	fs.StringVar(&in.Date, "date", "", "date YYYY-MM-DD (default today)")
	fs.IntVar(&in.SleepQuality, "sleep", 0, "sleep quality 1-10")
	fs.IntVar(&in.EnergyFatigue, "energy", 0, "energy 1-10")
	fs.IntVar(&in.MuscleSoreness, "soreness", 0, "muscle soreness 1-10, 10 is no soreness")
	fs.IntVar(&in.MoodStress, "mood", 0, "mood 1-10")
	fs.IntVar(&in.Motivation, "motivation", 0, "motivation 1-10")
	fs.IntVar(&in.NutritionQuality, "nutrition", 0, "nutrition 1-10")
	fs.IntVar(&in.Hydration, "hydration", 0, "hydration 1-10")
	fs.StringVar(&in.Comments, "comments", "", "optional comments")
	if err := fs.Parse(args); err != nil {
		return err
	}
	u, err := a.user(ctx, *name)
	if err != nil {
		return err
	}
	if in.Date == "" {
		in.Date = schedule.DateKey(a.today())
	}
	res, err := a.reports.Submit(ctx, u.ID, in)
	if err != nil {
		return err
	}
	a.print(view.RenderSubmitResult(res))
	return nil
}

func (a *app) status(ctx context.Context, fs *flag.FlagSet, args []string) error {
	name := fs.String("athlete", "", "athlete username")
	in := validate.AvailabilityInput{}
	fs.StringVar(&in.Status, "status", "AVAILABLE", "AVAILABLE, INJURED, SICK or EXCUSED")
	fs.StringVar(&in.Note, "note", "", "optional note")
	if err := fs.Parse(args); err != nil {
		return err
	}
	u, err := a.user(ctx, *name)
	if err != nil {
		return err
	}
	in.Status = strings.ToUpper(in.Status)
	if err := a.reports.SetAvailability(ctx, u.ID, in); err != nil {
		return err
	}
	a.print(view.Success(fmt.Sprintf("%s is %s", u.Username, in.Status)))
	return nil
}

func (a *app) week(ctx context.Context, fs *flag.FlagSet, args []string) error {
	name := fs.String("athlete", "", "athlete username")
	teamName := fs.String("team", "", "team name")
	dateArg := fs.String("date", "", "any date in the week (default today)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	u, err := a.user(ctx, *name)
	if err != nil {
		return err
	}
	team, err := a.team(ctx, *teamName)
	if err != nil {
		return err
	}
	date, err := a.date(*dateArg)
	if err != nil {
		return err
	}
	entries, err := a.athletes.Week(ctx, u.ID, team.ID, date)
	if err != nil {
		return err
	}
	a.print(view.RenderDays(entries))
	return nil
}

func (a *app) month(ctx context.Context, fs *flag.FlagSet, args []string) error {
	name := fs.String("athlete", "", "athlete username")
	teamName := fs.String("team", "", "team name")
	monthArg := fs.String("month", "", "month YYYY-MM (default this month)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	u, err := a.user(ctx, *name)
	if err != nil {
		return err
	}
	team, err := a.team(ctx, *teamName)
	if err != nil {
		return err
	}
	m, err := a.monthArg(*monthArg)
	if err != nil {
		return err
	}
	entries, err := a.athletes.Month(ctx, u.ID, team.ID, m)
	if err != nil {
		return err
	}
	a.print(view.RenderDays(entries))
	return nil
}

func (a *app) athlete(ctx context.Context, fs *flag.FlagSet, args []string) error {
	name := fs.String("athlete", "", "athlete username")
	if err := fs.Parse(args); err != nil {
		return err
	}
	u, err := a.user(ctx, *name)
	if err != nil {
		return err
	}
	summary, err := a.athletes.Summary(ctx, u.ID, a.now())
	if err != nil {
		return err
	}
	a.print(view.RenderSummary(summary, a.now()))
	return nil
}

// Fixtures

func (a *app) seed(ctx context.Context, fs *flag.FlagSet, args []string) error {
	file := fs.String("file", "", "YAML fixture path")
	dateArg := fs.String("date", "", "date days_ago counts back from (default today)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	today, err := a.date(*dateArg)
	if err != nil {
		return err
	}

	var f *seed.Fixture
	if *file == "" {
		f, err = seed.Sample()
	} else {
		f, err = seed.Load(*file)
	}
	if err != nil {
		return err
	}

	seeder := seed.NewSeeder(a.db, a.schedule, a.reports, a.cfg.Team.DefaultTargetReadiness)
	res, err := seeder.Apply(ctx, f, today)
	if err != nil {
		return err
	}
	a.print(view.Success(fmt.Sprintf("Seeded %s: %d day types, %d athletes, %d reports (join code %s)",
		res.Team.Name, res.DayTypes, res.Athletes, res.Reports, res.Team.JoinCode)))
	return nil
}
