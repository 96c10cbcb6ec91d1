// Package validate checks caller input before it reaches the readiness engine.
// Range checks live in struct tags; everything downstream assumes valid input.
package validate

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"gameready/internal/schedule"
	"gameready/internal/store"
)

// ErrInvalidInput is wrapped by every *Error
var ErrInvalidInput = errors.New("invalid input")

var validate = newValidator()

// usernamePattern allows letters, digits and @ . + - _
var usernamePattern = regexp.MustCompile(`^[\p{L}\p{N}_.@+-]+$`)

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report fields by their json names
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
	v.RegisterValidation("username", func(fl validator.FieldLevel) bool {
		return usernamePattern.MatchString(fl.Field().String())
	})
	return v
}

// FieldError is one failed rule on one field
type FieldError struct {
	Field string
	Rule  string
	Param string
}

func (f FieldError) String() string {
	if f.Param != "" {
		return fmt.Sprintf("%s: %s=%s", f.Field, f.Rule, f.Param)
	}
	return fmt.Sprintf("%s: %s", f.Field, f.Rule)
}

// Error lists every field that failed validation
type Error struct {
	Fields []FieldError
}

func (e *Error) Error() string {
	parts := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		parts[i] = f.String()
	}
	return "invalid input: " + strings.Join(parts, "; ")
}

func (e *Error) Unwrap() error {
	return ErrInvalidInput
}

// Has reports whether field failed validation
func (e *Error) Has(field string) bool {
	for _, f := range e.Fields {
		if f.Field == field {
			return true
		}
	}
	return false
}

// Struct validates any tagged struct and converts failures into *Error
func Struct(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	out := &Error{Fields: make([]FieldError, 0, len(verrs))}
	for _, fe := range verrs {
		out.Fields = append(out.Fields, FieldError{
			Field: fe.Field(),
			Rule:  fe.Tag(),
			Param: fe.Param(),
		})
	}
	return out
}

// ReportInput is a raw daily readiness submission
type ReportInput struct {
	Date             string `json:"date" yaml:"date" validate:"required,datetime=2006-01-02"`
	SleepQuality     int    `json:"sleep_quality" yaml:"sleep_quality" validate:"min=1,max=10"`
	EnergyFatigue    int    `json:"energy_fatigue" yaml:"energy_fatigue" validate:"min=1,max=10"`
	MuscleSoreness   int    `json:"muscle_soreness" yaml:"muscle_soreness" validate:"min=1,max=10"`
	MoodStress       int    `json:"mood_stress" yaml:"mood_stress" validate:"min=1,max=10"`
	Motivation       int    `json:"motivation" yaml:"motivation" validate:"min=1,max=10"`
	NutritionQuality int    `json:"nutrition_quality" yaml:"nutrition_quality" validate:"min=1,max=10"`
	Hydration        int    `json:"hydration" yaml:"hydration" validate:"min=1,max=10"`
	Comments         string `json:"comments" yaml:"comments" validate:"max=1000"`
}

// Report validates a submission and returns its metrics and date
func Report(in ReportInput) (store.MetricSet, time.Time, error) {
	if err := Struct(in); err != nil {
		return store.MetricSet{}, time.Time{}, err
	}
	date, err := schedule.ParseDate(in.Date)
	if err != nil {
		return store.MetricSet{}, time.Time{}, err
	}
	return store.MetricSet{
		SleepQuality:     in.SleepQuality,
		EnergyFatigue:    in.EnergyFatigue,
		MuscleSoreness:   in.MuscleSoreness,
		MoodStress:       in.MoodStress,
		Motivation:       in.Motivation,
		NutritionQuality: in.NutritionQuality,
		Hydration:        in.Hydration,
	}, date, nil
}

// DayTypeInput describes a day type to create or edit
type DayTypeInput struct {
	Name      string `json:"name" yaml:"name" validate:"required,max=50"`
	Color     string `json:"color" yaml:"color" validate:"required,hexcolor"`
	TargetMin int    `json:"target_min" yaml:"target_min" validate:"min=0,max=100"`
	TargetMax int    `json:"target_max" yaml:"target_max" validate:"min=0,max=100,gtefield=TargetMin"`
}

// DayType validates a day type for a team
func DayType(teamID int64, in DayTypeInput) (*store.DayType, error) {
	if err := Struct(in); err != nil {
		return nil, err
	}
	return &store.DayType{
		TeamID:    teamID,
		Name:      strings.TrimSpace(in.Name),
		Color:     in.Color,
		TargetMin: in.TargetMin,
		TargetMax: in.TargetMax,
	}, nil
}

type monthInput struct {
	Month string `json:"month" validate:"required,datetime=2006-01"`
}

// Month validates a "YYYY-MM" string
func Month(s string) (schedule.Month, error) {
	if err := Struct(monthInput{Month: s}); err != nil {
		return schedule.Month{}, err
	}
	return schedule.ParseMonth(s)
}

type dateInput struct {
	Date string `json:"date" validate:"required,datetime=2006-01-02"`
}

// Date validates an ISO date string
func Date(s string) (time.Time, error) {
	if err := Struct(dateInput{Date: s}); err != nil {
		return time.Time{}, err
	}
	return schedule.ParseDate(s)
}

type weekdayInput struct {
	Weekday string `json:"weekday" validate:"required,oneof=Mon Tue Wed Thu Fri Sat Sun"`
}

// Weekday validates one of the seven weekday symbols
func Weekday(s string) (schedule.Weekday, error) {
	if err := Struct(weekdayInput{Weekday: s}); err != nil {
		return "", err
	}
	return schedule.ParseWeekday(s)
}

type targetInput struct {
	Target int `json:"target_readiness" validate:"min=0,max=100"`
}

// TeamTarget validates a team's default target readiness
func TeamTarget(target int) error {
	return Struct(targetInput{Target: target})
}

// AvailabilityInput is an athlete's status update
type AvailabilityInput struct {
	Status string `json:"status" yaml:"status" validate:"required,oneof=AVAILABLE INJURED SICK EXCUSED"`
	Note   string `json:"note" yaml:"note" validate:"max=255"`
}

// Availability validates a status update
func Availability(in AvailabilityInput) (store.Availability, error) {
	if err := Struct(in); err != nil {
		return "", err
	}
	return store.Availability(in.Status), nil
}

// UserInput is a new athlete or coach account
type UserInput struct {
	Username string `json:"username" yaml:"username" validate:"required,max=150,username"`
	Role     string `json:"role" yaml:"role" validate:"required,oneof=ATHLETE COACH"`
}

// User validates a new account
func User(in UserInput) (store.Role, error) {
	if err := Struct(in); err != nil {
		return "", err
	}
	return store.Role(in.Role), nil
}
