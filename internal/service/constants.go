package service

import "errors"

const (
	// Time windows
	HistoricAverageDays = 7  // roster historic average, including the selected date
	TrendDays           = 30 // athlete trend chart
	WeekViewDays        = 7
	StreakLookbackDays  = 365
)

// ErrDayTypeNotInTeam is returned when a schedule write names a day type
// owned by another team, or one that doesn't exist
var ErrDayTypeNotInTeam = errors.New("day type does not belong to team")

// ErrNotAthlete is returned when a report is submitted for a coach account
var ErrNotAthlete = errors.New("user is not an athlete")

// ErrNotMember is returned when an athlete is viewed through a team they are not on
var ErrNotMember = errors.New("athlete is not on team")
