package schedule

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DateLayout is the key format used for date overrides (ISO date)
const DateLayout = "2006-01-02"

// MonthLayout is the format accepted by ParseMonth
const MonthLayout = "2006-01"

// Weekday is one of the seven fixed weekday symbols used by the weekly pattern
type Weekday string

const (
	Mon Weekday = "Mon"
	Tue Weekday = "Tue"
	Wed Weekday = "Wed"
	Thu Weekday = "Thu"
	Fri Weekday = "Fri"
	Sat Weekday = "Sat"
	Sun Weekday = "Sun"
)

// Weekdays lists the symbols Monday first
var Weekdays = [7]Weekday{Mon, Tue, Wed, Thu, Fri, Sat, Sun}

// ParseWeekday validates a weekday symbol
func ParseWeekday(s string) (Weekday, error) {
	for _, wd := range Weekdays {
		if string(wd) == s {
			return wd, nil
		}
	}
	return "", fmt.Errorf("invalid weekday %q: want one of Mon, Tue, Wed, Thu, Fri, Sat, Sun", s)
}

// MustParseWeekday is ParseWeekday for pre-validated input. It panics on a bad symbol.
func MustParseWeekday(s string) Weekday {
	wd, err := ParseWeekday(s)
	if err != nil {
		panic(err)
	}
	return wd
}

// WeekdayOf returns the weekday symbol for a date
func WeekdayOf(t time.Time) Weekday {
	// time.Weekday starts on Sunday
	return Weekdays[(int(t.Weekday())+6)%7]
}

// Day returns the UTC midnight for a calendar date
func Day(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// Truncate drops the time of day, keeping the calendar date as seen in t's location
func Truncate(t time.Time) time.Time {
	return Day(t.Year(), t.Month(), t.Day())
}

// DateKey formats a date as an override key
func DateKey(t time.Time) string {
	return t.Format(DateLayout)
}

// ParseDate parses an ISO date into UTC midnight
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing date %q: %w", s, err)
	}
	return t, nil
}

// Month identifies a calendar month
type Month struct {
	Year  int
	Month time.Month
}

// MonthOf returns the month containing t
func MonthOf(t time.Time) Month {
	return Month{Year: t.Year(), Month: t.Month()}
}

// ParseMonth parses "YYYY-MM"
func ParseMonth(s string) (Month, error) {
	parts := strings.Split(s, "-")
	if len(parts) != 2 {
		return Month{}, fmt.Errorf("invalid month %q: want YYYY-MM", s)
	}
	year, err := strconv.Atoi(parts[0])
	if err != nil {
		return Month{}, fmt.Errorf("invalid month %q: %w", s, err)
	}
	month, err := strconv.Atoi(parts[1])
	if err != nil {
		return Month{}, fmt.Errorf("invalid month %q: %w", s, err)
	}
	if month < 1 || month > 12 {
		return Month{}, fmt.Errorf("invalid month %q: month must be 1-12", s)
	}
	return Month{Year: year, Month: time.Month(month)}, nil
}

// String formats the month as "YYYY-MM"
func (m Month) String() string {
	return fmt.Sprintf("%04d-%02d", m.Year, int(m.Month))
}

// First returns the first day of the month
func (m Month) First() time.Time {
	return Day(m.Year, m.Month, 1)
}

// Last returns the last day of the month
func (m Month) Last() time.Time {
	return m.First().AddDate(0, 1, -1)
}

// Days returns the number of days in the month
func (m Month) Days() int {
	return m.Last().Day()
}

// Dates returns every date of the month in order
func (m Month) Dates() []time.Time {
	n := m.Days()
	dates := make([]time.Time, n)
	for i := 0; i < n; i++ {
		dates[i] = Day(m.Year, m.Month, i+1)
	}
	return dates
}

// Previous returns the month before m (January wraps to December of the prior year)
func (m Month) Previous() Month {
	if m.Month == time.January {
		return Month{Year: m.Year - 1, Month: time.December}
	}
	return Month{Year: m.Year, Month: m.Month - 1}
}

// Next returns the month after m
func (m Month) Next() Month {
	if m.Month == time.December {
		return Month{Year: m.Year + 1, Month: time.January}
	}
	return Month{Year: m.Year, Month: m.Month + 1}
}
