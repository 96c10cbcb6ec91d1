package schedule

import (
	"encoding/json"
	"fmt"
	"sort"
	"time"
)

type overrideKind uint8

const (
	overrideUnset overrideKind = iota
	overrideCleared
	overrideSet
)

// Override is the state of a single date override.
// The zero value is Unset: the date falls through to the weekly pattern.
// Cleared means "no day type" and blocks the fallback.
type Override struct {
	kind overrideKind
	id   int64
}

// Cleared returns an override that explicitly removes the day type for a date
func Cleared() Override {
	return Override{kind: overrideCleared}
}

// SetTo returns an override pointing at a day type
func SetTo(id int64) Override {
	return Override{kind: overrideSet, id: id}
}

// Present reports whether the override is stored (Cleared or Set)
func (o Override) Present() bool {
	return o.kind != overrideUnset
}

// IsCleared reports whether the override is the explicit cleared sentinel
func (o Override) IsCleared() bool {
	return o.kind == overrideCleared
}

// DayTypeID returns the referenced day type, if any
func (o Override) DayTypeID() (int64, bool) {
	if o.kind != overrideSet {
		return 0, false
	}
	return o.id, true
}

func (o Override) String() string {
	switch o.kind {
	case overrideCleared:
		return "cleared"
	case overrideSet:
		return fmt.Sprintf("set(%d)", o.id)
	default:
		return "unset"
	}
}

// Schedule is a team's weekly pattern plus its date overrides.
// It is not safe for concurrent writes; callers serialize writes per team.
type Schedule struct {
	TeamID    int64
	weekly    map[Weekday]int64
	overrides map[string]Override
}

// New creates an empty schedule for a team
func New(teamID int64) *Schedule {
	return &Schedule{
		TeamID:    teamID,
		weekly:    make(map[Weekday]int64),
		overrides: make(map[string]Override),
	}
}

// WeekdayDayTypeID returns the weekly pattern entry for a weekday
func (s *Schedule) WeekdayDayTypeID(wd Weekday) (int64, bool) {
	id, ok := s.weekly[wd]
	return id, ok
}

// Override returns the stored override for a date (Unset if none)
func (s *Schedule) Override(date time.Time) Override {
	return s.overrides[DateKey(date)]
}

// EffectiveDayTypeID resolves a date: override first (Cleared resolves to none),
// then the weekly pattern, else none.
func (s *Schedule) EffectiveDayTypeID(date time.Time) (int64, bool) {
	if o, ok := s.overrides[DateKey(date)]; ok && o.Present() {
		return o.DayTypeID()
	}
	return s.WeekdayDayTypeID(WeekdayOf(date))
}

// SetDate writes a date override. A nil id stores Cleared; it never deletes the entry.
func (s *Schedule) SetDate(date time.Time, id *int64) {
	if id == nil {
		s.overrides[DateKey(date)] = Cleared()
		return
	}
	s.overrides[DateKey(date)] = SetTo(*id)
}

// SetWeekday writes the weekly pattern. A nil id removes the weekday entirely.
func (s *Schedule) SetWeekday(wd Weekday, id *int64) {
	if id == nil {
		delete(s.weekly, wd)
		return
	}
	s.weekly[wd] = *id
}

// Weekly returns a copy of the weekly pattern
func (s *Schedule) Weekly() map[Weekday]int64 {
	out := make(map[Weekday]int64, len(s.weekly))
	for wd, id := range s.weekly {
		out[wd] = id
	}
	return out
}

// OverrideDates returns the stored override keys in date order
func (s *Schedule) OverrideDates() []string {
	keys := make([]string, 0, len(s.overrides))
	for k := range s.overrides {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Lookup resolves the effective day type for a date against the team's day types.
// An id with no matching entry in types resolves to none.
func Lookup[T any](s *Schedule, date time.Time, types map[int64]T) (T, bool) {
	var zero T
	id, ok := s.EffectiveDayTypeID(date)
	if !ok {
		return zero, false
	}
	dt, ok := types[id]
	if !ok {
		return zero, false
	}
	return dt, true
}

// EncodeWeekly serializes the weekly pattern as {"Mon": 3, ...}
func (s *Schedule) EncodeWeekly() ([]byte, error) {
	wire := make(map[string]int64, len(s.weekly))
	for wd, id := range s.weekly {
		wire[string(wd)] = id
	}
	return json.Marshal(wire)
}

// EncodeOverrides serializes overrides as {"2025-10-26": 5, "2025-12-25": null}.
// JSON null is the cleared sentinel.
func (s *Schedule) EncodeOverrides() ([]byte, error) {
	wire := make(map[string]*int64, len(s.overrides))
	for key, o := range s.overrides {
		if id, ok := o.DayTypeID(); ok {
			wire[key] = &id
			continue
		}
		wire[key] = nil
	}
	return json.Marshal(wire)
}

// Decode rebuilds a schedule from its stored JSON columns
func Decode(teamID int64, weeklyJSON, overridesJSON []byte) (*Schedule, error) {
	s := New(teamID)

	if len(weeklyJSON) > 0 {
		var weekly map[string]int64
		if err := json.Unmarshal(weeklyJSON, &weekly); err != nil {
			return nil, fmt.Errorf("decoding weekly schedule: %w", err)
		}
		for key, id := range weekly {
			wd, err := ParseWeekday(key)
			if err != nil {
				return nil, fmt.Errorf("decoding weekly schedule: %w", err)
			}
			s.weekly[wd] = id
		}
	}

	if len(overridesJSON) > 0 {
		var overrides map[string]*int64
		if err := json.Unmarshal(overridesJSON, &overrides); err != nil {
			return nil, fmt.Errorf("decoding date overrides: %w", err)
		}
		for key, id := range overrides {
			if _, err := ParseDate(key); err != nil {
				return nil, fmt.Errorf("decoding date overrides: %w", err)
			}
			if id == nil {
				s.overrides[key] = Cleared()
				continue
			}
			s.overrides[key] = SetTo(*id)
		}
	}

	return s, nil
}
