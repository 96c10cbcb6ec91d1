package schedule

import "time"

// Assignment describes one destination date written by CopyMonth
type Assignment struct {
	Date             time.Time
	Weekday          Weekday
	Occurrence       int // 1-based occurrence of Weekday in the destination month
	SourceOccurrence int // occurrence in the source month that was copied (0 if the source had none)
	DayTypeID        *int64
}

// SetAllWeekdays assigns the same day type to all seven weekday slots
func (s *Schedule) SetAllWeekdays(id int64) {
	for _, wd := range Weekdays {
		s.SetWeekday(wd, &id)
	}
}

// ClearMonth stores a Cleared override on every date of the month.
// It returns the number of dates written.
func (s *Schedule) ClearMonth(m Month) int {
	dates := m.Dates()
	for _, d := range dates {
		s.SetDate(d, nil)
	}
	return len(dates)
}

// CopyMonth copies src's effective day types into dst using weekday-occurrence
// alignment: the Nth Monday of src goes to the Nth Monday of dst. When dst has
// more occurrences of a weekday than src, the extra ones copy src's last
// occurrence. Every dst date receives an explicit override; a source date
// without a day type is written as Cleared.
//
// exists reports whether a day type id is still valid; ids it rejects resolve
// to no day type. A nil exists accepts every id.
func (s *Schedule) CopyMonth(src, dst Month, exists func(id int64) bool) []Assignment {
	// Resolve the whole source month before writing, src and dst may overlap.
	occurrences := make(map[Weekday][]*int64, len(Weekdays))
	for _, d := range src.Dates() {
		wd := WeekdayOf(d)
		var resolved *int64
		if id, ok := s.EffectiveDayTypeID(d); ok && (exists == nil || exists(id)) {
			resolved = &id
		}
		occurrences[wd] = append(occurrences[wd], resolved)
	}

	counts := make(map[Weekday]int, len(Weekdays))
	assignments := make([]Assignment, 0, dst.Days())
	for _, d := range dst.Dates() {
		wd := WeekdayOf(d)
		counts[wd]++
		occ := counts[wd]

		source := occurrences[wd]
		srcOcc := occ
		if srcOcc > len(source) {
			srcOcc = len(source)
		}

		var id *int64
		if srcOcc > 0 {
			id = source[srcOcc-1]
		}
		s.SetDate(d, id)

		assignments = append(assignments, Assignment{
			Date:             d,
			Weekday:          wd,
			Occurrence:       occ,
			SourceOccurrence: srcOcc,
			DayTypeID:        id,
		})
	}
	return assignments
}

// CopyPreviousMonth copies the month before m into m
func (s *Schedule) CopyPreviousMonth(m Month, exists func(id int64) bool) []Assignment {
	return s.CopyMonth(m.Previous(), m, exists)
}

// RemoveDayType drops every reference to a deleted day type. Weekly entries are
// removed; date overrides pointing at it become Cleared so those dates keep
// resolving to no day type. It returns the number of entries changed.
func (s *Schedule) RemoveDayType(id int64) int {
	changed := 0
	for wd, ref := range s.weekly {
		if ref == id {
			delete(s.weekly, wd)
			changed++
		}
	}
	for key, o := range s.overrides {
		if ref, ok := o.DayTypeID(); ok && ref == id {
			s.overrides[key] = Cleared()
			changed++
		}
	}
	return changed
}
