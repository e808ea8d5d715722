/*
calendar.go - Working-hours resolution for a store and date

RESOLUTION ORDER:
  1. Closed dates - a date in the closed set is never open, regardless of any
     special or regular entry for it
  2. Special hours - a per-date override, authoritative when present
     (shortened or extended hours)
  3. Regular hours - keyed by weekday; a missing weekday entry means closed

Hours are whole local hours with a single open-close interval per day.
*/
package logistics

// IsOpen reports whether the store is open at all on the given date.
func (s *Store) IsOpen(date Date) bool {
	_, closed := s.closedDates[date]
	return !closed
}

// WorkingHours resolves the store's hours for a date. The second return
// value is false when the store is closed that day.
func (s *Store) WorkingHours(date Date) (HoursRange, bool) {
	if !s.IsOpen(date) {
		return HoursRange{}, false
	}
	if hours, ok := s.specialHours[date]; ok {
		return hours, true
	}
	hours, ok := s.regularHours[date.Weekday()]
	return hours, ok
}
