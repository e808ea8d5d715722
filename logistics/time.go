package logistics

import (
	"fmt"
	"time"
)

// =============================================================================
// DATE - Calendar date without time-of-day (naive local calendar)
// =============================================================================

// Date is a comparable calendar date. The engine keys closed dates and special
// schedules by Date, so it must be usable as a map key.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

func NewDate(year int, month time.Month, day int) Date {
	return Date{Year: year, Month: month, Day: day}
}

// DateOf extracts the calendar date from an instant.
func DateOf(t time.Time) Date {
	return Date{Year: t.Year(), Month: t.Month(), Day: t.Day()}
}

// ParseDate parses an ISO date (2006-01-02).
func ParseDate(s string) (Date, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return DateOf(t), nil
}

// Time returns midnight of the date. All instants in the engine are naive
// local time carried in UTC.
func (d Date) Time() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

func (d Date) AddDays(n int) Date           { return DateOf(d.Time().AddDate(0, 0, n)) }
func (d Date) Weekday() time.Weekday        { return d.Time().Weekday() }
func (d Date) Before(other Date) bool       { return d.Time().Before(other.Time()) }
func (d Date) After(other Date) bool        { return d.Time().After(other.Time()) }
func (d Date) Equal(other Date) bool        { return d == other }
func (d Date) String() string               { return d.Time().Format("2006-01-02") }

// DaysBetween returns the number of whole days from one date to another.
// Negative when to precedes from.
func DaysBetween(from, to Date) int {
	return int(to.Time().Sub(from.Time()).Hours() / 24)
}

// =============================================================================
// CLOCK TIME - Time-of-day at minute granularity
// =============================================================================

// ClockTime is a wall-clock time of day. Departure and arrival times of
// delivery schedules, and store opening hours, are all minute-granular.
type ClockTime struct {
	Hour   int
	Minute int
}

func NewClock(hour, minute int) ClockTime {
	return ClockTime{Hour: hour, Minute: minute}
}

// ClockOf extracts the time-of-day from an instant.
func ClockOf(t time.Time) ClockTime {
	return ClockTime{Hour: t.Hour(), Minute: t.Minute()}
}

// ParseClock parses a HH:MM string.
func ParseClock(s string) (ClockTime, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return ClockTime{}, fmt.Errorf("invalid time %q: %w", s, err)
	}
	return ClockOf(t), nil
}

func (c ClockTime) minutes() int { return c.Hour*60 + c.Minute }

func (c ClockTime) Before(other ClockTime) bool    { return c.minutes() < other.minutes() }
func (c ClockTime) AtOrAfter(other ClockTime) bool { return c.minutes() >= other.minutes() }
func (c ClockTime) String() string                 { return fmt.Sprintf("%02d:%02d", c.Hour, c.Minute) }

// At combines the clock time with a date into an instant.
func (c ClockTime) At(d Date) time.Time {
	return time.Date(d.Year, d.Month, d.Day, c.Hour, c.Minute, 0, 0, time.UTC)
}

// =============================================================================
// WEEKDAY NAMES - Wire and storage layers use English weekday names
// =============================================================================

// ParseWeekday resolves a weekday name ("Monday" ... "Sunday").
func ParseWeekday(name string) (time.Weekday, error) {
	for wd := time.Sunday; wd <= time.Saturday; wd++ {
		if wd.String() == name {
			return wd, nil
		}
	}
	return time.Sunday, fmt.Errorf("invalid weekday %q", name)
}
