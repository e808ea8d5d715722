/*
Package logistics provides the delivery pickup scheduling engine.

PURPOSE:
  Given a store and an order timestamp, compute the next pickup windows for
  an order that must first travel from a warehouse to the store. The engine
  enumerates recurring delivery trips, converts each arrival into a
  customer-facing pickup window bounded by store opening hours, and collapses
  the candidates into a ranked list of distinct pickup dates.

KEY CONCEPTS IN THIS FILE (types.go):
  - Store: a pickup location with regular hours, per-date overrides and
    closures, and an unloading duration
  - DeliverySchedule: a recurring warehouse-to-store trip (weekday + weekly
    frequency + transit time)
  - Arrival: one concrete occurrence of a schedule (truck reaches the store)
  - Window: a derived [start, end) pickup interval on a specific date

DESIGN PRINCIPLES:
  1. Determinism: every computation takes its reference instants as explicit
     parameters; nothing reads the ambient clock
  2. Immutability after setup: stores and schedules are built once, frozen in
     the Catalog, and only read during request serving
  3. Naive local time: all instants are wall-clock values carried in UTC;
     there is no timezone handling

SEE ALSO:
  - calendar.go: working-hours resolution for a store and date
  - schedule.go: enumeration of upcoming arrivals
  - pickup.go: arrival-to-pickup-window resolution
  - planner.go: the orchestrating aggregator
  - catalog.go: the frozen aggregate of stores and schedules
*/
package logistics

import (
	"sort"
	"time"
)

// =============================================================================
// HOURS RANGE - Opening hours for a single day
// =============================================================================

// HoursRange is a store's open-to-close interval for one day, in whole local
// hours. A single interval per day; split shifts are not modeled.
type HoursRange struct {
	Open  int
	Close int
}

func (h HoursRange) OpensAt() ClockTime  { return ClockTime{Hour: h.Open} }
func (h HoursRange) ClosesAt() ClockTime { return ClockTime{Hour: h.Close} }

// =============================================================================
// STORE - Pickup location
// =============================================================================

// Store is a pickup location. Regular hours are keyed by weekday; special
// hours override them for single dates; closed dates win over everything.
//
// A Store is mutated only through AddSpecialHours and AddClosedDate during
// catalog setup, and is treated as immutable once the catalog is frozen.
type Store struct {
	code         string
	regularHours map[time.Weekday]HoursRange
	specialHours map[Date]HoursRange
	closedDates  map[Date]struct{}
	unloading    time.Duration
}

// NewStore creates a store. The regular hours map is copied.
func NewStore(code string, regularHours map[time.Weekday]HoursRange, unloading time.Duration) *Store {
	regular := make(map[time.Weekday]HoursRange, len(regularHours))
	for wd, h := range regularHours {
		regular[wd] = h
	}
	return &Store{
		code:         code,
		regularHours: regular,
		specialHours: make(map[Date]HoursRange),
		closedDates:  make(map[Date]struct{}),
		unloading:    unloading,
	}
}

func (s *Store) Code() string             { return s.code }
func (s *Store) Unloading() time.Duration { return s.unloading }

// AddSpecialHours overrides the store's hours for a single date.
func (s *Store) AddSpecialHours(date Date, hours HoursRange) {
	s.specialHours[date] = hours
}

// AddClosedDate marks a date as fully unavailable. Closed dates take priority
// over special and regular hours.
func (s *Store) AddClosedDate(date Date) {
	s.closedDates[date] = struct{}{}
}

// RegularHours returns a copy of the weekday hours map.
func (s *Store) RegularHours() map[time.Weekday]HoursRange {
	out := make(map[time.Weekday]HoursRange, len(s.regularHours))
	for wd, h := range s.regularHours {
		out[wd] = h
	}
	return out
}

// SpecialHours returns a copy of the per-date overrides.
func (s *Store) SpecialHours() map[Date]HoursRange {
	out := make(map[Date]HoursRange, len(s.specialHours))
	for d, h := range s.specialHours {
		out[d] = h
	}
	return out
}

// ClosedDates returns the closed dates in chronological order.
func (s *Store) ClosedDates() []Date {
	out := make([]Date, 0, len(s.closedDates))
	for d := range s.closedDates {
		out = append(out, d)
	}
	sortDates(out)
	return out
}

// =============================================================================
// DELIVERY SCHEDULE - Recurring warehouse-to-store trip
// =============================================================================

// DeliverySchedule describes a recurring delivery trip. The truck departs on
// the given weekday every Frequency weeks (counted from StartDate), travels
// for a whole number of days, and arrives at ArrivalTime. Schedules never
// fire before StartDate.
type DeliverySchedule struct {
	StoreCode     string
	Weekday       time.Weekday
	Frequency     int // repeat interval in whole weeks, >= 1
	StartDate     Date
	DepartureTime ClockTime
	TravelDays    int
	ArrivalTime   ClockTime
}

// Validate checks the schedule's invariants.
func (ds DeliverySchedule) Validate() error {
	if ds.StoreCode == "" {
		return &InvalidScheduleError{Reason: "missing store code"}
	}
	if ds.Frequency < 1 {
		return &InvalidScheduleError{StoreCode: ds.StoreCode, Reason: "frequency must be at least 1 week"}
	}
	if ds.TravelDays < 0 {
		return &InvalidScheduleError{StoreCode: ds.StoreCode, Reason: "travel days must not be negative"}
	}
	return nil
}

// =============================================================================
// ARRIVAL & WINDOW - Derived values, never stored
// =============================================================================

// Arrival is one concrete occurrence of a delivery schedule: the instant the
// truck physically reaches the store.
type Arrival struct {
	Schedule DeliverySchedule
	At       time.Time
}

// Window is a [Start, End) pickup interval. Both bounds fall on the same
// calendar date; the engine never produces overnight-spanning windows.
type Window struct {
	Start time.Time
	End   time.Time
}

// Date returns the calendar date the window falls on.
func (w Window) Date() Date { return DateOf(w.Start) }

func sortDates(dates []Date) {
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })
}
