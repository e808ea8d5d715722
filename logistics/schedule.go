/*
schedule.go - Enumeration of upcoming delivery arrivals

PURPOSE:
  Walk calendar dates forward from a reference instant and emit every
  departure that matches a schedule's weekday and weekly-frequency rule,
  converted to its arrival instant at the store.

MATCHING RULES (per candidate date and schedule):
  1. The candidate's weekday must equal the schedule's weekday.
  2. Whole weeks elapsed since the schedule's start date must be divisible
     by the frequency, and the candidate must be on or after the start date.
  3. On the reference date itself, a departure strictly before the reference
     time-of-day has already left and cannot be caught.

The scan stops once enough matches are collected or the horizon is
exhausted. A final sort guarantees ascending arrival order even when
multiple schedules fire on the same day with different transit times.
*/
package logistics

import (
	"sort"
	"time"
)

// DefaultHorizonDays caps how far forward the enumerator scans. A tunable
// heuristic, not a hard constant; see Config.
const DefaultHorizonDays = 60

// NextArrivals enumerates up to count upcoming arrivals for the given
// schedules, starting at from and scanning at most horizonDays calendar
// days. Pure function: the reference instant is explicit, nothing reads the
// ambient clock. The result is ordered by arrival instant.
func NextArrivals(schedules []DeliverySchedule, from time.Time, count, horizonDays int) []Arrival {
	fromDate := DateOf(from)
	fromClock := ClockOf(from)

	var arrivals []Arrival
	for offset := 0; offset < horizonDays && len(arrivals) < count; offset++ {
		day := fromDate.AddDays(offset)
		for _, schedule := range schedules {
			if day.Weekday() != schedule.Weekday {
				continue
			}
			if day.Before(schedule.StartDate) {
				continue
			}
			weeks := DaysBetween(schedule.StartDate, day) / 7
			if weeks%schedule.Frequency != 0 {
				continue
			}
			// A truck that already left today cannot be caught.
			if offset == 0 && schedule.DepartureTime.Before(fromClock) {
				continue
			}
			arrivalDay := day.AddDays(schedule.TravelDays)
			arrivals = append(arrivals, Arrival{
				Schedule: schedule,
				At:       schedule.ArrivalTime.At(arrivalDay),
			})
			if len(arrivals) >= count {
				break
			}
		}
	}

	sort.Slice(arrivals, func(i, j int) bool { return arrivals[i].At.Before(arrivals[j].At) })
	return arrivals
}
