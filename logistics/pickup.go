/*
pickup.go - Arrival-to-pickup-window resolution

PURPOSE:
  Convert a delivery arrival instant into the concrete [start, end) interval
  during which a customer may collect the order, bounded by the store's
  working hours for that date.

RESOLUTION STEPS:
  1. available = arrival + unloading duration
  2. Resolve working hours for available's date; closed -> ClosedError
  3. At or after closing: the goods wait overnight; the window is the next
     day's full open-to-close interval (ClosedError if that day has no hours)
  4. Before opening: the window start clamps to opening time, same day
  5. Otherwise the window starts at available itself
  6. The window always ends at closing time of its start date
*/
package logistics

import (
	"time"
)

// PickupWindow computes the pickup window for goods arriving at the store at
// the given instant. Returns an error wrapping ErrStoreClosed when no window
// exists on the resolved date.
func (s *Store) PickupWindow(arrival time.Time) (Window, error) {
	available := arrival.Add(s.unloading)
	day := DateOf(available)

	hours, ok := s.WorkingHours(day)
	if !ok {
		return Window{}, &ClosedError{StoreCode: s.code, Date: day}
	}

	clock := ClockOf(available)
	if clock.AtOrAfter(hours.ClosesAt()) {
		// Goods become available after closing; pickup rolls over to the
		// next business day's full interval.
		next := day.AddDays(1)
		nextHours, ok := s.WorkingHours(next)
		if !ok {
			return Window{}, &ClosedError{StoreCode: s.code, Date: next}
		}
		return Window{
			Start: nextHours.OpensAt().At(next),
			End:   nextHours.ClosesAt().At(next),
		}, nil
	}

	start := available
	if clock.Before(hours.OpensAt()) {
		start = hours.OpensAt().At(day)
	}
	return Window{Start: start, End: hours.ClosesAt().At(day)}, nil
}
