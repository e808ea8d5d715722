/*
errors.go - Error taxonomy for the scheduling engine

PURPOSE:
  All engine error conditions in one place. Every condition here is expected
  and recoverable by the caller; none is process-fatal.

ERROR CATEGORIES:
  1. Terminal conditions - abort a request, surfaced to the caller
     (store not found, no schedule configured, no available dates)
  2. Per-candidate conditions - absorbed by the planner, which simply tries
     the next candidate (store closed on a specific date)
  3. Setup errors - catalog misuse during the build phase

USAGE:
  The planner branches on these with errors.Is:

    window, err := store.PickupWindow(arrival.At)
    if errors.Is(err, logistics.ErrStoreClosed) {
        continue // closed that day, try the next candidate
    }

SEE ALSO:
  - planner.go: translates terminal conditions for the HTTP layer
  - pickup.go: raises ErrStoreClosed via ClosedError
*/
package logistics

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrStoreNotFound is returned when the requested store code is not
	// registered in the catalog.
	ErrStoreNotFound = errors.New("store not found")

	// ErrNoDeliverySchedule is returned when a store has no recurring
	// delivery schedules configured. Distinct from finding zero arrivals
	// within the horizon, which is not an error at the enumerator level.
	ErrNoDeliverySchedule = errors.New("no delivery schedule configured for store")

	// ErrStoreClosed is raised for a specific candidate date. The planner
	// absorbs it and moves on; it never reaches the caller directly.
	ErrStoreClosed = errors.New("store closed")

	// ErrNoAvailableDates is returned when every candidate within the
	// horizon was filtered out.
	ErrNoAvailableDates = errors.New("no available pickup dates in near future")

	// ErrCatalogFrozen is returned on any mutation attempt after Freeze.
	ErrCatalogFrozen = errors.New("catalog is frozen")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// ClosedError reports which store and date were closed.
type ClosedError struct {
	StoreCode string
	Date      Date
}

func (e *ClosedError) Error() string {
	return fmt.Sprintf("store %s is closed on %s", e.StoreCode, e.Date)
}

func (e *ClosedError) Unwrap() error { return ErrStoreClosed }

// InvalidScheduleError reports a schedule that violates its invariants.
type InvalidScheduleError struct {
	StoreCode string
	Reason    string
}

func (e *InvalidScheduleError) Error() string {
	if e.StoreCode == "" {
		return fmt.Sprintf("invalid delivery schedule: %s", e.Reason)
	}
	return fmt.Sprintf("invalid delivery schedule for store %s: %s", e.StoreCode, e.Reason)
}

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsTerminal returns true if the error aborts a request and should be
// surfaced to the caller as-is.
func IsTerminal(err error) bool {
	return errors.Is(err, ErrStoreNotFound) ||
		errors.Is(err, ErrNoDeliverySchedule) ||
		errors.Is(err, ErrNoAvailableDates)
}

// IsNotFound returns true if the error indicates a missing store.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrStoreNotFound)
}
