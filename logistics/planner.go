/*
planner.go - The result aggregator

PURPOSE:
  Orchestrates the schedule enumerator and the pickup resolver against a
  frozen catalog: applies the order-processing offset, over-fetches candidate
  arrivals to absorb closed days, deduplicates by calendar date, and
  truncates to the requested count.

ERROR POLICY:
  Only the planner translates internal conditions into terminal errors.
  ErrStoreClosed from the resolver is absorbed per candidate so one closed
  day never aborts the whole search; ErrStoreNotFound, ErrNoDeliverySchedule
  and ErrNoAvailableDates abort the request and reach the caller.
*/
package logistics

import (
	"errors"
	"time"
)

// DefaultDaysToShow is the number of distinct pickup dates returned when the
// caller does not ask for a specific count.
const DefaultDaysToShow = 5

// Config carries the planner's tunable parameters. The horizon and the
// over-fetch factor are heuristics; closures clustering unevenly may warrant
// raising either.
type Config struct {
	// Processing is the delay between order placement and the order being
	// ready to leave the warehouse.
	Processing time.Duration

	// HorizonDays caps how far forward arrivals are enumerated.
	HorizonDays int

	// Overfetch multiplies the requested count when asking the enumerator
	// for candidates, absorbing dates filtered out as closed.
	Overfetch int
}

// DefaultConfig returns the standard planner parameters.
func DefaultConfig() Config {
	return Config{
		Processing:  60 * time.Minute,
		HorizonDays: DefaultHorizonDays,
		Overfetch:   2,
	}
}

// Planner computes delivery options against a frozen catalog. Safe for
// concurrent use.
type Planner struct {
	catalog *Catalog
	cfg     Config
}

// NewPlanner creates a planner. Zero-valued config fields fall back to the
// defaults.
func NewPlanner(catalog *Catalog, cfg Config) *Planner {
	defaults := DefaultConfig()
	if cfg.Processing == 0 {
		cfg.Processing = defaults.Processing
	}
	if cfg.HorizonDays == 0 {
		cfg.HorizonDays = defaults.HorizonDays
	}
	if cfg.Overfetch == 0 {
		cfg.Overfetch = defaults.Overfetch
	}
	return &Planner{catalog: catalog, cfg: cfg}
}

// Catalog returns the catalog the planner serves from.
func (p *Planner) Catalog() *Catalog { return p.catalog }

// NextArrivals enumerates upcoming arrivals for a store. Returns
// ErrNoDeliverySchedule when the store has no schedules registered at all;
// an empty result within the horizon is not an error.
func (p *Planner) NextArrivals(storeCode string, from time.Time, count int) ([]Arrival, error) {
	schedules := p.catalog.Schedules(storeCode)
	if len(schedules) == 0 {
		return nil, ErrNoDeliverySchedule
	}
	return NextArrivals(schedules, from, count, p.cfg.HorizonDays), nil
}

// DeliveryOptions returns up to daysToShow pickup windows on distinct
// calendar dates, ordered by date, for an order placed at orderAt.
func (p *Planner) DeliveryOptions(storeCode string, orderAt time.Time, daysToShow int) ([]Window, error) {
	store, ok := p.catalog.Store(storeCode)
	if !ok {
		return nil, ErrStoreNotFound
	}
	if daysToShow <= 0 {
		daysToShow = DefaultDaysToShow
	}

	ready := orderAt.Add(p.cfg.Processing)
	arrivals, err := p.NextArrivals(storeCode, ready, daysToShow*p.cfg.Overfetch)
	if err != nil {
		return nil, err
	}

	windows := make([]Window, 0, daysToShow)
	seen := make(map[Date]struct{}, daysToShow)
	for _, arrival := range arrivals {
		window, err := store.PickupWindow(arrival.At)
		if err != nil {
			if errors.Is(err, ErrStoreClosed) {
				continue
			}
			return nil, err
		}
		// Multiple trucks landing on the same pickup date collapse to one
		// entry.
		if _, dup := seen[window.Date()]; dup {
			continue
		}
		seen[window.Date()] = struct{}{}
		windows = append(windows, window)
		if len(windows) >= daysToShow {
			break
		}
	}

	if len(windows) == 0 {
		return nil, ErrNoAvailableDates
	}
	return windows, nil
}
