/*
scenarios.go - Demo catalog loaders for testing and demonstrations

PURPOSE:

	Provides pre-built catalogs with realistic stores and delivery schedules.
	Loading a scenario builds a fresh catalog, freezes it, and swaps it into
	the handler atomically; in-flight requests keep the catalog they started
	with.

AVAILABLE SCENARIOS:

	flagship-store:    City store, two weekly trips (the default seed)
	biweekly-outpost:  Remote store served every second week, long transit
	holiday-closures:  Store with clustered closures and shortened hours

USAGE VIA API:

	POST /api/scenarios/load
	{"scenario_id": "biweekly-outpost"}

ADDING NEW SCENARIOS:
 1. Add to the 'scenarios' slice with ID, name, description
 2. Create a builder returning a frozen *logistics.Catalog
 3. Add a case to catalogFor

SEE ALSO:
  - handlers.go: handler wiring
  - cmd/server/main.go: uses SeedCatalog for the boot-time default
*/
package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/warp/delivery-engine/logistics"
)

// =============================================================================
// SCENARIO DEFINITIONS
// =============================================================================

const defaultScenarioID = "flagship-store"

var scenarios = []ScenarioDTO{
	{
		ID:          defaultScenarioID,
		Name:        "Flagship Store",
		Description: "City store with Monday and Thursday weekly deliveries",
	},
	{
		ID:          "biweekly-outpost",
		Name:        "Biweekly Outpost",
		Description: "Remote store served every second week with three travel days",
	},
	{
		ID:          "holiday-closures",
		Name:        "Holiday Closures",
		Description: "Store with a closure cluster and shortened special hours",
	},
}

// ListScenarios returns available scenarios.
func (h *Handler) ListScenarios(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, scenarios)
}

// GetCurrentScenario returns the currently loaded scenario, if any.
func (h *Handler) GetCurrentScenario(w http.ResponseWriter, r *http.Request) {
	h.mu.RLock()
	current := h.currentScenario
	h.mu.RUnlock()

	if current == "" {
		writeJSON(w, http.StatusOK, nil)
		return
	}
	for _, s := range scenarios {
		if s.ID == current {
			writeJSON(w, http.StatusOK, s)
			return
		}
	}
	writeJSON(w, http.StatusOK, nil)
}

// LoadScenario rebuilds the catalog from a named seed and swaps it in.
// POST /api/scenarios/load
func (h *Handler) LoadScenario(w http.ResponseWriter, r *http.Request) {
	var req LoadScenarioRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	catalog, err := catalogFor(req.ScenarioID)
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error(), nil)
		return
	}

	h.mu.Lock()
	h.planner = logistics.NewPlanner(catalog, h.cfg)
	h.currentScenario = req.ScenarioID
	h.mu.Unlock()

	h.logger.Info().Str("scenario", req.ScenarioID).Msg("scenario loaded")
	writeJSON(w, http.StatusOK, map[string]string{"status": "loaded", "scenario_id": req.ScenarioID})
}

func catalogFor(scenarioID string) (*logistics.Catalog, error) {
	switch scenarioID {
	case defaultScenarioID:
		return SeedCatalog(), nil
	case "biweekly-outpost":
		return biweeklyOutpostCatalog(), nil
	case "holiday-closures":
		return holidayClosuresCatalog(), nil
	default:
		return nil, fmt.Errorf("unknown scenario %q", scenarioID)
	}
}

// =============================================================================
// CATALOG BUILDERS
// =============================================================================

// SeedCatalog builds the default frozen catalog: one city store with two
// weekly delivery trips, a closed date and one special-hours date.
func SeedCatalog() *logistics.Catalog {
	catalog := logistics.NewCatalog()

	store := logistics.NewStore("STORE001", map[time.Weekday]logistics.HoursRange{
		time.Monday:    {Open: 10, Close: 20},
		time.Tuesday:   {Open: 10, Close: 20},
		time.Wednesday: {Open: 10, Close: 20},
		time.Thursday:  {Open: 10, Close: 20},
		time.Friday:    {Open: 10, Close: 20},
		time.Saturday:  {Open: 10, Close: 18},
		time.Sunday:    {Open: 10, Close: 17},
	}, 120*time.Minute)
	store.AddClosedDate(logistics.NewDate(2024, time.July, 1))
	store.AddSpecialHours(logistics.NewDate(2024, time.July, 2), logistics.HoursRange{Open: 12, Close: 16})
	catalog.AddStore(store)

	catalog.AddSchedule(logistics.DeliverySchedule{
		StoreCode:     "STORE001",
		Weekday:       time.Monday,
		Frequency:     1,
		StartDate:     logistics.NewDate(2024, time.June, 1),
		DepartureTime: logistics.NewClock(8, 0),
		TravelDays:    2,
		ArrivalTime:   logistics.NewClock(9, 0),
	})
	catalog.AddSchedule(logistics.DeliverySchedule{
		StoreCode:     "STORE001",
		Weekday:       time.Thursday,
		Frequency:     1,
		StartDate:     logistics.NewDate(2024, time.June, 1),
		DepartureTime: logistics.NewClock(8, 0),
		TravelDays:    1,
		ArrivalTime:   logistics.NewClock(10, 0),
	})

	catalog.Freeze()
	return catalog
}

func biweeklyOutpostCatalog() *logistics.Catalog {
	catalog := logistics.NewCatalog()

	store := logistics.NewStore("OUTPOST042", map[time.Weekday]logistics.HoursRange{
		time.Monday:    {Open: 9, Close: 18},
		time.Tuesday:   {Open: 9, Close: 18},
		time.Wednesday: {Open: 9, Close: 18},
		time.Thursday:  {Open: 9, Close: 18},
		time.Friday:    {Open: 9, Close: 18},
	}, 180*time.Minute)
	catalog.AddStore(store)

	catalog.AddSchedule(logistics.DeliverySchedule{
		StoreCode:     "OUTPOST042",
		Weekday:       time.Tuesday,
		Frequency:     2,
		StartDate:     logistics.NewDate(2024, time.June, 4),
		DepartureTime: logistics.NewClock(6, 0),
		TravelDays:    3,
		ArrivalTime:   logistics.NewClock(14, 0),
	})

	catalog.Freeze()
	return catalog
}

func holidayClosuresCatalog() *logistics.Catalog {
	catalog := logistics.NewCatalog()

	store := logistics.NewStore("STORE777", map[time.Weekday]logistics.HoursRange{
		time.Monday:    {Open: 10, Close: 19},
		time.Tuesday:   {Open: 10, Close: 19},
		time.Wednesday: {Open: 10, Close: 19},
		time.Thursday:  {Open: 10, Close: 19},
		time.Friday:    {Open: 10, Close: 19},
		time.Saturday:  {Open: 11, Close: 16},
	}, 90*time.Minute)
	// A closure cluster around the New Year, plus shortened hours either side.
	store.AddClosedDate(logistics.NewDate(2024, time.December, 31))
	store.AddClosedDate(logistics.NewDate(2025, time.January, 1))
	store.AddClosedDate(logistics.NewDate(2025, time.January, 2))
	store.AddSpecialHours(logistics.NewDate(2024, time.December, 30), logistics.HoursRange{Open: 10, Close: 14})
	store.AddSpecialHours(logistics.NewDate(2025, time.January, 3), logistics.HoursRange{Open: 12, Close: 19})
	catalog.AddStore(store)

	catalog.AddSchedule(logistics.DeliverySchedule{
		StoreCode:     "STORE777",
		Weekday:       time.Monday,
		Frequency:     1,
		StartDate:     logistics.NewDate(2024, time.November, 4),
		DepartureTime: logistics.NewClock(7, 30),
		TravelDays:    1,
		ArrivalTime:   logistics.NewClock(8, 30),
	})

	catalog.Freeze()
	return catalog
}
