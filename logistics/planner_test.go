package logistics_test

import (
	"reflect"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/delivery-engine/logistics"
)

// =============================================================================
// TEST SETUP
// =============================================================================

// cityCatalog mirrors the demo seed: one store with 10-20 weekday hours
// (shorter weekends), 120 minutes unloading, a Monday and a Thursday weekly
// trip starting 2024-06-01.
func cityCatalog(t *testing.T) *logistics.Catalog {
	t.Helper()
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
	require.NoError(t, catalog.AddStore(store))

	require.NoError(t, catalog.AddSchedule(logistics.DeliverySchedule{
		StoreCode:     "STORE001",
		Weekday:       time.Monday,
		Frequency:     1,
		StartDate:     logistics.NewDate(2024, time.June, 1),
		DepartureTime: logistics.NewClock(8, 0),
		TravelDays:    2,
		ArrivalTime:   logistics.NewClock(9, 0),
	}))
	require.NoError(t, catalog.AddSchedule(logistics.DeliverySchedule{
		StoreCode:     "STORE001",
		Weekday:       time.Thursday,
		Frequency:     1,
		StartDate:     logistics.NewDate(2024, time.June, 1),
		DepartureTime: logistics.NewClock(8, 0),
		TravelDays:    1,
		ArrivalTime:   logistics.NewClock(10, 0),
	}))

	catalog.Freeze()
	return catalog
}

func newCityPlanner(t *testing.T) *logistics.Planner {
	return logistics.NewPlanner(cityCatalog(t), logistics.DefaultConfig())
}

// =============================================================================
// END-TO-END PLANNING
// =============================================================================

func TestDeliveryOptions_CatchesTodaysDeparture(t *testing.T) {
	// GIVEN: An order Monday 07:00 with 60 minutes processing
	// WHEN: Ready at 08:00, the 08:00 Monday departure is still catchable
	// THEN: The first option is Wednesday (arrival 09:00 + 120min unloading)

	planner := newCityPlanner(t)
	windows, err := planner.DeliveryOptions("STORE001", instant(2024, time.June, 17, 7, 0), 5)
	require.NoError(t, err)
	require.NotEmpty(t, windows)

	assert.Equal(t, logistics.NewDate(2024, time.June, 19), windows[0].Date())
	assert.Equal(t, instant(2024, time.June, 19, 11, 0), windows[0].Start)
	assert.Equal(t, instant(2024, time.June, 19, 20, 0), windows[0].End)
}

func TestDeliveryOptions_MissesTodaysDepartureAfterProcessing(t *testing.T) {
	// Order at 07:30 → ready 08:30 → the 08:00 Monday truck is gone.
	// The Thursday trip (arriving Friday) becomes the first option.
	planner := newCityPlanner(t)
	windows, err := planner.DeliveryOptions("STORE001", instant(2024, time.June, 17, 7, 30), 5)
	require.NoError(t, err)
	require.NotEmpty(t, windows)

	assert.Equal(t, logistics.NewDate(2024, time.June, 21), windows[0].Date())
}

func TestDeliveryOptions_SkipsClosedDateAndTriesNextCandidate(t *testing.T) {
	// GIVEN: The store is closed on the first arrival's date
	// THEN: That candidate is silently skipped, not surfaced as an error

	catalog := logistics.NewCatalog()
	store := logistics.NewStore("STORE001", weekdayHours(10, 20), 120*time.Minute)
	store.AddClosedDate(logistics.NewDate(2024, time.June, 19))
	require.NoError(t, catalog.AddStore(store))
	require.NoError(t, catalog.AddSchedule(logistics.DeliverySchedule{
		StoreCode:     "STORE001",
		Weekday:       time.Monday,
		Frequency:     1,
		StartDate:     logistics.NewDate(2024, time.June, 1),
		DepartureTime: logistics.NewClock(8, 0),
		TravelDays:    2,
		ArrivalTime:   logistics.NewClock(9, 0),
	}))
	catalog.Freeze()

	planner := logistics.NewPlanner(catalog, logistics.DefaultConfig())
	windows, err := planner.DeliveryOptions("STORE001", instant(2024, time.June, 17, 7, 0), 5)
	require.NoError(t, err)
	require.NotEmpty(t, windows)

	for _, w := range windows {
		assert.NotEqual(t, logistics.NewDate(2024, time.June, 19), w.Date())
	}
	assert.Equal(t, logistics.NewDate(2024, time.June, 26), windows[0].Date())
}

// =============================================================================
// TERMINAL CONDITIONS
// =============================================================================

func TestDeliveryOptions_UnknownStore(t *testing.T) {
	planner := newCityPlanner(t)
	_, err := planner.DeliveryOptions("NOPE", instant(2024, time.June, 17, 7, 0), 5)
	assert.ErrorIs(t, err, logistics.ErrStoreNotFound)
	assert.True(t, logistics.IsNotFound(err))
}

func TestDeliveryOptions_StoreWithoutSchedules(t *testing.T) {
	catalog := logistics.NewCatalog()
	require.NoError(t, catalog.AddStore(logistics.NewStore("LONELY", weekdayHours(10, 20), 0)))
	catalog.Freeze()

	planner := logistics.NewPlanner(catalog, logistics.DefaultConfig())
	_, err := planner.DeliveryOptions("LONELY", instant(2024, time.June, 17, 7, 0), 5)
	assert.ErrorIs(t, err, logistics.ErrNoDeliverySchedule)
	assert.True(t, logistics.IsTerminal(err))
}

func TestDeliveryOptions_AllCandidatesFilteredOut(t *testing.T) {
	// A store with schedules but no working hours at all: every candidate
	// resolves to closed, so the terminal no-dates condition is returned.
	catalog := logistics.NewCatalog()
	require.NoError(t, catalog.AddStore(logistics.NewStore("DARK", nil, 0)))
	require.NoError(t, catalog.AddSchedule(logistics.DeliverySchedule{
		StoreCode:     "DARK",
		Weekday:       time.Monday,
		Frequency:     1,
		StartDate:     logistics.NewDate(2024, time.June, 1),
		DepartureTime: logistics.NewClock(8, 0),
		TravelDays:    2,
		ArrivalTime:   logistics.NewClock(9, 0),
	}))
	catalog.Freeze()

	planner := logistics.NewPlanner(catalog, logistics.DefaultConfig())
	_, err := planner.DeliveryOptions("DARK", instant(2024, time.June, 17, 7, 0), 5)
	assert.ErrorIs(t, err, logistics.ErrNoAvailableDates)
}

// =============================================================================
// RESULT SHAPE PROPERTIES
// =============================================================================

func TestDeliveryOptions_DatesAreDistinctAndBounded(t *testing.T) {
	planner := newCityPlanner(t)
	windows, err := planner.DeliveryOptions("STORE001", instant(2024, time.June, 17, 7, 0), 3)
	require.NoError(t, err)

	assert.LessOrEqual(t, len(windows), 3)

	seen := make(map[logistics.Date]bool)
	for _, w := range windows {
		assert.False(t, seen[w.Date()], "duplicate date %s", w.Date())
		seen[w.Date()] = true
	}
}

func TestDeliveryOptions_Idempotent(t *testing.T) {
	// Two identical calls against an unmutated catalog yield identical output.
	planner := newCityPlanner(t)
	orderAt := instant(2024, time.June, 17, 7, 0)

	first, err := planner.DeliveryOptions("STORE001", orderAt, 5)
	require.NoError(t, err)
	second, err := planner.DeliveryOptions("STORE001", orderAt, 5)
	require.NoError(t, err)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("identical inputs produced different output:\n%v\n%v", first, second)
	}
}

func TestDeliveryOptions_DefaultsDaysToShow(t *testing.T) {
	planner := newCityPlanner(t)
	windows, err := planner.DeliveryOptions("STORE001", instant(2024, time.June, 17, 7, 0), 0)
	require.NoError(t, err)
	assert.LessOrEqual(t, len(windows), logistics.DefaultDaysToShow)
}
