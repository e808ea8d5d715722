/*
handlers_test.go - Unit tests for API handlers

Tests for:
- The delivery-times endpoint (success, validation, terminal errors)
- Catalog inspection endpoints
- Scenario loading and catalog swapping
*/
package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/delivery-engine/logistics"
	"github.com/warp/delivery-engine/metrics"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	cfg := logistics.DefaultConfig()
	planner := logistics.NewPlanner(SeedCatalog(), cfg)
	handler := NewHandler(planner, cfg, zerolog.Nop(), metrics.New())

	server := httptest.NewServer(NewRouter(handler))
	t.Cleanup(server.Close)
	return server
}

func getJSON(t *testing.T, url string, dst any) int {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(dst))
	return resp.StatusCode
}

// =============================================================================
// DELIVERY TIMES
// =============================================================================

func TestGetDeliveryTimes_Success(t *testing.T) {
	// GIVEN: The seed catalog and an order Monday 2024-06-17 07:00
	// THEN: The first option is Wednesday 11:00-20:00

	server := newTestServer(t)

	var result DeliveryResultDTO
	status := getJSON(t, server.URL+"/api/delivery-times?store_code=STORE001&order_date=2024-06-17T07:00", &result)

	require.Equal(t, http.StatusOK, status)
	assert.Empty(t, result.Error)
	require.NotEmpty(t, result.Dates)

	first := result.Dates[0]
	assert.Equal(t, "2024-06-19", first.Date)
	assert.Equal(t, []string{"11:00", "20:00"}, first.TimeRange)
	assert.Equal(t, "2024-06-19 from 11:00 to 20:00", first.Formatted)
}

func TestGetDeliveryTimes_AcceptsRFC3339(t *testing.T) {
	server := newTestServer(t)

	var result DeliveryResultDTO
	status := getJSON(t, server.URL+"/api/delivery-times?store_code=STORE001&order_date=2024-06-17T07:00:00Z", &result)

	require.Equal(t, http.StatusOK, status)
	assert.Empty(t, result.Error)
	assert.NotEmpty(t, result.Dates)
}

func TestGetDeliveryTimes_DaysLimit(t *testing.T) {
	server := newTestServer(t)

	var result DeliveryResultDTO
	status := getJSON(t, server.URL+"/api/delivery-times?store_code=STORE001&order_date=2024-06-17T07:00&days=2", &result)

	require.Equal(t, http.StatusOK, status)
	assert.LessOrEqual(t, len(result.Dates), 2)

	seen := make(map[string]bool)
	for _, d := range result.Dates {
		assert.False(t, seen[d.Date], "duplicate date %s", d.Date)
		seen[d.Date] = true
	}
}

func TestGetDeliveryTimes_UnknownStore(t *testing.T) {
	// Terminal domain errors ride a 200 with the error string in the body.
	server := newTestServer(t)

	var result DeliveryResultDTO
	status := getJSON(t, server.URL+"/api/delivery-times?store_code=NOPE&order_date=2024-06-17T07:00", &result)

	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Store not found", result.Error)
	assert.Empty(t, result.Dates)
}

func TestGetDeliveryTimes_MissingStoreCode(t *testing.T) {
	server := newTestServer(t)

	var resp ErrorResponse
	status := getJSON(t, server.URL+"/api/delivery-times", &resp)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.NotEmpty(t, resp.Error)
}

func TestGetDeliveryTimes_InvalidOrderDate(t *testing.T) {
	server := newTestServer(t)

	var resp ErrorResponse
	status := getJSON(t, server.URL+"/api/delivery-times?store_code=STORE001&order_date=yesterday", &resp)
	assert.Equal(t, http.StatusBadRequest, status)
}

// =============================================================================
// CATALOG INSPECTION
// =============================================================================

func TestListStores(t *testing.T) {
	server := newTestServer(t)

	var stores []StoreDTO
	status := getJSON(t, server.URL+"/api/stores", &stores)

	require.Equal(t, http.StatusOK, status)
	require.Len(t, stores, 1)
	assert.Equal(t, "STORE001", stores[0].Code)
	assert.Equal(t, 120, stores[0].UnloadingMinutes)
	assert.Len(t, stores[0].Schedules, 2)
}

func TestGetStore_Detail(t *testing.T) {
	server := newTestServer(t)

	var store StoreDTO
	status := getJSON(t, server.URL+"/api/stores/STORE001", &store)

	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, []int{10, 20}, store.RegularHours["Monday"])
	assert.Equal(t, []int{10, 17}, store.RegularHours["Sunday"])
	assert.Equal(t, []int{12, 16}, store.SpecialHours["2024-07-02"])
	assert.Contains(t, store.ClosedDates, "2024-07-01")
}

func TestGetStore_NotFound(t *testing.T) {
	server := newTestServer(t)

	resp, err := http.Get(server.URL + "/api/stores/NOPE")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

// =============================================================================
// SCENARIOS
// =============================================================================

func TestScenarios_LoadAndSwap(t *testing.T) {
	// GIVEN: The default seed catalog
	// WHEN: Loading the biweekly-outpost scenario
	// THEN: The outpost store becomes plannable and current reflects the swap

	server := newTestServer(t)

	var list []ScenarioDTO
	status := getJSON(t, server.URL+"/api/scenarios", &list)
	require.Equal(t, http.StatusOK, status)
	assert.GreaterOrEqual(t, len(list), 3)

	resp, err := http.Post(server.URL+"/api/scenarios/load", "application/json",
		strings.NewReader(`{"scenario_id":"biweekly-outpost"}`))
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var current ScenarioDTO
	status = getJSON(t, server.URL+"/api/scenarios/current", &current)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "biweekly-outpost", current.ID)

	var result DeliveryResultDTO
	status = getJSON(t, server.URL+"/api/delivery-times?store_code=OUTPOST042&order_date=2024-06-04T05:00", &result)
	require.Equal(t, http.StatusOK, status)
	assert.Empty(t, result.Error)
	assert.NotEmpty(t, result.Dates)

	// The previous catalog is gone along with its store.
	status = getJSON(t, server.URL+"/api/delivery-times?store_code=STORE001", &result)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Store not found", result.Error)
}

func TestScenarios_UnknownID(t *testing.T) {
	server := newTestServer(t)

	resp, err := http.Post(server.URL+"/api/scenarios/load", "application/json",
		strings.NewReader(`{"scenario_id":"nope"}`))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestHealth(t *testing.T) {
	server := newTestServer(t)

	var body map[string]string
	status := getJSON(t, server.URL+"/api/health", &body)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "ok", body["status"])
}
