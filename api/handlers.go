/*
handlers.go - HTTP API handlers for the delivery planning service

PURPOSE:
  Exposes the scheduling engine via REST API. Handles HTTP request/response,
  JSON serialization, and delegates to the planner.

ENDPOINTS:
  GET  /api/delivery-times   Pickup windows for a store and order instant
  GET  /api/stores           List stores in the active catalog
  GET  /api/stores/{code}    Store calendar and schedule detail
  GET  /api/health           Liveness probe
  GET  /api/scenarios        List demo scenarios (see scenarios.go)
  POST /api/scenarios/load   Swap in a demo catalog

REQUEST FLOW:
  1. Parse and validate query parameters
  2. Call the planner
  3. Serialize the result (success list or single error string)

ERROR HANDLING:
  The three terminal engine conditions (store not found, no schedule, no
  available dates) are part of the wire contract: they come back as a 200
  with the error string in the body, matching what clients of the original
  service expect. Malformed input gets a 400.

SEE ALSO:
  - dto.go: Request/response data structures
  - server.go: Router setup and middleware
  - logistics/planner.go: The engine entry point
*/
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/warp/delivery-engine/logistics"
	"github.com/warp/delivery-engine/metrics"
)

// Accepted order_date layouts: RFC 3339 and the bare minute-precision form.
var orderDateLayouts = []string{time.RFC3339, "2006-01-02T15:04"}

// Terminal engine conditions mapped to caller-visible error strings.
var errorMessages = map[error]string{
	logistics.ErrStoreNotFound:      "Store not found",
	logistics.ErrNoDeliverySchedule: "No delivery schedule found for this store",
	logistics.ErrNoAvailableDates:   "No available dates for pickup in the near future",
}

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers. The planner is swapped
// atomically when a demo scenario is loaded; everything else is fixed for
// the process lifetime.
type Handler struct {
	logger  zerolog.Logger
	metrics *metrics.DeliveryMetrics
	cfg     logistics.Config

	mu              sync.RWMutex
	planner         *logistics.Planner
	currentScenario string
}

// NewHandler creates a handler serving from the given planner.
func NewHandler(planner *logistics.Planner, cfg logistics.Config, logger zerolog.Logger, m *metrics.DeliveryMetrics) *Handler {
	return &Handler{
		logger:  logger,
		metrics: m,
		cfg:     cfg,
		planner: planner,
	}
}

func (h *Handler) currentPlanner() *logistics.Planner {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.planner
}

// =============================================================================
// DELIVERY TIMES
// =============================================================================

// GetDeliveryTimes computes pickup windows for a store.
// GET /api/delivery-times?store_code=X&order_date=2024-06-17T07:00&days=5
func (h *Handler) GetDeliveryTimes(w http.ResponseWriter, r *http.Request) {
	storeCode := r.URL.Query().Get("store_code")
	if storeCode == "" {
		h.metrics.RecordPlanning("", "bad_request", 0, 0)
		writeError(w, http.StatusBadRequest, "store_code is required", nil)
		return
	}

	orderAt := time.Now().UTC()
	if raw := r.URL.Query().Get("order_date"); raw != "" {
		parsed, err := parseOrderDate(raw)
		if err != nil {
			h.metrics.RecordPlanning(storeCode, "bad_request", 0, 0)
			writeError(w, http.StatusBadRequest, "invalid order_date", err)
			return
		}
		orderAt = parsed
	}

	daysToShow := logistics.DefaultDaysToShow
	if raw := r.URL.Query().Get("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			h.metrics.RecordPlanning(storeCode, "bad_request", 0, 0)
			writeError(w, http.StatusBadRequest, "days must be a positive integer", err)
			return
		}
		daysToShow = parsed
	}

	started := time.Now()
	windows, err := h.currentPlanner().DeliveryOptions(storeCode, orderAt, daysToShow)
	elapsed := time.Since(started).Seconds()

	if err != nil {
		outcome, message := classify(err)
		h.metrics.RecordPlanning(storeCode, outcome, 0, elapsed)
		if message == "" {
			h.logger.Error().Err(err).Str("store_code", storeCode).Msg("planning failed")
			writeError(w, http.StatusInternalServerError, "planning failed", err)
			return
		}
		h.logger.Debug().Str("store_code", storeCode).Str("outcome", outcome).Msg("no pickup options")
		writeJSON(w, http.StatusOK, DeliveryResultDTO{Dates: []PickupWindowDTO{}, Error: message})
		return
	}

	h.metrics.RecordPlanning(storeCode, "ok", len(windows), elapsed)
	writeJSON(w, http.StatusOK, DeliveryResultDTO{Dates: toPickupWindowDTOs(windows)})
}

func parseOrderDate(raw string) (time.Time, error) {
	var err error
	for _, layout := range orderDateLayouts {
		var t time.Time
		if t, err = time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}
	return time.Time{}, err
}

// classify maps a terminal engine error to a metric outcome and the
// caller-visible message. Unknown errors return an empty message.
func classify(err error) (outcome, message string) {
	switch {
	case errors.Is(err, logistics.ErrStoreNotFound):
		return "store_not_found", errorMessages[logistics.ErrStoreNotFound]
	case errors.Is(err, logistics.ErrNoDeliverySchedule):
		return "no_schedule", errorMessages[logistics.ErrNoDeliverySchedule]
	case errors.Is(err, logistics.ErrNoAvailableDates):
		return "no_dates", errorMessages[logistics.ErrNoAvailableDates]
	default:
		return "internal_error", ""
	}
}

// =============================================================================
// CATALOG INSPECTION
// =============================================================================

// ListStores returns every store in the active catalog.
func (h *Handler) ListStores(w http.ResponseWriter, r *http.Request) {
	catalog := h.currentPlanner().Catalog()

	stores := catalog.Stores()
	dtos := make([]StoreDTO, len(stores))
	for i, store := range stores {
		dtos[i] = toStoreDTO(store, catalog.Schedules(store.Code()))
	}
	writeJSON(w, http.StatusOK, dtos)
}

// GetStore returns one store's calendar and schedules.
func (h *Handler) GetStore(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")
	catalog := h.currentPlanner().Catalog()

	store, ok := catalog.Store(code)
	if !ok {
		writeError(w, http.StatusNotFound, errorMessages[logistics.ErrStoreNotFound], nil)
		return
	}
	writeJSON(w, http.StatusOK, toStoreDTO(store, catalog.Schedules(code)))
}

// Health is a liveness probe.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// =============================================================================
// HELPERS
// =============================================================================

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func decodeJSON(r *http.Request, dst any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(dst)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}
