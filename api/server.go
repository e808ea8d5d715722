/*
server.go - HTTP router and middleware configuration

PURPOSE:
  Configures the HTTP router (chi), middleware stack, and route definitions.
  This is the wiring layer that connects URLs to handlers.

MIDDLEWARE STACK:
  1. RequestID:  Unique ID per request for tracing
  2. Logger:     Request logging
  3. Recoverer:  Panic recovery (500 instead of crash)
  4. CORS:       Cross-origin requests
  5. Metrics:    In-flight request gauge

ROUTE GROUPS:
  /api/delivery-times   The planning endpoint
  /api/stores/*         Catalog inspection
  /api/scenarios/*      Demo catalog loading
  /api/health           Liveness
  /metrics              Prometheus exposition

SECURITY NOTE:
  No authentication middleware. All endpoints are public.

SEE ALSO:
  - handlers.go: Handler implementations
  - cmd/server/main.go: Server startup
*/
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// NewRouter creates a new router with all routes configured.
func NewRouter(h *Handler) *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
	}))
	r.Use(h.metrics.Instrument)

	// API routes
	r.Route("/api", func(r chi.Router) {
		r.Get("/delivery-times", h.GetDeliveryTimes)
		r.Get("/health", h.Health)

		r.Route("/stores", func(r chi.Router) {
			r.Get("/", h.ListStores)
			r.Get("/{code}", h.GetStore)
		})

		r.Route("/scenarios", func(r chi.Router) {
			r.Get("/", h.ListScenarios)
			r.Get("/current", h.GetCurrentScenario)
			r.Post("/load", h.LoadScenario)
		})
	})

	// Prometheus exposition
	r.Method(http.MethodGet, "/metrics", h.metrics.Handler())

	// Welcome page
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{
			"message": "Welcome to the Delivery Time API. See /api/delivery-times.",
		})
	})

	return r
}
