package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"scicalc/internal/api"
	"scicalc/internal/handlers"
	"scicalc/internal/observability"
)

// NewRouter assembles the HTTP surface: observability middleware, health and
// metrics endpoints, and the calculator API.
func NewRouter(h *api.Handler) http.Handler {

	r := chi.NewRouter()

	r.Use(observability.RequestIDMiddleware)
	r.Use(observability.TracingMiddleware)
	r.Use(observability.LoggingMiddleware)

	r.Get("/health", handlers.Health)

	r.Handle("/metrics", observability.PrometheusHandler())

	h.RegisterRoutes(r)

	return r
}
