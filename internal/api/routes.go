package api

import "github.com/go-chi/chi/v5"

// RegisterRoutes mounts all calculator endpoints onto the given router
// under the /calculator prefix.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/calculator", func(r chi.Router) {
		r.Post("/basic", h.Basic)
		r.Post("/scientific", h.Scientific)
		r.Post("/expression", h.Expression)
		r.Post("/memory", h.Memory)
		r.Post("/undo", h.Undo)
		r.Post("/redo", h.Redo)
		r.Post("/reset", h.Reset)
		r.Get("/state", h.State)
		r.Get("/history", h.History)
		r.Get("/statistics", h.Statistics)
	})
}
