package handlers

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers all signal routes
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/api/signal", func(r chi.Router) {
		r.Get("/thresholds", h.HandleGetThresholds)
		r.Get("/{symbol}", h.HandleGetSignal)
	})

	r.Get("/api/metrics/{symbol}", h.HandleGetMetrics)
}
