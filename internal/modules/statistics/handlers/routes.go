package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers all statistics routes
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/statistics/{symbol}", func(r chi.Router) {
		r.Get("/summary", func(w http.ResponseWriter, r *http.Request) {
			h.HandleGetSummary(w, r, chi.URLParam(r, "symbol"))
		})
		r.Get("/acf", func(w http.ResponseWriter, r *http.Request) {
			h.HandleGetACF(w, r, chi.URLParam(r, "symbol"))
		})
	})
}
