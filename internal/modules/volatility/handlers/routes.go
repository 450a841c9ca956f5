package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers all volatility model routes
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/models/{symbol}", func(r chi.Router) {
		r.Get("/garch", func(w http.ResponseWriter, r *http.Request) {
			h.HandleGetGARCH(w, r, chi.URLParam(r, "symbol"))
		})
		r.Get("/egarch", func(w http.ResponseWriter, r *http.Request) {
			h.HandleGetEGARCH(w, r, chi.URLParam(r, "symbol"))
		})
	})
}
