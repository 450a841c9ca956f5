package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers all asset and price series routes
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/assets", func(r chi.Router) {
		r.Get("/", h.HandleGetAssets)
		r.Route("/{symbol}", func(r chi.Router) {
			r.Get("/prices", func(w http.ResponseWriter, r *http.Request) {
				h.HandleGetPrices(w, r, chi.URLParam(r, "symbol"))
			})
			r.Get("/returns", func(w http.ResponseWriter, r *http.Request) {
				h.HandleGetReturns(w, r, chi.URLParam(r, "symbol"))
			})
		})
	})
}
