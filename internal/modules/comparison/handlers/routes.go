package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers the model comparison route
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/models/{symbol}/comparison", func(w http.ResponseWriter, r *http.Request) {
		h.HandleCompare(w, r, chi.URLParam(r, "symbol"))
	})
}
