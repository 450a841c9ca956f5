// Package handlers provides HTTP handlers for asset catalog and price
// series operations.
package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/aristath/volcast/internal/domain"
	"github.com/aristath/volcast/internal/modules/marketdata"
)

// PriceProvider is the slice of the market data service the handlers use.
type PriceProvider interface {
	GetPriceSeries(ctx context.Context, req domain.AnalysisRequest) (*domain.PriceSeries, error)
	GetReturnSeries(ctx context.Context, req domain.AnalysisRequest) (*domain.ReturnSeries, error)
}

// Handler handles market data HTTP requests
type Handler struct {
	provider PriceProvider
	log      zerolog.Logger
}

// NewHandler creates a new market data handler
func NewHandler(provider PriceProvider, log zerolog.Logger) *Handler {
	return &Handler{
		provider: provider,
		log:      log.With().Str("handler", "marketdata").Logger(),
	}
}

// HandleGetAssets handles GET /api/assets
func (h *Handler) HandleGetAssets(w http.ResponseWriter, r *http.Request) {
	response := map[string]interface{}{
		"data": map[string]interface{}{
			"assets": marketdata.Catalog,
			"count":  len(marketdata.Catalog),
		},
		"metadata": map[string]interface{}{
			"timestamp": time.Now().Format(time.RFC3339),
		},
	}
	h.writeJSON(w, http.StatusOK, response)
}

// HandleGetPrices handles GET /api/assets/{symbol}/prices
func (h *Handler) HandleGetPrices(w http.ResponseWriter, r *http.Request, symbol string) {
	req, err := requestFromQuery(r, symbol)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	series, err := h.provider.GetPriceSeries(r.Context(), req)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	response := map[string]interface{}{
		"data": map[string]interface{}{
			"symbol":       series.Symbol,
			"observations": series.Len(),
			"points":       series.Points,
		},
		"metadata": map[string]interface{}{
			"timestamp": time.Now().Format(time.RFC3339),
			"years":     req.Years,
		},
	}
	h.writeJSON(w, http.StatusOK, response)
}

// HandleGetReturns handles GET /api/assets/{symbol}/returns
func (h *Handler) HandleGetReturns(w http.ResponseWriter, r *http.Request, symbol string) {
	req, err := requestFromQuery(r, symbol)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	returns, err := h.provider.GetReturnSeries(r.Context(), req)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	response := map[string]interface{}{
		"data": map[string]interface{}{
			"symbol":       returns.Symbol,
			"method":       returns.Method,
			"observations": returns.Len(),
			"points":       returns.Points,
		},
		"metadata": map[string]interface{}{
			"timestamp": time.Now().Format(time.RFC3339),
			"years":     req.Years,
		},
	}
	h.writeJSON(w, http.StatusOK, response)
}

// requestFromQuery builds a validated analysis request from query params.
func requestFromQuery(r *http.Request, symbol string) (domain.AnalysisRequest, error) {
	q := r.URL.Query()
	req := domain.NewAnalysisRequest(
		symbol,
		atoiOrZero(q.Get("years")),
		atoiOrZero(q.Get("horizon")),
		atoiOrZero(q.Get("window")),
		domain.ReturnMethod(q.Get("method")),
	)
	return req, req.Validate()
}

func atoiOrZero(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}

// writeServiceError maps pipeline errors onto HTTP statuses: provider
// failures are upstream errors, short series are unprocessable input.
func (h *Handler) writeServiceError(w http.ResponseWriter, err error) {
	var insufficientErr *domain.InsufficientDataError
	switch {
	case errors.Is(err, domain.ErrDataUnavailable):
		h.log.Warn().Err(err).Msg("Market data unavailable")
		http.Error(w, err.Error(), http.StatusBadGateway)
	case errors.As(err, &insufficientErr):
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
	default:
		h.log.Error().Err(err).Msg("Failed to get price series")
		http.Error(w, "Failed to get price series", http.StatusInternalServerError)
	}
}

// writeJSON writes a JSON response
func (h *Handler) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}
