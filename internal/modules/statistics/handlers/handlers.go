// Package handlers provides HTTP handlers for descriptive statistics
// operations.
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
	"github.com/aristath/volcast/internal/modules/statistics"
)

// ReturnProvider supplies return series for a request.
type ReturnProvider interface {
	GetReturnSeries(ctx context.Context, req domain.AnalysisRequest) (*domain.ReturnSeries, error)
}

// Handler handles statistics HTTP requests
type Handler struct {
	provider ReturnProvider
	stats    *statistics.Service
	log      zerolog.Logger
}

// NewHandler creates a new statistics handler
func NewHandler(provider ReturnProvider, stats *statistics.Service, log zerolog.Logger) *Handler {
	return &Handler{
		provider: provider,
		stats:    stats,
		log:      log.With().Str("handler", "statistics").Logger(),
	}
}

// HandleGetSummary handles GET /api/statistics/{symbol}/summary
func (h *Handler) HandleGetSummary(w http.ResponseWriter, r *http.Request, symbol string) {
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
			"symbol":      returns.Symbol,
			"method":      returns.Method,
			"summary":     h.stats.Summarize(returns),
			"rolling_vol": h.stats.RollingVolatility(returns, req.Window),
		},
		"metadata": map[string]interface{}{
			"timestamp": time.Now().Format(time.RFC3339),
			"window":    req.Window,
			"years":     req.Years,
		},
	}
	h.writeJSON(w, http.StatusOK, response)
}

// HandleGetACF handles GET /api/statistics/{symbol}/acf
func (h *Handler) HandleGetACF(w http.ResponseWriter, r *http.Request, symbol string) {
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

	lags := atoiOrZero(r.URL.Query().Get("lags"))
	acf := h.stats.Autocorrelations(returns, lags)

	response := map[string]interface{}{
		"data": map[string]interface{}{
			"symbol": returns.Symbol,
			"acf":    acf,
		},
		"metadata": map[string]interface{}{
			"timestamp": time.Now().Format(time.RFC3339),
		},
	}
	h.writeJSON(w, http.StatusOK, response)
}

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

func (h *Handler) writeServiceError(w http.ResponseWriter, err error) {
	var insufficientErr *domain.InsufficientDataError
	switch {
	case errors.Is(err, domain.ErrDataUnavailable):
		h.log.Warn().Err(err).Msg("Market data unavailable")
		http.Error(w, err.Error(), http.StatusBadGateway)
	case errors.As(err, &insufficientErr):
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
	default:
		h.log.Error().Err(err).Msg("Failed to get return series")
		http.Error(w, "Failed to get return series", http.StatusInternalServerError)
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
