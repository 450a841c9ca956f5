// Package handlers provides HTTP handlers for volatility model fitting and
// forecasting.
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
	"github.com/aristath/volcast/internal/modules/volatility"
)

// ReturnProvider supplies return series for a request.
type ReturnProvider interface {
	GetReturnSeries(ctx context.Context, req domain.AnalysisRequest) (*domain.ReturnSeries, error)
}

// Handler handles volatility model HTTP requests
type Handler struct {
	provider ReturnProvider
	models   *volatility.Service
	log      zerolog.Logger
}

// NewHandler creates a new volatility handler
func NewHandler(provider ReturnProvider, models *volatility.Service, log zerolog.Logger) *Handler {
	return &Handler{
		provider: provider,
		models:   models,
		log:      log.With().Str("handler", "volatility").Logger(),
	}
}

// HandleGetGARCH handles GET /api/models/{symbol}/garch
func (h *Handler) HandleGetGARCH(w http.ResponseWriter, r *http.Request, symbol string) {
	h.handleAnalyze(w, r, symbol, volatility.GARCH)
}

// HandleGetEGARCH handles GET /api/models/{symbol}/egarch
func (h *Handler) HandleGetEGARCH(w http.ResponseWriter, r *http.Request, symbol string) {
	h.handleAnalyze(w, r, symbol, volatility.EGARCH)
}

func (h *Handler) handleAnalyze(w http.ResponseWriter, r *http.Request, symbol string, kind volatility.ModelKind) {
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

	analysis, err := h.models.Analyze(returns, kind, req.Horizon)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	response := map[string]interface{}{
		"data": map[string]interface{}{
			"symbol":   symbol,
			"model":    analysis.Model,
			"forecast": analysis.Forecast,
		},
		"metadata": map[string]interface{}{
			"timestamp": time.Now().Format(time.RFC3339),
			"request":   req,
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

// writeServiceError maps pipeline errors onto HTTP statuses. A model that
// fails to converge on valid input is unprocessable, not a server fault.
func (h *Handler) writeServiceError(w http.ResponseWriter, err error) {
	var (
		insufficientErr *domain.InsufficientDataError
		fitErr          *domain.ModelFitError
	)
	switch {
	case errors.Is(err, domain.ErrDataUnavailable):
		h.log.Warn().Err(err).Msg("Market data unavailable")
		http.Error(w, err.Error(), http.StatusBadGateway)
	case errors.As(err, &insufficientErr):
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
	case errors.As(err, &fitErr):
		h.log.Warn().Err(err).Msg("Model fit failed")
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
	default:
		h.log.Error().Err(err).Msg("Model analysis failed")
		http.Error(w, "Model analysis failed", http.StatusInternalServerError)
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
