// Package handlers provides the HTTP handler for side-by-side model
// comparison.
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
	"github.com/aristath/volcast/internal/modules/comparison"
	"github.com/aristath/volcast/internal/modules/volatility"
)

// ReturnProvider supplies return series for a request.
type ReturnProvider interface {
	GetReturnSeries(ctx context.Context, req domain.AnalysisRequest) (*domain.ReturnSeries, error)
}

// Handler handles model comparison HTTP requests
type Handler struct {
	provider ReturnProvider
	models   *volatility.Service
	compare  *comparison.Service
	log      zerolog.Logger
}

// NewHandler creates a new comparison handler
func NewHandler(provider ReturnProvider, models *volatility.Service, compare *comparison.Service, log zerolog.Logger) *Handler {
	return &Handler{
		provider: provider,
		models:   models,
		compare:  compare,
		log:      log.With().Str("handler", "comparison").Logger(),
	}
}

// HandleCompare handles GET /api/models/{symbol}/comparison. Both families
// are fitted on the same return series; either fit failing fails the
// comparison as a whole.
func (h *Handler) HandleCompare(w http.ResponseWriter, r *http.Request, symbol string) {
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

	garch, err := h.models.Analyze(returns, volatility.GARCH, req.Horizon)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	egarch, err := h.models.Analyze(returns, volatility.EGARCH, req.Horizon)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	result, err := h.compare.Compare(garch, egarch)
	if err != nil {
		h.log.Error().Err(err).Str("symbol", symbol).Msg("Comparison failed")
		http.Error(w, "Comparison failed", http.StatusInternalServerError)
		return
	}

	response := map[string]interface{}{
		"data": map[string]interface{}{
			"symbol":     symbol,
			"comparison": result,
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
		h.log.Error().Err(err).Msg("Comparison pipeline failed")
		http.Error(w, "Comparison pipeline failed", http.StatusInternalServerError)
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
