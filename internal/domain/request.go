package domain

import (
	"fmt"

	"github.com/google/uuid"
)

// Default analysis parameters, matching the dashboard's slider defaults.
const (
	DefaultYears   = 3
	DefaultHorizon = 20
	DefaultWindow  = 20
	MaxYears       = 10
	MaxHorizon     = 60
)

// AnalysisRequest is the request-scoped configuration passed through the
// pipeline. Every user interaction builds one; nothing about the selected
// asset or horizon lives in ambient state.
type AnalysisRequest struct {
	ID      uuid.UUID    `json:"id"`
	Symbol  string       `json:"symbol"`
	Years   int          `json:"years"`
	Horizon int          `json:"horizon"`
	Window  int          `json:"window"`
	Method  ReturnMethod `json:"method"`
}

// NewAnalysisRequest builds a request with defaults filled in for any
// non-positive parameter.
func NewAnalysisRequest(symbol string, years, horizon, window int, method ReturnMethod) AnalysisRequest {
	if years <= 0 {
		years = DefaultYears
	}
	if horizon <= 0 {
		horizon = DefaultHorizon
	}
	if window <= 0 {
		window = DefaultWindow
	}
	if method == "" {
		method = ReturnLog
	}

	return AnalysisRequest{
		ID:      uuid.New(),
		Symbol:  symbol,
		Years:   years,
		Horizon: horizon,
		Window:  window,
		Method:  method,
	}
}

// Validate checks request parameters against their allowed ranges.
func (r AnalysisRequest) Validate() error {
	if r.Symbol == "" {
		return fmt.Errorf("symbol cannot be empty")
	}
	if r.Years < 1 || r.Years > MaxYears {
		return fmt.Errorf("years must be between 1 and %d, got %d", MaxYears, r.Years)
	}
	if r.Horizon < 1 || r.Horizon > MaxHorizon {
		return fmt.Errorf("horizon must be between 1 and %d, got %d", MaxHorizon, r.Horizon)
	}
	if r.Window < 2 {
		return fmt.Errorf("rolling window must be at least 2, got %d", r.Window)
	}
	if r.Method != ReturnLog && r.Method != ReturnSimple {
		return fmt.Errorf("unknown return method: %s", r.Method)
	}
	return nil
}
