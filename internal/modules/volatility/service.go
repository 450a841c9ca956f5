package volatility

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/aristath/volcast/internal/domain"
)

// Service estimates conditional-volatility models and produces forecasts.
// Fit failures are reported per model so one family failing never blocks
// the other on the same series.
type Service struct {
	log zerolog.Logger
}

// NewService creates a new volatility service
func NewService(log zerolog.Logger) *Service {
	return &Service{log: log.With().Str("service", "volatility").Logger()}
}

// Fit estimates the requested model family on a return series.
func (s *Service) Fit(rs *domain.ReturnSeries, kind ModelKind) (*FittedModel, error) {
	if rs.Len() < domain.MinObservations {
		return nil, &domain.InsufficientDataError{Symbol: rs.Symbol, Have: rs.Len(), Want: domain.MinObservations}
	}

	var (
		model *FittedModel
		err   error
	)
	switch kind {
	case GARCH:
		model, err = fitGARCH(rs.Values())
	case EGARCH:
		model, err = fitEGARCH(rs.Values())
	default:
		return nil, fmt.Errorf("unknown model kind %q", kind)
	}
	if err != nil {
		s.log.Warn().Err(err).Str("symbol", rs.Symbol).Str("model", string(kind)).Msg("model fit failed")
		return nil, &domain.ModelFitError{Model: string(kind), Err: err}
	}

	s.log.Debug().
		Str("symbol", rs.Symbol).
		Str("model", string(kind)).
		Float64("log_likelihood", model.LogLikelihood).
		Float64("persistence", model.Persistence).
		Msg("model fitted")

	return model, nil
}

// Forecast produces a multi-step variance forecast from a fitted model.
func (s *Service) Forecast(model *FittedModel, horizon int) (*ForecastResult, error) {
	result, err := forecast(model, horizon)
	if err != nil {
		return nil, &domain.ModelFitError{Model: string(model.Kind), Err: err}
	}
	if result.Fallback {
		s.log.Warn().Str("model", string(model.Kind)).Int("horizon", horizon).
			Msg("analytic forecast degenerated, using flat persistence")
	}
	return result, nil
}

// Analysis bundles a fitted model with its forecast.
type Analysis struct {
	Model    *FittedModel    `json:"model"`
	Forecast *ForecastResult `json:"forecast"`
}

// Analyze fits the requested model and forecasts over the horizon in one
// step.
func (s *Service) Analyze(rs *domain.ReturnSeries, kind ModelKind, horizon int) (*Analysis, error) {
	model, err := s.Fit(rs, kind)
	if err != nil {
		return nil, err
	}
	fc, err := s.Forecast(model, horizon)
	if err != nil {
		return nil, err
	}
	return &Analysis{Model: model, Forecast: fc}, nil
}
