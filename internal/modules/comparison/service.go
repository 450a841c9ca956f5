// Package comparison ranks fitted volatility models by information criteria
// and aligns their forecasts for side-by-side display.
package comparison

import (
	"fmt"
	"math"

	"github.com/rs/zerolog"

	"github.com/aristath/volcast/internal/modules/volatility"
	"github.com/aristath/volcast/pkg/formulas"
)

// Strength grades how decisive the AIC gap between two models is.
type Strength string

const (
	// StrengthStrong means the AIC gap exceeds 10.
	StrengthStrong Strength = "strong"
	// StrengthModerate means the AIC gap is between 5 and 10.
	StrengthModerate Strength = "moderate"
	// StrengthInconclusive means the AIC gap is below 5; the models are
	// statistically indistinguishable.
	StrengthInconclusive Strength = "inconclusive"
)

// AlignedStep pairs both models' forecasts at one horizon step.
// Volatilities are in percent.
type AlignedStep struct {
	Step      int     `json:"step"`
	GARCHVol  float64 `json:"garch_vol"`
	EGARCHVol float64 `json:"egarch_vol"`
}

// Result is the outcome of comparing a GARCH and an EGARCH fit on the same
// series. Preferred is the lower-AIC model even when the gap is
// inconclusive.
type Result struct {
	Preferred      volatility.ModelKind    `json:"preferred"`
	DeltaAIC       float64                 `json:"delta_aic"`
	DeltaBIC       float64                 `json:"delta_bic"`
	Strength       Strength                `json:"strength"`
	BICStrength    Strength                `json:"bic_strength"`
	Recommendation string                  `json:"recommendation"`
	GARCH          *volatility.FittedModel `json:"garch"`
	EGARCH         *volatility.FittedModel `json:"egarch"`
	Forecasts      []AlignedStep           `json:"forecasts"`
	// ForecastCorrelation is the Pearson correlation between the two
	// forecast paths; values near 1 mean the models broadly agree on the
	// volatility trajectory even when the criteria disagree.
	ForecastCorrelation float64 `json:"forecast_correlation"`
}

// Service compares fitted volatility models.
type Service struct {
	log zerolog.Logger
}

// NewService creates a new comparison service
func NewService(log zerolog.Logger) *Service {
	return &Service{log: log.With().Str("service", "comparison").Logger()}
}

// Compare ranks the two analyses by AIC and aligns their forecasts. Both
// fits must have succeeded; a one-sided comparison has no meaning.
func (s *Service) Compare(garch, egarch *volatility.Analysis) (*Result, error) {
	if garch == nil || egarch == nil {
		return nil, fmt.Errorf("both model fits are required for comparison")
	}
	if garch.Forecast.Horizon != egarch.Forecast.Horizon {
		return nil, fmt.Errorf("forecast horizons differ: %d vs %d", garch.Forecast.Horizon, egarch.Forecast.Horizon)
	}

	deltaAIC := math.Abs(garch.Model.AIC - egarch.Model.AIC)
	deltaBIC := math.Abs(garch.Model.BIC - egarch.Model.BIC)

	preferred := volatility.GARCH
	if egarch.Model.AIC < garch.Model.AIC {
		preferred = volatility.EGARCH
	}

	strength := gradeDelta(deltaAIC)

	steps := make([]AlignedStep, len(garch.Forecast.Points))
	garchVols := make([]float64, len(steps))
	egarchVols := make([]float64, len(steps))
	for i, p := range garch.Forecast.Points {
		steps[i] = AlignedStep{
			Step:      p.Step,
			GARCHVol:  p.Volatility,
			EGARCHVol: egarch.Forecast.Points[i].Volatility,
		}
		garchVols[i] = p.Volatility
		egarchVols[i] = egarch.Forecast.Points[i].Volatility
	}

	return &Result{
		Preferred:           preferred,
		DeltaAIC:            deltaAIC,
		DeltaBIC:            deltaBIC,
		Strength:            strength,
		BICStrength:         gradeDelta(deltaBIC),
		Recommendation:      recommendation(preferred, strength, deltaAIC, egarch.Model.Params.Gamma),
		GARCH:               garch.Model,
		EGARCH:              egarch.Model,
		Forecasts:           steps,
		ForecastCorrelation: formulas.Correlation(garchVols, egarchVols),
	}, nil
}

// gradeDelta maps an absolute AIC gap onto an evidence grade. The cutoffs
// follow the usual information-criterion rules of thumb.
func gradeDelta(delta float64) Strength {
	switch {
	case delta > 10:
		return StrengthStrong
	case delta >= 5:
		return StrengthModerate
	default:
		return StrengthInconclusive
	}
}

// recommendation renders a short human-readable verdict.
func recommendation(preferred volatility.ModelKind, strength Strength, delta, gamma float64) string {
	var verdict string
	switch strength {
	case StrengthStrong:
		verdict = fmt.Sprintf("Strong evidence for %s (ΔAIC=%.1f).", preferred, delta)
	case StrengthModerate:
		verdict = fmt.Sprintf("Moderate evidence for %s (ΔAIC=%.1f).", preferred, delta)
	default:
		verdict = fmt.Sprintf("Models are statistically indistinguishable (ΔAIC=%.1f); %s has the marginally lower AIC.", delta, preferred)
	}

	if gamma < 0 {
		verdict += " EGARCH detects a leverage effect: negative returns raise volatility more than positive ones."
	}
	return verdict
}
