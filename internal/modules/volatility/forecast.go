package volatility

import (
	"fmt"
	"math"

	"github.com/aristath/volcast/pkg/formulas"
)

// ForecastPoint is one step of a variance forecast. Volatility is in
// percent; AnnualizedVol scales it by sqrt(252).
type ForecastPoint struct {
	Step          int     `json:"step"`
	Variance      float64 `json:"variance"`
	Volatility    float64 `json:"volatility"`
	AnnualizedVol float64 `json:"annualized_vol"`
}

// ForecastResult holds a multi-step variance forecast. Fallback is set when
// the analytic recursion produced a degenerate path and a flat persistence
// of the last conditional variance was used instead.
type ForecastResult struct {
	Kind     ModelKind       `json:"kind"`
	Horizon  int             `json:"horizon"`
	Fallback bool            `json:"fallback"`
	Points   []ForecastPoint `json:"points"`
}

// forecast produces an h-step variance forecast from a fitted model using
// the analytic recursion of its family, falling back to flat persistence of
// the last in-sample variance when the recursion degenerates.
func forecast(m *FittedModel, horizon int) (*ForecastResult, error) {
	if horizon < 1 {
		return nil, fmt.Errorf("horizon must be positive, got %d", horizon)
	}

	var variances []float64
	switch m.Kind {
	case GARCH:
		variances = garchPath(m, horizon)
	case EGARCH:
		variances = egarchPath(m, horizon)
	default:
		return nil, fmt.Errorf("unknown model kind %q", m.Kind)
	}

	fallback := false
	for _, v := range variances {
		if v <= 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			fallback = true
			break
		}
	}
	if fallback {
		for i := range variances {
			variances[i] = m.lastVariance
		}
	}

	points := make([]ForecastPoint, horizon)
	for i, v := range variances {
		vol := math.Sqrt(v)
		points[i] = ForecastPoint{
			Step:          i + 1,
			Variance:      v,
			Volatility:    vol,
			AnnualizedVol: vol * math.Sqrt(formulas.TradingDaysPerYear),
		}
	}

	return &ForecastResult{Kind: m.Kind, Horizon: horizon, Fallback: fallback, Points: points}, nil
}

// garchPath applies the GARCH recursion forward: the first step uses the
// last residual and variance, later steps collapse to the persistence form
// h_{t+k} = omega + (alpha+beta) h_{t+k-1}.
func garchPath(m *FittedModel, horizon int) []float64 {
	p := m.Params
	out := make([]float64, horizon)
	out[0] = p.Omega + p.Alpha*m.lastResidual*m.lastResidual + p.Beta*m.lastVariance
	for k := 1; k < horizon; k++ {
		out[k] = p.Omega + (p.Alpha+p.Beta)*out[k-1]
	}
	return out
}

// egarchPath applies the EGARCH recursion forward in log-variance. The first
// step uses the last standardized residual; later steps use that the news
// term has zero mean under normality, leaving log h_{t+k} = omega + beta
// log h_{t+k-1}.
func egarchPath(m *FittedModel, horizon int) []float64 {
	p := m.Params
	out := make([]float64, horizon)

	z := m.lastResidual / math.Sqrt(m.lastVariance)
	logH := p.Omega + p.Alpha*(math.Abs(z)-absZMean) + p.Gamma*z + p.Beta*math.Log(m.lastVariance)
	out[0] = math.Exp(logH)
	for k := 1; k < horizon; k++ {
		logH = p.Omega + p.Beta*logH
		out[k] = math.Exp(logH)
	}
	return out
}
