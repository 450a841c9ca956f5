// Package volatility implements conditional-volatility model estimation:
// GARCH(1,1) and EGARCH(1,1) fitted by maximum likelihood, with multi-step
// variance forecasts.
package volatility

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// ModelKind identifies a conditional-volatility model family.
type ModelKind string

const (
	GARCH  ModelKind = "GARCH(1,1)"
	EGARCH ModelKind = "EGARCH(1,1)"
)

// Params holds the estimated coefficients. Gamma is the asymmetry term and is
// only meaningful for EGARCH; a negative value means negative returns raise
// volatility more than positive ones of the same size.
type Params struct {
	Omega float64 `json:"omega"`
	Alpha float64 `json:"alpha"`
	Beta  float64 `json:"beta"`
	Gamma float64 `json:"gamma,omitempty"`
}

// FittedModel is the result of a maximum-likelihood fit on a return series.
// ConditionalVariance has one entry per return observation, in squared
// percent units.
type FittedModel struct {
	Kind                ModelKind `json:"kind"`
	Params              Params    `json:"params"`
	StdErrors           Params    `json:"std_errors"`
	LogLikelihood       float64   `json:"log_likelihood"`
	AIC                 float64   `json:"aic"`
	BIC                 float64   `json:"bic"`
	Persistence         float64   `json:"persistence"`
	Observations        int       `json:"observations"`
	Converged           bool      `json:"converged"`
	ConditionalVariance []float64 `json:"-"`

	// Final-observation state needed to seed forecasts.
	lastResidual float64
	lastVariance float64
}

// NumParams returns the parameter count used for the AIC and BIC penalties.
func (m *FittedModel) NumParams() int {
	if m.Kind == EGARCH {
		return 4
	}
	return 3
}

// LastVolatility returns the final conditional volatility, in percent.
func (m *FittedModel) LastVolatility() float64 {
	return math.Sqrt(m.lastVariance)
}

// infoCriteria computes AIC and BIC from the log-likelihood.
func infoCriteria(logLik float64, numParams, numObs int) (aic, bic float64) {
	k := float64(numParams)
	aic = 2*k - 2*logLik
	bic = k*math.Log(float64(numObs)) - 2*logLik
	return aic, bic
}

// demean centers a return series on its sample mean; GARCH-family models are
// fitted on the mean-adjusted residuals.
func demean(returns []float64) []float64 {
	var mean float64
	for _, r := range returns {
		mean += r
	}
	mean /= float64(len(returns))

	eps := make([]float64, len(returns))
	for i, r := range returns {
		eps[i] = r - mean
	}
	return eps
}

// sampleVariance is the biased sample variance used to seed the variance
// recursion, matching the usual backcast convention.
func sampleVariance(eps []float64) float64 {
	var ss float64
	for _, e := range eps {
		ss += e * e
	}
	return ss / float64(len(eps))
}

// stdErrors estimates parameter standard errors from the inverse of the
// numerical Hessian of the negative log-likelihood at the optimum. Entries
// are NaN when the Hessian is not positive definite there.
func stdErrors(negLogLik func(x []float64) float64, xOpt []float64) []float64 {
	n := len(xOpt)
	se := make([]float64, n)
	for i := range se {
		se[i] = math.NaN()
	}

	hess := mat.NewSymDense(n, nil)
	f0 := negLogLik(xOpt)
	for i := 0; i < n; i++ {
		hi := stepSize(xOpt[i])
		for j := i; j < n; j++ {
			hj := stepSize(xOpt[j])

			if i == j {
				xp := perturb(xOpt, i, hi)
				xm := perturb(xOpt, i, -hi)
				hess.SetSym(i, i, (negLogLik(xp)-2*f0+negLogLik(xm))/(hi*hi))
				continue
			}

			xpp := perturb(perturb(xOpt, i, hi), j, hj)
			xpm := perturb(perturb(xOpt, i, hi), j, -hj)
			xmp := perturb(perturb(xOpt, i, -hi), j, hj)
			xmm := perturb(perturb(xOpt, i, -hi), j, -hj)
			hess.SetSym(i, j, (negLogLik(xpp)-negLogLik(xpm)-negLogLik(xmp)+negLogLik(xmm))/(4*hi*hj))
		}
	}

	var chol mat.Cholesky
	if !chol.Factorize(hess) {
		return se
	}

	var inv mat.SymDense
	if err := chol.InverseTo(&inv); err != nil {
		return se
	}

	for i := 0; i < n; i++ {
		if v := inv.At(i, i); v > 0 {
			se[i] = math.Sqrt(v)
		}
	}
	return se
}

func stepSize(x float64) float64 {
	return 1e-4 * math.Max(math.Abs(x), 1.0)
}

func perturb(x []float64, i int, h float64) []float64 {
	out := make([]float64, len(x))
	copy(out, x)
	out[i] += h
	return out
}
