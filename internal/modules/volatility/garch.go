package volatility

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/optimize"
)

const (
	log2Pi = 1.8378770664093453

	// maxPersistence bounds alpha+beta away from the unit root during the
	// search; fits that land on the cap are rejected as non-stationary.
	maxPersistence = 0.999

	minOmega      = 1e-8
	penaltyWeight = 1e6
)

// garchLik is the Gaussian quasi-likelihood of a GARCH(1,1) process on a
// demeaned return series. The variance recursion is seeded with the sample
// variance backcast.
type garchLik struct {
	eps []float64
	h0  float64
}

// negLogLik evaluates the exact negative log-likelihood at feasible
// parameters (omega, alpha, beta).
func (l *garchLik) negLogLik(omega, alpha, beta float64) float64 {
	h := l.h0
	nll := 0.0
	for t, e := range l.eps {
		if t > 0 {
			prev := l.eps[t-1]
			h = omega + alpha*prev*prev + beta*h
		}
		if h <= 0 || math.IsNaN(h) || math.IsInf(h, 0) {
			return 1e10
		}
		nll += 0.5 * (log2Pi + math.Log(h) + e*e/h)
	}
	return nll
}

// project clamps the parameter vector to the feasible region and returns the
// squared projection distance for the penalty term.
func (l *garchLik) project(x []float64) (omega, alpha, beta, dist float64) {
	omega = math.Max(x[0], minOmega)
	alpha = math.Min(math.Max(x[1], 0), maxPersistence)
	beta = math.Min(math.Max(x[2], 0), maxPersistence)

	if s := alpha + beta; s >= maxPersistence {
		scale := maxPersistence / s
		alpha *= scale
		beta *= scale
	}

	dist = (x[0]-omega)*(x[0]-omega) + (x[1]-alpha)*(x[1]-alpha) + (x[2]-beta)*(x[2]-beta)
	return omega, alpha, beta, dist
}

// objective is the penalized function handed to the optimizer: likelihood at
// the projected point plus a quadratic penalty on the projection distance.
func (l *garchLik) objective(x []float64) float64 {
	omega, alpha, beta, dist := l.project(x)
	return l.negLogLik(omega, alpha, beta) + penaltyWeight*dist
}

// variances runs the fitted recursion over the sample, one entry per
// observation.
func (l *garchLik) variances(omega, alpha, beta float64) []float64 {
	h := make([]float64, len(l.eps))
	h[0] = l.h0
	for t := 1; t < len(l.eps); t++ {
		prev := l.eps[t-1]
		h[t] = omega + alpha*prev*prev + beta*h[t-1]
	}
	return h
}

// fitGARCH estimates a GARCH(1,1) model on a percent return series by
// maximum likelihood.
func fitGARCH(returns []float64) (*FittedModel, error) {
	n := len(returns)
	if n < 2 {
		return nil, fmt.Errorf("too few observations: %d", n)
	}

	eps := demean(returns)
	h0 := sampleVariance(eps)
	if h0 <= 0 {
		return nil, fmt.Errorf("zero-variance series")
	}

	lik := &garchLik{eps: eps, h0: h0}
	problem := optimize.Problem{Func: lik.objective}

	// Start at the textbook persistent regime with omega scaled so the
	// implied unconditional variance matches the sample.
	initial := []float64{0.05 * h0, 0.1, 0.85}

	result, err := minimizeWithFallback(problem, initial)
	if err != nil {
		return nil, err
	}

	// The projection caps alpha+beta at maxPersistence, so a sum at the cap
	// means the optimum pressed against the unit root.
	omega, alpha, beta, _ := lik.project(result.X)
	if alpha+beta >= maxPersistence {
		return nil, fmt.Errorf("non-stationary fit: alpha+beta=%.4f", alpha+beta)
	}

	h := lik.variances(omega, alpha, beta)
	logLik := -lik.negLogLik(omega, alpha, beta)
	aic, bic := infoCriteria(logLik, 3, n)

	se := stdErrors(func(x []float64) float64 {
		return lik.negLogLik(math.Max(x[0], minOmega), math.Max(x[1], 0), math.Max(x[2], 0))
	}, []float64{omega, alpha, beta})

	return &FittedModel{
		Kind:                GARCH,
		Params:              Params{Omega: omega, Alpha: alpha, Beta: beta},
		StdErrors:           Params{Omega: se[0], Alpha: se[1], Beta: se[2]},
		LogLikelihood:       logLik,
		AIC:                 aic,
		BIC:                 bic,
		Persistence:         alpha + beta,
		Observations:        n,
		Converged:           true,
		ConditionalVariance: h,
		lastResidual:        eps[n-1],
		lastVariance:        h[n-1],
	}, nil
}

// minimizeWithFallback runs Nelder-Mead and retries with BFGS when the
// simplex does not reach an acceptable status.
func minimizeWithFallback(problem optimize.Problem, initial []float64) (*optimize.Result, error) {
	successStatuses := map[optimize.Status]bool{
		optimize.Success:             true,
		optimize.GradientThreshold:   true,
		optimize.FunctionConvergence: true,
	}

	result, err := optimize.Minimize(problem, initial, &optimize.Settings{}, &optimize.NelderMead{})
	if err == nil && successStatuses[result.Status] {
		return result, nil
	}

	result, err = optimize.Minimize(problem, initial, &optimize.Settings{}, &optimize.BFGS{})
	if err != nil {
		return nil, fmt.Errorf("optimization failed: %w", err)
	}
	if !successStatuses[result.Status] {
		return nil, fmt.Errorf("optimization did not converge: status=%v", result.Status)
	}
	return result, nil
}
