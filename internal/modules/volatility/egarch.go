package volatility

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/optimize"
)

// absZMean is E[|z|] for a standard normal, the centering constant of the
// EGARCH news term.
var absZMean = math.Sqrt(2 / math.Pi)

// egarchLik is the Gaussian quasi-likelihood of an EGARCH(1,1) process:
//
//	log h_t = omega + alpha*(|z_{t-1}| - E|z|) + gamma*z_{t-1} + beta*log h_{t-1}
//
// with z_t the standardized residual. The log-variance recursion is seeded
// with the log of the sample variance backcast.
type egarchLik struct {
	eps []float64
	h0  float64
}

// negLogLik evaluates the exact negative log-likelihood at parameters
// (omega, alpha, gamma, beta).
func (l *egarchLik) negLogLik(omega, alpha, gamma, beta float64) float64 {
	logH := math.Log(l.h0)
	nll := 0.0
	for t, e := range l.eps {
		if t > 0 {
			prevH := math.Exp(logH)
			z := l.eps[t-1] / math.Sqrt(prevH)
			logH = omega + alpha*(math.Abs(z)-absZMean) + gamma*z + beta*logH
		}
		if math.IsNaN(logH) || logH > 700 || logH < -700 {
			return 1e10
		}
		h := math.Exp(logH)
		nll += 0.5 * (log2Pi + logH + e*e/h)
	}
	return nll
}

// project clamps the parameter vector to the feasible region. Stationarity
// in log-variance only requires |beta| < 1; the news coefficients are kept
// in a loose box to stop the simplex from wandering.
func (l *egarchLik) project(x []float64) (omega, alpha, gamma, beta, dist float64) {
	omega = math.Min(math.Max(x[0], -10), 10)
	alpha = math.Min(math.Max(x[1], -2), 2)
	gamma = math.Min(math.Max(x[2], -2), 2)
	beta = math.Min(math.Max(x[3], -maxPersistence), maxPersistence)

	dist = (x[0]-omega)*(x[0]-omega) + (x[1]-alpha)*(x[1]-alpha) +
		(x[2]-gamma)*(x[2]-gamma) + (x[3]-beta)*(x[3]-beta)
	return omega, alpha, gamma, beta, dist
}

func (l *egarchLik) objective(x []float64) float64 {
	omega, alpha, gamma, beta, dist := l.project(x)
	return l.negLogLik(omega, alpha, gamma, beta) + penaltyWeight*dist
}

// variances runs the fitted recursion over the sample, one entry per
// observation.
func (l *egarchLik) variances(omega, alpha, gamma, beta float64) []float64 {
	h := make([]float64, len(l.eps))
	logH := math.Log(l.h0)
	h[0] = l.h0
	for t := 1; t < len(l.eps); t++ {
		z := l.eps[t-1] / math.Sqrt(h[t-1])
		logH = omega + alpha*(math.Abs(z)-absZMean) + gamma*z + beta*logH
		h[t] = math.Exp(logH)
	}
	return h
}

// fitEGARCH estimates an EGARCH(1,1) model on a percent return series by
// maximum likelihood. A negative gamma indicates the leverage effect.
func fitEGARCH(returns []float64) (*FittedModel, error) {
	n := len(returns)
	if n < 2 {
		return nil, fmt.Errorf("too few observations: %d", n)
	}

	eps := demean(returns)
	h0 := sampleVariance(eps)
	if h0 <= 0 {
		return nil, fmt.Errorf("zero-variance series")
	}

	lik := &egarchLik{eps: eps, h0: h0}
	problem := optimize.Problem{Func: lik.objective}

	// Start near a persistent regime with omega set so the implied
	// unconditional log-variance matches the sample.
	beta0 := 0.9
	initial := []float64{(1 - beta0) * math.Log(h0), 0.1, -0.05, beta0}

	result, err := minimizeWithFallback(problem, initial)
	if err != nil {
		return nil, err
	}

	omega, alpha, gamma, beta, _ := lik.project(result.X)
	if math.Abs(beta) >= 1 {
		return nil, fmt.Errorf("non-stationary fit: |beta|=%.4f", math.Abs(beta))
	}

	h := lik.variances(omega, alpha, gamma, beta)
	logLik := -lik.negLogLik(omega, alpha, gamma, beta)
	aic, bic := infoCriteria(logLik, 4, n)

	se := stdErrors(func(x []float64) float64 {
		return lik.negLogLik(x[0], x[1], x[2], x[3])
	}, []float64{omega, alpha, gamma, beta})

	return &FittedModel{
		Kind:                EGARCH,
		Params:              Params{Omega: omega, Alpha: alpha, Beta: beta, Gamma: gamma},
		StdErrors:           Params{Omega: se[0], Alpha: se[1], Beta: se[3], Gamma: se[2]},
		LogLikelihood:       logLik,
		AIC:                 aic,
		BIC:                 bic,
		Persistence:         math.Abs(beta),
		Observations:        n,
		Converged:           true,
		ConditionalVariance: h,
		lastResidual:        eps[n-1],
		lastVariance:        h[n-1],
	}, nil
}
