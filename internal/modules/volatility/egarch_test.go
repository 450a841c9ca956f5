package volatility

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// simulateEGARCH generates a return series from an EGARCH(1,1) process with
// Gaussian innovations, seeded deterministically.
func simulateEGARCH(n int, omega, alpha, gamma, beta float64, seed int64) []float64 {
	rng := rand.New(rand.NewSource(seed))
	logH := omega / (1 - beta)
	z := 0.0
	returns := make([]float64, n)
	for t := 0; t < n; t++ {
		logH = omega + alpha*(math.Abs(z)-absZMean) + gamma*z + beta*logH
		z = rng.NormFloat64()
		returns[t] = math.Sqrt(math.Exp(logH)) * z
	}
	return returns
}

func TestFitEGARCHLeverageEffect(t *testing.T) {
	// Negative gamma: bad news raises volatility more than good news.
	returns := simulateEGARCH(3000, 0.01, 0.10, -0.15, 0.90, 42)

	model, err := fitEGARCH(returns)
	require.NoError(t, err)

	assert.Equal(t, EGARCH, model.Kind)
	assert.True(t, model.Converged)
	assert.Negative(t, model.Params.Gamma)
	assert.InDelta(t, 0.90, model.Params.Beta, 0.15)
	assert.Less(t, model.Persistence, 1.0)
}

func TestFitEGARCHConditionalVariance(t *testing.T) {
	returns := simulateEGARCH(1000, 0.01, 0.10, -0.10, 0.90, 7)

	model, err := fitEGARCH(returns)
	require.NoError(t, err)

	require.Len(t, model.ConditionalVariance, 1000)
	for _, h := range model.ConditionalVariance {
		assert.Greater(t, h, 0.0)
	}
	assert.Equal(t, 4, model.NumParams())
	assert.InDelta(t, 2*4-2*model.LogLikelihood, model.AIC, 1e-9)
}

func TestFitEGARCHDegenerateSeries(t *testing.T) {
	constant := make([]float64, 100)
	for i := range constant {
		constant[i] = -0.25
	}

	_, err := fitEGARCH(constant)
	assert.Error(t, err)
}

func TestEGARCHLikelihoodPrefersTrueParams(t *testing.T) {
	returns := simulateEGARCH(2000, 0.01, 0.10, -0.15, 0.90, 11)
	eps := demean(returns)
	lik := &egarchLik{eps: eps, h0: sampleVariance(eps)}

	atTruth := lik.negLogLik(0.01, 0.10, -0.15, 0.90)
	atNoise := lik.negLogLik(1.5, 0.8, 0.8, 0.1)

	assert.Less(t, atTruth, atNoise)
}

func TestEGARCHProjectionBounds(t *testing.T) {
	lik := &egarchLik{eps: []float64{1, -1}, h0: 1}

	_, alpha, gamma, beta, dist := lik.project([]float64{0, 5, -5, 1.2})

	assert.Equal(t, 2.0, alpha)
	assert.Equal(t, -2.0, gamma)
	assert.Less(t, beta, 1.0)
	assert.Greater(t, dist, 0.0)
}
