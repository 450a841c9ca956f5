package formulas

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnnualizedVolatility_ExactScaling(t *testing.T) {
	// Annualized volatility must equal daily std dev × sqrt(252) exactly,
	// for any series.
	cases := [][]float64{
		{0.5, -0.3, 1.2, -0.8, 0.1},
		{1, 2, 3, 4, 5, 6, 7, 8},
		{-2.5, 3.1, 0.0, 0.7, -1.1, 2.2},
	}

	for _, returns := range cases {
		expected := StdDev(returns) * math.Sqrt(252)
		assert.Equal(t, expected, AnnualizedVolatility(returns))
	}
}

func TestStdDev_DegenerateSeries(t *testing.T) {
	assert.Equal(t, 0.0, StdDev(nil))
	assert.Equal(t, 0.0, StdDev([]float64{1.0}))

	// Constant series has zero dispersion, reported as zero rather than NaN.
	constant := []float64{2.0, 2.0, 2.0, 2.0}
	assert.Equal(t, 0.0, StdDev(constant))
	assert.Equal(t, 0.0, Skewness(constant))
	assert.Equal(t, 0.0, ExcessKurtosis(constant))
}

func TestMean(t *testing.T) {
	assert.Equal(t, 0.0, Mean(nil))
	assert.InDelta(t, 2.0, Mean([]float64{1, 2, 3}), 1e-12)
}

func TestRollingVolatility_Alignment(t *testing.T) {
	returns := []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}
	window := 4

	rolling := RollingVolatility(returns, window)
	require.Len(t, rolling, len(returns)-window+1)

	// Every complete window of a strictly increasing arithmetic sequence has
	// the same dispersion.
	for i := 1; i < len(rolling); i++ {
		assert.InDelta(t, rolling[0], rolling[i], 1e-9)
	}
}

func TestRollingVolatility_MatchesSampleStdDev(t *testing.T) {
	returns := []float64{0.5, -0.3, 1.2, -0.8, 0.1, 2.2, -1.1}
	window := 4

	rolling := RollingVolatility(returns, window)
	require.Len(t, rolling, len(returns)-window+1)

	for i, v := range rolling {
		assert.InDelta(t, StdDev(returns[i:i+window]), v, 1e-9)
	}
}

func TestRollingVolatility_ShortSeries(t *testing.T) {
	assert.Nil(t, RollingVolatility([]float64{1, 2}, 5))
	assert.Nil(t, RollingVolatility(nil, 20))
}

func TestAutocorrelation_WhiteNoiseVsPersistent(t *testing.T) {
	// Perfectly alternating series has strong negative lag-1 autocorrelation.
	alternating := make([]float64, 200)
	for i := range alternating {
		if i%2 == 0 {
			alternating[i] = 1
		} else {
			alternating[i] = -1
		}
	}

	acf := Autocorrelation(alternating, 3)
	require.Len(t, acf, 3)
	assert.Less(t, acf[0], -0.9)
	assert.Greater(t, acf[1], 0.9)
}

func TestAutocorrelation_DegenerateSeries(t *testing.T) {
	acf := Autocorrelation([]float64{5, 5, 5, 5}, 4)
	require.Len(t, acf, 4)
	for _, v := range acf {
		assert.Equal(t, 0.0, v)
	}
}

func TestSquare(t *testing.T) {
	assert.Equal(t, []float64{1, 4, 9}, Square([]float64{-1, 2, -3}))
}

func TestCorrelation_LengthMismatch(t *testing.T) {
	assert.Equal(t, 0.0, Correlation([]float64{1, 2}, []float64{1, 2, 3}))
}

func TestCorrelation_Degenerate(t *testing.T) {
	// Constant inputs have no dispersion; report zero, not NaN.
	assert.Equal(t, 0.0, Correlation([]float64{1, 1, 1}, []float64{2, 3, 4}))
}

func TestVariance(t *testing.T) {
	assert.Equal(t, 0.0, Variance([]float64{3.0}))
	data := []float64{0.5, -0.3, 1.2, -0.8, 0.1}
	assert.InDelta(t, StdDev(data)*StdDev(data), Variance(data), 1e-12)
}
