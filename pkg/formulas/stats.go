// Package formulas provides the statistical primitives used by the analysis
// pipeline. All functions are pure and treat degenerate input (empty or
// constant series) as zero-dispersion rather than an error.
package formulas

import (
	"math"

	"github.com/markcheno/go-talib"
	"gonum.org/v1/gonum/stat"
)

// TradingDaysPerYear is the annualization basis for daily return series.
const TradingDaysPerYear = 252

// Mean calculates the arithmetic mean of a slice of float64 values
func Mean(data []float64) float64 {
	if len(data) == 0 {
		return 0
	}
	return stat.Mean(data, nil)
}

// StdDev calculates the sample standard deviation of a slice of float64 values
func StdDev(data []float64) float64 {
	if len(data) < 2 {
		return 0
	}
	return stat.StdDev(data, nil)
}

// Variance calculates the sample variance of a slice of float64 values
func Variance(data []float64) float64 {
	if len(data) < 2 {
		return 0
	}
	return stat.Variance(data, nil)
}

// Skewness calculates the sample skewness of a slice of float64 values
func Skewness(data []float64) float64 {
	if len(data) < 3 || StdDev(data) == 0 {
		return 0
	}
	return stat.Skew(data, nil)
}

// ExcessKurtosis calculates the excess kurtosis (normal = 0)
func ExcessKurtosis(data []float64) float64 {
	if len(data) < 4 || StdDev(data) == 0 {
		return 0
	}
	return stat.ExKurtosis(data, nil)
}

// AnnualizedVolatility calculates annualized volatility from daily returns.
// Formula: std dev of daily returns × sqrt(252 trading days).
func AnnualizedVolatility(dailyReturns []float64) float64 {
	return StdDev(dailyReturns) * math.Sqrt(TradingDaysPerYear)
}

// RollingVolatility calculates the rolling sample standard deviation of a
// return series over the given window. The result is aligned to the tail of
// the input: entry i covers returns[i : i+window], so the output has
// len(returns)-window+1 entries. Returns nil when the series is shorter than
// the window.
func RollingVolatility(returns []float64, window int) []float64 {
	if window < 2 || len(returns) < window {
		return nil
	}

	// talib emits a full-length series with zeros for the warmup period;
	// drop the first window-1 entries to keep only complete windows.
	// talib's estimator divides by the window, so rescale to the
	// Bessel-corrected form to match StdDev.
	full := talib.StdDev(returns, window, 1.0)
	ddof := math.Sqrt(float64(window) / float64(window-1))
	out := make([]float64, len(full)-window+1)
	for i, v := range full[window-1:] {
		out[i] = v * ddof
	}
	return out
}

// Autocorrelation computes the sample autocorrelation of the series at lags
// 1..maxLag. Lag k uses the standard biased estimator with the overall mean.
// A degenerate series yields all zeros.
func Autocorrelation(data []float64, maxLag int) []float64 {
	acf := make([]float64, maxLag)
	n := len(data)
	if n < 2 || maxLag < 1 {
		return acf
	}

	mean := stat.Mean(data, nil)
	var denom float64
	for _, v := range data {
		denom += (v - mean) * (v - mean)
	}
	if denom == 0 {
		return acf
	}

	for k := 1; k <= maxLag; k++ {
		if k >= n {
			break
		}
		var num float64
		for t := k; t < n; t++ {
			num += (data[t] - mean) * (data[t-k] - mean)
		}
		acf[k-1] = num / denom
	}

	return acf
}

// Square returns the element-wise square of the input, used for volatility
// clustering diagnostics on squared returns.
func Square(data []float64) []float64 {
	out := make([]float64, len(data))
	for i, v := range data {
		out[i] = v * v
	}
	return out
}

// Correlation calculates the Pearson correlation coefficient between two
// datasets. Mismatched lengths and zero-dispersion inputs report zero.
func Correlation(x, y []float64) float64 {
	if len(x) == 0 || len(y) == 0 || len(x) != len(y) {
		return 0
	}
	r := stat.Correlation(x, y, nil)
	if math.IsNaN(r) {
		return 0
	}
	return r
}
