// Package statistics implements the descriptive-statistics stage: return
// moments, rolling realized volatility, and autocorrelation diagnostics.
package statistics

import (
	"math"

	"github.com/rs/zerolog"

	"github.com/aristath/volcast/internal/domain"
	"github.com/aristath/volcast/pkg/formulas"
)

// DefaultACFLags is the lag count used for volatility clustering diagnostics.
const DefaultACFLags = 40

// Summary holds the return moments for a series. Volatilities are in the
// same percent units as the returns.
type Summary struct {
	Observations  int     `json:"observations"`
	Mean          float64 `json:"mean"`
	StdDev        float64 `json:"std_dev"`
	Variance      float64 `json:"variance"`
	AnnualizedVol float64 `json:"annualized_vol"`
	Skewness      float64 `json:"skewness"`
	ExcessKurt    float64 `json:"excess_kurtosis"`
	Min           float64 `json:"min"`
	Max           float64 `json:"max"`
}

// RollingVolPoint is one entry of the rolling realized-volatility sequence.
type RollingVolPoint struct {
	Date       string  `json:"date"` // YYYY-MM-DD
	Volatility float64 `json:"volatility"`
}

// ACF holds autocorrelations of returns and squared returns; large values in
// the squared series indicate volatility clustering.
type ACF struct {
	Lags           int       `json:"lags"`
	Returns        []float64 `json:"returns"`
	SquaredReturns []float64 `json:"squared_returns"`
}

// Service computes descriptive statistics. All methods are pure; degenerate
// series report zero dispersion rather than failing.
type Service struct {
	log zerolog.Logger
}

// NewService creates a new statistics service
func NewService(log zerolog.Logger) *Service {
	return &Service{log: log.With().Str("service", "statistics").Logger()}
}

// Summarize computes the return moments for a series.
func (s *Service) Summarize(rs *domain.ReturnSeries) Summary {
	values := rs.Values()

	summary := Summary{
		Observations:  len(values),
		Mean:          formulas.Mean(values),
		StdDev:        formulas.StdDev(values),
		Variance:      formulas.Variance(values),
		AnnualizedVol: formulas.AnnualizedVolatility(values),
		Skewness:      formulas.Skewness(values),
		ExcessKurt:    formulas.ExcessKurtosis(values),
	}

	if len(values) > 0 {
		summary.Min = math.Inf(1)
		summary.Max = math.Inf(-1)
		for _, v := range values {
			summary.Min = math.Min(summary.Min, v)
			summary.Max = math.Max(summary.Max, v)
		}
	}

	return summary
}

// RollingVolatility computes the rolling realized-volatility sequence over
// the given window, aligned to the tail of the series: entry i is dated at
// the last return of its window. Returns nil for series shorter than the
// window.
func (s *Service) RollingVolatility(rs *domain.ReturnSeries, window int) []RollingVolPoint {
	values := rs.Values()
	rolling := formulas.RollingVolatility(values, window)
	if rolling == nil {
		return nil
	}

	out := make([]RollingVolPoint, len(rolling))
	for i, v := range rolling {
		out[i] = RollingVolPoint{
			Date:       rs.Points[window-1+i].Date.Format("2006-01-02"),
			Volatility: v,
		}
	}
	return out
}

// Autocorrelations computes ACFs of returns and squared returns up to
// maxLag. A non-positive maxLag uses DefaultACFLags.
func (s *Service) Autocorrelations(rs *domain.ReturnSeries, maxLag int) ACF {
	if maxLag <= 0 {
		maxLag = DefaultACFLags
	}

	values := rs.Values()
	return ACF{
		Lags:           maxLag,
		Returns:        formulas.Autocorrelation(values, maxLag),
		SquaredReturns: formulas.Autocorrelation(formulas.Square(values), maxLag),
	}
}
