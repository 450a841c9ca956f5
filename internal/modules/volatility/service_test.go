package volatility

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aristath/volcast/internal/domain"
)

func returnSeries(values []float64) *domain.ReturnSeries {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	points := make([]domain.ReturnPoint, len(values))
	for i, v := range values {
		points[i] = domain.ReturnPoint{Date: start.AddDate(0, 0, i), Return: v}
	}
	return &domain.ReturnSeries{Symbol: "TEST", Method: domain.ReturnLog, Points: points}
}

func TestServiceFitAndForecast(t *testing.T) {
	svc := NewService(zerolog.Nop())
	rs := returnSeries(simulateGARCH(1000, 0.05, 0.10, 0.85, 42))

	model, err := svc.Fit(rs, GARCH)
	require.NoError(t, err)
	assert.Equal(t, GARCH, model.Kind)

	fc, err := svc.Forecast(model, 20)
	require.NoError(t, err)
	assert.Len(t, fc.Points, 20)
}

func TestServiceFitInsufficientData(t *testing.T) {
	svc := NewService(zerolog.Nop())
	rs := returnSeries(simulateGARCH(10, 0.05, 0.10, 0.85, 1))

	_, err := svc.Fit(rs, GARCH)

	var insufficientErr *domain.InsufficientDataError
	require.ErrorAs(t, err, &insufficientErr)
	assert.Equal(t, 10, insufficientErr.Have)
	assert.Equal(t, domain.MinObservations, insufficientErr.Want)
}

func TestServiceFitFailureWrapsModelFitError(t *testing.T) {
	svc := NewService(zerolog.Nop())
	constant := make([]float64, 100)
	rs := returnSeries(constant)

	_, err := svc.Fit(rs, EGARCH)

	var fitErr *domain.ModelFitError
	require.ErrorAs(t, err, &fitErr)
	assert.Equal(t, string(EGARCH), fitErr.Model)
}

func TestServiceFitUnknownKind(t *testing.T) {
	svc := NewService(zerolog.Nop())
	rs := returnSeries(simulateGARCH(200, 0.05, 0.10, 0.85, 2))

	_, err := svc.Fit(rs, ModelKind("arch"))
	assert.Error(t, err)
}

func TestServiceAnalyze(t *testing.T) {
	svc := NewService(zerolog.Nop())
	rs := returnSeries(simulateEGARCH(1000, 0.01, 0.10, -0.10, 0.90, 5))

	analysis, err := svc.Analyze(rs, EGARCH, 30)
	require.NoError(t, err)

	assert.Equal(t, EGARCH, analysis.Model.Kind)
	assert.Len(t, analysis.Forecast.Points, 30)
}
