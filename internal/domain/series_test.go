package domain

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makePriceSeries(symbol string, closes []float64) *PriceSeries {
	start := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	points := make([]PricePoint, len(closes))
	for i, c := range closes {
		points[i] = PricePoint{Date: start.AddDate(0, 0, i), Close: c}
	}
	return &PriceSeries{Symbol: symbol, Points: points}
}

func TestNewReturnSeries_LengthInvariant(t *testing.T) {
	// ReturnSeries length = PriceSeries length - 1, for any viable series.
	for _, n := range []int{2, 10, 60, 250} {
		closes := make([]float64, n)
		for i := range closes {
			closes[i] = 100 + float64(i)
		}
		ps := makePriceSeries("TEST", closes)

		rs := NewReturnSeries(ps, ReturnLog)
		assert.Equal(t, n-1, rs.Len())
	}
}

func TestNewReturnSeries_LogValues(t *testing.T) {
	ps := makePriceSeries("TEST", []float64{100, 110, 99})
	rs := NewReturnSeries(ps, ReturnLog)

	require.Equal(t, 2, rs.Len())
	assert.InDelta(t, math.Log(110.0/100.0)*100, rs.Points[0].Return, 1e-12)
	assert.InDelta(t, math.Log(99.0/110.0)*100, rs.Points[1].Return, 1e-12)

	// Return observations carry the later date of each price pair.
	assert.Equal(t, ps.Points[1].Date, rs.Points[0].Date)
}

func TestNewReturnSeries_SimpleValues(t *testing.T) {
	ps := makePriceSeries("TEST", []float64{100, 105})
	rs := NewReturnSeries(ps, ReturnSimple)

	require.Equal(t, 1, rs.Len())
	assert.InDelta(t, 5.0, rs.Points[0].Return, 1e-12)
}

func TestNewReturnSeries_SinglePoint(t *testing.T) {
	ps := makePriceSeries("TEST", []float64{100})
	rs := NewReturnSeries(ps, ReturnLog)
	assert.Equal(t, 0, rs.Len())
}

func TestPriceSeries_Validate(t *testing.T) {
	valid := makePriceSeries("TEST", []float64{100, 101, 102})
	assert.NoError(t, valid.Validate())

	negative := makePriceSeries("TEST", []float64{100, -5, 102})
	err := negative.Validate()
	require.Error(t, err)
	var invalidErr *InvalidSeriesError
	require.ErrorAs(t, err, &invalidErr)
	assert.Equal(t, 1, invalidErr.Index)

	// Duplicate date violates strict ordering.
	dup := makePriceSeries("TEST", []float64{100, 101})
	dup.Points[1].Date = dup.Points[0].Date
	assert.Error(t, dup.Validate())

	nan := makePriceSeries("TEST", []float64{100, math.NaN()})
	assert.Error(t, nan.Validate())
}

func TestAnalysisRequest_Defaults(t *testing.T) {
	req := NewAnalysisRequest("^GSPC", 0, 0, 0, "")

	assert.Equal(t, DefaultYears, req.Years)
	assert.Equal(t, DefaultHorizon, req.Horizon)
	assert.Equal(t, DefaultWindow, req.Window)
	assert.Equal(t, ReturnLog, req.Method)
	assert.NoError(t, req.Validate())
}

func TestAnalysisRequest_Validate(t *testing.T) {
	req := NewAnalysisRequest("", 3, 20, 20, ReturnLog)
	assert.Error(t, req.Validate())

	req = NewAnalysisRequest("^GSPC", 11, 20, 20, ReturnLog)
	assert.Error(t, req.Validate())

	req = NewAnalysisRequest("^GSPC", 3, 61, 20, ReturnLog)
	assert.Error(t, req.Validate())

	req = NewAnalysisRequest("^GSPC", 3, 20, 20, ReturnMethod("bogus"))
	assert.Error(t, req.Validate())
}
