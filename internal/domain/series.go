// Package domain holds the core data types shared by the analysis pipeline.
// It has no infrastructure dependencies.
package domain

import (
	"math"
	"time"
)

// ReturnMethod selects how consecutive prices are differenced into returns.
type ReturnMethod string

const (
	// ReturnLog computes log returns: ln(p_t / p_{t-1})
	ReturnLog ReturnMethod = "log"
	// ReturnSimple computes simple returns: p_t / p_{t-1} - 1
	ReturnSimple ReturnMethod = "simple"
)

// PricePoint is a single daily close observation.
type PricePoint struct {
	Date  time.Time `json:"date"`
	Close float64   `json:"close"`
}

// PriceSeries is an ordered sequence of daily closes. Dates are strictly
// increasing and prices are positive finite numbers; Validate enforces both.
type PriceSeries struct {
	Symbol string       `json:"symbol"`
	Points []PricePoint `json:"points"`
}

// Len returns the number of observations.
func (ps *PriceSeries) Len() int {
	return len(ps.Points)
}

// Closes returns the close prices as a plain slice.
func (ps *PriceSeries) Closes() []float64 {
	closes := make([]float64, len(ps.Points))
	for i, p := range ps.Points {
		closes[i] = p.Close
	}
	return closes
}

// Validate checks the series invariants: strictly increasing dates, no
// duplicates, positive finite prices.
func (ps *PriceSeries) Validate() error {
	for i, p := range ps.Points {
		if p.Close <= 0 || math.IsNaN(p.Close) || math.IsInf(p.Close, 0) {
			return &InvalidSeriesError{Symbol: ps.Symbol, Index: i, Reason: "price must be a positive finite number"}
		}
		if i > 0 && !ps.Points[i-1].Date.Before(p.Date) {
			return &InvalidSeriesError{Symbol: ps.Symbol, Index: i, Reason: "dates must be strictly increasing"}
		}
	}
	return nil
}

// ReturnPoint is a single return observation, dated at the later of the two
// prices it was differenced from.
type ReturnPoint struct {
	Date   time.Time `json:"date"`
	Return float64   `json:"return"`
}

// ReturnSeries is derived from a PriceSeries by consecutive differencing.
// Length is always len(prices) - 1. Returns are expressed in percent.
type ReturnSeries struct {
	Symbol string        `json:"symbol"`
	Method ReturnMethod  `json:"method"`
	Points []ReturnPoint `json:"points"`
}

// Len returns the number of return observations.
func (rs *ReturnSeries) Len() int {
	return len(rs.Points)
}

// Values returns the return values as a plain slice.
func (rs *ReturnSeries) Values() []float64 {
	values := make([]float64, len(rs.Points))
	for i, p := range rs.Points {
		values[i] = p.Return
	}
	return values
}

// LastDate returns the date of the final return observation, or the zero
// time for an empty series.
func (rs *ReturnSeries) LastDate() time.Time {
	if len(rs.Points) == 0 {
		return time.Time{}
	}
	return rs.Points[len(rs.Points)-1].Date
}

// NewReturnSeries differences a price series into returns, scaled to percent.
// The first price observation is consumed by the differencing, so the result
// has exactly one fewer point than the input.
func NewReturnSeries(ps *PriceSeries, method ReturnMethod) *ReturnSeries {
	if ps.Len() < 2 {
		return &ReturnSeries{Symbol: ps.Symbol, Method: method}
	}

	points := make([]ReturnPoint, 0, ps.Len()-1)
	for i := 1; i < ps.Len(); i++ {
		prev := ps.Points[i-1].Close
		curr := ps.Points[i].Close

		var r float64
		if method == ReturnSimple {
			r = curr/prev - 1
		} else {
			r = math.Log(curr / prev)
		}

		points = append(points, ReturnPoint{
			Date:   ps.Points[i].Date,
			Return: r * 100,
		})
	}

	return &ReturnSeries{Symbol: ps.Symbol, Method: method, Points: points}
}
