package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aristath/volcast/internal/domain"
)

// stubProvider returns canned series or a canned error.
type stubProvider struct {
	series *domain.PriceSeries
	err    error
}

func (s *stubProvider) GetPriceSeries(_ context.Context, req domain.AnalysisRequest) (*domain.PriceSeries, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.series, nil
}

func (s *stubProvider) GetReturnSeries(_ context.Context, req domain.AnalysisRequest) (*domain.ReturnSeries, error) {
	if s.err != nil {
		return nil, s.err
	}
	return domain.NewReturnSeries(s.series, req.Method), nil
}

func testSeries(n int) *domain.PriceSeries {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	series := &domain.PriceSeries{Symbol: "^GSPC"}
	for i := 0; i < n; i++ {
		series.Points = append(series.Points, domain.PricePoint{
			Date:  start.AddDate(0, 0, i),
			Close: 100 + float64(i),
		})
	}
	return series
}

func newRouter(provider PriceProvider) *chi.Mux {
	h := NewHandler(provider, zerolog.Nop())
	r := chi.NewRouter()
	h.RegisterRoutes(r)
	return r
}

func TestHandleGetAssets(t *testing.T) {
	router := newRouter(&stubProvider{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/assets/", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	data := body["data"].(map[string]interface{})
	assert.Greater(t, data["count"].(float64), 0.0)
}

func TestHandleGetPrices(t *testing.T) {
	router := newRouter(&stubProvider{series: testSeries(100)})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/assets/^GSPC/prices?years=3", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	data := body["data"].(map[string]interface{})
	assert.Equal(t, float64(100), data["observations"])
}

func TestHandleGetReturnsLengthInvariant(t *testing.T) {
	router := newRouter(&stubProvider{series: testSeries(100)})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/assets/^GSPC/returns", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	data := body["data"].(map[string]interface{})
	assert.Equal(t, float64(99), data["observations"])
	assert.Equal(t, "log", data["method"])
}

func TestHandleGetPricesValidation(t *testing.T) {
	router := newRouter(&stubProvider{series: testSeries(100)})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/assets/^GSPC/prices?years=99", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleGetPricesDataUnavailable(t *testing.T) {
	provider := &stubProvider{err: fmt.Errorf("%w: no rows", domain.ErrDataUnavailable)}
	router := newRouter(provider)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/assets/BOGUS/prices", nil))

	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestHandleGetPricesInsufficientData(t *testing.T) {
	provider := &stubProvider{err: &domain.InsufficientDataError{Symbol: "X", Have: 10, Want: 60}}
	router := newRouter(provider)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/assets/X/prices", nil))

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestRegisterRoutes(t *testing.T) {
	h := NewHandler(&stubProvider{}, zerolog.Nop())
	router := chi.NewRouter()

	assert.NotPanics(t, func() {
		h.RegisterRoutes(router)
	}, "RegisterRoutes should not panic")
}
