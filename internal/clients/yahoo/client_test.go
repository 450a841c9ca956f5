package yahoo

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client := NewClient(zerolog.Nop())
	client.baseURL = srv.URL
	return client
}

func chartPayload(timestamps []int64, closes []float64) string {
	ts := ""
	cl := ""
	for i := range timestamps {
		if i > 0 {
			ts += ","
			cl += ","
		}
		ts += fmt.Sprintf("%d", timestamps[i])
		cl += fmt.Sprintf("%g", closes[i])
	}
	return fmt.Sprintf(`{"chart":{"result":[{"timestamp":[%s],"indicators":{"quote":[{"close":[%s]}]}}],"error":null}}`, ts, cl)
}

func TestGetDailyCloses(t *testing.T) {
	base := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	timestamps := []int64{base.Unix(), base.AddDate(0, 0, 1).Unix(), base.AddDate(0, 0, 2).Unix()}
	closes := []float64{100.5, 101.25, 99.75}

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.URL.Path, "/v8/finance/chart/AAPL")
		assert.Equal(t, "1d", r.URL.Query().Get("interval"))
		assert.Equal(t, "3y", r.URL.Query().Get("range"))
		fmt.Fprint(w, chartPayload(timestamps, closes))
	})

	got, err := client.GetDailyCloses(context.Background(), "AAPL", "3y")
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, 100.5, got[0].Close)
	assert.True(t, got[0].Date.Equal(base))
}

func TestGetDailyCloses_SkipsZeroRows(t *testing.T) {
	base := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	timestamps := []int64{base.Unix(), base.AddDate(0, 0, 1).Unix()}
	closes := []float64{100.5, 0}

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, chartPayload(timestamps, closes))
	})

	got, err := client.GetDailyCloses(context.Background(), "AAPL", "1y")
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestGetDailyCloses_EmptyResult(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"chart":{"result":[],"error":null}}`)
	})

	got, err := client.GetDailyCloses(context.Background(), "BOGUS", "1y")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestGetDailyCloses_APIError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"chart":{"result":null,"error":{"code":"Not Found","description":"No data found"}}}`)
	})

	_, err := client.GetDailyCloses(context.Background(), "BOGUS", "1y")
	assert.Error(t, err)
}

func TestGetDailyCloses_HTTPError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "too many requests", http.StatusTooManyRequests)
	})

	_, err := client.GetDailyCloses(context.Background(), "AAPL", "1y")
	assert.Error(t, err)
}

func TestRangeForYears(t *testing.T) {
	assert.Equal(t, "1y", RangeForYears(1))
	assert.Equal(t, "2y", RangeForYears(2))
	assert.Equal(t, "5y", RangeForYears(3))
	assert.Equal(t, "5y", RangeForYears(5))
	assert.Equal(t, "10y", RangeForYears(10))
}
