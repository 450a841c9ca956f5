// Package marketdata implements the acquisition stage: fetching daily price
// series from the market data provider and differencing them into returns.
package marketdata

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/aristath/volcast/internal/clients/yahoo"
	"github.com/aristath/volcast/internal/domain"
)

// PriceFetcher is the provider boundary. Satisfied by yahoo.Client.
type PriceFetcher interface {
	GetDailyCloses(ctx context.Context, symbol, period string) ([]yahoo.DailyClose, error)
}

// Cache is the optional time-boxed memoization of fetched series.
// Satisfied by clientdata.Repository; a nil Cache disables caching.
type Cache interface {
	GetIfFresh(symbol, rangeKey string) (*domain.PriceSeries, error)
	Store(symbol, rangeKey string, series *domain.PriceSeries, ttl time.Duration) error
}

// Service provides price and return series for analysis requests.
type Service struct {
	fetcher  PriceFetcher
	cache    Cache
	cacheTTL time.Duration
	log      zerolog.Logger
}

// NewService creates a new market data service. cache may be nil.
func NewService(fetcher PriceFetcher, cache Cache, cacheTTL time.Duration, log zerolog.Logger) *Service {
	return &Service{
		fetcher:  fetcher,
		cache:    cache,
		cacheTTL: cacheTTL,
		log:      log.With().Str("service", "marketdata").Logger(),
	}
}

// GetPriceSeries returns the daily close series for the request's symbol and
// lookback. Cache-first; a provider failure or empty response maps to
// ErrDataUnavailable, a short series to InsufficientDataError.
func (s *Service) GetPriceSeries(ctx context.Context, req domain.AnalysisRequest) (*domain.PriceSeries, error) {
	rangeKey := yahoo.RangeForYears(req.Years)

	if s.cache != nil {
		cached, err := s.cache.GetIfFresh(req.Symbol, rangeKey)
		if err != nil {
			s.log.Warn().Err(err).Str("symbol", req.Symbol).Msg("Cache read failed, fetching from provider")
		} else if cached != nil {
			s.log.Debug().Str("symbol", req.Symbol).Str("range", rangeKey).Msg("Price cache hit")
			return cached, nil
		}
	}

	closes, err := s.fetcher.GetDailyCloses(ctx, req.Symbol, rangeKey)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrDataUnavailable, req.Symbol, err)
	}
	if len(closes) == 0 {
		return nil, fmt.Errorf("%w: no rows for %s", domain.ErrDataUnavailable, req.Symbol)
	}

	series := &domain.PriceSeries{
		Symbol: req.Symbol,
		Points: make([]domain.PricePoint, 0, len(closes)),
	}
	for _, c := range closes {
		series.Points = append(series.Points, domain.PricePoint{Date: c.Date, Close: c.Close})
	}

	if err := series.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrDataUnavailable, req.Symbol, err)
	}

	if series.Len() < domain.MinObservations {
		return nil, &domain.InsufficientDataError{
			Symbol: req.Symbol,
			Have:   series.Len(),
			Want:   domain.MinObservations,
		}
	}

	if s.cache != nil {
		if err := s.cache.Store(req.Symbol, rangeKey, series, s.cacheTTL); err != nil {
			s.log.Warn().Err(err).Str("symbol", req.Symbol).Msg("Failed to store series in cache")
		}
	}

	return series, nil
}

// GetReturnSeries fetches the price series and differences it per the
// request's return method.
func (s *Service) GetReturnSeries(ctx context.Context, req domain.AnalysisRequest) (*domain.ReturnSeries, error) {
	prices, err := s.GetPriceSeries(ctx, req)
	if err != nil {
		return nil, err
	}
	return domain.NewReturnSeries(prices, req.Method), nil
}

// WarmCache prefetches and caches the default-lookback series for each
// watchlist symbol. Failures are logged and skipped so one bad symbol never
// blocks the rest.
func (s *Service) WarmCache(ctx context.Context, symbols []string) {
	for _, symbol := range symbols {
		req := domain.NewAnalysisRequest(symbol, 0, 0, 0, "")
		if _, err := s.GetPriceSeries(ctx, req); err != nil {
			s.log.Warn().Err(err).Str("symbol", symbol).Msg("Cache warm failed for symbol")
			continue
		}
		s.log.Debug().Str("symbol", symbol).Msg("Cache warmed")
	}
}
