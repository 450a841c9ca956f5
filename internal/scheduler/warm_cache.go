package scheduler

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// CacheWarmer prefetches price series. Satisfied by marketdata.Service.
type CacheWarmer interface {
	WarmCache(ctx context.Context, symbols []string)
}

// WarmCacheJob prefetches watchlist symbols so the first dashboard request
// after a cache expiry never pays the provider round-trip.
type WarmCacheJob struct {
	warmer    CacheWarmer
	watchlist []string
	timeout   time.Duration
	log       zerolog.Logger
}

// NewWarmCacheJob creates a new cache warm job
func NewWarmCacheJob(warmer CacheWarmer, watchlist []string, log zerolog.Logger) *WarmCacheJob {
	return &WarmCacheJob{
		warmer:    warmer,
		watchlist: watchlist,
		timeout:   5 * time.Minute,
		log:       log.With().Str("job", "warm_cache").Logger(),
	}
}

// Name returns the job name
func (j *WarmCacheJob) Name() string {
	return "warm_cache"
}

// Run prefetches every watchlist symbol
func (j *WarmCacheJob) Run() error {
	if len(j.watchlist) == 0 {
		j.log.Debug().Msg("Watchlist empty, nothing to warm")
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
	defer cancel()

	j.warmer.WarmCache(ctx, j.watchlist)
	j.log.Info().Int("symbols", len(j.watchlist)).Msg("Cache warm pass finished")
	return nil
}
