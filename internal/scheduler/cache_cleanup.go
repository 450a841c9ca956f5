package scheduler

import (
	"github.com/rs/zerolog"
)

// CachePruner deletes expired cache rows. Satisfied by
// clientdata.Repository.
type CachePruner interface {
	DeleteExpired() (int64, error)
}

// CacheCleanupJob removes expired price series from the cache database so
// the file does not grow without bound.
type CacheCleanupJob struct {
	pruner CachePruner
	log    zerolog.Logger
}

// NewCacheCleanupJob creates a new cache cleanup job
func NewCacheCleanupJob(pruner CachePruner, log zerolog.Logger) *CacheCleanupJob {
	return &CacheCleanupJob{
		pruner: pruner,
		log:    log.With().Str("job", "cache_cleanup").Logger(),
	}
}

// Name returns the job name
func (j *CacheCleanupJob) Name() string {
	return "cache_cleanup"
}

// Run deletes expired cache entries
func (j *CacheCleanupJob) Run() error {
	deleted, err := j.pruner.DeleteExpired()
	if err != nil {
		return err
	}
	if deleted > 0 {
		j.log.Info().Int64("deleted", deleted).Msg("Pruned expired cache entries")
	}
	return nil
}
