package clientdata

import (
	"github.com/rs/zerolog"
)

// CleanupJob purges expired cache entries from all client data tables.
// Registered with the scheduler to run periodically.
type CleanupJob struct {
	repo *Repository
	log  zerolog.Logger
}

// NewCleanupJob creates a new cache cleanup job.
func NewCleanupJob(repo *Repository, log zerolog.Logger) *CleanupJob {
	return &CleanupJob{
		repo: repo,
		log:  log.With().Str("job", "cache_cleanup").Logger(),
	}
}

// Name returns the job name for scheduler logging.
func (j *CleanupJob) Name() string {
	return "cache_cleanup"
}

// Run deletes expired rows from every cache table. Per-table failures are
// logged and do not abort the rest of the sweep.
func (j *CleanupJob) Run() error {
	var total int64
	for _, table := range AllTables {
		n, err := j.repo.DeleteExpired(table)
		if err != nil {
			j.log.Error().Err(err).Str("table", table).Msg("Failed to purge expired entries")
			continue
		}
		total += n
	}

	j.log.Info().Int64("deleted", total).Msg("Cache cleanup completed")
	return nil
}
