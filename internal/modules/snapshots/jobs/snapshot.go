// Package jobs contains the scheduled NAV snapshot job.
package jobs

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/pratama/folio/internal/domain"
	"github.com/pratama/folio/internal/modules/portfolio"
)

// NavSnapshotJob records the current portfolio value under today's date.
// Scheduled daily after market close; rerunning within the same day upserts.
type NavSnapshotJob struct {
	portfolio *portfolio.Service
	nav       domain.NavStore
	log       zerolog.Logger
}

// NewNavSnapshotJob creates a new NAV snapshot job
func NewNavSnapshotJob(portfolioSvc *portfolio.Service, nav domain.NavStore, log zerolog.Logger) *NavSnapshotJob {
	return &NavSnapshotJob{
		portfolio: portfolioSvc,
		nav:       nav,
		log:       log.With().Str("job", "nav_snapshot").Logger(),
	}
}

// Name returns the job name for scheduler logging.
func (j *NavSnapshotJob) Name() string {
	return "nav_snapshot"
}

// Run computes the portfolio value and stores it for today. A zero value
// (empty portfolio, or total quote failure valuing everything at zero cost)
// is skipped so it doesn't crater the NAV chart.
func (j *NavSnapshotJob) Run() error {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	value, err := j.portfolio.TotalValue(ctx)
	if err != nil {
		return err
	}

	if value == 0 {
		j.log.Warn().Msg("Portfolio value is zero, skipping NAV snapshot")
		return nil
	}

	date := time.Now().UTC().Format("2006-01-02")
	if err := j.nav.SaveSnapshot(date, value); err != nil {
		return err
	}

	j.log.Info().Str("date", date).Float64("value", value).Msg("NAV snapshot saved")
	return nil
}
