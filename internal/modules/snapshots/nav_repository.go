// Package snapshots records the portfolio's daily net asset value so the
// dashboard can chart performance over time.
package snapshots

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/pratama/folio/internal/domain"
)

// MaxHistoryEntries bounds the NAV log to roughly a year of daily entries.
const MaxHistoryEntries = 365

// NavRepository handles NAV history database operations. Implements
// domain.NavStore.
type NavRepository struct {
	db  *sql.DB
	log zerolog.Logger
}

// NewNavRepository creates a new NAV repository
func NewNavRepository(db *sql.DB, log zerolog.Logger) *NavRepository {
	return &NavRepository{
		db:  db,
		log: log.With().Str("repo", "nav").Logger(),
	}
}

// GetHistory returns all NAV snapshots, oldest first.
func (r *NavRepository) GetHistory() ([]domain.NavSnapshot, error) {
	rows, err := r.db.Query("SELECT date, value FROM nav_history ORDER BY date")
	if err != nil {
		return nil, fmt.Errorf("failed to query nav history: %w", err)
	}
	defer rows.Close()

	var history []domain.NavSnapshot
	for rows.Next() {
		var snap domain.NavSnapshot
		if err := rows.Scan(&snap.Date, &snap.Value); err != nil {
			return nil, fmt.Errorf("failed to scan nav snapshot: %w", err)
		}
		history = append(history, snap)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating nav history: %w", err)
	}

	return history, nil
}

// SaveSnapshot upserts the NAV for a date (the date is the primary key, so a
// rerun on the same day overwrites rather than duplicates) and prunes the log
// to the newest MaxHistoryEntries rows.
func (r *NavRepository) SaveSnapshot(date string, value float64) error {
	now := time.Now().UTC().Format(time.RFC3339)
	_, err := r.db.Exec(
		"INSERT OR REPLACE INTO nav_history (date, value, created_at) VALUES (?, ?, ?)",
		date, value, now)
	if err != nil {
		return fmt.Errorf("failed to save nav snapshot for %s: %w", date, err)
	}

	res, err := r.db.Exec(`DELETE FROM nav_history WHERE date NOT IN (
		SELECT date FROM nav_history ORDER BY date DESC LIMIT ?)`, MaxHistoryEntries)
	if err != nil {
		return fmt.Errorf("failed to prune nav history: %w", err)
	}

	if pruned, err := res.RowsAffected(); err == nil && pruned > 0 {
		r.log.Debug().Int64("pruned", pruned).Msg("Pruned old NAV entries")
	}

	return nil
}
