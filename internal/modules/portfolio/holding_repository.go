// Package portfolio implements holdings management, price enrichment and
// portfolio-level aggregation.
package portfolio

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/pratama/folio/internal/domain"
)

// HoldingRepository handles holding database operations against portfolio.db.
type HoldingRepository struct {
	db  *sql.DB
	log zerolog.Logger
}

// NewHoldingRepository creates a new holding repository
func NewHoldingRepository(db *sql.DB, log zerolog.Logger) *HoldingRepository {
	return &HoldingRepository{
		db:  db,
		log: log.With().Str("repo", "holding").Logger(),
	}
}

const holdingColumns = "id, ticker, name, quantity, purchase_price, purchase_date, target_weight"

// GetAll returns all holdings ordered by ticker.
func (r *HoldingRepository) GetAll() ([]domain.Holding, error) {
	rows, err := r.db.Query(fmt.Sprintf(
		"SELECT %s FROM holdings ORDER BY ticker", holdingColumns))
	if err != nil {
		return nil, fmt.Errorf("failed to query holdings: %w", err)
	}
	defer rows.Close()

	var holdings []domain.Holding
	for rows.Next() {
		h, err := scanHolding(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan holding: %w", err)
		}
		holdings = append(holdings, h)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating holdings: %w", err)
	}

	return holdings, nil
}

// GetByID returns a single holding, or sql.ErrNoRows if absent.
func (r *HoldingRepository) GetByID(id string) (domain.Holding, error) {
	row := r.db.QueryRow(fmt.Sprintf(
		"SELECT %s FROM holdings WHERE id = ?", holdingColumns), id)

	h, err := scanHolding(row)
	if err == sql.ErrNoRows {
		return domain.Holding{}, err
	}
	if err != nil {
		return domain.Holding{}, fmt.Errorf("failed to get holding %s: %w", id, err)
	}
	return h, nil
}

// Create inserts a new holding. The ID is generated here; tickers are stored
// uppercase so quote lookups are case-insensitive.
func (r *HoldingRepository) Create(h domain.Holding) (domain.Holding, error) {
	h.ID = uuid.New().String()
	h.Ticker = strings.ToUpper(strings.TrimSpace(h.Ticker))

	now := time.Now().UTC().Format(time.RFC3339)
	_, err := r.db.Exec(`INSERT INTO holdings
		(id, ticker, name, quantity, purchase_price, purchase_date, target_weight, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		h.ID, h.Ticker, h.Name, h.Quantity, h.PurchasePrice, h.PurchaseDate, h.TargetWeight, now, now)
	if err != nil {
		return domain.Holding{}, fmt.Errorf("failed to create holding: %w", err)
	}

	r.log.Info().Str("id", h.ID).Str("ticker", h.Ticker).Msg("Holding created")
	return h, nil
}

// Update replaces the mutable fields of an existing holding.
// Returns sql.ErrNoRows if the holding doesn't exist.
func (r *HoldingRepository) Update(h domain.Holding) (domain.Holding, error) {
	h.Ticker = strings.ToUpper(strings.TrimSpace(h.Ticker))

	now := time.Now().UTC().Format(time.RFC3339)
	res, err := r.db.Exec(`UPDATE holdings SET
		ticker = ?, name = ?, quantity = ?, purchase_price = ?, purchase_date = ?,
		target_weight = ?, updated_at = ?
		WHERE id = ?`,
		h.Ticker, h.Name, h.Quantity, h.PurchasePrice, h.PurchaseDate, h.TargetWeight, now, h.ID)
	if err != nil {
		return domain.Holding{}, fmt.Errorf("failed to update holding %s: %w", h.ID, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return domain.Holding{}, fmt.Errorf("failed to check update result: %w", err)
	}
	if n == 0 {
		return domain.Holding{}, sql.ErrNoRows
	}

	r.log.Info().Str("id", h.ID).Str("ticker", h.Ticker).Msg("Holding updated")
	return h, nil
}

// Delete removes a holding. Returns sql.ErrNoRows if it doesn't exist.
func (r *HoldingRepository) Delete(id string) error {
	res, err := r.db.Exec("DELETE FROM holdings WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete holding %s: %w", id, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if n == 0 {
		return sql.ErrNoRows
	}

	r.log.Info().Str("id", id).Msg("Holding deleted")
	return nil
}

// scanner abstracts *sql.Row and *sql.Rows for scanHolding.
type scanner interface {
	Scan(dest ...interface{}) error
}

func scanHolding(s scanner) (domain.Holding, error) {
	var h domain.Holding
	var targetWeight sql.NullFloat64

	err := s.Scan(&h.ID, &h.Ticker, &h.Name, &h.Quantity, &h.PurchasePrice,
		&h.PurchaseDate, &targetWeight)
	if err != nil {
		return domain.Holding{}, err
	}

	if targetWeight.Valid {
		h.TargetWeight = &targetWeight.Float64
	}
	return h, nil
}
