// Package risk implements the MPT risk engine: return series, covariance,
// portfolio volatility, Sharpe ratio and the correlation matrix.
package risk

import (
	"errors"

	"github.com/pratama/folio/internal/domain"
)

// ErrInsufficientData indicates a price series too short to derive returns.
var ErrInsufficientData = errors.New("insufficient price history")

// ToReturns converts a close-price series into simple daily returns,
// oldest first. Pairs where the base price is zero are skipped rather than
// recorded as zero: a zero close is missing data, and zero-filling would
// inject fake zero-variance observations into the correlation window.
func ToReturns(points []domain.HistoryPoint) ([]float64, error) {
	if len(points) < 2 {
		return nil, ErrInsufficientData
	}

	returns := make([]float64, 0, len(points)-1)
	for i := 1; i < len(points); i++ {
		prev := points[i-1].Close
		if prev == 0 {
			continue
		}
		returns = append(returns, (points[i].Close-prev)/prev)
	}

	if len(returns) == 0 {
		return nil, ErrInsufficientData
	}
	return returns, nil
}
