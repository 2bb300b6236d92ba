package risk

import (
	"math"
	"sort"

	"github.com/pratama/folio/internal/domain"
)

// TopHoldingsCount caps the correlation matrix at the largest positions;
// a full NxN grid is unreadable on the dashboard.
const TopHoldingsCount = 5

// TopTickers selects the tickers of the k largest holdings by current market
// value. The sort is stable, so equal values keep their input order.
func TopTickers(holdings []domain.EnrichedHolding, k int) []string {
	sorted := make([]domain.EnrichedHolding, len(holdings))
	copy(sorted, holdings)

	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CurrentValue > sorted[j].CurrentValue
	})

	if k > len(sorted) {
		k = len(sorted)
	}

	tickers := make([]string, 0, k)
	for _, h := range sorted[:k] {
		tickers = append(tickers, h.Ticker)
	}
	return tickers
}

// BuildMatrix computes the pairwise correlation grid for the given tickers.
// Cells are rounded to 2 decimals for display; the engine's covariance math
// never consumes these rounded values. A ticker with under 2 return points
// correlates at 0 with everything, itself included.
func BuildMatrix(tickers []string, series map[string][]float64) [][]float64 {
	matrix := make([][]float64, len(tickers))
	for i, ti := range tickers {
		matrix[i] = make([]float64, len(tickers))
		for j, tj := range tickers {
			if i == j {
				if len(series[ti]) >= 2 {
					matrix[i][j] = 1
				}
				continue
			}
			matrix[i][j] = round2(pairwiseCorrelation(series[ti], series[tj]))
		}
	}
	return matrix
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
