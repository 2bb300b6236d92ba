package portfolio

import (
	"sort"

	"github.com/pratama/folio/internal/domain"
)

// Aggregator folds enriched holdings into portfolio-level metrics and fills
// in per-holding allocation percentages.
type Aggregator struct{}

// NewAggregator creates a new portfolio aggregator
func NewAggregator() *Aggregator {
	return &Aggregator{}
}

// Aggregate computes portfolio totals over the given enriched holdings and
// returns the holdings with allocations filled in, sorted by current value
// descending (stable, so equal values keep their input order).
//
// Today's change is measured in USD terms: the sum over holdings of
// quantity times the normalized absolute price change. Its percentage is
// taken against the start-of-day value (current total minus the change).
func (a *Aggregator) Aggregate(holdings []domain.EnrichedHolding) ([]domain.EnrichedHolding, domain.PortfolioMetrics) {
	var m domain.PortfolioMetrics

	for _, h := range holdings {
		m.TotalValue += h.CurrentValue
		m.TotalCost += h.CostBasis()
		m.TodayChange += h.Quantity * h.PriceChange
	}

	m.TotalGainLoss = m.TotalValue - m.TotalCost
	if m.TotalCost > 0 {
		m.TotalGainLossPercent = m.TotalGainLoss / m.TotalCost * 100
	}

	previousValue := m.TotalValue - m.TodayChange
	if previousValue > 0 {
		m.TodayChangePercent = m.TodayChange / previousValue * 100
	}

	result := make([]domain.EnrichedHolding, len(holdings))
	copy(result, holdings)

	for i := range result {
		if m.TotalValue > 0 {
			result[i].Allocation = result[i].CurrentValue / m.TotalValue * 100
		} else {
			result[i].Allocation = 0
		}
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].CurrentValue > result[j].CurrentValue
	})

	return result, m
}
