package portfolio

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pratama/folio/internal/domain"
)

func enrichedFixture(ticker string, quantity, purchasePrice, currentValue, priceChange float64) domain.EnrichedHolding {
	return domain.EnrichedHolding{
		Holding: domain.Holding{
			Ticker:        ticker,
			Quantity:      quantity,
			PurchasePrice: purchasePrice,
		},
		CurrentValue: currentValue,
		PriceChange:  priceChange,
	}
}

func TestAggregate_Totals(t *testing.T) {
	agg := NewAggregator()

	holdings := []domain.EnrichedHolding{
		enrichedFixture("AAPL", 10, 150, 1800, 2), // cost 1500, today +20
		enrichedFixture("MSFT", 5, 300, 1400, -4), // cost 1500, today -20
	}

	_, m := agg.Aggregate(holdings)

	assert.Equal(t, 3200.0, m.TotalValue)
	assert.Equal(t, 3000.0, m.TotalCost)
	assert.Equal(t, 200.0, m.TotalGainLoss)
	assert.InDelta(t, 6.666666, m.TotalGainLossPercent, 1e-4)
	assert.InDelta(t, 0.0, m.TodayChange, 1e-9)
}

func TestAggregate_TodayChangePercent(t *testing.T) {
	agg := NewAggregator()

	// Single holding: value 1010, today's move +10 -> previous close 1000.
	holdings := []domain.EnrichedHolding{
		enrichedFixture("AAPL", 10, 90, 1010, 1),
	}

	_, m := agg.Aggregate(holdings)

	assert.InDelta(t, 10.0, m.TodayChange, 1e-9)
	assert.InDelta(t, 1.0, m.TodayChangePercent, 1e-9)
}

func TestAggregate_Allocations(t *testing.T) {
	agg := NewAggregator()

	holdings := []domain.EnrichedHolding{
		enrichedFixture("A", 1, 1, 750, 0),
		enrichedFixture("B", 1, 1, 250, 0),
	}

	sorted, _ := agg.Aggregate(holdings)

	assert.InDelta(t, 75.0, sorted[0].Allocation, 1e-9)
	assert.InDelta(t, 25.0, sorted[1].Allocation, 1e-9)
}

func TestAggregate_SortsByValueDescending(t *testing.T) {
	agg := NewAggregator()

	holdings := []domain.EnrichedHolding{
		enrichedFixture("SMALL", 1, 1, 100, 0),
		enrichedFixture("BIG", 1, 1, 900, 0),
		enrichedFixture("MID", 1, 1, 500, 0),
	}

	sorted, _ := agg.Aggregate(holdings)

	assert.Equal(t, []string{"BIG", "MID", "SMALL"},
		[]string{sorted[0].Ticker, sorted[1].Ticker, sorted[2].Ticker})
}

func TestAggregate_EqualValuesKeepInputOrder(t *testing.T) {
	agg := NewAggregator()

	holdings := []domain.EnrichedHolding{
		enrichedFixture("ZZZ", 1, 1, 500, 0),
		enrichedFixture("AAA", 1, 1, 500, 0),
	}

	sorted, _ := agg.Aggregate(holdings)

	assert.Equal(t, "ZZZ", sorted[0].Ticker)
	assert.Equal(t, "AAA", sorted[1].Ticker)
}

func TestAggregate_EmptyPortfolio(t *testing.T) {
	agg := NewAggregator()

	sorted, m := agg.Aggregate(nil)

	assert.Empty(t, sorted)
	assert.Equal(t, domain.PortfolioMetrics{}, m)
}

func TestAggregate_ZeroValuePortfolioHasZeroAllocations(t *testing.T) {
	agg := NewAggregator()

	holdings := []domain.EnrichedHolding{
		enrichedFixture("A", 0, 0, 0, 0),
	}

	sorted, m := agg.Aggregate(holdings)

	assert.Equal(t, 0.0, m.TotalGainLossPercent)
	assert.Equal(t, 0.0, m.TodayChangePercent)
	assert.Equal(t, 0.0, sorted[0].Allocation)
}
