package portfolio

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/pratama/folio/internal/domain"
	"github.com/pratama/folio/internal/services"
)

func newTestEnricher() *Enricher {
	return NewEnricher(services.NewCurrencyNormalizer(zerolog.Nop()), zerolog.Nop())
}

func TestEnrich_USDHolding(t *testing.T) {
	e := newTestEnricher()

	h := domain.Holding{Ticker: "AAPL", Quantity: 10, PurchasePrice: 150}
	q := domain.Quote{
		Ticker:        "AAPL",
		CurrentPrice:  180,
		Change:        2,
		ChangePercent: 1.12,
		Currency:      "USD",
	}

	enriched := e.Enrich(h, q)

	assert.Equal(t, 180.0, enriched.CurrentPrice)
	assert.Equal(t, 1800.0, enriched.CurrentValue)
	assert.Equal(t, 300.0, enriched.GainLoss)
	assert.InDelta(t, 20.0, enriched.GainLossPercent, 1e-9)
	assert.Equal(t, 2.0, enriched.PriceChange)
	assert.Equal(t, 1.12, enriched.PriceChangePercent)
}

func TestEnrich_PenceQuote(t *testing.T) {
	e := newTestEnricher()

	// 250p at GBP/USD 1.25 is 3.125 USD per share.
	h := domain.Holding{Ticker: "SHEL.L", Quantity: 100, PurchasePrice: 3}
	q := domain.Quote{
		Ticker:       "SHEL.L",
		CurrentPrice: 250,
		Change:       10,
		Currency:     "GBp",
		ExchangeRate: 1.25,
	}

	enriched := e.Enrich(h, q)

	assert.InDelta(t, 3.125, enriched.CurrentPrice, 1e-9)
	assert.InDelta(t, 312.5, enriched.CurrentValue, 1e-9)
	// Change normalizes through the same path: 10p -> 0.125 USD.
	assert.InDelta(t, 0.125, enriched.PriceChange, 1e-9)
}

func TestEnrich_ZeroCostBasis(t *testing.T) {
	e := newTestEnricher()

	h := domain.Holding{Ticker: "FREE", Quantity: 5, PurchasePrice: 0}
	q := domain.Quote{Ticker: "FREE", CurrentPrice: 10, Currency: "USD"}

	enriched := e.Enrich(h, q)

	assert.Equal(t, 50.0, enriched.GainLoss)
	// Percent must stay 0, not Inf, on a zero cost basis.
	assert.Equal(t, 0.0, enriched.GainLossPercent)
}

func TestEnrich_SyntheticQuoteValuesAtCost(t *testing.T) {
	e := newTestEnricher()

	h := domain.Holding{Ticker: "NOQUOTE", Quantity: 8, PurchasePrice: 25}
	enriched := e.Enrich(h, e.SyntheticQuote(h))

	assert.Equal(t, 25.0, enriched.CurrentPrice)
	assert.Equal(t, 200.0, enriched.CurrentValue)
	assert.Equal(t, 0.0, enriched.GainLoss)
	assert.Equal(t, 0.0, enriched.GainLossPercent)
	assert.Equal(t, 0.0, enriched.PriceChange)
}
