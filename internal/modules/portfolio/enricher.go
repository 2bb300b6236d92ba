package portfolio

import (
	"github.com/rs/zerolog"

	"github.com/pratama/folio/internal/domain"
	"github.com/pratama/folio/internal/services"
)

// Enricher combines a holding with its live quote into USD-denominated
// display values. Pure computation; allocation percentages are filled in
// later by the aggregator once the portfolio total is known.
type Enricher struct {
	normalizer *services.CurrencyNormalizer
	log        zerolog.Logger
}

// NewEnricher creates a new holding enricher
func NewEnricher(normalizer *services.CurrencyNormalizer, log zerolog.Logger) *Enricher {
	return &Enricher{
		normalizer: normalizer,
		log:        log.With().Str("service", "enricher").Logger(),
	}
}

// Enrich computes the USD market value and gain/loss figures for one holding.
// Purchase prices are already USD; only quote values pass through currency
// normalization.
func (e *Enricher) Enrich(h domain.Holding, q domain.Quote) domain.EnrichedHolding {
	currentPrice := e.normalizer.ToUSD(q.CurrentPrice, q.Currency, q.ExchangeRate)
	priceChange := e.normalizer.ToUSD(q.Change, q.Currency, q.ExchangeRate)

	currentValue := h.Quantity * currentPrice
	costBasis := h.CostBasis()
	gainLoss := currentValue - costBasis

	gainLossPercent := 0.0
	if costBasis > 0 {
		gainLossPercent = gainLoss / costBasis * 100
	}

	return domain.EnrichedHolding{
		Holding:            h,
		CurrentPrice:       currentPrice,
		CurrentValue:       currentValue,
		GainLoss:           gainLoss,
		GainLossPercent:    gainLossPercent,
		PriceChange:        priceChange,
		PriceChangePercent: q.ChangePercent,
		Currency:           q.Currency,
		Sparkline:          q.Sparkline,
	}
}

// SyntheticQuote builds a stand-in quote at the purchase price for holdings
// whose live quote is unavailable. The holding then values at cost with zero
// gain/loss and zero daily change instead of dropping out of the portfolio.
func (e *Enricher) SyntheticQuote(h domain.Holding) domain.Quote {
	e.log.Debug().Str("ticker", h.Ticker).Msg("No live quote, valuing at purchase price")
	return domain.Quote{
		Ticker:       h.Ticker,
		CurrentPrice: h.PurchasePrice,
		Currency:     "USD",
	}
}
