// Package domain contains the core types shared across Folio modules.
// Types here are pure data - no infrastructure dependencies.
package domain

import "time"

// Holding is a position the user recorded manually. The purchase price is
// entered in USD (the entry form converts before persisting); quantity may be
// fractional. A holding with quantity 0 is considered closed and is excluded
// from valuation and risk.
type Holding struct {
	ID            string   `json:"id"`
	Ticker        string   `json:"ticker"`
	Name          string   `json:"name"`
	Quantity      float64  `json:"quantity"`
	PurchasePrice float64  `json:"purchasePrice"`
	PurchaseDate  string   `json:"purchaseDate"` // YYYY-MM-DD
	TargetWeight  *float64 `json:"targetWeight,omitempty"`
}

// Active reports whether the holding participates in valuation and risk.
func (h Holding) Active() bool {
	return h.Quantity > 0
}

// CostBasis returns quantity x purchase price (USD).
func (h Holding) CostBasis() float64 {
	return h.Quantity * h.PurchasePrice
}

// Quote is an ephemeral market snapshot for one ticker, already validated at
// the provider boundary. Prices are in the quote's native currency;
// ExchangeRate converts one unit of the native currency to USD (0 means
// unknown, treated as 1:1). Treated as immutable for the duration of one
// computation.
type Quote struct {
	Ticker        string    `json:"ticker"`
	CurrentPrice  float64   `json:"currentPrice"`
	Change        float64   `json:"change"`
	ChangePercent float64   `json:"changePercent"`
	Currency      string    `json:"currency,omitempty"`
	ExchangeRate  float64   `json:"exchangeRate,omitempty"`
	Sparkline     []float64 `json:"sparklineData,omitempty"`
	LastUpdated   time.Time `json:"lastUpdated"`
}

// HistoryPoint is one close observation in a historical price series.
type HistoryPoint struct {
	Date  string  `json:"date"` // YYYY-MM-DD
	Close float64 `json:"close"`
}

// EnrichedHolding is a Holding plus fields derived from a Quote. Derived
// fields are recomputed on every price refresh and never persisted.
type EnrichedHolding struct {
	Holding

	CurrentPrice       float64   `json:"currentPrice"` // USD per share
	CurrentValue       float64   `json:"currentValue"` // USD
	GainLoss           float64   `json:"gainLoss"`     // USD
	GainLossPercent    float64   `json:"gainLossPercent"`
	Allocation         float64   `json:"allocation"`  // percent of portfolio value
	PriceChange        float64   `json:"priceChange"` // USD, absolute daily move per share
	PriceChangePercent float64   `json:"priceChangePercent"`
	Currency           string    `json:"currency,omitempty"`
	Sparkline          []float64 `json:"sparklineData,omitempty"`
}

// PortfolioMetrics are portfolio-level aggregates. Purely derived, never
// persisted (the daily NAV snapshot is a separate, persisted series).
type PortfolioMetrics struct {
	TotalValue           float64 `json:"totalValue"`
	TotalCost            float64 `json:"totalCost"`
	TotalGainLoss        float64 `json:"totalGainLoss"`
	TotalGainLossPercent float64 `json:"totalGainLossPercent"`
	TodayChange          float64 `json:"todayChange"`
	TodayChangePercent   float64 `json:"todayChangePercent"`
}

// RiskMetrics are the outputs of the covariance risk engine plus the
// presentation correlation matrix. Recomputed on demand, never persisted.
type RiskMetrics struct {
	SharpeRatio       float64     `json:"sharpeRatio"`
	Volatility        float64     `json:"volatility"`       // annualized
	AnnualizedReturn  float64     `json:"annualizedReturn"` // simple, non-compounded
	CorrelationMatrix [][]float64 `json:"correlationMatrix"`
	TopHoldings       []string    `json:"topHoldings"`
}

// NavSnapshot is one point of the persisted daily NAV series, keyed by
// calendar date, at most one entry per day.
type NavSnapshot struct {
	Date  string  `json:"date"` // YYYY-MM-DD
	Value float64 `json:"value"`
}
