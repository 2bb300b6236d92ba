package domain

import "context"

// PriceProvider supplies quotes and historical closes for tickers. It may
// fail per-ticker; callers must treat absence as "exclude this ticker", never
// as a fatal error for the whole request. Implementations: the Yahoo-style
// HTTP client and the deterministic mock provider - the calculation core
// never knows which one it is consuming.
type PriceProvider interface {
	// GetQuotes returns quotes keyed by ticker. Tickers that could not be
	// resolved are simply absent from the map.
	GetQuotes(ctx context.Context, tickers []string) (map[string]Quote, error)

	// GetHistory returns up to `days` of daily closes, oldest first.
	GetHistory(ctx context.Context, ticker string, days int) ([]HistoryPoint, error)
}

// NavStore is the append-only-with-upsert-by-date log of daily portfolio
// values.
type NavStore interface {
	GetHistory() ([]NavSnapshot, error)
	SaveSnapshot(date string, value float64) error
}
