// Package mockprovider generates deterministic synthetic market data for
// development and demos. All values derive from the ticker string, so the
// same ticker always produces the same prices and history.
package mockprovider

import (
	"context"
	"math"
	"time"

	"github.com/rs/zerolog"

	"github.com/pratama/folio/internal/domain"
)

// Provider implements domain.PriceProvider with generated data.
type Provider struct {
	now func() time.Time
	log zerolog.Logger
}

// NewProvider creates a mock price provider. now is injectable for tests;
// nil defaults to time.Now.
func NewProvider(now func() time.Time, log zerolog.Logger) *Provider {
	if now == nil {
		now = time.Now
	}
	return &Provider{
		now: now,
		log: log.With().Str("client", "mockprovider").Logger(),
	}
}

// seed derives a numeric seed from the ticker's character codes.
func seed(ticker string) int {
	sum := 0
	for _, ch := range ticker {
		sum += int(ch)
	}
	return sum
}

// basePrice maps a ticker deterministically into the 50..550 range.
func basePrice(ticker string) float64 {
	return float64(seed(ticker)%500) + 50
}

// GetQuotes implements domain.PriceProvider. Every requested ticker gets a
// quote; the mock never has missing data.
func (p *Provider) GetQuotes(ctx context.Context, tickers []string) (map[string]domain.Quote, error) {
	quotes := make(map[string]domain.Quote, len(tickers))
	for _, ticker := range tickers {
		price := basePrice(ticker)
		change := price * 0.02 * math.Sin(float64(seed(ticker)))

		sparkline := make([]float64, 0, 7)
		for _, point := range p.history(ticker, 7) {
			sparkline = append(sparkline, point.Close)
		}

		quotes[ticker] = domain.Quote{
			Ticker:        ticker,
			CurrentPrice:  price,
			Change:        change,
			ChangePercent: change / price * 100,
			Currency:      "USD",
			Sparkline:     sparkline,
			LastUpdated:   p.now().UTC(),
		}
	}
	return quotes, nil
}

// GetHistory implements domain.PriceProvider.
func (p *Provider) GetHistory(ctx context.Context, ticker string, days int) ([]domain.HistoryPoint, error) {
	return p.history(ticker, days), nil
}

// history builds a sine wave with a mild upward trend around the base price,
// oldest point first. The shape depends only on the ticker and day count.
func (p *Provider) history(ticker string, days int) []domain.HistoryPoint {
	base := basePrice(ticker)
	phase := float64(seed(ticker) % 10)
	today := p.now().UTC()

	points := make([]domain.HistoryPoint, 0, days)
	for i := days - 1; i >= 0; i-- {
		age := float64(i)
		wave := math.Sin(age/5+phase) * base * 0.03
		trend := (float64(days) - age) / float64(days) * base * 0.05
		points = append(points, domain.HistoryPoint{
			Date:  today.AddDate(0, 0, -i).Format("2006-01-02"),
			Close: base + wave + trend,
		})
	}
	return points
}
