package mockprovider

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedNow() time.Time {
	return time.Date(2026, 8, 15, 12, 0, 0, 0, time.UTC)
}

func TestGetQuotes_Deterministic(t *testing.T) {
	p := NewProvider(fixedNow, zerolog.Nop())

	first, err := p.GetQuotes(context.Background(), []string{"AAPL", "MSFT"})
	require.NoError(t, err)
	second, err := p.GetQuotes(context.Background(), []string{"AAPL", "MSFT"})
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Len(t, first, 2)
}

func TestGetQuotes_PriceRange(t *testing.T) {
	p := NewProvider(fixedNow, zerolog.Nop())

	quotes, err := p.GetQuotes(context.Background(), []string{"AAPL", "GOOG", "X", "ZZZZ"})
	require.NoError(t, err)

	for ticker, q := range quotes {
		assert.GreaterOrEqual(t, q.CurrentPrice, 50.0, ticker)
		assert.Less(t, q.CurrentPrice, 550.0, ticker)
		assert.Equal(t, "USD", q.Currency)
		assert.Len(t, q.Sparkline, 7)
	}
}

func TestGetQuotes_EveryTickerResolves(t *testing.T) {
	p := NewProvider(fixedNow, zerolog.Nop())

	tickers := []string{"A", "AB", "ABC", "UNKNOWN-TICKER"}
	quotes, err := p.GetQuotes(context.Background(), tickers)
	require.NoError(t, err)

	for _, ticker := range tickers {
		_, ok := quotes[ticker]
		assert.True(t, ok, "missing quote for %s", ticker)
	}
}

func TestGetHistory_Shape(t *testing.T) {
	p := NewProvider(fixedNow, zerolog.Nop())

	points, err := p.GetHistory(context.Background(), "AAPL", 30)
	require.NoError(t, err)
	require.Len(t, points, 30)

	// Oldest first, ending today.
	assert.Equal(t, "2026-08-15", points[len(points)-1].Date)
	assert.Less(t, points[0].Date, points[len(points)-1].Date)

	for _, pt := range points {
		assert.Greater(t, pt.Close, 0.0)
	}
}

func TestGetHistory_Deterministic(t *testing.T) {
	p := NewProvider(fixedNow, zerolog.Nop())

	a, err := p.GetHistory(context.Background(), "AAPL", 14)
	require.NoError(t, err)
	b, err := p.GetHistory(context.Background(), "AAPL", 14)
	require.NoError(t, err)

	assert.Equal(t, a, b)

	// Different tickers get different series.
	c, err := p.GetHistory(context.Background(), "MSFT", 14)
	require.NoError(t, err)
	assert.NotEqual(t, a, c)
}
