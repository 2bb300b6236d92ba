// Package yahoo provides a price/history client for the Yahoo Finance quote
// API. Provider payloads are parsed into strongly-typed values at this
// boundary; malformed entries are treated as missing data and dropped rather
// than propagated into the arithmetic core.
package yahoo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/pratama/folio/internal/clientdata"
	"github.com/pratama/folio/internal/domain"
	"github.com/pratama/folio/internal/services"
)

const sparklineDays = 7

// Client fetches quotes, historical closes and exchange rates over HTTP.
type Client struct {
	baseURL string
	client  *http.Client
	cache   *clientdata.Repository
	log     zerolog.Logger
}

// NewClient creates a new quote API client.
// cache is optional - if nil, caching is disabled.
func NewClient(baseURL string, cache *clientdata.Repository, log zerolog.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: 10 * time.Second},
		cache:   cache,
		log:     log.With().Str("client", "yahoo").Logger(),
	}
}

// quoteResult is the raw quote entry shape returned by the provider.
// Pointer fields distinguish absent values from zeroes so validation can
// fail closed.
type quoteResult struct {
	Symbol                     string   `json:"symbol"`
	RegularMarketPrice         *float64 `json:"regularMarketPrice"`
	RegularMarketChange        *float64 `json:"regularMarketChange"`
	RegularMarketChangePercent *float64 `json:"regularMarketChangePercent"`
	RegularMarketTime          int64    `json:"regularMarketTime"`
	Currency                   string   `json:"currency"`
}

type quoteResponse struct {
	QuoteResponse struct {
		Result []quoteResult `json:"result"`
	} `json:"quoteResponse"`
}

type chartResponse struct {
	Chart struct {
		Result []struct {
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Close []*float64 `json:"close"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
	} `json:"chart"`
}

// GetQuotes implements domain.PriceProvider. Tickers whose quote cannot be
// fetched or fails validation are absent from the result; callers substitute
// synthetic quotes or exclude them per the missing-data policy.
func (c *Client) GetQuotes(ctx context.Context, tickers []string) (map[string]domain.Quote, error) {
	quotes := make(map[string]domain.Quote, len(tickers))

	// Cache-first: serve fresh cached quotes, fetch the rest.
	var toFetch []string
	for _, ticker := range tickers {
		var cached domain.Quote
		if c.cache != nil {
			if ok, err := c.cache.GetIfFresh("quotes", ticker, &cached); err == nil && ok {
				quotes[ticker] = cached
				continue
			}
		}
		toFetch = append(toFetch, ticker)
	}

	if len(toFetch) == 0 {
		return quotes, nil
	}

	results, err := c.fetchQuotes(ctx, toFetch)
	if err != nil {
		// API failed entirely - fall back to stale cache before giving up
		// on the remaining tickers.
		for _, ticker := range toFetch {
			var stale domain.Quote
			if c.cache != nil {
				if ok, cacheErr := c.cache.Get("quotes", ticker, &stale); cacheErr == nil && ok {
					c.log.Warn().Str("ticker", ticker).Msg("Quote API failed, using stale cached quote")
					quotes[ticker] = stale
				}
			}
		}
		if len(quotes) == 0 {
			return nil, fmt.Errorf("quote fetch failed: %w", err)
		}
		return quotes, nil
	}

	// Resolve exchange rates for the non-USD currencies present.
	currencies := make(map[string]bool)
	for _, r := range results {
		if r.Currency != "" && r.Currency != "USD" {
			currencies[services.MajorUnit(r.Currency)] = true
		}
	}
	rates := c.resolveRates(ctx, currencies)

	// Sparklines fan out one request per ticker; a failed sparkline only
	// costs that ticker its trend line.
	sparklines := c.fetchSparklines(ctx, toFetch)

	for _, r := range results {
		quote, ok := c.toQuote(r, rates)
		if !ok {
			continue
		}
		quote.Sparkline = sparklines[quote.Ticker]
		quotes[quote.Ticker] = quote

		if c.cache != nil {
			if err := c.cache.Store("quotes", quote.Ticker, quote, clientdata.TTLQuote); err != nil {
				c.log.Warn().Err(err).Str("ticker", quote.Ticker).Msg("Failed to cache quote")
			}
		}
	}

	return quotes, nil
}

// toQuote validates and maps a raw provider entry into a domain Quote.
// Returns false when the entry is unusable (missing symbol or price).
func (c *Client) toQuote(r quoteResult, rates map[string]float64) (domain.Quote, bool) {
	if r.Symbol == "" || r.RegularMarketPrice == nil {
		c.log.Debug().Str("symbol", r.Symbol).Msg("Dropping malformed quote entry")
		return domain.Quote{}, false
	}

	quote := domain.Quote{
		Ticker:       r.Symbol,
		CurrentPrice: *r.RegularMarketPrice,
		Currency:     r.Currency,
		LastUpdated:  time.Now().UTC(),
	}
	if r.RegularMarketChange != nil {
		quote.Change = *r.RegularMarketChange
	}
	if r.RegularMarketChangePercent != nil {
		quote.ChangePercent = *r.RegularMarketChangePercent
	}
	if r.RegularMarketTime > 0 {
		quote.LastUpdated = time.Unix(r.RegularMarketTime, 0).UTC()
	}

	// ExchangeRate carries the major-unit multiplier; the currency
	// normalizer applies the minor-unit scaling where needed.
	if r.Currency != "" && r.Currency != "USD" {
		quote.ExchangeRate = rates[services.MajorUnit(r.Currency)]
	}

	return quote, true
}

// fetchQuotes performs the batched quote request.
func (c *Client) fetchQuotes(ctx context.Context, tickers []string) ([]quoteResult, error) {
	endpoint := fmt.Sprintf("%s/v7/finance/quote?symbols=%s",
		c.baseURL, url.QueryEscape(strings.Join(tickers, ",")))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build quote request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("quote request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("quote API returned status %d", resp.StatusCode)
	}

	var parsed quoteResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("failed to parse quote response: %w", err)
	}

	return parsed.QuoteResponse.Result, nil
}

// resolveRates fetches currency->USD multipliers for the given major-unit
// currency codes. The provider quotes the synthetic "USDXXX=X" pair (price of
// one USD in XXX), so the multiplier is the inverse. Failures leave the
// currency out of the map; the normalizer falls back to 1:1.
func (c *Client) resolveRates(ctx context.Context, currencies map[string]bool) map[string]float64 {
	rates := make(map[string]float64, len(currencies))
	if len(currencies) == 0 {
		return rates
	}

	var pairs []string
	for currency := range currencies {
		pair := "USD" + currency + "=X"

		var cached float64
		if c.cache != nil {
			if ok, err := c.cache.GetIfFresh("exchange_rates", pair, &cached); err == nil && ok {
				rates[currency] = cached
				continue
			}
		}
		pairs = append(pairs, pair)
	}

	if len(pairs) == 0 {
		return rates
	}

	results, err := c.fetchQuotes(ctx, pairs)
	if err != nil {
		c.log.Warn().Err(err).Msg("Failed to fetch exchange rates, affected prices stay native")
		return rates
	}

	for _, r := range results {
		if r.RegularMarketPrice == nil || *r.RegularMarketPrice == 0 {
			continue
		}
		// Symbol is "USDIDR=X", price is e.g. 15800: one USD buys 15800
		// IDR, so the IDR->USD multiplier is 1/15800.
		currency := strings.TrimSuffix(strings.TrimPrefix(r.Symbol, "USD"), "=X")
		rate := 1 / *r.RegularMarketPrice
		rates[currency] = rate

		if c.cache != nil {
			if err := c.cache.Store("exchange_rates", r.Symbol, rate, clientdata.TTLExchangeRate); err != nil {
				c.log.Warn().Err(err).Str("pair", r.Symbol).Msg("Failed to cache exchange rate")
			}
		}
	}

	return rates
}

// fetchSparklines fans out one chart request per ticker and gathers the
// results. Individual failures are logged and omitted.
func (c *Client) fetchSparklines(ctx context.Context, tickers []string) map[string][]float64 {
	sparklines := make(map[string][]float64, len(tickers))

	var mu sync.Mutex
	var wg sync.WaitGroup
	for _, ticker := range tickers {
		wg.Add(1)
		go func(ticker string) {
			defer wg.Done()

			points, err := c.GetHistory(ctx, ticker, sparklineDays)
			if err != nil {
				c.log.Debug().Err(err).Str("ticker", ticker).Msg("Sparkline fetch failed")
				return
			}

			closes := make([]float64, 0, len(points))
			for _, p := range points {
				closes = append(closes, p.Close)
			}

			mu.Lock()
			sparklines[ticker] = closes
			mu.Unlock()
		}(ticker)
	}
	wg.Wait()

	return sparklines
}

// GetHistory implements domain.PriceProvider. Null closes in the provider
// payload are dropped, so the returned series may be shorter than the range.
func (c *Client) GetHistory(ctx context.Context, ticker string, days int) ([]domain.HistoryPoint, error) {
	cacheKey := fmt.Sprintf("%s:%dd", ticker, days)

	var cached []domain.HistoryPoint
	if c.cache != nil {
		if ok, err := c.cache.GetIfFresh("price_history", cacheKey, &cached); err == nil && ok {
			return cached, nil
		}
	}

	endpoint := fmt.Sprintf("%s/v8/finance/chart/%s?range=%dd&interval=1d",
		c.baseURL, url.PathEscape(ticker), days)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build chart request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("chart request failed for %s: %w", ticker, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("chart API returned status %d for %s", resp.StatusCode, ticker)
	}

	var parsed chartResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("failed to parse chart response for %s: %w", ticker, err)
	}

	if len(parsed.Chart.Result) == 0 || len(parsed.Chart.Result[0].Indicators.Quote) == 0 {
		return nil, fmt.Errorf("empty chart result for %s", ticker)
	}

	result := parsed.Chart.Result[0]
	closes := result.Indicators.Quote[0].Close

	points := make([]domain.HistoryPoint, 0, len(closes))
	for i, close := range closes {
		if close == nil {
			continue
		}
		point := domain.HistoryPoint{Close: *close}
		if i < len(result.Timestamp) {
			point.Date = time.Unix(result.Timestamp[i], 0).UTC().Format("2006-01-02")
		}
		points = append(points, point)
	}

	if c.cache != nil {
		if err := c.cache.Store("price_history", cacheKey, points, clientdata.TTLHistory); err != nil {
			c.log.Warn().Err(err).Str("ticker", ticker).Msg("Failed to cache price history")
		}
	}

	return points, nil
}
