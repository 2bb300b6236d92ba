// Package insights derives simple technical signals (SMA trend, RSI zone)
// for each holding. Signals are descriptive only; nothing in the dashboard
// acts on them.
package insights

import (
	"context"
	"sort"
	"sync"

	"github.com/markcheno/go-talib"
	"github.com/rs/zerolog"

	"github.com/pratama/folio/internal/domain"
	"github.com/pratama/folio/internal/modules/portfolio"
)

// Indicator periods and the lookback needed to compute them.
const (
	SMAPeriod   = 20
	RSIPeriod   = 14
	HistoryDays = 60
)

// RSI zone thresholds.
const (
	RSIOverbought = 70.0
	RSIOversold   = 30.0
)

// Insight is the per-holding signal summary.
type Insight struct {
	Ticker    string   `json:"ticker"`
	LastClose float64  `json:"lastClose"`
	SMA       *float64 `json:"sma,omitempty"`
	RSI       *float64 `json:"rsi,omitempty"`
	Trend     string   `json:"trend"`
	RSIZone   string   `json:"rsiZone"`
}

// Service computes insights across the portfolio's holdings.
type Service struct {
	repo     *portfolio.HoldingRepository
	provider domain.PriceProvider
	log      zerolog.Logger
}

// NewService creates a new insights service
func NewService(repo *portfolio.HoldingRepository, provider domain.PriceProvider, log zerolog.Logger) *Service {
	return &Service{
		repo:     repo,
		provider: provider,
		log:      log.With().Str("service", "insights").Logger(),
	}
}

// GetInsights returns one insight per holding with available history, sorted
// by ticker. Holdings whose history cannot be fetched are omitted.
func (s *Service) GetInsights(ctx context.Context) ([]Insight, error) {
	holdings, err := s.repo.GetAll()
	if err != nil {
		return nil, err
	}

	insights := make([]Insight, 0, len(holdings))

	var mu sync.Mutex
	var wg sync.WaitGroup
	for _, h := range holdings {
		if !h.Active() {
			continue
		}
		wg.Add(1)
		go func(ticker string) {
			defer wg.Done()

			points, err := s.provider.GetHistory(ctx, ticker, HistoryDays)
			if err != nil || len(points) == 0 {
				s.log.Warn().Err(err).Str("ticker", ticker).Msg("History fetch failed, skipping insight")
				return
			}

			closes := make([]float64, 0, len(points))
			for _, p := range points {
				closes = append(closes, p.Close)
			}

			insight := buildInsight(ticker, closes)

			mu.Lock()
			insights = append(insights, insight)
			mu.Unlock()
		}(h.Ticker)
	}
	wg.Wait()

	sort.Slice(insights, func(i, j int) bool {
		return insights[i].Ticker < insights[j].Ticker
	})
	return insights, nil
}

// buildInsight computes the SMA/RSI signals for one close series. Indicators
// with insufficient data are left nil and their signal reads "unknown".
func buildInsight(ticker string, closes []float64) Insight {
	insight := Insight{
		Ticker:    ticker,
		LastClose: closes[len(closes)-1],
		Trend:     "unknown",
		RSIZone:   "unknown",
	}

	if sma := lastValue(talib.Sma(closes, SMAPeriod), len(closes) >= SMAPeriod); sma != nil {
		insight.SMA = sma
		if insight.LastClose >= *sma {
			insight.Trend = "above_sma"
		} else {
			insight.Trend = "below_sma"
		}
	}

	if rsi := lastValue(talib.Rsi(closes, RSIPeriod), len(closes) >= RSIPeriod+1); rsi != nil {
		insight.RSI = rsi
		switch {
		case *rsi > RSIOverbought:
			insight.RSIZone = "overbought"
		case *rsi < RSIOversold:
			insight.RSIZone = "oversold"
		default:
			insight.RSIZone = "neutral"
		}
	}

	return insight
}

// lastValue returns the final element of a talib output series, or nil when
// the input was too short or the value is NaN.
func lastValue(series []float64, enough bool) *float64 {
	if !enough || len(series) == 0 {
		return nil
	}
	v := series[len(series)-1]
	if v != v {
		return nil
	}
	return &v
}
