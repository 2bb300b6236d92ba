package risk

import (
	"context"
	"errors"
	"sync"

	"github.com/rs/zerolog"

	"github.com/pratama/folio/internal/domain"
	"github.com/pratama/folio/internal/modules/portfolio"
)

// HistoryDays is the lookback window for per-ticker return series.
const HistoryDays = 30

// ErrInsufficientHistory signals that the portfolio has too little recorded
// history for risk metrics to mean anything. Handlers map it to 400.
var ErrInsufficientHistory = errors.New("insufficient historical data")

// Service assembles the inputs for the risk engine: market-value weights from
// the current portfolio, per-ticker return series from the price provider,
// and NAV history as the sufficiency gate.
type Service struct {
	portfolio *portfolio.Service
	provider  domain.PriceProvider
	nav       domain.NavStore
	engine    *Engine
	log       zerolog.Logger
}

// NewService creates a new risk service
func NewService(
	portfolioSvc *portfolio.Service,
	provider domain.PriceProvider,
	nav domain.NavStore,
	engine *Engine,
	log zerolog.Logger,
) *Service {
	return &Service{
		portfolio: portfolioSvc,
		provider:  provider,
		nav:       nav,
		engine:    engine,
		log:       log.With().Str("service", "risk").Logger(),
	}
}

// ComputeRisk returns the portfolio's risk metrics plus the top-holdings
// correlation matrix. Tickers whose history cannot be fetched or is too
// short are excluded from the model rather than failing the request.
func (s *Service) ComputeRisk(ctx context.Context) (domain.RiskMetrics, error) {
	navHistory, err := s.nav.GetHistory()
	if err != nil {
		return domain.RiskMetrics{}, err
	}
	if len(navHistory) < 2 {
		return domain.RiskMetrics{}, ErrInsufficientHistory
	}

	holdings, _, err := s.portfolio.GetPortfolio(ctx)
	if err != nil {
		return domain.RiskMetrics{}, err
	}

	var active []domain.EnrichedHolding
	for _, h := range holdings {
		if h.Active() {
			active = append(active, h)
		}
	}
	if len(active) == 0 {
		// An empty portfolio has zero risk, not an error state.
		return domain.RiskMetrics{
			CorrelationMatrix: [][]float64{},
			TopHoldings:       []string{},
		}, nil
	}

	series := s.fetchReturnSeries(ctx, active)

	// Weights are current-market-value proportions over all active
	// holdings, including those later excluded from the return series.
	// Excluded weight dampens the reported volatility rather than
	// silently renormalizing onto the survivors.
	weights := make(map[string]float64, len(active))
	var totalValue float64
	for _, h := range active {
		totalValue += h.CurrentValue
	}
	if totalValue > 0 {
		for _, h := range active {
			weights[h.Ticker] = h.CurrentValue / totalValue
		}
	}

	metrics := s.engine.ComputeRisk(weights, series)

	topTickers := TopTickers(active, TopHoldingsCount)
	metrics.TopHoldings = topTickers
	metrics.CorrelationMatrix = BuildMatrix(topTickers, series)

	return metrics, nil
}

// fetchReturnSeries fans out one history request per holding and converts
// the results to daily returns. Failures and short series drop the ticker.
func (s *Service) fetchReturnSeries(ctx context.Context, holdings []domain.EnrichedHolding) map[string][]float64 {
	series := make(map[string][]float64, len(holdings))

	var mu sync.Mutex
	var wg sync.WaitGroup
	for _, h := range holdings {
		wg.Add(1)
		go func(ticker string) {
			defer wg.Done()

			points, err := s.provider.GetHistory(ctx, ticker, HistoryDays)
			if err != nil {
				s.log.Warn().Err(err).Str("ticker", ticker).Msg("History fetch failed, excluding from risk model")
				return
			}

			returns, err := ToReturns(points)
			if err != nil {
				s.log.Debug().Str("ticker", ticker).Msg("History too short, excluding from risk model")
				return
			}

			mu.Lock()
			series[ticker] = returns
			mu.Unlock()
		}(h.Ticker)
	}
	wg.Wait()

	return series
}
