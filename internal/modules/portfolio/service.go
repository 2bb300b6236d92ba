package portfolio

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/pratama/folio/internal/domain"
)

// Service orchestrates the holdings -> quotes -> enrichment -> aggregation
// pipeline that backs the dashboard.
type Service struct {
	repo     *HoldingRepository
	provider domain.PriceProvider
	enricher *Enricher
	agg      *Aggregator
	log      zerolog.Logger
}

// NewService creates a new portfolio service
func NewService(
	repo *HoldingRepository,
	provider domain.PriceProvider,
	enricher *Enricher,
	agg *Aggregator,
	log zerolog.Logger,
) *Service {
	return &Service{
		repo:     repo,
		provider: provider,
		enricher: enricher,
		agg:      agg,
		log:      log.With().Str("service", "portfolio").Logger(),
	}
}

// GetPortfolio returns all holdings enriched with live prices plus
// portfolio-level metrics. Holdings without a live quote are valued at their
// purchase price rather than excluded.
func (s *Service) GetPortfolio(ctx context.Context) ([]domain.EnrichedHolding, domain.PortfolioMetrics, error) {
	holdings, err := s.repo.GetAll()
	if err != nil {
		return nil, domain.PortfolioMetrics{}, fmt.Errorf("failed to load holdings: %w", err)
	}

	if len(holdings) == 0 {
		return []domain.EnrichedHolding{}, domain.PortfolioMetrics{}, nil
	}

	tickers := make([]string, 0, len(holdings))
	for _, h := range holdings {
		tickers = append(tickers, h.Ticker)
	}

	quotes, err := s.provider.GetQuotes(ctx, tickers)
	if err != nil {
		s.log.Warn().Err(err).Msg("Quote fetch failed, valuing portfolio at cost")
		quotes = map[string]domain.Quote{}
	}

	enriched := make([]domain.EnrichedHolding, 0, len(holdings))
	for _, h := range holdings {
		quote, ok := quotes[h.Ticker]
		if !ok {
			quote = s.enricher.SyntheticQuote(h)
		}
		enriched = append(enriched, s.enricher.Enrich(h, quote))
	}

	sorted, metrics := s.agg.Aggregate(enriched)
	return sorted, metrics, nil
}

// TotalValue returns the current USD value of the portfolio. Used by the
// daily NAV snapshot job.
func (s *Service) TotalValue(ctx context.Context) (float64, error) {
	_, metrics, err := s.GetPortfolio(ctx)
	if err != nil {
		return 0, err
	}
	return metrics.TotalValue, nil
}
