package risk

import (
	"math"
	"sort"

	"github.com/rs/zerolog"
	"gonum.org/v1/gonum/stat"

	"github.com/pratama/folio/internal/domain"
)

// Risk model constants.
const (
	// RiskFreeRate is the annual risk-free rate used in the Sharpe ratio.
	RiskFreeRate = 0.04
	// MinVolatilityForSharpe floors the Sharpe denominator; below it the
	// ratio is reported as 0 instead of exploding.
	MinVolatilityForSharpe = 0.01
)

// Engine computes portfolio volatility, annualized return and Sharpe ratio
// from per-ticker daily return series under the full covariance model:
// var_p = sum_i sum_j w_i w_j sigma_i sigma_j rho_ij.
type Engine struct {
	annualizer ReturnAnnualizer
	log        zerolog.Logger
}

// NewEngine creates a new risk engine
func NewEngine(annualizer ReturnAnnualizer, log zerolog.Logger) *Engine {
	return &Engine{
		annualizer: annualizer,
		log:        log.With().Str("service", "risk_engine").Logger(),
	}
}

// ComputeRisk derives portfolio risk metrics from weights and daily return
// series. Zero tickers yields all-zero metrics; a single asset degenerates to
// w^2 * sigma^2 under the same double sum. Daily standard deviations are
// population (divide by N), matching the observed-window reading of the
// series.
func (e *Engine) ComputeRisk(weights map[string]float64, series map[string][]float64) domain.RiskMetrics {
	tickers := make([]string, 0, len(series))
	for ticker := range series {
		tickers = append(tickers, ticker)
	}
	sort.Strings(tickers)

	if len(tickers) == 0 {
		e.log.Debug().Msg("No assets with return data, reporting zero risk")
		return domain.RiskMetrics{}
	}

	means := make(map[string]float64, len(tickers))
	stddevs := make(map[string]float64, len(tickers))
	for _, ticker := range tickers {
		returns := series[ticker]
		means[ticker] = stat.Mean(returns, nil)
		stddevs[ticker] = stat.PopStdDev(returns, nil)
	}

	var meanDailyReturn float64
	for _, ticker := range tickers {
		meanDailyReturn += weights[ticker] * means[ticker]
	}

	// Full double sum, off-diagonal terms included twice by iterating the
	// complete grid. cov_ij = sigma_i * sigma_j * rho_ij.
	var dailyVariance float64
	for _, ti := range tickers {
		for _, tj := range tickers {
			rho := 1.0
			if ti != tj {
				rho = pairwiseCorrelation(series[ti], series[tj])
			}
			dailyVariance += weights[ti] * weights[tj] * stddevs[ti] * stddevs[tj] * rho
		}
	}

	annualVolatility := math.Sqrt(dailyVariance) * math.Sqrt(TradingDaysPerYear)
	annualReturn := e.annualizer.Annualize(meanDailyReturn)

	sharpe := 0.0
	if annualVolatility > MinVolatilityForSharpe {
		sharpe = (annualReturn - RiskFreeRate) / annualVolatility
	}

	return domain.RiskMetrics{
		SharpeRatio:      sharpe,
		Volatility:       annualVolatility,
		AnnualizedReturn: annualReturn,
	}
}

// pairwiseCorrelation is the Pearson correlation of two daily return series
// aligned on their most recent observations. Series of different lengths are
// truncated to the shorter one from the tail (recent days line up across
// tickers; older days may not exist for newer listings). Degenerate inputs
// (overlap under 2 points, or a flat series) yield 0 rather than NaN.
func pairwiseCorrelation(a, b []float64) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	if n < 2 {
		return 0
	}

	a = a[len(a)-n:]
	b = b[len(b)-n:]

	if isFlat(a) || isFlat(b) {
		return 0
	}

	return stat.Correlation(a, b, nil)
}

// isFlat reports whether the series has zero variance.
func isFlat(xs []float64) bool {
	mean := stat.Mean(xs, nil)
	for _, x := range xs {
		if x != mean {
			return false
		}
	}
	return true
}
