package risk

import (
	"math"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/stat"
)

func newTestEngine() *Engine {
	return NewEngine(SimpleAnnualizer{}, zerolog.Nop())
}

func TestComputeRisk_NoAssets(t *testing.T) {
	e := newTestEngine()

	metrics := e.ComputeRisk(nil, nil)

	assert.Zero(t, metrics.SharpeRatio)
	assert.Zero(t, metrics.Volatility)
	assert.Zero(t, metrics.AnnualizedReturn)
}

func TestComputeRisk_SingleAsset(t *testing.T) {
	e := newTestEngine()

	// One asset at weight 1.0: the double sum collapses to w^2 * sigma^2,
	// so portfolio volatility is the asset's own annualized stddev.
	returns := []float64{0.01, -0.01, 0.02, -0.02}
	metrics := e.ComputeRisk(
		map[string]float64{"AAPL": 1},
		map[string][]float64{"AAPL": returns},
	)

	wantVol := stat.PopStdDev(returns, nil) * math.Sqrt(TradingDaysPerYear)
	assert.InDelta(t, wantVol, metrics.Volatility, 1e-9)

	wantReturn := stat.Mean(returns, nil) * TradingDaysPerYear
	assert.InDelta(t, wantReturn, metrics.AnnualizedReturn, 1e-9)
}

func TestComputeRisk_IdenticalSeries(t *testing.T) {
	e := newTestEngine()

	// Two perfectly correlated assets at equal weight behave like one:
	// portfolio volatility equals the single-asset volatility.
	returns := []float64{0.01, -0.02, 0.015, 0.005, -0.01}
	metrics := e.ComputeRisk(
		map[string]float64{"A": 0.5, "B": 0.5},
		map[string][]float64{"A": returns, "B": returns},
	)

	wantVol := stat.PopStdDev(returns, nil) * math.Sqrt(TradingDaysPerYear)
	assert.InDelta(t, wantVol, metrics.Volatility, 1e-9)

	wantReturn := stat.Mean(returns, nil) * TradingDaysPerYear
	assert.InDelta(t, wantReturn, metrics.AnnualizedReturn, 1e-9)
}

func TestComputeRisk_Sharpe(t *testing.T) {
	e := newTestEngine()

	returns := []float64{0.01, -0.02, 0.015, 0.005, -0.01}
	metrics := e.ComputeRisk(
		map[string]float64{"A": 0.5, "B": 0.5},
		map[string][]float64{"A": returns, "B": returns},
	)

	require.Greater(t, metrics.Volatility, MinVolatilityForSharpe)
	want := (metrics.AnnualizedReturn - RiskFreeRate) / metrics.Volatility
	assert.InDelta(t, want, metrics.SharpeRatio, 1e-9)
}

func TestComputeRisk_SharpeFlooredOnTinyVolatility(t *testing.T) {
	e := newTestEngine()

	// Flat return series: zero variance, so the Sharpe denominator would
	// be zero without the floor.
	flat := []float64{0.001, 0.001, 0.001, 0.001}
	metrics := e.ComputeRisk(
		map[string]float64{"A": 0.5, "B": 0.5},
		map[string][]float64{"A": flat, "B": flat},
	)

	assert.Zero(t, metrics.Volatility)
	assert.Zero(t, metrics.SharpeRatio)
	// The annualized return still reports: 0.001 * 252.
	assert.InDelta(t, 0.252, metrics.AnnualizedReturn, 1e-9)
}

func TestComputeRisk_DiversificationReducesVolatility(t *testing.T) {
	e := newTestEngine()

	// Perfectly inversely correlated assets at equal weight cancel out.
	a := []float64{0.01, -0.02, 0.015, -0.005}
	b := make([]float64, len(a))
	for i, r := range a {
		b[i] = -r
	}

	metrics := e.ComputeRisk(
		map[string]float64{"A": 0.5, "B": 0.5},
		map[string][]float64{"A": a, "B": b},
	)

	assert.InDelta(t, 0.0, metrics.Volatility, 1e-9)
}

func TestPairwiseCorrelation_TailAlignment(t *testing.T) {
	// The longer series is truncated from the front so recent days align.
	long := []float64{9, 9, 9, 0.01, -0.02, 0.015}
	short := []float64{0.01, -0.02, 0.015}

	assert.InDelta(t, 1.0, pairwiseCorrelation(long, short), 1e-9)
}

func TestPairwiseCorrelation_Degenerate(t *testing.T) {
	assert.Zero(t, pairwiseCorrelation([]float64{0.01}, []float64{0.02}))
	assert.Zero(t, pairwiseCorrelation(nil, []float64{0.01, 0.02}))

	// A flat series has no variance, so correlation is reported as 0
	// rather than NaN.
	flat := []float64{0.01, 0.01, 0.01}
	moving := []float64{0.01, -0.02, 0.03}
	assert.Zero(t, pairwiseCorrelation(flat, moving))
}
