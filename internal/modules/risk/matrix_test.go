package risk

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pratama/folio/internal/domain"
)

func holdingWithValue(ticker string, value float64) domain.EnrichedHolding {
	return domain.EnrichedHolding{
		Holding:      domain.Holding{Ticker: ticker},
		CurrentValue: value,
	}
}

func TestTopTickers(t *testing.T) {
	holdings := []domain.EnrichedHolding{
		holdingWithValue("C", 300),
		holdingWithValue("A", 100),
		holdingWithValue("F", 600),
		holdingWithValue("B", 200),
		holdingWithValue("E", 500),
		holdingWithValue("D", 400),
	}

	top := TopTickers(holdings, 5)
	assert.Equal(t, []string{"F", "E", "D", "C", "B"}, top)
}

func TestTopTickers_FewerHoldingsThanK(t *testing.T) {
	holdings := []domain.EnrichedHolding{
		holdingWithValue("A", 100),
		holdingWithValue("B", 200),
	}

	top := TopTickers(holdings, 5)
	assert.Equal(t, []string{"B", "A"}, top)
}

func TestTopTickers_EqualValuesKeepInputOrder(t *testing.T) {
	holdings := []domain.EnrichedHolding{
		holdingWithValue("Z", 100),
		holdingWithValue("A", 100),
	}

	assert.Equal(t, []string{"Z", "A"}, TopTickers(holdings, 2))
}

func TestBuildMatrix_Diagonal(t *testing.T) {
	series := map[string][]float64{
		"A": {0.01, -0.02, 0.015},
		"B": {0.02, -0.01, 0.005},
	}

	matrix := BuildMatrix([]string{"A", "B"}, series)
	require.Len(t, matrix, 2)

	assert.Equal(t, 1.0, matrix[0][0])
	assert.Equal(t, 1.0, matrix[1][1])
	// Symmetric off-diagonal.
	assert.Equal(t, matrix[0][1], matrix[1][0])
}

func TestBuildMatrix_PerfectCorrelation(t *testing.T) {
	returns := []float64{0.01, -0.02, 0.015}
	series := map[string][]float64{"A": returns, "B": returns}

	matrix := BuildMatrix([]string{"A", "B"}, series)
	assert.Equal(t, 1.0, matrix[0][1])
}

func TestBuildMatrix_ShortSeriesZeroesItsRow(t *testing.T) {
	series := map[string][]float64{
		"A": {0.01, -0.02, 0.015},
		"B": {0.01}, // one observation: no correlation computable
	}

	matrix := BuildMatrix([]string{"A", "B"}, series)

	// Even the self-pair reads 0 when the series can't support it.
	assert.Equal(t, 0.0, matrix[1][1])
	assert.Equal(t, 0.0, matrix[0][1])
	assert.Equal(t, 0.0, matrix[1][0])
	assert.Equal(t, 1.0, matrix[0][0])
}

func TestBuildMatrix_CellsRoundedToTwoDecimals(t *testing.T) {
	series := map[string][]float64{
		"A": {0.010, -0.020, 0.015, 0.007},
		"B": {0.005, -0.011, 0.030, -0.002},
	}

	matrix := BuildMatrix([]string{"A", "B"}, series)

	cell := matrix[0][1]
	assert.InDelta(t, math.Round(cell*100)/100, cell, 1e-12)
	assert.InDelta(t, math.Round(pairwiseCorrelation(series["A"], series["B"])*100)/100, cell, 1e-12)
}

func TestBuildMatrix_Empty(t *testing.T) {
	matrix := BuildMatrix(nil, nil)
	assert.Empty(t, matrix)
}
