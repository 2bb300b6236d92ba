package risk

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pratama/folio/internal/domain"
)

func points(closes ...float64) []domain.HistoryPoint {
	ps := make([]domain.HistoryPoint, len(closes))
	for i, c := range closes {
		ps[i] = domain.HistoryPoint{Close: c}
	}
	return ps
}

func TestToReturns_Simple(t *testing.T) {
	returns, err := ToReturns(points(100, 110, 99))
	require.NoError(t, err)
	require.Len(t, returns, 2)
	assert.InDelta(t, 0.10, returns[0], 1e-9)
	assert.InDelta(t, -0.10, returns[1], 1e-9)
}

func TestToReturns_TooShort(t *testing.T) {
	_, err := ToReturns(points(100))
	assert.ErrorIs(t, err, ErrInsufficientData)

	_, err = ToReturns(nil)
	assert.ErrorIs(t, err, ErrInsufficientData)
}

func TestToReturns_SkipsZeroBase(t *testing.T) {
	// The zero close is a gap: the pair (0 -> 105) is skipped, not
	// recorded as a zero return.
	returns, err := ToReturns(points(100, 0, 105))
	require.NoError(t, err)
	require.Len(t, returns, 1)
	assert.InDelta(t, -1.0, returns[0], 1e-9) // 100 -> 0
}

func TestToReturns_AllGaps(t *testing.T) {
	_, err := ToReturns(points(0, 0))
	assert.ErrorIs(t, err, ErrInsufficientData)
}
