package calculator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"PivotBoard/internal/model"
)

func TestComputeIndicators_WarmupBoundaries(t *testing.T) {
	rows, err := ComputeIndicators(wavyBars(40), DefaultParams())
	require.NoError(t, err)
	require.Len(t, rows, 40)

	for i, r := range rows {
		assert.Equal(t, i >= 19, r.MA20.Valid, "ma20 at %d", i)
		assert.Equal(t, i >= 14, r.RSI.Valid, "rsi at %d", i)
		assert.Equal(t, i >= 9, r.ATR.Valid, "atr at %d", i)
		assert.Equal(t, i >= 9, r.Supertrend.Valid, "supertrend at %d", i)
		if i < 9 {
			assert.Equal(t, model.TrendNone, r.Trend)
		} else {
			assert.NotEqual(t, model.TrendNone, r.Trend)
		}
	}

	// seed row
	assert.Equal(t, 0.0, rows[9].Supertrend.Float64)
	assert.Equal(t, model.TrendDown, rows[9].Trend)
}

func TestComputeIndicators_ShortSeries(t *testing.T) {
	rows, err := ComputeIndicators(wavyBars(5), DefaultParams())
	require.NoError(t, err)
	require.Len(t, rows, 5)
	for _, r := range rows {
		assert.False(t, r.MA20.Valid)
		assert.False(t, r.RSI.Valid)
		assert.False(t, r.ATR.Valid)
		assert.False(t, r.Supertrend.Valid)
	}
}

func TestComputeIndicators_Idempotent(t *testing.T) {
	bars := wavyBars(90)
	a, err := ComputeIndicators(bars, DefaultParams())
	require.NoError(t, err)
	b, err := ComputeIndicators(bars, DefaultParams())
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestComputeIndicators_DescendingInput(t *testing.T) {
	bars := wavyBars(60)
	reversed := make([]model.PriceBar, len(bars))
	for i, b := range bars {
		reversed[len(bars)-1-i] = b
	}
	want, err := ComputeIndicators(bars, DefaultParams())
	require.NoError(t, err)
	got, err := ComputeIndicators(reversed, DefaultParams())
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestComputeIndicators_Errors(t *testing.T) {
	_, err := ComputeIndicators(nil, DefaultParams())
	assert.ErrorIs(t, err, ErrInvalidSeries)

	p := DefaultParams()
	p.RSIPeriod = 0
	_, err = ComputeIndicators(wavyBars(10), p)
	assert.ErrorIs(t, err, ErrInvalidParams)
}

func TestComputeIndicators_MatchesStandaloneCalculators(t *testing.T) {
	bars := wavyBars(70)
	rows, err := ComputeIndicators(bars, DefaultParams())
	require.NoError(t, err)

	ma, err := CalculateSMA(closesOf(bars), 20)
	require.NoError(t, err)
	rsi, err := CalculateRSI(closesOf(bars), 14)
	require.NoError(t, err)
	st, err := CalculateSupertrend(bars, 10, 3)
	require.NoError(t, err)

	for i, r := range rows {
		assert.Equal(t, ma[i], r.MA20, "ma at %d", i)
		assert.Equal(t, rsi[i], r.RSI, "rsi at %d", i)
		if r.Supertrend.Valid {
			assert.Equal(t, st[i].Line, r.Supertrend.Float64, "supertrend at %d", i)
			assert.Equal(t, st[i].Trend, r.Trend, "trend at %d", i)
		}
	}
}
