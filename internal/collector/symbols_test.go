package collector

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeSymbol(t *testing.T) {
	tests := []struct{ in, want string }{
		{"reliance", "RELIANCE.NS"},
		{" tcs ", "TCS.NS"},
		{"INFY.NS", "INFY.NS"},
		{"infy.bo", "INFY.BO"},
		{"^nsei", "^NSEI"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeSymbol(tt.in), "NormalizeSymbol(%q)", tt.in)
	}
}

func TestDisplayAndTradingViewSymbol(t *testing.T) {
	assert.Equal(t, "TCS", DisplaySymbol("TCS.NS"))
	assert.Equal(t, "TCS", DisplaySymbol("tcs"))
	assert.Equal(t, "NSE:TCS", TradingViewSymbol("TCS.NS"))
}

func TestNSESymbols(t *testing.T) {
	list := NSESymbols()
	require.Len(t, list, 20)
	assert.Equal(t, "RELIANCE.NS", list[0].Symbol)

	list[0].Symbol = "changed"
	assert.Equal(t, "RELIANCE.NS", NSESymbols()[0].Symbol)

	name, ok := CompanyName("hcltech")
	assert.True(t, ok)
	assert.Equal(t, "HCL Technologies Ltd.", name)
	_, ok = CompanyName("ZZZZ")
	assert.False(t, ok)
}

func TestResolvePeriod(t *testing.T) {
	p, err := ResolvePeriod("")
	require.NoError(t, err)
	assert.Equal(t, "1y", p)

	for _, tok := range Periods() {
		got, err := ResolvePeriod(tok)
		assert.NoError(t, err)
		assert.Equal(t, tok, got)
	}

	_, err = ResolvePeriod("10y")
	assert.ErrorIs(t, err, ErrInvalidPeriod)
}

func TestPeriodStart(t *testing.T) {
	now := time.Date(2024, 8, 15, 18, 30, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2024, 7, 15, 0, 0, 0, 0, time.UTC), PeriodStart("1mo", now))
	assert.Equal(t, time.Date(2023, 8, 15, 0, 0, 0, 0, time.UTC), PeriodStart("1y", now))
	assert.Equal(t, time.Date(2019, 8, 15, 0, 0, 0, 0, time.UTC), PeriodStart("5y", now))
}
