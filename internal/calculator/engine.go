package calculator

import (
	"fmt"

	"github.com/guregu/null/v6"

	"PivotBoard/internal/model"
)

// Params selects the indicator windows.
type Params struct {
	MAPeriod             int
	RSIPeriod            int
	SupertrendPeriod     int
	SupertrendMultiplier float64
}

// DefaultParams returns MA(20), RSI(14) and Supertrend(10, 3).
func DefaultParams() Params {
	return Params{
		MAPeriod:             20,
		RSIPeriod:            14,
		SupertrendPeriod:     10,
		SupertrendMultiplier: 3,
	}
}

// Validate checks that every window is usable.
func (p Params) Validate() error {
	if p.MAPeriod <= 0 || p.RSIPeriod <= 0 || p.SupertrendPeriod <= 0 {
		return fmt.Errorf("%w: periods must be positive (ma=%d rsi=%d supertrend=%d)",
			ErrInvalidParams, p.MAPeriod, p.RSIPeriod, p.SupertrendPeriod)
	}
	if p.SupertrendMultiplier <= 0 {
		return fmt.Errorf("%w: supertrend multiplier must be positive, got %g", ErrInvalidParams, p.SupertrendMultiplier)
	}
	return nil
}

// ComputeIndicators validates the bars and returns one row per bar in ascending time order.
// All indicators are updated in the same left-to-right pass; nothing is kept between calls.
func ComputeIndicators(bars []model.PriceBar, p Params) ([]model.IndicatorRow, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	sorted, err := ValidateSeries(bars)
	if err != nil {
		return nil, err
	}

	ma := NewSMA(p.MAPeriod)
	rsi := NewRSI(p.RSIPeriod)
	st := NewSupertrend(p.SupertrendPeriod, p.SupertrendMultiplier)

	rows := make([]model.IndicatorRow, len(sorted))
	for i, bar := range sorted {
		row := model.IndicatorRow{
			PriceBar: bar,
			MA20:     ma.Update(bar.Close),
			RSI:      rsi.Update(bar.Close),
		}
		if atr, point, ok := st.Update(bar); ok {
			row.ATR = null.FloatFrom(atr)
			row.Supertrend = null.FloatFrom(point.Line)
			row.Trend = point.Trend
		}
		rows[i] = row
	}
	return rows, nil
}
