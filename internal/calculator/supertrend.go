package calculator

import (
	"fmt"

	"PivotBoard/internal/model"
)

// SupertrendState is what one Supertrend step hands to the next.
type SupertrendState struct {
	Upper     float64 // final upper band of the previous row
	Lower     float64 // final lower band of the previous row
	PrevClose float64
	Trend     model.Trend
	Seeded    bool
}

// SupertrendPoint is the output of one step.
type SupertrendPoint struct {
	BasicUpper float64
	BasicLower float64
	Upper      float64 // final upper band
	Lower      float64 // final lower band
	Line       float64 // published Supertrend value
	Trend      model.Trend
}

// Step advances the Supertrend recurrence by one bar whose ATR is known.
//
// The first step (zero state) is the seed row: both final bands are zero there,
// so the next step always rebuilds them from the basic bands. From then on the
// upper band only moves down unless the previous close broke above it, and the
// lower band only moves up unless the previous close broke below it.
//
// TrendUp means the line follows the upper band; TrendDown follows the lower band.
// A close above the upper band flips UP to DOWN, a close below the lower band
// flips DOWN to UP.
func Step(s SupertrendState, bar model.PriceBar, atr, multiplier float64) (SupertrendState, SupertrendPoint) {
	mid := (bar.High + bar.Low) / 2
	basicUpper := mid + multiplier*atr
	basicLower := mid - multiplier*atr

	var upper, lower float64
	if s.Seeded {
		upper = s.Upper
		if basicUpper < s.Upper || s.PrevClose > s.Upper {
			upper = basicUpper
		}
		lower = s.Lower
		if basicLower > s.Lower || s.PrevClose < s.Lower {
			lower = basicLower
		}
	}

	trend, line := selectTrend(s.Trend, bar.Close, upper, lower)

	next := SupertrendState{
		Upper:     upper,
		Lower:     lower,
		PrevClose: bar.Close,
		Trend:     trend,
		Seeded:    true,
	}
	return next, SupertrendPoint{
		BasicUpper: basicUpper,
		BasicLower: basicLower,
		Upper:      upper,
		Lower:      lower,
		Line:       line,
		Trend:      trend,
	}
}

// selectTrend applies the flip rules. No prior trend counts as UP.
func selectTrend(prev model.Trend, closePrice, upper, lower float64) (model.Trend, float64) {
	if prev == model.TrendDown {
		if closePrice < lower {
			return model.TrendUp, upper
		}
		return model.TrendDown, lower
	}
	if closePrice > upper {
		return model.TrendDown, lower
	}
	return model.TrendUp, upper
}

// Supertrend runs the ATR and the band recurrence together, one bar at a time.
type Supertrend struct {
	period     int
	multiplier float64
	atr        *ATR
	state      SupertrendState
}

// NewSupertrend creates a streaming Supertrend(period, multiplier).
func NewSupertrend(period int, multiplier float64) *Supertrend {
	return &Supertrend{period: period, multiplier: multiplier, atr: NewATR(period)}
}

func (st *Supertrend) Name() string {
	return fmt.Sprintf("Supertrend(%d,%g)", st.period, st.multiplier)
}

func (st *Supertrend) Warmup() int { return st.period }

func (st *Supertrend) Ready() bool { return st.state.Seeded }

func (st *Supertrend) Reset() {
	st.atr.Reset()
	st.state = SupertrendState{}
}

// State returns the state carried into the next Update.
func (st *Supertrend) State() SupertrendState { return st.state }

// Update consumes the next bar. ok is false while the ATR is still warming up.
func (st *Supertrend) Update(bar model.PriceBar) (atr float64, point SupertrendPoint, ok bool) {
	v := st.atr.Update(bar)
	if !v.Valid {
		return 0, SupertrendPoint{}, false
	}
	st.state, point = Step(st.state, bar, v.Float64, st.multiplier)
	return v.Float64, point, true
}

// CalculateSupertrend computes one point per bar; warm-up rows hold a zero point with TrendNone.
// Bars must already be in ascending time order.
func CalculateSupertrend(bars []model.PriceBar, period int, multiplier float64) ([]SupertrendPoint, error) {
	if period <= 0 {
		return nil, fmt.Errorf("%w: supertrend period must be positive, got %d", ErrInvalidParams, period)
	}
	if multiplier <= 0 {
		return nil, fmt.Errorf("%w: supertrend multiplier must be positive, got %g", ErrInvalidParams, multiplier)
	}
	st := NewSupertrend(period, multiplier)
	out := make([]SupertrendPoint, len(bars))
	for i, b := range bars {
		if _, p, ok := st.Update(b); ok {
			out[i] = p
		}
	}
	return out, nil
}
