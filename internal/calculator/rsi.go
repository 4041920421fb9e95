package calculator

import (
	"fmt"

	"github.com/guregu/null/v6"
)

// RSI is a streaming Relative Strength Index.
// Average gain and loss are plain means over the last `period` close-to-close
// changes, not Wilder's exponential smoothing.
type RSI struct {
	period   int
	gains    *window
	losses   *window
	prev     float64
	havePrev bool
}

// NewRSI creates a streaming RSI with the given period (typically 14).
func NewRSI(period int) *RSI {
	return &RSI{
		period: period,
		gains:  newWindow(period),
		losses: newWindow(period),
	}
}

func (r *RSI) Name() string { return fmt.Sprintf("RSI(%d)", r.period) }

// Warmup counts the extra first close that only seeds the first change.
func (r *RSI) Warmup() int { return r.period + 1 }

func (r *RSI) Ready() bool { return r.gains.full() }

func (r *RSI) Reset() {
	r.gains.reset()
	r.losses.reset()
	r.prev = 0
	r.havePrev = false
}

// Update consumes the next close and returns the RSI, null until `period` changes are known.
func (r *RSI) Update(closePrice float64) null.Float {
	if !r.havePrev {
		r.prev = closePrice
		r.havePrev = true
		return null.Float{}
	}

	change := closePrice - r.prev
	r.prev = closePrice

	gain, loss := 0.0, 0.0
	if change > 0 {
		gain = change
	} else if change < 0 {
		loss = -change
	}
	r.gains.push(gain)
	r.losses.push(loss)

	if !r.gains.full() {
		return null.Float{}
	}
	return null.FloatFrom(rsiFromAverages(r.gains.mean(), r.losses.mean()))
}

// rsiFromAverages maps average gain/loss to 0..100. A zero average loss gives 100,
// including the flat case where both averages are zero.
func rsiFromAverages(avgGain, avgLoss float64) float64 {
	if avgLoss == 0 {
		return 100.0
	}
	rs := avgGain / avgLoss
	return 100.0 - 100.0/(1.0+rs)
}

// CalculateRSI computes the RSI for every position of closes.
func CalculateRSI(closes []float64, period int) ([]null.Float, error) {
	if period <= 0 {
		return nil, fmt.Errorf("%w: RSI period must be positive, got %d", ErrInvalidParams, period)
	}
	rsi := NewRSI(period)
	out := make([]null.Float, len(closes))
	for i, c := range closes {
		out[i] = rsi.Update(c)
	}
	return out, nil
}
