package calculator

import (
	"fmt"

	"github.com/guregu/null/v6"
)

// SMA is a streaming simple moving average over the last `period` values.
type SMA struct {
	period int
	win    *window
}

// NewSMA creates a streaming SMA with the given period.
func NewSMA(period int) *SMA {
	return &SMA{period: period, win: newWindow(period)}
}

func (s *SMA) Name() string { return fmt.Sprintf("MA(%d)", s.period) }

// Warmup is the number of values needed before the first defined output.
func (s *SMA) Warmup() int { return s.period }

func (s *SMA) Ready() bool { return s.win.full() }

func (s *SMA) Reset() { s.win.reset() }

// Update consumes the next value and returns the average, null until the window is full.
func (s *SMA) Update(v float64) null.Float {
	s.win.push(v)
	if !s.win.full() {
		return null.Float{}
	}
	return null.FloatFrom(s.win.mean())
}

// CalculateSMA computes the simple moving average for every position of prices.
func CalculateSMA(prices []float64, period int) ([]null.Float, error) {
	if period <= 0 {
		return nil, fmt.Errorf("%w: MA period must be positive, got %d", ErrInvalidParams, period)
	}
	sma := NewSMA(period)
	out := make([]null.Float, len(prices))
	for i, p := range prices {
		out[i] = sma.Update(p)
	}
	return out, nil
}
