package calculator

import (
	"fmt"
	"math"

	"github.com/guregu/null/v6"

	"PivotBoard/internal/model"
)

// TrueRange is max(high-low, |high-prevClose|, |low-prevClose|).
// Without a previous bar it is just high-low.
func TrueRange(current model.PriceBar, previous *model.PriceBar) float64 {
	highLow := current.High - current.Low
	if previous == nil {
		return highLow
	}
	highClose := math.Abs(current.High - previous.Close)
	lowClose := math.Abs(current.Low - previous.Close)
	return math.Max(highLow, math.Max(highClose, lowClose))
}

// ATR is a streaming Average True Range: the simple mean of the last `period` true ranges.
type ATR struct {
	period   int
	win      *window
	prev     model.PriceBar
	havePrev bool
}

// NewATR creates a streaming ATR with the given period.
func NewATR(period int) *ATR {
	return &ATR{period: period, win: newWindow(period)}
}

func (a *ATR) Name() string { return fmt.Sprintf("ATR(%d)", a.period) }

// Warmup is `period` bars: the first bar contributes its high-low range.
func (a *ATR) Warmup() int { return a.period }

func (a *ATR) Ready() bool { return a.win.full() }

func (a *ATR) Reset() {
	a.win.reset()
	a.prev = model.PriceBar{}
	a.havePrev = false
}

// Update consumes the next bar and returns the ATR, null until `period` bars are seen.
func (a *ATR) Update(bar model.PriceBar) null.Float {
	var prev *model.PriceBar
	if a.havePrev {
		prev = &a.prev
	}
	a.win.push(TrueRange(bar, prev))
	a.prev = bar
	a.havePrev = true

	if !a.win.full() {
		return null.Float{}
	}
	return null.FloatFrom(a.win.mean())
}
