package calculator

import (
	"math"
	"time"

	"PivotBoard/internal/model"
)

var baseTime = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

// wavyBars produces a deterministic oscillating series with enough swing to flip the Supertrend.
func wavyBars(n int) []model.PriceBar {
	bars := make([]model.PriceBar, n)
	for i := 0; i < n; i++ {
		c := 100 + 10*math.Sin(float64(i)/5) + float64(i%7)*0.3
		o := c - 0.5*math.Cos(float64(i))
		h := math.Max(o, c) + 1 + float64(i%3)*0.4
		l := math.Min(o, c) - 1 - float64(i%4)*0.3
		bars[i] = model.PriceBar{
			Time:   baseTime.AddDate(0, 0, i),
			Open:   o,
			High:   h,
			Low:    l,
			Close:  c,
			Volume: int64(1000 + i*10),
		}
	}
	return bars
}

func bar(day int, h, l, c float64) model.PriceBar {
	return model.PriceBar{Time: baseTime.AddDate(0, 0, day), Open: c, High: h, Low: l, Close: c, Volume: 100}
}

func closesOf(bars []model.PriceBar) []float64 {
	out := make([]float64, len(bars))
	for i, b := range bars {
		out[i] = b.Close
	}
	return out
}
