package calculator

import (
	"fmt"
	"math"
	"sort"

	"PivotBoard/internal/model"
)

// ValidateSeries checks the bars and returns a copy sorted by time ascending.
// Descending or unordered input is accepted; duplicate timestamps are not.
func ValidateSeries(bars []model.PriceBar) ([]model.PriceBar, error) {
	if len(bars) == 0 {
		return nil, fmt.Errorf("%w: empty series", ErrInvalidSeries)
	}

	out := make([]model.PriceBar, len(bars))
	copy(out, bars)

	for i, b := range out {
		if b.Time.IsZero() {
			return nil, fmt.Errorf("%w: row %d has no timestamp", ErrInvalidSeries, i)
		}
		for _, p := range [...]float64{b.Open, b.High, b.Low, b.Close} {
			if math.IsNaN(p) || math.IsInf(p, 0) {
				return nil, fmt.Errorf("%w: non-finite price on %s", ErrInvalidSeries, b.Time.Format("2006-01-02"))
			}
			if p <= 0 {
				return nil, fmt.Errorf("%w: non-positive price %.4f on %s", ErrInvalidSeries, p, b.Time.Format("2006-01-02"))
			}
		}
		if b.High < b.Low {
			return nil, fmt.Errorf("%w: high %.4f < low %.4f on %s", ErrInvalidSeries, b.High, b.Low, b.Time.Format("2006-01-02"))
		}
		if b.Volume < 0 {
			return nil, fmt.Errorf("%w: negative volume on %s", ErrInvalidSeries, b.Time.Format("2006-01-02"))
		}
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].Time.Before(out[j].Time) })

	for i := 1; i < len(out); i++ {
		if !out[i].Time.After(out[i-1].Time) {
			return nil, fmt.Errorf("%w: duplicate timestamp %s", ErrInvalidSeries, out[i].Time.Format("2006-01-02"))
		}
	}
	return out, nil
}
