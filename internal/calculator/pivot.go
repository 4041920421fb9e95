package calculator

import (
	"fmt"

	"PivotBoard/internal/model"
)

// CalculatePivotPoints derives the classic pivot levels from the last bar of the series.
func CalculatePivotPoints(bars []model.PriceBar) (model.PivotLevels, error) {
	if len(bars) == 0 {
		return model.PivotLevels{}, fmt.Errorf("%w: pivot points need at least one bar", ErrInsufficientData)
	}
	return PivotFromBar(bars[len(bars)-1]), nil
}

// PivotFromBar computes pivot, R1-R4 and S1-S4 from one bar's high, low and close.
func PivotFromBar(bar model.PriceBar) model.PivotLevels {
	high, low, closePrice := bar.High, bar.Low, bar.Close
	rng := high - low

	pivot := (high + low + closePrice) / 3

	r1 := 2*pivot - low
	r2 := pivot + rng
	r3 := high + 2*(pivot-low)
	r4 := r3 + rng

	s1 := 2*pivot - high
	s2 := pivot - rng
	s3 := low - 2*(high-pivot)
	s4 := s3 - rng

	return model.PivotLevels{
		Pivot: Round2(pivot),
		R1:    Round2(r1),
		R2:    Round2(r2),
		R3:    Round2(r3),
		R4:    Round2(r4),
		S1:    Round2(s1),
		S2:    Round2(s2),
		S3:    Round2(s3),
		S4:    Round2(s4),
	}
}
