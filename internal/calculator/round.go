package calculator

import (
	"math"

	"github.com/guregu/null/v6"
	"github.com/shopspring/decimal"
)

// Round2 rounds to 2 decimal places, half away from zero.
// The decimal conversion uses the shortest float representation, so 1.005 rounds to 1.01.
func Round2(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	f, _ := decimal.NewFromFloat(v).Round(2).Float64()
	return f
}

// RoundNull rounds a nullable value, keeping null as null.
func RoundNull(v null.Float) null.Float {
	if !v.Valid {
		return v
	}
	return null.FloatFrom(Round2(v.Float64))
}
