package model

import "github.com/guregu/null/v6"

// Trend is the Supertrend direction of a row.
type Trend int

const (
	TrendNone Trend = iota // warm-up, no direction yet
	TrendUp
	TrendDown
)

func (t Trend) String() string {
	switch t {
	case TrendUp:
		return "UP"
	case TrendDown:
		return "DOWN"
	default:
		return ""
	}
}

// MarshalText renders the trend as "UP", "DOWN" or an empty string.
func (t Trend) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// IndicatorRow is a PriceBar plus the indicators derived for it.
// Values still inside their warm-up window are null.
type IndicatorRow struct {
	PriceBar
	MA20       null.Float `json:"ma20"`
	RSI        null.Float `json:"rsi"`
	ATR        null.Float `json:"atr"`
	Supertrend null.Float `json:"supertrend"`
	Trend      Trend      `json:"trend"`
}

// PivotLevels holds the classic floor-trader pivot levels of a single bar.
type PivotLevels struct {
	Pivot float64 `json:"pivot"`
	R1    float64 `json:"r1"`
	R2    float64 `json:"r2"`
	R3    float64 `json:"r3"`
	R4    float64 `json:"r4"`
	S1    float64 `json:"s1"`
	S2    float64 `json:"s2"`
	S3    float64 `json:"s3"`
	S4    float64 `json:"s4"`
}

// Supports returns S1..S4 in order.
func (p PivotLevels) Supports() []float64 {
	return []float64{p.S1, p.S2, p.S3, p.S4}
}

// Resistances returns R1..R4 in order.
func (p PivotLevels) Resistances() []float64 {
	return []float64{p.R1, p.R2, p.R3, p.R4}
}
