package formatter

import (
	"sort"

	"PivotBoard/internal/calculator"
	"PivotBoard/internal/model"
)

// Table is the presentation view of one analysed series: pivot levels of the
// latest bar plus every indicator row, newest first, rounded to 2 decimals.
type Table struct {
	Levels model.PivotLevels    `json:"levels"`
	Rows   []model.IndicatorRow `json:"rows"`
}

// FormatTable rounds the rows and orders them by timestamp descending.
// The input slice is not modified.
func FormatTable(levels model.PivotLevels, rows []model.IndicatorRow) Table {
	out := make([]model.IndicatorRow, len(rows))
	for i, r := range rows {
		out[i] = RoundRow(r)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Time.After(out[j].Time) })
	return Table{Levels: levels, Rows: out}
}

// RoundRow rounds every price and indicator of a row to 2 decimals.
func RoundRow(r model.IndicatorRow) model.IndicatorRow {
	r.Open = calculator.Round2(r.Open)
	r.High = calculator.Round2(r.High)
	r.Low = calculator.Round2(r.Low)
	r.Close = calculator.Round2(r.Close)
	r.MA20 = calculator.RoundNull(r.MA20)
	r.RSI = calculator.RoundNull(r.RSI)
	r.ATR = calculator.RoundNull(r.ATR)
	r.Supertrend = calculator.RoundNull(r.Supertrend)
	return r
}

// Head returns at most n rows of the table; n <= 0 means all.
func (t Table) Head(n int) []model.IndicatorRow {
	if n <= 0 || n >= len(t.Rows) {
		return t.Rows
	}
	return t.Rows[:n]
}
