package strategy

import "PivotBoard/internal/model"

// DetectFlips returns one Flip per row whose Supertrend direction differs from
// the row before it. Warm-up rows carry no direction and never produce a flip.
func DetectFlips(rows []model.IndicatorRow) []model.Flip {
	var flips []model.Flip
	for i := 1; i < len(rows); i++ {
		prev, cur := rows[i-1], rows[i]
		if prev.Trend == model.TrendNone || cur.Trend == model.TrendNone {
			continue
		}
		if prev.Trend == cur.Trend {
			continue
		}
		flips = append(flips, model.Flip{
			Time:  cur.Time,
			From:  prev.Trend,
			To:    cur.Trend,
			Close: cur.Close,
			Line:  cur.Supertrend.Float64,
		})
	}
	return flips
}

// Summarize reports the latest state of an ascending indicator series.
func Summarize(symbol string, rows []model.IndicatorRow, levels model.PivotLevels) model.Summary {
	s := model.Summary{Symbol: symbol}
	if len(rows) == 0 {
		return s
	}

	last := rows[len(rows)-1]
	s.AsOf = last.Time
	s.LastClose = last.Close
	s.Trend = last.Trend
	s.Zone = ZoneOf(last.Close, levels)
	if last.RSI.Valid {
		s.RSI = last.RSI.Float64
	}

	if flips := DetectFlips(rows); len(flips) > 0 {
		f := flips[len(flips)-1]
		s.LastFlip = &f
	}
	return s
}
