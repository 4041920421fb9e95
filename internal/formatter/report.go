package formatter

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"PivotBoard/internal/model"
)

// FormatLevelsReport renders the pivot levels as three groups: resistances, pivot, supports.
func FormatLevelsReport(symbol string, current float64, lv model.PivotLevels) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("%s | current price %.2f\n\n", symbol, current))

	b.WriteString("Resistances:\n")
	res := lv.Resistances()
	for i := len(res) - 1; i >= 0; i-- {
		b.WriteString(fmt.Sprintf("  R%d  %10.2f\n", i+1, res[i]))
	}
	b.WriteString(fmt.Sprintf("\nPivot:  %9.2f\n\n", lv.Pivot))
	b.WriteString("Supports:\n")
	for i, s := range lv.Supports() {
		b.WriteString(fmt.Sprintf("  S%d  %10.2f\n", i+1, s))
	}
	return b.String()
}

// FormatTableText renders rows as an aligned text table. Undefined values show as "-".
func FormatTableText(rows []model.IndicatorRow) string {
	var b strings.Builder
	tw := tabwriter.NewWriter(&b, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "date\topen\thigh\tlow\tclose\tvolume\tma20\trsi\tatr\tsupertrend\ttrend\t")
	for _, r := range rows {
		fmt.Fprintf(tw, "%s\t%.2f\t%.2f\t%.2f\t%.2f\t%d\t%s\t%s\t%s\t%s\t%s\t\n",
			r.Time.Format(dateLayout), r.Open, r.High, r.Low, r.Close, r.Volume,
			cell(r.MA20.Valid, r.MA20.Float64),
			cell(r.RSI.Valid, r.RSI.Float64),
			cell(r.ATR.Valid, r.ATR.Float64),
			cell(r.Supertrend.Valid, r.Supertrend.Float64),
			trendCell(r.Trend))
	}
	tw.Flush()
	return b.String()
}

// FormatSummary renders the latest trend state in a few lines.
func FormatSummary(s model.Summary) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("%s | %s\n", s.Symbol, s.AsOf.Format(dateLayout)))
	b.WriteString(fmt.Sprintf("Close: %.2f (%s)\n", s.LastClose, s.Zone))
	b.WriteString(fmt.Sprintf("Supertrend: %s\n", trendCell(s.Trend)))
	if s.RSI > 0 {
		b.WriteString(fmt.Sprintf("RSI: %.2f\n", s.RSI))
	}
	if s.LastFlip != nil {
		f := s.LastFlip
		b.WriteString(fmt.Sprintf("Last flip: %s %s -> %s at %.2f\n",
			f.Time.Format(dateLayout), f.From, f.To, f.Close))
	}
	return b.String()
}

func cell(valid bool, v float64) string {
	if !valid {
		return "-"
	}
	return fmt.Sprintf("%.2f", v)
}

func trendCell(t model.Trend) string {
	if t == model.TrendNone {
		return "-"
	}
	return t.String()
}
