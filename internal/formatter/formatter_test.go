package formatter

import (
	"bytes"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/guregu/null/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"PivotBoard/internal/calculator"
	"PivotBoard/internal/model"
)

func sampleRows(t *testing.T, n int) []model.IndicatorRow {
	t.Helper()
	base := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	bars := make([]model.PriceBar, n)
	for i := range bars {
		c := 250 + 12*math.Sin(float64(i)/4) + float64(i)*0.137
		bars[i] = model.PriceBar{
			Time:   base.AddDate(0, 0, i),
			Open:   c - 0.731,
			High:   c + 2.019,
			Low:    c - 1.987,
			Close:  c,
			Volume: int64(50000 + i*37),
		}
	}
	rows, err := calculator.ComputeIndicators(bars, calculator.DefaultParams())
	require.NoError(t, err)
	return rows
}

func TestFormatTable_DescendingAndRounded(t *testing.T) {
	rows := sampleRows(t, 45)
	levels, err := calculator.CalculatePivotPoints([]model.PriceBar{rows[len(rows)-1].PriceBar})
	require.NoError(t, err)

	tbl := FormatTable(levels, rows)
	require.Len(t, tbl.Rows, len(rows))
	assert.Equal(t, levels, tbl.Levels)

	for i := 1; i < len(rows); i++ {
		assert.True(t, rows[i].Time.After(rows[i-1].Time), "computation order at %d", i)
		assert.True(t, tbl.Rows[i].Time.Before(tbl.Rows[i-1].Time), "table order at %d", i)
	}

	newest := tbl.Rows[0]
	assert.Equal(t, rows[len(rows)-1].Time, newest.Time)
	assert.Equal(t, calculator.Round2(rows[len(rows)-1].Close), newest.Close)
	assert.Equal(t, calculator.RoundNull(rows[len(rows)-1].MA20), newest.MA20)

	// warm-up nulls survive
	oldest := tbl.Rows[len(tbl.Rows)-1]
	assert.False(t, oldest.MA20.Valid)
	assert.False(t, oldest.Supertrend.Valid)

	// input untouched
	assert.NotEqual(t, calculator.Round2(rows[1].Close), rows[1].Close)
}

func TestTable_Head(t *testing.T) {
	tbl := FormatTable(model.PivotLevels{}, sampleRows(t, 10))
	assert.Len(t, tbl.Head(3), 3)
	assert.Len(t, tbl.Head(0), 10)
	assert.Len(t, tbl.Head(50), 10)
}

func TestCSV_RoundTrip(t *testing.T) {
	rows := sampleRows(t, 40)
	tbl := FormatTable(model.PivotLevels{}, rows)

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, tbl.Rows))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, len(rows)+1)
	assert.Equal(t, "timestamp,open,high,low,close,volume,ma20,rsi,atr,supertrend", lines[0])

	parsed, err := ParseCSV(&buf)
	require.NoError(t, err)
	require.Len(t, parsed, len(rows))

	for i, p := range parsed {
		want := tbl.Rows[i]
		assert.True(t, want.Time.Equal(p.Time), "row %d", i)
		assert.InDelta(t, want.Close, p.Close, 1e-9, "row %d", i)
		assert.Equal(t, want.Volume, p.Volume, "row %d", i)
		for _, pair := range [][2]null.Float{
			{want.MA20, p.MA20}, {want.RSI, p.RSI}, {want.ATR, p.ATR}, {want.Supertrend, p.Supertrend},
		} {
			require.Equal(t, pair[0].Valid, pair[1].Valid, "row %d", i)
			if pair[0].Valid {
				assert.InDelta(t, pair[0].Float64, pair[1].Float64, 1e-9, "row %d", i)
			}
		}
	}
}

func TestWriteCSV_Cells(t *testing.T) {
	row := model.IndicatorRow{
		PriceBar: model.PriceBar{
			Time: time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC),
			Open: 100, High: 101.5, Low: 99.25, Close: 100.1, Volume: 1200,
		},
		RSI: null.FloatFrom(55.5),
	}
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, []model.IndicatorRow{row}))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Equal(t, "2024-05-02,100.00,101.50,99.25,100.10,1200,,55.50,,", lines[1])
}

func TestParseCSV_Malformed(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"empty", ""},
		{"wrong header", "date,open,high,low,close,volume,ma20,rsi,atr,supertrend\n"},
		{"bad price", "timestamp,open,high,low,close,volume,ma20,rsi,atr,supertrend\n2024-01-02,x,1,1,1,1,,,,\n"},
		{"bad date", "timestamp,open,high,low,close,volume,ma20,rsi,atr,supertrend\n02/01/2024,1,1,1,1,1,,,,\n"},
		{"short row", "timestamp,open,high,low,close,volume,ma20,rsi,atr,supertrend\n2024-01-02,1,1,1\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseCSV(strings.NewReader(tt.in))
			assert.ErrorIs(t, err, ErrMalformedCSV)
		})
	}
}

func TestFormatLevelsReport(t *testing.T) {
	lv := calculator.PivotFromBar(model.PriceBar{High: 110, Low: 90, Close: 100})
	out := FormatLevelsReport("TCS", 100, lv)

	assert.Contains(t, out, "TCS | current price 100.00")
	assert.Contains(t, out, "Pivot:     100.00")
	assert.Contains(t, out, "R4      150.00")
	assert.Contains(t, out, "S4       50.00")
	assert.Less(t, strings.Index(out, "R4"), strings.Index(out, "R1"))
	assert.Less(t, strings.Index(out, "S1"), strings.Index(out, "S4"))
}

func TestFormatTableText(t *testing.T) {
	tbl := FormatTable(model.PivotLevels{}, sampleRows(t, 25))
	out := FormatTableText(tbl.Head(2))
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "supertrend")
	assert.Contains(t, lines[1], tbl.Rows[0].Time.Format("2006-01-02"))

	early := FormatTableText(tbl.Rows[len(tbl.Rows)-1:])
	assert.Contains(t, early, "-")
}

func TestExportFilename(t *testing.T) {
	assert.Equal(t, "RELIANCE_stock_data.csv", ExportFilename("RELIANCE"))
}
