package formatter

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/guregu/null/v6"

	"PivotBoard/internal/model"
)

const dateLayout = "2006-01-02"

// CSVHeader is the column order of the exported table.
var CSVHeader = []string{"timestamp", "open", "high", "low", "close", "volume", "ma20", "rsi", "atr", "supertrend"}

// ErrMalformedCSV is returned by ParseCSV for a bad header or an unparsable cell.
var ErrMalformedCSV = errors.New("malformed csv")

// WriteCSV writes the header and one line per row, in the order given.
// Prices use 2 decimals; undefined indicator values are written as empty cells.
func WriteCSV(w io.Writer, rows []model.IndicatorRow) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(CSVHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, r := range rows {
		rec := []string{
			r.Time.Format(dateLayout),
			fmtFloat(r.Open),
			fmtFloat(r.High),
			fmtFloat(r.Low),
			fmtFloat(r.Close),
			strconv.FormatInt(r.Volume, 10),
			fmtNull(r.MA20),
			fmtNull(r.RSI),
			fmtNull(r.ATR),
			fmtNull(r.Supertrend),
		}
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("write csv row %s: %w", r.Time.Format(dateLayout), err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// ParseCSV reads a table written by WriteCSV. Trend is not part of the export
// and stays TrendNone.
func ParseCSV(r io.Reader) ([]model.IndicatorRow, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(CSVHeader)

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("%w: read header: %v", ErrMalformedCSV, err)
	}
	for i, h := range CSVHeader {
		if header[i] != h {
			return nil, fmt.Errorf("%w: column %d is %q, want %q", ErrMalformedCSV, i, header[i], h)
		}
	}

	var rows []model.IndicatorRow
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedCSV, err)
		}
		row, err := parseRecord(rec)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrMalformedCSV, line, err)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func parseRecord(rec []string) (model.IndicatorRow, error) {
	var row model.IndicatorRow
	ts, err := time.Parse(dateLayout, rec[0])
	if err != nil {
		return row, err
	}
	row.Time = ts

	prices := []*float64{&row.Open, &row.High, &row.Low, &row.Close}
	for i, p := range prices {
		v, err := strconv.ParseFloat(rec[i+1], 64)
		if err != nil {
			return row, fmt.Errorf("%s: %w", CSVHeader[i+1], err)
		}
		*p = v
	}

	if row.Volume, err = strconv.ParseInt(rec[5], 10, 64); err != nil {
		return row, fmt.Errorf("volume: %w", err)
	}

	nulls := []*null.Float{&row.MA20, &row.RSI, &row.ATR, &row.Supertrend}
	for i, n := range nulls {
		cell := rec[i+6]
		if cell == "" {
			continue
		}
		v, err := strconv.ParseFloat(cell, 64)
		if err != nil {
			return row, fmt.Errorf("%s: %w", CSVHeader[i+6], err)
		}
		*n = null.FloatFrom(v)
	}
	return row, nil
}

func fmtFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func fmtNull(v null.Float) string {
	if !v.Valid {
		return ""
	}
	return fmtFloat(v.Float64)
}

// ExportFilename is the download name used for a symbol's CSV export.
func ExportFilename(displaySymbol string) string {
	return displaySymbol + "_stock_data.csv"
}
