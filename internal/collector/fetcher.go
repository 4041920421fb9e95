package collector

import (
	"context"
	"errors"
	"fmt"
	"time"

	"PivotBoard/internal/model"
)

// Fetcher defines the interface for fetching market data.
type Fetcher interface {
	// FetchDailyBars returns daily bars for the lookback period, earliest first.
	FetchDailyBars(ctx context.Context, symbol, period string) ([]model.PriceBar, error)
	FetchInfo(ctx context.Context, symbol string) (*model.StockInfo, error)
	Name() string
}

// DefaultPeriod is used when no lookback period is given.
const DefaultPeriod = "1y"

var (
	ErrInvalidPeriod = errors.New("invalid period")
	ErrInvalidSymbol = errors.New("invalid symbol")
	// ErrNoData is returned by a fetcher that reached the provider but got no bars back.
	ErrNoData = errors.New("no data returned")
	// ErrFetch wraps any failure to obtain bars from the provider.
	ErrFetch = errors.New("fetch failed")
)

// periods maps each lookback token to its calendar span.
var periods = map[string]struct{ years, months int }{
	"1mo": {0, 1},
	"3mo": {0, 3},
	"6mo": {0, 6},
	"1y":  {1, 0},
	"2y":  {2, 0},
	"5y":  {5, 0},
}

// Periods lists the accepted lookback tokens, shortest first.
func Periods() []string {
	return []string{"1mo", "3mo", "6mo", "1y", "2y", "5y"}
}

// ValidPeriod reports whether p is an accepted lookback token.
func ValidPeriod(p string) bool {
	_, ok := periods[p]
	return ok
}

// ResolvePeriod returns DefaultPeriod for "" and rejects unknown tokens.
func ResolvePeriod(p string) (string, error) {
	if p == "" {
		return DefaultPeriod, nil
	}
	if !ValidPeriod(p) {
		return "", fmt.Errorf("%w: %q (want one of %v)", ErrInvalidPeriod, p, Periods())
	}
	return p, nil
}

// PeriodStart is the first calendar day covered by period when looking back from now.
func PeriodStart(period string, now time.Time) time.Time {
	span, ok := periods[period]
	if !ok {
		span = periods[DefaultPeriod]
	}
	y, m, d := now.UTC().AddDate(-span.years, -span.months, 0).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// calendarDay drops the time of day, keeping the date as seen in loc.
func calendarDay(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
