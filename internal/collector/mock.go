package collector

import (
	"context"
	"math"
	"time"

	"PivotBoard/internal/model"
)

// MockFetcher returns controllable fixed data for development and testing.
type MockFetcher struct {
	Price     float64
	DailyData []model.PriceBar
	Info      *model.StockInfo
	Err       error
	// End is the date of the last generated bar; zero means today.
	End time.Time

	Calls int
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchDailyBars(_ context.Context, symbol, period string) ([]model.PriceBar, error) {
	m.Calls++
	if m.Err != nil {
		return nil, m.Err
	}
	if m.DailyData != nil {
		return m.DailyData, nil
	}
	end := m.End
	if end.IsZero() {
		end = time.Now()
	}
	price := m.Price
	if price <= 0 {
		price = 1000
	}
	return generateMockBars(price, PeriodStart(period, end), calendarDay(end, time.UTC)), nil
}

func (m *MockFetcher) FetchInfo(_ context.Context, symbol string) (*model.StockInfo, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if m.Info != nil {
		return m.Info, nil
	}
	name, _ := CompanyName(symbol)
	return &model.StockInfo{Symbol: symbol, CompanyName: name, Exchange: "NSE", Currency: "INR"}, nil
}

// generateMockBars builds one bar per weekday in [from, to], oscillating around basePrice.
func generateMockBars(basePrice float64, from, to time.Time) []model.PriceBar {
	var bars []model.PriceBar
	i := 0
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		if wd := d.Weekday(); wd == time.Saturday || wd == time.Sunday {
			continue
		}
		p := basePrice * (1 + 0.08*math.Sin(float64(i)/9) + 0.0005*float64(i))
		bars = append(bars, model.PriceBar{
			Time:   d,
			Open:   p * 0.998,
			High:   p * 1.009,
			Low:    p * 0.99,
			Close:  p,
			Volume: 1000000 + int64(i%5)*25000,
		})
		i++
	}
	return bars
}
