package model

import "time"

// PriceBar is one daily OHLCV row.
type PriceBar struct {
	Time   time.Time `json:"timestamp"`
	Open   float64   `json:"open"`
	High   float64   `json:"high"`
	Low    float64   `json:"low"`
	Close  float64   `json:"close"`
	Volume int64     `json:"volume"`
}

// PriceSeries holds the raw daily bars of one symbol, earliest first once validated.
type PriceSeries struct {
	Symbol string
	Bars   []PriceBar
}

// Len returns the number of bars in the series.
func (s *PriceSeries) Len() int { return len(s.Bars) }

// Last returns the most recent bar. ok is false for an empty series.
func (s *PriceSeries) Last() (bar PriceBar, ok bool) {
	if len(s.Bars) == 0 {
		return PriceBar{}, false
	}
	return s.Bars[len(s.Bars)-1], true
}

// Closes extracts the closing prices in series order.
func (s *PriceSeries) Closes() []float64 {
	closes := make([]float64, len(s.Bars))
	for i, b := range s.Bars {
		closes[i] = b.Close
	}
	return closes
}

// StockInfo is the company metadata kept next to the price history.
type StockInfo struct {
	Symbol      string    `json:"symbol"`
	CompanyName string    `json:"company_name"`
	Sector      string    `json:"sector,omitempty"`
	Industry    string    `json:"industry,omitempty"`
	MarketCap   float64   `json:"market_cap,omitempty"`
	Exchange    string    `json:"exchange,omitempty"`
	Currency    string    `json:"currency,omitempty"`
	LastUpdated time.Time `json:"last_updated"`
}
