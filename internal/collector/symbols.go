package collector

import "strings"

// Listing is one entry of the default symbol catalogue.
type Listing struct {
	Symbol      string `json:"symbol"`
	CompanyName string `json:"company_name"`
}

var nseListings = []Listing{
	{"RELIANCE.NS", "Reliance Industries Ltd."},
	{"TCS.NS", "Tata Consultancy Services Ltd."},
	{"HDFCBANK.NS", "HDFC Bank Ltd."},
	{"INFY.NS", "Infosys Ltd."},
	{"HINDUNILVR.NS", "Hindustan Unilever Ltd."},
	{"ICICIBANK.NS", "ICICI Bank Ltd."},
	{"BHARTIARTL.NS", "Bharti Airtel Ltd."},
	{"SBIN.NS", "State Bank of India"},
	{"WIPRO.NS", "Wipro Ltd."},
	{"AXISBANK.NS", "Axis Bank Ltd."},
	{"ASIANPAINT.NS", "Asian Paints Ltd."},
	{"MARUTI.NS", "Maruti Suzuki India Ltd."},
	{"KOTAKBANK.NS", "Kotak Mahindra Bank Ltd."},
	{"NESTLEIND.NS", "Nestle India Ltd."},
	{"LT.NS", "Larsen & Toubro Ltd."},
	{"TATAMOTORS.NS", "Tata Motors Ltd."},
	{"BAJFINANCE.NS", "Bajaj Finance Ltd."},
	{"TITAN.NS", "Titan Company Ltd."},
	{"TECHM.NS", "Tech Mahindra Ltd."},
	{"HCLTECH.NS", "HCL Technologies Ltd."},
}

// NSESymbols returns a copy of the default catalogue.
func NSESymbols() []Listing {
	out := make([]Listing, len(nseListings))
	copy(out, nseListings)
	return out
}

// CompanyName looks a symbol up in the catalogue.
func CompanyName(symbol string) (string, bool) {
	sym := NormalizeSymbol(symbol)
	for _, l := range nseListings {
		if l.Symbol == sym {
			return l.CompanyName, true
		}
	}
	return "", false
}

// NormalizeSymbol upper-cases a ticker and adds the NSE suffix when it has no
// exchange suffix yet. Index tickers ("^NSEI") are left alone.
func NormalizeSymbol(s string) string {
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == "" || strings.HasPrefix(s, "^") || strings.Contains(s, ".") {
		return s
	}
	return s + ".NS"
}

// DisplaySymbol strips the NSE suffix.
func DisplaySymbol(s string) string {
	return strings.TrimSuffix(NormalizeSymbol(s), ".NS")
}

// TradingViewSymbol converts to the "NSE:TICKER" form.
func TradingViewSymbol(s string) string {
	return "NSE:" + DisplaySymbol(s)
}
