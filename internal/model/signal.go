package model

import "time"

// Zone names where a price sits relative to the pivot levels.
type Zone string

const (
	ZoneBelowS4 Zone = "BELOW_S4"
	ZoneS4S3    Zone = "S4_S3"
	ZoneS3S2    Zone = "S3_S2"
	ZoneS2S1    Zone = "S2_S1"
	ZoneS1P     Zone = "S1_PIVOT"
	ZonePR1     Zone = "PIVOT_R1"
	ZoneR1R2    Zone = "R1_R2"
	ZoneR2R3    Zone = "R2_R3"
	ZoneR3R4    Zone = "R3_R4"
	ZoneAboveR4 Zone = "ABOVE_R4"
)

// Flip is a Supertrend direction change between two consecutive rows.
type Flip struct {
	Time  time.Time `json:"timestamp"`
	From  Trend     `json:"from"`
	To    Trend     `json:"to"`
	Close float64   `json:"close"`
	Line  float64   `json:"supertrend"`
}

// Summary is the latest state of one analysed series.
type Summary struct {
	Symbol    string    `json:"symbol"`
	AsOf      time.Time `json:"as_of"`
	LastClose float64   `json:"last_close"`
	Trend     Trend     `json:"trend"`
	LastFlip  *Flip     `json:"last_flip,omitempty"`
	Zone      Zone      `json:"zone"`
	RSI       float64   `json:"rsi,omitempty"`
}
