package model

import "time"

// OHLCV represents a single daily candlestick bar.
type OHLCV struct {
	Time   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume float64
}

// Quote is a live quote including the regular-session reference close.
type Quote struct {
	Symbol          string
	LastPrice       float64
	RegularClose    float64 // most recent 4 PM ET close
	ChangeFromClose float64
	ChangePct       float64
	Timestamp       time.Time
	IsExtendedHours bool
}

// FilterData holds the high/low/close window for the PSAR filters,
// ordered oldest first.
type FilterData struct {
	Symbol string
	Highs  []float64
	Lows   []float64
	Closes []float64
}
