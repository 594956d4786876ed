package model

import "time"

// Trend is the direction of a PSAR trend.
type Trend string

const (
	TrendBullish Trend = "bullish"
	TrendBearish Trend = "bearish"
)

// PSARPoint is one computed Parabolic SAR value.
type PSARPoint struct {
	Value   float64
	Trend   Trend
	IsGreen bool // true when bullish (dots below price)
}

// FilterStatus is the current state of both PSAR filters.
// MasterSwitchOn is true only when both filters are green.
type FilterStatus struct {
	MasterSwitchOn bool
	PricePSARGreen bool
	RSIPSARGreen   bool
	CurrentPrice   float64
	CurrentRSI     float64
	PricePSARValue float64
	PricePSARTrend Trend
	RSIPSARValue   float64
	RSIPSARTrend   Trend
}

// MarketSnapshot is one atomic evaluation snapshot: filter status plus all
// quotes taken in the same fetch cycle. The decision engine only ever sees
// values from a single snapshot.
type MarketSnapshot struct {
	Timestamp          time.Time
	Filters            FilterStatus
	ReferenceSymbol    string
	ReferencePrice     float64
	ReferenceClose     float64
	DropPct            float64 // positive when price is down from the reference close
	ConservativeSymbol string
	ConservativePrice  float64
	LeveragedSymbol    string
	LeveragedPrice     float64
	IsExtendedHours    bool
}

// PriceFor returns the snapshot price for the given held symbol.
func (s *MarketSnapshot) PriceFor(symbol string) float64 {
	if symbol == s.LeveragedSymbol {
		return s.LeveragedPrice
	}
	return s.ConservativePrice
}
