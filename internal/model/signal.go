package model

import "time"

// SignalType classifies the engine's recommendation.
type SignalType string

const (
	SignalNone       SignalType = "NO_SIGNAL"
	SignalBuy        SignalType = "BUY"
	SignalSellTarget SignalType = "SELL_TARGET"
	SignalSellStop   SignalType = "SELL_STOP"
	SignalSellTime   SignalType = "SELL_TIME"
	SignalFiltersOff SignalType = "FILTERS_OFF"
)

// IsSell reports whether the signal requests closing the position.
func (s SignalType) IsSell() bool {
	return s == SignalSellTarget || s == SignalSellStop || s == SignalSellTime
}

// Signal is the final output of one evaluation. Field names in the JSON
// form are stable so persisted signals stay comparable across runs.
type Signal struct {
	Timestamp        time.Time  `json:"timestamp"`
	SignalType       SignalType `json:"signal_type"`
	Symbol           string     `json:"symbol"`
	ReferenceSymbol  string     `json:"reference_symbol"`
	CurrentPrice     float64    `json:"current_price"`
	ReferenceClose   float64    `json:"reference_close"`
	DropPct          float64    `json:"drop_pct"`
	FiltersActive    bool       `json:"filters_active"`
	PriceFilterGreen bool       `json:"price_filter_green"`
	RSIFilterGreen   bool       `json:"rsi_filter_green"`
	CurrentRSI       float64    `json:"current_rsi"`
	PnlPct           float64    `json:"pnl_pct,omitempty"`   // only set while holding
	HeldDays         int        `json:"held_days,omitempty"` // only set while holding
	Message          string     `json:"message"`
}
