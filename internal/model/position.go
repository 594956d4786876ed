package model

import "time"

// Position is the single open lot. Read-only after creation; cleared on
// exit. At most one position exists at a time.
type Position struct {
	Symbol     string    `json:"symbol"`
	EntryPrice float64   `json:"entry_price"`
	EntryTime  time.Time `json:"entry_time"`
	Shares     int       `json:"shares"`
	CostBasis  float64   `json:"cost_basis"`
}

// PnL returns the absolute profit at the given price.
func (p *Position) PnL(currentPrice float64) float64 {
	return (currentPrice - p.EntryPrice) * float64(p.Shares)
}

// PnLPct returns the fractional gain from the entry price.
func (p *Position) PnLPct(currentPrice float64) float64 {
	return (currentPrice - p.EntryPrice) / p.EntryPrice
}

// HeldDays returns elapsed calendar days since entry as of now.
func (p *Position) HeldDays(now time.Time) int {
	return int(now.Sub(p.EntryTime).Hours() / 24)
}

// TradeSummary records a completed round trip.
type TradeSummary struct {
	Symbol       string        `json:"symbol"`
	EntryPrice   float64       `json:"entry_price"`
	ExitPrice    float64       `json:"exit_price"`
	Shares       int           `json:"shares"`
	PnL          float64       `json:"pnl"`
	PnLPct       float64       `json:"pnl_pct"`
	EntryTime    time.Time     `json:"entry_time"`
	ExitTime     time.Time     `json:"exit_time"`
	HoldDuration time.Duration `json:"hold_duration"`
}
