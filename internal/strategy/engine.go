package strategy

import (
	"fmt"

	"DipSnap/internal/model"
)

// Params holds the decision thresholds and the instrument trio.
type Params struct {
	LeveragedSymbol      string
	ConservativeSymbol   string
	EntryMin             float64 // smallest drop that buys the conservative instrument
	EntryLeveraged       float64 // drop at which the leveraged instrument wins instead
	TargetGain           float64
	StopLossConservative float64
	StopLossLeveraged    float64
	MaxHoldDays          int
}

// Engine is the pure signal decision engine. It computes a Signal from a
// snapshot and an optional open position and performs no I/O; recording a
// fill is the position tracker's job, invoked separately by the caller.
type Engine struct {
	params Params
}

// NewEngine creates an Engine with the given parameters.
func NewEngine(params Params) *Engine {
	return &Engine{params: params}
}

// StopLossFor returns the stop distance for the held symbol. The leveraged
// instrument gets the wider stop.
func (e *Engine) StopLossFor(symbol string) float64 {
	if symbol == e.params.LeveragedSymbol {
		return e.params.StopLossLeveraged
	}
	return e.params.StopLossConservative
}

// entrySymbol picks which instrument a drop buys. Thresholds are checked
// leveraged-first so a drop exactly at the leveraged threshold buys the
// leveraged instrument, not the conservative one. Empty means no entry.
func (e *Engine) entrySymbol(dropPct float64) string {
	switch {
	case dropPct >= e.params.EntryLeveraged:
		return e.params.LeveragedSymbol
	case dropPct >= e.params.EntryMin:
		return e.params.ConservativeSymbol
	default:
		return ""
	}
}

// Evaluate produces the current trading signal. With an open position it
// checks exit conditions; otherwise entry conditions.
func (e *Engine) Evaluate(snap *model.MarketSnapshot, pos *model.Position) *model.Signal {
	if pos != nil {
		return e.evaluateExit(snap, pos)
	}
	return e.evaluateEntry(snap)
}

func (e *Engine) baseSignal(snap *model.MarketSnapshot, symbol string, price float64) *model.Signal {
	return &model.Signal{
		Timestamp:        snap.Timestamp,
		Symbol:           symbol,
		ReferenceSymbol:  snap.ReferenceSymbol,
		CurrentPrice:     price,
		ReferenceClose:   snap.ReferenceClose,
		DropPct:          snap.DropPct,
		FiltersActive:    snap.Filters.MasterSwitchOn,
		PriceFilterGreen: snap.Filters.PricePSARGreen,
		RSIFilterGreen:   snap.Filters.RSIPSARGreen,
		CurrentRSI:       snap.Filters.CurrentRSI,
	}
}

func color(green bool) string {
	if green {
		return "GREEN"
	}
	return "RED"
}

// evaluateEntry applies the master switch first, then the tiered drop
// thresholds. The filters dominate: with the switch off no drop size buys.
func (e *Engine) evaluateEntry(snap *model.MarketSnapshot) *model.Signal {
	entrySymbol := e.entrySymbol(snap.DropPct)

	price := snap.ConservativePrice
	if entrySymbol == e.params.LeveragedSymbol {
		price = snap.LeveragedPrice
	}

	displaySymbol := entrySymbol
	if displaySymbol == "" {
		displaySymbol = e.params.ConservativeSymbol
	}
	sig := e.baseSignal(snap, displaySymbol, price)

	if !snap.Filters.MasterSwitchOn {
		sig.SignalType = model.SignalFiltersOff
		sig.Message = fmt.Sprintf("Filters OFF - price PSAR %s, RSI PSAR %s. No trading.",
			color(snap.Filters.PricePSARGreen), color(snap.Filters.RSIPSARGreen))
		return sig
	}

	switch entrySymbol {
	case e.params.LeveragedSymbol:
		sig.SignalType = model.SignalBuy
		sig.Message = fmt.Sprintf("BUY %s (leveraged) - %s down %.2f%% (>=%.0f%%), buy @ $%.2f",
			entrySymbol, snap.ReferenceSymbol, snap.DropPct*100, e.params.EntryLeveraged*100, price)
	case e.params.ConservativeSymbol:
		sig.SignalType = model.SignalBuy
		sig.Message = fmt.Sprintf("BUY %s (1x) - %s down %.2f%% (%.0f-%.0f%%), buy @ $%.2f",
			entrySymbol, snap.ReferenceSymbol, snap.DropPct*100, e.params.EntryMin*100, e.params.EntryLeveraged*100, price)
	default:
		sig.SignalType = model.SignalNone
		sig.Message = fmt.Sprintf("No signal - %s only down %.2f%%, need %.0f%%+ for %s, %.0f%%+ for %s",
			snap.ReferenceSymbol, snap.DropPct*100,
			e.params.EntryMin*100, e.params.ConservativeSymbol,
			e.params.EntryLeveraged*100, e.params.LeveragedSymbol)
	}
	return sig
}

// evaluateExit checks exit conditions in fixed priority: target, stop,
// filters-off hint, time stop, hold. Target and stop use inclusive
// comparisons so a position exactly at the threshold closes.
func (e *Engine) evaluateExit(snap *model.MarketSnapshot, pos *model.Position) *model.Signal {
	price := snap.ConservativePrice
	if pos.Symbol == e.params.LeveragedSymbol {
		price = snap.LeveragedPrice
	}

	pnlPct := pos.PnLPct(price)
	heldDays := pos.HeldDays(snap.Timestamp)
	stopLoss := e.StopLossFor(pos.Symbol)

	sig := e.baseSignal(snap, pos.Symbol, price)
	sig.PnlPct = pnlPct
	sig.HeldDays = heldDays

	switch {
	case pnlPct >= e.params.TargetGain:
		sig.SignalType = model.SignalSellTarget
		sig.Message = fmt.Sprintf("TARGET HIT (+%.0f%%) - %s up %.2f%% from entry, sell @ $%.2f",
			e.params.TargetGain*100, pos.Symbol, pnlPct*100, price)
	case pnlPct <= -stopLoss:
		sig.SignalType = model.SignalSellStop
		sig.Message = fmt.Sprintf("STOP LOSS (%.0f%%) - %s down %.2f%% from entry, sell @ $%.2f",
			stopLoss*100, pos.Symbol, pnlPct*100, price)
	case !snap.Filters.MasterSwitchOn:
		sig.SignalType = model.SignalFiltersOff
		sig.Message = fmt.Sprintf("FILTERS TURNED OFF - consider exiting %s, current P&L %.2f%%",
			pos.Symbol, pnlPct*100)
	case heldDays >= e.params.MaxHoldDays:
		sig.SignalType = model.SignalSellTime
		sig.Message = fmt.Sprintf("TIME STOP - %s held %d days, current P&L %.2f%%",
			pos.Symbol, heldDays, pnlPct*100)
	default:
		sig.SignalType = model.SignalNone
		sig.Message = fmt.Sprintf("HOLDING %s - P&L %.2f%%, target +%.0f%%, stop -%.0f%%",
			pos.Symbol, pnlPct*100, e.params.TargetGain*100, stopLoss*100)
	}
	return sig
}
