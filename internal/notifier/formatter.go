package notifier

import (
	"fmt"
	"strings"
	"time"

	"DipSnap/internal/model"
)

func onOff(on bool) string {
	if on {
		return "🟢 ON"
	}
	return "🔴 OFF"
}

func greenRed(green bool) string {
	if green {
		return "🟢 GREEN"
	}
	return "🔴 RED"
}

// FormatStatus formats the full evaluation status into a Telegram message.
func FormatStatus(assetName string, snap *model.MarketSnapshot, sig *model.Signal, pos *model.Position) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("📊 <b>DipSnap Status - %s</b> | %s\n\n", assetName, snap.Timestamp.Format("2006-01-02 15:04")))

	b.WriteString(fmt.Sprintf("Master Switch: %s\n", onOff(snap.Filters.MasterSwitchOn)))
	b.WriteString(fmt.Sprintf("  Price PSAR: %s\n", greenRed(snap.Filters.PricePSARGreen)))
	b.WriteString(fmt.Sprintf("  RSI PSAR:   %s\n", greenRed(snap.Filters.RSIPSARGreen)))
	b.WriteString(fmt.Sprintf("  Current RSI: %.1f\n\n", snap.Filters.CurrentRSI))

	b.WriteString(fmt.Sprintf("%s (reference):\n", snap.ReferenceSymbol))
	b.WriteString(fmt.Sprintf("  Current: $%.2f\n", snap.ReferencePrice))
	b.WriteString(fmt.Sprintf("  Close:   $%.2f\n", snap.ReferenceClose))
	arrow := "📉"
	if snap.DropPct < 0 {
		arrow = "📈"
	}
	b.WriteString(fmt.Sprintf("  Drop:    %s %.2f%%\n", arrow, snap.DropPct*100))
	if snap.IsExtendedHours {
		b.WriteString("  (extended hours)\n")
	}
	b.WriteString("\n")

	if pos != nil {
		b.WriteString(FormatPosition(pos, snap.PriceFor(pos.Symbol)))
		b.WriteString("\n")
	}

	b.WriteString(fmt.Sprintf("Signal: <b>%s</b>\n%s\n", sig.SignalType, sig.Message))
	return b.String()
}

// FormatFilters formats detailed filter status.
func FormatFilters(f model.FilterStatus) string {
	var b strings.Builder
	b.WriteString("🔍 <b>Filter Status</b>\n\n")
	b.WriteString(fmt.Sprintf("Master Switch: %s\n\n", onOff(f.MasterSwitchOn)))
	b.WriteString("PSAR on Price:\n")
	b.WriteString(fmt.Sprintf("  Status: %s\n", greenRed(f.PricePSARGreen)))
	b.WriteString(fmt.Sprintf("  Value: $%.2f (trend %s)\n\n", f.PricePSARValue, f.PricePSARTrend))
	b.WriteString("PSAR on RSI:\n")
	b.WriteString(fmt.Sprintf("  Status: %s\n", greenRed(f.RSIPSARGreen)))
	b.WriteString(fmt.Sprintf("  Value: %.2f (trend %s)\n", f.RSIPSARValue, f.RSIPSARTrend))
	b.WriteString(fmt.Sprintf("  Current RSI: %.1f\n", f.CurrentRSI))
	return b.String()
}

// FormatPosition formats the open position with live P&L.
func FormatPosition(pos *model.Position, currentPrice float64) string {
	var b strings.Builder
	b.WriteString("💼 <b>Position</b>\n")
	b.WriteString(fmt.Sprintf("  Symbol: %s\n", pos.Symbol))
	b.WriteString(fmt.Sprintf("  Entry: $%.2f × %d shares\n", pos.EntryPrice, pos.Shares))
	b.WriteString(fmt.Sprintf("  Opened: %s\n", pos.EntryTime.Format("2006-01-02 15:04")))
	if currentPrice > 0 {
		pnl := pos.PnL(currentPrice)
		icon := "🟢"
		if pnl < 0 {
			icon = "🔴"
		}
		b.WriteString(fmt.Sprintf("  P&L: %s $%.2f (%.2f%%)\n", icon, pnl, pos.PnLPct(currentPrice)*100))
	}
	return b.String()
}

// FormatSignalAlert formats a signal-change alert.
func FormatSignalAlert(sig *model.Signal) string {
	icon := "🔔"
	switch sig.SignalType {
	case model.SignalBuy:
		icon = "🟢"
	case model.SignalSellTarget:
		icon = "🎯"
	case model.SignalSellStop:
		icon = "🛑"
	case model.SignalSellTime:
		icon = "⏰"
	case model.SignalFiltersOff:
		icon = "⚠️"
	}
	return fmt.Sprintf("%s <b>%s</b> | %s\n\n%s", icon, sig.SignalType, sig.Symbol, sig.Message)
}

// FormatTrade formats a completed round trip.
func FormatTrade(trade *model.TradeSummary) string {
	icon := "🟢"
	if trade.PnL < 0 {
		icon = "🔴"
	}
	var b strings.Builder
	b.WriteString(fmt.Sprintf("%s <b>Trade Closed - %s</b>\n\n", icon, trade.Symbol))
	b.WriteString(fmt.Sprintf("Entry: $%.2f → Exit: $%.2f\n", trade.EntryPrice, trade.ExitPrice))
	b.WriteString(fmt.Sprintf("Shares: %d\n", trade.Shares))
	b.WriteString(fmt.Sprintf("P&L: $%.2f (%.2f%%)\n", trade.PnL, trade.PnLPct*100))
	b.WriteString(fmt.Sprintf("Held: %s\n", trade.HoldDuration.Round(time.Second)))
	return b.String()
}
