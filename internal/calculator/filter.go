package calculator

import (
	"math"

	"DipSnap/internal/model"
)

// PSARParams bundles the acceleration-factor settings for both filters.
type PSARParams struct {
	AFStart     float64
	AFIncrement float64
	AFMax       float64
}

// EvaluateFilters runs PSAR on price and PSAR on RSI over the same window
// and combines the latest point of each into a FilterStatus. Any filter
// with insufficient data reads as red, so the master switch fails safe
// toward no trading. An undefined current RSI falls back to a neutral 50.
func EvaluateFilters(data model.FilterData, rsiPeriod int, params PSARParams) model.FilterStatus {
	pricePSAR := CalculatePSAR(data.Highs, data.Lows, data.Closes, params.AFStart, params.AFIncrement, params.AFMax)
	rsiPSAR := CalculatePSAROnRSI(data.Closes, rsiPeriod, params.AFStart, params.AFIncrement, params.AFMax)

	status := model.FilterStatus{CurrentRSI: 50.0}

	if len(pricePSAR) > 0 {
		last := pricePSAR[len(pricePSAR)-1]
		status.PricePSARGreen = last.IsGreen
		status.PricePSARValue = last.Value
		status.PricePSARTrend = last.Trend
	}
	if len(rsiPSAR) > 0 {
		last := rsiPSAR[len(rsiPSAR)-1]
		status.RSIPSARGreen = last.IsGreen
		status.RSIPSARValue = last.Value
		status.RSIPSARTrend = last.Trend
	}

	rsi := CalculateRSI(data.Closes, rsiPeriod)
	if len(rsi) > 0 && !math.IsNaN(rsi[len(rsi)-1]) {
		status.CurrentRSI = rsi[len(rsi)-1]
	}
	if len(data.Closes) > 0 {
		status.CurrentPrice = data.Closes[len(data.Closes)-1]
	}

	status.MasterSwitchOn = status.PricePSARGreen && status.RSIPSARGreen
	return status
}
