package calculator

import (
	"math"

	"DipSnap/internal/model"
)

// CalculatePSAR computes the Parabolic SAR over equal-length high/low/close
// series. Iteration starts at bar 1, so the result holds N-1 points; fewer
// than 2 bars yields an empty slice.
//
// Per bar the SAR is first clamped against the prior one or two bars'
// extremes, then checked for reversal. That ordering determines reversal
// timing and must not be rearranged.
func CalculatePSAR(highs, lows, closes []float64, afStart, afIncrement, afMax float64) []model.PSARPoint {
	n := len(closes)
	if n < 2 || len(highs) != n || len(lows) != n {
		return nil
	}

	trend := model.TrendBullish
	ep := highs[0] // extreme point
	psar := lows[0]
	af := afStart

	points := make([]model.PSARPoint, 0, n-1)
	for i := 1; i < n; i++ {
		prev := psar

		if trend == model.TrendBullish {
			psar = prev + af*(ep-prev)

			// SAR can't sit above the prior two lows.
			psar = math.Min(psar, lows[i-1])
			if i >= 2 {
				psar = math.Min(psar, lows[i-2])
			}

			if lows[i] < psar {
				trend = model.TrendBearish
				psar = ep
				ep = lows[i]
				af = afStart
			} else if highs[i] > ep {
				ep = highs[i]
				af = math.Min(af+afIncrement, afMax)
			}
		} else {
			psar = prev - af*(prev-ep)

			// SAR can't sit below the prior two highs.
			psar = math.Max(psar, highs[i-1])
			if i >= 2 {
				psar = math.Max(psar, highs[i-2])
			}

			if highs[i] > psar {
				trend = model.TrendBullish
				psar = ep
				ep = highs[i]
				af = afStart
			} else if lows[i] < ep {
				ep = lows[i]
				af = math.Min(af+afIncrement, afMax)
			}
		}

		points = append(points, model.PSARPoint{
			Value:   psar,
			Trend:   trend,
			IsGreen: trend == model.TrendBullish,
		})
	}
	return points
}

// CalculatePSAROnRSI applies PSAR to the RSI of the given closes, treating
// RSI as a price line. PSAR needs a high/low spread, so a fixed half-point
// band is synthesized around each RSI value. Fewer than 2 defined RSI
// values yields an empty slice, which downstream treats as red.
func CalculatePSAROnRSI(closes []float64, rsiPeriod int, afStart, afIncrement, afMax float64) []model.PSARPoint {
	rsi := CalculateRSI(closes, rsiPeriod)

	valid := make([]float64, 0, len(rsi))
	for _, v := range rsi {
		if !math.IsNaN(v) {
			valid = append(valid, v)
		}
	}
	if len(valid) < 2 {
		return nil
	}

	highs := make([]float64, len(valid))
	lows := make([]float64, len(valid))
	for i, v := range valid {
		highs[i] = v + 0.5
		lows[i] = v - 0.5
	}
	return CalculatePSAR(highs, lows, valid, afStart, afIncrement, afMax)
}
