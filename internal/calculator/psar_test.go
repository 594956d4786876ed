package calculator

import (
	"math"
	"testing"

	"DipSnap/internal/model"
)

func TestCalculatePSAR_UptrendStaysGreen(t *testing.T) {
	n := 20
	highs := make([]float64, n)
	lows := make([]float64, n)
	closes := make([]float64, n)
	for i := 0; i < n; i++ {
		c := 10 + float64(i)
		closes[i] = c
		highs[i] = c + 0.5
		lows[i] = c - 0.5
	}

	points := CalculatePSAR(highs, lows, closes, 0.02, 0.02, 0.20)
	if len(points) != n-1 {
		t.Fatalf("expected %d points, got %d", n-1, len(points))
	}
	for i, p := range points {
		if !p.IsGreen || p.Trend != model.TrendBullish {
			t.Errorf("point %d should be bullish in a steady uptrend, got %v", i, p.Trend)
		}
		if p.Value >= lows[i+1] {
			t.Errorf("point %d: SAR %.4f should trail below the bar low %.4f", i, p.Value, lows[i+1])
		}
	}
}

func TestCalculatePSAR_ReversalOnCross(t *testing.T) {
	highs := []float64{10.5, 11.5, 12.5, 13.5, 5.5}
	lows := []float64{9.5, 10.5, 11.5, 12.5, 4.5}
	closes := []float64{10, 11, 12, 13, 5}

	points := CalculatePSAR(highs, lows, closes, 0.02, 0.02, 0.20)
	if len(points) != 4 {
		t.Fatalf("expected 4 points, got %d", len(points))
	}
	for i := 0; i < 3; i++ {
		if !points[i].IsGreen {
			t.Errorf("point %d should still be bullish", i)
		}
	}
	last := points[3]
	if last.IsGreen || last.Trend != model.TrendBearish {
		t.Fatalf("crash bar should flip bearish, got %v", last.Trend)
	}
	// On reversal the SAR snaps to the prior extreme point (the trend high).
	if last.Value != 13.5 {
		t.Errorf("reversal SAR should equal the extreme point 13.5, got %.4f", last.Value)
	}
}

func TestCalculatePSAR_ClampAgainstPriorLows(t *testing.T) {
	// Rising trend with a deep early low keeps the SAR pinned for two bars.
	highs := []float64{10.5, 11.5, 12.5, 13.5}
	lows := []float64{9.5, 10.5, 11.5, 12.5}
	closes := []float64{10, 11, 12, 13}

	points := CalculatePSAR(highs, lows, closes, 0.02, 0.02, 0.20)
	// Bar 1: raw SAR 9.52 clamps to lows[0]=9.5. Bar 2 clamps to lows[0] again.
	if points[0].Value != 9.5 {
		t.Errorf("bar 1 SAR should clamp to 9.5, got %.4f", points[0].Value)
	}
	if points[1].Value != 9.5 {
		t.Errorf("bar 2 SAR should clamp to 9.5 via the two-bar lookback, got %.4f", points[1].Value)
	}
	if points[2].Value <= 9.5 {
		t.Errorf("bar 3 SAR should have lifted off the clamp, got %.4f", points[2].Value)
	}
}

func TestCalculatePSAR_SingleFlipOnly(t *testing.T) {
	// One v-shaped move produces exactly one bearish flip and one recovery flip.
	highs := []float64{10.5, 11.5, 12.5, 5.5, 5.6, 5.4, 14.5}
	lows := []float64{9.5, 10.5, 11.5, 4.5, 4.6, 4.4, 13.5}
	closes := []float64{10, 11, 12, 5, 5.1, 4.9, 14}

	points := CalculatePSAR(highs, lows, closes, 0.02, 0.02, 0.20)
	flips := 0
	for i := 1; i < len(points); i++ {
		if points[i].IsGreen != points[i-1].IsGreen {
			flips++
		}
	}
	if flips != 2 {
		t.Errorf("expected exactly 2 trend flips, got %d", flips)
	}
}

func TestCalculatePSAR_InsufficientData(t *testing.T) {
	if points := CalculatePSAR([]float64{10}, []float64{9}, []float64{9.5}, 0.02, 0.02, 0.20); points != nil {
		t.Errorf("single bar should yield no points, got %d", len(points))
	}
	if points := CalculatePSAR([]float64{10, 11}, []float64{9}, []float64{9.5, 10.5}, 0.02, 0.02, 0.20); points != nil {
		t.Errorf("mismatched lengths should yield no points")
	}
}

func TestCalculatePSAROnRSI_SyntheticBand(t *testing.T) {
	n := 40
	closes := make([]float64, n)
	for i := range closes {
		closes[i] = 20 + float64(i)*0.5
	}
	points := CalculatePSAROnRSI(closes, 14, 0.02, 0.02, 0.20)

	// 40 closes give 26 defined RSI values, hence 25 PSAR points.
	if len(points) != 25 {
		t.Fatalf("expected 25 points, got %d", len(points))
	}
	for i, p := range points {
		if !p.IsGreen {
			t.Errorf("point %d should be bullish for a rising RSI", i)
		}
		if math.IsNaN(p.Value) {
			t.Errorf("point %d has NaN value", i)
		}
	}
}

func TestCalculatePSAROnRSI_InsufficientData(t *testing.T) {
	closes := []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}
	if points := CalculatePSAROnRSI(closes, 14, 0.02, 0.02, 0.20); len(points) != 0 {
		t.Errorf("short input should yield no points, got %d", len(points))
	}
	// Exactly one defined RSI value is still not enough.
	closes15 := make([]float64, 15)
	for i := range closes15 {
		closes15[i] = float64(i + 1)
	}
	if points := CalculatePSAROnRSI(closes15, 14, 0.02, 0.02, 0.20); len(points) != 0 {
		t.Errorf("one valid RSI value should yield no points, got %d", len(points))
	}
}
