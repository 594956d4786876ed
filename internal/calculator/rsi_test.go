package calculator

import (
	"math"
	"testing"
)

func TestCalculateRSI_MonotonicUp(t *testing.T) {
	for _, n := range []int{15, 20, 40, 100} {
		closes := make([]float64, n)
		for i := range closes {
			closes[i] = 100 + float64(i)
		}
		rsi := CalculateRSI(closes, 14)
		if len(rsi) != n {
			t.Fatalf("n=%d: expected output length %d, got %d", n, n, len(rsi))
		}
		for i := 0; i < 14; i++ {
			if !math.IsNaN(rsi[i]) {
				t.Errorf("n=%d: index %d should be undefined, got %v", n, i, rsi[i])
			}
		}
		for i := 14; i < n; i++ {
			if rsi[i] != 100.0 {
				t.Errorf("n=%d: all-gain series should clamp to 100 at index %d, got %v", n, i, rsi[i])
			}
		}
	}
}

func TestCalculateRSI_MonotonicDown(t *testing.T) {
	closes := make([]float64, 30)
	for i := range closes {
		closes[i] = 200 - float64(i)
	}
	rsi := CalculateRSI(closes, 14)
	for i := 14; i < len(rsi); i++ {
		if rsi[i] != 0.0 {
			t.Errorf("all-loss series should give RSI 0 at index %d, got %v", i, rsi[i])
		}
	}
}

func TestCalculateRSI_Bounds(t *testing.T) {
	// Mixed gains and losses stay strictly inside [0, 100].
	closes := make([]float64, 60)
	price := 50.0
	for i := range closes {
		if i%3 == 0 {
			price -= 1.7
		} else {
			price += 1.1
		}
		closes[i] = price
	}
	rsi := CalculateRSI(closes, 14)
	for i := 14; i < len(rsi); i++ {
		if math.IsNaN(rsi[i]) {
			t.Fatalf("index %d unexpectedly undefined", i)
		}
		if rsi[i] < 0 || rsi[i] > 100 {
			t.Errorf("RSI out of range at %d: %v", i, rsi[i])
		}
	}
}

func TestCalculateRSI_InsufficientData(t *testing.T) {
	closes := []float64{1, 2, 3, 4, 5}
	rsi := CalculateRSI(closes, 14)
	if len(rsi) != len(closes) {
		t.Fatalf("expected length %d, got %d", len(closes), len(rsi))
	}
	for i, v := range rsi {
		if !math.IsNaN(v) {
			t.Errorf("index %d should be undefined for short input, got %v", i, v)
		}
	}
}

func TestCalculateRSI_WilderSeed(t *testing.T) {
	// 14 changes: one +14 gain, thirteen flat. avgGain = 1, avgLoss = 0 → 100.
	closes := make([]float64, 15)
	for i := range closes {
		closes[i] = 10
	}
	closes[1] = 24
	for i := 2; i < 15; i++ {
		closes[i] = 24
	}
	rsi := CalculateRSI(closes, 14)
	if rsi[14] != 100.0 {
		t.Errorf("zero-loss seed should clamp to 100, got %v", rsi[14])
	}
}
