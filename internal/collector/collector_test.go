package collector

import (
	"testing"
	"time"

	"go.uber.org/zap"

	"DipSnap/internal/calculator"
	"DipSnap/internal/model"
)

func risingBars(n int, base float64) []model.OHLCV {
	bars := make([]model.OHLCV, n)
	for i := 0; i < n; i++ {
		c := base + float64(i)*0.3
		bars[i] = model.OHLCV{
			Time:   time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, i),
			Open:   c - 0.1,
			High:   c + 0.2,
			Low:    c - 0.2,
			Close:  c,
			Volume: 1_000_000,
		}
	}
	return bars
}

func testCollector(fetcher Fetcher) *Collector {
	return NewCollector(
		fetcher,
		Symbols{Reference: "SLV", Conservative: "SLV", Leveraged: "AGQ"},
		60, 14,
		calculator.PSARParams{AFStart: 0.02, AFIncrement: 0.02, AFMax: 0.20},
		zap.NewNop(),
	)
}

func TestCollect_AtomicSnapshot(t *testing.T) {
	ts := time.Date(2025, 6, 2, 18, 30, 0, 0, time.UTC)
	mock := &MockFetcher{
		Bars: map[string][]model.OHLCV{"SLV": risingBars(60, 25)},
		Quotes: map[string]*model.Quote{
			"SLV": {Symbol: "SLV", LastPrice: 28.50, RegularClose: 30.00, Timestamp: ts, IsExtendedHours: true},
			"AGQ": {Symbol: "AGQ", LastPrice: 55.25, RegularClose: 60.00, Timestamp: ts},
		},
	}

	snap, err := testCollector(mock).Collect()
	if err != nil {
		t.Fatal(err)
	}
	if !snap.Filters.MasterSwitchOn {
		t.Error("rising window should turn the master switch on")
	}
	// 30 → 28.50 is a 5% drop, positive by convention.
	if snap.DropPct != 0.05 {
		t.Errorf("expected drop_pct 0.05, got %v", snap.DropPct)
	}
	if snap.ConservativePrice != 28.50 || snap.LeveragedPrice != 55.25 {
		t.Errorf("quote mix-up: cons=%v lev=%v", snap.ConservativePrice, snap.LeveragedPrice)
	}
	if snap.ConservativeSymbol != "SLV" || snap.LeveragedSymbol != "AGQ" {
		t.Errorf("symbols should ride along with their quotes: cons=%s lev=%s",
			snap.ConservativeSymbol, snap.LeveragedSymbol)
	}
	if !snap.Timestamp.Equal(ts) {
		t.Errorf("snapshot should carry the quote timestamp, got %v", snap.Timestamp)
	}
	if !snap.IsExtendedHours {
		t.Error("extended-hours flag should pass through")
	}
}

func TestCollect_FetchErrorAbortsCycle(t *testing.T) {
	mock := &MockFetcher{
		Bars: map[string][]model.OHLCV{"SLV": risingBars(60, 25)},
		Quotes: map[string]*model.Quote{
			"SLV": {Symbol: "SLV", LastPrice: 29, RegularClose: 30, Timestamp: time.Now()},
			// AGQ quote missing
		},
	}
	if _, err := testCollector(mock).Collect(); err == nil {
		t.Fatal("missing leveraged quote should abort the snapshot")
	}
}

func TestDropPct(t *testing.T) {
	tests := []struct {
		price, close, want float64
	}{
		{28.50, 30.00, 0.05},  // down 5%
		{31.50, 30.00, -0.05}, // rally shows negative drop
		{30.00, 30.00, 0},
		{25.00, 0, 0}, // zero close clamps instead of dividing
		{25.00, -1, 0},
	}
	for _, tt := range tests {
		if got := DropPct(tt.price, tt.close); got != tt.want {
			t.Errorf("DropPct(%v, %v) = %v, want %v", tt.price, tt.close, got, tt.want)
		}
	}
}
