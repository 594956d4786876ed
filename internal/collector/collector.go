package collector

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"DipSnap/internal/calculator"
	"DipSnap/internal/model"
)

// MockFetcher returns controllable fixed data for development and testing.
type MockFetcher struct {
	Bars   map[string][]model.OHLCV
	Quotes map[string]*model.Quote
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchDailyBars(symbol string, days int) ([]model.OHLCV, error) {
	if bars, ok := m.Bars[symbol]; ok {
		if len(bars) > days {
			return bars[len(bars)-days:], nil
		}
		return bars, nil
	}
	return nil, fmt.Errorf("mock: no bars for %s", symbol)
}

func (m *MockFetcher) FetchQuote(symbol string) (*model.Quote, error) {
	if q, ok := m.Quotes[symbol]; ok {
		return q, nil
	}
	return nil, fmt.Errorf("mock: no quote for %s", symbol)
}

// Symbols is the instrument trio the collector works with.
type Symbols struct {
	Reference    string
	Conservative string
	Leveraged    string
}

// Collector orchestrates data fetching and filter computation. One call to
// Collect produces one atomic snapshot: every price and indicator value in
// it comes from the same fetch cycle.
type Collector struct {
	fetcher      Fetcher
	symbols      Symbols
	lookbackDays int
	rsiPeriod    int
	psar         calculator.PSARParams
	log          *zap.Logger
}

// NewCollector creates a new Collector.
func NewCollector(fetcher Fetcher, symbols Symbols, lookbackDays, rsiPeriod int, psar calculator.PSARParams, log *zap.Logger) *Collector {
	return &Collector{
		fetcher:      fetcher,
		symbols:      symbols,
		lookbackDays: lookbackDays,
		rsiPeriod:    rsiPeriod,
		psar:         psar,
		log:          log,
	}
}

// FilterData fetches the reference symbol's lookback window shaped for the
// PSAR filters.
func (c *Collector) FilterData() (model.FilterData, error) {
	bars, err := c.fetcher.FetchDailyBars(c.symbols.Reference, c.lookbackDays)
	if err != nil {
		return model.FilterData{}, fmt.Errorf("fetch filter bars for %s: %w", c.symbols.Reference, err)
	}
	data := model.FilterData{
		Symbol: c.symbols.Reference,
		Highs:  make([]float64, len(bars)),
		Lows:   make([]float64, len(bars)),
		Closes: make([]float64, len(bars)),
	}
	for i, b := range bars {
		data.Highs[i] = b.High
		data.Lows[i] = b.Low
		data.Closes[i] = b.Close
	}
	return data, nil
}

// Collect fetches the filter window plus live quotes and assembles a
// MarketSnapshot. Any fetch failure aborts the whole snapshot; the core
// never decides on partially refreshed data.
func (c *Collector) Collect() (*model.MarketSnapshot, error) {
	data, err := c.FilterData()
	if err != nil {
		return nil, err
	}
	filters := calculator.EvaluateFilters(data, c.rsiPeriod, c.psar)

	refQuote, err := c.fetcher.FetchQuote(c.symbols.Reference)
	if err != nil {
		return nil, fmt.Errorf("fetch quote for %s: %w", c.symbols.Reference, err)
	}
	levQuote, err := c.fetcher.FetchQuote(c.symbols.Leveraged)
	if err != nil {
		return nil, fmt.Errorf("fetch quote for %s: %w", c.symbols.Leveraged, err)
	}

	// The conservative instrument is usually the reference itself.
	consPrice := refQuote.LastPrice
	if c.symbols.Conservative != c.symbols.Reference {
		consQuote, err := c.fetcher.FetchQuote(c.symbols.Conservative)
		if err != nil {
			return nil, fmt.Errorf("fetch quote for %s: %w", c.symbols.Conservative, err)
		}
		consPrice = consQuote.LastPrice
	}

	snap := &model.MarketSnapshot{
		Timestamp:          refQuote.Timestamp,
		Filters:            filters,
		ReferenceSymbol:    c.symbols.Reference,
		ReferencePrice:     refQuote.LastPrice,
		ReferenceClose:     refQuote.RegularClose,
		DropPct:            DropPct(refQuote.LastPrice, refQuote.RegularClose),
		ConservativeSymbol: c.symbols.Conservative,
		ConservativePrice:  consPrice,
		LeveragedSymbol:    c.symbols.Leveraged,
		LeveragedPrice:     levQuote.LastPrice,
		IsExtendedHours:    refQuote.IsExtendedHours,
	}
	if snap.Timestamp.IsZero() {
		snap.Timestamp = time.Now()
	}

	c.log.Debug("snapshot collected",
		zap.String("source", c.fetcher.Name()),
		zap.Bool("master_switch", filters.MasterSwitchOn),
		zap.Float64("drop_pct", snap.DropPct),
		zap.Float64("reference_price", snap.ReferencePrice),
	)
	return snap, nil
}

// DropPct computes the fractional decline of the current price below the
// reference close. Positive means down; a non-positive close clamps to 0.
func DropPct(currentPrice, referenceClose float64) float64 {
	if referenceClose <= 0 {
		return 0
	}
	return (referenceClose - currentPrice) / referenceClose
}
