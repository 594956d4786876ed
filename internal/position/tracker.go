package position

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"DipSnap/internal/model"
)

// ErrNoPosition is returned when an exit is requested with nothing open.
var ErrNoPosition = errors.New("no open position")

// Tracker owns the single open position slot with concurrency safety and
// persists it across restarts. The decision engine never touches it; the
// orchestrator records fills here after acting on a signal.
type Tracker struct {
	mu       sync.Mutex
	current  *model.Position
	filePath string
}

// NewTracker creates a Tracker, restoring any persisted open position.
func NewTracker(filePath string) (*Tracker, error) {
	pos, err := LoadState(filePath)
	if err != nil {
		return nil, fmt.Errorf("load position state: %w", err)
	}
	return &Tracker{current: pos, filePath: filePath}, nil
}

// Current returns a copy of the open position, or nil.
func (t *Tracker) Current() *model.Position {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.current == nil {
		return nil
	}
	pos := *t.current
	return &pos
}

// RecordEntry opens a position. Only one may be open at a time.
func (t *Tracker) RecordEntry(symbol string, price float64, shares int, entryTime time.Time) (*model.Position, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.current != nil {
		return nil, fmt.Errorf("position already open in %s", t.current.Symbol)
	}
	if price <= 0 || shares <= 0 {
		return nil, fmt.Errorf("invalid entry: price=%.2f shares=%d", price, shares)
	}

	t.current = &model.Position{
		Symbol:     symbol,
		EntryPrice: price,
		EntryTime:  entryTime,
		Shares:     shares,
		CostBasis:  price * float64(shares),
	}
	if err := SaveState(t.filePath, t.current); err != nil {
		t.current = nil
		return nil, fmt.Errorf("save position state: %w", err)
	}
	pos := *t.current
	return &pos, nil
}

// RecordExit closes the open position at the given price and returns the
// trade summary.
func (t *Tracker) RecordExit(price float64, exitTime time.Time) (*model.TradeSummary, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.current == nil {
		return nil, ErrNoPosition
	}

	pos := t.current
	summary := &model.TradeSummary{
		Symbol:       pos.Symbol,
		EntryPrice:   pos.EntryPrice,
		ExitPrice:    price,
		Shares:       pos.Shares,
		PnL:          pos.PnL(price),
		PnLPct:       pos.PnLPct(price),
		EntryTime:    pos.EntryTime,
		ExitTime:     exitTime,
		HoldDuration: exitTime.Sub(pos.EntryTime),
	}

	t.current = nil
	if err := SaveState(t.filePath, nil); err != nil {
		t.current = pos
		return nil, fmt.Errorf("clear position state: %w", err)
	}
	return summary, nil
}
