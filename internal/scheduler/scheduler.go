package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"DipSnap/internal/collector"
	"DipSnap/internal/model"
	"DipSnap/internal/notifier"
	"DipSnap/internal/position"
	"DipSnap/internal/recorder"
	"DipSnap/internal/strategy"
)

// PaperSettings controls paper execution of generated signals.
type PaperSettings struct {
	Enabled         bool
	Capital         float64
	PositionSizePct float64
}

// Scheduler drives the evaluation cycles: the fixed-interval watch loop,
// the post-market entry scan and the midday exit scan. Cycles never
// overlap; a cycle that is still running causes the next trigger to be
// skipped.
type Scheduler struct {
	cron      *cron.Cron
	collector *collector.Collector
	engine    *strategy.Engine
	tracker   *position.Tracker
	notifier  *notifier.TelegramNotifier
	recorder  recorder.Recorder
	paper     PaperSettings
	assetName string
	ctx       context.Context
	log       *zap.Logger

	mu             sync.Mutex
	lastSignalType model.SignalType
	lastSnapshot   *model.MarketSnapshot
}

// NewScheduler creates a new Scheduler.
func NewScheduler(ctx context.Context, col *collector.Collector, eng *strategy.Engine, tr *position.Tracker,
	tn *notifier.TelegramNotifier, rec recorder.Recorder, paper PaperSettings, assetName string, log *zap.Logger) *Scheduler {
	return &Scheduler{
		cron: cron.New(
			cron.WithSeconds(),
			cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)),
		),
		collector: col,
		engine:    eng,
		tracker:   tr,
		notifier:  tn,
		recorder:  rec,
		paper:     paper,
		assetName: assetName,
		ctx:       ctx,
		log:       log,
	}
}

// Register adds the watch loop and the scan-window entries.
func (s *Scheduler) Register(watchSpec, entryScanCron, exitScanCron string) error {
	if watchSpec != "" {
		if _, err := s.cron.AddFunc(watchSpec, s.watchCycle); err != nil {
			return fmt.Errorf("register watch cycle: %w", err)
		}
	}
	if _, err := s.cron.AddFunc(entryScanCron, s.watchCycle); err != nil {
		return fmt.Errorf("register entry scan: %w", err)
	}
	if _, err := s.cron.AddFunc(exitScanCron, s.watchCycle); err != nil {
		return fmt.Errorf("register exit scan: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.cron.Start()
	s.log.Info("scheduler started")
}

// Stop stops the cron scheduler gracefully.
func (s *Scheduler) Stop() {
	s.cron.Stop()
	s.log.Info("scheduler stopped")
}

// RunNow executes one evaluation cycle immediately.
func (s *Scheduler) RunNow() {
	s.watchCycle()
}

// watchCycle runs one full evaluation: collect, decide, record, alert,
// paper-execute. Upstream data errors abort the cycle; the next trigger
// retries from scratch.
func (s *Scheduler) watchCycle() {
	if s.ctx.Err() != nil {
		return
	}

	snap, err := s.collector.Collect()
	if err != nil {
		s.log.Error("collect cycle failed", zap.Error(err))
		return
	}

	pos := s.tracker.Current()
	sig := s.engine.Evaluate(snap, pos)

	s.log.Info("signal evaluated",
		zap.String("signal_type", string(sig.SignalType)),
		zap.String("symbol", sig.Symbol),
		zap.Float64("drop_pct", sig.DropPct),
		zap.Bool("filters_active", sig.FiltersActive),
	)

	if err := s.recorder.RecordSignal(sig); err != nil {
		s.log.Error("record signal", zap.Error(err))
	}

	s.mu.Lock()
	changed := sig.SignalType != s.lastSignalType
	s.lastSignalType = sig.SignalType
	s.lastSnapshot = snap
	s.mu.Unlock()

	// Alert only on transitions into actionable states, not every cycle.
	if changed && sig.SignalType != model.SignalNone {
		s.trySend(notifier.FormatSignalAlert(sig))
	}

	if s.paper.Enabled {
		s.paperExecute(snap, sig, pos)
	}
}

// paperExecute acts on BUY/SELL signals by recording fills in the tracker.
// FILTERS_OFF while holding is a hint only and never closes the position.
func (s *Scheduler) paperExecute(snap *model.MarketSnapshot, sig *model.Signal, pos *model.Position) {
	switch {
	case sig.SignalType == model.SignalBuy && pos == nil:
		budget := s.paper.Capital * s.paper.PositionSizePct
		shares := int(budget / sig.CurrentPrice)
		if shares <= 0 {
			s.log.Warn("paper buy skipped, insufficient capital",
				zap.Float64("budget", budget),
				zap.Float64("price", sig.CurrentPrice),
			)
			return
		}
		opened, err := s.tracker.RecordEntry(sig.Symbol, sig.CurrentPrice, shares, snap.Timestamp)
		if err != nil {
			s.log.Error("paper entry", zap.Error(err))
			return
		}
		s.log.Info("paper position opened",
			zap.String("symbol", opened.Symbol),
			zap.Float64("price", opened.EntryPrice),
			zap.Int("shares", opened.Shares),
		)

	case sig.SignalType.IsSell() && pos != nil:
		trade, err := s.tracker.RecordExit(sig.CurrentPrice, snap.Timestamp)
		if err != nil {
			if !errors.Is(err, position.ErrNoPosition) {
				s.log.Error("paper exit", zap.Error(err))
			}
			return
		}
		if err := s.recorder.RecordTrade(trade); err != nil {
			s.log.Error("record trade", zap.Error(err))
		}
		s.log.Info("paper position closed",
			zap.String("symbol", trade.Symbol),
			zap.Float64("pnl", trade.PnL),
			zap.Float64("pnl_pct", trade.PnLPct),
		)
		s.trySend(notifier.FormatTrade(trade))
	}
}

// HandleCommand processes a user command and returns a reply.
func (s *Scheduler) HandleCommand(command string) string {
	switch command {
	case "/status":
		return s.statusReply()
	case "/filters":
		snap, err := s.collector.Collect()
		if err != nil {
			return fmt.Sprintf("❌ collect: %v", err)
		}
		return notifier.FormatFilters(snap.Filters)
	case "/position":
		pos := s.tracker.Current()
		if pos == nil {
			return "No open position"
		}
		s.mu.Lock()
		snap := s.lastSnapshot
		s.mu.Unlock()
		price := 0.0
		if snap != nil {
			price = snap.PriceFor(pos.Symbol)
		}
		return notifier.FormatPosition(pos, price)
	case "/check":
		s.watchCycle()
		return s.statusReply()
	default:
		return "Commands:\n• /status\n• /filters\n• /position\n• /check"
	}
}

func (s *Scheduler) statusReply() string {
	snap, err := s.collector.Collect()
	if err != nil {
		return fmt.Sprintf("❌ collect: %v", err)
	}
	pos := s.tracker.Current()
	sig := s.engine.Evaluate(snap, pos)
	return notifier.FormatStatus(s.assetName, snap, sig, pos)
}

func (s *Scheduler) trySend(text string) {
	if err := s.notifier.SendWithRetry(s.ctx, text, 3); err != nil {
		s.log.Error("send notification", zap.Error(err))
	}
}
