package recorder

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"DipSnap/internal/model"
)

// SQLiteRecorder persists signal and trade history to a SQLite database.
type SQLiteRecorder struct {
	db  *sql.DB
	mu  sync.Mutex
	log *zap.Logger
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string, log *zap.Logger) (*SQLiteRecorder, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create db dir: %w", err)
		}
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL mode so external readers don't block the writer.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db, log: log}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Info("sqlite recorder opened", zap.String("path", dbPath))
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS signals (
			id                 INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp          INTEGER NOT NULL,
			signal_type        TEXT NOT NULL,
			symbol             TEXT,
			reference_symbol   TEXT,
			current_price      REAL,
			reference_close    REAL,
			drop_pct           REAL,
			filters_active     INTEGER,
			price_filter_green INTEGER,
			rsi_filter_green   INTEGER,
			current_rsi        REAL,
			pnl_pct            REAL,
			held_days          INTEGER,
			message            TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_signals_ts ON signals(timestamp)`,
		`CREATE INDEX IF NOT EXISTS idx_signals_type ON signals(signal_type)`,

		`CREATE TABLE IF NOT EXISTS trades (
			id            INTEGER PRIMARY KEY AUTOINCREMENT,
			symbol        TEXT NOT NULL,
			entry_price   REAL,
			exit_price    REAL,
			shares        INTEGER,
			pnl           REAL,
			pnl_pct       REAL,
			entry_time    INTEGER,
			exit_time     INTEGER,
			hold_seconds  INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS idx_trades_exit ON trades(exit_time)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func (r *SQLiteRecorder) RecordSignal(sig *model.Signal) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`INSERT INTO signals
		(timestamp, signal_type, symbol, reference_symbol, current_price,
		 reference_close, drop_pct, filters_active, price_filter_green,
		 rsi_filter_green, current_rsi, pnl_pct, held_days, message)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		sig.Timestamp.Unix(), string(sig.SignalType), sig.Symbol, sig.ReferenceSymbol,
		sig.CurrentPrice, sig.ReferenceClose, sig.DropPct,
		boolInt(sig.FiltersActive), boolInt(sig.PriceFilterGreen), boolInt(sig.RSIFilterGreen),
		sig.CurrentRSI, sig.PnlPct, sig.HeldDays, sig.Message,
	)
	return err
}

func (r *SQLiteRecorder) RecordTrade(trade *model.TradeSummary) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`INSERT INTO trades
		(symbol, entry_price, exit_price, shares, pnl, pnl_pct, entry_time, exit_time, hold_seconds)
		VALUES (?,?,?,?,?,?,?,?,?)`,
		trade.Symbol, trade.EntryPrice, trade.ExitPrice, trade.Shares,
		trade.PnL, trade.PnLPct,
		trade.EntryTime.Unix(), trade.ExitTime.Unix(),
		int64(trade.HoldDuration/time.Second),
	)
	return err
}

func (r *SQLiteRecorder) Close() error {
	r.log.Info("closing sqlite recorder")
	return r.db.Close()
}
