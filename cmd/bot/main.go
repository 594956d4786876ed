package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"DipSnap/internal/calculator"
	"DipSnap/internal/collector"
	"DipSnap/internal/config"
	"DipSnap/internal/logger"
	"DipSnap/internal/notifier"
	"DipSnap/internal/position"
	"DipSnap/internal/recorder"
	"DipSnap/internal/scheduler"
	"DipSnap/internal/strategy"
)

func main() {
	// .env is optional; real deployments use the environment directly.
	_ = godotenv.Load()

	logLevel := os.Getenv("LOG_LEVEL")
	if logLevel == "" {
		logLevel = "info"
	}
	logFormat := os.Getenv("LOG_FORMAT")
	if logFormat == "" {
		logFormat = "console"
	}
	log, err := logger.New(logLevel, logFormat)
	if err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	log.Info("DipSnap starting")

	// Load config
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatal("load config", zap.Error(err))
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal("config validation", zap.Error(err))
	}
	log.Info("configured",
		zap.String("asset", cfg.AssetName),
		zap.String("leveraged", cfg.Symbols.Leveraged),
		zap.String("conservative", cfg.Symbols.Conservative),
		zap.String("reference", cfg.Symbols.Reference),
		zap.Bool("paper", cfg.Paper.Enabled),
	)

	// Init fetcher and collector
	fetcher := collector.NewTwelveDataFetcher(cfg.DataSource.APIKey, cfg.Proxy)
	col := collector.NewCollector(
		fetcher,
		collector.Symbols{
			Reference:    cfg.Symbols.Reference,
			Conservative: cfg.Symbols.Conservative,
			Leveraged:    cfg.Symbols.Leveraged,
		},
		cfg.Filters.LookbackDays,
		cfg.Filters.RSIPeriod,
		calculator.PSARParams{
			AFStart:     cfg.Filters.PSARAFStart,
			AFIncrement: cfg.Filters.PSARAFIncrement,
			AFMax:       cfg.Filters.PSARAFMax,
		},
		log.Named("collector"),
	)

	// Init decision engine
	eng := strategy.NewEngine(strategy.Params{
		LeveragedSymbol:      cfg.Symbols.Leveraged,
		ConservativeSymbol:   cfg.Symbols.Conservative,
		EntryMin:             cfg.Thresholds.EntryMin,
		EntryLeveraged:       cfg.Thresholds.EntryLeveraged,
		TargetGain:           cfg.Thresholds.TargetGain,
		StopLossConservative: cfg.Thresholds.StopLossConservative,
		StopLossLeveraged:    cfg.Thresholds.StopLossLeveraged,
		MaxHoldDays:          cfg.Thresholds.MaxHoldDays,
	})

	// Init position tracker, restoring any persisted position
	tracker, err := position.NewTracker(cfg.Position.StateFile)
	if err != nil {
		log.Fatal("init position tracker", zap.Error(err))
	}
	if pos := tracker.Current(); pos != nil {
		log.Info("restored open position",
			zap.String("symbol", pos.Symbol),
			zap.Float64("entry_price", pos.EntryPrice),
			zap.Int("shares", pos.Shares),
		)
	}

	// Init Telegram notifier
	tn := notifier.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Proxy, log.Named("telegram"))

	// Init recorder
	var rec recorder.Recorder
	if cfg.Database.SQLitePath != "" {
		sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath, log.Named("recorder"))
		if err != nil {
			log.Warn("init sqlite recorder failed, using noop", zap.Error(err))
			rec = recorder.NewNoopRecorder()
		} else {
			rec = sr
			defer sr.Close()
		}
	} else {
		rec = recorder.NewNoopRecorder()
	}

	// Context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Init scheduler
	sched := scheduler.NewScheduler(ctx, col, eng, tracker, tn, rec, scheduler.PaperSettings{
		Enabled:         cfg.Paper.Enabled,
		Capital:         cfg.Paper.Capital,
		PositionSizePct: cfg.Paper.PositionSizePct,
	}, cfg.AssetName, log.Named("scheduler"))

	watchSpec := "@every " + cfg.Schedule.WatchInterval.String()
	if err := sched.Register(watchSpec, cfg.Schedule.EntryScanCron, cfg.Schedule.ExitScanCron); err != nil {
		log.Fatal("register cron tasks", zap.Error(err))
	}
	sched.Start()
	defer sched.Stop()

	// Start Telegram polling
	go tn.StartPolling(ctx, sched.HandleCommand)

	// Optional: run immediately on start
	if os.Getenv("RUN_ON_START") == "true" {
		log.Info("RUN_ON_START enabled, executing cycle now")
		go sched.RunNow()
	}

	log.Info("DipSnap is running, press Ctrl+C to stop")

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Info("shutdown signal received, stopping")
	cancel()
	log.Info("DipSnap stopped")
}
