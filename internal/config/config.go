package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	AssetName string `yaml:"asset_name"`
	Symbols   struct {
		Leveraged    string `yaml:"leveraged"`    // the 2x instrument we trade on big drops
		Conservative string `yaml:"conservative"` // the 1x instrument for smaller drops
		Reference    string `yaml:"reference"`    // the 1x instrument used for signals
	} `yaml:"symbols"`
	Thresholds struct {
		EntryMin             float64 `yaml:"entry_min"`
		EntryLeveraged       float64 `yaml:"entry_leveraged"`
		TargetGain           float64 `yaml:"target_gain"`
		StopLossConservative float64 `yaml:"stop_loss_conservative"`
		StopLossLeveraged    float64 `yaml:"stop_loss_leveraged"`
		MaxHoldDays          int     `yaml:"max_hold_days"`
	} `yaml:"thresholds"`
	Filters struct {
		RSIPeriod       int     `yaml:"rsi_period"`
		PSARAFStart     float64 `yaml:"psar_af_start"`
		PSARAFIncrement float64 `yaml:"psar_af_increment"`
		PSARAFMax       float64 `yaml:"psar_af_max"`
		LookbackDays    int     `yaml:"lookback_days"`
	} `yaml:"filters"`
	DataSource struct {
		APIKey string `yaml:"api_key"`
	} `yaml:"data_source"`
	Telegram struct {
		BotToken string `yaml:"bot_token"`
		ChatID   string `yaml:"chat_id"`
	} `yaml:"telegram"`
	Schedule struct {
		WatchInterval time.Duration `yaml:"watch_interval"`
		EntryScanCron string        `yaml:"entry_scan_cron"`
		ExitScanCron  string        `yaml:"exit_scan_cron"`
	} `yaml:"schedule"`
	Paper struct {
		Enabled         bool    `yaml:"enabled"`
		Capital         float64 `yaml:"capital"`
		PositionSizePct float64 `yaml:"position_size_pct"`
	} `yaml:"paper"`
	Position struct {
		StateFile string `yaml:"state_file"`
	} `yaml:"position"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Proxy string `yaml:"proxy"`
}

// Load reads config from a YAML file, then applies environment variable overrides.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("TWELVE_DATA_API_KEY"); v != "" {
		cfg.DataSource.APIKey = v
	}
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		cfg.Telegram.BotToken = v
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		cfg.Telegram.ChatID = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}
	if v := os.Getenv("WATCH_INTERVAL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.Schedule.WatchInterval = d
		}
	}
	if v := os.Getenv("PAPER_CAPITAL"); v != "" {
		var capital float64
		if _, err := fmt.Sscanf(v, "%f", &capital); err == nil {
			cfg.Paper.Capital = capital
		}
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}

	cfg.applyDefaults()
	return cfg, nil
}

// applyDefaults fills unset fields with the silver pair defaults.
func (c *Config) applyDefaults() {
	if c.AssetName == "" {
		c.AssetName = "Silver"
	}
	if c.Symbols.Leveraged == "" {
		c.Symbols.Leveraged = "AGQ"
	}
	if c.Symbols.Conservative == "" {
		c.Symbols.Conservative = "SLV"
	}
	if c.Symbols.Reference == "" {
		c.Symbols.Reference = c.Symbols.Conservative
	}
	if c.Thresholds.EntryMin == 0 {
		c.Thresholds.EntryMin = 0.02
	}
	if c.Thresholds.EntryLeveraged == 0 {
		c.Thresholds.EntryLeveraged = 0.04
	}
	if c.Thresholds.TargetGain == 0 {
		c.Thresholds.TargetGain = 0.05
	}
	if c.Thresholds.StopLossConservative == 0 {
		c.Thresholds.StopLossConservative = 0.05
	}
	if c.Thresholds.StopLossLeveraged == 0 {
		c.Thresholds.StopLossLeveraged = 0.07
	}
	if c.Thresholds.MaxHoldDays == 0 {
		c.Thresholds.MaxHoldDays = 2
	}
	if c.Filters.RSIPeriod == 0 {
		c.Filters.RSIPeriod = 14
	}
	if c.Filters.PSARAFStart == 0 {
		c.Filters.PSARAFStart = 0.02
	}
	if c.Filters.PSARAFIncrement == 0 {
		c.Filters.PSARAFIncrement = 0.02
	}
	if c.Filters.PSARAFMax == 0 {
		c.Filters.PSARAFMax = 0.20
	}
	if c.Filters.LookbackDays == 0 {
		c.Filters.LookbackDays = 60
	}
	if c.Schedule.WatchInterval == 0 {
		c.Schedule.WatchInterval = time.Minute
	}
	if c.Schedule.EntryScanCron == "" {
		// Post-market window, every 5 minutes 4-8 PM ET on weekdays
		c.Schedule.EntryScanCron = "0 */5 16-19 * * 1-5"
	}
	if c.Schedule.ExitScanCron == "" {
		// Midday exit window, every 5 minutes 11:30 AM-12:30 PM ET
		c.Schedule.ExitScanCron = "0 30-59/5 11 * * 1-5"
	}
	if c.Paper.Capital == 0 {
		c.Paper.Capital = 1000
	}
	if c.Paper.PositionSizePct == 0 {
		c.Paper.PositionSizePct = 1.0
	}
	if c.Position.StateFile == "" {
		c.Position.StateFile = "data/position.json"
	}
	if c.Database.SQLitePath == "" {
		c.Database.SQLitePath = "data/dipsnap.db"
	}
}

// Validate checks that all required fields are set and consistent.
func (c *Config) Validate() error {
	if c.DataSource.APIKey == "" {
		return fmt.Errorf("data_source.api_key is required (or set TWELVE_DATA_API_KEY)")
	}
	if c.Symbols.Leveraged == "" || c.Symbols.Conservative == "" || c.Symbols.Reference == "" {
		return fmt.Errorf("all three symbols must be set")
	}
	if c.Thresholds.EntryMin <= 0 || c.Thresholds.EntryLeveraged <= 0 {
		return fmt.Errorf("entry thresholds must be positive")
	}
	if c.Thresholds.EntryLeveraged < c.Thresholds.EntryMin {
		return fmt.Errorf("thresholds.entry_leveraged must be >= thresholds.entry_min")
	}
	if c.Thresholds.TargetGain <= 0 {
		return fmt.Errorf("thresholds.target_gain must be positive")
	}
	if c.Thresholds.MaxHoldDays <= 0 {
		return fmt.Errorf("thresholds.max_hold_days must be positive")
	}
	if c.Filters.RSIPeriod <= 0 {
		return fmt.Errorf("filters.rsi_period must be positive")
	}
	if c.Filters.LookbackDays < c.Filters.RSIPeriod+2 {
		return fmt.Errorf("filters.lookback_days too small for rsi_period %d", c.Filters.RSIPeriod)
	}
	if c.Paper.PositionSizePct <= 0 || c.Paper.PositionSizePct > 1 {
		return fmt.Errorf("paper.position_size_pct must be in (0, 1]")
	}
	return nil
}
