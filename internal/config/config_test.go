package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Symbols.Leveraged != "AGQ" || cfg.Symbols.Conservative != "SLV" {
		t.Errorf("unexpected default symbols: %+v", cfg.Symbols)
	}
	if cfg.Symbols.Reference != cfg.Symbols.Conservative {
		t.Error("reference should default to the conservative symbol")
	}
	if cfg.Thresholds.EntryMin != 0.02 || cfg.Thresholds.EntryLeveraged != 0.04 {
		t.Errorf("unexpected entry thresholds: %+v", cfg.Thresholds)
	}
	if cfg.Thresholds.TargetGain != 0.05 {
		t.Errorf("target gain default: %v", cfg.Thresholds.TargetGain)
	}
	if cfg.Thresholds.StopLossConservative != 0.05 || cfg.Thresholds.StopLossLeveraged != 0.07 {
		t.Errorf("stop loss defaults: %+v", cfg.Thresholds)
	}
	if cfg.Thresholds.MaxHoldDays != 2 {
		t.Errorf("max hold days default: %d", cfg.Thresholds.MaxHoldDays)
	}
	if cfg.Filters.RSIPeriod != 14 || cfg.Filters.LookbackDays != 60 {
		t.Errorf("filter defaults: %+v", cfg.Filters)
	}
	if cfg.Filters.PSARAFStart != 0.02 || cfg.Filters.PSARAFIncrement != 0.02 || cfg.Filters.PSARAFMax != 0.20 {
		t.Errorf("psar defaults: %+v", cfg.Filters)
	}
	if cfg.Schedule.WatchInterval != time.Minute {
		t.Errorf("watch interval default: %v", cfg.Schedule.WatchInterval)
	}
	if cfg.Paper.Capital != 1000 || cfg.Paper.PositionSizePct != 1.0 {
		t.Errorf("paper defaults: %+v", cfg.Paper)
	}
}

func TestLoad_FileAndEnvOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	body := `
asset_name: Gold
symbols:
  leveraged: UGL
  conservative: GLD
thresholds:
  entry_min: 0.015
data_source:
  api_key: from-file
`
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("TWELVE_DATA_API_KEY", "from-env")
	t.Setenv("WATCH_INTERVAL", "30s")

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.AssetName != "Gold" || cfg.Symbols.Leveraged != "UGL" {
		t.Errorf("yaml values not applied: %+v", cfg.Symbols)
	}
	if cfg.Symbols.Reference != "GLD" {
		t.Errorf("reference should follow the conservative symbol, got %s", cfg.Symbols.Reference)
	}
	if cfg.Thresholds.EntryMin != 0.015 {
		t.Errorf("yaml threshold not applied: %v", cfg.Thresholds.EntryMin)
	}
	if cfg.DataSource.APIKey != "from-env" {
		t.Errorf("env should override file, got %s", cfg.DataSource.APIKey)
	}
	if cfg.Schedule.WatchInterval != 30*time.Second {
		t.Errorf("env watch interval not applied: %v", cfg.Schedule.WatchInterval)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("expected valid config, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		cfg := &Config{}
		cfg.applyDefaults()
		cfg.DataSource.APIKey = "key"
		return cfg
	}

	if err := base().Validate(); err != nil {
		t.Errorf("default config with an API key should validate, got %v", err)
	}

	cfg := base()
	cfg.DataSource.APIKey = ""
	if err := cfg.Validate(); err == nil {
		t.Error("missing API key should fail validation")
	}

	cfg = base()
	cfg.Thresholds.EntryLeveraged = 0.01 // below entry_min
	if err := cfg.Validate(); err == nil {
		t.Error("inverted entry thresholds should fail validation")
	}

	cfg = base()
	cfg.Filters.LookbackDays = 10
	if err := cfg.Validate(); err == nil {
		t.Error("lookback shorter than the RSI window should fail validation")
	}

	cfg = base()
	cfg.Paper.PositionSizePct = 1.5
	if err := cfg.Validate(); err == nil {
		t.Error("position size above 100% should fail validation")
	}
}
