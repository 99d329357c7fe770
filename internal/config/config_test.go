package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.DataSource.Limit != 200 || cfg.DataSource.Interval != "1m" {
		t.Errorf("unexpected data source defaults %+v", cfg.DataSource)
	}
	if cfg.Indicators.RSIPeriod != 14 || cfg.Indicators.MAShort != 9 || cfg.Indicators.MALong != 21 {
		t.Errorf("unexpected indicator defaults %+v", cfg.Indicators)
	}
	if cfg.Indicators.Oversold != 30 || cfg.Indicators.Overbought != 70 {
		t.Errorf("unexpected thresholds %+v", cfg.Indicators)
	}
	if cfg.Schedule.RefreshCron != "@every 60s" {
		t.Errorf("unexpected refresh cron %q", cfg.Schedule.RefreshCron)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
	if cfg.TelegramEnabled() {
		t.Error("telegram should be disabled without credentials")
	}
}

func TestLoad_FileAndEnv(t *testing.T) {
	path := writeConfig(t, `
data_source:
  limit: 100
  symbols:
    SOL/USDT: SOLUSDT
assets: [SOL/USDT]
indicators:
  ma_short: 5
  ma_long: 20
`)
	t.Setenv("ASSETS", "BTC/USDT, ETH/USDT ,")
	t.Setenv("TELEGRAM_BOT_TOKEN", "tok")
	t.Setenv("TELEGRAM_CHAT_ID", "1")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.DataSource.Limit != 100 || cfg.Indicators.MAShort != 5 || cfg.Indicators.MALong != 20 {
		t.Errorf("file values not applied: %+v %+v", cfg.DataSource, cfg.Indicators)
	}
	if cfg.DataSource.Symbols["SOL/USDT"] != "SOLUSDT" {
		t.Errorf("symbol overrides not parsed: %v", cfg.DataSource.Symbols)
	}
	if strings.Join(cfg.Assets, ",") != "BTC/USDT,ETH/USDT" {
		t.Errorf("env assets not applied: %v", cfg.Assets)
	}
	if !cfg.TelegramEnabled() {
		t.Error("expected telegram enabled from env")
	}
}

func TestLoad_BadYAML(t *testing.T) {
	if _, err := Load(writeConfig(t, "assets: [unterminated")); err == nil {
		t.Error("expected parse error")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
		errSub string
	}{
		{"no assets", func(c *Config) { c.Assets = nil }, "assets"},
		{"limit too large", func(c *Config) { c.DataSource.Limit = 5000 }, "limit"},
		{"limit below history", func(c *Config) { c.DataSource.Limit = 15 }, "samples"},
		{"bad period", func(c *Config) { c.Indicators.RSIPeriod = -1 }, "positive"},
		{"bad thresholds", func(c *Config) { c.Indicators.Oversold = 80 }, "oversold"},
		{"malformed rate pair", func(c *Config) { c.Rates.Pairs = []string{"EUR/USD", "EURUSD"} }, "rates.pairs"},
		{"half telegram", func(c *Config) { c.Telegram.BotToken = "x" }, "telegram"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{}
			cfg.applyDefaults()
			tt.mutate(cfg)
			err := cfg.Validate()
			if err == nil || !strings.Contains(err.Error(), tt.errSub) {
				t.Errorf("expected error containing %q, got %v", tt.errSub, err)
			}
		})
	}
}
