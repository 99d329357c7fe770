package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"SignalSentinel/internal/ticker"
)

// maxKlineLimit is the largest page Binance serves per klines request.
const maxKlineLimit = 1000

// Config holds all application configuration.
type Config struct {
	Telegram struct {
		BotToken string `yaml:"bot_token"`
		ChatID   string `yaml:"chat_id"`
	} `yaml:"telegram"`
	DataSource struct {
		BaseURL  string            `yaml:"base_url"`
		Interval string            `yaml:"interval"`
		Limit    int               `yaml:"limit"`
		Symbols  map[string]string `yaml:"symbols"`
	} `yaml:"data_source"`
	Assets     []string `yaml:"assets"`
	Indicators struct {
		RSIPeriod  int     `yaml:"rsi_period"`
		MAShort    int     `yaml:"ma_short"`
		MALong     int     `yaml:"ma_long"`
		Oversold   float64 `yaml:"oversold"`
		Overbought float64 `yaml:"overbought"`
	} `yaml:"indicators"`
	Schedule struct {
		RefreshCron string `yaml:"refresh_cron"`
		TickerCron  string `yaml:"ticker_cron"`
	} `yaml:"schedule"`
	Rates struct {
		URL   string   `yaml:"url"`
		Base  string   `yaml:"base"`
		Pairs []string `yaml:"pairs"`
	} `yaml:"rates"`
	Metrics struct {
		Addr string `yaml:"addr"`
	} `yaml:"metrics"`
	Proxy string `yaml:"proxy"`
}

// Load reads an optional .env file and the YAML config, then applies environment variable overrides.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

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

	cfg.applyEnv()
	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		c.Telegram.BotToken = v
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		c.Telegram.ChatID = v
	}
	if v := os.Getenv("BINANCE_BASE_URL"); v != "" {
		c.DataSource.BaseURL = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		c.Proxy = v
	}
	if v := os.Getenv("REFRESH_CRON"); v != "" {
		c.Schedule.RefreshCron = v
	}
	if v := os.Getenv("METRICS_ADDR"); v != "" {
		c.Metrics.Addr = v
	}
	if v := os.Getenv("ASSETS"); v != "" {
		var assets []string
		for _, a := range strings.Split(v, ",") {
			if a = strings.TrimSpace(a); a != "" {
				assets = append(assets, a)
			}
		}
		c.Assets = assets
	}
}

func (c *Config) applyDefaults() {
	if c.DataSource.BaseURL == "" {
		c.DataSource.BaseURL = "https://api.binance.com"
	}
	if c.DataSource.Interval == "" {
		c.DataSource.Interval = "1m"
	}
	if c.DataSource.Limit == 0 {
		c.DataSource.Limit = 200
	}
	if len(c.Assets) == 0 {
		c.Assets = []string{"BTC/USDT", "ETH/USDT"}
	}
	if c.Indicators.RSIPeriod == 0 {
		c.Indicators.RSIPeriod = 14
	}
	if c.Indicators.MAShort == 0 {
		c.Indicators.MAShort = 9
	}
	if c.Indicators.MALong == 0 {
		c.Indicators.MALong = 21
	}
	if c.Indicators.Oversold == 0 && c.Indicators.Overbought == 0 {
		c.Indicators.Oversold = 30
		c.Indicators.Overbought = 70
	}
	if c.Schedule.RefreshCron == "" {
		c.Schedule.RefreshCron = "@every 60s"
	}
	if c.Schedule.TickerCron == "" {
		c.Schedule.TickerCron = "@every 5m"
	}
	if c.Rates.URL == "" {
		c.Rates.URL = "https://open.er-api.com/v6/latest/USD"
	}
	if c.Rates.Base == "" {
		c.Rates.Base = "USD"
	}
	if len(c.Rates.Pairs) == 0 {
		c.Rates.Pairs = []string{"EUR/USD", "GBP/USD", "AUD/USD", "USD/JPY", "EUR/GBP"}
	}
}

// TelegramEnabled reports whether both Telegram credentials are set.
func (c *Config) TelegramEnabled() bool {
	return c.Telegram.BotToken != "" && c.Telegram.ChatID != ""
}

// Validate checks that all fields are usable.
func (c *Config) Validate() error {
	if len(c.Assets) == 0 {
		return fmt.Errorf("assets must not be empty")
	}
	if c.DataSource.Limit < 1 || c.DataSource.Limit > maxKlineLimit {
		return fmt.Errorf("data_source.limit must be between 1 and %d", maxKlineLimit)
	}
	ind := c.Indicators
	if ind.RSIPeriod <= 0 || ind.MAShort <= 0 || ind.MALong <= 0 {
		return fmt.Errorf("indicator periods must be positive")
	}
	need := ind.RSIPeriod + 1
	if ind.MALong > need {
		need = ind.MALong
	}
	if ind.MAShort > need {
		need = ind.MAShort
	}
	if c.DataSource.Limit < need {
		return fmt.Errorf("data_source.limit %d is below the %d samples the indicators need", c.DataSource.Limit, need)
	}
	if ind.Oversold < 0 || ind.Overbought > 100 || ind.Oversold >= ind.Overbought {
		return fmt.Errorf("indicators require 0 <= oversold < overbought <= 100")
	}
	for _, p := range c.Rates.Pairs {
		if _, _, err := ticker.ParsePair(p); err != nil {
			return fmt.Errorf("rates.pairs: %w", err)
		}
	}
	if (c.Telegram.BotToken == "") != (c.Telegram.ChatID == "") {
		return fmt.Errorf("telegram.bot_token and telegram.chat_id must be set together")
	}
	return nil
}
