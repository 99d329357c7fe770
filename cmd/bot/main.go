package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"SignalSentinel/internal/collector"
	"SignalSentinel/internal/config"
	"SignalSentinel/internal/metrics"
	"SignalSentinel/internal/notifier"
	"SignalSentinel/internal/scheduler"
	"SignalSentinel/internal/strategy"

	"github.com/prometheus/client_golang/prometheus"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("[INFO] SignalSentinel starting...")

	// Load config
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("[FATAL] load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[FATAL] config validation: %v", err)
	}

	// Init fetcher and engine
	fetcher := collector.NewBinanceFetcher(cfg.DataSource.BaseURL, cfg.DataSource.Interval, cfg.Proxy)
	log.Printf("[INFO] data source: %s (%s, %d klines)", fetcher.Name(), cfg.DataSource.Interval, cfg.DataSource.Limit)

	engine := strategy.NewEngine(strategy.Params{
		RSIPeriod:  cfg.Indicators.RSIPeriod,
		MAShort:    cfg.Indicators.MAShort,
		MALong:     cfg.Indicators.MALong,
		Oversold:   cfg.Indicators.Oversold,
		Overbought: cfg.Indicators.Overbought,
	})
	symbols := collector.DefaultSymbols().Merge(cfg.DataSource.Symbols)
	col := collector.NewCollector(fetcher, symbols, engine, cfg.DataSource.Limit)

	// Init notifier
	var n notifier.Notifier
	var tn *notifier.TelegramNotifier
	if cfg.TelegramEnabled() {
		tn = notifier.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Proxy)
		n = &notifier.RetryingNotifier{TelegramNotifier: tn, MaxRetries: 3}
	} else {
		log.Println("[WARN] telegram not configured, signals go to the log")
		n = notifier.NewLogNotifier()
	}

	// Context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Init scheduler
	sched := scheduler.NewScheduler(ctx, col, n, cfg.Assets)
	sched.Metrics = metrics.NewMetrics(prometheus.DefaultRegisterer)
	sched.Health = metrics.NewHealthStatus()
	sched.Rates = collector.NewRatesFetcher(cfg.Rates.URL, cfg.Proxy)
	sched.Ticker = scheduler.TickerConfig{Base: cfg.Rates.Base, Pairs: cfg.Rates.Pairs}
	if err := sched.RegisterAll(cfg.Schedule.RefreshCron, cfg.Schedule.TickerCron); err != nil {
		log.Fatalf("[FATAL] register cron tasks: %v", err)
	}
	sched.Start()
	defer sched.Stop()

	// Metrics server
	if cfg.Metrics.Addr != "" {
		ms := metrics.NewServer(cfg.Metrics.Addr, prometheus.DefaultGatherer, sched.Health)
		ms.Start()
		defer func() {
			shutdownCtx, done := context.WithTimeout(context.Background(), 5*time.Second)
			defer done()
			ms.Stop(shutdownCtx)
		}()
	}

	// Start Telegram polling
	if tn != nil {
		go tn.StartPolling(ctx, sched.HandleCommand)
		log.Println("[INFO] Telegram polling started")
	}

	// Optional: run immediately on start
	if os.Getenv("RUN_ON_START") == "true" {
		log.Println("[INFO] RUN_ON_START enabled, evaluating all assets now")
		go sched.RunAllNow()
	}

	log.Printf("[INFO] SignalSentinel is watching %d assets. Press Ctrl+C to stop.", len(cfg.Assets))

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("[INFO] shutdown signal received, stopping...")
	cancel()
	log.Println("[INFO] SignalSentinel stopped")
}
