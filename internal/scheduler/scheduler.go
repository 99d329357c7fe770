package scheduler

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"SignalSentinel/internal/collector"
	"SignalSentinel/internal/metrics"
	"SignalSentinel/internal/model"
	"SignalSentinel/internal/notifier"
	"SignalSentinel/internal/ticker"

	"github.com/robfig/cron/v3"
	"github.com/shopspring/decimal"
)

// RatesSource provides base-relative currency rates for the ticker.
type RatesSource interface {
	FetchRates(ctx context.Context) (map[string]decimal.Decimal, string, error)
}

// TickerConfig describes which cross-rates the ticker renders.
type TickerConfig struct {
	Base  string
	Pairs []string
}

// specParser matches the seconds-enabled parser the cron instance uses.
var specParser = cron.NewParser(cron.Second | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)

// Scheduler runs scheduled and manual evaluations.
type Scheduler struct {
	Cron      *cron.Cron
	Collector *collector.Collector
	Notifier  notifier.Notifier
	Metrics   *metrics.Metrics
	Health    *metrics.HealthStatus
	Rates     RatesSource
	Ticker    TickerConfig
	Assets    []string
	Interval  time.Duration
	Ctx       context.Context

	refreshID cron.EntryID
	mu        sync.Mutex
	inflight  map[string]bool
	last      model.Ticker
}

// NewScheduler creates a new Scheduler. Metrics, Health and Rates may be set afterwards.
func NewScheduler(ctx context.Context, col *collector.Collector, n notifier.Notifier, assets []string) *Scheduler {
	return &Scheduler{
		Cron: cron.New(
			cron.WithSeconds(),
			cron.WithChain(cron.SkipIfStillRunning(cron.DefaultLogger)),
		),
		Collector: col,
		Notifier:  n,
		Assets:    assets,
		Ctx:       ctx,
		inflight:  make(map[string]bool),
	}
}

// RegisterAll registers the refresh task and, when a rates source is set, the ticker task.
func (s *Scheduler) RegisterAll(refreshSpec, tickerSpec string) error {
	sched, err := specParser.Parse(refreshSpec)
	if err != nil {
		return fmt.Errorf("parse refresh schedule: %w", err)
	}
	if s.Interval == 0 {
		s.Interval = scheduleInterval(sched)
	}
	s.refreshID = s.Cron.Schedule(sched, cron.FuncJob(s.refreshTask))

	if s.Rates != nil && tickerSpec != "" {
		if _, err := s.Cron.AddFunc(tickerSpec, s.tickerTask); err != nil {
			return fmt.Errorf("register ticker task: %w", err)
		}
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Println("[INFO] scheduler started")
}

// Stop stops the cron scheduler and waits for running jobs.
func (s *Scheduler) Stop() {
	<-s.Cron.Stop().Done()
	log.Println("[INFO] scheduler stopped")
}

// RunAllNow evaluates every asset immediately.
func (s *Scheduler) RunAllNow() {
	s.refreshTask()
}

// Trigger evaluates one asset and renders the result.
// It returns false without doing anything when that asset is already being evaluated.
func (s *Scheduler) Trigger(asset string, trigger model.TriggerType) bool {
	key, display := s.gateKey(asset)
	if !s.acquire(key) {
		log.Printf("[INFO] %s: %s trigger ignored, evaluation in flight for %s", display, trigger, key)
		if s.Metrics != nil {
			s.Metrics.SkippedTriggers.WithLabelValues(string(trigger)).Inc()
		}
		return false
	}
	defer s.release(key)

	start := time.Now()
	ev, err := s.Collector.Evaluate(s.Ctx, asset, trigger)
	if s.Metrics != nil {
		s.Metrics.EvaluationDur.Observe(time.Since(start).Seconds())
	}
	if err != nil {
		log.Printf("[ERROR] evaluate %s: %v", display, err)
		s.observeError(err)
		s.trySend(notifier.FormatError(display, err))
		return true
	}

	log.Printf("[INFO] %s (%s): %s, %s", ev.Asset, ev.Symbol, ev.Decision.Kind, ev.Decision.Reason)
	s.observeEvaluation(ev)
	s.trySend(notifier.FormatEvaluation(ev, s.nextIn()))
	return true
}

// scheduleInterval estimates the gap between two runs of sched.
func scheduleInterval(sched cron.Schedule) time.Duration {
	if every, ok := sched.(cron.ConstantDelaySchedule); ok {
		return every.Delay
	}
	first := sched.Next(time.Now())
	return sched.Next(first).Sub(first)
}

// nextIn returns the time until the next scheduled refresh, falling back to the configured interval.
func (s *Scheduler) nextIn() time.Duration {
	if s.refreshID != 0 {
		if next := s.Cron.Entry(s.refreshID).Next; !next.IsZero() {
			if d := time.Until(next); d > 0 {
				return d
			}
		}
	}
	return s.Interval
}

func (s *Scheduler) refreshTask() {
	log.Printf("[INFO] refreshing %d assets", len(s.Assets))
	var wg sync.WaitGroup
	for _, a := range s.Assets {
		wg.Add(1)
		go func(asset string) {
			defer wg.Done()
			s.Trigger(asset, model.TriggerScheduled)
		}(a)
	}
	wg.Wait()
}

func (s *Scheduler) tickerTask() {
	if _, err := s.RefreshTicker(); err != nil {
		log.Printf("[ERROR] ticker refresh: %v", err)
		s.observeError(err)
		return
	}
	s.trySend(notifier.FormatTicker(s.LastTicker()))
}

// RefreshTicker fetches rates and recomputes the cross-rate ticker.
func (s *Scheduler) RefreshTicker() (model.Ticker, error) {
	if s.Rates == nil {
		return model.Ticker{}, errors.New("no rates source configured")
	}
	rates, base, err := s.Rates.FetchRates(s.Ctx)
	if err != nil {
		return model.Ticker{}, err
	}
	if s.Ticker.Base != "" {
		base = s.Ticker.Base
	}
	tk, err := ticker.CrossRates(base, rates, s.Ticker.Pairs)
	if err != nil {
		return model.Ticker{}, err
	}
	s.mu.Lock()
	s.last = tk
	s.mu.Unlock()
	if s.Metrics != nil {
		s.Metrics.TickerRefreshes.Inc()
	}
	return tk, nil
}

// LastTicker returns the most recently computed ticker.
func (s *Scheduler) LastTicker() model.Ticker {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.last
}

// HandleCommand processes a user command and returns a reply.
func (s *Scheduler) HandleCommand(command string) string {
	cmd, arg, _ := strings.Cut(strings.TrimSpace(command), " ")
	arg = strings.TrimSpace(arg)
	switch cmd {
	case "/signal":
		if arg == "" {
			return notifier.FormatHelp()
		}
		if !s.Trigger(arg, model.TriggerManual) {
			return notifier.FormatBusy(assetKey(arg))
		}
		return ""
	case "/assets":
		return notifier.FormatAssets(s.Assets)
	case "/rates":
		tk, err := s.RefreshTicker()
		if err != nil {
			return notifier.FormatError("rates", err)
		}
		return notifier.FormatTicker(tk)
	default:
		return notifier.FormatHelp()
	}
}

func (s *Scheduler) acquire(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.inflight[key] {
		return false
	}
	s.inflight[key] = true
	return true
}

func (s *Scheduler) release(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.inflight, key)
}

func (s *Scheduler) observeEvaluation(ev *model.Evaluation) {
	if s.Health != nil {
		s.Health.MarkEvaluation(ev.EvaluatedAt)
	}
	if s.Metrics == nil {
		return
	}
	s.Metrics.EvaluationsTotal.WithLabelValues(string(ev.Decision.Kind)).Inc()
	if ev.Snapshot.RSI.Valid {
		s.Metrics.LastRSI.WithLabelValues(ev.Symbol).Set(ev.Snapshot.RSI.Value)
	}
}

func (s *Scheduler) observeError(err error) {
	if s.Health != nil {
		s.Health.MarkError(time.Now(), err)
	}
	if s.Metrics != nil {
		s.Metrics.FetchErrorsTotal.WithLabelValues(errorKind(err)).Inc()
	}
}

func errorKind(err error) string {
	switch {
	case errors.Is(err, collector.ErrSymbolUnmapped):
		return "symbol_unmapped"
	case errors.Is(err, collector.ErrDataUnavailable):
		return "data_unavailable"
	default:
		return "other"
	}
}

func (s *Scheduler) trySend(text string) {
	if err := s.Notifier.Send(s.Ctx, text); err != nil {
		log.Printf("[ERROR] send notification: %v", err)
	}
}

// gateKey returns the in-flight key for asset text and the pair to display.
// Mapped assets gate on the upstream symbol so aliases of one instrument share a gate;
// unmapped text gates on its normalized token.
func (s *Scheduler) gateKey(asset string) (key, display string) {
	display = assetKey(asset)
	if s.Collector == nil || s.Collector.Symbols == nil {
		return display, display
	}
	if _, symbol, err := s.Collector.Symbols.Resolve(asset); err == nil {
		return symbol, display
	}
	return display, display
}

// assetKey normalizes display text to its pair token, e.g. "btc/usdt 92%" -> "BTC/USDT".
func assetKey(asset string) string {
	fields := strings.Fields(asset)
	if len(fields) == 0 {
		return ""
	}
	return strings.ToUpper(fields[0])
}
