package metrics

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics for the signal loop.
type Metrics struct {
	EvaluationsTotal *prometheus.CounterVec // labels: signal
	FetchErrorsTotal *prometheus.CounterVec // labels: kind
	SkippedTriggers  *prometheus.CounterVec // labels: trigger
	EvaluationDur    prometheus.Histogram
	LastRSI          *prometheus.GaugeVec // labels: symbol
	TickerRefreshes  prometheus.Counter
}

// NewMetrics creates all metrics and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		EvaluationsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "signal_evaluations_total",
			Help: "Completed evaluations by resulting signal",
		}, []string{"signal"}),
		FetchErrorsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "signal_fetch_errors_total",
			Help: "Failed evaluations by error kind",
		}, []string{"kind"}),
		SkippedTriggers: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "signal_skipped_triggers_total",
			Help: "Triggers ignored because an evaluation was already in flight",
		}, []string{"trigger"}),
		EvaluationDur: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "signal_evaluation_duration_seconds",
			Help:    "Wall time of one fetch-compute cycle",
			Buckets: prometheus.DefBuckets,
		}),
		LastRSI: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "signal_last_rsi",
			Help: "Most recent RSI per upstream symbol",
		}, []string{"symbol"}),
		TickerRefreshes: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "signal_ticker_refreshes_total",
			Help: "Successful currency ticker refreshes",
		}),
	}

	reg.MustRegister(
		m.EvaluationsTotal,
		m.FetchErrorsTotal,
		m.SkippedTriggers,
		m.EvaluationDur,
		m.LastRSI,
		m.TickerRefreshes,
	)
	return m
}

// HealthStatus tracks the last successful evaluation.
type HealthStatus struct {
	mu sync.RWMutex

	LastEvaluationAt time.Time `json:"last_evaluation_at"`
	LastErrorAt      time.Time `json:"last_error_at,omitempty"`
	LastError        string    `json:"last_error,omitempty"`
	StartedAt        time.Time `json:"started_at"`
}

func NewHealthStatus() *HealthStatus {
	return &HealthStatus{StartedAt: time.Now()}
}

func (h *HealthStatus) MarkEvaluation(t time.Time) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.LastEvaluationAt = t
}

func (h *HealthStatus) MarkError(t time.Time, err error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.LastErrorAt = t
	h.LastError = err.Error()
}

func (h *HealthStatus) ServeHTTP(w http.ResponseWriter, _ *http.Request) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(h)
}

// Server runs an HTTP server exposing /metrics and /healthz.
type Server struct {
	addr string
	srv  *http.Server
}

// NewServer creates a metrics and health server for the given gatherer.
func NewServer(addr string, gatherer prometheus.Gatherer, health *HealthStatus) *Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	mux.Handle("/healthz", health)

	return &Server{
		addr: addr,
		srv: &http.Server{
			Addr:              addr,
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		},
	}
}

// Handler returns the server's mux.
func (s *Server) Handler() http.Handler { return s.srv.Handler }

// Start launches the HTTP server in a goroutine.
func (s *Server) Start() {
	go func() {
		log.Printf("[INFO] metrics server listening on %s", s.addr)
		if err := s.srv.ListenAndServe(); err != http.ErrServerClosed {
			log.Printf("[ERROR] metrics server: %v", err)
		}
	}()
}

// Stop gracefully shuts down the metrics server.
func (s *Server) Stop(ctx context.Context) {
	s.srv.Shutdown(ctx)
}
