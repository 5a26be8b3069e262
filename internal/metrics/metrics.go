// Package metrics registers the Prometheus metrics for the analysis service
// and serves them alongside a /healthz endpoint.
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

// Metrics holds all Prometheus metrics for the advisor service.
type Metrics struct {
	AnalysesTotal    prometheus.Counter
	PredictionsTotal prometheus.Counter
	AnalyzeDur       prometheus.Histogram
	PredictDur       prometheus.Histogram

	// Cache effectiveness, labeled by pipeline ("analysis", "prediction").
	CacheHits    *prometheus.CounterVec
	CacheMisses  *prometheus.CounterVec
	CacheSkipped *prometheus.CounterVec

	// Feed ingest
	FeedBarsTotal  prometheus.Counter
	FeedReconnects prometheus.Counter
	FeedDropped    prometheus.Counter

	// Recorder
	RecordErrors prometheus.Counter
}

// New registers all advisor metrics on the default registry.
func New() *Metrics {
	return NewWithRegistry(prometheus.DefaultRegisterer)
}

// NewWithRegistry registers the metrics on reg. Tests pass a fresh registry
// to avoid duplicate-registration panics.
func NewWithRegistry(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		AnalysesTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "advisor_analyses_total",
			Help: "Total technical analyses computed",
		}),
		PredictionsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "advisor_predictions_total",
			Help: "Total heuristic predictions computed",
		}),
		AnalyzeDur: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "advisor_analyze_duration_seconds",
			Help:    "Time to compute one technical analysis",
			Buckets: prometheus.ExponentialBuckets(0.0001, 2, 12),
		}),
		PredictDur: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "advisor_predict_duration_seconds",
			Help:    "Time to compute one prediction",
			Buckets: prometheus.ExponentialBuckets(0.0001, 2, 12),
		}),
		CacheHits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "advisor_cache_hits_total",
			Help: "Result cache hits",
		}, []string{"pipeline"}),
		CacheMisses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "advisor_cache_misses_total",
			Help: "Result cache misses",
		}, []string{"pipeline"}),
		CacheSkipped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "advisor_cache_skipped_total",
			Help: "Results not cached due to low confidence",
		}, []string{"pipeline"}),
		FeedBarsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "advisor_feed_bars_total",
			Help: "Bars received from the quote feed",
		}),
		FeedReconnects: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "advisor_feed_reconnects_total",
			Help: "Quote feed reconnection attempts",
		}),
		FeedDropped: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "advisor_feed_dropped_total",
			Help: "Feed messages dropped (parse errors)",
		}),
		RecordErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "advisor_record_errors_total",
			Help: "Failed result recorder writes",
		}),
	}

	reg.MustRegister(
		m.AnalysesTotal, m.PredictionsTotal, m.AnalyzeDur, m.PredictDur,
		m.CacheHits, m.CacheMisses, m.CacheSkipped,
		m.FeedBarsTotal, m.FeedReconnects, m.FeedDropped, m.RecordErrors,
	)
	return m
}

// HealthStatus tracks component liveness for /healthz.
type HealthStatus struct {
	mu             sync.RWMutex
	feedConnected  bool
	redisConnected bool
	sqliteOK       bool
	lastBarTime    time.Time
	symbols        []string
}

// NewHealthStatus creates an empty health tracker.
func NewHealthStatus() *HealthStatus {
	return &HealthStatus{}
}

func (h *HealthStatus) SetFeedConnected(v bool) {
	h.mu.Lock()
	h.feedConnected = v
	h.mu.Unlock()
}

func (h *HealthStatus) SetRedisConnected(v bool) {
	h.mu.Lock()
	h.redisConnected = v
	h.mu.Unlock()
}

func (h *HealthStatus) SetSQLiteOK(v bool) {
	h.mu.Lock()
	h.sqliteOK = v
	h.mu.Unlock()
}

func (h *HealthStatus) SetLastBarTime(t time.Time) {
	h.mu.Lock()
	h.lastBarTime = t
	h.mu.Unlock()
}

func (h *HealthStatus) SetSymbols(symbols []string) {
	h.mu.Lock()
	h.symbols = symbols
	h.mu.Unlock()
}

// ServeHTTP handles the /healthz endpoint.
func (h *HealthStatus) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	status := map[string]interface{}{
		"feed_connected":  h.feedConnected,
		"redis_connected": h.redisConnected,
		"sqlite_ok":       h.sqliteOK,
		"symbols":         h.symbols,
	}
	if !h.lastBarTime.IsZero() {
		status["last_bar_time"] = h.lastBarTime.UTC().Format(time.RFC3339)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(status)
}

// Server exposes /metrics and /healthz.
type Server struct {
	addr string
	srv  *http.Server
}

// NewServer creates a metrics and health server.
func NewServer(addr string, health *HealthStatus) *Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/healthz", health.ServeHTTP)

	return &Server{
		addr: addr,
		srv: &http.Server{
			Addr:    addr,
			Handler: mux,
		},
	}
}

// Start runs the server in a background goroutine.
func (s *Server) Start() {
	go func() {
		log.Printf("[metrics] serving /metrics and /healthz on %s", s.addr)
		if err := s.srv.ListenAndServe(); err != http.ErrServerClosed {
			log.Printf("[metrics] server error: %v", err)
		}
	}()
}

// Stop gracefully shuts the server down.
func (s *Server) Stop(ctx context.Context) {
	_ = s.srv.Shutdown(ctx)
}
