package observability

import (
	"context"
	"io"
	"net/http"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/GORLEABHILASH/booklovers/internal/platform/logger"
)

type MetricsConfig struct {
	Enabled        bool          `yaml:"enabled" env:"METRICS_ENABLED" env-default:"false"`
	Addr           string        `yaml:"addr" env:"METRICS_ADDR"`
	ScrapeInterval time.Duration `yaml:"scrape_interval" env:"METRICS_SCRAPE_INTERVAL" env-default:"10s"`
}

type Metrics struct {
	apiRequests   *CounterVec
	apiLatency    *HistogramVec
	apiInflight   *Gauge
	storeOps      *CounterVec
	storeLatency  *HistogramVec
	lockAcquire   *CounterVec
	branchFailure *CounterVec
	redisUp       *Gauge
	redisPing     *Gauge
}

// NewMetrics returns nil when metrics are disabled; every method accepts a nil receiver.
func NewMetrics(cfg MetricsConfig) *Metrics {
	if !cfg.Enabled {
		return nil
	}
	return &Metrics{
		apiRequests: NewCounterVec("bl_api_requests_total", "Total API requests by method/route/status.", []string{"method", "route", "status"}),
		apiLatency: NewHistogramVec(
			"bl_api_request_duration_seconds",
			"API request latency in seconds by method/route/status.",
			[]string{"method", "route", "status"},
			[]float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2, 5},
		),
		apiInflight: NewGauge("bl_api_inflight_requests", "In-flight API requests."),
		storeOps:    NewCounterVec("bl_store_operations_total", "Graph store operations by op/status.", []string{"op", "status"}),
		storeLatency: NewHistogramVec(
			"bl_store_operation_duration_seconds",
			"Graph store operation latency by op.",
			[]string{"op"},
			nil,
		),
		lockAcquire:   NewCounterVec("bl_lock_acquire_total", "Per-key lock acquisitions by backend/outcome.", []string{"backend", "outcome"}),
		branchFailure: NewCounterVec("bl_aggregate_branch_failures_total", "Failed fan-out branches by page/branch.", []string{"page", "branch"}),
		redisUp:       NewGauge("bl_redis_up", "Redis reachability (1 up, 0 down)."),
		redisPing:     NewGauge("bl_redis_ping_seconds", "Last Redis ping latency."),
	}
}

func (m *Metrics) StartServer(ctx context.Context, log *logger.Logger, addr string) {
	if m == nil {
		return
	}
	addr = strings.TrimSpace(addr)
	if addr == "" {
		return
	}
	srv := &http.Server{
		Addr:              addr,
		Handler:           http.HandlerFunc(m.WriteHTTP),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		_ = srv.Shutdown(shutdownCtx)
		cancel()
	}()
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			if log != nil {
				log.Error("metrics server failed", "error", err, "addr", addr)
			}
		}
	}()
}

func (m *Metrics) WriteHTTP(w http.ResponseWriter, r *http.Request) {
	if m == nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		return
	}
	w.Header().Set("Content-Type", "text/plain; version=0.0.4")
	_ = m.WritePrometheus(w)
}

func (m *Metrics) WritePrometheus(w io.Writer) error {
	if m == nil {
		return nil
	}
	for _, c := range []interface{ WritePrometheus(io.Writer) error }{
		m.apiRequests, m.apiLatency, m.apiInflight,
		m.storeOps, m.storeLatency,
		m.lockAcquire, m.branchFailure,
		m.redisUp, m.redisPing,
	} {
		if err := c.WritePrometheus(w); err != nil {
			return err
		}
	}
	return nil
}

func (m *Metrics) ObserveAPI(method, route, status string, dur time.Duration) {
	if m == nil {
		return
	}
	if method == "" {
		method = "UNKNOWN"
	}
	if route == "" {
		route = "unknown"
	}
	if status == "" {
		status = "0"
	}
	m.apiRequests.Inc(method, route, status)
	m.apiLatency.Observe(dur.Seconds(), method, route, status)
}

func (m *Metrics) ApiInflightInc() {
	if m == nil {
		return
	}
	m.apiInflight.Inc()
}

func (m *Metrics) ApiInflightDec() {
	if m == nil {
		return
	}
	m.apiInflight.Dec()
}

func (m *Metrics) ObserveStore(op string, err error, dur time.Duration) {
	if m == nil {
		return
	}
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.storeOps.Inc(op, status)
	m.storeLatency.Observe(dur.Seconds(), op)
}

func (m *Metrics) IncLock(backend, outcome string) {
	if m == nil {
		return
	}
	m.lockAcquire.Inc(backend, outcome)
}

func (m *Metrics) IncBranchFailure(page, branch string) {
	if m == nil {
		return
	}
	m.branchFailure.Inc(page, branch)
}

// StartRedisCollector pings rdb on every interval until ctx is done.
func (m *Metrics) StartRedisCollector(ctx context.Context, log *logger.Logger, rdb goredis.UniversalClient, interval time.Duration) {
	if m == nil || rdb == nil {
		return
	}
	if interval <= 0 {
		interval = 10 * time.Second
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				start := time.Now()
				if err := rdb.Ping(ctx).Err(); err != nil {
					m.redisUp.Set(0)
					if log != nil {
						log.Warn("metrics: redis ping failed", "error", err)
					}
					continue
				}
				m.redisUp.Set(1)
				m.redisPing.Set(time.Since(start).Seconds())
			}
		}
	}()
}
