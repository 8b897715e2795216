package observability

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// PrometheusHooks implements every hook interface by updating Prometheus
// collectors.
type PrometheusHooks struct {
	runs         *prometheus.CounterVec
	items        *prometheus.CounterVec
	runDuration  *prometheus.HistogramVec
	cacheOps     *prometheus.CounterVec
	cacheBytes   *prometheus.CounterVec
	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec
}

// NewPrometheusHooks creates the collectors and registers them with reg.
// Registering twice on the same registry fails.
func NewPrometheusHooks(reg prometheus.Registerer) (*PrometheusHooks, error) {
	h := &PrometheusHooks{
		runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "funcstructs",
			Name:      "runs_total",
			Help:      "Enumeration and census runs by kind, operation and status.",
		}, []string{"kind", "op", "status"}),
		items: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "funcstructs",
			Name:      "items_total",
			Help:      "Objects produced by the successor functions.",
		}, []string{"kind"}),
		runDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "funcstructs",
			Name:      "run_duration_seconds",
			Help:      "Duration of enumeration and census runs.",
			Buckets:   prometheus.ExponentialBuckets(0.0005, 4, 10),
		}, []string{"kind", "op"}),
		cacheOps: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "funcstructs",
			Name:      "cache_operations_total",
			Help:      "Cache lookups and writes by key type and result.",
		}, []string{"key_type", "result"}),
		cacheBytes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "funcstructs",
			Name:      "cache_written_bytes_total",
			Help:      "Bytes written to the cache.",
		}, []string{"key_type"}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "funcstructs",
			Name:      "http_requests_total",
			Help:      "API requests by route and status code.",
		}, []string{"method", "route", "code"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "funcstructs",
			Name:      "http_request_duration_seconds",
			Help:      "API request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}

	for _, c := range []prometheus.Collector{
		h.runs, h.items, h.runDuration, h.cacheOps, h.cacheBytes, h.httpRequests, h.httpDuration,
	} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return h, nil
}

func status(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "canceled"
	default:
		return "error"
	}
}

// OnEnumerateStart implements EnumerationHooks.
func (h *PrometheusHooks) OnEnumerateStart(context.Context, string, int, int) {}

// OnEnumerateComplete implements EnumerationHooks.
func (h *PrometheusHooks) OnEnumerateComplete(_ context.Context, kind string, items int, d time.Duration, err error) {
	h.runs.WithLabelValues(kind, "enumerate", status(err)).Inc()
	h.items.WithLabelValues(kind).Add(float64(items))
	h.runDuration.WithLabelValues(kind, "enumerate").Observe(d.Seconds())
}

// OnCensusComplete implements EnumerationHooks.
func (h *PrometheusHooks) OnCensusComplete(_ context.Context, kind string, _ int, d time.Duration, err error) {
	h.runs.WithLabelValues(kind, "census", status(err)).Inc()
	h.runDuration.WithLabelValues(kind, "census").Observe(d.Seconds())
}

// OnCacheHit implements CacheHooks.
func (h *PrometheusHooks) OnCacheHit(_ context.Context, keyType string) {
	h.cacheOps.WithLabelValues(keyType, "hit").Inc()
}

// OnCacheMiss implements CacheHooks.
func (h *PrometheusHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.cacheOps.WithLabelValues(keyType, "miss").Inc()
}

// OnCacheSet implements CacheHooks.
func (h *PrometheusHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.cacheOps.WithLabelValues(keyType, "set").Inc()
	h.cacheBytes.WithLabelValues(keyType).Add(float64(size))
}

// OnRequest implements HTTPHooks.
func (h *PrometheusHooks) OnRequest(context.Context, string, string) {}

// OnResponse implements HTTPHooks.
func (h *PrometheusHooks) OnResponse(_ context.Context, method, route string, code int, d time.Duration) {
	h.httpRequests.WithLabelValues(method, route, strconv.Itoa(code)).Inc()
	h.httpDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

var (
	_ EnumerationHooks = (*PrometheusHooks)(nil)
	_ CacheHooks       = (*PrometheusHooks)(nil)
	_ HTTPHooks        = (*PrometheusHooks)(nil)
)
