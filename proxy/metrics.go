package proxy

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus metrics the proxy reports. A nil *Metrics is
// valid and disables instrumentation.
type Metrics struct {
	CacheHitsTotal      prometheus.Counter
	CacheMissesTotal    prometheus.Counter
	CacheBypassTotal    prometheus.Counter
	CollapsedCallsTotal prometheus.Counter
	BackendErrorsTotal  prometheus.Counter
}

// NewMetrics creates and registers the proxy metrics with the given registerer.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		CacheHitsTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "snowflake_proxy_cache_hits_total",
			Help: "Requests served from the result cache.",
		}),
		CacheMissesTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "snowflake_proxy_cache_misses_total",
			Help: "Cacheable requests that required a backend execution.",
		}),
		CacheBypassTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "snowflake_proxy_cache_bypass_total",
			Help: "Requests executed without caching (no TTL supplied).",
		}),
		CollapsedCallsTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "snowflake_proxy_collapsed_calls_total",
			Help: "Requests that shared another caller's in-flight execution.",
		}),
		BackendErrorsTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "snowflake_proxy_backend_errors_total",
			Help: "Backend executions that returned an error.",
		}),
	}
}

func (m *Metrics) hit() {
	if m != nil {
		m.CacheHitsTotal.Inc()
	}
}

func (m *Metrics) miss() {
	if m != nil {
		m.CacheMissesTotal.Inc()
	}
}

func (m *Metrics) bypass() {
	if m != nil {
		m.CacheBypassTotal.Inc()
	}
}

func (m *Metrics) collapsed() {
	if m != nil {
		m.CollapsedCallsTotal.Inc()
	}
}

func (m *Metrics) backendError() {
	if m != nil {
		m.BackendErrorsTotal.Inc()
	}
}
