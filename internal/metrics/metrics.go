// Package metrics holds the Prometheus collectors exposed on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequests counts handled requests by method, route pattern and
	// status class.
	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "axiom_admin_http_requests_total",
		Help: "Total HTTP requests handled, by method, route and status.",
	}, []string{"method", "route", "status"})

	// ValidationFailures counts rejected create/update submissions by
	// resource type.
	ValidationFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "axiom_admin_validation_failures_total",
		Help: "Total payloads rejected by rule validation, by resource.",
	}, []string{"resource"})

	// BrowserCacheHits and BrowserCacheMisses track data-browser query
	// cache effectiveness.
	BrowserCacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "axiom_admin_browser_cache_hits_total",
		Help: "Total data browser queries served from cache.",
	})
	BrowserCacheMisses = promauto.NewCounter(prometheus.CounterOpts{
		Name: "axiom_admin_browser_cache_misses_total",
		Help: "Total data browser queries forwarded to the source.",
	})

	// PanicRecoveries counts requests that ended in a recovered panic.
	// These never reach the request logger, so the counter is the only
	// aggregate signal.
	PanicRecoveries = promauto.NewCounter(prometheus.CounterOpts{
		Name: "axiom_admin_panic_recoveries_total",
		Help: "Total handler panics recovered by the recovery middleware.",
	})

	// ConnectionTests counts source connection tests by outcome.
	ConnectionTests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "axiom_admin_connection_tests_total",
		Help: "Total source connection tests, by source type and outcome.",
	}, []string{"type", "outcome"})
)
