package observability

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds all Prometheus metrics for the console client
type Metrics struct {
	// API request metrics
	APIRequestsTotal   *prometheus.CounterVec
	APIRequestDuration *prometheus.HistogramVec
	APIRetriesTotal    *prometheus.CounterVec

	// Entity cache metrics
	CacheHitsTotal          *prometheus.CounterVec
	CacheMissesTotal        *prometheus.CounterVec
	CacheInvalidationsTotal *prometheus.CounterVec

	// Role resolver metrics
	RoleFetchesTotal *prometheus.CounterVec

	// Session metrics
	TokenRefreshesTotal *prometheus.CounterVec
	LoginsTotal         *prometheus.CounterVec
}

// NewMetrics creates and registers all client metrics
func NewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	m := &Metrics{
		APIRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "mwap_api_requests_total",
				Help: "Total API requests by method, path pattern, and status code",
			},
			[]string{"method", "path", "status"},
		),
		APIRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "mwap_api_request_duration_seconds",
				Help:    "API request latency by method and path pattern",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),
		APIRetriesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "mwap_api_retries_total",
				Help: "Total retried GET requests by path pattern",
			},
			[]string{"path"},
		),
		CacheHitsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "mwap_cache_hits_total",
				Help: "Entity cache hits by entity type",
			},
			[]string{"entity"},
		),
		CacheMissesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "mwap_cache_misses_total",
				Help: "Entity cache misses by entity type",
			},
			[]string{"entity"},
		),
		CacheInvalidationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "mwap_cache_invalidations_total",
				Help: "Entity cache invalidations by entity type",
			},
			[]string{"entity"},
		),
		RoleFetchesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "mwap_role_fetches_total",
				Help: "Role summary fetches by outcome (success, error, cancelled)",
			},
			[]string{"outcome"},
		),
		TokenRefreshesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "mwap_token_refreshes_total",
				Help: "Bearer token refreshes by outcome",
			},
			[]string{"outcome"},
		),
		LoginsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "mwap_logins_total",
				Help: "Login attempts by outcome",
			},
			[]string{"outcome"},
		),
	}

	reg.MustRegister(
		m.APIRequestsTotal,
		m.APIRequestDuration,
		m.APIRetriesTotal,
		m.CacheHitsTotal,
		m.CacheMissesTotal,
		m.CacheInvalidationsTotal,
		m.RoleFetchesTotal,
		m.TokenRefreshesTotal,
		m.LoginsTotal,
	)

	return m
}

// ObserveAPIRequest records an API request outcome
func (m *Metrics) ObserveAPIRequest(method, path string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	m.APIRequestsTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	m.APIRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// RecordRetry records a retried GET request
func (m *Metrics) RecordRetry(path string) {
	if m == nil {
		return
	}
	m.APIRetriesTotal.WithLabelValues(path).Inc()
}

// RecordCacheHit records an entity cache hit
func (m *Metrics) RecordCacheHit(entity string) {
	if m == nil {
		return
	}
	m.CacheHitsTotal.WithLabelValues(entity).Inc()
}

// RecordCacheMiss records an entity cache miss
func (m *Metrics) RecordCacheMiss(entity string) {
	if m == nil {
		return
	}
	m.CacheMissesTotal.WithLabelValues(entity).Inc()
}

// RecordCacheInvalidation records an entity cache invalidation
func (m *Metrics) RecordCacheInvalidation(entity string) {
	if m == nil {
		return
	}
	m.CacheInvalidationsTotal.WithLabelValues(entity).Inc()
}

// RecordRoleFetch records a role fetch outcome
func (m *Metrics) RecordRoleFetch(outcome string) {
	if m == nil {
		return
	}
	m.RoleFetchesTotal.WithLabelValues(outcome).Inc()
}

// RecordTokenRefresh records a token refresh outcome
func (m *Metrics) RecordTokenRefresh(outcome string) {
	if m == nil {
		return
	}
	m.TokenRefreshesTotal.WithLabelValues(outcome).Inc()
}

// RecordLogin records a login outcome
func (m *Metrics) RecordLogin(outcome string) {
	if m == nil {
		return
	}
	m.LoginsTotal.WithLabelValues(outcome).Inc()
}
