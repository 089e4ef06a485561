package observability

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestNewMetricsRegisters(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)

	m.ObserveAPIRequest("GET", "/tenants", 200, 10*time.Millisecond)
	m.RecordCacheHit("tenants")
	m.RecordCacheMiss("tenants")
	m.RecordCacheInvalidation("tenants")
	m.RecordRoleFetch("success")
	m.RecordTokenRefresh("error")
	m.RecordRetry("/tenants")
	m.RecordLogin("success")

	if got := testutil.ToFloat64(m.APIRequestsTotal.WithLabelValues("GET", "/tenants", "200")); got != 1 {
		t.Errorf("expected 1 API request, got %v", got)
	}
	if got := testutil.ToFloat64(m.CacheHitsTotal.WithLabelValues("tenants")); got != 1 {
		t.Errorf("expected 1 cache hit, got %v", got)
	}
	if got := testutil.ToFloat64(m.RoleFetchesTotal.WithLabelValues("success")); got != 1 {
		t.Errorf("expected 1 role fetch, got %v", got)
	}
}

func TestMetricsNilSafe(t *testing.T) {
	var m *Metrics
	m.ObserveAPIRequest("GET", "/tenants", 200, time.Millisecond)
	m.RecordCacheHit("tenants")
	m.RecordCacheMiss("tenants")
	m.RecordCacheInvalidation("tenants")
	m.RecordRoleFetch("success")
	m.RecordTokenRefresh("success")
	m.RecordRetry("/tenants")
	m.RecordLogin("success")
}
