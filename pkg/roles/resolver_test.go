package roles

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/mwapio/console/pkg/apiclient"
)

const summaryBody = `{
	"userId": "auth0|u1",
	"isSuperAdmin": false,
	"isTenantOwner": true,
	"tenantId": "t1",
	"projectRoles": [{"projectId": "p1", "role": "MEMBER"}]
}`

func newResolver(t *testing.T, srv *httptest.Server) *Resolver {
	t.Helper()
	policy := apiclient.DefaultPolicy()
	policy.MaxAttempts = 1
	client, err := apiclient.NewClient(srv.URL, apiclient.StaticToken("tok"), apiclient.WithRetryPolicy(policy))
	if err != nil {
		t.Fatalf("failed to create client: %v", err)
	}
	return NewResolver(client)
}

func TestResolveSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/users/me/roles" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Write([]byte(summaryBody))
	}))
	defer srv.Close()

	r := newResolver(t, srv)

	summary, err := r.Resolve(context.Background())
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if !summary.IsTenantOwner || summary.TenantID != "t1" {
		t.Errorf("unexpected summary: %+v", summary)
	}
	if !r.Ready() {
		t.Error("resolver must be ready after a successful resolve")
	}
	if r.State() != StateReady {
		t.Errorf("expected Ready state, got %s", r.State())
	}
}

func TestResolveEnvelopeShape(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":true,"data":` + summaryBody + `}`))
	}))
	defer srv.Close()

	r := newResolver(t, srv)
	summary, err := r.Resolve(context.Background())
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if summary.UserID != "auth0|u1" {
		t.Errorf("unexpected summary: %+v", summary)
	}
}

func TestResolveSingleFlight(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		time.Sleep(50 * time.Millisecond)
		w.Write([]byte(summaryBody))
	}))
	defer srv.Close()

	r := newResolver(t, srv)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := r.Resolve(context.Background()); err != nil {
				t.Errorf("Resolve failed: %v", err)
			}
		}()
	}
	wg.Wait()

	if got := calls.Load(); got != 1 {
		t.Errorf("expected exactly one network call, got %d", got)
	}
}

func TestResolveFailureDegradesToDefaults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	r := newResolver(t, srv)

	summary, err := r.Resolve(context.Background())
	if err == nil {
		t.Fatal("expected error from failed fetch")
	}
	if summary == nil {
		t.Fatal("failed resolve must still return the degraded summary")
	}
	if summary.IsSuperAdmin || summary.IsTenantOwner || len(summary.ProjectRoles) != 0 {
		t.Errorf("degraded summary must be all-false defaults: %+v", summary)
	}
	if r.Ready() {
		t.Error("resolver must not be ready after a failed fetch")
	}
	if r.State() != StateFailed {
		t.Errorf("expected Failed state, got %s", r.State())
	}
}

func TestResolveFailedDoesNotAutoRetry(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer srv.Close()

	r := newResolver(t, srv)

	if _, err := r.Resolve(context.Background()); err == nil {
		t.Fatal("expected error")
	}
	if _, err := r.Resolve(context.Background()); err == nil {
		t.Fatal("expected recorded error on repeat resolve")
	}
	if got := calls.Load(); got != 1 {
		t.Errorf("Failed state must not refetch, got %d calls", got)
	}
}

func TestRefreshRetriesAfterFailure(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Write([]byte(summaryBody))
	}))
	defer srv.Close()

	r := newResolver(t, srv)

	if _, err := r.Resolve(context.Background()); err == nil {
		t.Fatal("expected initial failure")
	}

	summary, err := r.Refresh(context.Background())
	if err != nil {
		t.Fatalf("Refresh failed: %v", err)
	}
	if summary.TenantID != "t1" {
		t.Errorf("unexpected summary after refresh: %+v", summary)
	}
	if got := calls.Load(); got != 2 {
		t.Errorf("expected 2 calls, got %d", got)
	}
}

func TestResetDiscardsInFlightFetch(t *testing.T) {
	arrived := make(chan struct{})
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		close(arrived)
		<-release
		w.Write([]byte(summaryBody))
	}))
	defer srv.Close()

	r := newResolver(t, srv)

	done := make(chan error, 1)
	go func() {
		_, err := r.Resolve(context.Background())
		done <- err
	}()

	<-arrived
	r.Reset()
	close(release)

	err := <-done
	if !errors.Is(err, ErrFetchDiscarded) {
		t.Fatalf("expected ErrFetchDiscarded, got %v", err)
	}

	// The stale resolution must not be applied to state.
	if r.State() != StateIdle {
		t.Errorf("expected Idle after reset, got %s", r.State())
	}
	if r.Summary() != nil {
		t.Error("stale summary must not be applied after reset")
	}
	if r.Ready() {
		t.Error("resolver must not be ready after reset")
	}
}

func TestResetThenResolveFetchesFreshSummary(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Write([]byte(summaryBody))
	}))
	defer srv.Close()

	r := newResolver(t, srv)

	if _, err := r.Resolve(context.Background()); err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	r.Reset()
	if r.Ready() {
		t.Fatal("reset must clear readiness")
	}
	if _, err := r.Resolve(context.Background()); err != nil {
		t.Fatalf("Resolve after reset failed: %v", err)
	}
	if got := calls.Load(); got != 2 {
		t.Errorf("expected a fresh fetch per session segment, got %d calls", got)
	}
}

func TestResolveWaiterCancellation(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
		w.Write([]byte(summaryBody))
	}))
	defer srv.Close()
	defer close(release)

	r := newResolver(t, srv)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := r.Resolve(ctx)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got %v", err)
	}
}
