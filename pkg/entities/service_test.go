package entities

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mwapio/console/pkg/apiclient"
)

func newTestService(t *testing.T, srv *httptest.Server, ready ReadyFunc) *Service {
	t.Helper()
	policy := apiclient.DefaultPolicy()
	policy.MaxAttempts = 1
	client, err := apiclient.NewClient(srv.URL, apiclient.StaticToken("tok"),
		apiclient.WithRetryPolicy(policy))
	require.NoError(t, err)
	cache := apiclient.NewCache(64, time.Minute, nil)
	return NewService(client, cache, ready)
}

func TestReadsGatedUntilReady(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	var ready atomic.Bool
	svc := newTestService(t, srv, ready.Load)

	_, err := svc.Tenants.List(context.Background(), nil)
	assert.ErrorIs(t, err, ErrNotReady)
	_, err = svc.Tenants.Get(context.Background(), "t1")
	assert.ErrorIs(t, err, ErrNotReady)
	assert.Equal(t, int32(0), calls.Load(), "no request may fire before readiness")

	ready.Store(true)
	_, err = svc.Tenants.List(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, int32(1), calls.Load())
}

func TestGetServesFromCache(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Write([]byte(`{"_id":"t1","name":"Acme"}`))
	}))
	defer srv.Close()

	svc := newTestService(t, srv, nil)

	first, err := svc.Tenants.Get(context.Background(), "t1")
	require.NoError(t, err)
	second, err := svc.Tenants.Get(context.Background(), "t1")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, int32(1), calls.Load(), "second read must hit the cache")
}

func TestUpdateInvalidatesListAndEntityCache(t *testing.T) {
	name := atomic.Value{}
	name.Store("Acme")
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPatch:
			var req UpdateTenantRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			name.Store(*req.Name)
			json.NewEncoder(w).Encode(Tenant{ID: "t1", Name: *req.Name})
		case strings.HasSuffix(r.URL.Path, "/tenants/t1"):
			json.NewEncoder(w).Encode(Tenant{ID: "t1", Name: name.Load().(string)})
		default:
			json.NewEncoder(w).Encode([]Tenant{{ID: "t1", Name: name.Load().(string)}})
		}
	}))
	defer srv.Close()

	svc := newTestService(t, srv, nil)
	ctx := context.Background()

	// Warm both the entity and the list cache entries.
	tenant, err := svc.Tenants.Get(ctx, "t1")
	require.NoError(t, err)
	assert.Equal(t, "Acme", tenant.Name)
	list, err := svc.Tenants.List(ctx, nil)
	require.NoError(t, err)
	require.Len(t, list, 1)

	newName := "Acme Corp"
	_, err = svc.Tenants.Update(ctx, "t1", UpdateTenantRequest{Name: &newName})
	require.NoError(t, err)

	tenant, err = svc.Tenants.Get(ctx, "t1")
	require.NoError(t, err)
	assert.Equal(t, "Acme Corp", tenant.Name, "entity cache must not serve the pre-update value")

	list, err = svc.Tenants.List(ctx, nil)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Acme Corp", list[0].Name, "list cache must not serve the pre-update value")
}

func TestListDegradesToEmptyOnBackendFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	svc := newTestService(t, srv, nil)

	tenants, err := svc.Tenants.List(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, tenants)

	projects, err := svc.Projects.List(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, projects)
}

func TestGetSurfacesBackendErrorVerbatim(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"message":"no such tenant"}`))
	}))
	defer srv.Close()

	svc := newTestService(t, srv, nil)

	_, err := svc.Tenants.Get(context.Background(), "ghost")
	require.Error(t, err)
	assert.True(t, apiclient.IsNotFound(err))
	assert.Contains(t, err.Error(), "no such tenant")
}

func TestMutationErrorDoesNotInvalidateCache(t *testing.T) {
	var gets atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPatch {
			w.WriteHeader(http.StatusConflict)
			w.Write([]byte(`{"message":"conflict"}`))
			return
		}
		gets.Add(1)
		w.Write([]byte(`{"_id":"t1","name":"Acme"}`))
	}))
	defer srv.Close()

	svc := newTestService(t, srv, nil)
	ctx := context.Background()

	_, err := svc.Tenants.Get(ctx, "t1")
	require.NoError(t, err)

	newName := "x"
	_, err = svc.Tenants.Update(ctx, "t1", UpdateTenantRequest{Name: &newName})
	require.Error(t, err)

	_, err = svc.Tenants.Get(ctx, "t1")
	require.NoError(t, err)
	assert.Equal(t, int32(1), gets.Load(), "failed mutation must leave the cache intact")
}

func TestIntegrationsScopedPerTenant(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/tenants/t1/integrations":
			json.NewEncoder(w).Encode([]CloudProviderIntegration{{ID: "i1", TenantID: "t1"}})
		case "/tenants/t2/integrations":
			json.NewEncoder(w).Encode([]CloudProviderIntegration{})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	svc := newTestService(t, srv, nil)

	got, err := svc.Integrations.List(context.Background(), "t1")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "i1", got[0].ID)

	got, err = svc.Integrations.List(context.Background(), "t2")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestFileUpload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/projects/p1/files", r.URL.Path)
		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"success": true,
			"data":    ProjectFile{ID: "f1", Name: header.Filename},
		})
	}))
	defer srv.Close()

	svc := newTestService(t, srv, nil)

	file, err := svc.Files.Upload(context.Background(), "p1", "report.pdf", strings.NewReader("content"))
	require.NoError(t, err)
	assert.Equal(t, "f1", file.ID)
	assert.Equal(t, "report.pdf", file.Name)
}

func TestMemberLifecycle(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost:
			json.NewEncoder(w).Encode(ProjectMember{UserID: "u1", Role: "MEMBER"})
		case http.MethodPatch:
			json.NewEncoder(w).Encode(ProjectMember{UserID: "u1", Role: "DEPUTY"})
		case http.MethodDelete:
			w.WriteHeader(http.StatusNoContent)
		default:
			json.NewEncoder(w).Encode([]ProjectMember{{UserID: "u1", Role: "MEMBER"}})
		}
	}))
	defer srv.Close()

	svc := newTestService(t, srv, nil)
	ctx := context.Background()

	member, err := svc.Members.Add(ctx, "p1", AddMemberRequest{UserID: "u1", Role: "MEMBER"})
	require.NoError(t, err)
	assert.Equal(t, "MEMBER", member.Role)

	member, err = svc.Members.UpdateRole(ctx, "p1", "u1", UpdateMemberRequest{Role: "DEPUTY"})
	require.NoError(t, err)
	assert.Equal(t, "DEPUTY", member.Role)

	require.NoError(t, svc.Members.Remove(ctx, "p1", "u1"))
}
