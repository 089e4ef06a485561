package entities

import (
	"context"
	"errors"
	"io"
	"net/url"

	"github.com/mwapio/console/pkg/apiclient"
	"github.com/mwapio/console/pkg/observability"
)

// ErrNotReady is returned by reads while the role resolver has not yet
// settled for the current session.
var ErrNotReady = errors.New("role resolution not ready")

// ReadyFunc reports whether authenticated reads may fire
type ReadyFunc func() bool

// Service bundles the per-entity client families over one API client
// and one shared cache.
type Service struct {
	Tenants      *TenantsClient
	Projects     *ProjectsClient
	ProjectTypes *ProjectTypesClient
	Providers    *CloudProvidersClient
	Integrations *IntegrationsClient
	Members      *MembersClient
	Files        *FilesClient

	core *core
}

// ServiceOption configures a Service
type ServiceOption func(*core)

// WithLogger sets the structured logger
func WithLogger(logger *observability.Logger) ServiceOption {
	return func(c *core) { c.logger = logger }
}

// NewService creates the entity client families. cache may be nil to
// disable caching; ready may be nil to disable the readiness gate.
func NewService(client *apiclient.Client, cache *apiclient.Cache, ready ReadyFunc, opts ...ServiceOption) *Service {
	if ready == nil {
		ready = func() bool { return true }
	}
	c := &core{
		client: client,
		cache:  cache,
		ready:  ready,
		logger: observability.NewLogger(observability.InfoLevel, nil),
	}
	for _, opt := range opts {
		opt(c)
	}
	return &Service{
		Tenants:      &TenantsClient{core: c},
		Projects:     &ProjectsClient{core: c},
		ProjectTypes: &ProjectTypesClient{core: c},
		Providers:    &CloudProvidersClient{core: c},
		Integrations: &IntegrationsClient{core: c},
		Members:      &MembersClient{core: c},
		Files:        &FilesClient{core: c},
		core:         c,
	}
}

// PurgeCache drops every cached entity, typically on session change
func (s *Service) PurgeCache() {
	s.core.cache.Purge()
}

// core carries the shared plumbing behind every client family
type core struct {
	client *apiclient.Client
	cache  *apiclient.Cache
	ready  ReadyFunc
	logger *observability.Logger
}

// get performs a readiness-gated, cached read. entity and id address
// the cache entry; path is the request path.
func (c *core) get(ctx context.Context, entity, id string, query url.Values, path string, dest interface{}) error {
	if !c.ready() {
		return ErrNotReady
	}

	key := apiclient.CacheKey(entity, id, query)
	if c.cache.Get(key, dest) {
		return nil
	}

	if err := c.client.Get(ctx, path, query, dest); err != nil {
		return err
	}
	c.cache.Put(key, dest)
	return nil
}

// degradeList reports whether a list-fetch error should collapse to an
// empty result. Readiness errors still propagate so callers can wait
// instead of rendering a misleading empty state.
func (c *core) degradeList(entity string, err error) bool {
	if err == nil || errors.Is(err, ErrNotReady) {
		return false
	}
	c.logger.WithField("entity", entity).WithError(err).Warn("list fetch failed, returning empty result")
	return true
}

// create POSTs body to path and invalidates the entity's list entries
func (c *core) create(ctx context.Context, entity, path string, body, dest interface{}) error {
	if err := c.client.Post(ctx, path, body, dest); err != nil {
		return err
	}
	c.cache.Invalidate(entity, "")
	return nil
}

// update PATCHes body to path and invalidates the entity's list entries
// and the entry for id.
func (c *core) update(ctx context.Context, entity, id, path string, body, dest interface{}) error {
	if err := c.client.Patch(ctx, path, body, dest); err != nil {
		return err
	}
	c.cache.Invalidate(entity, id)
	return nil
}

// remove DELETEs path and invalidates the entity's list entries and the
// entry for id.
func (c *core) remove(ctx context.Context, entity, id, path string) error {
	if err := c.client.Delete(ctx, path); err != nil {
		return err
	}
	c.cache.Invalidate(entity, id)
	return nil
}

// upload POSTs a multipart file and invalidates the entity's list entries
func (c *core) upload(ctx context.Context, entity, path, fieldName, fileName string, r io.Reader, dest interface{}) error {
	if err := c.client.Upload(ctx, path, fieldName, fileName, r, dest); err != nil {
		return err
	}
	c.cache.Invalidate(entity, "")
	return nil
}
