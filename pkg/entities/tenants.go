package entities

import (
	"context"
	"net/url"
)

const entityTenants = "tenants"

// TenantsClient manages tenant records
type TenantsClient struct {
	core *core
}

// List fetches tenants, degrading to an empty list on backend failure
func (t *TenantsClient) List(ctx context.Context, query url.Values) ([]Tenant, error) {
	var tenants []Tenant
	if err := t.core.get(ctx, entityTenants, "", query, "/tenants", &tenants); err != nil {
		if !t.core.degradeList(entityTenants, err) {
			return nil, err
		}
		return []Tenant{}, nil
	}
	return tenants, nil
}

// Get fetches one tenant by ID
func (t *TenantsClient) Get(ctx context.Context, id string) (*Tenant, error) {
	var tenant Tenant
	if err := t.core.get(ctx, entityTenants, id, nil, "/tenants/"+id, &tenant); err != nil {
		return nil, err
	}
	return &tenant, nil
}

// Create creates a tenant
func (t *TenantsClient) Create(ctx context.Context, req CreateTenantRequest) (*Tenant, error) {
	var tenant Tenant
	if err := t.core.create(ctx, entityTenants, "/tenants", req, &tenant); err != nil {
		return nil, err
	}
	return &tenant, nil
}

// Update applies a partial update to a tenant
func (t *TenantsClient) Update(ctx context.Context, id string, req UpdateTenantRequest) (*Tenant, error) {
	var tenant Tenant
	if err := t.core.update(ctx, entityTenants, id, "/tenants/"+id, req, &tenant); err != nil {
		return nil, err
	}
	return &tenant, nil
}

// Delete removes a tenant
func (t *TenantsClient) Delete(ctx context.Context, id string) error {
	return t.core.remove(ctx, entityTenants, id, "/tenants/"+id)
}
