package entities

import (
	"context"
	"net/url"
)

const entityCloudProviders = "cloud-providers"

// CloudProvidersClient manages the admin cloud-provider catalog
type CloudProvidersClient struct {
	core *core
}

// List fetches cloud providers, degrading to an empty list on backend failure
func (c *CloudProvidersClient) List(ctx context.Context, query url.Values) ([]CloudProvider, error) {
	var providers []CloudProvider
	if err := c.core.get(ctx, entityCloudProviders, "", query, "/cloud-providers", &providers); err != nil {
		if !c.core.degradeList(entityCloudProviders, err) {
			return nil, err
		}
		return []CloudProvider{}, nil
	}
	return providers, nil
}

// Get fetches one cloud provider by ID
func (c *CloudProvidersClient) Get(ctx context.Context, id string) (*CloudProvider, error) {
	var provider CloudProvider
	if err := c.core.get(ctx, entityCloudProviders, id, nil, "/cloud-providers/"+id, &provider); err != nil {
		return nil, err
	}
	return &provider, nil
}

// Create creates a cloud provider
func (c *CloudProvidersClient) Create(ctx context.Context, req CreateCloudProviderRequest) (*CloudProvider, error) {
	var provider CloudProvider
	if err := c.core.create(ctx, entityCloudProviders, "/cloud-providers", req, &provider); err != nil {
		return nil, err
	}
	return &provider, nil
}

// Update applies a partial update to a cloud provider
func (c *CloudProvidersClient) Update(ctx context.Context, id string, req UpdateCloudProviderRequest) (*CloudProvider, error) {
	var provider CloudProvider
	if err := c.core.update(ctx, entityCloudProviders, id, "/cloud-providers/"+id, req, &provider); err != nil {
		return nil, err
	}
	return &provider, nil
}

// Delete removes a cloud provider
func (c *CloudProvidersClient) Delete(ctx context.Context, id string) error {
	return c.core.remove(ctx, entityCloudProviders, id, "/cloud-providers/"+id)
}
