package entities

import (
	"context"
)

// IntegrationsClient manages a tenant's cloud-provider integrations
type IntegrationsClient struct {
	core *core
}

// integrationsEntity scopes cache keys to one tenant's integrations
func integrationsEntity(tenantID string) string {
	return "tenants/" + tenantID + "/integrations"
}

// List fetches a tenant's integrations, degrading to an empty list on
// backend failure.
func (i *IntegrationsClient) List(ctx context.Context, tenantID string) ([]CloudProviderIntegration, error) {
	entity := integrationsEntity(tenantID)
	var integrations []CloudProviderIntegration
	if err := i.core.get(ctx, entity, "", nil, "/tenants/"+tenantID+"/integrations", &integrations); err != nil {
		if !i.core.degradeList(entity, err) {
			return nil, err
		}
		return []CloudProviderIntegration{}, nil
	}
	return integrations, nil
}

// Create connects the tenant to a cloud provider
func (i *IntegrationsClient) Create(ctx context.Context, tenantID string, req CreateIntegrationRequest) (*CloudProviderIntegration, error) {
	var integration CloudProviderIntegration
	if err := i.core.create(ctx, integrationsEntity(tenantID), "/tenants/"+tenantID+"/integrations", req, &integration); err != nil {
		return nil, err
	}
	return &integration, nil
}

// Delete disconnects an integration
func (i *IntegrationsClient) Delete(ctx context.Context, tenantID, integrationID string) error {
	return i.core.remove(ctx, integrationsEntity(tenantID), integrationID, "/tenants/"+tenantID+"/integrations/"+integrationID)
}
