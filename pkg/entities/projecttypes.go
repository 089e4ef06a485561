package entities

import (
	"context"
	"net/url"
)

const entityProjectTypes = "project-types"

// ProjectTypesClient manages the admin project-type catalog
type ProjectTypesClient struct {
	core *core
}

// List fetches project types, degrading to an empty list on backend failure
func (p *ProjectTypesClient) List(ctx context.Context, query url.Values) ([]ProjectType, error) {
	var types []ProjectType
	if err := p.core.get(ctx, entityProjectTypes, "", query, "/project-types", &types); err != nil {
		if !p.core.degradeList(entityProjectTypes, err) {
			return nil, err
		}
		return []ProjectType{}, nil
	}
	return types, nil
}

// Get fetches one project type by ID
func (p *ProjectTypesClient) Get(ctx context.Context, id string) (*ProjectType, error) {
	var pt ProjectType
	if err := p.core.get(ctx, entityProjectTypes, id, nil, "/project-types/"+id, &pt); err != nil {
		return nil, err
	}
	return &pt, nil
}

// Create creates a project type
func (p *ProjectTypesClient) Create(ctx context.Context, req CreateProjectTypeRequest) (*ProjectType, error) {
	var pt ProjectType
	if err := p.core.create(ctx, entityProjectTypes, "/project-types", req, &pt); err != nil {
		return nil, err
	}
	return &pt, nil
}

// Update applies a partial update to a project type
func (p *ProjectTypesClient) Update(ctx context.Context, id string, req UpdateProjectTypeRequest) (*ProjectType, error) {
	var pt ProjectType
	if err := p.core.update(ctx, entityProjectTypes, id, "/project-types/"+id, req, &pt); err != nil {
		return nil, err
	}
	return &pt, nil
}

// Delete removes a project type
func (p *ProjectTypesClient) Delete(ctx context.Context, id string) error {
	return p.core.remove(ctx, entityProjectTypes, id, "/project-types/"+id)
}
