package entities

import (
	"context"
	"net/url"
)

const entityProjects = "projects"

// ProjectsClient manages project records
type ProjectsClient struct {
	core *core
}

// List fetches projects, degrading to an empty list on backend failure.
// Pass query values like tenantId to scope the listing.
func (p *ProjectsClient) List(ctx context.Context, query url.Values) ([]Project, error) {
	var projects []Project
	if err := p.core.get(ctx, entityProjects, "", query, "/projects", &projects); err != nil {
		if !p.core.degradeList(entityProjects, err) {
			return nil, err
		}
		return []Project{}, nil
	}
	return projects, nil
}

// Get fetches one project by ID
func (p *ProjectsClient) Get(ctx context.Context, id string) (*Project, error) {
	var project Project
	if err := p.core.get(ctx, entityProjects, id, nil, "/projects/"+id, &project); err != nil {
		return nil, err
	}
	return &project, nil
}

// Create creates a project
func (p *ProjectsClient) Create(ctx context.Context, req CreateProjectRequest) (*Project, error) {
	var project Project
	if err := p.core.create(ctx, entityProjects, "/projects", req, &project); err != nil {
		return nil, err
	}
	return &project, nil
}

// Update applies a partial update to a project
func (p *ProjectsClient) Update(ctx context.Context, id string, req UpdateProjectRequest) (*Project, error) {
	var project Project
	if err := p.core.update(ctx, entityProjects, id, "/projects/"+id, req, &project); err != nil {
		return nil, err
	}
	return &project, nil
}

// Delete removes a project
func (p *ProjectsClient) Delete(ctx context.Context, id string) error {
	return p.core.remove(ctx, entityProjects, id, "/projects/"+id)
}
