package entities

import "time"

// Tenant is a customer organization
type Tenant struct {
	ID        string    `json:"_id"`
	Name      string    `json:"name"`
	OwnerID   string    `json:"ownerId"`
	Archived  bool      `json:"archived"`
	CreatedAt time.Time `json:"createdAt,omitempty"`
	UpdatedAt time.Time `json:"updatedAt,omitempty"`
}

// CreateTenantRequest is the payload for tenant creation
type CreateTenantRequest struct {
	Name string `json:"name"`
}

// UpdateTenantRequest is the payload for tenant updates. Nil fields are
// omitted so the backend applies a partial update.
type UpdateTenantRequest struct {
	Name     *string `json:"name,omitempty"`
	Archived *bool   `json:"archived,omitempty"`
}

// Project is a unit of work inside a tenant
type Project struct {
	ID              string    `json:"_id"`
	Name            string    `json:"name"`
	TenantID        string    `json:"tenantId"`
	ProjectTypeID   string    `json:"projectTypeId"`
	CloudProviderID string    `json:"cloudProviderId"`
	Folder          string    `json:"folder,omitempty"`
	Archived        bool      `json:"archived"`
	CreatedAt       time.Time `json:"createdAt,omitempty"`
	UpdatedAt       time.Time `json:"updatedAt,omitempty"`
}

// CreateProjectRequest is the payload for project creation
type CreateProjectRequest struct {
	Name            string `json:"name"`
	TenantID        string `json:"tenantId"`
	ProjectTypeID   string `json:"projectTypeId"`
	CloudProviderID string `json:"cloudProviderId"`
	Folder          string `json:"folder,omitempty"`
}

// UpdateProjectRequest is the payload for project updates
type UpdateProjectRequest struct {
	Name     *string `json:"name,omitempty"`
	Folder   *string `json:"folder,omitempty"`
	Archived *bool   `json:"archived,omitempty"`
}

// ProjectType is an admin-managed template for projects
type ProjectType struct {
	ID          string    `json:"_id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Active      bool      `json:"active"`
	CreatedAt   time.Time `json:"createdAt,omitempty"`
	UpdatedAt   time.Time `json:"updatedAt,omitempty"`
}

// CreateProjectTypeRequest is the payload for project-type creation
type CreateProjectTypeRequest struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// UpdateProjectTypeRequest is the payload for project-type updates
type UpdateProjectTypeRequest struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	Active      *bool   `json:"active,omitempty"`
}

// CloudProvider is an admin-managed provider catalog entry
type CloudProvider struct {
	ID           string    `json:"_id"`
	Name         string    `json:"name"`
	Slug         string    `json:"slug"`
	AuthType     string    `json:"authType,omitempty"`
	TokenURL     string    `json:"tokenUrl,omitempty"`
	AuthorizeURL string    `json:"authorizeUrl,omitempty"`
	CreatedAt    time.Time `json:"createdAt,omitempty"`
	UpdatedAt    time.Time `json:"updatedAt,omitempty"`
}

// CreateCloudProviderRequest is the payload for provider creation
type CreateCloudProviderRequest struct {
	Name         string `json:"name"`
	Slug         string `json:"slug"`
	AuthType     string `json:"authType,omitempty"`
	TokenURL     string `json:"tokenUrl,omitempty"`
	AuthorizeURL string `json:"authorizeUrl,omitempty"`
}

// UpdateCloudProviderRequest is the payload for provider updates
type UpdateCloudProviderRequest struct {
	Name         *string `json:"name,omitempty"`
	AuthType     *string `json:"authType,omitempty"`
	TokenURL     *string `json:"tokenUrl,omitempty"`
	AuthorizeURL *string `json:"authorizeUrl,omitempty"`
}

// CloudProviderIntegration is a tenant's OAuth connection to a provider
type CloudProviderIntegration struct {
	ID              string    `json:"_id"`
	TenantID        string    `json:"tenantId"`
	CloudProviderID string    `json:"cloudProviderId"`
	Status          string    `json:"status"`
	ConnectedAt     time.Time `json:"connectedAt,omitempty"`
	CreatedAt       time.Time `json:"createdAt,omitempty"`
}

// CreateIntegrationRequest is the payload for connecting a tenant to a
// cloud provider.
type CreateIntegrationRequest struct {
	CloudProviderID string `json:"cloudProviderId"`
}

// ProjectMember is a user's membership record inside a project
type ProjectMember struct {
	UserID string `json:"userId"`
	Role   string `json:"role"`
}

// AddMemberRequest is the payload for adding a project member
type AddMemberRequest struct {
	UserID string `json:"userId"`
	Role   string `json:"role"`
}

// UpdateMemberRequest is the payload for changing a member's role
type UpdateMemberRequest struct {
	Role string `json:"role"`
}

// ProjectFile is a file attached to a project
type ProjectFile struct {
	ID         string    `json:"_id"`
	Name       string    `json:"name"`
	Size       int64     `json:"size"`
	MimeType   string    `json:"mimeType,omitempty"`
	UploadedBy string    `json:"uploadedBy,omitempty"`
	CreatedAt  time.Time `json:"createdAt,omitempty"`
}
