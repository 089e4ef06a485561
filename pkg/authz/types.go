package authz

import "github.com/mwapio/console/pkg/roles"

// RequirementKind discriminates requirement descriptors
type RequirementKind int

const (
	// KindAuthenticated requires any resolved session
	KindAuthenticated RequirementKind = iota
	// KindSuperAdmin requires the platform super-admin flag
	KindSuperAdmin
	// KindTenantOwner requires the tenant-owner flag
	KindTenantOwner
	// KindProjectRole requires at least MinRole on ProjectID
	KindProjectRole
	// KindTenantOwnerOrProjectMember requires the tenant-owner flag or
	// membership in at least one project
	KindTenantOwnerOrProjectMember
)

// Requirement describes what a route or UI element demands
type Requirement struct {
	Kind      RequirementKind
	ProjectID string
	MinRole   roles.Role
}

// RequireAuthenticated matches any user with a resolved summary
func RequireAuthenticated() Requirement {
	return Requirement{Kind: KindAuthenticated}
}

// RequireSuperAdmin matches platform super-admins
func RequireSuperAdmin() Requirement {
	return Requirement{Kind: KindSuperAdmin}
}

// RequireTenantOwner matches tenant owners
func RequireTenantOwner() Requirement {
	return Requirement{Kind: KindTenantOwner}
}

// RequireProjectRole matches users holding at least min on the project
func RequireProjectRole(projectID string, min roles.Role) Requirement {
	return Requirement{Kind: KindProjectRole, ProjectID: projectID, MinRole: min}
}

// RequireTenantOwnerOrProjectMember matches tenant owners and users
// holding any project role. This is the default policy for the
// projects area of the console.
func RequireTenantOwnerOrProjectMember() Requirement {
	return Requirement{Kind: KindTenantOwnerOrProjectMember}
}

// NavItem is one navigation entry carrying its own requirement
type NavItem struct {
	Name        string
	Path        string
	Requirement Requirement
}
