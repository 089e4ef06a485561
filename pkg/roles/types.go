package roles

// Role represents a per-project member role
type Role string

const (
	RoleOwner  Role = "OWNER"
	RoleDeputy Role = "DEPUTY"
	RoleMember Role = "MEMBER"
)

// Rank returns the numeric rank used for minimum-role comparisons.
// OWNER > DEPUTY > MEMBER; unknown roles rank 0 and never satisfy a
// minimum.
func (r Role) Rank() int {
	switch r {
	case RoleOwner:
		return 3
	case RoleDeputy:
		return 2
	case RoleMember:
		return 1
	default:
		return 0
	}
}

// Valid reports whether the role is one of the known project roles
func (r Role) Valid() bool {
	return r.Rank() > 0
}

// ProjectRole is one (project, role) pair from the role summary
type ProjectRole struct {
	ProjectID string `json:"projectId"`
	Role      Role   `json:"role"`
}

// RoleSummary is the resolved set of platform, tenant, and project
// permissions for the current user. It is replaced wholesale on
// refetch and must be treated as read-only by consumers.
type RoleSummary struct {
	UserID        string        `json:"userId"`
	IsSuperAdmin  bool          `json:"isSuperAdmin"`
	IsTenantOwner bool          `json:"isTenantOwner"`
	TenantID      string        `json:"tenantId,omitempty"`
	ProjectRoles  []ProjectRole `json:"projectRoles"`
}

// RoleForProject returns the user's role for the given project.
// The backend does not guarantee at most one entry per project; when
// duplicates appear the last entry wins.
func (s *RoleSummary) RoleForProject(projectID string) (Role, bool) {
	if s == nil {
		return "", false
	}
	var (
		found bool
		role  Role
	)
	for _, pr := range s.ProjectRoles {
		if pr.ProjectID == projectID {
			role = pr.Role
			found = true
		}
	}
	return role, found
}

// HasProjectRole reports whether the user holds at least min for the
// given project. Unknown projects always report false.
func (s *RoleSummary) HasProjectRole(projectID string, min Role) bool {
	role, ok := s.RoleForProject(projectID)
	if !ok {
		return false
	}
	return role.Rank() >= min.Rank() && min.Valid()
}
