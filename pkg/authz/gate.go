package authz

import "github.com/mwapio/console/pkg/roles"

// CanAccess decides allow/deny for a requirement against a summary.
// A nil summary (resolver not yet ready) always denies.
func CanAccess(summary *roles.RoleSummary, req Requirement) bool {
	if summary == nil {
		return false
	}

	switch req.Kind {
	case KindAuthenticated:
		return true
	case KindSuperAdmin:
		return summary.IsSuperAdmin
	case KindTenantOwner:
		return summary.IsTenantOwner
	case KindProjectRole:
		return summary.HasProjectRole(req.ProjectID, req.MinRole)
	case KindTenantOwnerOrProjectMember:
		return summary.IsTenantOwner || len(summary.ProjectRoles) > 0
	default:
		return false
	}
}

// FilterNavItems keeps the items whose requirement passes, preserving
// the input order.
func FilterNavItems(summary *roles.RoleSummary, items []NavItem) []NavItem {
	visible := make([]NavItem, 0, len(items))
	for _, item := range items {
		if CanAccess(summary, item.Requirement) {
			visible = append(visible, item)
		}
	}
	return visible
}
