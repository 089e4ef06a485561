package authz

import (
	"testing"

	"github.com/mwapio/console/pkg/roles"
)

func TestCanAccessFailClosedOnNilSummary(t *testing.T) {
	requirements := []Requirement{
		RequireAuthenticated(),
		RequireSuperAdmin(),
		RequireTenantOwner(),
		RequireProjectRole("p1", roles.RoleMember),
		RequireTenantOwnerOrProjectMember(),
	}
	for _, req := range requirements {
		if CanAccess(nil, req) {
			t.Errorf("nil summary must deny requirement %+v", req)
		}
	}
}

func TestCanAccessRoleRankMonotonicity(t *testing.T) {
	ordered := []roles.Role{roles.RoleMember, roles.RoleDeputy, roles.RoleOwner}

	for i, held := range ordered {
		summary := &roles.RoleSummary{
			ProjectRoles: []roles.ProjectRole{{ProjectID: "p1", Role: held}},
		}
		for j, required := range ordered {
			got := CanAccess(summary, RequireProjectRole("p1", required))
			want := j <= i
			if got != want {
				t.Errorf("held %s, required %s: got %v, want %v", held, required, got, want)
			}
		}
	}
}

func TestCanAccessProjectMemberScenario(t *testing.T) {
	summary := &roles.RoleSummary{
		ProjectRoles: []roles.ProjectRole{{ProjectID: "p1", Role: roles.RoleMember}},
	}

	if CanAccess(summary, RequireProjectRole("p1", roles.RoleOwner)) {
		t.Error("MEMBER must not satisfy an OWNER requirement")
	}
	if !CanAccess(summary, RequireProjectRole("p1", roles.RoleMember)) {
		t.Error("MEMBER must satisfy a MEMBER requirement")
	}
	if CanAccess(summary, RequireProjectRole("p2", roles.RoleMember)) {
		t.Error("unknown project must deny")
	}
}

func TestCanAccessEmptyProjectRoles(t *testing.T) {
	summary := &roles.RoleSummary{}
	if CanAccess(summary, RequireProjectRole("p1", roles.RoleMember)) {
		t.Error("empty project roles must deny")
	}
}

func TestCanAccessFlags(t *testing.T) {
	admin := &roles.RoleSummary{IsSuperAdmin: true}
	owner := &roles.RoleSummary{IsTenantOwner: true}

	if !CanAccess(admin, RequireSuperAdmin()) {
		t.Error("super-admin flag must allow")
	}
	if CanAccess(admin, RequireTenantOwner()) {
		t.Error("super-admin flag must not imply tenant owner")
	}
	if !CanAccess(owner, RequireTenantOwner()) {
		t.Error("tenant-owner flag must allow")
	}
	if !CanAccess(owner, RequireTenantOwnerOrProjectMember()) {
		t.Error("tenant owner must pass the composite policy")
	}
}

func TestFilterNavItemsSuperAdminScenario(t *testing.T) {
	summary := &roles.RoleSummary{IsSuperAdmin: true}

	items := []NavItem{
		{Name: "Dashboard", Path: "/", Requirement: RequireAuthenticated()},
		{Name: "Tenants", Path: "/tenants", Requirement: RequireSuperAdmin()},
		{Name: "Projects", Path: "/projects", Requirement: RequireTenantOwnerOrProjectMember()},
	}

	visible := FilterNavItems(summary, items)

	if len(visible) != 2 {
		t.Fatalf("expected 2 visible items, got %d: %+v", len(visible), visible)
	}
	if visible[0].Name != "Dashboard" || visible[1].Name != "Tenants" {
		t.Errorf("expected [Dashboard, Tenants] in input order, got %+v", visible)
	}
}

func TestFilterNavItemsPreservesOrder(t *testing.T) {
	summary := &roles.RoleSummary{
		IsTenantOwner: true,
		ProjectRoles:  []roles.ProjectRole{{ProjectID: "p1", Role: roles.RoleOwner}},
	}

	items := []NavItem{
		{Name: "C", Requirement: RequireAuthenticated()},
		{Name: "A", Requirement: RequireProjectRole("p1", roles.RoleOwner)},
		{Name: "B", Requirement: RequireTenantOwner()},
	}

	visible := FilterNavItems(summary, items)
	if len(visible) != 3 {
		t.Fatalf("expected 3 visible items, got %d", len(visible))
	}
	for i, want := range []string{"C", "A", "B"} {
		if visible[i].Name != want {
			t.Errorf("position %d: got %s, want %s", i, visible[i].Name, want)
		}
	}
}

func TestFilterNavItemsNilSummary(t *testing.T) {
	items := []NavItem{{Name: "Dashboard", Requirement: RequireAuthenticated()}}
	if got := FilterNavItems(nil, items); len(got) != 0 {
		t.Errorf("nil summary must hide everything, got %+v", got)
	}
}
