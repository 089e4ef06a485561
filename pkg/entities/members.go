package entities

import (
	"context"
)

// MembersClient manages a project's membership records
type MembersClient struct {
	core *core
}

// membersEntity scopes cache keys to one project's members
func membersEntity(projectID string) string {
	return "projects/" + projectID + "/members"
}

// List fetches a project's members, degrading to an empty list on
// backend failure.
func (m *MembersClient) List(ctx context.Context, projectID string) ([]ProjectMember, error) {
	entity := membersEntity(projectID)
	var members []ProjectMember
	if err := m.core.get(ctx, entity, "", nil, "/projects/"+projectID+"/members", &members); err != nil {
		if !m.core.degradeList(entity, err) {
			return nil, err
		}
		return []ProjectMember{}, nil
	}
	return members, nil
}

// Add adds a member to the project
func (m *MembersClient) Add(ctx context.Context, projectID string, req AddMemberRequest) (*ProjectMember, error) {
	var member ProjectMember
	if err := m.core.create(ctx, membersEntity(projectID), "/projects/"+projectID+"/members", req, &member); err != nil {
		return nil, err
	}
	return &member, nil
}

// UpdateRole changes a member's role
func (m *MembersClient) UpdateRole(ctx context.Context, projectID, userID string, req UpdateMemberRequest) (*ProjectMember, error) {
	var member ProjectMember
	if err := m.core.update(ctx, membersEntity(projectID), userID, "/projects/"+projectID+"/members/"+userID, req, &member); err != nil {
		return nil, err
	}
	return &member, nil
}

// Remove removes a member from the project
func (m *MembersClient) Remove(ctx context.Context, projectID, userID string) error {
	return m.core.remove(ctx, membersEntity(projectID), userID, "/projects/"+projectID+"/members/"+userID)
}
