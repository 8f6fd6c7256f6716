package client

import (
	"context"
	"fmt"
	"net/http"

	"tasklane/pkg/models"
)

// Workspace operations

// CreateWorkspace creates a workspace owned by the authenticated user.
func (c *Client) CreateWorkspace(ctx context.Context, ws *models.Workspace) (*models.Workspace, error) {
	resp, err := c.doRequest(ctx, http.MethodPost, "/api/workspaces", ws)
	if err != nil {
		return nil, err
	}

	var result models.Workspace
	if err := decodeResponse(resp, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// GetWorkspace retrieves a workspace by ID.
func (c *Client) GetWorkspace(ctx context.Context, id models.WorkspaceID) (*models.Workspace, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, fmt.Sprintf("/api/workspaces/%s", id), nil)
	if err != nil {
		return nil, err
	}

	var result models.Workspace
	if err := decodeResponse(resp, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// UpdateWorkspace updates a workspace's name or settings.
func (c *Client) UpdateWorkspace(ctx context.Context, ws *models.Workspace) (*models.Workspace, error) {
	resp, err := c.doRequest(ctx, http.MethodPut, fmt.Sprintf("/api/workspaces/%s", ws.ID), ws)
	if err != nil {
		return nil, err
	}

	var result models.Workspace
	if err := decodeResponse(resp, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// DeleteWorkspace deletes a workspace and everything in it. Owner only.
func (c *Client) DeleteWorkspace(ctx context.Context, id models.WorkspaceID) error {
	resp, err := c.doRequest(ctx, http.MethodDelete, fmt.Sprintf("/api/workspaces/%s", id), nil)
	if err != nil {
		return err
	}
	return decodeResponse(resp, nil)
}

// ListWorkspaces lists the workspaces the authenticated user owns or belongs to.
func (c *Client) ListWorkspaces(ctx context.Context) ([]*models.Workspace, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/api/workspaces", nil)
	if err != nil {
		return nil, err
	}

	var result []*models.Workspace
	if err := decodeResponse(resp, &result); err != nil {
		return nil, err
	}
	return result, nil
}

// Member operations

// AddMemberRequest is the payload for adding an existing user to a workspace.
type AddMemberRequest struct {
	UserID models.UserID `json:"user_id"`
	RoleID models.RoleID `json:"role_id"`
}

// AddMember adds an existing user to a workspace with a role.
func (c *Client) AddMember(ctx context.Context, workspaceID models.WorkspaceID, req AddMemberRequest) (*models.WorkspaceMember, error) {
	resp, err := c.doRequest(ctx, http.MethodPost, fmt.Sprintf("/api/workspaces/%s/members", workspaceID), req)
	if err != nil {
		return nil, err
	}

	var result models.WorkspaceMember
	if err := decodeResponse(resp, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// ListMembers lists a workspace's members.
func (c *Client) ListMembers(ctx context.Context, workspaceID models.WorkspaceID) ([]*models.WorkspaceMember, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, fmt.Sprintf("/api/workspaces/%s/members", workspaceID), nil)
	if err != nil {
		return nil, err
	}

	var result []*models.WorkspaceMember
	if err := decodeResponse(resp, &result); err != nil {
		return nil, err
	}
	return result, nil
}

// UpdateMemberRole changes a member's role.
func (c *Client) UpdateMemberRole(ctx context.Context, memberID models.MemberID, roleID models.RoleID) (*models.WorkspaceMember, error) {
	resp, err := c.doRequest(ctx, http.MethodPut, fmt.Sprintf("/api/members/%s", memberID), map[string]any{"role_id": roleID})
	if err != nil {
		return nil, err
	}

	var result models.WorkspaceMember
	if err := decodeResponse(resp, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// RemoveMember removes a member from their workspace.
func (c *Client) RemoveMember(ctx context.Context, memberID models.MemberID) error {
	resp, err := c.doRequest(ctx, http.MethodDelete, fmt.Sprintf("/api/members/%s", memberID), nil)
	if err != nil {
		return err
	}
	return decodeResponse(resp, nil)
}

// Role operations

// CreateRole creates a role in a workspace.
func (c *Client) CreateRole(ctx context.Context, workspaceID models.WorkspaceID, role *models.Role) (*models.Role, error) {
	resp, err := c.doRequest(ctx, http.MethodPost, fmt.Sprintf("/api/workspaces/%s/roles", workspaceID), role)
	if err != nil {
		return nil, err
	}

	var result models.Role
	if err := decodeResponse(resp, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// ListRoles lists a workspace's roles.
func (c *Client) ListRoles(ctx context.Context, workspaceID models.WorkspaceID) ([]*models.Role, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, fmt.Sprintf("/api/workspaces/%s/roles", workspaceID), nil)
	if err != nil {
		return nil, err
	}

	var result []*models.Role
	if err := decodeResponse(resp, &result); err != nil {
		return nil, err
	}
	return result, nil
}

// Invitation operations

// SendInvitationRequest is the payload for inviting someone by email.
type SendInvitationRequest struct {
	WorkspaceID models.WorkspaceID `json:"workspace_id"`
	Email       string             `json:"email"`
	RoleID      models.RoleID      `json:"role_id"`
}

// SendInvitation emails an invitation to join a workspace.
func (c *Client) SendInvitation(ctx context.Context, req SendInvitationRequest) (*models.Invitation, error) {
	resp, err := c.doRequest(ctx, http.MethodPost, "/api/send-invitation", req)
	if err != nil {
		return nil, err
	}

	var result models.Invitation
	if err := decodeResponse(resp, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// AcceptInvitationRequest is the payload for redeeming an invitation link.
type AcceptInvitationRequest struct {
	Token    string `json:"token"`
	Name     string `json:"name,omitempty"`
	Password string `json:"password,omitempty"`
}

// AcceptInvitation redeems an invitation token. Name and password are only
// required when the invitee has no account yet. The returned session token is
// stored on the client.
func (c *Client) AcceptInvitation(ctx context.Context, req AcceptInvitationRequest) (*AuthResponse, error) {
	resp, err := c.doRequest(ctx, http.MethodPost, "/api/invitations/accept", req)
	if err != nil {
		return nil, err
	}

	var result AuthResponse
	if err := decodeResponse(resp, &result); err != nil {
		return nil, err
	}

	c.SetAuthToken(result.Token)
	return &result, nil
}

// ListInvitations lists a workspace's invitations.
func (c *Client) ListInvitations(ctx context.Context, workspaceID models.WorkspaceID) ([]*models.Invitation, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, fmt.Sprintf("/api/workspaces/%s/invitations", workspaceID), nil)
	if err != nil {
		return nil, err
	}

	var result []*models.Invitation
	if err := decodeResponse(resp, &result); err != nil {
		return nil, err
	}
	return result, nil
}

// RevokeInvitation revokes a pending invitation.
func (c *Client) RevokeInvitation(ctx context.Context, id models.InvitationID) (*models.Invitation, error) {
	resp, err := c.doRequest(ctx, http.MethodDelete, fmt.Sprintf("/api/invitations/%s", id), nil)
	if err != nil {
		return nil, err
	}

	var result models.Invitation
	if err := decodeResponse(resp, &result); err != nil {
		return nil, err
	}
	return &result, nil
}
