package client

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"tasklane/pkg/models"
)

// Project operations

// CreateProjectRequest is the payload for project creation. When Prefix is
// empty the server derives one from the name.
type CreateProjectRequest struct {
	WorkspaceID models.WorkspaceID `json:"workspace_id"`
	Name        string             `json:"name"`
	Description string             `json:"description,omitempty"`
	Prefix      string             `json:"prefix,omitempty"`
	StartDate   *time.Time         `json:"start_date,omitempty"`
	EndDate     *time.Time         `json:"end_date,omitempty"`
}

// CreateProject creates a project in a workspace.
func (c *Client) CreateProject(ctx context.Context, req CreateProjectRequest) (*models.Project, error) {
	resp, err := c.doRequest(ctx, http.MethodPost, "/api/projects", req)
	if err != nil {
		return nil, err
	}

	var result models.Project
	if err := decodeResponse(resp, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// GetProject retrieves a project by ID.
func (c *Client) GetProject(ctx context.Context, id models.ProjectID) (*models.Project, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, fmt.Sprintf("/api/projects/%s", id), nil)
	if err != nil {
		return nil, err
	}

	var result models.Project
	if err := decodeResponse(resp, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// ListProjects lists a workspace's projects.
func (c *Client) ListProjects(ctx context.Context, workspaceID models.WorkspaceID) ([]*models.Project, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, fmt.Sprintf("/api/workspaces/%s/projects", workspaceID), nil)
	if err != nil {
		return nil, err
	}

	var result []*models.Project
	if err := decodeResponse(resp, &result); err != nil {
		return nil, err
	}
	return result, nil
}

// DeleteProject removes a project.
func (c *Client) DeleteProject(ctx context.Context, id models.ProjectID) error {
	resp, err := c.doRequest(ctx, http.MethodDelete, fmt.Sprintf("/api/projects/%s", id), nil)
	if err != nil {
		return err
	}
	return decodeResponse(resp, nil)
}

// Requirement hierarchy operations

// CreateClientRequirementRequest is the payload for a single client
// requirement.
type CreateClientRequirementRequest struct {
	ProjectID   models.ProjectID `json:"project_id"`
	Title       string           `json:"title"`
	Description string           `json:"description,omitempty"`
	Priority    models.Priority  `json:"priority,omitempty"`
}

// CreateClientRequirement creates a client requirement under a project.
func (c *Client) CreateClientRequirement(ctx context.Context, req CreateClientRequirementRequest) (*models.ClientRequirement, error) {
	resp, err := c.doRequest(ctx, http.MethodPost, "/api/client-requirements", req)
	if err != nil {
		return nil, err
	}

	var result models.ClientRequirement
	if err := decodeResponse(resp, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// ListClientRequirements lists a project's client requirements.
func (c *Client) ListClientRequirements(ctx context.Context, projectID models.ProjectID) ([]*models.ClientRequirement, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, fmt.Sprintf("/api/projects/%s/client-requirements", projectID), nil)
	if err != nil {
		return nil, err
	}

	var result []*models.ClientRequirement
	if err := decodeResponse(resp, &result); err != nil {
		return nil, err
	}
	return result, nil
}

// CreateEpicRequest is the payload for a single epic.
type CreateEpicRequest struct {
	ClientRequirementID models.ClientRequirementID `json:"client_requirement_id"`
	Title               string                     `json:"title"`
	Description         string                     `json:"description,omitempty"`
	Priority            models.Priority            `json:"priority,omitempty"`
}

// CreateEpic creates an epic under a client requirement.
func (c *Client) CreateEpic(ctx context.Context, req CreateEpicRequest) (*models.Epic, error) {
	resp, err := c.doRequest(ctx, http.MethodPost, "/api/epics", req)
	if err != nil {
		return nil, err
	}

	var result models.Epic
	if err := decodeResponse(resp, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// ListEpics lists a project's epics.
func (c *Client) ListEpics(ctx context.Context, projectID models.ProjectID) ([]*models.Epic, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, fmt.Sprintf("/api/projects/%s/epics", projectID), nil)
	if err != nil {
		return nil, err
	}

	var result []*models.Epic
	if err := decodeResponse(resp, &result); err != nil {
		return nil, err
	}
	return result, nil
}

// CreateFunctionalRequirementRequest is the payload for a single functional
// requirement.
type CreateFunctionalRequirementRequest struct {
	EpicID      models.EpicID   `json:"epic_id"`
	Title       string          `json:"title"`
	Description string          `json:"description,omitempty"`
	Priority    models.Priority `json:"priority,omitempty"`
}

// CreateFunctionalRequirement creates a functional requirement under an epic.
func (c *Client) CreateFunctionalRequirement(ctx context.Context, req CreateFunctionalRequirementRequest) (*models.FunctionalRequirement, error) {
	resp, err := c.doRequest(ctx, http.MethodPost, "/api/functional-requirements", req)
	if err != nil {
		return nil, err
	}

	var result models.FunctionalRequirement
	if err := decodeResponse(resp, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// ListFunctionalRequirements lists a project's functional requirements.
func (c *Client) ListFunctionalRequirements(ctx context.Context, projectID models.ProjectID) ([]*models.FunctionalRequirement, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, fmt.Sprintf("/api/projects/%s/functional-requirements", projectID), nil)
	if err != nil {
		return nil, err
	}

	var result []*models.FunctionalRequirement
	if err := decodeResponse(resp, &result); err != nil {
		return nil, err
	}
	return result, nil
}

// Bulk import

// BulkSaveRequest mirrors the server's bulk import payload: nested
// requirement trees plus optional flat epic and functional requirement lists
// distributed round-robin over the available parents.
type BulkSaveRequest struct {
	ProjectID              models.ProjectID    `json:"project_id"`
	Requirements           []BulkRequirement   `json:"requirements,omitempty"`
	Epics                  []BulkEpic          `json:"epics,omitempty"`
	FunctionalRequirements []BulkFunctionalReq `json:"functional_requirements,omitempty"`
}

type BulkRequirement struct {
	Title       string          `json:"title"`
	Description string          `json:"description,omitempty"`
	Priority    models.Priority `json:"priority,omitempty"`
	Epics       []BulkEpic      `json:"epics,omitempty"`
}

type BulkEpic struct {
	Title                  string              `json:"title"`
	Description            string              `json:"description,omitempty"`
	Priority               models.Priority     `json:"priority,omitempty"`
	FunctionalRequirements []BulkFunctionalReq `json:"functional_requirements,omitempty"`
}

type BulkFunctionalReq struct {
	Title       string          `json:"title"`
	Description string          `json:"description,omitempty"`
	Priority    models.Priority `json:"priority,omitempty"`
}

// BulkSaveResult reports what a bulk import saved, skipped and failed.
type BulkSaveResult struct {
	Saved   int      `json:"saved"`
	Skipped int      `json:"skipped"`
	Errors  []string `json:"errors,omitempty"`

	ClientRequirements     []*models.ClientRequirement     `json:"client_requirements"`
	Epics                  []*models.Epic                  `json:"epics"`
	FunctionalRequirements []*models.FunctionalRequirement `json:"functional_requirements"`
}

// BulkSaveRequirements imports a requirement tree in one request.
func (c *Client) BulkSaveRequirements(ctx context.Context, req BulkSaveRequest) (*BulkSaveResult, error) {
	resp, err := c.doRequest(ctx, http.MethodPost, "/api/requirements/bulk-save", req)
	if err != nil {
		return nil, err
	}

	var result BulkSaveResult
	if err := decodeResponse(resp, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Sprint operations

// CreateSprint creates a sprint in a project.
func (c *Client) CreateSprint(ctx context.Context, sprint *models.Sprint) (*models.Sprint, error) {
	resp, err := c.doRequest(ctx, http.MethodPost, "/api/sprints", sprint)
	if err != nil {
		return nil, err
	}

	var result models.Sprint
	if err := decodeResponse(resp, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// ListSprints lists a project's sprints.
func (c *Client) ListSprints(ctx context.Context, projectID models.ProjectID) ([]*models.Sprint, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, fmt.Sprintf("/api/projects/%s/sprints", projectID), nil)
	if err != nil {
		return nil, err
	}

	var result []*models.Sprint
	if err := decodeResponse(resp, &result); err != nil {
		return nil, err
	}
	return result, nil
}

// DeleteSprint removes a sprint; its tasks return to the backlog.
func (c *Client) DeleteSprint(ctx context.Context, id models.SprintID) error {
	resp, err := c.doRequest(ctx, http.MethodDelete, fmt.Sprintf("/api/sprints/%s", id), nil)
	if err != nil {
		return err
	}
	return decodeResponse(resp, nil)
}
