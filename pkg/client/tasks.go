package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"tasklane/pkg/models"
)

// Task operations

// CreateTaskRequest is the payload for task creation.
type CreateTaskRequest struct {
	ProjectID               models.ProjectID                `json:"project_id"`
	FunctionalRequirementID *models.FunctionalRequirementID `json:"functional_requirement_id,omitempty"`
	SprintID                *models.SprintID                `json:"sprint_id,omitempty"`
	ParentTaskID            *models.TaskID                  `json:"parent_task_id,omitempty"`
	AssigneeID              *models.UserID                  `json:"assignee_id,omitempty"`
	Title                   string                          `json:"title"`
	Description             string                          `json:"description,omitempty"`
	Priority                models.Priority                 `json:"priority,omitempty"`
	Urgency                 models.Urgency                  `json:"urgency,omitempty"`
	EstimateHours           float64                         `json:"estimate_hours,omitempty"`
	DueDate                 *time.Time                      `json:"due_date,omitempty"`
}

// CreateTask creates a task.
func (c *Client) CreateTask(ctx context.Context, req CreateTaskRequest) (*models.Task, error) {
	resp, err := c.doRequest(ctx, http.MethodPost, "/api/tasks", req)
	if err != nil {
		return nil, err
	}

	var result models.Task
	if err := decodeResponse(resp, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// GetTask retrieves a task by ID.
func (c *Client) GetTask(ctx context.Context, id models.TaskID) (*models.Task, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, fmt.Sprintf("/api/tasks/%s", id), nil)
	if err != nil {
		return nil, err
	}

	var result models.Task
	if err := decodeResponse(resp, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// UpdateTask applies a partial update to a task.
func (c *Client) UpdateTask(ctx context.Context, id models.TaskID, update map[string]any) (*models.Task, error) {
	resp, err := c.doRequest(ctx, http.MethodPut, fmt.Sprintf("/api/tasks/%s", id), update)
	if err != nil {
		return nil, err
	}

	var result models.Task
	if err := decodeResponse(resp, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// DeleteTask removes a task and its time entries.
func (c *Client) DeleteTask(ctx context.Context, id models.TaskID) error {
	resp, err := c.doRequest(ctx, http.MethodDelete, fmt.Sprintf("/api/tasks/%s", id), nil)
	if err != nil {
		return err
	}
	return decodeResponse(resp, nil)
}

// ListTasksOptions narrows and orders a task listing. Sort takes up to three
// comma-separated criteria, for example "priority:desc,due_date".
type ListTasksOptions struct {
	Status   string
	Assignee string
	Priority string
	Sprint   string
	Sort     string
}

func (o ListTasksOptions) query() string {
	q := url.Values{}
	if o.Status != "" {
		q.Set("status", o.Status)
	}
	if o.Assignee != "" {
		q.Set("assignee", o.Assignee)
	}
	if o.Priority != "" {
		q.Set("priority", o.Priority)
	}
	if o.Sprint != "" {
		q.Set("sprint", o.Sprint)
	}
	if o.Sort != "" {
		q.Set("sort", o.Sort)
	}
	if len(q) == 0 {
		return ""
	}
	return "?" + q.Encode()
}

// ListTasks lists a project's tasks with optional filters and sorting.
func (c *Client) ListTasks(ctx context.Context, projectID models.ProjectID, opts ListTasksOptions) ([]*models.Task, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, fmt.Sprintf("/api/projects/%s/tasks%s", projectID, opts.query()), nil)
	if err != nil {
		return nil, err
	}

	var result []*models.Task
	if err := decodeResponse(resp, &result); err != nil {
		return nil, err
	}
	return result, nil
}

// ListSprintTasks lists the tasks scheduled in a sprint.
func (c *Client) ListSprintTasks(ctx context.Context, sprintID models.SprintID) ([]*models.Task, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, fmt.Sprintf("/api/sprints/%s/tasks", sprintID), nil)
	if err != nil {
		return nil, err
	}

	var result []*models.Task
	if err := decodeResponse(resp, &result); err != nil {
		return nil, err
	}
	return result, nil
}

// Time tracking

// CreateTimeEntryRequest is the payload for logging hours against a task.
type CreateTimeEntryRequest struct {
	TaskID models.TaskID `json:"task_id"`
	Date   time.Time     `json:"date"`
	Hours  float64       `json:"hours"`
	Note   string        `json:"note,omitempty"`
}

// CreateTimeEntry logs hours against a task for the authenticated user.
func (c *Client) CreateTimeEntry(ctx context.Context, req CreateTimeEntryRequest) (*models.TimeEntry, error) {
	resp, err := c.doRequest(ctx, http.MethodPost, "/api/time-entries", req)
	if err != nil {
		return nil, err
	}

	var result models.TimeEntry
	if err := decodeResponse(resp, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// TimeEntryList is a task's time entries with the summed hours.
type TimeEntryList struct {
	Entries    []*models.TimeEntry `json:"entries"`
	TotalHours float64             `json:"total_hours"`
}

// ListTimeEntries lists a task's time entries and total hours.
func (c *Client) ListTimeEntries(ctx context.Context, taskID models.TaskID) (*TimeEntryList, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, fmt.Sprintf("/api/tasks/%s/time-entries", taskID), nil)
	if err != nil {
		return nil, err
	}

	var result TimeEntryList
	if err := decodeResponse(resp, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Leave management

// CreateLeaveRequest is the payload for requesting leave.
type CreateLeaveRequest struct {
	WorkspaceID models.WorkspaceID `json:"workspace_id"`
	Type        models.LeaveType   `json:"type"`
	StartDate   time.Time          `json:"start_date"`
	EndDate     time.Time          `json:"end_date"`
	Reason      string             `json:"reason,omitempty"`
}

// CreateLeaveRequest submits a leave request for the authenticated user.
func (c *Client) CreateLeaveRequest(ctx context.Context, req CreateLeaveRequest) (*models.LeaveRequest, error) {
	resp, err := c.doRequest(ctx, http.MethodPost, "/api/leave-requests", req)
	if err != nil {
		return nil, err
	}

	var result models.LeaveRequest
	if err := decodeResponse(resp, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// ListMyLeaveRequests lists the authenticated user's leave requests.
func (c *Client) ListMyLeaveRequests(ctx context.Context) ([]*models.LeaveRequest, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/api/leave-requests/mine", nil)
	if err != nil {
		return nil, err
	}

	var result []*models.LeaveRequest
	if err := decodeResponse(resp, &result); err != nil {
		return nil, err
	}
	return result, nil
}

// ApproveLeaveRequest approves a pending leave request.
func (c *Client) ApproveLeaveRequest(ctx context.Context, id models.LeaveRequestID) (*models.LeaveRequest, error) {
	return c.decideLeaveRequest(ctx, id, "approve")
}

// RejectLeaveRequest rejects a pending leave request.
func (c *Client) RejectLeaveRequest(ctx context.Context, id models.LeaveRequestID) (*models.LeaveRequest, error) {
	return c.decideLeaveRequest(ctx, id, "reject")
}

func (c *Client) decideLeaveRequest(ctx context.Context, id models.LeaveRequestID, action string) (*models.LeaveRequest, error) {
	resp, err := c.doRequest(ctx, http.MethodPost, fmt.Sprintf("/api/leave-requests/%s/%s", id, action), nil)
	if err != nil {
		return nil, err
	}

	var result models.LeaveRequest
	if err := decodeResponse(resp, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// LeaveSummaryEntry aggregates a member's approved leave by type.
type LeaveSummaryEntry struct {
	UserID    models.UserID            `json:"user_id"`
	ByType    map[models.LeaveType]int `json:"by_type"`
	TotalDays int                      `json:"total_days"`
}

// LeaveSummary reports approved working days taken per workspace member.
func (c *Client) LeaveSummary(ctx context.Context, workspaceID models.WorkspaceID) ([]*LeaveSummaryEntry, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, fmt.Sprintf("/api/workspaces/%s/leave-summary", workspaceID), nil)
	if err != nil {
		return nil, err
	}

	var result []*LeaveSummaryEntry
	if err := decodeResponse(resp, &result); err != nil {
		return nil, err
	}
	return result, nil
}

// Notifications

// ListNotifications lists the authenticated user's notifications. unreadOnly
// narrows to notifications not yet marked read.
func (c *Client) ListNotifications(ctx context.Context, unreadOnly bool) ([]*models.Notification, error) {
	path := "/api/notifications"
	if unreadOnly {
		path += "?unread=true"
	}
	resp, err := c.doRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}

	var result []*models.Notification
	if err := decodeResponse(resp, &result); err != nil {
		return nil, err
	}
	return result, nil
}

// MarkNotificationRead marks a notification as read.
func (c *Client) MarkNotificationRead(ctx context.Context, id models.NotificationID) (*models.Notification, error) {
	resp, err := c.doRequest(ctx, http.MethodPut, fmt.Sprintf("/api/notifications/%s/read", id), nil)
	if err != nil {
		return nil, err
	}

	var result models.Notification
	if err := decodeResponse(resp, &result); err != nil {
		return nil, err
	}
	return &result, nil
}
