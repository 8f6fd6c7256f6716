// Package store defines the persistence boundary of the application.
//
// The Store interface below is implemented by three backends:
//
//   - store/surrealdb: the primary document backend, speaking CBOR over
//     websocket to SurrealDB
//   - store/postgres: a relational backend built on GORM, useful for
//     deployments that already run Postgres
//   - store/memory: an in-process map-backed store used by tests
//
// Handlers depend only on this interface, so backends can be swapped with a
// flag at startup. All methods take a context for cancellation and return
// explicit errors; Get methods return (nil, nil) when the record does not
// exist so callers can distinguish "missing" from "broken".
package store

import (
	"context"
	"errors"

	"tasklane/pkg/models"
)

// ErrReadOnly is returned by every mutating method of the read-only wrapper.
var ErrReadOnly = errors.New("store is read-only")

// Store is the full persistence contract. Implementations must be safe for
// concurrent use.
type Store interface {
	// Users. GetUserByEmail performs a case-insensitive match on the
	// normalized email column and is the lookup used by sign-in.
	CreateUser(ctx context.Context, user *models.User) error
	GetUser(ctx context.Context, id models.UserID) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	UpdateUser(ctx context.Context, user *models.User) error
	DeleteUser(ctx context.Context, id models.UserID) error
	ListUsers(ctx context.Context) ([]*models.User, error)

	// Workspaces. DeleteWorkspace removes only the workspace record itself;
	// use CascadeDeleteWorkspace to sweep everything the workspace owns.
	// ListWorkspacesByUser returns workspaces the user owns or is a member
	// of, without duplicates.
	CreateWorkspace(ctx context.Context, ws *models.Workspace) error
	GetWorkspace(ctx context.Context, id models.WorkspaceID) (*models.Workspace, error)
	UpdateWorkspace(ctx context.Context, ws *models.Workspace) error
	DeleteWorkspace(ctx context.Context, id models.WorkspaceID) error
	ListWorkspacesByUser(ctx context.Context, userID models.UserID) ([]*models.Workspace, error)

	// Projects.
	CreateProject(ctx context.Context, p *models.Project) error
	GetProject(ctx context.Context, id models.ProjectID) (*models.Project, error)
	UpdateProject(ctx context.Context, p *models.Project) error
	DeleteProject(ctx context.Context, id models.ProjectID) error
	ListProjects(ctx context.Context, workspaceID models.WorkspaceID) ([]*models.Project, error)

	// Requirement hierarchy. HierarchyIDExists checks all three artifact
	// tables plus tasks, since hierarchy identifiers are unique across the
	// whole tree.
	HierarchyIDExists(ctx context.Context, hierarchyID string) (bool, error)

	CreateClientRequirement(ctx context.Context, cr *models.ClientRequirement) error
	GetClientRequirement(ctx context.Context, id models.ClientRequirementID) (*models.ClientRequirement, error)
	UpdateClientRequirement(ctx context.Context, cr *models.ClientRequirement) error
	DeleteClientRequirement(ctx context.Context, id models.ClientRequirementID) error
	ListClientRequirements(ctx context.Context, projectID models.ProjectID) ([]*models.ClientRequirement, error)

	CreateEpic(ctx context.Context, e *models.Epic) error
	GetEpic(ctx context.Context, id models.EpicID) (*models.Epic, error)
	UpdateEpic(ctx context.Context, e *models.Epic) error
	DeleteEpic(ctx context.Context, id models.EpicID) error
	ListEpics(ctx context.Context, projectID models.ProjectID) ([]*models.Epic, error)
	ListEpicsByRequirement(ctx context.Context, crID models.ClientRequirementID) ([]*models.Epic, error)

	CreateFunctionalRequirement(ctx context.Context, fr *models.FunctionalRequirement) error
	GetFunctionalRequirement(ctx context.Context, id models.FunctionalRequirementID) (*models.FunctionalRequirement, error)
	UpdateFunctionalRequirement(ctx context.Context, fr *models.FunctionalRequirement) error
	DeleteFunctionalRequirement(ctx context.Context, id models.FunctionalRequirementID) error
	ListFunctionalRequirements(ctx context.Context, projectID models.ProjectID) ([]*models.FunctionalRequirement, error)
	ListFunctionalRequirementsByEpic(ctx context.Context, epicID models.EpicID) ([]*models.FunctionalRequirement, error)

	// Tasks. ListTasks returns every task of a project; filtering and
	// sorting happen above the store so the same semantics apply to every
	// backend.
	CreateTask(ctx context.Context, t *models.Task) error
	GetTask(ctx context.Context, id models.TaskID) (*models.Task, error)
	UpdateTask(ctx context.Context, t *models.Task) error
	DeleteTask(ctx context.Context, id models.TaskID) error
	ListTasks(ctx context.Context, projectID models.ProjectID) ([]*models.Task, error)
	ListTasksBySprint(ctx context.Context, sprintID models.SprintID) ([]*models.Task, error)
	ListTasksByAssignee(ctx context.Context, userID models.UserID) ([]*models.Task, error)

	// Sprints.
	CreateSprint(ctx context.Context, s *models.Sprint) error
	GetSprint(ctx context.Context, id models.SprintID) (*models.Sprint, error)
	UpdateSprint(ctx context.Context, s *models.Sprint) error
	DeleteSprint(ctx context.Context, id models.SprintID) error
	ListSprints(ctx context.Context, projectID models.ProjectID) ([]*models.Sprint, error)

	// Membership and roles.
	CreateMember(ctx context.Context, m *models.WorkspaceMember) error
	GetMember(ctx context.Context, id models.MemberID) (*models.WorkspaceMember, error)
	GetMemberByUser(ctx context.Context, workspaceID models.WorkspaceID, userID models.UserID) (*models.WorkspaceMember, error)
	UpdateMember(ctx context.Context, m *models.WorkspaceMember) error
	DeleteMember(ctx context.Context, id models.MemberID) error
	ListMembers(ctx context.Context, workspaceID models.WorkspaceID) ([]*models.WorkspaceMember, error)

	CreateRole(ctx context.Context, r *models.Role) error
	GetRole(ctx context.Context, id models.RoleID) (*models.Role, error)
	UpdateRole(ctx context.Context, r *models.Role) error
	DeleteRole(ctx context.Context, id models.RoleID) error
	ListRoles(ctx context.Context, workspaceID models.WorkspaceID) ([]*models.Role, error)

	// Invitations. GetInvitationByToken is the lookup behind the acceptance
	// link.
	CreateInvitation(ctx context.Context, inv *models.Invitation) error
	GetInvitation(ctx context.Context, id models.InvitationID) (*models.Invitation, error)
	GetInvitationByToken(ctx context.Context, token string) (*models.Invitation, error)
	UpdateInvitation(ctx context.Context, inv *models.Invitation) error
	DeleteInvitation(ctx context.Context, id models.InvitationID) error
	ListInvitations(ctx context.Context, workspaceID models.WorkspaceID) ([]*models.Invitation, error)

	// Leave.
	CreateLeaveRequest(ctx context.Context, lr *models.LeaveRequest) error
	GetLeaveRequest(ctx context.Context, id models.LeaveRequestID) (*models.LeaveRequest, error)
	UpdateLeaveRequest(ctx context.Context, lr *models.LeaveRequest) error
	DeleteLeaveRequest(ctx context.Context, id models.LeaveRequestID) error
	ListLeaveRequests(ctx context.Context, workspaceID models.WorkspaceID) ([]*models.LeaveRequest, error)
	ListLeaveRequestsByUser(ctx context.Context, userID models.UserID) ([]*models.LeaveRequest, error)

	// Time tracking.
	CreateTimeEntry(ctx context.Context, te *models.TimeEntry) error
	GetTimeEntry(ctx context.Context, id models.TimeEntryID) (*models.TimeEntry, error)
	UpdateTimeEntry(ctx context.Context, te *models.TimeEntry) error
	DeleteTimeEntry(ctx context.Context, id models.TimeEntryID) error
	ListTimeEntriesByTask(ctx context.Context, taskID models.TaskID) ([]*models.TimeEntry, error)
	ListTimeEntriesByUser(ctx context.Context, userID models.UserID) ([]*models.TimeEntry, error)

	// Notifications.
	CreateNotification(ctx context.Context, n *models.Notification) error
	GetNotification(ctx context.Context, id models.NotificationID) (*models.Notification, error)
	UpdateNotification(ctx context.Context, n *models.Notification) error
	DeleteNotification(ctx context.Context, id models.NotificationID) error
	ListNotifications(ctx context.Context, userID models.UserID) ([]*models.Notification, error)
	ListNotificationsByWorkspace(ctx context.Context, workspaceID models.WorkspaceID) ([]*models.Notification, error)

	// Migrate creates or updates the backend schema. Safe to call on every
	// startup.
	Migrate(ctx context.Context) error

	// Close releases the backend connection.
	Close() error
}
