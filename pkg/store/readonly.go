package store

import (
	"context"

	"tasklane/pkg/models"
)

// readOnlyStore wraps a Store and rejects every write with ErrReadOnly.
// Useful for maintenance windows and for serving read replicas.
type readOnlyStore struct {
	Store
}

// NewReadOnlyStore returns a Store whose mutating methods fail with
// ErrReadOnly while reads pass through to the underlying store.
func NewReadOnlyStore(s Store) Store {
	return &readOnlyStore{Store: s}
}

func (r *readOnlyStore) CreateUser(ctx context.Context, user *models.User) error { return ErrReadOnly }
func (r *readOnlyStore) UpdateUser(ctx context.Context, user *models.User) error { return ErrReadOnly }
func (r *readOnlyStore) DeleteUser(ctx context.Context, id models.UserID) error  { return ErrReadOnly }

func (r *readOnlyStore) CreateWorkspace(ctx context.Context, ws *models.Workspace) error {
	return ErrReadOnly
}
func (r *readOnlyStore) UpdateWorkspace(ctx context.Context, ws *models.Workspace) error {
	return ErrReadOnly
}
func (r *readOnlyStore) DeleteWorkspace(ctx context.Context, id models.WorkspaceID) error {
	return ErrReadOnly
}

func (r *readOnlyStore) CreateProject(ctx context.Context, p *models.Project) error {
	return ErrReadOnly
}
func (r *readOnlyStore) UpdateProject(ctx context.Context, p *models.Project) error {
	return ErrReadOnly
}
func (r *readOnlyStore) DeleteProject(ctx context.Context, id models.ProjectID) error {
	return ErrReadOnly
}

func (r *readOnlyStore) CreateClientRequirement(ctx context.Context, cr *models.ClientRequirement) error {
	return ErrReadOnly
}
func (r *readOnlyStore) UpdateClientRequirement(ctx context.Context, cr *models.ClientRequirement) error {
	return ErrReadOnly
}
func (r *readOnlyStore) DeleteClientRequirement(ctx context.Context, id models.ClientRequirementID) error {
	return ErrReadOnly
}

func (r *readOnlyStore) CreateEpic(ctx context.Context, e *models.Epic) error { return ErrReadOnly }
func (r *readOnlyStore) UpdateEpic(ctx context.Context, e *models.Epic) error { return ErrReadOnly }
func (r *readOnlyStore) DeleteEpic(ctx context.Context, id models.EpicID) error {
	return ErrReadOnly
}

func (r *readOnlyStore) CreateFunctionalRequirement(ctx context.Context, fr *models.FunctionalRequirement) error {
	return ErrReadOnly
}
func (r *readOnlyStore) UpdateFunctionalRequirement(ctx context.Context, fr *models.FunctionalRequirement) error {
	return ErrReadOnly
}
func (r *readOnlyStore) DeleteFunctionalRequirement(ctx context.Context, id models.FunctionalRequirementID) error {
	return ErrReadOnly
}

func (r *readOnlyStore) CreateTask(ctx context.Context, t *models.Task) error { return ErrReadOnly }
func (r *readOnlyStore) UpdateTask(ctx context.Context, t *models.Task) error { return ErrReadOnly }
func (r *readOnlyStore) DeleteTask(ctx context.Context, id models.TaskID) error {
	return ErrReadOnly
}

func (r *readOnlyStore) CreateSprint(ctx context.Context, s *models.Sprint) error {
	return ErrReadOnly
}
func (r *readOnlyStore) UpdateSprint(ctx context.Context, s *models.Sprint) error {
	return ErrReadOnly
}
func (r *readOnlyStore) DeleteSprint(ctx context.Context, id models.SprintID) error {
	return ErrReadOnly
}

func (r *readOnlyStore) CreateMember(ctx context.Context, m *models.WorkspaceMember) error {
	return ErrReadOnly
}
func (r *readOnlyStore) UpdateMember(ctx context.Context, m *models.WorkspaceMember) error {
	return ErrReadOnly
}
func (r *readOnlyStore) DeleteMember(ctx context.Context, id models.MemberID) error {
	return ErrReadOnly
}

func (r *readOnlyStore) CreateRole(ctx context.Context, role *models.Role) error { return ErrReadOnly }
func (r *readOnlyStore) UpdateRole(ctx context.Context, role *models.Role) error { return ErrReadOnly }
func (r *readOnlyStore) DeleteRole(ctx context.Context, id models.RoleID) error {
	return ErrReadOnly
}

func (r *readOnlyStore) CreateInvitation(ctx context.Context, inv *models.Invitation) error {
	return ErrReadOnly
}
func (r *readOnlyStore) UpdateInvitation(ctx context.Context, inv *models.Invitation) error {
	return ErrReadOnly
}
func (r *readOnlyStore) DeleteInvitation(ctx context.Context, id models.InvitationID) error {
	return ErrReadOnly
}

func (r *readOnlyStore) CreateLeaveRequest(ctx context.Context, lr *models.LeaveRequest) error {
	return ErrReadOnly
}
func (r *readOnlyStore) UpdateLeaveRequest(ctx context.Context, lr *models.LeaveRequest) error {
	return ErrReadOnly
}
func (r *readOnlyStore) DeleteLeaveRequest(ctx context.Context, id models.LeaveRequestID) error {
	return ErrReadOnly
}

func (r *readOnlyStore) CreateTimeEntry(ctx context.Context, te *models.TimeEntry) error {
	return ErrReadOnly
}
func (r *readOnlyStore) UpdateTimeEntry(ctx context.Context, te *models.TimeEntry) error {
	return ErrReadOnly
}
func (r *readOnlyStore) DeleteTimeEntry(ctx context.Context, id models.TimeEntryID) error {
	return ErrReadOnly
}

func (r *readOnlyStore) CreateNotification(ctx context.Context, n *models.Notification) error {
	return ErrReadOnly
}
func (r *readOnlyStore) UpdateNotification(ctx context.Context, n *models.Notification) error {
	return ErrReadOnly
}
func (r *readOnlyStore) DeleteNotification(ctx context.Context, id models.NotificationID) error {
	return ErrReadOnly
}

func (r *readOnlyStore) Migrate(ctx context.Context) error { return ErrReadOnly }
