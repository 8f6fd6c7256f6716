package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tasklane/pkg/models"
	"tasklane/pkg/store"
	"tasklane/pkg/store/memory"
)

// seedWorkspace populates a workspace with two projects, a full requirement
// tree, tasks, time entries, sprints, members, roles, invitations, leave
// requests and notifications, and returns the workspace ID.
func seedWorkspace(t *testing.T, s store.Store) models.WorkspaceID {
	t.Helper()
	ctx := context.Background()

	owner := &models.User{Email: "owner@example.com", Name: "Owner", PasswordHash: "x"}
	require.NoError(t, s.CreateUser(ctx, owner))

	ws := &models.Workspace{Name: "Acme", Slug: "acme", OwnerID: owner.ID}
	require.NoError(t, s.CreateWorkspace(ctx, ws))

	role := &models.Role{WorkspaceID: ws.ID, Name: "admin"}
	require.NoError(t, s.CreateRole(ctx, role))
	require.NoError(t, s.CreateMember(ctx, &models.WorkspaceMember{
		WorkspaceID: ws.ID, UserID: owner.ID, RoleID: role.ID,
	}))
	require.NoError(t, s.CreateInvitation(ctx, &models.Invitation{
		WorkspaceID: ws.ID, Email: "new@example.com", RoleID: role.ID,
		Token: "tok-1", ExpiresAt: time.Now().Add(time.Hour),
	}))
	require.NoError(t, s.CreateLeaveRequest(ctx, &models.LeaveRequest{
		WorkspaceID: ws.ID, UserID: owner.ID, Type: models.LeaveTypeCasual,
		StartDate: time.Now(), EndDate: time.Now(),
	}))
	require.NoError(t, s.CreateNotification(ctx, &models.Notification{
		WorkspaceID: ws.ID, UserID: owner.ID, Kind: models.NotificationTaskAssigned,
		Title: "hello",
	}))

	for _, name := range []string{"Alpha", "Beta"} {
		p := &models.Project{WorkspaceID: ws.ID, Name: name, Prefix: "P" + name[:3]}
		require.NoError(t, s.CreateProject(ctx, p))

		cr := &models.ClientRequirement{ProjectID: p.ID, HierarchyID: p.Prefix + "-CRQ01", Title: "cr"}
		require.NoError(t, s.CreateClientRequirement(ctx, cr))
		e := &models.Epic{ProjectID: p.ID, ClientRequirementID: cr.ID, HierarchyID: p.Prefix + "-CRQ-EPC01", Title: "epic"}
		require.NoError(t, s.CreateEpic(ctx, e))
		fr := &models.FunctionalRequirement{ProjectID: p.ID, EpicID: e.ID, HierarchyID: p.Prefix + "-CRQ-EPC-FRQ01", Title: "fr"}
		require.NoError(t, s.CreateFunctionalRequirement(ctx, fr))

		sp := &models.Sprint{ProjectID: p.ID, Name: "Sprint 1", StartDate: time.Now(), EndDate: time.Now()}
		require.NoError(t, s.CreateSprint(ctx, sp))

		task := &models.Task{
			ProjectID: p.ID, FunctionalRequirementID: &fr.ID,
			HierarchyID: p.Prefix + "-CRQ-EPC-FRQ-01", Title: "task",
		}
		require.NoError(t, s.CreateTask(ctx, task))
		require.NoError(t, s.CreateTimeEntry(ctx, &models.TimeEntry{
			WorkspaceID: ws.ID, TaskID: task.ID, UserID: owner.ID,
			Date: time.Now(), Hours: 2,
		}))
	}

	return ws.ID
}

func TestCascadeDeleteWorkspace(t *testing.T) {
	ctx := context.Background()
	s := memory.New()
	wsID := seedWorkspace(t, s)

	require.NoError(t, store.CascadeDeleteWorkspace(ctx, s, wsID))

	ws, err := s.GetWorkspace(ctx, wsID)
	require.NoError(t, err)
	assert.Nil(t, ws, "workspace record should be gone")

	projects, err := s.ListProjects(ctx, wsID)
	require.NoError(t, err)
	assert.Empty(t, projects)

	members, err := s.ListMembers(ctx, wsID)
	require.NoError(t, err)
	assert.Empty(t, members)

	roles, err := s.ListRoles(ctx, wsID)
	require.NoError(t, err)
	assert.Empty(t, roles)

	invitations, err := s.ListInvitations(ctx, wsID)
	require.NoError(t, err)
	assert.Empty(t, invitations)

	leaves, err := s.ListLeaveRequests(ctx, wsID)
	require.NoError(t, err)
	assert.Empty(t, leaves)

	notifications, err := s.ListNotificationsByWorkspace(ctx, wsID)
	require.NoError(t, err)
	assert.Empty(t, notifications)

	// no orphaned hierarchy entries survive
	exists, err := s.HierarchyIDExists(ctx, "PAlp-CRQ01")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestCascadeLeavesOtherWorkspacesAlone(t *testing.T) {
	ctx := context.Background()
	s := memory.New()
	doomed := seedWorkspace(t, s)
	kept := seedWorkspace(t, s)

	require.NoError(t, store.CascadeDeleteWorkspace(ctx, s, doomed))

	ws, err := s.GetWorkspace(ctx, kept)
	require.NoError(t, err)
	require.NotNil(t, ws)

	projects, err := s.ListProjects(ctx, kept)
	require.NoError(t, err)
	assert.Len(t, projects, 2)
	for _, p := range projects {
		tasks, err := s.ListTasks(ctx, p.ID)
		require.NoError(t, err)
		assert.Len(t, tasks, 1)
	}
}

// failingStore wraps the memory store and fails task deletion, to verify the
// cascade keeps sweeping and reports every failure instead of stopping.
type failingStore struct {
	store.Store
}

func (f *failingStore) DeleteTask(ctx context.Context, id models.TaskID) error {
	return assert.AnError
}

func TestCascadeCollectsErrorsAndKeepsWorkspace(t *testing.T) {
	ctx := context.Background()
	mem := memory.New()
	wsID := seedWorkspace(t, mem)
	s := &failingStore{Store: mem}

	err := store.CascadeDeleteWorkspace(ctx, s, wsID)
	require.Error(t, err)
	assert.ErrorIs(t, err, assert.AnError)
	assert.Contains(t, err.Error(), "delete task")
	assert.Contains(t, err.Error(), "workspace record kept")

	// the workspace record is kept when part of the cascade failed
	ws, getErr := mem.GetWorkspace(ctx, wsID)
	require.NoError(t, getErr)
	assert.NotNil(t, ws)

	// unrelated collections were still swept
	roles, rErr := mem.ListRoles(ctx, wsID)
	require.NoError(t, rErr)
	assert.Empty(t, roles)
}
