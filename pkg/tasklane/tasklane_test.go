package tasklane_test

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tasklane/pkg/client"
	"tasklane/pkg/models"
	"tasklane/pkg/tasklane"
)

type testServer struct {
	app *tasklane.App
	url string
}

func newTestServer(t *testing.T) (*testServer, *client.Client) {
	t.Helper()

	app, err := tasklane.New(&tasklane.Config{
		Backend:   "memory",
		JWTSecret: "test-secret",
		BaseURL:   "http://localhost:8080",
	})
	require.NoError(t, err)

	srv := httptest.NewServer(app.Router())
	t.Cleanup(func() {
		srv.Close()
		_ = app.Close()
	})

	return &testServer{app: app, url: srv.URL}, client.NewClient(srv.URL)
}

// newClient opens a second, independently authenticated client against the
// same server.
func (ts *testServer) newClient() *client.Client {
	return client.NewClient(ts.url)
}

func signUp(t *testing.T, c *client.Client, email, name string) *models.User {
	t.Helper()
	resp, err := c.SignUp(context.Background(), email, "password123", name)
	require.NoError(t, err)
	require.NotEmpty(t, resp.Token)
	return resp.User
}

func TestAuthFlow(t *testing.T) {
	_, c := newTestServer(t)
	ctx := context.Background()

	user := signUp(t, c, "alice@example.com", "Alice")
	assert.Equal(t, "alice@example.com", user.Email)

	me, err := c.GetCurrentUser(ctx)
	require.NoError(t, err)
	assert.Equal(t, user.ID, me.ID)

	// Duplicate email is rejected.
	_, err = c.SignUp(ctx, "alice@example.com", "password123", "Alice Again")
	assert.Error(t, err)

	// Refresh rotates the token and the new one works.
	refreshed, err := c.RefreshToken(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, refreshed.Token)
	_, err = c.GetCurrentUser(ctx)
	require.NoError(t, err)

	require.NoError(t, c.SignOut(ctx))
	_, err = c.GetCurrentUser(ctx)
	assert.Error(t, err)

	// Wrong password is rejected, the right one works.
	_, err = c.SignIn(ctx, "alice@example.com", "wrong-password")
	assert.Error(t, err)
	resp, err := c.SignIn(ctx, "alice@example.com", "password123")
	require.NoError(t, err)
	assert.Equal(t, user.ID, resp.User.ID)
}

func TestWorkspaceLifecycle(t *testing.T) {
	ts, c := newTestServer(t)
	ctx := context.Background()

	owner := signUp(t, c, "owner@example.com", "Owner")

	ws, err := c.CreateWorkspace(ctx, &models.Workspace{Name: "Acme", Slug: "acme"})
	require.NoError(t, err)
	assert.Equal(t, owner.ID, ws.OwnerID)

	// Creation seeds an admin role and the owner's membership.
	roles, err := c.ListRoles(ctx, ws.ID)
	require.NoError(t, err)
	require.Len(t, roles, 1)
	assert.Equal(t, "admin", roles[0].Name)

	members, err := c.ListMembers(ctx, ws.ID)
	require.NoError(t, err)
	require.Len(t, members, 1)
	assert.Equal(t, owner.ID, members[0].UserID)

	workspaces, err := c.ListWorkspaces(ctx)
	require.NoError(t, err)
	assert.Len(t, workspaces, 1)

	// A non-owner cannot delete the workspace.
	c2 := ts.newClient()
	signUp(t, c2, "mallory@example.com", "Mallory")
	err = c2.DeleteWorkspace(ctx, ws.ID)
	assert.Error(t, err)

	require.NoError(t, c.DeleteWorkspace(ctx, ws.ID))
	workspaces, err = c.ListWorkspaces(ctx)
	require.NoError(t, err)
	assert.Empty(t, workspaces)
}

func TestHierarchyIDAssignment(t *testing.T) {
	_, c := newTestServer(t)
	ctx := context.Background()

	signUp(t, c, "lead@example.com", "Lead")
	ws, err := c.CreateWorkspace(ctx, &models.Workspace{Name: "Acme", Slug: "acme"})
	require.NoError(t, err)

	project, err := c.CreateProject(ctx, client.CreateProjectRequest{
		WorkspaceID: ws.ID,
		Name:        "Tasklane",
	})
	require.NoError(t, err)
	assert.Equal(t, "PTAS", project.Prefix)

	cr, err := c.CreateClientRequirement(ctx, client.CreateClientRequirementRequest{
		ProjectID: project.ID,
		Title:     "User Management",
	})
	require.NoError(t, err)
	assert.Equal(t, "PTAS-USE01", cr.HierarchyID)

	// Same letter segment advances the sequence instead of colliding.
	cr2, err := c.CreateClientRequirement(ctx, client.CreateClientRequirementRequest{
		ProjectID: project.ID,
		Title:     "Useful Reports",
	})
	require.NoError(t, err)
	assert.Equal(t, "PTAS-USE02", cr2.HierarchyID)

	epic, err := c.CreateEpic(ctx, client.CreateEpicRequest{
		ClientRequirementID: cr.ID,
		Title:               "Authentication",
	})
	require.NoError(t, err)
	assert.Equal(t, "PTAS-USE-AUT01", epic.HierarchyID)

	fr, err := c.CreateFunctionalRequirement(ctx, client.CreateFunctionalRequirementRequest{
		EpicID: epic.ID,
		Title:  "Login Flow",
	})
	require.NoError(t, err)
	assert.Equal(t, "PTAS-USE-AUT-LOG01", fr.HierarchyID)

	task, err := c.CreateTask(ctx, client.CreateTaskRequest{
		ProjectID:               project.ID,
		FunctionalRequirementID: &fr.ID,
		Title:                   "Build the login form",
	})
	require.NoError(t, err)
	assert.Equal(t, "PTAS-USE-AUT-LOG-01", task.HierarchyID)

	task2, err := c.CreateTask(ctx, client.CreateTaskRequest{
		ProjectID:               project.ID,
		FunctionalRequirementID: &fr.ID,
		Title:                   "Validate credentials",
	})
	require.NoError(t, err)
	assert.Equal(t, "PTAS-USE-AUT-LOG-02", task2.HierarchyID)

	// Standalone tasks hang off the project prefix.
	loose, err := c.CreateTask(ctx, client.CreateTaskRequest{
		ProjectID: project.ID,
		Title:     "Set up CI",
	})
	require.NoError(t, err)
	assert.Equal(t, "PTAS-01", loose.HierarchyID)

	// Subtasks extend the parent task's identifier.
	sub, err := c.CreateTask(ctx, client.CreateTaskRequest{
		ProjectID:    project.ID,
		ParentTaskID: &task.ID,
		Title:        "Style the form",
	})
	require.NoError(t, err)
	assert.Equal(t, "PTAS-USE-AUT-LOG-01-01", sub.HierarchyID)
}

func TestBulkSaveRequirements(t *testing.T) {
	_, c := newTestServer(t)
	ctx := context.Background()

	signUp(t, c, "importer@example.com", "Importer")
	ws, err := c.CreateWorkspace(ctx, &models.Workspace{Name: "Acme", Slug: "acme"})
	require.NoError(t, err)
	project, err := c.CreateProject(ctx, client.CreateProjectRequest{WorkspaceID: ws.ID, Name: "Billing"})
	require.NoError(t, err)

	result, err := c.BulkSaveRequirements(ctx, client.BulkSaveRequest{
		ProjectID: project.ID,
		Requirements: []client.BulkRequirement{
			{
				Title: "Invoicing",
				Epics: []client.BulkEpic{
					{
						Title: "Generation",
						FunctionalRequirements: []client.BulkFunctionalReq{
							{Title: "Monthly run"},
						},
					},
				},
			},
			{Title: "Payments"},
			{Title: ""}, // skipped
		},
		Epics: []client.BulkEpic{
			{Title: "Reminders"},
			{Title: "Disputes"},
			{Title: "Refunds"},
		},
	})
	require.NoError(t, err)

	// 2 requirements + 1 nested epic + 1 nested FR + 3 flat epics.
	assert.Equal(t, 7, result.Saved)
	assert.Equal(t, 1, result.Skipped)
	assert.Empty(t, result.Errors)
	require.Len(t, result.ClientRequirements, 2)
	require.Len(t, result.Epics, 4)
	require.Len(t, result.FunctionalRequirements, 1)

	// Flat epics alternate over the two requirements round-robin.
	flat := result.Epics[1:]
	assert.Equal(t, result.ClientRequirements[0].ID, flat[0].ClientRequirementID)
	assert.Equal(t, result.ClientRequirements[1].ID, flat[1].ClientRequirementID)
	assert.Equal(t, result.ClientRequirements[0].ID, flat[2].ClientRequirementID)

	// Flat items without any possible parent are reported, not dropped
	// silently.
	empty, err := c.CreateProject(ctx, client.CreateProjectRequest{WorkspaceID: ws.ID, Name: "Empty"})
	require.NoError(t, err)
	_, err = c.BulkSaveRequirements(ctx, client.BulkSaveRequest{
		ProjectID: empty.ID,
		Epics:     []client.BulkEpic{{Title: "Orphan"}},
	})
	assert.Error(t, err)
}

func TestTaskListingFiltersAndSort(t *testing.T) {
	_, c := newTestServer(t)
	ctx := context.Background()

	signUp(t, c, "pm@example.com", "PM")
	ws, err := c.CreateWorkspace(ctx, &models.Workspace{Name: "Acme", Slug: "acme"})
	require.NoError(t, err)
	project, err := c.CreateProject(ctx, client.CreateProjectRequest{WorkspaceID: ws.ID, Name: "Core"})
	require.NoError(t, err)

	mk := func(title string, p models.Priority) *models.Task {
		task, err := c.CreateTask(ctx, client.CreateTaskRequest{
			ProjectID: project.ID,
			Title:     title,
			Priority:  p,
		})
		require.NoError(t, err)
		return task
	}
	low := mk("cleanup", models.PriorityLow)
	crit := mk("outage", models.PriorityCritical)
	med := mk("feature", models.PriorityMedium)

	tasks, err := c.ListTasks(ctx, project.ID, client.ListTasksOptions{Sort: "priority:desc"})
	require.NoError(t, err)
	require.Len(t, tasks, 3)
	assert.Equal(t, crit.ID, tasks[0].ID)
	assert.Equal(t, med.ID, tasks[1].ID)
	assert.Equal(t, low.ID, tasks[2].ID)

	tasks, err = c.ListTasks(ctx, project.ID, client.ListTasksOptions{Priority: "critical"})
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, crit.ID, tasks[0].ID)

	// More than three sort criteria is a client error.
	_, err = c.ListTasks(ctx, project.ID, client.ListTasksOptions{Sort: "priority,urgency,status,title"})
	assert.Error(t, err)

	// Moving a task to done via update.
	updated, err := c.UpdateTask(ctx, low.ID, map[string]any{"status": "done"})
	require.NoError(t, err)
	assert.Equal(t, models.TaskStatusDone, updated.Status)

	tasks, err = c.ListTasks(ctx, project.ID, client.ListTasksOptions{Status: "done"})
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, low.ID, tasks[0].ID)
}

func TestInvitationFlow(t *testing.T) {
	ts, c := newTestServer(t)
	ctx := context.Background()

	signUp(t, c, "owner@example.com", "Owner")
	ws, err := c.CreateWorkspace(ctx, &models.Workspace{Name: "Acme", Slug: "acme"})
	require.NoError(t, err)
	roles, err := c.ListRoles(ctx, ws.ID)
	require.NoError(t, err)

	inv, err := c.SendInvitation(ctx, client.SendInvitationRequest{
		WorkspaceID: ws.ID,
		Email:       "newbie@example.com",
		RoleID:      roles[0].ID,
	})
	require.NoError(t, err)
	assert.Equal(t, models.InvitationStatusPending, inv.Status)

	// The signed token never appears in API responses; read it from the
	// store the way the emailed link would carry it.
	stored, err := ts.app.Store().GetInvitation(ctx, inv.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	require.NotEmpty(t, stored.Token)

	// A tampered token is rejected before any store lookup.
	c2 := ts.newClient()
	_, err = c2.AcceptInvitation(ctx, client.AcceptInvitationRequest{
		Token:    stored.Token + "x",
		Name:     "Newbie",
		Password: "password123",
	})
	assert.Error(t, err)

	resp, err := c2.AcceptInvitation(ctx, client.AcceptInvitationRequest{
		Token:    stored.Token,
		Name:     "Newbie",
		Password: "password123",
	})
	require.NoError(t, err)
	assert.Equal(t, "newbie@example.com", resp.User.Email)

	members, err := c.ListMembers(ctx, ws.ID)
	require.NoError(t, err)
	assert.Len(t, members, 2)

	// Accepting twice fails; the invitation is spent.
	_, err = c2.AcceptInvitation(ctx, client.AcceptInvitationRequest{Token: stored.Token})
	assert.Error(t, err)

	// The inviter was notified of the acceptance.
	notifications, err := c.ListNotifications(ctx, true)
	require.NoError(t, err)
	require.Len(t, notifications, 1)
	assert.Equal(t, models.NotificationInviteUpdated, notifications[0].Kind)
}

func TestLeaveRequestFlow(t *testing.T) {
	ts, c := newTestServer(t)
	ctx := context.Background()

	signUp(t, c, "manager@example.com", "Manager")
	ws, err := c.CreateWorkspace(ctx, &models.Workspace{Name: "Acme", Slug: "acme"})
	require.NoError(t, err)
	roles, err := c.ListRoles(ctx, ws.ID)
	require.NoError(t, err)

	// Second member joins through an invitation.
	inv, err := c.SendInvitation(ctx, client.SendInvitationRequest{
		WorkspaceID: ws.ID,
		Email:       "dev@example.com",
		RoleID:      roles[0].ID,
	})
	require.NoError(t, err)
	stored, err := ts.app.Store().GetInvitation(ctx, inv.ID)
	require.NoError(t, err)

	dev := ts.newClient()
	_, err = dev.AcceptInvitation(ctx, client.AcceptInvitationRequest{
		Token:    stored.Token,
		Name:     "Dev",
		Password: "password123",
	})
	require.NoError(t, err)

	// Monday through Friday, working days exclude nothing.
	start := time.Date(2026, time.March, 2, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, time.March, 6, 0, 0, 0, 0, time.UTC)
	lr, err := dev.CreateLeaveRequest(ctx, client.CreateLeaveRequest{
		WorkspaceID: ws.ID,
		Type:        models.LeaveTypeCasual,
		StartDate:   start,
		EndDate:     end,
		Reason:      "vacation",
	})
	require.NoError(t, err)
	assert.Equal(t, 5, lr.WorkingDays)
	assert.Equal(t, models.LeaveStatusPending, lr.Status)

	// A weekend-only span is rejected.
	sat := time.Date(2026, time.March, 7, 0, 0, 0, 0, time.UTC)
	_, err = dev.CreateLeaveRequest(ctx, client.CreateLeaveRequest{
		WorkspaceID: ws.ID,
		Type:        models.LeaveTypeCasual,
		StartDate:   sat,
		EndDate:     sat,
	})
	assert.Error(t, err)

	// The requester cannot decide their own request.
	_, err = dev.ApproveLeaveRequest(ctx, lr.ID)
	assert.Error(t, err)

	decided, err := c.ApproveLeaveRequest(ctx, lr.ID)
	require.NoError(t, err)
	assert.Equal(t, models.LeaveStatusApproved, decided.Status)
	require.NotNil(t, decided.DecidedBy)
	require.NotNil(t, decided.DecidedAt)

	// Decided requests cannot be decided again or withdrawn.
	_, err = c.RejectLeaveRequest(ctx, lr.ID)
	assert.Error(t, err)

	// The requester was notified of the decision.
	notifications, err := dev.ListNotifications(ctx, true)
	require.NoError(t, err)
	require.Len(t, notifications, 1)
	assert.Equal(t, models.NotificationLeaveDecided, notifications[0].Kind)

	mine, err := dev.ListMyLeaveRequests(ctx)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, models.LeaveStatusApproved, mine[0].Status)

	// The summary counts only approved working days.
	summary, err := c.LeaveSummary(ctx, ws.ID)
	require.NoError(t, err)
	require.Len(t, summary, 1)
	assert.Equal(t, mine[0].UserID, summary[0].UserID)
	assert.Equal(t, 5, summary[0].TotalDays)
	assert.Equal(t, 5, summary[0].ByType[models.LeaveTypeCasual])
}

func TestTimeTracking(t *testing.T) {
	_, c := newTestServer(t)
	ctx := context.Background()

	signUp(t, c, "tracker@example.com", "Tracker")
	ws, err := c.CreateWorkspace(ctx, &models.Workspace{Name: "Acme", Slug: "acme"})
	require.NoError(t, err)
	project, err := c.CreateProject(ctx, client.CreateProjectRequest{WorkspaceID: ws.ID, Name: "Core"})
	require.NoError(t, err)
	task, err := c.CreateTask(ctx, client.CreateTaskRequest{ProjectID: project.ID, Title: "Implement parser"})
	require.NoError(t, err)

	day := time.Date(2026, time.March, 3, 0, 0, 0, 0, time.UTC)
	_, err = c.CreateTimeEntry(ctx, client.CreateTimeEntryRequest{TaskID: task.ID, Date: day, Hours: 3.5})
	require.NoError(t, err)
	_, err = c.CreateTimeEntry(ctx, client.CreateTimeEntryRequest{TaskID: task.ID, Date: day.AddDate(0, 0, 1), Hours: 4})
	require.NoError(t, err)

	// Out-of-range hours are rejected.
	_, err = c.CreateTimeEntry(ctx, client.CreateTimeEntryRequest{TaskID: task.ID, Date: day, Hours: 25})
	assert.Error(t, err)

	list, err := c.ListTimeEntries(ctx, task.ID)
	require.NoError(t, err)
	assert.Len(t, list.Entries, 2)
	assert.InDelta(t, 7.5, list.TotalHours, 1e-9)
}

func TestNotificationOnAssignment(t *testing.T) {
	ts, c := newTestServer(t)
	ctx := context.Background()

	signUp(t, c, "lead@example.com", "Lead")
	ws, err := c.CreateWorkspace(ctx, &models.Workspace{Name: "Acme", Slug: "acme"})
	require.NoError(t, err)
	project, err := c.CreateProject(ctx, client.CreateProjectRequest{WorkspaceID: ws.ID, Name: "Core"})
	require.NoError(t, err)

	assigneeClient := ts.newClient()
	assignee := signUp(t, assigneeClient, "worker@example.com", "Worker")

	_, err = c.CreateTask(ctx, client.CreateTaskRequest{
		ProjectID:  project.ID,
		Title:      "Wire the dashboard",
		AssigneeID: &assignee.ID,
	})
	require.NoError(t, err)

	notifications, err := assigneeClient.ListNotifications(ctx, true)
	require.NoError(t, err)
	require.Len(t, notifications, 1)
	assert.Equal(t, models.NotificationTaskAssigned, notifications[0].Kind)

	read, err := assigneeClient.MarkNotificationRead(ctx, notifications[0].ID)
	require.NoError(t, err)
	assert.NotNil(t, read.ReadAt)

	notifications, err = assigneeClient.ListNotifications(ctx, true)
	require.NoError(t, err)
	assert.Empty(t, notifications)
}

func TestReadOnlyMode(t *testing.T) {
	app, err := tasklane.New(&tasklane.Config{
		Backend:   "memory",
		JWTSecret: "test-secret",
		ReadOnly:  true,
	})
	require.NoError(t, err)

	srv := httptest.NewServer(app.Router())
	defer srv.Close()
	defer app.Close()

	c := client.NewClient(srv.URL)
	_, err = c.SignUp(context.Background(), "nobody@example.com", "password123", "Nobody")
	assert.Error(t, err)
}
