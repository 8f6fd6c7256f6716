// Package memory implements the store interface with in-process maps.
// It backs the test suites and is handy for local development when no
// database is running. All data is lost on shutdown.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"tasklane/pkg/models"
	"tasklane/pkg/store"
)

var _ store.Store = (*Store)(nil)

// Store is a map-backed store. Safe for concurrent use. Every method hands
// out copies, so callers can mutate results without corrupting the store.
type Store struct {
	mu sync.RWMutex

	users         map[models.UserID]*models.User
	workspaces    map[models.WorkspaceID]*models.Workspace
	projects      map[models.ProjectID]*models.Project
	clientReqs    map[models.ClientRequirementID]*models.ClientRequirement
	epics         map[models.EpicID]*models.Epic
	functionals   map[models.FunctionalRequirementID]*models.FunctionalRequirement
	tasks         map[models.TaskID]*models.Task
	sprints       map[models.SprintID]*models.Sprint
	members       map[models.MemberID]*models.WorkspaceMember
	roles         map[models.RoleID]*models.Role
	invitations   map[models.InvitationID]*models.Invitation
	leaveRequests map[models.LeaveRequestID]*models.LeaveRequest
	timeEntries   map[models.TimeEntryID]*models.TimeEntry
	notifications map[models.NotificationID]*models.Notification
}

// New returns an empty in-memory store.
func New() *Store {
	return &Store{
		users:         make(map[models.UserID]*models.User),
		workspaces:    make(map[models.WorkspaceID]*models.Workspace),
		projects:      make(map[models.ProjectID]*models.Project),
		clientReqs:    make(map[models.ClientRequirementID]*models.ClientRequirement),
		epics:         make(map[models.EpicID]*models.Epic),
		functionals:   make(map[models.FunctionalRequirementID]*models.FunctionalRequirement),
		tasks:         make(map[models.TaskID]*models.Task),
		sprints:       make(map[models.SprintID]*models.Sprint),
		members:       make(map[models.MemberID]*models.WorkspaceMember),
		roles:         make(map[models.RoleID]*models.Role),
		invitations:   make(map[models.InvitationID]*models.Invitation),
		leaveRequests: make(map[models.LeaveRequestID]*models.LeaveRequest),
		timeEntries:   make(map[models.TimeEntryID]*models.TimeEntry),
		notifications: make(map[models.NotificationID]*models.Notification),
	}
}

func stamp(createdAt, updatedAt *time.Time) {
	now := time.Now()
	if createdAt.IsZero() {
		*createdAt = now
	}
	if updatedAt.IsZero() {
		*updatedAt = now
	}
}

// Users

func (s *Store) CreateUser(ctx context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if user.ID.IsZero() {
		user.ID = models.NewUserID()
	}
	stamp(&user.CreatedAt, &user.UpdatedAt)
	c := *user
	s.users[user.ID] = &c
	return nil
}

func (s *Store) GetUser(ctx context.Context, id models.UserID) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[id]
	if !ok {
		return nil, nil
	}
	c := *u
	return &c, nil
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if strings.EqualFold(u.Email, email) {
			c := *u
			return &c, nil
		}
	}
	return nil, nil
}

func (s *Store) UpdateUser(ctx context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	user.UpdatedAt = time.Now()
	c := *user
	s.users[user.ID] = &c
	return nil
}

func (s *Store) DeleteUser(ctx context.Context, id models.UserID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.users, id)
	return nil
}

func (s *Store) ListUsers(ctx context.Context) ([]*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.User, 0, len(s.users))
	for _, u := range s.users {
		c := *u
		out = append(out, &c)
	}
	sortByCreated(out, func(u *models.User) time.Time { return u.CreatedAt })
	return out, nil
}

// Workspaces

func (s *Store) CreateWorkspace(ctx context.Context, ws *models.Workspace) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if ws.ID.IsZero() {
		ws.ID = models.NewWorkspaceID()
	}
	stamp(&ws.CreatedAt, &ws.UpdatedAt)
	c := *ws
	s.workspaces[ws.ID] = &c
	return nil
}

func (s *Store) GetWorkspace(ctx context.Context, id models.WorkspaceID) (*models.Workspace, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ws, ok := s.workspaces[id]
	if !ok {
		return nil, nil
	}
	c := *ws
	return &c, nil
}

func (s *Store) UpdateWorkspace(ctx context.Context, ws *models.Workspace) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	ws.UpdatedAt = time.Now()
	c := *ws
	s.workspaces[ws.ID] = &c
	return nil
}

func (s *Store) DeleteWorkspace(ctx context.Context, id models.WorkspaceID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.workspaces, id)
	return nil
}

func (s *Store) ListWorkspacesByUser(ctx context.Context, userID models.UserID) ([]*models.Workspace, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	memberOf := make(map[models.WorkspaceID]bool)
	for _, m := range s.members {
		if m.UserID == userID {
			memberOf[m.WorkspaceID] = true
		}
	}

	var out []*models.Workspace
	for _, ws := range s.workspaces {
		if ws.OwnerID == userID || memberOf[ws.ID] {
			c := *ws
			out = append(out, &c)
		}
	}
	sortByCreated(out, func(w *models.Workspace) time.Time { return w.CreatedAt })
	return out, nil
}

// Projects

func (s *Store) CreateProject(ctx context.Context, p *models.Project) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p.ID.IsZero() {
		p.ID = models.NewProjectID()
	}
	stamp(&p.CreatedAt, &p.UpdatedAt)
	c := *p
	s.projects[p.ID] = &c
	return nil
}

func (s *Store) GetProject(ctx context.Context, id models.ProjectID) (*models.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.projects[id]
	if !ok {
		return nil, nil
	}
	c := *p
	return &c, nil
}

func (s *Store) UpdateProject(ctx context.Context, p *models.Project) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p.UpdatedAt = time.Now()
	c := *p
	s.projects[p.ID] = &c
	return nil
}

func (s *Store) DeleteProject(ctx context.Context, id models.ProjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.projects, id)
	return nil
}

func (s *Store) ListProjects(ctx context.Context, workspaceID models.WorkspaceID) ([]*models.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*models.Project
	for _, p := range s.projects {
		if p.WorkspaceID == workspaceID {
			c := *p
			out = append(out, &c)
		}
	}
	sortByCreated(out, func(p *models.Project) time.Time { return p.CreatedAt })
	return out, nil
}

// Requirement hierarchy

func (s *Store) HierarchyIDExists(ctx context.Context, hierarchyID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, cr := range s.clientReqs {
		if cr.HierarchyID == hierarchyID {
			return true, nil
		}
	}
	for _, e := range s.epics {
		if e.HierarchyID == hierarchyID {
			return true, nil
		}
	}
	for _, fr := range s.functionals {
		if fr.HierarchyID == hierarchyID {
			return true, nil
		}
	}
	for _, t := range s.tasks {
		if t.HierarchyID == hierarchyID {
			return true, nil
		}
	}
	return false, nil
}

func (s *Store) CreateClientRequirement(ctx context.Context, cr *models.ClientRequirement) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if cr.ID.IsZero() {
		cr.ID = models.NewClientRequirementID()
	}
	stamp(&cr.CreatedAt, &cr.UpdatedAt)
	c := *cr
	s.clientReqs[cr.ID] = &c
	return nil
}

func (s *Store) GetClientRequirement(ctx context.Context, id models.ClientRequirementID) (*models.ClientRequirement, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	cr, ok := s.clientReqs[id]
	if !ok {
		return nil, nil
	}
	c := *cr
	return &c, nil
}

func (s *Store) UpdateClientRequirement(ctx context.Context, cr *models.ClientRequirement) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cr.UpdatedAt = time.Now()
	c := *cr
	s.clientReqs[cr.ID] = &c
	return nil
}

func (s *Store) DeleteClientRequirement(ctx context.Context, id models.ClientRequirementID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.clientReqs, id)
	return nil
}

func (s *Store) ListClientRequirements(ctx context.Context, projectID models.ProjectID) ([]*models.ClientRequirement, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*models.ClientRequirement
	for _, cr := range s.clientReqs {
		if cr.ProjectID == projectID {
			c := *cr
			out = append(out, &c)
		}
	}
	sortByCreated(out, func(cr *models.ClientRequirement) time.Time { return cr.CreatedAt })
	return out, nil
}

func (s *Store) CreateEpic(ctx context.Context, e *models.Epic) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if e.ID.IsZero() {
		e.ID = models.NewEpicID()
	}
	stamp(&e.CreatedAt, &e.UpdatedAt)
	c := *e
	s.epics[e.ID] = &c
	return nil
}

func (s *Store) GetEpic(ctx context.Context, id models.EpicID) (*models.Epic, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.epics[id]
	if !ok {
		return nil, nil
	}
	c := *e
	return &c, nil
}

func (s *Store) UpdateEpic(ctx context.Context, e *models.Epic) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	e.UpdatedAt = time.Now()
	c := *e
	s.epics[e.ID] = &c
	return nil
}

func (s *Store) DeleteEpic(ctx context.Context, id models.EpicID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.epics, id)
	return nil
}

func (s *Store) ListEpics(ctx context.Context, projectID models.ProjectID) ([]*models.Epic, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*models.Epic
	for _, e := range s.epics {
		if e.ProjectID == projectID {
			c := *e
			out = append(out, &c)
		}
	}
	sortByCreated(out, func(e *models.Epic) time.Time { return e.CreatedAt })
	return out, nil
}

func (s *Store) ListEpicsByRequirement(ctx context.Context, crID models.ClientRequirementID) ([]*models.Epic, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*models.Epic
	for _, e := range s.epics {
		if e.ClientRequirementID == crID {
			c := *e
			out = append(out, &c)
		}
	}
	sortByCreated(out, func(e *models.Epic) time.Time { return e.CreatedAt })
	return out, nil
}

func (s *Store) CreateFunctionalRequirement(ctx context.Context, fr *models.FunctionalRequirement) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if fr.ID.IsZero() {
		fr.ID = models.NewFunctionalRequirementID()
	}
	stamp(&fr.CreatedAt, &fr.UpdatedAt)
	c := *fr
	s.functionals[fr.ID] = &c
	return nil
}

func (s *Store) GetFunctionalRequirement(ctx context.Context, id models.FunctionalRequirementID) (*models.FunctionalRequirement, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	fr, ok := s.functionals[id]
	if !ok {
		return nil, nil
	}
	c := *fr
	return &c, nil
}

func (s *Store) UpdateFunctionalRequirement(ctx context.Context, fr *models.FunctionalRequirement) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	fr.UpdatedAt = time.Now()
	c := *fr
	s.functionals[fr.ID] = &c
	return nil
}

func (s *Store) DeleteFunctionalRequirement(ctx context.Context, id models.FunctionalRequirementID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.functionals, id)
	return nil
}

func (s *Store) ListFunctionalRequirements(ctx context.Context, projectID models.ProjectID) ([]*models.FunctionalRequirement, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*models.FunctionalRequirement
	for _, fr := range s.functionals {
		if fr.ProjectID == projectID {
			c := *fr
			out = append(out, &c)
		}
	}
	sortByCreated(out, func(fr *models.FunctionalRequirement) time.Time { return fr.CreatedAt })
	return out, nil
}

func (s *Store) ListFunctionalRequirementsByEpic(ctx context.Context, epicID models.EpicID) ([]*models.FunctionalRequirement, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*models.FunctionalRequirement
	for _, fr := range s.functionals {
		if fr.EpicID == epicID {
			c := *fr
			out = append(out, &c)
		}
	}
	sortByCreated(out, func(fr *models.FunctionalRequirement) time.Time { return fr.CreatedAt })
	return out, nil
}

// Tasks

func (s *Store) CreateTask(ctx context.Context, t *models.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t.ID.IsZero() {
		t.ID = models.NewTaskID()
	}
	stamp(&t.CreatedAt, &t.UpdatedAt)
	c := *t
	s.tasks[t.ID] = &c
	return nil
}

func (s *Store) GetTask(ctx context.Context, id models.TaskID) (*models.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.tasks[id]
	if !ok {
		return nil, nil
	}
	c := *t
	return &c, nil
}

func (s *Store) UpdateTask(ctx context.Context, t *models.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	t.UpdatedAt = time.Now()
	c := *t
	s.tasks[t.ID] = &c
	return nil
}

func (s *Store) DeleteTask(ctx context.Context, id models.TaskID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.tasks, id)
	return nil
}

func (s *Store) ListTasks(ctx context.Context, projectID models.ProjectID) ([]*models.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*models.Task
	for _, t := range s.tasks {
		if t.ProjectID == projectID {
			c := *t
			out = append(out, &c)
		}
	}
	sortByCreated(out, func(t *models.Task) time.Time { return t.CreatedAt })
	return out, nil
}

func (s *Store) ListTasksBySprint(ctx context.Context, sprintID models.SprintID) ([]*models.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*models.Task
	for _, t := range s.tasks {
		if t.SprintID != nil && *t.SprintID == sprintID {
			c := *t
			out = append(out, &c)
		}
	}
	sortByCreated(out, func(t *models.Task) time.Time { return t.CreatedAt })
	return out, nil
}

func (s *Store) ListTasksByAssignee(ctx context.Context, userID models.UserID) ([]*models.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*models.Task
	for _, t := range s.tasks {
		if t.AssigneeID != nil && *t.AssigneeID == userID {
			c := *t
			out = append(out, &c)
		}
	}
	sortByCreated(out, func(t *models.Task) time.Time { return t.CreatedAt })
	return out, nil
}

// Sprints

func (s *Store) CreateSprint(ctx context.Context, sp *models.Sprint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sp.ID.IsZero() {
		sp.ID = models.NewSprintID()
	}
	stamp(&sp.CreatedAt, &sp.UpdatedAt)
	c := *sp
	s.sprints[sp.ID] = &c
	return nil
}

func (s *Store) GetSprint(ctx context.Context, id models.SprintID) (*models.Sprint, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sp, ok := s.sprints[id]
	if !ok {
		return nil, nil
	}
	c := *sp
	return &c, nil
}

func (s *Store) UpdateSprint(ctx context.Context, sp *models.Sprint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	sp.UpdatedAt = time.Now()
	c := *sp
	s.sprints[sp.ID] = &c
	return nil
}

func (s *Store) DeleteSprint(ctx context.Context, id models.SprintID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sprints, id)
	return nil
}

func (s *Store) ListSprints(ctx context.Context, projectID models.ProjectID) ([]*models.Sprint, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*models.Sprint
	for _, sp := range s.sprints {
		if sp.ProjectID == projectID {
			c := *sp
			out = append(out, &c)
		}
	}
	sortByCreated(out, func(sp *models.Sprint) time.Time { return sp.CreatedAt })
	return out, nil
}

// Membership and roles

func (s *Store) CreateMember(ctx context.Context, m *models.WorkspaceMember) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if m.ID.IsZero() {
		m.ID = models.NewMemberID()
	}
	stamp(&m.CreatedAt, &m.UpdatedAt)
	if m.JoinedAt.IsZero() {
		m.JoinedAt = m.CreatedAt
	}
	c := *m
	s.members[m.ID] = &c
	return nil
}

func (s *Store) GetMember(ctx context.Context, id models.MemberID) (*models.WorkspaceMember, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	m, ok := s.members[id]
	if !ok {
		return nil, nil
	}
	c := *m
	return &c, nil
}

func (s *Store) GetMemberByUser(ctx context.Context, workspaceID models.WorkspaceID, userID models.UserID) (*models.WorkspaceMember, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, m := range s.members {
		if m.WorkspaceID == workspaceID && m.UserID == userID {
			c := *m
			return &c, nil
		}
	}
	return nil, nil
}

func (s *Store) UpdateMember(ctx context.Context, m *models.WorkspaceMember) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	m.UpdatedAt = time.Now()
	c := *m
	s.members[m.ID] = &c
	return nil
}

func (s *Store) DeleteMember(ctx context.Context, id models.MemberID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.members, id)
	return nil
}

func (s *Store) ListMembers(ctx context.Context, workspaceID models.WorkspaceID) ([]*models.WorkspaceMember, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*models.WorkspaceMember
	for _, m := range s.members {
		if m.WorkspaceID == workspaceID {
			c := *m
			out = append(out, &c)
		}
	}
	sortByCreated(out, func(m *models.WorkspaceMember) time.Time { return m.CreatedAt })
	return out, nil
}

func (s *Store) CreateRole(ctx context.Context, r *models.Role) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if r.ID.IsZero() {
		r.ID = models.NewRoleID()
	}
	stamp(&r.CreatedAt, &r.UpdatedAt)
	c := *r
	s.roles[r.ID] = &c
	return nil
}

func (s *Store) GetRole(ctx context.Context, id models.RoleID) (*models.Role, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.roles[id]
	if !ok {
		return nil, nil
	}
	c := *r
	return &c, nil
}

func (s *Store) UpdateRole(ctx context.Context, r *models.Role) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	r.UpdatedAt = time.Now()
	c := *r
	s.roles[r.ID] = &c
	return nil
}

func (s *Store) DeleteRole(ctx context.Context, id models.RoleID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.roles, id)
	return nil
}

func (s *Store) ListRoles(ctx context.Context, workspaceID models.WorkspaceID) ([]*models.Role, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*models.Role
	for _, r := range s.roles {
		if r.WorkspaceID == workspaceID {
			c := *r
			out = append(out, &c)
		}
	}
	sortByCreated(out, func(r *models.Role) time.Time { return r.CreatedAt })
	return out, nil
}

// Invitations

func (s *Store) CreateInvitation(ctx context.Context, inv *models.Invitation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if inv.ID.IsZero() {
		inv.ID = models.NewInvitationID()
	}
	stamp(&inv.CreatedAt, &inv.UpdatedAt)
	c := *inv
	s.invitations[inv.ID] = &c
	return nil
}

func (s *Store) GetInvitation(ctx context.Context, id models.InvitationID) (*models.Invitation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	inv, ok := s.invitations[id]
	if !ok {
		return nil, nil
	}
	c := *inv
	return &c, nil
}

func (s *Store) GetInvitationByToken(ctx context.Context, token string) (*models.Invitation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, inv := range s.invitations {
		if inv.Token == token {
			c := *inv
			return &c, nil
		}
	}
	return nil, nil
}

func (s *Store) UpdateInvitation(ctx context.Context, inv *models.Invitation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	inv.UpdatedAt = time.Now()
	c := *inv
	s.invitations[inv.ID] = &c
	return nil
}

func (s *Store) DeleteInvitation(ctx context.Context, id models.InvitationID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.invitations, id)
	return nil
}

func (s *Store) ListInvitations(ctx context.Context, workspaceID models.WorkspaceID) ([]*models.Invitation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*models.Invitation
	for _, inv := range s.invitations {
		if inv.WorkspaceID == workspaceID {
			c := *inv
			out = append(out, &c)
		}
	}
	sortByCreated(out, func(inv *models.Invitation) time.Time { return inv.CreatedAt })
	return out, nil
}

// Leave

func (s *Store) CreateLeaveRequest(ctx context.Context, lr *models.LeaveRequest) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if lr.ID.IsZero() {
		lr.ID = models.NewLeaveRequestID()
	}
	stamp(&lr.CreatedAt, &lr.UpdatedAt)
	c := *lr
	s.leaveRequests[lr.ID] = &c
	return nil
}

func (s *Store) GetLeaveRequest(ctx context.Context, id models.LeaveRequestID) (*models.LeaveRequest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	lr, ok := s.leaveRequests[id]
	if !ok {
		return nil, nil
	}
	c := *lr
	return &c, nil
}

func (s *Store) UpdateLeaveRequest(ctx context.Context, lr *models.LeaveRequest) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	lr.UpdatedAt = time.Now()
	c := *lr
	s.leaveRequests[lr.ID] = &c
	return nil
}

func (s *Store) DeleteLeaveRequest(ctx context.Context, id models.LeaveRequestID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.leaveRequests, id)
	return nil
}

func (s *Store) ListLeaveRequests(ctx context.Context, workspaceID models.WorkspaceID) ([]*models.LeaveRequest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*models.LeaveRequest
	for _, lr := range s.leaveRequests {
		if lr.WorkspaceID == workspaceID {
			c := *lr
			out = append(out, &c)
		}
	}
	sortByCreated(out, func(lr *models.LeaveRequest) time.Time { return lr.CreatedAt })
	return out, nil
}

func (s *Store) ListLeaveRequestsByUser(ctx context.Context, userID models.UserID) ([]*models.LeaveRequest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*models.LeaveRequest
	for _, lr := range s.leaveRequests {
		if lr.UserID == userID {
			c := *lr
			out = append(out, &c)
		}
	}
	sortByCreated(out, func(lr *models.LeaveRequest) time.Time { return lr.CreatedAt })
	return out, nil
}

// Time tracking

func (s *Store) CreateTimeEntry(ctx context.Context, te *models.TimeEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if te.ID.IsZero() {
		te.ID = models.NewTimeEntryID()
	}
	stamp(&te.CreatedAt, &te.UpdatedAt)
	c := *te
	s.timeEntries[te.ID] = &c
	return nil
}

func (s *Store) GetTimeEntry(ctx context.Context, id models.TimeEntryID) (*models.TimeEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	te, ok := s.timeEntries[id]
	if !ok {
		return nil, nil
	}
	c := *te
	return &c, nil
}

func (s *Store) UpdateTimeEntry(ctx context.Context, te *models.TimeEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	te.UpdatedAt = time.Now()
	c := *te
	s.timeEntries[te.ID] = &c
	return nil
}

func (s *Store) DeleteTimeEntry(ctx context.Context, id models.TimeEntryID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.timeEntries, id)
	return nil
}

func (s *Store) ListTimeEntriesByTask(ctx context.Context, taskID models.TaskID) ([]*models.TimeEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*models.TimeEntry
	for _, te := range s.timeEntries {
		if te.TaskID == taskID {
			c := *te
			out = append(out, &c)
		}
	}
	sortByCreated(out, func(te *models.TimeEntry) time.Time { return te.CreatedAt })
	return out, nil
}

func (s *Store) ListTimeEntriesByUser(ctx context.Context, userID models.UserID) ([]*models.TimeEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*models.TimeEntry
	for _, te := range s.timeEntries {
		if te.UserID == userID {
			c := *te
			out = append(out, &c)
		}
	}
	sortByCreated(out, func(te *models.TimeEntry) time.Time { return te.CreatedAt })
	return out, nil
}

// Notifications

func (s *Store) CreateNotification(ctx context.Context, n *models.Notification) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if n.ID.IsZero() {
		n.ID = models.NewNotificationID()
	}
	stamp(&n.CreatedAt, &n.UpdatedAt)
	c := *n
	s.notifications[n.ID] = &c
	return nil
}

func (s *Store) GetNotification(ctx context.Context, id models.NotificationID) (*models.Notification, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n, ok := s.notifications[id]
	if !ok {
		return nil, nil
	}
	c := *n
	return &c, nil
}

func (s *Store) UpdateNotification(ctx context.Context, n *models.Notification) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	n.UpdatedAt = time.Now()
	c := *n
	s.notifications[n.ID] = &c
	return nil
}

func (s *Store) DeleteNotification(ctx context.Context, id models.NotificationID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.notifications, id)
	return nil
}

func (s *Store) ListNotifications(ctx context.Context, userID models.UserID) ([]*models.Notification, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*models.Notification
	for _, n := range s.notifications {
		if n.UserID == userID {
			c := *n
			out = append(out, &c)
		}
	}
	sortByCreated(out, func(n *models.Notification) time.Time { return n.CreatedAt })
	return out, nil
}

func (s *Store) ListNotificationsByWorkspace(ctx context.Context, workspaceID models.WorkspaceID) ([]*models.Notification, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*models.Notification
	for _, n := range s.notifications {
		if n.WorkspaceID == workspaceID {
			c := *n
			out = append(out, &c)
		}
	}
	sortByCreated(out, func(n *models.Notification) time.Time { return n.CreatedAt })
	return out, nil
}

func (s *Store) Migrate(ctx context.Context) error { return nil }

func (s *Store) Close() error { return nil }

// sortByCreated orders a listing oldest first, with a stable secondary order
// for records created in the same instant.
func sortByCreated[T any](items []*T, created func(*T) time.Time) {
	sort.SliceStable(items, func(i, j int) bool {
		return created(items[i]).Before(created(items[j]))
	})
}
