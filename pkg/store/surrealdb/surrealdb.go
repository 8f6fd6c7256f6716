// Package surrealdb implements the store interface against SurrealDB using
// native SurrealQL over a websocket connection.
//
// The implementation leans on three SurrealDB properties:
//
//   - records are addressed by RecordID, which the typed ID types in
//     pkg/models marshal to automatically via their CBOR implementations
//   - queries are always parameterized with $name placeholders, never built
//     by string interpolation
//   - the surrealcbor codec handles time.Time and optional fields in the
//     format SurrealDB expects; default Go marshaling does not
//
// Workspace ownership is additionally recorded as a graph edge
// (user->owns->workspace) so ownership traversals stay cheap.
package surrealdb

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/surrealdb/surrealdb.go"
	"github.com/surrealdb/surrealdb.go/pkg/connection"
	"github.com/surrealdb/surrealdb.go/pkg/connection/gorillaws"
	"github.com/surrealdb/surrealdb.go/surrealcbor"

	"tasklane/pkg/models"
	"tasklane/pkg/store"
)

var _ store.Store = (*SurrealStore)(nil)

// SurrealStore speaks CBOR to a SurrealDB endpoint.
type SurrealStore struct {
	db       *surrealdb.DB
	ns       string
	database string
}

// New connects to SurrealDB at wsURL and selects the namespace and database.
// Credentials are optional; pass empty strings for an unauthenticated local
// instance.
func New(wsURL, namespace, database, username, password string) (*SurrealStore, error) {
	ctx := context.Background()

	u, err := url.Parse(wsURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse URL: %w", err)
	}

	conf := connection.NewConfig(u)

	// The surrealcbor codec is required for correct time.Time and RecordID
	// round-tripping.
	codec := surrealcbor.New()
	conf.Marshaler = codec
	conf.Unmarshaler = codec

	conn := gorillaws.New(conf)

	db, err := surrealdb.FromConnection(ctx, conn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to SurrealDB: %w", err)
	}

	if username != "" && password != "" {
		if _, err := db.SignIn(ctx, map[string]any{
			"user": username,
			"pass": password,
		}); err != nil {
			return nil, fmt.Errorf("failed to authenticate: %w", err)
		}
	}

	if err := db.Use(ctx, namespace, database); err != nil {
		return nil, fmt.Errorf("failed to use namespace/database: %w", err)
	}

	return &SurrealStore{db: db, ns: namespace, database: database}, nil
}

// Migrate is a no-op: SurrealDB creates tables implicitly on first insert.
func (s *SurrealStore) Migrate(ctx context.Context) error {
	return nil
}

func (s *SurrealStore) Close() error {
	return s.db.Close(context.Background())
}

// handleNotFound maps the SDK's "no rows" errors to nil so Get methods can
// return (nil, nil) for missing records.
func handleNotFound(err error) error {
	if err != nil {
		errStr := err.Error()
		if strings.Contains(errStr, "Expected a single or multiple results but got 0") ||
			strings.Contains(errStr, "cannot unmarshal array into Go value") {
			return nil
		}
	}
	return err
}

func stampCreate(createdAt, updatedAt *time.Time) {
	now := time.Now()
	if createdAt.IsZero() {
		*createdAt = now
	}
	if updatedAt.IsZero() {
		*updatedAt = now
	}
}

// queryRows runs a parameterized query and unwraps the first statement's
// result set.
func queryRows[T any](ctx context.Context, db *surrealdb.DB, query string, params map[string]any) ([]*T, error) {
	result, err := surrealdb.Query[[]T](ctx, db, query, params)
	if err != nil {
		return nil, err
	}
	var out []*T
	if result != nil && len(*result) > 0 {
		rows := (*result)[0].Result
		for i := range rows {
			out = append(out, &rows[i])
		}
	}
	return out, nil
}

// queryOne runs a parameterized query expected to match at most one record.
func queryOne[T any](ctx context.Context, db *surrealdb.DB, query string, params map[string]any) (*T, error) {
	rows, err := queryRows[T](ctx, db, query, params)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0], nil
}

// Users

func (s *SurrealStore) CreateUser(ctx context.Context, user *models.User) error {
	if user.ID.IsZero() {
		user.ID = models.NewUserID()
	}
	stampCreate(&user.CreatedAt, &user.UpdatedAt)

	if _, err := surrealdb.Create[models.User](ctx, s.db, "users", user); err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

func (s *SurrealStore) GetUser(ctx context.Context, id models.UserID) (*models.User, error) {
	user, err := surrealdb.Select[models.User](ctx, s.db, id.RecordID())
	if err != nil {
		if handleNotFound(err) == nil {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

func (s *SurrealStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	query := "SELECT * FROM users WHERE string::lowercase(email) = string::lowercase($email)"
	user, err := queryOne[models.User](ctx, s.db, query, map[string]any{"email": email})
	if err != nil {
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}
	return user, nil
}

func (s *SurrealStore) UpdateUser(ctx context.Context, user *models.User) error {
	user.UpdatedAt = time.Now()
	if _, err := surrealdb.Update[models.User](ctx, s.db, user.ID.RecordID(), user); err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	return nil
}

func (s *SurrealStore) DeleteUser(ctx context.Context, id models.UserID) error {
	_, err := surrealdb.Delete[models.User](ctx, s.db, id.RecordID())
	return err
}

func (s *SurrealStore) ListUsers(ctx context.Context) ([]*models.User, error) {
	users, err := queryRows[models.User](ctx, s.db, "SELECT * FROM users ORDER BY created_at", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// Workspaces

func (s *SurrealStore) CreateWorkspace(ctx context.Context, ws *models.Workspace) error {
	if ws.ID.IsZero() {
		ws.ID = models.NewWorkspaceID()
	}
	stampCreate(&ws.CreatedAt, &ws.UpdatedAt)

	if _, err := surrealdb.Create[models.Workspace](ctx, s.db, "workspaces", ws); err != nil {
		return fmt.Errorf("failed to create workspace: %w", err)
	}

	// Record ownership as a graph edge for cheap traversal.
	relateQuery := "RELATE $user->owns->$workspace"
	params := map[string]any{
		"user":      ws.OwnerID.RecordID(),
		"workspace": ws.ID.RecordID(),
	}
	if _, err := surrealdb.Query[any](ctx, s.db, relateQuery, params); err != nil {
		return fmt.Errorf("failed to create ownership relationship: %w", err)
	}
	return nil
}

func (s *SurrealStore) GetWorkspace(ctx context.Context, id models.WorkspaceID) (*models.Workspace, error) {
	ws, err := surrealdb.Select[models.Workspace](ctx, s.db, id.RecordID())
	if err != nil {
		if handleNotFound(err) == nil {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get workspace: %w", err)
	}
	return ws, nil
}

func (s *SurrealStore) UpdateWorkspace(ctx context.Context, ws *models.Workspace) error {
	ws.UpdatedAt = time.Now()
	if _, err := surrealdb.Update[models.Workspace](ctx, s.db, ws.ID.RecordID(), ws); err != nil {
		return fmt.Errorf("failed to update workspace: %w", err)
	}
	return nil
}

func (s *SurrealStore) DeleteWorkspace(ctx context.Context, id models.WorkspaceID) error {
	_, err := surrealdb.Delete[models.Workspace](ctx, s.db, id.RecordID())
	return err
}

func (s *SurrealStore) ListWorkspacesByUser(ctx context.Context, userID models.UserID) ([]*models.Workspace, error) {
	// Owned workspaces come from the ownership edge; memberships from the
	// workspace_members table. The two sets are merged without duplicates.
	query := "SELECT ->owns->workspaces.* FROM $user"
	type ownsResult struct {
		Workspaces []*models.Workspace `json:"->owns->workspaces"`
	}
	owned, err := surrealdb.Query[[]ownsResult](ctx, s.db, query, map[string]any{
		"user": userID.RecordID(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list owned workspaces: %w", err)
	}

	seen := make(map[models.WorkspaceID]bool)
	var out []*models.Workspace
	if owned != nil && len(*owned) > 0 && len((*owned)[0].Result) > 0 {
		for _, ws := range (*owned)[0].Result[0].Workspaces {
			if !seen[ws.ID] {
				seen[ws.ID] = true
				out = append(out, ws)
			}
		}
	}

	memberQuery := "SELECT workspace_id.* AS workspace FROM workspace_members WHERE user_id = $user"
	type memberResult struct {
		Workspace *models.Workspace `json:"workspace"`
	}
	rows, err := queryRows[memberResult](ctx, s.db, memberQuery, map[string]any{
		"user": userID.RecordID(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list member workspaces: %w", err)
	}
	for _, row := range rows {
		if row.Workspace != nil && !seen[row.Workspace.ID] {
			seen[row.Workspace.ID] = true
			out = append(out, row.Workspace)
		}
	}
	return out, nil
}

// Projects

func (s *SurrealStore) CreateProject(ctx context.Context, p *models.Project) error {
	if p.ID.IsZero() {
		p.ID = models.NewProjectID()
	}
	stampCreate(&p.CreatedAt, &p.UpdatedAt)

	if _, err := surrealdb.Create[models.Project](ctx, s.db, "projects", p); err != nil {
		return fmt.Errorf("failed to create project: %w", err)
	}
	return nil
}

func (s *SurrealStore) GetProject(ctx context.Context, id models.ProjectID) (*models.Project, error) {
	p, err := surrealdb.Select[models.Project](ctx, s.db, id.RecordID())
	if err != nil {
		if handleNotFound(err) == nil {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get project: %w", err)
	}
	return p, nil
}

func (s *SurrealStore) UpdateProject(ctx context.Context, p *models.Project) error {
	p.UpdatedAt = time.Now()
	if _, err := surrealdb.Update[models.Project](ctx, s.db, p.ID.RecordID(), p); err != nil {
		return fmt.Errorf("failed to update project: %w", err)
	}
	return nil
}

func (s *SurrealStore) DeleteProject(ctx context.Context, id models.ProjectID) error {
	_, err := surrealdb.Delete[models.Project](ctx, s.db, id.RecordID())
	return err
}

func (s *SurrealStore) ListProjects(ctx context.Context, workspaceID models.WorkspaceID) ([]*models.Project, error) {
	query := "SELECT * FROM projects WHERE workspace_id = $workspace ORDER BY created_at"
	projects, err := queryRows[models.Project](ctx, s.db, query, map[string]any{
		"workspace": workspaceID.RecordID(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	return projects, nil
}

// Requirement hierarchy

// hierarchyTables are every table carrying a hierarchy_id field.
var hierarchyTables = []string{"client_requirements", "epics", "functional_requirements", "tasks"}

func (s *SurrealStore) HierarchyIDExists(ctx context.Context, hierarchyID string) (bool, error) {
	for _, table := range hierarchyTables {
		query := "SELECT id FROM type::table($tb) WHERE hierarchy_id = $hid LIMIT 1"
		rows, err := queryRows[struct {
			ID any `json:"id"`
		}](ctx, s.db, query, map[string]any{
			"tb":  table,
			"hid": hierarchyID,
		})
		if err != nil {
			return false, fmt.Errorf("failed to check hierarchy ID in %s: %w", table, err)
		}
		if len(rows) > 0 {
			return true, nil
		}
	}
	return false, nil
}

func (s *SurrealStore) CreateClientRequirement(ctx context.Context, cr *models.ClientRequirement) error {
	if cr.ID.IsZero() {
		cr.ID = models.NewClientRequirementID()
	}
	stampCreate(&cr.CreatedAt, &cr.UpdatedAt)

	if _, err := surrealdb.Create[models.ClientRequirement](ctx, s.db, "client_requirements", cr); err != nil {
		return fmt.Errorf("failed to create client requirement: %w", err)
	}
	return nil
}

func (s *SurrealStore) GetClientRequirement(ctx context.Context, id models.ClientRequirementID) (*models.ClientRequirement, error) {
	cr, err := surrealdb.Select[models.ClientRequirement](ctx, s.db, id.RecordID())
	if err != nil {
		if handleNotFound(err) == nil {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get client requirement: %w", err)
	}
	return cr, nil
}

func (s *SurrealStore) UpdateClientRequirement(ctx context.Context, cr *models.ClientRequirement) error {
	cr.UpdatedAt = time.Now()
	if _, err := surrealdb.Update[models.ClientRequirement](ctx, s.db, cr.ID.RecordID(), cr); err != nil {
		return fmt.Errorf("failed to update client requirement: %w", err)
	}
	return nil
}

func (s *SurrealStore) DeleteClientRequirement(ctx context.Context, id models.ClientRequirementID) error {
	_, err := surrealdb.Delete[models.ClientRequirement](ctx, s.db, id.RecordID())
	return err
}

func (s *SurrealStore) ListClientRequirements(ctx context.Context, projectID models.ProjectID) ([]*models.ClientRequirement, error) {
	query := "SELECT * FROM client_requirements WHERE project_id = $project ORDER BY created_at"
	crs, err := queryRows[models.ClientRequirement](ctx, s.db, query, map[string]any{
		"project": projectID.RecordID(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list client requirements: %w", err)
	}
	return crs, nil
}

func (s *SurrealStore) CreateEpic(ctx context.Context, e *models.Epic) error {
	if e.ID.IsZero() {
		e.ID = models.NewEpicID()
	}
	stampCreate(&e.CreatedAt, &e.UpdatedAt)

	if _, err := surrealdb.Create[models.Epic](ctx, s.db, "epics", e); err != nil {
		return fmt.Errorf("failed to create epic: %w", err)
	}
	return nil
}

func (s *SurrealStore) GetEpic(ctx context.Context, id models.EpicID) (*models.Epic, error) {
	e, err := surrealdb.Select[models.Epic](ctx, s.db, id.RecordID())
	if err != nil {
		if handleNotFound(err) == nil {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get epic: %w", err)
	}
	return e, nil
}

func (s *SurrealStore) UpdateEpic(ctx context.Context, e *models.Epic) error {
	e.UpdatedAt = time.Now()
	if _, err := surrealdb.Update[models.Epic](ctx, s.db, e.ID.RecordID(), e); err != nil {
		return fmt.Errorf("failed to update epic: %w", err)
	}
	return nil
}

func (s *SurrealStore) DeleteEpic(ctx context.Context, id models.EpicID) error {
	_, err := surrealdb.Delete[models.Epic](ctx, s.db, id.RecordID())
	return err
}

func (s *SurrealStore) ListEpics(ctx context.Context, projectID models.ProjectID) ([]*models.Epic, error) {
	query := "SELECT * FROM epics WHERE project_id = $project ORDER BY created_at"
	epics, err := queryRows[models.Epic](ctx, s.db, query, map[string]any{
		"project": projectID.RecordID(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list epics: %w", err)
	}
	return epics, nil
}

func (s *SurrealStore) ListEpicsByRequirement(ctx context.Context, crID models.ClientRequirementID) ([]*models.Epic, error) {
	query := "SELECT * FROM epics WHERE client_requirement_id = $cr ORDER BY created_at"
	epics, err := queryRows[models.Epic](ctx, s.db, query, map[string]any{
		"cr": crID.RecordID(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list epics by requirement: %w", err)
	}
	return epics, nil
}

func (s *SurrealStore) CreateFunctionalRequirement(ctx context.Context, fr *models.FunctionalRequirement) error {
	if fr.ID.IsZero() {
		fr.ID = models.NewFunctionalRequirementID()
	}
	stampCreate(&fr.CreatedAt, &fr.UpdatedAt)

	if _, err := surrealdb.Create[models.FunctionalRequirement](ctx, s.db, "functional_requirements", fr); err != nil {
		return fmt.Errorf("failed to create functional requirement: %w", err)
	}
	return nil
}

func (s *SurrealStore) GetFunctionalRequirement(ctx context.Context, id models.FunctionalRequirementID) (*models.FunctionalRequirement, error) {
	fr, err := surrealdb.Select[models.FunctionalRequirement](ctx, s.db, id.RecordID())
	if err != nil {
		if handleNotFound(err) == nil {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get functional requirement: %w", err)
	}
	return fr, nil
}

func (s *SurrealStore) UpdateFunctionalRequirement(ctx context.Context, fr *models.FunctionalRequirement) error {
	fr.UpdatedAt = time.Now()
	if _, err := surrealdb.Update[models.FunctionalRequirement](ctx, s.db, fr.ID.RecordID(), fr); err != nil {
		return fmt.Errorf("failed to update functional requirement: %w", err)
	}
	return nil
}

func (s *SurrealStore) DeleteFunctionalRequirement(ctx context.Context, id models.FunctionalRequirementID) error {
	_, err := surrealdb.Delete[models.FunctionalRequirement](ctx, s.db, id.RecordID())
	return err
}

func (s *SurrealStore) ListFunctionalRequirements(ctx context.Context, projectID models.ProjectID) ([]*models.FunctionalRequirement, error) {
	query := "SELECT * FROM functional_requirements WHERE project_id = $project ORDER BY created_at"
	frs, err := queryRows[models.FunctionalRequirement](ctx, s.db, query, map[string]any{
		"project": projectID.RecordID(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list functional requirements: %w", err)
	}
	return frs, nil
}

func (s *SurrealStore) ListFunctionalRequirementsByEpic(ctx context.Context, epicID models.EpicID) ([]*models.FunctionalRequirement, error) {
	query := "SELECT * FROM functional_requirements WHERE epic_id = $epic ORDER BY created_at"
	frs, err := queryRows[models.FunctionalRequirement](ctx, s.db, query, map[string]any{
		"epic": epicID.RecordID(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list functional requirements by epic: %w", err)
	}
	return frs, nil
}

// Tasks

func (s *SurrealStore) CreateTask(ctx context.Context, t *models.Task) error {
	if t.ID.IsZero() {
		t.ID = models.NewTaskID()
	}
	stampCreate(&t.CreatedAt, &t.UpdatedAt)

	if _, err := surrealdb.Create[models.Task](ctx, s.db, "tasks", t); err != nil {
		return fmt.Errorf("failed to create task: %w", err)
	}
	return nil
}

func (s *SurrealStore) GetTask(ctx context.Context, id models.TaskID) (*models.Task, error) {
	t, err := surrealdb.Select[models.Task](ctx, s.db, id.RecordID())
	if err != nil {
		if handleNotFound(err) == nil {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get task: %w", err)
	}
	return t, nil
}

func (s *SurrealStore) UpdateTask(ctx context.Context, t *models.Task) error {
	t.UpdatedAt = time.Now()
	if _, err := surrealdb.Update[models.Task](ctx, s.db, t.ID.RecordID(), t); err != nil {
		return fmt.Errorf("failed to update task: %w", err)
	}
	return nil
}

func (s *SurrealStore) DeleteTask(ctx context.Context, id models.TaskID) error {
	_, err := surrealdb.Delete[models.Task](ctx, s.db, id.RecordID())
	return err
}

func (s *SurrealStore) ListTasks(ctx context.Context, projectID models.ProjectID) ([]*models.Task, error) {
	query := "SELECT * FROM tasks WHERE project_id = $project ORDER BY created_at"
	tasks, err := queryRows[models.Task](ctx, s.db, query, map[string]any{
		"project": projectID.RecordID(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}

func (s *SurrealStore) ListTasksBySprint(ctx context.Context, sprintID models.SprintID) ([]*models.Task, error) {
	query := "SELECT * FROM tasks WHERE sprint_id = $sprint ORDER BY created_at"
	tasks, err := queryRows[models.Task](ctx, s.db, query, map[string]any{
		"sprint": sprintID.RecordID(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks by sprint: %w", err)
	}
	return tasks, nil
}

func (s *SurrealStore) ListTasksByAssignee(ctx context.Context, userID models.UserID) ([]*models.Task, error) {
	query := "SELECT * FROM tasks WHERE assignee_id = $user ORDER BY created_at"
	tasks, err := queryRows[models.Task](ctx, s.db, query, map[string]any{
		"user": userID.RecordID(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks by assignee: %w", err)
	}
	return tasks, nil
}

// Sprints

func (s *SurrealStore) CreateSprint(ctx context.Context, sp *models.Sprint) error {
	if sp.ID.IsZero() {
		sp.ID = models.NewSprintID()
	}
	stampCreate(&sp.CreatedAt, &sp.UpdatedAt)

	if _, err := surrealdb.Create[models.Sprint](ctx, s.db, "sprints", sp); err != nil {
		return fmt.Errorf("failed to create sprint: %w", err)
	}
	return nil
}

func (s *SurrealStore) GetSprint(ctx context.Context, id models.SprintID) (*models.Sprint, error) {
	sp, err := surrealdb.Select[models.Sprint](ctx, s.db, id.RecordID())
	if err != nil {
		if handleNotFound(err) == nil {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get sprint: %w", err)
	}
	return sp, nil
}

func (s *SurrealStore) UpdateSprint(ctx context.Context, sp *models.Sprint) error {
	sp.UpdatedAt = time.Now()
	if _, err := surrealdb.Update[models.Sprint](ctx, s.db, sp.ID.RecordID(), sp); err != nil {
		return fmt.Errorf("failed to update sprint: %w", err)
	}
	return nil
}

func (s *SurrealStore) DeleteSprint(ctx context.Context, id models.SprintID) error {
	_, err := surrealdb.Delete[models.Sprint](ctx, s.db, id.RecordID())
	return err
}

func (s *SurrealStore) ListSprints(ctx context.Context, projectID models.ProjectID) ([]*models.Sprint, error) {
	query := "SELECT * FROM sprints WHERE project_id = $project ORDER BY start_date"
	sprints, err := queryRows[models.Sprint](ctx, s.db, query, map[string]any{
		"project": projectID.RecordID(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list sprints: %w", err)
	}
	return sprints, nil
}

// Membership and roles

func (s *SurrealStore) CreateMember(ctx context.Context, m *models.WorkspaceMember) error {
	if m.ID.IsZero() {
		m.ID = models.NewMemberID()
	}
	stampCreate(&m.CreatedAt, &m.UpdatedAt)
	if m.JoinedAt.IsZero() {
		m.JoinedAt = m.CreatedAt
	}

	if _, err := surrealdb.Create[models.WorkspaceMember](ctx, s.db, "workspace_members", m); err != nil {
		return fmt.Errorf("failed to create member: %w", err)
	}
	return nil
}

func (s *SurrealStore) GetMember(ctx context.Context, id models.MemberID) (*models.WorkspaceMember, error) {
	m, err := surrealdb.Select[models.WorkspaceMember](ctx, s.db, id.RecordID())
	if err != nil {
		if handleNotFound(err) == nil {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get member: %w", err)
	}
	return m, nil
}

func (s *SurrealStore) GetMemberByUser(ctx context.Context, workspaceID models.WorkspaceID, userID models.UserID) (*models.WorkspaceMember, error) {
	query := "SELECT * FROM workspace_members WHERE workspace_id = $workspace AND user_id = $user"
	m, err := queryOne[models.WorkspaceMember](ctx, s.db, query, map[string]any{
		"workspace": workspaceID.RecordID(),
		"user":      userID.RecordID(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get member by user: %w", err)
	}
	return m, nil
}

func (s *SurrealStore) UpdateMember(ctx context.Context, m *models.WorkspaceMember) error {
	m.UpdatedAt = time.Now()
	if _, err := surrealdb.Update[models.WorkspaceMember](ctx, s.db, m.ID.RecordID(), m); err != nil {
		return fmt.Errorf("failed to update member: %w", err)
	}
	return nil
}

func (s *SurrealStore) DeleteMember(ctx context.Context, id models.MemberID) error {
	_, err := surrealdb.Delete[models.WorkspaceMember](ctx, s.db, id.RecordID())
	return err
}

func (s *SurrealStore) ListMembers(ctx context.Context, workspaceID models.WorkspaceID) ([]*models.WorkspaceMember, error) {
	query := "SELECT * FROM workspace_members WHERE workspace_id = $workspace ORDER BY created_at"
	members, err := queryRows[models.WorkspaceMember](ctx, s.db, query, map[string]any{
		"workspace": workspaceID.RecordID(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}
	return members, nil
}

func (s *SurrealStore) CreateRole(ctx context.Context, r *models.Role) error {
	if r.ID.IsZero() {
		r.ID = models.NewRoleID()
	}
	stampCreate(&r.CreatedAt, &r.UpdatedAt)

	if _, err := surrealdb.Create[models.Role](ctx, s.db, "roles", r); err != nil {
		return fmt.Errorf("failed to create role: %w", err)
	}
	return nil
}

func (s *SurrealStore) GetRole(ctx context.Context, id models.RoleID) (*models.Role, error) {
	r, err := surrealdb.Select[models.Role](ctx, s.db, id.RecordID())
	if err != nil {
		if handleNotFound(err) == nil {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get role: %w", err)
	}
	return r, nil
}

func (s *SurrealStore) UpdateRole(ctx context.Context, r *models.Role) error {
	r.UpdatedAt = time.Now()
	if _, err := surrealdb.Update[models.Role](ctx, s.db, r.ID.RecordID(), r); err != nil {
		return fmt.Errorf("failed to update role: %w", err)
	}
	return nil
}

func (s *SurrealStore) DeleteRole(ctx context.Context, id models.RoleID) error {
	_, err := surrealdb.Delete[models.Role](ctx, s.db, id.RecordID())
	return err
}

func (s *SurrealStore) ListRoles(ctx context.Context, workspaceID models.WorkspaceID) ([]*models.Role, error) {
	query := "SELECT * FROM roles WHERE workspace_id = $workspace ORDER BY created_at"
	roles, err := queryRows[models.Role](ctx, s.db, query, map[string]any{
		"workspace": workspaceID.RecordID(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list roles: %w", err)
	}
	return roles, nil
}

// Invitations

func (s *SurrealStore) CreateInvitation(ctx context.Context, inv *models.Invitation) error {
	if inv.ID.IsZero() {
		inv.ID = models.NewInvitationID()
	}
	stampCreate(&inv.CreatedAt, &inv.UpdatedAt)

	if _, err := surrealdb.Create[models.Invitation](ctx, s.db, "invitations", inv); err != nil {
		return fmt.Errorf("failed to create invitation: %w", err)
	}
	return nil
}

func (s *SurrealStore) GetInvitation(ctx context.Context, id models.InvitationID) (*models.Invitation, error) {
	inv, err := surrealdb.Select[models.Invitation](ctx, s.db, id.RecordID())
	if err != nil {
		if handleNotFound(err) == nil {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get invitation: %w", err)
	}
	return inv, nil
}

func (s *SurrealStore) GetInvitationByToken(ctx context.Context, token string) (*models.Invitation, error) {
	query := "SELECT * FROM invitations WHERE token = $token"
	inv, err := queryOne[models.Invitation](ctx, s.db, query, map[string]any{"token": token})
	if err != nil {
		return nil, fmt.Errorf("failed to get invitation by token: %w", err)
	}
	return inv, nil
}

func (s *SurrealStore) UpdateInvitation(ctx context.Context, inv *models.Invitation) error {
	inv.UpdatedAt = time.Now()
	if _, err := surrealdb.Update[models.Invitation](ctx, s.db, inv.ID.RecordID(), inv); err != nil {
		return fmt.Errorf("failed to update invitation: %w", err)
	}
	return nil
}

func (s *SurrealStore) DeleteInvitation(ctx context.Context, id models.InvitationID) error {
	_, err := surrealdb.Delete[models.Invitation](ctx, s.db, id.RecordID())
	return err
}

func (s *SurrealStore) ListInvitations(ctx context.Context, workspaceID models.WorkspaceID) ([]*models.Invitation, error) {
	query := "SELECT * FROM invitations WHERE workspace_id = $workspace ORDER BY created_at"
	invitations, err := queryRows[models.Invitation](ctx, s.db, query, map[string]any{
		"workspace": workspaceID.RecordID(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list invitations: %w", err)
	}
	return invitations, nil
}

// Leave

func (s *SurrealStore) CreateLeaveRequest(ctx context.Context, lr *models.LeaveRequest) error {
	if lr.ID.IsZero() {
		lr.ID = models.NewLeaveRequestID()
	}
	stampCreate(&lr.CreatedAt, &lr.UpdatedAt)

	if _, err := surrealdb.Create[models.LeaveRequest](ctx, s.db, "leave_requests", lr); err != nil {
		return fmt.Errorf("failed to create leave request: %w", err)
	}
	return nil
}

func (s *SurrealStore) GetLeaveRequest(ctx context.Context, id models.LeaveRequestID) (*models.LeaveRequest, error) {
	lr, err := surrealdb.Select[models.LeaveRequest](ctx, s.db, id.RecordID())
	if err != nil {
		if handleNotFound(err) == nil {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get leave request: %w", err)
	}
	return lr, nil
}

func (s *SurrealStore) UpdateLeaveRequest(ctx context.Context, lr *models.LeaveRequest) error {
	lr.UpdatedAt = time.Now()
	if _, err := surrealdb.Update[models.LeaveRequest](ctx, s.db, lr.ID.RecordID(), lr); err != nil {
		return fmt.Errorf("failed to update leave request: %w", err)
	}
	return nil
}

func (s *SurrealStore) DeleteLeaveRequest(ctx context.Context, id models.LeaveRequestID) error {
	_, err := surrealdb.Delete[models.LeaveRequest](ctx, s.db, id.RecordID())
	return err
}

func (s *SurrealStore) ListLeaveRequests(ctx context.Context, workspaceID models.WorkspaceID) ([]*models.LeaveRequest, error) {
	query := "SELECT * FROM leave_requests WHERE workspace_id = $workspace ORDER BY created_at"
	leaves, err := queryRows[models.LeaveRequest](ctx, s.db, query, map[string]any{
		"workspace": workspaceID.RecordID(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list leave requests: %w", err)
	}
	return leaves, nil
}

func (s *SurrealStore) ListLeaveRequestsByUser(ctx context.Context, userID models.UserID) ([]*models.LeaveRequest, error) {
	query := "SELECT * FROM leave_requests WHERE user_id = $user ORDER BY created_at"
	leaves, err := queryRows[models.LeaveRequest](ctx, s.db, query, map[string]any{
		"user": userID.RecordID(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list leave requests by user: %w", err)
	}
	return leaves, nil
}

// Time tracking

func (s *SurrealStore) CreateTimeEntry(ctx context.Context, te *models.TimeEntry) error {
	if te.ID.IsZero() {
		te.ID = models.NewTimeEntryID()
	}
	stampCreate(&te.CreatedAt, &te.UpdatedAt)

	if _, err := surrealdb.Create[models.TimeEntry](ctx, s.db, "time_entries", te); err != nil {
		return fmt.Errorf("failed to create time entry: %w", err)
	}
	return nil
}

func (s *SurrealStore) GetTimeEntry(ctx context.Context, id models.TimeEntryID) (*models.TimeEntry, error) {
	te, err := surrealdb.Select[models.TimeEntry](ctx, s.db, id.RecordID())
	if err != nil {
		if handleNotFound(err) == nil {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get time entry: %w", err)
	}
	return te, nil
}

func (s *SurrealStore) UpdateTimeEntry(ctx context.Context, te *models.TimeEntry) error {
	te.UpdatedAt = time.Now()
	if _, err := surrealdb.Update[models.TimeEntry](ctx, s.db, te.ID.RecordID(), te); err != nil {
		return fmt.Errorf("failed to update time entry: %w", err)
	}
	return nil
}

func (s *SurrealStore) DeleteTimeEntry(ctx context.Context, id models.TimeEntryID) error {
	_, err := surrealdb.Delete[models.TimeEntry](ctx, s.db, id.RecordID())
	return err
}

func (s *SurrealStore) ListTimeEntriesByTask(ctx context.Context, taskID models.TaskID) ([]*models.TimeEntry, error) {
	query := "SELECT * FROM time_entries WHERE task_id = $task ORDER BY date"
	entries, err := queryRows[models.TimeEntry](ctx, s.db, query, map[string]any{
		"task": taskID.RecordID(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list time entries by task: %w", err)
	}
	return entries, nil
}

func (s *SurrealStore) ListTimeEntriesByUser(ctx context.Context, userID models.UserID) ([]*models.TimeEntry, error) {
	query := "SELECT * FROM time_entries WHERE user_id = $user ORDER BY date"
	entries, err := queryRows[models.TimeEntry](ctx, s.db, query, map[string]any{
		"user": userID.RecordID(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list time entries by user: %w", err)
	}
	return entries, nil
}

// Notifications

func (s *SurrealStore) CreateNotification(ctx context.Context, n *models.Notification) error {
	if n.ID.IsZero() {
		n.ID = models.NewNotificationID()
	}
	stampCreate(&n.CreatedAt, &n.UpdatedAt)

	if _, err := surrealdb.Create[models.Notification](ctx, s.db, "notifications", n); err != nil {
		return fmt.Errorf("failed to create notification: %w", err)
	}
	return nil
}

func (s *SurrealStore) GetNotification(ctx context.Context, id models.NotificationID) (*models.Notification, error) {
	n, err := surrealdb.Select[models.Notification](ctx, s.db, id.RecordID())
	if err != nil {
		if handleNotFound(err) == nil {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get notification: %w", err)
	}
	return n, nil
}

func (s *SurrealStore) UpdateNotification(ctx context.Context, n *models.Notification) error {
	n.UpdatedAt = time.Now()
	if _, err := surrealdb.Update[models.Notification](ctx, s.db, n.ID.RecordID(), n); err != nil {
		return fmt.Errorf("failed to update notification: %w", err)
	}
	return nil
}

func (s *SurrealStore) DeleteNotification(ctx context.Context, id models.NotificationID) error {
	_, err := surrealdb.Delete[models.Notification](ctx, s.db, id.RecordID())
	return err
}

func (s *SurrealStore) ListNotifications(ctx context.Context, userID models.UserID) ([]*models.Notification, error) {
	query := "SELECT * FROM notifications WHERE user_id = $user ORDER BY created_at DESC"
	notifications, err := queryRows[models.Notification](ctx, s.db, query, map[string]any{
		"user": userID.RecordID(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}
	return notifications, nil
}

func (s *SurrealStore) ListNotificationsByWorkspace(ctx context.Context, workspaceID models.WorkspaceID) ([]*models.Notification, error) {
	query := "SELECT * FROM notifications WHERE workspace_id = $workspace ORDER BY created_at"
	notifications, err := queryRows[models.Notification](ctx, s.db, query, map[string]any{
		"workspace": workspaceID.RecordID(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications by workspace: %w", err)
	}
	return notifications, nil
}
