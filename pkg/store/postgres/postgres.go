// Package postgres implements the store interface on PostgreSQL through GORM.
//
// GORM handles SQL generation, connection pooling and schema migration via
// AutoMigrate, so the methods here stay thin: each one is a single query
// built from the model structs in pkg/models. The relational backend gives
// ACID semantics where the SurrealDB backend trades consistency for
// flexibility; both sit behind the same interface and the choice is a
// startup flag.
package postgres

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"tasklane/pkg/models"
	"tasklane/pkg/store"
)

var _ store.Store = (*PostgresStore)(nil)

// PostgresStore implements the Store interface using PostgreSQL with GORM.
type PostgresStore struct {
	db *gorm.DB
}

// New connects to PostgreSQL using the given DSN.
func New(dsn string) (*PostgresStore, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return &PostgresStore{db: db}, nil
}

// Migrate creates missing tables, columns, indexes and foreign keys for every
// model. Safe to run on every startup; AutoMigrate only adds schema elements
// and never drops data.
func (s *PostgresStore) Migrate(ctx context.Context) error {
	return s.db.WithContext(ctx).AutoMigrate(
		&models.User{},
		&models.Workspace{},
		&models.Project{},
		&models.ClientRequirement{},
		&models.Epic{},
		&models.FunctionalRequirement{},
		&models.Task{},
		&models.Sprint{},
		&models.Role{},
		&models.WorkspaceMember{},
		&models.Invitation{},
		&models.LeaveRequest{},
		&models.TimeEntry{},
		&models.Notification{},
	)
}

func (s *PostgresStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Users

func (s *PostgresStore) CreateUser(ctx context.Context, user *models.User) error {
	return s.db.WithContext(ctx).Create(user).Error
}

func (s *PostgresStore) GetUser(ctx context.Context, id models.UserID) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).First(&user, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (s *PostgresStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).First(&user, "lower(email) = lower(?)", email).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (s *PostgresStore) UpdateUser(ctx context.Context, user *models.User) error {
	return s.db.WithContext(ctx).Save(user).Error
}

func (s *PostgresStore) DeleteUser(ctx context.Context, id models.UserID) error {
	return s.db.WithContext(ctx).Delete(&models.User{}, "id = ?", id).Error
}

func (s *PostgresStore) ListUsers(ctx context.Context) ([]*models.User, error) {
	var users []*models.User
	err := s.db.WithContext(ctx).Order("created_at").Find(&users).Error
	return users, err
}

// Workspaces

func (s *PostgresStore) CreateWorkspace(ctx context.Context, ws *models.Workspace) error {
	return s.db.WithContext(ctx).Create(ws).Error
}

func (s *PostgresStore) GetWorkspace(ctx context.Context, id models.WorkspaceID) (*models.Workspace, error) {
	var ws models.Workspace
	err := s.db.WithContext(ctx).First(&ws, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &ws, nil
}

func (s *PostgresStore) UpdateWorkspace(ctx context.Context, ws *models.Workspace) error {
	return s.db.WithContext(ctx).Save(ws).Error
}

func (s *PostgresStore) DeleteWorkspace(ctx context.Context, id models.WorkspaceID) error {
	return s.db.WithContext(ctx).Delete(&models.Workspace{}, "id = ?", id).Error
}

func (s *PostgresStore) ListWorkspacesByUser(ctx context.Context, userID models.UserID) ([]*models.Workspace, error) {
	var workspaces []*models.Workspace
	err := s.db.WithContext(ctx).
		Distinct("workspaces.*").
		Joins("LEFT JOIN workspace_members ON workspace_members.workspace_id = workspaces.id").
		Where("workspaces.owner_id = ? OR workspace_members.user_id = ?", userID, userID).
		Order("workspaces.created_at").
		Find(&workspaces).Error
	return workspaces, err
}

// Projects

func (s *PostgresStore) CreateProject(ctx context.Context, p *models.Project) error {
	return s.db.WithContext(ctx).Create(p).Error
}

func (s *PostgresStore) GetProject(ctx context.Context, id models.ProjectID) (*models.Project, error) {
	var p models.Project
	err := s.db.WithContext(ctx).First(&p, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func (s *PostgresStore) UpdateProject(ctx context.Context, p *models.Project) error {
	return s.db.WithContext(ctx).Save(p).Error
}

func (s *PostgresStore) DeleteProject(ctx context.Context, id models.ProjectID) error {
	return s.db.WithContext(ctx).Delete(&models.Project{}, "id = ?", id).Error
}

func (s *PostgresStore) ListProjects(ctx context.Context, workspaceID models.WorkspaceID) ([]*models.Project, error) {
	var projects []*models.Project
	err := s.db.WithContext(ctx).Where("workspace_id = ?", workspaceID).Order("created_at").Find(&projects).Error
	return projects, err
}

// Requirement hierarchy

func (s *PostgresStore) HierarchyIDExists(ctx context.Context, hierarchyID string) (bool, error) {
	for _, model := range []any{
		&models.ClientRequirement{},
		&models.Epic{},
		&models.FunctionalRequirement{},
		&models.Task{},
	} {
		var count int64
		err := s.db.WithContext(ctx).Model(model).Where("hierarchy_id = ?", hierarchyID).Count(&count).Error
		if err != nil {
			return false, err
		}
		if count > 0 {
			return true, nil
		}
	}
	return false, nil
}

func (s *PostgresStore) CreateClientRequirement(ctx context.Context, cr *models.ClientRequirement) error {
	return s.db.WithContext(ctx).Create(cr).Error
}

func (s *PostgresStore) GetClientRequirement(ctx context.Context, id models.ClientRequirementID) (*models.ClientRequirement, error) {
	var cr models.ClientRequirement
	err := s.db.WithContext(ctx).First(&cr, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &cr, nil
}

func (s *PostgresStore) UpdateClientRequirement(ctx context.Context, cr *models.ClientRequirement) error {
	return s.db.WithContext(ctx).Save(cr).Error
}

func (s *PostgresStore) DeleteClientRequirement(ctx context.Context, id models.ClientRequirementID) error {
	return s.db.WithContext(ctx).Delete(&models.ClientRequirement{}, "id = ?", id).Error
}

func (s *PostgresStore) ListClientRequirements(ctx context.Context, projectID models.ProjectID) ([]*models.ClientRequirement, error) {
	var crs []*models.ClientRequirement
	err := s.db.WithContext(ctx).Where("project_id = ?", projectID).Order("created_at").Find(&crs).Error
	return crs, err
}

func (s *PostgresStore) CreateEpic(ctx context.Context, e *models.Epic) error {
	return s.db.WithContext(ctx).Create(e).Error
}

func (s *PostgresStore) GetEpic(ctx context.Context, id models.EpicID) (*models.Epic, error) {
	var e models.Epic
	err := s.db.WithContext(ctx).First(&e, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &e, nil
}

func (s *PostgresStore) UpdateEpic(ctx context.Context, e *models.Epic) error {
	return s.db.WithContext(ctx).Save(e).Error
}

func (s *PostgresStore) DeleteEpic(ctx context.Context, id models.EpicID) error {
	return s.db.WithContext(ctx).Delete(&models.Epic{}, "id = ?", id).Error
}

func (s *PostgresStore) ListEpics(ctx context.Context, projectID models.ProjectID) ([]*models.Epic, error) {
	var epics []*models.Epic
	err := s.db.WithContext(ctx).Where("project_id = ?", projectID).Order("created_at").Find(&epics).Error
	return epics, err
}

func (s *PostgresStore) ListEpicsByRequirement(ctx context.Context, crID models.ClientRequirementID) ([]*models.Epic, error) {
	var epics []*models.Epic
	err := s.db.WithContext(ctx).Where("client_requirement_id = ?", crID).Order("created_at").Find(&epics).Error
	return epics, err
}

func (s *PostgresStore) CreateFunctionalRequirement(ctx context.Context, fr *models.FunctionalRequirement) error {
	return s.db.WithContext(ctx).Create(fr).Error
}

func (s *PostgresStore) GetFunctionalRequirement(ctx context.Context, id models.FunctionalRequirementID) (*models.FunctionalRequirement, error) {
	var fr models.FunctionalRequirement
	err := s.db.WithContext(ctx).First(&fr, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &fr, nil
}

func (s *PostgresStore) UpdateFunctionalRequirement(ctx context.Context, fr *models.FunctionalRequirement) error {
	return s.db.WithContext(ctx).Save(fr).Error
}

func (s *PostgresStore) DeleteFunctionalRequirement(ctx context.Context, id models.FunctionalRequirementID) error {
	return s.db.WithContext(ctx).Delete(&models.FunctionalRequirement{}, "id = ?", id).Error
}

func (s *PostgresStore) ListFunctionalRequirements(ctx context.Context, projectID models.ProjectID) ([]*models.FunctionalRequirement, error) {
	var frs []*models.FunctionalRequirement
	err := s.db.WithContext(ctx).Where("project_id = ?", projectID).Order("created_at").Find(&frs).Error
	return frs, err
}

func (s *PostgresStore) ListFunctionalRequirementsByEpic(ctx context.Context, epicID models.EpicID) ([]*models.FunctionalRequirement, error) {
	var frs []*models.FunctionalRequirement
	err := s.db.WithContext(ctx).Where("epic_id = ?", epicID).Order("created_at").Find(&frs).Error
	return frs, err
}

// Tasks

func (s *PostgresStore) CreateTask(ctx context.Context, t *models.Task) error {
	return s.db.WithContext(ctx).Create(t).Error
}

func (s *PostgresStore) GetTask(ctx context.Context, id models.TaskID) (*models.Task, error) {
	var t models.Task
	err := s.db.WithContext(ctx).First(&t, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &t, nil
}

func (s *PostgresStore) UpdateTask(ctx context.Context, t *models.Task) error {
	return s.db.WithContext(ctx).Save(t).Error
}

func (s *PostgresStore) DeleteTask(ctx context.Context, id models.TaskID) error {
	return s.db.WithContext(ctx).Delete(&models.Task{}, "id = ?", id).Error
}

func (s *PostgresStore) ListTasks(ctx context.Context, projectID models.ProjectID) ([]*models.Task, error) {
	var tasks []*models.Task
	err := s.db.WithContext(ctx).Where("project_id = ?", projectID).Order("created_at").Find(&tasks).Error
	return tasks, err
}

func (s *PostgresStore) ListTasksBySprint(ctx context.Context, sprintID models.SprintID) ([]*models.Task, error) {
	var tasks []*models.Task
	err := s.db.WithContext(ctx).Where("sprint_id = ?", sprintID).Order("created_at").Find(&tasks).Error
	return tasks, err
}

func (s *PostgresStore) ListTasksByAssignee(ctx context.Context, userID models.UserID) ([]*models.Task, error) {
	var tasks []*models.Task
	err := s.db.WithContext(ctx).Where("assignee_id = ?", userID).Order("created_at").Find(&tasks).Error
	return tasks, err
}

// Sprints

func (s *PostgresStore) CreateSprint(ctx context.Context, sp *models.Sprint) error {
	return s.db.WithContext(ctx).Create(sp).Error
}

func (s *PostgresStore) GetSprint(ctx context.Context, id models.SprintID) (*models.Sprint, error) {
	var sp models.Sprint
	err := s.db.WithContext(ctx).First(&sp, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &sp, nil
}

func (s *PostgresStore) UpdateSprint(ctx context.Context, sp *models.Sprint) error {
	return s.db.WithContext(ctx).Save(sp).Error
}

func (s *PostgresStore) DeleteSprint(ctx context.Context, id models.SprintID) error {
	return s.db.WithContext(ctx).Delete(&models.Sprint{}, "id = ?", id).Error
}

func (s *PostgresStore) ListSprints(ctx context.Context, projectID models.ProjectID) ([]*models.Sprint, error) {
	var sprints []*models.Sprint
	err := s.db.WithContext(ctx).Where("project_id = ?", projectID).Order("start_date").Find(&sprints).Error
	return sprints, err
}

// Membership and roles

func (s *PostgresStore) CreateMember(ctx context.Context, m *models.WorkspaceMember) error {
	return s.db.WithContext(ctx).Create(m).Error
}

func (s *PostgresStore) GetMember(ctx context.Context, id models.MemberID) (*models.WorkspaceMember, error) {
	var m models.WorkspaceMember
	err := s.db.WithContext(ctx).First(&m, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &m, nil
}

func (s *PostgresStore) GetMemberByUser(ctx context.Context, workspaceID models.WorkspaceID, userID models.UserID) (*models.WorkspaceMember, error) {
	var m models.WorkspaceMember
	err := s.db.WithContext(ctx).First(&m, "workspace_id = ? AND user_id = ?", workspaceID, userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &m, nil
}

func (s *PostgresStore) UpdateMember(ctx context.Context, m *models.WorkspaceMember) error {
	return s.db.WithContext(ctx).Save(m).Error
}

func (s *PostgresStore) DeleteMember(ctx context.Context, id models.MemberID) error {
	return s.db.WithContext(ctx).Delete(&models.WorkspaceMember{}, "id = ?", id).Error
}

func (s *PostgresStore) ListMembers(ctx context.Context, workspaceID models.WorkspaceID) ([]*models.WorkspaceMember, error) {
	var members []*models.WorkspaceMember
	err := s.db.WithContext(ctx).Where("workspace_id = ?", workspaceID).Order("created_at").Find(&members).Error
	return members, err
}

func (s *PostgresStore) CreateRole(ctx context.Context, r *models.Role) error {
	return s.db.WithContext(ctx).Create(r).Error
}

func (s *PostgresStore) GetRole(ctx context.Context, id models.RoleID) (*models.Role, error) {
	var r models.Role
	err := s.db.WithContext(ctx).First(&r, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &r, nil
}

func (s *PostgresStore) UpdateRole(ctx context.Context, r *models.Role) error {
	return s.db.WithContext(ctx).Save(r).Error
}

func (s *PostgresStore) DeleteRole(ctx context.Context, id models.RoleID) error {
	return s.db.WithContext(ctx).Delete(&models.Role{}, "id = ?", id).Error
}

func (s *PostgresStore) ListRoles(ctx context.Context, workspaceID models.WorkspaceID) ([]*models.Role, error) {
	var roles []*models.Role
	err := s.db.WithContext(ctx).Where("workspace_id = ?", workspaceID).Order("created_at").Find(&roles).Error
	return roles, err
}

// Invitations

func (s *PostgresStore) CreateInvitation(ctx context.Context, inv *models.Invitation) error {
	return s.db.WithContext(ctx).Create(inv).Error
}

func (s *PostgresStore) GetInvitation(ctx context.Context, id models.InvitationID) (*models.Invitation, error) {
	var inv models.Invitation
	err := s.db.WithContext(ctx).First(&inv, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &inv, nil
}

func (s *PostgresStore) GetInvitationByToken(ctx context.Context, token string) (*models.Invitation, error) {
	var inv models.Invitation
	err := s.db.WithContext(ctx).First(&inv, "token = ?", token).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &inv, nil
}

func (s *PostgresStore) UpdateInvitation(ctx context.Context, inv *models.Invitation) error {
	return s.db.WithContext(ctx).Save(inv).Error
}

func (s *PostgresStore) DeleteInvitation(ctx context.Context, id models.InvitationID) error {
	return s.db.WithContext(ctx).Delete(&models.Invitation{}, "id = ?", id).Error
}

func (s *PostgresStore) ListInvitations(ctx context.Context, workspaceID models.WorkspaceID) ([]*models.Invitation, error) {
	var invitations []*models.Invitation
	err := s.db.WithContext(ctx).Where("workspace_id = ?", workspaceID).Order("created_at").Find(&invitations).Error
	return invitations, err
}

// Leave

func (s *PostgresStore) CreateLeaveRequest(ctx context.Context, lr *models.LeaveRequest) error {
	return s.db.WithContext(ctx).Create(lr).Error
}

func (s *PostgresStore) GetLeaveRequest(ctx context.Context, id models.LeaveRequestID) (*models.LeaveRequest, error) {
	var lr models.LeaveRequest
	err := s.db.WithContext(ctx).First(&lr, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &lr, nil
}

func (s *PostgresStore) UpdateLeaveRequest(ctx context.Context, lr *models.LeaveRequest) error {
	return s.db.WithContext(ctx).Save(lr).Error
}

func (s *PostgresStore) DeleteLeaveRequest(ctx context.Context, id models.LeaveRequestID) error {
	return s.db.WithContext(ctx).Delete(&models.LeaveRequest{}, "id = ?", id).Error
}

func (s *PostgresStore) ListLeaveRequests(ctx context.Context, workspaceID models.WorkspaceID) ([]*models.LeaveRequest, error) {
	var leaves []*models.LeaveRequest
	err := s.db.WithContext(ctx).Where("workspace_id = ?", workspaceID).Order("created_at").Find(&leaves).Error
	return leaves, err
}

func (s *PostgresStore) ListLeaveRequestsByUser(ctx context.Context, userID models.UserID) ([]*models.LeaveRequest, error) {
	var leaves []*models.LeaveRequest
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).Order("created_at").Find(&leaves).Error
	return leaves, err
}

// Time tracking

func (s *PostgresStore) CreateTimeEntry(ctx context.Context, te *models.TimeEntry) error {
	return s.db.WithContext(ctx).Create(te).Error
}

func (s *PostgresStore) GetTimeEntry(ctx context.Context, id models.TimeEntryID) (*models.TimeEntry, error) {
	var te models.TimeEntry
	err := s.db.WithContext(ctx).First(&te, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &te, nil
}

func (s *PostgresStore) UpdateTimeEntry(ctx context.Context, te *models.TimeEntry) error {
	return s.db.WithContext(ctx).Save(te).Error
}

func (s *PostgresStore) DeleteTimeEntry(ctx context.Context, id models.TimeEntryID) error {
	return s.db.WithContext(ctx).Delete(&models.TimeEntry{}, "id = ?", id).Error
}

func (s *PostgresStore) ListTimeEntriesByTask(ctx context.Context, taskID models.TaskID) ([]*models.TimeEntry, error) {
	var entries []*models.TimeEntry
	err := s.db.WithContext(ctx).Where("task_id = ?", taskID).Order("date").Find(&entries).Error
	return entries, err
}

func (s *PostgresStore) ListTimeEntriesByUser(ctx context.Context, userID models.UserID) ([]*models.TimeEntry, error) {
	var entries []*models.TimeEntry
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).Order("date").Find(&entries).Error
	return entries, err
}

// Notifications

func (s *PostgresStore) CreateNotification(ctx context.Context, n *models.Notification) error {
	return s.db.WithContext(ctx).Create(n).Error
}

func (s *PostgresStore) GetNotification(ctx context.Context, id models.NotificationID) (*models.Notification, error) {
	var n models.Notification
	err := s.db.WithContext(ctx).First(&n, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &n, nil
}

func (s *PostgresStore) UpdateNotification(ctx context.Context, n *models.Notification) error {
	return s.db.WithContext(ctx).Save(n).Error
}

func (s *PostgresStore) DeleteNotification(ctx context.Context, id models.NotificationID) error {
	return s.db.WithContext(ctx).Delete(&models.Notification{}, "id = ?", id).Error
}

func (s *PostgresStore) ListNotifications(ctx context.Context, userID models.UserID) ([]*models.Notification, error) {
	var notifications []*models.Notification
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).Order("created_at DESC").Find(&notifications).Error
	return notifications, err
}

func (s *PostgresStore) ListNotificationsByWorkspace(ctx context.Context, workspaceID models.WorkspaceID) ([]*models.Notification, error) {
	var notifications []*models.Notification
	err := s.db.WithContext(ctx).Where("workspace_id = ?", workspaceID).Order("created_at").Find(&notifications).Error
	return notifications, err
}
