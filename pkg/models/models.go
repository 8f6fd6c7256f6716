// Package models defines the domain entities shared by every layer of the
// application: the HTTP handlers, the store implementations, and the typed
// client. Entities carry both JSON tags for the wire format and GORM tags for
// the relational backend; the SurrealDB backend relies on the CBOR marshaling
// implemented on the typed ID types.
package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// TaskStatus is the workflow state of a task.
type TaskStatus string

const (
	TaskStatusTodo       TaskStatus = "todo"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusInReview   TaskStatus = "in_review"
	TaskStatusBlocked    TaskStatus = "blocked"
	TaskStatusDone       TaskStatus = "done"
)

// Rank orders statuses by how far along the workflow they are. Used when
// sorting task lists by status.
func (s TaskStatus) Rank() int {
	switch s {
	case TaskStatusTodo:
		return 0
	case TaskStatusInProgress:
		return 1
	case TaskStatusInReview:
		return 2
	case TaskStatusBlocked:
		return 3
	case TaskStatusDone:
		return 4
	default:
		return 5
	}
}

// Priority is the planned importance of a task.
type Priority string

const (
	PriorityLow      Priority = "low"
	PriorityMedium   Priority = "medium"
	PriorityHigh     Priority = "high"
	PriorityCritical Priority = "critical"
)

func (p Priority) Rank() int {
	switch p {
	case PriorityLow:
		return 0
	case PriorityMedium:
		return 1
	case PriorityHigh:
		return 2
	case PriorityCritical:
		return 3
	default:
		return -1
	}
}

// Urgency is how time-sensitive a task is, independent of priority.
type Urgency string

const (
	UrgencyLow    Urgency = "low"
	UrgencyNormal Urgency = "normal"
	UrgencyHigh   Urgency = "high"
)

func (u Urgency) Rank() int {
	switch u {
	case UrgencyLow:
		return 0
	case UrgencyNormal:
		return 1
	case UrgencyHigh:
		return 2
	default:
		return -1
	}
}

// SprintStatus is the lifecycle state of a sprint.
type SprintStatus string

const (
	SprintStatusPlanned   SprintStatus = "planned"
	SprintStatusActive    SprintStatus = "active"
	SprintStatusCompleted SprintStatus = "completed"
)

// LeaveType classifies a leave request.
type LeaveType string

const (
	LeaveTypeCasual LeaveType = "casual"
	LeaveTypeSick   LeaveType = "sick"
	LeaveTypeEarned LeaveType = "earned"
	LeaveTypeUnpaid LeaveType = "unpaid"
)

// LeaveStatus is the review state of a leave request.
type LeaveStatus string

const (
	LeaveStatusPending  LeaveStatus = "pending"
	LeaveStatusApproved LeaveStatus = "approved"
	LeaveStatusRejected LeaveStatus = "rejected"
)

// InvitationStatus tracks an invitation from issue to resolution.
type InvitationStatus string

const (
	InvitationStatusPending  InvitationStatus = "pending"
	InvitationStatusAccepted InvitationStatus = "accepted"
	InvitationStatusExpired  InvitationStatus = "expired"
	InvitationStatusRevoked  InvitationStatus = "revoked"
)

// NotificationKind identifies what event a notification describes.
type NotificationKind string

const (
	NotificationTaskAssigned  NotificationKind = "task_assigned"
	NotificationTaskUpdated   NotificationKind = "task_updated"
	NotificationLeaveDecided  NotificationKind = "leave_decided"
	NotificationInviteUpdated NotificationKind = "invite_updated"
	NotificationMention       NotificationKind = "mention"
)

// JSONMap stores arbitrary key/value properties as a JSON column.
type JSONMap map[string]any

func (j JSONMap) Value() (driver.Value, error) {
	if j == nil {
		return nil, nil
	}
	return json.Marshal(j)
}

func (j *JSONMap) Scan(value any) error {
	if value == nil {
		*j = nil
		return nil
	}

	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("cannot scan type %T into JSONMap", value)
	}

	return json.Unmarshal(data, j)
}

func (JSONMap) GormDataType() string { return "jsonb" }

// User is an authenticated account. PasswordHash never leaves the server.
type User struct {
	ID           UserID    `json:"id" gorm:"type:uuid;primaryKey"`
	Email        string    `json:"email" gorm:"uniqueIndex;not null"`
	Name         string    `json:"name" gorm:"not null"`
	PasswordHash string    `json:"-" gorm:"not null"`
	AvatarURL    string    `json:"avatar_url,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID.IsZero() {
		u.ID = NewUserID()
	}
	return nil
}

func (User) TableName() string { return "users" }

// Workspace is the top-level tenant boundary. Every other entity except User
// belongs, directly or transitively, to exactly one workspace.
type Workspace struct {
	ID        WorkspaceID `json:"id" gorm:"type:uuid;primaryKey"`
	Name      string      `json:"name" gorm:"not null"`
	Slug      string      `json:"slug" gorm:"uniqueIndex;not null"`
	OwnerID   UserID      `json:"owner_id" gorm:"type:uuid;index;not null"`
	Settings  JSONMap     `json:"settings,omitempty" gorm:"type:jsonb"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

func (w *Workspace) BeforeCreate(tx *gorm.DB) error {
	if w.ID.IsZero() {
		w.ID = NewWorkspaceID()
	}
	return nil
}

func (Workspace) TableName() string { return "workspaces" }

// Project groups the requirement hierarchy, sprints and tasks inside a
// workspace. Prefix is the letter code used as the root of every hierarchy
// identifier generated under this project.
type Project struct {
	ID          ProjectID   `json:"id" gorm:"type:uuid;primaryKey"`
	WorkspaceID WorkspaceID `json:"workspace_id" gorm:"type:uuid;index;not null"`
	Name        string      `json:"name" gorm:"not null"`
	Description string      `json:"description,omitempty"`
	Prefix      string      `json:"prefix" gorm:"not null"`
	StartDate   *time.Time  `json:"start_date,omitempty"`
	EndDate     *time.Time  `json:"end_date,omitempty"`
	CreatedBy   UserID      `json:"created_by" gorm:"type:uuid"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

func (p *Project) BeforeCreate(tx *gorm.DB) error {
	if p.ID.IsZero() {
		p.ID = NewProjectID()
	}
	return nil
}

func (Project) TableName() string { return "projects" }

// ClientRequirement is a top-level requirement captured from the client.
// HierarchyID is the human-readable identifier, e.g. "PTES-RAU01".
type ClientRequirement struct {
	ID          ClientRequirementID `json:"id" gorm:"type:uuid;primaryKey"`
	ProjectID   ProjectID           `json:"project_id" gorm:"type:uuid;index;not null"`
	HierarchyID string              `json:"hierarchy_id" gorm:"uniqueIndex;not null"`
	Title       string              `json:"title" gorm:"not null"`
	Description string              `json:"description,omitempty"`
	Priority    Priority            `json:"priority" gorm:"default:medium"`
	CreatedBy   UserID              `json:"created_by" gorm:"type:uuid"`
	CreatedAt   time.Time           `json:"created_at"`
	UpdatedAt   time.Time           `json:"updated_at"`
}

func (c *ClientRequirement) BeforeCreate(tx *gorm.DB) error {
	if c.ID.IsZero() {
		c.ID = NewClientRequirementID()
	}
	return nil
}

func (ClientRequirement) TableName() string { return "client_requirements" }

// Epic breaks a client requirement into deliverable chunks.
type Epic struct {
	ID                  EpicID              `json:"id" gorm:"type:uuid;primaryKey"`
	ProjectID           ProjectID           `json:"project_id" gorm:"type:uuid;index;not null"`
	ClientRequirementID ClientRequirementID `json:"client_requirement_id" gorm:"type:uuid;index;not null"`
	HierarchyID         string              `json:"hierarchy_id" gorm:"uniqueIndex;not null"`
	Title               string              `json:"title" gorm:"not null"`
	Description         string              `json:"description,omitempty"`
	Priority            Priority            `json:"priority" gorm:"default:medium"`
	CreatedBy           UserID              `json:"created_by" gorm:"type:uuid"`
	CreatedAt           time.Time           `json:"created_at"`
	UpdatedAt           time.Time           `json:"updated_at"`
}

func (e *Epic) BeforeCreate(tx *gorm.DB) error {
	if e.ID.IsZero() {
		e.ID = NewEpicID()
	}
	return nil
}

func (Epic) TableName() string { return "epics" }

// FunctionalRequirement is the leaf of the requirement hierarchy; tasks hang
// off functional requirements.
type FunctionalRequirement struct {
	ID          FunctionalRequirementID `json:"id" gorm:"type:uuid;primaryKey"`
	ProjectID   ProjectID               `json:"project_id" gorm:"type:uuid;index;not null"`
	EpicID      EpicID                  `json:"epic_id" gorm:"type:uuid;index;not null"`
	HierarchyID string                  `json:"hierarchy_id" gorm:"uniqueIndex;not null"`
	Title       string                  `json:"title" gorm:"not null"`
	Description string                  `json:"description,omitempty"`
	Priority    Priority                `json:"priority" gorm:"default:medium"`
	CreatedBy   UserID                  `json:"created_by" gorm:"type:uuid"`
	CreatedAt   time.Time               `json:"created_at"`
	UpdatedAt   time.Time               `json:"updated_at"`
}

func (f *FunctionalRequirement) BeforeCreate(tx *gorm.DB) error {
	if f.ID.IsZero() {
		f.ID = NewFunctionalRequirementID()
	}
	return nil
}

func (FunctionalRequirement) TableName() string { return "functional_requirements" }

// Task is a unit of work. A task may belong to a functional requirement, a
// sprint, and an assignee, all optional. ParentTaskID links subtasks to their
// parent.
type Task struct {
	ID                      TaskID                   `json:"id" gorm:"type:uuid;primaryKey"`
	ProjectID               ProjectID                `json:"project_id" gorm:"type:uuid;index;not null"`
	FunctionalRequirementID *FunctionalRequirementID `json:"functional_requirement_id,omitempty" gorm:"type:uuid;index"`
	SprintID                *SprintID                `json:"sprint_id,omitempty" gorm:"type:uuid;index"`
	ParentTaskID            *TaskID                  `json:"parent_task_id,omitempty" gorm:"type:uuid;index"`
	AssigneeID              *UserID                  `json:"assignee_id,omitempty" gorm:"type:uuid;index"`
	HierarchyID             string                   `json:"hierarchy_id" gorm:"uniqueIndex;not null"`
	Title                   string                   `json:"title" gorm:"not null"`
	Description             string                   `json:"description,omitempty"`
	Status                  TaskStatus               `json:"status" gorm:"default:todo"`
	Priority                Priority                 `json:"priority" gorm:"default:medium"`
	Urgency                 Urgency                  `json:"urgency" gorm:"default:normal"`
	EstimateHours           float64                  `json:"estimate_hours,omitempty"`
	DueDate                 *time.Time               `json:"due_date,omitempty"`
	CreatedBy               UserID                   `json:"created_by" gorm:"type:uuid"`
	CreatedAt               time.Time                `json:"created_at"`
	UpdatedAt               time.Time                `json:"updated_at"`
}

func (t *Task) BeforeCreate(tx *gorm.DB) error {
	if t.ID.IsZero() {
		t.ID = NewTaskID()
	}
	return nil
}

func (Task) TableName() string { return "tasks" }

// Sprint is a timeboxed iteration inside a project.
type Sprint struct {
	ID        SprintID     `json:"id" gorm:"type:uuid;primaryKey"`
	ProjectID ProjectID    `json:"project_id" gorm:"type:uuid;index;not null"`
	Name      string       `json:"name" gorm:"not null"`
	Goal      string       `json:"goal,omitempty"`
	Status    SprintStatus `json:"status" gorm:"default:planned"`
	StartDate time.Time    `json:"start_date"`
	EndDate   time.Time    `json:"end_date"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}

func (s *Sprint) BeforeCreate(tx *gorm.DB) error {
	if s.ID.IsZero() {
		s.ID = NewSprintID()
	}
	return nil
}

func (Sprint) TableName() string { return "sprints" }

// WorkspaceMember links a user to a workspace with a role.
type WorkspaceMember struct {
	ID          MemberID    `json:"id" gorm:"type:uuid;primaryKey"`
	WorkspaceID WorkspaceID `json:"workspace_id" gorm:"type:uuid;index;not null"`
	UserID      UserID      `json:"user_id" gorm:"type:uuid;index;not null"`
	RoleID      RoleID      `json:"role_id" gorm:"type:uuid;not null"`
	JoinedAt    time.Time   `json:"joined_at"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

func (m *WorkspaceMember) BeforeCreate(tx *gorm.DB) error {
	if m.ID.IsZero() {
		m.ID = NewMemberID()
	}
	return nil
}

func (WorkspaceMember) TableName() string { return "workspace_members" }

// Role names a set of permissions inside a workspace. Permissions are stored
// as a map of capability name to bool so workspaces can define custom roles.
type Role struct {
	ID          RoleID      `json:"id" gorm:"type:uuid;primaryKey"`
	WorkspaceID WorkspaceID `json:"workspace_id" gorm:"type:uuid;index;not null"`
	Name        string      `json:"name" gorm:"not null"`
	Permissions JSONMap     `json:"permissions,omitempty" gorm:"type:jsonb"`
	IsDefault   bool        `json:"is_default"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

func (r *Role) BeforeCreate(tx *gorm.DB) error {
	if r.ID.IsZero() {
		r.ID = NewRoleID()
	}
	return nil
}

func (Role) TableName() string { return "roles" }

// Invitation is a pending offer to join a workspace, delivered by email.
// Token is the signed token embedded in the invitation link.
type Invitation struct {
	ID          InvitationID     `json:"id" gorm:"type:uuid;primaryKey"`
	WorkspaceID WorkspaceID      `json:"workspace_id" gorm:"type:uuid;index;not null"`
	Email       string           `json:"email" gorm:"index;not null"`
	RoleID      RoleID           `json:"role_id" gorm:"type:uuid;not null"`
	Token       string           `json:"-" gorm:"uniqueIndex;not null"`
	Status      InvitationStatus `json:"status" gorm:"default:pending"`
	InvitedBy   UserID           `json:"invited_by" gorm:"type:uuid"`
	ExpiresAt   time.Time        `json:"expires_at"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
}

func (i *Invitation) BeforeCreate(tx *gorm.DB) error {
	if i.ID.IsZero() {
		i.ID = NewInvitationID()
	}
	return nil
}

func (Invitation) TableName() string { return "invitations" }

// LeaveRequest is a request for time off within a workspace. WorkingDays is
// computed server side from the date range, counting Monday through Friday.
type LeaveRequest struct {
	ID          LeaveRequestID `json:"id" gorm:"type:uuid;primaryKey"`
	WorkspaceID WorkspaceID    `json:"workspace_id" gorm:"type:uuid;index;not null"`
	UserID      UserID         `json:"user_id" gorm:"type:uuid;index;not null"`
	Type        LeaveType      `json:"type" gorm:"not null"`
	Status      LeaveStatus    `json:"status" gorm:"default:pending"`
	StartDate   time.Time      `json:"start_date"`
	EndDate     time.Time      `json:"end_date"`
	WorkingDays int            `json:"working_days"`
	Reason      string         `json:"reason,omitempty"`
	DecidedBy   *UserID        `json:"decided_by,omitempty" gorm:"type:uuid"`
	DecidedAt   *time.Time     `json:"decided_at,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

func (l *LeaveRequest) BeforeCreate(tx *gorm.DB) error {
	if l.ID.IsZero() {
		l.ID = NewLeaveRequestID()
	}
	return nil
}

func (LeaveRequest) TableName() string { return "leave_requests" }

// TimeEntry records hours logged against a task on a given day.
type TimeEntry struct {
	ID          TimeEntryID `json:"id" gorm:"type:uuid;primaryKey"`
	WorkspaceID WorkspaceID `json:"workspace_id" gorm:"type:uuid;index;not null"`
	TaskID      TaskID      `json:"task_id" gorm:"type:uuid;index;not null"`
	UserID      UserID      `json:"user_id" gorm:"type:uuid;index;not null"`
	Date        time.Time   `json:"date"`
	Hours       float64     `json:"hours"`
	Note        string      `json:"note,omitempty"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

func (t *TimeEntry) BeforeCreate(tx *gorm.DB) error {
	if t.ID.IsZero() {
		t.ID = NewTimeEntryID()
	}
	return nil
}

func (TimeEntry) TableName() string { return "time_entries" }

// Notification is a message delivered to a user, persisted and optionally
// pushed over the websocket feed.
type Notification struct {
	ID          NotificationID   `json:"id" gorm:"type:uuid;primaryKey"`
	WorkspaceID WorkspaceID      `json:"workspace_id" gorm:"type:uuid;index;not null"`
	UserID      UserID           `json:"user_id" gorm:"type:uuid;index;not null"`
	Kind        NotificationKind `json:"kind" gorm:"not null"`
	Title       string           `json:"title" gorm:"not null"`
	Body        string           `json:"body,omitempty"`
	Data        JSONMap          `json:"data,omitempty" gorm:"type:jsonb"`
	ReadAt      *time.Time       `json:"read_at,omitempty"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
}

func (n *Notification) BeforeCreate(tx *gorm.DB) error {
	if n.ID.IsZero() {
		n.ID = NewNotificationID()
	}
	return nil
}

func (Notification) TableName() string { return "notifications" }
