package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"github.com/fxamacker/cbor/v2"
	"github.com/google/uuid"
	surrealdb_models "github.com/surrealdb/surrealdb.go/pkg/models"
)

// Each entity gets its own ID type wrapping a UUID. The wrapper marshals to a
// plain string in JSON, to a SurrealDB RecordID (CBOR tag 8) in CBOR, and to a
// uuid column under database/sql and GORM. Keeping the types distinct prevents
// a TaskID from being passed where a ProjectID is expected.

// UserID is a typed ID for users
type UserID struct {
	uuid uuid.UUID
}

func NewUserID() UserID {
	return UserID{uuid: uuid.New()}
}

func NewUserIDFromUUID(id uuid.UUID) UserID {
	return UserID{uuid: id}
}

func ParseUserID(s string) (UserID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return UserID{}, fmt.Errorf("invalid user ID: %w", err)
	}
	return UserID{uuid: id}, nil
}

func (u UserID) UUID() uuid.UUID { return u.uuid }
func (u UserID) String() string  { return u.uuid.String() }
func (u UserID) IsZero() bool    { return u.uuid == uuid.Nil }

func (u UserID) RecordID() surrealdb_models.RecordID {
	return surrealdb_models.RecordID{Table: "users", ID: u.uuid.String()}
}

func (u UserID) MarshalJSON() ([]byte, error) {
	return json.Marshal(u.uuid.String())
}

func (u *UserID) UnmarshalJSON(data []byte) error {
	return unmarshalJSONID(data, &u.uuid)
}

func (u UserID) MarshalCBOR() ([]byte, error) {
	return marshalCBORID("users", u.uuid)
}

func (u *UserID) UnmarshalCBOR(data []byte) error {
	return unmarshalCBORID(data, "users", &u.uuid)
}

func (u UserID) Value() (driver.Value, error) {
	if u.IsZero() {
		return nil, nil
	}
	return u.uuid.String(), nil
}

func (u *UserID) Scan(value any) error {
	return scanUUID(value, &u.uuid)
}

func (UserID) GormDataType() string { return "uuid" }

// WorkspaceID is a typed ID for workspaces
type WorkspaceID struct {
	uuid uuid.UUID
}

func NewWorkspaceID() WorkspaceID {
	return WorkspaceID{uuid: uuid.New()}
}

func NewWorkspaceIDFromUUID(id uuid.UUID) WorkspaceID {
	return WorkspaceID{uuid: id}
}

func ParseWorkspaceID(s string) (WorkspaceID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return WorkspaceID{}, fmt.Errorf("invalid workspace ID: %w", err)
	}
	return WorkspaceID{uuid: id}, nil
}

func (w WorkspaceID) UUID() uuid.UUID { return w.uuid }
func (w WorkspaceID) String() string  { return w.uuid.String() }
func (w WorkspaceID) IsZero() bool    { return w.uuid == uuid.Nil }

func (w WorkspaceID) RecordID() surrealdb_models.RecordID {
	return surrealdb_models.RecordID{Table: "workspaces", ID: w.uuid.String()}
}

func (w WorkspaceID) MarshalJSON() ([]byte, error) {
	return json.Marshal(w.uuid.String())
}

func (w *WorkspaceID) UnmarshalJSON(data []byte) error {
	return unmarshalJSONID(data, &w.uuid)
}

func (w WorkspaceID) MarshalCBOR() ([]byte, error) {
	return marshalCBORID("workspaces", w.uuid)
}

func (w *WorkspaceID) UnmarshalCBOR(data []byte) error {
	return unmarshalCBORID(data, "workspaces", &w.uuid)
}

func (w WorkspaceID) Value() (driver.Value, error) {
	if w.IsZero() {
		return nil, nil
	}
	return w.uuid.String(), nil
}

func (w *WorkspaceID) Scan(value any) error {
	return scanUUID(value, &w.uuid)
}

func (WorkspaceID) GormDataType() string { return "uuid" }

// ProjectID is a typed ID for projects
type ProjectID struct {
	uuid uuid.UUID
}

func NewProjectID() ProjectID {
	return ProjectID{uuid: uuid.New()}
}

func NewProjectIDFromUUID(id uuid.UUID) ProjectID {
	return ProjectID{uuid: id}
}

func ParseProjectID(s string) (ProjectID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return ProjectID{}, fmt.Errorf("invalid project ID: %w", err)
	}
	return ProjectID{uuid: id}, nil
}

func (p ProjectID) UUID() uuid.UUID { return p.uuid }
func (p ProjectID) String() string  { return p.uuid.String() }
func (p ProjectID) IsZero() bool    { return p.uuid == uuid.Nil }

func (p ProjectID) RecordID() surrealdb_models.RecordID {
	return surrealdb_models.RecordID{Table: "projects", ID: p.uuid.String()}
}

func (p ProjectID) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.uuid.String())
}

func (p *ProjectID) UnmarshalJSON(data []byte) error {
	return unmarshalJSONID(data, &p.uuid)
}

func (p ProjectID) MarshalCBOR() ([]byte, error) {
	return marshalCBORID("projects", p.uuid)
}

func (p *ProjectID) UnmarshalCBOR(data []byte) error {
	return unmarshalCBORID(data, "projects", &p.uuid)
}

func (p ProjectID) Value() (driver.Value, error) {
	if p.IsZero() {
		return nil, nil
	}
	return p.uuid.String(), nil
}

func (p *ProjectID) Scan(value any) error {
	return scanUUID(value, &p.uuid)
}

func (ProjectID) GormDataType() string { return "uuid" }

// ClientRequirementID is a typed ID for client requirements
type ClientRequirementID struct {
	uuid uuid.UUID
}

func NewClientRequirementID() ClientRequirementID {
	return ClientRequirementID{uuid: uuid.New()}
}

func NewClientRequirementIDFromUUID(id uuid.UUID) ClientRequirementID {
	return ClientRequirementID{uuid: id}
}

func ParseClientRequirementID(s string) (ClientRequirementID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return ClientRequirementID{}, fmt.Errorf("invalid client requirement ID: %w", err)
	}
	return ClientRequirementID{uuid: id}, nil
}

func (c ClientRequirementID) UUID() uuid.UUID { return c.uuid }
func (c ClientRequirementID) String() string  { return c.uuid.String() }
func (c ClientRequirementID) IsZero() bool    { return c.uuid == uuid.Nil }

func (c ClientRequirementID) RecordID() surrealdb_models.RecordID {
	return surrealdb_models.RecordID{Table: "client_requirements", ID: c.uuid.String()}
}

func (c ClientRequirementID) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.uuid.String())
}

func (c *ClientRequirementID) UnmarshalJSON(data []byte) error {
	return unmarshalJSONID(data, &c.uuid)
}

func (c ClientRequirementID) MarshalCBOR() ([]byte, error) {
	return marshalCBORID("client_requirements", c.uuid)
}

func (c *ClientRequirementID) UnmarshalCBOR(data []byte) error {
	return unmarshalCBORID(data, "client_requirements", &c.uuid)
}

func (c ClientRequirementID) Value() (driver.Value, error) {
	if c.IsZero() {
		return nil, nil
	}
	return c.uuid.String(), nil
}

func (c *ClientRequirementID) Scan(value any) error {
	return scanUUID(value, &c.uuid)
}

func (ClientRequirementID) GormDataType() string { return "uuid" }

// EpicID is a typed ID for epics
type EpicID struct {
	uuid uuid.UUID
}

func NewEpicID() EpicID {
	return EpicID{uuid: uuid.New()}
}

func NewEpicIDFromUUID(id uuid.UUID) EpicID {
	return EpicID{uuid: id}
}

func ParseEpicID(s string) (EpicID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return EpicID{}, fmt.Errorf("invalid epic ID: %w", err)
	}
	return EpicID{uuid: id}, nil
}

func (e EpicID) UUID() uuid.UUID { return e.uuid }
func (e EpicID) String() string  { return e.uuid.String() }
func (e EpicID) IsZero() bool    { return e.uuid == uuid.Nil }

func (e EpicID) RecordID() surrealdb_models.RecordID {
	return surrealdb_models.RecordID{Table: "epics", ID: e.uuid.String()}
}

func (e EpicID) MarshalJSON() ([]byte, error) {
	return json.Marshal(e.uuid.String())
}

func (e *EpicID) UnmarshalJSON(data []byte) error {
	return unmarshalJSONID(data, &e.uuid)
}

func (e EpicID) MarshalCBOR() ([]byte, error) {
	return marshalCBORID("epics", e.uuid)
}

func (e *EpicID) UnmarshalCBOR(data []byte) error {
	return unmarshalCBORID(data, "epics", &e.uuid)
}

func (e EpicID) Value() (driver.Value, error) {
	if e.IsZero() {
		return nil, nil
	}
	return e.uuid.String(), nil
}

func (e *EpicID) Scan(value any) error {
	return scanUUID(value, &e.uuid)
}

func (EpicID) GormDataType() string { return "uuid" }

// FunctionalRequirementID is a typed ID for functional requirements
type FunctionalRequirementID struct {
	uuid uuid.UUID
}

func NewFunctionalRequirementID() FunctionalRequirementID {
	return FunctionalRequirementID{uuid: uuid.New()}
}

func NewFunctionalRequirementIDFromUUID(id uuid.UUID) FunctionalRequirementID {
	return FunctionalRequirementID{uuid: id}
}

func ParseFunctionalRequirementID(s string) (FunctionalRequirementID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return FunctionalRequirementID{}, fmt.Errorf("invalid functional requirement ID: %w", err)
	}
	return FunctionalRequirementID{uuid: id}, nil
}

func (f FunctionalRequirementID) UUID() uuid.UUID { return f.uuid }
func (f FunctionalRequirementID) String() string  { return f.uuid.String() }
func (f FunctionalRequirementID) IsZero() bool    { return f.uuid == uuid.Nil }

func (f FunctionalRequirementID) RecordID() surrealdb_models.RecordID {
	return surrealdb_models.RecordID{Table: "functional_requirements", ID: f.uuid.String()}
}

func (f FunctionalRequirementID) MarshalJSON() ([]byte, error) {
	return json.Marshal(f.uuid.String())
}

func (f *FunctionalRequirementID) UnmarshalJSON(data []byte) error {
	return unmarshalJSONID(data, &f.uuid)
}

func (f FunctionalRequirementID) MarshalCBOR() ([]byte, error) {
	return marshalCBORID("functional_requirements", f.uuid)
}

func (f *FunctionalRequirementID) UnmarshalCBOR(data []byte) error {
	return unmarshalCBORID(data, "functional_requirements", &f.uuid)
}

func (f FunctionalRequirementID) Value() (driver.Value, error) {
	if f.IsZero() {
		return nil, nil
	}
	return f.uuid.String(), nil
}

func (f *FunctionalRequirementID) Scan(value any) error {
	return scanUUID(value, &f.uuid)
}

func (FunctionalRequirementID) GormDataType() string { return "uuid" }

// TaskID is a typed ID for tasks
type TaskID struct {
	uuid uuid.UUID
}

func NewTaskID() TaskID {
	return TaskID{uuid: uuid.New()}
}

func NewTaskIDFromUUID(id uuid.UUID) TaskID {
	return TaskID{uuid: id}
}

func ParseTaskID(s string) (TaskID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return TaskID{}, fmt.Errorf("invalid task ID: %w", err)
	}
	return TaskID{uuid: id}, nil
}

func (t TaskID) UUID() uuid.UUID { return t.uuid }
func (t TaskID) String() string  { return t.uuid.String() }
func (t TaskID) IsZero() bool    { return t.uuid == uuid.Nil }

func (t TaskID) RecordID() surrealdb_models.RecordID {
	return surrealdb_models.RecordID{Table: "tasks", ID: t.uuid.String()}
}

func (t TaskID) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.uuid.String())
}

func (t *TaskID) UnmarshalJSON(data []byte) error {
	return unmarshalJSONID(data, &t.uuid)
}

func (t TaskID) MarshalCBOR() ([]byte, error) {
	return marshalCBORID("tasks", t.uuid)
}

func (t *TaskID) UnmarshalCBOR(data []byte) error {
	return unmarshalCBORID(data, "tasks", &t.uuid)
}

func (t TaskID) Value() (driver.Value, error) {
	if t.IsZero() {
		return nil, nil
	}
	return t.uuid.String(), nil
}

func (t *TaskID) Scan(value any) error {
	return scanUUID(value, &t.uuid)
}

func (TaskID) GormDataType() string { return "uuid" }

// SprintID is a typed ID for sprints
type SprintID struct {
	uuid uuid.UUID
}

func NewSprintID() SprintID {
	return SprintID{uuid: uuid.New()}
}

func NewSprintIDFromUUID(id uuid.UUID) SprintID {
	return SprintID{uuid: id}
}

func ParseSprintID(s string) (SprintID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return SprintID{}, fmt.Errorf("invalid sprint ID: %w", err)
	}
	return SprintID{uuid: id}, nil
}

func (s SprintID) UUID() uuid.UUID { return s.uuid }
func (s SprintID) String() string  { return s.uuid.String() }
func (s SprintID) IsZero() bool    { return s.uuid == uuid.Nil }

func (s SprintID) RecordID() surrealdb_models.RecordID {
	return surrealdb_models.RecordID{Table: "sprints", ID: s.uuid.String()}
}

func (s SprintID) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.uuid.String())
}

func (s *SprintID) UnmarshalJSON(data []byte) error {
	return unmarshalJSONID(data, &s.uuid)
}

func (s SprintID) MarshalCBOR() ([]byte, error) {
	return marshalCBORID("sprints", s.uuid)
}

func (s *SprintID) UnmarshalCBOR(data []byte) error {
	return unmarshalCBORID(data, "sprints", &s.uuid)
}

func (s SprintID) Value() (driver.Value, error) {
	if s.IsZero() {
		return nil, nil
	}
	return s.uuid.String(), nil
}

func (s *SprintID) Scan(value any) error {
	return scanUUID(value, &s.uuid)
}

func (SprintID) GormDataType() string { return "uuid" }

// MemberID is a typed ID for workspace members
type MemberID struct {
	uuid uuid.UUID
}

func NewMemberID() MemberID {
	return MemberID{uuid: uuid.New()}
}

func NewMemberIDFromUUID(id uuid.UUID) MemberID {
	return MemberID{uuid: id}
}

func ParseMemberID(s string) (MemberID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return MemberID{}, fmt.Errorf("invalid member ID: %w", err)
	}
	return MemberID{uuid: id}, nil
}

func (m MemberID) UUID() uuid.UUID { return m.uuid }
func (m MemberID) String() string  { return m.uuid.String() }
func (m MemberID) IsZero() bool    { return m.uuid == uuid.Nil }

func (m MemberID) RecordID() surrealdb_models.RecordID {
	return surrealdb_models.RecordID{Table: "workspace_members", ID: m.uuid.String()}
}

func (m MemberID) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.uuid.String())
}

func (m *MemberID) UnmarshalJSON(data []byte) error {
	return unmarshalJSONID(data, &m.uuid)
}

func (m MemberID) MarshalCBOR() ([]byte, error) {
	return marshalCBORID("workspace_members", m.uuid)
}

func (m *MemberID) UnmarshalCBOR(data []byte) error {
	return unmarshalCBORID(data, "workspace_members", &m.uuid)
}

func (m MemberID) Value() (driver.Value, error) {
	if m.IsZero() {
		return nil, nil
	}
	return m.uuid.String(), nil
}

func (m *MemberID) Scan(value any) error {
	return scanUUID(value, &m.uuid)
}

func (MemberID) GormDataType() string { return "uuid" }

// RoleID is a typed ID for roles
type RoleID struct {
	uuid uuid.UUID
}

func NewRoleID() RoleID {
	return RoleID{uuid: uuid.New()}
}

func NewRoleIDFromUUID(id uuid.UUID) RoleID {
	return RoleID{uuid: id}
}

func ParseRoleID(s string) (RoleID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return RoleID{}, fmt.Errorf("invalid role ID: %w", err)
	}
	return RoleID{uuid: id}, nil
}

func (r RoleID) UUID() uuid.UUID { return r.uuid }
func (r RoleID) String() string  { return r.uuid.String() }
func (r RoleID) IsZero() bool    { return r.uuid == uuid.Nil }

func (r RoleID) RecordID() surrealdb_models.RecordID {
	return surrealdb_models.RecordID{Table: "roles", ID: r.uuid.String()}
}

func (r RoleID) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.uuid.String())
}

func (r *RoleID) UnmarshalJSON(data []byte) error {
	return unmarshalJSONID(data, &r.uuid)
}

func (r RoleID) MarshalCBOR() ([]byte, error) {
	return marshalCBORID("roles", r.uuid)
}

func (r *RoleID) UnmarshalCBOR(data []byte) error {
	return unmarshalCBORID(data, "roles", &r.uuid)
}

func (r RoleID) Value() (driver.Value, error) {
	if r.IsZero() {
		return nil, nil
	}
	return r.uuid.String(), nil
}

func (r *RoleID) Scan(value any) error {
	return scanUUID(value, &r.uuid)
}

func (RoleID) GormDataType() string { return "uuid" }

// InvitationID is a typed ID for invitations
type InvitationID struct {
	uuid uuid.UUID
}

func NewInvitationID() InvitationID {
	return InvitationID{uuid: uuid.New()}
}

func NewInvitationIDFromUUID(id uuid.UUID) InvitationID {
	return InvitationID{uuid: id}
}

func ParseInvitationID(s string) (InvitationID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return InvitationID{}, fmt.Errorf("invalid invitation ID: %w", err)
	}
	return InvitationID{uuid: id}, nil
}

func (i InvitationID) UUID() uuid.UUID { return i.uuid }
func (i InvitationID) String() string  { return i.uuid.String() }
func (i InvitationID) IsZero() bool    { return i.uuid == uuid.Nil }

func (i InvitationID) RecordID() surrealdb_models.RecordID {
	return surrealdb_models.RecordID{Table: "invitations", ID: i.uuid.String()}
}

func (i InvitationID) MarshalJSON() ([]byte, error) {
	return json.Marshal(i.uuid.String())
}

func (i *InvitationID) UnmarshalJSON(data []byte) error {
	return unmarshalJSONID(data, &i.uuid)
}

func (i InvitationID) MarshalCBOR() ([]byte, error) {
	return marshalCBORID("invitations", i.uuid)
}

func (i *InvitationID) UnmarshalCBOR(data []byte) error {
	return unmarshalCBORID(data, "invitations", &i.uuid)
}

func (i InvitationID) Value() (driver.Value, error) {
	if i.IsZero() {
		return nil, nil
	}
	return i.uuid.String(), nil
}

func (i *InvitationID) Scan(value any) error {
	return scanUUID(value, &i.uuid)
}

func (InvitationID) GormDataType() string { return "uuid" }

// LeaveRequestID is a typed ID for leave requests
type LeaveRequestID struct {
	uuid uuid.UUID
}

func NewLeaveRequestID() LeaveRequestID {
	return LeaveRequestID{uuid: uuid.New()}
}

func NewLeaveRequestIDFromUUID(id uuid.UUID) LeaveRequestID {
	return LeaveRequestID{uuid: id}
}

func ParseLeaveRequestID(s string) (LeaveRequestID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return LeaveRequestID{}, fmt.Errorf("invalid leave request ID: %w", err)
	}
	return LeaveRequestID{uuid: id}, nil
}

func (l LeaveRequestID) UUID() uuid.UUID { return l.uuid }
func (l LeaveRequestID) String() string  { return l.uuid.String() }
func (l LeaveRequestID) IsZero() bool    { return l.uuid == uuid.Nil }

func (l LeaveRequestID) RecordID() surrealdb_models.RecordID {
	return surrealdb_models.RecordID{Table: "leave_requests", ID: l.uuid.String()}
}

func (l LeaveRequestID) MarshalJSON() ([]byte, error) {
	return json.Marshal(l.uuid.String())
}

func (l *LeaveRequestID) UnmarshalJSON(data []byte) error {
	return unmarshalJSONID(data, &l.uuid)
}

func (l LeaveRequestID) MarshalCBOR() ([]byte, error) {
	return marshalCBORID("leave_requests", l.uuid)
}

func (l *LeaveRequestID) UnmarshalCBOR(data []byte) error {
	return unmarshalCBORID(data, "leave_requests", &l.uuid)
}

func (l LeaveRequestID) Value() (driver.Value, error) {
	if l.IsZero() {
		return nil, nil
	}
	return l.uuid.String(), nil
}

func (l *LeaveRequestID) Scan(value any) error {
	return scanUUID(value, &l.uuid)
}

func (LeaveRequestID) GormDataType() string { return "uuid" }

// TimeEntryID is a typed ID for time entries
type TimeEntryID struct {
	uuid uuid.UUID
}

func NewTimeEntryID() TimeEntryID {
	return TimeEntryID{uuid: uuid.New()}
}

func NewTimeEntryIDFromUUID(id uuid.UUID) TimeEntryID {
	return TimeEntryID{uuid: id}
}

func ParseTimeEntryID(s string) (TimeEntryID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return TimeEntryID{}, fmt.Errorf("invalid time entry ID: %w", err)
	}
	return TimeEntryID{uuid: id}, nil
}

func (t TimeEntryID) UUID() uuid.UUID { return t.uuid }
func (t TimeEntryID) String() string  { return t.uuid.String() }
func (t TimeEntryID) IsZero() bool    { return t.uuid == uuid.Nil }

func (t TimeEntryID) RecordID() surrealdb_models.RecordID {
	return surrealdb_models.RecordID{Table: "time_entries", ID: t.uuid.String()}
}

func (t TimeEntryID) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.uuid.String())
}

func (t *TimeEntryID) UnmarshalJSON(data []byte) error {
	return unmarshalJSONID(data, &t.uuid)
}

func (t TimeEntryID) MarshalCBOR() ([]byte, error) {
	return marshalCBORID("time_entries", t.uuid)
}

func (t *TimeEntryID) UnmarshalCBOR(data []byte) error {
	return unmarshalCBORID(data, "time_entries", &t.uuid)
}

func (t TimeEntryID) Value() (driver.Value, error) {
	if t.IsZero() {
		return nil, nil
	}
	return t.uuid.String(), nil
}

func (t *TimeEntryID) Scan(value any) error {
	return scanUUID(value, &t.uuid)
}

func (TimeEntryID) GormDataType() string { return "uuid" }

// NotificationID is a typed ID for notifications
type NotificationID struct {
	uuid uuid.UUID
}

func NewNotificationID() NotificationID {
	return NotificationID{uuid: uuid.New()}
}

func NewNotificationIDFromUUID(id uuid.UUID) NotificationID {
	return NotificationID{uuid: id}
}

func ParseNotificationID(s string) (NotificationID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return NotificationID{}, fmt.Errorf("invalid notification ID: %w", err)
	}
	return NotificationID{uuid: id}, nil
}

func (n NotificationID) UUID() uuid.UUID { return n.uuid }
func (n NotificationID) String() string  { return n.uuid.String() }
func (n NotificationID) IsZero() bool    { return n.uuid == uuid.Nil }

func (n NotificationID) RecordID() surrealdb_models.RecordID {
	return surrealdb_models.RecordID{Table: "notifications", ID: n.uuid.String()}
}

func (n NotificationID) MarshalJSON() ([]byte, error) {
	return json.Marshal(n.uuid.String())
}

func (n *NotificationID) UnmarshalJSON(data []byte) error {
	return unmarshalJSONID(data, &n.uuid)
}

func (n NotificationID) MarshalCBOR() ([]byte, error) {
	return marshalCBORID("notifications", n.uuid)
}

func (n *NotificationID) UnmarshalCBOR(data []byte) error {
	return unmarshalCBORID(data, "notifications", &n.uuid)
}

func (n NotificationID) Value() (driver.Value, error) {
	if n.IsZero() {
		return nil, nil
	}
	return n.uuid.String(), nil
}

func (n *NotificationID) Scan(value any) error {
	return scanUUID(value, &n.uuid)
}

func (NotificationID) GormDataType() string { return "uuid" }

// Shared marshaling helpers

func unmarshalJSONID(data []byte, target *uuid.UUID) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if s == "" {
		*target = uuid.Nil
		return nil
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return err
	}
	*target = id
	return nil
}

// marshalCBORID encodes a typed ID as a SurrealDB RecordID.
// SurrealDB uses CBOR tag 8 with [table, id] content for record references.
func marshalCBORID(table string, id uuid.UUID) ([]byte, error) {
	return cbor.Marshal(cbor.Tag{
		Number:  8,
		Content: []any{table, id.String()},
	})
}

func scanUUID(value any, target *uuid.UUID) error {
	if value == nil {
		*target = uuid.Nil
		return nil
	}

	switch v := value.(type) {
	case string:
		id, err := uuid.Parse(v)
		if err != nil {
			return err
		}
		*target = id
	case []byte:
		id, err := uuid.ParseBytes(v)
		if err != nil {
			return err
		}
		*target = id
	default:
		return fmt.Errorf("cannot scan type %T into UUID", value)
	}
	return nil
}

// unmarshalCBORID decodes a SurrealDB RecordID (CBOR tag 8) into a UUID,
// verifying the record belongs to the expected table.
func unmarshalCBORID(data []byte, expectedTable string, target *uuid.UUID) error {
	if len(data) == 0 {
		return fmt.Errorf("empty CBOR data")
	}

	// Major type 6 is a CBOR tag
	if data[0]>>5 != 6 {
		return fmt.Errorf("expected CBOR tag for RecordID, got major type %d", data[0]>>5)
	}

	var tag cbor.Tag
	if err := cbor.Unmarshal(data, &tag); err != nil {
		return fmt.Errorf("failed to unmarshal CBOR tag: %w", err)
	}

	if tag.Number != 8 {
		return fmt.Errorf("expected RecordID tag (8), got %d", tag.Number)
	}

	arr, ok := tag.Content.([]any)
	if !ok || len(arr) != 2 {
		return fmt.Errorf("invalid RecordID format: expected [table, id] array")
	}

	table, ok := arr[0].(string)
	if !ok {
		return fmt.Errorf("invalid RecordID format: table name must be string")
	}
	if table != expectedTable {
		return fmt.Errorf("expected table %s, got %s", expectedTable, table)
	}

	idStr, ok := arr[1].(string)
	if !ok {
		return fmt.Errorf("invalid RecordID format: ID must be string")
	}

	parsed, err := uuid.Parse(idStr)
	if err != nil {
		return fmt.Errorf("invalid UUID in RecordID: %w", err)
	}

	*target = parsed
	return nil
}
