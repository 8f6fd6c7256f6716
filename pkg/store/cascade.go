package store

import (
	"context"
	"errors"
	"fmt"

	"tasklane/pkg/models"
)

// CascadeDeleteWorkspace removes a workspace and everything it owns: every
// project with its requirement tree, tasks, sprints and time entries, then
// the workspace's members, roles, invitations, leave requests and
// notifications, and finally the workspace record itself.
//
// The sweep does not stop at the first failure. Every collection is
// attempted and the failures are joined into a single error, so a partial
// cascade reports exactly which deletions were left behind.
func CascadeDeleteWorkspace(ctx context.Context, s Store, id models.WorkspaceID) error {
	var errs []error

	projects, err := s.ListProjects(ctx, id)
	if err != nil {
		errs = append(errs, fmt.Errorf("list projects: %w", err))
	}
	for _, p := range projects {
		if err := cascadeDeleteProject(ctx, s, p.ID); err != nil {
			errs = append(errs, fmt.Errorf("project %s: %w", p.ID, err))
		}
	}

	members, err := s.ListMembers(ctx, id)
	if err != nil {
		errs = append(errs, fmt.Errorf("list members: %w", err))
	}
	for _, m := range members {
		if err := s.DeleteMember(ctx, m.ID); err != nil {
			errs = append(errs, fmt.Errorf("delete member %s: %w", m.ID, err))
		}
	}

	roles, err := s.ListRoles(ctx, id)
	if err != nil {
		errs = append(errs, fmt.Errorf("list roles: %w", err))
	}
	for _, r := range roles {
		if err := s.DeleteRole(ctx, r.ID); err != nil {
			errs = append(errs, fmt.Errorf("delete role %s: %w", r.ID, err))
		}
	}

	invitations, err := s.ListInvitations(ctx, id)
	if err != nil {
		errs = append(errs, fmt.Errorf("list invitations: %w", err))
	}
	for _, inv := range invitations {
		if err := s.DeleteInvitation(ctx, inv.ID); err != nil {
			errs = append(errs, fmt.Errorf("delete invitation %s: %w", inv.ID, err))
		}
	}

	leaves, err := s.ListLeaveRequests(ctx, id)
	if err != nil {
		errs = append(errs, fmt.Errorf("list leave requests: %w", err))
	}
	for _, lr := range leaves {
		if err := s.DeleteLeaveRequest(ctx, lr.ID); err != nil {
			errs = append(errs, fmt.Errorf("delete leave request %s: %w", lr.ID, err))
		}
	}

	notifications, err := s.ListNotificationsByWorkspace(ctx, id)
	if err != nil {
		errs = append(errs, fmt.Errorf("list notifications: %w", err))
	}
	for _, n := range notifications {
		if err := s.DeleteNotification(ctx, n.ID); err != nil {
			errs = append(errs, fmt.Errorf("delete notification %s: %w", n.ID, err))
		}
	}

	// The workspace record goes last so a failed cascade remains visible
	// and can be retried.
	if len(errs) == 0 {
		if err := s.DeleteWorkspace(ctx, id); err != nil {
			errs = append(errs, fmt.Errorf("delete workspace: %w", err))
		}
	} else {
		errs = append(errs, errors.New("workspace record kept due to earlier failures"))
	}

	return errors.Join(errs...)
}

// cascadeDeleteProject removes a project and its requirement tree, tasks,
// sprints and time entries. Same error policy as the workspace cascade.
func cascadeDeleteProject(ctx context.Context, s Store, id models.ProjectID) error {
	var errs []error

	tasks, err := s.ListTasks(ctx, id)
	if err != nil {
		errs = append(errs, fmt.Errorf("list tasks: %w", err))
	}
	for _, t := range tasks {
		entries, err := s.ListTimeEntriesByTask(ctx, t.ID)
		if err != nil {
			errs = append(errs, fmt.Errorf("list time entries for task %s: %w", t.ID, err))
		}
		for _, te := range entries {
			if err := s.DeleteTimeEntry(ctx, te.ID); err != nil {
				errs = append(errs, fmt.Errorf("delete time entry %s: %w", te.ID, err))
			}
		}
		if err := s.DeleteTask(ctx, t.ID); err != nil {
			errs = append(errs, fmt.Errorf("delete task %s: %w", t.ID, err))
		}
	}

	frs, err := s.ListFunctionalRequirements(ctx, id)
	if err != nil {
		errs = append(errs, fmt.Errorf("list functional requirements: %w", err))
	}
	for _, fr := range frs {
		if err := s.DeleteFunctionalRequirement(ctx, fr.ID); err != nil {
			errs = append(errs, fmt.Errorf("delete functional requirement %s: %w", fr.ID, err))
		}
	}

	epics, err := s.ListEpics(ctx, id)
	if err != nil {
		errs = append(errs, fmt.Errorf("list epics: %w", err))
	}
	for _, e := range epics {
		if err := s.DeleteEpic(ctx, e.ID); err != nil {
			errs = append(errs, fmt.Errorf("delete epic %s: %w", e.ID, err))
		}
	}

	crs, err := s.ListClientRequirements(ctx, id)
	if err != nil {
		errs = append(errs, fmt.Errorf("list client requirements: %w", err))
	}
	for _, cr := range crs {
		if err := s.DeleteClientRequirement(ctx, cr.ID); err != nil {
			errs = append(errs, fmt.Errorf("delete client requirement %s: %w", cr.ID, err))
		}
	}

	sprints, err := s.ListSprints(ctx, id)
	if err != nil {
		errs = append(errs, fmt.Errorf("list sprints: %w", err))
	}
	for _, sp := range sprints {
		if err := s.DeleteSprint(ctx, sp.ID); err != nil {
			errs = append(errs, fmt.Errorf("delete sprint %s: %w", sp.ID, err))
		}
	}

	if len(errs) == 0 {
		if err := s.DeleteProject(ctx, id); err != nil {
			errs = append(errs, fmt.Errorf("delete project: %w", err))
		}
	}

	return errors.Join(errs...)
}
