package tasklane

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"tasklane/pkg/hierarchy"
	"tasklane/pkg/models"
	"tasklane/pkg/tasksort"
)

// CreateTaskRequest is the payload for POST /api/tasks.
type CreateTaskRequest struct {
	ProjectID               models.ProjectID                `json:"project_id"`
	FunctionalRequirementID *models.FunctionalRequirementID `json:"functional_requirement_id,omitempty"`
	SprintID                *models.SprintID                `json:"sprint_id,omitempty"`
	ParentTaskID            *models.TaskID                  `json:"parent_task_id,omitempty"`
	AssigneeID              *models.UserID                  `json:"assignee_id,omitempty"`
	Title                   string                          `json:"title"`
	Description             string                          `json:"description"`
	Priority                models.Priority                 `json:"priority"`
	Urgency                 models.Urgency                  `json:"urgency"`
	EstimateHours           float64                         `json:"estimate_hours"`
	DueDate                 *time.Time                      `json:"due_date,omitempty"`
}

// taskParentPath resolves the letter path a new task's identifier extends:
// the parent task's full identifier for subtasks, the functional
// requirement's letter path when attached to one, and the bare project
// prefix for standalone tasks.
func (a *App) taskParentPath(r *http.Request, req *CreateTaskRequest, project *models.Project) (string, error) {
	if req.ParentTaskID != nil {
		parent, err := a.store.GetTask(r.Context(), *req.ParentTaskID)
		if err != nil {
			return "", err
		}
		if parent == nil {
			return "", fmt.Errorf("parent task not found")
		}
		return parent.HierarchyID, nil
	}
	if req.FunctionalRequirementID != nil {
		fr, err := a.store.GetFunctionalRequirement(r.Context(), *req.FunctionalRequirementID)
		if err != nil {
			return "", err
		}
		if fr == nil {
			return "", fmt.Errorf("functional requirement not found")
		}
		return hierarchy.LetterPath(fr.HierarchyID), nil
	}
	return project.Prefix, nil
}

func (a *App) handleCreateTask(w http.ResponseWriter, r *http.Request) {
	var req CreateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request payload")
		return
	}
	if req.Title == "" {
		respondError(w, http.StatusBadRequest, "title is required")
		return
	}

	project, err := a.store.GetProject(r.Context(), req.ProjectID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if project == nil {
		respondError(w, http.StatusNotFound, "project not found")
		return
	}
	if req.SprintID != nil {
		sprint, err := a.store.GetSprint(r.Context(), *req.SprintID)
		if err != nil {
			respondError(w, http.StatusInternalServerError, err.Error())
			return
		}
		if sprint == nil {
			respondError(w, http.StatusNotFound, "sprint not found")
			return
		}
	}

	parentPath, err := a.taskParentPath(r, &req, project)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	hid, err := a.idGenerator().NextTask(r.Context(), parentPath, 1)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	task := &models.Task{
		ID:                      models.NewTaskID(),
		ProjectID:               project.ID,
		FunctionalRequirementID: req.FunctionalRequirementID,
		SprintID:                req.SprintID,
		ParentTaskID:            req.ParentTaskID,
		AssigneeID:              req.AssigneeID,
		HierarchyID:             hid,
		Title:                   req.Title,
		Description:             req.Description,
		Status:                  models.TaskStatusTodo,
		Priority:                req.Priority,
		Urgency:                 req.Urgency,
		EstimateHours:           req.EstimateHours,
		DueDate:                 req.DueDate,
		CreatedBy:               currentUser(r).ID,
	}
	if task.Priority == "" {
		task.Priority = models.PriorityMedium
	}
	if task.Urgency == "" {
		task.Urgency = models.UrgencyNormal
	}

	if err := a.store.CreateTask(r.Context(), task); err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	if task.AssigneeID != nil && *task.AssigneeID != currentUser(r).ID {
		a.notify(r.Context(), project.WorkspaceID, *task.AssigneeID, models.NotificationTaskAssigned,
			"Task assigned: "+task.HierarchyID,
			task.Title,
			models.JSONMap{"task_id": task.ID.String(), "hierarchy_id": task.HierarchyID})
	}

	respondJSON(w, http.StatusCreated, task)
}

func (a *App) handleGetTask(w http.ResponseWriter, r *http.Request) {
	id, err := models.ParseTaskID(mux.Vars(r)["id"])
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid task ID")
		return
	}
	task, err := a.store.GetTask(r.Context(), id)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if task == nil {
		respondError(w, http.StatusNotFound, "task not found")
		return
	}
	respondJSON(w, http.StatusOK, task)
}

// UpdateTaskRequest carries the mutable task fields. Pointer fields
// distinguish "leave alone" from "clear".
type UpdateTaskRequest struct {
	Title         string           `json:"title"`
	Description   *string          `json:"description"`
	Status        models.TaskStatus `json:"status"`
	Priority      models.Priority  `json:"priority"`
	Urgency       models.Urgency   `json:"urgency"`
	AssigneeID    *models.UserID   `json:"assignee_id"`
	SprintID      *models.SprintID `json:"sprint_id"`
	EstimateHours *float64         `json:"estimate_hours"`
	DueDate       *time.Time       `json:"due_date"`
	ClearAssignee bool             `json:"clear_assignee,omitempty"`
	ClearSprint   bool             `json:"clear_sprint,omitempty"`
	ClearDueDate  bool             `json:"clear_due_date,omitempty"`
}

func (a *App) handleUpdateTask(w http.ResponseWriter, r *http.Request) {
	id, err := models.ParseTaskID(mux.Vars(r)["id"])
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid task ID")
		return
	}
	existing, err := a.store.GetTask(r.Context(), id)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if existing == nil {
		respondError(w, http.StatusNotFound, "task not found")
		return
	}

	var update UpdateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	prevAssignee := existing.AssigneeID
	prevStatus := existing.Status

	if update.Title != "" {
		existing.Title = update.Title
	}
	if update.Description != nil {
		existing.Description = *update.Description
	}
	if update.Status != "" {
		existing.Status = update.Status
	}
	if update.Priority != "" {
		existing.Priority = update.Priority
	}
	if update.Urgency != "" {
		existing.Urgency = update.Urgency
	}
	if update.AssigneeID != nil {
		existing.AssigneeID = update.AssigneeID
	}
	if update.ClearAssignee {
		existing.AssigneeID = nil
	}
	if update.SprintID != nil {
		sprint, err := a.store.GetSprint(r.Context(), *update.SprintID)
		if err != nil {
			respondError(w, http.StatusInternalServerError, err.Error())
			return
		}
		if sprint == nil {
			respondError(w, http.StatusNotFound, "sprint not found")
			return
		}
		existing.SprintID = update.SprintID
	}
	if update.ClearSprint {
		existing.SprintID = nil
	}
	if update.EstimateHours != nil {
		existing.EstimateHours = *update.EstimateHours
	}
	if update.DueDate != nil {
		existing.DueDate = update.DueDate
	}
	if update.ClearDueDate {
		existing.DueDate = nil
	}

	if err := a.store.UpdateTask(r.Context(), existing); err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	project, err := a.store.GetProject(r.Context(), existing.ProjectID)
	if err == nil && project != nil && existing.AssigneeID != nil {
		assigneeChanged := prevAssignee == nil || *prevAssignee != *existing.AssigneeID
		if assigneeChanged && *existing.AssigneeID != currentUser(r).ID {
			a.notify(r.Context(), project.WorkspaceID, *existing.AssigneeID, models.NotificationTaskAssigned,
				"Task assigned: "+existing.HierarchyID,
				existing.Title,
				models.JSONMap{"task_id": existing.ID.String(), "hierarchy_id": existing.HierarchyID})
		} else if !assigneeChanged && prevStatus != existing.Status && *existing.AssigneeID != currentUser(r).ID {
			a.notify(r.Context(), project.WorkspaceID, *existing.AssigneeID, models.NotificationTaskUpdated,
				"Task updated: "+existing.HierarchyID,
				fmt.Sprintf("status changed from %s to %s", prevStatus, existing.Status),
				models.JSONMap{"task_id": existing.ID.String(), "hierarchy_id": existing.HierarchyID})
		}
	}

	respondJSON(w, http.StatusOK, existing)
}

func (a *App) handleDeleteTask(w http.ResponseWriter, r *http.Request) {
	id, err := models.ParseTaskID(mux.Vars(r)["id"])
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid task ID")
		return
	}

	entries, err := a.store.ListTimeEntriesByTask(r.Context(), id)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	for _, e := range entries {
		if err := a.store.DeleteTimeEntry(r.Context(), e.ID); err != nil {
			respondError(w, http.StatusInternalServerError, err.Error())
			return
		}
	}

	if err := a.store.DeleteTask(r.Context(), id); err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}

// handleListTasks lists a project's tasks. Supports ?status=, ?assignee=,
// ?priority= and ?sprint= filters and a ?sort= expression of up to three
// comma-separated criteria such as "priority:desc,due_date".
func (a *App) handleListTasks(w http.ResponseWriter, r *http.Request) {
	projectID, err := models.ParseProjectID(mux.Vars(r)["id"])
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid project ID")
		return
	}
	tasks, err := a.store.ListTasks(r.Context(), projectID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	q := r.URL.Query()
	if status := q.Get("status"); status != "" {
		tasks = filterTasks(tasks, func(t *models.Task) bool { return t.Status == models.TaskStatus(status) })
	}
	if assignee := q.Get("assignee"); assignee != "" {
		uid, err := models.ParseUserID(assignee)
		if err != nil {
			respondError(w, http.StatusBadRequest, "invalid assignee ID")
			return
		}
		tasks = filterTasks(tasks, func(t *models.Task) bool { return t.AssigneeID != nil && *t.AssigneeID == uid })
	}
	if priority := q.Get("priority"); priority != "" {
		tasks = filterTasks(tasks, func(t *models.Task) bool { return t.Priority == models.Priority(priority) })
	}
	if sprint := q.Get("sprint"); sprint != "" {
		sid, err := models.ParseSprintID(sprint)
		if err != nil {
			respondError(w, http.StatusBadRequest, "invalid sprint ID")
			return
		}
		tasks = filterTasks(tasks, func(t *models.Task) bool { return t.SprintID != nil && *t.SprintID == sid })
	}

	if sortExpr := q.Get("sort"); sortExpr != "" {
		criteria, err := tasksort.Parse(sortExpr)
		if err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		tasksort.Sort(tasks, criteria)
	}

	respondJSON(w, http.StatusOK, tasks)
}

func (a *App) handleListSprintTasks(w http.ResponseWriter, r *http.Request) {
	sprintID, err := models.ParseSprintID(mux.Vars(r)["id"])
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid sprint ID")
		return
	}
	tasks, err := a.store.ListTasksBySprint(r.Context(), sprintID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if sortExpr := r.URL.Query().Get("sort"); sortExpr != "" {
		criteria, err := tasksort.Parse(sortExpr)
		if err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		tasksort.Sort(tasks, criteria)
	}
	respondJSON(w, http.StatusOK, tasks)
}

func filterTasks(tasks []*models.Task, keep func(*models.Task) bool) []*models.Task {
	out := tasks[:0]
	for _, t := range tasks {
		if keep(t) {
			out = append(out, t)
		}
	}
	return out
}
