package tasklane

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"tasklane/pkg/hierarchy"
	"tasklane/pkg/models"
)

// Project handlers

func (a *App) handleCreateProject(w http.ResponseWriter, r *http.Request) {
	var req struct {
		WorkspaceID models.WorkspaceID `json:"workspace_id"`
		Name        string             `json:"name"`
		Description string             `json:"description"`
		Prefix      string             `json:"prefix"`
		StartDate   *time.Time         `json:"start_date"`
		EndDate     *time.Time         `json:"end_date"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request payload")
		return
	}
	if req.Name == "" {
		respondError(w, http.StatusBadRequest, "name is required")
		return
	}

	ws, err := a.store.GetWorkspace(r.Context(), req.WorkspaceID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if ws == nil {
		respondError(w, http.StatusNotFound, "workspace not found")
		return
	}

	prefix := req.Prefix
	if prefix == "" {
		prefix = hierarchy.ProjectPrefix(req.Name)
	}

	project := &models.Project{
		ID:          models.NewProjectID(),
		WorkspaceID: req.WorkspaceID,
		Name:        req.Name,
		Description: req.Description,
		Prefix:      prefix,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		CreatedBy:   currentUser(r).ID,
	}
	if err := a.store.CreateProject(r.Context(), project); err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusCreated, project)
}

func (a *App) handleGetProject(w http.ResponseWriter, r *http.Request) {
	id, err := models.ParseProjectID(mux.Vars(r)["id"])
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid project ID")
		return
	}

	project, err := a.store.GetProject(r.Context(), id)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if project == nil {
		respondError(w, http.StatusNotFound, "project not found")
		return
	}
	respondJSON(w, http.StatusOK, project)
}

func (a *App) handleUpdateProject(w http.ResponseWriter, r *http.Request) {
	id, err := models.ParseProjectID(mux.Vars(r)["id"])
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid project ID")
		return
	}

	existing, err := a.store.GetProject(r.Context(), id)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if existing == nil {
		respondError(w, http.StatusNotFound, "project not found")
		return
	}

	var update struct {
		Name        string     `json:"name"`
		Description *string    `json:"description"`
		StartDate   *time.Time `json:"start_date"`
		EndDate     *time.Time `json:"end_date"`
	}
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request payload")
		return
	}
	// The prefix is deliberately immutable. Hierarchy IDs already handed out
	// embed it, and renumbering the tree would break every external reference.
	if update.Name != "" {
		existing.Name = update.Name
	}
	if update.Description != nil {
		existing.Description = *update.Description
	}
	if update.StartDate != nil {
		existing.StartDate = update.StartDate
	}
	if update.EndDate != nil {
		existing.EndDate = update.EndDate
	}

	if err := a.store.UpdateProject(r.Context(), existing); err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, existing)
}

func (a *App) handleDeleteProject(w http.ResponseWriter, r *http.Request) {
	id, err := models.ParseProjectID(mux.Vars(r)["id"])
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid project ID")
		return
	}
	if err := a.store.DeleteProject(r.Context(), id); err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}

func (a *App) handleListProjects(w http.ResponseWriter, r *http.Request) {
	wsID, err := models.ParseWorkspaceID(mux.Vars(r)["id"])
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid workspace ID")
		return
	}
	projects, err := a.store.ListProjects(r.Context(), wsID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, projects)
}

// Sprint handlers

func (a *App) handleCreateSprint(w http.ResponseWriter, r *http.Request) {
	var sprint models.Sprint
	if err := json.NewDecoder(r.Body).Decode(&sprint); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request payload")
		return
	}
	if sprint.Name == "" {
		respondError(w, http.StatusBadRequest, "name is required")
		return
	}
	if !sprint.EndDate.After(sprint.StartDate) {
		respondError(w, http.StatusBadRequest, "end_date must be after start_date")
		return
	}

	project, err := a.store.GetProject(r.Context(), sprint.ProjectID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if project == nil {
		respondError(w, http.StatusNotFound, "project not found")
		return
	}

	sprint.ID = models.NewSprintID()
	if sprint.Status == "" {
		sprint.Status = models.SprintStatusPlanned
	}
	if err := a.store.CreateSprint(r.Context(), &sprint); err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusCreated, sprint)
}

func (a *App) handleGetSprint(w http.ResponseWriter, r *http.Request) {
	id, err := models.ParseSprintID(mux.Vars(r)["id"])
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid sprint ID")
		return
	}

	sprint, err := a.store.GetSprint(r.Context(), id)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if sprint == nil {
		respondError(w, http.StatusNotFound, "sprint not found")
		return
	}
	respondJSON(w, http.StatusOK, sprint)
}

func (a *App) handleUpdateSprint(w http.ResponseWriter, r *http.Request) {
	id, err := models.ParseSprintID(mux.Vars(r)["id"])
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid sprint ID")
		return
	}

	existing, err := a.store.GetSprint(r.Context(), id)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if existing == nil {
		respondError(w, http.StatusNotFound, "sprint not found")
		return
	}

	var update struct {
		Name      string              `json:"name"`
		Goal      *string             `json:"goal"`
		Status    models.SprintStatus `json:"status"`
		StartDate *time.Time          `json:"start_date"`
		EndDate   *time.Time          `json:"end_date"`
	}
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request payload")
		return
	}
	if update.Name != "" {
		existing.Name = update.Name
	}
	if update.Goal != nil {
		existing.Goal = *update.Goal
	}
	if update.Status != "" {
		existing.Status = update.Status
	}
	if update.StartDate != nil {
		existing.StartDate = *update.StartDate
	}
	if update.EndDate != nil {
		existing.EndDate = *update.EndDate
	}
	if !existing.EndDate.After(existing.StartDate) {
		respondError(w, http.StatusBadRequest, "end_date must be after start_date")
		return
	}

	if err := a.store.UpdateSprint(r.Context(), existing); err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, existing)
}

// handleDeleteSprint deletes a sprint after detaching any tasks still
// scheduled in it. The tasks go back to the backlog rather than disappearing
// with the sprint.
func (a *App) handleDeleteSprint(w http.ResponseWriter, r *http.Request) {
	id, err := models.ParseSprintID(mux.Vars(r)["id"])
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid sprint ID")
		return
	}

	tasks, err := a.store.ListTasksBySprint(r.Context(), id)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	for _, t := range tasks {
		t.SprintID = nil
		if err := a.store.UpdateTask(r.Context(), t); err != nil {
			respondError(w, http.StatusInternalServerError, err.Error())
			return
		}
	}

	if err := a.store.DeleteSprint(r.Context(), id); err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}

func (a *App) handleListSprints(w http.ResponseWriter, r *http.Request) {
	projectID, err := models.ParseProjectID(mux.Vars(r)["id"])
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid project ID")
		return
	}
	sprints, err := a.store.ListSprints(r.Context(), projectID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, sprints)
}
