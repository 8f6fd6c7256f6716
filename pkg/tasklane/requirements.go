package tasklane

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"tasklane/pkg/hierarchy"
	"tasklane/pkg/models"
)

func (a *App) idGenerator() *hierarchy.Generator {
	return hierarchy.NewGenerator(a.store.HierarchyIDExists)
}

// Client requirement handlers

func (a *App) handleCreateClientRequirement(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ProjectID   models.ProjectID `json:"project_id"`
		Title       string           `json:"title"`
		Description string           `json:"description"`
		Priority    models.Priority  `json:"priority"`
	}
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

	siblings, err := a.store.ListClientRequirements(r.Context(), project.ID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	hid, err := a.idGenerator().Next(r.Context(), project.Prefix, req.Title, len(siblings)+1)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	cr := &models.ClientRequirement{
		ID:          models.NewClientRequirementID(),
		ProjectID:   project.ID,
		HierarchyID: hid,
		Title:       req.Title,
		Description: req.Description,
		Priority:    req.Priority,
		CreatedBy:   currentUser(r).ID,
	}
	if cr.Priority == "" {
		cr.Priority = models.PriorityMedium
	}
	if err := a.store.CreateClientRequirement(r.Context(), cr); err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusCreated, cr)
}

func (a *App) handleGetClientRequirement(w http.ResponseWriter, r *http.Request) {
	id, err := models.ParseClientRequirementID(mux.Vars(r)["id"])
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid client requirement ID")
		return
	}
	cr, err := a.store.GetClientRequirement(r.Context(), id)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if cr == nil {
		respondError(w, http.StatusNotFound, "client requirement not found")
		return
	}
	respondJSON(w, http.StatusOK, cr)
}

func (a *App) handleUpdateClientRequirement(w http.ResponseWriter, r *http.Request) {
	id, err := models.ParseClientRequirementID(mux.Vars(r)["id"])
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid client requirement ID")
		return
	}
	existing, err := a.store.GetClientRequirement(r.Context(), id)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if existing == nil {
		respondError(w, http.StatusNotFound, "client requirement not found")
		return
	}

	var update struct {
		Title       string          `json:"title"`
		Description *string         `json:"description"`
		Priority    models.Priority `json:"priority"`
	}
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request payload")
		return
	}
	// Hierarchy IDs are assigned once. A title change does not renumber the
	// artifact or its descendants.
	if update.Title != "" {
		existing.Title = update.Title
	}
	if update.Description != nil {
		existing.Description = *update.Description
	}
	if update.Priority != "" {
		existing.Priority = update.Priority
	}

	if err := a.store.UpdateClientRequirement(r.Context(), existing); err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, existing)
}

// handleDeleteClientRequirement refuses to orphan epics; the client dissolves
// or reassigns children first.
func (a *App) handleDeleteClientRequirement(w http.ResponseWriter, r *http.Request) {
	id, err := models.ParseClientRequirementID(mux.Vars(r)["id"])
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid client requirement ID")
		return
	}
	children, err := a.store.ListEpicsByRequirement(r.Context(), id)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if len(children) > 0 {
		respondError(w, http.StatusConflict, "client requirement still has epics")
		return
	}
	if err := a.store.DeleteClientRequirement(r.Context(), id); err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}

func (a *App) handleListClientRequirements(w http.ResponseWriter, r *http.Request) {
	projectID, err := models.ParseProjectID(mux.Vars(r)["id"])
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid project ID")
		return
	}
	crs, err := a.store.ListClientRequirements(r.Context(), projectID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, crs)
}

// Epic handlers

func (a *App) handleCreateEpic(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ClientRequirementID models.ClientRequirementID `json:"client_requirement_id"`
		Title               string                     `json:"title"`
		Description         string                     `json:"description"`
		Priority            models.Priority            `json:"priority"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request payload")
		return
	}
	if req.Title == "" {
		respondError(w, http.StatusBadRequest, "title is required")
		return
	}

	parent, err := a.store.GetClientRequirement(r.Context(), req.ClientRequirementID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if parent == nil {
		respondError(w, http.StatusNotFound, "client requirement not found")
		return
	}

	siblings, err := a.store.ListEpicsByRequirement(r.Context(), parent.ID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	hid, err := a.idGenerator().Next(r.Context(), hierarchy.LetterPath(parent.HierarchyID), req.Title, len(siblings)+1)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	epic := &models.Epic{
		ID:                  models.NewEpicID(),
		ProjectID:           parent.ProjectID,
		ClientRequirementID: parent.ID,
		HierarchyID:         hid,
		Title:               req.Title,
		Description:         req.Description,
		Priority:            req.Priority,
		CreatedBy:           currentUser(r).ID,
	}
	if epic.Priority == "" {
		epic.Priority = models.PriorityMedium
	}
	if err := a.store.CreateEpic(r.Context(), epic); err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusCreated, epic)
}

func (a *App) handleGetEpic(w http.ResponseWriter, r *http.Request) {
	id, err := models.ParseEpicID(mux.Vars(r)["id"])
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid epic ID")
		return
	}
	epic, err := a.store.GetEpic(r.Context(), id)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if epic == nil {
		respondError(w, http.StatusNotFound, "epic not found")
		return
	}
	respondJSON(w, http.StatusOK, epic)
}

func (a *App) handleUpdateEpic(w http.ResponseWriter, r *http.Request) {
	id, err := models.ParseEpicID(mux.Vars(r)["id"])
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid epic ID")
		return
	}
	existing, err := a.store.GetEpic(r.Context(), id)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if existing == nil {
		respondError(w, http.StatusNotFound, "epic not found")
		return
	}

	var update struct {
		Title       string          `json:"title"`
		Description *string         `json:"description"`
		Priority    models.Priority `json:"priority"`
	}
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request payload")
		return
	}
	if update.Title != "" {
		existing.Title = update.Title
	}
	if update.Description != nil {
		existing.Description = *update.Description
	}
	if update.Priority != "" {
		existing.Priority = update.Priority
	}

	if err := a.store.UpdateEpic(r.Context(), existing); err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, existing)
}

func (a *App) handleDeleteEpic(w http.ResponseWriter, r *http.Request) {
	id, err := models.ParseEpicID(mux.Vars(r)["id"])
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid epic ID")
		return
	}
	children, err := a.store.ListFunctionalRequirementsByEpic(r.Context(), id)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if len(children) > 0 {
		respondError(w, http.StatusConflict, "epic still has functional requirements")
		return
	}
	if err := a.store.DeleteEpic(r.Context(), id); err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}

func (a *App) handleListEpics(w http.ResponseWriter, r *http.Request) {
	projectID, err := models.ParseProjectID(mux.Vars(r)["id"])
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid project ID")
		return
	}
	epics, err := a.store.ListEpics(r.Context(), projectID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, epics)
}

// Functional requirement handlers

func (a *App) handleCreateFunctionalRequirement(w http.ResponseWriter, r *http.Request) {
	var req struct {
		EpicID      models.EpicID   `json:"epic_id"`
		Title       string          `json:"title"`
		Description string          `json:"description"`
		Priority    models.Priority `json:"priority"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request payload")
		return
	}
	if req.Title == "" {
		respondError(w, http.StatusBadRequest, "title is required")
		return
	}

	parent, err := a.store.GetEpic(r.Context(), req.EpicID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if parent == nil {
		respondError(w, http.StatusNotFound, "epic not found")
		return
	}

	siblings, err := a.store.ListFunctionalRequirementsByEpic(r.Context(), parent.ID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	hid, err := a.idGenerator().Next(r.Context(), hierarchy.LetterPath(parent.HierarchyID), req.Title, len(siblings)+1)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	fr := &models.FunctionalRequirement{
		ID:          models.NewFunctionalRequirementID(),
		ProjectID:   parent.ProjectID,
		EpicID:      parent.ID,
		HierarchyID: hid,
		Title:       req.Title,
		Description: req.Description,
		Priority:    req.Priority,
		CreatedBy:   currentUser(r).ID,
	}
	if fr.Priority == "" {
		fr.Priority = models.PriorityMedium
	}
	if err := a.store.CreateFunctionalRequirement(r.Context(), fr); err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusCreated, fr)
}

func (a *App) handleGetFunctionalRequirement(w http.ResponseWriter, r *http.Request) {
	id, err := models.ParseFunctionalRequirementID(mux.Vars(r)["id"])
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid functional requirement ID")
		return
	}
	fr, err := a.store.GetFunctionalRequirement(r.Context(), id)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if fr == nil {
		respondError(w, http.StatusNotFound, "functional requirement not found")
		return
	}
	respondJSON(w, http.StatusOK, fr)
}

func (a *App) handleUpdateFunctionalRequirement(w http.ResponseWriter, r *http.Request) {
	id, err := models.ParseFunctionalRequirementID(mux.Vars(r)["id"])
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid functional requirement ID")
		return
	}
	existing, err := a.store.GetFunctionalRequirement(r.Context(), id)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if existing == nil {
		respondError(w, http.StatusNotFound, "functional requirement not found")
		return
	}

	var update struct {
		Title       string          `json:"title"`
		Description *string         `json:"description"`
		Priority    models.Priority `json:"priority"`
	}
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request payload")
		return
	}
	if update.Title != "" {
		existing.Title = update.Title
	}
	if update.Description != nil {
		existing.Description = *update.Description
	}
	if update.Priority != "" {
		existing.Priority = update.Priority
	}

	if err := a.store.UpdateFunctionalRequirement(r.Context(), existing); err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, existing)
}

func (a *App) handleDeleteFunctionalRequirement(w http.ResponseWriter, r *http.Request) {
	id, err := models.ParseFunctionalRequirementID(mux.Vars(r)["id"])
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid functional requirement ID")
		return
	}
	if err := a.store.DeleteFunctionalRequirement(r.Context(), id); err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}

func (a *App) handleListFunctionalRequirements(w http.ResponseWriter, r *http.Request) {
	projectID, err := models.ParseProjectID(mux.Vars(r)["id"])
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid project ID")
		return
	}
	frs, err := a.store.ListFunctionalRequirements(r.Context(), projectID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, frs)
}
