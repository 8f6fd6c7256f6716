package tasklane

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"tasklane/pkg/models"
)

// maxDailyHours caps a single time entry. Multi-day work is logged as one
// entry per day.
const maxDailyHours = 24

func (a *App) handleCreateTimeEntry(w http.ResponseWriter, r *http.Request) {
	var req struct {
		TaskID models.TaskID `json:"task_id"`
		Date   time.Time     `json:"date"`
		Hours  float64       `json:"hours"`
		Note   string        `json:"note"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request payload")
		return
	}
	if req.Hours <= 0 || req.Hours > maxDailyHours {
		respondError(w, http.StatusBadRequest, "hours must be between 0 and 24")
		return
	}
	if req.Date.IsZero() {
		req.Date = time.Now()
	}

	task, err := a.store.GetTask(r.Context(), req.TaskID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if task == nil {
		respondError(w, http.StatusNotFound, "task not found")
		return
	}
	project, err := a.store.GetProject(r.Context(), task.ProjectID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if project == nil {
		respondError(w, http.StatusNotFound, "project not found")
		return
	}

	entry := &models.TimeEntry{
		ID:          models.NewTimeEntryID(),
		WorkspaceID: project.WorkspaceID,
		TaskID:      task.ID,
		UserID:      currentUser(r).ID,
		Date:        req.Date,
		Hours:       req.Hours,
		Note:        req.Note,
	}
	if err := a.store.CreateTimeEntry(r.Context(), entry); err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusCreated, entry)
}

func (a *App) handleUpdateTimeEntry(w http.ResponseWriter, r *http.Request) {
	id, err := models.ParseTimeEntryID(mux.Vars(r)["id"])
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid time entry ID")
		return
	}
	entry, err := a.store.GetTimeEntry(r.Context(), id)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if entry == nil {
		respondError(w, http.StatusNotFound, "time entry not found")
		return
	}
	if entry.UserID != currentUser(r).ID {
		respondError(w, http.StatusForbidden, "only the author can edit a time entry")
		return
	}

	var update struct {
		Date  *time.Time `json:"date"`
		Hours *float64   `json:"hours"`
		Note  *string    `json:"note"`
	}
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request payload")
		return
	}
	if update.Date != nil {
		entry.Date = *update.Date
	}
	if update.Hours != nil {
		if *update.Hours <= 0 || *update.Hours > maxDailyHours {
			respondError(w, http.StatusBadRequest, "hours must be between 0 and 24")
			return
		}
		entry.Hours = *update.Hours
	}
	if update.Note != nil {
		entry.Note = *update.Note
	}

	if err := a.store.UpdateTimeEntry(r.Context(), entry); err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, entry)
}

func (a *App) handleDeleteTimeEntry(w http.ResponseWriter, r *http.Request) {
	id, err := models.ParseTimeEntryID(mux.Vars(r)["id"])
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid time entry ID")
		return
	}
	entry, err := a.store.GetTimeEntry(r.Context(), id)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if entry == nil {
		respondError(w, http.StatusNotFound, "time entry not found")
		return
	}
	if entry.UserID != currentUser(r).ID {
		respondError(w, http.StatusForbidden, "only the author can delete a time entry")
		return
	}
	if err := a.store.DeleteTimeEntry(r.Context(), id); err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}

// handleListTimeEntries lists a task's time entries along with the summed
// hours, so clients can show actuals against the estimate.
func (a *App) handleListTimeEntries(w http.ResponseWriter, r *http.Request) {
	taskID, err := models.ParseTaskID(mux.Vars(r)["id"])
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid task ID")
		return
	}
	entries, err := a.store.ListTimeEntriesByTask(r.Context(), taskID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	var total float64
	for _, e := range entries {
		total += e.Hours
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"entries":     entries,
		"total_hours": total,
	})
}
