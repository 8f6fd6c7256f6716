package tasklane

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"tasklane/pkg/models"
	"tasklane/pkg/workdays"
)

// CreateLeaveRequest is the payload for POST /api/leave-requests. Working
// days are computed server side; weekends inside the span do not count.
type CreateLeaveRequest struct {
	WorkspaceID models.WorkspaceID `json:"workspace_id"`
	Type        models.LeaveType   `json:"type"`
	StartDate   time.Time          `json:"start_date"`
	EndDate     time.Time          `json:"end_date"`
	Reason      string             `json:"reason"`
}

func (a *App) handleCreateLeaveRequest(w http.ResponseWriter, r *http.Request) {
	var req CreateLeaveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request payload")
		return
	}
	if req.Type == "" {
		respondError(w, http.StatusBadRequest, "type is required")
		return
	}
	if req.EndDate.Before(req.StartDate) {
		respondError(w, http.StatusBadRequest, "end_date must not be before start_date")
		return
	}

	user := currentUser(r)
	member, err := a.store.GetMemberByUser(r.Context(), req.WorkspaceID, user.ID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if member == nil {
		respondError(w, http.StatusForbidden, "not a member of this workspace")
		return
	}

	days := workdays.Count(req.StartDate, req.EndDate)
	if days == 0 {
		respondError(w, http.StatusBadRequest, "the requested span contains no working days")
		return
	}

	lr := &models.LeaveRequest{
		ID:          models.NewLeaveRequestID(),
		WorkspaceID: req.WorkspaceID,
		UserID:      user.ID,
		Type:        req.Type,
		Status:      models.LeaveStatusPending,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		WorkingDays: days,
		Reason:      req.Reason,
	}
	if err := a.store.CreateLeaveRequest(r.Context(), lr); err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusCreated, lr)
}

func (a *App) handleGetLeaveRequest(w http.ResponseWriter, r *http.Request) {
	id, err := models.ParseLeaveRequestID(mux.Vars(r)["id"])
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid leave request ID")
		return
	}
	lr, err := a.store.GetLeaveRequest(r.Context(), id)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if lr == nil {
		respondError(w, http.StatusNotFound, "leave request not found")
		return
	}
	respondJSON(w, http.StatusOK, lr)
}

// handleDeleteLeaveRequest lets the requester withdraw a pending request.
// Decided requests are part of the attendance record and stay.
func (a *App) handleDeleteLeaveRequest(w http.ResponseWriter, r *http.Request) {
	id, err := models.ParseLeaveRequestID(mux.Vars(r)["id"])
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid leave request ID")
		return
	}
	lr, err := a.store.GetLeaveRequest(r.Context(), id)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if lr == nil {
		respondError(w, http.StatusNotFound, "leave request not found")
		return
	}
	if lr.UserID != currentUser(r).ID {
		respondError(w, http.StatusForbidden, "only the requester can withdraw a leave request")
		return
	}
	if lr.Status != models.LeaveStatusPending {
		respondError(w, http.StatusConflict, "only pending leave requests can be withdrawn")
		return
	}
	if err := a.store.DeleteLeaveRequest(r.Context(), id); err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}

func (a *App) handleApproveLeaveRequest(w http.ResponseWriter, r *http.Request) {
	a.decideLeaveRequest(w, r, models.LeaveStatusApproved)
}

func (a *App) handleRejectLeaveRequest(w http.ResponseWriter, r *http.Request) {
	a.decideLeaveRequest(w, r, models.LeaveStatusRejected)
}

func (a *App) decideLeaveRequest(w http.ResponseWriter, r *http.Request, decision models.LeaveStatus) {
	id, err := models.ParseLeaveRequestID(mux.Vars(r)["id"])
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid leave request ID")
		return
	}
	lr, err := a.store.GetLeaveRequest(r.Context(), id)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if lr == nil {
		respondError(w, http.StatusNotFound, "leave request not found")
		return
	}
	if lr.Status != models.LeaveStatusPending {
		respondError(w, http.StatusConflict, "leave request has already been decided")
		return
	}

	decider := currentUser(r)
	if decider.ID == lr.UserID {
		respondError(w, http.StatusForbidden, "cannot decide your own leave request")
		return
	}
	if member, err := a.store.GetMemberByUser(r.Context(), lr.WorkspaceID, decider.ID); err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	} else if member == nil {
		respondError(w, http.StatusForbidden, "not a member of this workspace")
		return
	}

	now := time.Now()
	lr.Status = decision
	lr.DecidedBy = &decider.ID
	lr.DecidedAt = &now
	if err := a.store.UpdateLeaveRequest(r.Context(), lr); err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	a.notify(r.Context(), lr.WorkspaceID, lr.UserID, models.NotificationLeaveDecided,
		"Leave request "+string(decision),
		lr.StartDate.Format("2006-01-02")+" to "+lr.EndDate.Format("2006-01-02"),
		models.JSONMap{"leave_request_id": lr.ID.String(), "status": string(decision)})

	respondJSON(w, http.StatusOK, lr)
}

func (a *App) handleListLeaveRequests(w http.ResponseWriter, r *http.Request) {
	wsID, err := models.ParseWorkspaceID(mux.Vars(r)["id"])
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid workspace ID")
		return
	}
	requests, err := a.store.ListLeaveRequests(r.Context(), wsID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if status := r.URL.Query().Get("status"); status != "" {
		filtered := requests[:0]
		for _, lr := range requests {
			if lr.Status == models.LeaveStatus(status) {
				filtered = append(filtered, lr)
			}
		}
		requests = filtered
	}
	respondJSON(w, http.StatusOK, requests)
}

// LeaveSummaryEntry aggregates approved leave for one member.
type LeaveSummaryEntry struct {
	UserID    models.UserID            `json:"user_id"`
	ByType    map[models.LeaveType]int `json:"by_type"`
	TotalDays int                      `json:"total_days"`
}

// handleLeaveSummary reports approved working days taken per member, broken
// down by leave type. Pending and rejected requests are excluded.
func (a *App) handleLeaveSummary(w http.ResponseWriter, r *http.Request) {
	wsID, err := models.ParseWorkspaceID(mux.Vars(r)["id"])
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid workspace ID")
		return
	}
	requests, err := a.store.ListLeaveRequests(r.Context(), wsID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	byUser := make(map[models.UserID]*LeaveSummaryEntry)
	order := make([]models.UserID, 0)
	for _, lr := range requests {
		if lr.Status != models.LeaveStatusApproved {
			continue
		}
		entry, ok := byUser[lr.UserID]
		if !ok {
			entry = &LeaveSummaryEntry{
				UserID: lr.UserID,
				ByType: make(map[models.LeaveType]int),
			}
			byUser[lr.UserID] = entry
			order = append(order, lr.UserID)
		}
		entry.ByType[lr.Type] += lr.WorkingDays
		entry.TotalDays += lr.WorkingDays
	}

	summary := make([]*LeaveSummaryEntry, 0, len(order))
	for _, id := range order {
		summary = append(summary, byUser[id])
	}
	respondJSON(w, http.StatusOK, summary)
}

func (a *App) handleListMyLeaveRequests(w http.ResponseWriter, r *http.Request) {
	requests, err := a.store.ListLeaveRequestsByUser(r.Context(), currentUser(r).ID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, requests)
}
