package tasklane

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"tasklane/pkg/models"
)

// Member handlers

func (a *App) handleListMembers(w http.ResponseWriter, r *http.Request) {
	wsID, err := models.ParseWorkspaceID(mux.Vars(r)["id"])
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid workspace ID")
		return
	}
	members, err := a.store.ListMembers(r.Context(), wsID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, members)
}

func (a *App) handleAddMember(w http.ResponseWriter, r *http.Request) {
	wsID, err := models.ParseWorkspaceID(mux.Vars(r)["id"])
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid workspace ID")
		return
	}

	var req struct {
		UserID models.UserID `json:"user_id"`
		RoleID models.RoleID `json:"role_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	user, err := a.store.GetUser(r.Context(), req.UserID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if user == nil {
		respondError(w, http.StatusNotFound, "user not found")
		return
	}
	role, err := a.store.GetRole(r.Context(), req.RoleID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if role == nil || role.WorkspaceID != wsID {
		respondError(w, http.StatusBadRequest, "role does not belong to this workspace")
		return
	}

	existing, err := a.store.GetMemberByUser(r.Context(), wsID, req.UserID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if existing != nil {
		respondError(w, http.StatusConflict, "user is already a member")
		return
	}

	member := &models.WorkspaceMember{
		ID:          models.NewMemberID(),
		WorkspaceID: wsID,
		UserID:      req.UserID,
		RoleID:      req.RoleID,
	}
	if err := a.store.CreateMember(r.Context(), member); err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusCreated, member)
}

func (a *App) handleUpdateMember(w http.ResponseWriter, r *http.Request) {
	id, err := models.ParseMemberID(mux.Vars(r)["id"])
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid member ID")
		return
	}
	member, err := a.store.GetMember(r.Context(), id)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if member == nil {
		respondError(w, http.StatusNotFound, "member not found")
		return
	}

	var req struct {
		RoleID models.RoleID `json:"role_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request payload")
		return
	}
	role, err := a.store.GetRole(r.Context(), req.RoleID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if role == nil || role.WorkspaceID != member.WorkspaceID {
		respondError(w, http.StatusBadRequest, "role does not belong to this workspace")
		return
	}

	member.RoleID = req.RoleID
	if err := a.store.UpdateMember(r.Context(), member); err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, member)
}

// handleRemoveMember drops a membership. The workspace owner cannot be
// removed; ownership transfers are a workspace update, not a member delete.
func (a *App) handleRemoveMember(w http.ResponseWriter, r *http.Request) {
	id, err := models.ParseMemberID(mux.Vars(r)["id"])
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid member ID")
		return
	}
	member, err := a.store.GetMember(r.Context(), id)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if member == nil {
		respondError(w, http.StatusNotFound, "member not found")
		return
	}

	ws, err := a.store.GetWorkspace(r.Context(), member.WorkspaceID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if ws != nil && ws.OwnerID == member.UserID {
		respondError(w, http.StatusForbidden, "cannot remove the workspace owner")
		return
	}

	if err := a.store.DeleteMember(r.Context(), id); err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}

// Role handlers

func (a *App) handleListRoles(w http.ResponseWriter, r *http.Request) {
	wsID, err := models.ParseWorkspaceID(mux.Vars(r)["id"])
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid workspace ID")
		return
	}
	roles, err := a.store.ListRoles(r.Context(), wsID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, roles)
}

func (a *App) handleCreateRole(w http.ResponseWriter, r *http.Request) {
	wsID, err := models.ParseWorkspaceID(mux.Vars(r)["id"])
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid workspace ID")
		return
	}

	var role models.Role
	if err := json.NewDecoder(r.Body).Decode(&role); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request payload")
		return
	}
	if role.Name == "" {
		respondError(w, http.StatusBadRequest, "name is required")
		return
	}
	role.ID = models.NewRoleID()
	role.WorkspaceID = wsID

	if err := a.store.CreateRole(r.Context(), &role); err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusCreated, role)
}

func (a *App) handleUpdateRole(w http.ResponseWriter, r *http.Request) {
	id, err := models.ParseRoleID(mux.Vars(r)["id"])
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid role ID")
		return
	}
	role, err := a.store.GetRole(r.Context(), id)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if role == nil {
		respondError(w, http.StatusNotFound, "role not found")
		return
	}

	var update struct {
		Name        string         `json:"name"`
		Permissions models.JSONMap `json:"permissions"`
		IsDefault   *bool          `json:"is_default"`
	}
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request payload")
		return
	}
	if update.Name != "" {
		role.Name = update.Name
	}
	if update.Permissions != nil {
		role.Permissions = update.Permissions
	}
	if update.IsDefault != nil {
		role.IsDefault = *update.IsDefault
	}

	if err := a.store.UpdateRole(r.Context(), role); err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, role)
}

// handleDeleteRole refuses to delete a role that members still hold.
func (a *App) handleDeleteRole(w http.ResponseWriter, r *http.Request) {
	id, err := models.ParseRoleID(mux.Vars(r)["id"])
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid role ID")
		return
	}
	role, err := a.store.GetRole(r.Context(), id)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if role == nil {
		respondError(w, http.StatusNotFound, "role not found")
		return
	}

	members, err := a.store.ListMembers(r.Context(), role.WorkspaceID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	for _, m := range members {
		if m.RoleID == id {
			respondError(w, http.StatusConflict, "role is still assigned to members")
			return
		}
	}

	if err := a.store.DeleteRole(r.Context(), id); err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}
