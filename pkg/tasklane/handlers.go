package tasklane

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"tasklane/pkg/models"
	"tasklane/pkg/store"
)

func respondJSON(w http.ResponseWriter, status int, payload any) {
	response, _ := json.Marshal(payload)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		_, _ = w.Write(response)
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

func (a *App) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]any{
		"status":  "healthy",
		"backend": a.config.Backend,
		"time":    time.Now().Unix(),
	})
}

// User handlers

// handleCreateUser registers a user on behalf of someone else, typically an
// admin onboarding a teammate. A temporary password hash must be supplied by
// the caller through the regular signup flow; this endpoint stores the user
// record only.
func (a *App) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	var req SignUpRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request payload")
		return
	}
	if req.Email == "" || req.Name == "" {
		respondError(w, http.StatusBadRequest, "email and name are required")
		return
	}

	existing, err := a.store.GetUserByEmail(r.Context(), req.Email)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if existing != nil {
		respondError(w, http.StatusConflict, "email already registered")
		return
	}

	user := &models.User{
		ID:    models.NewUserID(),
		Email: req.Email,
		Name:  req.Name,
	}
	if req.Password != "" {
		hash, err := hashPassword(req.Password)
		if err != nil {
			respondError(w, http.StatusInternalServerError, "failed to hash password")
			return
		}
		user.PasswordHash = hash
	}

	if err := a.store.CreateUser(r.Context(), user); err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusCreated, user)
}

func (a *App) handleGetUser(w http.ResponseWriter, r *http.Request) {
	id, err := models.ParseUserID(mux.Vars(r)["id"])
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid user ID")
		return
	}

	user, err := a.store.GetUser(r.Context(), id)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if user == nil {
		respondError(w, http.StatusNotFound, "user not found")
		return
	}
	respondJSON(w, http.StatusOK, user)
}

func (a *App) handleUpdateUser(w http.ResponseWriter, r *http.Request) {
	id, err := models.ParseUserID(mux.Vars(r)["id"])
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid user ID")
		return
	}

	existing, err := a.store.GetUser(r.Context(), id)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if existing == nil {
		respondError(w, http.StatusNotFound, "user not found")
		return
	}

	var update struct {
		Name      string `json:"name"`
		AvatarURL string `json:"avatar_url"`
	}
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request payload")
		return
	}
	if update.Name != "" {
		existing.Name = update.Name
	}
	if update.AvatarURL != "" {
		existing.AvatarURL = update.AvatarURL
	}

	if err := a.store.UpdateUser(r.Context(), existing); err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, existing)
}

func (a *App) handleDeleteUser(w http.ResponseWriter, r *http.Request) {
	id, err := models.ParseUserID(mux.Vars(r)["id"])
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid user ID")
		return
	}
	if err := a.store.DeleteUser(r.Context(), id); err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}

func (a *App) handleListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := a.store.ListUsers(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, users)
}

// Workspace handlers

func (a *App) handleCreateWorkspace(w http.ResponseWriter, r *http.Request) {
	var ws models.Workspace
	if err := json.NewDecoder(r.Body).Decode(&ws); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request payload")
		return
	}
	if ws.Name == "" || ws.Slug == "" {
		respondError(w, http.StatusBadRequest, "name and slug are required")
		return
	}
	ws.ID = models.NewWorkspaceID()
	ws.OwnerID = currentUser(r).ID

	if err := a.store.CreateWorkspace(r.Context(), &ws); err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	// The creator gets an admin role and a membership so the workspace is
	// usable immediately.
	role := &models.Role{
		ID:          models.NewRoleID(),
		WorkspaceID: ws.ID,
		Name:        "admin",
		Permissions: models.JSONMap{"admin": true},
		IsDefault:   false,
	}
	if err := a.store.CreateRole(r.Context(), role); err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	member := &models.WorkspaceMember{
		ID:          models.NewMemberID(),
		WorkspaceID: ws.ID,
		UserID:      ws.OwnerID,
		RoleID:      role.ID,
	}
	if err := a.store.CreateMember(r.Context(), member); err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	respondJSON(w, http.StatusCreated, ws)
}

func (a *App) handleGetWorkspace(w http.ResponseWriter, r *http.Request) {
	id, err := models.ParseWorkspaceID(mux.Vars(r)["id"])
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid workspace ID")
		return
	}

	ws, err := a.store.GetWorkspace(r.Context(), id)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if ws == nil {
		respondError(w, http.StatusNotFound, "workspace not found")
		return
	}
	respondJSON(w, http.StatusOK, ws)
}

func (a *App) handleUpdateWorkspace(w http.ResponseWriter, r *http.Request) {
	id, err := models.ParseWorkspaceID(mux.Vars(r)["id"])
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid workspace ID")
		return
	}

	existing, err := a.store.GetWorkspace(r.Context(), id)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if existing == nil {
		respondError(w, http.StatusNotFound, "workspace not found")
		return
	}

	var update struct {
		Name     string         `json:"name"`
		Settings models.JSONMap `json:"settings"`
	}
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request payload")
		return
	}
	if update.Name != "" {
		existing.Name = update.Name
	}
	if update.Settings != nil {
		existing.Settings = update.Settings
	}

	if err := a.store.UpdateWorkspace(r.Context(), existing); err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, existing)
}

// handleDeleteWorkspace removes the workspace and everything under it. Only
// the owner may delete a workspace. Failures in the sweep are reported, not
// swallowed; the workspace record survives a partial cascade so the delete
// can be retried.
func (a *App) handleDeleteWorkspace(w http.ResponseWriter, r *http.Request) {
	id, err := models.ParseWorkspaceID(mux.Vars(r)["id"])
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid workspace ID")
		return
	}

	ws, err := a.store.GetWorkspace(r.Context(), id)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if ws == nil {
		respondError(w, http.StatusNotFound, "workspace not found")
		return
	}
	if ws.OwnerID != currentUser(r).ID {
		respondError(w, http.StatusForbidden, "only the workspace owner can delete it")
		return
	}

	if err := store.CascadeDeleteWorkspace(r.Context(), a.store, id); err != nil {
		a.log.Error().Err(err).Str("workspace", id.String()).Msg("cascade delete incomplete")
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}

func (a *App) handleListWorkspaces(w http.ResponseWriter, r *http.Request) {
	workspaces, err := a.store.ListWorkspacesByUser(r.Context(), currentUser(r).ID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, workspaces)
}
