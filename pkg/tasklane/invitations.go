package tasklane

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/gorilla/mux"

	"tasklane/pkg/mail"
	"tasklane/pkg/models"
)

// invitationTTL is how long an invitation link stays valid.
const invitationTTL = 7 * 24 * time.Hour

// invitationClaims is the JWT payload embedded in invitation links. The
// token is both self-validating and looked up in the store, so a revoked
// invitation stays dead even while its signature is still good.
type invitationClaims struct {
	InvitationID string `json:"inv"`
	WorkspaceID  string `json:"ws"`
	Email        string `json:"email"`
	jwt.RegisteredClaims
}

func (a *App) signInvitationToken(inv *models.Invitation) (string, error) {
	claims := invitationClaims{
		InvitationID: inv.ID.String(),
		WorkspaceID:  inv.WorkspaceID.String(),
		Email:        inv.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(inv.ExpiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    "tasklane",
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(a.config.JWTSecret))
}

func (a *App) parseInvitationToken(tokenString string) (*invitationClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &invitationClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(a.config.JWTSecret), nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*invitationClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid invitation token")
	}
	return claims, nil
}

// SendInvitationRequest is the payload for POST /api/send-invitation.
type SendInvitationRequest struct {
	WorkspaceID models.WorkspaceID `json:"workspace_id"`
	Email       string             `json:"email"`
	RoleID      models.RoleID      `json:"role_id"`
}

func (a *App) handleSendInvitation(w http.ResponseWriter, r *http.Request) {
	var req SendInvitationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request payload")
		return
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Email == "" {
		respondError(w, http.StatusBadRequest, "email is required")
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
	role, err := a.store.GetRole(r.Context(), req.RoleID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if role == nil || role.WorkspaceID != ws.ID {
		respondError(w, http.StatusBadRequest, "role does not belong to this workspace")
		return
	}

	// Refuse to invite someone who already belongs to the workspace.
	if existing, err := a.store.GetUserByEmail(r.Context(), req.Email); err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	} else if existing != nil {
		member, err := a.store.GetMemberByUser(r.Context(), ws.ID, existing.ID)
		if err != nil {
			respondError(w, http.StatusInternalServerError, err.Error())
			return
		}
		if member != nil {
			respondError(w, http.StatusConflict, "user is already a member")
			return
		}
	}

	inviter := currentUser(r)
	inv := &models.Invitation{
		ID:          models.NewInvitationID(),
		WorkspaceID: ws.ID,
		Email:       req.Email,
		RoleID:      role.ID,
		Status:      models.InvitationStatusPending,
		InvitedBy:   inviter.ID,
		ExpiresAt:   time.Now().Add(invitationTTL),
	}
	token, err := a.signInvitationToken(inv)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to sign invitation")
		return
	}
	inv.Token = token

	if err := a.store.CreateInvitation(r.Context(), inv); err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	body, err := mail.RenderInvitation(mail.Invitation{
		WorkspaceName: ws.Name,
		InviterName:   inviter.Name,
		AcceptURL:     fmt.Sprintf("%s/invitations/accept?token=%s", strings.TrimRight(a.config.BaseURL, "/"), token),
		ExpiresInDays: int(invitationTTL.Hours() / 24),
	})
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if err := a.mailer.Send(r.Context(), inv.Email, "You have been invited to "+ws.Name, body); err != nil {
		// The invitation record exists and the link can be resent; report the
		// delivery failure without rolling back.
		a.log.Error().Err(err).Str("email", inv.Email).Msg("failed to send invitation email")
	}

	respondJSON(w, http.StatusCreated, inv)
}

// AcceptInvitationRequest is the payload for POST /api/invitations/accept.
// Name and password are only needed when the invitee has no account yet.
type AcceptInvitationRequest struct {
	Token    string `json:"token"`
	Name     string `json:"name,omitempty"`
	Password string `json:"password,omitempty"`
}

// handleAcceptInvitation is an open route. The JWT in the link proves the
// caller holds the invitation; no session is required.
func (a *App) handleAcceptInvitation(w http.ResponseWriter, r *http.Request) {
	var req AcceptInvitationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request payload")
		return
	}
	if req.Token == "" {
		respondError(w, http.StatusBadRequest, "token is required")
		return
	}

	if _, err := a.parseInvitationToken(req.Token); err != nil {
		respondError(w, http.StatusUnauthorized, "invalid or expired invitation")
		return
	}
	inv, err := a.store.GetInvitationByToken(r.Context(), req.Token)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if inv == nil {
		respondError(w, http.StatusNotFound, "invitation not found")
		return
	}
	if inv.Status != models.InvitationStatusPending {
		respondError(w, http.StatusConflict, "invitation is no longer pending")
		return
	}
	if time.Now().After(inv.ExpiresAt) {
		inv.Status = models.InvitationStatusExpired
		_ = a.store.UpdateInvitation(r.Context(), inv)
		respondError(w, http.StatusGone, "invitation has expired")
		return
	}

	user, err := a.store.GetUserByEmail(r.Context(), inv.Email)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if user == nil {
		if req.Name == "" || len(req.Password) < 8 {
			respondError(w, http.StatusBadRequest, "name and a password of at least 8 characters are required to create an account")
			return
		}
		hash, err := hashPassword(req.Password)
		if err != nil {
			respondError(w, http.StatusInternalServerError, "failed to hash password")
			return
		}
		user = &models.User{
			ID:           models.NewUserID(),
			Email:        inv.Email,
			Name:         req.Name,
			PasswordHash: hash,
		}
		if err := a.store.CreateUser(r.Context(), user); err != nil {
			respondError(w, http.StatusInternalServerError, err.Error())
			return
		}
	}

	member, err := a.store.GetMemberByUser(r.Context(), inv.WorkspaceID, user.ID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if member == nil {
		member = &models.WorkspaceMember{
			ID:          models.NewMemberID(),
			WorkspaceID: inv.WorkspaceID,
			UserID:      user.ID,
			RoleID:      inv.RoleID,
		}
		if err := a.store.CreateMember(r.Context(), member); err != nil {
			respondError(w, http.StatusInternalServerError, err.Error())
			return
		}
	}

	inv.Status = models.InvitationStatusAccepted
	if err := a.store.UpdateInvitation(r.Context(), inv); err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	a.notify(r.Context(), inv.WorkspaceID, inv.InvitedBy, models.NotificationInviteUpdated,
		"Invitation accepted",
		fmt.Sprintf("%s joined the workspace", user.Name),
		models.JSONMap{"invitation_id": inv.ID.String(), "user_id": user.ID.String()})

	token, err := a.openSession(user)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to create session")
		return
	}
	respondJSON(w, http.StatusOK, AuthResponse{Token: token, User: user})
}

func (a *App) handleListInvitations(w http.ResponseWriter, r *http.Request) {
	wsID, err := models.ParseWorkspaceID(mux.Vars(r)["id"])
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid workspace ID")
		return
	}
	invitations, err := a.store.ListInvitations(r.Context(), wsID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, invitations)
}

func (a *App) handleRevokeInvitation(w http.ResponseWriter, r *http.Request) {
	id, err := models.ParseInvitationID(mux.Vars(r)["id"])
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid invitation ID")
		return
	}
	inv, err := a.store.GetInvitation(r.Context(), id)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if inv == nil {
		respondError(w, http.StatusNotFound, "invitation not found")
		return
	}
	if inv.Status != models.InvitationStatusPending {
		respondError(w, http.StatusConflict, "only pending invitations can be revoked")
		return
	}

	inv.Status = models.InvitationStatusRevoked
	if err := a.store.UpdateInvitation(r.Context(), inv); err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, inv)
}
