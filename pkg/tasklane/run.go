package tasklane

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"
)

// Router assembles the full API surface. Split out of Run so tests can mount
// the handlers on httptest servers.
func (a *App) Router() *mux.Router {
	router := mux.NewRouter()
	router.Use(a.logRequests)

	router.HandleFunc("/health", a.handleHealth).Methods("GET")

	api := router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/health", a.handleHealth).Methods("GET")

	// Auth routes are open; everything else requires a bearer token.
	api.HandleFunc("/auth/signup", a.handleSignUp).Methods("POST")
	api.HandleFunc("/auth/signin", a.handleSignIn).Methods("POST")
	api.HandleFunc("/invitations/accept", a.handleAcceptInvitation).Methods("POST")

	authed := api.NewRoute().Subrouter()
	authed.Use(a.requireAuth)

	authed.HandleFunc("/auth/signout", a.handleSignOut).Methods("POST")
	authed.HandleFunc("/auth/me", a.handleGetCurrentUser).Methods("GET")
	authed.HandleFunc("/auth/refresh", a.handleRefreshToken).Methods("POST")

	// Users
	authed.HandleFunc("/users/create", a.handleCreateUser).Methods("POST")
	authed.HandleFunc("/users", a.handleListUsers).Methods("GET")
	authed.HandleFunc("/users/{id}", a.handleGetUser).Methods("GET")
	authed.HandleFunc("/users/{id}", a.handleUpdateUser).Methods("PUT")
	authed.HandleFunc("/users/{id}", a.handleDeleteUser).Methods("DELETE")

	// Workspaces
	authed.HandleFunc("/workspaces", a.handleCreateWorkspace).Methods("POST")
	authed.HandleFunc("/workspaces", a.handleListWorkspaces).Methods("GET")
	authed.HandleFunc("/workspaces/{id}", a.handleGetWorkspace).Methods("GET")
	authed.HandleFunc("/workspaces/{id}", a.handleUpdateWorkspace).Methods("PUT")
	authed.HandleFunc("/workspaces/{id}", a.handleDeleteWorkspace).Methods("DELETE")

	// Membership and roles
	authed.HandleFunc("/workspaces/{id}/members", a.handleListMembers).Methods("GET")
	authed.HandleFunc("/workspaces/{id}/members", a.handleAddMember).Methods("POST")
	authed.HandleFunc("/members/{id}", a.handleUpdateMember).Methods("PUT")
	authed.HandleFunc("/members/{id}", a.handleRemoveMember).Methods("DELETE")
	authed.HandleFunc("/workspaces/{id}/roles", a.handleListRoles).Methods("GET")
	authed.HandleFunc("/workspaces/{id}/roles", a.handleCreateRole).Methods("POST")
	authed.HandleFunc("/roles/{id}", a.handleUpdateRole).Methods("PUT")
	authed.HandleFunc("/roles/{id}", a.handleDeleteRole).Methods("DELETE")

	// Invitations
	authed.HandleFunc("/send-invitation", a.handleSendInvitation).Methods("POST")
	authed.HandleFunc("/workspaces/{id}/invitations", a.handleListInvitations).Methods("GET")
	authed.HandleFunc("/invitations/{id}", a.handleRevokeInvitation).Methods("DELETE")

	// Projects
	authed.HandleFunc("/projects", a.handleCreateProject).Methods("POST")
	authed.HandleFunc("/projects/{id}", a.handleGetProject).Methods("GET")
	authed.HandleFunc("/projects/{id}", a.handleUpdateProject).Methods("PUT")
	authed.HandleFunc("/projects/{id}", a.handleDeleteProject).Methods("DELETE")
	authed.HandleFunc("/workspaces/{id}/projects", a.handleListProjects).Methods("GET")

	// Requirement hierarchy
	authed.HandleFunc("/requirements/bulk-save", a.handleBulkSaveRequirements).Methods("POST")
	authed.HandleFunc("/client-requirements", a.handleCreateClientRequirement).Methods("POST")
	authed.HandleFunc("/client-requirements/{id}", a.handleGetClientRequirement).Methods("GET")
	authed.HandleFunc("/client-requirements/{id}", a.handleUpdateClientRequirement).Methods("PUT")
	authed.HandleFunc("/client-requirements/{id}", a.handleDeleteClientRequirement).Methods("DELETE")
	authed.HandleFunc("/projects/{id}/client-requirements", a.handleListClientRequirements).Methods("GET")
	authed.HandleFunc("/epics", a.handleCreateEpic).Methods("POST")
	authed.HandleFunc("/epics/{id}", a.handleGetEpic).Methods("GET")
	authed.HandleFunc("/epics/{id}", a.handleUpdateEpic).Methods("PUT")
	authed.HandleFunc("/epics/{id}", a.handleDeleteEpic).Methods("DELETE")
	authed.HandleFunc("/projects/{id}/epics", a.handleListEpics).Methods("GET")
	authed.HandleFunc("/functional-requirements", a.handleCreateFunctionalRequirement).Methods("POST")
	authed.HandleFunc("/functional-requirements/{id}", a.handleGetFunctionalRequirement).Methods("GET")
	authed.HandleFunc("/functional-requirements/{id}", a.handleUpdateFunctionalRequirement).Methods("PUT")
	authed.HandleFunc("/functional-requirements/{id}", a.handleDeleteFunctionalRequirement).Methods("DELETE")
	authed.HandleFunc("/projects/{id}/functional-requirements", a.handleListFunctionalRequirements).Methods("GET")

	// Tasks
	authed.HandleFunc("/tasks", a.handleCreateTask).Methods("POST")
	authed.HandleFunc("/tasks/{id}", a.handleGetTask).Methods("GET")
	authed.HandleFunc("/tasks/{id}", a.handleUpdateTask).Methods("PUT")
	authed.HandleFunc("/tasks/{id}", a.handleDeleteTask).Methods("DELETE")
	authed.HandleFunc("/projects/{id}/tasks", a.handleListTasks).Methods("GET")
	authed.HandleFunc("/sprints/{id}/tasks", a.handleListSprintTasks).Methods("GET")

	// Sprints
	authed.HandleFunc("/sprints", a.handleCreateSprint).Methods("POST")
	authed.HandleFunc("/sprints/{id}", a.handleGetSprint).Methods("GET")
	authed.HandleFunc("/sprints/{id}", a.handleUpdateSprint).Methods("PUT")
	authed.HandleFunc("/sprints/{id}", a.handleDeleteSprint).Methods("DELETE")
	authed.HandleFunc("/projects/{id}/sprints", a.handleListSprints).Methods("GET")

	// Leave
	authed.HandleFunc("/leave-requests", a.handleCreateLeaveRequest).Methods("POST")
	authed.HandleFunc("/leave-requests/mine", a.handleListMyLeaveRequests).Methods("GET")
	authed.HandleFunc("/leave-requests/{id}", a.handleGetLeaveRequest).Methods("GET")
	authed.HandleFunc("/leave-requests/{id}", a.handleDeleteLeaveRequest).Methods("DELETE")
	authed.HandleFunc("/leave-requests/{id}/approve", a.handleApproveLeaveRequest).Methods("POST")
	authed.HandleFunc("/leave-requests/{id}/reject", a.handleRejectLeaveRequest).Methods("POST")
	authed.HandleFunc("/workspaces/{id}/leave-requests", a.handleListLeaveRequests).Methods("GET")
	authed.HandleFunc("/workspaces/{id}/leave-summary", a.handleLeaveSummary).Methods("GET")

	// Time tracking
	authed.HandleFunc("/time-entries", a.handleCreateTimeEntry).Methods("POST")
	authed.HandleFunc("/time-entries/{id}", a.handleUpdateTimeEntry).Methods("PUT")
	authed.HandleFunc("/time-entries/{id}", a.handleDeleteTimeEntry).Methods("DELETE")
	authed.HandleFunc("/tasks/{id}/time-entries", a.handleListTimeEntries).Methods("GET")

	// Notifications
	authed.HandleFunc("/notifications", a.handleListNotifications).Methods("GET")
	authed.HandleFunc("/notifications/{id}/read", a.handleMarkNotificationRead).Methods("PUT")
	authed.HandleFunc("/ws/notifications", a.handleNotificationsWS).Methods("GET")

	return router
}

// logRequests emits one structured log line per request.
func (a *App) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		a.log.Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Dur("duration", time.Since(start)).
			Msg("request")
	})
}

// Run starts the HTTP server and blocks until the context is cancelled or the
// server fails. On cancellation active requests get five seconds to finish.
func (a *App) Run(ctx context.Context, cmd *RunCommand) error {
	addr := fmt.Sprintf(":%s", a.config.ServerPort)
	a.log.Info().Str("addr", addr).Str("backend", a.config.Backend).Msg("starting server")

	server := &http.Server{
		Addr:    addr,
		Handler: a.Router(),
	}

	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	select {
	case <-ctx.Done():
		a.log.Info().Msg("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	case err := <-serverErr:
		return err
	}
}
