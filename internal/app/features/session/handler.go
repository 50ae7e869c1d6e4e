// internal/app/features/session/handler.go

// Package session exposes sign-in and sign-out for the cookie session.
// The service sits behind the campus SSO proxy, which authenticates the
// user and asserts the identity headers this handler trusts.
package session

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/ruizaj/uh-groupings-api/internal/app/system/auth"
)

// Identity assertion headers set by the SSO proxy.
const (
	usernameHeader = "X-Uh-Username"
	nameHeader     = "X-Uh-Name"
)

// Handler holds dependencies for session endpoints.
type Handler struct {
	Sessions *auth.SessionManager
	Log      *zap.Logger
}

// NewHandler constructs a session Handler.
func NewHandler(sm *auth.SessionManager, logger *zap.Logger) *Handler {
	return &Handler{Sessions: sm, Log: logger}
}

// SignIn handles POST /: establish a session from the proxy-asserted
// identity. A request without the identity header is a 401, not a 400,
// so load balancer probes see the same failure as unauthenticated
// users.
func (h *Handler) SignIn(w http.ResponseWriter, r *http.Request) {
	username := r.Header.Get(usernameHeader)
	if username == "" {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "no identity assertion"})
		return
	}
	name := r.Header.Get(nameHeader)
	if name == "" {
		name = username
	}

	user := auth.SessionUser{Username: username, Name: name}
	if err := h.Sessions.SignIn(w, r, user); err != nil {
		h.Log.Error("session sign-in failed", zap.Error(err), zap.String("username", username))
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
		return
	}
	h.Log.Info("user signed in", zap.String("username", username))
	writeJSON(w, http.StatusOK, map[string]string{"username": username, "name": name})
}

// Current handles GET /: report the signed-in user.
func (h *Handler) Current(w http.ResponseWriter, r *http.Request) {
	u, ok := auth.CurrentUser(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"username": u.Username, "name": u.Name})
}

// SignOut handles DELETE /: clear the session cookie.
func (h *Handler) SignOut(w http.ResponseWriter, r *http.Request) {
	if err := h.Sessions.SignOut(w, r); err != nil {
		h.Log.Error("session sign-out failed", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"result": "signed out"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
