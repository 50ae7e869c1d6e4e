// internal/app/system/auth/auth.go

// Package auth loads the signed-in campus user from the session cookie
// and makes it available to handlers. This is transport plumbing only:
// the core services always take the requester username as an explicit
// parameter, never from ambient state.
package auth

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/gorilla/securecookie"
	"github.com/gorilla/sessions"
	"go.uber.org/zap"
)

const (
	isAuthKey   = "is_authenticated"
	usernameKey = "username"
	nameKey     = "name"
)

// SessionUser is what we cache in the session and inject into
// r.Context().
type SessionUser struct {
	Username string
	Name     string
}

type ctxKey string

const currentUserKey ctxKey = "currentUser"

// SessionManager wraps the cookie store and session name.
type SessionManager struct {
	store *sessions.CookieStore
	name  string
	log   *zap.Logger
}

// NewSessionManager builds a cookie-backed session manager. An empty
// key gets a random one, which invalidates sessions across restarts
// and is only acceptable in dev.
func NewSessionManager(key, name, domain string, secure bool, logger *zap.Logger) *SessionManager {
	keyBytes := []byte(key)
	if key == "" {
		keyBytes = securecookie.GenerateRandomKey(32)
		logger.Warn("session key not configured; using a random per-process key")
	}
	store := sessions.NewCookieStore(keyBytes)
	store.Options = &sessions.Options{
		Path:     "/",
		Domain:   domain,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
	return &SessionManager{store: store, name: name, log: logger}
}

// CurrentUser returns the session user and a found flag.
func CurrentUser(r *http.Request) (*SessionUser, bool) {
	u, ok := r.Context().Value(currentUserKey).(*SessionUser)
	return u, ok
}

func withUser(r *http.Request, u *SessionUser) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), currentUserKey, u))
}

// WithTestUser injects a user into the request context, bypassing the
// session store. Test helper only.
func WithTestUser(r *http.Request, u *SessionUser) *http.Request {
	return withUser(r, u)
}

// LoadSessionUser injects the user into context if they are signed in.
func (m *SessionManager) LoadSessionUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess, _ := m.store.Get(r, m.name)
		if isAuth, _ := sess.Values[isAuthKey].(bool); isAuth {
			u := &SessionUser{
				Username: getString(sess, usernameKey),
				Name:     getString(sess, nameKey),
			}
			r = withUser(r, u)
		}
		next.ServeHTTP(w, r)
	})
}

// RequireSignedIn rejects requests without a session user with a JSON
// 401.
func RequireSignedIn(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := CurrentUser(r); ok {
			next.ServeHTTP(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "unauthorized"})
	})
}

// SignIn records the user in the session cookie.
func (m *SessionManager) SignIn(w http.ResponseWriter, r *http.Request, u SessionUser) error {
	sess, _ := m.store.Get(r, m.name)
	sess.Values[isAuthKey] = true
	sess.Values[usernameKey] = u.Username
	sess.Values[nameKey] = u.Name
	return sess.Save(r, w)
}

// SignOut clears the session.
func (m *SessionManager) SignOut(w http.ResponseWriter, r *http.Request) error {
	sess, _ := m.store.Get(r, m.name)
	sess.Options.MaxAge = -1
	sess.Values = map[interface{}]interface{}{}
	return sess.Save(r, w)
}

func getString(sess *sessions.Session, key string) string {
	s, _ := sess.Values[key].(string)
	return s
}
