// internal/app/features/session/handler_test.go
package session_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"

	"github.com/ruizaj/uh-groupings-api/internal/app/features/session"
	"github.com/ruizaj/uh-groupings-api/internal/app/system/auth"
)

func newManager() *auth.SessionManager {
	return auth.NewSessionManager("test-session-key-0123456789abcdef", "groupings-session", "", false, zap.NewNop())
}

func TestSignInAndCurrent(t *testing.T) {
	sm := newManager()
	h := session.NewHandler(sm, zap.NewNop())

	req := httptest.NewRequest(http.MethodPost, "/", nil)
	req.Header.Set("X-Uh-Username", "u0")
	req.Header.Set("X-Uh-Name", "User Zero")
	rec := httptest.NewRecorder()
	h.SignIn(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("sign-in status = %d (body %s)", rec.Code, rec.Body.String())
	}
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decoding sign-in response: %v", err)
	}
	if body["username"] != "u0" || body["name"] != "User Zero" {
		t.Errorf("sign-in body = %v", body)
	}
	if len(rec.Result().Cookies()) == 0 {
		t.Error("sign-in set no session cookie")
	}

	// Replay the cookie through the session middleware and read the
	// current user back.
	cookieReq := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range rec.Result().Cookies() {
		cookieReq.AddCookie(c)
	}
	currentRec := httptest.NewRecorder()
	sm.LoadSessionUser(http.HandlerFunc(h.Current)).ServeHTTP(currentRec, cookieReq)

	if currentRec.Code != http.StatusOK {
		t.Fatalf("current status = %d (body %s)", currentRec.Code, currentRec.Body.String())
	}
	var current map[string]string
	if err := json.Unmarshal(currentRec.Body.Bytes(), &current); err != nil {
		t.Fatalf("decoding current response: %v", err)
	}
	if current["username"] != "u0" {
		t.Errorf("current user = %v, want u0", current)
	}
}

func TestSignInWithoutIdentityAssertion(t *testing.T) {
	h := session.NewHandler(newManager(), zap.NewNop())

	req := httptest.NewRequest(http.MethodPost, "/", nil)
	rec := httptest.NewRecorder()
	h.SignIn(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}

func TestCurrentWithoutSession(t *testing.T) {
	h := session.NewHandler(newManager(), zap.NewNop())

	rec := httptest.NewRecorder()
	h.Current(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}

func TestSignOutClearsSession(t *testing.T) {
	sm := newManager()
	h := session.NewHandler(sm, zap.NewNop())

	req := httptest.NewRequest(http.MethodPost, "/", nil)
	req.Header.Set("X-Uh-Username", "u0")
	rec := httptest.NewRecorder()
	h.SignIn(rec, req)

	outReq := httptest.NewRequest(http.MethodDelete, "/", nil)
	for _, c := range rec.Result().Cookies() {
		outReq.AddCookie(c)
	}
	outRec := httptest.NewRecorder()
	h.SignOut(outRec, outReq)

	if outRec.Code != http.StatusOK {
		t.Fatalf("sign-out status = %d (body %s)", outRec.Code, outRec.Body.String())
	}
	cleared := false
	for _, c := range outRec.Result().Cookies() {
		if c.Name == "groupings-session" && c.MaxAge < 0 {
			cleared = true
		}
	}
	if !cleared {
		t.Error("sign-out did not expire the session cookie")
	}
}
