// internal/testutil/http.go
package testutil

import (
	"context"
	"net/http"
	"net/http/httptest"

	"github.com/go-chi/chi/v5"

	"github.com/ruizaj/uh-groupings-api/internal/app/system/auth"
)

// WithChiURLParam adds a chi URL parameter to the request context.
// Use this in handler tests that read chi.URLParam values.
func WithChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// NewAuthenticatedRequest creates a request carrying the given
// requester as the session user, bypassing the session middleware.
func NewAuthenticatedRequest(method, target, username string) *http.Request {
	req := httptest.NewRequest(method, target, nil)
	return auth.WithTestUser(req, &auth.SessionUser{Username: username, Name: username})
}
