// internal/app/features/groupings/respond.go
package groupings

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/dalemusser/waffle/pantry/query"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/ruizaj/uh-groupings-api/internal/app/system/apperr"
	"github.com/ruizaj/uh-groupings-api/internal/app/system/auth"
	"github.com/ruizaj/uh-groupings-api/internal/app/system/timeouts"
	"github.com/ruizaj/uh-groupings-api/internal/domain/models"
)

func requesterUsername(r *http.Request) (string, bool) {
	u, ok := auth.CurrentUser(r)
	if !ok || u.Username == "" {
		return "", false
	}
	return u.Username, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeUnauthorized(w http.ResponseWriter) {
	writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
}

// writeError maps service error kinds onto HTTP statuses. Anything
// without a kind is a 500 and the detail stays in the log, not the
// response.
func (h *Handler) writeError(w http.ResponseWriter, err error) {
	switch {
	case apperr.IsAccessDenied(err):
		writeJSON(w, http.StatusForbidden, map[string]string{"error": err.Error()})
	case apperr.IsNotFound(err):
		writeJSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
	case apperr.IsInvalidArgument(err):
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
	default:
		h.Log.Error("grouping request failed", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}
}

// intParam reads an optional integer query parameter. Absent means
// nil; a non-numeric value also reads as absent rather than an error,
// matching how the rest of the query surface treats junk input.
func intParam(r *http.Request, name string) *int {
	raw := query.Get(r, name)
	if raw == "" {
		return nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return nil
	}
	return &n
}

func stringParam(r *http.Request, name string) *string {
	raw := query.Get(r, name)
	if raw == "" {
		return nil
	}
	return &raw
}

func boolParam(r *http.Request, name string) *bool {
	raw := query.Get(r, name)
	if raw == "" {
		return nil
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return nil
	}
	return &b
}

// listForRequester serves the /mine and /owned endpoints: look up the
// requester's raw membership paths, then let resolve turn them into
// groupings.
func (h *Handler) listForRequester(w http.ResponseWriter, r *http.Request, op string, resolve func(context.Context, []string) ([]*models.Grouping, error)) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Long(), h.Log, op)
	defer cancel()

	requester, ok := requesterUsername(r)
	if !ok {
		writeUnauthorized(w)
		return
	}
	paths, err := h.Svc.MembershipPaths(ctx, requester)
	if err != nil {
		h.writeError(w, err)
		return
	}
	groupings, err := resolve(ctx, paths)
	if err != nil {
		h.writeError(w, err)
		return
	}
	views := make([]groupingView, 0, len(groupings))
	for _, g := range groupings {
		views = append(views, toGroupingView(g))
	}
	writeJSON(w, http.StatusOK, views)
}

// optGroups serves the opt-in/opt-out eligibility queries for the
// {username} URL parameter.
func (h *Handler) optGroups(w http.ResponseWriter, r *http.Request, op string, fn func(ctx context.Context, requester, target string) ([]string, error)) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, op)
	defer cancel()

	requester, ok := requesterUsername(r)
	if !ok {
		writeUnauthorized(w)
		return
	}
	paths, err := fn(ctx, requester, chi.URLParam(r, "username"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	if paths == nil {
		paths = []string{}
	}
	writeJSON(w, http.StatusOK, paths)
}

// setPreference serves the opt-in/opt-out preference toggles. The body
// is {"enabled": bool}.
func (h *Handler) setPreference(w http.ResponseWriter, r *http.Request, op string, fn func(ctx context.Context, path, requester string, on bool) error) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, op)
	defer cancel()

	requester, ok := requesterUsername(r)
	if !ok {
		writeUnauthorized(w)
		return
	}
	var body struct {
		Enabled bool `json:"enabled"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		h.writeError(w, apperr.InvalidArgumentf("malformed request body"))
		return
	}
	if err := fn(ctx, chi.URLParam(r, "path"), requester, body.Enabled); err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"result": "updated"})
}
