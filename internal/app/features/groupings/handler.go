// internal/app/features/groupings/handler.go

// Package groupings exposes the grouping assignment operations over
// JSON. The transport is deliberately thin: requester identity comes
// from the session user and is passed explicitly into the service;
// error kinds map one-to-one onto status codes.
package groupings

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/ruizaj/uh-groupings-api/internal/app/services/assignment"
	"github.com/ruizaj/uh-groupings-api/internal/app/system/apperr"
	"github.com/ruizaj/uh-groupings-api/internal/app/system/timeouts"
)

// Handler holds dependencies for the grouping endpoints.
type Handler struct {
	Svc *assignment.Service
	Log *zap.Logger
}

// NewHandler constructs a groupings Handler.
func NewHandler(svc *assignment.Service, logger *zap.Logger) *Handler {
	return &Handler{Svc: svc, Log: logger}
}

// GetGrouping handles GET /{path}: the full, unfiltered view.
func (h *Handler) GetGrouping(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "get grouping")
	defer cancel()

	requester, ok := requesterUsername(r)
	if !ok {
		writeUnauthorized(w)
		return
	}
	grouping, err := h.Svc.GetGrouping(ctx, chi.URLParam(r, "path"), requester)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toGroupingView(grouping))
}

// GetPaginatedGrouping handles GET /{path}/paged. Absent query
// parameters disable the corresponding feature rather than defaulting:
// no page/size means the full member lists, no sortBy/ascending means
// insertion order.
func (h *Handler) GetPaginatedGrouping(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "get paginated grouping")
	defer cancel()

	requester, ok := requesterUsername(r)
	if !ok {
		writeUnauthorized(w)
		return
	}

	page := intParam(r, "page")
	size := intParam(r, "size")
	sortBy := stringParam(r, "sortBy")
	ascending := boolParam(r, "ascending")

	grouping, err := h.Svc.GetPaginatedGrouping(ctx, chi.URLParam(r, "path"), requester, page, size, sortBy, ascending)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toGroupingView(grouping))
}

// AdminLists handles GET /adminLists.
func (h *Handler) AdminLists(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "admin lists")
	defer cancel()

	requester, ok := requesterUsername(r)
	if !ok {
		writeUnauthorized(w)
		return
	}
	holder, err := h.Svc.AdminLists(ctx, requester)
	if err != nil {
		h.writeError(w, err)
		return
	}
	paths := holder.AllGroupingPaths
	if paths == nil {
		paths = []string{}
	}
	writeJSON(w, http.StatusOK, adminListsView{
		AllGroupingPaths: paths,
		AdminGroup:       toGroupView(holder.AdminGroup),
	})
}

// MemberGroupings handles GET /mine: every grouping the signed-in user
// belongs to.
func (h *Handler) MemberGroupings(w http.ResponseWriter, r *http.Request) {
	h.listForRequester(w, r, "member groupings", h.Svc.GroupingsIn)
}

// OwnedGroupings handles GET /owned: every grouping the signed-in user
// owns, sorted by path.
func (h *Handler) OwnedGroupings(w http.ResponseWriter, r *http.Request) {
	h.listForRequester(w, r, "owned groupings", h.Svc.GroupingsOwned)
}

// OptInGroups handles GET /optInGroups/{username}.
func (h *Handler) OptInGroups(w http.ResponseWriter, r *http.Request) {
	h.optGroups(w, r, "opt-in groups", h.Svc.GetOptInGroups)
}

// OptOutGroups handles GET /optOutGroups/{username}.
func (h *Handler) OptOutGroups(w http.ResponseWriter, r *http.Request) {
	h.optGroups(w, r, "opt-out groups", h.Svc.GetOptOutGroups)
}

// UpdateDescription handles PUT /{path}/description.
func (h *Handler) UpdateDescription(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "update description")
	defer cancel()

	requester, ok := requesterUsername(r)
	if !ok {
		writeUnauthorized(w)
		return
	}
	var body struct {
		Description string `json:"description"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		h.writeError(w, apperr.InvalidArgumentf("malformed request body"))
		return
	}
	if err := h.Svc.UpdateDescription(ctx, chi.URLParam(r, "path"), requester, body.Description); err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"result": "updated"})
}

// SetOptIn handles PUT /{path}/preferences/optIn.
func (h *Handler) SetOptIn(w http.ResponseWriter, r *http.Request) {
	h.setPreference(w, r, "set opt-in", h.Svc.SetOptIn)
}

// SetOptOut handles PUT /{path}/preferences/optOut.
func (h *Handler) SetOptOut(w http.ResponseWriter, r *http.Request) {
	h.setPreference(w, r, "set opt-out", h.Svc.SetOptOut)
}

// UpdateSyncDestination handles PUT /{path}/syncDests/{name}.
func (h *Handler) UpdateSyncDestination(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "update sync destination")
	defer cancel()

	requester, ok := requesterUsername(r)
	if !ok {
		writeUnauthorized(w)
		return
	}
	var body struct {
		Synced bool `json:"synced"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		h.writeError(w, apperr.InvalidArgumentf("malformed request body"))
		return
	}
	err := h.Svc.UpdateSyncDestination(ctx, chi.URLParam(r, "path"), requester, chi.URLParam(r, "name"), body.Synced)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"result": "updated"})
}
