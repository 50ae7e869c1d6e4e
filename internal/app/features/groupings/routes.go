// internal/app/features/groupings/routes.go
package groupings

import (
	"github.com/go-chi/chi/v5"

	"github.com/ruizaj/uh-groupings-api/internal/app/system/auth"
)

func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	// Everything under /groupings requires a signed-in campus user.
	r.Group(func(pr chi.Router) {
		pr.Use(auth.RequireSignedIn)

		// Requester-scoped lists
		pr.Get("/mine", h.MemberGroupings)
		pr.Get("/owned", h.OwnedGroupings)

		// Administrative summary
		pr.Get("/adminLists", h.AdminLists)

		// Opt eligibility queries
		pr.Get("/optInGroups/{username}", h.OptInGroups)
		pr.Get("/optOutGroups/{username}", h.OptOutGroups)

		// Single grouping views
		pr.Get("/{path}", h.GetGrouping)
		pr.Get("/{path}/paged", h.GetPaginatedGrouping)

		// Owner/admin mutations
		pr.Put("/{path}/description", h.UpdateDescription)
		pr.Put("/{path}/preferences/optIn", h.SetOptIn)
		pr.Put("/{path}/preferences/optOut", h.SetOptOut)
		pr.Put("/{path}/syncDests/{name}", h.UpdateSyncDestination)
	})

	return r
}
