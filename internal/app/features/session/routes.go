// internal/app/features/session/routes.go
package session

import "github.com/go-chi/chi/v5"

// Routes returns the router for session endpoints.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.SignIn)
	r.Get("/", h.Current)
	r.Delete("/", h.SignOut)
	return r
}
