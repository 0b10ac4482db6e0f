// internal/app/features/members/routes.go
package members

import (
	"github.com/go-chi/chi/v5"

	"github.com/mwsociety/memberhub/internal/app/system/auth"
)

// Routes mounts the member lookup routes; admin-only.
// Typically: r.Mount("/members", members.Routes(h, tm))
func Routes(h *Handler, tm *auth.TokenManager) chi.Router {
	r := chi.NewRouter()

	r.Group(func(pr chi.Router) {
		pr.Use(tm.RequireAdmin)

		pr.Get("/lookup", h.HandleLookup)
		pr.Get("/{id}", h.HandleGet)
	})

	return r
}
