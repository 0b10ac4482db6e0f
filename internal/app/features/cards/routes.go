// internal/app/features/cards/routes.go
package cards

import (
	"github.com/go-chi/chi/v5"

	"github.com/mwsociety/memberhub/internal/app/system/auth"
)

// Routes mounts the card routes; everything here is admin-only.
// Typically: r.Mount("/cards", cards.Routes(h, tm))
func Routes(h *Handler, tm *auth.TokenManager) chi.Router {
	r := chi.NewRouter()

	r.Group(func(pr chi.Router) {
		pr.Use(tm.RequireAdmin)

		pr.Get("/member/{memberID}", h.HandleGetByMember)
		pr.Post("/member/{memberID}/generate", h.HandleGenerate)
	})

	return r
}
