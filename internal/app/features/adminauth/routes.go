// internal/app/features/adminauth/routes.go
package adminauth

import "github.com/go-chi/chi/v5"

// Routes mounts the admin auth routes.
// Typically: r.Mount("/auth", adminauth.Routes(h))
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Post("/login", h.HandleLogin)
	return r
}
