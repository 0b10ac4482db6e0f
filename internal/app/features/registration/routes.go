// internal/app/features/registration/routes.go
package registration

import "github.com/go-chi/chi/v5"

// Routes mounts the public self-registration routes.
// Typically: r.Mount("/register", registration.Routes(h))
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Post("/member", h.HandleMember)
	r.Post("/student", h.HandleStudent)
	r.Post("/volunteer", h.HandleVolunteer)

	return r
}
