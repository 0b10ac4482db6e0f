// internal/app/features/transactions/routes.go
package transactions

import (
	"github.com/go-chi/chi/v5"

	"github.com/mwsociety/memberhub/internal/app/system/auth"
)

// Routes mounts all transaction routes under the path where the caller
// mounts it. Typically: r.Mount("/transactions", transactions.Routes(h, tm))
func Routes(h *Handler, tm *auth.TokenManager) chi.Router {
	r := chi.NewRouter()

	// Submission is open: payers record their own payments.
	r.Post("/", h.HandleSubmit)

	// Review and decisions are admin-only.
	r.Group(func(pr chi.Router) {
		pr.Use(tm.RequireAdmin)

		pr.Get("/", h.HandleList)
		pr.Get("/export.csv", h.HandleExport)
		pr.Get("/{id}", h.HandleGet)
		pr.Post("/{id}/approve", h.HandleApprove)
		pr.Post("/{id}/reject", h.HandleReject)
	})

	return r
}
