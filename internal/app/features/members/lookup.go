// internal/app/features/members/lookup.go
package members

import (
	"context"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/mwsociety/memberhub/internal/app/system/httpx"
	"github.com/mwsociety/memberhub/internal/app/system/normalize"
	"github.com/mwsociety/memberhub/internal/app/system/timeouts"
	"github.com/mwsociety/memberhub/internal/domain/models"
)

// HandleGet handles GET /members/{id}.
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid member id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	member, err := h.Members.GetByID(ctx, id)
	if err != nil {
		httpx.WriteDomainError(w, h.Log, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, member)
}

// HandleLookup handles GET /members/lookup?number=MWSS-M0042 and
// GET /members/lookup?email=a@b.org. Exactly one of the two parameters
// must be given.
func (h *Handler) HandleLookup(w http.ResponseWriter, r *http.Request) {
	number := strings.TrimSpace(r.URL.Query().Get("number"))
	email := normalize.Email(r.URL.Query().Get("email"))
	if (number == "") == (email == "") {
		httpx.WriteError(w, http.StatusBadRequest, "provide exactly one of number or email")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	var (
		member models.Member
		err    error
	)
	if number != "" {
		member, err = h.Members.FindByMembershipNumber(ctx, number)
	} else {
		member, err = h.Members.FindByEmail(ctx, email)
	}
	if err != nil {
		httpx.WriteDomainError(w, h.Log, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, member)
}
