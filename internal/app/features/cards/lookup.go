// internal/app/features/cards/lookup.go
package cards

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/mwsociety/memberhub/internal/app/system/httpx"
	"github.com/mwsociety/memberhub/internal/app/system/timeouts"
)

// HandleGetByMember handles GET /cards/member/{memberID}.
func (h *Handler) HandleGetByMember(w http.ResponseWriter, r *http.Request) {
	memberID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "memberID"))
	if err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid member id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	card, err := h.Cards.FindByMemberID(ctx, memberID)
	if err != nil {
		httpx.WriteDomainError(w, h.Log, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, card)
}
