// internal/app/features/cards/generate.go
package cards

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/mwsociety/memberhub/internal/app/system/auth"
	"github.com/mwsociety/memberhub/internal/app/system/httpx"
	"github.com/mwsociety/memberhub/internal/app/system/timeouts"
	"github.com/mwsociety/memberhub/internal/domain/models"
)

// HandleGenerate handles POST /cards/member/{memberID}/generate.
//
// This is the manual recovery path for an approval whose cascade stopped
// before the card existed, and it is safe to call on a member that already
// has one: it runs the same ensure step as the cascade, so at most one
// card ever exists. 201 means a card was issued now, 200 that it already
// existed.
func (h *Handler) HandleGenerate(w http.ResponseWriter, r *http.Request) {
	memberID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "memberID"))
	if err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid member id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	member, err := h.Members.GetByID(ctx, memberID)
	if err != nil {
		httpx.WriteDomainError(w, h.Log, err)
		return
	}
	if member.Status != models.MemberApproved {
		httpx.WriteError(w, http.StatusConflict, "member is not approved")
		return
	}

	card, issued, err := h.Cascade.EnsureCard(ctx, member)
	if err != nil {
		httpx.WriteDomainError(w, h.Log, err)
		return
	}

	status := http.StatusOK
	if issued {
		status = http.StatusCreated
		h.Log.Info("card generated",
			zap.String("member_id", member.ID.Hex()),
			zap.String("card_number", card.CardNumber))
		if claims := auth.ClaimsFrom(r.Context()); claims != nil {
			if actorID, err := primitive.ObjectIDFromHex(claims.AdminID); err == nil {
				h.AuditLog.CardGenerated(ctx, r, actorID, map[string]string{
					"member_id":   member.ID.Hex(),
					"card_number": card.CardNumber,
				})
			}
		}
	}
	httpx.WriteJSON(w, status, card)
}
