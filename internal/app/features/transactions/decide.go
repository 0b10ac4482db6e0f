// internal/app/features/transactions/decide.go
package transactions

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/mwsociety/memberhub/internal/app/store/audit"
	"github.com/mwsociety/memberhub/internal/app/system/auth"
	"github.com/mwsociety/memberhub/internal/app/system/httpx"
	"github.com/mwsociety/memberhub/internal/app/system/timeouts"
	"github.com/mwsociety/memberhub/internal/domain/models"
)

// HandleApprove handles POST /transactions/{id}/approve.
func (h *Handler) HandleApprove(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, models.TxnApproved)
}

// HandleReject handles POST /transactions/{id}/reject.
func (h *Handler) HandleReject(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, models.TxnRejected)
}

// decideResponse is returned for both decisions. Warning is set only for
// the partial-success case: the decision stuck but provisioning did not
// finish, and a retry (re-running card generation, or another approval for
// the same payer) will complete it.
type decideResponse struct {
	Transaction models.PaymentTransaction `json:"transaction"`
	Warning     string                    `json:"warning,omitempty"`
}

func (h *Handler) decide(w http.ResponseWriter, r *http.Request, decision models.TransactionStatus) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid transaction id")
		return
	}

	claims := auth.ClaimsFrom(r.Context())
	if claims == nil {
		httpx.WriteError(w, http.StatusUnauthorized, "missing admin identity")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	tx, err := h.Engine.Decide(ctx, id, decision, claims.AdminID)
	if err == nil || httpx.IsProvisionIncomplete(err) {
		h.auditDecision(ctx, r, decision, claims.AdminID, id, tx.Reference, err == nil)
	}
	if err != nil {
		if httpx.IsProvisionIncomplete(err) {
			// The decision is committed; only the downstream side effects
			// are missing. Report success with a warning rather than an
			// error the client would retry against a now-decided record.
			httpx.WriteJSON(w, http.StatusOK, decideResponse{
				Transaction: tx,
				Warning:     "approved, but provisioning did not complete; it will finish on retry",
			})
			return
		}
		httpx.WriteDomainError(w, h.Log, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, decideResponse{Transaction: tx})
}

func (h *Handler) auditDecision(ctx context.Context, r *http.Request, decision models.TransactionStatus, adminID string, txID primitive.ObjectID, reference string, provisioned bool) {
	actorID, err := primitive.ObjectIDFromHex(adminID)
	if err != nil {
		return
	}
	eventType := audit.EventTransactionApproved
	if decision == models.TxnRejected {
		eventType = audit.EventTransactionRejected
	}
	h.AuditLog.Decision(ctx, r, eventType, actorID, txID, provisioned, map[string]string{
		"reference": reference,
	})
}
