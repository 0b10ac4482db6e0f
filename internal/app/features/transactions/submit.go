// internal/app/features/transactions/submit.go
package transactions

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"github.com/mwsociety/memberhub/internal/app/system/httpx"
	"github.com/mwsociety/memberhub/internal/app/system/timeouts"
)

// HandleSubmit handles POST /transactions: a payer (or the front desk)
// records a payment for later review. The transaction starts pending and
// nothing is provisioned until an admin approves it.
func (h *Handler) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	var req submitRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		httpx.WriteDomainError(w, h.Log, err)
		return
	}

	tx, err := req.toModel()
	if err != nil {
		httpx.WriteDomainError(w, h.Log, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	created, err := h.Txns.Create(ctx, tx)
	if err != nil {
		httpx.WriteDomainError(w, h.Log, err)
		return
	}

	h.Log.Info("transaction submitted",
		zap.String("transaction_id", created.ID.Hex()),
		zap.String("reference", created.Reference),
		zap.String("category", string(created.Category)))

	httpx.WriteJSON(w, http.StatusCreated, created)
}
