// internal/app/features/transactions/list.go
package transactions

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/mwsociety/memberhub/internal/app/system/httpx"
	"github.com/mwsociety/memberhub/internal/app/system/timeouts"
	"github.com/mwsociety/memberhub/internal/domain/models"
)

const defaultListLimit = 100

// HandleList handles GET /transactions?status=pending&limit=50.
// Status defaults to pending, the review queue being the common case.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	status := models.TransactionStatus(r.URL.Query().Get("status"))
	if status == "" {
		status = models.TxnPending
	}
	switch status {
	case models.TxnPending, models.TxnApproved, models.TxnRejected:
	default:
		httpx.WriteError(w, http.StatusBadRequest, "unknown status")
		return
	}

	limit := int64(defaultListLimit)
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || n < 1 || n > 1000 {
			httpx.WriteError(w, http.StatusBadRequest, "limit must be between 1 and 1000")
			return
		}
		limit = n
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	list, err := h.Txns.ListByStatus(ctx, status, limit)
	if err != nil {
		httpx.WriteDomainError(w, h.Log, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]any{
		"transactions": list,
		"count":        len(list),
	})
}

// HandleGet handles GET /transactions/{id}.
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid transaction id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	tx, err := h.Txns.GetByID(ctx, id)
	if err != nil {
		httpx.WriteDomainError(w, h.Log, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, tx)
}
