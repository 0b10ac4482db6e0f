// internal/app/features/transactions/export.go
package transactions

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/mwsociety/memberhub/internal/app/system/csvutil"
	"github.com/mwsociety/memberhub/internal/app/system/timeouts"
	"github.com/mwsociety/memberhub/internal/domain/models"
)

// HandleExport handles GET /transactions/export.csv and streams the
// transactions matching the current filters as a CSV download.
//
// Filters: status (pending|approved|rejected), from and to (RFC 3339
// timestamps against created_at).
func (h *Handler) HandleExport(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Batch())
	defer cancel()

	filter := bson.M{}
	if status := strings.TrimSpace(r.URL.Query().Get("status")); status != "" {
		switch models.TransactionStatus(status) {
		case models.TxnPending, models.TxnApproved, models.TxnRejected:
			filter["status"] = status
		default:
			http.Error(w, "unknown status", http.StatusBadRequest)
			return
		}
	}

	created := bson.M{}
	if from := strings.TrimSpace(r.URL.Query().Get("from")); from != "" {
		t, err := time.Parse(time.RFC3339, from)
		if err != nil {
			http.Error(w, "from must be an RFC 3339 timestamp", http.StatusBadRequest)
			return
		}
		created["$gte"] = t
	}
	if to := strings.TrimSpace(r.URL.Query().Get("to")); to != "" {
		t, err := time.Parse(time.RFC3339, to)
		if err != nil {
			http.Error(w, "to must be an RFC 3339 timestamp", http.StatusBadRequest)
			return
		}
		created["$lt"] = t
	}
	if len(created) > 0 {
		filter["created_at"] = created
	}

	cur, err := h.DB.Collection("transactions").Find(ctx, filter, options.Find().
		SetSort(bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}}))
	if err != nil {
		h.Log.Error("find transactions for CSV failed", zap.Error(err))
		http.Error(w, "database error", http.StatusInternalServerError)
		return
	}
	defer cur.Close(ctx)

	cw := csvutil.BeginDownload(w, r, "transactions")
	defer cw.Flush()

	_ = cw.Write([]string{
		"id", "reference", "category", "status", "payer_name", "payer_email",
		"payer_phone", "amount", "method", "purpose", "submitted_at",
		"decided_by", "decided_at",
	})

	rowCount := 0
	for cur.Next(ctx) {
		var tx models.PaymentTransaction
		if err := cur.Decode(&tx); err != nil {
			h.Log.Warn("decode transaction row failed", zap.Error(err))
			continue
		}

		decidedAt := ""
		if tx.DecidedAt != nil {
			decidedAt = tx.DecidedAt.UTC().Format(time.RFC3339)
		}
		_ = cw.Write([]string{
			tx.ID.Hex(),
			tx.Reference,
			string(tx.Category),
			string(tx.Status),
			tx.PayerName,
			tx.PayerEmail,
			tx.PayerPhone,
			strconv.FormatFloat(tx.Amount, 'f', 2, 64),
			tx.Method,
			tx.Purpose,
			tx.CreatedAt.UTC().Format(time.RFC3339),
			tx.DecidedBy,
			decidedAt,
		})
		rowCount++
	}

	h.Log.Info("transactions CSV exported", zap.Int("rows", rowCount))
}
