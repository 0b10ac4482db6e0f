// internal/app/system/approval/engine.go

// Package approval owns the payment-transaction decision state machine and
// the provisioning cascade it triggers.
//
// The only legal transitions are pending -> approved and pending ->
// rejected; both are terminal. The status write is the atomic commit point:
// it happens before provisioning, provisioning happens before
// notification, and neither provisioning nor notification failure ever
// rolls the status back.
package approval

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/mwsociety/memberhub/internal/app/metrics"
	studentstore "github.com/mwsociety/memberhub/internal/app/store/students"
	transactionstore "github.com/mwsociety/memberhub/internal/app/store/transactions"
	"github.com/mwsociety/memberhub/internal/app/system/notify"
	"github.com/mwsociety/memberhub/internal/domain/apperr"
	"github.com/mwsociety/memberhub/internal/domain/models"
)

// Engine applies admin decisions to pending transactions.
type Engine struct {
	txns     *transactionstore.Store
	students *studentstore.Store
	cascade  *Cascade
	notifier *notify.Dispatcher
	log      *zap.Logger
}

// NewEngine wires the decision state machine to its collaborators.
func NewEngine(txns *transactionstore.Store, students *studentstore.Store, cascade *Cascade, notifier *notify.Dispatcher, log *zap.Logger) *Engine {
	return &Engine{
		txns:     txns,
		students: students,
		cascade:  cascade,
		notifier: notifier,
		log:      log,
	}
}

// Decide transitions the transaction to the requested terminal status.
//
// Returns NotFound when the id is unknown and InvalidState when the
// transaction is no longer pending; a repeated decision is rejected, not
// silently replayed, so provisioning and notifications run at most once
// per transaction.
//
// When an approved membership payment's cascade fails, the returned
// transaction is still approved and the error wraps
// apperr.ErrProvisionIncomplete: the caller sees a partial success and a
// later retry of the cascade (admin card generation, or approving another
// transaction for the same email) converges to the same end state.
func (e *Engine) Decide(ctx context.Context, id primitive.ObjectID, decision models.TransactionStatus, approverID string) (models.PaymentTransaction, error) {
	if decision != models.TxnApproved && decision != models.TxnRejected {
		return models.PaymentTransaction{}, apperr.Validation("decision must be %q or %q", models.TxnApproved, models.TxnRejected)
	}
	if approverID == "" {
		return models.PaymentTransaction{}, apperr.Validation("approver identity is required")
	}

	tx, err := e.txns.Decide(ctx, id, decision, approverID, time.Now().UTC())
	if err != nil {
		return models.PaymentTransaction{}, err
	}
	metrics.DecisionsTotal.WithLabelValues(string(decision)).Inc()

	if decision == models.TxnRejected {
		e.log.Info("transaction rejected",
			zap.String("transaction_id", tx.ID.Hex()),
			zap.String("reference", tx.Reference),
			zap.String("approver", approverID))
		e.notifyDecision(tx)
		return tx, nil
	}

	e.log.Info("transaction approved",
		zap.String("transaction_id", tx.ID.Hex()),
		zap.String("reference", tx.Reference),
		zap.String("category", string(tx.Category)),
		zap.String("approver", approverID))

	if err := e.provision(ctx, tx); err != nil {
		metrics.ProvisionFailures.Inc()
		e.log.Error("provisioning incomplete after approval",
			zap.String("transaction_id", tx.ID.Hex()),
			zap.Error(err))
		e.notifyDecision(tx)
		return tx, fmt.Errorf("%w: %w", apperr.ErrProvisionIncomplete, err)
	}

	e.notifyDecision(tx)
	return tx, nil
}

// provision runs the post-approval side effects for the transaction's
// category. Everything here is idempotent; a retry after partial failure
// picks up where the last attempt stopped.
func (e *Engine) provision(ctx context.Context, tx models.PaymentTransaction) error {
	switch tx.Category {
	case models.CategoryMembership:
		member, _, err := e.cascade.EnsureMembership(ctx, tx)
		if err != nil {
			return err
		}
		e.notifier.Enqueue(notify.EventCardIssued, member.Email, map[string]string{
			"member_name":       member.FullName,
			"membership_number": member.MembershipNumber,
		})
		return nil
	case models.CategoryFee:
		if tx.StudentID != nil {
			return e.students.Finalize(ctx, *tx.StudentID)
		}
		return nil
	default:
		// Donations and other payments provision nothing.
		return nil
	}
}

func (e *Engine) notifyDecision(tx models.PaymentTransaction) {
	eventType := notify.EventTransactionApproved
	if tx.Status == models.TxnRejected {
		eventType = notify.EventTransactionRejected
	}
	e.notifier.Enqueue(eventType, tx.PayerEmail, map[string]string{
		"reference":  tx.Reference,
		"payer_name": tx.PayerName,
		"amount":     fmt.Sprintf("%.2f", tx.Amount),
		"category":   string(tx.Category),
	})
}
