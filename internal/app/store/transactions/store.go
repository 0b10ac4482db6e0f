// internal/app/store/transactions/store.go
package transactionstore

import (
	"context"
	"errors"
	"time"

	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mwsociety/memberhub/internal/domain/apperr"
	"github.com/mwsociety/memberhub/internal/domain/models"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("transactions")}
}

// Create persists a newly submitted transaction as pending.
//
// The externally supplied reference must be unique; a duplicate is rejected
// before insert, and the unique index catches the race where two submissions
// with the same reference arrive together.
func (s *Store) Create(ctx context.Context, tx models.PaymentTransaction) (models.PaymentTransaction, error) {
	exists, err := s.referenceExists(ctx, tx.Reference)
	if err != nil {
		return models.PaymentTransaction{}, err
	}
	if exists {
		return models.PaymentTransaction{}, apperr.Validation("transaction reference %q already exists", tx.Reference)
	}

	now := time.Now().UTC()
	tx.ID = primitive.NewObjectID()
	tx.Status = models.TxnPending
	tx.CreatedAt = now
	tx.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, tx); err != nil {
		if wafflemongo.IsDup(err) {
			return models.PaymentTransaction{}, apperr.Validation("transaction reference %q already exists", tx.Reference)
		}
		return models.PaymentTransaction{}, apperr.Transient("insert transaction", err)
	}
	return tx, nil
}

func (s *Store) referenceExists(ctx context.Context, reference string) (bool, error) {
	err := s.c.FindOne(ctx, bson.M{"reference": reference}).Err()
	if errors.Is(err, mongo.ErrNoDocuments) {
		return false, nil
	}
	if err != nil {
		return false, apperr.Transient("lookup transaction reference", err)
	}
	return true, nil
}

// GetByID loads a transaction.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.PaymentTransaction, error) {
	var tx models.PaymentTransaction
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&tx)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.PaymentTransaction{}, apperr.NotFound("transaction %s not found", id.Hex())
	}
	if err != nil {
		return models.PaymentTransaction{}, apperr.Transient("load transaction", err)
	}
	return tx, nil
}

// ListByStatus returns transactions with the given status, newest first.
// An empty status returns all transactions.
func (s *Store) ListByStatus(ctx context.Context, status models.TransactionStatus, limit int64) ([]models.PaymentTransaction, error) {
	filter := bson.M{}
	if status != "" {
		filter["status"] = status
	}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	if limit > 0 {
		opts.SetLimit(limit)
	}
	cur, err := s.c.Find(ctx, filter, opts)
	if err != nil {
		return nil, apperr.Transient("list transactions", err)
	}
	defer cur.Close(ctx)

	var txs []models.PaymentTransaction
	if err := cur.All(ctx, &txs); err != nil {
		return nil, apperr.Transient("decode transactions", err)
	}
	return txs, nil
}

// Decide atomically transitions a pending transaction to the given terminal
// status, stamping the deciding admin and decision time. The filter on
// status=pending makes the transition single-winner under concurrent
// decisions: the loser observes the record no longer pending and gets an
// invalid-state error, never a second transition.
func (s *Store) Decide(ctx context.Context, id primitive.ObjectID, status models.TransactionStatus, deciderID string, decidedAt time.Time) (models.PaymentTransaction, error) {
	update := bson.M{"$set": bson.M{
		"status":     status,
		"decided_by": deciderID,
		"decided_at": decidedAt,
		"updated_at": decidedAt,
	}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var tx models.PaymentTransaction
	err := s.c.FindOneAndUpdate(ctx, bson.M{"_id": id, "status": models.TxnPending}, update, opts).Decode(&tx)
	if errors.Is(err, mongo.ErrNoDocuments) {
		// Either the transaction does not exist or it is already decided;
		// a second read tells them apart.
		current, gerr := s.GetByID(ctx, id)
		if gerr != nil {
			return models.PaymentTransaction{}, gerr
		}
		return models.PaymentTransaction{}, apperr.InvalidState("transaction %s is already %s", id.Hex(), current.Status)
	}
	if err != nil {
		return models.PaymentTransaction{}, apperr.Transient("decide transaction", err)
	}
	return tx, nil
}
