// internal/app/system/sequence/sequence.go

// Package sequence allocates the next human-readable code for a
// prefix-scoped counter (registration numbers, membership numbers, card
// numbers).
//
// Each counter is a document in the counters collection, advanced with an
// atomic $inc, so concurrent callers receive distinct candidates and the
// counter never moves backwards. Deleting the record that holds a code
// does not free the code: sweeps and manual cleanups leave gaps, they
// never cause reuse.
//
// The unique index on the owning record's code field is still the final
// arbiter. A collision can only come from a record whose code was written
// out of band (imports, fixtures); the caller retries the insert, and
// because every Next call advances the counter, retries walk past the
// occupied numbers instead of recomputing the same candidate.
package sequence

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mwsociety/memberhub/internal/domain/apperr"
)

// MaxAttempts bounds the insert-retry loop of callers.
const MaxAttempts = 5

// Allocator advances named counters stored in the counters collection.
type Allocator struct {
	counters *mongo.Collection
}

// New returns an Allocator over db.
func New(db *mongo.Database) *Allocator {
	return &Allocator{counters: db.Collection("counters")}
}

// Next advances the counter identified by (collection, field, prefix) and
// returns its new value as a code: prefix followed by the counter value
// zero-padded to width digits. Values exceeding the width widen the
// number rather than wrap.
func (a *Allocator) Next(ctx context.Context, collection, field, prefix string, width int) (string, error) {
	key := collection + "." + field + "." + prefix
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var doc struct {
		Seq int64 `bson:"seq"`
	}
	err := a.counters.FindOneAndUpdate(ctx,
		bson.M{"_id": key},
		bson.M{"$inc": bson.M{"seq": 1}},
		opts).Decode(&doc)
	if err != nil {
		return "", apperr.Transient("advance "+key+" counter", err)
	}
	return Format(prefix, width, doc.Seq), nil
}

// Format renders a code: prefix + n zero-padded to width digits.
func Format(prefix string, width int, n int64) string {
	return fmt.Sprintf("%s%0*d", prefix, width, n)
}
