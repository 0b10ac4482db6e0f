// internal/app/system/indexes/indexes.go
package indexes

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

/*
EnsureAll is called at startup (and by test setup). Each ensure* function is
idempotent. Errors are aggregated so every problem is visible and startup can
fail fast.

The unique indexes here are load-bearing: duplicate-reference rejection,
member-per-email, card-per-member and every sequential code allocation all
rely on the database refusing the second writer.
*/
func EnsureAll(ctx context.Context, db *mongo.Database) error {
	var problems []string

	if err := ensureTransactions(ctx, db); err != nil {
		problems = append(problems, "transactions: "+err.Error())
	}
	if err := ensureMembers(ctx, db); err != nil {
		problems = append(problems, "members: "+err.Error())
	}
	if err := ensureMemberCards(ctx, db); err != nil {
		problems = append(problems, "member_cards: "+err.Error())
	}
	if err := ensureStudents(ctx, db); err != nil {
		problems = append(problems, "students: "+err.Error())
	}
	if err := ensureVolunteers(ctx, db); err != nil {
		problems = append(problems, "volunteer_accounts: "+err.Error())
	}
	if err := ensureAdminUsers(ctx, db); err != nil {
		problems = append(problems, "admin_users: "+err.Error())
	}

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

func uniqueIndex(name string, keys bson.D) mongo.IndexModel {
	return mongo.IndexModel{
		Keys:    keys,
		Options: options.Index().SetName(name).SetUnique(true),
	}
}

func plainIndex(name string, keys bson.D) mongo.IndexModel {
	return mongo.IndexModel{
		Keys:    keys,
		Options: options.Index().SetName(name),
	}
}

func ensureIndexSet(ctx context.Context, coll *mongo.Collection, models []mongo.IndexModel) error {
	start := time.Now()
	if _, err := coll.Indexes().CreateMany(ctx, models); err != nil {
		return fmt.Errorf("create indexes on %s: %w", coll.Name(), err)
	}
	zap.L().Debug("ensured indexes",
		zap.String("collection", coll.Name()),
		zap.Int("count", len(models)),
		zap.Duration("took", time.Since(start)))
	return nil
}

func ensureTransactions(ctx context.Context, db *mongo.Database) error {
	return ensureIndexSet(ctx, db.Collection("transactions"), []mongo.IndexModel{
		uniqueIndex("uniq_reference", bson.D{{Key: "reference", Value: 1}}),
		plainIndex("status_created", bson.D{{Key: "status", Value: 1}, {Key: "created_at", Value: -1}}),
	})
}

func ensureMembers(ctx context.Context, db *mongo.Database) error {
	return ensureIndexSet(ctx, db.Collection("members"), []mongo.IndexModel{
		uniqueIndex("uniq_email", bson.D{{Key: "email", Value: 1}}),
		uniqueIndex("uniq_membership_number", bson.D{{Key: "membership_number", Value: 1}}),
		plainIndex("active_created", bson.D{{Key: "is_active", Value: 1}, {Key: "created_at", Value: 1}}),
	})
}

func ensureMemberCards(ctx context.Context, db *mongo.Database) error {
	return ensureIndexSet(ctx, db.Collection("member_cards"), []mongo.IndexModel{
		uniqueIndex("uniq_member_id", bson.D{{Key: "member_id", Value: 1}}),
		uniqueIndex("uniq_card_number", bson.D{{Key: "card_number", Value: 1}}),
	})
}

func ensureStudents(ctx context.Context, db *mongo.Database) error {
	return ensureIndexSet(ctx, db.Collection("students"), []mongo.IndexModel{
		uniqueIndex("uniq_registration_number", bson.D{{Key: "registration_number", Value: 1}}),
		plainIndex("active_registered", bson.D{{Key: "is_active", Value: 1}, {Key: "registered_at", Value: 1}}),
	})
}

func ensureVolunteers(ctx context.Context, db *mongo.Database) error {
	return ensureIndexSet(ctx, db.Collection("volunteer_accounts"), []mongo.IndexModel{
		uniqueIndex("uniq_registration_number", bson.D{{Key: "registration_number", Value: 1}}),
		plainIndex("active_registered", bson.D{{Key: "is_active", Value: 1}, {Key: "registered_at", Value: 1}}),
	})
}

func ensureAdminUsers(ctx context.Context, db *mongo.Database) error {
	return ensureIndexSet(ctx, db.Collection("admin_users"), []mongo.IndexModel{
		uniqueIndex("uniq_email", bson.D{{Key: "email", Value: 1}}),
	})
}
