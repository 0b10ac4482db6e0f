// internal/app/system/validators/validators.go
package validators

import (
	"context"
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// EnsureAll creates collections (if missing) and tries to attach JSON-Schema
// validators. On servers that don't support collMod/validators (e.g. some
// DocumentDB versions), we log and skip gracefully.
func EnsureAll(ctx context.Context, db *mongo.Database) error {
	var problems []string

	// helper: ensure collection exists (with truthful logging) and then validator (if provided)
	ensure := func(coll string, schema bson.M) {
		if _, err := ensureCollection(ctx, db, coll); err != nil {
			problems = append(problems, coll+": "+err.Error())
			return
		}
		if schema == nil {
			return
		}
		if err := setValidator(ctx, db, coll, schema); err != nil {
			// DocumentDB or other deployments may not support collMod/validators.
			if isNoSuchCommand(err) || isNotImplemented(err) {
				zap.L().Info("validator skipped (unsupported)", zap.String("collection", coll))
				return
			}
			problems = append(problems, coll+": "+err.Error())
		}
	}

	// Core collections this app uses
	ensure("transactions", transactionsSchema())
	ensure("members", membersSchema())
	ensure("member_cards", memberCardsSchema())
	ensure("students", studentsSchema())
	ensure("volunteer_accounts", volunteersSchema())
	ensure("admin_users", adminUsersSchema())

	// Audit events don't strictly need a validator; we still ensure the collection exists.
	ensure("audit_events", nil)

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

/* ---------------------- collection helpers & logging ---------------------- */

// collectionExists returns true when <name> already exists.
// Uses ListCollectionNames to avoid "created collection" log when it didn't.
func collectionExists(ctx context.Context, db *mongo.Database, name string) (bool, error) {
	names, err := db.ListCollectionNames(ctx, bson.M{})
	if err != nil {
		return false, err
	}
	for _, n := range names {
		if n == name {
			return true, nil
		}
	}
	return false, nil
}

// ensureCollection idempotently makes sure <name> exists.
// Returns created==true only if we actually created it.
func ensureCollection(ctx context.Context, db *mongo.Database, name string) (created bool, err error) {
	exists, listErr := collectionExists(ctx, db, name)
	if listErr == nil && exists {
		zap.L().Info("collection exists", zap.String("collection", name))
		return false, nil
	}
	// If listing failed, fall back to create-and-handle-race.
	if err := db.CreateCollection(ctx, name); err != nil {
		// NamespaceExists / already exists is fine (race or prior run).
		if isNamespaceExistsErr(err) {
			zap.L().Info("collection exists", zap.String("collection", name))
			return false, nil
		}
		zap.L().Warn("createCollection failed", zap.String("collection", name), zap.Error(err))
		return false, err
	}
	zap.L().Info("created collection", zap.String("collection", name))
	return true, nil
}

/* ------------------------------ validators ------------------------------- */

func setValidator(ctx context.Context, db *mongo.Database, name string, validator bson.M) error {
	cmd := bson.D{
		{Key: "collMod", Value: name},
		{Key: "validator", Value: validator},
		{Key: "validationLevel", Value: "moderate"},
		{Key: "validationAction", Value: "error"},
	}
	var out bson.M
	if err := db.RunCommand(ctx, cmd).Decode(&out); err != nil {
		return err
	}
	zap.L().Info("validator ensured", zap.String("collection", name))
	return nil
}

/* ------------------------- error helpers ------------------------- */

func isNamespaceExistsErr(err error) bool {
	if err == nil {
		return false
	}
	var ce mongo.CommandError
	if errors.As(err, &ce) && (ce.Code == 48 || strings.Contains(strings.ToLower(ce.Message), "already exists")) {
		return true
	}
	s := strings.ToLower(err.Error())
	return strings.Contains(s, "already exists") || strings.Contains(s, "namespace exists")
}

func isNoSuchCommand(err error) bool {
	if err == nil {
		return false
	}
	var ce mongo.CommandError
	if errors.As(err, &ce) && (ce.Code == 59 || strings.Contains(strings.ToLower(ce.Message), "no such command")) {
		return true
	}
	return strings.Contains(strings.ToLower(err.Error()), "no such command")
}

func isNotImplemented(err error) bool {
	if err == nil {
		return false
	}
	var ce mongo.CommandError
	if errors.As(err, &ce) && (ce.Code == 115 ||
		strings.Contains(strings.ToLower(ce.Message), "not implemented") ||
		strings.Contains(strings.ToLower(ce.Message), "not supported")) {
		return true
	}
	s := strings.ToLower(err.Error())
	return strings.Contains(s, "not implemented") || strings.Contains(s, "not supported")
}

/* ------------------------- JSON-Schema docs ---------------------- */

func transactionsSchema() bson.M {
	return bson.M{
		"$jsonSchema": bson.M{
			"bsonType": "object",
			"required": bson.A{"category", "reference", "payer_name", "amount", "status"},
			"properties": bson.M{
				"category":    bson.M{"enum": bson.A{"donation", "membership", "fee", "other"}},
				"reference":   bson.M{"bsonType": "string", "minLength": 1, "pattern": ".*\\S.*"},
				"payer_name":  bson.M{"bsonType": "string", "minLength": 1, "pattern": ".*\\S.*"},
				"payer_email": bson.M{"bsonType": "string"},
				"payer_phone": bson.M{"bsonType": "string"},
				"amount":      bson.M{"bsonType": bson.A{"double", "int", "long", "decimal"}, "minimum": 0},
				"status":      bson.M{"enum": bson.A{"pending", "approved", "rejected"}},
				"member_id":   bson.M{"bsonType": "objectId"},
				"student_id":  bson.M{"bsonType": "objectId"},
			},
		},
	}
}

func membersSchema() bson.M {
	return bson.M{
		"$jsonSchema": bson.M{
			"bsonType": "object",
			"required": bson.A{"full_name", "email", "membership_number", "status"},
			"properties": bson.M{
				"full_name":         bson.M{"bsonType": "string", "minLength": 1, "pattern": ".*\\S.*"},
				"full_name_ci":      bson.M{"bsonType": "string"},
				"email":             bson.M{"bsonType": "string", "minLength": 1},
				"membership_number": bson.M{"bsonType": "string", "minLength": 1},
				"status":            bson.M{"enum": bson.A{"pending", "approved", "rejected", "expired"}},
				"is_verified":       bson.M{"bsonType": "bool"},
				"is_active":         bson.M{"bsonType": "bool"},
				"card_id":           bson.M{"bsonType": "objectId"},
			},
		},
	}
}

func memberCardsSchema() bson.M {
	return bson.M{
		"$jsonSchema": bson.M{
			"bsonType": "object",
			"required": bson.A{"member_id", "card_number", "full_name", "valid_from", "valid_until"},
			"properties": bson.M{
				"member_id":   bson.M{"bsonType": "objectId"},
				"card_number": bson.M{"bsonType": "string", "minLength": 1},
				"full_name":   bson.M{"bsonType": "string", "minLength": 1},
				"valid_from":  bson.M{"bsonType": "date"},
				"valid_until": bson.M{"bsonType": "date"},
				"generated":   bson.M{"bsonType": "bool"},
			},
		},
	}
}

func studentsSchema() bson.M {
	return bson.M{
		"$jsonSchema": bson.M{
			"bsonType": "object",
			"required": bson.A{"full_name", "registration_number", "registered_at"},
			"properties": bson.M{
				"full_name":           bson.M{"bsonType": "string", "minLength": 1, "pattern": ".*\\S.*"},
				"registration_number": bson.M{"bsonType": "string", "minLength": 1},
				"is_active":           bson.M{"bsonType": "bool"},
				"registered_at":       bson.M{"bsonType": "date"},
			},
		},
	}
}

func volunteersSchema() bson.M {
	return bson.M{
		"$jsonSchema": bson.M{
			"bsonType": "object",
			"required": bson.A{"full_name", "registration_number", "registered_at"},
			"properties": bson.M{
				"full_name":           bson.M{"bsonType": "string", "minLength": 1, "pattern": ".*\\S.*"},
				"registration_number": bson.M{"bsonType": "string", "minLength": 1},
				"is_active":           bson.M{"bsonType": "bool"},
				"registered_at":       bson.M{"bsonType": "date"},
			},
		},
	}
}

func adminUsersSchema() bson.M {
	return bson.M{
		"$jsonSchema": bson.M{
			"bsonType": "object",
			"required": bson.A{"email", "password_hash", "role"},
			"properties": bson.M{
				"email":         bson.M{"bsonType": "string", "minLength": 1},
				"password_hash": bson.M{"bsonType": "string", "minLength": 1},
				"role":          bson.M{"enum": bson.A{"admin"}},
			},
		},
	}
}
