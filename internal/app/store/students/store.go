// internal/app/store/students/store.go
package studentstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/mwsociety/memberhub/internal/app/system/normalize"
	"github.com/mwsociety/memberhub/internal/app/system/sequence"
	"github.com/mwsociety/memberhub/internal/domain/apperr"
	"github.com/mwsociety/memberhub/internal/domain/models"
)

// RegistrationBase prefixes student registration numbers; the registration
// year is appended, so each year's counter starts over.
const RegistrationBase = "MWSS"

// RegistrationWidth is the digit width of the per-year counter.
const RegistrationWidth = 4

type Store struct {
	c   *mongo.Collection
	seq *sequence.Allocator
}

func New(db *mongo.Database) *Store {
	return &Store{
		c:   db.Collection("students"),
		seq: sequence.New(db),
	}
}

// Register inserts a new student with a freshly allocated registration
// number for the current year. Retries on allocation collisions the same
// way membership numbers do.
func (s *Store) Register(ctx context.Context, st models.Student) (models.Student, error) {
	st.FullName = normalize.Name(st.FullName)
	st.FullNameCI = text.Fold(st.FullName)
	st.Email = normalize.Email(st.Email)

	now := time.Now().UTC()
	prefix := fmt.Sprintf("%s%d", RegistrationBase, now.Year())

	var lastErr error
	for attempt := 0; attempt < sequence.MaxAttempts; attempt++ {
		number, err := s.seq.Next(ctx, "students", "registration_number", prefix, RegistrationWidth)
		if err != nil {
			return models.Student{}, err
		}

		st.ID = primitive.NewObjectID()
		st.RegistrationNumber = number
		st.IsActive = true
		st.RegisteredAt = now
		st.UpdatedAt = now

		_, err = s.c.InsertOne(ctx, st)
		if err == nil {
			return st, nil
		}
		if !wafflemongo.IsDup(err) {
			return models.Student{}, apperr.Transient("insert student", err)
		}
		lastErr = err
	}
	return models.Student{}, apperr.Transient("registration number allocation exhausted retries", lastErr)
}

// GetByID loads a student.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Student, error) {
	var st models.Student
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&st)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Student{}, apperr.NotFound("student %s not found", id.Hex())
	}
	if err != nil {
		return models.Student{}, apperr.Transient("load student", err)
	}
	return st, nil
}

// Finalize clears the stale-signup flag once a fee payment is approved.
// Idempotent.
func (s *Store) Finalize(ctx context.Context, id primitive.ObjectID) error {
	_, err := s.c.UpdateByID(ctx, id, bson.M{"$set": bson.M{
		"is_active":  false,
		"updated_at": time.Now().UTC(),
	}})
	if err != nil {
		return apperr.Transient("finalize student", err)
	}
	return nil
}

// DeleteStaleActive removes students registered before cutoff that are
// still flagged active. Returns the number of documents deleted.
func (s *Store) DeleteStaleActive(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := s.c.DeleteMany(ctx, bson.M{
		"is_active":     true,
		"registered_at": bson.M{"$lt": cutoff},
	})
	if err != nil {
		return 0, apperr.Transient("delete stale students", err)
	}
	return res.DeletedCount, nil
}
