// internal/app/store/volunteers/store.go
package volunteerstore

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

// RegistrationBase prefixes volunteer registration numbers; "V" plus the
// registration year is appended. Volunteers count independently of
// students even in the same year.
const RegistrationBase = "MWSS-V"

// RegistrationWidth is the digit width of the per-year counter.
const RegistrationWidth = 4

type Store struct {
	c   *mongo.Collection
	seq *sequence.Allocator
}

func New(db *mongo.Database) *Store {
	return &Store{
		c:   db.Collection("volunteer_accounts"),
		seq: sequence.New(db),
	}
}

// Register inserts a new volunteer account with a registration number for
// the current year, retrying allocation on collision.
func (s *Store) Register(ctx context.Context, v models.VolunteerAccount) (models.VolunteerAccount, error) {
	v.FullName = normalize.Name(v.FullName)
	v.FullNameCI = text.Fold(v.FullName)
	v.Email = normalize.Email(v.Email)

	now := time.Now().UTC()
	prefix := fmt.Sprintf("%s%d", RegistrationBase, now.Year())

	var lastErr error
	for attempt := 0; attempt < sequence.MaxAttempts; attempt++ {
		number, err := s.seq.Next(ctx, "volunteer_accounts", "registration_number", prefix, RegistrationWidth)
		if err != nil {
			return models.VolunteerAccount{}, err
		}

		v.ID = primitive.NewObjectID()
		v.RegistrationNumber = number
		v.IsActive = true
		v.RegisteredAt = now
		v.UpdatedAt = now

		_, err = s.c.InsertOne(ctx, v)
		if err == nil {
			return v, nil
		}
		if !wafflemongo.IsDup(err) {
			return models.VolunteerAccount{}, apperr.Transient("insert volunteer", err)
		}
		lastErr = err
	}
	return models.VolunteerAccount{}, apperr.Transient("registration number allocation exhausted retries", lastErr)
}

// GetByID loads a volunteer account.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.VolunteerAccount, error) {
	var v models.VolunteerAccount
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&v)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.VolunteerAccount{}, apperr.NotFound("volunteer %s not found", id.Hex())
	}
	if err != nil {
		return models.VolunteerAccount{}, apperr.Transient("load volunteer", err)
	}
	return v, nil
}

// DeleteStaleActive removes volunteer accounts registered before cutoff
// that are still flagged active. Returns the number of documents deleted.
func (s *Store) DeleteStaleActive(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := s.c.DeleteMany(ctx, bson.M{
		"is_active":     true,
		"registered_at": bson.M{"$lt": cutoff},
	})
	if err != nil {
		return 0, apperr.Transient("delete stale volunteers", err)
	}
	return res.DeletedCount, nil
}
