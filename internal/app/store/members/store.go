// internal/app/store/members/store.go
package memberstore

import (
	"context"
	"errors"
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

// MembershipNumberPrefix scopes the flat running membership counter.
const MembershipNumberPrefix = "MWSS-M"

// MembershipNumberWidth is the minimum digit width; the number widens
// past 9999 members instead of wrapping.
const MembershipNumberWidth = 4

type Store struct {
	c   *mongo.Collection
	seq *sequence.Allocator
}

func New(db *mongo.Database) *Store {
	return &Store{
		c:   db.Collection("members"),
		seq: sequence.New(db),
	}
}

// FindByEmail loads a member by normalized email.
func (s *Store) FindByEmail(ctx context.Context, email string) (models.Member, error) {
	var m models.Member
	err := s.c.FindOne(ctx, bson.M{"email": normalize.Email(email)}).Decode(&m)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Member{}, apperr.NotFound("no member with email %s", email)
	}
	if err != nil {
		return models.Member{}, apperr.Transient("load member by email", err)
	}
	return m, nil
}

// GetByID loads a member.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Member, error) {
	var m models.Member
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&m)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Member{}, apperr.NotFound("member %s not found", id.Hex())
	}
	if err != nil {
		return models.Member{}, apperr.Transient("load member", err)
	}
	return m, nil
}

// FindByMembershipNumber loads a member by its assigned membership number.
func (s *Store) FindByMembershipNumber(ctx context.Context, number string) (models.Member, error) {
	var m models.Member
	err := s.c.FindOne(ctx, bson.M{"membership_number": number}).Decode(&m)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Member{}, apperr.NotFound("no member with number %s", number)
	}
	if err != nil {
		return models.Member{}, apperr.Transient("load member by number", err)
	}
	return m, nil
}

// CreateOrFetch inserts m with a freshly allocated membership number, or
// returns the existing member when one already holds m's email. The bool
// result reports whether a new member was created.
//
// Both unique indexes drive the loop: a duplicate on email means another
// writer created this member first (fetch and return it); a duplicate on
// membership_number means the candidate was already taken by a number
// written outside the allocator, and the next attempt draws a fresh one.
func (s *Store) CreateOrFetch(ctx context.Context, m models.Member) (models.Member, bool, error) {
	m.Email = normalize.Email(m.Email)
	m.FullName = normalize.Name(m.FullName)
	m.FullNameCI = text.Fold(m.FullName)

	if existing, err := s.FindByEmail(ctx, m.Email); err == nil {
		return existing, false, nil
	} else if !apperr.IsNotFound(err) {
		return models.Member{}, false, err
	}

	var lastErr error
	for attempt := 0; attempt < sequence.MaxAttempts; attempt++ {
		number, err := s.seq.Next(ctx, "members", "membership_number", MembershipNumberPrefix, MembershipNumberWidth)
		if err != nil {
			return models.Member{}, false, err
		}

		now := time.Now().UTC()
		m.ID = primitive.NewObjectID()
		m.MembershipNumber = number
		m.CreatedAt = now
		m.UpdatedAt = now

		_, err = s.c.InsertOne(ctx, m)
		if err == nil {
			return m, true, nil
		}
		if !wafflemongo.IsDup(err) {
			return models.Member{}, false, apperr.Transient("insert member", err)
		}
		lastErr = err

		// Was the collision on the email? Then the member exists now.
		existing, ferr := s.FindByEmail(ctx, m.Email)
		if ferr == nil {
			return existing, false, nil
		}
		if !apperr.IsNotFound(ferr) {
			return models.Member{}, false, ferr
		}
		// Collision was on membership_number; draw the next number.
	}
	return models.Member{}, false, apperr.Transient("membership number allocation exhausted retries", lastErr)
}

// LinkCard records the card reference on the member. The member owns this
// reference; setting it twice with the same card id is a no-op.
func (s *Store) LinkCard(ctx context.Context, memberID, cardID primitive.ObjectID) error {
	_, err := s.c.UpdateByID(ctx, memberID, bson.M{"$set": bson.M{
		"card_id":    cardID,
		"updated_at": time.Now().UTC(),
	}})
	if err != nil {
		return apperr.Transient("link card to member", err)
	}
	return nil
}

// Finalize marks a member as approved and no longer subject to the stale
// account sweep. Idempotent.
func (s *Store) Finalize(ctx context.Context, memberID primitive.ObjectID, approverID string) error {
	_, err := s.c.UpdateByID(ctx, memberID, bson.M{"$set": bson.M{
		"is_active":   false,
		"status":      models.MemberApproved,
		"is_verified": true,
		"approved_by": approverID,
		"updated_at":  time.Now().UTC(),
	}})
	if err != nil {
		return apperr.Transient("finalize member", err)
	}
	return nil
}

// Register inserts a self-registered, not-yet-finalized member. The same
// allocation loop as CreateOrFetch applies, but an existing email is a
// validation error rather than a fetch, since a person registering twice
// is a client mistake, not a race to converge.
func (s *Store) Register(ctx context.Context, m models.Member) (models.Member, error) {
	m.Status = models.MemberPending
	m.IsActive = true
	m.IsVerified = false

	created, ok, err := s.CreateOrFetch(ctx, m)
	if err != nil {
		return models.Member{}, err
	}
	if !ok {
		return models.Member{}, apperr.Validation("a member with email %s already exists", m.Email)
	}
	return created, nil
}

// DeleteStaleActive removes members registered before cutoff that were
// never finalized. Returns the number of documents deleted.
func (s *Store) DeleteStaleActive(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := s.c.DeleteMany(ctx, bson.M{
		"is_active":  true,
		"created_at": bson.M{"$lt": cutoff},
	})
	if err != nil {
		return 0, apperr.Transient("delete stale members", err)
	}
	return res.DeletedCount, nil
}

// CountAll returns the total number of members.
func (s *Store) CountAll(ctx context.Context) (int64, error) {
	n, err := s.c.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, apperr.Transient("count members", err)
	}
	return n, nil
}
