// internal/app/store/cards/store.go
package cardstore

import (
	"context"
	"errors"
	"time"

	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/mwsociety/memberhub/internal/app/system/sequence"
	"github.com/mwsociety/memberhub/internal/domain/apperr"
	"github.com/mwsociety/memberhub/internal/domain/models"
)

// CardNumberPrefix scopes the flat running card counter.
const CardNumberPrefix = "MWSS-CARD-"

// CardNumberWidth is the digit width of card numbers.
const CardNumberWidth = 6

type Store struct {
	c   *mongo.Collection
	seq *sequence.Allocator
}

func New(db *mongo.Database) *Store {
	return &Store{
		c:   db.Collection("member_cards"),
		seq: sequence.New(db),
	}
}

// FindByMemberID loads the card for a member.
func (s *Store) FindByMemberID(ctx context.Context, memberID primitive.ObjectID) (models.MemberCard, error) {
	var card models.MemberCard
	err := s.c.FindOne(ctx, bson.M{"member_id": memberID}).Decode(&card)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.MemberCard{}, apperr.NotFound("no card for member %s", memberID.Hex())
	}
	if err != nil {
		return models.MemberCard{}, apperr.Transient("load card", err)
	}
	return card, nil
}

// CreateOrFetch issues a card for the member, or returns the existing one.
// The bool result reports whether a new card was created.
//
// Display fields are denormalized from the member at generation time and the
// validity window is [issue date, issue date + 1 year]. The unique index on
// member_id guarantees at most one card per member no matter how many
// writers race; the unique card_number index drives allocation retries the
// same way membership numbers work.
func (s *Store) CreateOrFetch(ctx context.Context, member models.Member) (models.MemberCard, bool, error) {
	if card, err := s.FindByMemberID(ctx, member.ID); err == nil {
		return card, false, nil
	} else if !apperr.IsNotFound(err) {
		return models.MemberCard{}, false, err
	}

	var lastErr error
	for attempt := 0; attempt < sequence.MaxAttempts; attempt++ {
		number, err := s.seq.Next(ctx, "member_cards", "card_number", CardNumberPrefix, CardNumberWidth)
		if err != nil {
			return models.MemberCard{}, false, err
		}

		now := time.Now().UTC()
		issued := now.Truncate(24 * time.Hour)
		card := models.MemberCard{
			ID:         primitive.NewObjectID(),
			MemberID:   member.ID,
			CardNumber: number,
			FullName:   member.FullName,
			Email:      member.Email,
			Phone:      member.Phone,
			City:       member.City,
			Address:    member.Address,
			ValidFrom:  issued,
			ValidUntil: issued.AddDate(1, 0, 0),
			Generated:  true,
			CreatedAt:  now,
		}

		_, err = s.c.InsertOne(ctx, card)
		if err == nil {
			return card, true, nil
		}
		if !wafflemongo.IsDup(err) {
			return models.MemberCard{}, false, apperr.Transient("insert card", err)
		}
		lastErr = err

		// Duplicate member_id means another writer issued the card first.
		existing, ferr := s.FindByMemberID(ctx, member.ID)
		if ferr == nil {
			return existing, false, nil
		}
		if !apperr.IsNotFound(ferr) {
			return models.MemberCard{}, false, ferr
		}
		// Duplicate card_number; draw the next number and retry.
	}
	return models.MemberCard{}, false, apperr.Transient("card number allocation exhausted retries", lastErr)
}
