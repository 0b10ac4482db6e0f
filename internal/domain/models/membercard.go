// internal/domain/models/membercard.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MemberCard is a member's identity card.
//
// At most one card exists per member (unique index on member_id). Display
// fields are denormalized copies of the member's profile captured at
// generation time, so later profile edits do not alter an issued card.
type MemberCard struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	MemberID primitive.ObjectID `bson:"member_id" json:"member_id"` // unique

	// CardNumber is unique and assigned exactly once, at generation.
	CardNumber string `bson:"card_number" json:"card_number"`

	FullName string `bson:"full_name" json:"full_name"`
	Email    string `bson:"email" json:"email"`
	Phone    string `bson:"phone,omitempty" json:"phone,omitempty"`
	City     string `bson:"city,omitempty" json:"city,omitempty"`
	Address  string `bson:"address,omitempty" json:"address,omitempty"`

	ValidFrom  time.Time `bson:"valid_from" json:"valid_from"`
	ValidUntil time.Time `bson:"valid_until" json:"valid_until"`
	Generated  bool      `bson:"generated" json:"generated"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}
