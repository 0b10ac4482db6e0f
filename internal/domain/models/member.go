// internal/domain/models/member.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MemberStatus is the lifecycle state of a member account.
type MemberStatus string

const (
	MemberPending  MemberStatus = "pending"
	MemberApproved MemberStatus = "approved"
	MemberRejected MemberStatus = "rejected"
	MemberExpired  MemberStatus = "expired"
)

// Member is a registered member of the society.
//
// Members come into existence two ways: direct self-registration (pending,
// is_active=true until a payment is approved) or lazily through the
// provisioning cascade when a membership payment is approved for an email
// with no existing member (born approved and finalized).
//
// The member owns the reference to its identity card; the card does not
// own the member.
type Member struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	FullName   string             `bson:"full_name" json:"full_name"`
	FullNameCI string             `bson:"full_name_ci" json:"full_name_ci"` // lowercase, diacritics-stripped
	Email      string             `bson:"email" json:"email"`               // unique
	Phone      string             `bson:"phone,omitempty" json:"phone,omitempty"`
	City       string             `bson:"city,omitempty" json:"city,omitempty"`
	Address    string             `bson:"address,omitempty" json:"address,omitempty"`

	// MembershipNumber is unique and assigned exactly once, at creation.
	MembershipNumber string `bson:"membership_number" json:"membership_number"`

	Status     MemberStatus `bson:"status" json:"status"`
	IsVerified bool         `bson:"is_verified" json:"is_verified"`

	// IsActive marks a signup that has not been finalized yet. Approval
	// clears it; the account sweeper deletes stale records where it is
	// still set.
	IsActive bool `bson:"is_active" json:"is_active"`

	MemberSince  *time.Time          `bson:"member_since,omitempty" json:"member_since,omitempty"`
	MemberUntil  *time.Time          `bson:"member_until,omitempty" json:"member_until,omitempty"`
	CardID       *primitive.ObjectID `bson:"card_id,omitempty" json:"card_id,omitempty"`
	ApprovedBy   string              `bson:"approved_by,omitempty" json:"approved_by,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
