// internal/domain/models/transaction.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TransactionCategory classifies what a payment is for.
type TransactionCategory string

const (
	CategoryDonation   TransactionCategory = "donation"
	CategoryMembership TransactionCategory = "membership"
	CategoryFee        TransactionCategory = "fee"
	CategoryOther      TransactionCategory = "other"
)

// ValidCategory reports whether c is one of the known categories.
func ValidCategory(c TransactionCategory) bool {
	switch c {
	case CategoryDonation, CategoryMembership, CategoryFee, CategoryOther:
		return true
	}
	return false
}

// TransactionStatus is the lifecycle state of a payment transaction.
//
// pending is the only initial state; approved and rejected are terminal.
type TransactionStatus string

const (
	TxnPending  TransactionStatus = "pending"
	TxnApproved TransactionStatus = "approved"
	TxnRejected TransactionStatus = "rejected"
)

// PaymentTransaction is a submitted payment awaiting (or having received)
// an admin decision. Transactions are never deleted; the only mutation
// after submission is the pending -> approved|rejected transition.
type PaymentTransaction struct {
	ID       primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	Category TransactionCategory `bson:"category" json:"category"`

	// Reference is supplied by the payer's payment channel and must be
	// unique across all transactions (unique index on this field).
	Reference string `bson:"reference" json:"reference"`

	PayerName  string  `bson:"payer_name" json:"payer_name"`
	PayerEmail string  `bson:"payer_email,omitempty" json:"payer_email,omitempty"`
	PayerPhone string  `bson:"payer_phone" json:"payer_phone"`
	Amount     float64 `bson:"amount" json:"amount"`
	Purpose    string  `bson:"purpose,omitempty" json:"purpose,omitempty"`
	Method     string  `bson:"method,omitempty" json:"method,omitempty"`

	// Optional linkage to the account the payment is for.
	MemberID  *primitive.ObjectID `bson:"member_id,omitempty" json:"member_id,omitempty"`
	StudentID *primitive.ObjectID `bson:"student_id,omitempty" json:"student_id,omitempty"`

	Status TransactionStatus `bson:"status" json:"status"`

	// DecidedBy and DecidedAt record who made the terminal decision and
	// when, for approvals and rejections alike.
	DecidedBy string     `bson:"decided_by,omitempty" json:"decided_by,omitempty"`
	DecidedAt *time.Time `bson:"decided_at,omitempty" json:"decided_at,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
