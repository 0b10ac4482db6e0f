// internal/testutil/fixtures.go
package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/mwsociety/memberhub/internal/domain/models"
)

// Fixtures provides helper methods for creating test data.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a new Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

// CreatePendingTransaction inserts a pending membership transaction.
func (f *Fixtures) CreatePendingTransaction(ctx context.Context, reference, email string) models.PaymentTransaction {
	f.t.Helper()

	now := time.Now().UTC()
	tx := models.PaymentTransaction{
		ID:         primitive.NewObjectID(),
		Category:   models.CategoryMembership,
		Reference:  reference,
		PayerName:  "Test Payer",
		PayerEmail: email,
		PayerPhone: "+10000000000",
		Amount:     500,
		Status:     models.TxnPending,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if _, err := f.db.Collection("transactions").InsertOne(ctx, tx); err != nil {
		f.t.Fatalf("failed to create test transaction: %v", err)
	}
	return tx
}

// CreateMember inserts a member with the given email and membership number.
func (f *Fixtures) CreateMember(ctx context.Context, name, email, membershipNumber string) models.Member {
	f.t.Helper()

	now := time.Now().UTC()
	m := models.Member{
		ID:               primitive.NewObjectID(),
		FullName:         name,
		FullNameCI:       text.Fold(name),
		Email:            email,
		MembershipNumber: membershipNumber,
		Status:           models.MemberApproved,
		IsVerified:       true,
		IsActive:         false,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if _, err := f.db.Collection("members").InsertOne(ctx, m); err != nil {
		f.t.Fatalf("failed to create test member: %v", err)
	}
	return m
}

// CreateStudent inserts a student registered at the given time.
func (f *Fixtures) CreateStudent(ctx context.Context, name, regNumber string, registeredAt time.Time, active bool) models.Student {
	f.t.Helper()

	s := models.Student{
		ID:                 primitive.NewObjectID(),
		FullName:           name,
		FullNameCI:         text.Fold(name),
		RegistrationNumber: regNumber,
		IsActive:           active,
		RegisteredAt:       registeredAt,
		UpdatedAt:          registeredAt,
	}
	if _, err := f.db.Collection("students").InsertOne(ctx, s); err != nil {
		f.t.Fatalf("failed to create test student: %v", err)
	}
	return s
}

// CreateVolunteer inserts a volunteer account registered at the given time.
func (f *Fixtures) CreateVolunteer(ctx context.Context, name, regNumber string, registeredAt time.Time, active bool) models.VolunteerAccount {
	f.t.Helper()

	v := models.VolunteerAccount{
		ID:                 primitive.NewObjectID(),
		FullName:           name,
		FullNameCI:         text.Fold(name),
		RegistrationNumber: regNumber,
		IsActive:           active,
		RegisteredAt:       registeredAt,
		UpdatedAt:          registeredAt,
	}
	if _, err := f.db.Collection("volunteer_accounts").InsertOne(ctx, v); err != nil {
		f.t.Fatalf("failed to create test volunteer: %v", err)
	}
	return v
}
