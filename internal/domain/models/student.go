// internal/domain/models/student.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Student is a student-welfare account.
//
// IsActive stays true until a fee payment for the student is approved.
// Stale active students past the retention window are removed by the
// account sweeper.
type Student struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	FullName   string             `bson:"full_name" json:"full_name"`
	FullNameCI string             `bson:"full_name_ci" json:"full_name_ci"`
	Email      string             `bson:"email,omitempty" json:"email,omitempty"`
	Phone      string             `bson:"phone,omitempty" json:"phone,omitempty"`
	Guardian   string             `bson:"guardian,omitempty" json:"guardian,omitempty"`
	School     string             `bson:"school,omitempty" json:"school,omitempty"`

	// RegistrationNumber is unique, prefixed with the registration year.
	RegistrationNumber string `bson:"registration_number" json:"registration_number"`

	IsActive     bool      `bson:"is_active" json:"is_active"`
	RegisteredAt time.Time `bson:"registered_at" json:"registered_at"`
	UpdatedAt    time.Time `bson:"updated_at" json:"updated_at"`
}
