// internal/domain/models/volunteer.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// VolunteerAccount is a volunteer signup, subject to the same stale-account
// sweep as students and members.
type VolunteerAccount struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	FullName   string             `bson:"full_name" json:"full_name"`
	FullNameCI string             `bson:"full_name_ci" json:"full_name_ci"`
	Email      string             `bson:"email,omitempty" json:"email,omitempty"`
	Phone      string             `bson:"phone,omitempty" json:"phone,omitempty"`
	Skills     string             `bson:"skills,omitempty" json:"skills,omitempty"`

	RegistrationNumber string `bson:"registration_number" json:"registration_number"`

	IsActive     bool      `bson:"is_active" json:"is_active"`
	RegisteredAt time.Time `bson:"registered_at" json:"registered_at"`
	UpdatedAt    time.Time `bson:"updated_at" json:"updated_at"`
}
