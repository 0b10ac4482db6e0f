// internal/app/store/admins/store.go
package adminstore

import (
	"context"
	"errors"
	"time"

	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"

	"github.com/mwsociety/memberhub/internal/app/system/normalize"
	"github.com/mwsociety/memberhub/internal/domain/apperr"
	"github.com/mwsociety/memberhub/internal/domain/models"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("admin_users")}
}

// FindByEmail loads an admin by normalized email.
func (s *Store) FindByEmail(ctx context.Context, email string) (models.AdminUser, error) {
	var a models.AdminUser
	err := s.c.FindOne(ctx, bson.M{"email": normalize.Email(email)}).Decode(&a)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.AdminUser{}, apperr.NotFound("no admin with email %s", email)
	}
	if err != nil {
		return models.AdminUser{}, apperr.Transient("load admin", err)
	}
	return a, nil
}

// Authenticate verifies the password for the admin with the given email.
// Unknown email and wrong password return the same validation error, so
// the login endpoint does not leak which admins exist.
func (s *Store) Authenticate(ctx context.Context, email, password string) (models.AdminUser, error) {
	a, err := s.FindByEmail(ctx, email)
	if apperr.IsNotFound(err) {
		return models.AdminUser{}, apperr.Validation("invalid credentials")
	}
	if err != nil {
		return models.AdminUser{}, err
	}
	if bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte(password)) != nil {
		return models.AdminUser{}, apperr.Validation("invalid credentials")
	}
	return a, nil
}

// EnsureSeed creates the bootstrap admin if no admin with that email
// exists. Called at startup; a concurrent replica losing the insert race
// is fine.
func (s *Store) EnsureSeed(ctx context.Context, email, password string) error {
	email = normalize.Email(email)
	if email == "" || password == "" {
		return nil
	}
	if _, err := s.FindByEmail(ctx, email); err == nil {
		return nil
	} else if !apperr.IsNotFound(err) {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), 12)
	if err != nil {
		return apperr.Transient("hash seed password", err)
	}

	now := time.Now().UTC()
	a := models.AdminUser{
		ID:           primitive.NewObjectID(),
		FullName:     "Administrator",
		Email:        email,
		PasswordHash: string(hash),
		Role:         "admin",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if _, err := s.c.InsertOne(ctx, a); err != nil {
		if wafflemongo.IsDup(err) {
			return nil
		}
		return apperr.Transient("insert seed admin", err)
	}
	return nil
}
