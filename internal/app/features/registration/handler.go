// internal/app/features/registration/handler.go
package registration

import (
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	memberstore "github.com/mwsociety/memberhub/internal/app/store/members"
	studentstore "github.com/mwsociety/memberhub/internal/app/store/students"
	volunteerstore "github.com/mwsociety/memberhub/internal/app/store/volunteers"
)

// Handler is the feature-level handler for self-registration.
//
// Accounts created here start active (unfinalized); they become permanent
// only when a related payment is approved, and the sweeper removes the
// ones that never pay.
type Handler struct {
	DB         *mongo.Database
	Log        *zap.Logger
	Members    *memberstore.Store
	Students   *studentstore.Store
	Volunteers *volunteerstore.Store
}

func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{
		DB:         db,
		Log:        logger,
		Members:    memberstore.New(db),
		Students:   studentstore.New(db),
		Volunteers: volunteerstore.New(db),
	}
}
