// internal/app/features/cards/handler.go
package cards

import (
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	cardstore "github.com/mwsociety/memberhub/internal/app/store/cards"
	memberstore "github.com/mwsociety/memberhub/internal/app/store/members"
	"github.com/mwsociety/memberhub/internal/app/system/approval"
	"github.com/mwsociety/memberhub/internal/app/system/auditlog"
)

// Handler is the feature-level handler for member identity cards.
type Handler struct {
	DB       *mongo.Database
	Log      *zap.Logger
	AuditLog *auditlog.Logger
	Cards    *cardstore.Store
	Members  *memberstore.Store
	Cascade  *approval.Cascade
}

func NewHandler(db *mongo.Database, cascade *approval.Cascade, audit *auditlog.Logger, logger *zap.Logger) *Handler {
	return &Handler{
		DB:       db,
		Log:      logger,
		AuditLog: audit,
		Cards:    cardstore.New(db),
		Members:  memberstore.New(db),
		Cascade:  cascade,
	}
}
