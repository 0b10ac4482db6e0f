// internal/app/features/adminauth/handler.go
package adminauth

import (
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	adminstore "github.com/mwsociety/memberhub/internal/app/store/admins"
	"github.com/mwsociety/memberhub/internal/app/system/auditlog"
	"github.com/mwsociety/memberhub/internal/app/system/auth"
	"github.com/mwsociety/memberhub/internal/app/system/ratelimit"
)

// Handler is the feature-level handler for admin login.
type Handler struct {
	DB       *mongo.Database
	Log      *zap.Logger
	AuditLog *auditlog.Logger
	Admins   *adminstore.Store
	Tokens   *auth.TokenManager
	Limiter  *ratelimit.LoginLimiter
}

func NewHandler(db *mongo.Database, tokens *auth.TokenManager, audit *auditlog.Logger, logger *zap.Logger) *Handler {
	return &Handler{
		DB:       db,
		Log:      logger,
		AuditLog: audit,
		Admins:   adminstore.New(db),
		Tokens:   tokens,
		Limiter:  ratelimit.NewLoginLimiter(),
	}
}
