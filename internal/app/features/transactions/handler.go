// internal/app/features/transactions/handler.go
package transactions

import (
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	transactionstore "github.com/mwsociety/memberhub/internal/app/store/transactions"
	"github.com/mwsociety/memberhub/internal/app/system/approval"
	"github.com/mwsociety/memberhub/internal/app/system/auditlog"
)

// Handler is the feature-level handler for payment transactions.
// It holds the DB handle, stores, and logger provided by WAFFLE DBDeps / Startup.
type Handler struct {
	DB       *mongo.Database
	Log      *zap.Logger
	AuditLog *auditlog.Logger
	Txns     *transactionstore.Store
	Engine   *approval.Engine
}

func NewHandler(db *mongo.Database, engine *approval.Engine, audit *auditlog.Logger, logger *zap.Logger) *Handler {
	return &Handler{
		DB:       db,
		Log:      logger,
		AuditLog: audit,
		Txns:     transactionstore.New(db),
		Engine:   engine,
	}
}
