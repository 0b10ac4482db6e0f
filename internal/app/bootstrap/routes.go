// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	"github.com/dalemusser/waffle/config"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	adminauthfeature "github.com/mwsociety/memberhub/internal/app/features/adminauth"
	cardsfeature "github.com/mwsociety/memberhub/internal/app/features/cards"
	healthfeature "github.com/mwsociety/memberhub/internal/app/features/health"
	membersfeature "github.com/mwsociety/memberhub/internal/app/features/members"
	registrationfeature "github.com/mwsociety/memberhub/internal/app/features/registration"
	transactionsfeature "github.com/mwsociety/memberhub/internal/app/features/transactions"
	"github.com/mwsociety/memberhub/internal/app/metrics"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// the Startup hook have completed, so the approval engine and token
// manager built there are ready to be wired into the feature routers.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	r := chi.NewRouter()

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.MongoClient, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	// Prometheus metrics
	r.Handle("/metrics", metrics.Handler())

	// Admin authentication
	authHandler := adminauthfeature.NewHandler(deps.MongoDatabase, svc.tokens, svc.auditLog, logger)
	r.Mount("/auth", adminauthfeature.Routes(authHandler))

	// Public self-registration
	regHandler := registrationfeature.NewHandler(deps.MongoDatabase, logger)
	r.Mount("/register", registrationfeature.Routes(regHandler))

	// Payment transactions: public submission, admin review and decisions
	txnHandler := transactionsfeature.NewHandler(deps.MongoDatabase, svc.engine, svc.auditLog, logger)
	r.Mount("/transactions", transactionsfeature.Routes(txnHandler, svc.tokens))

	// Member lookup (admin)
	membersHandler := membersfeature.NewHandler(deps.MongoDatabase, logger)
	r.Mount("/members", membersfeature.Routes(membersHandler, svc.tokens))

	// Identity cards (admin)
	cardsHandler := cardsfeature.NewHandler(deps.MongoDatabase, svc.cascade, svc.auditLog, logger)
	r.Mount("/cards", cardsfeature.Routes(cardsHandler, svc.tokens))

	return r, nil
}
