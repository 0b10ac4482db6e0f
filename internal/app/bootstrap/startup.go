// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"

	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"

	"github.com/mwsociety/memberhub/internal/app/metrics"
	adminstore "github.com/mwsociety/memberhub/internal/app/store/admins"
	"github.com/mwsociety/memberhub/internal/app/store/audit"
	cardstore "github.com/mwsociety/memberhub/internal/app/store/cards"
	memberstore "github.com/mwsociety/memberhub/internal/app/store/members"
	studentstore "github.com/mwsociety/memberhub/internal/app/store/students"
	transactionstore "github.com/mwsociety/memberhub/internal/app/store/transactions"
	volunteerstore "github.com/mwsociety/memberhub/internal/app/store/volunteers"
	"github.com/mwsociety/memberhub/internal/app/system/approval"
	"github.com/mwsociety/memberhub/internal/app/system/auditlog"
	"github.com/mwsociety/memberhub/internal/app/system/auth"
	"github.com/mwsociety/memberhub/internal/app/system/mailer"
	"github.com/mwsociety/memberhub/internal/app/system/notify"
	"github.com/mwsociety/memberhub/internal/app/system/workers"
)

// services holds everything Startup builds that BuildHandler and Shutdown
// need later: the approval engine, the token manager, and the background
// workers that have to be stopped on the way down.
type services struct {
	tokens     *auth.TokenManager
	engine     *approval.Engine
	cascade    *approval.Cascade
	dispatcher *notify.Dispatcher
	sweeper    *workers.AccountSweeper
	auditLog   *auditlog.Logger
}

var svc services

// Startup runs one-time application initialization after DB connections
// and schema setup are complete, but before the HTTP handler is built.
// It registers metrics, seeds the bootstrap admin, and starts the
// notification dispatcher and the stale-account sweeper.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	metrics.Init()

	admins := adminstore.New(deps.MongoDatabase)
	if err := admins.EnsureSeed(ctx, appCfg.AdminEmail, appCfg.AdminPassword); err != nil {
		return err
	}

	svc.tokens = auth.NewTokenManager(appCfg.JWTSecret, appCfg.JWTTTL)

	svc.auditLog = auditlog.New(audit.New(deps.MongoDatabase), logger, auditlog.Config{
		Auth:     appCfg.AuditLogAuth,
		Decision: appCfg.AuditLogDecision,
	})

	mail := mailer.New(mailer.Config{
		Host:     appCfg.MailSMTPHost,
		Port:     appCfg.MailSMTPPort,
		User:     appCfg.MailSMTPUser,
		Pass:     appCfg.MailSMTPPass,
		From:     appCfg.MailFrom,
		FromName: appCfg.MailFromName,
	}, logger)

	svc.dispatcher = notify.New(logger, appCfg.NotifyQueueSize, appCfg.NotifyWorkers, mail)
	svc.dispatcher.Start()

	members := memberstore.New(deps.MongoDatabase)
	cards := cardstore.New(deps.MongoDatabase)
	students := studentstore.New(deps.MongoDatabase)
	volunteers := volunteerstore.New(deps.MongoDatabase)
	txns := transactionstore.New(deps.MongoDatabase)

	svc.cascade = approval.NewCascade(members, cards, logger)
	svc.engine = approval.NewEngine(txns, students, svc.cascade, svc.dispatcher, logger)

	svc.sweeper = workers.NewAccountSweeper(students, members, volunteers, logger,
		appCfg.SweepInterval, appCfg.SweepRetention)
	svc.sweeper.Start()

	return nil
}
