// internal/app/bootstrap/config.go
package bootstrap

import (
	"fmt"
	"time"

	"github.com/dalemusser/waffle/config"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.uber.org/zap"
)

// appConfigKeys defines the configuration keys for MemberHub.
// These are loaded via WAFFLE's config system with support for:
//   - Config files: mongo_uri, jwt_secret, etc.
//   - Environment variables: MEMBERHUB_MONGO_URI, MEMBERHUB_JWT_SECRET, etc.
//   - Command-line flags: --mongo_uri, --jwt_secret, etc.
var appConfigKeys = []config.AppKey{
	{Name: "mongo_uri", Default: "mongodb://localhost:27017", Desc: "MongoDB connection URI"},
	{Name: "mongo_database", Default: "memberhub", Desc: "MongoDB database name"},
	{Name: "mongo_max_pool_size", Default: 100, Desc: "MongoDB max connection pool size (default: 100)"},
	{Name: "mongo_min_pool_size", Default: 10, Desc: "MongoDB min connection pool size (default: 10)"},

	// Account sweeper
	{Name: "sweep_interval", Default: "1h", Desc: "How often the stale-account sweep runs (e.g., 1h, 30m)"},
	{Name: "sweep_retention", Default: "720h", Desc: "How long an unpaid signup is kept before the sweep removes it (default 30 days)"},

	// Notification dispatcher
	{Name: "notify_queue_size", Default: 256, Desc: "Notification event queue size"},
	{Name: "notify_workers", Default: 2, Desc: "Notification delivery workers"},

	// Email/SMTP configuration
	{Name: "mail_smtp_host", Default: "localhost", Desc: "SMTP server host"},
	{Name: "mail_smtp_port", Default: 1025, Desc: "SMTP server port"},
	{Name: "mail_smtp_user", Default: "", Desc: "SMTP username"},
	{Name: "mail_smtp_pass", Default: "", Desc: "SMTP password"},
	{Name: "mail_from", Default: "noreply@mwsociety.org", Desc: "From email address"},
	{Name: "mail_from_name", Default: "MemberHub", Desc: "From display name"},

	// Admin authentication
	{Name: "jwt_secret", Default: "dev-only-change-me-please-0123456789ABCDEF", Desc: "Admin token signing secret (must be strong in production)"},
	{Name: "jwt_ttl", Default: "12h", Desc: "Admin token lifetime (e.g., 12h, 30m)"},
	{Name: "admin_email", Default: "", Desc: "Seed admin email (created on startup if missing)"},
	{Name: "admin_password", Default: "", Desc: "Seed admin password"},

	// Audit logging settings
	{Name: "audit_log_auth", Default: "all", Desc: "Auth event logging: 'all' (db+log), 'db', 'log', or 'off'"},
	{Name: "audit_log_decision", Default: "all", Desc: "Decision event logging: 'all' (db+log), 'db', 'log', or 'off'"},
}

// LoadConfig loads WAFFLE core config and app-specific config.
//
// It is called early in startup so that both WAFFLE and the app have
// access to configuration before any backends or handlers are built.
//
// WAFFLE's config.LoadWithAppConfig handles:
//   - Loading from .env files
//   - Loading from config.yaml/json/toml files
//   - Reading environment variables (WAFFLE_* for core, MEMBERHUB_* for app)
//   - Parsing command-line flags
//   - Merging with precedence: flags > env > files > defaults
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, "MEMBERHUB", appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	appCfg := AppConfig{
		MongoURI:         appValues.String("mongo_uri"),
		MongoDatabase:    appValues.String("mongo_database"),
		MongoMaxPoolSize: uint64(appValues.Int("mongo_max_pool_size")),
		MongoMinPoolSize: uint64(appValues.Int("mongo_min_pool_size")),

		// Account sweeper
		SweepInterval:  appValues.Duration("sweep_interval", time.Hour),
		SweepRetention: appValues.Duration("sweep_retention", 30*24*time.Hour),

		// Notification dispatcher
		NotifyQueueSize: appValues.Int("notify_queue_size"),
		NotifyWorkers:   appValues.Int("notify_workers"),

		// Email/SMTP
		MailSMTPHost: appValues.String("mail_smtp_host"),
		MailSMTPPort: appValues.Int("mail_smtp_port"),
		MailSMTPUser: appValues.String("mail_smtp_user"),
		MailSMTPPass: appValues.String("mail_smtp_pass"),
		MailFrom:     appValues.String("mail_from"),
		MailFromName: appValues.String("mail_from_name"),

		// Admin auth
		JWTSecret:     appValues.String("jwt_secret"),
		JWTTTL:        appValues.Duration("jwt_ttl", 12*time.Hour),
		AdminEmail:    appValues.String("admin_email"),
		AdminPassword: appValues.String("admin_password"),

		// Audit logging
		AuditLogAuth:     appValues.String("audit_log_auth"),
		AuditLogDecision: appValues.String("audit_log_decision"),
	}

	return coreCfg, appCfg, nil
}

// ValidateConfig performs app-specific config validation.
//
// Return nil to accept the loaded config, or an error to abort startup.
// MemberHub validates the MongoDB URI format to catch configuration
// errors early, before attempting to connect, and refuses obviously
// unusable worker settings.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	if err := wafflemongo.ValidateURI(appCfg.MongoURI); err != nil {
		logger.Error("invalid MongoDB URI", zap.Error(err))
		return fmt.Errorf("invalid MongoDB URI: %w", err)
	}

	if appCfg.SweepInterval <= 0 {
		return fmt.Errorf("sweep_interval must be positive")
	}
	if appCfg.SweepRetention <= 0 {
		return fmt.Errorf("sweep_retention must be positive")
	}
	if appCfg.NotifyQueueSize < 1 || appCfg.NotifyWorkers < 1 {
		return fmt.Errorf("notify_queue_size and notify_workers must be at least 1")
	}
	if coreCfg.Env == "prod" && len(appCfg.JWTSecret) < 32 {
		return fmt.Errorf("jwt_secret must be at least 32 characters in production")
	}

	return nil
}
