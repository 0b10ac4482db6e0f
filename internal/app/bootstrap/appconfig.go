// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// WAFFLE's CoreConfig handles framework-level settings (HTTP ports, TLS,
// logging level, CORS, request limits); AppConfig is everything specific
// to MemberHub: the database, the approval workflow's background workers,
// mail delivery, and admin auth.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI         string // MongoDB connection string (e.g., mongodb://localhost:27017)
	MongoDatabase    string // Database name within MongoDB
	MongoMaxPoolSize uint64 // Max connection pool size
	MongoMinPoolSize uint64 // Min connection pool size

	// Account sweeper configuration
	SweepInterval  time.Duration // How often the stale-account sweep runs
	SweepRetention time.Duration // How long an unfinalized account may live

	// Notification dispatcher configuration
	NotifyQueueSize int // Buffered event queue size
	NotifyWorkers   int // Delivery worker goroutines

	// Email/SMTP configuration
	MailSMTPHost string // SMTP server host (e.g., localhost for Mailpit)
	MailSMTPPort int    // SMTP server port (e.g., 1025 for Mailpit, 587 for SES)
	MailSMTPUser string // SMTP username (empty for Mailpit)
	MailSMTPPass string // SMTP password
	MailFrom     string // From email address (e.g., noreply@mwsociety.org)
	MailFromName string // From display name

	// Admin authentication
	JWTSecret     string        // Signing secret for admin access tokens
	JWTTTL        time.Duration // Access token lifetime
	AdminEmail    string        // Seed admin account email (created on startup if missing)
	AdminPassword string        // Seed admin account password

	// Audit logging
	AuditLogAuth     string // Auth event logging: "all" (db+log), "db", "log", or "off"
	AuditLogDecision string // Decision event logging: "all" (db+log), "db", "log", or "off"
}
