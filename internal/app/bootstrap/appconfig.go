// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// WAFFLE's CoreConfig handles framework-level settings (ports, TLS,
// logging, request limits); AppConfig is everything specific to KudosHub.
// The struct is passed to most lifecycle hooks, so any configuration
// needed during startup, request handling, or shutdown lives here.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI         string // MongoDB connection string (e.g., mongodb://localhost:27017)
	MongoDatabase    string // Database name within MongoDB
	MongoMaxPoolSize uint64 // Max connection pool size
	MongoMinPoolSize uint64 // Min connection pool size

	// Auth configuration
	JWTSecret string        // Secret for signing bearer tokens (must be strong in production)
	TokenTTL  time.Duration // Bearer token lifetime

	// Email configuration
	SendGridAPIKey string // SendGrid API key (blank disables outbound mail)
	MailFrom       string // From email address (e.g., noreply@kudoshub.com)
	MailFromName   string // From display name (e.g., KudosHub)

	// Base URL for links in invite emails
	BaseURL string // e.g., "https://kudoshub.com" or "http://localhost:3000"

	// Notification retention
	NotificationRetention time.Duration // How long redeemed notifications are kept
	CleanupInterval       time.Duration // How often the cleanup job runs
}
