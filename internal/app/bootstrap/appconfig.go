// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// These values come from environment variables, configuration files, or
// command-line flags (loaded in LoadConfig). They represent *app-level*
// configuration, not WAFFLE core configuration.
//
// WAFFLE's CoreConfig handles framework-level settings like:
//   - HTTP/HTTPS ports and TLS configuration
//   - Logging level and format
//   - CORS settings
//   - Request body size limits
//   - Database connection timeouts
//
// AppConfig is where everything specific to Acadia Hub lives: store
// connection settings, the mail relay, and the chat assistant.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI         string // MongoDB connection string (e.g., mongodb://localhost:27017)
	MongoDatabase    string // Database name within MongoDB
	MongoMaxPoolSize uint64 // Max connection pool size
	MongoMinPoolSize uint64 // Min connection pool size

	// Session management configuration
	SessionKey    string // Secret key for signing session cookies (must be strong in production)
	SessionName   string // Cookie name for sessions (default: acadiahub-session)
	SessionDomain string // Cookie domain (blank means current host)

	// Email/SMTP configuration
	MailSMTPHost string // SMTP server host (e.g., localhost for Mailpit)
	MailSMTPPort int    // SMTP server port (e.g., 1025 for Mailpit, 587 for a real relay)
	MailSMTPUser string // SMTP username (empty disables sending)
	MailSMTPPass string // SMTP password
	MailFrom     string // From email address (e.g., noreply@acadiahub.edu)
	MailFromName string // From display name (e.g., Acadia Hub)

	// Chat assistant configuration
	OpenAIAPIKey string // Completion API key (empty disables the assistant)
	OpenAIModel  string // Completion model name

	// Live feed configuration
	NameCacheTTL time.Duration // How long resolved display names stay cached

	// Handler operation timeouts, applied to the timeouts package at startup
	TimeoutPing   time.Duration // Health checks
	TimeoutShort  time.Duration // Single-document operations
	TimeoutMedium time.Duration // Multi-step operations
	TimeoutLong   time.Duration // External-service relays
}
