// internal/app/bootstrap/appconfig.go
package bootstrap

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// WAFFLE's CoreConfig handles framework-level settings like HTTP/HTTPS
// ports, TLS, logging level, and request limits. AppConfig is everything
// specific to ClubHub: the Mongo connection, session cookies, money
// defaults, and the bootstrap admin account.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI         string // MongoDB connection string (e.g., mongodb://localhost:27017)
	MongoDatabase    string // Database name within MongoDB
	MongoMaxPoolSize uint64
	MongoMinPoolSize uint64

	// Session management configuration
	SessionKey    string // Secret key for signing session cookies (must be strong in production)
	SessionName   string // Cookie name for sessions (default: clubhub-session)
	SessionDomain string // Cookie domain (blank means current host)

	// Money defaults
	DefaultCurrency string // ISO 4217 code used when a club has no currency set
	DefaultDueDay   int    // Default day-of-month for monthly fees (1..28)

	// Bootstrap admin, created on startup when no account with this email
	// exists. Leave the email blank to skip.
	AdminEmail    string
	AdminPassword string
	AdminName     string
}
