// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// These values come from environment variables, configuration files, or
// command-line flags (loaded in LoadConfig). WAFFLE's CoreConfig handles
// framework-level settings (ports, TLS, logging level); AppConfig is
// everything specific to FloorHub.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI         string // MongoDB connection string (e.g., mongodb://localhost:27017)
	MongoDatabase    string // Database name within MongoDB
	MongoMaxPoolSize uint64 // Max connection pool size
	MongoMinPoolSize uint64 // Min connection pool size

	// Bearer-token configuration. Tokens are issued by the identity service
	// and verified here; the key must match on both sides.
	AuthTokenKey string        // HMAC signing key (must be strong in production)
	AuthTokenTTL time.Duration // Maximum token age accepted by Verify

	// Audit logging modes: "all" (db+log), "db", "log", or "off".
	AuditLogTracking string
	AuditLogPlanning string
	AuditLogAdmin    string

	// ScanSaveAttempts bounds the ledger retry loop when concurrent scans
	// collide on the optimistic version check.
	ScanSaveAttempts int
}
