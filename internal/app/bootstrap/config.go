// internal/app/bootstrap/config.go
package bootstrap

import (
	"fmt"

	"github.com/dalemusser/waffle/config"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/floorhq/floorhub/internal/app/system/auth"
	"go.uber.org/zap"
)

// appConfigKeys defines the configuration keys for FloorHub.
// These are loaded via WAFFLE's config system with support for:
//   - Config files: mongo_uri, auth_token_key, etc.
//   - Environment variables: FLOORHUB_MONGO_URI, FLOORHUB_AUTH_TOKEN_KEY, etc.
//   - Command-line flags: --mongo_uri, --auth_token_key, etc.
var appConfigKeys = []config.AppKey{
	{Name: "mongo_uri", Default: "mongodb://localhost:27017", Desc: "MongoDB connection URI"},
	{Name: "mongo_database", Default: "floorhub", Desc: "MongoDB database name"},
	{Name: "mongo_max_pool_size", Default: 100, Desc: "MongoDB max connection pool size (default: 100)"},
	{Name: "mongo_min_pool_size", Default: 10, Desc: "MongoDB min connection pool size (default: 10)"},

	{Name: "auth_token_key", Default: "dev-only-change-me-please-0123456789ABCDEF", Desc: "Bearer token signing key (must be strong in production)"},
	{Name: "auth_token_ttl", Default: "12h", Desc: "Maximum accepted bearer token age (e.g., 12h, 30m)"},

	// Audit logging settings
	{Name: "audit_log_tracking", Default: "all", Desc: "Tracking event logging: 'all' (db+log), 'db', 'log', or 'off'"},
	{Name: "audit_log_planning", Default: "all", Desc: "Planning event logging: 'all' (db+log), 'db', 'log', or 'off'"},
	{Name: "audit_log_admin", Default: "all", Desc: "Registry admin event logging: 'all' (db+log), 'db', 'log', or 'off'"},

	{Name: "scan_save_attempts", Default: 3, Desc: "Retries for a scan whose ledger save loses the version race"},
}

// LoadConfig loads WAFFLE core config and app-specific config.
//
// WAFFLE's config.LoadWithAppConfig handles:
//   - Loading from .env files
//   - Loading from config.yaml/json/toml files
//   - Reading environment variables (WAFFLE_* for core, FLOORHUB_* for app)
//   - Parsing command-line flags
//   - Merging with precedence: flags > env > files > defaults
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, "FLOORHUB", appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	appCfg := AppConfig{
		MongoURI:         appValues.String("mongo_uri"),
		MongoDatabase:    appValues.String("mongo_database"),
		MongoMaxPoolSize: uint64(appValues.Int("mongo_max_pool_size")),
		MongoMinPoolSize: uint64(appValues.Int("mongo_min_pool_size")),

		AuthTokenKey: appValues.String("auth_token_key"),
		AuthTokenTTL: appValues.Duration("auth_token_ttl", auth.DefaultTokenTTL),

		AuditLogTracking: appValues.String("audit_log_tracking"),
		AuditLogPlanning: appValues.String("audit_log_planning"),
		AuditLogAdmin:    appValues.String("audit_log_admin"),

		ScanSaveAttempts: appValues.Int("scan_save_attempts"),
	}

	return coreCfg, appCfg, nil
}

// ValidateConfig performs app-specific config validation.
//
// FloorHub validates the MongoDB URI format and the token key strength to
// catch configuration errors early, before attempting to connect.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	if err := wafflemongo.ValidateURI(appCfg.MongoURI); err != nil {
		logger.Error("invalid MongoDB URI", zap.Error(err))
		return fmt.Errorf("invalid MongoDB URI: %w", err)
	}

	if len(appCfg.AuthTokenKey) < 32 {
		return fmt.Errorf("auth_token_key must be at least 32 bytes")
	}
	if appCfg.ScanSaveAttempts < 1 {
		return fmt.Errorf("scan_save_attempts must be at least 1")
	}

	for name, mode := range map[string]string{
		"audit_log_tracking": appCfg.AuditLogTracking,
		"audit_log_planning": appCfg.AuditLogPlanning,
		"audit_log_admin":    appCfg.AuditLogAdmin,
	} {
		switch mode {
		case "all", "db", "log", "off":
		default:
			return fmt.Errorf("%s must be one of 'all', 'db', 'log', 'off'", name)
		}
	}

	return nil
}
