// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	healthfeature "github.com/floorhq/floorhub/internal/app/features/health"
	planningfeature "github.com/floorhq/floorhub/internal/app/features/planning"
	registryfeature "github.com/floorhq/floorhub/internal/app/features/registry"
	requirementsfeature "github.com/floorhq/floorhub/internal/app/features/requirements"
	trackingfeature "github.com/floorhq/floorhub/internal/app/features/tracking"
	"github.com/floorhq/floorhub/internal/app/store/audit"
	"github.com/floorhq/floorhub/internal/app/system/auditlog"
	"github.com/floorhq/floorhub/internal/app/system/auth"
	"github.com/dalemusser/waffle/config"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// any Startup hooks have completed. FloorHub builds the token middleware and
// audit logger, then mounts feature routers: health stays public, everything
// else sits behind bearer-token verification.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	tokens, err := auth.NewTokenManager(appCfg.AuthTokenKey, appCfg.AuthTokenTTL, logger)
	if err != nil {
		logger.Error("token manager init failed", zap.Error(err))
		return nil, err
	}

	db := deps.FloorHubMongoDatabase
	auditLog := auditlog.New(audit.New(db), logger, auditlog.Config{
		Tracking: appCfg.AuditLogTracking,
		Planning: appCfg.AuditLogPlanning,
		Admin:    appCfg.AuditLogAdmin,
	})

	r := chi.NewRouter()

	// Health check endpoint for load balancers and orchestrators.
	healthHandler := healthfeature.NewHandler(deps.FloorHubMongoClient, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	// Everything else requires a verified bearer token.
	r.Group(func(pr chi.Router) {
		pr.Use(tokens.RequireToken)

		trackingHandler := trackingfeature.NewHandler(db, auditLog, logger)
		if appCfg.ScanSaveAttempts > 0 {
			trackingHandler.SaveAttempts = appCfg.ScanSaveAttempts
		}
		pr.Mount("/tracking", trackingfeature.Routes(trackingHandler))

		planningHandler := planningfeature.NewHandler(db, auditLog, logger)
		pr.Mount("/planning", planningfeature.Routes(planningHandler))

		requirementsHandler := requirementsfeature.NewHandler(db, logger)
		pr.Mount("/requirements", requirementsfeature.Routes(requirementsHandler))

		registryHandler := registryfeature.NewHandler(db, auditLog, logger)
		pr.Mount("/machines", registryfeature.MachineRoutes(registryHandler))
		pr.Mount("/raw-items", registryfeature.RawItemRoutes(registryHandler))
		pr.Mount("/stock-items", registryfeature.StockItemRoutes(registryHandler))
	})

	return r, nil
}
