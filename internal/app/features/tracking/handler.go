// internal/app/features/tracking/handler.go
package tracking

import (
	"github.com/floorhq/floorhub/internal/app/system/auditlog"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// DefaultSaveAttempts bounds the reload-reapply-save loop used when a
// concurrent scan bumps the ledger version first.
const DefaultSaveAttempts = 3

// Handler is the shared dependency container for the tracking feature.
type Handler struct {
	DB           *mongo.Database
	Audit        *auditlog.Logger
	Log          *zap.Logger
	SaveAttempts int
}

// NewHandler constructs a tracking Handler. Called from bootstrap's
// BuildHandler with the app's DB, audit logger, and zap logger.
func NewHandler(db *mongo.Database, audit *auditlog.Logger, logger *zap.Logger) *Handler {
	return &Handler{
		DB:           db,
		Audit:        audit,
		Log:          logger,
		SaveAttempts: DefaultSaveAttempts,
	}
}
