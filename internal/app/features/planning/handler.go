// internal/app/features/planning/handler.go
package planning

import (
	"github.com/floorhq/floorhub/internal/app/system/auditlog"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler is the shared dependency container for the planning feature.
type Handler struct {
	DB    *mongo.Database
	Audit *auditlog.Logger
	Log   *zap.Logger
}

func NewHandler(db *mongo.Database, audit *auditlog.Logger, logger *zap.Logger) *Handler {
	return &Handler{DB: db, Audit: audit, Log: logger}
}
