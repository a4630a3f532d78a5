// internal/app/features/registry/handler.go

// Package registry serves the thin CRUD surfaces for the machine, raw-item,
// and stock-item registries the tracking and planning subsystems read from.
package registry

import (
	"github.com/floorhq/floorhub/internal/app/system/auditlog"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler is the shared dependency container for the registry feature.
type Handler struct {
	DB    *mongo.Database
	Audit *auditlog.Logger
	Log   *zap.Logger
}

func NewHandler(db *mongo.Database, audit *auditlog.Logger, logger *zap.Logger) *Handler {
	return &Handler{DB: db, Audit: audit, Log: logger}
}
