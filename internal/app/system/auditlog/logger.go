// internal/app/system/auditlog/logger.go
package auditlog

import (
	"context"
	"net/http"

	"github.com/floorhq/floorhub/internal/app/store/audit"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Config controls where events go, per category. Values: "all" (MongoDB +
// zap), "db" (MongoDB only), "log" (zap only), "off".
type Config struct {
	Tracking string
	Planning string
	Admin    string
}

// Logger records audit events to the audit store and/or structured logs.
type Logger struct {
	store  *audit.Store
	zapLog *zap.Logger
	config Config
}

// New creates an audit Logger.
func New(store *audit.Store, zapLog *zap.Logger, config Config) *Logger {
	return &Logger{store: store, zapLog: zapLog, config: config}
}

// NewNopLogger returns a logger that records nothing. For tests.
func NewNopLogger() *Logger {
	return &Logger{zapLog: zap.NewNop(), config: Config{Tracking: "off", Planning: "off", Admin: "off"}}
}

// ClientIP extracts the caller address, honoring proxy headers.
func ClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		return xff
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}
	return r.RemoteAddr
}

// NewCorrelationID returns a fresh correlation id for one request's events.
func NewCorrelationID() string {
	return uuid.NewString()
}

// Log records an event according to the category's config setting. Nil
// loggers are a no-op so tests can pass nil.
func (l *Logger) Log(ctx context.Context, event audit.Event) {
	if l == nil {
		return
	}

	mode := "all"
	switch event.Category {
	case audit.CategoryTracking:
		mode = l.config.Tracking
	case audit.CategoryPlanning:
		mode = l.config.Planning
	case audit.CategoryAdmin:
		mode = l.config.Admin
	}
	if mode == "off" {
		return
	}

	if (mode == "all" || mode == "log") && l.zapLog != nil {
		l.logToZap(event)
	}
	if (mode == "all" || mode == "db") && l.store != nil {
		if err := l.store.Insert(ctx, event); err != nil && l.zapLog != nil {
			l.zapLog.Error("audit event insert failed",
				zap.String("event_type", event.EventType),
				zap.Error(err))
		}
	}
}

func (l *Logger) logToZap(event audit.Event) {
	fields := []zap.Field{
		zap.Bool("audit", true),
		zap.String("category", event.Category),
		zap.String("event_type", event.EventType),
		zap.Bool("success", event.Success),
	}
	if event.ActorID != nil {
		fields = append(fields, zap.String("actor_id", event.ActorID.Hex()))
	}
	if event.EntityID != nil {
		fields = append(fields, zap.String("entity_id", event.EntityID.Hex()))
	}
	if event.CorrelationID != "" {
		fields = append(fields, zap.String("correlation_id", event.CorrelationID))
	}
	if event.FailureReason != "" {
		fields = append(fields, zap.String("failure_reason", event.FailureReason))
	}
	for k, v := range event.Details {
		fields = append(fields, zap.String("detail_"+k, v))
	}

	if event.Success {
		l.zapLog.Info("audit event", fields...)
	} else {
		l.zapLog.Warn("audit event", fields...)
	}
}
