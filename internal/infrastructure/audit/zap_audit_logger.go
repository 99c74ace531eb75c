// Package audit emits business audit events through the application logger.
package audit

import (
	"context"

	"go.uber.org/zap"

	"github.com/yunanyuansyah/listPembelian/domain"
)

// ZapAuditLogger implements domain.AuditLogger on a zap logger.
type ZapAuditLogger struct {
	logger *zap.Logger
}

// NewZapAuditLogger creates a new audit logger
func NewZapAuditLogger(logger *zap.Logger) domain.AuditLogger {
	return &ZapAuditLogger{logger: logger.Named("audit")}
}

// LogEvent implements domain.AuditLogger
func (l *ZapAuditLogger) LogEvent(_ context.Context, event *domain.AuditEvent) {
	fields := []zap.Field{
		zap.String("event_type", string(event.EventType)),
		zap.Uint("user_id", event.UserID),
		zap.Time("timestamp", event.Timestamp),
		zap.Bool("success", event.Success),
	}
	if event.Email != "" {
		fields = append(fields, zap.String("email", event.Email))
	}
	if event.ErrorMsg != "" {
		fields = append(fields, zap.String("error", event.ErrorMsg))
	}
	for k, v := range event.Metadata {
		fields = append(fields, zap.Any(k, v))
	}

	if event.Success {
		l.logger.Info("audit event", fields...)
	} else {
		l.logger.Warn("audit event", fields...)
	}
}
