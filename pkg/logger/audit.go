package logger

import (
	"context"
	"log/slog"
	"time"
)

// AuditEvent records a security-relevant action: login attempts,
// registrations, administrative account changes.
type AuditEvent struct {
	EventType     string
	UserID        int64
	UserType      string
	IPAddress     string
	Success       bool
	FailureReason string
}

// AuditLogger writes structured audit entries through the application logger.
type AuditLogger struct {
	logger *slog.Logger
}

func NewAuditLogger(logger *slog.Logger) *AuditLogger {
	return &AuditLogger{logger: logger}
}

// LogAuthAttempt logs login and registration outcomes. Failures log at Warn
// so they stand out when scanning for abuse.
func (al *AuditLogger) LogAuthAttempt(event AuditEvent) {
	attrs := []slog.Attr{
		slog.String("audit_type", "auth"),
		slog.String("event_type", event.EventType),
		slog.Bool("success", event.Success),
		slog.String("timestamp", time.Now().UTC().Format(time.RFC3339)),
	}

	if event.UserID != 0 {
		attrs = append(attrs, slog.Int64("user_id", event.UserID))
	}
	if event.UserType != "" {
		attrs = append(attrs, slog.String("user_type", event.UserType))
	}
	if event.IPAddress != "" {
		attrs = append(attrs, slog.String("ip_address", event.IPAddress))
	}
	if event.FailureReason != "" {
		attrs = append(attrs, slog.String("failure_reason", event.FailureReason))
	}

	level := slog.LevelInfo
	if !event.Success {
		level = slog.LevelWarn
	}
	al.logger.LogAttrs(context.Background(), level, "audit", attrs...)
}

// LogAccountAction logs administrative account changes (deactivation,
// deletion, profile edits by admins).
func (al *AuditLogger) LogAccountAction(eventType string, userID int64, actorID int64) {
	attrs := []slog.Attr{
		slog.String("audit_type", "account"),
		slog.String("event_type", eventType),
		slog.Int64("user_id", userID),
		slog.String("timestamp", time.Now().UTC().Format(time.RFC3339)),
	}

	if actorID != 0 {
		attrs = append(attrs, slog.Int64("actor_id", actorID))
	}

	al.logger.LogAttrs(context.Background(), slog.LevelInfo, "audit", attrs...)
}
