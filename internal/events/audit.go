package events

import (
	"context"
	"log/slog"
)

// AuditLogHandler writes every task event to a logger at info level.
type AuditLogHandler struct {
	logger *slog.Logger
}

// NewAuditLogHandler creates an AuditLogHandler. A nil logger uses slog.Default().
func NewAuditLogHandler(logger *slog.Logger) *AuditLogHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &AuditLogHandler{logger: logger.With("component", "task_audit")}
}

// HandleEvent implements EventHandler.
func (h *AuditLogHandler) HandleEvent(ctx context.Context, event *TaskEvent) error {
	h.logger.LogAttrs(ctx, slog.LevelInfo, "task changed",
		slog.String("event_id", event.ID.String()),
		slog.String("event_type", event.Type),
		slog.Int("task_id", event.TaskID),
		slog.String("task", string(event.Payload)),
		slog.Time("created_at", event.CreatedAt))
	return nil
}
