package services

import (
	"context"
	"log/slog"
	"time"

	"gofinances/internal/models"
)

type correlationIDKey struct{}

// WithCorrelationID returns a context whose ledger audit events carry id
func WithCorrelationID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, correlationIDKey{}, id)
}

// CorrelationID returns the id stored by WithCorrelationID, or ""
func CorrelationID(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(correlationIDKey{}).(string)
	return id
}

// AuditLogger writes one structured event per ledger state change or failure.
// Transaction names and amounts are never logged.
type AuditLogger struct {
	logger *slog.Logger
}

func NewAuditLogger(logger *slog.Logger) *AuditLogger {
	if logger == nil {
		logger = slog.Default()
	}
	return &AuditLogger{
		logger: logger,
	}
}

func (al *AuditLogger) LogTransactionAppended(ctx context.Context, userID string, transaction models.Transaction, duration time.Duration) {
	al.logger.InfoContext(ctx, "transaction appended",
		slog.String("event_type", "transaction_appended"),
		slog.String("user_id", userID),
		slog.String("transaction_id", transaction.ID),
		slog.String("type", string(transaction.Type)),
		slog.String("category", transaction.Category),
		slog.Int64("duration_ms", duration.Milliseconds()),
		slog.String("correlation_id", CorrelationID(ctx)),
	)
}

func (al *AuditLogger) LogAppendFailed(ctx context.Context, userID, transactionID string, err error) {
	al.logger.ErrorContext(ctx, "failed to append transaction",
		slog.String("event_type", "transaction_append_failed"),
		slog.String("user_id", userID),
		slog.String("transaction_id", transactionID),
		slog.String("error", err.Error()),
		slog.String("correlation_id", CorrelationID(ctx)),
	)
}

func (al *AuditLogger) LogLoadFailed(ctx context.Context, userID string, partial bool, err error) {
	al.logger.ErrorContext(ctx, "failed to load ledger",
		slog.String("event_type", "ledger_load_failed"),
		slog.String("user_id", userID),
		slog.Bool("partial", partial),
		slog.String("error", err.Error()),
		slog.String("correlation_id", CorrelationID(ctx)),
	)
}

func (al *AuditLogger) LogRecordsSkipped(ctx context.Context, userID string, skipped []models.SkippedRecord) {
	if len(skipped) == 0 {
		return
	}

	indexes := make([]int, 0, len(skipped))
	for _, record := range skipped {
		indexes = append(indexes, record.Index)
	}

	al.logger.LogAttrs(ctx, slog.LevelWarn, "skipped malformed ledger records",
		slog.String("event_type", "ledger_records_skipped"),
		slog.String("user_id", userID),
		slog.Int("skipped", len(skipped)),
		slog.Any("indexes", indexes),
		slog.String("correlation_id", CorrelationID(ctx)),
	)
}

func (al *AuditLogger) LogBreakerStateChange(service string, from, to CircuitBreakerState) {
	al.logger.Warn("circuit breaker state changed",
		slog.String("event_type", "circuit_breaker_state_change"),
		slog.String("service", service),
		slog.String("from", from.String()),
		slog.String("to", to.String()),
	)
}
