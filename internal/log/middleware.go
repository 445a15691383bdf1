package log

import (
	"context"
	"log/slog"
	"net/http"

	"spesa/internal/core"
)

// ContextKey type for context keys
type ContextKey string

const (
	// LoggerContextKey is the context key for the logger
	LoggerContextKey ContextKey = "logger"
)

// IntoContext returns ctx carrying logger.
func IntoContext(ctx context.Context, logger *Logger) context.Context {
	return context.WithValue(ctx, LoggerContextKey, logger)
}

// FromContext extracts a logger from the request context
func FromContext(ctx context.Context) *Logger {
	if logger, ok := ctx.Value(LoggerContextKey).(*Logger); ok {
		return logger
	}
	return &Logger{
		Logger:    slog.Default(),
		component: "unknown",
	}
}

// StructuredLogger provides structured logging methods with context awareness
type StructuredLogger struct {
	logger *Logger
}

// NewStructuredLogger creates a new structured logger
func NewStructuredLogger(logger *Logger) *StructuredLogger {
	return &StructuredLogger{
		logger: logger,
	}
}

// LogHTTPEnd logs the completion of an HTTP request
func (sl *StructuredLogger) LogHTTPEnd(ctx context.Context, r *http.Request, statusCode int, durationMs int64) {
	level := slog.LevelInfo
	if statusCode >= 400 && statusCode < 500 {
		level = slog.LevelWarn
	} else if statusCode >= 500 {
		level = slog.LevelError
	}

	fields := NewFields().
		WithHTTP(r.Method, r.URL.Path, statusCode, durationMs).
		ToSlice()

	sl.logger.WithComponent(ComponentHTTP).Logger.Log(ctx, level, "HTTP request completed",
		append([]any{FieldComponent, ComponentHTTP}, fields...)...)
}

// LogExpenseAdded logs a successful add
func (sl *StructuredLogger) LogExpenseAdded(ctx context.Context, e core.Expense) {
	fields := NewFields().
		WithExpense(e).
		WithOperation(OpAdd).
		ToSlice()

	sl.logger.WithComponent(ComponentLedger).InfoContext(ctx, "Expense added", fields...)
}

// LogExpenseRemoved logs a remove command and whether it matched anything
func (sl *StructuredLogger) LogExpenseRemoved(ctx context.Context, id string, removed bool) {
	sl.logger.WithComponent(ComponentLedger).InfoContext(ctx, "Expense remove handled",
		FieldExpenseID, id,
		"removed", removed,
		FieldOperation, OpRemove)
}

// LogLedgerCleared logs a clear command
func (sl *StructuredLogger) LogLedgerCleared(ctx context.Context, count int) {
	sl.logger.WithComponent(ComponentLedger).InfoContext(ctx, "Ledger cleared",
		FieldCount, count,
		FieldOperation, OpClear)
}

// LogError logs an error with structured context
func (sl *StructuredLogger) LogError(ctx context.Context, msg string, err error, component string, operation string, fields LogFields) {
	if fields == nil {
		fields = NewFields()
	}
	allFields := fields.
		WithError(err).
		WithOperation(operation)

	sl.logger.WithComponent(component).ErrorContext(ctx, msg, allFields.ToSlice()...)
}
