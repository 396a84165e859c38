package logging

import (
	"context"
	"log/slog"
)

// Context keys for common log fields.
type contextKey string

const (
	// RunIDKey is the context key for cleanup run IDs.
	RunIDKey contextKey = "run_id"

	// ComponentKey is the context key for the component name.
	ComponentKey contextKey = "component"
)

// WithRunID adds a run ID to the context.
func WithRunID(ctx context.Context, runID string) context.Context {
	return context.WithValue(ctx, RunIDKey, runID)
}

// GetRunID retrieves the run ID from the context.
func GetRunID(ctx context.Context) string {
	if runID, ok := ctx.Value(RunIDKey).(string); ok {
		return runID
	}
	return ""
}

// WithComponent adds a component name to the context.
func WithComponent(ctx context.Context, component string) context.Context {
	return context.WithValue(ctx, ComponentKey, component)
}

// GetComponent retrieves the component name from the context.
func GetComponent(ctx context.Context) string {
	if component, ok := ctx.Value(ComponentKey).(string); ok {
		return component
	}
	return ""
}

// WithContext returns logger with the fields stored in ctx attached.
func WithContext(ctx context.Context, logger *slog.Logger) *slog.Logger {
	args := extractContextFields(ctx)
	if len(args) == 0 {
		return logger
	}
	return logger.With(args...)
}

// extractContextFields extracts log fields from the context.
func extractContextFields(ctx context.Context) []any {
	if ctx == nil {
		return nil
	}

	var fields []any
	if runID := GetRunID(ctx); runID != "" {
		fields = append(fields, string(RunIDKey), runID)
	}
	if component := GetComponent(ctx); component != "" {
		fields = append(fields, string(ComponentKey), component)
	}
	return fields
}
