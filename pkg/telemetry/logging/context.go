package logging

import (
	"context"

	"github.com/google/uuid"
)

// Context keys for common log fields.
type contextKey string

const (
	// RunIDKey is the context key for the conversion run ID.
	RunIDKey contextKey = "run_id"

	// DocumentKey is the context key for the SLD document path.
	DocumentKey contextKey = "document"
)

// NewRunID returns a fresh identifier for one conversion.
func NewRunID() string {
	return uuid.NewString()
}

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

// WithDocument adds the SLD document path to the context.
func WithDocument(ctx context.Context, path string) context.Context {
	return context.WithValue(ctx, DocumentKey, path)
}

// GetDocument retrieves the SLD document path from the context.
func GetDocument(ctx context.Context) string {
	if path, ok := ctx.Value(DocumentKey).(string); ok {
		return path
	}
	return ""
}

// extractContextFields extracts common fields from context for logging.
// Returns a slice of key-value pairs suitable for logger.With().
func extractContextFields(ctx context.Context) []any {
	var fields []any

	if runID := GetRunID(ctx); runID != "" {
		fields = append(fields, "run_id", runID)
	}

	if path := GetDocument(ctx); path != "" {
		fields = append(fields, "document", path)
	}

	return fields
}
