package services

import "context"

type contextKey string

const (
	runIDKey   contextKey = "run_id"
	libraryKey contextKey = "library"
)

// WithRunID annotates context with the identifier of the current traversal run.
func WithRunID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, runIDKey, id)
}

// RunIDFromContext extracts the run identifier if present.
func RunIDFromContext(ctx context.Context) (string, bool) {
	if v, ok := ctx.Value(runIDKey).(string); ok && v != "" {
		return v, true
	}
	return "", false
}

// WithLibrary annotates context with the library section being traversed.
func WithLibrary(ctx context.Context, title string) context.Context {
	if title == "" {
		return ctx
	}
	return context.WithValue(ctx, libraryKey, title)
}

// LibraryFromContext returns the library title if present.
func LibraryFromContext(ctx context.Context) (string, bool) {
	v := ctx.Value(libraryKey)
	if str, ok := v.(string); ok && str != "" {
		return str, true
	}
	return "", false
}
