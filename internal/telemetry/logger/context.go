package logger

import "context"

type contextKey string

const (
	loggerKey contextKey = "promwalk.logger"
	walkIDKey contextKey = "promwalk.walk_id"
	targetKey contextKey = "promwalk.target"
)

// WithLogger adds a logger to the context.
func WithLogger(ctx context.Context, l Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// FromContext extracts the logger from context, falling back to Default.
func FromContext(ctx context.Context) Logger {
	if l, ok := ctx.Value(loggerKey).(Logger); ok {
		return l
	}
	return Default()
}

// WithWalkID tags the context with the identifier of the running walk.
func WithWalkID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, walkIDKey, id)
}

// WalkIDFromContext returns the walk identifier, or "" if none is set.
func WalkIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(walkIDKey).(string); ok {
		return id
	}
	return ""
}

// WithTarget tags the context with the scrape target being walked.
func WithTarget(ctx context.Context, target string) context.Context {
	return context.WithValue(ctx, targetKey, target)
}

// TargetFromContext returns the scrape target, or "" if none is set.
func TargetFromContext(ctx context.Context) string {
	if t, ok := ctx.Value(targetKey).(string); ok {
		return t
	}
	return ""
}

// L returns the context logger enriched with the walk ID and target found
// in ctx. Targets are logged with credentials stripped.
func L(ctx context.Context) Logger {
	l := FromContext(ctx)
	if id := WalkIDFromContext(ctx); id != "" {
		l = l.With("walk_id", id)
	}
	if target := TargetFromContext(ctx); target != "" {
		l = l.With("target", RedactURL(target))
	}
	return l
}
