package services

import "context"

type contextKey string

const (
	cycleIDKey   contextKey = "cycle_id"
	queryKey     contextKey = "query"
	transportKey contextKey = "transport"
)

// WithCycleID annotates context with the polling cycle identifier.
func WithCycleID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, cycleIDKey, id)
}

// CycleIDFromContext extracts the polling cycle identifier if present.
func CycleIDFromContext(ctx context.Context) (string, bool) {
	if v, ok := ctx.Value(cycleIDKey).(string); ok && v != "" {
		return v, true
	}
	return "", false
}

// WithQuery annotates context with the search term being processed.
func WithQuery(ctx context.Context, query string) context.Context {
	if query == "" {
		return ctx
	}
	return context.WithValue(ctx, queryKey, query)
}

// QueryFromContext returns the search term if present.
func QueryFromContext(ctx context.Context) (string, bool) {
	v := ctx.Value(queryKey)
	if str, ok := v.(string); ok && str != "" {
		return str, true
	}
	return "", false
}

// WithTransport annotates context with the notification transport name.
func WithTransport(ctx context.Context, name string) context.Context {
	if name == "" {
		return ctx
	}
	return context.WithValue(ctx, transportKey, name)
}

// TransportFromContext returns the notification transport name if present.
func TransportFromContext(ctx context.Context) (string, bool) {
	v := ctx.Value(transportKey)
	if str, ok := v.(string); ok && str != "" {
		return str, true
	}
	return "", false
}
