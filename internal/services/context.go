package services

import "context"

type contextKey string

const (
	assetNameKey contextKey = "asset_name"
	requestIDKey contextKey = "request_id"
	sessionIDKey contextKey = "session_id"
)

// WithAssetName annotates context with the asset currently being processed.
func WithAssetName(ctx context.Context, name string) context.Context {
	if name == "" {
		return ctx
	}
	return context.WithValue(ctx, assetNameKey, name)
}

// AssetNameFromContext returns the asset name if present.
func AssetNameFromContext(ctx context.Context) (string, bool) {
	if v, ok := ctx.Value(assetNameKey).(string); ok && v != "" {
		return v, true
	}
	return "", false
}

// WithRequestID annotates context with a per-upload correlation identifier.
func WithRequestID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, requestIDKey, id)
}

// RequestIDFromContext extracts the correlation identifier if present.
func RequestIDFromContext(ctx context.Context) (string, bool) {
	if v, ok := ctx.Value(requestIDKey).(string); ok && v != "" {
		return v, true
	}
	return "", false
}

// WithSessionID annotates context with the sync pass identifier.
func WithSessionID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, sessionIDKey, id)
}

// SessionIDFromContext extracts the sync pass identifier if present.
func SessionIDFromContext(ctx context.Context) (string, bool) {
	if v, ok := ctx.Value(sessionIDKey).(string); ok && v != "" {
		return v, true
	}
	return "", false
}
