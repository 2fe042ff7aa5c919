package handler

import "context"

type userIDKey struct{}

// withUserID stores the authenticated user id in the request context.
// Set by the bearer-auth middleware; read by every trip handler.
func withUserID(ctx context.Context, userID int64) context.Context {
	return context.WithValue(ctx, userIDKey{}, userID)
}

// userIDFromContext returns the authenticated user id, if present.
func userIDFromContext(ctx context.Context) (int64, bool) {
	v, ok := ctx.Value(userIDKey{}).(int64)
	return v, ok && v != 0
}
