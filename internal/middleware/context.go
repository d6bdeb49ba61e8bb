package middleware

import "context"

type contextKey string

const loggedUserIDKey contextKey = "logged-user-id"

// ContextWithUserID attaches the authenticated user id to the request
// context. There is no process-wide session state: every handler reads the
// identity from its own request.
func ContextWithUserID(ctx context.Context, userID int) context.Context {
	return context.WithValue(ctx, loggedUserIDKey, userID)
}

// UserIDFromContext returns the authenticated user id, if any.
func UserIDFromContext(ctx context.Context) (int, bool) {
	userID, ok := ctx.Value(loggedUserIDKey).(int)
	return userID, ok
}
