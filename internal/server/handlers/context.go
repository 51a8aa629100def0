package handlers

import "context"

// contextKey is the type for request context keys
type contextKey string

// UserIDKey is the context key the auth middleware stores the user id under
const UserIDKey contextKey = "user_id"

// GetUserID extracts the authenticated user id from the request context
func GetUserID(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(UserIDKey).(string)
	return userID, ok
}
