package http

import (
	"context"

	"lenslend-backend/internal/domain"
)

type contextKey string

const userIDKey contextKey = "user-id"

// WithUserID returns a context carrying the authenticated user id. The auth
// middleware is the only writer; handlers and tests read it back with
// UserIDFromContext.
func WithUserID(ctx context.Context, userID int32) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// UserIDFromContext extracts the authenticated user id from the request
// context.
func UserIDFromContext(ctx context.Context) (int32, error) {
	userID, ok := ctx.Value(userIDKey).(int32)
	if !ok || userID == 0 {
		return 0, domain.ErrUnauthorized
	}
	return userID, nil
}
