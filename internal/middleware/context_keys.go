package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
)

const (
	userIDKey = contextKey("userID")
	orgIDKey  = contextKey("orgID")
)

// GetUserIDFromContext retrieves the authenticated user ID from the request context.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	return stringValue(c.Request.Context(), userIDKey)
}

// GetOrgIDFromContext retrieves the organization of the authenticated user.
func GetOrgIDFromContext(c *gin.Context) (string, bool) {
	return stringValue(c.Request.Context(), orgIDKey)
}

// WithIdentity stores a user and organization in ctx the way AuthMiddleware does.
func WithIdentity(ctx context.Context, userID, orgID string) context.Context {
	ctx = context.WithValue(ctx, userIDKey, userID)
	return context.WithValue(ctx, orgIDKey, orgID)
}

func stringValue(ctx context.Context, key contextKey) (string, bool) {
	v, ok := ctx.Value(key).(string)
	if !ok || v == "" {
		return "", false
	}
	return v, true
}
