package middleware

import (
	"context"
	"strings"

	"github.com/SscSPs/solar_backoffice/internal/core/domain"
	"github.com/gin-gonic/gin"
)

const requestCtxKey = contextKey("requestContext")

// RequestInfoMiddleware records the caller address and user agent for audit records.
func RequestInfoMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		info := domain.RequestContext{
			IPAddress: ClientAddress(c),
			UserAgent: c.GetHeader("User-Agent"),
		}
		c.Request = c.Request.WithContext(WithRequestContext(c.Request.Context(), info))
		c.Next()
	}
}

// ClientAddress is the first X-Forwarded-For entry, then X-Real-IP, then the peer address.
func ClientAddress(c *gin.Context) string {
	if fwd := c.GetHeader("X-Forwarded-For"); fwd != "" {
		first, _, _ := strings.Cut(fwd, ",")
		if ip := strings.TrimSpace(first); ip != "" {
			return ip
		}
	}
	if ip := strings.TrimSpace(c.GetHeader("X-Real-IP")); ip != "" {
		return ip
	}
	return c.RemoteIP()
}

func WithRequestContext(ctx context.Context, info domain.RequestContext) context.Context {
	return context.WithValue(ctx, requestCtxKey, info)
}

// RequestContextFrom returns the request info stored by RequestInfoMiddleware.
func RequestContextFrom(ctx context.Context) (domain.RequestContext, bool) {
	info, ok := ctx.Value(requestCtxKey).(domain.RequestContext)
	return info, ok
}
