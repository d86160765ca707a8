package middleware

import (
	"context"

	"github.com/gin-gonic/gin"

	"dashboard-backend/internal/shared/utils"
)

type clientIPKey struct{}

// ClientIP resolves the caller address once and stores it on both the gin
// context and the request context, so services can stamp it on security alerts.
func ClientIP() gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := utils.ExtractClientIP(c)

		c.Set("client_ip", ip)
		c.Request = c.Request.WithContext(context.WithValue(c.Request.Context(), clientIPKey{}, ip))

		c.Next()
	}
}

// ClientIPFromContext returns "" when the middleware did not run.
func ClientIPFromContext(ctx context.Context) string {
	if ip, ok := ctx.Value(clientIPKey{}).(string); ok {
		return ip
	}
	return ""
}
