package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"dashboard-backend/internal/shared/response"
	"dashboard-backend/pkg/jwt"
)

const (
	claimsKey = "claims"
	userIDKey = "user_id"
	roleKey   = "role"
)

// AuthMiddleware rejects requests without a valid access token.
func AuthMiddleware(jm *jwt.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			response.Error(c, 401, response.CodeUnauthorized, "missing or malformed authorization header", nil)
			c.Abort()
			return
		}

		claims, err := jm.ValidateAccessToken(token)
		if err != nil {
			log.Debug().Err(err).Str("request_id", c.GetString("request_id")).Msg("token rejected")
			response.Error(c, 401, response.CodeUnauthorized, "invalid token", nil)
			c.Abort()
			return
		}

		if !setClaims(c, claims) {
			response.Error(c, 401, response.CodeUnauthorized, "invalid user ID in token", nil)
			c.Abort()
			return
		}

		c.Next()
	}
}

// OptionalAuth attaches claims when a valid token is present and never aborts.
// Endpoints that own their 401 shape decide what a missing caller means.
func OptionalAuth(jm *jwt.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token, ok := bearerToken(c.GetHeader("Authorization")); ok {
			if claims, err := jm.ValidateAccessToken(token); err == nil {
				setClaims(c, claims)
			}
		}
		c.Next()
	}
}

// GetClaims returns nil for an anonymous request.
func GetClaims(c *gin.Context) *jwt.Claims {
	v, ok := c.Get(claimsKey)
	if !ok {
		return nil
	}
	claims, _ := v.(*jwt.Claims)
	return claims
}

// GetUserID returns the caller id set by AuthMiddleware.
func GetUserID(c *gin.Context) (uuid.UUID, bool) {
	v, ok := c.Get(userIDKey)
	if !ok {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}

func setClaims(c *gin.Context, claims *jwt.Claims) bool {
	id, err := uuid.Parse(claims.UserID)
	if err != nil {
		return false
	}
	c.Set(claimsKey, claims)
	c.Set(userIDKey, id)
	c.Set(roleKey, claims.Role)
	return true
}

func bearerToken(header string) (string, bool) {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", false
	}
	return strings.TrimSpace(parts[1]), true
}
