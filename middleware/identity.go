package middleware

import (
	"net/http"
	"strings"

	"tastetrail/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	// ContextUsernameKey holds the authenticated username, when present.
	ContextUsernameKey = "username"
	// ContextDeviceIDKey holds the anonymous device identifier, when present.
	ContextDeviceIDKey = "deviceId"

	deviceIDHeader = "X-Device-ID"
)

// OptionalIdentityMiddleware resolves the requester's identity without ever
// rejecting the request. A valid Bearer token yields a username; an invalid
// or absent token leaves the request anonymous. The device header is carried
// through either way.
func OptionalIdentityMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if deviceID := strings.TrimSpace(c.GetHeader(deviceIDHeader)); deviceID != "" {
			c.Set(ContextDeviceIDKey, deviceID)
		}

		authHeader := c.GetHeader("Authorization")
		if strings.HasPrefix(authHeader, "Bearer ") {
			token := strings.TrimPrefix(authHeader, "Bearer ")
			username, err := utils.ExtractUsernameFromToken(token)
			if err != nil {
				zap.L().Debug("Ignoring invalid bearer token", zap.Error(err))
			} else if username != "" {
				c.Set(ContextUsernameKey, username)
			}
		}

		c.Next()
	}
}

// RequireIdentityMiddleware rejects requests that carry no valid Bearer
// token. It must run after OptionalIdentityMiddleware.
func RequireIdentityMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, exists := c.Get(ContextUsernameKey); !exists {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			return
		}
		c.Next()
	}
}
