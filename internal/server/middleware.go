package server

import (
	"net/http"
	"strings"
	"time"

	"rentbid/internal/identity"
	handler "rentbid/services/bidding/handler"
	"rentbid/utils"

	"github.com/gin-gonic/gin"
)

// RequestLoggerMiddleware logs incoming requests with timing
func RequestLoggerMiddleware(c *gin.Context) {
	start := time.Now()

	c.Next() // process request

	utils.Info("HTTP Request", map[string]any{
		"method":  c.Request.Method,
		"path":    c.Request.URL.Path,
		"status":  c.Writer.Status(),
		"latency": time.Since(start).String(),
	})
}

// IdentityMiddleware resolves the caller's token to an application user ID
// and stores it in the request context. Requests without a resolvable token
// still pass through; handlers that require identity reject them.
func IdentityMiddleware(resolver identity.Resolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c.Request)
		if token == "" {
			c.Next()
			return
		}

		userID, err := resolver.Resolve(token)
		if err != nil {
			utils.JSONError(c, http.StatusUnauthorized, err, "invalid authentication token")
			c.Abort()
			return
		}

		c.Set(handler.UserIDKey, userID)
		c.Next()
	}
}

// extractToken looks for a token in the Authorization header (Bearer scheme)
// or in the X-API-Key header.
func extractToken(r *http.Request) string {
	if auth := r.Header.Get("Authorization"); auth != "" {
		parts := strings.SplitN(auth, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			return strings.TrimSpace(parts[1])
		}
	}

	if key := r.Header.Get("X-API-Key"); key != "" {
		return strings.TrimSpace(key)
	}

	return ""
}
