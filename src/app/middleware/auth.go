package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"inkwell/src/app/http/response"
	"inkwell/src/core/domain"
	"inkwell/src/core/ports"
)

// identityKey is the gin context key holding the authenticated caller.
const identityKey = "identity"

// Auth verifies the Authorization bearer token and stores the resolved
// identity in the context. Requests without a valid token are rejected
// with 401 before any handler runs.
func Auth(tokens ports.TokenIssuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := GetRequestID(c)

		header := c.GetHeader("Authorization")
		if header == "" {
			response.Unauthorized(c, "missing Authorization header", requestID)
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(header, "Bearer ")
		if tokenString == header {
			response.Unauthorized(c, "invalid Authorization header format", requestID)
			c.Abort()
			return
		}

		identity, err := tokens.Verify(strings.TrimSpace(tokenString))
		if err != nil {
			response.Unauthorized(c, "invalid or expired token", requestID)
			c.Abort()
			return
		}

		c.Set(identityKey, *identity)
		c.Next()
	}
}

// GetIdentity retrieves the authenticated caller from the Gin context.
// The second return is false on unauthenticated routes.
func GetIdentity(c *gin.Context) (domain.Identity, bool) {
	v, exists := c.Get(identityKey)
	if !exists {
		return domain.Identity{}, false
	}
	identity, ok := v.(domain.Identity)
	return identity, ok
}
