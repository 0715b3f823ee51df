package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/gatherly/backend/internal/auth"
	"github.com/gatherly/backend/pkg/response"
)

// ContextIdentity is the key for the caller identity in gin context.
const ContextIdentity = "identity"

// RequireAuth returns a middleware that verifies the bearer token and
// sets the caller identity in context, aborting with 401 otherwise.
func RequireAuth(tokens *auth.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, ok := bearerToken(c)
		if !ok {
			response.Unauthorized(c, "missing or invalid authorization header")
			c.Abort()
			return
		}
		claims, err := tokens.Verify(raw)
		if err != nil {
			response.Unauthorized(c, "invalid or expired token")
			c.Abort()
			return
		}
		c.Set(ContextIdentity, claims.Identity())
		c.Next()
	}
}

// OptionalIdentity returns a middleware that decodes the bearer token
// without verifying it and sets the identity when one is present. An
// absent or malformed token means anonymous, never an error, so listing
// endpoints work for signed-in and anonymous callers alike.
func OptionalIdentity(tokens *auth.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if raw, ok := bearerToken(c); ok {
			if claims := tokens.Decode(raw); claims != nil {
				c.Set(ContextIdentity, claims.Identity())
			}
		}
		c.Next()
	}
}

// Caller returns the verified caller identity set by RequireAuth.
// It panics when used on a route without the middleware.
func Caller(c *gin.Context) auth.Identity {
	return c.MustGet(ContextIdentity).(auth.Identity)
}

// OptionalCaller returns the caller identity or nil for anonymous.
func OptionalCaller(c *gin.Context) *auth.Identity {
	v, ok := c.Get(ContextIdentity)
	if !ok {
		return nil
	}
	id := v.(auth.Identity)
	return &id
}

func bearerToken(c *gin.Context) (string, bool) {
	header := c.GetHeader("Authorization")
	if header == "" {
		return "", false
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", false
	}
	return parts[1], true
}
