// Package middleware contains shared Gin middleware used by the HTTP layer.
//
// This file implements bearer-token authentication for the admin routes.
// Tokens are issued by the auth service on login; the middleware verifies
// the signature and expiry and stores the authenticated identity in the
// Gin context for handlers and the access log.
package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/oguzcelik/jewelry-backend/internal/services"
)

// Context keys under which the authenticated identity is stored.
const (
	userIDKey   = "userID"
	usernameKey = "username"
	roleKey     = "role"
)

// TokenParser verifies a bearer token and returns its claims. Satisfied by
// *services.AuthService.
type TokenParser interface {
	ParseToken(token string) (*services.Claims, error)
}

// RequireAuth returns a Gin middleware that rejects requests without a
// valid "Authorization: Bearer <token>" header. On success the user id,
// username, and role from the token are stored in the Gin context.
func RequireAuth(parser TokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c.GetHeader("Authorization"))
		if token == "" {
			unauthorized(c, "missing bearer token")
			return
		}

		claims, err := parser.ParseToken(token)
		if err != nil {
			unauthorized(c, "invalid or expired token")
			return
		}

		c.Set(userIDKey, claims.Subject)
		c.Set(usernameKey, claims.Username)
		c.Set(roleKey, claims.Role)
		c.Next()
	}
}

// UserID returns the authenticated user's id, empty when unauthenticated.
func UserID(c *gin.Context) string { return c.GetString(userIDKey) }

// Username returns the authenticated username, empty when unauthenticated.
func Username(c *gin.Context) string { return c.GetString(usernameKey) }

// Role returns the authenticated user's role, empty when unauthenticated.
func Role(c *gin.Context) string { return c.GetString(roleKey) }

// bearerToken extracts the token from an Authorization header value. The
// scheme comparison is case-insensitive per RFC 7235.
func bearerToken(header string) string {
	const prefix = "bearer "
	if len(header) > len(prefix) && strings.EqualFold(header[:len(prefix)], prefix) {
		return strings.TrimSpace(header[len(prefix):])
	}
	return ""
}

func unauthorized(c *gin.Context, msg string) {
	c.Header("WWW-Authenticate", `Bearer realm="admin"`)
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"request_id": c.Writer.Header().Get("X-Request-ID"),
		"code":       "unauthorized",
		"message":    msg,
	})
}
