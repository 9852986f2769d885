package mw

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"zayura-backend/internal/auth"
)

// Context keys set by JWTAuth.
const (
	ContextUsername = "username"
	ContextRole     = "role"
)

// JWTAuth rejects requests without a valid bearer token and stores the
// token's username and role in the gin context.
func JWTAuth(issuer *auth.Issuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || strings.TrimSpace(token) == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing or invalid Authorization header"})
			return
		}

		claims, err := issuer.Parse(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}
		c.Set(ContextUsername, claims.Username)
		if claims.Role != "" {
			c.Set(ContextRole, claims.Role)
		}
		c.Next()
	}
}
