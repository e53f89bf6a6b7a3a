package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RequireAdmin gates admin-only routes. A missing principal and a resolved
// non-admin principal produce the exact same response, so a caller cannot
// probe whether an account or session exists. The decision is re-evaluated
// on every request; nothing about a prior allow or deny is cached.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := PrincipalFromContext(c)
		if !ok || !principal.IsAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden"})
			return
		}
		c.Next()
	}
}
