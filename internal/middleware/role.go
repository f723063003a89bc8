package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"photodesk/internal/pkg/response"
)

// RequireRoles allows the request through only when the authenticated role is
// one of the given roles.
func RequireRoles(roles ...string) gin.HandlerFunc {
	allowed := make(map[string]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}
	return func(c *gin.Context) {
		role, exists := c.Get("role")
		if !exists {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Role not found in token")
			c.Abort()
			return
		}
		if !allowed[role.(string)] {
			response.Error(c, http.StatusForbidden, "FORBIDDEN", "Access denied: insufficient permissions")
			c.Abort()
			return
		}
		c.Next()
	}
}

func StaffOnly() gin.HandlerFunc {
	return RequireRoles("staff", "admin")
}

func AdminOnly() gin.HandlerFunc {
	return RequireRoles("admin")
}
