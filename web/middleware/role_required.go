package middleware

import (
	"net/http"

	"regstats/web/session"

	"github.com/gin-gonic/gin"
)

// SessionRoleRequired denies the request unless the session holds a
// logged-in user with one of the given roles. It runs before any CSRF or
// form handling, and the denial is identical whether the session has no
// user, no role, or an insufficient one.
func SessionRoleRequired(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !session.HasPermission(c, roles...) {
			c.String(http.StatusForbidden, "No permission.")
			c.Abort()
			return
		}
		c.Next()
	}
}
