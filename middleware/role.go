// File: middleware/role.go
package middleware

import (
	"net/http"

	"gig-web/logger"
	"gig-web/models"
	"github.com/gin-gonic/gin"
)

// RoleRequired only lets users holding role through. Anonymous visitors are
// sent to the login page; signed-in users with another role get 403.
func RoleRequired(role models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		s := ReadSession(c)
		if !s.LoggedIn {
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}

		if s.Role != role {
			logger.Warn.Printf("RoleRequired: user %s with role %q blocked from %s", s.User, s.Role, c.Request.URL.Path)
			c.String(http.StatusForbidden, "Forbidden")
			c.Abort()
			return
		}

		c.Next()
	}
}
