// File: middleware/auth.go
package middleware

import (
	"net/http"

	"gig-web/logger"
	"github.com/gin-gonic/gin"
)

// -------------- authentication middleware --------------

// AuthRequired is a middleware that ensures the user is logged in.
// Anonymous visitors are redirected to "/login".
// Usage:
//
//	router.Use(AuthRequired)
func AuthRequired(c *gin.Context) {
	if !ReadSession(c).LoggedIn {
		logger.Warn.Printf("AuthRequired: no user in session for %s, redirecting to /login", c.Request.URL.Path)
		c.Redirect(http.StatusFound, "/login")
		c.Abort()
		return
	}

	logger.Debug.Println("[AuthRequired] User authenticated - proceeding with request")
	c.Next()
}
