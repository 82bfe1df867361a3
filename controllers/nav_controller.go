// Package controllers file: controllers/nav_controller.go
package controllers

import (
	"net/http"
	"strings"

	"gig-web/logger"
	"gig-web/middleware"
	"github.com/gin-gonic/gin"
)

// ToggleProfileMenu flips the profile dropdown and sends the visitor back to
// the page they were on.
func ToggleProfileMenu(c *gin.Context) {
	open, err := middleware.ToggleMenu(c)
	if err != nil {
		c.String(http.StatusInternalServerError, "Failed to update menu")
		return
	}
	logger.Debug.Printf("ToggleProfileMenu: menu open=%t", open)
	c.Redirect(http.StatusFound, safeReturnPath(c.PostForm("return")))
}

// safeReturnPath only allows local absolute paths.
func safeReturnPath(p string) string {
	if !strings.HasPrefix(p, "/") || strings.HasPrefix(p, "//") || strings.HasPrefix(p, "/\\") {
		return "/"
	}
	return p
}
