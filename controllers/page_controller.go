// Package controllers file: controllers/page_controller.go
package controllers

import (
	"net/http"

	"gig-web/logger"
	"gig-web/middleware"
	"gig-web/models"
	"github.com/gin-gonic/gin"
)

// render fills in the navbar and footer shared by every page and renders name.
func render(c *gin.Context, status int, name, title string, data gin.H) {
	session := middleware.ReadSession(c)
	if data == nil {
		data = gin.H{}
	}
	if _, ok := data["Error"]; !ok {
		data["Error"] = ""
	}
	data["Title"] = title
	data["Path"] = c.Request.URL.Path
	data["LoggedIn"] = session.LoggedIn
	data["Nav"] = models.BuildNavbar(session)
	data["Footer"] = models.DefaultFooter()
	c.HTML(status, name, data)
}

// Health answers load balancer probes.
func Health(c *gin.Context) {
	logger.Debug.Println("Health: Health check requested")
	c.String(http.StatusOK, "OK")
}

// Index renders the landing page.
func Index(c *gin.Context) {
	render(c, http.StatusOK, "home.html", "Home", nil)
}
