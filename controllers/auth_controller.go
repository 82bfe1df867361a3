// Package controllers file: controllers/auth_controller.go
package controllers

import (
	"errors"
	"net/http"
	"strings"

	"gig-web/logger"
	"gig-web/middleware"
	"gig-web/services"
	"github.com/gin-gonic/gin"
)

// AuthController handles sign-in and sign-out.
type AuthController struct {
	Auth services.Authenticator
}

// NewAuthController creates an instance of AuthController
func NewAuthController(auth services.Authenticator) *AuthController {
	logger.Debug.Println("NewAuthController: Initializing AuthController")
	return &AuthController{Auth: auth}
}

// ShowLogin renders the login page. Signed-in users go straight home.
func (ac *AuthController) ShowLogin(c *gin.Context) {
	if middleware.ReadSession(c).LoggedIn {
		c.Redirect(http.StatusFound, "/")
		return
	}
	render(c, http.StatusOK, "login.html", "Login", gin.H{"Email": ""})
}

// Login checks the credentials and stores the resulting session.
func (ac *AuthController) Login(c *gin.Context) {
	email := strings.TrimSpace(c.PostForm("email"))
	password := c.PostForm("password")

	if email == "" || password == "" {
		logger.Warn.Println("Login: missing email or password")
		render(c, http.StatusBadRequest, "login.html", "Login", gin.H{"Email": email, "Error": "Please fill in all fields."})
		return
	}

	session, err := ac.Auth.Authenticate(c.Request.Context(), email, password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			logger.Warn.Printf("Login: invalid credentials for %s", email)
			render(c, http.StatusUnauthorized, "login.html", "Login", gin.H{"Email": email, "Error": "Invalid email or password."})
			return
		}
		logger.Error.Printf("Login: authentication failed for %s: %v", email, err)
		render(c, services.HTTPStatus(err), "login.html", "Login", gin.H{"Email": email, "Error": services.UserMessage(err)})
		return
	}

	if err := middleware.WriteSession(c, session); err != nil {
		logger.Error.Printf("Login: failed to save session: %v", err)
		render(c, http.StatusInternalServerError, "login.html", "Login", gin.H{"Email": email, "Error": "Internal error, please try again."})
		return
	}

	logger.Info.Printf("Login: %s signed in with role %s", session.User, session.Role)
	c.Redirect(http.StatusFound, "/")
}

// Logout clears the session and returns to the login page.
func Logout(c *gin.Context) {
	user := middleware.ReadSession(c).User
	if err := middleware.ClearSession(c); err != nil {
		logger.Error.Printf("Logout: Error saving session during logout: %v", err)
	} else if user != "" {
		logger.Info.Printf("Logout: %s signed out", user)
	}
	c.Redirect(http.StatusFound, "/login")
}
