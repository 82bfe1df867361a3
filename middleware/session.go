// Package middleware provides request filters and session access for the application.
// File: middleware/session.go
package middleware

import (
	"gig-web/logger"
	"gig-web/models"
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

// session keys
const (
	SessionUserKey  = "user"
	SessionRoleKey  = "role"
	SessionTokenKey = "token"
	SessionMenuKey  = "menuOpen"
)

// ReadSession builds the immutable session snapshot for this request.
// It is the only place that reads auth state out of the cookie session.
func ReadSession(c *gin.Context) models.Session {
	session := sessions.Default(c)

	user, _ := session.Get(SessionUserKey).(string)
	if user == "" {
		return models.Anonymous
	}

	role, _ := session.Get(SessionRoleKey).(string)
	token, _ := session.Get(SessionTokenKey).(string)
	menuOpen, _ := session.Get(SessionMenuKey).(bool)

	return models.Session{
		LoggedIn: true,
		Role:     models.Role(role),
		User:     user,
		Token:    token,
		MenuOpen: menuOpen,
	}
}

// WriteSession stores a freshly authenticated session. The dropdown starts closed.
func WriteSession(c *gin.Context, s models.Session) error {
	session := sessions.Default(c)
	session.Clear()
	session.Set(SessionUserKey, s.User)
	session.Set(SessionRoleKey, string(s.Role))
	if s.Token != "" {
		session.Set(SessionTokenKey, s.Token)
	}
	session.Set(SessionMenuKey, false)
	return session.Save()
}

// ClearSession forgets everything about the visitor.
func ClearSession(c *gin.Context) error {
	session := sessions.Default(c)
	session.Clear()
	session.Options(sessions.Options{Path: "/", MaxAge: -1})
	return session.Save()
}

// ToggleMenu flips the profile dropdown flag and returns the new value.
func ToggleMenu(c *gin.Context) (bool, error) {
	session := sessions.Default(c)
	open, _ := session.Get(SessionMenuKey).(bool)
	open = !open
	session.Set(SessionMenuKey, open)
	if err := session.Save(); err != nil {
		logger.Error.Printf("ToggleMenu: failed to save session: %v", err)
		return !open, err
	}
	return open, nil
}
