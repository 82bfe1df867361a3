// Package models defines data structures used across the application.
// File: models/session.go
package models

import "strings"

// ----------------------- session model -----------------------

// Role is the marketplace role carried by a signed-in user.
type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

// ParseRole normalises a role string. Unknown values return false.
func ParseRole(s string) (Role, bool) {
	switch Role(strings.ToUpper(strings.TrimSpace(s))) {
	case RoleUser:
		return RoleUser, true
	case RoleAdmin:
		return RoleAdmin, true
	default:
		return "", false
	}
}

// Session is an immutable snapshot of the visitor's auth state for one request.
type Session struct {
	LoggedIn bool
	Role     Role
	User     string
	Token    string // bearer token for the gig API, empty for local accounts
	MenuOpen bool   // profile dropdown visibility
}

// Anonymous is the snapshot used when nobody is signed in.
var Anonymous = Session{}
