// File: services/auth.go
package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"gig-web/logger"
	"gig-web/models"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gopkg.in/yaml.v3"
)

// ErrInvalidCredentials is returned for a wrong email/password pair.
var ErrInvalidCredentials = errors.New("invalid email or password")

// Authenticator turns credentials into a session snapshot.
type Authenticator interface {
	Authenticate(ctx context.Context, email, password string) (models.Session, error)
}

// ------------------ API-backed authentication ------------------

// APIAuthenticator logs in against the gig API and reads the role from the
// returned JWT.
type APIAuthenticator struct {
	baseURL   string
	client    *http.Client
	jwtSecret []byte
}

// NewAPIAuthenticator builds an authenticator. With an empty secret the token
// is decoded without signature verification; the API still verifies it on
// every call, the front end only uses the claims to pick menus.
func NewAPIAuthenticator(baseURL string, client *http.Client, jwtSecret string) *APIAuthenticator {
	if client == nil {
		client = http.DefaultClient
	}
	if jwtSecret == "" {
		logger.Warn.Println("NewAPIAuthenticator: JWT_SECRET not set, token claims will not be verified")
	}
	return &APIAuthenticator{
		baseURL:   strings.TrimRight(baseURL, "/"),
		client:    client,
		jwtSecret: []byte(jwtSecret),
	}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string `json:"token"`
}

// Authenticate posts the credentials to /auth/login.
func (a *APIAuthenticator) Authenticate(ctx context.Context, email, password string) (models.Session, error) {
	body, err := json.Marshal(loginRequest{Email: email, Password: password})
	if err != nil {
		return models.Session{}, fmt.Errorf("encode login request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.baseURL+"/auth/login", bytes.NewReader(body))
	if err != nil {
		return models.Session{}, fmt.Errorf("build login request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := a.client.Do(req)
	if err != nil {
		return models.Session{}, &NetworkError{Op: "login", Err: err}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusBadRequest:
		_, _ = io.Copy(io.Discard, resp.Body)
		return models.Session{}, ErrInvalidCredentials
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return models.Session{}, statusError("login", resp)
	}

	var lr loginResponse
	if err := json.NewDecoder(resp.Body).Decode(&lr); err != nil {
		return models.Session{}, &ServerError{Op: "login", Status: resp.StatusCode, Message: "invalid response body", Err: err}
	}
	if lr.Token == "" {
		return models.Session{}, &ServerError{Op: "login", Status: resp.StatusCode, Message: "no token in response"}
	}

	return a.sessionFromToken(lr.Token, email)
}

func (a *APIAuthenticator) sessionFromToken(tokenString, fallbackUser string) (models.Session, error) {
	claims := jwt.MapClaims{}
	if len(a.jwtSecret) > 0 {
		_, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
			return a.jwtSecret, nil
		}, jwt.WithValidMethods([]string{"HS256", "HS384", "HS512"}))
		if err != nil {
			return models.Session{}, fmt.Errorf("verify login token: %w", err)
		}
	} else if _, _, err := jwt.NewParser().ParseUnverified(tokenString, claims); err != nil {
		return models.Session{}, fmt.Errorf("decode login token: %w", err)
	}

	roleClaim, _ := claims["role"].(string)
	role, ok := models.ParseRole(roleClaim)
	if !ok {
		logger.Warn.Printf("APIAuthenticator: token carries unknown role %q", roleClaim)
		role = models.Role(roleClaim)
	}

	user, _ := claims.GetSubject()
	if email, ok := claims["email"].(string); ok && email != "" {
		user = email
	}
	if user == "" {
		user = fallbackUser
	}

	return models.Session{LoggedIn: true, Role: role, User: user, Token: tokenString}, nil
}

// ------------------ local users file ------------------

// LocalUser is one account of the local users file. Password is a bcrypt hash.
type LocalUser struct {
	Email    string `json:"email" yaml:"email"`
	Password string `json:"password" yaml:"password"`
	Role     string `json:"role" yaml:"role"`
}

// LocalUsers is the users file layout.
type LocalUsers struct {
	Users []LocalUser `json:"users" yaml:"users"`
}

// LocalAuthenticator checks credentials against a users file, for running the
// front end without the auth API.
type LocalAuthenticator struct {
	users map[string]LocalUser
}

// LoadLocalUsers reads the users file at path. Files ending in .yaml or .yml
// are parsed as YAML, anything else as JSON.
func LoadLocalUsers(path string) (*LocalAuthenticator, error) {
	data, err := os.ReadFile(path) // #nosec G304
	if err != nil {
		return nil, err
	}

	var file LocalUsers
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &file)
	default:
		err = json.Unmarshal(data, &file)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return NewLocalAuthenticator(file.Users)
}

// NewLocalAuthenticator indexes users by lowercased email.
func NewLocalAuthenticator(users []LocalUser) (*LocalAuthenticator, error) {
	byEmail := make(map[string]LocalUser, len(users))
	for _, u := range users {
		if _, ok := models.ParseRole(u.Role); !ok {
			return nil, fmt.Errorf("user %s has unknown role %q", u.Email, u.Role)
		}
		byEmail[strings.ToLower(strings.TrimSpace(u.Email))] = u
	}
	logger.Info.Printf("LocalAuthenticator: loaded %d users", len(byEmail))
	return &LocalAuthenticator{users: byEmail}, nil
}

// Authenticate compares the password with the stored hash.
func (l *LocalAuthenticator) Authenticate(_ context.Context, email, password string) (models.Session, error) {
	u, ok := l.users[strings.ToLower(strings.TrimSpace(email))]
	if !ok || !ComparePasswords(u.Password, password) {
		return models.Session{}, ErrInvalidCredentials
	}
	role, _ := models.ParseRole(u.Role)
	return models.Session{LoggedIn: true, Role: role, User: u.Email}, nil
}

// ComparePasswords checks if the given password matches the hashed password.
func ComparePasswords(hashedPassword, plainPassword string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(plainPassword)) == nil
}
