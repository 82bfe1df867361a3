// Package config loads runtime settings from the environment.
// File: config/config.go
package config

import (
	"crypto/sha256"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"gig-web/logger"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/hkdf"
)

// Auth modes.
const (
	AuthModeAPI   = "api"
	AuthModeLocal = "local"
)

// Metrics backends.
const (
	MetricsNone       = "none"
	MetricsCloudWatch = "cloudwatch"
	MetricsPrometheus = "prometheus"
)

// Update payload key styles. See services.UpdateKeys.
const (
	KeyStyleLegacy = "legacy"
	KeyStyleCreate = "create"
)

// Config holds every setting the web front end needs.
type Config struct {
	Env            string
	Port           string
	ApplicationURL string

	APIBaseURL       string
	APITimeout       time.Duration
	APIRetryAttempts uint

	SessionSecret        string
	SessionEncryptionKey string
	SessionName          string

	AuthMode       string
	JWTSecret      string
	LocalUsersFile string

	UpdateKeyStyle string
	SubmissionTTL  time.Duration
	MaxUploadMB    int64

	MetricsBackend   string
	MetricsNamespace string
	TracingEnabled   bool

	LogDir string
}

// Load reads an optional .env file and then builds the config from the environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		logger.Warn.Println("Load: .env file not found, using system environment variables")
	}
	return FromEnv()
}

// FromEnv builds the config from environment variables, applying development defaults.
func FromEnv() (*Config, error) {
	cfg := &Config{
		Env:              getEnv("APP_ENV", "development"),
		Port:             getEnv("PORT", "8080"),
		ApplicationURL:   getEnv("APPLICATION_URL", "http://localhost:8080"),
		APIBaseURL:       strings.TrimRight(getEnv("API_BASE_URL", "http://localhost:5000/api"), "/"),
		SessionSecret:    getEnv("SESSION_SECRET", "secret"),
		SessionName:      getEnv("SESSION_NAME", "gigsession"),
		AuthMode:         strings.ToLower(getEnv("AUTH_MODE", AuthModeAPI)),
		JWTSecret:        os.Getenv("JWT_SECRET"),
		LocalUsersFile:   getEnv("LOCAL_USERS_FILE", "./config/users.json"),
		UpdateKeyStyle:   strings.ToLower(getEnv("GIG_UPDATE_KEY_STYLE", KeyStyleLegacy)),
		MetricsBackend:   strings.ToLower(getEnv("METRICS_BACKEND", MetricsNone)),
		MetricsNamespace: getEnv("METRICS_NAMESPACE", "GigWeb"),
		LogDir:           os.Getenv("LOG_DIR"),
	}

	cfg.SessionEncryptionKey = os.Getenv("SESSION_ENCRYPTION_KEY")

	var err error
	if cfg.APITimeout, err = durationEnv("API_TIMEOUT", 15*time.Second); err != nil {
		return nil, err
	}
	if cfg.SubmissionTTL, err = durationEnv("SUBMISSION_TTL", 2*time.Minute); err != nil {
		return nil, err
	}
	if cfg.SubmissionTTL < 0 {
		return nil, fmt.Errorf("SUBMISSION_TTL must not be negative, got %s", cfg.SubmissionTTL)
	}

	attempts, err := intEnv("API_RETRY_ATTEMPTS", 1)
	if err != nil {
		return nil, err
	}
	if attempts < 1 {
		return nil, fmt.Errorf("API_RETRY_ATTEMPTS must be at least 1, got %d", attempts)
	}
	cfg.APIRetryAttempts = uint(attempts)

	maxUpload, err := intEnv("MAX_UPLOAD_MB", 32)
	if err != nil {
		return nil, err
	}
	if maxUpload < 1 {
		return nil, fmt.Errorf("MAX_UPLOAD_MB must be positive, got %d", maxUpload)
	}
	cfg.MaxUploadMB = int64(maxUpload)

	if cfg.TracingEnabled, err = boolEnv("TRACING_ENABLED", false); err != nil {
		return nil, err
	}

	switch cfg.AuthMode {
	case AuthModeAPI, AuthModeLocal:
	default:
		return nil, fmt.Errorf("AUTH_MODE must be %q or %q, got %q", AuthModeAPI, AuthModeLocal, cfg.AuthMode)
	}

	switch cfg.MetricsBackend {
	case MetricsNone, MetricsCloudWatch, MetricsPrometheus:
	default:
		return nil, fmt.Errorf("METRICS_BACKEND must be one of %q, %q, %q, got %q",
			MetricsNone, MetricsCloudWatch, MetricsPrometheus, cfg.MetricsBackend)
	}

	switch cfg.UpdateKeyStyle {
	case KeyStyleLegacy, KeyStyleCreate:
	default:
		return nil, fmt.Errorf("GIG_UPDATE_KEY_STYLE must be %q or %q, got %q", KeyStyleLegacy, KeyStyleCreate, cfg.UpdateKeyStyle)
	}

	switch len(cfg.SessionEncryptionKey) {
	case 0, 16, 24, 32:
	default:
		return nil, fmt.Errorf("SESSION_ENCRYPTION_KEY must be 16, 24 or 32 bytes, got %d", len(cfg.SessionEncryptionKey))
	}

	if cfg.Env == "production" && cfg.SessionSecret == "secret" {
		logger.Warn.Println("FromEnv: SESSION_SECRET is using the development default in production")
	}

	return cfg, nil
}

// SessionKeys returns the signing and encryption keys of the session cookie.
// Without SESSION_ENCRYPTION_KEY the AES key is derived from SESSION_SECRET.
func (c *Config) SessionKeys() (hashKey, blockKey []byte, err error) {
	hashKey = []byte(c.SessionSecret)
	if c.SessionEncryptionKey != "" {
		return hashKey, []byte(c.SessionEncryptionKey), nil
	}
	blockKey = make([]byte, 32)
	kdf := hkdf.New(sha256.New, hashKey, nil, []byte("gig-web session encryption"))
	if _, err := io.ReadFull(kdf, blockKey); err != nil {
		return nil, nil, fmt.Errorf("derive session encryption key: %w", err)
	}
	return hashKey, blockKey, nil
}

// MaxUploadBytes is the request body limit for gig submissions.
func (c *Config) MaxUploadBytes() int64 {
	return c.MaxUploadMB << 20
}

// Production reports whether the app runs with production settings.
func (c *Config) Production() bool {
	return c.Env == "production"
}

// ------------------- env helpers -------------------

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func durationEnv(key string, fallback time.Duration) (time.Duration, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", key, err)
	}
	return d, nil
}

func intEnv(key string, fallback int) (int, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", key, err)
	}
	return n, nil
}

func boolEnv(key string, fallback bool) (bool, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("parse %s: %w", key, err)
	}
	return b, nil
}
