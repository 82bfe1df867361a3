// File: services/gig_api.go
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"gig-web/logger"
	"gig-web/models"
	"github.com/avast/retry-go/v4"
)

// GigAPI is the externally owned marketplace API as seen by the front end.
type GigAPI interface {
	GetCategories(ctx context.Context) ([]models.Category, error)
	CreateGig(ctx context.Context, payload *Payload) error
	GetGig(ctx context.Context, id string) (models.Gig, error)
	UpdateGig(ctx context.Context, id string, payload *Payload) error
	ListMyGigs(ctx context.Context) ([]models.Gig, error)
}

// ---------------- bearer token propagation ----------------

type tokenKey struct{}

// WithToken attaches the caller's API token to ctx.
func WithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenKey{}, token)
}

// TokenFromContext returns the API token attached by WithToken, if any.
func TokenFromContext(ctx context.Context) string {
	token, _ := ctx.Value(tokenKey{}).(string)
	return token
}

// ---------------- HTTP implementation ----------------

const maxErrorBody = 4 << 10

// HTTPGigAPI talks to the gig API over HTTP. Only GET calls are retried.
type HTTPGigAPI struct {
	baseURL    string
	client     *http.Client
	attempts   uint
	retryDelay time.Duration
	metrics    Metrics
}

// NewHTTPGigAPI builds a client. attempts below 1 mean a single attempt.
func NewHTTPGigAPI(baseURL string, client *http.Client, attempts uint, metrics Metrics) *HTTPGigAPI {
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}
	if attempts < 1 {
		attempts = 1
	}
	if metrics == nil {
		metrics = NoopMetrics{}
	}
	return &HTTPGigAPI{
		baseURL:    strings.TrimRight(baseURL, "/"),
		client:     client,
		attempts:   attempts,
		retryDelay: 250 * time.Millisecond,
		metrics:    metrics,
	}
}

// GetCategories fetches the ordered category list.
func (a *HTTPGigAPI) GetCategories(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	if err := a.getJSON(ctx, "getCategories", "/categories", &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

// GetGig fetches one gig record.
func (a *HTTPGigAPI) GetGig(ctx context.Context, id string) (models.Gig, error) {
	var gig models.Gig
	if err := a.getJSON(ctx, "getGig", "/gigs/"+url.PathEscape(id), &gig); err != nil {
		return models.Gig{}, err
	}
	return gig, nil
}

// ListMyGigs fetches the gigs owned by the token's user.
func (a *HTTPGigAPI) ListMyGigs(ctx context.Context) ([]models.Gig, error) {
	var gigs []models.Gig
	if err := a.getJSON(ctx, "listMyGigs", "/gigs/mine", &gigs); err != nil {
		return nil, err
	}
	return gigs, nil
}

// CreateGig posts a new gig.
func (a *HTTPGigAPI) CreateGig(ctx context.Context, payload *Payload) error {
	return a.send(ctx, "createGig", http.MethodPost, "/gigs", payload)
}

// UpdateGig replaces an existing gig.
func (a *HTTPGigAPI) UpdateGig(ctx context.Context, id string, payload *Payload) error {
	return a.send(ctx, "updateGig", http.MethodPut, "/gigs/"+url.PathEscape(id), payload)
}

func (a *HTTPGigAPI) getJSON(ctx context.Context, op, path string, out any) error {
	start := time.Now()
	err := retry.Do(
		func() error {
			return a.do(ctx, op, http.MethodGet, path, nil, "", out)
		},
		retry.Context(ctx),
		retry.Attempts(a.attempts),
		retry.Delay(a.retryDelay),
		retry.LastErrorOnly(true),
		retry.RetryIf(Retryable),
		retry.OnRetry(func(n uint, err error) {
			logger.Warn.Printf("GigAPI: retrying %s (attempt %d): %v", op, n+2, err)
		}),
	)
	a.metrics.RecordAPICall(op, time.Since(start), err)
	return err
}

func (a *HTTPGigAPI) send(ctx context.Context, op, method, path string, payload *Payload) error {
	if payload == nil {
		return &ValidationError{Op: op, Message: "empty payload"}
	}
	start := time.Now()
	err := a.do(ctx, op, method, path, payload.Reader(), payload.ContentType, nil)
	a.metrics.RecordAPICall(op, time.Since(start), err)
	return err
}

func (a *HTTPGigAPI) do(ctx context.Context, op, method, path string, body io.Reader, contentType string, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, a.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("%s: build request: %w", op, err)
	}
	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token := TokenFromContext(ctx); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	logger.Debug.Printf("GigAPI: %s %s %s", op, method, req.URL.Path)
	resp, err := a.client.Do(req)
	if err != nil {
		return &NetworkError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return statusError(op, resp)
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &ServerError{Op: op, Status: resp.StatusCode, Message: "invalid response body", Err: err}
	}
	return nil
}

// statusError maps a non-2xx response to a typed error, keeping a short
// message from a JSON {"message"} / {"error"} body or the raw text.
func statusError(op string, resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	msg := strings.TrimSpace(string(raw))

	var body struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if json.Unmarshal(raw, &body) == nil {
		switch {
		case body.Message != "":
			msg = body.Message
		case body.Error != "":
			msg = body.Error
		}
	}

	switch resp.StatusCode {
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return &ValidationError{Op: op, Status: resp.StatusCode, Message: msg}
	default:
		return &ServerError{Op: op, Status: resp.StatusCode, Message: msg}
	}
}
