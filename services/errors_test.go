// file: services/errors_test.go
package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUserMessageAndStatus(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{"in flight", ErrSubmissionInFlight, http.StatusConflict, "already being submitted"},
		{"missing token", ErrMissingFormToken, http.StatusBadRequest, "form session has expired"},
		{"validation", &ValidationError{Op: "createGig", Message: "title is required"}, http.StatusUnprocessableEntity, "Please check the form: title is required"},
		{"network", &NetworkError{Op: "createGig", Err: errors.New("dial tcp: refused")}, http.StatusBadGateway, "couldn't reach the gig service"},
		{"not found", &ServerError{Op: "getGig", Status: http.StatusNotFound}, http.StatusNotFound, "could not be found"},
		{"unauthorized", &ServerError{Op: "createGig", Status: http.StatusUnauthorized}, http.StatusBadGateway, "log in again"},
		{"server", &ServerError{Op: "createGig", Status: http.StatusInternalServerError}, http.StatusBadGateway, "status 500"},
		{"wrapped", fmt.Errorf("outer: %w", &NetworkError{Op: "x", Err: errors.New("y")}), http.StatusBadGateway, "couldn't reach"},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, "Something went wrong"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.status, HTTPStatus(tt.err))
			assert.Contains(t, UserMessage(tt.err), tt.message)
		})
	}

	assert.Empty(t, UserMessage(nil))
}

func TestRetryable(t *testing.T) {
	assert.True(t, Retryable(&NetworkError{Op: "x", Err: errors.New("reset")}))
	assert.True(t, Retryable(&ServerError{Op: "x", Status: http.StatusServiceUnavailable}))
	assert.True(t, Retryable(&ServerError{Op: "x", Status: http.StatusTooManyRequests}))
	assert.False(t, Retryable(&ServerError{Op: "x", Status: http.StatusNotFound}))
	assert.False(t, Retryable(&ValidationError{Op: "x"}))
	assert.False(t, Retryable(&NetworkError{Op: "x", Err: context.Canceled}))
}
