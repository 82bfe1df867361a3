// Package services holds the gig API client and the supporting services around it.
// File: services/errors.go
package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

// ValidationError means the submission was rejected as invalid, either locally
// or by the API (400/422).
type ValidationError struct {
	Op      string
	Status  int
	Message string
	Err     error // local cause, nil for API rejections
}

func (e *ValidationError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s: validation failed (%d): %s", e.Op, e.Status, e.Message)
	}
	return fmt.Sprintf("%s: validation failed: %s", e.Op, e.Message)
}

func (e *ValidationError) Unwrap() error { return e.Err }

// NetworkError means the API could not be reached or timed out.
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s: network error: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// ServerError is any other non-success answer from the API.
type ServerError struct {
	Op      string
	Status  int
	Message string
	Err     error
}

func (e *ServerError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s: server error (%d)", e.Op, e.Status)
	}
	return fmt.Sprintf("%s: server error (%d): %s", e.Op, e.Status, e.Message)
}

func (e *ServerError) Unwrap() error { return e.Err }

// Retryable reports whether a failed idempotent call may be attempted again.
func Retryable(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var netErr *NetworkError
	if errors.As(err, &netErr) {
		return true
	}
	var srvErr *ServerError
	if errors.As(err, &srvErr) {
		return srvErr.Status >= 500 || srvErr.Status == http.StatusTooManyRequests
	}
	return false
}

// UserMessage turns an error into the text shown in the page's error banner.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}

	var valErr *ValidationError
	var netErr *NetworkError
	var srvErr *ServerError
	switch {
	case errors.Is(err, ErrSubmissionInFlight):
		return "This form is already being submitted. Please wait."
	case errors.Is(err, ErrMissingFormToken):
		return "Your form session has expired. Please review the form and submit again."
	case errors.As(err, &valErr):
		if valErr.Message != "" {
			return "Please check the form: " + valErr.Message
		}
		return "Please check the form and try again."
	case errors.As(err, &netErr):
		return "We couldn't reach the gig service. Please try again in a moment."
	case errors.As(err, &srvErr):
		switch srvErr.Status {
		case http.StatusNotFound:
			return "That gig could not be found."
		case http.StatusUnauthorized, http.StatusForbidden:
			return "You are not allowed to do that. Please log in again."
		}
		return fmt.Sprintf("The gig service failed to process the request (status %d). Please try again later.", srvErr.Status)
	default:
		return "Something went wrong. Please try again."
	}
}

// HTTPStatus picks the response code for a page re-rendered after err.
func HTTPStatus(err error) int {
	var valErr *ValidationError
	var netErr *NetworkError
	var srvErr *ServerError
	switch {
	case errors.Is(err, ErrSubmissionInFlight):
		return http.StatusConflict
	case errors.Is(err, ErrMissingFormToken):
		return http.StatusBadRequest
	case errors.As(err, &valErr):
		return http.StatusUnprocessableEntity
	case errors.As(err, &netErr):
		return http.StatusBadGateway
	case errors.As(err, &srvErr):
		if srvErr.Status == http.StatusNotFound {
			return http.StatusNotFound
		}
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
