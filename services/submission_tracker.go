// File: services/submission_tracker.go
package services

import (
	"errors"
	"sync"
	"time"

	"gig-web/logger"
)

var (
	// ErrSubmissionInFlight is returned when a form instance is already being submitted.
	ErrSubmissionInFlight = errors.New("submission already in flight")
	// ErrMissingFormToken is returned when a post carries no form instance token.
	ErrMissingFormToken = errors.New("missing form token")
)

// SubmissionTracker holds the in-flight flag of every form instance, keyed by
// the token rendered into the form. A token stays locked until End is called or
// its TTL passes, so a crashed handler cannot wedge a form forever.
type SubmissionTracker struct {
	mu       sync.Mutex
	inFlight map[string]time.Time
	ttl      time.Duration
	now      func() time.Time
}

// NewSubmissionTracker creates a tracker. A zero ttl never expires tokens.
func NewSubmissionTracker(ttl time.Duration) *SubmissionTracker {
	return &SubmissionTracker{
		inFlight: make(map[string]time.Time),
		ttl:      ttl,
		now:      time.Now,
	}
}

// Begin marks the form instance as submitting.
func (t *SubmissionTracker) Begin(token string) error {
	if token == "" {
		return ErrMissingFormToken
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if started, exists := t.inFlight[token]; exists && !t.expired(started) {
		logger.Warn.Printf("SubmissionTracker: duplicate submission for form %s ignored", token)
		return ErrSubmissionInFlight
	}
	t.inFlight[token] = t.now()
	logger.Debug.Printf("SubmissionTracker: form %s is submitting", token)
	return nil
}

// End clears the in-flight flag of the form instance.
func (t *SubmissionTracker) End(token string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.inFlight, token)
	logger.Debug.Printf("SubmissionTracker: form %s is idle", token)
}

// InFlight reports whether the form instance is currently submitting.
func (t *SubmissionTracker) InFlight(token string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	started, exists := t.inFlight[token]
	return exists && !t.expired(started)
}

// Sweep drops expired entries and returns how many were removed.
func (t *SubmissionTracker) Sweep() int {
	t.mu.Lock()
	defer t.mu.Unlock()

	removed := 0
	for token, started := range t.inFlight {
		if t.expired(started) {
			delete(t.inFlight, token)
			removed++
		}
	}
	if removed > 0 {
		logger.Info.Printf("SubmissionTracker: swept %d stale submissions", removed)
	}
	return removed
}

// SweepEvery runs Sweep on a ticker until stop is closed. A non-positive
// interval starts nothing and reports false.
func (t *SubmissionTracker) SweepEvery(interval time.Duration, stop <-chan struct{}) bool {
	if interval <= 0 {
		logger.Info.Println("SubmissionTracker: sweeper disabled, submissions never expire")
		return false
	}
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				t.Sweep()
			case <-stop:
				return
			}
		}
	}()
	return true
}

func (t *SubmissionTracker) expired(started time.Time) bool {
	return t.ttl > 0 && t.now().Sub(started) > t.ttl
}
