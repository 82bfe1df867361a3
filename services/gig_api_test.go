// file: services/gig_api_test.go
package services

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"gig-web/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAPI(srv *httptest.Server, attempts uint) *HTTPGigAPI {
	api := NewHTTPGigAPI(srv.URL+"/", srv.Client(), attempts, nil)
	api.retryDelay = time.Millisecond
	return api
}

func TestGetCategories_DecodesAndForwardsToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/categories", r.URL.Path)
		assert.Equal(t, "Bearer tok-123", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `[{"id":"c1","name":"Plumbing"},{"id":"c2","name":"Painting"}]`)
	}))
	defer srv.Close()

	cats, err := newTestAPI(srv, 1).GetCategories(WithToken(context.Background(), "tok-123"))
	require.NoError(t, err)
	assert.Equal(t, []models.Category{{ID: "c1", Name: "Plumbing"}, {ID: "c2", Name: "Painting"}}, cats)
}

func TestGetGig_PartialRecord(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/gigs/g%2F1", r.URL.EscapedPath())
		_, _ = io.WriteString(w, `{"id":"g/1","title":"Roof repair","category":"c9"}`)
	}))
	defer srv.Close()

	gig, err := newTestAPI(srv, 1).GetGig(context.Background(), "g/1")
	require.NoError(t, err)
	assert.Equal(t, "Roof repair", gig.Title)
	assert.Empty(t, gig.Draft().ShortDesc)
}

func TestCreateGig_SendsMultipart(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/gigs", r.URL.Path)
		assert.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "Kitchen plumbing", r.FormValue("Title"))
		assert.Equal(t, "cat-1", r.FormValue("CategoryId"))
		w.WriteHeader(http.StatusCreated)
		_, _ = io.WriteString(w, `{"id":"new"}`)
	}))
	defer srv.Close()

	p, err := BuildPayload(CreateKeys, testDraft, models.FileSlots{})
	require.NoError(t, err)
	assert.NoError(t, newTestAPI(srv, 1).CreateGig(context.Background(), p))
}

func TestUpdateGig_UsesPut(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/gigs/g1", r.URL.Path)
		assert.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "Kitchen plumbing", r.FormValue("title"))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	p, err := BuildPayload(LegacyUpdateKeys, testDraft, models.FileSlots{})
	require.NoError(t, err)
	assert.NoError(t, newTestAPI(srv, 1).UpdateGig(context.Background(), "g1", p))
}

func TestSend_ErrorTaxonomy(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		check  func(t *testing.T, err error)
	}{
		{
			name: "validation", status: http.StatusUnprocessableEntity, body: `{"message":"title too long"}`,
			check: func(t *testing.T, err error) {
				var ve *ValidationError
				require.True(t, errors.As(err, &ve))
				assert.Equal(t, "title too long", ve.Message)
			},
		},
		{
			name: "bad request text", status: http.StatusBadRequest, body: "missing CategoryId",
			check: func(t *testing.T, err error) {
				var ve *ValidationError
				require.True(t, errors.As(err, &ve))
				assert.Equal(t, "missing CategoryId", ve.Message)
			},
		},
		{
			name: "server", status: http.StatusInternalServerError, body: `{"error":"boom"}`,
			check: func(t *testing.T, err error) {
				var se *ServerError
				require.True(t, errors.As(err, &se))
				assert.Equal(t, http.StatusInternalServerError, se.Status)
				assert.Equal(t, "boom", se.Message)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = io.WriteString(w, tt.body)
			}))
			defer srv.Close()

			p, err := BuildPayload(CreateKeys, testDraft, models.FileSlots{})
			require.NoError(t, err)
			tt.check(t, newTestAPI(srv, 1).CreateGig(context.Background(), p))
		})
	}
}

func TestGet_RetriesTransientFailures(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = io.WriteString(w, `[]`)
	}))
	defer srv.Close()

	cats, err := newTestAPI(srv, 3).GetCategories(context.Background())
	require.NoError(t, err)
	assert.Empty(t, cats)
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestGet_DoesNotRetryClientErrors(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := newTestAPI(srv, 3).GetGig(context.Background(), "missing")
	var se *ServerError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusNotFound, se.Status)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestCreate_NeverRetried(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	p, err := BuildPayload(CreateKeys, testDraft, models.FileSlots{})
	require.NoError(t, err)
	assert.Error(t, newTestAPI(srv, 5).CreateGig(context.Background(), p))
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	api := newTestAPI(srv, 1)
	srv.Close()

	_, err := api.GetCategories(context.Background())
	var ne *NetworkError
	assert.True(t, errors.As(err, &ne))
	assert.True(t, strings.HasPrefix(err.Error(), "getCategories: network error"))
}

func TestInvalidJSONIsServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `not json`)
	}))
	defer srv.Close()

	_, err := newTestAPI(srv, 1).ListMyGigs(context.Background())
	var se *ServerError
	assert.True(t, errors.As(err, &se))
}

type recordingMetrics struct {
	ops []string
}

func (r *recordingMetrics) RecordAPICall(op string, _ time.Duration, _ error) {
	r.ops = append(r.ops, op)
}
func (r *recordingMetrics) RecordSubmission(models.FormMode, bool) {}

func TestAPICallsAreMeasured(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `[]`)
	}))
	defer srv.Close()

	m := &recordingMetrics{}
	api := NewHTTPGigAPI(srv.URL, srv.Client(), 1, m)
	_, _ = api.GetCategories(context.Background())
	_, _ = api.ListMyGigs(context.Background())

	assert.Equal(t, []string{"getCategories", "listMyGigs"}, m.ops)
}
