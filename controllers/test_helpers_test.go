// file: controllers/test_helpers_test.go
package controllers

import (
	"bytes"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"gig-web/middleware"
	"gig-web/models"
	"gig-web/services"
	"gig-web/templates"
	"github.com/PuerkitoBio/goquery"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

// setupTestRouter creates a new Gin engine with session middleware and the
// real embedded HTML templates.
func setupTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	router := gin.New()

	// Set up sessions with cookie store.
	store := cookie.NewStore([]byte("test-secret"))
	router.Use(sessions.Sessions("testsession", store))

	tmpl, err := templates.Load()
	require.NoError(t, err, "templates must parse")
	router.SetHTMLTemplate(tmpl)
	return router
}

// SetSession signs the given session in through a helper route and returns the
// session cookie that can be attached to subsequent test requests.
func SetSession(router *gin.Engine, route string, s models.Session) *http.Cookie {
	router.GET(route, func(c *gin.Context) {
		if err := middleware.WriteSession(c, s); err != nil {
			c.String(http.StatusInternalServerError, "session save failed")
			return
		}
		c.String(http.StatusOK, "session set")
	})

	req, _ := http.NewRequest("GET", route, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	for _, cookie := range w.Result().Cookies() {
		if cookie.Name == "testsession" {
			return cookie
		}
	}
	return nil
}

// upload is one file part of a test form.
type upload struct {
	field, name, content string
}

// multipartRequest builds a browser-like multipart form submission.
func multipartRequest(t *testing.T, method, target string, fields map[string]string, files ...upload) *http.Request {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	for _, f := range files {
		part, err := w.CreateFormFile(f.field, f.name)
		require.NoError(t, err)
		_, err = io.WriteString(part, f.content)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(method, target, &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func serve(router *gin.Engine, req *http.Request, cookie *http.Cookie) *httptest.ResponseRecorder {
	if cookie != nil {
		req.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func parseHTML(t *testing.T, w *httptest.ResponseRecorder) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(w.Body.Bytes()))
	require.NoError(t, err)
	return doc
}

// recordingMetrics remembers submission outcomes.
type recordingMetrics struct {
	submissions []bool
}

func (r *recordingMetrics) RecordAPICall(string, time.Duration, error) {}

func (r *recordingMetrics) RecordSubmission(_ models.FormMode, success bool) {
	r.submissions = append(r.submissions, success)
}

var _ services.Metrics = (*recordingMetrics)(nil)
