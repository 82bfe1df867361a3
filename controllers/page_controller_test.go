// controllers/page_controller_test.go
package controllers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"gig-web/models"
	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestHealth tests the Health function
func TestHealth(t *testing.T) {
	router := setupTestRouter(t)
	router.GET("/health", Health)

	w := serve(router, httptest.NewRequest("GET", "/health", nil), nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "OK", w.Body.String())
}

func links(doc *goquery.Document, selector string) []string {
	var out []string
	doc.Find(selector).Each(func(_ int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		out = append(out, strings.TrimSpace(s.Text())+" "+href)
	})
	return out
}

// TestNavbar_PerRole checks the exact link set rendered for each session kind.
func TestNavbar_PerRole(t *testing.T) {
	tests := []struct {
		name        string
		session     *models.Session
		mainLinks   []string
		profile     []string
		showProfile bool
	}{
		{
			name:      "anonymous",
			mainLinks: []string{"Login /login", "Register /register"},
		},
		{
			name:        "user",
			session:     &models.Session{LoggedIn: true, User: "u@example.com", Role: models.RoleUser},
			mainLinks:   []string{"Discover Gigs /discover-gigs", "Find a Worker /rapid-intervention"},
			profile:     []string{"Messages /messages", "My Orders /my-orders", "Profile /profile", "Become a Service Provider /become-seller"},
			showProfile: true,
		},
		{
			name:        "admin",
			session:     &models.Session{LoggedIn: true, User: "a@example.com", Role: models.RoleAdmin},
			mainLinks:   []string{"Dashboard /dashboard", "My Gigs /my-gigs", "Add Gig /add"},
			profile:     []string{"Messages /messages", "Orders /orders", "Profile /profile"},
			showProfile: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := setupTestRouter(t)
			router.GET("/", Index)
			router.POST("/nav/profile-menu", ToggleProfileMenu)

			var cookie *http.Cookie
			if tt.session != nil {
				cookie = SetSession(router, "/set-session", *tt.session)
				require.NotNil(t, cookie)

				// open the dropdown so the profile links are rendered
				w := serve(router, httptest.NewRequest("POST", "/nav/profile-menu", nil), cookie)
				require.Equal(t, http.StatusFound, w.Code)
				for _, c := range w.Result().Cookies() {
					if c.Name == "testsession" {
						cookie = c
					}
				}
			}

			w := serve(router, httptest.NewRequest("GET", "/", nil), cookie)
			require.Equal(t, http.StatusOK, w.Code)
			doc := parseHTML(t, w)

			mainLinks := links(doc, "nav a.nav-link")
			require.NotEmpty(t, mainLinks)
			assert.Equal(t, "About Us /aboutus", mainLinks[0])
			assert.Equal(t, tt.mainLinks, mainLinks[1:])

			assert.Equal(t, tt.showProfile, doc.Find("#profile-toggle").Length() == 1)
			assert.Equal(t, tt.profile, links(doc, "#profile-menu a.profile-link"))
			if tt.showProfile {
				assert.Equal(t, "Logout", strings.TrimSpace(doc.Find("#profile-menu button.logout").Text()))
			}
			brand, _ := doc.Find("nav a.brand").Attr("href")
			assert.Equal(t, "/", brand)
		})
	}
}

func TestFooterIsRendered(t *testing.T) {
	router := setupTestRouter(t)
	router.GET("/", Index)

	doc := parseHTML(t, serve(router, httptest.NewRequest("GET", "/", nil), nil))

	var titles []string
	doc.Find("footer .column h6").Each(func(_ int, s *goquery.Selection) {
		titles = append(titles, s.Text())
	})
	assert.Contains(t, titles, "Categories")
	assert.Contains(t, titles, "About")
	assert.Contains(t, titles, "Support")
	assert.Equal(t, 4, doc.Find("footer a.social-link").Length())
	assert.Contains(t, doc.Find("footer .copyright").Text(), "LMO9EF 3.0")
}

// TestToggleProfileMenu_Parity toggling twice leaves the dropdown closed.
func TestToggleProfileMenu_Parity(t *testing.T) {
	router := setupTestRouter(t)
	router.GET("/", Index)
	router.POST("/nav/profile-menu", ToggleProfileMenu)
	cookie := SetSession(router, "/set-session", models.Session{LoggedIn: true, User: "u@example.com", Role: models.RoleUser})

	menuVisible := func() bool {
		w := serve(router, httptest.NewRequest("GET", "/", nil), cookie)
		return parseHTML(t, w).Find("#profile-menu").Length() == 1
	}
	toggle := func() {
		req := httptest.NewRequest("POST", "/nav/profile-menu", strings.NewReader("return=/my-gigs"))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		w := serve(router, req, cookie)
		require.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, "/my-gigs", w.Header().Get("Location"))
		for _, c := range w.Result().Cookies() {
			if c.Name == "testsession" {
				cookie = c
			}
		}
	}

	assert.False(t, menuVisible(), "dropdown starts closed")
	toggle()
	assert.True(t, menuVisible())
	toggle()
	assert.False(t, menuVisible())
}

func TestSafeReturnPath(t *testing.T) {
	assert.Equal(t, "/add", safeReturnPath("/add"))
	assert.Equal(t, "/", safeReturnPath(""))
	assert.Equal(t, "/", safeReturnPath("//evil.example.com"))
	assert.Equal(t, "/", safeReturnPath("/\\evil.example.com"))
	assert.Equal(t, "/", safeReturnPath("https://evil.example.com"))
}
