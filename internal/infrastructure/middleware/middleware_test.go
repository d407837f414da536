package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"groupies/internal/config"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type fakeValidator map[string]uint

func (f fakeValidator) ValidateSession(token string) (uint, error) {
	if id, ok := f[token]; ok {
		return id, nil
	}
	return 0, errors.New("unknown session")
}

func newEngine(mw ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(mw...)
	return r
}

func TestSessionAndRequireLogin(t *testing.T) {
	r := newEngine(Session(fakeValidator{"good": 7}, "sid"))
	r.GET("/private", RequireLogin(), func(c *gin.Context) {
		id, _ := CurrentIdentity(c)
		c.String(http.StatusOK, "user %d", id.UserID)
	})

	tests := []struct {
		name     string
		cookie   string
		wantCode int
		wantLoc  string
		wantBody string
	}{
		{name: "no cookie", wantCode: http.StatusFound, wantLoc: "/login"},
		{name: "bad cookie", cookie: "forged", wantCode: http.StatusFound, wantLoc: "/login"},
		{name: "valid", cookie: "good", wantCode: http.StatusOK, wantBody: "user 7"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/private", nil)
			if tt.cookie != "" {
				req.AddCookie(&http.Cookie{Name: "sid", Value: tt.cookie})
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.wantCode, w.Code)
			assert.Equal(t, tt.wantLoc, w.Header().Get("Location"))
			if tt.wantBody != "" {
				assert.Equal(t, tt.wantBody, w.Body.String())
			}
		})
	}
}

func TestCurrentIdentityWithoutSession(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	_, ok := CurrentIdentity(c)
	assert.False(t, ok)
}

func TestSecureHeaders(t *testing.T) {
	r := newEngine(SecureHeaders(config.SecurityConfig{}, false))
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, "ok") })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
}

func TestSecureHeadersRedirectsToHTTPS(t *testing.T) {
	r := newEngine(SecureHeaders(config.SecurityConfig{SSLRedirect: true, SSLHost: "groupies.example"}, false))
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, "ok") })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "http://localhost/", nil))

	assert.Equal(t, http.StatusMovedPermanently, w.Code)
	assert.Equal(t, "https://groupies.example/", w.Header().Get("Location"))
}
