package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestRateLimitMiddleware(t *testing.T) {
	r := gin.New()
	r.Use(RateLimitMiddleware(2))
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	do := func(ip string) int {
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.Header.Set("X-Forwarded-For", ip)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w.Code
	}

	assert.Equal(t, http.StatusOK, do("10.0.0.1"))
	assert.Equal(t, http.StatusOK, do("10.0.0.1"))
	assert.Equal(t, http.StatusTooManyRequests, do("10.0.0.1"))
	assert.Equal(t, http.StatusOK, do("10.0.0.2"), "limits are per IP")
}

func TestGetClientIP(t *testing.T) {
	tests := []struct {
		name    string
		headers map[string]string
		remote  string
		want    string
	}{
		{"forwarded list", map[string]string{"X-Forwarded-For": "1.2.3.4, 5.6.7.8"}, "9.9.9.9:1234", "1.2.3.4"},
		{"real ip", map[string]string{"X-Real-IP": "4.3.2.1"}, "9.9.9.9:1234", "4.3.2.1"},
		{"garbage header", map[string]string{"X-Forwarded-For": "nope"}, "9.9.9.9:1234", "9.9.9.9"},
		{"remote only", nil, "9.9.9.9:1234", "9.9.9.9"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := gin.CreateTestContext(httptest.NewRecorder())
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
			c.Request.RemoteAddr = tt.remote
			for k, v := range tt.headers {
				c.Request.Header.Set(k, v)
			}
			assert.Equal(t, tt.want, getClientIP(c))
		})
	}
}

func TestSignupSession(t *testing.T) {
	r := gin.New()
	r.Use(SignupSession())
	r.POST("/api/signup/", func(c *gin.Context) { c.String(http.StatusOK, SignupSessionID(c)) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/signup/", nil))
	id := w.Body.String()
	require.NoError(t, uuid.Validate(id))

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, SignupCookieName, cookies[0].Name)
	assert.Equal(t, id, cookies[0].Value)
	assert.True(t, cookies[0].HttpOnly)

	req := httptest.NewRequest(http.MethodPost, "/api/signup/", nil)
	req.AddCookie(cookies[0])
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, id, w.Body.String(), "an existing cookie is reused")
	assert.Empty(t, w.Result().Cookies())

	req = httptest.NewRequest(http.MethodPost, "/api/signup/", nil)
	req.AddCookie(&http.Cookie{Name: SignupCookieName, Value: "forged"})
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.NotEqual(t, "forged", w.Body.String())
}

func TestRequestLogger(t *testing.T) {
	r := gin.New()
	r.Use(RequestLogger(zap.NewNop()))
	r.GET("/", func(c *gin.Context) {
		_, ok := c.Get("logger")
		assert.True(t, ok)
		c.Status(http.StatusNoContent)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "abc")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "abc", w.Header().Get("X-Request-ID"))
}
