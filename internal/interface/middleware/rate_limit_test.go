package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func windowContext(t *testing.T) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/newsletter/subscribe", nil)
	return c, w
}

func TestApplyWindowAllowsUpToMax(t *testing.T) {
	for current := int64(1); current <= 5; current++ {
		c, w := windowContext(t)
		require.True(t, applyWindow(c, 5, current, 1000))
		require.False(t, c.IsAborted())
		require.Equal(t, "5", w.Header().Get("X-RateLimit-Limit"))
	}
}

func TestApplyWindowRejectsSixthRequest(t *testing.T) {
	c, w := windowContext(t)

	require.False(t, applyWindow(c, 5, 6, 30_000))
	require.True(t, c.IsAborted())
	require.Equal(t, http.StatusTooManyRequests, w.Code)
	require.Equal(t, "5", w.Header().Get("X-RateLimit-Limit"))
	require.Equal(t, "0", w.Header().Get("X-RateLimit-Remaining"))
	require.Equal(t, "30", w.Header().Get("Retry-After"))
	require.Contains(t, w.Body.String(), `"success":false`)
}

func TestApplyWindowRemainingCountsDown(t *testing.T) {
	c, w := windowContext(t)
	require.True(t, applyWindow(c, 5, 2, 1000))
	require.Equal(t, "3", w.Header().Get("X-RateLimit-Remaining"))
}

func TestApplyWindowRetryAfterRoundsUp(t *testing.T) {
	c, w := windowContext(t)
	require.False(t, applyWindow(c, 5, 6, 1500))
	require.Equal(t, "2", w.Header().Get("Retry-After"))
}

func TestKeyByIPPrefersResolvedRealIP(t *testing.T) {
	gin.SetMode(gin.TestMode)
	var key string
	r := gin.New()
	r.Use(RealIP())
	r.POST("/subscribe", func(c *gin.Context) {
		key = KeyByIP(c)
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodPost, "/subscribe", nil)
	req.RemoteAddr = "10.0.0.1:40000"
	req.Header.Set("X-Forwarded-For", "203.0.113.7")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, "203.0.113.7", key, "two clients behind one proxy must not share a window")
}

func TestKeyByIPFallsBackWithoutRealIP(t *testing.T) {
	gin.SetMode(gin.TestMode)
	var key string
	r := gin.New()
	r.POST("/subscribe", func(c *gin.Context) {
		key = KeyByIP(c)
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodPost, "/subscribe", nil)
	req.RemoteAddr = "10.0.0.1:40000"
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, "10.0.0.1", key)
}

func TestKeyByUserIDFallsBackToRealIP(t *testing.T) {
	gin.SetMode(gin.TestMode)
	var key string
	r := gin.New()
	r.Use(RealIP())
	r.GET("/me", func(c *gin.Context) {
		key = KeyByUserID(c)
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.RemoteAddr = "10.0.0.1:40000"
	req.Header.Set("X-Forwarded-For", "203.0.113.7")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, "203.0.113.7", key)
}

func TestKeyByUserIDPrefersIdentity(t *testing.T) {
	gin.SetMode(gin.TestMode)
	var key string
	r := gin.New()
	r.GET("/me", func(c *gin.Context) {
		c.Set(CtxUserIDKey, "user-1")
		key = KeyByUserID(c)
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, "user-1", key)
}
