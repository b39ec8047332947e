package ratelimit

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"golang.org/x/time/rate"
)

func newEngine(l *Limiter) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("userID", c.GetHeader("X-User"))
		c.Next()
	})
	r.Use(l.Middleware())
	r.GET("/test", func(c *gin.Context) { c.String(http.StatusOK, "ok") })
	return r
}

func do(r *gin.Engine, user string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set("X-User", user)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestLimiter_RejectsOverLimit(t *testing.T) {
	r := newEngine(New(rate.Limit(1), 1, func(c *gin.Context) string { return c.GetString("userID") }))

	assert.Equal(t, http.StatusOK, do(r, "alice").Code)

	rec := do(r, "alice")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "1", rec.Header().Get("Retry-After"))
}

func TestLimiter_BucketsArePerKey(t *testing.T) {
	r := newEngine(New(rate.Limit(1), 1, func(c *gin.Context) string { return c.GetString("userID") }))

	assert.Equal(t, http.StatusOK, do(r, "alice").Code)
	assert.Equal(t, http.StatusOK, do(r, "bob").Code)
	assert.Equal(t, http.StatusTooManyRequests, do(r, "alice").Code)
}
