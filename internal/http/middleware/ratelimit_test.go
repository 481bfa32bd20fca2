package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRateLimiterAllowsBurst(t *testing.T) {
	rl := &RateLimiter{buckets: make(map[string]*bucket), rate: 1, burst: 3}

	for i := 0; i < 3; i++ {
		assert.True(t, rl.Allow("1.2.3.4"), "request %d should pass", i)
	}
	assert.False(t, rl.Allow("1.2.3.4"))
}

func TestRateLimiterIsolatesIPs(t *testing.T) {
	rl := &RateLimiter{buckets: make(map[string]*bucket), rate: 1, burst: 1}

	assert.True(t, rl.Allow("1.1.1.1"))
	assert.False(t, rl.Allow("1.1.1.1"))
	assert.True(t, rl.Allow("2.2.2.2"))
}

func TestRateLimitMiddleware(t *testing.T) {
	handler := RateLimit(1, 2)(okHandler())

	req := httptest.NewRequest(http.MethodPost, "/api/chat/message", nil)
	req.Header.Set("X-Real-Ip", "9.9.9.9")

	for i := 0; i < 2; i++ {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	}

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
}
