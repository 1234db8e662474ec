package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func setupRateLimitRouter(t *testing.T, rps float64, burst int) *gin.Engine {
	gin.SetMode(gin.TestMode)

	rl := NewIPRateLimiter(rps, burst, time.Minute)
	t.Cleanup(rl.StopCleanup)

	router := gin.New()
	router.Use(rl.Middleware())
	router.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})
	return router
}

func doPing(router *gin.Engine, ip string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("X-Forwarded-For", ip)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestIPRateLimiter_BurstExhausted(t *testing.T) {
	// 补充速率极低，只有突发额度可用
	router := setupRateLimitRouter(t, 0.001, 3)

	for i := 0; i < 3; i++ {
		w := doPing(router, "203.0.113.1")
		assert.Equal(t, http.StatusOK, w.Code, "request %d within burst", i+1)
	}

	w := doPing(router, "203.0.113.1")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Contains(t, w.Body.String(), "Too many requests")
}

func TestIPRateLimiter_PerClientBuckets(t *testing.T) {
	router := setupRateLimitRouter(t, 0.001, 1)

	// 第一个客户端耗尽额度
	assert.Equal(t, http.StatusOK, doPing(router, "203.0.113.1").Code)
	assert.Equal(t, http.StatusTooManyRequests, doPing(router, "203.0.113.1").Code)

	// 不影响另一个客户端
	assert.Equal(t, http.StatusOK, doPing(router, "203.0.113.2").Code)
}
