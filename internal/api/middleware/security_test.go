package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/jonesrussell/pagepulse/internal/api/middleware"
	"github.com/jonesrussell/pagepulse/internal/config/server"
	"github.com/jonesrussell/pagepulse/internal/logger"
)

// mockTimeProvider is a mock implementation of TimeProvider
type mockTimeProvider struct {
	currentTime time.Time
}

func (m *mockTimeProvider) Now() time.Time {
	return m.currentTime
}

func (m *mockTimeProvider) Advance(d time.Duration) {
	m.currentTime = m.currentTime.Add(d)
}

// setupTestRouter creates a new test router with security middleware
func setupTestRouter(
	t *testing.T,
	cfg *server.Config,
) (*gin.Engine, *middleware.SecurityMiddleware, *mockTimeProvider) {
	t.Helper()

	security := middleware.NewSecurityMiddleware(cfg, logger.NewNoOp())
	mockTime := &mockTimeProvider{currentTime: time.Date(2025, 3, 14, 12, 0, 0, 0, time.UTC)}
	security.SetTimeProvider(mockTime)

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(security.Middleware())
	router.GET("/test", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	return router, security, mockTime
}

func TestSecurityMiddleware_Headers(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		config *server.Config
	}{
		{
			name:   "headers sent when security disabled",
			config: &server.Config{Address: ":8080"},
		},
		{
			name:   "headers sent when security enabled",
			config: &server.Config{Address: ":8080", SecurityEnabled: true},
		},
	}

	for i := range tests {
		test := &tests[i]
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()
			router, _, _ := setupTestRouter(t, test.config)

			req := httptest.NewRequest(http.MethodGet, "/test", http.NoBody)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
			assert.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))
			assert.Equal(t, "default-src 'self'", w.Header().Get("Content-Security-Policy"))
			assert.NotEmpty(t, w.Header().Get("Strict-Transport-Security"))
			assert.NotEmpty(t, w.Header().Get("Referrer-Policy"))
		})
	}
}

func TestSecurityMiddleware_RateLimit(t *testing.T) {
	t.Parallel()

	cfg := &server.Config{
		SecurityEnabled: true,
		Address:         ":8080",
	}
	router, security, mockTime := setupTestRouter(t, cfg)

	// Set a very short window for testing
	security.SetRateLimitWindow(100 * time.Millisecond)
	security.SetMaxRequests(2)

	// First request should succeed
	req := httptest.NewRequest(http.MethodGet, "/test", http.NoBody)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	// Second request should succeed
	req = httptest.NewRequest(http.MethodGet, "/test", http.NoBody)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	// Third request should be rate limited
	req = httptest.NewRequest(http.MethodGet, "/test", http.NoBody)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)

	// Wait for rate limit window to expire
	mockTime.Advance(200 * time.Millisecond)

	// Request should succeed again
	req = httptest.NewRequest(http.MethodGet, "/test", http.NoBody)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestSecurityMiddleware_RateLimitDisabled(t *testing.T) {
	t.Parallel()

	cfg := &server.Config{Address: ":8080"}
	router, security, _ := setupTestRouter(t, cfg)
	security.SetMaxRequests(1)

	for range 5 {
		req := httptest.NewRequest(http.MethodGet, "/test", http.NoBody)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
	}
}
