// Package middleware provides security middleware for the API.
package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jonesrussell/pagepulse/internal/config/server"
	"github.com/jonesrussell/pagepulse/internal/logger"
)

// TimeProvider is an interface for getting the current time
type TimeProvider interface {
	Now() time.Time
}

// realTimeProvider is the default implementation of TimeProvider
type realTimeProvider struct{}

func (r *realTimeProvider) Now() time.Time {
	return time.Now()
}

const (
	// DefaultRateLimitWindow is the default window for rate limiting.
	// Analyses are expensive upstream calls, so the limit is low.
	DefaultRateLimitWindow = 10 * time.Second
	// DefaultRateLimit is the default number of requests allowed per window
	DefaultRateLimit = 5
)

// SecurityMiddleware implements security measures for the API
type SecurityMiddleware struct {
	config          *server.Config
	logger          logger.Interface
	rateLimiter     map[string]rateLimitInfo
	mu              sync.Mutex
	timeProvider    TimeProvider
	rateLimitWindow time.Duration
	maxRequests     int
}

// rateLimitInfo holds information about rate limiting for a client
type rateLimitInfo struct {
	count      int
	lastAccess time.Time
}

// NewSecurityMiddleware creates a new security middleware instance
func NewSecurityMiddleware(cfg *server.Config, log logger.Interface) *SecurityMiddleware {
	return &SecurityMiddleware{
		config:          cfg,
		logger:          log,
		rateLimiter:     make(map[string]rateLimitInfo),
		timeProvider:    &realTimeProvider{},
		rateLimitWindow: DefaultRateLimitWindow,
		maxRequests:     DefaultRateLimit,
	}
}

// SetTimeProvider sets a custom time provider for testing
func (m *SecurityMiddleware) SetTimeProvider(provider TimeProvider) {
	m.timeProvider = provider
}

// SetRateLimitWindow sets the rate limit window duration
func (m *SecurityMiddleware) SetRateLimitWindow(window time.Duration) {
	m.rateLimitWindow = window
}

// SetMaxRequests sets the number of requests allowed per window
func (m *SecurityMiddleware) SetMaxRequests(limit int) {
	m.maxRequests = limit
}

// Middleware returns the security middleware function.
func (m *SecurityMiddleware) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		m.addSecurityHeaders(c)

		if !m.config.SecurityEnabled {
			c.Next()
			return
		}

		if !m.checkRateLimit(c.ClientIP()) {
			m.logger.Warn("Rate limit exceeded", "client_ip", c.ClientIP())
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": "rate limit exceeded",
			})
			return
		}

		c.Next()
	}
}

// checkRateLimit checks if the client has exceeded the rate limit
func (m *SecurityMiddleware) checkRateLimit(clientIP string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.timeProvider.Now()
	info, exists := m.rateLimiter[clientIP]

	if !exists {
		m.rateLimiter[clientIP] = rateLimitInfo{
			count:      1,
			lastAccess: now,
		}
		return true
	}

	// Check if the window has expired
	if now.Sub(info.lastAccess) > m.rateLimitWindow {
		info.count = 1
		info.lastAccess = now
		m.rateLimiter[clientIP] = info
		return true
	}

	// Check if the client has exceeded the limit
	if info.count >= m.maxRequests {
		return false
	}

	// Increment the count
	info.count++
	info.lastAccess = now
	m.rateLimiter[clientIP] = info
	return true
}

// addSecurityHeaders adds security headers to the response
func (m *SecurityMiddleware) addSecurityHeaders(c *gin.Context) {
	c.Header("X-Content-Type-Options", "nosniff")
	c.Header("X-Frame-Options", "DENY")
	c.Header("X-XSS-Protection", "1; mode=block")
	c.Header("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
	c.Header("Content-Security-Policy", "default-src 'self'")
	c.Header("Referrer-Policy", "strict-origin-when-cross-origin")
}
