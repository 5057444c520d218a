package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/qotd/internal/config"
)

const (
	HeaderAPIKey = "x-api-key"

	// ContextKeyKeyName holds the name of the key that authenticated the request.
	ContextKeyKeyName = "auth_key_name"
)

// Middleware handles authentication for HTTP requests.
type Middleware struct {
	service     *Service
	limiter     *RateLimiter
	config      config.Auth
	publicPaths map[string]bool
}

// NewMiddleware creates a new authentication middleware. limiter may be nil.
func NewMiddleware(service *Service, limiter *RateLimiter, cfg config.Auth) *Middleware {
	return &Middleware{
		service: service,
		limiter: limiter,
		config:  cfg,
		publicPaths: map[string]bool{
			"/health": true,
			"/ping":   true,
		},
	}
}

// Handler returns a Gin middleware handler that authenticates requests.
func (m *Middleware) Handler() gin.HandlerFunc {
	if m.config.Mode == config.AuthModeNone {
		return func(c *gin.Context) {
			c.Next()
		}
	}

	return func(c *gin.Context) {
		if m.isPublicPath(c.Request.URL.Path) {
			c.Next()
			return
		}

		ip := c.ClientIP()
		if m.limiter != nil {
			if allowed, retryAfter := m.limiter.Allow(ip); !allowed {
				c.Header("Retry-After", retryAfter.String())
				c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
					"error":       "too many failed authentication attempts",
					"retry_after": retryAfter.String(),
				})
				return
			}
		}

		raw := c.GetHeader(HeaderAPIKey)
		if raw == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "API key required",
			})
			return
		}

		key, err := m.service.VerifyKey(c.Request.Context(), raw)
		if err != nil {
			if m.limiter != nil {
				m.limiter.RecordFailure(ip)
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "invalid API key",
			})
			return
		}

		if m.limiter != nil {
			m.limiter.RecordSuccess(ip)
		}
		c.Set(ContextKeyKeyName, key.Name)
		c.Next()
	}
}

func (m *Middleware) isPublicPath(path string) bool {
	if m.publicPaths[path] {
		return true
	}
	// Anything outside the API is unauthenticated (there is nothing else yet).
	return !strings.HasPrefix(path, "/api/") && path != "/api"
}

// GetKeyName returns the name of the key that authenticated the request, if any.
func GetKeyName(c *gin.Context) string {
	if v, exists := c.Get(ContextKeyKeyName); exists {
		if name, ok := v.(string); ok {
			return name
		}
	}
	return ""
}
