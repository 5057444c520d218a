package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/qotd/internal/config"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func setupRouter(t *testing.T, mode config.AuthMode, limiter *RateLimiter) (*gin.Engine, string) {
	t.Helper()

	cfg := config.Auth{Mode: mode, BcryptCost: 4}
	service := NewService(setupTestDB(t), cfg)
	_, full, err := service.CreateKey(context.Background(), "test")
	if err != nil {
		t.Fatalf("CreateKey() error = %v", err)
	}

	router := gin.New()
	router.Use(NewMiddleware(service, limiter, cfg).Handler())
	router.GET("/health", func(c *gin.Context) { c.String(http.StatusOK, "ok") })
	router.GET("/api/stats", func(c *gin.Context) {
		c.String(http.StatusOK, GetKeyName(c))
	})
	return router, full
}

func do(router *gin.Engine, path, key string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if key != "" {
		req.Header.Set(HeaderAPIKey, key)
	}
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func TestMiddleware_NoAuthMode(t *testing.T) {
	router, _ := setupRouter(t, config.AuthModeNone, nil)

	if rr := do(router, "/api/stats", ""); rr.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", rr.Code)
	}
}

func TestMiddleware_PublicPaths(t *testing.T) {
	router, _ := setupRouter(t, config.AuthModeAPIKey, nil)

	if rr := do(router, "/health", ""); rr.Code != http.StatusOK {
		t.Errorf("/health: expected status 200, got %d", rr.Code)
	}
}

func TestMiddleware_RequiresKey(t *testing.T) {
	router, full := setupRouter(t, config.AuthModeAPIKey, nil)

	if rr := do(router, "/api/stats", ""); rr.Code != http.StatusUnauthorized {
		t.Errorf("missing key: expected 401, got %d", rr.Code)
	}
	if rr := do(router, "/api/stats", "qotd_000000000000_nope"); rr.Code != http.StatusUnauthorized {
		t.Errorf("bad key: expected 401, got %d", rr.Code)
	}

	rr := do(router, "/api/stats", full)
	if rr.Code != http.StatusOK {
		t.Fatalf("valid key: expected 200, got %d", rr.Code)
	}
	if rr.Body.String() != "test" {
		t.Errorf("key name in context = %q, want test", rr.Body.String())
	}
}

func TestMiddleware_LocksOutAfterFailures(t *testing.T) {
	limiter := NewRateLimiter(RateLimitConfig{
		MaxAttempts:     2,
		WindowDuration:  time.Minute,
		LockoutDuration: time.Minute,
	})
	defer limiter.Stop()
	router, full := setupRouter(t, config.AuthModeAPIKey, limiter)

	do(router, "/api/stats", "wrong")
	do(router, "/api/stats", "wrong")

	rr := do(router, "/api/stats", full)
	if rr.Code != http.StatusTooManyRequests {
		t.Errorf("expected 429 after lockout, got %d", rr.Code)
	}
	if rr.Header().Get("Retry-After") == "" {
		t.Error("expected Retry-After header")
	}
}
