// Package auth authenticates API requests with keys sent in the x-api-key header.
//
// It supports two modes:
//   - "apikey": every /api request needs a valid key (default)
//   - "none": no authentication, for local development
//
// # Configuration
//
//	AUTH_MODE=apikey              # or "none"
//	API_KEY=<secret>              # optional static key accepted alongside stored keys
//	AUTH_BCRYPT_COST=10           # bcrypt cost for stored key secrets
//	AUTH_MAX_FAILED_ATTEMPTS=10   # failed attempts per IP before lockout
//	AUTH_LOCKOUT_DURATION=15m
//
// # Keys
//
// Stored keys look like qotd_<prefix>_<secret>. The prefix is public and
// indexes the row; only a bcrypt hash of the secret is kept. Create keys with
// `qotd apikey create NAME`; the full key is shown once.
//
// # Usage
//
//	service := auth.NewService(db, cfg.Auth)
//	limiter := auth.NewRateLimiter(auth.RateLimitConfig{MaxAttempts: cfg.Auth.MaxFailedAttempts})
//	router.Use(auth.NewMiddleware(service, limiter, cfg.Auth).Handler())
package auth
