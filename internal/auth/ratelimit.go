package auth

import (
	"sync"
	"time"
)

// RateLimiter blocks a client IP after repeated requests with a bad API key.
// Failures count towards MaxAttempts only inside WindowDuration; reaching the
// limit blocks the IP for LockoutDuration. A valid key clears the IP's record.
type RateLimiter struct {
	cfg RateLimitConfig
	now func() time.Time

	mu       sync.Mutex
	failures map[string]*keyFailures

	stop     chan struct{}
	stopOnce sync.Once
}

type keyFailures struct {
	count        int
	windowStart  time.Time
	blockedUntil time.Time
}

// RateLimitConfig controls bad-key lockouts. Zero fields take the defaults.
type RateLimitConfig struct {
	MaxAttempts     int           // bad keys allowed per window (default: 10)
	WindowDuration  time.Duration // counting window (default: 15m)
	LockoutDuration time.Duration // block after the limit is hit (default: 15m)
	CleanupInterval time.Duration // sweep of stale records (default: 5m)
}

func DefaultRateLimitConfig() RateLimitConfig {
	return RateLimitConfig{
		MaxAttempts:     10,
		WindowDuration:  15 * time.Minute,
		LockoutDuration: 15 * time.Minute,
		CleanupInterval: 5 * time.Minute,
	}
}

func (c RateLimitConfig) withDefaults() RateLimitConfig {
	d := DefaultRateLimitConfig()
	if c.MaxAttempts <= 0 {
		c.MaxAttempts = d.MaxAttempts
	}
	if c.WindowDuration <= 0 {
		c.WindowDuration = d.WindowDuration
	}
	if c.LockoutDuration <= 0 {
		c.LockoutDuration = d.LockoutDuration
	}
	if c.CleanupInterval <= 0 {
		c.CleanupInterval = d.CleanupInterval
	}
	return c
}

// NewRateLimiter starts a limiter and its cleanup goroutine. Call Stop to end it.
func NewRateLimiter(cfg RateLimitConfig) *RateLimiter {
	rl := &RateLimiter{
		cfg:      cfg.withDefaults(),
		now:      time.Now,
		failures: make(map[string]*keyFailures),
		stop:     make(chan struct{}),
	}
	go rl.sweepLoop()
	return rl
}

// Stop ends the cleanup goroutine. It is safe to call more than once.
func (rl *RateLimiter) Stop() {
	rl.stopOnce.Do(func() { close(rl.stop) })
}

// Allow reports whether ip may present a key now. When it may not, the
// returned duration says how long the block lasts.
func (rl *RateLimiter) Allow(ip string) (bool, time.Duration) {
	now := rl.now()

	rl.mu.Lock()
	defer rl.mu.Unlock()

	f, ok := rl.failures[ip]
	if !ok {
		return true, 0
	}
	if now.Before(f.blockedUntil) {
		return false, f.blockedUntil.Sub(now)
	}
	if rl.windowOver(f, now) || f.count < rl.cfg.MaxAttempts {
		return true, 0
	}
	return false, rl.cfg.LockoutDuration
}

// RecordFailure counts a rejected key from ip. It returns true and the block
// duration when this failure reaches the limit.
func (rl *RateLimiter) RecordFailure(ip string) (bool, time.Duration) {
	now := rl.now()

	rl.mu.Lock()
	defer rl.mu.Unlock()

	f, ok := rl.failures[ip]
	if !ok || rl.windowOver(f, now) {
		f = &keyFailures{windowStart: now}
		rl.failures[ip] = f
	}

	f.count++
	if f.count < rl.cfg.MaxAttempts {
		return false, 0
	}
	f.blockedUntil = now.Add(rl.cfg.LockoutDuration)
	return true, rl.cfg.LockoutDuration
}

// RecordSuccess forgets ip's failures after it presents a valid key.
func (rl *RateLimiter) RecordSuccess(ip string) {
	rl.mu.Lock()
	delete(rl.failures, ip)
	rl.mu.Unlock()
}

func (rl *RateLimiter) windowOver(f *keyFailures, now time.Time) bool {
	return now.Sub(f.windowStart) > rl.cfg.WindowDuration
}

func (rl *RateLimiter) sweepLoop() {
	ticker := time.NewTicker(rl.cfg.CleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.sweep()
		case <-rl.stop:
			return
		}
	}
}

// sweep drops records whose window and block have both run out.
func (rl *RateLimiter) sweep() {
	now := rl.now()

	rl.mu.Lock()
	defer rl.mu.Unlock()

	for ip, f := range rl.failures {
		if rl.windowOver(f, now) && !now.Before(f.blockedUntil) {
			delete(rl.failures, ip)
		}
	}
}
