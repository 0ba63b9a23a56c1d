// File: internal/ratelimit/ratelimit.go
package ratelimit

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"time"
)

// Config holds rate limiting configuration
type Config struct {
	Limit         int           // Requests allowed per window
	Window        time.Duration // Fixed window length
	CleanupPeriod time.Duration // How often expired windows are dropped
}

// window tracks requests for one client
type window struct {
	count int
	start time.Time
}

// Info describes the limiter state after a call to Allow.
type Info struct {
	Allowed    bool
	Limit      int
	Remaining  int
	ResetTime  time.Time
	RetryAfter time.Duration
}

// MemoryRateLimiter is an in-memory fixed-window limiter keyed by client.
type MemoryRateLimiter struct {
	config  *Config
	windows map[string]*window
	mu      sync.Mutex
	stopCh  chan struct{}
	once    sync.Once
	now     func() time.Time
}

// NewMemoryRateLimiter creates a limiter and starts its cleanup goroutine.
func NewMemoryRateLimiter(config *Config) *MemoryRateLimiter {
	rl := newMemoryRateLimiter(config, time.Now)
	if config.CleanupPeriod > 0 {
		go rl.cleanupLoop()
	}
	return rl
}

func newMemoryRateLimiter(config *Config, now func() time.Time) *MemoryRateLimiter {
	return &MemoryRateLimiter{
		config:  config,
		windows: make(map[string]*window),
		stopCh:  make(chan struct{}),
		now:     now,
	}
}

// Allow counts one request for identifier and reports whether it may proceed.
func (rl *MemoryRateLimiter) Allow(identifier string) (bool, *Info) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	w, ok := rl.windows[identifier]
	if !ok || now.Sub(w.start) >= rl.config.Window {
		w = &window{start: now}
		rl.windows[identifier] = w
	}

	reset := w.start.Add(rl.config.Window)
	if w.count >= rl.config.Limit {
		return false, &Info{
			Allowed:    false,
			Limit:      rl.config.Limit,
			Remaining:  0,
			ResetTime:  reset,
			RetryAfter: reset.Sub(now),
		}
	}

	w.count++
	return true, &Info{
		Allowed:   true,
		Limit:     rl.config.Limit,
		Remaining: rl.config.Limit - w.count,
		ResetTime: reset,
	}
}

func (rl *MemoryRateLimiter) cleanupLoop() {
	ticker := time.NewTicker(rl.config.CleanupPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.cleanup()
		case <-rl.stopCh:
			return
		}
	}
}

// cleanup removes expired windows
func (rl *MemoryRateLimiter) cleanup() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	for id, w := range rl.windows {
		if now.Sub(w.start) >= rl.config.Window {
			delete(rl.windows, id)
		}
	}
}

// Close stops the cleanup goroutine. Safe to call more than once.
func (rl *MemoryRateLimiter) Close() {
	rl.once.Do(func() { close(rl.stopCh) })
}

// GetClientIP extracts the real client IP from request
func GetClientIP(r *http.Request) string {
	// Behind a proxy or load balancer
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		if ip := parseFirstIP(forwarded); ip != "" {
			return ip
		}
	}

	if realIP := r.Header.Get("X-Real-IP"); realIP != "" {
		return realIP
	}

	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// parseFirstIP extracts the first IP from a comma-separated list
func parseFirstIP(forwarded string) string {
	first, _, _ := strings.Cut(forwarded, ",")
	return strings.TrimSpace(first)
}
