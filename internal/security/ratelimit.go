package security

import (
	"log"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// RateLimitConfig configures the per-client write limiter.
type RateLimitConfig struct {
	PerMinute       int           // sustained writes per minute per client
	Burst           int           // writes allowed at once
	CleanupInterval time.Duration // how often idle clients are forgotten
}

// DefaultRateLimitConfig returns the limits used when nothing is configured.
func DefaultRateLimitConfig() RateLimitConfig {
	return RateLimitConfig{
		PerMinute:       120,
		Burst:           30,
		CleanupInterval: 5 * time.Minute,
	}
}

type clientLimiter struct {
	limiter    *rate.Limiter
	lastAccess time.Time
}

// RateLimiter throttles state-changing requests per client IP.
// Safe methods are never limited.
type RateLimiter struct {
	perMinute       int
	limit           rate.Limit
	burst           int
	cleanupInterval time.Duration

	mu      sync.Mutex
	clients map[string]*clientLimiter

	stopCh chan struct{}
}

// NewRateLimiter creates a limiter and starts its background cleanup.
func NewRateLimiter(cfg RateLimitConfig) *RateLimiter {
	defaults := DefaultRateLimitConfig()
	if cfg.PerMinute <= 0 {
		cfg.PerMinute = defaults.PerMinute
	}
	if cfg.Burst <= 0 {
		cfg.Burst = defaults.Burst
	}
	if cfg.CleanupInterval <= 0 {
		cfg.CleanupInterval = defaults.CleanupInterval
	}

	rl := &RateLimiter{
		perMinute:       cfg.PerMinute,
		limit:           rate.Limit(float64(cfg.PerMinute) / 60.0),
		burst:           cfg.Burst,
		cleanupInterval: cfg.CleanupInterval,
		clients:         make(map[string]*clientLimiter),
		stopCh:          make(chan struct{}),
	}

	go rl.cleanupLoop()

	return rl
}

// Stop stops the background cleanup goroutine.
func (rl *RateLimiter) Stop() {
	close(rl.stopCh)
}

// Middleware returns the gin middleware enforcing the limit.
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		switch c.Request.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			c.Next()
			return
		}

		ip := c.ClientIP()
		if !rl.Allow(ip) {
			log.Printf("Write rate limit exceeded for %s", ip)
			c.Header("Retry-After", strconv.Itoa(rl.retryAfterSeconds()))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": "Too many requests. Please try again later.",
			})
			return
		}

		c.Next()
	}
}

// Allow reports whether the client may perform one more write now.
func (rl *RateLimiter) Allow(key string) bool {
	rl.mu.Lock()
	cl, exists := rl.clients[key]
	if !exists {
		cl = &clientLimiter{limiter: rate.NewLimiter(rl.limit, rl.burst)}
		rl.clients[key] = cl
	}
	cl.lastAccess = time.Now()
	rl.mu.Unlock()

	return cl.limiter.Allow()
}

// ClientCount returns the number of tracked clients.
func (rl *RateLimiter) ClientCount() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return len(rl.clients)
}

func (rl *RateLimiter) retryAfterSeconds() int {
	return (60 + rl.perMinute - 1) / rl.perMinute
}

func (rl *RateLimiter) cleanupLoop() {
	ticker := time.NewTicker(rl.cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.cleanup(time.Now())
		case <-rl.stopCh:
			return
		}
	}
}

// cleanup forgets clients idle for more than two cleanup intervals.
func (rl *RateLimiter) cleanup(now time.Time) {
	ttl := rl.cleanupInterval * 2

	rl.mu.Lock()
	defer rl.mu.Unlock()
	for key, cl := range rl.clients {
		if now.Sub(cl.lastAccess) > ttl {
			delete(rl.clients, key)
		}
	}
}
