package middleware

import (
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// RateLimiter is a fixed-window per-client limiter keyed by remote IP.
type RateLimiter struct {
	window time.Duration
	max    int

	mu      sync.Mutex
	buckets map[string]*windowCounter
}

type windowCounter struct {
	start time.Time
	count int
}

// NewRateLimiter constructs a limiter allowing max requests per window.
func NewRateLimiter(window time.Duration, max int) *RateLimiter {
	if window <= 0 {
		window = time.Minute
	}
	if max <= 0 {
		max = 100
	}
	return &RateLimiter{
		window:  window,
		max:     max,
		buckets: make(map[string]*windowCounter),
	}
}

// Allow reports whether a request from key fits into the current window.
func (l *RateLimiter) Allow(key string, now time.Time) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	bucket, ok := l.buckets[key]
	if !ok || now.Sub(bucket.start) >= l.window {
		l.buckets[key] = &windowCounter{start: now, count: 1}
		l.evictStale(now)
		return true
	}
	if bucket.count >= l.max {
		return false
	}
	bucket.count++
	return true
}

// evictStale drops expired windows; called under the lock.
func (l *RateLimiter) evictStale(now time.Time) {
	if len(l.buckets) < 4096 {
		return
	}
	for key, bucket := range l.buckets {
		if now.Sub(bucket.start) >= l.window {
			delete(l.buckets, key)
		}
	}
}

// Limit rejects requests exceeding the per-client budget with 429.
func (l *RateLimiter) Limit() gin.HandlerFunc {
	return func(c *gin.Context) {
		host, _, err := net.SplitHostPort(c.Request.RemoteAddr)
		if err != nil {
			host = c.Request.RemoteAddr
		}
		if !l.Allow(host, time.Now()) {
			c.AbortWithStatus(http.StatusTooManyRequests)
			return
		}
		c.Next()
	}
}
