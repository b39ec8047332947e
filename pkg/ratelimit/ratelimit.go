package ratelimit

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// KeyFunc picks the bucket a request is charged against.
type KeyFunc func(c *gin.Context) string

type entry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// Limiter keeps one token bucket per key (user id, falling back to client IP).
type Limiter struct {
	mu       sync.Mutex
	limiters map[string]*entry
	rate     rate.Limit
	burst    int
	keyFunc  KeyFunc
}

func New(r rate.Limit, burst int, keyFunc KeyFunc) *Limiter {
	if keyFunc == nil {
		keyFunc = func(c *gin.Context) string { return c.ClientIP() }
	}
	return &Limiter{
		limiters: make(map[string]*entry),
		rate:     r,
		burst:    burst,
		keyFunc:  keyFunc,
	}
}

func (l *Limiter) get(key string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	if e, ok := l.limiters[key]; ok {
		e.lastSeen = now
		return e.limiter
	}

	// drop idle buckets while we hold the lock
	for k, e := range l.limiters {
		if now.Sub(e.lastSeen) > 10*time.Minute {
			delete(l.limiters, k)
		}
	}

	lim := rate.NewLimiter(l.rate, l.burst)
	l.limiters[key] = &entry{limiter: lim, lastSeen: now}
	return lim
}

// Middleware rejects requests over the limit with 429.
func (l *Limiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := l.keyFunc(c)
		if key == "" {
			key = c.ClientIP()
		}

		if !l.get(key).Allow() {
			retryAfter := 1
			if l.rate > 0 {
				retryAfter = max(int(1.0/float64(l.rate)), 1)
			}
			c.Header("Retry-After", strconv.Itoa(retryAfter))
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "rate limit exceeded"})
			c.Abort()
			return
		}

		c.Next()
	}
}
