package handlers

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// visitorTTL is how long an idle client's bucket is kept.
const visitorTTL = 15 * time.Minute

type visitor struct {
	lim      *rate.Limiter
	lastSeen time.Time
}

// ipLimiter keeps one token bucket per client IP. Buckets idle for longer
// than ttl are dropped.
type ipLimiter struct {
	mu        sync.Mutex
	visitors  map[string]*visitor
	rate      rate.Limit
	burst     int
	ttl       time.Duration
	now       func() time.Time
	lastPrune time.Time
}

func newIPLimiter(perMinute, burst int) *ipLimiter {
	if burst <= 0 {
		burst = 1
	}
	return &ipLimiter{
		visitors:  make(map[string]*visitor),
		rate:      rate.Every(time.Minute / time.Duration(perMinute)),
		burst:     burst,
		ttl:       visitorTTL,
		now:       time.Now,
		lastPrune: time.Now(),
	}
}

func (l *ipLimiter) get(ip string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if now.Sub(l.lastPrune) >= l.ttl {
		l.prune(now)
	}

	v, ok := l.visitors[ip]
	if !ok {
		v = &visitor{lim: rate.NewLimiter(l.rate, l.burst)}
		l.visitors[ip] = v
	}
	v.lastSeen = now
	return v.lim
}

// prune must be called with mu held.
func (l *ipLimiter) prune(now time.Time) {
	for ip, v := range l.visitors {
		if now.Sub(v.lastSeen) >= l.ttl {
			delete(l.visitors, ip)
		}
	}
	l.lastPrune = now
}

func (l *ipLimiter) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.visitors)
}

func rateLimitMiddleware(perMinute, burst int) gin.HandlerFunc {
	limiter := newIPLimiter(perMinute, burst)

	return func(c *gin.Context) {
		ip := c.ClientIP()
		if ip == "" {
			ip = c.RemoteIP()
		}
		if !limiter.get(ip).Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": "rate limit exceeded",
			})
			return
		}
		c.Next()
	}
}
