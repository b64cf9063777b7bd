package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"journal-craft/models"
)

// clientLimiter tracks one client's limiter and its last use so stale
// entries can be evicted.
type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter caps requests per client IP within a one-minute window.
// Requests beyond the cap are rejected with 429 before any work happens.
type RateLimiter struct {
	mu       sync.Mutex
	clients  map[string]*clientLimiter
	perMin   int
	lastScan time.Time
}

func NewRateLimiter(perMin int) *RateLimiter {
	return &RateLimiter{
		clients:  map[string]*clientLimiter{},
		perMin:   perMin,
		lastScan: time.Now(),
	}
}

// Middleware returns the gin handler enforcing the limit.
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !rl.Allow(c.ClientIP()) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, models.ErrorResponse{
				Error:   "Too many requests",
				Details: "rate limit exceeded, try again later",
			})
			return
		}
		c.Next()
	}
}

// Allow reports whether the client may proceed, consuming one token.
func (rl *RateLimiter) Allow(clientIP string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	if now.Sub(rl.lastScan) > 10*time.Minute {
		for ip, client := range rl.clients {
			if now.Sub(client.lastSeen) > 10*time.Minute {
				delete(rl.clients, ip)
			}
		}
		rl.lastScan = now
	}

	client, ok := rl.clients[clientIP]
	if !ok {
		client = &clientLimiter{
			limiter: rate.NewLimiter(rate.Limit(float64(rl.perMin)/60.0), rl.perMin),
		}
		rl.clients[clientIP] = client
	}
	client.lastSeen = now
	return client.limiter.Allow()
}
