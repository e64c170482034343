package middleware

import (
	"math"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// RateLimiter hands out one token bucket per client key. limit requests
// are allowed per window, with the full allowance available as a burst.
type RateLimiter struct {
	mu       sync.Mutex
	clients  map[string]*client
	limit    rate.Limit
	burst    int
	window   time.Duration
	idleTTL  time.Duration
	lastSwep time.Time
	now      func() time.Time
}

type client struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	if limit <= 0 {
		limit = 100
	}
	if window <= 0 {
		window = time.Minute
	}
	return &RateLimiter{
		clients: make(map[string]*client),
		limit:   rate.Limit(float64(limit) / window.Seconds()),
		burst:   limit,
		window:  window,
		idleTTL: 3 * window,
		now:     time.Now,
	}
}

func (rl *RateLimiter) Allow(key string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	rl.sweep(now)

	c, ok := rl.clients[key]
	if !ok {
		c = &client{limiter: rate.NewLimiter(rl.limit, rl.burst)}
		rl.clients[key] = c
	}
	c.lastSeen = now
	return c.limiter.AllowN(now, 1)
}

// sweep forgets clients idle for longer than idleTTL. Caller holds mu.
func (rl *RateLimiter) sweep(now time.Time) {
	if now.Sub(rl.lastSwep) < rl.window {
		return
	}
	rl.lastSwep = now
	for key, c := range rl.clients {
		if now.Sub(c.lastSeen) > rl.idleTTL {
			delete(rl.clients, key)
		}
	}
}

func (rl *RateLimiter) Window() time.Duration {
	return rl.window
}

func RateLimit(limiter *RateLimiter) gin.HandlerFunc {
	return rateLimit(limiter, "rate limit exceeded")
}

// AuthRateLimiter is a stricter per-IP limit for the login endpoint.
func AuthRateLimiter(perMinute int) gin.HandlerFunc {
	if perMinute <= 0 {
		perMinute = 5
	}
	return rateLimit(NewRateLimiter(perMinute, time.Minute), "too many authentication attempts, please try again later")
}

func rateLimit(limiter *RateLimiter, message string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !limiter.Allow(c.ClientIP()) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error":       message,
				"retry_after": int(math.Ceil(limiter.Window().Seconds())),
			})
			return
		}
		c.Next()
	}
}
