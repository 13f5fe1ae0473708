package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/orderpulse/internal/domain/dto"
)

// client represents a rate-limited client with request count and window start.
type client struct {
	windowStart time.Time
	count       int
}

// rateLimiter is an in-memory fixed-window limiter keyed by client IP.
type rateLimiter struct {
	mu      sync.Mutex
	clients map[string]*client
	limit   int
	window  time.Duration
	now     func() time.Time
}

func (rl *rateLimiter) allow(ip string) bool {
	now := rl.now()
	rl.mu.Lock()
	defer rl.mu.Unlock()

	cl, ok := rl.clients[ip]
	if !ok || now.Sub(cl.windowStart) >= rl.window {
		rl.clients[ip] = &client{windowStart: now, count: 1}
		rl.sweep(now)
		return true
	}
	cl.count++
	return cl.count <= rl.limit
}

// sweep drops clients whose window is over; called with mu held.
func (rl *rateLimiter) sweep(now time.Time) {
	for ip, cl := range rl.clients {
		if now.Sub(cl.windowStart) >= rl.window {
			delete(rl.clients, ip)
		}
	}
}

// RateLimiter limits the number of requests per client IP.
//
// Behavior:
//   - Allows up to limit requests per window (e.g. 60 per minute).
//   - Identifies clients by their IP address.
//   - If limit exceeded, returns HTTP 429 Too Many Requests with the error envelope.
//   - A non-positive limit disables limiting.
//
// Usage:
//
//	router := gin.New()
//	router.Use(middleware.RateLimiter(60, time.Minute))
func RateLimiter(limit int, window time.Duration) gin.HandlerFunc {
	if limit <= 0 {
		return func(c *gin.Context) { c.Next() }
	}
	rl := &rateLimiter{
		clients: make(map[string]*client),
		limit:   limit,
		window:  window,
		now:     time.Now,
	}
	return func(c *gin.Context) {
		if !rl.allow(c.ClientIP()) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, dto.NewErrorResponse("Too many requests", nil))
			return
		}
		c.Next()
	}
}
