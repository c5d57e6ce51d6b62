package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/dxbpulse/internal/domain/dto"
)

// client represents a rate-limited client with request count and window start.
type client struct {
	windowStart time.Time
	count       int
}

// Global in-memory store for rate limiting.
// NOTE: In production, consider Redis or another distributed store for multi-instance deployments.
var (
	clients         = make(map[string]*client)
	window          = time.Minute
	limit           = 60
	rateLimiterLock sync.Mutex
)

// ConfigureRateLimit sets the per-IP allowance and resets all counters.
// Non-positive values keep the current setting.
func ConfigureRateLimit(perWindow int, w time.Duration) {
	rateLimiterLock.Lock()
	defer rateLimiterLock.Unlock()
	if perWindow > 0 {
		limit = perWindow
	}
	if w > 0 {
		window = w
	}
	clients = make(map[string]*client)
}

// RateLimiter is a simple in-memory middleware that limits the number of requests per client IP.
//
// Behavior:
//   - Allows up to `limit` requests per fixed `window` (default: 60 requests per 1 minute).
//   - Identifies clients by their IP address.
//   - If limit exceeded, returns HTTP 429 Too Many Requests with an ErrorResponse.
//   - Clients idle for a full window are dropped from the store.
func RateLimiter() gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()
		now := time.Now()

		rateLimiterLock.Lock()
		cl, ok := clients[ip]
		if !ok || now.Sub(cl.windowStart) > window {
			cl = &client{windowStart: now}
			clients[ip] = cl
			evictIdle(now)
		}
		cl.count++
		exceeded := cl.count > limit
		rateLimiterLock.Unlock()

		if exceeded {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, dto.NewErrorResponse("rate limit exceeded", nil))
			return
		}

		c.Next()
	}
}

// evictIdle must be called with rateLimiterLock held.
func evictIdle(now time.Time) {
	for ip, cl := range clients {
		if now.Sub(cl.windowStart) > 2*window {
			delete(clients, ip)
		}
	}
}
