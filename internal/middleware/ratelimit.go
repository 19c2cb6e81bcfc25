package middleware

import (
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"shopchat/pkg/response"
)

const visitorIdleEviction = 10 * time.Minute

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimit throttles requests per client IP. One conversational turn can
// fan out into several LLM calls, so the bound protects the providers as
// much as this service.
func (m Middleware) RateLimit() gin.HandlerFunc {
	if m.rateLimitPerMin <= 0 {
		return func(c *gin.Context) { c.Next() }
	}

	var (
		mu       sync.Mutex
		visitors = make(map[string]*visitor)
	)
	limit := rate.Every(time.Minute / time.Duration(m.rateLimitPerMin))
	burst := m.rateLimitPerMin

	return func(c *gin.Context) {
		ip := c.ClientIP()

		mu.Lock()
		v, ok := visitors[ip]
		if !ok {
			v = &visitor{limiter: rate.NewLimiter(limit, burst)}
			visitors[ip] = v
			// Opportunistic cleanup keeps the map from growing with
			// one-off clients.
			for addr, vis := range visitors {
				if time.Since(vis.lastSeen) > visitorIdleEviction {
					delete(visitors, addr)
				}
			}
		}
		v.lastSeen = time.Now()
		allowed := v.limiter.Allow()
		mu.Unlock()

		if !allowed {
			m.l.Warnf(c.Request.Context(), "rate limit exceeded for %s", ip)
			response.TooManyRequests(c)
			c.Abort()
			return
		}
		c.Next()
	}
}
