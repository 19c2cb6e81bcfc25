package middleware

import (
	"shopchat/pkg/log"
)

// Middleware bundles the cross-cutting gin handlers.
type Middleware struct {
	l               log.Logger
	rateLimitPerMin int
}

// New creates the middleware set. A non-positive rate limit disables
// throttling.
func New(l log.Logger, rateLimitPerMin int) Middleware {
	return Middleware{
		l:               l,
		rateLimitPerMin: rateLimitPerMin,
	}
}
