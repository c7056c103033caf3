package security

import (
	"fmt"
	"time"

	"github.com/pocketbase/pocketbase/core"
	"github.com/redis/go-redis/v9"
)

// RateLimiter throttles booking mutations with a fixed window counter in
// Redis, keyed by the authenticated user when there is one and by client
// IP otherwise.
type RateLimiter struct {
	redis *redis.Client
}

func NewRateLimiter(redisClient *redis.Client) *RateLimiter {
	return &RateLimiter{redis: redisClient}
}

// Throttle returns a route middleware allowing at most limit requests per
// window per caller. Redis being down fails open; throttling is
// protection, not correctness.
func (r *RateLimiter) Throttle(limit int64, window time.Duration) func(e *core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		key := fmt.Sprintf("ratelimit:ip:%s", e.RealIP())
		if e.Auth != nil {
			key = fmt.Sprintf("ratelimit:user:%s", e.Auth.Id)
		}

		count, err := r.redis.Incr(e.Request.Context(), key).Result()
		if err != nil {
			return e.Next()
		}
		if count == 1 {
			r.redis.Expire(e.Request.Context(), key, window)
		}
		if count > limit {
			return e.JSON(429, map[string]string{
				"error": "Rate limit exceeded. Please try again later.",
			})
		}

		return e.Next()
	}
}
