package middleware

import (
	"context"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/jobboard/internal/types"
	"github.com/redis/go-redis/v9"
)

// fixed window counter: the first hit in a window sets its expiry
const rateLimitScript = `
local current = redis.call("INCR", KEYS[1])
if current == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
if current > tonumber(ARGV[2]) then
  return 0
end
return 1
`

const limiterTimeout = 250 * time.Millisecond

var errTooManyRequests = types.NewError(fiber.StatusTooManyRequests, types.CodeTooManyRequests,
	"Too many requests, please try again later")

// Limiter decides whether another request for key fits in the current window
type Limiter interface {
	Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error)
}

// RedisLimiter is a Limiter shared by every server instance through Redis
type RedisLimiter struct {
	client *redis.Client
	script *redis.Script
}

// NewRedisLimiter returns nil for a nil client, which disables limiting
func NewRedisLimiter(client *redis.Client) *RedisLimiter {
	if client == nil {
		return nil
	}
	return &RedisLimiter{
		client: client,
		script: redis.NewScript(rateLimitScript),
	}
}

// Allow counts the request and reports whether it is within limit
func (l *RedisLimiter) Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	if l == nil {
		return true, nil
	}
	ttl := window.Milliseconds()
	if ttl <= 0 {
		ttl = 1
	}
	allowed, err := l.script.Run(ctx, l.client, []string{key}, ttl, limit).Int64()
	if err != nil {
		return true, err
	}
	return allowed == 1, nil
}

// RateLimit rejects requests beyond limit per client IP and route within window.
// A nil limiter passes every request, and limiter failures let the request through.
func RateLimit(limiter Limiter, limit int, window time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if limiter == nil || limit <= 0 || window <= 0 {
			return c.Next()
		}

		key := "ratelimit:" + c.Route().Path + ":" + c.IP()

		ctx, cancel := context.WithTimeout(c.UserContext(), limiterTimeout)
		defer cancel()

		allowed, err := limiter.Allow(ctx, key, limit, window)
		if err != nil {
			log.Printf("Rate limiter error for %s: %v", key, err)
		}
		if !allowed {
			return errTooManyRequests
		}
		return c.Next()
	}
}
