package serverutils

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/patrickmn/go-cache"
)

// RateLimitMiddleware enforces a fixed per-minute request budget per client
// IP. Counters live in an expiring in-memory cache; the window resets when
// the counter entry expires.
func RateLimitMiddleware(perMinute int) fiber.Handler {
	counters := cache.New(time.Minute, 2*time.Minute)

	return func(ctx *fiber.Ctx) error {
		key := ctx.IP()

		count, err := counters.IncrementInt64(key, 1)
		if err != nil {
			// First request in this window. Add fails when a concurrent
			// first request beat us to it; count through the shared entry
			// instead of resetting it.
			if counters.Add(key, int64(1), cache.DefaultExpiration) == nil {
				count = 1
			} else {
				count, err = counters.IncrementInt64(key, 1)
				if err != nil {
					count = 1
				}
			}
		}

		if count > int64(perMinute) {
			return ctx.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"message": "Rate limit exceeded, try again later",
			})
		}
		return ctx.Next()
	}
}
