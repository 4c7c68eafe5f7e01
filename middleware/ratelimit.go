package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

// Per-IP budgets matching the mobile client's retry behavior. These are
// in-process counters; a multi-instance deployment needs a shared store
// behind them.
func newRateLimiter(max int, window time.Duration, message string) fiber.Handler {
	return limiter.New(limiter.Config{
		Max:               max,
		Expiration:        window,
		LimiterMiddleware: limiter.SlidingWindow{},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"success": false,
				"error":   message,
			})
		},
	})
}

// GeneralRateLimiter covers all traffic: 100 requests per IP per 15 minutes.
func GeneralRateLimiter() fiber.Handler {
	return newRateLimiter(100, 15*time.Minute, "Too many requests. Try again later.")
}

// SendOTPRateLimiter throttles code issuance: 5 per IP per 15 minutes.
func SendOTPRateLimiter() fiber.Handler {
	return newRateLimiter(5, 15*time.Minute, "Too many attempts. Try again later.")
}

// VerifyOTPRateLimiter throttles code checks: 10 per IP per 5 minutes.
func VerifyOTPRateLimiter() fiber.Handler {
	return newRateLimiter(10, 5*time.Minute, "Too many verification attempts. Try again later.")
}

// NotificationRateLimiter throttles notification emails: 20 per IP per 15 minutes.
func NotificationRateLimiter() fiber.Handler {
	return newRateLimiter(20, 15*time.Minute, "Too many notifications. Try again later.")
}
