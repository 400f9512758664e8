package middleware

import (
	"github.com/gofiber/fiber/v2"
)

// SameOriginOnly rejects cross-site reads in production using the
// Sec-Fetch-Site request header. This is an anti-scraping control for
// public endpoints, not an authentication mechanism; outside production it
// is a no-op so local tools can hit the API directly.
func SameOriginOnly(environment string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if environment != "production" {
			return c.Next()
		}

		if c.Get("Sec-Fetch-Site") != "same-origin" {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "forbidden",
			})
		}

		return c.Next()
	}
}
