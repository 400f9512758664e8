package middleware

import (
	"github.com/gofiber/fiber/v2"

	"portfolio/api-server/internal/auth"
)

// RequireAuth validates the admin session cookie on mutating routes.
// Missing, invalid or expired tokens get a 401 with an error payload.
func RequireAuth(tokenAuth *auth.TokenAuth) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := c.Cookies(auth.SessionCookieName)
		if token == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "unauthorized access",
			})
		}

		if err := tokenAuth.Verify(token); err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "invalid or expired token",
			})
		}

		return c.Next()
	}
}
