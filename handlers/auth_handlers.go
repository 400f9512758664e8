package handlers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"portfolio/api-server/internal/auth"
	"portfolio/api-server/utils"
)

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Login checks the admin credentials and issues the session cookie: 8h
// expiry, HttpOnly, SameSite=Strict, Secure outside development.
func (h *ApplicationHandler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest, fmt.Sprintf("cannot parse login JSON: %v", err))
	}
	if err := h.Validate.Struct(&req); err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest, utils.FormatValidationErrors(err))
	}

	if !auth.CheckCredentials(req.Username, req.Password, h.Cfg.AdminUsername, h.Cfg.AdminPassword) {
		return utils.RespondWithError(c, fiber.StatusUnauthorized, "invalid credentials")
	}

	token, err := h.Auth.Sign()
	if err != nil {
		return h.respondError(c, err)
	}

	c.Cookie(&fiber.Cookie{
		Name:     auth.SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.Auth.TTL().Seconds()),
		HTTPOnly: true,
		Secure:   h.Cfg.Environment != "development",
		SameSite: fiber.CookieSameSiteStrictMode,
	})

	h.Logger.WithField("user", req.Username).Info("Admin logged in")
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
	})
}

// AuthStatus reports whether the request carries a valid session cookie.
// Always 200 so the UI can probe without triggering error handling.
func (h *ApplicationHandler) AuthStatus(c *fiber.Ctx) error {
	authenticated := false
	if token := c.Cookies(auth.SessionCookieName); token != "" {
		authenticated = h.Auth.Verify(token) == nil
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"isAuthenticated": authenticated,
	})
}
