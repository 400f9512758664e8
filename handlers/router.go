package handlers

import (
	"github.com/gofiber/fiber/v2"

	"portfolio/api-server/middleware"
)

// RegisterRoutes wires all API routes onto the app. Mutating project
// routes sit behind the session-cookie auth gate; the public listing gets
// the production same-origin gate.
func RegisterRoutes(app *fiber.App, h *ApplicationHandler) {
	requireAuth := middleware.RequireAuth(h.Auth)
	sameOrigin := middleware.SameOriginOnly(h.Cfg.Environment)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "ok",
		})
	})

	api := app.Group("/api")

	// Single collection endpoint, method-routed.
	api.Get("/projects", sameOrigin, h.ListProjects)
	api.Post("/projects", requireAuth, h.CreateProject)
	api.Put("/projects", requireAuth, h.UpdateProject)
	api.Delete("/projects", requireAuth, h.DeleteProject)
	api.Patch("/projects", requireAuth, h.RemoveProjectMedia)

	// Media satellite endpoints.
	api.Post("/upload", requireAuth, h.UploadMedia)
	api.Post("/sign-upload", requireAuth, h.SignUpload)

	// Admin session.
	api.Post("/auth/login", h.Login)
	api.Get("/auth/status", h.AuthStatus)
}
