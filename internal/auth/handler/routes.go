package handler

import (
	authconstant "github.com/Tanimou/user-management-system-sub001/pkg/constant"
	"github.com/gofiber/fiber/v2"
)

func RegisterRoutes(app *fiber.App, h *AuthHandler) {
	api := app.Group(authconstant.APIBasePath)

	api.Post("/login", h.Login)
	api.Post("/refresh", h.Refresh)
	api.Post("/logout", h.Logout)

	api.Get("/profile", h.RequireAuth(), h.GetProfile)

	// Admin-only endpoints
	admin := api.Group("/users", h.RequireAuth(), h.RequireRole(authconstant.AdminRoleName))
	admin.Get("/", h.GetAllUsers)
	admin.Patch("/:id/roles", h.UpdateUserRoles)
	admin.Patch("/:id/active", h.SetUserActive)
}
