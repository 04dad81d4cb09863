package handler

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

const (
	localUserID = "userID"
	localRoles  = "roles"
)

// RequireAuth validates the Bearer access token and stores the caller
// identity in request locals.
func (h *AuthHandler) RequireAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(fiber.HeaderAuthorization)

		tokenString, ok := strings.CutPrefix(authHeader, "Bearer ")
		if !ok || tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "missing access token"})
		}

		claims, err := h.tokens.VerifyAccessToken(tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid access token"})
		}

		c.Locals(localUserID, claims.Subject)
		c.Locals(localRoles, claims.Roles)

		return c.Next()
	}
}

// RequireRole allows the request through only when the authenticated
// caller holds the given role. Must run after RequireAuth.
func (h *AuthHandler) RequireRole(role string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		roles, _ := c.Locals(localRoles).([]string)
		for _, r := range roles {
			if r == role {
				return c.Next()
			}
		}

		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "insufficient role"})
	}
}
