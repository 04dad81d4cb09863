package handler

import (
	"errors"
	"time"

	"github.com/Tanimou/user-management-system-sub001/config"
	"github.com/Tanimou/user-management-system-sub001/internal/auth/dto"
	"github.com/Tanimou/user-management-system-sub001/internal/auth/service"
	autherror "github.com/Tanimou/user-management-system-sub001/internal/errors"
	authconstant "github.com/Tanimou/user-management-system-sub001/pkg/constant"
	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	userService *service.UserService
	tokens      service.TokenGenerator
	cfg         *config.Config
}

func NewAuthHandler(userService *service.UserService, tokens service.TokenGenerator, cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		userService: userService,
		tokens:      tokens,
		cfg:         cfg,
	}
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var input dto.LoginInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid input"})
	}

	pair, user, err := h.userService.Login(c.Context(), input)
	if err != nil {
		if errors.Is(err, autherror.ErrInvalidCredentials) {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
		}

		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
	}

	h.setRefreshCookie(c, pair.RefreshToken)

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"token": pair.AccessToken,
		"user":  dto.NewUserOutput(user),
	})
}

func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	rawToken := c.Cookies(authconstant.RefreshCookieName)
	if rawToken == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": autherror.ErrMissingRefreshToken.Error()})
	}

	pair, err := h.userService.Refresh(c.Context(), rawToken)
	if err != nil {
		switch {
		case errors.Is(err, autherror.ErrTokenRevoked),
			errors.Is(err, autherror.ErrInvalidRefreshToken),
			errors.Is(err, autherror.ErrUserNotFound):
			// The presented token is dead; never leave the client
			// holding the cookie for it.
			h.clearRefreshCookie(c)

			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
		}
	}

	h.setRefreshCookie(c, pair.RefreshToken)

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"token":     pair.AccessToken,
		"expiresIn": pair.ExpiresIn,
	})
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	h.userService.Logout(c.Context(), c.Cookies(authconstant.RefreshCookieName))
	h.clearRefreshCookie(c)

	return c.SendStatus(fiber.StatusNoContent)
}

func (h *AuthHandler) GetProfile(c *fiber.Ctx) error {
	userID, _ := c.Locals(localUserID).(string)

	user, err := h.userService.GetProfile(c.Context(), userID)
	if err != nil {
		if errors.Is(err, autherror.ErrUserNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
		}

		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
	}

	return c.Status(fiber.StatusOK).JSON(dto.NewUserOutput(user))
}

func (h *AuthHandler) GetAllUsers(c *fiber.Ctx) error {
	users, err := h.userService.ListUsers(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
	}

	out := make([]dto.UserOutput, 0, len(users))
	for i := range users {
		out = append(out, dto.NewUserOutput(&users[i]))
	}

	return c.Status(fiber.StatusOK).JSON(out)
}

func (h *AuthHandler) UpdateUserRoles(c *fiber.Ctx) error {
	var input dto.UpdateRolesInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid input"})
	}

	actorID, _ := c.Locals(localUserID).(string)

	err := h.userService.UpdateUserRoles(c.Context(), actorID, c.Params("id"), input.Roles)
	if err != nil {
		switch {
		case errors.Is(err, autherror.ErrSelfDemotion):
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": err.Error()})
		case errors.Is(err, autherror.ErrUserNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
		}
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func (h *AuthHandler) SetUserActive(c *fiber.Ctx) error {
	var input dto.UpdateActiveInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid input"})
	}

	actorID, _ := c.Locals(localUserID).(string)

	err := h.userService.SetUserActive(c.Context(), actorID, c.Params("id"), input.Active)
	if err != nil {
		switch {
		case errors.Is(err, autherror.ErrSelfDeactivation):
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": err.Error()})
		case errors.Is(err, autherror.ErrUserNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
		}
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func (h *AuthHandler) setRefreshCookie(c *fiber.Ctx, token string) {
	c.Cookie(&fiber.Cookie{
		Name:     authconstant.RefreshCookieName,
		Value:    token,
		Path:     h.cfg.CookiePath,
		MaxAge:   int(h.cfg.RefreshTokenTTL.Seconds()),
		HTTPOnly: true,
		Secure:   h.cfg.IsProduction(),
		SameSite: fiber.CookieSameSiteStrictMode,
	})
}

func (h *AuthHandler) clearRefreshCookie(c *fiber.Ctx) {
	// fasthttp only serializes Max-Age when positive, so the past
	// Expires is what actually reaches the client.
	c.Cookie(&fiber.Cookie{
		Name:     authconstant.RefreshCookieName,
		Value:    "",
		Path:     h.cfg.CookiePath,
		MaxAge:   -1,
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		Secure:   h.cfg.IsProduction(),
		SameSite: fiber.CookieSameSiteStrictMode,
	})
}
