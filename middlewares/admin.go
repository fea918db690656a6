package middlewares

import (
	"earnbot/helpers"
	"earnbot/settings"

	"github.com/gofiber/fiber/v2"
)

// RequireAdmin gates admin routes on the configured allow-list. Admins
// are identified the same way as users but need not be registered.
func RequireAdmin(c *fiber.Ctx) error {
	userID := CallerID(c)
	if userID == 0 {
		return helpers.JSONError(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	cfg, err := settings.Load()
	if err != nil {
		return helpers.JSONError(c, fiber.StatusInternalServerError, "Internal server error")
	}
	if !cfg.IsAdmin(userID) {
		return helpers.JSONError(c, fiber.StatusForbidden, "Forbidden")
	}

	c.Locals("adminId", userID)
	return c.Next()
}
