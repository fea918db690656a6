package user

import (
	"earnbot/helpers"
	"earnbot/models"
	"earnbot/services"
	"earnbot/settings"

	"github.com/gofiber/fiber/v2"
)

const historyLimit = 50

// GetPage feeds the mini-app views: home, refer and history.
func GetPage(c *fiber.Ctx) error {
	user, ok := c.Locals("user").(models.User)
	if !ok {
		return helpers.JSONError(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	page := c.Params("page")
	switch page {
	case "home", "refer", "history":
	default:
		return helpers.JSONError(c, fiber.StatusNotFound, "Unknown page")
	}

	cfg, err := settings.Load()
	if err != nil {
		return helpers.JSONError(c, fiber.StatusInternalServerError, "Internal server error")
	}
	channels, err := services.EnabledChannels()
	if err != nil {
		return helpers.JSONError(c, fiber.StatusInternalServerError, "Internal server error")
	}

	payload := fiber.Map{
		"user":     user,
		"settings": cfg.Public(),
		"channels": channels,
	}

	switch page {
	case "history":
		transactions, err := services.UserTransactions(user.UserID, historyLimit)
		if err != nil {
			return helpers.JSONError(c, fiber.StatusInternalServerError, "Internal server error")
		}
		payload["transactions"] = transactions
	case "refer":
		referrals, err := services.UserReferrals(user.UserID)
		if err != nil {
			return helpers.JSONError(c, fiber.StatusInternalServerError, "Internal server error")
		}
		payload["referrals"] = referrals
	}

	return c.JSON(payload)
}
