package admin

import (
	"earnbot/database"
	"earnbot/helpers"
	"earnbot/logger"
	"earnbot/models"
	"earnbot/notify"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type BroadcastRequest struct {
	Message    string `json:"message"`
	ButtonText string `json:"buttonText"`
	ButtonURL  string `json:"buttonUrl"`
}

// Broadcast fans a message out to every registered user. Individual
// delivery failures (blocked bot, deleted account) are logged and
// skipped.
func Broadcast(c *fiber.Ctx) error {
	var req BroadcastRequest
	if err := c.BodyParser(&req); err != nil {
		return helpers.JSONError(c, fiber.StatusBadRequest, "Invalid JSON")
	}
	if req.Message == "" {
		return helpers.JSONError(c, fiber.StatusBadRequest, "Missing fields")
	}

	var users []models.User
	if err := database.DB.Find(&users).Error; err != nil {
		return helpers.JSONError(c, fiber.StatusInternalServerError, "Internal server error")
	}

	sent := 0
	for _, user := range users {
		err := notify.Broadcast(user.UserID, req.Message, req.ButtonText, req.ButtonURL)
		if err != nil {
			logger.Warn("broadcast delivery failed", zap.Int64("user", user.UserID), zap.Error(err))
			continue
		}
		sent++
	}

	return helpers.JSONSuccess(c, fiber.Map{"sent": sent})
}
