package user

import (
	"errors"

	"earnbot/helpers"
	"earnbot/logger"
	"earnbot/models"
	"earnbot/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type JoinChannelRequest struct {
	UserID    int64  `json:"userId"`
	ChannelID string `json:"channelId"`
}

// JoinChannel records a join initiated from the mini-app, where no live
// membership check is possible, and hands back the invite link.
func JoinChannel(c *fiber.Ctx) error {
	var req JoinChannelRequest
	if err := c.BodyParser(&req); err != nil {
		return helpers.JSONError(c, fiber.StatusBadRequest, "Invalid JSON")
	}
	if req.ChannelID == "" {
		return helpers.JSONError(c, fiber.StatusBadRequest, "Missing fields")
	}

	user, ok := c.Locals("user").(models.User)
	if !ok {
		return helpers.JSONError(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	channel, err := services.GetChannel(req.ChannelID)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return helpers.JSONError(c, fiber.StatusOK, "Channel not found")
		}
		return helpers.JSONError(c, fiber.StatusInternalServerError, "Internal server error")
	}

	if err := services.RecordChannelJoin(user.UserID, channel.ChannelID); err != nil {
		logger.Error("failed to record channel join", zap.Int64("user", user.UserID), zap.Error(err))
		return helpers.JSONError(c, fiber.StatusInternalServerError, "Internal server error")
	}

	return helpers.JSONSuccess(c, fiber.Map{"link": channel.Link})
}
