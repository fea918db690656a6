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

type ClaimGiftRequest struct {
	UserID int64  `json:"userId"`
	Code   string `json:"code"`
}

func ClaimGift(c *fiber.Ctx) error {
	var req ClaimGiftRequest
	if err := c.BodyParser(&req); err != nil {
		return helpers.JSONError(c, fiber.StatusBadRequest, "Invalid JSON")
	}
	if req.Code == "" {
		return helpers.JSONError(c, fiber.StatusBadRequest, "Missing fields")
	}

	user, ok := c.Locals("user").(models.User)
	if !ok {
		return helpers.JSONError(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	amount, err := services.RedeemGift(user.UserID, req.Code)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidOrExpiredCode):
			return helpers.JSONError(c, fiber.StatusOK, "Invalid or expired gift code")
		case errors.Is(err, services.ErrCodeExhausted):
			return helpers.JSONError(c, fiber.StatusOK, "Gift code has reached maximum usage")
		case errors.Is(err, services.ErrAlreadyClaimed):
			return helpers.JSONError(c, fiber.StatusOK, "You have already claimed this gift code")
		default:
			logger.Error("gift claim failed", zap.Int64("user", user.UserID), zap.Error(err))
			return helpers.JSONError(c, fiber.StatusInternalServerError, "Internal server error")
		}
	}

	return helpers.JSONSuccess(c, fiber.Map{"amount": amount})
}
