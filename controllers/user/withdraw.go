package user

import (
	"errors"
	"fmt"

	"earnbot/helpers"
	"earnbot/logger"
	"earnbot/models"
	"earnbot/notify"
	"earnbot/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type WithdrawRequest struct {
	UserID int64   `json:"userId"`
	Amount float64 `json:"amount"`
	UpiID  string  `json:"upiId"`
}

func Withdraw(c *fiber.Ctx) error {
	var req WithdrawRequest
	if err := c.BodyParser(&req); err != nil {
		return helpers.JSONError(c, fiber.StatusBadRequest, "Invalid JSON")
	}
	if req.Amount <= 0 || req.UpiID == "" {
		return helpers.JSONError(c, fiber.StatusBadRequest, "Missing fields")
	}

	user, ok := c.Locals("user").(models.User)
	if !ok {
		return helpers.JSONError(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	withdrawal, autoPaid, err := services.RequestWithdrawal(user.UserID, req.Amount, req.UpiID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrWithdrawalsDisabled):
			return helpers.JSONError(c, fiber.StatusOK, "Withdrawals are currently disabled")
		case errors.Is(err, services.ErrUserNotVerified):
			return helpers.JSONError(c, fiber.StatusOK, "Please join all channels first")
		case errors.Is(err, services.ErrAmountOutOfRange):
			return helpers.JSONError(c, fiber.StatusOK, "Invalid amount range")
		case errors.Is(err, services.ErrInsufficientBalance):
			return helpers.JSONError(c, fiber.StatusOK, "Insufficient balance")
		default:
			logger.Error("withdrawal request failed", zap.Int64("user", user.UserID), zap.Error(err))
			return helpers.JSONError(c, fiber.StatusInternalServerError, "Internal server error")
		}
	}

	status := "Pending"
	if autoPaid {
		status = "Auto-paid"
	}
	notify.Admins(fmt.Sprintf(
		"💰 <b>New Withdrawal Request</b>\n\n"+
			"User: %s\nAmount: ₹%.2f\nTax: ₹%.2f\nNet: ₹%.2f\nUPI: %s\nStatus: %s",
		user.FullName, withdrawal.Amount, withdrawal.Tax, withdrawal.NetAmount,
		withdrawal.UpiID, status,
	))

	return helpers.JSONSuccess(c, fiber.Map{"autoPaid": autoPaid})
}
