package admin

import (
	"errors"
	"fmt"
	"strconv"

	"earnbot/helpers"
	"earnbot/logger"
	"earnbot/notify"
	"earnbot/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

func ListWithdrawals(c *fiber.Ctx) error {
	withdrawals, err := services.ListWithdrawals(c.Query("status"))
	if err != nil {
		return helpers.JSONError(c, fiber.StatusInternalServerError, "Internal server error")
	}
	return c.JSON(withdrawals)
}

func AcceptWithdrawal(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return helpers.JSONError(c, fiber.StatusBadRequest, "Invalid withdrawal id")
	}
	adminID, _ := c.Locals("adminId").(int64)

	withdrawal, paid, err := services.AcceptWithdrawal(uint(id), adminID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNotFound):
			return helpers.JSONError(c, fiber.StatusNotFound, "Withdrawal not found")
		case errors.Is(err, services.ErrInvalidState):
			return helpers.JSONError(c, fiber.StatusOK, "Withdrawal already processed")
		default:
			logger.Error("accept withdrawal failed", zap.Uint64("id", id), zap.Error(err))
			return helpers.JSONError(c, fiber.StatusInternalServerError, "Internal server error")
		}
	}

	status := "Being processed manually"
	if paid {
		status = "Payment sent via API"
	}
	notify.User(withdrawal.UserID, fmt.Sprintf(
		"✅ <b>Withdrawal Completed</b>\n\n"+
			"Amount: ₹%.2f\nNet: ₹%.2f\nUPI: %s\nStatus: %s",
		withdrawal.Amount, withdrawal.NetAmount, withdrawal.UpiID, status,
	))

	return helpers.JSONSuccess(c, fiber.Map{"paymentSuccess": paid})
}

func RejectWithdrawal(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return helpers.JSONError(c, fiber.StatusBadRequest, "Invalid withdrawal id")
	}
	adminID, _ := c.Locals("adminId").(int64)

	withdrawal, err := services.RejectWithdrawal(uint(id), adminID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNotFound):
			return helpers.JSONError(c, fiber.StatusNotFound, "Withdrawal not found")
		case errors.Is(err, services.ErrInvalidState):
			return helpers.JSONError(c, fiber.StatusOK, "Withdrawal already processed")
		default:
			logger.Error("reject withdrawal failed", zap.Uint64("id", id), zap.Error(err))
			return helpers.JSONError(c, fiber.StatusInternalServerError, "Internal server error")
		}
	}

	notify.User(withdrawal.UserID, fmt.Sprintf(
		"❌ <b>Withdrawal Rejected</b>\n\n"+
			"Amount: ₹%.2f has been refunded to your balance.",
		withdrawal.Amount,
	))

	return helpers.JSONSuccess(c, fiber.Map{})
}
