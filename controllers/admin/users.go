package admin

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"earnbot/database"
	"earnbot/helpers"
	"earnbot/models"
	"earnbot/notify"
	"earnbot/services"

	"github.com/gofiber/fiber/v2"
)

const (
	transactionLimit = 20
	searchLimit      = 20
)

func GetUser(c *fiber.Ctx) error {
	targetID, err := strconv.ParseInt(c.Params("userId"), 10, 64)
	if err != nil {
		return helpers.JSONError(c, fiber.StatusBadRequest, "Invalid user id")
	}

	user, err := services.GetUser(targetID)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return helpers.JSONError(c, fiber.StatusNotFound, "User not found")
		}
		return helpers.JSONError(c, fiber.StatusInternalServerError, "Internal server error")
	}

	referrals, err := services.UserReferrals(targetID)
	if err != nil {
		return helpers.JSONError(c, fiber.StatusInternalServerError, "Internal server error")
	}

	return c.JSON(fiber.Map{
		"user":          user,
		"referralCount": len(referrals),
	})
}

func GetUserTransactions(c *fiber.Ctx) error {
	targetID, err := strconv.ParseInt(c.Params("userId"), 10, 64)
	if err != nil {
		return helpers.JSONError(c, fiber.StatusBadRequest, "Invalid user id")
	}
	transactions, err := services.UserTransactions(targetID, transactionLimit)
	if err != nil {
		return helpers.JSONError(c, fiber.StatusInternalServerError, "Internal server error")
	}
	return c.JSON(transactions)
}

func SearchUsers(c *fiber.Ctx) error {
	query := strings.TrimSpace(c.Query("q"))
	if query == "" {
		return helpers.JSONError(c, fiber.StatusBadRequest, "Missing query")
	}

	numeric, _ := strconv.ParseInt(query, 10, 64)
	var users []models.User
	err := database.DB.
		Where("user_id = ?", numeric).
		Or("full_name ILIKE ?", "%"+query+"%").
		Or("username ILIKE ?", "%"+query+"%").
		Or("refer_code = ?", strings.ToUpper(query)).
		Limit(searchLimit).
		Find(&users).Error
	if err != nil {
		return helpers.JSONError(c, fiber.StatusInternalServerError, "Internal server error")
	}
	return c.JSON(users)
}

type AddBalanceRequest struct {
	Amount float64 `json:"amount"`
	Reason string  `json:"reason"`
}

func AddBalance(c *fiber.Ctx) error {
	targetID, err := strconv.ParseInt(c.Params("userId"), 10, 64)
	if err != nil {
		return helpers.JSONError(c, fiber.StatusBadRequest, "Invalid user id")
	}
	var req AddBalanceRequest
	if err := c.BodyParser(&req); err != nil {
		return helpers.JSONError(c, fiber.StatusBadRequest, "Invalid JSON")
	}
	if req.Amount <= 0 || req.Reason == "" {
		return helpers.JSONError(c, fiber.StatusBadRequest, "Missing fields")
	}

	err = services.CreditUser(targetID, req.Amount, fmt.Sprintf("Admin added: %s", req.Reason))
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return helpers.JSONError(c, fiber.StatusNotFound, "User not found")
		}
		return helpers.JSONError(c, fiber.StatusInternalServerError, "Internal server error")
	}

	notify.User(targetID, fmt.Sprintf(
		"💰 <b>Balance Added</b>\n\nAmount: ₹%.2f\nReason: %s",
		req.Amount, req.Reason,
	))
	return helpers.JSONSuccess(c, fiber.Map{})
}

func ExportUsers(c *fiber.Ctx) error {
	var users []models.User
	if err := database.DB.Find(&users).Error; err != nil {
		return helpers.JSONError(c, fiber.StatusInternalServerError, "Internal server error")
	}

	var csv strings.Builder
	csv.WriteString("User ID,Name,Username,Balance,Refer Code,Verified,Created At\n")
	for _, u := range users {
		csv.WriteString(fmt.Sprintf("%d,%s,%s,%.2f,%s,%t,%s\n",
			u.UserID, u.FullName, u.Username, u.Balance, u.ReferCode,
			u.Verified, u.CreatedAt.Format("2006-01-02 15:04:05")))
	}

	c.Set("Content-Type", "text/csv")
	c.Set("Content-Disposition", "attachment; filename=users.csv")
	return c.SendString(csv.String())
}
