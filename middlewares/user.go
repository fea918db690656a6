package middlewares

import (
	"strconv"

	"earnbot/database"
	"earnbot/helpers"
	"earnbot/models"

	"github.com/gofiber/fiber/v2"
)

// CallerID extracts the caller-supplied numeric identifier from query,
// JSON body or form fields, in that order.
func CallerID(c *fiber.Ctx) int64 {
	if raw := c.Query("userId"); raw != "" {
		if id, err := strconv.ParseInt(raw, 10, 64); err == nil {
			return id
		}
	}

	var body struct {
		UserID int64 `json:"userId"`
	}
	if err := c.BodyParser(&body); err == nil && body.UserID != 0 {
		return body.UserID
	}

	if raw := c.FormValue("userId"); raw != "" {
		if id, err := strconv.ParseInt(raw, 10, 64); err == nil {
			return id
		}
	}
	return 0
}

// RequireUser resolves the caller to a registered user and stashes it in
// locals.
func RequireUser(c *fiber.Ctx) error {
	userID := CallerID(c)
	if userID == 0 {
		return helpers.JSONError(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	var user models.User
	if err := database.DB.Where("user_id = ?", userID).First(&user).Error; err != nil {
		return helpers.JSONError(c, fiber.StatusNotFound, "User not found")
	}

	c.Locals("user", user)
	return c.Next()
}
