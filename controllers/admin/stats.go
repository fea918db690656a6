package admin

import (
	"earnbot/helpers"
	"earnbot/services"

	"github.com/gofiber/fiber/v2"
)

func TodayStats(c *fiber.Ctx) error {
	stats, err := services.TodayStats()
	if err != nil {
		return helpers.JSONError(c, fiber.StatusInternalServerError, "Internal server error")
	}
	return c.JSON(stats)
}
