package helpers

import (
	"math"

	"github.com/gofiber/fiber/v2"
)

func JSONSuccess(c *fiber.Ctx, data fiber.Map) error {
	payload := fiber.Map{"success": true}
	for k, v := range data {
		payload[k] = v
	}
	return c.Status(fiber.StatusOK).JSON(payload)
}

func JSONError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{"error": message})
}

func FormatFloat(num float64, precision int) float64 {
	pow := math.Pow(10, float64(precision))
	return math.Round(num*pow) / pow
}
