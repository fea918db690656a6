package admin

import (
	"earnbot/helpers"
	"earnbot/settings"

	"github.com/gofiber/fiber/v2"
)

// UpdateSettings bulk-upserts settings keys. The caller identity key is
// stripped; it is transport plumbing, not a setting.
func UpdateSettings(c *fiber.Ctx) error {
	var values map[string]any
	if err := c.BodyParser(&values); err != nil {
		return helpers.JSONError(c, fiber.StatusBadRequest, "Invalid JSON")
	}
	delete(values, "userId")
	if len(values) == 0 {
		return helpers.JSONError(c, fiber.StatusBadRequest, "Missing fields")
	}

	if err := settings.Save(values); err != nil {
		return helpers.JSONError(c, fiber.StatusInternalServerError, "Failed to save settings")
	}
	return helpers.JSONSuccess(c, fiber.Map{})
}

type UpiSettingsRequest struct {
	UpiEnabled bool   `json:"upiEnabled"`
	UpiID      string `json:"upiId"`
	UpiName    string `json:"upiName"`
}

func UpdateUpiSettings(c *fiber.Ctx) error {
	var req UpiSettingsRequest
	if err := c.BodyParser(&req); err != nil {
		return helpers.JSONError(c, fiber.StatusBadRequest, "Invalid JSON")
	}

	err := settings.Save(map[string]any{
		"upiEnabled": req.UpiEnabled,
		"upiId":      req.UpiID,
		"upiName":    req.UpiName,
	})
	if err != nil {
		return helpers.JSONError(c, fiber.StatusInternalServerError, "Failed to save settings")
	}
	return helpers.JSONSuccess(c, fiber.Map{})
}
