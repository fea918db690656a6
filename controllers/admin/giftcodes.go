package admin

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"earnbot/database"
	"earnbot/helpers"
	"earnbot/models"
	"earnbot/services"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type GiftCodeRequest struct {
	CodeID        uint    `json:"codeId"`
	Code          string  `json:"code"`
	MinAmount     float64 `json:"minAmount"`
	MaxAmount     float64 `json:"maxAmount"`
	TotalUsers    int     `json:"totalUsers"`
	ExpiryMinutes int     `json:"expiryMinutes"`
}

func ListGiftCodes(c *fiber.Ctx) error {
	codes, err := services.ListGiftCodes()
	if err != nil {
		return helpers.JSONError(c, fiber.StatusInternalServerError, "Internal server error")
	}

	now := time.Now()
	out := make([]fiber.Map, 0, len(codes))
	for _, code := range codes {
		out = append(out, fiber.Map{
			"id":         code.ID,
			"code":       code.Code,
			"minAmount":  code.MinAmount,
			"maxAmount":  code.MaxAmount,
			"totalUsers": code.TotalUsers,
			"usedCount":  code.UsedCount,
			"remaining":  code.TotalUsers - code.UsedCount,
			"expiresAt":  code.ExpiresAt,
			"active":     !code.Expired(now) && !code.Exhausted(),
		})
	}
	return c.JSON(out)
}

func SaveGiftCode(c *fiber.Ctx) error {
	var req GiftCodeRequest
	if err := c.BodyParser(&req); err != nil {
		return helpers.JSONError(c, fiber.StatusBadRequest, "Invalid JSON")
	}
	if req.MinAmount <= 0 || req.MaxAmount < req.MinAmount || req.TotalUsers <= 0 || req.ExpiryMinutes <= 0 {
		return helpers.JSONError(c, fiber.StatusBadRequest, "Missing fields")
	}

	code := strings.ToUpper(strings.TrimSpace(req.Code))
	if code == "" {
		code = helpers.GenerateGiftCode()
	}
	expiresAt := time.Now().Add(time.Duration(req.ExpiryMinutes) * time.Minute)

	if req.CodeID != 0 {
		res := database.DB.Model(&models.GiftCode{}).Where("id = ?", req.CodeID).
			Updates(map[string]any{
				"code":        code,
				"min_amount":  req.MinAmount,
				"max_amount":  req.MaxAmount,
				"total_users": req.TotalUsers,
				"expires_at":  expiresAt,
			})
		if res.Error != nil {
			return helpers.JSONError(c, fiber.StatusInternalServerError, "Failed to update gift code")
		}
		if res.RowsAffected == 0 {
			return helpers.JSONError(c, fiber.StatusNotFound, "Gift code not found")
		}
		return helpers.JSONSuccess(c, fiber.Map{"code": code})
	}

	gift := models.GiftCode{
		Code:       code,
		MinAmount:  req.MinAmount,
		MaxAmount:  req.MaxAmount,
		TotalUsers: req.TotalUsers,
		ExpiresAt:  expiresAt,
	}
	if err := database.DB.Create(&gift).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) || strings.Contains(err.Error(), "duplicate") {
			return helpers.JSONError(c, fiber.StatusOK, "Gift code already exists")
		}
		return helpers.JSONError(c, fiber.StatusInternalServerError, "Failed to create gift code")
	}
	return helpers.JSONSuccess(c, fiber.Map{"code": gift.Code})
}

func DeleteGiftCode(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return helpers.JSONError(c, fiber.StatusBadRequest, "Invalid gift code id")
	}
	if err := database.DB.Delete(&models.GiftCode{}, uint(id)).Error; err != nil {
		return helpers.JSONError(c, fiber.StatusInternalServerError, "Failed to delete gift code")
	}
	return helpers.JSONSuccess(c, fiber.Map{})
}
