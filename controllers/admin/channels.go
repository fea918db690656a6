package admin

import (
	"errors"
	"strconv"

	"earnbot/database"
	"earnbot/helpers"
	"earnbot/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type ChannelRequest struct {
	ID          uint   `json:"id"`
	ChannelID   string `json:"channelId"`
	Name        string `json:"name"`
	Link        string `json:"link"`
	ButtonText  string `json:"buttonText"`
	Description string `json:"description"`
	Position    int    `json:"position"`
	AutoAccept  bool   `json:"autoAccept"`
	Enabled     bool   `json:"enabled"`
}

func ListChannels(c *fiber.Ctx) error {
	var channels []models.Channel
	if err := database.DB.Order("position ASC").Find(&channels).Error; err != nil {
		return helpers.JSONError(c, fiber.StatusInternalServerError, "Internal server error")
	}
	return c.JSON(channels)
}

// SaveChannel creates or updates depending on whether an id is supplied.
func SaveChannel(c *fiber.Ctx) error {
	var req ChannelRequest
	if err := c.BodyParser(&req); err != nil {
		return helpers.JSONError(c, fiber.StatusBadRequest, "Invalid JSON")
	}
	if req.ChannelID == "" || req.Name == "" || req.Link == "" {
		return helpers.JSONError(c, fiber.StatusBadRequest, "Missing fields")
	}

	channel := models.Channel{
		ChannelID:   req.ChannelID,
		Name:        req.Name,
		Link:        req.Link,
		ButtonText:  req.ButtonText,
		Description: req.Description,
		Position:    req.Position,
		AutoAccept:  req.AutoAccept,
		Enabled:     req.Enabled,
	}

	if req.ID != 0 {
		var existing models.Channel
		if err := database.DB.First(&existing, req.ID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return helpers.JSONError(c, fiber.StatusNotFound, "Channel not found")
			}
			return helpers.JSONError(c, fiber.StatusInternalServerError, "Internal server error")
		}
		channel.ID = req.ID
		channel.CreatedAt = existing.CreatedAt
		if err := database.DB.Save(&channel).Error; err != nil {
			return helpers.JSONError(c, fiber.StatusInternalServerError, "Failed to update channel")
		}
	} else {
		if err := database.DB.Create(&channel).Error; err != nil {
			return helpers.JSONError(c, fiber.StatusInternalServerError, "Failed to create channel")
		}
	}
	return helpers.JSONSuccess(c, fiber.Map{"id": channel.ID})
}

func DeleteChannel(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return helpers.JSONError(c, fiber.StatusBadRequest, "Invalid channel id")
	}
	if err := database.DB.Delete(&models.Channel{}, uint(id)).Error; err != nil {
		return helpers.JSONError(c, fiber.StatusInternalServerError, "Failed to delete channel")
	}
	return helpers.JSONSuccess(c, fiber.Map{})
}

type MoveChannelRequest struct {
	Direction string `json:"direction"`
}

// MoveChannel swaps a channel with its neighbor, then renumbers positions
// so the ordering stays dense.
func MoveChannel(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return helpers.JSONError(c, fiber.StatusBadRequest, "Invalid channel id")
	}
	var req MoveChannelRequest
	if err := c.BodyParser(&req); err != nil {
		return helpers.JSONError(c, fiber.StatusBadRequest, "Invalid JSON")
	}
	if req.Direction != "up" && req.Direction != "down" {
		return helpers.JSONError(c, fiber.StatusBadRequest, "Invalid direction")
	}

	var channels []models.Channel
	if err := database.DB.Order("position ASC").Find(&channels).Error; err != nil {
		return helpers.JSONError(c, fiber.StatusInternalServerError, "Internal server error")
	}

	index := -1
	for i, channel := range channels {
		if channel.ID == uint(id) {
			index = i
			break
		}
	}
	if index == -1 {
		return helpers.JSONError(c, fiber.StatusNotFound, "Channel not found")
	}

	if req.Direction == "up" && index > 0 {
		channels[index], channels[index-1] = channels[index-1], channels[index]
	} else if req.Direction == "down" && index < len(channels)-1 {
		channels[index], channels[index+1] = channels[index+1], channels[index]
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		for i := range channels {
			err := tx.Model(&models.Channel{}).Where("id = ?", channels[i].ID).
				Update("position", i).Error
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return helpers.JSONError(c, fiber.StatusInternalServerError, "Failed to reorder channels")
	}
	return helpers.JSONSuccess(c, fiber.Map{})
}
