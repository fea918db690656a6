package user

import (
	"fmt"

	"earnbot/helpers"
	"earnbot/models"
	"earnbot/notify"

	"github.com/gofiber/fiber/v2"
)

// Contact relays a support message, with an optional image, to every
// admin. Nothing is persisted; admins answer over telegram.
func Contact(c *fiber.Ctx) error {
	message := c.FormValue("message")
	if message == "" {
		return helpers.JSONError(c, fiber.StatusBadRequest, "Missing fields")
	}

	user, ok := c.Locals("user").(models.User)
	if !ok {
		return helpers.JSONError(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	text := fmt.Sprintf(
		"📬 <b>New Support Message</b>\n\n"+
			"From: %s\nUser ID: <code>%d</code>\nMessage: %s\n\n"+
			"Reply to this message to respond to the user.",
		user.FullName, user.UserID, message,
	)

	if file, err := c.FormFile("image"); err == nil && file != nil {
		reader, err := file.Open()
		if err == nil {
			defer reader.Close()
			notify.AdminsPhoto(reader, text)
			return helpers.JSONSuccess(c, fiber.Map{})
		}
	}

	notify.Admins(text)
	return helpers.JSONSuccess(c, fiber.Map{})
}
