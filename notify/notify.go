// Package notify sends best-effort telegram messages. Delivery failures
// are logged and swallowed; they must never roll back the ledger mutation
// they announce.
package notify

import (
	"io"
	"time"

	"earnbot/logger"
	"earnbot/settings"

	"go.uber.org/zap"
	"gopkg.in/tucnak/telebot.v2"
)

var sender *telebot.Bot

// Init hands the bot handle to this package. Without it every send is a
// silent no-op (tests, bot token not configured).
func Init(b *telebot.Bot) {
	sender = b
}

func User(userID int64, text string) {
	if sender == nil {
		return
	}
	_, err := sender.Send(&telebot.User{ID: userID}, text, telebot.ModeHTML)
	if err != nil {
		logger.Warn("failed to notify user", zap.Int64("user", userID), zap.Error(err))
	}
}

// Admins fans the message out to every configured admin.
func Admins(text string) {
	if sender == nil {
		return
	}
	cfg, err := settings.Load()
	if err != nil {
		logger.Warn("failed to load settings for admin notification", zap.Error(err))
		return
	}
	for _, adminID := range cfg.AdminIDs {
		User(adminID, text)
	}
}

// AdminsPhoto sends an image with caption to every configured admin.
func AdminsPhoto(image io.Reader, caption string) {
	if sender == nil {
		return
	}
	cfg, err := settings.Load()
	if err != nil {
		logger.Warn("failed to load settings for admin notification", zap.Error(err))
		return
	}
	for _, adminID := range cfg.AdminIDs {
		photo := &telebot.Photo{File: telebot.FromReader(image), Caption: caption}
		_, err := sender.Send(&telebot.User{ID: adminID}, photo, telebot.ModeHTML)
		if err != nil {
			logger.Warn("failed to send photo to admin", zap.Int64("admin", adminID), zap.Error(err))
		}
	}
}

// Broadcast sends one broadcast message and reports delivery. Callers
// pace the fan-out; 50ms between sends keeps under telegram rate limits.
func Broadcast(userID int64, text, buttonText, buttonURL string) error {
	if sender == nil {
		return nil
	}
	opts := []any{telebot.ModeHTML}
	if buttonText != "" && buttonURL != "" {
		markup := &telebot.ReplyMarkup{
			InlineKeyboard: [][]telebot.InlineButton{{
				{Text: buttonText, URL: buttonURL},
			}},
		}
		opts = append(opts, markup)
	}
	_, err := sender.Send(&telebot.User{ID: userID}, text, opts...)
	if err == nil {
		time.Sleep(50 * time.Millisecond)
	}
	return err
}
