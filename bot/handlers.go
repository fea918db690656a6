package bot

import (
	"errors"
	"fmt"
	"strings"

	"earnbot/logger"
	"earnbot/models"
	"earnbot/services"
	"earnbot/settings"

	"go.uber.org/zap"
	"gopkg.in/tucnak/telebot.v2"
)

func senderName(sender *telebot.User) string {
	name := sender.FirstName
	if sender.LastName != "" {
		name += " " + sender.LastName
	}
	return name
}

func (b *Bot) handleStart(m *telebot.Message) {
	cfg, err := settings.Load()
	if err != nil {
		logger.Error("failed to load settings", zap.Error(err))
		return
	}
	if !cfg.BotEnabled {
		b.send(m.Sender, "❌ Bot is currently disabled. Please try again later.")
		return
	}

	userID := int64(m.Sender.ID)
	user, err := services.GetUser(userID)
	if errors.Is(err, services.ErrNotFound) {
		user, err = services.CreateUser(userID, senderName(m.Sender), m.Sender.Username, m.Payload)
		if errors.Is(err, services.ErrDuplicateDevice) {
			b.send(m.Sender, "❌ This device has already been used. Only one account per device is allowed.")
			return
		}
	}
	if err != nil {
		logger.Error("start command failed", zap.Int64("user", userID), zap.Error(err))
		b.send(m.Sender, "❌ An error occurred. Please try again.")
		return
	}

	b.showChannels(m.Sender, user, cfg)
}

func (b *Bot) showChannels(sender *telebot.User, user *models.User, cfg *settings.Settings) {
	channels, err := services.EnabledChannels()
	if err != nil {
		logger.Error("failed to load channels", zap.Error(err))
		return
	}
	if !cfg.ChannelVerification || len(channels) == 0 || user.Verified {
		b.showMainMenu(sender, user, cfg)
		return
	}

	text := fmt.Sprintf(
		"📢 <b>Join Required Channels</b>\n\n"+
			"Please join all the channels below to continue:\n\n"+
			"💰 You will earn ₹%.0f welcome bonus after verification.",
		cfg.WelcomeBonus,
	)

	var rows [][]telebot.InlineButton
	for _, channel := range channels {
		buttonText := channel.ButtonText
		if buttonText == "" {
			buttonText = "Join Channel"
		}
		verifyText := "✓ Verify"
		if user.HasJoined(channel.ChannelID) {
			verifyText = "✅ Joined"
		}
		rows = append(rows, []telebot.InlineButton{
			{Text: buttonText, URL: channel.Link},
			{Text: verifyText, Data: "verify|" + channel.ChannelID},
		})
	}
	rows = append(rows, []telebot.InlineButton{{Text: "✅ Check All", Data: "check_all"}})

	b.send(sender, text, &telebot.ReplyMarkup{InlineKeyboard: rows}, telebot.ModeHTML)
}

func (b *Bot) showMainMenu(sender *telebot.User, user *models.User, cfg *settings.Settings) {
	text := fmt.Sprintf(
		"✧ <b>%s</b> ✧\n\n"+
			"👋 Welcome, %s!\n\n"+
			"💰 Balance: ₹%.2f\n"+
			"🎟 Refer code: <code>%s</code>\n\n"+
			"Open the app to withdraw, refer friends and claim gift codes.",
		cfg.BotName, user.FullName, user.Balance, user.ReferCode,
	)

	rows := [][]telebot.InlineButton{
		{{Text: "📱 Open App", URL: fmt.Sprintf("%s/webapp?userId=%d", b.webAppURL, user.UserID)}},
	}
	if cfg.IsAdmin(user.UserID) {
		rows = append(rows, []telebot.InlineButton{
			{Text: "🔄 Reorder Channels", Data: "reorder_channels"},
		})
	}

	b.send(sender, text, &telebot.ReplyMarkup{InlineKeyboard: rows}, telebot.ModeHTML)
}

func (b *Bot) handleCallback(cb *telebot.Callback) {
	data := strings.TrimSpace(strings.TrimPrefix(cb.Data, "\f"))

	cfg, err := settings.Load()
	if err != nil {
		logger.Error("failed to load settings", zap.Error(err))
		return
	}
	if !cfg.BotEnabled {
		b.respond(cb, "❌ Bot is currently disabled")
		return
	}

	switch {
	case strings.HasPrefix(data, "verify|"):
		b.handleVerifyChannel(cb, strings.TrimPrefix(data, "verify|"), cfg)
	case data == "check_all":
		b.handleCheckAll(cb, cfg)
	case data == "reorder_channels":
		b.handleReorderStart(cb, cfg)
	case data == "reorder_up":
		b.handleReorderMove(cb, cfg, -1)
	case data == "reorder_down":
		b.handleReorderMove(cb, cfg, +1)
	case data == "reorder_save":
		b.handleReorderSave(cb, cfg)
	}
}

func (b *Bot) handleVerifyChannel(cb *telebot.Callback, channelID string, cfg *settings.Settings) {
	userID := int64(cb.Sender.ID)

	channel, err := services.GetChannel(channelID)
	if err != nil {
		b.respond(cb, "❌ Channel not found")
		return
	}

	if !channel.AutoAccept && !b.isMember(channel.ChannelID, userID) {
		b.respond(cb, "❌ You haven't joined the channel yet!")
		return
	}

	if err := services.RecordChannelJoin(userID, channel.ChannelID); err != nil {
		logger.Error("failed to record join", zap.Int64("user", userID), zap.Error(err))
		b.respond(cb, "❌ Error verifying channel")
		return
	}

	verifiedNow, err := services.TryCompleteVerification(userID)
	if err != nil {
		logger.Error("verification failed", zap.Int64("user", userID), zap.Error(err))
		b.respond(cb, "❌ Error verifying channel")
		return
	}

	if verifiedNow {
		b.respond(cb, "✅ All channels verified! Welcome bonus added!")
		b.showMenuFor(cb.Sender, cfg)
		return
	}
	b.respond(cb, "✅ Channel verified!")
}

func (b *Bot) handleCheckAll(cb *telebot.Callback, cfg *settings.Settings) {
	userID := int64(cb.Sender.ID)

	user, err := services.GetUser(userID)
	if err != nil {
		b.respond(cb, "❌ Please /start the bot first")
		return
	}
	channels, err := services.EnabledChannels()
	if err != nil {
		logger.Error("failed to load channels", zap.Error(err))
		b.respond(cb, "❌ Error checking channels")
		return
	}

	allJoined := true
	for _, channel := range channels {
		if user.HasJoined(channel.ChannelID) {
			continue
		}
		if channel.AutoAccept || b.isMember(channel.ChannelID, userID) {
			if err := services.RecordChannelJoin(userID, channel.ChannelID); err != nil {
				logger.Error("failed to record join", zap.Int64("user", userID), zap.Error(err))
			}
			continue
		}
		allJoined = false
	}

	if !allJoined {
		b.respond(cb, "❌ Please join all channels first!")
		return
	}

	verifiedNow, err := services.TryCompleteVerification(userID)
	if err != nil {
		logger.Error("verification failed", zap.Int64("user", userID), zap.Error(err))
		b.respond(cb, "❌ Error checking channels")
		return
	}

	if verifiedNow {
		b.respond(cb, "✅ All channels verified!")
	} else {
		b.respond(cb, "✅ You have already joined all channels!")
	}
	b.showMenuFor(cb.Sender, cfg)
}

func (b *Bot) showMenuFor(sender *telebot.User, cfg *settings.Settings) {
	user, err := services.GetUser(int64(sender.ID))
	if err != nil {
		return
	}
	b.showMainMenu(sender, user, cfg)
}
