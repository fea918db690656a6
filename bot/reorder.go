package bot

import (
	"fmt"

	"earnbot/database"
	"earnbot/logger"
	"earnbot/models"
	"earnbot/services"
	"earnbot/settings"

	"go.uber.org/zap"
	"gopkg.in/tucnak/telebot.v2"
	"gorm.io/gorm"
)

// Channel reordering is an admin convenience run entirely over inline
// buttons; the pending order lives in memory until saved.

func (b *Bot) handleReorderStart(cb *telebot.Callback, cfg *settings.Settings) {
	userID := int64(cb.Sender.ID)
	if !cfg.IsAdmin(userID) {
		b.respond(cb, "❌ Admins only")
		return
	}

	channels, err := services.EnabledChannels()
	if err != nil || len(channels) == 0 {
		b.respond(cb, "❌ No channels to reorder")
		return
	}

	b.stateMutex.Lock()
	b.reorders[userID] = &reorderState{channels: channels}
	b.stateMutex.Unlock()

	b.respond(cb, "")
	b.showReorderMenu(cb)
}

func (b *Bot) handleReorderMove(cb *telebot.Callback, cfg *settings.Settings, delta int) {
	userID := int64(cb.Sender.ID)

	b.stateMutex.Lock()
	state, ok := b.reorders[userID]
	if ok {
		target := state.selected + delta
		if target >= 0 && target < len(state.channels) {
			state.channels[state.selected], state.channels[target] =
				state.channels[target], state.channels[state.selected]
			state.selected = target
		}
	}
	b.stateMutex.Unlock()

	if !ok {
		b.respond(cb, "❌ Reorder session expired")
		return
	}
	b.respond(cb, "")
	b.showReorderMenu(cb)
}

func (b *Bot) handleReorderSave(cb *telebot.Callback, cfg *settings.Settings) {
	userID := int64(cb.Sender.ID)

	b.stateMutex.Lock()
	state, ok := b.reorders[userID]
	delete(b.reorders, userID)
	b.stateMutex.Unlock()

	if !ok {
		b.respond(cb, "❌ Reorder session expired")
		return
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		for i := range state.channels {
			err := tx.Model(&models.Channel{}).
				Where("id = ?", state.channels[i].ID).
				Update("position", i).Error
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		logger.Error("failed to save channel order", zap.Error(err))
		b.respond(cb, "❌ Failed to save order")
		return
	}

	b.respond(cb, "✅ Channel order saved!")
	b.showMenuFor(cb.Sender, cfg)
}

func (b *Bot) showReorderMenu(cb *telebot.Callback) {
	userID := int64(cb.Sender.ID)

	b.stateMutex.Lock()
	state, ok := b.reorders[userID]
	var text string
	var selected, total int
	if ok {
		text = "🔄 <b>Reorder Channels</b>\n\n"
		for i, channel := range state.channels {
			marker := "  "
			if i == state.selected {
				marker = "▶ "
			}
			text += fmt.Sprintf("%s%d. %s\n", marker, i+1, channel.Name)
		}
		selected = state.selected
		total = len(state.channels)
	}
	b.stateMutex.Unlock()

	if !ok {
		return
	}

	var row []telebot.InlineButton
	if selected > 0 {
		row = append(row, telebot.InlineButton{Text: "⬆️ Move Up", Data: "reorder_up"})
	}
	if selected < total-1 {
		row = append(row, telebot.InlineButton{Text: "⬇️ Move Down", Data: "reorder_down"})
	}
	rows := [][]telebot.InlineButton{}
	if len(row) > 0 {
		rows = append(rows, row)
	}
	rows = append(rows, []telebot.InlineButton{{Text: "✅ Save", Data: "reorder_save"}})

	_, err := b.tb.Edit(cb.Message, text, &telebot.ReplyMarkup{InlineKeyboard: rows}, telebot.ModeHTML)
	if err != nil {
		logger.Warn("failed to edit reorder menu", zap.Error(err))
	}
}
