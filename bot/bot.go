package bot

import (
	"strconv"
	"strings"
	"sync"
	"time"

	"earnbot/logger"
	"earnbot/models"

	"go.uber.org/zap"
	"gopkg.in/tucnak/telebot.v2"
)

// reorderState is the per-admin channel-reorder session.
type reorderState struct {
	channels []models.Channel
	selected int
}

type Bot struct {
	tb        *telebot.Bot
	webAppURL string

	stateMutex sync.Mutex
	reorders   map[int64]*reorderState
}

func New(token, webAppURL string) (*Bot, error) {
	tb, err := telebot.NewBot(telebot.Settings{
		Token:  token,
		Poller: &telebot.LongPoller{Timeout: 10 * time.Second},
	})
	if err != nil {
		return nil, err
	}

	return &Bot{
		tb:        tb,
		webAppURL: webAppURL,
		reorders:  make(map[int64]*reorderState),
	}, nil
}

// Telebot exposes the underlying handle for the notification sender.
func (b *Bot) Telebot() *telebot.Bot {
	return b.tb
}

func (b *Bot) Start() {
	b.registerHandlers()
	logger.Info("bot started")
	go b.tb.Start()
}

func (b *Bot) Stop() {
	b.tb.Stop()
	logger.Info("bot stopped")
}

func (b *Bot) registerHandlers() {
	b.tb.Handle("/start", b.handleStart)
	b.tb.Handle(telebot.OnCallback, b.handleCallback)
}

func (b *Bot) send(to *telebot.User, what interface{}, options ...interface{}) {
	_, err := b.tb.Send(to, what, options...)
	if err != nil {
		logger.Warn("failed to send message", zap.Int64("user", to.ID), zap.Error(err))
	}
}

func (b *Bot) respond(cb *telebot.Callback, text string) {
	err := b.tb.Respond(cb, &telebot.CallbackResponse{Text: text})
	if err != nil {
		logger.Warn("failed to answer callback", zap.Error(err))
	}
}

// isMember checks live channel membership. Any lookup failure counts as
// "not a member" so a broken channel config cannot hand out bonuses.
func (b *Bot) isMember(channelID string, userID int64) bool {
	var chat *telebot.Chat
	if strings.HasPrefix(channelID, "@") {
		resolved, err := b.tb.ChatByID(channelID)
		if err != nil {
			logger.Warn("failed to resolve channel", zap.String("channel", channelID), zap.Error(err))
			return false
		}
		chat = resolved
	} else {
		id, err := strconv.ParseInt(channelID, 10, 64)
		if err != nil {
			logger.Warn("invalid channel id", zap.String("channel", channelID))
			return false
		}
		chat = &telebot.Chat{ID: id}
	}

	member, err := b.tb.ChatMemberOf(chat, &telebot.User{ID: userID})
	if err != nil {
		logger.Warn("membership check failed", zap.String("channel", channelID),
			zap.Int64("user", userID), zap.Error(err))
		return false
	}

	switch member.Role {
	case telebot.Member, telebot.Administrator, telebot.Creator:
		return true
	}
	return false
}
