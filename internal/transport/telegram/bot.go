// Package telegram adapts the Telegram long-polling API to the dispatcher
// boundary: one inbound {userID, text} per update, one outbound reply.
package telegram

import (
	"context"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// Handler processes one inbound message and returns the reply text.
type Handler interface {
	Handle(ctx context.Context, userID int64, text string) string
}

// Bot runs the long-polling update loop.
type Bot struct {
	api         *tgbotapi.BotAPI
	handler     Handler
	pollTimeout int // seconds
	logger      *zap.Logger
}

// Config holds the Telegram transport settings.
type Config struct {
	Token       string
	PollTimeout time.Duration
	Handler     Handler
	Logger      *zap.Logger
}

// NewBot connects to the Telegram API.
func NewBot(cfg Config) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(cfg.Token)
	if err != nil {
		return nil, err
	}

	cfg.Logger.Info("Telegram bot authorized", zap.String("username", api.Self.UserName))

	return &Bot{
		api:         api,
		handler:     cfg.Handler,
		pollTimeout: int(cfg.PollTimeout.Seconds()),
		logger:      cfg.Logger,
	}, nil
}

// Run polls for updates until ctx is cancelled. Each update is handled on
// its own goroutine; the usage store's atomicity, not update ordering, is
// what keeps quota accounting correct.
func (b *Bot) Run(ctx context.Context) {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = b.pollTimeout

	updates := b.api.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			if update.Message == nil || update.Message.Text == "" {
				continue
			}
			go b.handleUpdate(ctx, update.Message.Chat.ID, update.Message.Text)
		}
	}
}

func (b *Bot) handleUpdate(ctx context.Context, chatID int64, text string) {
	reply := b.handler.Handle(ctx, chatID, text)
	b.send(chatID, reply)
}

// send delivers one reply. Delivery failures are logged and never retried:
// the message is considered lost.
func (b *Bot) send(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdown

	if _, err := b.api.Send(msg); err != nil {
		b.logger.Error("Failed to send message",
			zap.Int64("chat_id", chatID),
			zap.Error(err),
		)
	}
}
