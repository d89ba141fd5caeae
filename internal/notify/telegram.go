// Package notify holds the downstream notification channel boundary.
package notify

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	tele "gopkg.in/telebot.v4"
)

// Config holds Telegram channel configuration.
type Config struct {
	Token  string
	ChatID int64
}

// Telegram delivers rendered messages to a single chat and returns the
// channel-assigned message identifier.
type Telegram struct {
	bot    *tele.Bot
	chat   *tele.Chat
	logger *slog.Logger
}

func NewTelegram(cfg Config, logger *slog.Logger) (*Telegram, error) {
	if cfg.Token == "" {
		return nil, errors.New("telegram token is empty")
	}
	if cfg.ChatID == 0 {
		return nil, errors.New("telegram chat id is empty")
	}

	bot, err := tele.NewBot(tele.Settings{
		Token:  cfg.Token,
		Poller: &tele.LongPoller{Timeout: 10 * time.Second},
	})
	if err != nil {
		return nil, fmt.Errorf("create bot: %w", err)
	}

	logger.Info("telegram channel ready", "chat_id", cfg.ChatID)

	return &Telegram{
		bot:    bot,
		chat:   &tele.Chat{ID: cfg.ChatID},
		logger: logger,
	}, nil
}

// Send delivers text to the configured chat and returns the Telegram
// message ID.
func (t *Telegram) Send(ctx context.Context, text string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	msg, err := t.bot.Send(t.chat, text)
	if err != nil {
		return "", fmt.Errorf("send message: %w", err)
	}
	return strconv.Itoa(msg.ID), nil
}
