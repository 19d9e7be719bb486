// Package bot is the admin-facing Telegram transport.
package bot

import (
	"context"
	"fmt"

	"github.com/mymmrac/telego"
	th "github.com/mymmrac/telego/telegohandler"

	"cs_market/internal/transport/bot/handler"
	"cs_market/pkg/contextx"
	"cs_market/pkg/logx"
)

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

type Bot struct {
	bot        *telego.Bot
	botHandler *th.BotHandler
}

func New(ctx context.Context, bot *telego.Bot, adminID int64, commandHandler *handler.Handler) (*Bot, error) {
	updates, err := bot.UpdatesViaLongPolling(ctx, &telego.GetUpdatesParams{
		Timeout: 60,
	})
	if err != nil {
		return nil, fmt.Errorf("bot.UpdatesViaLongPolling: %w", err)
	}

	botHandler, err := th.NewBotHandler(bot, updates)
	if err != nil {
		return nil, fmt.Errorf("telegohandler.NewBotHandler: %w", err)
	}

	commandHandler.RegisterRoutes(botHandler, adminID)

	return &Bot{
		bot:        bot,
		botHandler: botHandler,
	}, nil
}

func (b *Bot) Run(ctx context.Context) error {
	go func() {
		if err := b.botHandler.Start(); err != nil {
			logger(ctx).Error("bot handler start", logx.Error(err))
		}
	}()

	logger(ctx).Info("admin bot started")

	<-ctx.Done()

	if err := b.botHandler.Stop(); err != nil {
		logger(ctx).Error("bot handler stop", logx.Error(err))
	}

	logger(ctx).Info("admin bot stopped")

	return ctx.Err()
}
