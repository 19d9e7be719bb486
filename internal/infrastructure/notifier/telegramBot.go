// Package notifier pushes operational alerts to a Telegram chat.
package notifier

import (
	"context"
	"fmt"

	"github.com/mymmrac/telego"
	tu "github.com/mymmrac/telego/telegoutil"

	"cs_market/internal/domain/entity"
	"cs_market/pkg/logx"
)

type TelegramBot struct {
	bot    *telego.Bot
	chatID int64
}

func NewTelegramBot(bot *telego.Bot, chatID int64) *TelegramBot {
	return &TelegramBot{
		bot:    bot,
		chatID: chatID,
	}
}

// Run drains the alerts channel until it closes or the context ends. A failed
// send never stops the loop.
func (b *TelegramBot) Run(ctx context.Context, alerts <-chan entity.Alert) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case alert, ok := <-alerts:
			if !ok {
				return nil
			}

			if err := b.SendText(ctx, formatAlert(alert)); err != nil {
				logger(ctx).Error("failed to send alert",
					"kind", alert.Kind,
					logx.Error(err),
				)
			}
		}
	}
}

// SendText sends an HTML message to the configured chat, retrying once on a
// transient failure.
func (b *TelegramBot) SendText(ctx context.Context, text string) error {
	msg := tu.Message(tu.ID(b.chatID), text).
		WithParseMode(telego.ModeHTML).
		WithLinkPreviewOptions(&telego.LinkPreviewOptions{IsDisabled: true})

	_, err := b.bot.SendMessage(ctx, msg)
	if err == nil {
		return nil
	}

	logger(ctx).Warn("telegram send failed, retrying", logx.Error(err))

	if _, err = b.bot.SendMessage(ctx, msg); err != nil {
		return fmt.Errorf("bot.SendMessage: %w", err)
	}

	return nil
}

func formatAlert(alert entity.Alert) string {
	w := alert.Withdrawal

	switch alert.Kind {
	case entity.AlertDisputed:
		return fmt.Sprintf(
			"⚠️ <b>Trade disputed</b>\n\n"+
				"<b>Item:</b> %s\n"+
				"<b>Bought:</b> %s\n"+
				"<b>Value:</b> %.2f\n"+
				"<b>Buyer:</b> %s\n"+
				"<b>SteamID:</b> <code>%d</code>\n"+
				"<a href=\"%s\">Profile</a>",
			w.MarketName,
			w.CreatedAt.Format("2006-01-02 15:04:05"),
			float64(w.TotalValue)/100,
			w.PartnerName,
			w.PartnerSteamID64,
			w.PartnerProfileURL,
		)
	case entity.AlertPurchased:
		return fmt.Sprintf(
			"✅ <b>Item sent</b>\n\n"+
				"<b>Item:</b> %s\n"+
				"<b>Value:</b> %.2f\n"+
				"<b>Buyer:</b> %s",
			w.MarketName,
			float64(w.TotalValue)/100,
			w.PartnerName,
		)
	case entity.AlertDeadLetter:
		return fmt.Sprintf(
			"🛑 <b>Action given up</b>\n\n"+
				"<b>Item:</b> %s\n"+
				"<b>Detail:</b> %s",
			w.MarketName,
			alert.Detail,
		)
	default:
		return fmt.Sprintf("<b>%s</b>: %s", alert.Kind, alert.Detail)
	}
}
