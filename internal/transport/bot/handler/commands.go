package handler

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/mymmrac/telego"
	th "github.com/mymmrac/telego/telegohandler"

	"cs_market/internal/domain"
	"cs_market/pkg/errcodes"
)

const (
	defaultRecentLimit = 10
	maxRecentLimit     = 50
)

const startMessage = `<b>Skin market bot</b>

/status — uptime and health
/recent [n] — last purchases
/price &lt;market hash name&gt; — stored quote`

func (h *Handler) OnStart(ctx *th.Context, msg telego.Message) error {
	return h.sendHTML(ctx, msg.Chat.ID, startMessage)
}

func (h *Handler) OnStatus(ctx *th.Context, msg telego.Message) error {
	text := fmt.Sprintf(
		"📊 <b>Status</b>\n\n"+
			"<b>Started:</b> %s\n"+
			"<b>Uptime:</b> %s",
		h.startedAt.Format("2006-01-02 15:04:05"),
		time.Since(h.startedAt).Round(time.Second),
	)

	return h.sendHTML(ctx, msg.Chat.ID, text)
}

func (h *Handler) OnRecent(ctx *th.Context, msg telego.Message) error {
	limit := defaultRecentLimit

	if args := strings.Fields(msg.Text); len(args) > 1 {
		parsed, err := strconv.Atoi(args[1])
		if err != nil || parsed < 1 {
			return h.sendHTML(ctx, msg.Chat.ID, "Usage: /recent [n]")
		}
		limit = min(parsed, maxRecentLimit)
	}

	purchases, err := h.purchases.ListRecent(ctx, limit)
	if err != nil {
		return h.sendHTML(ctx, msg.Chat.ID, "Failed to load purchases")
	}

	if len(purchases) == 0 {
		return h.sendHTML(ctx, msg.Chat.ID, "No purchases yet")
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("🧾 <b>Last %d purchases</b>\n\n", len(purchases)))

	for i, p := range purchases {
		sb.WriteString(fmt.Sprintf(
			"%d. %s — %.2f (%s)\n",
			i+1,
			p.MarketHashName,
			float64(p.PriceEmpire)/100,
			p.PurchasedAt.Format("01-02 15:04"),
		))
	}

	return h.sendHTML(ctx, msg.Chat.ID, sb.String())
}

func (h *Handler) OnPrice(ctx *th.Context, msg telego.Message) error {
	_, name, found := strings.Cut(msg.Text, " ")
	name = strings.TrimSpace(name)
	if !found || name == "" {
		return h.sendHTML(ctx, msg.Chat.ID, "Usage: /price &lt;market hash name&gt;")
	}

	price, err := h.prices.GetPriceByName(ctx, name)
	if err != nil {
		if domain.HasCode(err, errcodes.ItemNotFound) {
			return h.sendHTML(ctx, msg.Chat.ID, "Item is not tracked")
		}
		return h.sendHTML(ctx, msg.Chat.ID, "Failed to load price")
	}

	text := fmt.Sprintf(
		"💰 <b>%s</b>\n\n"+
			"<b>Platform price:</b> %.2f\n"+
			"<b>Float price:</b> %.2f\n"+
			"<b>Updated:</b> %s",
		price.MarketHashName,
		float64(price.Quote.EmpirePrice)/100,
		float64(price.Quote.FloatPrice)/100,
		price.UpdatedAt.Format("2006-01-02 15:04:05"),
	)

	return h.sendHTML(ctx, msg.Chat.ID, text)
}

func (h *Handler) sendHTML(ctx *th.Context, chatID int64, text string) error {
	_, err := ctx.Bot().SendMessage(ctx, &telego.SendMessageParams{
		ChatID:    telego.ChatID{ID: chatID},
		Text:      text,
		ParseMode: telego.ModeHTML,
	})
	return err
}
