package middleware

import (
	"github.com/mymmrac/telego"
	th "github.com/mymmrac/telego/telegohandler"
)

// AdminOnly drops every update that does not come from the admin account.
func AdminOnly(adminID int64) th.Handler {
	return func(ctx *th.Context, update telego.Update) error {
		var userID int64

		switch {
		case update.Message != nil:
			userID = update.Message.From.ID
		case update.CallbackQuery != nil:
			userID = update.CallbackQuery.From.ID
		default:
			return nil
		}

		if userID == adminID {
			return ctx.Next(update)
		}

		return nil
	}
}
