package telegram

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const cbTemplate = "idea_template"

func (r *Router) handleCallback(cb tgbotapi.CallbackQuery) {
	_, _ = r.Bot.Request(tgbotapi.NewCallback(cb.ID, "")) // ack
	if cb.Message == nil || cb.Message.Chat == nil {
		return
	}
	cid := cb.Message.Chat.ID

	switch cb.Data {
	case cbTemplate:
		r.send(cid, TemplateText)
	default:
		r.logger().WithField("data", cb.Data).Debug("unknown callback")
	}
}
